package serial

import (
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/scheduler"
	"github.com/thelolagemann/sm83/internal/types"
)

const (
	// ticksPerBit is the number of T-cycles it takes to shift a
	// single bit when using the internal clock (8.192 kHz).
	ticksPerBit = 512
	// TransferTicks is the number of T-cycles a full byte takes.
	TransferTicks = 8 * ticksPerBit
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
//
// A transfer is started by writing SC with bits 7 and 0 set. The byte in
// SB is exchanged with the attached device once all 8 bits have been
// shifted, after which the serial interrupt is requested and bit 7 of SC
// is cleared.
type Controller struct {
	data    uint8 // types.SB
	control uint8 // types.SC

	AttachedDevice Device // the device that is attached to this controller.

	s   *scheduler.Scheduler
	irq *interrupts.Service
}

// NewController creates a new Controller.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. If you want to attach a device, use the
// Controller.Attach method.
func NewController(s *scheduler.Scheduler, irq *interrupts.Service) *Controller {
	c := &Controller{
		AttachedDevice: nullDevice{},
		s:              s,
		irq:            irq,
	}
	s.RegisterEvent(scheduler.SerialTransfer, c.complete)

	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// Read returns the value of the serial register at the given address.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.SB:
		return c.data
	case types.SC:
		return c.control | 0x7E // bits 1-6 are always set
	}
	return 0xFF
}

// Write writes the value to the serial register at the given address.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.data = value
	case types.SC:
		c.control = value & 0x81
		// only transfers driven by the internal clock make progress,
		// as there is never another Game Boy driving the clock
		if c.control == 0x81 {
			c.s.ScheduleEvent(scheduler.SerialTransfer, TransferTicks)
		} else {
			c.s.DescheduleEvent(scheduler.SerialTransfer)
		}
	}
}

// Transferring returns true while a transfer is in progress.
func (c *Controller) Transferring() bool {
	return c.control&types.Bit7 != 0
}

func (c *Controller) complete() {
	c.data = c.AttachedDevice.Exchange(c.data)
	c.control &^= types.Bit7
	c.irq.Request(interrupts.SerialFlag)
}

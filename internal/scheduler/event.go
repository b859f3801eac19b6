package scheduler

// EventType identifies a kind of event. Only one event of each type can
// be scheduled at a time.
type EventType uint8

const (
	// InterruptVBlank through InterruptJoypad request the interrupt with
	// the same bit index. Hosts use them to inject interrupts after a
	// delay.
	InterruptVBlank EventType = iota
	InterruptLCD
	InterruptTimer
	InterruptSerial
	InterruptJoypad
	// SerialTransfer completes the byte being shifted out of the serial port.
	SerialTransfer

	eventTypes
)

var eventNames = [eventTypes]string{
	"InterruptVBlank",
	"InterruptLCD",
	"InterruptTimer",
	"InterruptSerial",
	"InterruptJoypad",
	"SerialTransfer",
}

func (e EventType) String() string {
	if e < eventTypes {
		return eventNames[e]
	}
	return "Unknown"
}

type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}

func (e *Event) Reset() {
	e.cycle = 0
	e.scheduled = false
	e.next = nil
}

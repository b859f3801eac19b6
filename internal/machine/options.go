package machine

import (
	"io"
	"strings"

	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/serial"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Opt is a function that modifies a Machine
// instance.
type Opt func(m *Machine)

// Debug enables the LD B, B software breakpoint.
func Debug() Opt {
	return func(m *Machine) {
		m.CPU.Debug = true
	}
}

// NoBios starts execution at 0x100, with the registers set to the values
// upon completion of the boot ROM of the selected model.
func NoBios() Opt {
	return func(m *Machine) {
		m.noBios = true
	}
}

// AsModel selects the model whose post-boot registers NoBios uses.
func AsModel(model types.Model) Opt {
	return func(m *Machine) {
		m.model = model
	}
}

// WithEntryPoint sets the address execution starts at. It takes
// precedence over NoBios.
func WithEntryPoint(pc uint16) Opt {
	return func(m *Machine) {
		m.entryPoint = &pc
	}
}

// WithBootROM maps the boot ROM over the program until it unmaps
// itself, and starts execution at 0x0000.
func WithBootROM(rom *boot.ROM) Opt {
	return func(m *Machine) {
		m.MMU.SetBootROM(rom)
	}
}

// WithLogger sets the logger used by the machine and its bus.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.Logger = l
		m.MMU.Log = l
	}
}

// WithSerialWriter copies every byte sent over the serial port to w.
func WithSerialWriter(w io.Writer) Opt {
	return func(m *Machine) {
		m.Serial.Attach(serial.NewWriterDevice(w))
	}
}

// SerialDebugger intercepts serial output and stores it in output. The
// debug breakpoint is hit once the output reports a test result.
func SerialDebugger(output *string) Opt {
	return func(m *Machine) {
		m.Serial.Attach(serialDebugger{m: m, output: output})
	}
}

type serialDebugger struct {
	m      *Machine
	output *string
}

func (d serialDebugger) Exchange(v uint8) uint8 {
	*d.output += string(v)
	if strings.Contains(*d.output, "Passed") || strings.Contains(*d.output, "Failed") {
		d.m.CPU.DebugBreakpoint = true
	}
	return 0xFF
}

// WithTracer calls t before every instruction is executed.
func WithTracer(t Tracer) Opt {
	return func(m *Machine) {
		m.tracer = t
	}
}

// WithExtended replaces the CB-prefixed instruction set.
func WithExtended(ext cpu.Extended) Opt {
	return func(m *Machine) {
		cpu.WithExtended(ext)(m.CPU)
	}
}

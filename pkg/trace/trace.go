// Package trace records the state of the CPU before every instruction.
// Traces can be written as text (optionally brotli compressed), compared
// against a reference trace, hashed for replay checks, or streamed to
// websocket clients.
package trace

import (
	"encoding/binary"
	"fmt"
)

// Tracer is called with the state of the CPU before every instruction
// is executed.
type Tracer interface {
	Trace(e Entry) error
}

// Entry is the state of the CPU before an instruction is executed.
type Entry struct {
	// Cycle is the number of M-cycles elapsed before the instruction.
	Cycle uint64

	PC, SP                 uint16
	A, F, B, C, D, E, H, L uint8
	IME                    bool

	// PCMem holds the 4 bytes starting at PC.
	PCMem [4]uint8
	// Instruction is the disassembled instruction at PC.
	Instruction string
}

// String returns the entry in the format used by Gameboy Doctor, so that
// traces can be compared with other emulators.
func (e Entry) String() string {
	return fmt.Sprintf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X PCMEM:%02X,%02X,%02X,%02X",
		e.A, e.F, e.B, e.C, e.D, e.E, e.H, e.L, e.SP, e.PC, e.PCMem[0], e.PCMem[1], e.PCMem[2], e.PCMem[3])
}

// BinarySize is the size of an entry encoded by AppendBinary, excluding
// the instruction.
const BinarySize = 8 + 2 + 2 + 8 + 1 + 4

// AppendBinary appends the little endian encoding of the entry to buf.
// The instruction is appended last, and runs to the end of the message.
func (e Entry) AppendBinary(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, e.Cycle)
	buf = binary.LittleEndian.AppendUint16(buf, e.PC)
	buf = binary.LittleEndian.AppendUint16(buf, e.SP)
	buf = append(buf, e.A, e.F, e.B, e.C, e.D, e.E, e.H, e.L)
	if e.IME {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = append(buf, e.PCMem[:]...)
	return append(buf, e.Instruction...)
}

// multi calls every tracer in order, stopping at the first error.
type multi []Tracer

func (m multi) Trace(e Entry) error {
	for _, t := range m {
		if err := t.Trace(e); err != nil {
			return err
		}
	}
	return nil
}

// Multi returns a Tracer that calls each of the given tracers.
func Multi(tracers ...Tracer) Tracer {
	return multi(tracers)
}

package cpu

import (
	"errors"
	"fmt"
)

// ErrUndefinedOpcode is matched by every *DecodeError.
var ErrUndefinedOpcode = errors.New("undefined opcode")

// DecodeError is returned by Step when the fetched opcode does not map
// to an instruction. There is no way to recover from it; the host is
// expected to stop stepping the CPU.
type DecodeError struct {
	Opcode uint8
	// PC is the address the opcode was fetched from.
	PC uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("undefined opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *DecodeError) Unwrap() error {
	return ErrUndefinedOpcode
}

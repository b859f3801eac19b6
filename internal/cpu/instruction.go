package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a single entry in an instruction table.
type Instruction struct {
	name   string
	fn     func(*CPU)
	length uint8
}

// Name returns the mnemonic of the instruction. Immediate operands are
// written as d8, d16, a8, a16 and r8.
func (i Instruction) Name() string {
	return i.name
}

// Length returns the length of the instruction in bytes, including the
// opcode.
func (i Instruction) Length() uint8 {
	return i.length
}

// Defined returns false for the opcodes that do not decode to an
// instruction.
func (i Instruction) Defined() bool {
	return i.fn != nil
}

// InstructionSet holds the main instruction table, indexed by opcode.
var InstructionSet [256]Instruction

// undefinedOpcodes do not map to any instruction, and lock up the
// hardware when executed.
var undefinedOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name:   name,
		fn:     fn,
		length: 1 + operandLength(name),
	}
}

func operandLength(name string) uint8 {
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		return 2
	case strings.Contains(name, "d8"), strings.Contains(name, "a8"), strings.Contains(name, "r8"):
		return 1
	}
	return 0
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		c.readOperand()
		c.Stopped = true
	})
	InstructionSet[0x10].length = 2

	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.IME {
			if p, ok := c.bus.(InterruptPender); ok && p.InterruptPending() {
				// HALT is skipped, and the next byte is fetched twice
				c.haltBug = true
				return
			}
		}
		c.Halted = true
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.IME = false
		c.IMEQueued = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		c.IMEQueued = true
	})
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) {
		c.ext.Execute(c)
	})

	for _, opcode := range undefinedOpcodes {
		InstructionSet[opcode] = Instruction{name: fmt.Sprintf("ILLEGAL_%02X", opcode), length: 1}
	}
}

package cpu

import "fmt"

// InstructionSetCB holds the CB-prefixed instructions, indexed by the
// byte following 0xCB.
var InstructionSetCB [256]Instruction

// CBSet is the built-in Extended instruction set.
var CBSet Extended = cbSet{}

type cbSet struct{}

// Execute fetches the second opcode byte and executes it.
func (cbSet) Execute(c *CPU) {
	InstructionSetCB[c.readOperand()].fn(c)
}

// DefineInstructionCB defines an instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn, length: 2}
}

// readModifyWrite applies fn to the given Location. For (HL) this costs
// a read and a write.
func (c *CPU) readModifyWrite(l Location, fn func(uint8) uint8) {
	c.store(l, fn(c.load(l)))
}

func init() {
	for loc := LocationB; loc <= LocationA; loc++ {
		l := loc
		name := l.String()
		op := uint8(l)

		DefineInstructionCB(0x00|op, "RLC "+name, func(c *CPU) { c.readModifyWrite(l, c.rotateLeftCarry) })
		DefineInstructionCB(0x08|op, "RRC "+name, func(c *CPU) { c.readModifyWrite(l, c.rotateRightCarry) })
		DefineInstructionCB(0x10|op, "RL "+name, func(c *CPU) { c.readModifyWrite(l, c.rotateLeftThroughCarry) })
		DefineInstructionCB(0x18|op, "RR "+name, func(c *CPU) { c.readModifyWrite(l, c.rotateRightThroughCarry) })
		DefineInstructionCB(0x20|op, "SLA "+name, func(c *CPU) { c.readModifyWrite(l, c.shiftLeftArithmetic) })
		DefineInstructionCB(0x28|op, "SRA "+name, func(c *CPU) { c.readModifyWrite(l, c.shiftRightArithmetic) })
		DefineInstructionCB(0x30|op, "SWAP "+name, func(c *CPU) { c.readModifyWrite(l, c.swapByte) })
		DefineInstructionCB(0x38|op, "SRL "+name, func(c *CPU) { c.readModifyWrite(l, c.shiftRightLogical) })

		for b := uint8(0); b < 8; b++ {
			bit := b
			DefineInstructionCB(0x40|bit<<3|op, fmt.Sprintf("BIT %d, %s", bit, name), func(c *CPU) {
				c.testBit(bit, c.load(l))
			})
			DefineInstructionCB(0x80|bit<<3|op, fmt.Sprintf("RES %d, %s", bit, name), func(c *CPU) {
				c.store(l, resetBit(bit, c.load(l)))
			})
			DefineInstructionCB(0xC0|bit<<3|op, fmt.Sprintf("SET %d, %s", bit, name), func(c *CPU) {
				c.store(l, setBit(bit, c.load(l)))
			})
		}
	}
}

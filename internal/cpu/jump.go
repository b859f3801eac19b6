package cpu

import "fmt"

// Condition is one of the four branch conditions encoded in bits 3 and 4
// of the conditional jump, call and return opcodes.
type Condition uint8

const (
	ConditionNZ Condition = iota
	ConditionZ
	ConditionNC
	ConditionC
)

var conditionNames = [...]string{"NZ", "Z", "NC", "C"}

func (cond Condition) String() string {
	return conditionNames[cond&3]
}

// test returns true if the condition holds for the current flags.
func (c *CPU) test(cond Condition) bool {
	switch cond {
	case ConditionNZ:
		return c.isFlagsNotSet(FlagZero)
	case ConditionZ:
		return c.isFlagsSet(FlagZero)
	case ConditionNC:
		return c.isFlagsNotSet(FlagCarry)
	default:
		return c.isFlagsSet(FlagCarry)
	}
}

// jumpRelative jumps to the address relative to the current PC if the
// condition is true. A taken jump spends an extra internal cycle.
//
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(condition bool) {
	e := int8(c.readOperand())
	if condition {
		c.PC = uint16(int32(c.PC) + int32(e))
		c.tick()
	}
}

// jumpAbsolute jumps to the 16-bit immediate address if the condition
// is true.
//
//	JP cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.tick()
	}
}

// call pushes the address of the next instruction onto the stack and
// jumps to the 16-bit immediate address if the condition is true.
//
//	CALL cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) call(condition bool) {
	address := c.readOperand16()
	if condition {
		c.push(c.PC)
		c.PC = address
	}
}

// ret pops the return address from the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.pop()
	c.tick()
}

// retConditional spends an internal cycle testing the condition, and
// returns if it holds.
//
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) retConditional(condition bool) {
	c.tick()
	if condition {
		c.ret()
	}
}

// rst pushes the address of the next instruction onto the stack and
// jumps to the fixed address n.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func (c *CPU) rst(n uint16) {
	c.push(c.PC)
	c.PC = n
}

func init() {
	for cond := ConditionNZ; cond <= ConditionC; cond++ {
		cc := cond
		row := uint8(cc) << 3
		DefineInstruction(0x20|row, "JR "+cc.String()+", r8", func(c *CPU) {
			c.jumpRelative(c.test(cc))
		})
		DefineInstruction(0xC0|row, "RET "+cc.String(), func(c *CPU) {
			c.retConditional(c.test(cc))
		})
		DefineInstruction(0xC2|row, "JP "+cc.String()+", a16", func(c *CPU) {
			c.jumpAbsolute(c.test(cc))
		})
		DefineInstruction(0xC4|row, "CALL "+cc.String()+", a16", func(c *CPU) {
			c.call(c.test(cc))
		})
	}

	DefineInstruction(0x18, "JR r8", func(c *CPU) { c.jumpRelative(true) })
	DefineInstruction(0xC3, "JP a16", func(c *CPU) { c.jumpAbsolute(true) })
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL.Uint16() })
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(true) })
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.ret() })
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret()
		c.IME = true
	})

	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) { c.rst(vector) })
	}
}


package cpu

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	result, f := and8(c.A, n)
	c.A = result
	c.applyFlags(f)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	result, f := or8(c.A, n)
	c.A = result
	c.applyFlags(f)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	result, f := xor8(c.A, n)
	c.A = result
	c.applyFlags(f)
}

func init() {
	for loc := LocationB; loc <= LocationA; loc++ {
		l := loc
		DefineInstruction(0xA0|uint8(l), "AND "+l.String(), func(c *CPU) { c.and(c.load(l)) })
		DefineInstruction(0xA8|uint8(l), "XOR "+l.String(), func(c *CPU) { c.xor(c.load(l)) })
		DefineInstruction(0xB0|uint8(l), "OR "+l.String(), func(c *CPU) { c.or(c.load(l)) })
	}
	DefineInstruction(0xE6, "AND d8", func(c *CPU) { c.and(c.readOperand()) })
	DefineInstruction(0xEE, "XOR d8", func(c *CPU) { c.xor(c.readOperand()) })
	DefineInstruction(0xF6, "OR d8", func(c *CPU) { c.or(c.readOperand()) })

	// CPL
	// Complement A register. (Flip all bits.)
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	// SCF
	// Set carry flag.
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	// CCF
	// Complement carry flag.
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
}

package cpu

// increment the given value and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	result, f := inc8(value, c.isFlagSet(FlagCarry))
	c.applyFlags(f)
	return result
}

// decrement the given value and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	result, f := dec8(value, c.isFlagSet(FlagCarry))
	c.applyFlags(f)
	return result
}

// incrementNN increments the given register pair by 1, spending an
// internal cycle.
//
//	INC nn
//	nn = 16-bit register
//
// Flags affected: none.
func (c *CPU) incrementNN(p Pair) {
	c.SetPair(p, c.Pair(p)+1)
	c.tick()
}

// decrementNN decrements the given register pair by 1, spending an
// internal cycle.
//
//	DEC nn
//	nn = 16-bit register
//
// Flags affected: none.
func (c *CPU) decrementNN(p Pair) {
	c.SetPair(p, c.Pair(p)-1)
	c.tick()
}

// add n to A, optionally with the carry flag.
//
//	ADD A, n
//	ADC A, n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	var carry uint8
	if withCarry {
		carry = c.carry()
	}
	result, f := add8(c.A, n, carry)
	c.A = result
	c.applyFlags(f)
}

// sub n from A, optionally with the carry flag.
//
//	SUB n
//	SBC A, n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	var borrow uint8
	if withCarry {
		borrow = c.carry()
	}
	result, f := sub8(c.A, n, borrow)
	c.A = result
	c.applyFlags(f)
}

// compare A with n. This is a subtraction whose result is thrown away.
//
//	CP n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if A == n.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if A < n.
func (c *CPU) compare(n uint8) {
	_, f := sub8(c.A, n, 0)
	c.applyFlags(f)
}

// addHLRR adds the given register pair to HL, spending an internal cycle.
//
//	ADD HL, nn
//	nn = 16-bit register
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHLRR(p Pair) {
	result, f := add16(c.HL.Uint16(), c.Pair(p), c.isFlagSet(FlagZero))
	c.HL.SetUint16(result)
	c.applyFlags(f)
	c.tick()
}

// addSPSigned returns SP plus the signed operand e, and sets the flags
// from the unsigned addition of the low byte of SP and e.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	result, f := addSigned(c.SP, e)
	c.applyFlags(f)
	return result
}

// decimalAdjust adjusts A so that the result of the last BCD addition
// or subtraction is valid BCD.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	result, f := daa(c.A, c.flags())
	c.A = result
	c.applyFlags(f)
}

func init() {
	for loc := LocationB; loc <= LocationA; loc++ {
		l := loc
		DefineInstruction(0x04|uint8(l)<<3, "INC "+l.String(), func(c *CPU) {
			c.store(l, c.increment(c.load(l)))
		})
		DefineInstruction(0x05|uint8(l)<<3, "DEC "+l.String(), func(c *CPU) {
			c.store(l, c.decrement(c.load(l)))
		})

		DefineInstruction(0x80|uint8(l), "ADD A, "+l.String(), func(c *CPU) {
			c.add(c.load(l), false)
		})
		DefineInstruction(0x88|uint8(l), "ADC A, "+l.String(), func(c *CPU) {
			c.add(c.load(l), true)
		})
		DefineInstruction(0x90|uint8(l), "SUB "+l.String(), func(c *CPU) {
			c.sub(c.load(l), false)
		})
		DefineInstruction(0x98|uint8(l), "SBC A, "+l.String(), func(c *CPU) {
			c.sub(c.load(l), true)
		})
		DefineInstruction(0xB8|uint8(l), "CP "+l.String(), func(c *CPU) {
			c.compare(c.load(l))
		})
	}

	for pair := PairBC; pair <= PairSP; pair++ {
		p := pair
		DefineInstruction(0x03|uint8(p)<<4, "INC "+p.String(), func(c *CPU) {
			c.incrementNN(p)
		})
		DefineInstruction(0x0B|uint8(p)<<4, "DEC "+p.String(), func(c *CPU) {
			c.decrementNN(p)
		})
		DefineInstruction(0x09|uint8(p)<<4, "ADD HL, "+p.String(), func(c *CPU) {
			c.addHLRR(p)
		})
	}

	DefineInstruction(0xC6, "ADD A, d8", func(c *CPU) { c.add(c.readOperand(), false) })
	DefineInstruction(0xCE, "ADC A, d8", func(c *CPU) { c.add(c.readOperand(), true) })
	DefineInstruction(0xD6, "SUB d8", func(c *CPU) { c.sub(c.readOperand(), false) })
	DefineInstruction(0xDE, "SBC A, d8", func(c *CPU) { c.sub(c.readOperand(), true) })
	DefineInstruction(0xFE, "CP d8", func(c *CPU) { c.compare(c.readOperand()) })

	DefineInstruction(0x27, "DAA", func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU) {
		c.SP = c.addSPSigned(c.readOperand())
		c.tick()
		c.tick()
	})
}

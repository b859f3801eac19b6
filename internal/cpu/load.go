package cpu

// loadRegister16 loads the 16-bit immediate value into the given pair.
//
//	LD nn, d16
//	nn = BC, DE, HL, SP
//	d16 = 16-bit immediate value
func (c *CPU) loadRegister16(p Pair) {
	c.SetPair(p, c.readOperand16())
}

// loadRegisterToHardware loads the value of A into the given hardware
// address. (e.g. LD (0xFF00 + n), A)
//
//	LD (0xFF00 + n), A
//	n = C, 8 bit immediate value
func (c *CPU) loadRegisterToHardware(address uint8) {
	c.writeByte(0xFF00+uint16(address), c.A)
}

// loadHardwareToRegister loads the value at the given hardware address
// into A.
//
//	LD A, (0xFF00 + n)
//	n = C, 8 bit immediate value
func (c *CPU) loadHardwareToRegister(address uint8) {
	c.A = c.readByte(0xFF00 + uint16(address))
}

// push the given value onto the stack, high byte first. The internal
// cycle spent decrementing SP comes before the two writes.
func (c *CPU) push(value uint16) {
	c.tick()
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value))
}

// pop a value off of the stack, low byte first.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

func init() {
	// LD r, r' covers 0x40 - 0x7F, with HALT in place of LD (HL), (HL)
	for dst := LocationB; dst <= LocationA; dst++ {
		for src := LocationB; src <= LocationA; src++ {
			if dst == LocationHL && src == LocationHL {
				continue
			}
			d, s := dst, src
			opcode := 0x40 | uint8(d)<<3 | uint8(s)
			if d == LocationB && s == LocationB {
				DefineInstruction(opcode, "LD B, B", func(c *CPU) {
					if c.Debug {
						c.DebugBreakpoint = true
					}
				})
				continue
			}
			DefineInstruction(opcode, "LD "+d.String()+", "+s.String(), func(c *CPU) {
				c.store(d, c.load(s))
			})
		}

		d := dst
		DefineInstruction(0x06|uint8(d)<<3, "LD "+d.String()+", d8", func(c *CPU) {
			c.store(d, c.readOperand())
		})
	}

	for pair := PairBC; pair <= PairSP; pair++ {
		p := pair
		DefineInstruction(0x01|uint8(p)<<4, "LD "+p.String()+", d16", func(c *CPU) {
			c.loadRegister16(p)
		})
	}

	// 0xC1 - 0xF5 POP / PUSH, with AF in place of SP
	for _, pair := range []Pair{PairBC, PairDE, PairHL, PairAF} {
		p := pair
		row := uint8(p)
		if p == PairAF {
			row = 3
		}
		DefineInstruction(0xC1|row<<4, "POP "+p.String(), func(c *CPU) {
			c.SetPair(p, c.pop())
		})
		DefineInstruction(0xC5|row<<4, "PUSH "+p.String(), func(c *CPU) {
			c.push(c.Pair(p))
		})
	}

	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) })
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) })
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) })
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) })
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})

	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) { c.loadRegisterToHardware(c.readOperand()) })
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) { c.loadHardwareToRegister(c.readOperand()) })
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) { c.loadRegisterToHardware(c.C) })
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) { c.loadHardwareToRegister(c.C) })
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) { c.writeByte(c.readOperand16(), c.A) })
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) { c.A = c.readByte(c.readOperand16()) })

	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
		c.tick()
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tick()
	})
}

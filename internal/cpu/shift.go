package cpu

// shiftLeftArithmetic shifts n left into the carry flag. Bit 0 is reset.
//
//	SLA n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	result, carry := sla(n)
	c.setFlags(result == 0, false, false, carry)
	return result
}

// shiftRightArithmetic shifts n right into the carry flag. Bit 7 is
// unchanged.
//
//	SRA n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	result, carry := sra(n)
	c.setFlags(result == 0, false, false, carry)
	return result
}

// shiftRightLogical shifts n right into the carry flag. Bit 7 is reset.
//
//	SRL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result, carry := srl(n)
	c.setFlags(result == 0, false, false, carry)
	return result
}

package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// testBit tests the given bit of n.
//
//	BIT b, n
//	b = 0 - 7
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(bit uint8, n uint8) {
	c.setFlags(!bits.Test(n, bit), false, true, c.isFlagSet(FlagCarry))
}

// resetBit resets the given bit of n.
//
//	RES b, n
//	b = 0 - 7
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected: none.
func resetBit(bit uint8, n uint8) uint8 {
	return bits.Reset(n, bit)
}

// setBit sets the given bit of n.
//
//	SET b, n
//	b = 0 - 7
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected: none.
func setBit(bit uint8, n uint8) uint8 {
	return bits.Set(n, bit)
}

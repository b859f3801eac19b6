package cpu

// swapByte swaps the upper and lower nibbles of n.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swapByte(n uint8) uint8 {
	result := swap(n)
	c.setFlags(result == 0, false, false, false)
	return result
}

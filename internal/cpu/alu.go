package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// flags is the result of an ALU operation, in the order they are laid
// out in the F register.
type flags struct {
	z, n, h, c bool
}

// flags returns the current state of the F register.
func (c *CPU) flags() flags {
	return flags{
		z: c.isFlagSet(FlagZero),
		n: c.isFlagSet(FlagSubtract),
		h: c.isFlagSet(FlagHalfCarry),
		c: c.isFlagSet(FlagCarry),
	}
}

// applyFlags replaces the F register with the given flags.
func (c *CPU) applyFlags(f flags) {
	c.setFlags(f.z, f.n, f.h, f.c)
}

func add8(a, b, carry uint8) (uint8, flags) {
	result := a + b + carry
	return result, flags{
		z: result == 0,
		h: bits.CarryFrom(a, b, carry, 3),
		c: bits.CarryFrom(a, b, carry, 7),
	}
}

func sub8(a, b, borrow uint8) (uint8, flags) {
	result := a - b - borrow
	return result, flags{
		z: result == 0,
		n: true,
		h: bits.BorrowFrom(a, b, borrow, 3),
		c: bits.BorrowFrom(a, b, borrow, 7),
	}
}

func and8(a, b uint8) (uint8, flags) {
	result := a & b
	return result, flags{z: result == 0, h: true}
}

func or8(a, b uint8) (uint8, flags) {
	result := a | b
	return result, flags{z: result == 0}
}

func xor8(a, b uint8) (uint8, flags) {
	result := a ^ b
	return result, flags{z: result == 0}
}

// inc8 and dec8 leave the carry flag as it was.
func inc8(v uint8, carry bool) (uint8, flags) {
	result := v + 1
	return result, flags{z: result == 0, h: v&0xF == 0xF, c: carry}
}

func dec8(v uint8, carry bool) (uint8, flags) {
	result := v - 1
	return result, flags{z: result == 0, n: true, h: v&0xF == 0, c: carry}
}

// add16 leaves the zero flag as it was.
func add16(a, b uint16, zero bool) (uint16, flags) {
	return a + b, flags{
		z: zero,
		h: bits.CarryFrom(a, b, 0, 11),
		c: bits.CarryFrom(a, b, 0, 15),
	}
}

// addSigned adds the signed displacement e to sp. The flags are those
// of the unsigned addition of the low byte of sp and e.
func addSigned(sp uint16, e uint8) (uint16, flags) {
	low := uint8(sp)
	return sp + uint16(int8(e)), flags{
		h: bits.CarryFrom(low, e, 0, 3),
		c: bits.CarryFrom(low, e, 0, 7),
	}
}

// daa adjusts a to be a valid BCD number after an addition or
// subtraction, as selected by the subtract flag.
func daa(a uint8, f flags) (uint8, flags) {
	var correction uint8
	carry := false
	if f.h || (!f.n && a&0xF > 0x9) {
		correction |= 0x06
	}
	if f.c || (!f.n && a > 0x99) {
		correction |= 0x60
		carry = true
	}

	if f.n {
		a -= correction
	} else {
		a += correction
	}

	return a, flags{z: a == 0, n: f.n, c: carry}
}

func rlc(v uint8) (uint8, bool) {
	return v<<1 | v>>7, v&0x80 != 0
}

func rrc(v uint8) (uint8, bool) {
	return v>>1 | v<<7, v&0x01 != 0
}

func rl(v uint8, carry uint8) (uint8, bool) {
	return v<<1 | carry, v&0x80 != 0
}

func rr(v uint8, carry uint8) (uint8, bool) {
	return v>>1 | carry<<7, v&0x01 != 0
}

func sla(v uint8) (uint8, bool) {
	return v << 1, v&0x80 != 0
}

// sra keeps bit 7 in place.
func sra(v uint8) (uint8, bool) {
	return v>>1 | v&0x80, v&0x01 != 0
}

func srl(v uint8) (uint8, bool) {
	return v >> 1, v&0x01 != 0
}

func swap(v uint8) uint8 {
	return v<<4 | v>>4
}

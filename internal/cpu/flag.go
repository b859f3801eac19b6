package cpu

import "github.com/thelolagemann/sm83/pkg/bits"

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// setFlags sets all four flags at once. This is the only place the
// flags are assembled, so the lower nibble of F stays zero.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	f = bits.Assign(f, FlagZero, zero)
	f = bits.Assign(f, FlagSubtract, subtract)
	f = bits.Assign(f, FlagHalfCarry, halfCarry)
	f = bits.Assign(f, FlagCarry, carry)
	c.SetF(f)
}

// SetFlags sets the Z, N, H and C flags.
func (c *CPU) SetFlags(zero, subtract, halfCarry, carry bool) {
	c.setFlags(zero, subtract, halfCarry, carry)
}

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.SetF(bits.Reset(c.f, flag))
}

// setFlag sets a flag to the given value.
func (c *CPU) setFlag(flag Flag) {
	c.SetF(bits.Set(c.f, flag))
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return bits.Test(c.f, flag)
}

// IsFlagSet returns true if the given flag is set.
func (c *CPU) IsFlagSet(flag Flag) bool {
	return c.isFlagSet(flag)
}

// isFlagsSet returns true if all the given flags are set.
func (c *CPU) isFlagsSet(flags ...Flag) bool {
	for _, flag := range flags {
		if !c.isFlagSet(flag) {
			return false
		}
	}
	return true
}

// isFlagsNotSet returns true if none of the given flags are set.
func (c *CPU) isFlagsNotSet(flags ...Flag) bool {
	for _, flag := range flags {
		if c.isFlagSet(flag) {
			return false
		}
	}
	return true
}

// carry returns the carry flag as a value to add.
func (c *CPU) carry() uint8 {
	return bits.Val(c.f, FlagCarry)
}

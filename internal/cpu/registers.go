package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// Register is an 8-bit CPU register.
type Register = types.Register

// RegisterPair is a view over two 8-bit registers.
type RegisterPair = types.RegisterPair

// Registers represents the CPU registers. The F register is not exported,
// as its lower nibble must always read as zero; use F and SetF.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register
	f Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

func (r *Registers) init() {
	r.BC = types.NewRegisterPair(&r.B, &r.C)
	r.DE = types.NewRegisterPair(&r.D, &r.E)
	r.HL = types.NewRegisterPair(&r.H, &r.L)
	r.AF = types.NewMaskedRegisterPair(&r.A, &r.f, 0xF0)
}

// F returns the flags register.
func (r *Registers) F() Register {
	return r.f
}

// SetF sets the flags register. Only the upper nibble is kept.
func (r *Registers) SetF(v Register) {
	r.f = v & 0xF0
}

// Pair identifies one of the 16-bit register pairs, including SP.
type Pair uint8

const (
	PairBC Pair = iota
	PairDE
	PairHL
	PairSP
	PairAF
)

var pairNames = [...]string{"BC", "DE", "HL", "SP", "AF"}

func (p Pair) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return fmt.Sprintf("Pair(%d)", p)
}

// Pair returns the value of the given register pair.
func (c *CPU) Pair(p Pair) uint16 {
	switch p {
	case PairBC:
		return c.BC.Uint16()
	case PairDE:
		return c.DE.Uint16()
	case PairHL:
		return c.HL.Uint16()
	case PairSP:
		return c.SP
	case PairAF:
		return c.AF.Uint16()
	}
	panic(fmt.Sprintf("invalid register pair: %d", p))
}

// SetPair sets the value of the given register pair. Writing AF
// discards the lower nibble of F.
func (c *CPU) SetPair(p Pair, v uint16) {
	switch p {
	case PairBC:
		c.BC.SetUint16(v)
	case PairDE:
		c.DE.SetUint16(v)
	case PairHL:
		c.HL.SetUint16(v)
	case PairSP:
		c.SP = v
	case PairAF:
		c.AF.SetUint16(v)
	default:
		panic(fmt.Sprintf("invalid register pair: %d", p))
	}
}

package cpu

import "fmt"

// Location is an 8-bit operand: either one of the registers, or the
// byte in memory addressed by HL. The values match the 3-bit register
// field used throughout the opcode encoding.
type Location uint8

const (
	LocationB Location = iota
	LocationC
	LocationD
	LocationE
	LocationH
	LocationL
	LocationHL
	LocationA
)

var locationNames = [...]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func (l Location) String() string {
	if int(l) < len(locationNames) {
		return locationNames[l]
	}
	return fmt.Sprintf("Location(%d)", l)
}

// load reads the value of the given Location.
func (c *CPU) load(l Location) uint8 {
	switch l {
	case LocationB:
		return c.B
	case LocationC:
		return c.C
	case LocationD:
		return c.D
	case LocationE:
		return c.E
	case LocationH:
		return c.H
	case LocationL:
		return c.L
	case LocationHL:
		return c.readByte(c.HL.Uint16())
	case LocationA:
		return c.A
	}
	panic(fmt.Sprintf("invalid location: %d", l))
}

// store writes the value to the given Location.
func (c *CPU) store(l Location, v uint8) {
	switch l {
	case LocationB:
		c.B = v
	case LocationC:
		c.C = v
	case LocationD:
		c.D = v
	case LocationE:
		c.E = v
	case LocationH:
		c.H = v
	case LocationL:
		c.L = v
	case LocationHL:
		c.writeByte(c.HL.Uint16(), v)
	case LocationA:
		c.A = v
	default:
		panic(fmt.Sprintf("invalid location: %d", l))
	}
}

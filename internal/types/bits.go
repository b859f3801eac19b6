package types

// Single bit masks for the I/O registers. Bit0 to Bit4 select the
// interrupt sources in IF and IE, Bit7 is the transfer flag of SC.
const (
	Bit0 uint8 = 0x01
	Bit1 uint8 = 0x02
	Bit2 uint8 = 0x04
	Bit3 uint8 = 0x08
	Bit4 uint8 = 0x10
	Bit7 uint8 = 0x80
)

package types

// Hardware register addresses that are mapped by the bus.
const (
	// SB is the serial transfer data register.
	SB uint16 = 0xFF01
	// SC is the serial transfer control register.
	SC uint16 = 0xFF02
	// IF is the interrupt flag register.
	IF uint16 = 0xFF0F
	// BDIS is written to unmap the boot ROM.
	BDIS uint16 = 0xFF50
	// IE is the interrupt enable register.
	IE uint16 = 0xFFFF
)

// Address represents a region of memory that can be read from or
// written to. The bus maps every address in the 64 KiB address space
// to one of these.
type Address struct {
	// Read is a function that is called when the CPU reads from
	// the address.
	Read func(address uint16) uint8
	// Write is a function that is called when the CPU writes to
	// the address.
	Write func(address uint16, value uint8)
}

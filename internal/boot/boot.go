// Package boot provides a boot ROM implementation. Whilst this package is
// not required to run a program, it can be used to run the boot process
// before the program starts.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

const (
	// DMGSize is the size of the DMG/MGB/SGB boot ROMs.
	DMGSize = 256
	// CGBSize is the size of the CGB boot ROM.
	CGBSize = 2304
)

// ROM represents a boot ROM. At power on, the boot ROM is mapped to
// memory addresses 0x0000 - 0x00FF (and 0x0200 - 0x08FF for the CGB).
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// by writing to the types.BDIS register, which maps the program over the
// boot ROM and prevents it from being executed again.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
}

// LoadBootROM loads a boot ROM into a new ROM struct. The length must be
// valid for either DMG/MGB/SGB (256 bytes) or CGB (2304 bytes).
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != DMGSize && len(b) != CGBSize {
		return nil, fmt.Errorf("boot: invalid boot rom length: %d", len(b))
	}

	bootChecksum := md5.Sum(b)

	return &ROM{
		raw:      b,
		checksum: hex.EncodeToString(bootChecksum[:]),
	}, nil
}

// Contains returns true if the given address is mapped to the boot ROM.
func (b *ROM) Contains(addr uint16) bool {
	if addr < 0x100 {
		return true
	}
	return len(b.raw) == CGBSize && addr >= 0x200 && addr < 0x900
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

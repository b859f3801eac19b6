package boot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBootROM(t *testing.T) {
	_, err := LoadBootROM(make([]byte, 100))
	assert.Error(t, err)

	raw := make([]byte, DMGSize)
	raw[0x10] = 0x31
	rom, err := LoadBootROM(raw)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x31), rom.Read(0x10))
	assert.Len(t, rom.Checksum(), 32)
	assert.True(t, rom.Contains(0x00FF))
	assert.False(t, rom.Contains(0x0100))
	assert.False(t, rom.Contains(0x0200), "DMG boot roms do not map the upper region")

	cgb, err := LoadBootROM(make([]byte, CGBSize))
	require.NoError(t, err)
	assert.True(t, cgb.Contains(0x0200))
	assert.False(t, cgb.Contains(0x0150))

	var none *ROM
	assert.Empty(t, none.Checksum())
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProgram writes code at the entry point 0x100 of a new ROM file.
func writeProgram(t *testing.T, name string, code ...uint8) string {
	t.Helper()
	rom := make([]byte, 0x100, 0x100+len(code))
	rom = append(rom, code...)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, rom, 0o644))
	return path
}

var serial = []uint8{
	0x3E, 0x41, // LD A, 'A'
	0xE0, 0x01, // LDH (SB), A
	0x3E, 0x81, // LD A, 0x81
	0xE0, 0x02, // LDH (SC), A
	0x18, 0xFE, // JR -2
}

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestRun_Serial(t *testing.T) {
	out, err := runArgs(t, "-rom", writeProgram(t, "serial.gb", serial...), "-cycles", "2000")
	require.NoError(t, err)
	assert.Equal(t, "A", out)
}

func TestRun_Breakpoint(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		rom := writeProgram(t, "pass.gb",
			0x06, 3, 0x0E, 5, 0x16, 8, 0x1E, 13, 0x26, 21, 0x2E, 34,
			0x40, // LD B, B
		)
		out, err := runArgs(t, "-rom", rom, "-debug")
		require.NoError(t, err)
		assert.Contains(t, out, "test passed")
	})
	t.Run("failed", func(t *testing.T) {
		rom := writeProgram(t, "fail.gb", 0x06, 0x42, 0x40)
		_, err := runArgs(t, "-rom", rom, "-debug")
		assert.EqualError(t, err, "test failed")
	})
}

func TestRun_UndefinedOpcode(t *testing.T) {
	_, err := runArgs(t, "-rom", writeProgram(t, "bad.gb", 0x00, 0xD3))
	assert.ErrorContains(t, err, "undefined opcode 0xD3 at 0x0101")
}

func TestRun_TraceCompare(t *testing.T) {
	rom := writeProgram(t, "serial.gb", serial...)
	ref := filepath.Join(t.TempDir(), "ref.log.br")

	out1, err := runArgs(t, "-rom", rom, "-cycles", "200", "-trace", ref, "-disasm", "-hash")
	require.NoError(t, err)

	// running past the end of the reference trace ends the comparison
	_, err = runArgs(t, "-rom", rom, "-cycles", "400", "-compare", ref)
	require.NoError(t, err)

	// a different entry point diverges on the first instruction
	_, err = runArgs(t, "-rom", rom, "-cycles", "200", "-compare", ref, "-pc", "0x102")
	assert.ErrorContains(t, err, "mismatch at line 1")

	out2, err := runArgs(t, "-rom", rom, "-cycles", "200", "-hash")
	require.NoError(t, err)
	assert.Equal(t, out1, out2, "identical runs have identical digests")
	assert.True(t, strings.HasPrefix(out1, "trace:"))
}

func TestRun_Profile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.png")
	_, err := runArgs(t, "-rom", writeProgram(t, "serial.gb", serial...), "-cycles", "200", "-profile", path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRun_Errors(t *testing.T) {
	rom := writeProgram(t, "serial.gb", serial...)

	_, err := runArgs(t)
	assert.EqualError(t, err, "no rom file given")

	_, err = runArgs(t, "-rom", filepath.Join(t.TempDir(), "missing.gb"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = runArgs(t, "-rom", rom, "-model", "nes")
	assert.EqualError(t, err, `unknown model "nes"`)

	_, err = runArgs(t, "-rom", rom, "-pc", "0x10000")
	assert.ErrorContains(t, err, "invalid pc")

	_, err = runArgs(t, "-rom", rom, "-boot", rom)
	assert.Error(t, err, "boot roms must be 256 or 2304 bytes")
}

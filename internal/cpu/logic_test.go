package cpu

import "testing"

func TestInstruction_Logic(t *testing.T) {
	// 0xA0 - AND B
	testInstruction(t, "AND B", 0xA0, func(t *testing.T, b *testBus) {
		cpu.A = 0x5A
		cpu.B = 0x3F
		cpu.SetF(0x10)
		step(t, b)
		if cpu.A != 0x1A {
			t.Errorf("Expected A to be 0x1A, got 0x%02x", cpu.A)
		}
		expectFlags(t, false, false, true, false)
	})
	// 0xE6 - AND d8
	testInstruction(t, "AND d8", 0xE6, func(t *testing.T, b *testBus) {
		cpu.A = 0x5A
		b.mem[0x0101] = 0x00
		step(t, b)
		expectFlags(t, true, false, true, false)
	})
	// 0xAF - XOR A
	testInstruction(t, "XOR A", 0xAF, func(t *testing.T, b *testBus) {
		cpu.A = 0xFF
		cpu.SetF(0x70)
		step(t, b)
		if cpu.A != 0x00 {
			t.Errorf("Expected A to be 0x00, got 0x%02x", cpu.A)
		}
		expectFlags(t, true, false, false, false)
	})
	// 0xAE - XOR (HL)
	testInstruction(t, "XOR (HL)", 0xAE, func(t *testing.T, b *testBus) {
		cpu.A = 0xFF
		cpu.HL.SetUint16(0xC000)
		b.mem[0xC000] = 0x8A
		step(t, b)
		if cpu.A != 0x75 {
			t.Errorf("Expected A to be 0x75, got 0x%02x", cpu.A)
		}
	})
	// 0xB1 - OR C
	testInstruction(t, "OR C", 0xB1, func(t *testing.T, b *testBus) {
		cpu.A = 0x5A
		cpu.C = 0x03
		cpu.SetF(0x70)
		step(t, b)
		if cpu.A != 0x5B {
			t.Errorf("Expected A to be 0x5B, got 0x%02x", cpu.A)
		}
		expectFlags(t, false, false, false, false)
	})
	// 0x2F - CPL
	testInstruction(t, "CPL", 0x2F, func(t *testing.T, b *testBus) {
		cpu.A = 0x35
		cpu.SetF(0x90)
		step(t, b)
		if cpu.A != 0xCA {
			t.Errorf("Expected A to be 0xCA, got 0x%02x", cpu.A)
		}
		expectFlags(t, true, true, true, true)
	})
	// 0x37 - SCF
	testInstruction(t, "SCF", 0x37, func(t *testing.T, b *testBus) {
		cpu.SetF(0xE0)
		step(t, b)
		expectFlags(t, true, false, false, true)
	})
	// 0x3F - CCF
	testInstruction(t, "CCF", 0x3F, func(t *testing.T, b *testBus) {
		cpu.SetF(0x70)
		step(t, b)
		expectFlags(t, false, false, false, false)
		cpu.PC = 0x0100
		step(t, b)
		expectFlags(t, false, false, false, true)
	})
}

package machine

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/trace"
)

// program returns a ROM with the given code placed at 0x100.
func program(code ...byte) []byte {
	rom := make([]byte, 0x100+len(code))
	copy(rom[0x100:], code)
	return rom
}

func step(t *testing.T, m *Machine) uint8 {
	t.Helper()
	cycles, err := m.Step()
	require.NoError(t, err)
	return cycles
}

func TestMachine_NoBios(t *testing.T) {
	m := New(nil, NoBios())
	assert.Equal(t, uint16(0x0100), m.CPU.PC)
	assert.Equal(t, uint16(0xFFFE), m.CPU.SP)
	assert.Equal(t, uint16(0x01B0), m.CPU.AF.Uint16())
	assert.Equal(t, uint16(0x0013), m.CPU.BC.Uint16())
	assert.Equal(t, uint16(0x00D8), m.CPU.DE.Uint16())
	assert.Equal(t, uint16(0x014D), m.CPU.HL.Uint16())
	assert.Equal(t, uint8(0xE1), m.MMU.Get(types.IF))

	m = New(nil, WithEntryPoint(0xC000), AsModel(types.CGBABC), NoBios())
	assert.Equal(t, uint16(0xC000), m.CPU.PC, "entry point takes precedence")
	assert.Equal(t, uint8(0x11), m.CPU.A)
}

func TestMachine_DelayedEI(t *testing.T) {
	m := New(program(0xFB, 0x00, 0x00), NoBios())
	m.MMU.Set(types.IE, interrupts.VBlankFlag)

	step(t, m)
	assert.False(t, m.CPU.IME, "EI must not take effect immediately")
	assert.Equal(t, uint16(0x0101), m.CPU.PC)

	cycles := step(t, m)
	assert.Equal(t, uint8(6), cycles, "NOP followed by a 5 cycle dispatch")
	assert.Equal(t, uint16(0x0040), m.CPU.PC)
	assert.False(t, m.CPU.IME)
	assert.Equal(t, uint16(0xFFFC), m.CPU.SP)
	assert.Equal(t, uint8(0x01), m.MMU.Get(0xFFFD))
	assert.Equal(t, uint8(0x02), m.MMU.Get(0xFFFC))
	assert.Zero(t, m.Interrupts.Flag&interrupts.VBlankFlag, "the serviced flag is cleared")
}

func TestMachine_EIDI(t *testing.T) {
	m := New(program(0xFB, 0xF3, 0x00), NoBios())
	m.MMU.Set(types.IE, interrupts.VBlankFlag)

	for i := 0; i < 3; i++ {
		step(t, m)
	}
	assert.False(t, m.CPU.IME)
	assert.Equal(t, uint16(0x0103), m.CPU.PC, "no interrupt is ever serviced")
}

func TestMachine_Halt(t *testing.T) {
	// HALT, INC A
	m := New(program(0x76, 0x3C), NoBios())
	m.MMU.Set(types.IF, 0)
	m.MMU.Set(types.IE, interrupts.TimerFlag)
	require.NoError(t, m.ScheduleInterrupt(interrupts.TimerFlag, 10))

	step(t, m)
	require.True(t, m.CPU.Halted)

	idle := 0
	for m.CPU.Halted {
		assert.Equal(t, uint8(1), step(t, m))
		idle++
		require.Less(t, idle, 20, "CPU never woke up")
	}
	assert.Equal(t, uint16(0x0101), m.CPU.PC, "IME is off, so execution resumes after HALT")

	a := m.CPU.A
	step(t, m)
	assert.Equal(t, a+1, m.CPU.A)
	assert.NotZero(t, m.Interrupts.Flag&interrupts.TimerFlag, "the interrupt is left pending")
}

func TestMachine_HaltService(t *testing.T) {
	// EI, HALT
	m := New(program(0xFB, 0x76), NoBios())
	m.MMU.Set(types.IF, 0)
	m.MMU.Set(types.IE, interrupts.SerialFlag)

	step(t, m)
	step(t, m)
	require.True(t, m.CPU.Halted)
	require.True(t, m.CPU.IME)

	m.RequestInterrupt(interrupts.SerialFlag)
	step(t, m)
	assert.False(t, m.CPU.Halted)
	assert.Equal(t, uint16(0x0058), m.CPU.PC)
	assert.Equal(t, uint8(0x02), m.MMU.Get(m.CPU.SP), "returns to the instruction after HALT")
}

func TestMachine_HaltInterruptDuringFetch(t *testing.T) {
	// EI, NOP, HALT, INC A
	m := New(program(0xFB, 0x00, 0x76, 0x3C), NoBios())
	m.MMU.Set(types.IF, 0)
	m.MMU.Set(types.IE, interrupts.TimerFlag)
	// requested on the cycle HALT is fetched
	require.NoError(t, m.ScheduleInterrupt(interrupts.TimerFlag, 3))

	step(t, m)
	step(t, m)
	step(t, m)
	assert.False(t, m.CPU.Halted)
	assert.Equal(t, uint16(0x0050), m.CPU.PC)
	assert.Equal(t, uint8(0x03), m.MMU.Get(m.CPU.SP), "returns to the instruction after HALT")
	assert.Equal(t, uint8(0x01), m.MMU.Get(m.CPU.SP+1))

	// the handler runs
	step(t, m)
	assert.Equal(t, uint16(0x0051), m.CPU.PC)
}

func TestMachine_HaltBugService(t *testing.T) {
	// EI, HALT, INC A with VBlank already pending
	m := New(program(0xFB, 0x76, 0x3C), NoBios())
	m.MMU.Set(types.IF, interrupts.VBlankFlag)
	m.MMU.Set(types.IE, interrupts.VBlankFlag)

	step(t, m)
	step(t, m)
	assert.False(t, m.CPU.Halted)
	assert.Equal(t, uint16(0x0040), m.CPU.PC)
	assert.Equal(t, uint8(0x01), m.MMU.Get(m.CPU.SP), "returns to HALT")
	assert.Equal(t, uint8(0x01), m.MMU.Get(m.CPU.SP+1))

	// the handler's first byte is consumed once
	for i := 0; i < 10; i++ {
		step(t, m)
	}
	assert.Equal(t, uint16(0x004A), m.CPU.PC)
}

func TestMachine_HaltBug(t *testing.T) {
	// HALT, INC A, NOP with an interrupt pending and IME off
	m := New(program(0x76, 0x3C, 0x00), NoBios())
	m.MMU.Set(types.IE, interrupts.VBlankFlag)
	a := m.CPU.A

	step(t, m)
	assert.False(t, m.CPU.Halted)
	step(t, m)
	step(t, m)
	assert.Equal(t, a+2, m.CPU.A, "the byte after HALT is executed twice")
	assert.Equal(t, uint16(0x0102), m.CPU.PC)
}

func TestMachine_Stop(t *testing.T) {
	m := New(program(0x10, 0x00, 0x3C), NoBios())
	m.MMU.Set(types.IF, 0)
	m.MMU.Set(types.IE, interrupts.JoypadFlag)

	step(t, m)
	require.True(t, m.CPU.Stopped)
	step(t, m)
	assert.True(t, m.CPU.Stopped)

	m.RequestInterrupt(interrupts.JoypadFlag)
	step(t, m)
	assert.False(t, m.CPU.Stopped)
	assert.Equal(t, uint16(0x0102), m.CPU.PC)
}

func TestMachine_UndefinedOpcode(t *testing.T) {
	m := New(program(0x00, 0xD3), NoBios())

	err := m.Run(context.Background(), 100)
	require.ErrorIs(t, err, cpu.ErrUndefinedOpcode)

	var decodeErr *cpu.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, uint16(0x0101), decodeErr.PC)
}

func TestMachine_Breakpoint(t *testing.T) {
	m := New(program(0x00, 0x40, 0x00), NoBios(), Debug())
	assert.ErrorIs(t, m.Run(context.Background(), 100), ErrBreakpoint)
	assert.Equal(t, uint16(0x0102), m.CPU.PC)
}

func TestMachine_Cancel(t *testing.T) {
	// JR -2
	m := New(program(0x18, 0xFE), NoBios())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Run(ctx, 1<<20), context.Canceled)
}

func TestMachine_Run(t *testing.T) {
	m := New(program(0x18, 0xFE), NoBios())
	require.NoError(t, m.Run(context.Background(), 1000))
	assert.GreaterOrEqual(t, m.Cycles(), uint64(1000))
	assert.Less(t, m.Cycles(), uint64(1003))
}

// serialProgram writes "A" to the serial port and spins.
var serialProgram = program(
	0x3E, 0x41, // LD A, 'A'
	0xE0, 0x01, // LDH (SB), A
	0x3E, 0x81, // LD A, 0x81
	0xE0, 0x02, // LDH (SC), A
	0x18, 0xFE, // JR -2
)

func TestMachine_Serial(t *testing.T) {
	var out bytes.Buffer
	m := New(serialProgram, NoBios(), WithSerialWriter(&out))

	require.NoError(t, m.Run(context.Background(), 2000))
	assert.Equal(t, "A", out.String())
}

func TestMachine_SerialDebugger(t *testing.T) {
	var output string
	rom := program(
		0x21, 0x00, 0x02, // LD HL, 0x0200
		0x2A,       // LD A, (HL+)
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0xF0, 0x02, // LDH A, (SC)
		0x87,       // ADD A, A
		0x38, 0xFB, // JR C, -5
		0x18, 0xF2, // JR -14
	)
	rom = append(rom, make([]byte, 0x200-len(rom))...)
	rom = append(rom, "Passed"...)

	m := New(rom, NoBios(), SerialDebugger(&output))
	require.ErrorIs(t, m.Run(context.Background(), 1<<20), ErrBreakpoint)
	assert.Equal(t, "Passed", output)
}

func TestMachine_ScheduleInterrupt(t *testing.T) {
	m := New(nil)
	assert.Error(t, m.ScheduleInterrupt(0x03, 4))
	assert.Error(t, m.ScheduleInterrupt(0x20, 4))

	require.NoError(t, m.ScheduleInterrupt(interrupts.LCDFlag, 2))
	m.MMU.Tick()
	assert.Zero(t, m.Interrupts.Flag)
	m.MMU.Tick()
	assert.Equal(t, uint8(interrupts.LCDFlag), m.Interrupts.Flag)
}

func TestMachine_Passed(t *testing.T) {
	// LD B, 3 ... LD L, 34
	m := New(program(0x06, 3, 0x0E, 5, 0x16, 8, 0x1E, 13, 0x26, 21, 0x2E, 34), NoBios())
	for i := 0; i < 6; i++ {
		step(t, m)
	}
	assert.True(t, m.Passed())
}

type collector struct {
	entries []trace.Entry
}

func (c *collector) Trace(e trace.Entry) error {
	c.entries = append(c.entries, e)
	return nil
}

func TestMachine_Tracer(t *testing.T) {
	c := &collector{}
	m := New(serialProgram, NoBios(), WithTracer(c))
	for i := 0; i < 3; i++ {
		step(t, m)
	}

	require.Len(t, c.entries, 3)
	first := c.entries[0]
	assert.Equal(t, uint16(0x0100), first.PC)
	assert.Equal(t, uint8(0x01), first.A)
	assert.Equal(t, uint8(0xB0), first.F)
	assert.Equal(t, [4]uint8{0x3E, 0x41, 0xE0, 0x01}, first.PCMem)
	assert.Equal(t, "LD A, $41", first.Instruction)
	assert.Equal(t, "LDH ($FF01), A", c.entries[1].Instruction)
	assert.Equal(t, uint64(2), c.entries[1].Cycle)
}

// Package machine provides a host for the CPU. It wires the CPU to the
// memory bus, services interrupts, and implements the delayed interrupt
// enable and the halt/stop wake up the CPU relies on its host for.
package machine

import (
	"context"
	"errors"
	"fmt"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/scheduler"
	"github.com/thelolagemann/sm83/internal/serial"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/trace"
)

// ErrBreakpoint is returned by Run when the debug breakpoint is hit.
var ErrBreakpoint = errors.New("machine: breakpoint")

// Tracer is called with the state of the machine before every
// instruction is executed.
type Tracer = trace.Tracer

// cancelCheckInterval is the number of steps between checks of the
// context passed to Run.
const cancelCheckInterval = 4096

// Machine contains all the components the CPU needs to run a program.
type Machine struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Service
	Scheduler  *scheduler.Scheduler
	Serial     *serial.Controller

	log.Logger

	tracer     Tracer
	model      types.Model
	noBios     bool
	entryPoint *uint16
}

// New returns a new Machine with the program loaded at address 0.
func New(program []byte, opts ...Opt) *Machine {
	s := scheduler.NewScheduler()
	irq := interrupts.NewService()
	sc := serial.NewController(s, irq)
	memBus := mmu.NewMMU(s, irq, sc)
	memBus.Load(program)

	m := &Machine{
		CPU:        cpu.New(),
		MMU:        memBus,
		Interrupts: irq,
		Scheduler:  s,
		Serial:     sc,
		Logger:     log.NewNullLogger(),
	}

	for i := scheduler.InterruptVBlank; i <= scheduler.InterruptJoypad; i++ {
		flag := uint8(1) << i
		s.RegisterEvent(i, func() {
			irq.Request(flag)
		})
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.noBios {
		m.skipBoot()
	}
	if m.entryPoint != nil {
		m.CPU.PC = *m.entryPoint
	}

	return m
}

// skipBoot sets the CPU to the state the boot ROM leaves it in.
func (m *Machine) skipBoot() {
	regs := types.ModelRegisters[m.model]
	m.CPU.A = regs[0]
	m.CPU.SetF(regs[1])
	m.CPU.B = regs[2]
	m.CPU.C = regs[3]
	m.CPU.D = regs[4]
	m.CPU.E = regs[5]
	m.CPU.H = regs[6]
	m.CPU.L = regs[7]
	m.CPU.PC = 0x0100
	m.CPU.SP = 0xFFFE
	m.Interrupts.WriteFlag(types.PostBootIF)
	m.MMU.Set(types.BDIS, 0x01)
}

// Step executes a single instruction, or a single idle M-cycle while the
// CPU is halted or stopped, and then services a pending interrupt. It
// returns the number of M-cycles spent.
func (m *Machine) Step() (uint8, error) {
	start := m.MMU.Cycles()

	if m.CPU.Halted || m.CPU.Stopped {
		m.MMU.Tick()
		if m.Interrupts.HasInterrupts() {
			m.CPU.Halted = false
			m.CPU.Stopped = false
		}
	} else {
		if m.tracer != nil {
			if err := m.tracer.Trace(m.entry()); err != nil {
				return 0, fmt.Errorf("machine: trace: %w", err)
			}
		}

		// EI takes effect once the instruction after it has completed
		queued := m.CPU.IMEQueued
		pc := m.CPU.PC
		if _, err := m.CPU.Step(m.MMU); err != nil {
			m.Errorf("execution stopped at 0x%04X: %v", pc, err)
			return uint8(m.MMU.Cycles() - start), err
		}
		if queued && m.CPU.IMEQueued {
			m.CPU.IME = true
			m.CPU.IMEQueued = false
		}
	}

	if m.CPU.IME && m.Interrupts.HasInterrupts() {
		m.serviceInterrupt()
	}

	return uint8(m.MMU.Cycles() - start), nil
}

// serviceInterrupt dispatches the highest priority pending interrupt,
// taking 5 M-cycles.
func (m *Machine) serviceInterrupt() {
	m.CPU.Interrupted()
	m.CPU.IME = false
	m.MMU.Tick()
	m.MMU.Tick()

	pc := m.CPU.PC
	m.CPU.SP--
	m.MMU.Write(m.CPU.SP, uint8(pc>>8))

	// the vector is resolved after the high byte has been pushed, which
	// may have overwritten IE. If nothing is left pending, PC becomes 0
	vector := m.Interrupts.Vector()

	m.CPU.SP--
	m.MMU.Write(m.CPU.SP, uint8(pc))

	m.CPU.PC = vector
	m.MMU.Tick()
	m.Debugf("serviced interrupt 0x%02X from 0x%04X", vector, pc)
}

// Run steps the machine until at least the given number of M-cycles have
// elapsed, the context is cancelled, the debug breakpoint is hit, or the
// CPU fails to decode an instruction.
func (m *Machine) Run(ctx context.Context, cycles uint64) error {
	start := m.MMU.Cycles()
	for steps := 0; m.MMU.Cycles()-start < cycles; steps++ {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if _, err := m.Step(); err != nil {
			return err
		}

		if m.CPU.DebugBreakpoint {
			m.CPU.DebugBreakpoint = false
			return ErrBreakpoint
		}
	}

	return nil
}

// RequestInterrupt requests the interrupt with the given flag.
func (m *Machine) RequestInterrupt(flag uint8) {
	m.Interrupts.Request(flag)
}

// ScheduleInterrupt requests the interrupt with the given flag once the
// given number of M-cycles have elapsed.
func (m *Machine) ScheduleInterrupt(flag uint8, cycles uint64) error {
	for i := scheduler.InterruptVBlank; i <= scheduler.InterruptJoypad; i++ {
		if flag == 1<<i {
			m.Scheduler.ScheduleEvent(i, cycles*cpu.TicksPerCycle)
			return nil
		}
	}
	return fmt.Errorf("machine: invalid interrupt flag 0x%02X", flag)
}

// Passed reports whether the registers hold the Fibonacci sequence
// 3/5/8/13/21/34 in B/C/D/E/H/L, which is how mooneye test ROMs report
// success.
func (m *Machine) Passed() bool {
	c := m.CPU
	return c.B == 3 && c.C == 5 && c.D == 8 && c.E == 13 && c.H == 21 && c.L == 34
}

// Cycles returns the number of M-cycles the machine has run for.
func (m *Machine) Cycles() uint64 {
	return m.MMU.Cycles()
}

// entry returns the trace entry for the instruction at PC.
func (m *Machine) entry() trace.Entry {
	c := m.CPU
	e := trace.Entry{
		Cycle: m.MMU.Cycles(),
		PC:    c.PC,
		SP:    c.SP,
		A:     c.A,
		F:     c.F(),
		B:     c.B,
		C:     c.C,
		D:     c.D,
		E:     c.E,
		H:     c.H,
		L:     c.L,
		IME:   c.IME,
	}
	for i := range e.PCMem {
		e.PCMem[i] = m.MMU.Get(c.PC + uint16(i))
	}
	e.Instruction, _ = cpu.Disassemble(c.PC, m.MMU.Get)

	return e
}

// Package mmu provides the memory bus the CPU is driven against. It maps
// the 64 KiB address space to flat memory, the boot ROM and the few
// hardware registers the host needs, and advances the clock on every
// access.
package mmu

import (
	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/scheduler"
	"github.com/thelolagemann/sm83/internal/serial"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	// ROMSize is the size of the region programs are loaded into. Writes
	// to it are ignored, as there is no cartridge controller behind it.
	ROMSize = 0x8000
	// ticksPerAccess is the number of T-cycles each M-cycle advances
	// the scheduler by.
	ticksPerAccess = 4
)

// MMU is the memory bus. It implements cpu.Bus, and the optional
// cpu.InterruptPender capability.
type MMU struct {
	// 64kB address space
	raw [65536]*types.Address
	mem [65536]uint8

	// 0x0000 - 0x00FF/0x0900 - BOOT ROM (256B/2304B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0xFF01 - 0xFF02 - serial port
	Serial *serial.Controller
	// 0xFF0F & 0xFFFF - interrupt flag and enable registers
	irq *interrupts.Service

	s      *scheduler.Scheduler
	cycles uint64

	Log log.Logger
}

// NewMMU returns a new MMU.
func NewMMU(s *scheduler.Scheduler, irq *interrupts.Service, sc *serial.Controller) *MMU {
	m := &MMU{
		Serial: sc,
		irq:    irq,
		s:      s,
		Log:    log.NewNullLogger(),
	}
	m.init()

	return m
}

func (m *MMU) init() {
	addresses := []types.Address{
		{Read: m.readROM, Write: m.writeROM},
		{Read: m.readRAM, Write: m.writeRAM},
		{Read: m.Serial.Read, Write: m.Serial.Write},
		{Read: func(uint16) uint8 { return m.irq.ReadFlag() }, Write: func(_ uint16, v uint8) { m.irq.WriteFlag(v) }},
		{Read: func(uint16) uint8 { return m.irq.Enable }, Write: func(_ uint16, v uint8) { m.irq.Enable = v }},
		{Read: func(uint16) uint8 { return 0xFF }, Write: func(uint16, uint8) {
			// it's assumed any write to this register will disable the boot rom
			if m.bootROM != nil && !m.bootROMDone {
				m.Log.Debugf("boot rom unmapped at cycle %d", m.cycles)
			}
			m.bootROMDone = true
		}},
	}

	// 0x0000 - 0x7FFF - ROM (32kB)
	for i := 0x0000; i < ROMSize; i++ {
		m.raw[i] = &addresses[0]
	}

	// 0x8000 - 0xFFFF - RAM and I/O
	for i := ROMSize; i < 0x10000; i++ {
		m.raw[i] = &addresses[1]
	}

	m.raw[types.SB] = &addresses[2]
	m.raw[types.SC] = &addresses[2]
	m.raw[types.IF] = &addresses[3]
	m.raw[types.IE] = &addresses[4]
	m.raw[types.BDIS] = &addresses[5]
}

// Load copies the program to memory, starting at address 0. Anything
// beyond the ROM region is dropped.
func (m *MMU) Load(program []byte) {
	if len(program) > ROMSize {
		m.Log.Errorf("program is %d bytes, only the first %d are mapped", len(program), ROMSize)
		program = program[:ROMSize]
	}
	copy(m.mem[:], program)
}

// SetBootROM maps the boot ROM over the program, until it is unmapped by
// a write to types.BDIS.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = false
}

func (m *MMU) readROM(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if m.bootROM != nil && !m.bootROMDone && m.bootROM.Contains(address) {
		return m.bootROM.Read(address)
	}

	return m.mem[address]
}

func (m *MMU) writeROM(address uint16, value uint8) {
	m.Log.Debugf("ignored write of 0x%02X to ROM at 0x%04X", value, address)
}

func (m *MMU) readRAM(address uint16) uint8 {
	return m.mem[address]
}

func (m *MMU) writeRAM(address uint16, value uint8) {
	m.mem[address] = value
}

// tick advances the clock by a single M-cycle.
func (m *MMU) tick() {
	m.cycles++
	m.s.Tick(ticksPerAccess)
}

// Read returns the value at the given address, spending a single M-cycle.
func (m *MMU) Read(address uint16) uint8 {
	m.tick()
	return m.raw[address].Read(address)
}

// Write writes the value to the given address, spending a single M-cycle.
func (m *MMU) Write(address uint16, value uint8) {
	m.tick()
	m.raw[address].Write(address, value)
}

// Tick spends a single M-cycle without accessing memory.
func (m *MMU) Tick() {
	m.tick()
}

// Get returns the value at the given address without advancing the clock.
func (m *MMU) Get(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Set writes the value to the given address without advancing the clock.
// Unlike Write, Set can modify the ROM region.
func (m *MMU) Set(address uint16, value uint8) {
	if address < ROMSize {
		m.mem[address] = value
		return
	}
	m.raw[address].Write(address, value)
}

// Dump returns the contents of the address space as seen by the CPU.
func (m *MMU) Dump() []byte {
	b := make([]byte, 0x10000)
	for i := range b {
		b[i] = m.Get(uint16(i))
	}
	return b
}

// Cycles returns the number of M-cycles spent on the bus.
func (m *MMU) Cycles() uint64 {
	return m.cycles
}

// InterruptPending returns true if an interrupt is both requested and
// enabled.
func (m *MMU) InterruptPending() bool {
	return m.irq.HasInterrupts()
}

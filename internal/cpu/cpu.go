// Package cpu implements the instruction execution core of the Sharp SM83,
// the CPU found in the Game Boy. The core fetches, decodes and executes one
// instruction per Step, driving the Bus for every memory access and for
// every internal machine cycle in the order the hardware performs them.
package cpu

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304
	// TicksPerCycle is the number of T-cycles in a single machine cycle.
	TicksPerCycle = 4
)

// Bus is the interface the CPU uses to access memory and advance the
// clock. Each call to Read and Write takes exactly one machine cycle,
// and Tick advances the clock by one machine cycle without any data
// transfer.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Tick()
}

// InterruptPender is an optional capability of a Bus that reports
// whether an interrupt has been both requested and enabled. It is only
// consulted by HALT, to reproduce the HALT bug.
type InterruptPender interface {
	InterruptPending() bool
}

// Extended executes a single CB-prefixed instruction. The 0xCB lead
// byte has already been fetched when Execute is called; the implementation
// fetches the second opcode byte itself, through the CPU.
type Extended interface {
	Execute(c *CPU)
}

// Opt is a function that modifies a CPU instance.
type Opt func(c *CPU)

// WithExtended replaces the built-in CB-prefixed instruction set.
func WithExtended(ext Extended) Opt {
	return func(c *CPU) {
		c.ext = ext
	}
}

// CPU represents the SM83 CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable flag.
	IME bool
	// IMEQueued is set by EI. The host moves it into IME once the
	// instruction following EI has completed.
	IMEQueued bool
	// Halted is set by HALT, and must only be cleared by the host
	// once an interrupt is pending.
	Halted bool
	// Stopped is set by STOP, and like Halted is cleared by the host.
	Stopped bool

	// Debug enables the LD B, B software breakpoint.
	Debug           bool
	DebugBreakpoint bool

	bus     Bus
	ext     Extended
	cycles  uint8
	haltBug bool
}

// New creates a new CPU. The register pairs are wired to the
// underlying registers, and the built-in CB instruction set is used
// unless another one is provided.
func New(opts ...Opt) *CPU {
	c := &CPU{
		ext: CBSet,
	}
	c.Registers.init()

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Step fetches, decodes and executes exactly one instruction, and returns
// the number of machine cycles it took. An undefined opcode results in a
// *DecodeError, after the cycle spent fetching it.
func (c *CPU) Step(b Bus) (uint8, error) {
	c.bus = b
	c.cycles = 0

	pc := c.PC
	opcode := c.readInstruction()

	instruction := InstructionSet[opcode]
	if instruction.fn == nil {
		return c.cycles, &DecodeError{Opcode: opcode, PC: pc}
	}
	instruction.fn(c)

	return c.cycles, nil
}

// Interrupted must be called by the host when it dispatches an interrupt,
// before PC is pushed. It ends HALT and STOP, and cancels a pending HALT
// bug so that the interrupt returns to the HALT instruction.
func (c *CPU) Interrupted() {
	c.Halted = false
	c.Stopped = false
	if c.haltBug {
		c.haltBug = false
		c.PC--
	}
}

// readInstruction reads the next opcode from memory.
func (c *CPU) readInstruction() uint8 {
	value := c.readByte(c.PC)
	if c.haltBug {
		// the byte after HALT is read twice
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

// readOperand reads the next operand from memory.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the next two operands from memory, low byte first.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	c.cycles++
	return c.bus.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.cycles++
	c.bus.Write(addr, val)
}

// tick spends a machine cycle without accessing memory.
func (c *CPU) tick() {
	c.cycles++
	c.bus.Tick()
}

// Fetch reads the byte at PC and increments PC. It is used by
// Extended implementations to read the second opcode byte.
func (c *CPU) Fetch() uint8 { return c.readOperand() }

// Read reads a byte through the bus, spending one machine cycle.
func (c *CPU) Read(addr uint16) uint8 { return c.readByte(addr) }

// Write writes a byte through the bus, spending one machine cycle.
func (c *CPU) Write(addr uint16, val uint8) { c.writeByte(addr, val) }

// Tick spends one machine cycle without accessing memory.
func (c *CPU) Tick() { c.tick() }

// Load reads the given Location. Reading (HL) spends one machine cycle.
func (c *CPU) Load(l Location) uint8 { return c.load(l) }

// Store writes the given Location. Writing (HL) spends one machine cycle.
func (c *CPU) Store(l Location, v uint8) { c.store(l, v) }

// Package cpu defines the contract the FxT-65 core expects from a 65C02
// CPU implementation without supplying one.
//
// The CPU itself is an external collaborator (spec.md §1, §9): this
// package never decodes an opcode. It exists so internal/clock and
// internal/system can depend on an interface instead of a concrete CPU,
// matching the "no globals, explicit System value" design note in
// spec.md §9 — the original C++ reference instead kept a process-wide
// System* and bridged to a vendored vrEmu6502 core through free
// functions; here the core is injected at construction time.
package cpu

// BusAccess is the subset of the system bus a CPU core needs to fetch
// and execute instructions. internal/bus.Bus satisfies this.
type BusAccess interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, v uint8)
}

// Snapshot is a read-only view of CPU registers for debugging/tests.
// Field set is intentionally minimal and 65C02-shaped (A/X/Y/S/P/PC)
// since that's the only register file spec.md's black box could have.
type Snapshot struct {
	A, X, Y, S uint8
	P          uint8
	PC         uint16
	Cycles     uint64
}

// Core is the contract an injected 65C02 implementation must satisfy.
// Tick executes exactly one CPU cycle's worth of work against bus,
// synchronously performing any bus reads/writes that cycle causes
// (spec.md §5: "Bus side effects triggered by the CPU complete before
// the VIA timer step").
type Core interface {
	Tick(bus BusAccess)
	SetIRQ(asserted bool)
	SetNMI(asserted bool)
	Reset(bus BusAccess)
	SetPC(pc uint16)
	Registers() Snapshot
}

// StubCore is a minimal Core used by this module's own tests (and
// available to hosts that want to drive the bus/peripherals without a
// real 65C02). Each Tick performs a single bus read at ReadAddr and
// discards the result, so tests can step the system clock without
// pulling in instruction-decode logic that belongs to an external core.
type StubCore struct {
	ReadAddr uint16

	irq, nmi bool
	cycles   uint64
	lastRead uint8
}

// NewStubCore returns a StubCore that repeatedly reads readAddr.
func NewStubCore(readAddr uint16) *StubCore {
	return &StubCore{ReadAddr: readAddr}
}

func (c *StubCore) Tick(bus BusAccess) {
	c.lastRead = bus.Read8(c.ReadAddr)
	c.cycles++
}

func (c *StubCore) SetIRQ(asserted bool) { c.irq = asserted }
func (c *StubCore) SetNMI(asserted bool) { c.nmi = asserted }
func (c *StubCore) Reset(bus BusAccess)  { c.cycles = 0 }
func (c *StubCore) SetPC(pc uint16)      {}

func (c *StubCore) Registers() Snapshot {
	return Snapshot{PC: c.ReadAddr, Cycles: c.cycles}
}

// LastRead returns the most recent byte read by Tick, for tests.
func (c *StubCore) LastRead() uint8 { return c.lastRead }

// IRQAsserted and NMIAsserted expose the pin state the StubCore was
// last told to latch, for tests that want to assert the system wired
// the IRQ/NMI lines up correctly.
func (c *StubCore) IRQAsserted() bool { return c.irq }
func (c *StubCore) NMIAsserted() bool { return c.nmi }

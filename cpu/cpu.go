// Package cpu implements the Sharp LR35902 instruction-set architecture:
// the fetch/decode/execute loop, the register file, interrupt dispatch,
// halt handling, a duration-bounded runner, and a bounded execution trace
// with a one-shot breakpoint set for debugger front ends to drive.
package cpu

import (
	"errors"
	"fmt"

	"lr35902/flags"
	"lr35902/inst"
	"lr35902/mask"
	"lr35902/mem"
	"lr35902/register"
)

// ClockRate is the LR35902's fixed oscillator frequency in Hz. The exact
// power-of-two value matters for RunFor's cycle-budget accounting; quoting
// it as "4.19 MHz" loses precision a duration-bounded runner needs.
const ClockRate = 4_194_304

// traceCapacity bounds the execution trace to the last 50 fetched
// instructions.
const traceCapacity = 50

// TraceEntry pairs a fetched instruction with the extended PC (address plus
// ROM bank, per j2gbc's trace format) it was fetched from.
type TraceEntry struct {
	PC          mem.ExtendedAddress
	Instruction inst.Instruction
}

// Sentinel errors the executor can return. Decode/BusRead/BusWrite are the
// sentinels that the errors raised by the decoder and the bus wrap, so
// callers test for them with errors.Is; Breakpoint is not a genuine failure,
// it is the one-shot breakpoint signal surfacing as a run-cycle result.
var (
	ErrDecode     = inst.ErrDecode
	ErrBusRead    = mem.ErrBusRead
	ErrBusWrite   = mem.ErrBusWrite
	ErrBreakpoint = errors.New("cpu: breakpoint hit")
)

// CPU is the fetch/execute state machine. It owns the register file, the
// bus it was constructed with, the cycle counter, the interrupt-master
// flag, the halt/debug-halt flags, a bounded execution trace, and a
// one-shot breakpoint set. Registers may be read and written externally
// through the debugger-facing methods while RunFor is not active.
type CPU struct {
	regs [8]byte // indexed by register.Register8

	pc mem.Address
	sp mem.Address

	bus mem.Bus

	cycle uint64

	ime         bool
	halted      bool
	stopped     bool
	debugHalted bool

	trace       []TraceEntry
	traceHead   int
	breakpoints map[mem.Address]bool

	pendingInterrupts []mem.Interrupt
}

// New constructs a CPU bound to an already-initialized bus, with registers
// set to the documented post-boot-ROM values.
func New(bus mem.Bus) *CPU {
	c := &CPU{
		bus:         bus,
		sp:          0xFFFE,
		pc:          0x0100,
		breakpoints: make(map[mem.Address]bool),
	}
	c.WriteRegister8(register.A, 0x01)
	c.WriteRegister8(register.F, 0xB0)
	c.WriteRegister8(register.B, 0x00)
	c.WriteRegister8(register.C, 0x13)
	c.WriteRegister8(register.D, 0x00)
	c.WriteRegister8(register.E, 0xD8)
	c.WriteRegister8(register.H, 0x01)
	c.WriteRegister8(register.L, 0x4D)
	return c
}

// Cycle reports the current cycle counter.
func (c *CPU) Cycle() uint64 { return c.cycle }

// ReadRegister8 reads one of the eight 8-bit registers.
func (c *CPU) ReadRegister8(r register.Register8) byte {
	return c.regs[r]
}

// WriteRegister8 writes one of the eight 8-bit registers. A write to F
// masks away the low nibble, per the architectural invariant that F's low
// nibble is always zero.
func (c *CPU) WriteRegister8(r register.Register8, v byte) {
	if r == register.F {
		v = flags.FromByte(v).Byte()
	}
	c.regs[r] = v
}

func (c *CPU) flags() flags.Flags {
	return flags.FromByte(c.regs[register.F])
}

func (c *CPU) setFlags(f flags.Flags) {
	c.WriteRegister8(register.F, f.Byte())
}

// ReadRegister16 reads a register-pair view. AF/BC/DE/HL compose their two
// 8-bit registers high-byte first; SP and PC are native 16-bit values.
func (c *CPU) ReadRegister16(r register.Register16) uint16 {
	switch r {
	case register.SP:
		return uint16(c.sp)
	case register.PC:
		return uint16(c.pc)
	default:
		hi, _ := r.Hi()
		lo, _ := r.Lo()
		return mask.Word(c.ReadRegister8(hi), c.ReadRegister8(lo))
	}
}

// WriteRegister16 writes a register-pair view, decomposing high-byte
// first for AF/BC/DE/HL.
func (c *CPU) WriteRegister16(r register.Register16, v uint16) {
	switch r {
	case register.SP:
		c.sp = mem.Address(v)
	case register.PC:
		c.pc = mem.Address(v)
	default:
		hi, _ := r.Hi()
		lo, _ := r.Lo()
		c.WriteRegister8(hi, mask.Hi(v))
		c.WriteRegister8(lo, mask.Lo(v))
	}
}

// PC and SP report the program counter and stack pointer.
func (c *CPU) PC() mem.Address { return c.pc }
func (c *CPU) SP() mem.Address { return c.sp }

// AddBreakpoint and RemoveBreakpoint manage the one-shot breakpoint set.
func (c *CPU) AddBreakpoint(a mem.Address)    { c.breakpoints[a] = true }
func (c *CPU) RemoveBreakpoint(a mem.Address) { delete(c.breakpoints, a) }

// Pause sets DebugHalted; Resume clears it. Both are the debugger's way of
// acquiring the CPU's mutator interface between instructions.
func (c *CPU) Pause()  { c.debugHalted = true }
func (c *CPU) Resume() { c.debugHalted = false }

// DebugHalted reports whether the CPU is currently frozen for debugger
// inspection.
func (c *CPU) DebugHalted() bool { return c.debugHalted }

// Halted reports whether the CPU is in the Halted (or Stopped) state.
func (c *CPU) Halted() bool { return c.halted || c.stopped }

// IME reports the interrupt-master-enable flag.
func (c *CPU) IME() bool { return c.ime }

// Trace returns the bounded execution trace, oldest entry first.
func (c *CPU) Trace() []TraceEntry {
	n := len(c.trace)
	out := make([]TraceEntry, n)
	for i := range out {
		out[i] = c.trace[(c.traceHead+i)%traceCapacity]
	}
	return out
}

func (c *CPU) pushTrace(e TraceEntry) {
	if len(c.trace) < traceCapacity {
		c.trace = append(c.trace, e)
		return
	}
	c.trace[c.traceHead] = e
	c.traceHead = (c.traceHead + 1) % traceCapacity
}

// Step resumes the CPU for exactly one instruction: it clears DebugHalted,
// runs a single cycle, then re-enters DebugHalted so the caller stays in
// control.
func (c *CPU) Step() error {
	c.debugHalted = false
	err := c.runCycle()
	c.debugHalted = true
	return err
}

func (c *CPU) push16(v uint16) error {
	c.sp -= 2
	return c.bus.Write16(c.sp, v)
}

func (c *CPU) pop16() (uint16, error) {
	v, err := c.bus.Read16(c.sp)
	if err != nil {
		return 0, err
	}
	c.sp += 2
	return v, nil
}

func (c *CPU) readIndirect(r register.Register16) (byte, error) {
	return c.bus.Read(mem.Address(c.ReadRegister16(r)))
}

func (c *CPU) writeIndirect(r register.Register16, v byte) error {
	return c.bus.Write(mem.Address(c.ReadRegister16(r)), v)
}

func (c *CPU) readOperand(o inst.Operand) (byte, error) {
	switch o.Kind {
	case inst.Immediate:
		return o.Imm, nil
	case inst.Register:
		return c.ReadRegister8(o.Reg), nil
	case inst.IndirectRegister:
		return c.readIndirect(o.R16)
	case inst.IndirectAddress:
		return c.bus.Read(mem.Address(o.Addr))
	default:
		return 0, fmt.Errorf("cpu: unhandled operand kind %d", o.Kind)
	}
}

func (c *CPU) writeOperand(o inst.Operand, v byte) error {
	switch o.Kind {
	case inst.Immediate:
		panic("cpu: write to an immediate operand")
	case inst.Register:
		c.WriteRegister8(o.Reg, v)
		return nil
	case inst.IndirectRegister:
		return c.writeIndirect(o.R16, v)
	case inst.IndirectAddress:
		return c.bus.Write(mem.Address(o.Addr), v)
	default:
		return fmt.Errorf("cpu: unhandled operand kind %d", o.Kind)
	}
}

func (c *CPU) conditionMet(cc register.ConditionCode) bool {
	f := c.flags()
	switch cc {
	case register.NZ:
		return !f.Zero()
	case register.Z:
		return f.Zero()
	case register.NC:
		return !f.Carry()
	case register.CC:
		return f.Carry()
	default:
		return false
	}
}

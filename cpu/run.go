package cpu

import (
	"time"

	"lr35902/inst"
	"lr35902/mem"
)

// fetchInstruction reads the 3-byte window starting at the current PC (the
// most any opcode requires) and decodes it. Bytes past what the opcode
// actually uses may come from beyond the current instruction; Decode never
// looks at more of the window than the opcode specifies.
func (c *CPU) fetchInstruction() (inst.Instruction, uint8, error) {
	var window [3]byte
	for i := range window {
		b, err := c.bus.Read(c.pc + mem.Address(i))
		if err != nil {
			return inst.Instruction{}, 0, err
		}
		window[i] = b
	}
	return inst.Decode(window)
}

// runCycle executes exactly one instruction (or, while halted, advances the
// cycle counter and polls peripherals without fetching). It is the unit of
// work Step and RunFor both drive. A hit breakpoint, a decode error, or a
// rejected bus access all enter DebugHalted here, so the run loop is the
// single place that decides DebugHalted entry; callers never need to
// freeze the CPU themselves after a non-nil error.
func (c *CPU) runCycle() error {
	if c.breakpoints[c.pc] {
		delete(c.breakpoints, c.pc)
		c.debugHalted = true
		return ErrBreakpoint
	}

	if c.halted || c.stopped {
		c.cycle += 4
		c.drivePeripherals()
		return nil
	}

	fetchPC := c.pc
	i, length, err := c.fetchInstruction()
	if err != nil {
		c.debugHalted = true
		return err
	}

	c.pushTrace(TraceEntry{PC: mem.ExtendedAddress{Address: fetchPC}, Instruction: i})
	c.pc += mem.Address(length)

	taken, err := c.execute(i)
	if err != nil {
		c.debugHalted = true
		return err
	}

	c.cycle += uint64(i.Cost(taken))
	c.drivePeripherals()
	return nil
}

// drivePeripherals pumps the bus forward to the current cycle count and
// services any interrupt it raises.
func (c *CPU) drivePeripherals() {
	if irq, ok := c.bus.Pump(c.cycle); ok {
		ie := c.bus.InterruptEnable()
		if ie&(1<<uint(irq)) != 0 && !c.interruptPending(irq) {
			c.pendingInterrupts = append(c.pendingInterrupts, irq)
		}
	}
	c.handleInterrupt()
}

func (c *CPU) interruptPending(irq mem.Interrupt) bool {
	for _, p := range c.pendingInterrupts {
		if p == irq {
			return true
		}
	}
	return false
}

// handleInterrupt services the highest-priority pending interrupt that is
// both enabled (IE) and unmasked (IME), regardless of IME it wakes the CPU
// from Halted. Servicing pushes the current PC, jumps to the interrupt's
// fixed vector, clears IME, and charges a fixed 20-cycle cost. If the bus
// rejects the push, IME stays set and the CPU enters DebugHalted.
func (c *CPU) handleInterrupt() {
	if len(c.pendingInterrupts) == 0 {
		return
	}

	idx := -1
	for i, irq := range c.pendingInterrupts {
		if idx == -1 || irq < c.pendingInterrupts[idx] {
			idx = i
		}
	}
	irq := c.pendingInterrupts[idx]

	if c.halted {
		c.halted = false
	}
	if c.stopped {
		c.stopped = false
	}

	if !c.ime {
		return
	}

	c.pendingInterrupts = append(c.pendingInterrupts[:idx], c.pendingInterrupts[idx+1:]...)
	if err := c.push16(uint16(c.pc)); err != nil {
		c.debugHalted = true
		return
	}
	c.ime = false
	c.pc = irq.Vector()
	c.cycle += 20
}

// RunFor advances the CPU for approximately d, measured in CPU cycles at
// ClockRate Hz, stopping early if a breakpoint is hit or the bus reports an
// error. While halted, it fast-forwards the cycle counter to the earlier of
// the run's deadline or the bus's next pending event, instead of spinning
// one no-op cycle at a time.
func (c *CPU) RunFor(d time.Duration) error {
	deadline := c.cycle + durationToCycles(d)

	for c.cycle < deadline {
		if c.debugHalted {
			return nil
		}

		if c.halted || c.stopped {
			next := c.bus.NextEventCycle()
			target := deadline
			if next < target {
				target = next
			}
			if target <= c.cycle {
				target = c.cycle + 1
			}
			c.cycle = target
			c.drivePeripherals()
			continue
		}

		if err := c.runCycle(); err != nil {
			return err
		}
	}
	return nil
}

// durationToCycles converts a wall-clock duration to a whole number of
// cycles at ClockRate Hz, rounding down.
func durationToCycles(d time.Duration) uint64 {
	return uint64(d.Seconds() * float64(ClockRate))
}

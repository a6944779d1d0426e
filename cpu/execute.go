package cpu

import (
	"fmt"

	"lr35902/alu"
	"lr35902/flags"
	"lr35902/inst"
	"lr35902/mem"
	"lr35902/register"
)

// execute dispatches a decoded Instruction, mutating registers, flags, and
// the bus as the opcode requires. It mirrors the family split the source
// material uses (arithmetic, logic, bits, control, load) as five private
// helpers below, generalized from 6502 addressing-mode variance to the
// LR35902's richer operand/condition/interrupt model. It returns the taken
// state for conditional control-flow instructions so the caller can charge
// Instruction.Cost correctly, plus any bus error encountered along the way.
func (c *CPU) execute(i inst.Instruction) (taken bool, err error) {
	switch i.Kind {
	case inst.Nop:
		return false, nil
	case inst.EnableInterrupts:
		c.ime = true
		return false, nil
	case inst.DisableInterrupts:
		c.ime = false
		return false, nil
	case inst.Halt:
		c.halted = true
		return false, nil
	case inst.Stop:
		c.stopped = true
		return false, nil
	case inst.SetCarry:
		c.setFlags(c.flags().SCF())
		return false, nil
	case inst.ComplementCarry:
		c.setFlags(c.flags().CCF())
		return false, nil
	case inst.Complement:
		c.WriteRegister8(register.A, ^c.ReadRegister8(register.A))
		f := c.flags().WithSubtract(true).WithHalfCarry(true)
		c.setFlags(f)
		return false, nil
	case inst.DecimalAdjustAccumulator:
		v, f := alu.Daa(c.ReadRegister8(register.A), c.flags())
		c.WriteRegister8(register.A, v)
		c.setFlags(f)
		return false, nil
	}

	switch {
	case isArith(i.Kind):
		return false, c.executeArith(i)
	case isLogic(i.Kind):
		return false, c.executeLogic(i)
	case isBits(i.Kind):
		return false, c.executeBits(i)
	case isControl(i.Kind):
		return c.executeControl(i)
	case isLoad(i.Kind):
		return false, c.executeLoad(i)
	default:
		return false, fmt.Errorf("cpu: unhandled instruction kind %s", i.Kind)
	}
}

func isArith(k inst.Kind) bool {
	switch k {
	case inst.Compare, inst.Add, inst.AddWithCarry, inst.Subtract, inst.SubtractWithCarry,
		inst.Increment, inst.Decrement, inst.IncrementRegister16, inst.DecrementRegister16,
		inst.AddRegisterRegister16, inst.AddSP:
		return true
	}
	return false
}

func isLogic(k inst.Kind) bool {
	switch k {
	case inst.AndOp, inst.OrOp, inst.XorOp:
		return true
	}
	return false
}

func isBits(k inst.Kind) bool {
	switch k {
	case inst.RotateLeftAccumulator, inst.RotateRightAccumulator,
		inst.RotateLeftCarryAccumulator, inst.RotateRightCarryAccumulator,
		inst.RotateLeft, inst.RotateRight, inst.RotateLeftCarry, inst.RotateRightCarry,
		inst.ShiftLeftArithmetic, inst.ShiftRightArithmetic, inst.ShiftRightLogical,
		inst.Swap, inst.GetBit, inst.ResetBit, inst.SetBit:
		return true
	}
	return false
}

func isControl(k inst.Kind) bool {
	switch k {
	case inst.Jump, inst.JumpConditional, inst.JumpIndirect, inst.JumpRelative,
		inst.JumpRelativeConditional, inst.Call, inst.CallConditional, inst.Return,
		inst.ReturnConditional, inst.InterruptReturn, inst.Reset:
		return true
	}
	return false
}

func isLoad(k inst.Kind) bool {
	switch k {
	case inst.Load, inst.LoadRegisterImmediate16, inst.LoadIndirectRegisterFromA,
		inst.LoadAFromIndirectRegister, inst.LoadIndirectFromA, inst.LoadAFromIndirect,
		inst.LoadMemoryFromSP, inst.LoadMemoryFromA, inst.LoadAFromMemory,
		inst.LoadIndirectHiFromA, inst.LoadAFromIndirectHi, inst.LoadHLFromSP,
		inst.LoadSPFromHL, inst.Push, inst.Pop:
		return true
	}
	return false
}

// executeArith handles every instruction whose effect is routed through the
// alu package's 8/16-bit arithmetic primitives.
func (c *CPU) executeArith(i inst.Instruction) error {
	a := c.ReadRegister8(register.A)
	switch i.Kind {
	case inst.Compare:
		v, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		c.setFlags(alu.Cp8(a, v))
		return nil
	case inst.Add:
		v, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		result, f := alu.Add8(a, v)
		c.WriteRegister8(register.A, result)
		c.setFlags(f)
		return nil
	case inst.AddWithCarry:
		v, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		result, f := alu.Adc8(a, v, c.flags().Carry())
		c.WriteRegister8(register.A, result)
		c.setFlags(f)
		return nil
	case inst.Subtract:
		v, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		result, f := alu.Sub8(a, v)
		c.WriteRegister8(register.A, result)
		c.setFlags(f)
		return nil
	case inst.SubtractWithCarry:
		v, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		result, f := alu.Sbc8(a, v, c.flags().Carry())
		c.WriteRegister8(register.A, result)
		c.setFlags(f)
		return nil
	case inst.Increment:
		v, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		result, f := alu.Inc8(v, c.flags())
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.Decrement:
		v, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		result, f := alu.Dec8(v, c.flags())
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.IncrementRegister16:
		c.WriteRegister16(i.Reg16, c.ReadRegister16(i.Reg16)+1)
		return nil
	case inst.DecrementRegister16:
		c.WriteRegister16(i.Reg16, c.ReadRegister16(i.Reg16)-1)
		return nil
	case inst.AddRegisterRegister16:
		result, f := alu.Add16(c.ReadRegister16(register.HL), c.ReadRegister16(i.Reg16), c.flags())
		c.WriteRegister16(register.HL, result)
		c.setFlags(f)
		return nil
	case inst.AddSP:
		result, f := addSPOffset(c.sp, i.Offset)
		c.sp = mem.Address(result)
		c.setFlags(f)
		return nil
	default:
		return fmt.Errorf("cpu: unhandled arith kind %s", i.Kind)
	}
}

func (c *CPU) executeLogic(i inst.Instruction) error {
	a := c.ReadRegister8(register.A)
	v, err := c.readOperand(i.Src)
	if err != nil {
		return err
	}
	var result byte
	var f flags.Flags
	switch i.Kind {
	case inst.AndOp:
		result, f = alu.And8(a, v)
	case inst.OrOp:
		result, f = alu.Or8(a, v)
	case inst.XorOp:
		result, f = alu.Xor8(a, v)
	default:
		return fmt.Errorf("cpu: unhandled logic kind %s", i.Kind)
	}
	c.WriteRegister8(register.A, result)
	c.setFlags(f)
	return nil
}

func (c *CPU) executeBits(i inst.Instruction) error {
	if i.Kind == inst.RotateLeftAccumulator || i.Kind == inst.RotateRightAccumulator ||
		i.Kind == inst.RotateLeftCarryAccumulator || i.Kind == inst.RotateRightCarryAccumulator {
		a := c.ReadRegister8(register.A)
		var result byte
		var f flags.Flags
		switch i.Kind {
		case inst.RotateLeftAccumulator:
			result, f = alu.Rl8(a, c.flags().Carry())
		case inst.RotateRightAccumulator:
			result, f = alu.Rr8(a, c.flags().Carry())
		case inst.RotateLeftCarryAccumulator:
			result, f = alu.Rlc8(a)
		case inst.RotateRightCarryAccumulator:
			result, f = alu.Rrc8(a)
		}
		// The accumulator rotate forms always clear Z regardless of the
		// result, unlike their CB-prefixed register counterparts.
		c.WriteRegister8(register.A, result)
		c.setFlags(f.WithZero(false))
		return nil
	}

	v, err := c.readOperand(i.Src)
	if err != nil {
		return err
	}

	switch i.Kind {
	case inst.RotateLeft:
		result, f := alu.Rl8(v, c.flags().Carry())
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.RotateRight:
		result, f := alu.Rr8(v, c.flags().Carry())
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.RotateLeftCarry:
		result, f := alu.Rlc8(v)
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.RotateRightCarry:
		result, f := alu.Rrc8(v)
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.ShiftLeftArithmetic:
		result, f := alu.Sla8(v)
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.ShiftRightArithmetic:
		result, f := alu.Sra8(v)
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.ShiftRightLogical:
		result, f := alu.Srl8(v)
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.Swap:
		result, f := alu.Swap8(v)
		c.setFlags(f)
		return c.writeOperand(i.Src, result)
	case inst.GetBit:
		c.setFlags(alu.Bit(v, uint(i.BitIndex), c.flags()))
		return nil
	case inst.ResetBit:
		return c.writeOperand(i.Src, alu.Res(v, uint(i.BitIndex)))
	case inst.SetBit:
		return c.writeOperand(i.Src, alu.Set(v, uint(i.BitIndex)))
	default:
		return fmt.Errorf("cpu: unhandled bits kind %s", i.Kind)
	}
}

// executeControl handles jumps, calls, returns, and resets. The returned
// bool reports whether a conditional branch/call/return was taken, so the
// caller can charge the correct cycle cost.
func (c *CPU) executeControl(i inst.Instruction) (bool, error) {
	switch i.Kind {
	case inst.Jump:
		c.pc = mem.Address(i.Addr)
		return false, nil
	case inst.JumpConditional:
		if !c.conditionMet(i.Condition) {
			return false, nil
		}
		c.pc = mem.Address(i.Addr)
		return true, nil
	case inst.JumpIndirect:
		c.pc = mem.Address(c.ReadRegister16(register.HL))
		return false, nil
	case inst.JumpRelative:
		c.pc = mem.Address(int32(c.pc) + int32(i.Offset))
		return false, nil
	case inst.JumpRelativeConditional:
		if !c.conditionMet(i.Condition) {
			return false, nil
		}
		c.pc = mem.Address(int32(c.pc) + int32(i.Offset))
		return true, nil
	case inst.Call:
		if err := c.push16(uint16(c.pc)); err != nil {
			return false, err
		}
		c.pc = mem.Address(i.Addr)
		return false, nil
	case inst.CallConditional:
		if !c.conditionMet(i.Condition) {
			return false, nil
		}
		if err := c.push16(uint16(c.pc)); err != nil {
			return true, err
		}
		c.pc = mem.Address(i.Addr)
		return true, nil
	case inst.Return:
		addr, err := c.pop16()
		if err != nil {
			return false, err
		}
		c.pc = mem.Address(addr)
		return false, nil
	case inst.ReturnConditional:
		if !c.conditionMet(i.Condition) {
			return false, nil
		}
		addr, err := c.pop16()
		if err != nil {
			return true, err
		}
		c.pc = mem.Address(addr)
		return true, nil
	case inst.InterruptReturn:
		addr, err := c.pop16()
		if err != nil {
			return false, err
		}
		c.pc = mem.Address(addr)
		c.ime = true
		return false, nil
	case inst.Reset:
		if err := c.push16(uint16(c.pc)); err != nil {
			return false, err
		}
		c.pc = mem.Address(i.Addr)
		return false, nil
	default:
		return false, fmt.Errorf("cpu: unhandled control kind %s", i.Kind)
	}
}

func (c *CPU) executeLoad(i inst.Instruction) error {
	switch i.Kind {
	case inst.Load:
		v, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		return c.writeOperand(i.Dest, v)
	case inst.LoadRegisterImmediate16:
		c.WriteRegister16(i.Reg16, i.Addr)
		return nil
	case inst.LoadIndirectRegisterFromA:
		return c.writeIndirect(i.Reg16, c.ReadRegister8(register.A))
	case inst.LoadAFromIndirectRegister:
		v, err := c.readIndirect(i.Reg16)
		if err != nil {
			return err
		}
		c.WriteRegister8(register.A, v)
		return nil
	case inst.LoadIndirectFromA:
		if err := c.writeIndirect(register.HL, c.ReadRegister8(register.A)); err != nil {
			return err
		}
		c.WriteRegister16(register.HL, uint16(int32(c.ReadRegister16(register.HL))+int32(i.Delta)))
		return nil
	case inst.LoadAFromIndirect:
		v, err := c.readIndirect(register.HL)
		if err != nil {
			return err
		}
		c.WriteRegister8(register.A, v)
		c.WriteRegister16(register.HL, uint16(int32(c.ReadRegister16(register.HL))+int32(i.Delta)))
		return nil
	case inst.LoadMemoryFromSP:
		return c.bus.Write16(mem.Address(i.Addr), uint16(c.sp))
	case inst.LoadMemoryFromA:
		return c.bus.Write(mem.Address(i.Addr), c.ReadRegister8(register.A))
	case inst.LoadAFromMemory:
		v, err := c.bus.Read(mem.Address(i.Addr))
		if err != nil {
			return err
		}
		c.WriteRegister8(register.A, v)
		return nil
	case inst.LoadIndirectHiFromA:
		offset, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		return c.bus.Write(mem.Address(0xFF00+uint16(offset)), c.ReadRegister8(register.A))
	case inst.LoadAFromIndirectHi:
		offset, err := c.readOperand(i.Src)
		if err != nil {
			return err
		}
		v, err := c.bus.Read(mem.Address(0xFF00 + uint16(offset)))
		if err != nil {
			return err
		}
		c.WriteRegister8(register.A, v)
		return nil
	case inst.LoadHLFromSP:
		result, f := addSPOffset(c.sp, i.Offset)
		c.WriteRegister16(register.HL, uint16(result))
		c.setFlags(f)
		return nil
	case inst.LoadSPFromHL:
		c.sp = mem.Address(c.ReadRegister16(register.HL))
		return nil
	case inst.Push:
		return c.push16(c.ReadRegister16(i.Reg16))
	case inst.Pop:
		v, err := c.pop16()
		if err != nil {
			return err
		}
		c.WriteRegister16(i.Reg16, v)
		return nil
	default:
		return fmt.Errorf("cpu: unhandled load kind %s", i.Kind)
	}
}

// addSPOffset implements the shared flag/arithmetic behavior of ADD SP,n
// and LD HL,SP+n: both add a signed 8-bit displacement to SP and compute
// H/C from the low byte as an unsigned addition, with Z and N always
// cleared.
func addSPOffset(sp mem.Address, offset int8) (mem.Address, flags.Flags) {
	base := uint16(sp)
	result := uint16(int32(base) + int32(offset))
	lowSum := uint32(base&0xFF) + uint32(uint8(offset))
	half := (base&0xF)+(uint16(uint8(offset))&0xF) > 0xF
	full := lowSum > 0xFF
	return mem.Address(result), flags.New(false, false, half, full)
}

package inst

import (
	"fmt"

	"lr35902/register"
)

// Instruction is a value-typed, immutable representation of a single
// decoded opcode. It is the Go idiom for what the source models as a
// tagged union: Kind discriminates the variant, and only the fields that
// variant's family needs are populated; the rest stay zero. This keeps
// Instruction one small, cheaply-copyable struct instead of a family of
// interfaces, which would force heap allocation and dynamic dispatch for
// what the executor treats as an exhaustive switch.
type Instruction struct {
	Kind Kind

	Dest Operand // Load family: destination operand
	Src  Operand // primary operand: ALU/Compare operand, Load source, Increment/Decrement target

	Reg16 register.Register16 // 16-bit register-pair operand (IncrementRegister16, Push, Pop, LoadRegisterImmediate16, AddRegisterRegister16's rhs)

	Addr      uint16               // absolute address (Jump, Call, Reset, absolute loads)
	Condition register.ConditionCode
	Offset    int8  // signed displacement (JumpRelative, AddSP, LoadHLFromSP)
	Delta     int8  // +1 or -1 for the HL+/HL- load forms
	BitIndex  byte  // 0-7, for GetBit/ResetBit/SetBit

	Cycles      uint8 // cycle charge (or the not-taken charge, for conditional forms)
	TakenCycles uint8 // cycle charge when a conditional branch/call/return is taken
	Conditional bool
}

// Cost returns the cycle charge to apply once execution has determined
// whether a conditional branch/call/return was taken. Unconditional
// instructions ignore the argument.
func (i Instruction) Cost(taken bool) uint8 {
	if i.Conditional && taken {
		return i.TakenCycles
	}
	return i.Cycles
}

func (i Instruction) String() string {
	switch i.Kind {
	case Nop, EnableInterrupts, DisableInterrupts, Halt, Stop, SetCarry, ComplementCarry,
		Complement, DecimalAdjustAccumulator, Return, InterruptReturn, JumpIndirect,
		RotateLeftAccumulator, RotateRightAccumulator, RotateLeftCarryAccumulator,
		RotateRightCarryAccumulator, LoadSPFromHL:
		return i.Kind.String()
	case Compare, Add, AddWithCarry, Subtract, SubtractWithCarry, AndOp, OrOp, XorOp:
		return fmt.Sprintf("%s %s", i.Kind, i.Src)
	case Increment, Decrement:
		return fmt.Sprintf("%s %s", i.Kind, i.Src)
	case IncrementRegister16, DecrementRegister16:
		return fmt.Sprintf("%s %s", i.Kind, i.Reg16)
	case AddRegisterRegister16:
		return fmt.Sprintf("add hl,%s", i.Reg16)
	case AddSP:
		return fmt.Sprintf("add sp,%d", i.Offset)
	case RotateLeft, RotateRight, RotateLeftCarry, RotateRightCarry,
		ShiftLeftArithmetic, ShiftRightArithmetic, ShiftRightLogical, Swap:
		return fmt.Sprintf("%s %s", i.Kind, i.Src)
	case GetBit, ResetBit, SetBit:
		return fmt.Sprintf("%s %d,%s", i.Kind, i.BitIndex, i.Src)
	case Jump:
		return fmt.Sprintf("jp $%04x", i.Addr)
	case JumpConditional:
		return fmt.Sprintf("jp %s,$%04x", i.Condition, i.Addr)
	case JumpRelative:
		return fmt.Sprintf("jr %d", i.Offset)
	case JumpRelativeConditional:
		return fmt.Sprintf("jr %s,%d", i.Condition, i.Offset)
	case Call:
		return fmt.Sprintf("call $%04x", i.Addr)
	case CallConditional:
		return fmt.Sprintf("call %s,$%04x", i.Condition, i.Addr)
	case ReturnConditional:
		return fmt.Sprintf("ret %s", i.Condition)
	case Reset:
		return fmt.Sprintf("rst $%02x", i.Addr)
	case Load:
		return fmt.Sprintf("ld %s,%s", i.Dest, i.Src)
	case LoadRegisterImmediate16:
		return fmt.Sprintf("ld %s,$%04x", i.Reg16, i.Addr)
	case LoadIndirectRegisterFromA:
		return fmt.Sprintf("ld (%s),a", i.Reg16)
	case LoadAFromIndirectRegister:
		return fmt.Sprintf("ld a,(%s)", i.Reg16)
	case LoadIndirectFromA:
		return "ld (hl),a"
	case LoadAFromIndirect:
		return "ld a,(hl)"
	case LoadMemoryFromSP:
		return fmt.Sprintf("ld ($%04x),sp", i.Addr)
	case LoadMemoryFromA:
		return fmt.Sprintf("ld ($%04x),a", i.Addr)
	case LoadAFromMemory:
		return fmt.Sprintf("ld a,($%04x)", i.Addr)
	case LoadIndirectHiFromA:
		return fmt.Sprintf("ld ($ff00+%s),a", i.Src)
	case LoadAFromIndirectHi:
		return fmt.Sprintf("ld a,($ff00+%s)", i.Src)
	case LoadHLFromSP:
		return fmt.Sprintf("ld hl,sp%+d", i.Offset)
	case Push, Pop:
		return fmt.Sprintf("%s %s", i.Kind, i.Reg16)
	default:
		return i.Kind.String()
	}
}

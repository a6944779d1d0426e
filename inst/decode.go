package inst

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"lr35902/mask"
	"lr35902/register"
)

// ErrDecode is the sentinel wrapped by every decode failure: a reserved
// opcode, or a malformed multi-byte form (the only one being `0x10`
// followed by anything other than the mandatory `0x00` Stop padding byte).
var ErrDecode = errors.New("inst: illegal or reserved opcode")

func decodeError(window [3]byte) error {
	return fmt.Errorf("%w: %02X %02X %02X\n%s", ErrDecode, window[0], window[1], window[2], spew.Sdump(window))
}

var reservedOpcodes = map[byte]bool{
	0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
	0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
}

var resetVectors = [8]uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}

// Decode maps a 1-3 byte instruction window to its typed representation
// and encoded length. It consumes only as many of the three bytes as the
// opcode requires and performs no memory access of its own; window[1] and
// window[2] may be garbage for opcodes that don't use them.
func Decode(window [3]byte) (Instruction, uint8, error) {
	op := window[0]

	if op == 0xCB {
		i, err := decodeCB(window[1])
		return i, 2, err
	}

	if reservedOpcodes[op] {
		return Instruction{}, 0, decodeError(window)
	}

	switch op {
	case 0x00:
		return Instruction{Kind: Nop, Cycles: 4}, 1, nil
	case 0xFB:
		return Instruction{Kind: EnableInterrupts, Cycles: 4}, 1, nil
	case 0xF3:
		return Instruction{Kind: DisableInterrupts, Cycles: 4}, 1, nil
	case 0x10:
		if window[1] != 0x00 {
			return Instruction{}, 0, decodeError(window)
		}
		return Instruction{Kind: Stop, Cycles: 4}, 2, nil
	case 0x76:
		return Instruction{Kind: Halt, Cycles: 4}, 1, nil
	case 0x37:
		return Instruction{Kind: SetCarry, Cycles: 4}, 1, nil
	case 0x3F:
		return Instruction{Kind: ComplementCarry, Cycles: 4}, 1, nil
	case 0x2F:
		return Instruction{Kind: Complement, Cycles: 4}, 1, nil
	case 0x27:
		return Instruction{Kind: DecimalAdjustAccumulator, Cycles: 4}, 1, nil
	}

	switch op {
	case 0x04, 0x14, 0x24, 0x34, 0x0C, 0x1C, 0x2C, 0x3C:
		field := register.DestField(op)
		src := FromField(field)
		cycles := uint8(4)
		if src.Kind == IndirectRegister {
			cycles = 8
		}
		return Instruction{Kind: Increment, Src: src, Cycles: cycles}, 1, nil
	case 0x05, 0x15, 0x25, 0x35, 0x0D, 0x1D, 0x2D, 0x3D:
		field := register.DestField(op)
		src := FromField(field)
		cycles := uint8(4)
		if src.Kind == IndirectRegister {
			cycles = 8
		}
		return Instruction{Kind: Decrement, Src: src, Cycles: cycles}, 1, nil
	}

	switch op {
	case 0x03, 0x13, 0x23, 0x33:
		pair := register.Decode16((op >> 4) & 0x3)
		return Instruction{Kind: IncrementRegister16, Reg16: pair, Cycles: 8}, 1, nil
	case 0x0B, 0x1B, 0x2B, 0x3B:
		pair := register.Decode16((op >> 4) & 0x3)
		return Instruction{Kind: DecrementRegister16, Reg16: pair, Cycles: 8}, 1, nil
	case 0x09, 0x19, 0x29, 0x39:
		pair := register.Decode16((op >> 4) & 0x3)
		return Instruction{Kind: AddRegisterRegister16, Reg16: pair, Cycles: 8}, 1, nil
	case 0x01, 0x11, 0x21, 0x31:
		pair := register.Decode16((op >> 4) & 0x3)
		addr := mask.Word(window[2], window[1])
		return Instruction{Kind: LoadRegisterImmediate16, Reg16: pair, Addr: addr, Cycles: 12}, 3, nil
	}

	switch op {
	case 0xE8:
		return Instruction{Kind: AddSP, Offset: int8(window[1]), Cycles: 16}, 2, nil
	case 0x08:
		addr := mask.Word(window[2], window[1])
		return Instruction{Kind: LoadMemoryFromSP, Addr: addr, Cycles: 20}, 3, nil
	case 0xE9:
		return Instruction{Kind: JumpIndirect, Cycles: 4}, 1, nil
	case 0xC3:
		addr := mask.Word(window[2], window[1])
		return Instruction{Kind: Jump, Addr: addr, Cycles: 12}, 3, nil
	case 0xC2, 0xD2, 0xCA, 0xDA:
		addr := mask.Word(window[2], window[1])
		cc := register.DecodeCondition((op >> 3) & 0x3)
		return Instruction{Kind: JumpConditional, Addr: addr, Condition: cc, Conditional: true, Cycles: 12, TakenCycles: 16}, 3, nil
	case 0x18:
		return Instruction{Kind: JumpRelative, Offset: int8(window[1]), Cycles: 12}, 2, nil
	case 0x20, 0x30, 0x28, 0x38:
		cc := register.DecodeCondition((op >> 3) & 0x3)
		return Instruction{Kind: JumpRelativeConditional, Offset: int8(window[1]), Condition: cc, Conditional: true, Cycles: 8, TakenCycles: 12}, 2, nil
	case 0xC7, 0xD7, 0xE7, 0xF7, 0xCF, 0xDF, 0xEF, 0xFF:
		idx := (op >> 3) & 0x7
		return Instruction{Kind: Reset, Addr: resetVectors[idx], Cycles: 24}, 1, nil
	case 0xCD:
		addr := mask.Word(window[2], window[1])
		return Instruction{Kind: Call, Addr: addr, Cycles: 24}, 3, nil
	case 0xC4, 0xD4, 0xCC, 0xDC:
		addr := mask.Word(window[2], window[1])
		cc := register.DecodeCondition((op >> 3) & 0x3)
		return Instruction{Kind: CallConditional, Addr: addr, Condition: cc, Conditional: true, Cycles: 16, TakenCycles: 16}, 3, nil
	case 0xC9:
		return Instruction{Kind: Return, Cycles: 4}, 1, nil
	case 0xD9:
		return Instruction{Kind: InterruptReturn, Cycles: 16}, 1, nil
	case 0xC0, 0xD0, 0xC8, 0xD8:
		cc := register.DecodeCondition((op >> 3) & 0x3)
		return Instruction{Kind: ReturnConditional, Condition: cc, Conditional: true, Cycles: 8, TakenCycles: 12}, 1, nil
	}

	switch op {
	case 0x07:
		return Instruction{Kind: RotateLeftCarryAccumulator, Cycles: 4}, 1, nil
	case 0x0F:
		return Instruction{Kind: RotateRightCarryAccumulator, Cycles: 4}, 1, nil
	case 0x17:
		return Instruction{Kind: RotateLeftAccumulator, Cycles: 4}, 1, nil
	case 0x1F:
		return Instruction{Kind: RotateRightAccumulator, Cycles: 4}, 1, nil
	}

	switch op {
	case 0xF0:
		return Instruction{Kind: LoadAFromIndirectHi, Src: ImmediateOperand(window[1]), Cycles: 12}, 2, nil
	case 0xE0:
		return Instruction{Kind: LoadIndirectHiFromA, Src: ImmediateOperand(window[1]), Cycles: 12}, 2, nil
	case 0xE2:
		return Instruction{Kind: LoadIndirectHiFromA, Src: RegisterOperand(register.C), Cycles: 8}, 1, nil
	case 0xF2:
		return Instruction{Kind: LoadAFromIndirectHi, Src: RegisterOperand(register.C), Cycles: 8}, 1, nil
	case 0xEA:
		addr := mask.Word(window[2], window[1])
		return Instruction{Kind: LoadMemoryFromA, Addr: addr, Cycles: 16}, 3, nil
	case 0xFA:
		addr := mask.Word(window[2], window[1])
		return Instruction{Kind: LoadAFromMemory, Addr: addr, Cycles: 16}, 3, nil
	case 0xF8:
		return Instruction{Kind: LoadHLFromSP, Offset: int8(window[1]), Cycles: 12}, 2, nil
	case 0xF9:
		return Instruction{Kind: LoadSPFromHL, Cycles: 8}, 1, nil
	case 0x02:
		return Instruction{Kind: LoadIndirectRegisterFromA, Reg16: register.BC, Cycles: 8}, 1, nil
	case 0x12:
		return Instruction{Kind: LoadIndirectRegisterFromA, Reg16: register.DE, Cycles: 8}, 1, nil
	case 0x0A:
		return Instruction{Kind: LoadAFromIndirectRegister, Reg16: register.BC, Cycles: 8}, 1, nil
	case 0x1A:
		return Instruction{Kind: LoadAFromIndirectRegister, Reg16: register.DE, Cycles: 8}, 1, nil
	case 0x22:
		return Instruction{Kind: LoadIndirectFromA, Delta: 1, Cycles: 8}, 1, nil
	case 0x32:
		return Instruction{Kind: LoadIndirectFromA, Delta: -1, Cycles: 8}, 1, nil
	case 0x2A:
		return Instruction{Kind: LoadAFromIndirect, Delta: 1, Cycles: 8}, 1, nil
	case 0x3A:
		return Instruction{Kind: LoadAFromIndirect, Delta: -1, Cycles: 8}, 1, nil
	}

	switch op {
	case 0x06, 0x16, 0x26, 0x36, 0x0E, 0x1E, 0x2E, 0x3E:
		dest := FromField(register.DestField(op))
		return Instruction{Kind: Load, Dest: dest, Src: ImmediateOperand(window[1]), Cycles: 8}, 2, nil
	}

	switch op {
	case 0xC5:
		return Instruction{Kind: Push, Reg16: register.BC, Cycles: 16}, 1, nil
	case 0xD5:
		return Instruction{Kind: Push, Reg16: register.DE, Cycles: 16}, 1, nil
	case 0xE5:
		return Instruction{Kind: Push, Reg16: register.HL, Cycles: 16}, 1, nil
	case 0xF5:
		return Instruction{Kind: Push, Reg16: register.AF, Cycles: 16}, 1, nil
	case 0xC1:
		return Instruction{Kind: Pop, Reg16: register.BC, Cycles: 12}, 1, nil
	case 0xD1:
		return Instruction{Kind: Pop, Reg16: register.DE, Cycles: 12}, 1, nil
	case 0xE1:
		return Instruction{Kind: Pop, Reg16: register.HL, Cycles: 12}, 1, nil
	case 0xF1:
		return Instruction{Kind: Pop, Reg16: register.AF, Cycles: 12}, 1, nil
	}

	if op >= 0x40 && op <= 0x7F && op != 0x76 {
		dest := FromField(register.DestField(op))
		src := FromField(register.SrcField(op))
		cycles := uint8(4)
		if dest.Kind == IndirectRegister || src.Kind == IndirectRegister {
			cycles = 8
		}
		return Instruction{Kind: Load, Dest: dest, Src: src, Cycles: cycles}, 1, nil
	}

	if op >= 0x80 && op <= 0xBF {
		field := register.SrcField(op)
		src := FromField(field)
		cycles := uint8(4)
		if src.Kind == IndirectRegister {
			cycles = 8
		}
		kind := arithKindFromFamily((op >> 3) & 0x7)
		return Instruction{Kind: kind, Src: src, Cycles: cycles}, 1, nil
	}

	switch op {
	case 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE:
		kind := arithKindFromFamily((op >> 3) & 0x7)
		return Instruction{Kind: kind, Src: ImmediateOperand(window[1]), Cycles: 8}, 2, nil
	}

	return Instruction{}, 0, decodeError(window)
}

// arithKindFromFamily maps the 3-bit ALU-family selector (opcode bits 5:3
// in the 0x80-0xBF and immediate-ALU blocks) to its Kind: ADD, ADC, SUB,
// SBC, AND, XOR, OR, CP in that order.
func arithKindFromFamily(family byte) Kind {
	switch family {
	case 0:
		return Add
	case 1:
		return AddWithCarry
	case 2:
		return Subtract
	case 3:
		return SubtractWithCarry
	case 4:
		return AndOp
	case 5:
		return XorOp
	case 6:
		return OrOp
	default: // 7
		return Compare
	}
}

func decodeCB(b byte) (Instruction, error) {
	field := register.SrcField(b)
	src := FromField(field)
	baseCycles := uint8(12)
	if src.Kind == IndirectRegister {
		baseCycles = 16
	}

	switch {
	case b <= 0x07:
		return Instruction{Kind: RotateLeftCarry, Src: src, Cycles: baseCycles}, nil
	case b <= 0x0F:
		return Instruction{Kind: RotateRightCarry, Src: src, Cycles: baseCycles}, nil
	case b <= 0x17:
		return Instruction{Kind: RotateLeft, Src: src, Cycles: baseCycles}, nil
	case b <= 0x1F:
		return Instruction{Kind: RotateRight, Src: src, Cycles: baseCycles}, nil
	case b <= 0x27:
		return Instruction{Kind: ShiftLeftArithmetic, Src: src, Cycles: baseCycles}, nil
	case b <= 0x2F:
		return Instruction{Kind: ShiftRightArithmetic, Src: src, Cycles: baseCycles}, nil
	case b <= 0x37:
		return Instruction{Kind: Swap, Src: src, Cycles: baseCycles}, nil
	case b <= 0x3F:
		return Instruction{Kind: ShiftRightLogical, Src: src, Cycles: baseCycles}, nil
	case b <= 0x7F:
		return Instruction{Kind: GetBit, Src: src, BitIndex: (b >> 3) & 0x7, Cycles: baseCycles}, nil
	case b <= 0xBF:
		return Instruction{Kind: ResetBit, Src: src, BitIndex: (b >> 3) & 0x7, Cycles: baseCycles}, nil
	default: // 0xC0-0xFF
		return Instruction{Kind: SetBit, Src: src, BitIndex: (b >> 3) & 0x7, Cycles: baseCycles}, nil
	}
}

package inst

// Kind discriminates every legal instruction variant. Go has no native
// sum type, so Kind plus the flat field set on Instruction stands in for
// the tagged union: each Kind uses only the subset of fields its family
// needs, the same way the teacher's Opcode table carries fields that only
// some addressing modes populate.
type Kind byte

const (
	Nop Kind = iota
	EnableInterrupts
	DisableInterrupts
	Halt
	Stop
	SetCarry
	ComplementCarry
	Complement
	DecimalAdjustAccumulator
	Compare

	// Arithmetic family
	Add
	AddWithCarry
	Subtract
	SubtractWithCarry
	Increment
	Decrement
	IncrementRegister16
	DecrementRegister16
	AddRegisterRegister16
	AddSP

	// Logic family
	AndOp
	OrOp
	XorOp

	// Bits family
	RotateLeftAccumulator
	RotateRightAccumulator
	RotateLeftCarryAccumulator
	RotateRightCarryAccumulator
	RotateLeft
	RotateRight
	RotateLeftCarry
	RotateRightCarry
	ShiftLeftArithmetic
	ShiftRightArithmetic
	ShiftRightLogical
	Swap
	GetBit
	ResetBit
	SetBit

	// Control family
	Jump
	JumpConditional
	JumpIndirect
	JumpRelative
	JumpRelativeConditional
	Call
	CallConditional
	Return
	ReturnConditional
	InterruptReturn
	Reset

	// Load family
	Load
	LoadRegisterImmediate16
	LoadIndirectRegisterFromA
	LoadAFromIndirectRegister
	LoadIndirectFromA
	LoadAFromIndirect
	LoadMemoryFromSP
	LoadMemoryFromA
	LoadAFromMemory
	LoadIndirectHiFromA
	LoadAFromIndirectHi
	LoadHLFromSP
	LoadSPFromHL
	Push
	Pop
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

var kindNames = map[Kind]string{
	Nop:                        "nop",
	EnableInterrupts:           "ei",
	DisableInterrupts:          "di",
	Halt:                       "halt",
	Stop:                       "stop",
	SetCarry:                   "scf",
	ComplementCarry:                 "ccf",
	Complement:                 "cpl",
	DecimalAdjustAccumulator:   "daa",
	Compare:                    "cp",
	Add:                        "add",
	AddWithCarry:               "adc",
	Subtract:                   "sub",
	SubtractWithCarry:          "sbc",
	Increment:                  "inc",
	Decrement:                  "dec",
	IncrementRegister16:        "inc",
	DecrementRegister16:        "dec",
	AddRegisterRegister16:      "add",
	AddSP:                      "add sp",
	AndOp:                      "and",
	OrOp:                       "or",
	XorOp:                      "xor",
	RotateLeftAccumulator:      "rla",
	RotateRightAccumulator:     "rra",
	RotateLeftCarryAccumulator: "rlca",
	RotateRightCarryAccumulator: "rrca",
	RotateLeft:                 "rl",
	RotateRight:                "rr",
	RotateLeftCarry:            "rlc",
	RotateRightCarry:           "rrc",
	ShiftLeftArithmetic:        "sla",
	ShiftRightArithmetic:       "sra",
	ShiftRightLogical:          "srl",
	Swap:                       "swap",
	GetBit:                     "bit",
	ResetBit:                   "res",
	SetBit:                     "set",
	Jump:                       "jp",
	JumpConditional:            "jp",
	JumpIndirect:               "jp (hl)",
	JumpRelative:               "jr",
	JumpRelativeConditional:    "jr",
	Call:                       "call",
	CallConditional:            "call",
	Return:                     "ret",
	ReturnConditional:          "ret",
	InterruptReturn:            "reti",
	Reset:                      "rst",
	Load:                       "ld",
	LoadRegisterImmediate16:    "ld",
	LoadIndirectRegisterFromA:  "ld",
	LoadAFromIndirectRegister:  "ld",
	LoadIndirectFromA:          "ld",
	LoadAFromIndirect:          "ld",
	LoadMemoryFromSP:           "ld",
	LoadMemoryFromA:            "ld",
	LoadAFromMemory:            "ld",
	LoadIndirectHiFromA:        "ld",
	LoadAFromIndirectHi:        "ld",
	LoadHLFromSP:               "ld hl,sp",
	LoadSPFromHL:               "ld sp,hl",
	Push:                       "push",
	Pop:                        "pop",
}

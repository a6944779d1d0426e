// Package flags models the LR35902's F register: four named condition bits
// (Zero, Subtract, HalfCarry, Carry) packed into the top nibble of a byte,
// with the bottom nibble always read back as zero.
package flags

import "lr35902/mask"

// Flags is the packed representation of the F register. Bit 7 is Zero, bit
// 6 is Subtract (often called N), bit 5 is HalfCarry, bit 4 is Carry; bits
// 3-0 are unused and always zero. Positions are given in mask's 1-indexed-
// from-MSB scheme, so I1 is bit 7 down to I4 being bit 4.
const (
	zeroPos      = mask.I1
	subtractPos  = mask.I2
	halfCarryPos = mask.I3
	carryPos     = mask.I4
)

type Flags byte

// New builds a Flags value from its four named bits, masking off the low
// nibble so the invariant (low nibble always zero) holds by construction.
func New(zero, subtract, halfCarry, carry bool) Flags {
	var f Flags
	f = f.WithZero(zero)
	f = f.WithSubtract(subtract)
	f = f.WithHalfCarry(halfCarry)
	f = f.WithCarry(carry)
	return f
}

// FromByte reconstructs a Flags value from a raw F-register byte, clearing
// the low nibble regardless of what bits happened to be there.
func FromByte(b byte) Flags {
	return Flags(b &^ 0x0F)
}

// Byte returns the raw F-register byte, low nibble forced to zero.
func (f Flags) Byte() byte {
	return byte(f) &^ 0x0F
}

func (f Flags) Zero() bool      { return mask.IsSet(byte(f), zeroPos) }
func (f Flags) Subtract() bool  { return mask.IsSet(byte(f), subtractPos) }
func (f Flags) HalfCarry() bool { return mask.IsSet(byte(f), halfCarryPos) }
func (f Flags) Carry() bool     { return mask.IsSet(byte(f), carryPos) }

func (f Flags) WithZero(v bool) Flags {
	b := byte(f)
	if v {
		b = mask.Set(b, zeroPos, 1)
	} else {
		b = mask.Unset(b, zeroPos, zeroPos)
	}
	return Flags(b &^ 0x0F)
}

func (f Flags) WithSubtract(v bool) Flags {
	b := byte(f)
	if v {
		b = mask.Set(b, subtractPos, 1)
	} else {
		b = mask.Unset(b, subtractPos, subtractPos)
	}
	return Flags(b &^ 0x0F)
}

func (f Flags) WithHalfCarry(v bool) Flags {
	b := byte(f)
	if v {
		b = mask.Set(b, halfCarryPos, 1)
	} else {
		b = mask.Unset(b, halfCarryPos, halfCarryPos)
	}
	return Flags(b &^ 0x0F)
}

func (f Flags) WithCarry(v bool) Flags {
	b := byte(f)
	if v {
		b = mask.Set(b, carryPos, 1)
	} else {
		b = mask.Unset(b, carryPos, carryPos)
	}
	return Flags(b &^ 0x0F)
}

// CCF implements the CCF instruction: complement Carry, clear Subtract and
// HalfCarry, leave Zero untouched.
func (f Flags) CCF() Flags {
	b := mask.Flip(byte(f), carryPos, carryPos)
	return Flags(b &^ 0x0F).WithSubtract(false).WithHalfCarry(false)
}

// SCF implements the SCF instruction: set Carry, clear Subtract and
// HalfCarry, leave Zero untouched.
func (f Flags) SCF() Flags {
	return f.WithSubtract(false).WithHalfCarry(false).WithCarry(true)
}

func (f Flags) String() string {
	z, n, h, c := '-', '-', '-', '-'
	if f.Zero() {
		z = 'Z'
	}
	if f.Subtract() {
		n = 'N'
	}
	if f.HalfCarry() {
		h = 'H'
	}
	if f.Carry() {
		c = 'C'
	}
	return string([]rune{rune(z), rune(n), rune(h), rune(c)})
}

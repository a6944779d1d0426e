package inst

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"lr35902/register"
)

func TestDecodeAllNonReservedOpcodesSucceed(t *testing.T) {
	for op := 0; op <= 0xFF; op++ {
		b := byte(op)
		if b == 0xCB || reservedOpcodes[b] {
			continue
		}
		for x := 0; x <= 0xFF; x += 17 {
			window := [3]byte{b, byte(x), 0x00}
			if b == 0x10 {
				// Stop requires its mandatory 0x00 padding byte; a non-zero
				// second byte is a malformed encoding and correctly errors.
				window[1] = 0x00
			}
			_, length, err := Decode(window)
			assert.NoError(t, err, "opcode %#02x should decode", b)
			assert.Contains(t, []uint8{1, 2, 3}, length)
		}
	}
}

func TestDecodeStopRequiresZeroPadding(t *testing.T) {
	_, _, err := Decode([3]byte{0x10, 0x01, 0x00})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeCBAlwaysLengthTwo(t *testing.T) {
	for b := 0; b <= 0xFF; b++ {
		window := [3]byte{0xCB, byte(b), 0x00}
		_, length, err := Decode(window)
		assert.NoError(t, err)
		assert.Equal(t, uint8(2), length)
	}
}

func TestDecodeReservedOpcodesFail(t *testing.T) {
	for b := range reservedOpcodes {
		_, _, err := Decode([3]byte{b, 0x00, 0x00})
		assert.True(t, errors.Is(err, ErrDecode))
	}
}

func TestDecodeLoadRegisterToRegister(t *testing.T) {
	// 0x41 = LD B,C
	i, length, err := Decode([3]byte{0x41, 0x00, 0x00})
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), length)
	assert.Equal(t, Load, i.Kind)
	assert.Equal(t, RegisterOperand(register.B), i.Dest)
	assert.Equal(t, RegisterOperand(register.C), i.Src)
	assert.Equal(t, uint8(4), i.Cycles)
}

func TestDecodeLoadIndirectHL(t *testing.T) {
	// 0x7E = LD A,(HL)
	i, _, err := Decode([3]byte{0x7E, 0x00, 0x00})
	assert.NoError(t, err)
	assert.Equal(t, Load, i.Kind)
	assert.Equal(t, RegisterOperand(register.A), i.Dest)
	assert.Equal(t, IndirectRegisterOperand(register.HL), i.Src)
	assert.Equal(t, uint8(8), i.Cycles)
}

func TestDecodeImmediate16Load(t *testing.T) {
	// 0x21 = LD HL,$1234
	i, length, err := Decode([3]byte{0x21, 0x34, 0x12})
	assert.NoError(t, err)
	assert.Equal(t, uint8(3), length)
	assert.Equal(t, LoadRegisterImmediate16, i.Kind)
	assert.Equal(t, register.HL, i.Reg16)
	assert.Equal(t, uint16(0x1234), i.Addr)
}

func TestDecodeCBBitOperations(t *testing.T) {
	// 0xCB 0x7C = BIT 7,H
	i, _, err := Decode([3]byte{0xCB, 0x7C, 0x00})
	assert.NoError(t, err)
	assert.Equal(t, GetBit, i.Kind)
	assert.Equal(t, byte(7), i.BitIndex)
	assert.Equal(t, RegisterOperand(register.H), i.Src)
}

func TestDecodeConditionalJump(t *testing.T) {
	// 0xCA = JP Z,$1234
	i, _, err := Decode([3]byte{0xCA, 0x34, 0x12})
	assert.NoError(t, err)
	assert.Equal(t, JumpConditional, i.Kind)
	assert.Equal(t, register.Z, i.Condition)
	assert.True(t, i.Conditional)
	assert.Equal(t, uint16(0x1234), i.Addr)
	assert.Equal(t, uint8(12), i.Cost(false))
	assert.Equal(t, uint8(16), i.Cost(true))
}

func TestDecodeRST(t *testing.T) {
	// 0xEF = RST $28
	i, _, err := Decode([3]byte{0xEF, 0x00, 0x00})
	assert.NoError(t, err)
	assert.Equal(t, Reset, i.Kind)
	assert.Equal(t, uint16(0x28), i.Addr)
}

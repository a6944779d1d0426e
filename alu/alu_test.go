package alu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"lr35902/flags"
)

func TestAdd8(t *testing.T) {
	// ADD A,(HL) with A=0x3C, mem=0x12 -> A=0x4E, F=0x00
	result, f := Add8(0x3C, 0x12)
	assert.Equal(t, byte(0x4E), result)
	assert.Equal(t, byte(0x00), f.Byte())

	// ADD A,B with A=0x3A, B=0xC6 -> A=0x00, F=Z|H|C=0xB0
	result, f = Add8(0x3A, 0xC6)
	assert.Equal(t, byte(0x00), result)
	assert.Equal(t, byte(0xB0), f.Byte())
}

func TestAdc8CarryParticipates(t *testing.T) {
	result, f := Adc8(0x0F, 0x00, true)
	assert.Equal(t, byte(0x10), result)
	assert.True(t, f.HalfCarry())
}

func TestSub8SetsCarryIffLess(t *testing.T) {
	cases := []struct{ a, b byte }{
		{0x10, 0x20}, {0x20, 0x10}, {0x00, 0x00}, {0xFF, 0x01},
	}
	for _, c := range cases {
		_, f := Sub8(c.a, c.b)
		assert.Equal(t, c.a < c.b, f.Carry())
	}
}

func TestCp8(t *testing.T) {
	// CP A with A=0x3C, immediate 0x3C -> F=Z|N=0xC0
	f := Cp8(0x3C, 0x3C)
	assert.Equal(t, byte(0xC0), f.Byte())

	// CP A,B with A=0x3C, B=0x2F -> F=N|H=0x60
	f = Cp8(0x3C, 0x2F)
	assert.Equal(t, byte(0x60), f.Byte())
}

func TestIncDecPreserveCarry(t *testing.T) {
	old := flags.New(false, false, false, true)
	result, f := Inc8(0x0F, old)
	assert.Equal(t, byte(0x10), result)
	assert.True(t, f.HalfCarry())
	assert.True(t, f.Carry())
	assert.False(t, f.Subtract())

	result, f = Dec8(0x10, old)
	assert.Equal(t, byte(0x0F), result)
	assert.True(t, f.HalfCarry())
	assert.True(t, f.Carry())
	assert.True(t, f.Subtract())
}

func TestAdd16PreservesZero(t *testing.T) {
	old := flags.New(true, true, true, true)
	result, f := Add16(0x0FFF, 0x0001, old)
	assert.Equal(t, uint16(0x1000), result)
	assert.True(t, f.Zero())
	assert.False(t, f.Subtract())
	assert.True(t, f.HalfCarry())
	assert.False(t, f.Carry())
}

func TestBitwiseHalfCarry(t *testing.T) {
	_, f := And8(0xFF, 0x0F)
	assert.True(t, f.HalfCarry())
	_, f = Or8(0x00, 0x00)
	assert.False(t, f.HalfCarry())
	assert.True(t, f.Zero())
	_, f = Xor8(0xFF, 0xFF)
	assert.True(t, f.Zero())
}

func TestSwapRoundTrips(t *testing.T) {
	swapped, _ := Swap8(0xAB)
	assert.Equal(t, byte(0xBA), swapped)
	back, f := Swap8(swapped)
	assert.Equal(t, byte(0xAB), back)
	assert.False(t, f.Subtract())
	assert.False(t, f.HalfCarry())
	assert.False(t, f.Carry())
}

func TestShiftsEjectCorrectBit(t *testing.T) {
	result, f := Sla8(0x81)
	assert.Equal(t, byte(0x02), result)
	assert.True(t, f.Carry())

	result, f = Srl8(0x01)
	assert.Equal(t, byte(0x00), result)
	assert.True(t, f.Carry())
	assert.True(t, f.Zero())

	result, f = Sra8(0x81)
	assert.Equal(t, byte(0xC0), result)
	assert.True(t, f.Carry())
}

func TestRotatesThroughCarryVsNot(t *testing.T) {
	result, f := Rl8(0x80, false)
	assert.Equal(t, byte(0x00), result)
	assert.True(t, f.Carry())

	result, f = Rr8(0x01, true)
	assert.Equal(t, byte(0x80), result)
	assert.True(t, f.Carry())

	result, f = Rlc8(0x80)
	assert.Equal(t, byte(0x01), result)
	assert.True(t, f.Carry())

	result, f = Rrc8(0x01)
	assert.Equal(t, byte(0x80), result)
	assert.True(t, f.Carry())
}

func TestBitResSet(t *testing.T) {
	old := flags.New(false, false, false, true)
	f := Bit(0b0000_0100, 2, old)
	assert.False(t, f.Zero())
	assert.True(t, f.HalfCarry())
	assert.True(t, f.Carry())

	f = Bit(0b0000_0100, 3, old)
	assert.True(t, f.Zero())

	assert.Equal(t, byte(0b0000_0000), Res(0b0000_0100, 2))
	assert.Equal(t, byte(0b1000_0100), Set(0b0000_0100, 7))
}

func TestDaaAfterAddition(t *testing.T) {
	// BCD 15 + BCD 27 = 42; binary sum is 0x3C, DAA corrects to 0x42.
	sum, f := Add8(0x15, 0x27)
	result, f2 := Daa(sum, f)
	assert.Equal(t, byte(0x42), result)
	assert.False(t, f2.HalfCarry())
	assert.False(t, f2.Zero())
}

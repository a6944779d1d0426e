package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAMReadWrite(t *testing.T) {
	r := NewRAM()
	assert.NoError(t, r.Write(0x1234, 0x56))
	v, err := r.Read(0x1234)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x56), v)
}

func TestRAM16LittleEndian(t *testing.T) {
	r := NewRAM()
	assert.NoError(t, r.Write16(0x1000, 0xBEEF))
	lo, _ := r.Read(0x1000)
	hi, _ := r.Read(0x1001)
	assert.Equal(t, byte(0xEF), lo)
	assert.Equal(t, byte(0xBE), hi)

	v, err := r.Read16(0x1000)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)
}

func TestRAMInterruptEnable(t *testing.T) {
	r := NewRAM()
	r.SetInterruptEnable(0x1F)
	assert.Equal(t, byte(0x1F), r.InterruptEnable())
}

func TestRAMNeverRaisesInterrupts(t *testing.T) {
	r := NewRAM()
	_, ok := r.Pump(1000)
	assert.False(t, ok)
	assert.Equal(t, ^uint64(0), r.NextEventCycle())
}

func TestInterruptVectors(t *testing.T) {
	assert.Equal(t, Address(0x0040), VBlank.Vector())
	assert.Equal(t, Address(0x0048), LCDStat.Vector())
	assert.Equal(t, Address(0x0050), Timer.Vector())
	assert.Equal(t, Address(0x0058), Serial.Vector())
	assert.Equal(t, Address(0x0060), Joypad.Vector())
}

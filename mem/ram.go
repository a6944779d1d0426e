package mem

import (
	"fmt"

	"lr35902/mask"
)

// RAM is a flat, 64 KiB, no-mirroring bus implementation: every address
// back a byte of storage directly. It has no peripherals of its own, so
// Pump never raises an interrupt and NextEventCycle always reports "no
// event pending" by returning the maximum representable cycle. It exists
// for tests and for the bundled debugger to drive the CPU against
// something concrete; a full host wires a real cartridge/PPU/APU/joypad
// stack behind its own Bus implementation instead.
type RAM struct {
	data [64 * 1024]byte
	ie   byte
}

// NewRAM returns a zeroed 64 KiB bus.
func NewRAM() *RAM {
	return &RAM{}
}

func (r *RAM) Read(a Address) (byte, error) {
	return r.data[a], nil
}

func (r *RAM) Write(a Address, v byte) error {
	r.data[a] = v
	return nil
}

func (r *RAM) Read16(a Address) (uint16, error) {
	lo, err := r.Read(a)
	if err != nil {
		return 0, err
	}
	hi, err := r.Read(a + 1)
	if err != nil {
		return 0, err
	}
	return mask.Word(hi, lo), nil
}

func (r *RAM) Write16(a Address, v uint16) error {
	if err := r.Write(a, mask.Lo(v)); err != nil {
		return err
	}
	return r.Write(a+1, mask.Hi(v))
}

// LoadProgram copies program into RAM starting at offset, for tests and the
// bundled debugger to seed a ROM image without a real cartridge behind the
// bus.
func (r *RAM) LoadProgram(program []byte, offset Address) {
	copy(r.data[offset:], program)
}

func (r *RAM) InterruptEnable() byte     { return r.ie }
func (r *RAM) SetInterruptEnable(v byte) { r.ie = v }

func (r *RAM) Pump(currentCycle uint64) (Interrupt, bool) {
	return 0, false
}

func (r *RAM) NextEventCycle() uint64 {
	return ^uint64(0)
}

var _ Bus = (*RAM)(nil)

func (r *RAM) String() string {
	return fmt.Sprintf("RAM{ie=%#02x}", r.ie)
}

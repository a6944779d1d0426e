// Package mem defines the memory-bus contract the CPU core requires of
// its host, the five interrupt-source identifiers the bus signals through,
// and a reference in-memory bus implementation adequate for tests and for
// the bundled debugger.
package mem

import (
	"errors"
	"fmt"
)

// Address is a 16-bit byte-addressable location. Arithmetic on Address
// wraps at 16 bits; the type carries no notion of bank-switching itself
// (that belongs to a cartridge implementation sitting behind a Bus).
type Address uint16

func (a Address) String() string { return fmt.Sprintf("$%04X", uint16(a)) }

// ExtendedAddress pairs an Address with the ROM bank it was fetched from,
// so a trace entry stays meaningful after a bank switch. This core has no
// cartridge/bank controller, so Bank is always 0: the CPU fills in only
// Address when it records a trace entry, and the Bus interface has no way
// to report a bank.
type ExtendedAddress struct {
	Address Address
	Bank    int
}

func (e ExtendedAddress) String() string {
	if e.Bank == 0 {
		return e.Address.String()
	}
	return fmt.Sprintf("%s@bank%d", e.Address, e.Bank)
}

// ErrBusRead and ErrBusWrite are the sentinels a Bus implementation wraps
// when it rejects an access (unmapped region, read-only violation).
var (
	ErrBusRead  = errors.New("mem: bus rejected read")
	ErrBusWrite = errors.New("mem: bus rejected write")
)

// Interrupt identifies one of the five interrupt sources, in priority
// order (lower values are serviced first when more than one is pending).
type Interrupt byte

const (
	VBlank Interrupt = iota
	LCDStat
	Timer
	Serial
	Joypad
)

func (i Interrupt) String() string {
	switch i {
	case VBlank:
		return "VBlank"
	case LCDStat:
		return "LCDStat"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	default:
		return fmt.Sprintf("Interrupt(%d)", byte(i))
	}
}

// Vector returns the fixed address the CPU jumps to when servicing this
// interrupt.
func (i Interrupt) Vector() Address {
	switch i {
	case VBlank:
		return 0x0040
	case LCDStat:
		return 0x0048
	case Timer:
		return 0x0050
	case Serial:
		return 0x0058
	case Joypad:
		return 0x0060
	default:
		return 0x0000
	}
}

// Bus is the contract the CPU core requires of its host: byte/word
// read-write, the interrupt-enable register, and a way to advance
// peripherals in step with the cycle counter. The cartridge, PPU, APU,
// and joypad all live behind one of these, out of this core's scope.
type Bus interface {
	Read(a Address) (byte, error)
	Write(a Address, v byte) error
	Read16(a Address) (uint16, error)
	Write16(a Address, v uint16) error

	// InterruptEnable returns the IE register; bits 0-4 correspond to
	// VBlank, LCDStat, Timer, Serial, Joypad in that order.
	InterruptEnable() byte
	SetInterruptEnable(byte)

	// Pump advances attached peripherals up to currentCycle and reports
	// whether one of them raised an interrupt during the advance. It may
	// be called more than once per instruction.
	Pump(currentCycle uint64) (Interrupt, bool)

	// NextEventCycle reports the cycle at which the next peripheral event
	// is due, for halt coalescing to fast-forward to.
	NextEventCycle() uint64
}

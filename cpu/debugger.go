package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"lr35902/mem"
	"lr35902/register"
)

// model is the bubbletea model driving the interactive debugger: a CPU
// bound to an in-memory RAM bus, the offset the loaded program starts at
// for page-table rendering, and the PC/error from the previous step.
type model struct {
	cpu     *CPU
	ram     *mem.RAM
	program []byte

	offset mem.Address
	prevPC mem.Address
	err    error
}

// Init loads the program into the RAM bus at offset and positions PC there.
func (m model) Init() tea.Cmd {
	m.ram.LoadProgram(m.program, m.offset)
	m.cpu.WriteRegister16(register.PC, uint16(m.offset))
	return nil
}

// Update advances the CPU one instruction per space/j keypress, sets a
// breakpoint at the current PC with b (pressing b again does not remove
// it), and quits on q or a run-cycle error.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC()
			if err := m.cpu.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "b":
			m.cpu.AddBreakpoint(m.cpu.PC())
		}
	}
	return m, nil
}

// renderPage renders one 16-byte row as a line, highlighting the byte at
// the current PC.
func (m model) renderPage(start mem.Address) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := mem.Address(0); i < 16; i++ {
		b, _ := m.ram.Read(start + i)
		if start+i == m.cpu.PC() {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

// status renders the register file, stack pointer, cycle count, and flags.
func (m model) status() string {
	f := m.cpu.flags()
	var flags string
	for _, set := range []bool{f.Zero(), f.Subtract(), f.HalfCarry(), f.Carry()} {
		if set {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
 A: %02x   F: %02x
 B: %02x   C: %02x
 D: %02x   E: %02x
 H: %02x   L: %02x
cycle: %d  ime: %v  halted: %v
Z N H C
`,
		m.cpu.PC(), m.prevPC,
		m.cpu.SP(),
		m.cpu.ReadRegister8(register.A), m.cpu.ReadRegister8(register.F),
		m.cpu.ReadRegister8(register.B), m.cpu.ReadRegister8(register.C),
		m.cpu.ReadRegister8(register.D), m.cpu.ReadRegister8(register.E),
		m.cpu.ReadRegister8(register.H), m.cpu.ReadRegister8(register.L),
		m.cpu.Cycle(), m.cpu.IME(), m.cpu.Halted(),
	) + flags
}

// pageTable renders five fixed pages at the bottom of memory plus the five
// pages starting at the program's offset. The pages do not follow PC: the
// current instruction is highlighted only while PC lies inside one of them.
func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	offsets := []mem.Address{
		0, 16, 32, 48, 64,
		m.offset,
		m.offset + 16,
		m.offset + 32,
		m.offset + 48,
		m.offset + 64,
	}
	for _, a := range offsets {
		pages = append(pages, m.renderPage(a))
	}
	return strings.Join(pages, "\n")
}

// View renders the page table, register status, and a spew dump of the
// current trace entry.
func (m model) View() string {
	var current string
	if trace := m.cpu.Trace(); len(trace) > 0 {
		current = spew.Sdump(trace[len(trace)-1])
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		current,
	)
}

// Debug loads program into a fresh RAM bus at offset, constructs a CPU
// bound to it, and starts an interactive TUI for single-stepping and
// breakpoint management.
func Debug(program []byte, offset mem.Address) {
	ram := mem.NewRAM()
	c := New(ram)

	m, err := tea.NewProgram(model{
		cpu:     c,
		ram:     ram,
		program: program,
		offset:  offset,
	}).Run()
	if err != nil {
		panic(err)
	}
	x := m.(model)
	if x.err != nil {
		fmt.Println("Error:", x.err)
	}
}

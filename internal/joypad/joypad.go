// Package joypad implements the 2x4 button matrix exposed at P1 (0xFF00).
package joypad

import "github.com/aeonsys/dmgcore/internal/interrupts"

// Button identifies one of the eight physical buttons.
type Button uint8

const (
	Right Button = 1 << iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// State tracks pressed buttons and the two select lines written to P1.
type State struct {
	pressed uint8 // bit set = pressed, for all eight buttons

	selectDirections bool
	selectButtons    bool
}

// New returns a joypad with no buttons pressed.
func New() *State {
	return &State{}
}

// SetButton applies a host-reported press/release. Requests a Joypad
// interrupt on any 0->1 transition within the currently selected row,
// mirroring real hardware wake-on-input behavior.
func (s *State) SetButton(b Button, pressed bool, ic *interrupts.Controller) {
	was := s.pressed&uint8(b) != 0
	if pressed {
		s.pressed |= uint8(b)
	} else {
		s.pressed &^= uint8(b)
	}
	if pressed && !was && s.selected(b) {
		ic.Request(interrupts.Joypad)
	}
}

func (s *State) selected(b Button) bool {
	switch b {
	case Right, Left, Up, Down:
		return s.selectDirections
	default:
		return s.selectButtons
	}
}

// Read returns the P1 register value: bits 0-3 are the active-low state of
// whichever row is selected, bits 4-5 echo the select lines, bits 6-7 read
// as 1.
func (s *State) Read() uint8 {
	v := uint8(0xC0)
	if !s.selectDirections {
		v |= 0x10
	}
	if !s.selectButtons {
		v |= 0x20
	}

	row := uint8(0)
	if s.selectDirections {
		row |= s.rowBit(Right, 0) | s.rowBit(Left, 1) | s.rowBit(Up, 2) | s.rowBit(Down, 3)
	}
	if s.selectButtons {
		row |= s.rowBit(A, 0) | s.rowBit(B, 1) | s.rowBit(Select, 2) | s.rowBit(Start, 3)
	}
	return v | (^row & 0x0F)
}

func (s *State) rowBit(b Button, shift uint8) uint8 {
	if s.pressed&uint8(b) != 0 {
		return 1 << shift
	}
	return 0
}

// Write sets the P1 select lines (bits 4 and 5 only; the low nibble is
// read-only from the CPU's perspective).
func (s *State) Write(v uint8) {
	s.selectDirections = v&0x10 == 0
	s.selectButtons = v&0x20 == 0
}

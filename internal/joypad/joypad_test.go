package joypad

import (
	"testing"

	"github.com/aeonsys/dmgcore/internal/interrupts"
	"github.com/stretchr/testify/assert"
)

func TestReadDefaultsToAllReleased(t *testing.T) {
	s := New()
	s.Write(0x00) // select both rows
	assert.Equal(t, uint8(0x0F), s.Read()&0x0F)
}

func TestSelectedRowReflectsPressedButtons(t *testing.T) {
	s := New()
	ic := interrupts.New()
	s.Write(0x20) // select directions only (bit 4 low)
	s.SetButton(Right, true, ic)

	assert.Equal(t, uint8(0), s.Read()&0x01)
	assert.Equal(t, uint8(1), (s.Read()>>1)&0x01)
}

func TestTransitionInSelectedRowRequestsInterrupt(t *testing.T) {
	s := New()
	ic := interrupts.New()
	s.Write(0x20) // directions selected

	s.SetButton(A, true, ic) // buttons row not selected
	assert.Equal(t, uint8(0), ic.IF)

	s.SetButton(Down, true, ic)
	assert.NotEqual(t, uint8(0), ic.IF&uint8(interrupts.Joypad))
}

func TestNoInterruptOnRelease(t *testing.T) {
	s := New()
	ic := interrupts.New()
	s.Write(0x20)
	s.SetButton(Up, true, ic)
	ic.IF = 0

	s.SetButton(Up, false, ic)
	assert.Equal(t, uint8(0), ic.IF)
}

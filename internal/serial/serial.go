// Package serial implements the DMG serial port's shift register contract.
// The TCP-based link-cable wire protocol is informative only (spec §4.8);
// this package models the register and clocking behavior a connected (or
// unplugged) link partner would observe.
package serial

import "github.com/aeonsys/dmgcore/internal/interrupts"

// shiftPeriod is the number of T-cycles per shift at the DMG's internal
// 8192 Hz clock (4,194,304 / 8192 == 512 T-cycles between shifts).
const shiftPeriod = 512

// Controller holds SB, SC and the shift-clock accumulator.
type Controller struct {
	sb uint8

	transferStart bool
	internalClock bool

	cycles uint16
	shifts uint8

	// Peer, if non-nil, supplies the incoming bit stream for a connected
	// link partner. When nil the port behaves as unplugged: incoming
	// bits read as 1.
	Peer func(out uint8) (in uint8)
}

// New returns a serial controller in its idle state.
func New() *Controller {
	return &Controller{sb: 0xFF}
}

// ReadSB returns the shift register contents.
func (c *Controller) ReadSB() uint8 { return c.sb }

// WriteSB sets the shift register contents.
func (c *Controller) WriteSB(v uint8) { c.sb = v }

// ReadSC returns the SC register; bits 1-6 always read as 1 on DMG.
func (c *Controller) ReadSC() uint8 {
	v := uint8(0x7E)
	if c.transferStart {
		v |= 0x80
	}
	if c.internalClock {
		v |= 0x01
	}
	return v
}

// WriteSC updates SC. Starting an internally-clocked transfer begins an
// 8-bit shift.
func (c *Controller) WriteSC(v uint8) {
	c.internalClock = v&0x01 != 0
	starting := v&0x80 != 0
	if starting && !c.transferStart {
		c.transferStart = true
		c.shifts = 0
		c.cycles = 0
	} else if !starting {
		c.transferStart = false
	}
}

// Step advances the shift register by one T-cycle, requesting a Serial
// interrupt once 8 bits have shifted.
func (c *Controller) Step(ic *interrupts.Controller) {
	if !c.transferStart || !c.internalClock {
		return
	}

	c.cycles++
	if c.cycles < shiftPeriod {
		return
	}
	c.cycles = 0

	var in uint8 = 1
	out := (c.sb >> 7) & 1
	if c.Peer != nil {
		in = c.Peer(out)
	}
	c.sb = (c.sb << 1) | in

	c.shifts++
	if c.shifts >= 8 {
		c.transferStart = false
		ic.Request(interrupts.Serial)
	}
}

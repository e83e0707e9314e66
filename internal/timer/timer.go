// Package timer implements the DMG divider/timer block: a free-running
// 16-bit counter whose upper byte is DIV, and TIMA/TMA/TAC, driven one
// T-cycle at a time with falling-edge detection and the 4-cycle overflow
// delay.
package timer

import "github.com/aeonsys/dmgcore/internal/interrupts"

// selectBits maps a TAC clock_select value to the bit of the free-running
// counter whose falling edge increments TIMA.
var selectBits = [4]uint8{9, 3, 5, 7}

// Timer holds the divider/timer state machine.
type Timer struct {
	counter uint16
	tima    uint8
	tma     uint8
	tac     uint8

	overflowDelay uint8
}

// New returns a timer in its post-boot state.
func New() *Timer {
	return &Timer{counter: 0xABCC}
}

func (t *Timer) selectedBit() uint16 {
	return 1 << selectBits[t.tac&0x3]
}

func (t *Timer) enabled() bool {
	return t.tac&0x4 != 0
}

// Step advances the timer by one T-cycle, requesting a Timer interrupt via
// ic when TIMA overflows and its delay elapses.
func (t *Timer) Step(ic *interrupts.Controller) {
	old := t.counter
	t.counter++

	if t.overflowDelay > 0 {
		t.overflowDelay--
		if t.overflowDelay == 0 {
			t.tima = t.tma
			ic.Request(interrupts.Timer)
		}
	}

	if t.enabled() {
		mask := t.selectedBit()
		if old&mask != 0 && t.counter&mask == 0 {
			t.increment()
		}
	}
}

func (t *Timer) increment() {
	t.tima++
	if t.tima == 0 {
		t.overflowDelay = 4
	}
}

// DIV returns the divider register: the counter's upper 8 bits.
func (t *Timer) DIV() uint8 {
	return uint8(t.counter >> 8)
}

// WriteDIV resets the entire 16-bit counter to zero. If the previously
// selected multiplexer bit was set and the timer is enabled, this is a
// falling edge and TIMA increments immediately.
func (t *Timer) WriteDIV() {
	old := t.counter
	t.counter = 0
	if t.enabled() && old&t.selectedBit() != 0 {
		t.increment()
	}
}

// TIMA returns the current TIMA value.
func (t *Timer) TIMA() uint8 { return t.tima }

// WriteTIMA sets TIMA directly, e.g. from a CPU bus write. A write during
// the overflow delay window cancels the pending TMA reload.
func (t *Timer) WriteTIMA(v uint8) {
	t.tima = v
	t.overflowDelay = 0
}

// TMA returns the current TMA value.
func (t *Timer) TMA() uint8 { return t.tma }

// WriteTMA sets TMA.
func (t *Timer) WriteTMA(v uint8) { t.tma = v }

// TAC returns the TAC register; the top five bits always read back as 1.
func (t *Timer) TAC() uint8 { return t.tac | 0xF8 }

// WriteTAC updates TAC. If the multiplexer output (enable AND selected
// bit) falls from 1 to 0 as a result of this write, TIMA increments
// immediately, matching the real hardware's edge-triggered behavior.
func (t *Timer) WriteTAC(v uint8) {
	oldMux := t.enabled() && t.counter&t.selectedBit() != 0

	t.tac = v & 0x7

	newMux := t.enabled() && t.counter&t.selectedBit() != 0
	if oldMux && !newMux {
		t.increment()
	}
}

// Package cpu implements the Sharp LR35902 interpreter: the register file,
// the 256-entry primary and CB-prefixed opcode tables, and the T-cycle
// granular step/idle-cycle accounting of spec §4.1.
package cpu

import "github.com/aeonsys/dmgcore/internal/interrupts"

// Bus is the memory view the CPU reads and writes through. The MMU
// satisfies this.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Status reports the outcome of the most recent Step call.
type Status uint8

const (
	Running Status = iota
	Fatal          // an illegal opcode was fetched; the CPU cannot continue
)

// CPU holds the register file, program counter/stack pointer and the
// idle-cycle countdown that makes Step() T-cycle granular rather than
// instruction granular.
type CPU struct {
	Registers
	PC uint16
	SP uint16

	halt bool
	stop bool

	haltBugPending bool

	cycleNb     uint64
	idleCycles  uint8

	status Status

	bus Bus
	ic  *interrupts.Controller

	// ResetDIV is invoked by STOP, which resets the divider alongside
	// halting (spec §4.1). Wired by the System aggregate since the CPU
	// does not itself own the timer.
	ResetDIV func()
}

// New returns a CPU with PC/SP/registers at their documented post-boot
// values (spec §3) and IME disabled.
func New(bus Bus, ic *interrupts.Controller) *CPU {
	c := &CPU{bus: bus, ic: ic}
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	return c
}

// Status reports whether the CPU is still runnable.
func (c *CPU) Status() Status { return c.status }

// CycleCount returns the monotonic T-cycle counter since construction.
func (c *CPU) CycleCount() uint64 { return c.cycleNb }

// Step advances the CPU by exactly one T-cycle (spec §4.1).
func (c *CPU) Step() {
	c.cycleNb++

	if c.status == Fatal {
		return
	}

	if c.idleCycles > 0 {
		c.idleCycles--
		return
	}

	if c.halt {
		if c.ic.AnyPendingRaw() {
			c.halt = false
		} else {
			return
		}
	}

	if f, ok := c.ic.NextVector(); ok {
		c.serviceInterrupt(f)
		return
	}

	c.dispatch()
}

// serviceInterrupt pushes PC, jumps to the interrupt vector and charges
// the fixed 20 T-cycle ISR entry cost (spec §4.2).
func (c *CPU) serviceInterrupt(f interrupts.Flag) {
	c.ic.Acknowledge(f)
	c.push16(c.PC)
	c.PC = f.Vector()
	c.idleCycles = 19 // 20 T-cycles total; this Step consumed the first
}

// dispatch fetches one instruction (or CB-prefixed instruction), executes
// it, and charges idle cycles for the remainder of its cost.
func (c *CPU) dispatch() {
	// snapshot before this instruction runs: EI's own dispatch call is the
	// one that sets EnableScheduled, so ticking it here (rather than
	// unconditionally below) defers IME->Enabled to the instruction that
	// follows EI, not EI itself.
	scheduled := c.ic.IME == interrupts.EnableScheduled

	opcode := c.bus.Read(c.PC)

	if c.haltBugPending {
		// the halt bug re-reads the byte after HALT without advancing PC
		c.haltBugPending = false
	} else {
		c.PC++
	}

	if opcode == 0xCB {
		cbOp := c.bus.Read(c.PC)
		c.PC++
		entry := cbTable[cbOp]
		entry.Execute(c)
		c.idleCycles = entry.Cycles - 1
		if scheduled {
			c.ic.Tick()
		}
		return
	}

	entry := primaryTable[opcode]
	if entry.Illegal {
		c.status = Fatal
		return
	}

	operandLen := entry.Length - 1
	var operands [2]byte
	for i := uint8(0); i < operandLen; i++ {
		operands[i] = c.bus.Read(c.PC + uint16(i))
	}
	c.PC += uint16(operandLen)

	taken := entry.Execute(c, operands[:operandLen])

	cycles := entry.CyclesUntaken
	if taken {
		cycles = entry.CyclesTaken
	}
	c.idleCycles = cycles - 1

	// resolves EI's EnableScheduled -> Enabled one instruction after EI,
	// never during EI's own dispatch call
	if scheduled {
		c.ic.Tick()
	}
}

func (c *CPU) push16(v uint16) {
	c.SP -= 2
	c.bus.Write(c.SP, uint8(v))
	c.bus.Write(c.SP+1, uint8(v>>8))
}

func (c *CPU) pop16() uint16 {
	lo := c.bus.Read(c.SP)
	hi := c.bus.Read(c.SP + 1)
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}

// doHalt implements the HALT opcode: if IME is disabled and an interrupt is
// already pending, the halt bug fires (the next opcode byte is read
// twice); otherwise the CPU stops fetching until IE&IF is non-zero.
func (c *CPU) doHalt() {
	if c.ic.IME != interrupts.Enabled && c.ic.AnyPendingRaw() {
		c.haltBugPending = true
		return
	}
	c.halt = true
}

func (c *CPU) doStop() {
	c.halt = true
	c.stop = true
	if c.ResetDIV != nil {
		c.ResetDIV()
	}
}

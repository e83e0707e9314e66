package ppu

import (
	"testing"

	"github.com/aeonsys/dmgcore/internal/addr"
	"github.com/aeonsys/dmgcore/internal/interrupts"
	"github.com/stretchr/testify/assert"
)

func stepN(p *PPU, ic *interrupts.Controller, n int) {
	for i := 0; i < n; i++ {
		p.Step(ic)
	}
}

func TestModeSequenceForOneLine(t *testing.T) {
	p := New()
	ic := interrupts.New()

	assert.Equal(t, OAMScan, p.CurrentMode())
	stepN(p, ic, oamCycles)
	assert.Equal(t, Draw, p.CurrentMode())
	stepN(p, ic, drawCycles)
	assert.Equal(t, HBlank, p.CurrentMode())
	stepN(p, ic, cyclesPerLine-oamCycles-drawCycles)
	assert.Equal(t, OAMScan, p.CurrentMode())
	assert.Equal(t, uint8(1), p.ly)
}

func TestVBlankEntryRequestsInterruptAndPresents(t *testing.T) {
	p := New()
	ic := interrupts.New()
	presented := false
	p.Present = func(fb [ScreenHeight][ScreenWidth]uint8) { presented = true }

	stepN(p, ic, cyclesPerLine*vblankLine)

	assert.Equal(t, VBlank, p.CurrentMode())
	assert.NotEqual(t, uint8(0), ic.IF&uint8(interrupts.VBlank))
	assert.True(t, presented)
}

func TestFullFrameReturnsToOAMScanAtLine0(t *testing.T) {
	p := New()
	ic := interrupts.New()
	stepN(p, ic, TicksPerFrame)
	assert.Equal(t, uint8(0), p.ly)
	assert.Equal(t, OAMScan, p.CurrentMode())
}

// TestDMABlocksOAMAndHonorsAccessMode is the spec's DMA-blocking scenario:
// OAM reads return the sentinel while a transfer is in progress, and the
// copy lands correctly once it completes.
func TestDMABlocksOAMAndHonorsAccessMode(t *testing.T) {
	p := New()
	ic := interrupts.New()
	p.SetDMASource(func(address uint16) uint8 { return uint8(address) })

	// advance into HBlank so OAM isn't also blocked by mode 2/3
	stepN(p, ic, oamCycles+drawCycles)
	assert.Equal(t, HBlank, p.CurrentMode())

	p.Write(addr.DMA, 0xC0)
	assert.True(t, p.InDMA())
	assert.Equal(t, uint8(0xFF), p.ReadOAM(addr.OAMStart))

	stepN(p, ic, 0xA0)
	assert.False(t, p.InDMA())
	assert.Equal(t, uint8(0x00), p.ReadOAM(addr.OAMStart))
}

func TestVRAMBlockedDuringDrawUnlessRelaxed(t *testing.T) {
	p := New()
	ic := interrupts.New()
	stepN(p, ic, oamCycles)
	assert.Equal(t, Draw, p.CurrentMode())

	p.WriteVRAM(addr.VRAMStart, 0x42) // ignored, blocked
	assert.Equal(t, uint8(0xFF), p.ReadVRAM(addr.VRAMStart))

	p.Relax.Relaxed = true
	p.WriteVRAM(addr.VRAMStart, 0x42)
	assert.Equal(t, uint8(0x42), p.ReadVRAM(addr.VRAMStart))
}

func TestLYCCoincidenceRequestsLCDStat(t *testing.T) {
	p := New()
	ic := interrupts.New()
	p.lyc = 1
	p.Write(addr.STAT, 0x40) // enable LYC=LY interrupt source

	stepN(p, ic, cyclesPerLine)
	assert.NotEqual(t, uint8(0), ic.IF&uint8(interrupts.LCDStat))
}

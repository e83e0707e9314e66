// Package ppu implements the DMG pixel-processing unit's mode sequencing,
// OAM DMA engine, and four-shade scanline renderer. CGB palettes and
// sub-instruction tile-fetch timing are out of scope (spec §1 Non-goals);
// the cycle-accurate contract is the mode-2/3/0 sequencing and DMA timing
// of spec §4.6.
package ppu

import (
	"github.com/aeonsys/dmgcore/internal/addr"
	"github.com/aeonsys/dmgcore/internal/corelog"
	"github.com/aeonsys/dmgcore/internal/interrupts"
	"github.com/sirupsen/logrus"
)

// Mode is the current value exposed in STAT bits 0-1.
type Mode uint8

const (
	HBlank Mode = 0
	VBlank Mode = 1
	OAMScan Mode = 2
	Draw    Mode = 3
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	cyclesPerLine = 456
	oamCycles     = 80
	drawCycles    = 172
	// hblankCycles is the remainder: 456 - 80 - 172 == 204
	linesPerFrame = 154
	vblankLine    = 144
)

// TicksPerFrame is the T-cycle length of one full 154-line frame:
// 456 cycles/line * 154 lines == 70,224.
const TicksPerFrame = cyclesPerLine * linesPerFrame

// AccessBlock controls whether VRAM/OAM reads during the PPU's busy modes
// return the real value instead of the sentinel 0xFF. Default false
// (blocked), per spec §9's "default must be blocked, optional relaxation".
type AccessBlock struct {
	Relaxed bool
}

// PPU holds LCD registers, VRAM/OAM, the DMA engine and the output
// framebuffer.
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc uint8
	stat uint8
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	mode        Mode
	lineCycles  uint32
	frameCycles uint32

	dma DMA

	// dmaSource resolves a DMA source byte from outside VRAM (ROM, WRAM,
	// cartridge RAM); wired by the MMU at construction since the PPU does
	// not itself own those regions.
	dmaSource func(address uint16) uint8

	Relax AccessBlock

	framebuffer [ScreenHeight][ScreenWidth]uint8

	// Present is invoked with the completed framebuffer on the VBlank
	// edge; it is the only sanctioned way for pixels to leave the core.
	Present func(fb [ScreenHeight][ScreenWidth]uint8)

	log *logrus.Entry
}

// New returns a PPU in its post-boot state (LCD on, mode 2, LY 0).
func New() *PPU {
	p := &PPU{lcdc: 0x91, bgp: 0xFC, mode: OAMScan, log: corelog.Component(corelog.New(), "ppu")}
	return p
}

// SetLogger attaches l as the destination for this PPU's component-scoped
// log entries (DMA source page out of range), matching the MMU's
// SetLogger convention.
func (p *PPU) SetLogger(l *logrus.Logger) {
	p.log = corelog.Component(l, "ppu")
}

func (p *PPU) lcdEnabled() bool { return p.lcdc&addr.Bit7 != 0 }

// Step advances the PPU (and its DMA engine) by one T-cycle, requesting
// interrupts via ic and delivering a finished frame via Present.
func (p *PPU) Step(ic *interrupts.Controller) {
	p.dma.step(p)

	if !p.lcdEnabled() {
		return
	}

	p.lineCycles++
	p.frameCycles++

	switch p.mode {
	case OAMScan:
		if p.lineCycles >= oamCycles {
			p.setMode(Draw, ic)
		}
	case Draw:
		if p.lineCycles >= oamCycles+drawCycles {
			p.renderScanline()
			p.setMode(HBlank, ic)
		}
	case HBlank:
		if p.lineCycles >= cyclesPerLine {
			p.lineCycles = 0
			p.ly++
			p.checkLYC(ic)
			if p.ly == vblankLine {
				p.setMode(VBlank, ic)
				ic.Request(interrupts.VBlank)
				if p.Present != nil {
					p.Present(p.framebuffer)
				}
			} else {
				p.setMode(OAMScan, ic)
			}
		}
	case VBlank:
		if p.lineCycles >= cyclesPerLine {
			p.lineCycles = 0
			p.ly++
			if p.ly >= linesPerFrame {
				p.ly = 0
				p.frameCycles = 0
				p.setMode(OAMScan, ic)
			}
			p.checkLYC(ic)
		}
	}
}

func (p *PPU) setMode(m Mode, ic *interrupts.Controller) {
	p.mode = m
	src := uint8(0)
	switch m {
	case HBlank:
		src = addr.Bit3
	case VBlank:
		src = addr.Bit4
	case OAMScan:
		src = addr.Bit5
	}
	if src != 0 && p.stat&src != 0 {
		ic.Request(interrupts.LCDStat)
	}
}

func (p *PPU) checkLYC(ic *interrupts.Controller) {
	if p.ly == p.lyc {
		p.stat |= addr.Bit2
		if p.stat&addr.Bit6 != 0 {
			ic.Request(interrupts.LCDStat)
		}
	} else {
		p.stat &^= addr.Bit2
	}
}

// CurrentMode reports the current STAT mode; the MMU uses this to decide whether
// VRAM/OAM reads are blocked.
func (p *PPU) CurrentMode() Mode { return p.mode }

// InDMA reports whether an OAM DMA transfer is in progress.
func (p *PPU) InDMA() bool { return p.dma.active }

// SetDMASource wires the callback used to resolve DMA source bytes that
// fall outside VRAM.
func (p *PPU) SetDMASource(f func(address uint16) uint8) { p.dmaSource = f }

// ReadVRAM reads a VRAM byte, returning 0xFF when blocked by mode 3 unless
// relaxed.
func (p *PPU) ReadVRAM(address uint16) uint8 {
	if p.mode == Draw && !p.Relax.Relaxed {
		return 0xFF
	}
	return p.vram[address-addr.VRAMStart]
}

// WriteVRAM writes a VRAM byte, ignored when blocked by mode 3 unless
// relaxed.
func (p *PPU) WriteVRAM(address uint16, value uint8) {
	if p.mode == Draw && !p.Relax.Relaxed {
		return
	}
	p.vram[address-addr.VRAMStart] = value
}

// ReadOAM reads an OAM byte, returning 0xFF when blocked by DMA or modes
// 2/3 unless relaxed.
func (p *PPU) ReadOAM(address uint16) uint8 {
	if !p.Relax.Relaxed && (p.InDMA() || p.mode == OAMScan || p.mode == Draw) {
		return 0xFF
	}
	return p.oam[address-addr.OAMStart]
}

// WriteOAM writes an OAM byte, ignored when blocked.
func (p *PPU) WriteOAM(address uint16, value uint8) {
	if !p.Relax.Relaxed && (p.InDMA() || p.mode == OAMScan || p.mode == Draw) {
		return
	}
	p.oam[address-addr.OAMStart] = value
}

// rawOAMByte bypasses access blocking; used internally by DMA and the
// renderer, which must see real OAM contents regardless of mode.
func (p *PPU) rawOAMByte(i int) uint8 { return p.oam[i] }
func (p *PPU) setRawOAMByte(i int, v uint8) { p.oam[i] = v }

// Read handles the LCD register window (0xFF40-0xFF4B).
func (p *PPU) Read(address uint16) uint8 {
	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		return p.stat | 0x80 | uint8(p.mode)
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.DMA:
		return p.dma.reg
	case addr.BGP:
		return p.bgp
	case addr.OBP0:
		return p.obp0
	case addr.OBP1:
		return p.obp1
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	}
	return 0xFF
}

// Write handles the LCD register window, including DMA start.
func (p *PPU) Write(address uint16, value uint8) {
	switch address {
	case addr.LCDC:
		p.lcdc = value
	case addr.STAT:
		p.stat = (p.stat & 0x07) | (value &^ 0x07)
	case addr.SCY:
		p.scy = value
	case addr.SCX:
		p.scx = value
	case addr.LY:
		// read-only from the CPU's perspective; writes are ignored
	case addr.LYC:
		p.lyc = value
	case addr.DMA:
		p.dma.start(value, p.log)
	case addr.BGP:
		p.bgp = value
	case addr.OBP0:
		p.obp0 = value
	case addr.OBP1:
		p.obp1 = value
	case addr.WY:
		p.wy = value
	case addr.WX:
		p.wx = value
	}
}

package ppu

import "github.com/sirupsen/logrus"

// DMA implements the OAM DMA engine: writing a source page to 0xFF46
// begins a 160-T-cycle copy of one byte per T-cycle into OAM (spec §4.6).
type DMA struct {
	reg    uint8
	active bool
	source uint16
	offset uint16
}

// start begins a transfer from page X (source X<<8). Pages above 0xF1 are
// undefined on real hardware; the transfer proceeds regardless, but the
// out-of-range page is logged (spec §4.6: "log and proceed"), matching the
// mmu's unmapped-access logging convention.
func (d *DMA) start(page uint8, log *logrus.Entry) {
	if page > 0xF1 && log != nil {
		log.WithField("page", page).Warn("dma source page out of range")
	}
	d.reg = page
	d.active = true
	d.source = uint16(page) << 8
	d.offset = 0
}

// step copies one byte from source+offset into OAM[offset], advancing the
// transfer by exactly one byte per T-cycle.
func (d *DMA) step(p *PPU) {
	if !d.active {
		return
	}
	p.setRawOAMByte(int(d.offset), p.dmaSourceByte(d.source+d.offset))
	d.offset++
	if d.offset >= 0xA0 {
		d.active = false
	}
}

// dmaSourceByte reads the transfer's source byte directly from VRAM when
// the source page falls in that window; all other source pages are
// resolved through the dmaSource callback the MMU installs with
// SetDMASource, since the MMU owns ROM/WRAM.
func (p *PPU) dmaSourceByte(address uint16) uint8 {
	if address >= 0x8000 && address <= 0x9FFF {
		return p.vram[address-0x8000]
	}
	if p.dmaSource != nil {
		return p.dmaSource(address)
	}
	return 0xFF
}

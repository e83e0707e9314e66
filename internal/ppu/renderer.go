package ppu

import "github.com/aeonsys/dmgcore/internal/addr"

// renderScanline fills framebuffer row p.ly at the mode-3/mode-0 boundary.
// Background, window and sprites are composited in that priority order,
// matching the teacher's renderer but reduced to the DMG (no CGB
// attributes, no VRAM bank 1, no BG-to-OBJ master priority bit).
func (p *PPU) renderScanline() {
	if p.ly >= ScreenHeight {
		return
	}

	var bgIndex [ScreenWidth]uint8
	if p.lcdc&addr.Bit0 != 0 {
		p.renderBackground(&bgIndex)
	}
	if p.lcdc&addr.Bit5 != 0 {
		p.renderWindow(&bgIndex)
	}
	for x := 0; x < ScreenWidth; x++ {
		p.framebuffer[p.ly][x] = applyPalette(p.bgp, bgIndex[x])
	}
	if p.lcdc&addr.Bit1 != 0 {
		p.renderSprites(&bgIndex)
	}
}

func applyPalette(palette, index uint8) uint8 {
	return (palette >> (index * 2)) & 0x03
}

func (p *PPU) tileData(tileID uint8, line uint8) (lo, hi uint8) {
	var base uint16
	if p.lcdc&addr.Bit4 != 0 {
		base = uint16(tileID) * 16
	} else {
		base = uint16(0x1000 + int16(int8(tileID))*16)
	}
	off := base + uint16(line)*2
	return p.vram[off], p.vram[off+1]
}

func tilePixel(lo, hi uint8, bit uint8) uint8 {
	l := (lo >> (7 - bit)) & 1
	h := (hi >> (7 - bit)) & 1
	return l | h<<1
}

func (p *PPU) renderBackground(out *[ScreenWidth]uint8) {
	y := p.ly + p.scy
	tileRow := uint16(y/8) * 32
	var mapBase uint16 = 0x1800
	if p.lcdc&addr.Bit3 != 0 {
		mapBase = 0x1C00
	}

	for x := 0; x < ScreenWidth; x++ {
		xPos := uint8(x) + p.scx
		tileCol := uint16(xPos / 8)
		tileID := p.vram[mapBase+tileRow+tileCol]
		lo, hi := p.tileData(tileID, y%8)
		out[x] = tilePixel(lo, hi, xPos%8)
	}
}

func (p *PPU) renderWindow(out *[ScreenWidth]uint8) {
	if p.ly < p.wy {
		return
	}
	wx := int(p.wx) - 7

	windowLine := p.ly - p.wy
	tileRow := uint16(windowLine/8) * 32
	var mapBase uint16 = 0x1800
	if p.lcdc&addr.Bit6 != 0 {
		mapBase = 0x1C00
	}

	for x := 0; x < ScreenWidth; x++ {
		if x < wx {
			continue
		}
		wxPos := uint8(x - wx)
		tileCol := uint16(wxPos / 8)
		tileID := p.vram[mapBase+tileRow+tileCol]
		lo, hi := p.tileData(tileID, windowLine%8)
		out[x] = tilePixel(lo, hi, wxPos%8)
	}
}

// spriteHeight returns 8 or 16 depending on LCDC bit 2.
func (p *PPU) spriteHeight() uint8 {
	if p.lcdc&addr.Bit2 != 0 {
		return 16
	}
	return 8
}

func (p *PPU) renderSprites(bg *[ScreenWidth]uint8) {
	height := p.spriteHeight()
	drawn := 0

	for i := 0; i < 40 && drawn < 10; i++ {
		base := i * 4
		y := int(p.rawOAMByte(base)) - 16
		x := int(p.rawOAMByte(base+1)) - 8
		tile := p.rawOAMByte(base + 2)
		attr := p.rawOAMByte(base + 3)

		line := int(p.ly) - y
		if line < 0 || line >= int(height) {
			continue
		}
		drawn++

		if attr&0x40 != 0 {
			line = int(height) - 1 - line
		}
		if height == 16 {
			tile &^= 0x01
		}

		lo, hi := p.vram[uint16(tile)*16+uint16(line)*2], p.vram[uint16(tile)*16+uint16(line)*2+1]
		palette := p.obp0
		if attr&0x10 != 0 {
			palette = p.obp1
		}
		bgPriority := attr&0x80 != 0

		for bit := 0; bit < 8; bit++ {
			px := x + bit
			if px < 0 || px >= ScreenWidth {
				continue
			}
			col := bit
			if attr&0x20 != 0 {
				col = 7 - bit
			}
			idx := tilePixel(lo, hi, uint8(col))
			if idx == 0 {
				continue // transparent
			}
			if bgPriority && bg[px] != 0 {
				continue // behind non-zero background
			}
			p.framebuffer[p.ly][px] = applyPalette(palette, idx)
		}
	}
}

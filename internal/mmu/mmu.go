// Package mmu implements the unified memory-mapped bus: address decoding
// across ROM, VRAM, cartridge RAM, work RAM, OAM, MMIO and HRAM, with the
// access blocks spec §4.3 calls "correctness-critical".
package mmu

import (
	"github.com/aeonsys/dmgcore/internal/addr"
	"github.com/aeonsys/dmgcore/internal/apu"
	"github.com/aeonsys/dmgcore/internal/cartridge"
	"github.com/aeonsys/dmgcore/internal/corelog"
	"github.com/aeonsys/dmgcore/internal/interrupts"
	"github.com/aeonsys/dmgcore/internal/joypad"
	"github.com/aeonsys/dmgcore/internal/ppu"
	"github.com/aeonsys/dmgcore/internal/serial"
	"github.com/aeonsys/dmgcore/internal/timer"
	"github.com/sirupsen/logrus"
)

// MMU is the system's single owned bus view, holding the subsystems that
// are not independently addressable components of their own (work RAM,
// HRAM, the boot ROM latch) and dispatching to the ones that are.
type MMU struct {
	Cart   *cartridge.Cartridge
	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Timer
	Joypad *joypad.State
	Serial *serial.Controller
	IC     *interrupts.Controller

	wram [0x2000]byte
	hram [0x7F]byte

	bootROM       []byte
	bootDisabled  bool

	log *logrus.Entry
}

// New wires the bus around already-constructed subsystems.
func New(cart *cartridge.Cartridge, p *ppu.PPU, a *apu.APU, t *timer.Timer, jp *joypad.State, sc *serial.Controller, ic *interrupts.Controller, bootROM []byte, logger *logrus.Logger) *MMU {
	if logger == nil {
		logger = corelog.New()
	}
	m := &MMU{
		Cart: cart, PPU: p, APU: a, Timer: t, Joypad: jp, Serial: sc, IC: ic,
		bootROM: bootROM,
		log:     corelog.Component(logger, "mmu"),
	}
	m.bootDisabled = len(bootROM) == 0
	p.SetDMASource(m.readRaw)
	return m
}

// SetBootROM installs a boot ROM image, remapping 0x0000-0x00FF until the
// boot ROM disable latch (0xFF50) is written.
func (m *MMU) SetBootROM(rom []byte) {
	m.bootROM = rom
	m.bootDisabled = len(rom) == 0
}

// SetLogger redirects component logging to l.
func (m *MMU) SetLogger(l *logrus.Logger) {
	m.log = corelog.Component(l, "mmu")
}

// Read performs a CPU-visible read, honoring VRAM/OAM access blocks.
func (m *MMU) Read(address uint16) uint8 {
	return m.read(address, true)
}

// readRaw bypasses PPU/DMA access blocking; used for DMA source resolution
// since the DMA engine itself is what the blocking rule protects against.
func (m *MMU) readRaw(address uint16) uint8 {
	return m.read(address, false)
}

func (m *MMU) read(address uint16, blocked bool) uint8 {
	if blocked && m.PPU.InDMA() && !(address >= addr.HRAMStart && address <= addr.HRAMEnd) {
		return 0xFF
	}
	switch {
	case address <= 0x00FF && !m.bootDisabled:
		return m.bootROM[address]
	case address <= addr.ROMBank0End:
		return m.Cart.ReadROM(address)
	case address <= addr.ROMBankNEnd:
		return m.Cart.ReadROM(address)
	case address <= addr.VRAMEnd:
		if !blocked {
			return m.vramRaw(address)
		}
		return m.PPU.ReadVRAM(address)
	case address <= addr.CartRAMEnd:
		return m.Cart.ReadRAM(address)
	case address <= addr.WRAMEnd:
		return m.wram[address-addr.WRAMStart]
	case address <= addr.EchoEnd:
		return m.wram[address-addr.EchoStart]
	case address <= addr.OAMEnd:
		return m.PPU.ReadOAM(address)
	case address <= addr.UnusedEnd:
		return 0xFF
	case address <= addr.MMIOEnd:
		return m.readMMIO(address)
	case address <= addr.HRAMEnd:
		return m.hram[address-addr.HRAMStart]
	case address == addr.IE:
		return m.IC.ReadIE()
	}
	m.log.WithField("address", address).Warn("unmapped read")
	return 0xFF
}

// vramRaw reads VRAM directly, used only for DMA source resolution where
// the mode-3 block must not apply.
func (m *MMU) vramRaw(address uint16) uint8 {
	relaxed := m.PPU.Relax.Relaxed
	m.PPU.Relax.Relaxed = true
	v := m.PPU.ReadVRAM(address)
	m.PPU.Relax.Relaxed = relaxed
	return v
}

// Write performs a CPU-visible write.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address <= addr.ROMBankNEnd:
		m.Cart.WriteROM(address, value)
	case address <= addr.VRAMEnd:
		m.PPU.WriteVRAM(address, value)
	case address <= addr.CartRAMEnd:
		m.Cart.WriteRAM(address, value)
	case address <= addr.WRAMEnd:
		m.wram[address-addr.WRAMStart] = value
	case address <= addr.EchoEnd:
		m.wram[address-addr.EchoStart] = value
	case address <= addr.OAMEnd:
		m.PPU.WriteOAM(address, value)
	case address <= addr.UnusedEnd:
		// discarded
	case address <= addr.MMIOEnd:
		m.writeMMIO(address, value)
	case address <= addr.HRAMEnd:
		m.hram[address-addr.HRAMStart] = value
	case address == addr.IE:
		m.IC.WriteIE(value)
	default:
		m.log.WithField("address", address).Warn("unmapped write")
	}
}

func (m *MMU) readMMIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return m.Joypad.Read()
	case address == addr.SB:
		return m.Serial.ReadSB()
	case address == addr.SC:
		return m.Serial.ReadSC()
	case address == addr.DIV:
		return m.Timer.DIV()
	case address == addr.TIMA:
		return m.Timer.TIMA()
	case address == addr.TMA:
		return m.Timer.TMA()
	case address == addr.TAC:
		return m.Timer.TAC()
	case address == addr.IF:
		return m.IC.ReadIF()
	case address >= addr.NR10 && address <= addr.NR52:
		return m.APU.Read(address)
	case address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd:
		return m.APU.Read(address)
	case address >= addr.LCDC && address <= addr.WX:
		return m.PPU.Read(address)
	case address == addr.BootROMDisable:
		if m.bootDisabled {
			return 0x01
		}
		return 0x00
	}
	return 0xFF
}

func (m *MMU) writeMMIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		m.Joypad.Write(value)
	case address == addr.SB:
		m.Serial.WriteSB(value)
	case address == addr.SC:
		m.Serial.WriteSC(value)
	case address == addr.DIV:
		m.Timer.WriteDIV()
	case address == addr.TIMA:
		m.Timer.WriteTIMA(value)
	case address == addr.TMA:
		m.Timer.WriteTMA(value)
	case address == addr.TAC:
		m.Timer.WriteTAC(value)
	case address == addr.IF:
		m.IC.WriteIF(value)
	case address >= addr.NR10 && address <= addr.NR52:
		m.APU.Write(address, value)
	case address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd:
		m.APU.Write(address, value)
	case address >= addr.LCDC && address <= addr.WX:
		m.PPU.Write(address, value)
	case address == addr.BootROMDisable:
		if value != 0 {
			m.bootDisabled = true
		}
	}
}

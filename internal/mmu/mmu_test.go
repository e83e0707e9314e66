package mmu

import (
	"testing"

	"github.com/aeonsys/dmgcore/internal/addr"
	"github.com/aeonsys/dmgcore/internal/apu"
	"github.com/aeonsys/dmgcore/internal/cartridge"
	"github.com/aeonsys/dmgcore/internal/interrupts"
	"github.com/aeonsys/dmgcore/internal/joypad"
	"github.com/aeonsys/dmgcore/internal/ppu"
	"github.com/aeonsys/dmgcore/internal/serial"
	"github.com/aeonsys/dmgcore/internal/timer"
	"github.com/stretchr/testify/assert"
)

func buildROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	var sum uint8
	for _, b := range rom[0x0134:0x014D] {
		sum = sum - b - 1
	}
	rom[0x014D] = sum
	return rom
}

func newTestBus(t *testing.T) *MMU {
	cart, err := cartridge.Load(buildROM(2))
	assert.NoError(t, err)
	p := ppu.New()
	a := apu.New()
	tm := timer.New()
	jp := joypad.New()
	sc := serial.New()
	ic := interrupts.New()
	return New(cart, p, a, tm, jp, sc, ic, nil, nil)
}

func TestWRAMReadWrite(t *testing.T) {
	m := newTestBus(t)
	m.Write(addr.WRAMStart, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(addr.WRAMStart))
}

func TestEchoRAMMirrorsWRAM(t *testing.T) {
	m := newTestBus(t)
	m.Write(addr.WRAMStart+5, 0x77)
	assert.Equal(t, uint8(0x77), m.Read(addr.EchoStart+5))
}

// TestDMABlocksAllReadsExceptHRAM is the spec's DMA-blocking scenario at
// the bus level: while a DMA transfer is in progress, every CPU read
// except HRAM returns the sentinel, even outside VRAM/OAM.
func TestDMABlocksAllReadsExceptHRAM(t *testing.T) {
	m := newTestBus(t)
	m.Write(addr.WRAMStart, 0x55)
	m.Write(addr.HRAMStart, 0x99)

	m.PPU.Write(addr.DMA, 0xC0)
	assert.True(t, m.PPU.InDMA())

	assert.Equal(t, uint8(0xFF), m.Read(addr.WRAMStart))
	assert.Equal(t, uint8(0x99), m.Read(addr.HRAMStart))
}

func TestIEReadWrite(t *testing.T) {
	m := newTestBus(t)
	m.Write(addr.IE, 0x1F)
	assert.Equal(t, uint8(0x1F), m.Read(addr.IE))
}

func TestUnmappedReadReturnsSentinel(t *testing.T) {
	m := newTestBus(t)
	assert.Equal(t, uint8(0xFF), m.Read(addr.UnusedEnd))
}

func TestBootROMShadowsLowROMUntilDisabled(t *testing.T) {
	m := newTestBus(t)
	boot := make([]byte, 0x100)
	boot[0] = 0xAA
	m.SetBootROM(boot)

	assert.Equal(t, uint8(0xAA), m.Read(0x0000))

	m.Write(addr.BootROMDisable, 0x01)
	assert.NotEqual(t, uint8(0xAA), m.Read(0x0000))
}

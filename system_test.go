package dmgcore

import (
	"testing"
	"time"

	"github.com/aeonsys/dmgcore/internal/cartridge"
	"github.com/aeonsys/dmgcore/internal/interrupts"
	"github.com/aeonsys/dmgcore/internal/joypad"
	"github.com/stretchr/testify/assert"
)

// buildROM constructs a minimal ROM image of the given bank count with a
// valid header checksum, mirroring the layout the cartridge package's
// header parser expects.
func buildROM(banks int, cartType cartridge.Type, romSizeCode, ramSizeCode uint8) []byte {
	rom := make([]byte, banks*0x4000)
	rom[0x0147] = byte(cartType)
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode

	var sum uint8
	for _, b := range rom[0x0134:0x014D] {
		sum = sum - b - 1
	}
	rom[0x014D] = sum
	return rom
}

func TestNewSystemRejectsBadROMSize(t *testing.T) {
	_, err := NewSystem(make([]byte, 0x10))
	assert.ErrorIs(t, err, cartridge.ErrBadROMSize)
}

func TestNewSystemRejectsBadHeaderChecksum(t *testing.T) {
	rom := buildROM(2, cartridge.ROM, 0, 0)
	rom[0x014D] ^= 0xFF
	_, err := NewSystem(rom)
	assert.ErrorIs(t, err, cartridge.ErrHeaderChecksum)
}

func TestNewSystemPostBootRegisterState(t *testing.T) {
	rom := buildROM(2, cartridge.ROM, 0, 0)
	s, err := NewSystem(rom)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0100), s.CPU.PC)
	assert.Equal(t, uint16(0xFFFE), s.CPU.SP)
}

func TestWithBootROMStartsAtZero(t *testing.T) {
	rom := buildROM(2, cartridge.ROM, 0, 0)
	boot := make([]byte, 0x100)
	s, err := NewSystem(rom, WithBootROM(boot))
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0000), s.CPU.PC)
	assert.Equal(t, uint8(0x00), s.CPU.A)
}

// TestStepAdvancesCPUByOneTCycle checks that the CPU's cycle counter
// advances exactly once per Step.
func TestStepAdvancesCPUByOneTCycle(t *testing.T) {
	rom := buildROM(2, cartridge.ROM, 0, 0)
	s, err := NewSystem(rom)
	assert.NoError(t, err)

	before := s.CPU.CycleCount()
	s.Step()
	assert.Equal(t, before+1, s.CPU.CycleCount())
}

func TestRunFrameAdvancesExactlyOneFrameOfTCycles(t *testing.T) {
	rom := buildROM(2, cartridge.ROM, 0, 0)
	s, err := NewSystem(rom)
	assert.NoError(t, err)

	before := s.CPU.CycleCount()
	s.RunFrame()
	assert.Equal(t, before+uint64(TicksPerFrame), s.CPU.CycleCount())
}

func TestSetButtonRequestsJoypadInterrupt(t *testing.T) {
	rom := buildROM(2, cartridge.ROM, 0, 0)
	s, err := NewSystem(rom)
	assert.NoError(t, err)

	s.Joypad.Write(0x20) // select direction row
	s.SetButton(joypad.Right, true)
	assert.NotEqual(t, uint8(0), s.Interrupts.IF&uint8(interrupts.Joypad))
}

func TestHasBatteryReflectsCartridgeType(t *testing.T) {
	rom := buildROM(4, cartridge.MBC1RAMBATT, 0, 0x02)
	s, err := NewSystem(rom)
	assert.NoError(t, err)
	assert.True(t, s.HasBattery())

	romPlain := buildROM(2, cartridge.ROM, 0, 0)
	sPlain, err := NewSystem(romPlain)
	assert.NoError(t, err)
	assert.False(t, sPlain.HasBattery())
}

// TestSaveLoadBatteryRoundTripsMBC3RTCWallClock exercises the RTC
// wall-clock catch-up scenario end to end: saving stamps lastTick with the
// configured clock source, and loading 100 seconds later catches the RTC
// up to the elapsed real time.
func TestSaveLoadBatteryRoundTripsMBC3RTCWallClock(t *testing.T) {
	rom := buildROM(4, cartridge.MBC3TIMERRAMBATT, 0, 0x02)

	saveTime := time.Unix(1_000_000, 0)
	s, err := NewSystem(rom, WithClockSource(func() time.Time { return saveTime }))
	assert.NoError(t, err)

	s.Cart.WriteROM(0x0000, 0x0A) // RAM/RTC enable
	s.Cart.WriteROM(0x4000, 0x0A) // select hours register
	s.Cart.WriteRAM(0xA000, 5)

	saved := s.SaveBattery()
	assert.NotEmpty(t, saved)

	loadTime := time.Unix(1_000_100, 0) // 100 elapsed seconds
	s2, err := NewSystem(rom, WithClockSource(func() time.Time { return loadTime }))
	assert.NoError(t, err)
	s2.LoadBattery(saved)

	s2.Cart.WriteROM(0x0000, 0x0A)
	s2.Cart.WriteROM(0x6000, 0x00)
	s2.Cart.WriteROM(0x6000, 0x01) // latch

	s2.Cart.WriteROM(0x4000, 0x0A)
	assert.Equal(t, uint8(5), s2.Cart.ReadRAM(0xA000)) // hours unaffected by a 100s catch-up

	s2.Cart.WriteROM(0x4000, 0x09)
	assert.Equal(t, uint8(1), s2.Cart.ReadRAM(0xA000)) // 100s == 1 minute, 40 seconds
}

func TestGenerateSampleDelegatesToAPU(t *testing.T) {
	rom := buildROM(2, cartridge.ROM, 0, 0)
	s, err := NewSystem(rom)
	assert.NoError(t, err)
	// silent APU (no channel triggered) renders to exactly zero
	assert.Equal(t, 0.0, s.GenerateSample(0))
}

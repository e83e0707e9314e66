package cartridge

// MBC is the tagged-variant interface every memory bank controller
// implements. Dispatch is by the concrete type selected at load time from
// the header's cartridge type code (spec §3 "MBC state").
type MBC interface {
	ReadROM(address uint16) uint8
	WriteROM(address uint16, value uint8) // bank-control writes into 0x0000-0x7FFF
	ReadRAM(address uint16) uint8
	WriteRAM(address uint16, value uint8)

	// Clock advances any MBC-local clock (currently only MBC3's RTC).
	// Most variants have no clock hook and implement this as a no-op.
	Clock()

	// SyncClock catches the RTC up to an absolute Unix timestamp supplied
	// by the host (spec §4.4's "absolute-wallclock delta"); a no-op for
	// variants without an RTC.
	SyncClock(nowUnix int64)

	// SaveRAM/LoadRAM implement the battery format of spec §6: a flat
	// concatenation of RAM banks, plus an RTC footer for MBC3.
	SaveRAM() []byte
	LoadRAM(data []byte)
}

// sentinelRead is returned for any out-of-range bank access per spec §3
// ("reads/writes outside the active bank's size return a sentinel value").
const sentinelRead = 0xFF

package cartridge

import "encoding/binary"

// rtc holds the MBC3 real-time clock counters. DayHigh packs
// {day-counter bit 8, halt, carry} into bits {0, 6, 7}.
type rtc struct {
	Seconds uint8
	Minutes uint8
	Hours   uint8
	DayLow  uint8
	DayHigh uint8
}

func (r rtc) halted() bool { return r.DayHigh&0x40 != 0 }

// tickSecond advances the RTC by one simulated second, rolling seconds
// into minutes, minutes into hours, hours into the 9-bit day counter, and
// setting the carry bit on day-counter overflow.
func (r *rtc) tickSecond() {
	if r.halted() {
		return
	}
	r.Seconds++
	if r.Seconds < 60 {
		return
	}
	r.Seconds = 0
	r.Minutes++
	if r.Minutes < 60 {
		return
	}
	r.Minutes = 0
	r.Hours++
	if r.Hours < 24 {
		return
	}
	r.Hours = 0

	day := uint16(r.DayLow) | uint16(r.DayHigh&0x01)<<8
	day++
	if day > 0x1FF {
		day = 0
		r.DayHigh |= 0x80 // carry
	}
	r.DayLow = uint8(day)
	r.DayHigh = (r.DayHigh &^ 0x01) | uint8(day>>8)
}

// mbc3 implements the MBC3 mapper: full 7-bit ROM bank, 4 RAM banks or
// RTC register selection, and the RTC latch mechanism (spec §4.4).
type mbc3 struct {
	rom []byte
	ram []byte

	romBank uint8
	ramSel  uint8 // 0x00-0x03 RAM bank, 0x08-0x0C RTC register select
	enable  bool

	hasTimer  bool
	latchByte uint8 // tracks the 0->1 transition on the latch write

	clocks   uint32 // T-cycles accumulated toward the next RTC second
	current  rtc
	latched  rtc
	lastTick uint64 // Unix seconds at which current was last synced to wall-clock time
}

func newMBC3(rom []byte, ramSize uint, hasTimer bool) *mbc3 {
	return &mbc3{rom: rom, ram: make([]byte, ramSize), hasTimer: hasTimer, latchByte: 0xFF}
}

// maxCatchUpSeconds bounds how far SyncClock will advance the RTC in one
// call, guarding against a corrupt or absurd stored timestamp.
const maxCatchUpSeconds = 100 * 365 * 24 * 3600

// SyncClock advances the RTC by the elapsed wall-clock time since the last
// sync and records nowUnix as the new reference point (spec §4.4). The
// first call after load (lastTick == 0) only establishes the reference;
// it does not invent an elapsed interval.
func (m *mbc3) SyncClock(nowUnix int64) {
	if !m.hasTimer {
		return
	}
	if m.lastTick != 0 && nowUnix > int64(m.lastTick) {
		elapsed := nowUnix - int64(m.lastTick)
		if elapsed > maxCatchUpSeconds {
			elapsed = maxCatchUpSeconds
		}
		for i := int64(0); i < elapsed; i++ {
			m.current.tickSecond()
		}
	}
	if nowUnix > 0 {
		m.lastTick = uint64(nowUnix)
	}
}

func (m *mbc3) ReadROM(address uint16) uint8 {
	var idx int
	if address < 0x4000 {
		idx = int(address)
	} else {
		bank := m.romBank & 0x7F
		if bank == 0 {
			bank = 1
		}
		idx = int(bank)*0x4000 + int(address-0x4000)
	}
	if idx >= len(m.rom) {
		return sentinelRead
	}
	return m.rom[idx]
}

func (m *mbc3) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.enable = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x7F
	case address < 0x6000:
		m.ramSel = value
	default:
		if m.latchByte == 0x00 && value == 0x01 {
			m.latched = m.current
		}
		m.latchByte = value
	}
}

func (m *mbc3) ReadRAM(address uint16) uint8 {
	if !m.enable {
		return sentinelRead
	}
	if m.ramSel <= 0x03 {
		idx := int(m.ramSel)*0x2000 + int(address-0xA000)
		if idx >= len(m.ram) {
			return sentinelRead
		}
		return m.ram[idx]
	}
	if m.hasTimer {
		switch m.ramSel {
		case 0x08:
			return m.latched.Seconds
		case 0x09:
			return m.latched.Minutes
		case 0x0A:
			return m.latched.Hours
		case 0x0B:
			return m.latched.DayLow
		case 0x0C:
			return m.latched.DayHigh | 0x3E
		}
	}
	return sentinelRead
}

func (m *mbc3) WriteRAM(address uint16, value uint8) {
	if !m.enable {
		return
	}
	if m.ramSel <= 0x03 {
		idx := int(m.ramSel)*0x2000 + int(address-0xA000)
		if idx >= len(m.ram) {
			return
		}
		m.ram[idx] = value
		return
	}
	if !m.hasTimer {
		return
	}
	switch m.ramSel {
	case 0x08:
		m.current.Seconds = value % 60
	case 0x09:
		m.current.Minutes = value % 60
	case 0x0A:
		m.current.Hours = value % 24
	case 0x0B:
		m.current.DayLow = value
	case 0x0C:
		m.current.DayHigh = value & 0xC1
	}
}

// Clock ticks the RTC one second per 4,194,304 T-cycles (spec §4.4).
func (m *mbc3) Clock() {
	if !m.hasTimer {
		return
	}
	m.clocks++
	if m.clocks >= 4194304 {
		m.clocks = 0
		m.current.tickSecond()
	}
}

// rtcFooterSize is the 48-byte on-disk RTC footer: ten 32-bit
// little-endian counters plus a 64-bit little-endian last_tick timestamp.
const rtcFooterSize = 48

func (m *mbc3) SaveRAM() []byte {
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	if !m.hasTimer {
		return out
	}

	footer := make([]byte, rtcFooterSize)
	fields := []uint8{
		m.current.Seconds, m.current.Minutes, m.current.Hours, m.current.DayLow, m.current.DayHigh,
		m.latched.Seconds, m.latched.Minutes, m.latched.Hours, m.latched.DayLow, m.latched.DayHigh,
	}
	for i, v := range fields {
		binary.LittleEndian.PutUint32(footer[i*4:], uint32(v))
	}
	binary.LittleEndian.PutUint64(footer[40:], m.lastTick)
	return append(out, footer...)
}

func (m *mbc3) LoadRAM(data []byte) {
	if !m.hasTimer {
		copy(m.ram, data)
		return
	}
	if len(data) < len(m.ram)+rtcFooterSize {
		copy(m.ram, data) // footer absence is tolerated (spec §6)
		return
	}
	ramPart := data[:len(data)-rtcFooterSize]
	footer := data[len(data)-rtcFooterSize:]
	copy(m.ram, ramPart)

	vals := make([]uint8, 10)
	for i := range vals {
		vals[i] = uint8(binary.LittleEndian.Uint32(footer[i*4:]))
	}
	m.current = rtc{vals[0], vals[1], vals[2], vals[3], vals[4]}
	m.latched = rtc{vals[5], vals[6], vals[7], vals[8], vals[9]}
	m.lastTick = binary.LittleEndian.Uint64(footer[40:])
}

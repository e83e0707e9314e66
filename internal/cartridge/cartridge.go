// Package cartridge decodes the ROM header and dispatches to the correct
// memory bank controller variant.
package cartridge

// Cartridge wraps a parsed Header and its live MBC state.
type Cartridge struct {
	Header Header
	mbc    MBC
}

// Load parses the header from rom and constructs the matching MBC. It
// returns ErrBadROMSize for a malformed image and ErrHeaderChecksum when
// the header checksum does not validate (spec §6: "Invalid header
// checksum MUST abort loading with a specific error").
func Load(rom []byte) (*Cartridge, error) {
	h, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}
	if !h.ChecksumValid() {
		return nil, ErrHeaderChecksum
	}

	c := &Cartridge{Header: h}
	switch h.CartridgeType {
	case MBC1, MBC1RAM, MBC1RAMBATT:
		c.mbc = newMBC1(rom, h.RAMSize)
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		c.mbc = newMBC3(rom, h.RAMSize, h.CartridgeType.HasTimer())
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		c.mbc = newMBC5(rom, h.RAMSize)
	default:
		c.mbc = newMBC0(rom, h.RAMSize)
	}
	return c, nil
}

// ReadROM reads a byte from 0x0000-0x7FFF.
func (c *Cartridge) ReadROM(address uint16) uint8 { return c.mbc.ReadROM(address) }

// WriteROM forwards a 0x0000-0x7FFF write to the MBC as a bank-control
// write; these never modify ROM contents.
func (c *Cartridge) WriteROM(address uint16, value uint8) { c.mbc.WriteROM(address, value) }

// ReadRAM reads a byte from 0xA000-0xBFFF (cartridge RAM or RTC register).
func (c *Cartridge) ReadRAM(address uint16) uint8 { return c.mbc.ReadRAM(address) }

// WriteRAM writes a byte to 0xA000-0xBFFF.
func (c *Cartridge) WriteRAM(address uint16, value uint8) { c.mbc.WriteRAM(address, value) }

// Clock advances any MBC-internal clock (MBC3's RTC) by one T-cycle.
func (c *Cartridge) Clock() { c.mbc.Clock() }

// HasBattery reports whether this cartridge persists RAM across runs.
func (c *Cartridge) HasBattery() bool { return c.Header.CartridgeType.HasBattery() }

// SaveRAM returns the battery save image: cartridge RAM banks concatenated
// in bank-index order, plus the MBC3 RTC footer when present (spec §6).
func (c *Cartridge) SaveRAM() []byte { return c.mbc.SaveRAM() }

// LoadRAM restores cartridge RAM (and RTC state, if present) from a
// previously saved battery image. A missing RTC footer is tolerated.
func (c *Cartridge) LoadRAM(data []byte) { c.mbc.LoadRAM(data) }

// SyncClock catches the RTC up to an absolute Unix timestamp; a no-op on
// cartridges without an RTC.
func (c *Cartridge) SyncClock(nowUnix int64) { c.mbc.SyncClock(nowUnix) }

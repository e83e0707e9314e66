package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRLCAAlwaysClearsZeroEvenWhenResultIsZero(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x00
	runOpcode(c, bus, 0x07) // RLCA
	assert.Equal(t, uint8(0x00), c.A)
	assert.False(t, c.hasFlag(FlagZero), "unprefixed accumulator rotates always clear Z")
	assert.False(t, c.hasFlag(FlagCarry))
}

func TestRLCACarriesTopBitIntoBottomAndCarryFlag(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x80
	runOpcode(c, bus, 0x07) // RLCA
	assert.Equal(t, uint8(0x01), c.A)
	assert.True(t, c.hasFlag(FlagCarry))
}

func TestRRCACarriesBottomBitIntoTopAndCarryFlag(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x01
	runOpcode(c, bus, 0x0F) // RRCA
	assert.Equal(t, uint8(0x80), c.A)
	assert.True(t, c.hasFlag(FlagCarry))
}

func TestRLAUsesExistingCarryNotTopBit(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x00
	c.setFlag(FlagCarry, true)
	runOpcode(c, bus, 0x17) // RLA
	assert.Equal(t, uint8(0x01), c.A)
	assert.False(t, c.hasFlag(FlagCarry))
}

func TestRRAUsesExistingCarryNotBottomBit(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x00
	c.setFlag(FlagCarry, true)
	runOpcode(c, bus, 0x1F) // RRA
	assert.Equal(t, uint8(0x80), c.A)
	assert.False(t, c.hasFlag(FlagCarry))
}

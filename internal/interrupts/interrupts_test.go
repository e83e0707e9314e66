package interrupts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestAndPending(t *testing.T) {
	ic := New()
	ic.IME = Enabled
	ic.IE = uint8(VBlank | Timer)

	ic.Request(VBlank)
	ic.Request(Serial) // not enabled, should not surface in Pending

	assert.Equal(t, uint8(VBlank), ic.Pending())
}

func TestNextVectorPriority(t *testing.T) {
	ic := New()
	ic.IME = Enabled
	ic.IE = 0x1F
	ic.Request(Timer)
	ic.Request(VBlank)

	f, ok := ic.NextVector()
	assert.True(t, ok)
	assert.Equal(t, VBlank, f)
	assert.Equal(t, uint16(0x40), f.Vector())
}

func TestNextVectorRequiresIME(t *testing.T) {
	ic := New()
	ic.IE = 0x1F
	ic.Request(VBlank)

	_, ok := ic.NextVector()
	assert.False(t, ok)
	assert.True(t, ic.AnyPendingRaw())
}

func TestAcknowledgeClearsIFAndIME(t *testing.T) {
	ic := New()
	ic.IME = Enabled
	ic.IE = 0x1F
	ic.Request(LCDStat)

	ic.Acknowledge(LCDStat)

	assert.Equal(t, Disabled, ic.IME)
	assert.Equal(t, uint8(0), ic.IF)
}

func TestScheduledEnableDelaysOneTick(t *testing.T) {
	ic := New()
	ic.ScheduleEnable()
	assert.Equal(t, EnableScheduled, ic.IME)

	// the instruction immediately after EI must still see IME pending,
	// not enabled
	assert.NotEqual(t, Enabled, ic.IME)

	ic.Tick()
	assert.Equal(t, Enabled, ic.IME)
}

func TestReadIFTopBitsAlwaysSet(t *testing.T) {
	ic := New()
	ic.WriteIF(0x01)
	assert.Equal(t, uint8(0xE1), ic.ReadIF())
}

package cpu

// registerRotateOpcodes installs the four unprefixed accumulator rotates.
// Unlike their CB-prefixed r8 counterparts, these always clear Z.
func registerRotateOpcodes() {
	simple(0x07, "RLCA", 1, 4, func(c *CPU, ops []byte) {
		carry := c.A >> 7
		c.A = c.A<<1 | carry
		c.setFlag(FlagZero, false)
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, carry != 0)
	})
	simple(0x0F, "RRCA", 1, 4, func(c *CPU, ops []byte) {
		carry := c.A & 1
		c.A = c.A>>1 | carry<<7
		c.setFlag(FlagZero, false)
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, carry != 0)
	})
	simple(0x17, "RLA", 1, 4, func(c *CPU, ops []byte) {
		oldCarry := uint8(0)
		if c.hasFlag(FlagCarry) {
			oldCarry = 1
		}
		newCarry := c.A >> 7
		c.A = c.A<<1 | oldCarry
		c.setFlag(FlagZero, false)
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, newCarry != 0)
	})
	simple(0x1F, "RRA", 1, 4, func(c *CPU, ops []byte) {
		oldCarry := uint8(0)
		if c.hasFlag(FlagCarry) {
			oldCarry = 1
		}
		newCarry := c.A & 1
		c.A = c.A>>1 | oldCarry<<7
		c.setFlag(FlagZero, false)
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, newCarry != 0)
	})
}

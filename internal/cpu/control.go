package cpu

func registerControlOpcodes() {
	simple(0x00, "NOP", 1, 4, func(c *CPU, ops []byte) {})

	simple(0x76, "HALT", 1, 4, func(c *CPU, ops []byte) { c.doHalt() })
	simple(0x10, "STOP", 2, 4, func(c *CPU, ops []byte) { c.doStop() })

	simple(0xF3, "DI", 1, 4, func(c *CPU, ops []byte) { c.ic.Disable() })
	simple(0xFB, "EI", 1, 4, func(c *CPU, ops []byte) { c.ic.ScheduleEnable() })

	simple(0x27, "DAA", 1, 4, func(c *CPU, ops []byte) { c.daa() })
	simple(0x2F, "CPL", 1, 4, func(c *CPU, ops []byte) {
		c.A = ^c.A
		c.setFlag(FlagSubtract, true)
		c.setFlag(FlagHalfCarry, true)
	})
	simple(0x3F, "CCF", 1, 4, func(c *CPU, ops []byte) {
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, !c.hasFlag(FlagCarry))
	})
	simple(0x37, "SCF", 1, 4, func(c *CPU, ops []byte) {
		c.setFlag(FlagSubtract, false)
		c.setFlag(FlagHalfCarry, false)
		c.setFlag(FlagCarry, true)
	})
}

package cpu

func registerStackOpcodes() {
	for i := uint8(0); i < 4; i++ {
		i := i
		simple(0xC5+i*0x10, "PUSH rr", 1, 16, func(c *CPU, ops []byte) {
			c.push16(c.rr16Stack(i))
		})
		simple(0xC1+i*0x10, "POP rr", 1, 12, func(c *CPU, ops []byte) {
			c.setRR16Stack(i, c.pop16())
		})
	}
}

package cpu

import "github.com/aeonsys/dmgcore/internal/interrupts"

// cond evaluates one of the four branch conditions NZ,Z,NC,C by index.
func (c *CPU) cond(i uint8) bool {
	switch i {
	case 0:
		return !c.hasFlag(FlagZero)
	case 1:
		return c.hasFlag(FlagZero)
	case 2:
		return !c.hasFlag(FlagCarry)
	default:
		return c.hasFlag(FlagCarry)
	}
}

func registerJumpOpcodes() {
	simple(0xC3, "JP nn", 3, 16, func(c *CPU, ops []byte) {
		c.PC = uint16(ops[1])<<8 | uint16(ops[0])
	})
	simple(0xE9, "JP (HL)", 1, 4, func(c *CPU, ops []byte) { c.PC = c.HL() })

	for i := uint8(0); i < 4; i++ {
		i := i
		branching(0xC2+i*8, "JP cc,nn", 3, 16, 12, func(c *CPU, ops []byte) bool {
			if !c.cond(i) {
				return false
			}
			c.PC = uint16(ops[1])<<8 | uint16(ops[0])
			return true
		})
	}

	simple(0x18, "JR r8", 2, 12, func(c *CPU, ops []byte) {
		c.PC = uint16(int32(c.PC) + int32(int8(ops[0])))
	})
	for i := uint8(0); i < 4; i++ {
		i := i
		branching(0x20+i*8, "JR cc,r8", 2, 12, 8, func(c *CPU, ops []byte) bool {
			if !c.cond(i) {
				return false
			}
			c.PC = uint16(int32(c.PC) + int32(int8(ops[0])))
			return true
		})
	}

	simple(0xCD, "CALL nn", 3, 24, func(c *CPU, ops []byte) {
		c.push16(c.PC)
		c.PC = uint16(ops[1])<<8 | uint16(ops[0])
	})
	for i := uint8(0); i < 4; i++ {
		i := i
		branching(0xC4+i*8, "CALL cc,nn", 3, 24, 12, func(c *CPU, ops []byte) bool {
			if !c.cond(i) {
				return false
			}
			c.push16(c.PC)
			c.PC = uint16(ops[1])<<8 | uint16(ops[0])
			return true
		})
	}

	simple(0xC9, "RET", 1, 16, func(c *CPU, ops []byte) { c.PC = c.pop16() })
	simple(0xD9, "RETI", 1, 16, func(c *CPU, ops []byte) {
		c.PC = c.pop16()
		c.ic.IME = interrupts.Enabled
	})
	for i := uint8(0); i < 4; i++ {
		i := i
		branching(0xC0+i*8, "RET cc", 1, 20, 8, func(c *CPU, ops []byte) bool {
			if !c.cond(i) {
				return false
			}
			c.PC = c.pop16()
			return true
		})
	}

	for i := uint8(0); i < 8; i++ {
		i := i
		simple(0xC7+i*8, "RST n", 1, 16, func(c *CPU, ops []byte) {
			c.push16(c.PC)
			c.PC = uint16(i) * 8
		})
	}
}

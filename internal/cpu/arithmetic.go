package cpu

// aluOp applies one of the eight ALU operations (ADD,ADC,SUB,SBC,AND,XOR,OR,CP)
// to A and v, per the standard opcode-encoding operation order.
func (c *CPU) aluOp(op uint8, v uint8) {
	carry := uint8(0)
	if c.hasFlag(FlagCarry) {
		carry = 1
	}
	switch op {
	case 0: // ADD
		c.A = c.add8(c.A, v, 0)
	case 1: // ADC
		c.A = c.add8(c.A, v, carry)
	case 2: // SUB
		c.A = c.sub8(c.A, v, 0)
	case 3: // SBC
		c.A = c.sub8(c.A, v, carry)
	case 4: // AND
		c.A = c.and8(c.A, v)
	case 5: // XOR
		c.A = c.xor8(c.A, v)
	case 6: // OR
		c.A = c.or8(c.A, v)
	case 7: // CP
		c.sub8(c.A, v, 0) // result discarded
	}
}

var aluNames = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

func registerArithmeticOpcodes() {
	// ALU A,r8 : 0x80 + op*8 + src
	for op := uint8(0); op < 8; op++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x80 + op*8 + src
			op, src := op, src
			cycles := uint8(4)
			if src == 6 {
				cycles = 8
			}
			simple(opcode, aluNames[op]+" A,r", 1, cycles, func(c *CPU, ops []byte) {
				c.aluOp(op, c.r8(src))
			})
		}
	}

	// ALU A,d8 : 0xC6,0xCE,0xD6,0xDE,0xE6,0xEE,0xF6,0xFE
	for op := uint8(0); op < 8; op++ {
		op := op
		simple(0xC6+op*8, aluNames[op]+" A,d8", 2, 8, func(c *CPU, ops []byte) {
			c.aluOp(op, ops[0])
		})
	}

	// INC r8 / DEC r8 : 0x04+i*8 / 0x05+i*8
	for i := uint8(0); i < 8; i++ {
		i := i
		cycles := uint8(4)
		if i == 6 {
			cycles = 12
		}
		simple(0x04+i*8, "INC r", 1, cycles, func(c *CPU, ops []byte) {
			v := c.r8(i) + 1
			c.setR8(i, v)
			c.setFlag(FlagZero, v == 0)
			c.setFlag(FlagSubtract, false)
			c.setFlag(FlagHalfCarry, v&0xF == 0)
		})
		simple(0x05+i*8, "DEC r", 1, cycles, func(c *CPU, ops []byte) {
			v := c.r8(i) - 1
			c.setR8(i, v)
			c.setFlag(FlagZero, v == 0)
			c.setFlag(FlagSubtract, true)
			c.setFlag(FlagHalfCarry, v&0xF == 0xF)
		})
	}

	// INC rr / DEC rr / ADD HL,rr : no flag effects for INC/DEC
	for i := uint8(0); i < 4; i++ {
		i := i
		simple(0x03+i*0x10, "INC rr", 1, 8, func(c *CPU, ops []byte) {
			c.setRR16(i, c.rr16(i)+1)
		})
		simple(0x0B+i*0x10, "DEC rr", 1, 8, func(c *CPU, ops []byte) {
			c.setRR16(i, c.rr16(i)-1)
		})
		simple(0x09+i*0x10, "ADD HL,rr", 1, 8, func(c *CPU, ops []byte) {
			c.addHL16(c.rr16(i))
		})
	}

	simple(0xE8, "ADD SP,r8", 2, 16, func(c *CPU, ops []byte) {
		c.SP = c.addSPSigned(ops[0])
	})
}

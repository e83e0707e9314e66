package cpu

// Instruction is one entry of the 256-slot primary opcode table. Execute
// returns whether the branch was taken (always true for non-conditional
// instructions), selecting between CyclesTaken and CyclesUntaken.
type Instruction struct {
	Name          string
	Length        uint8
	CyclesTaken   uint8
	CyclesUntaken uint8
	Execute       func(c *CPU, operands []byte) bool
	Illegal       bool
}

// CBInstruction is one entry of the 256-slot CB-prefixed table. All CB
// instructions are fixed-cycle (no conditional branches).
type CBInstruction struct {
	Name    string
	Cycles  uint8
	Execute func(c *CPU)
}

var primaryTable [256]Instruction
var cbTable [256]CBInstruction

// illegalOpcodes are the 11 explicit illegal slots (spec §4.1); the CPU
// halts with a fatal status on fetching any of them.
var illegalOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func simple(op uint8, name string, length, cycles uint8, f func(c *CPU, operands []byte)) {
	primaryTable[op] = Instruction{
		Name: name, Length: length, CyclesTaken: cycles, CyclesUntaken: cycles,
		Execute: func(c *CPU, operands []byte) bool { f(c, operands); return true },
	}
}

func branching(op uint8, name string, length, taken, untaken uint8, f func(c *CPU, operands []byte) bool) {
	primaryTable[op] = Instruction{
		Name: name, Length: length, CyclesTaken: taken, CyclesUntaken: untaken, Execute: f,
	}
}

func init() {
	for _, op := range illegalOpcodes {
		primaryTable[op] = Instruction{Name: "ILLEGAL", Illegal: true}
	}
	primaryTable[0xCB] = Instruction{Name: "PREFIX CB", Illegal: true} // intercepted before table lookup

	registerControlOpcodes()
	registerLoadOpcodes()
	registerArithmeticOpcodes()
	registerJumpOpcodes()
	registerStackOpcodes()
	registerRotateOpcodes()

	registerCBTable()
}

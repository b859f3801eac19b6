package cpu

import (
	"fmt"
	"strings"
)

// Disassemble decodes the instruction at pc into its mnemonic, with the
// immediate operands resolved, and returns it along with the length of
// the instruction. read must not have any side effects.
func Disassemble(pc uint16, read func(uint16) uint8) (string, uint8) {
	opcode := read(pc)
	if opcode == 0xCB {
		instr := InstructionSetCB[read(pc+1)]
		return instr.name, instr.length
	}

	instr := InstructionSet[opcode]
	name := instr.name
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		nn := uint16(read(pc+2))<<8 | uint16(read(pc+1))
		name = strings.NewReplacer("d16", fmt.Sprintf("$%04X", nn), "a16", fmt.Sprintf("$%04X", nn)).Replace(name)
	case strings.Contains(name, "a8"):
		name = strings.Replace(name, "a8", fmt.Sprintf("$FF%02X", read(pc+1)), 1)
	case strings.Contains(name, "d8"):
		name = strings.Replace(name, "d8", fmt.Sprintf("$%02X", read(pc+1)), 1)
	case strings.Contains(name, "r8"):
		e := int8(read(pc + 1))
		if strings.HasPrefix(name, "JR") {
			// show the branch target rather than the displacement
			name = strings.Replace(name, "r8", fmt.Sprintf("$%04X", pc+2+uint16(e)), 1)
		} else {
			name = strings.NewReplacer("+r8", fmt.Sprintf("%+d", e), "r8", fmt.Sprintf("%d", e)).Replace(name)
		}
	}

	return name, instr.length
}

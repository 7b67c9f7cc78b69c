// debug_disasm_8080.go - Intel 8080 disassembler

package main

import (
	"fmt"
	"strings"
)

// opcodeInfo describes one opcode for the disassembler: the mnemonic with
// its register text and the total instruction length in bytes (1-3).
// 2-byte instructions take an immediate byte operand, 3-byte instructions a
// little-endian address/word operand.
type opcodeInfo struct {
	Mnemonic string
	Length   int
}

var opcodeTable = build8080OpcodeTable()

var regNames8080 = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

func build8080OpcodeTable() [256]opcodeInfo {
	var t [256]opcodeInfo

	for i := range t {
		t[i] = opcodeInfo{"*NOP", 1}
	}

	t[0x00] = opcodeInfo{"NOP", 1}
	t[0x01] = opcodeInfo{"LXI B", 3}
	t[0x11] = opcodeInfo{"LXI D", 3}
	t[0x21] = opcodeInfo{"LXI H", 3}
	t[0x31] = opcodeInfo{"LXI SP", 3}
	t[0x02] = opcodeInfo{"STAX B", 1}
	t[0x12] = opcodeInfo{"STAX D", 1}
	t[0x22] = opcodeInfo{"SHLD", 3}
	t[0x32] = opcodeInfo{"STA", 3}
	t[0x0A] = opcodeInfo{"LDAX B", 1}
	t[0x1A] = opcodeInfo{"LDAX D", 1}
	t[0x2A] = opcodeInfo{"LHLD", 3}
	t[0x3A] = opcodeInfo{"LDA", 3}
	t[0x03] = opcodeInfo{"INX B", 1}
	t[0x13] = opcodeInfo{"INX D", 1}
	t[0x23] = opcodeInfo{"INX H", 1}
	t[0x33] = opcodeInfo{"INX SP", 1}
	t[0x0B] = opcodeInfo{"DCX B", 1}
	t[0x1B] = opcodeInfo{"DCX D", 1}
	t[0x2B] = opcodeInfo{"DCX H", 1}
	t[0x3B] = opcodeInfo{"DCX SP", 1}
	t[0x07] = opcodeInfo{"RLC", 1}
	t[0x0F] = opcodeInfo{"RRC", 1}
	t[0x17] = opcodeInfo{"RAL", 1}
	t[0x1F] = opcodeInfo{"RAR", 1}
	t[0x27] = opcodeInfo{"DAA", 1}
	t[0x2F] = opcodeInfo{"CMA", 1}
	t[0x37] = opcodeInfo{"STC", 1}
	t[0x3F] = opcodeInfo{"CMC", 1}
	t[0x09] = opcodeInfo{"DAD B", 1}
	t[0x19] = opcodeInfo{"DAD D", 1}
	t[0x29] = opcodeInfo{"DAD H", 1}
	t[0x39] = opcodeInfo{"DAD SP", 1}

	for _, op := range []byte{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C} {
		t[op] = opcodeInfo{"INR " + regNames8080[(op>>3)&0x07], 1}
	}
	for _, op := range []byte{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D} {
		t[op] = opcodeInfo{"DCR " + regNames8080[(op>>3)&0x07], 1}
	}
	for _, op := range []byte{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E} {
		t[op] = opcodeInfo{"MVI " + regNames8080[(op>>3)&0x07], 2}
	}

	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dest := regNames8080[(op>>3)&0x07]
		src := regNames8080[op&0x07]
		t[op] = opcodeInfo{"MOV " + dest + "," + src, 1}
	}
	t[0x76] = opcodeInfo{"HLT", 1}

	aluNames := [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
	for op := 0x80; op <= 0xBF; op++ {
		t[op] = opcodeInfo{aluNames[(op>>3)&0x07] + " " + regNames8080[op&0x07], 1}
	}

	immNames := [8]string{"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI"}
	for i, op := range []byte{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE} {
		t[op] = opcodeInfo{immNames[i], 2}
	}

	t[0xC0] = opcodeInfo{"RNZ", 1}
	t[0xC8] = opcodeInfo{"RZ", 1}
	t[0xD0] = opcodeInfo{"RNC", 1}
	t[0xD8] = opcodeInfo{"RC", 1}
	t[0xE0] = opcodeInfo{"RPO", 1}
	t[0xE8] = opcodeInfo{"RPE", 1}
	t[0xF0] = opcodeInfo{"RP", 1}
	t[0xF8] = opcodeInfo{"RM", 1}
	t[0xC9] = opcodeInfo{"RET", 1}
	t[0xD9] = opcodeInfo{"*RET", 1}

	t[0xC2] = opcodeInfo{"JNZ", 3}
	t[0xCA] = opcodeInfo{"JZ", 3}
	t[0xD2] = opcodeInfo{"JNC", 3}
	t[0xDA] = opcodeInfo{"JC", 3}
	t[0xE2] = opcodeInfo{"JPO", 3}
	t[0xEA] = opcodeInfo{"JPE", 3}
	t[0xF2] = opcodeInfo{"JP", 3}
	t[0xFA] = opcodeInfo{"JM", 3}
	t[0xC3] = opcodeInfo{"JMP", 3}
	t[0xCB] = opcodeInfo{"*JMP", 3}

	t[0xC4] = opcodeInfo{"CNZ", 3}
	t[0xCC] = opcodeInfo{"CZ", 3}
	t[0xD4] = opcodeInfo{"CNC", 3}
	t[0xDC] = opcodeInfo{"CC", 3}
	t[0xE4] = opcodeInfo{"CPO", 3}
	t[0xEC] = opcodeInfo{"CPE", 3}
	t[0xF4] = opcodeInfo{"CP", 3}
	t[0xFC] = opcodeInfo{"CM", 3}
	t[0xCD] = opcodeInfo{"CALL", 3}
	t[0xDD] = opcodeInfo{"*CALL", 3}
	t[0xED] = opcodeInfo{"*CALL", 3}
	t[0xFD] = opcodeInfo{"*CALL", 3}

	t[0xC1] = opcodeInfo{"POP B", 1}
	t[0xD1] = opcodeInfo{"POP D", 1}
	t[0xE1] = opcodeInfo{"POP H", 1}
	t[0xF1] = opcodeInfo{"POP PSW", 1}
	t[0xC5] = opcodeInfo{"PUSH B", 1}
	t[0xD5] = opcodeInfo{"PUSH D", 1}
	t[0xE5] = opcodeInfo{"PUSH H", 1}
	t[0xF5] = opcodeInfo{"PUSH PSW", 1}

	for _, op := range []byte{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF} {
		t[op] = opcodeInfo{fmt.Sprintf("RST %d", (op>>3)&0x07), 1}
	}

	t[0xD3] = opcodeInfo{"OUT", 2}
	t[0xDB] = opcodeInfo{"IN", 2}
	t[0xE3] = opcodeInfo{"XTHL", 1}
	t[0xEB] = opcodeInfo{"XCHG", 1}
	t[0xE9] = opcodeInfo{"PCHL", 1}
	t[0xF9] = opcodeInfo{"SPHL", 1}
	t[0xF3] = opcodeInfo{"DI", 1}
	t[0xFB] = opcodeInfo{"EI", 1}

	// 08/10/18/20/28/30/38 stay *NOP from the fill above.
	return t
}

type DisassembledLine struct {
	Address  uint16
	HexBytes string
	Text     string
	Length   int
}

// disassemble8080 decodes count instructions starting at addr. Reads past
// the end of memory stop the listing early.
func disassemble8080(mem *Memory, addr uint16, count int) []DisassembledLine {
	var lines []DisassembledLine
	for range count {
		opcode, err := mem.Read(addr)
		if err != nil {
			break
		}
		info := opcodeTable[opcode]

		raw := []byte{opcode}
		text := info.Mnemonic
		switch info.Length {
		case 2:
			operand, err := mem.Read(addr + 1)
			if err != nil {
				return lines
			}
			raw = append(raw, operand)
			text = fmt.Sprintf("%s 0x%02X", info.Mnemonic, operand)
		case 3:
			operand, err := mem.ReadWord(addr + 1)
			if err != nil {
				return lines
			}
			raw = append(raw, byte(operand), byte(operand>>8))
			text = fmt.Sprintf("%s 0x%04X", info.Mnemonic, operand)
		}

		hexParts := make([]string, len(raw))
		for i, b := range raw {
			hexParts[i] = fmt.Sprintf("%02X", b)
		}

		lines = append(lines, DisassembledLine{
			Address:  addr,
			HexBytes: strings.Join(hexParts, " "),
			Text:     text,
			Length:   info.Length,
		})
		addr += uint16(info.Length)
	}
	return lines
}

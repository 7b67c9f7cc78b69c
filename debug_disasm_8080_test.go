package main

import "testing"

func TestDisasmOpcodeTable(t *testing.T) {
	cases := []struct {
		opcode byte
		text   string
		length int
	}{
		{0x00, "NOP", 1},
		{0x08, "*NOP", 1},
		{0x41, "MOV B,C", 1},
		{0x7E, "MOV A,M", 1},
		{0x76, "HLT", 1},
		{0x87, "ADD A", 1},
		{0xBE, "CMP M", 1},
		{0x3E, "MVI A", 2},
		{0x36, "MVI M", 2},
		{0xC3, "JMP", 3},
		{0xCD, "CALL", 3},
		{0xC9, "RET", 1},
		{0xD3, "OUT", 2},
		{0xDB, "IN", 2},
		{0xE7, "RST 4", 1},
		{0xF5, "PUSH PSW", 1},
		{0x27, "DAA", 1},
		{0x22, "SHLD", 3},
	}

	for _, tc := range cases {
		info := opcodeTable[tc.opcode]
		if info.Mnemonic != tc.text {
			t.Errorf("opcode 0x%02X mnemonic = %q, want %q", tc.opcode, info.Mnemonic, tc.text)
		}
		if info.Length != tc.length {
			t.Errorf("opcode 0x%02X length = %d, want %d", tc.opcode, info.Length, tc.length)
		}
	}
}

func TestDisasmEveryOpcodeHasLength(t *testing.T) {
	for op, info := range opcodeTable {
		if info.Mnemonic == "" {
			t.Errorf("opcode 0x%02X has no mnemonic", op)
		}
		if info.Length < 1 || info.Length > 3 {
			t.Errorf("opcode 0x%02X has length %d", op, info.Length)
		}
	}
}

func TestDisasmListing(t *testing.T) {
	mem, err := NewMemory(0, 0x100)
	if err != nil {
		t.Fatal(err)
	}
	if err := mem.Load(0x10, []byte{0x3E, 0x0A, 0x32, 0x00, 0x24, 0xC9}); err != nil {
		t.Fatal(err)
	}

	lines := disassemble8080(mem, 0x10, 3)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	if lines[0].Text != "MVI A 0x0A" || lines[0].HexBytes != "3E 0A" {
		t.Fatalf("line 0 = %+v", lines[0])
	}
	if lines[1].Text != "STA 0x2400" || lines[1].Address != 0x12 {
		t.Fatalf("line 1 = %+v", lines[1])
	}
	if lines[2].Text != "RET" || lines[2].Address != 0x15 {
		t.Fatalf("line 2 = %+v", lines[2])
	}
}

func TestDisasmStopsAtMemoryEnd(t *testing.T) {
	mem, err := NewMemory(0, 0x10)
	if err != nil {
		t.Fatal(err)
	}
	// A 3-byte instruction with its operand beyond the end of memory.
	if err := mem.Load(0x0F, []byte{0xC3}); err != nil {
		t.Fatal(err)
	}

	lines := disassemble8080(mem, 0x0F, 4)
	if len(lines) != 0 {
		t.Fatalf("got %d lines, want 0", len(lines))
	}
}

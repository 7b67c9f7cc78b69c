package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCOMFile(t *testing.T, program []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.com")
	if err := os.WriteFile(path, program, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiagnosticConsoleOutput(t *testing.T) {
	// Prints 'H' through BDOS function 2, then "ELLO" through function 9,
	// then exits via the warm boot vector.
	program := []byte{
		0x0E, 0x02, // 0100: MVI C,2
		0x1E, 'H', // 0102: MVI E,'H'
		0xCD, 0x05, 0x00, // 0104: CALL 0x0005
		0x0E, 0x09, // 0107: MVI C,9
		0x11, 0x13, 0x01, // 0109: LXI D,0x0113
		0xCD, 0x05, 0x00, // 010C: CALL 0x0005
		0xC3, 0x00, 0x00, // 010F: JMP 0x0000
		0x00,                    // 0112: pad
		'E', 'L', 'L', 'O', '$', // 0113: message
	}

	var out bytes.Buffer
	runner, err := NewDiagnosticRunner(&out)
	if err != nil {
		t.Fatal(err)
	}
	runner.MaxInstructions = 10_000

	if err := runner.Run(writeCOMFile(t, program)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "HELLO" {
		t.Fatalf("output = %q, want HELLO", out.String())
	}
}

func TestDiagnosticBdosReturnsCleanly(t *testing.T) {
	// The injected RET at 0x0005 must return control after each BDOS call;
	// a program that relies on it repeatedly still terminates.
	program := []byte{
		0x06, 0x03, // 0100: MVI B,3
		0x0E, 0x02, // 0102: loop: MVI C,2
		0x1E, '*', // 0104: MVI E,'*'
		0xCD, 0x05, 0x00, // 0106: CALL 0x0005
		0x05,             // 0109: DCR B
		0xC2, 0x02, 0x01, // 010A: JNZ 0x0102
		0xC3, 0x00, 0x00, // 010D: JMP 0x0000
	}

	var out bytes.Buffer
	runner, err := NewDiagnosticRunner(&out)
	if err != nil {
		t.Fatal(err)
	}
	runner.MaxInstructions = 10_000

	if err := runner.Run(writeCOMFile(t, program)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "***" {
		t.Fatalf("output = %q, want ***", out.String())
	}
}

func TestDiagnosticHaltIsAnError(t *testing.T) {
	var out bytes.Buffer
	runner, err := NewDiagnosticRunner(&out)
	if err != nil {
		t.Fatal(err)
	}

	err = runner.Run(writeCOMFile(t, []byte{0x76})) // HLT
	if err == nil || !strings.Contains(err.Error(), "halted") {
		t.Fatalf("err = %v, want halted error", err)
	}
}

func TestDiagnosticInstructionCap(t *testing.T) {
	var out bytes.Buffer
	runner, err := NewDiagnosticRunner(&out)
	if err != nil {
		t.Fatal(err)
	}
	runner.MaxInstructions = 100

	err = runner.Run(writeCOMFile(t, []byte{0xC3, 0x00, 0x01})) // JMP 0x0100
	if err == nil || !strings.Contains(err.Error(), "did not terminate") {
		t.Fatalf("err = %v, want termination-cap error", err)
	}
}

func TestDiagnosticMissingFile(t *testing.T) {
	var out bytes.Buffer
	runner, err := NewDiagnosticRunner(&out)
	if err != nil {
		t.Fatal(err)
	}
	if err := runner.Run(filepath.Join(t.TempDir(), "nope.com")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

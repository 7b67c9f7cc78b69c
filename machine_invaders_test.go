package main

import "testing"

// A minimal cabinet program: set up a stack, enable interrupts and spin.
// The RST1 handler re-enables interrupts and halts; the RST2 handler loads
// a marker into A and halts for good.
func loadMachineTestProgram(t *testing.T, m *SpaceInvadersMachine) {
	t.Helper()

	program := []byte{
		0x31, 0x00, 0x24, // 0000: LXI SP,0x2400
		0xFB,             // 0003: EI
		0xC3, 0x04, 0x00, // 0004: JMP 0x0004
	}
	if err := m.Memory().Load(0, program); err != nil {
		t.Fatal(err)
	}
	if err := m.Memory().Load(int(RST1), []byte{0xFB, 0x76}); err != nil { // EI ; HLT
		t.Fatal(err)
	}
	if err := m.Memory().Load(int(RST2), []byte{0x3E, 0x99, 0x76}); err != nil { // MVI A,0x99 ; HLT
		t.Fatal(err)
	}
}

func newTestMachine(t *testing.T) *SpaceInvadersMachine {
	t.Helper()
	m, err := NewSpaceInvadersMachine(nil, NewHeadlessSoundBank())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMachineDrainsCycleBudget(t *testing.T) {
	m := newTestMachine(t)
	loadMachineTestProgram(t, m)

	// Too short for the half-frame timer; just drains cycles.
	if err := m.Update(0.001); err != nil {
		t.Fatalf("Update: %v", err)
	}

	cpu := m.CPU()
	if cpu.Cycles < 1900 || cpu.Cycles > 2100 {
		t.Fatalf("Cycles = %d, want about 2000 for 1ms at 2MHz", cpu.Cycles)
	}
}

func TestMachineHalfFrameInterrupts(t *testing.T) {
	m := newTestMachine(t)
	loadMachineTestProgram(t, m)
	cpu := m.CPU()

	halfFrame := HALF_FRAME_SECONDS * 1.01

	// First tick: upper band then RST1.
	if err := m.Update(halfFrame); err != nil {
		t.Fatalf("Update 1: %v", err)
	}
	require8080EqualU16(t, "PC", cpu.PC, uint16(RST1))
	if cpu.InterruptsEnabled {
		t.Fatal("acceptance should clear the interrupt enable latch")
	}

	// Second tick: the handler ran EI;HLT, so RST2 wakes the CPU.
	if err := m.Update(halfFrame); err != nil {
		t.Fatalf("Update 2: %v", err)
	}
	require8080EqualU16(t, "PC", cpu.PC, uint16(RST2))
	if cpu.Halted {
		t.Fatal("RST2 should have woken the CPU")
	}

	// Third tick: the RST2 handler halted with interrupts off, so the next
	// interrupt is dropped on the floor.
	if err := m.Update(halfFrame); err != nil {
		t.Fatalf("Update 3: %v", err)
	}
	require8080EqualU8(t, "A", cpu.A, 0x99)
	if !cpu.Halted {
		t.Fatal("CPU should stay halted with interrupts disabled")
	}
}

func TestMachineStopsOnBreakpoint(t *testing.T) {
	m := newTestMachine(t)
	loadMachineTestProgram(t, m)
	m.CPU().AddBreakpoint(0x0004)

	if err := m.Update(0.001); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !m.CPU().Halted {
		t.Fatal("breakpoint did not stop the scheduler")
	}
	require8080EqualU16(t, "PC", m.CPU().PC, 0x0004)
}

func TestMachineInterruptStacksReturnAddress(t *testing.T) {
	m := newTestMachine(t)
	loadMachineTestProgram(t, m)
	cpu := m.CPU()

	if err := m.Update(HALF_FRAME_SECONDS * 1.01); err != nil {
		t.Fatal(err)
	}

	// The interrupted PC sits on the stack below the initial SP.
	require8080EqualU16(t, "SP", cpu.SP, 0x23FE)
	ret, err := m.Memory().ReadWord(0x23FE)
	if err != nil {
		t.Fatal(err)
	}
	if ret < 0x0003 || ret > 0x0007 {
		t.Fatalf("stacked PC = 0x%04X, want inside the spin loop", ret)
	}
}

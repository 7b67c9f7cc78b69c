// machine_invaders.go - Space Invaders machine: memory map, CPU, cabinet
// I/O and the half-frame interrupt scheduler

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

// SpaceInvadersMachine wires the 8080 core to the cabinet hardware and
// paces it against wall-clock time. The machine owns the only references
// to memory and I/O; backends observe state strictly between Update calls.
type SpaceInvadersMachine struct {
	mem   *Memory
	cpu   *Debug8080
	io    *SpaceInvadersIO
	video *InvadersVideo

	cycleBudget float64
	frameTimer  float64
	upperHalf   bool
}

func NewSpaceInvadersMachine(keys KeyState, sounds SoundBank) (*SpaceInvadersMachine, error) {
	mem, err := NewMemory(INVADERS_ROM_SIZE, INVADERS_RAM_SIZE)
	if err != nil {
		return nil, err
	}
	io := NewSpaceInvadersIO(keys, sounds)
	return &SpaceInvadersMachine{
		mem:   mem,
		cpu:   NewDebug8080(NewCPU_8080(mem, io)),
		io:    io,
		video: NewInvadersVideo(mem),
		// The first half-frame tick draws the upper band.
		upperHalf: true,
	}, nil
}

func (m *SpaceInvadersMachine) CPU() *Debug8080 { return m.cpu }

func (m *SpaceInvadersMachine) Memory() *Memory { return m.mem }

func (m *SpaceInvadersMachine) IO() *SpaceInvadersIO { return m.io }

func (m *SpaceInvadersMachine) Video() *InvadersVideo { return m.video }

func (m *SpaceInvadersMachine) Framebuffer() []byte { return m.video.Framebuffer() }

// LoadROM installs the 8 KiB game image at address 0 and resets the CPU.
func (m *SpaceInvadersMachine) LoadROM(filename string) error {
	m.mem.Clear()
	if err := m.mem.LoadFile(filename, 0); err != nil {
		return err
	}
	m.cpu.Reset()
	return nil
}

func (m *SpaceInvadersMachine) Reset() {
	m.cpu.Reset()
	m.cycleBudget = 0
	m.frameTimer = 0
	m.upperHalf = true
}

// Update advances the machine by delta wall-clock seconds. The elapsed time
// converts to a machine-cycle budget at 2 MHz which is drained through
// Step; a halted CPU or a tripped breakpoint stops the drain early. When
// the 1/120s half-frame timer expires the matching screen band is
// snapshotted and the cabinet raises RST1 (upper) or RST2 (lower).
func (m *SpaceInvadersMachine) Update(delta float64) error {
	m.cycleBudget += delta * CPU_CLOCK_HZ

	for m.cycleBudget > 0 {
		cycles, err := m.cpu.Step()
		if err != nil {
			return err
		}
		if cycles == 0 {
			// Halted (or stopped on a breakpoint); only an interrupt can
			// resume it, so the rest of the budget is forfeit.
			m.cycleBudget = 0
			break
		}
		m.cycleBudget -= float64(cycles)
	}

	m.frameTimer += delta
	if m.frameTimer > HALF_FRAME_SECONDS {
		// Snapshot first, then interrupt: the game synchronises its draw
		// routines to seeing the band it just finished drawing.
		if err := m.video.RenderBand(m.upperHalf); err != nil {
			return err
		}
		vector := RST1
		if !m.upperHalf {
			vector = RST2
		}
		if _, err := m.cpu.AcceptRestartInterrupt(vector); err != nil {
			return err
		}
		m.frameTimer = 0
		m.upperHalf = !m.upperHalf
	}
	return nil
}

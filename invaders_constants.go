// invaders_constants.go - Space Invaders cabinet hardware constants

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

const (
	// The Intel 8080 in the Space Invaders cabinet runs at 2 MHz.
	CPU_CLOCK_HZ = 2_000_000

	// The CRT refreshes at 60Hz; RST1/RST2 interrupts alternate at 120Hz.
	HALF_FRAME_SECONDS = 1.0 / 120.0

	// Cabinet memory map: 8KB ROM at 0x0000, 8KB RAM above it.
	INVADERS_ROM_SIZE = 0x2000
	INVADERS_RAM_SIZE = 0x2000

	// The video buffer occupies 0x2400-0x3FFF.
	VIDEO_RAM_START = 0x2400
	VIDEO_RAM_END   = 0x4000

	// CRT resolution before the cabinet's 90-degree counter-clockwise
	// mirror rotation. The visible display is 224x256.
	CRT_WIDTH  = 256
	CRT_HEIGHT = 224

	DISPLAY_WIDTH  = CRT_HEIGHT
	DISPLAY_HEIGHT = CRT_WIDTH
)

// Restart vectors issued by the cabinet's interrupt hardware.
const (
	RST0 byte = 0x00
	RST1 byte = 0x08
	RST2 byte = 0x10
	RST3 byte = 0x18
	RST4 byte = 0x20
	RST5 byte = 0x28
	RST6 byte = 0x30
	RST7 byte = 0x38
)

// Cabinet DIP switch settings. Wired on the owner-facing switch block;
// fixed at assembly time here.
const (
	DIP3 = false // number of ships (with DIP5): 00=3 10=5 01=4 11=6
	DIP4 = false // self-test request, read at power up
	DIP5 = false
	DIP6 = false // extra ship at 1500 (0) or 1000 (1)
	DIP7 = false // coin info in demo screen, 0=on
)

// Symbolic input names polled through the cabinet's KeyState callback.
const (
	InputCoin    = "Coin Inserted"
	InputTilt    = "Tilt"
	InputP1Start = "1 Player Start"
	InputP2Start = "2 Players Start"
	InputFire    = "Fire"
	InputLeft    = "Left"
	InputRight   = "Right"
	InputP1Fire  = "1 Player Fire"
	InputP1Left  = "1 Player Left"
	InputP1Right = "1 Player Right"
	InputP2Fire  = "2 Player Fire"
	InputP2Left  = "2 Player Left"
	InputP2Right = "2 Player Right"
)

// Cabinet sound slots, in the order the WAV files ship on disk.
// Slots 0-3 trigger from port 3, slots 4-8 from port 5.
const (
	SoundUFO = iota
	SoundShot
	SoundPlayerDie
	SoundInvaderDie
	SoundFleet1
	SoundFleet2
	SoundFleet3
	SoundFleet4
	SoundUFOHit

	CABINET_SOUND_COUNT = 9
)

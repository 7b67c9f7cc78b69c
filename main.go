// main.go - Entry point: Space Invaders cabinet or CPU diagnostics

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"
)

func boilerPlate() {
	fmt.Println("Invader8080 - an Intel 8080 / Space Invaders cabinet emulator")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/Invader8080")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	romPath := flag.String("rom", "roms/invaders.rom", "path to the 8KB Space Invaders ROM image")
	soundDir := flag.String("sounds", "sounds", "directory holding the cabinet WAV samples (0.wav..8.wav)")
	diagPath := flag.String("diag", "", "run a CP/M diagnostic binary (TST8080.COM etc.) and exit")
	videoMode := flag.String("video", "ebiten", "video backend: ebiten or terminal")
	scale := flag.Int("scale", 3, "window scale factor for the ebiten backend")
	noSound := flag.Bool("nosound", false, "disable audio output")
	flag.Parse()

	if *diagPath != "" {
		runner, err := NewDiagnosticRunner(os.Stdout)
		if err == nil {
			fmt.Printf("-- Starting diagnostic: %s --\n", *diagPath)
			err = runner.Run(*diagPath)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "diagnostic failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\n-- Program terminated --")
		return
	}

	boilerPlate()

	var sounds SoundBank
	if *noSound {
		sounds = NewHeadlessSoundBank()
	} else {
		bank, err := NewOtoSoundBank(*soundDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sound disabled: %v\n", err)
			sounds = NewHeadlessSoundBank()
		} else {
			sounds = bank
		}
	}

	var err error
	switch *videoMode {
	case "terminal":
		cab := NewTerminalCabinet()
		var machine *SpaceInvadersMachine
		machine, err = NewSpaceInvadersMachine(cab.KeyState, sounds)
		if err == nil {
			err = machine.LoadROM(*romPath)
		}
		if err == nil {
			err = cab.Run(machine)
		}
	case "ebiten":
		cab := NewEbitenCabinet(*scale)
		var machine *SpaceInvadersMachine
		machine, err = NewSpaceInvadersMachine(cab.KeyState, sounds)
		if err == nil {
			err = machine.LoadROM(*romPath)
		}
		if err == nil {
			err = cab.Run(machine)
		}
	default:
		err = fmt.Errorf("unknown video backend %q", *videoMode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// video_backend_terminal.go - ANSI terminal backend: half-block rendering
// with raw-mode keyboard input

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// The framebuffer is sampled 2:1 horizontally and 4:1 vertically into
// half-block characters, so the playfield fits an ordinary terminal.
const (
	termCellWidth  = DISPLAY_WIDTH / 2
	termCellHeight = DISPLAY_HEIGHT / 4
)

// Terminals deliver key presses, not key state. A press is treated as held
// until this long after its last repeat.
const termKeyHold = 120 * time.Millisecond

// TerminalCabinet renders the machine into an ANSI terminal. Arrows move,
// space fires, c inserts a coin, 1/2 start, t tilts, q or Esc quits.
type TerminalCabinet struct {
	pressed map[string]time.Time
	events  chan string
	quit    chan struct{}
}

func NewTerminalCabinet() *TerminalCabinet {
	return &TerminalCabinet{
		pressed: make(map[string]time.Time),
		events:  make(chan string, 64),
		quit:    make(chan struct{}),
	}
}

func (t *TerminalCabinet) KeyState(input string) bool {
	last, ok := t.pressed[input]
	return ok && time.Since(last) < termKeyHold
}

// Run drives the machine at 60Hz until q/Esc or a machine error.
func (t *TerminalCabinet) Run(machine *SpaceInvadersMachine) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("terminal raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	if cols, rows, err := term.GetSize(fd); err == nil {
		if cols < termCellWidth || rows < termCellHeight {
			return fmt.Errorf("terminal too small: need %dx%d, have %dx%d",
				termCellWidth, termCellHeight, cols, rows)
		}
	}

	go t.readKeys()

	// Hide the cursor and clear once; every frame redraws from home.
	fmt.Print("\x1b[?25l\x1b[2J")
	defer fmt.Print("\x1b[?25h\x1b[2J\x1b[H")

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	last := time.Now()
	frame := 0
	for {
		select {
		case <-t.quit:
			return nil
		case name := <-t.events:
			t.pressed[name] = time.Now()
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now
			if delta > 0.25 {
				delta = 1.0 / 60.0
			}
			if err := machine.Update(delta); err != nil {
				return err
			}
			// Drawing at 30Hz keeps slow terminals ahead of the emulation.
			frame++
			if frame%2 == 0 {
				t.draw(machine.Framebuffer())
			}
		}
	}
}

func (t *TerminalCabinet) readKeys() {
	buf := make([]byte, 1)
	escape := 0 // 0 none, 1 got ESC, 2 got ESC [
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			close(t.quit)
			return
		}
		b := buf[0]

		switch escape {
		case 1:
			if b == '[' {
				escape = 2
			} else {
				// Bare escape: quit.
				close(t.quit)
				return
			}
			continue
		case 2:
			escape = 0
			switch b {
			case 'C':
				t.events <- InputRight
				t.events <- InputP1Right
			case 'D':
				t.events <- InputLeft
				t.events <- InputP1Left
			}
			continue
		}

		switch b {
		case 0x1b:
			escape = 1
		case 'q', 'Q', 0x03:
			close(t.quit)
			return
		case ' ':
			t.events <- InputFire
			t.events <- InputP1Fire
		case 'c', 'C':
			t.events <- InputCoin
		case '1':
			t.events <- InputP1Start
		case '2':
			t.events <- InputP2Start
		case 't', 'T':
			t.events <- InputTilt
		case 'a', 'A':
			t.events <- InputP2Left
		case 'd', 'D':
			t.events <- InputP2Right
		}
	}
}

// draw renders the RGBA framebuffer as ▀/▄/█ half-blocks, two sampled
// pixel rows per character cell.
func (t *TerminalCabinet) draw(fb []byte) {
	var sb strings.Builder
	sb.Grow(termCellWidth*termCellHeight + 256)
	sb.WriteString("\x1b[H")

	for cy := 0; cy < termCellHeight; cy++ {
		for cx := 0; cx < termCellWidth; cx++ {
			x := cx * 2
			topY := cy * 4
			bottomY := topY + 2
			top := fb[(topY*DISPLAY_WIDTH+x)*4] != 0
			bottom := fb[(bottomY*DISPLAY_WIDTH+x)*4] != 0
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	fmt.Print(sb.String())
}

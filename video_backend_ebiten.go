// video_backend_ebiten.go - Ebiten window backend: display, keyboard, debug
// overlay

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// EbitenCabinet presents the machine in an ebiten window and feeds cabinet
// inputs from the keyboard. F1 toggles a register overlay, F11 fullscreen.
type EbitenCabinet struct {
	machine *SpaceInvadersMachine
	scale   int

	lastTick  time.Time
	showDebug bool
}

var cabinetKeyBindings = map[string]ebiten.Key{
	InputCoin:    ebiten.KeyC,
	InputTilt:    ebiten.KeyT,
	InputP1Start: ebiten.Key1,
	InputP2Start: ebiten.Key2,
	InputFire:    ebiten.KeySpace,
	InputLeft:    ebiten.KeyArrowLeft,
	InputRight:   ebiten.KeyArrowRight,
	InputP1Fire:  ebiten.KeySpace,
	InputP1Left:  ebiten.KeyArrowLeft,
	InputP1Right: ebiten.KeyArrowRight,
	InputP2Fire:  ebiten.KeyControlLeft,
	InputP2Left:  ebiten.KeyA,
	InputP2Right: ebiten.KeyD,
}

func NewEbitenCabinet(scale int) *EbitenCabinet {
	if scale < 1 {
		scale = 1
	}
	return &EbitenCabinet{scale: scale}
}

// KeyState satisfies the cabinet's input callback.
func (g *EbitenCabinet) KeyState(input string) bool {
	key, ok := cabinetKeyBindings[input]
	return ok && ebiten.IsKeyPressed(key)
}

// Run takes ownership of the main goroutine until the window closes.
func (g *EbitenCabinet) Run(machine *SpaceInvadersMachine) error {
	g.machine = machine
	ebiten.SetWindowSize(DISPLAY_WIDTH*g.scale, DISPLAY_HEIGHT*g.scale)
	ebiten.SetWindowTitle("intel 8080 - Space Invaders")
	return ebiten.RunGame(g)
}

func (g *EbitenCabinet) Update() error {
	now := time.Now()
	delta := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	// First frame, or a stall (window drag, debugger): don't let the CPU
	// sprint to catch up.
	if delta <= 0 || delta > 0.25 {
		delta = 1.0 / 60.0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	return g.machine.Update(delta)
}

func (g *EbitenCabinet) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.machine.Framebuffer())

	if g.showDebug {
		cpu := g.machine.CPU()
		overlay := fmt.Sprintf("PC %04X SP %04X A %02X BC %04X DE %04X HL %04X PSW %02X CYC %d",
			cpu.PC, cpu.SP, cpu.A, cpu.BC(), cpu.DE(), cpu.HL(), cpu.PackFlags(), cpu.Cycles)
		text.Draw(screen, overlay, basicfont.Face7x13, 4, 12, color.RGBA{0x00, 0xFF, 0x00, 0xFF})
	}
}

func (g *EbitenCabinet) Layout(outsideWidth, outsideHeight int) (int, int) {
	return DISPLAY_WIDTH, DISPLAY_HEIGHT
}

// video_invaders.go - Video RAM to framebuffer conversion for the cabinet CRT

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

// InvadersVideo converts the cabinet's 1-bit video RAM into an RGBA
// framebuffer. The CRT scans 256x224 with eight pixels per byte; the
// cabinet mounts the tube rotated 90 degrees counter-clockwise, so the
// visible framebuffer is 224x256 with CRT row 0 on the left edge.
type InvadersVideo struct {
	mem *Memory
	fb  []byte
}

func NewInvadersVideo(mem *Memory) *InvadersVideo {
	return &InvadersVideo{
		mem: mem,
		fb:  make([]byte, DISPLAY_WIDTH*DISPLAY_HEIGHT*4),
	}
}

// Framebuffer returns the RGBA pixels, DISPLAY_WIDTH x DISPLAY_HEIGHT.
// Only valid between RenderBand calls.
func (v *InvadersVideo) Framebuffer() []byte {
	return v.fb
}

// RenderBand snapshots one half of video RAM into the framebuffer: the
// upper band covers CRT rows 0..111, the lower band rows 112..223. The
// scheduler calls this just before issuing the matching RST interrupt.
func (v *InvadersVideo) RenderBand(upper bool) error {
	if upper {
		return v.renderRows(0, CRT_HEIGHT/2)
	}
	return v.renderRows(CRT_HEIGHT/2, CRT_HEIGHT)
}

// RenderFull redraws the whole screen, for backends that want a complete
// first frame before the CPU has run.
func (v *InvadersVideo) RenderFull() error {
	return v.renderRows(0, CRT_HEIGHT)
}

const crtBytesPerRow = CRT_WIDTH / 8

func (v *InvadersVideo) renderRows(firstRow, lastRow int) error {
	for row := firstRow; row < lastRow; row++ {
		for b := 0; b < crtBytesPerRow; b++ {
			addr := uint16(VIDEO_RAM_START + row*crtBytesPerRow + b)
			packed, err := v.mem.Read(addr)
			if err != nil {
				return err
			}
			for bit := 0; bit < 8; bit++ {
				crtX := b*8 + bit
				// Rotate 90 degrees counter-clockwise: the CRT row becomes
				// the display column, the CRT column runs bottom-to-top.
				x := row
				y := DISPLAY_HEIGHT - 1 - crtX
				shade := byte(0)
				if packed&(1<<bit) != 0 {
					shade = 0xFF
				}
				offset := (y*DISPLAY_WIDTH + x) * 4
				v.fb[offset+0] = shade
				v.fb[offset+1] = shade
				v.fb[offset+2] = shade
				v.fb[offset+3] = 0xFF
			}
		}
	}
	return nil
}

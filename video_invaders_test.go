package main

import "testing"

func newTestVideo(t *testing.T) (*InvadersVideo, *Memory) {
	t.Helper()
	mem, err := NewMemory(INVADERS_ROM_SIZE, INVADERS_RAM_SIZE)
	if err != nil {
		t.Fatal(err)
	}
	return NewInvadersVideo(mem), mem
}

func pixelAt(fb []byte, x, y int) byte {
	return fb[(y*DISPLAY_WIDTH+x)*4]
}

func TestVideoPixelUnpacking(t *testing.T) {
	video, mem := newTestVideo(t)

	// First VRAM byte: CRT row 0, columns 0-7. Bit 0 is the first column.
	if err := mem.Write(VIDEO_RAM_START, 0b1000_0001); err != nil {
		t.Fatal(err)
	}
	if err := video.RenderBand(true); err != nil {
		t.Fatal(err)
	}

	fb := video.Framebuffer()
	// CRT row 0 becomes display column 0; CRT column n lands at display
	// row DISPLAY_HEIGHT-1-n after the counter-clockwise rotation.
	if pixelAt(fb, 0, DISPLAY_HEIGHT-1) != 0xFF {
		t.Fatal("bit 0 pixel not lit")
	}
	if pixelAt(fb, 0, DISPLAY_HEIGHT-8) != 0xFF {
		t.Fatal("bit 7 pixel not lit")
	}
	if pixelAt(fb, 0, DISPLAY_HEIGHT-2) != 0x00 {
		t.Fatal("unlit pixel has color")
	}
}

func TestVideoBandSplit(t *testing.T) {
	video, mem := newTestVideo(t)

	// One byte in each half of video RAM: CRT row 0 and CRT row 112.
	upperAddr := uint16(VIDEO_RAM_START)
	lowerAddr := uint16(VIDEO_RAM_START + (CRT_HEIGHT/2)*crtBytesPerRow)
	if err := mem.Write(upperAddr, 0x01); err != nil {
		t.Fatal(err)
	}
	if err := mem.Write(lowerAddr, 0x01); err != nil {
		t.Fatal(err)
	}

	if err := video.RenderBand(true); err != nil {
		t.Fatal(err)
	}
	fb := video.Framebuffer()
	if pixelAt(fb, 0, DISPLAY_HEIGHT-1) != 0xFF {
		t.Fatal("upper band pixel not rendered")
	}
	if pixelAt(fb, CRT_HEIGHT/2, DISPLAY_HEIGHT-1) != 0x00 {
		t.Fatal("lower band rendered by the upper tick")
	}

	if err := video.RenderBand(false); err != nil {
		t.Fatal(err)
	}
	if pixelAt(fb, CRT_HEIGHT/2, DISPLAY_HEIGHT-1) != 0xFF {
		t.Fatal("lower band pixel not rendered")
	}
}

func TestVideoFullRender(t *testing.T) {
	video, mem := newTestVideo(t)

	// Last VRAM byte: CRT row 223, columns 248-255.
	if err := mem.Write(VIDEO_RAM_END-1, 0x80); err != nil {
		t.Fatal(err)
	}
	if err := video.RenderFull(); err != nil {
		t.Fatal(err)
	}

	fb := video.Framebuffer()
	// CRT row 223, column 255 maps to the top-right display corner.
	if pixelAt(fb, DISPLAY_WIDTH-1, 0) != 0xFF {
		t.Fatal("corner pixel not lit")
	}
}

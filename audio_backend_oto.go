//go:build !headless

// audio_backend_oto.go - OTO v3 playback backend for the cabinet sounds

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Invader8080
License: GPLv3 or later
*/

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoSoundBank plays the cabinet's nine WAV samples through a single oto
// context. One-shot samples get a fresh player per trigger; the UFO drone
// runs on a looping reader until switched off.
type OtoSoundBank struct {
	ctx     *oto.Context
	samples [CABINET_SOUND_COUNT][]byte

	mutex    sync.Mutex
	oneshots []*oto.Player
	loops    map[int]*oto.Player
}

// NewOtoSoundBank loads 0.wav .. 8.wav from dir. Missing files leave their
// slot silent; with no files at all the bank stays silent without an audio
// context. All cabinet samples ship with the same format, so the context is
// opened with the format of the first sample found.
func NewOtoSoundBank(dir string) (*OtoSoundBank, error) {
	bank := &OtoSoundBank{
		loops: make(map[int]*oto.Player),
	}

	rate, channels := 0, 0
	for slot := range CABINET_SOUND_COUNT {
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("%d.wav", slot)))
		if err != nil {
			continue
		}
		sample, err := parseWAV(data)
		if err != nil {
			return nil, fmt.Errorf("sound %d: %w", slot, err)
		}
		bank.samples[slot] = sample.data
		if rate == 0 {
			rate = sample.rate
			channels = sample.channels
		}
	}

	if rate == 0 {
		return bank, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	bank.ctx = ctx
	return bank, nil
}

func (b *OtoSoundBank) Play(slot int) {
	if b.ctx == nil || slot < 0 || slot >= CABINET_SOUND_COUNT || b.samples[slot] == nil {
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	// Reap players that have finished before starting another.
	active := b.oneshots[:0]
	for _, p := range b.oneshots {
		if p.IsPlaying() {
			active = append(active, p)
		} else {
			p.Close()
		}
	}
	b.oneshots = active

	player := b.ctx.NewPlayer(bytes.NewReader(b.samples[slot]))
	player.Play()
	b.oneshots = append(b.oneshots, player)
}

func (b *OtoSoundBank) SetLooping(slot int, active bool) {
	if b.ctx == nil || slot < 0 || slot >= CABINET_SOUND_COUNT || b.samples[slot] == nil {
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	player, running := b.loops[slot]
	switch {
	case active && !running:
		player = b.ctx.NewPlayer(&loopReader{data: b.samples[slot]})
		player.Play()
		b.loops[slot] = player
	case !active && running:
		player.Close()
		delete(b.loops, slot)
	}
}

func (b *OtoSoundBank) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, p := range b.oneshots {
		p.Close()
	}
	b.oneshots = nil
	for slot, p := range b.loops {
		p.Close()
		delete(b.loops, slot)
	}
}

// loopReader replays its sample forever.
type loopReader struct {
	data []byte
	pos  int
}

func (r *loopReader) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n := copy(p[total:], r.data[r.pos:])
		total += n
		r.pos += n
		if r.pos == len(r.data) {
			r.pos = 0
		}
	}
	return total, nil
}

type pcmSample struct {
	rate     int
	channels int
	data     []byte // signed 16-bit little-endian frames
}

// parseWAV decodes a RIFF/WAVE file holding uncompressed PCM. 8-bit samples
// are widened to the 16-bit format the oto context runs at.
func parseWAV(data []byte) (*pcmSample, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF WAVE file")
	}

	sample := &pcmSample{}
	bits := 0
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		pos += 8
		if pos+size > len(data) {
			return nil, fmt.Errorf("truncated %q chunk", id)
		}
		chunk := data[pos : pos+size]

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("short fmt chunk")
			}
			if format := binary.LittleEndian.Uint16(chunk[0:2]); format != 1 {
				return nil, fmt.Errorf("unsupported WAVE format %d (want PCM)", format)
			}
			sample.channels = int(binary.LittleEndian.Uint16(chunk[2:4]))
			sample.rate = int(binary.LittleEndian.Uint32(chunk[4:8]))
			bits = int(binary.LittleEndian.Uint16(chunk[14:16]))
		case "data":
			switch bits {
			case 16:
				sample.data = chunk
			case 8:
				widened := make([]byte, 0, len(chunk)*2)
				for _, v := range chunk {
					s := (int16(v) - 128) << 8
					widened = append(widened, byte(s), byte(s>>8))
				}
				sample.data = widened
			default:
				return nil, fmt.Errorf("unsupported sample width %d bits", bits)
			}
		}

		// Chunks are word-aligned.
		pos += size + size&1
	}

	if sample.rate == 0 || sample.data == nil {
		return nil, fmt.Errorf("missing fmt or data chunk")
	}
	return sample, nil
}

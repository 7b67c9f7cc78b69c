//go:build headless

// audio_backend_oto_headless.go - stand-in for the oto backend in headless
// builds: same constructor, no audio context

package main

// OtoSoundBank in headless builds accepts every call and plays nothing.
type OtoSoundBank struct{}

func NewOtoSoundBank(dir string) (*OtoSoundBank, error) {
	return &OtoSoundBank{}, nil
}

func (b *OtoSoundBank) Play(slot int) {}

func (b *OtoSoundBank) SetLooping(slot int, active bool) {}

func (b *OtoSoundBank) Close() {}

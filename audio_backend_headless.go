// audio_backend_headless.go - Silent sound bank for tests and -nosound runs

package main

// HeadlessSoundBank records triggers instead of playing them.
type HeadlessSoundBank struct {
	Played  []int
	Looping map[int]bool
}

func NewHeadlessSoundBank() *HeadlessSoundBank {
	return &HeadlessSoundBank{
		Looping: make(map[int]bool),
	}
}

func (b *HeadlessSoundBank) Play(slot int) {
	b.Played = append(b.Played, slot)
}

func (b *HeadlessSoundBank) SetLooping(slot int, active bool) {
	b.Looping[slot] = active
}

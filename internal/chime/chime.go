// Package chime synthesizes the short tone played while the page curtain
// closes. Audio is optional: a missing output device disables it.
package chime

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)
	ringSize   = 2048
)

// Tone returns a sine tone of freq Hz lasting d, with a linear attack and an
// exponential release so it does not click.
func Tone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	total := sr.N(d)
	attack := sr.N(10 * time.Millisecond)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := math.Exp(-4 * float64(pos) / float64(total))
			if pos < attack {
				env *= float64(pos) / float64(attack)
			}
			v := volume * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})
}

// Player plays transition chimes on the default speaker.
type Player struct {
	mu      sync.Mutex
	enabled bool
	tap     *Tap
}

// NewPlayer initializes the speaker. When it fails the player is returned
// disabled along with the error.
func NewPlayer() (*Player, error) {
	p := &Player{}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		return p, fmt.Errorf("init speaker: %w", err)
	}
	p.enabled = true
	return p, nil
}

// Enabled reports whether sound can be played.
func (p *Player) Enabled() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Play starts a two-note chime, replacing any chime still sounding.
func (p *Player) Play() {
	if !p.Enabled() {
		return
	}
	tone := beep.Seq(
		Tone(SampleRate, 660, 120*time.Millisecond, 0.25),
		Tone(SampleRate, 990, 240*time.Millisecond, 0.2),
	)
	tap := NewTap(tone, ringSize)

	p.mu.Lock()
	p.tap = tap
	p.mu.Unlock()

	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	speaker.Play(tap)
	log.Printf("chime: playing transition tone")
}

// Level returns the loudness of what is currently playing, 0..1.
func (p *Player) Level() float64 {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	tap := p.tap
	p.mu.Unlock()
	if tap == nil {
		return 0
	}
	return tap.Level(512)
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	if !p.Enabled() {
		return
	}
	p.mu.Lock()
	p.enabled = false
	p.mu.Unlock()
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	speaker.Close()
}

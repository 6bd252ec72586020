package overlay

import (
	"strings"
	"time"
)

// CurtainPhase is the state of the page transition overlay.
type CurtainPhase int

const (
	CurtainIdle CurtainPhase = iota
	// CurtainOpening reveals a freshly loaded page.
	CurtainOpening
	// CurtainClosing covers the page before navigating away.
	CurtainClosing
)

// Curtain is the full-screen overlay that scales in before navigation and
// out after a page loads. Scale runs from 0 (hidden) to 1 (covering).
type Curtain struct {
	Delay time.Duration

	phase   CurtainPhase
	elapsed time.Duration
	target  string
}

// NewCurtain returns a curtain that starts covering the page and opens.
func NewCurtain(delay time.Duration) *Curtain {
	return &Curtain{Delay: delay, phase: CurtainOpening}
}

// Phase returns the current phase.
func (c *Curtain) Phase() CurtainPhase { return c.phase }

// Busy reports whether a transition is running.
func (c *Curtain) Busy() bool { return c.phase != CurtainIdle }

// Navigate starts covering the page on the way to target. In-page anchors
// and requests during a running transition are ignored.
func (c *Curtain) Navigate(target string) bool {
	if target == "" || strings.Contains(target, "#") || c.phase != CurtainIdle {
		return false
	}
	c.phase = CurtainClosing
	c.elapsed = 0
	c.target = target
	return true
}

// Advance moves the animation by dt. It returns the navigation target once,
// when the closing animation completes; the curtain then opens again.
func (c *Curtain) Advance(dt time.Duration) (string, bool) {
	if c.phase == CurtainIdle {
		return "", false
	}
	c.elapsed += dt
	if c.elapsed < c.Delay {
		return "", false
	}

	switch c.phase {
	case CurtainClosing:
		target := c.target
		c.target = ""
		c.phase = CurtainOpening
		c.elapsed = 0
		return target, true
	default:
		c.phase = CurtainIdle
		c.elapsed = 0
	}
	return "", false
}

// Scale returns how much of the screen the curtain covers, 0..1.
func (c *Curtain) Scale() float64 {
	if c.phase == CurtainIdle || c.Delay <= 0 {
		return 0
	}
	t := float64(c.elapsed) / float64(c.Delay)
	if t > 1 {
		t = 1
	}
	t = easeInOut(t)
	if c.phase == CurtainClosing {
		return t
	}
	return 1 - t
}

// FromBottom reports whether the curtain grows from the bottom edge.
func (c *Curtain) FromBottom() bool { return c.phase == CurtainClosing }

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

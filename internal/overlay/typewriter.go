package overlay

import (
	"strings"
	"time"
)

// PageText selects the typewriter lines for a page URL.
func PageText(url string) []string {
	switch {
	case strings.Contains(url, "products"):
		return []string{"Accessing Product Database...", "Loading PrismCore Modules...", "Deploying Ecosystem."}
	case strings.Contains(url, "focusguard"):
		return []string{"Initializing Strict Protocol...", "Scanning Processes...", "Flow State: ACTIVE."}
	default:
		return []string{"System Status: ONLINE", "Physics Engine: VERLET-X", "Welcome to GravitonX."}
	}
}

// TypewriterTiming holds the typing cadence.
type TypewriterTiming struct {
	Type       time.Duration // per typed rune
	Back       time.Duration // per erased rune
	StartDelay time.Duration
	BackDelay  time.Duration // pause on a complete line
}

// DefaultTiming is 40ms typing, 20ms erasing, 500ms start, 2s hold.
var DefaultTiming = TypewriterTiming{
	Type:       40 * time.Millisecond,
	Back:       20 * time.Millisecond,
	StartDelay: 500 * time.Millisecond,
	BackDelay:  2 * time.Second,
}

type typePhase int

const (
	phaseWaiting typePhase = iota
	phaseTyping
	phaseHolding
	phaseErasing
)

// Typewriter types each line, holds it, erases it and moves on, looping.
type Typewriter struct {
	lines  [][]rune
	timing TypewriterTiming

	line  int
	shown int
	phase typePhase
	wait  time.Duration
}

// NewTypewriter creates a typewriter over lines.
func NewTypewriter(lines []string, timing TypewriterTiming) *Typewriter {
	tw := &Typewriter{timing: timing}
	tw.SetLines(lines)
	return tw
}

// SetLines restarts the typewriter on a new set of lines.
func (tw *Typewriter) SetLines(lines []string) {
	tw.lines = tw.lines[:0]
	for _, l := range lines {
		tw.lines = append(tw.lines, []rune(l))
	}
	tw.line = 0
	tw.shown = 0
	tw.phase = phaseWaiting
	tw.wait = tw.timing.StartDelay
}

// Advance moves the typewriter forward by dt.
func (tw *Typewriter) Advance(dt time.Duration) {
	if len(tw.lines) == 0 {
		return
	}
	for dt > 0 {
		if dt < tw.wait {
			tw.wait -= dt
			return
		}
		dt -= tw.wait
		tw.wait = 0
		tw.tick()
	}
}

// tick performs the action whose wait just ran out and schedules the next.
func (tw *Typewriter) tick() {
	cur := tw.lines[tw.line]
	switch tw.phase {
	case phaseWaiting:
		tw.phase = phaseTyping
		tw.wait = tw.timing.Type
	case phaseTyping:
		tw.shown++
		tw.wait = tw.timing.Type
		if tw.shown >= len(cur) {
			tw.shown = len(cur)
			tw.phase = phaseHolding
			tw.wait = tw.timing.BackDelay
		}
	case phaseHolding:
		tw.phase = phaseErasing
		tw.wait = tw.timing.Back
	case phaseErasing:
		if tw.shown > 0 {
			tw.shown--
		}
		tw.wait = tw.timing.Back
		if tw.shown == 0 {
			tw.line = (tw.line + 1) % len(tw.lines)
			tw.phase = phaseTyping
			tw.wait = tw.timing.Type
		}
	}
	// Zero durations would spin forever.
	if tw.wait <= 0 {
		tw.wait = time.Millisecond
	}
}

// Text returns the currently visible text.
func (tw *Typewriter) Text() string {
	if len(tw.lines) == 0 {
		return ""
	}
	return string(tw.lines[tw.line][:tw.shown])
}

// Line returns the index of the line being typed.
func (tw *Typewriter) Line() int { return tw.line }

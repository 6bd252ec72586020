package mesh

import "math"

// Pointer is the last known mouse or touch location.
type Pointer struct {
	X, Y    float64
	Present bool
}

// At returns a present pointer at (x, y).
func At(x, y float64) Pointer {
	return Pointer{X: x, Y: y, Present: true}
}

// Distance returns the distance from the pointer to (x, y).
// It is +Inf when the pointer is absent.
func (p Pointer) Distance(x, y float64) float64 {
	if !p.Present {
		return math.Inf(1)
	}
	return math.Hypot(p.X-x, p.Y-y)
}

// TouchPoint is one active touch in surface coordinates.
type TouchPoint struct {
	X, Y float64
}

// PointerTracker folds host input events into a Pointer. Hosts call it from
// their event handlers; the frame loop reads Pointer at the start of a frame.
// The last write before the read wins.
type PointerTracker struct {
	state    Pointer
	touching bool

	// Polling hosts (Sample) only.
	lastX, lastY float64
	mouseSeen    bool
}

// Sample folds one polled input snapshot into the tracker, for hosts that
// poll instead of delivering events. Touches take precedence over the mouse;
// the mouse counts only once it has moved, and leaves when it exits the
// w×h surface or the window loses focus.
func (t *PointerTracker) Sample(touches []TouchPoint, cx, cy, w, h float64, focused bool) {
	moved := cx != t.lastX || cy != t.lastY
	t.lastX, t.lastY = cx, cy

	if len(touches) > 0 || t.touching {
		t.Touches(touches)
		t.mouseSeen = false
		return
	}

	inside := focused && cx >= 0 && cy >= 0 && cx < w && cy < h
	switch {
	case !inside:
		if t.mouseSeen {
			t.Leave()
		}
		t.mouseSeen = false
	case moved || t.mouseSeen:
		t.Move(cx, cy)
		t.mouseSeen = true
	}
}

// Move records a mouse move or drag.
func (t *PointerTracker) Move(x, y float64) {
	t.state = At(x, y)
}

// Leave marks the pointer absent (mouse left the surface or focus was lost).
func (t *PointerTracker) Leave() {
	t.state = Pointer{}
	t.touching = false
}

// Touches records the active touch set. Multi-touch collapses to the first
// point; an empty set after touching ends the pointer.
func (t *PointerTracker) Touches(points []TouchPoint) {
	if len(points) == 0 {
		if t.touching {
			t.Leave()
		}
		return
	}
	t.touching = true
	t.state = At(points[0].X, points[0].Y)
}

// Touching reports whether the current pointer comes from a touch.
func (t *PointerTracker) Touching() bool {
	return t.touching
}

// Pointer returns the current state.
func (t *PointerTracker) Pointer() Pointer {
	return t.state
}

package overlay

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/neural-mesh/internal/mesh"
)

// settleRate is omega*t at which a critically damped spring is within 1%
// of its target.
const settleRate = 6.64

// Cursor is a dot that tracks the pointer exactly and an outline ring that
// springs toward it.
type Cursor struct {
	// Ease is the time for the outline to (visually) catch up.
	Ease time.Duration

	DotX, DotY         float64
	OutlineX, OutlineY float64
	Visible            bool
	placed             bool

	velX, velY float64
	spring     harmonica.Spring
	springDt   time.Duration
}

// NewCursor returns a hidden cursor.
func NewCursor(ease time.Duration) *Cursor {
	return &Cursor{Ease: ease}
}

// Update follows ptr. Touch input (coarse pointer) hides the cursor.
func (c *Cursor) Update(ptr mesh.Pointer, coarse bool, dt time.Duration) {
	c.Visible = ptr.Present && !coarse
	if !c.Visible {
		return
	}
	c.DotX, c.DotY = ptr.X, ptr.Y
	if !c.placed || c.Ease <= 0 {
		c.OutlineX, c.OutlineY = ptr.X, ptr.Y
		c.velX, c.velY = 0, 0
		c.placed = true
		return
	}
	if dt <= 0 {
		return
	}

	if dt != c.springDt {
		c.spring = harmonica.NewSpring(dt.Seconds(), settleRate/c.Ease.Seconds(), 1)
		c.springDt = dt
	}
	c.OutlineX, c.velX = c.spring.Update(c.OutlineX, c.velX, ptr.X)
	c.OutlineY, c.velY = c.spring.Update(c.OutlineY, c.velY, ptr.Y)
}

// Card is a rectangular element that shows a glare under the pointer.
type Card struct {
	X, Y, W, H float64
	Title      string
	Link       string
}

// Contains reports whether (x, y) lies inside the card.
func (c Card) Contains(x, y float64) bool {
	return x >= c.X && x < c.X+c.W && y >= c.Y && y < c.Y+c.H
}

// Glare returns the pointer position relative to the card's top-left
// corner. Offsets may fall outside the card; the glare is clipped there.
func (c Card) Glare(ptr mesh.Pointer) (float64, float64, bool) {
	if !ptr.Present {
		return 0, 0, false
	}
	return ptr.X - c.X, ptr.Y - c.Y, true
}

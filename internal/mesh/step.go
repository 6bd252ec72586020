package mesh

import "math"

// Context is everything a step reads besides the particles themselves.
type Context struct {
	Viewport Viewport
	Pointer  Pointer
}

// Step advances every particle by one frame and returns the new states.
// The input slice is not modified.
func Step(particles []Particle, ctx Context, p Params) []Particle {
	out := make([]Particle, len(particles))
	for i, pt := range particles {
		out[i] = stepParticle(pt, ctx, p)
	}
	return out
}

func stepParticle(pt Particle, ctx Context, p Params) Particle {
	pt.X += pt.VX
	pt.Y += pt.VY

	inside := false
	if ctx.Pointer.Present {
		dx := ctx.Pointer.X - pt.X
		dy := ctx.Pointer.Y - pt.Y
		d := math.Hypot(dx, dy)
		if d < p.PointerRadius {
			inside = true
			// Coincident points have no force direction.
			if d >= Epsilon {
				force := (p.PointerRadius - d) / p.PointerRadius
				pt.X -= dx / d * force * pt.Density * p.Repulsion
				pt.Y -= dy / d * force * pt.Density * p.Repulsion
			}
		}
	}

	if p.Motion == MotionAnchored && !inside {
		pt.X -= (pt.X - pt.HomeX) * p.AnchorReturn
		pt.Y -= (pt.Y - pt.HomeY) * p.AnchorReturn
	}

	switch {
	case !p.GlowEnabled:
		pt.Glow = 0
	case inside:
		pt.Glow = 1
	default:
		pt.Glow = math.Max(0, pt.Glow-p.GlowDecay)
	}

	pt.X, pt.VX = bounce(pt.X, pt.VX, ctx.Viewport.Width)
	pt.Y, pt.VY = bounce(pt.Y, pt.VY, ctx.Viewport.Height)
	return pt
}

// bounce mirrors a coordinate that crossed a wall back inside [0, limit] and
// inverts the matching velocity component.
func bounce(pos, vel, limit float64) (float64, float64) {
	switch {
	case pos < 0:
		pos = -pos
		vel = math.Abs(vel)
	case pos > limit:
		pos = 2*limit - pos
		vel = -math.Abs(vel)
	}
	// A large pointer push can overshoot the mirror.
	if pos < 0 {
		pos = 0
	} else if pos > limit {
		pos = limit
	}
	return pos, vel
}

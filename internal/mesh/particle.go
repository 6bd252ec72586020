package mesh

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Particle is one animated point of the mesh. It is a plain value; Step
// returns updated copies instead of mutating shared state.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	HomeX  float64 // Creation position, used by MotionAnchored
	HomeY  float64
	Size   float64 // Base radius
	Glow   float64 // 0..1, rendered size and color intensity
	// Density scales the pointer repulsion for this particle.
	Density   float64
	BaseColor colorful.Color
}

// Radius returns the rendered radius including glow.
func (p Particle) Radius(glowScale float64) float64 {
	return p.Size * (1 + p.Glow*(glowScale-1))
}

// Color returns the current color: the base color blended toward glow.
func (p Particle) Color(glow colorful.Color) colorful.Color {
	if p.Glow <= 0 {
		return p.BaseColor
	}
	return p.BaseColor.BlendRgb(glow, clamp01(p.Glow)).Clamped()
}

// Viewport is the drawing surface size in surface units.
type Viewport struct {
	Width, Height float64
}

// Population returns how many particles a viewport of the given width holds.
func (p Params) Population(width float64) int {
	if width < p.WidthThreshold {
		return p.LowCount
	}
	return p.HighCount
}

// newParticle creates a particle uniformly placed inside vp.
func newParticle(rng *rand.Rand, vp Viewport, p Params) Particle {
	x := rng.Float64() * vp.Width
	y := rng.Float64() * vp.Height

	color := p.Palette[0]
	if rng.Float64() > 0.5 {
		color = p.Palette[1]
	}

	return Particle{
		X:         x,
		Y:         y,
		VX:        (rng.Float64()*2 - 1) * p.SpeedBand,
		VY:        (rng.Float64()*2 - 1) * p.SpeedBand,
		HomeX:     x,
		HomeY:     y,
		Size:      p.SizeMin + rng.Float64()*(p.SizeMax-p.SizeMin),
		Density:   p.DensityMin + rng.Float64()*(p.DensityMax-p.DensityMin),
		BaseColor: color,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

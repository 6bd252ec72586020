package mesh

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Motion selects how particles move when the pointer is away.
type Motion int

const (
	// MotionDrift moves particles by their velocity and bounces them off the walls.
	MotionDrift Motion = iota
	// MotionAnchored pulls displaced particles back toward their creation point.
	MotionAnchored
)

func (m Motion) String() string {
	switch m {
	case MotionDrift:
		return "drift"
	case MotionAnchored:
		return "anchored"
	default:
		return fmt.Sprintf("Motion(%d)", int(m))
	}
}

// Epsilon is the distance below which the pointer applies no force.
const Epsilon = 1e-6

// Params holds every numeric knob of the simulation and renderer.
type Params struct {
	Motion Motion

	// Population
	LowCount       int
	HighCount      int
	WidthThreshold float64

	// Particle creation
	SpeedBand  float64
	SizeMin    float64
	SizeMax    float64
	DensityMin float64
	DensityMax float64
	Palette    [2]colorful.Color

	// Pointer interaction
	PointerRadius float64
	Repulsion     float64
	AnchorReturn  float64

	// Glow
	GlowEnabled bool
	GlowDecay   float64
	GlowScale   float64
	GlowBlur    float64
	GlowColor   colorful.Color

	// Edges
	MeshThreshold        float64
	MeshOpacity          float64
	MeshBoost            float64
	MeshColor            colorful.Color
	PointerEdgeThreshold float64
	PointerEdgeOpacity   float64 // 0 disables pointer edges
	PointerEdgeColor     colorful.Color
	LineWidth            float64
}

// Validate reports the first parameter that would make the field misbehave.
func (p Params) Validate() error {
	switch {
	case p.LowCount < 0 || p.HighCount < 0:
		return errors.New("particle counts must not be negative")
	case p.WidthThreshold < 0:
		return errors.New("width threshold must not be negative")
	case p.SpeedBand < 0:
		return errors.New("speed band must not be negative")
	case p.SizeMin <= 0 || p.SizeMax < p.SizeMin:
		return fmt.Errorf("invalid size range [%g, %g]", p.SizeMin, p.SizeMax)
	case p.DensityMin < 0 || p.DensityMax < p.DensityMin:
		return fmt.Errorf("invalid density range [%g, %g]", p.DensityMin, p.DensityMax)
	case p.PointerRadius <= 0:
		return errors.New("pointer radius must be positive")
	case p.AnchorReturn < 0 || p.AnchorReturn > 1:
		return errors.New("anchor return must be within [0, 1]")
	case p.GlowDecay < 0:
		return errors.New("glow decay must not be negative")
	case p.GlowScale < 1:
		return errors.New("glow scale must be at least 1")
	case p.MeshThreshold <= 0 || p.PointerEdgeThreshold <= 0:
		return errors.New("edge thresholds must be positive")
	case p.MeshOpacity < 0 || p.MeshOpacity > 1 || p.PointerEdgeOpacity < 0 || p.PointerEdgeOpacity > 1:
		return errors.New("edge opacities must be within [0, 1]")
	case p.MeshBoost < 1:
		return errors.New("mesh boost must be at least 1")
	}
	return nil
}

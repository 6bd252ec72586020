package mesh

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Paint describes how a primitive is drawn.
type Paint struct {
	Color colorful.Color
	Alpha float64
	Width float64
	Blur  float64
}

// Surface is a resizable 2D raster the renderer draws on. Implementations
// live with their hosts (ebiten window, tcell terminal, test recorder).
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, paint Paint)
	StrokeLine(x0, y0, x1, y1 float64, paint Paint)
}

// Stats counts the primitives issued by one Render call.
type Stats struct {
	Discs        int
	MeshEdges    int
	PointerEdges int
}

// EdgeOpacity falls off linearly from peak at distance 0 to 0 at threshold.
func EdgeOpacity(d, threshold, peak float64) float64 {
	if d >= threshold {
		return 0
	}
	if d <= 0 {
		return peak
	}
	return peak * (1 - d/threshold)
}

// Render draws the particles, their pointer edges and the mesh edges.
func Render(s Surface, particles []Particle, ptr Pointer, p Params) Stats {
	var st Stats
	s.Clear()

	for i, a := range particles {
		s.FillCircle(a.X, a.Y, a.Radius(p.GlowScale), Paint{
			Color: a.Color(p.GlowColor),
			Alpha: 1,
			Blur:  a.Glow * p.GlowBlur,
		})
		st.Discs++

		da := ptr.Distance(a.X, a.Y)
		if ptr.Present && p.PointerEdgeOpacity > 0 && da < p.PointerEdgeThreshold {
			s.StrokeLine(a.X, a.Y, ptr.X, ptr.Y, Paint{
				Color: p.PointerEdgeColor,
				Alpha: EdgeOpacity(da, p.PointerEdgeThreshold, p.PointerEdgeOpacity),
				Width: p.LineWidth,
			})
			st.PointerEdges++
		}

		for j := i + 1; j < len(particles); j++ {
			b := particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= p.MeshThreshold {
				continue
			}
			alpha := EdgeOpacity(d, p.MeshThreshold, p.MeshOpacity)
			if ptr.Present && (da < p.PointerRadius || ptr.Distance(b.X, b.Y) < p.PointerRadius) {
				alpha = math.Min(1, alpha*p.MeshBoost)
			}
			s.StrokeLine(a.X, a.Y, b.X, b.Y, Paint{
				Color: p.MeshColor,
				Alpha: alpha,
				Width: p.LineWidth,
			})
			st.MeshEdges++
		}
	}
	return st
}

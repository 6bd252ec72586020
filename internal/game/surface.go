package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neural-mesh/internal/mesh"
)

// haloAlpha is the opacity of the soft disc standing in for canvas blur.
const haloAlpha = 0.25

// surface adapts an ebiten image to mesh.Surface.
type surface struct {
	dst *ebiten.Image
	bg  colorful.Color
}

func (s *surface) Clear() {
	s.dst.Fill(nrgba(s.bg, 1))
}

func (s *surface) FillCircle(x, y, r float64, paint mesh.Paint) {
	if paint.Blur > 0 {
		vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r+paint.Blur), nrgba(paint.Color, paint.Alpha*haloAlpha), true)
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), nrgba(paint.Color, paint.Alpha), true)
}

func (s *surface) StrokeLine(x0, y0, x1, y1 float64, paint mesh.Paint) {
	width := paint.Width
	if width <= 0 {
		width = 1
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), nrgba(paint.Color, paint.Alpha), true)
}

package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neural-mesh/internal/mesh"
)

const (
	discRune      = '•'
	bigDiscRune   = '●'
	haloRune      = '∙'
	lineRune      = '·'
	discStrength  = 2.0
	haloStrength  = 1.5
	minLineAlpha  = 0.02
	bigDiscRadius = 2.0
)

// Surface renders the mesh into terminal cells. Surface units are virtual
// pixels; each cell covers CellW×CellH of them.
type Surface struct {
	screen       tcell.Screen
	CellW, CellH float64
	Background   colorful.Color
	// LineGain brightens edges, which are too faint at cell resolution.
	LineGain float64

	cols, rows int
	strength   []float64
}

// NewSurface creates a surface over screen.
func NewSurface(screen tcell.Screen, cellW, cellH float64, bg colorful.Color) *Surface {
	return &Surface{
		screen:     screen,
		CellW:      cellW,
		CellH:      cellH,
		Background: bg,
		LineGain:   3,
	}
}

// Viewport returns the screen size in surface units.
func (s *Surface) Viewport() mesh.Viewport {
	cols, rows := s.screen.Size()
	return mesh.Viewport{Width: float64(cols) * s.CellW, Height: float64(rows) * s.CellH}
}

// CellCenter maps a cell to the surface coordinate of its center.
func (s *Surface) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.CellW, (float64(row) + 0.5) * s.CellH
}

func (s *Surface) Clear() {
	s.cols, s.rows = s.screen.Size()
	n := s.cols * s.rows
	if cap(s.strength) < n {
		s.strength = make([]float64, n)
	}
	s.strength = s.strength[:n]
	for i := range s.strength {
		s.strength[i] = 0
	}
	s.screen.Fill(' ', s.style(s.Background))
}

func (s *Surface) FillCircle(x, y, r float64, paint mesh.Paint) {
	col, row, ok := s.cell(x, y)
	if !ok {
		return
	}

	if paint.Blur > 0 {
		// Glow spills into the neighbouring cells.
		halo := s.blend(paint.Color, math.Min(1, paint.Blur/10))
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					s.put(col+dx, row+dy, haloRune, halo, haloStrength)
				}
			}
		}
	}

	glyph := discRune
	if r >= bigDiscRadius {
		glyph = bigDiscRune
	}
	s.put(col, row, glyph, s.blend(paint.Color, paint.Alpha), discStrength)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, paint mesh.Paint) {
	alpha := math.Min(1, paint.Alpha*s.LineGain)
	if alpha < minLineAlpha {
		return
	}
	fg := s.blend(paint.Color, alpha)

	// Bresenham over cells.
	cx0, cy0 := int(math.Floor(x0/s.CellW)), int(math.Floor(y0/s.CellH))
	cx1, cy1 := int(math.Floor(x1/s.CellW)), int(math.Floor(y1/s.CellH))
	dx := abs(cx1 - cx0)
	dy := -abs(cy1 - cy0)
	sx, sy := 1, 1
	if cx0 > cx1 {
		sx = -1
	}
	if cy0 > cy1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.put(cx0, cy0, lineRune, fg, alpha)
		if cx0 == cx1 && cy0 == cy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			cx0 += sx
		}
		if e2 <= dx {
			err += dx
			cy0 += sy
		}
	}
}

// put writes a cell unless something stronger already occupies it.
func (s *Surface) put(col, row int, r rune, fg colorful.Color, strength float64) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	i := row*s.cols + col
	if s.strength[i] >= strength {
		return
	}
	s.strength[i] = strength
	s.screen.SetContent(col, row, r, nil, s.style(fg))
}

func (s *Surface) cell(x, y float64) (int, int, bool) {
	col := int(math.Floor(x / s.CellW))
	row := int(math.Floor(y / s.CellH))
	// A particle resting on the far wall belongs to the last cell.
	if col == s.cols {
		col--
	}
	if row == s.rows {
		row--
	}
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return 0, 0, false
	}
	return col, row, true
}

func (s *Surface) blend(c colorful.Color, alpha float64) colorful.Color {
	return s.Background.BlendRgb(c, math.Max(0, math.Min(1, alpha))).Clamped()
}

func (s *Surface) style(fg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(s.Background))
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

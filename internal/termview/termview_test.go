package termview

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neural-mesh/internal/config"
	"github.com/iburimskiy/neural-mesh/internal/mesh"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func defaultParams(t *testing.T) mesh.Params {
	t.Helper()
	p, err := config.NewDefault().Params()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newTestApp(t *testing.T, screen tcell.Screen) *App {
	return NewApp(screen, Options{
		Params: defaultParams(t),
		Rand:   rand.New(rand.NewSource(7)),
		Logger: log.New(&bytes.Buffer{}, "", 0),
	})
}

func TestNewAppPopulatesForScreenSize(t *testing.T) {
	// 80 cols × 8px = 640 wide: below the threshold.
	app := newTestApp(t, newScreen(t, 80, 24))
	if n := len(app.Field().Particles()); n != 50 {
		t.Errorf("got %d particles, want 50", n)
	}
	vp := app.Field().Viewport()
	if vp.Width != 640 || vp.Height != 384 {
		t.Errorf("viewport %+v, want 640x384", vp)
	}
}

func TestResizeRepopulates(t *testing.T) {
	screen := newScreen(t, 80, 24)
	app := newTestApp(t, screen)
	app.HandleEvent(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))

	screen.SetSize(160, 50)
	app.HandleEvent(tcell.NewEventResize(160, 50))

	if n := len(app.Field().Particles()); n != 100 {
		t.Errorf("got %d particles after widening, want 100", n)
	}
	if app.Pointer().Present {
		t.Error("pointer should reset on resize")
	}
}

func TestMouseAndFocusDrivePointer(t *testing.T) {
	app := newTestApp(t, newScreen(t, 80, 24))

	app.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	p := app.Pointer()
	if !p.Present || p.X != 84 || p.Y != 88 {
		t.Errorf("pointer %+v, want cell center (84, 88)", p)
	}

	app.HandleEvent(&tcell.EventFocus{Focused: false})
	if app.Pointer().Present {
		t.Error("pointer present after focus loss")
	}
}

func TestKeysQuit(t *testing.T) {
	app := newTestApp(t, newScreen(t, 80, 24))
	if !app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
	if !app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone)) {
		t.Error("h should not quit")
	}
}

func TestFrameDrawsEveryParticle(t *testing.T) {
	screen := newScreen(t, 200, 60)
	app := newTestApp(t, screen)

	if err := app.Frame(); err != nil {
		t.Fatal(err)
	}
	st := app.Stats()
	if st.Discs != 100 || st.PointerEdges != 0 {
		t.Errorf("stats %+v, want 100 discs and no pointer edges", st)
	}

	for i, pt := range app.Field().Particles() {
		col, row := int(pt.X/8), int(pt.Y/16)
		if col == 200 {
			col--
		}
		if row == 60 {
			row--
		}
		r, _, _, _ := screen.GetContent(col, row)
		if r != discRune && r != bigDiscRune {
			t.Fatalf("particle %d at cell (%d,%d) shows %q", i, col, row, r)
		}
	}
}

func TestFrameWithPointerDrawsPointerEdges(t *testing.T) {
	app := newTestApp(t, newScreen(t, 200, 60))
	pts := app.Field().Particles()
	col, row := int(pts[0].X/8), int(pts[0].Y/16)

	app.HandleEvent(tcell.NewEventMouse(col, row, tcell.ButtonNone, tcell.ModNone))
	if err := app.Frame(); err != nil {
		t.Fatal(err)
	}
	if app.Stats().PointerEdges == 0 {
		t.Error("expected at least one pointer edge next to a particle")
	}
}

func TestSurfaceLineDoesNotOverwriteDisc(t *testing.T) {
	screen := newScreen(t, 20, 5)
	s := NewSurface(screen, 1, 1, colorful.Color{})
	s.Clear()

	white := colorful.Color{R: 1, G: 1, B: 1}
	s.FillCircle(5, 2, 1, mesh.Paint{Color: white, Alpha: 1})
	s.StrokeLine(0, 2, 10, 2, mesh.Paint{Color: white, Alpha: 0.3})

	if r, _, _, _ := screen.GetContent(5, 2); r != discRune {
		t.Errorf("disc cell shows %q", r)
	}
	for _, x := range []int{0, 3, 7, 10} {
		if r, _, _, _ := screen.GetContent(x, 2); r != lineRune {
			t.Errorf("line cell %d shows %q", x, r)
		}
	}
	if r, _, _, _ := screen.GetContent(11, 2); r != ' ' {
		t.Errorf("cell past the line end shows %q", r)
	}
}

func TestSurfaceSkipsInvisibleLines(t *testing.T) {
	screen := newScreen(t, 20, 5)
	s := NewSurface(screen, 1, 1, colorful.Color{})
	s.Clear()
	s.StrokeLine(0, 0, 10, 0, mesh.Paint{Color: colorful.Color{R: 1}, Alpha: 0.001})
	if r, _, _, _ := screen.GetContent(5, 0); r != ' ' {
		t.Errorf("near-transparent line drawn: %q", r)
	}
}

func TestSurfaceGlowHalo(t *testing.T) {
	screen := newScreen(t, 10, 10)
	s := NewSurface(screen, 1, 1, colorful.Color{})
	s.Clear()
	s.FillCircle(5, 5, 3, mesh.Paint{Color: colorful.Color{G: 1}, Alpha: 1, Blur: 10})

	if r, _, _, _ := screen.GetContent(5, 5); r != bigDiscRune {
		t.Errorf("center shows %q, want big disc", r)
	}
	if r, _, _, _ := screen.GetContent(4, 4); r != haloRune {
		t.Errorf("neighbour shows %q, want halo", r)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t, 80, 24)
	app := newTestApp(t, screen)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v on quit", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after q")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app := newTestApp(t, newScreen(t, 80, 24))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := app.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run returned %v, want deadline exceeded", err)
	}
	if app.frames == 0 {
		t.Error("no frames rendered before the deadline")
	}
}

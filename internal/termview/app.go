package termview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neural-mesh/internal/mesh"
)

// Options configures the terminal host.
type Options struct {
	Params     mesh.Params
	Background colorful.Color
	CellW      float64
	CellH      float64
	FrameRate  int
	Rand       *rand.Rand
	Logger     *log.Logger
}

// App drives the mesh in a terminal. All input handling and rendering run on
// the goroutine that calls Run.
type App struct {
	screen  tcell.Screen
	field   *mesh.Field
	surface *Surface
	pointer mesh.PointerTracker
	logger  *log.Logger
	fps     int

	events chan tcell.Event
	cancel context.CancelFunc
	quit   bool

	showHUD bool
	stats   mesh.Stats
	frames  int
}

// NewApp creates an app on an initialized screen and populates the field for
// the current screen size.
func NewApp(screen tcell.Screen, opts Options) *App {
	if opts.CellW <= 0 {
		opts.CellW = 8
	}
	if opts.CellH <= 0 {
		opts.CellH = 16
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	a := &App{
		screen:  screen,
		field:   mesh.NewField(opts.Params, opts.Rand),
		surface: NewSurface(screen, opts.CellW, opts.CellH, opts.Background),
		logger:  opts.Logger,
		fps:     opts.FrameRate,
		events:  make(chan tcell.Event, 100),
	}
	a.field.Reset(a.surface.Viewport())
	return a
}

// Field exposes the simulated field.
func (a *App) Field() *mesh.Field { return a.field }

// Pointer returns the current pointer state.
func (a *App) Pointer() mesh.Pointer { return a.pointer.Pointer() }

// Stats returns the primitive counts of the last frame.
func (a *App) Stats() mesh.Stats { return a.stats }

// HandleEvent applies one input event and reports whether the app should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'h':
			a.showHUD = !a.showHUD
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			a.field.Reset(a.surface.Viewport())
			a.logger.Printf("termview: field reset, %d particles", len(a.field.Particles()))
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		a.pointer.Move(a.surface.CellCenter(col, row))

	case *tcell.EventFocus:
		if !ev.Focused {
			a.pointer.Leave()
		}

	case *tcell.EventResize:
		a.screen.Sync()
		vp := a.surface.Viewport()
		if a.field.Resize(vp) {
			a.logger.Printf("termview: resized to %.0fx%.0f, %d particles", vp.Width, vp.Height, len(a.field.Particles()))
		}
		// A resize invalidates the last pointer position.
		a.pointer.Leave()
	}
	return false
}

// Frame advances and draws one frame.
func (a *App) Frame() error {
	ptr := a.pointer.Pointer()
	a.field.Step(ptr)
	a.stats = a.field.Render(a.surface, ptr)
	a.frames++
	if a.showHUD {
		a.drawHUD()
	}
	a.screen.Show()
	return nil
}

func (a *App) drawHUD() {
	vp := a.field.Viewport()
	ptr := "-"
	if p := a.pointer.Pointer(); p.Present {
		ptr = fmt.Sprintf("%.0f,%.0f", p.X, p.Y)
	}
	line := fmt.Sprintf(" %d particles  %d edges  %d pointer edges  %.0fx%.0f  ptr %s  [h]ud [r]eset [q]uit ",
		a.stats.Discs, a.stats.MeshEdges, a.stats.PointerEdges, vp.Width, vp.Height, ptr)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range line {
		a.screen.SetContent(i, 0, r, nil, style)
	}
}

// Run pumps screen events and renders frames until ctx is cancelled or the
// user quits. Quitting is not an error.
func (a *App) Run(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)
	defer a.cancel()

	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.EnableFocus()
	defer a.screen.DisableMouse()

	go a.pollEvents(ctx)

	interval := time.Second / time.Duration(a.fps)
	err := mesh.Run(ctx, mesh.NewTicker(interval), a.tick, a.logger)
	if a.quit && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// tick drains pending input, then renders, so events and frames never overlap.
func (a *App) tick() error {
	for {
		select {
		case ev := <-a.events:
			if a.HandleEvent(ev) {
				a.quit = true
				a.cancel()
				return nil
			}
		default:
			return a.Frame()
		}
	}
}

func (a *App) pollEvents(ctx context.Context) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

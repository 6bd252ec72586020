package game

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/neural-mesh/internal/chime"
	"github.com/iburimskiy/neural-mesh/internal/config"
	"github.com/iburimskiy/neural-mesh/internal/mesh"
	"github.com/iburimskiy/neural-mesh/internal/overlay"
)

// Options configures a Game.
type Options struct {
	Config *config.Config
	Page   string
	Sound  bool
	Rand   *rand.Rand
}

// Game renders the mesh page in an ebiten window.
type Game struct {
	ctx context.Context

	cfg   *config.Config
	field *mesh.Field
	surf  surface
	input mesh.PointerTracker

	// page collaborators
	cursor     *overlay.Cursor
	typewriter *overlay.Typewriter
	curtain    *overlay.Curtain
	cards      []overlay.Card
	page       string

	chime *chime.Player

	width, height int
	stats         mesh.Stats
	colorPhase    float64
	cursorHidden  bool

	touchIDs []ebiten.TouchID
	touchBuf []mesh.TouchPoint

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	lastErr  error
	showHelp bool
}

// New builds a game. The game quits when ctx is cancelled.
func New(ctx context.Context, opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefault()
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, fmt.Errorf("mesh params: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("mesh params: %w", err)
	}

	page := opts.Page
	if overlay.PageIndex(page) < 0 {
		page = overlay.Pages[0]
	}

	g := &Game{
		ctx:        ctx,
		cfg:        cfg,
		field:      mesh.NewField(params, opts.Rand),
		surf:       surface{bg: cfg.BackgroundColor()},
		cursor:     overlay.NewCursor(config.OutlineEaseMs * time.Millisecond),
		typewriter: overlay.NewTypewriter(overlay.PageText(page), overlay.DefaultTiming),
		curtain:    overlay.NewCurtain(config.CurtainDelayMs * time.Millisecond),
		page:       page,
		prevKey:    map[ebiten.Key]bool{},
	}

	if opts.Sound {
		player, err := chime.NewPlayer()
		if err != nil {
			// Non-fatal, the page works without sound
			log.Printf("Audio initialization failed: %v", err)
		}
		g.chime = player
	}
	return g, nil
}

// Close releases the audio device.
func (g *Game) Close() {
	g.chime.Close()
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}
	dt := time.Second / time.Duration(ebiten.TPS())

	// Pointer state for this frame
	mouseX, mouseY := ebiten.CursorPosition()
	g.input.Sample(g.touches(), float64(mouseX), float64(mouseY), float64(g.width), float64(g.height), ebiten.IsFocused())
	ptr := g.input.Pointer()

	// Handle button interactions
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			if err := g.openConfigDialog(); err != nil {
				g.lastErr = err
			}
		} else if card, ok := overlay.CardAt(g.cards, float64(mouseX), float64(mouseY)); ok {
			g.navigate(card.Link)
		}
		g.buttonPressed = false
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		if card, ok := overlay.CardAt(g.cards, float64(x), float64(y)); ok {
			g.navigate(card.Link)
		}
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for i, k := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3} {
		if justPressed(k) {
			g.navigate(overlay.Pages[i])
		}
	}
	if justPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if justPressed(ebiten.KeyR) {
		g.field.Reset(g.field.Viewport())
	}
	if justPressed(ebiten.KeyP) {
		g.nextPreset()
	}

	g.advancePage(dt)
	g.cursor.Update(ptr, g.input.Touching(), dt)
	g.syncCursorMode()
	g.colorPhase += 0.002

	if err := mesh.SafeFrame(func() error {
		g.field.Step(ptr)
		return nil
	}); err != nil {
		log.Printf("game: step skipped: %v", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	ptr := g.input.Pointer()
	g.surf.dst = screen
	if err := mesh.SafeFrame(func() error {
		g.stats = g.field.Render(&g.surf, ptr)
		return nil
	}); err != nil {
		log.Printf("game: render skipped: %v", err)
	}

	g.drawCards(screen, ptr)
	g.drawTypewriter(screen)
	g.drawButton(screen)
	g.drawCursor(screen)
	g.drawCurtain(screen)

	status := fmt.Sprintf("%s | preset %s | %d particles, %d edges | %.0f FPS",
		g.page, g.cfg.Preset, g.stats.Discs, g.stats.MeshEdges, ebiten.ActualFPS())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	if g.showHelp {
		ebitenutil.DebugPrintAt(screen, "1-3: pages  P: next preset  R: reset  H: help  Esc/Q: quit", 12, 28)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.WindowWidth, config.WindowHeight
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		vp := mesh.Viewport{Width: float64(g.width), Height: float64(g.height)}
		if g.field.Resize(vp) {
			log.Printf("game: viewport %dx%d, %d particles", g.width, g.height, len(g.field.Particles()))
		}
		g.cards = overlay.CardsFor(g.page, vp.Width, vp.Height)
	}
	return g.width, g.height
}

// touches returns the active touches, oldest first.
func (g *Game) touches() []mesh.TouchPoint {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	slices.Sort(g.touchIDs)
	g.touchBuf = g.touchBuf[:0]
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.touchBuf = append(g.touchBuf, mesh.TouchPoint{X: float64(x), Y: float64(y)})
	}
	return g.touchBuf
}

func (g *Game) navigate(target string) {
	if target == g.page {
		return
	}
	if g.curtain.Navigate(target) {
		log.Printf("game: navigating to %s", target)
		g.chime.Play()
	}
}

// advancePage runs the curtain and typewriter, switching pages once the
// curtain has closed.
func (g *Game) advancePage(dt time.Duration) {
	if target, done := g.curtain.Advance(dt); done {
		g.setPage(target)
	}
	g.typewriter.Advance(dt)
}

func (g *Game) setPage(page string) {
	g.page = page
	g.typewriter.SetLines(overlay.PageText(page))
	g.cards = overlay.CardsFor(page, float64(g.width), float64(g.height))
}

func (g *Game) syncCursorMode() {
	if g.cursor.Visible == g.cursorHidden {
		return
	}
	g.cursorHidden = g.cursor.Visible
	if g.cursorHidden {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (g *Game) nextPreset() {
	names := config.Presets()
	next := names[0]
	for i, n := range names {
		if n == g.cfg.Preset {
			next = names[(i+1)%len(names)]
			break
		}
	}
	cfg, err := config.Preset(next)
	if err != nil {
		g.lastErr = err
		return
	}
	if err := g.applyConfig(cfg); err != nil {
		g.lastErr = err
	}
}

// applyConfig swaps in cfg and repopulates the field.
func (g *Game) applyConfig(cfg *config.Config) error {
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	g.surf.bg = cfg.BackgroundColor()
	g.field.SetParams(params)
	g.lastErr = nil
	log.Printf("game: applied preset %q, %d particles", cfg.Preset, len(g.field.Particles()))
	return nil
}

func (g *Game) drawCards(screen *ebiten.Image, ptr mesh.Pointer) {
	for _, c := range g.cards {
		x, y, w, h := float32(c.X), float32(c.Y), float32(c.W), float32(c.H)
		vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 20, G: 25, B: 45, A: 170}, false)
		vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{R: 93, G: 95, B: 239, A: 160}, false)

		if gx, gy, ok := c.Glare(ptr); ok {
			rect := image.Rect(int(c.X), int(c.Y), int(c.X+c.W), int(c.Y+c.H))
			sub := screen.SubImage(rect).(*ebiten.Image)
			cx, cy := float32(c.X+gx), float32(c.Y+gy)
			vector.DrawFilledCircle(sub, cx, cy, 140, color.RGBA{R: 255, G: 255, B: 255, A: 10}, true)
			vector.DrawFilledCircle(sub, cx, cy, 70, color.RGBA{R: 0, G: 240, B: 255, A: 14}, true)
		}

		text.Draw(screen, c.Title, basicfont.Face7x13, int(c.X)+16, int(c.Y)+28, color.White)
		ebitenutil.DebugPrintAt(screen, c.Link, int(c.X)+16, int(c.Y+c.H)-24)
	}
}

func (g *Game) drawTypewriter(screen *ebiten.Image) {
	const scale = 3
	line := g.typewriter.Text()
	// basicfont.Face7x13: every glyph is 7px wide
	width := float64(len([]rune(line))*7) * scale
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(g.width)-width)/2, float64(g.height)*0.35)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 0, G: 240, B: 255, A: 255})
	text.DrawWithOptions(screen, line, basicfont.Face7x13, op)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	// Button background
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, float32(config.ButtonX), float32(config.ButtonY), float32(config.ButtonWidth), float32(config.ButtonHeight), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(config.ButtonX), float32(config.ButtonY), float32(config.ButtonWidth), float32(config.ButtonHeight), 2, borderColor, false)

	label := "Open Config"
	textWidth := len(label) * 6 // Approximate character width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, label, textX, textY)
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	if !g.cursor.Visible {
		return
	}
	r, gv, b := hsvToRgb(g.colorPhase*360, 0.6, 1)
	pulse := 20 * clamp01(g.chime.Level()*4)
	vector.StrokeCircle(screen, float32(g.cursor.OutlineX), float32(g.cursor.OutlineY), float32(18+pulse), 2, color.RGBA{R: r, G: gv, B: b, A: 200}, true)
	vector.DrawFilledCircle(screen, float32(g.cursor.DotX), float32(g.cursor.DotY), 4, color.White, true)
}

func (g *Game) drawCurtain(screen *ebiten.Image) {
	s := g.curtain.Scale()
	if s <= 0 {
		return
	}
	h := float32(float64(g.height) * s)
	y := float32(0)
	if g.curtain.FromBottom() {
		y = float32(g.height) - h
	}
	vector.DrawFilledRect(screen, 0, y, float32(g.width), h, color.RGBA{R: 5, G: 6, B: 15, A: 255}, false)
}

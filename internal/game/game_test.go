package game

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/iburimskiy/neural-mesh/internal/config"
	"github.com/iburimskiy/neural-mesh/internal/overlay"
)

const curtainDelay = config.CurtainDelayMs * time.Millisecond

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(context.Background(), Options{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Layout(1920, 1080)
	return g
}

func TestNewFallsBackToIndex(t *testing.T) {
	g, err := New(context.Background(), Options{Page: "/missing"})
	if err != nil {
		t.Fatal(err)
	}
	if g.page != overlay.Pages[0] {
		t.Errorf("page = %q, want %q", g.page, overlay.Pages[0])
	}
}

func TestNavigateSwitchesPage(t *testing.T) {
	g := newTestGame(t)

	// The curtain is still opening after load.
	g.navigate("/products")
	g.advancePage(curtainDelay)
	if g.page != "/index" {
		t.Fatalf("page = %q, navigation during opening should be ignored", g.page)
	}

	g.navigate("/products")
	g.advancePage(curtainDelay)
	if g.page != "/products" {
		t.Fatalf("page = %q, want /products", g.page)
	}
	text := g.typewriter.Text()
	if text == "" || !strings.HasPrefix(overlay.PageText("/products")[0], text) {
		t.Errorf("typewriter shows %q, want a prefix of the products text", text)
	}
	if want := overlay.CardsFor("/products", 1920, 1080); len(g.cards) != len(want) {
		t.Errorf("got %d cards, want %d", len(g.cards), len(want))
	}
	if !g.curtain.Busy() {
		t.Error("curtain should reopen after the page switch")
	}

	g.advancePage(curtainDelay)
	g.navigate("/products")
	if g.curtain.Busy() {
		t.Error("navigating to the current page started a transition")
	}
}

func TestApplyConfigRepopulates(t *testing.T) {
	g := newTestGame(t)
	if n := len(g.field.Particles()); n != config.HighCount {
		t.Fatalf("got %d particles, want %d", n, config.HighCount)
	}

	glow, err := config.Preset("glow")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.applyConfig(glow); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if n := len(g.field.Particles()); n != glow.HighCount {
		t.Errorf("got %d particles, want %d", n, glow.HighCount)
	}
	if !g.field.Params().GlowEnabled || g.cfg != glow {
		t.Error("glow preset not applied")
	}

	bad := config.NewDefault()
	bad.PointerRadius = -1
	if err := g.applyConfig(bad); err == nil {
		t.Error("invalid config accepted")
	}
	if g.cfg != glow {
		t.Error("invalid config replaced the current one")
	}
}

func TestNextPresetCycles(t *testing.T) {
	g := newTestGame(t)
	names := config.Presets()

	for i := 1; i <= len(names); i++ {
		g.nextPreset()
		if want := names[i%len(names)]; g.cfg.Preset != want {
			t.Fatalf("step %d: preset %q, want %q", i, g.cfg.Preset, want)
		}
	}
	if g.lastErr != nil {
		t.Errorf("lastErr = %v", g.lastErr)
	}
}

package overlay

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/iburimskiy/neural-mesh/internal/mesh"
)

func TestCurtainOpensOnLoad(t *testing.T) {
	c := NewCurtain(800 * time.Millisecond)
	if c.Scale() != 1 {
		t.Fatalf("fresh curtain scale = %v, want 1", c.Scale())
	}
	c.Advance(400 * time.Millisecond)
	if s := c.Scale(); s != 0.5 {
		t.Errorf("half-way scale = %v, want 0.5", s)
	}
	c.Advance(400 * time.Millisecond)
	if c.Busy() || c.Scale() != 0 {
		t.Errorf("curtain still busy after opening: phase %v scale %v", c.Phase(), c.Scale())
	}
}

func TestCurtainNavigate(t *testing.T) {
	c := NewCurtain(800 * time.Millisecond)
	c.Advance(400 * time.Millisecond)
	if c.Navigate("/products") {
		t.Error("navigation during opening should be ignored")
	}
	if s := c.Scale(); s != 0.5 {
		t.Errorf("opening scale = %v after rejected navigation, want 0.5", s)
	}
	c.Advance(400 * time.Millisecond)

	if c.Navigate("/products#pricing") {
		t.Error("anchor navigation should be ignored")
	}
	if !c.Navigate("/products") {
		t.Fatal("navigation rejected")
	}
	if c.Navigate("/focusguard") {
		t.Error("second navigation during closing should be ignored")
	}
	if !c.FromBottom() {
		t.Error("closing curtain should grow from the bottom")
	}

	if _, done := c.Advance(799 * time.Millisecond); done {
		t.Fatal("navigated before the delay elapsed")
	}
	target, done := c.Advance(time.Millisecond)
	if !done || target != "/products" {
		t.Fatalf("got (%q, %v), want (/products, true)", target, done)
	}
	if c.Phase() != CurtainOpening {
		t.Errorf("phase after navigation = %v, want opening", c.Phase())
	}
	if _, done := c.Advance(time.Second); done {
		t.Error("navigation reported twice")
	}
	if c.Busy() {
		t.Error("curtain busy after reopening")
	}
}

func TestPageText(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/products", "Accessing Product Database..."},
		{"https://example.com/focusguard.html", "Initializing Strict Protocol..."},
		{"/index", "System Status: ONLINE"},
		{"", "System Status: ONLINE"},
	}
	for _, tt := range tests {
		if got := PageText(tt.url)[0]; got != tt.want {
			t.Errorf("PageText(%q)[0] = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestTypewriterCycle(t *testing.T) {
	tw := NewTypewriter([]string{"abc", "xy"}, DefaultTiming)

	tw.Advance(500 * time.Millisecond)
	if tw.Text() != "" {
		t.Fatalf("text %q before first keystroke", tw.Text())
	}
	tw.Advance(40 * time.Millisecond)
	if tw.Text() != "a" {
		t.Fatalf("text %q after first keystroke, want a", tw.Text())
	}
	tw.Advance(80 * time.Millisecond)
	if tw.Text() != "abc" {
		t.Fatalf("text %q, want abc", tw.Text())
	}

	tw.Advance(1999 * time.Millisecond)
	if tw.Text() != "abc" {
		t.Fatalf("line erased during hold: %q", tw.Text())
	}
	tw.Advance(1*time.Millisecond + 20*time.Millisecond)
	if tw.Text() != "ab" {
		t.Fatalf("text %q after first backspace, want ab", tw.Text())
	}
	tw.Advance(40 * time.Millisecond)
	if tw.Text() != "" || tw.Line() != 1 {
		t.Fatalf("text %q line %d, want empty on line 1", tw.Text(), tw.Line())
	}
	tw.Advance(80 * time.Millisecond)
	if tw.Text() != "xy" {
		t.Fatalf("text %q, want xy", tw.Text())
	}

	// Hold, erase two runes, then loop back to the first line.
	tw.Advance(2000*time.Millisecond + 40*time.Millisecond)
	if tw.Line() != 0 {
		t.Errorf("line %d after wrap, want 0", tw.Line())
	}
}

func TestTypewriterLargeStep(t *testing.T) {
	tw := NewTypewriter(PageText("/products"), DefaultTiming)
	tw.Advance(time.Minute)
	if len(tw.Text()) > len("Accessing Product Database...") {
		t.Errorf("text overflow: %q", tw.Text())
	}

	empty := NewTypewriter(nil, DefaultTiming)
	empty.Advance(time.Second)
	if empty.Text() != "" {
		t.Error("empty typewriter produced text")
	}
}

func TestTypewriterSetLinesRestarts(t *testing.T) {
	tw := NewTypewriter([]string{"hello"}, DefaultTiming)
	tw.Advance(700 * time.Millisecond)
	tw.SetLines([]string{"bye"})
	if tw.Text() != "" || tw.Line() != 0 {
		t.Errorf("SetLines did not restart: %q", tw.Text())
	}
	tw.Advance(540 * time.Millisecond)
	if !strings.HasPrefix("bye", tw.Text()) || tw.Text() == "" {
		t.Errorf("text %q after restart", tw.Text())
	}
}

func TestCursorFollowsPointer(t *testing.T) {
	c := NewCursor(500 * time.Millisecond)
	c.Update(mesh.Pointer{}, false, 16*time.Millisecond)
	if c.Visible {
		t.Fatal("cursor visible without pointer")
	}

	c.Update(mesh.At(100, 100), false, 16*time.Millisecond)
	if !c.Visible || c.OutlineX != 100 {
		t.Fatalf("first placement should snap the outline: %+v", c)
	}

	step := time.Second / 60
	c.Update(mesh.At(200, 100), false, step)
	if c.DotX != 200 {
		t.Errorf("dot X = %v, want 200", c.DotX)
	}
	prev := c.OutlineX
	if prev <= 100 || prev >= 200 {
		t.Errorf("outline X = %v, want between 100 and 200", prev)
	}

	// Critically damped: approaches without overshooting.
	for i := 0; i < 59; i++ {
		c.Update(mesh.At(200, 100), false, step)
		if c.OutlineX < prev || c.OutlineX > 200 {
			t.Fatalf("frame %d: outline X = %v after %v", i, c.OutlineX, prev)
		}
		prev = c.OutlineX
	}
	if math.Abs(c.OutlineX-200) > 1 {
		t.Errorf("outline X = %v, want within 1 of 200 after a second", c.OutlineX)
	}

	c.Update(mesh.At(200, 100), true, 16*time.Millisecond)
	if c.Visible {
		t.Error("cursor should hide for touch input")
	}
}

func TestCardGlare(t *testing.T) {
	card := Card{X: 100, Y: 50, W: 200, H: 120}
	if !card.Contains(150, 60) || card.Contains(300, 60) {
		t.Error("Contains boundaries wrong")
	}

	x, y, ok := card.Glare(mesh.At(130, 90))
	if !ok || x != 30 || y != 40 {
		t.Errorf("Glare = (%v, %v, %v), want (30, 40, true)", x, y, ok)
	}
	if _, _, ok := card.Glare(mesh.Pointer{}); ok {
		t.Error("glare without pointer")
	}
}

func TestCardsForLayout(t *testing.T) {
	cards := CardsFor("/products", 1000, 500)
	if len(cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(cards))
	}
	for i := 1; i < len(cards); i++ {
		if cards[i].X <= cards[i-1].X+cards[i-1].W {
			t.Errorf("card %d overlaps its left neighbour", i)
		}
	}
	last := cards[len(cards)-1]
	if last.X+last.W > 1000*0.85+1e-9 {
		t.Errorf("cards overflow the content area: right edge %v", last.X+last.W)
	}

	c, ok := CardAt(cards, cards[1].X+1, cards[1].Y+1)
	if !ok || c.Link != "/focusguard" {
		t.Errorf("CardAt = (%+v, %v)", c, ok)
	}
	if _, ok := CardAt(cards, 0, 0); ok {
		t.Error("CardAt found a card at the origin")
	}

	if CardsFor("/missing", 1000, 500) != nil {
		t.Error("unknown page should have no cards")
	}
	if PageIndex("/focusguard") != 2 || PageIndex("/nope") != -1 {
		t.Error("PageIndex mismatch")
	}
}

package overlay

// Pages are the URLs the window host can navigate between.
var Pages = []string{"/index", "/products", "/focusguard"}

// PageIndex returns the position of url in Pages, or -1.
func PageIndex(url string) int {
	for i, p := range Pages {
		if p == url {
			return i
		}
	}
	return -1
}

// CardsFor lays out the cards shown on a page of size w×h. Each card links
// to another page.
func CardsFor(url string, w, h float64) []Card {
	titles := map[string][]Card{
		"/index": {
			{Title: "Products", Link: "/products"},
			{Title: "FocusGuard", Link: "/focusguard"},
		},
		"/products": {
			{Title: "PrismCore", Link: "/products#prismcore"},
			{Title: "FocusGuard", Link: "/focusguard"},
			{Title: "Home", Link: "/index"},
		},
		"/focusguard": {
			{Title: "Home", Link: "/index"},
			{Title: "Products", Link: "/products"},
		},
	}
	cards := titles[url]
	if len(cards) == 0 {
		return nil
	}

	const gap = 24.0
	cw := (w*0.7 - gap*float64(len(cards)-1)) / float64(len(cards))
	ch := h * 0.22
	x := w * 0.15
	y := h * 0.6
	out := make([]Card, len(cards))
	for i, c := range cards {
		c.X = x + float64(i)*(cw+gap)
		c.Y = y
		c.W = cw
		c.H = ch
		out[i] = c
	}
	return out
}

// CardAt returns the card under (x, y).
func CardAt(cards []Card, x, y float64) (Card, bool) {
	for _, c := range cards {
		if c.Contains(x, y) {
			return c, true
		}
	}
	return Card{}, false
}

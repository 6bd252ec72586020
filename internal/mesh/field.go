package mesh

import "math/rand"

// Field owns the particle set, its viewport and parameters.
type Field struct {
	params    Params
	viewport  Viewport
	particles []Particle
	rng       *rand.Rand
}

// NewField creates an empty field. Call Reset to populate it.
func NewField(p Params, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Field{params: p, rng: rng}
}

// Reset discards all particles and creates a fresh population for vp.
// Every viewport resize goes through here.
func (f *Field) Reset(vp Viewport) {
	f.viewport = vp
	n := f.params.Population(vp.Width)
	f.particles = make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, newParticle(f.rng, vp, f.params))
	}
}

// Resize resets the field when vp differs from the current viewport and
// reports whether it did.
func (f *Field) Resize(vp Viewport) bool {
	if vp == f.viewport && f.particles != nil {
		return false
	}
	f.Reset(vp)
	return true
}

// SetParams replaces the parameters and repopulates the current viewport.
func (f *Field) SetParams(p Params) {
	f.params = p
	f.Reset(f.viewport)
}

// Step advances the field by one frame.
func (f *Field) Step(ptr Pointer) {
	f.particles = Step(f.particles, Context{Viewport: f.viewport, Pointer: ptr}, f.params)
}

// Render draws the current state on s.
func (f *Field) Render(s Surface, ptr Pointer) Stats {
	return Render(s, f.particles, ptr, f.params)
}

// Particles returns the current particles. The slice must not be modified.
func (f *Field) Particles() []Particle { return f.particles }

// Viewport returns the current viewport.
func (f *Field) Viewport() Viewport { return f.viewport }

// Params returns the current parameters.
func (f *Field) Params() Params { return f.params }

// Place replaces the particle set, used to stage exact layouts.
func (f *Field) Place(particles []Particle) {
	f.particles = append([]Particle(nil), particles...)
}

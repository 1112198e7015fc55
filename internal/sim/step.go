package sim

import (
	"math"

	"github.com/san-kum/heroviz/internal/scene"
)

// Stepper advances a scene by one tick. It holds no state besides its
// parameters, so one value can drive any number of scenes.
type Stepper struct {
	params Params
}

func NewStepper(p Params) *Stepper {
	return &Stepper{params: p}
}

func (s *Stepper) Params() Params { return s.params }

// Step advances every particle and the clock. The clock moves by the
// nominal time step regardless of how long the frame actually took.
func (s *Stepper) Step(sc *scene.Scene, b scene.Bounds, ptr scene.Pointer) {
	for i := range sc.Particles {
		s.Advance(&sc.Particles[i], b, ptr)
	}
	sc.Time += s.params.TimeStep
}

// Advance applies the per-particle update rule: integrate, advance the
// pulse phase, bounce and clamp, pointer repulsion, damping, pulsation.
func (s *Stepper) Advance(p *scene.Particle, b scene.Bounds, ptr scene.Pointer) {
	p.X += p.VX
	p.Y += p.VY
	p.Phase += p.PhaseSpeed

	if p.X < 0 || p.X > b.W {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > b.H {
		p.VY = -p.VY
	}
	// Clamped every tick, in bounds or not.
	p.X = clamp(p.X, 0, b.W)
	p.Y = clamp(p.Y, 0, b.H)

	ix, iy := s.Impulse(p.X, p.Y, ptr)
	p.VX += ix
	p.VY += iy

	p.VX *= s.params.Damping
	p.VY *= s.params.Damping

	p.Radius = p.BaseRadius + math.Sin(p.Phase)*p.BaseRadius*s.params.PulseAmplitude
}

// Impulse is the velocity change the pointer imparts on a particle at
// (x, y). It points away from the pointer and falls off linearly to zero
// at the interaction radius. A particle exactly under the pointer gets
// nothing.
func (s *Stepper) Impulse(x, y float64, ptr scene.Pointer) (float64, float64) {
	dx := x - ptr.X
	dy := y - ptr.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	r := s.params.InteractionRadius
	if dist >= r || dist <= 0 {
		return 0, 0
	}
	force := (r - dist) / r * s.params.Repulsion
	return dx / dist * force * s.params.ImpulseScale, dy / dist * force * s.params.ImpulseScale
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

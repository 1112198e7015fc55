package scene

import "math"

// Tier is the category of a particle. It decides size, speed, glow and
// whether the particle takes part in connections.
type Tier uint8

const (
	Primary Tier = iota
	Secondary
	Ambient
)

func (t Tier) String() string {
	switch t {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Ambient:
		return "ambient"
	default:
		return "unknown"
	}
}

// RGB is an opaque color triple.
type RGB struct {
	R, G, B uint8
}

var (
	Blue   = RGB{59, 130, 246}
	Cyan   = RGB{6, 182, 212}
	Indigo = RGB{99, 102, 241}
	Violet = RGB{139, 92, 246}

	// Palette is cycled by the primary tier and sampled by the others.
	Palette = []RGB{Blue, Cyan, Indigo, Violet}
)

type Particle struct {
	X, Y       float64
	VX, VY     float64
	Radius     float64
	BaseRadius float64
	Phase      float64
	PhaseSpeed float64
	Color      RGB

	tier Tier
}

// NewParticle returns a particle at rest at (x, y) with Radius equal to
// baseRadius.
func NewParticle(tier Tier, x, y, baseRadius float64, c RGB) Particle {
	return Particle{
		X:          x,
		Y:          y,
		Radius:     baseRadius,
		BaseRadius: baseRadius,
		Color:      c,
		tier:       tier,
	}
}

func (p *Particle) Tier() Tier { return p.tier }

// Linked reports whether the particle is eligible for connections.
func (p *Particle) Linked() bool { return p.tier != Ambient }

func (p *Particle) Speed() float64 { return math.Hypot(p.VX, p.VY) }

type WavePoint struct {
	Phase     float64
	Amplitude float64
	Frequency float64
}

// Bounds is the logical size of the drawing surface.
type Bounds struct {
	W, H float64
}

func (b Bounds) Valid() bool { return b.W > 0 && b.H > 0 }

func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.W && y >= 0 && y <= b.H
}

// Pointer is the cursor position in logical surface coordinates.
type Pointer struct {
	X, Y float64
}

// Offscreen is where the pointer sits until it first moves over the
// surface. It is far enough away that no particle can be repelled by it.
var Offscreen = Pointer{X: -1000, Y: -1000}

type Scene struct {
	Particles []Particle
	Wave      []WavePoint
	Time      float64
}

// Count returns the number of particles in tier t.
func (s *Scene) Count(t Tier) int {
	n := 0
	for i := range s.Particles {
		if s.Particles[i].tier == t {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, used by observers and tests that must not
// hold references into the live scene.
func (s *Scene) Clone() *Scene {
	c := &Scene{
		Particles: make([]Particle, len(s.Particles)),
		Wave:      make([]WavePoint, len(s.Wave)),
		Time:      s.Time,
	}
	copy(c.Particles, s.Particles)
	copy(c.Wave, s.Wave)
	return c
}

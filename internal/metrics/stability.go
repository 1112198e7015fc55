package metrics

import (
	"github.com/san-kum/heroviz/internal/scene"
)

// Containment is the fraction of observed ticks in which every particle
// lay inside the bounds. A correct step keeps it at 1.
type Containment struct {
	name       string
	bounds     scene.Bounds
	violations int
	samples    int
}

func NewContainment(b scene.Bounds) *Containment {
	return &Containment{
		name:   "containment",
		bounds: b,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(sc *scene.Scene) {
	c.samples++
	for i := range sc.Particles {
		if !c.bounds.Contains(sc.Particles[i].X, sc.Particles[i].Y) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

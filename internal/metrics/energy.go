package metrics

import (
	"github.com/san-kum/heroviz/internal/scene"
)

// KineticEnergy is the scene's current kinetic energy, taking a particle's
// mass as the square of its base radius.
type KineticEnergy struct {
	name    string
	current float64
	peak    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(sc *scene.Scene) {
	total := 0.0
	for i := range sc.Particles {
		p := &sc.Particles[i]
		m := p.BaseRadius * p.BaseRadius
		total += 0.5 * m * (p.VX*p.VX + p.VY*p.VY)
	}
	e.current = total
	if total > e.peak {
		e.peak = total
	}
	e.samples++
}

func (e *KineticEnergy) Value() float64 { return e.current }

// Peak is the largest energy seen since the last reset.
func (e *KineticEnergy) Peak() float64 { return e.peak }

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.peak = 0
	e.samples = 0
}

// EnergyDecay is the ratio of current to initial kinetic energy. With no
// pointer input damping drives it towards zero.
type EnergyDecay struct {
	name    string
	energy  KineticEnergy
	initial float64
	samples int
}

func NewEnergyDecay() *EnergyDecay {
	return &EnergyDecay{name: "energy_decay"}
}

func (e *EnergyDecay) Name() string { return e.name }

func (e *EnergyDecay) Observe(sc *scene.Scene) {
	e.energy.Observe(sc)
	if e.samples == 0 {
		e.initial = e.energy.Value()
	}
	e.samples++
}

func (e *EnergyDecay) Value() float64 {
	if e.samples == 0 || e.initial == 0 {
		return 1
	}
	return e.energy.Value() / e.initial
}

func (e *EnergyDecay) Reset() {
	e.energy.Reset()
	e.initial = 0
	e.samples = 0
}

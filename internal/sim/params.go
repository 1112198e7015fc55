package sim

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("sim: invalid physics parameters")

type Params struct {
	// TimeStep is the nominal clock increment per tick.
	TimeStep float64 `yaml:"time_step"`
	// Damping multiplies both velocity components every tick.
	Damping float64 `yaml:"damping"`
	// InteractionRadius is the distance within which the pointer repels.
	InteractionRadius float64 `yaml:"interaction_radius"`
	Repulsion         float64 `yaml:"repulsion"`
	ImpulseScale      float64 `yaml:"impulse_scale"`
	// PulseAmplitude is the fraction of the base radius the radius
	// oscillates by.
	PulseAmplitude float64 `yaml:"pulse_amplitude"`
}

func DefaultParams() Params {
	return Params{
		TimeStep:          0.016,
		Damping:           0.99,
		InteractionRadius: 120,
		Repulsion:         0.8,
		ImpulseScale:      0.1,
		PulseAmplitude:    0.3,
	}
}

func (p Params) Validate() error {
	if p.TimeStep <= 0 {
		return fmt.Errorf("%w: time step must be positive, got %f", ErrInvalidParams, p.TimeStep)
	}
	if p.Damping <= 0 || p.Damping > 1 {
		return fmt.Errorf("%w: damping %f outside (0, 1]", ErrInvalidParams, p.Damping)
	}
	if p.InteractionRadius < 0 || p.Repulsion < 0 || p.ImpulseScale < 0 {
		return fmt.Errorf("%w: pointer interaction terms must be non-negative", ErrInvalidParams)
	}
	if p.PulseAmplitude < 0 || p.PulseAmplitude > 1 {
		return fmt.Errorf("%w: pulse amplitude %f outside [0, 1]", ErrInvalidParams, p.PulseAmplitude)
	}
	return nil
}

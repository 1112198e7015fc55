package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("scene: invalid population parameters")

// PrimaryLayout is the hand-chosen placement of the primary tier as
// fractions of the surface size.
var PrimaryLayout = [][2]float64{
	{0.15, 0.3},
	{0.25, 0.7},
	{0.08, 0.55},
	{0.35, 0.45},
	{0.42, 0.2},
	{0.5, 0.8},
}

// TierParams describes how one tier is generated. Speed is the full span of
// each velocity component, centred on zero.
type TierParams struct {
	Count      int     `yaml:"count"`
	Speed      float64 `yaml:"speed"`
	RadiusMin  float64 `yaml:"radius_min"`
	RadiusSpan float64 `yaml:"radius_span"`
	PulseMin   float64 `yaml:"pulse_min"`
	PulseSpan  float64 `yaml:"pulse_span"`
}

type Params struct {
	Primary   TierParams `yaml:"primary"`
	Secondary TierParams `yaml:"secondary"`
	Ambient   TierParams `yaml:"ambient"`

	// SecondarySpread confines secondary particles to the left part of
	// the surface.
	SecondarySpread float64 `yaml:"secondary_spread"`

	WavePoints    int     `yaml:"wave_points"`
	AmplitudeMin  float64 `yaml:"amplitude_min"`
	AmplitudeSpan float64 `yaml:"amplitude_span"`
	FrequencyMin  float64 `yaml:"frequency_min"`
	FrequencySpan float64 `yaml:"frequency_span"`
}

func DefaultParams() Params {
	return Params{
		Primary:         TierParams{Count: 6, Speed: 0.3, RadiusMin: 4, RadiusSpan: 3, PulseMin: 0.02, PulseSpan: 0.02},
		Secondary:       TierParams{Count: 25, Speed: 0.5, RadiusMin: 2, RadiusSpan: 2, PulseMin: 0.03, PulseSpan: 0.02},
		Ambient:         TierParams{Count: 50, Speed: 0.8, RadiusMin: 1, RadiusSpan: 1, PulseMin: 0.04, PulseSpan: 0.03},
		SecondarySpread: 0.6,
		WavePoints:      80,
		AmplitudeMin:    8,
		AmplitudeSpan:   20,
		FrequencyMin:    1,
		FrequencySpan:   2,
	}
}

func (p Params) Validate() error {
	if p.Primary.Count < 0 || p.Primary.Count > len(PrimaryLayout) {
		return fmt.Errorf("%w: primary count %d outside [0, %d]", ErrInvalidParams, p.Primary.Count, len(PrimaryLayout))
	}
	if p.Secondary.Count < 0 || p.Ambient.Count < 0 {
		return fmt.Errorf("%w: negative tier count", ErrInvalidParams)
	}
	if !(p.Ambient.Speed > p.Secondary.Speed && p.Secondary.Speed > p.Primary.Speed && p.Primary.Speed >= 0) {
		return fmt.Errorf("%w: speeds must satisfy ambient > secondary > primary >= 0, got %.3f/%.3f/%.3f",
			ErrInvalidParams, p.Ambient.Speed, p.Secondary.Speed, p.Primary.Speed)
	}
	for _, t := range []TierParams{p.Primary, p.Secondary, p.Ambient} {
		if t.RadiusMin <= 0 || t.RadiusSpan < 0 || t.PulseMin < 0 || t.PulseSpan < 0 {
			return fmt.Errorf("%w: radius and pulse ranges must be positive", ErrInvalidParams)
		}
	}
	if p.SecondarySpread <= 0 || p.SecondarySpread > 1 {
		return fmt.Errorf("%w: secondary spread %.3f outside (0, 1]", ErrInvalidParams, p.SecondarySpread)
	}
	if p.WavePoints < 2 {
		return fmt.Errorf("%w: need at least 2 wave points, got %d", ErrInvalidParams, p.WavePoints)
	}
	if p.AmplitudeMin <= 0 || p.AmplitudeSpan < 0 || p.FrequencyMin <= 0 || p.FrequencySpan < 0 {
		return fmt.Errorf("%w: wave amplitude and frequency must be positive", ErrInvalidParams)
	}
	return nil
}

// Populate builds the initial scene for a w x h surface.
func Populate(w, h float64, p Params, rng *rand.Rand) *Scene {
	sc := &Scene{
		Particles: make([]Particle, 0, p.Primary.Count+p.Secondary.Count+p.Ambient.Count),
		Wave:      make([]WavePoint, 0, p.WavePoints),
	}

	for i := 0; i < p.Primary.Count; i++ {
		pos := PrimaryLayout[i]
		c := Palette[i%len(Palette)]
		sc.Particles = append(sc.Particles, spawn(Primary, w*pos[0], h*pos[1], c, p.Primary, rng))
	}

	for i := 0; i < p.Secondary.Count; i++ {
		x := rng.Float64() * w * p.SecondarySpread
		y := rng.Float64() * h
		sc.Particles = append(sc.Particles, spawn(Secondary, x, y, pick(rng), p.Secondary, rng))
	}

	for i := 0; i < p.Ambient.Count; i++ {
		x := rng.Float64() * w
		y := rng.Float64() * h
		sc.Particles = append(sc.Particles, spawn(Ambient, x, y, pick(rng), p.Ambient, rng))
	}

	n := float64(p.WavePoints)
	for i := 0; i < p.WavePoints; i++ {
		sc.Wave = append(sc.Wave, WavePoint{
			Phase:     float64(i) / n * math.Pi * 4,
			Amplitude: p.AmplitudeMin + rng.Float64()*p.AmplitudeSpan,
			Frequency: p.FrequencyMin + rng.Float64()*p.FrequencySpan,
		})
	}

	return sc
}

func spawn(tier Tier, x, y float64, c RGB, tp TierParams, rng *rand.Rand) Particle {
	p := NewParticle(tier, x, y, tp.RadiusMin+rng.Float64()*tp.RadiusSpan, c)
	p.VX = (rng.Float64() - 0.5) * tp.Speed
	p.VY = (rng.Float64() - 0.5) * tp.Speed
	p.Phase = rng.Float64() * math.Pi * 2
	p.PhaseSpeed = tp.PulseMin + rng.Float64()*tp.PulseSpan
	return p
}

func pick(rng *rand.Rand) RGB {
	return Palette[rng.Intn(len(Palette))]
}

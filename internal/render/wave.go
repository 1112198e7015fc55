package render

import (
	"math"

	"github.com/san-kum/heroviz/internal/scene"
)

// WaveLayer is one stroked curve sampled from the scene's wave points:
//
//	y = amp * Fn(t*f*FreqScale + phase) * AmpScale * (0.3 + 0.7*Fn(t*EnvelopeRate + i*EnvelopeSpread))
//
// The second factor is a slow envelope that makes the whole curve breathe.
type WaveLayer struct {
	Fn             func(float64) float64
	FreqScale      float64
	AmpScale       float64
	EnvelopeRate   float64
	EnvelopeSpread float64
	Color          scene.RGB
	Alpha          float64
	Width          float64
}

// DefaultWaveLayers returns the sine layer and the fainter, slower cosine
// layer drawn over it.
func DefaultWaveLayers() []WaveLayer {
	return []WaveLayer{
		{Fn: math.Sin, FreqScale: 1, AmpScale: 0.5, EnvelopeRate: 0.8, EnvelopeSpread: 0.1, Color: scene.Cyan, Alpha: 0.12, Width: 1.5},
		{Fn: math.Cos, FreqScale: 0.7, AmpScale: 0.4, EnvelopeRate: 0.6, EnvelopeSpread: 0.15, Color: scene.Blue, Alpha: 0.08, Width: 1},
	}
}

// Offset is the vertical displacement of wave point i at time t.
func (l WaveLayer) Offset(w scene.WavePoint, i int, t float64) float64 {
	amp := w.Amplitude * l.Fn(t*w.Frequency*l.FreqScale+w.Phase) * l.AmpScale
	return amp * (0.3 + 0.7*l.Fn(t*l.EnvelopeRate+float64(i)*l.EnvelopeSpread))
}

// WaveGeometry places the waveform as fractions of the surface size.
type WaveGeometry struct {
	Baseline float64 `yaml:"baseline"`
	Start    float64 `yaml:"start"`
	Span     float64 `yaml:"span"`
}

// AppendSamples appends one point per wave sample, left to right.
func (l WaveLayer) AppendSamples(dst []Point, wave []scene.WavePoint, t float64, b scene.Bounds, g WaveGeometry) []Point {
	y0 := b.H * g.Baseline
	x0 := b.W * g.Start
	span := b.W * g.Span
	n := float64(len(wave))
	for i, w := range wave {
		dst = append(dst, Point{
			X: x0 + float64(i)/n*span,
			Y: y0 + l.Offset(w, i, t),
		})
	}
	return dst
}

package render

import (
	"errors"
	"fmt"

	"github.com/san-kum/heroviz/internal/scene"
)

var ErrInvalidParams = errors.New("render: invalid render parameters")

// TierStyle controls how particles of one tier are painted.
type TierStyle struct {
	Glow      float64 `yaml:"glow"`
	HaloAlpha float64 `yaml:"halo_alpha"`
	MidAlpha  float64 `yaml:"mid_alpha"`
	CoreAlpha float64 `yaml:"core_alpha"`
}

type Params struct {
	ConnectionDistance float64 `yaml:"connection_distance"`
	ConnectionAlpha    float64 `yaml:"connection_alpha"`
	ConnectionWidth    float64 `yaml:"connection_width"`
	PulseRadius        float64 `yaml:"pulse_radius"`
	// PulseGain multiplies the link alpha for the traveling dot.
	PulseGain float64 `yaml:"pulse_gain"`
	PulseRate float64 `yaml:"pulse_rate"`

	Primary   TierStyle `yaml:"primary"`
	Secondary TierStyle `yaml:"secondary"`
	Ambient   TierStyle `yaml:"ambient"`

	Wave WaveGeometry `yaml:"wave"`
}

func DefaultParams() Params {
	return Params{
		ConnectionDistance: 150,
		ConnectionAlpha:    0.15,
		ConnectionWidth:    0.8,
		PulseRadius:        1.2,
		PulseGain:          3,
		PulseRate:          2,
		Primary:            TierStyle{Glow: 20, HaloAlpha: 0.8, MidAlpha: 0.2, CoreAlpha: 0.9},
		Secondary:          TierStyle{Glow: 12, HaloAlpha: 0.5, MidAlpha: 0.1, CoreAlpha: 0.6},
		Ambient:            TierStyle{Glow: 6, HaloAlpha: 0.5, MidAlpha: 0.1, CoreAlpha: 0.6},
		Wave:               WaveGeometry{Baseline: 0.88, Start: 0.05, Span: 0.45},
	}
}

func (p Params) Style(t scene.Tier) TierStyle {
	switch t {
	case scene.Primary:
		return p.Primary
	case scene.Secondary:
		return p.Secondary
	default:
		return p.Ambient
	}
}

// Renderer draws scenes. It keeps scratch buffers between frames and must
// not be shared by concurrently drawing hosts.
type Renderer struct {
	params Params
	layers []WaveLayer

	links  []Link
	stops  [3]Stop
	points []Point
}

func NewRenderer(p Params) *Renderer {
	return &Renderer{params: p, layers: DefaultWaveLayers()}
}

func (r *Renderer) Params() Params { return r.params }

// Draw repaints the whole surface from sc.
func (r *Renderer) Draw(s Surface, sc *scene.Scene, b scene.Bounds) {
	s.Clear(b.W, b.H)
	r.drawLinks(s, sc)
	r.drawParticles(s, sc)
	r.drawWaves(s, sc, b)
}

func (r *Renderer) drawLinks(s Surface, sc *scene.Scene) {
	p := r.params
	r.links = AppendLinks(r.links[:0], sc.Particles, p.ConnectionDistance, p.ConnectionAlpha)
	for _, l := range r.links {
		a, b := &sc.Particles[l.I], &sc.Particles[l.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, p.ConnectionWidth, RGBA(a.Color, l.Alpha))

		f := PulsePosition(sc.Time, l.I, l.J, p.PulseRate)
		s.FillCircle(a.X+(b.X-a.X)*f, a.Y+(b.Y-a.Y)*f, p.PulseRadius, RGBA(a.Color, l.Alpha*p.PulseGain))
	}
}

func (r *Renderer) drawParticles(s Surface, sc *scene.Scene) {
	for i := range sc.Particles {
		pt := &sc.Particles[i]
		st := r.params.Style(pt.Tier())

		r.stops[0] = Stop{Offset: 0, Color: RGBA(pt.Color, st.HaloAlpha)}
		r.stops[1] = Stop{Offset: 0.5, Color: RGBA(pt.Color, st.MidAlpha)}
		r.stops[2] = Stop{Offset: 1, Color: RGBA(pt.Color, 0)}
		s.FillGlow(pt.X, pt.Y, st.Glow, r.stops[:])

		s.FillCircle(pt.X, pt.Y, pt.Radius, RGBA(pt.Color, st.CoreAlpha))
	}
}

func (r *Renderer) drawWaves(s Surface, sc *scene.Scene, b scene.Bounds) {
	if len(sc.Wave) == 0 {
		return
	}
	for _, l := range r.layers {
		r.points = l.AppendSamples(r.points[:0], sc.Wave, sc.Time, b, r.params.Wave)
		s.StrokePath(r.points, l.Width, RGBA(l.Color, l.Alpha))
	}
}

func (p Params) Validate() error {
	if p.ConnectionDistance <= 0 {
		return fmt.Errorf("%w: connection distance must be positive, got %f", ErrInvalidParams, p.ConnectionDistance)
	}
	if p.ConnectionAlpha < 0 || p.ConnectionAlpha > 1 {
		return fmt.Errorf("%w: connection alpha %f outside [0, 1]", ErrInvalidParams, p.ConnectionAlpha)
	}
	for _, st := range []TierStyle{p.Primary, p.Secondary, p.Ambient} {
		if st.Glow < 0 {
			return fmt.Errorf("%w: negative glow radius", ErrInvalidParams)
		}
	}
	if p.Wave.Start < 0 || p.Wave.Start+p.Wave.Span > 1 || p.Wave.Baseline < 0 || p.Wave.Baseline > 1 {
		return fmt.Errorf("%w: waveform must lie inside the surface", ErrInvalidParams)
	}
	return nil
}

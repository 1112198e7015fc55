package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/heroviz/internal/scene"
)

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(sc *scene.Scene)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(sc *scene.Scene, tick int)
}

// PointerPath gives the pointer position for a tick of a headless run.
type PointerPath func(tick int, b scene.Bounds) scene.Pointer

// Still keeps the pointer in one place.
func Still(p scene.Pointer) PointerPath {
	return func(int, scene.Bounds) scene.Pointer { return p }
}

// Orbit sweeps the pointer around the centre of the particle field,
// completing one revolution every period ticks.
func Orbit(radius float64, period int) PointerPath {
	return func(tick int, b scene.Bounds) scene.Pointer {
		a := 2 * math.Pi * float64(tick) / float64(period)
		return scene.Pointer{
			X: b.W*0.3 + radius*math.Cos(a),
			Y: b.H*0.5 + radius*math.Sin(a),
		}
	}
}

type RunConfig struct {
	Ticks   int
	Bounds  scene.Bounds
	Pointer PointerPath
}

type Result struct {
	Ticks int
	// Series holds one sample per tick for every metric.
	Series  map[string][]float64
	Metrics map[string]float64
	Final   *scene.Scene
}

// Simulator runs a scene without a display, for tracing and benchmarks.
type Simulator struct {
	stepper   *Stepper
	metrics   []Metric
	observers []Observer
}

func New(stepper *Stepper) *Simulator {
	return &Simulator{
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, sc *scene.Scene, cfg RunConfig) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	path := cfg.Pointer
	if path == nil {
		path = Still(scene.Offscreen)
	}

	result := &Result{
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Ticks)
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, sc)
			return result, ctx.Err()
		default:
		}

		s.stepper.Step(sc, cfg.Bounds, path(i, cfg.Bounds))
		result.Ticks++

		for _, obs := range s.observers {
			obs.OnStep(sc, i)
		}
		for _, m := range s.metrics {
			m.Observe(sc)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
	}

	s.finish(result, sc)
	return result, nil
}

func (s *Simulator) finish(result *Result, sc *scene.Scene) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = sc.Clone()
}

func (s *Simulator) validateConfig(cfg RunConfig) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if !cfg.Bounds.Valid() {
		return fmt.Errorf("bounds must be positive, got %.1fx%.1f", cfg.Bounds.W, cfg.Bounds.H)
	}
	return nil
}

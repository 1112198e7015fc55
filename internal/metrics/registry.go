package metrics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/sim"
)

var ErrUnknownMetric = errors.New("metrics: unknown metric")

// Env carries what a metric may need to be constructed.
type Env struct {
	Bounds             scene.Bounds
	ConnectionDistance float64
}

var registry = map[string]func(Env) sim.Metric{
	"mean_speed":     func(Env) sim.Metric { return NewMeanSpeed() },
	"max_speed":      func(Env) sim.Metric { return NewMaxSpeed() },
	"kinetic_energy": func(Env) sim.Metric { return NewKineticEnergy() },
	"energy_decay":   func(Env) sim.Metric { return NewEnergyDecay() },
	"containment":    func(e Env) sim.Metric { return NewContainment(e.Bounds) },
	"links":          func(e Env) sim.Metric { return NewLinkCount(e.ConnectionDistance) },
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named metrics in order.
func Build(env Env, names ...string) ([]sim.Metric, error) {
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		mk, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
		}
		out = append(out, mk(env))
	}
	return out, nil
}

// Telemetry keeps the last values of one metric, sampled once per frame.
// It implements sim.Observer so live hosts can plot it.
type Telemetry struct {
	metric sim.Metric
	buf    []float64
	size   int
}

func NewTelemetry(m sim.Metric, size int) *Telemetry {
	if size < 1 {
		size = 1
	}
	return &Telemetry{metric: m, buf: make([]float64, 0, size), size: size}
}

func (t *Telemetry) OnStep(sc *scene.Scene, _ int) {
	t.metric.Observe(sc)
	if len(t.buf) == t.size {
		copy(t.buf, t.buf[1:])
		t.buf = t.buf[:t.size-1]
	}
	t.buf = append(t.buf, t.metric.Value())
}

func (t *Telemetry) Name() string { return t.metric.Name() }

// Values returns a copy of the retained samples, oldest first.
func (t *Telemetry) Values() []float64 {
	return append([]float64(nil), t.buf...)
}

func (t *Telemetry) Last() float64 {
	if len(t.buf) == 0 {
		return 0
	}
	return t.buf[len(t.buf)-1]
}

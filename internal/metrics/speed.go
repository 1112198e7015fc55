package metrics

import "github.com/san-kum/heroviz/internal/scene"

// MeanSpeed is the average particle speed in the latest observed tick.
type MeanSpeed struct {
	name    string
	current float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(sc *scene.Scene) {
	if len(sc.Particles) == 0 {
		m.current = 0
		return
	}
	sum := 0.0
	for i := range sc.Particles {
		sum += sc.Particles[i].Speed()
	}
	m.current = sum / float64(len(sc.Particles))
}

func (m *MeanSpeed) Value() float64 { return m.current }
func (m *MeanSpeed) Reset()         { m.current = 0 }

// MaxSpeed is the fastest any particle has moved since the last reset.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(sc *scene.Scene) {
	for i := range sc.Particles {
		if s := sc.Particles[i].Speed(); s > m.max {
			m.max = s
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

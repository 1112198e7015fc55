package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/heroviz/internal/scene"
)

const eps = 1e-12

func newScene(seed int64) (*scene.Scene, scene.Bounds) {
	b := scene.Bounds{W: 1000, H: 800}
	return scene.Populate(b.W, b.H, scene.DefaultParams(), rand.New(rand.NewSource(seed))), b
}

func TestStepKeepsParticlesInBounds(t *testing.T) {
	sc, b := newScene(1)
	st := NewStepper(DefaultParams())

	// Shrink mid-run the way a resize would.
	for tick := 0; tick < 2000; tick++ {
		if tick == 1000 {
			b = scene.Bounds{W: 300, H: 200}
		}
		st.Step(sc, b, scene.Offscreen)
		for i, p := range sc.Particles {
			if !b.Contains(p.X, p.Y) {
				t.Fatalf("tick %d: particle %d at (%.3f, %.3f) outside %vx%v", tick, i, p.X, p.Y, b.W, b.H)
			}
		}
	}
}

func TestStepTenThousandTicksWithoutPointer(t *testing.T) {
	sc, b := newScene(42)
	st := NewStepper(DefaultParams())

	for tick := 0; tick < 10000; tick++ {
		st.Step(sc, b, scene.Offscreen)
		for i := range sc.Particles {
			p := &sc.Particles[i]
			if p.X < 0 || p.X > b.W || p.Y < 0 || p.Y > b.H {
				t.Fatalf("tick %d: particle %d escaped to (%.3f, %.3f)", tick, i, p.X, p.Y)
			}
		}
	}
}

func TestStepPulsationBound(t *testing.T) {
	sc, b := newScene(2)
	st := NewStepper(DefaultParams())

	for tick := 0; tick < 3000; tick++ {
		st.Step(sc, b, scene.Pointer{X: 300, Y: 400})
		for i, p := range sc.Particles {
			lo, hi := p.BaseRadius*0.7, p.BaseRadius*1.3
			if p.Radius < lo-eps || p.Radius > hi+eps {
				t.Fatalf("tick %d: particle %d radius %.4f outside [%.4f, %.4f]", tick, i, p.Radius, lo, hi)
			}
			if p.Radius < 0 {
				t.Fatalf("tick %d: negative radius", tick)
			}
		}
	}
}

func TestStepDampingShrinksSpeed(t *testing.T) {
	sc, b := newScene(3)
	st := NewStepper(DefaultParams())

	prev := make([]float64, len(sc.Particles))
	for i := range sc.Particles {
		prev[i] = sc.Particles[i].Speed()
	}
	for tick := 0; tick < 500; tick++ {
		st.Step(sc, b, scene.Offscreen)
		for i := range sc.Particles {
			s := sc.Particles[i].Speed()
			if s > prev[i]+eps {
				t.Fatalf("tick %d: particle %d speed grew from %.6f to %.6f", tick, i, prev[i], s)
			}
			prev[i] = s
		}
	}
}

func TestStepAdvancesClockByNominalIncrement(t *testing.T) {
	sc, b := newScene(4)
	st := NewStepper(DefaultParams())
	for i := 0; i < 100; i++ {
		st.Step(sc, b, scene.Offscreen)
	}
	if math.Abs(sc.Time-1.6) > 1e-9 {
		t.Errorf("expected time 1.6 after 100 ticks, got %f", sc.Time)
	}
}

func TestAdvanceBouncesOffWalls(t *testing.T) {
	st := NewStepper(DefaultParams())
	b := scene.Bounds{W: 100, H: 100}

	tests := []struct {
		name         string
		x, y, vx, vy float64
		wantX, wantY float64
		flipX, flipY bool
	}{
		{"right wall", 99.95, 50, 0.1, 0, 100, 50, true, false},
		{"left wall", 0.05, 50, -0.1, 0, 0, 50, true, false},
		{"bottom wall", 50, 99.9, 0, 0.5, 50, 100, false, true},
		{"top wall", 50, 0.2, 0, -0.5, 50, 0, false, true},
		{"corner", 99.9, 99.9, 0.5, 0.5, 100, 100, true, true},
		{"inside", 50, 50, 0.3, -0.3, 50.3, 49.7, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scene.NewParticle(scene.Secondary, tt.x, tt.y, 2, scene.Blue)
			p.VX, p.VY = tt.vx, tt.vy
			st.Advance(&p, b, scene.Offscreen)

			if math.Abs(p.X-tt.wantX) > 1e-9 || math.Abs(p.Y-tt.wantY) > 1e-9 {
				t.Errorf("expected (%.2f, %.2f), got (%.4f, %.4f)", tt.wantX, tt.wantY, p.X, p.Y)
			}
			if flipped := p.VX*tt.vx < 0; flipped != tt.flipX {
				t.Errorf("expected x flip %v, got vx %.4f from %.4f", tt.flipX, p.VX, tt.vx)
			}
			if flipped := p.VY*tt.vy < 0; flipped != tt.flipY {
				t.Errorf("expected y flip %v, got vy %.4f from %.4f", tt.flipY, p.VY, tt.vy)
			}
		})
	}
}

func TestAdvanceOnBoundaryStaysInside(t *testing.T) {
	st := NewStepper(DefaultParams())
	b := scene.Bounds{W: 100, H: 100}
	p := scene.NewParticle(scene.Primary, 100, 0, 4, scene.Cyan)
	p.VX, p.VY = 5, -5

	for i := 0; i < 10; i++ {
		st.Advance(&p, b, scene.Offscreen)
		if !b.Contains(p.X, p.Y) {
			t.Fatalf("step %d: particle left the surface at (%.3f, %.3f)", i, p.X, p.Y)
		}
	}
}

func TestImpulsePointsAwayFromPointer(t *testing.T) {
	st := NewStepper(DefaultParams())
	ptr := scene.Pointer{X: 500, Y: 400}

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 500; i++ {
		a := rng.Float64() * 2 * math.Pi
		d := 0.5 + rng.Float64()*119
		x, y := ptr.X+d*math.Cos(a), ptr.Y+d*math.Sin(a)

		ix, iy := st.Impulse(x, y, ptr)
		dot := ix*(x-ptr.X) + iy*(y-ptr.Y)
		if dot <= 0 {
			t.Fatalf("impulse (%.5f, %.5f) at distance %.2f not directed away (dot %.6f)", ix, iy, d, dot)
		}
	}
}

func TestImpulseFalloff(t *testing.T) {
	st := NewStepper(DefaultParams())
	ptr := scene.Pointer{X: 0, Y: 0}

	prev := math.Inf(1)
	for d := 1.0; d < 120; d += 1 {
		ix, iy := st.Impulse(d, 0, ptr)
		mag := math.Hypot(ix, iy)
		if mag >= prev {
			t.Fatalf("impulse did not decrease with distance at %.0f: %.6f >= %.6f", d, mag, prev)
		}
		prev = mag
	}

	tests := []struct {
		name string
		x, y float64
	}{
		{"at radius", 120, 0},
		{"beyond radius", 200, 0},
		{"under pointer", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ix, iy := st.Impulse(tt.x, tt.y, ptr); ix != 0 || iy != 0 {
				t.Errorf("expected no impulse, got (%.6f, %.6f)", ix, iy)
			}
		})
	}
}

func TestAdvanceRepelsNearbyParticle(t *testing.T) {
	st := NewStepper(DefaultParams())
	b := scene.Bounds{W: 1000, H: 800}
	p := scene.NewParticle(scene.Secondary, 500, 400, 2, scene.Blue)
	ptr := scene.Pointer{X: 470, Y: 400}

	st.Advance(&p, b, ptr)

	if p.VX <= 0 {
		t.Errorf("expected particle pushed right, got vx %.6f", p.VX)
	}
	if p.VY != 0 {
		t.Errorf("expected no vertical impulse, got vy %.6f", p.VY)
	}
}

func TestAdvancePointerOnParticleIsIgnored(t *testing.T) {
	st := NewStepper(DefaultParams())
	b := scene.Bounds{W: 1000, H: 800}

	vx, vy := 0.1, -0.2
	damping := st.Params().Damping
	p := scene.NewParticle(scene.Primary, 400, 300, 5, scene.Violet)
	p.VX, p.VY = vx, vy
	// Position after integration, where the pointer check happens.
	ptr := scene.Pointer{X: p.X + p.VX, Y: p.Y + p.VY}

	st.Advance(&p, b, ptr)

	if p.VX != vx*damping || p.VY != vy*damping {
		t.Errorf("expected only damping, got velocity (%.6f, %.6f)", p.VX, p.VY)
	}
	if math.IsNaN(p.VX) || math.IsNaN(p.VY) {
		t.Error("velocity became NaN")
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero time step", func(p *Params) { p.TimeStep = 0 }},
		{"damping above one", func(p *Params) { p.Damping = 1.01 }},
		{"zero damping", func(p *Params) { p.Damping = 0 }},
		{"negative radius", func(p *Params) { p.InteractionRadius = -1 }},
		{"pulse amplitude", func(p *Params) { p.PulseAmplitude = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

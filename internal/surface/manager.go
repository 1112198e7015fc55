package surface

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/sim"
)

var (
	ErrTornDown = errors.New("surface: manager torn down")
	ErrMounted  = errors.New("surface: already mounted")
)

const MaxPixelRatio = 2.0

type State int

const (
	Uninitialized State = iota
	Sized
	Running
	TornDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Sized:
		return "sized"
	case Running:
		return "running"
	case TornDown:
		return "torn down"
	default:
		return "unknown"
	}
}

type Options struct {
	Scene  scene.Params
	Sim    sim.Params
	Render render.Params

	// Seed seeds particle placement. Zero means a fixed default seed.
	Seed int64
	// MaxPixelRatio caps the device pixel ratio. Zero means MaxPixelRatio.
	MaxPixelRatio float64

	// Observers are called after every rendered frame with the manager's
	// lock held; they must not call back into the manager.
	Observers []sim.Observer
	Logger    *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Scene:  scene.DefaultParams(),
		Sim:    sim.DefaultParams(),
		Render: render.DefaultParams(),
		Seed:   1,
	}
}

// Manager owns the scene, clock, bounds and pointer for one host surface.
type Manager struct {
	mu sync.Mutex

	host     Host
	opts     Options
	stepper  *sim.Stepper
	renderer *render.Renderer
	rng      *rand.Rand
	log      *slog.Logger
	maxDPR   float64

	mounted  bool
	inert    bool
	tornDown bool
	rendered bool

	scene   *scene.Scene
	bounds  scene.Bounds
	pointer scene.Pointer
	dpr     float64
	ticks   int

	frame         FrameID
	removeResize  func()
	removePointer func()
}

func NewManager(h Host, opts Options) *Manager {
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	maxDPR := opts.MaxPixelRatio
	if maxDPR <= 0 {
		maxDPR = MaxPixelRatio
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Manager{
		host:     h,
		opts:     opts,
		stepper:  sim.NewStepper(opts.Sim),
		renderer: render.NewRenderer(opts.Render),
		rng:      rand.New(rand.NewSource(seed)),
		log:      log,
		maxDPR:   maxDPR,
		pointer:  scene.Offscreen,
	}
}

// Mount attaches the manager to its host, sizes the surface and schedules
// the first frame. A host without a canvas leaves the manager inert.
func (m *Manager) Mount() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tornDown {
		return ErrTornDown
	}
	if m.mounted {
		return ErrMounted
	}
	m.mounted = true

	if _, ok := m.host.Canvas(); !ok {
		m.inert = true
		m.log.Debug("no canvas, surface inert")
		return nil
	}

	m.removeResize = m.host.OnResize(m.handleResize)
	m.removePointer = m.host.OnPointerMove(m.handlePointer)
	m.resize()
	m.frame = m.host.RequestFrame(m.handleFrame)

	m.log.Debug("mount", "width", m.bounds.W, "height", m.bounds.H, "dpr", m.dpr)
	return nil
}

// Unmount cancels the pending frame and detaches all listeners. It is safe
// to call more than once.
func (m *Manager) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tornDown {
		return
	}
	m.tornDown = true

	if m.frame != 0 {
		m.host.CancelFrame(m.frame)
		m.frame = 0
	}
	if m.removeResize != nil {
		m.removeResize()
		m.removeResize = nil
	}
	if m.removePointer != nil {
		m.removePointer()
		m.removePointer = nil
	}
	m.log.Debug("unmount", "ticks", m.ticks)
}

func (m *Manager) handleResize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resize()
}

func (m *Manager) resize() {
	if m.tornDown {
		return
	}
	c, ok := m.host.Canvas()
	if !ok {
		return
	}
	w, h := m.host.Bounds()
	if w <= 0 || h <= 0 {
		m.log.Debug("ignoring empty surface size", "width", w, "height", h)
		return
	}

	dpr := math.Min(m.host.PixelRatio(), m.maxDPR)
	if dpr <= 0 {
		dpr = 1
	}
	c.SetBackingSize(int(math.Round(w*dpr)), int(math.Round(h*dpr)))
	c.SetScale(dpr)

	m.bounds = scene.Bounds{W: w, H: h}
	m.dpr = dpr

	if m.scene == nil {
		m.scene = scene.Populate(w, h, m.opts.Scene, m.rng)
		m.log.Debug("populate", "particles", len(m.scene.Particles), "wave_points", len(m.scene.Wave))
		return
	}
	m.log.Debug("resize", "width", w, "height", h, "dpr", dpr)
}

func (m *Manager) handlePointer(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tornDown {
		return
	}
	ox, oy := m.host.Origin()
	m.pointer = scene.Pointer{X: x - ox, Y: y - oy}
}

func (m *Manager) handleFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tornDown {
		return
	}
	m.frame = 0

	if c, ok := m.host.Canvas(); ok && m.scene != nil {
		m.stepper.Step(m.scene, m.bounds, m.pointer)
		m.renderer.Draw(c, m.scene, m.bounds)
		m.ticks++
		m.rendered = true
		for _, o := range m.opts.Observers {
			o.OnStep(m.scene, m.ticks)
		}
	}

	m.frame = m.host.RequestFrame(m.handleFrame)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.tornDown:
		return TornDown
	case m.scene == nil:
		return Uninitialized
	case m.rendered:
		return Running
	default:
		return Sized
	}
}

// Inert reports whether Mount found no canvas.
func (m *Manager) Inert() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inert
}

// Scene returns a copy of the current scene, or nil before the first
// successful sizing.
func (m *Manager) Scene() *scene.Scene {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scene == nil {
		return nil
	}
	return m.scene.Clone()
}

func (m *Manager) Bounds() scene.Bounds {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bounds
}

func (m *Manager) Pointer() scene.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointer
}

func (m *Manager) PixelRatio() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dpr
}

// Ticks is the number of frames stepped and drawn so far.
func (m *Manager) Ticks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

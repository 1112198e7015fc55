package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/heroviz/internal/metrics"
	"github.com/san-kum/heroviz/internal/sim"
	"github.com/san-kum/heroviz/internal/surface"
)

const (
	headerRows  = 1
	panelWidth  = 36
	historySize = 120
)

type Options struct {
	Title string
	FPS   int
	// Scale is the number of logical units per Braille dot.
	Scale     float64
	Theme     string
	ShowStats bool
}

type FrameMsg time.Time

// Model is a Bubble Tea program acting as a surface host. The canvas sits
// below a one-line header; the stats panel, when shown, sits to its right.
type Model struct {
	surface.FrameQueue
	surface.Events

	opts      Options
	braille   *BrailleSurface
	mgr       *surface.Manager
	theme     Theme
	speed     *metrics.Telemetry
	links     *metrics.Telemetry
	cols      int
	rows      int
	paused    bool
	showStats bool
}

func NewModel(o Options) *Model {
	if o.Scale <= 0 {
		o.Scale = 5
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	return &Model{
		opts:      o,
		braille:   NewBrailleSurface(),
		theme:     GetTheme(o.Theme),
		speed:     metrics.NewTelemetry(metrics.NewMeanSpeed(), historySize),
		showStats: o.ShowStats,
	}
}

// Attach creates the manager for this model and mounts it.
func (m *Model) Attach(mo surface.Options) error {
	m.links = metrics.NewTelemetry(metrics.NewLinkCount(mo.Render.ConnectionDistance), historySize)
	mo.Observers = append(append([]sim.Observer(nil), mo.Observers...), m.speed, m.links)
	m.mgr = surface.NewManager(m, mo)
	return m.mgr.Mount()
}

func (m *Model) Detach() {
	if m.mgr != nil {
		m.mgr.Unmount()
	}
}

// Run starts the terminal program and blocks until it exits.
func Run(o Options, mo surface.Options) error {
	m := NewModel(o)
	if err := m.Attach(mo); err != nil {
		return fmt.Errorf("mount terminal surface: %w", err)
	}
	defer m.Detach()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal program: %w", err)
	}
	return nil
}

func (m *Model) Canvas() (surface.Canvas, bool) { return m.braille, true }

// Bounds is the canvas size in logical units.
func (m *Model) Bounds() (float64, float64) {
	k := m.opts.Scale
	return float64(m.cols*2) * k, float64(m.rows*4) * k
}

// Origin is the canvas corner in the same units Bounds uses, measured
// from the terminal's top-left cell.
func (m *Model) Origin() (float64, float64) {
	return 0, float64(headerRows*4) * m.opts.Scale
}

func (m *Model) PixelRatio() float64 { return 1 / m.opts.Scale }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return FrameMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "t":
			m.theme = NextTheme(m.theme)
		case "s":
			m.showStats = !m.showStats
			m.layout(m.termSize())
		}
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
	case tea.MouseMsg:
		// Aim at the middle of the cell's dot block.
		k := m.opts.Scale
		m.EmitPointer(float64(msg.X*2+1)*k, float64(msg.Y*4+2)*k)
	case FrameMsg:
		if !m.paused {
			m.Flush()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) termSize() (int, int) {
	w := m.cols
	if !m.showStats {
		w += panelWidth
	}
	return w, m.rows + headerRows
}

func (m *Model) layout(w, h int) {
	cols := w
	if m.showStats {
		cols -= panelWidth
	}
	m.cols, m.rows = max(cols, 0), max(h-headerRows, 0)
	m.EmitResize()
}

func (m *Model) View() string {
	var status string
	if m.paused {
		status = m.theme.paused().Render("PAUSED")
	} else {
		status = m.theme.running().Render("RUNNING")
	}
	header := GradientText(strings.ToUpper(m.opts.Title), m.theme.Title, m.theme.Accent) + "  " + status

	canvas := strings.TrimSuffix(m.braille.Canvas().Render(m.theme), "\n")
	if !m.showStats {
		return header + "\n" + canvas
	}
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.statsView())
}

func (m *Model) statsView() string {
	th := m.theme
	var s strings.Builder

	row := func(label, value string) {
		s.WriteString(th.label().Render(label) + th.value().Render(value) + "\n")
	}
	if m.mgr != nil {
		b := m.mgr.Bounds()
		row("Ticks", fmt.Sprintf("%d", m.mgr.Ticks()))
		row("Surface", fmt.Sprintf("%.0fx%.0f", b.W, b.H))
		p := m.mgr.Pointer()
		row("Pointer", fmt.Sprintf("%.0f, %.0f", p.X, p.Y))
	}
	row("Speed", fmt.Sprintf("%.3f", m.speed.Last()))
	if m.links != nil {
		row("Links", fmt.Sprintf("%.0f", m.links.Last()))
	}
	row("Theme", th.Name)

	if vals := m.speed.Values(); len(vals) > 1 {
		chart := asciigraph.Plot(vals, asciigraph.Height(5), asciigraph.Width(24), asciigraph.Caption("mean speed"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Accent).Render(chart) + "\n")
	}
	if m.links != nil {
		s.WriteString("\n" + th.label().Render("links") + Sparkline(m.links.Values(), 20) + "\n")
	}

	s.WriteString("\n" + th.hint().Render("SP:Pause T:Theme S:Stats Q:Quit"))
	return th.panel().Render(s.String())
}

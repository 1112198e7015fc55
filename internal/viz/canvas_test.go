package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) {
		t.Error("expected (3, 3) set")
	}

	c.Unset(3, 3)
	if c.Grid[0][1] != blank {
		t.Errorf("expected blank cell after unset, got %U", c.Grid[0][1])
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}} {
		c.Set(p[0], p[1])
		c.Paint(p[0], p[1], scene.Blue, 1)
	}
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("expected out of range dots to be dropped")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7, scene.Cyan, 0.5)

	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("expected diagonal dot (%d, %d) set", i, i)
		}
	}
	if c.Ink[1][3] != scene.Cyan {
		t.Errorf("expected cyan ink, got %+v", c.Ink[1][3])
	}
}

func TestCanvasPaintKeepsStrongestInk(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Paint(0, 0, scene.Blue, 0.2)
	c.Paint(1, 0, scene.Violet, 0.8)
	c.Paint(0, 1, scene.Cyan, 0.1)

	if c.Ink[0][0] != scene.Violet {
		t.Errorf("expected violet ink, got %+v", c.Ink[0][0])
	}

	c.Clear()
	c.Paint(0, 0, scene.Cyan, 0.1)
	if c.Ink[0][0] != scene.Cyan {
		t.Error("expected clear to reset ink weight")
	}
}

func TestCanvasRenderWidth(t *testing.T) {
	c := NewCanvas(6, 3)
	c.DrawLine(0, 0, 11, 11, scene.Blue, 1)
	c.Paint(1, 1, scene.Violet, 1)

	lines := strings.Split(strings.TrimSuffix(c.Render(ThemeHero), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 6 {
			t.Errorf("line %d: expected width 6, got %d", i, w)
		}
	}
}

func TestBrailleSurfaceBacking(t *testing.T) {
	s := NewBrailleSurface()
	s.SetBackingSize(80, 40)
	if s.Canvas().Width != 40 || s.Canvas().Height != 10 {
		t.Errorf("expected 40x10 cells, got %dx%d", s.Canvas().Width, s.Canvas().Height)
	}

	s.SetBackingSize(81, 41)
	if s.Canvas().Width != 41 || s.Canvas().Height != 11 {
		t.Errorf("expected partial cells to round up, got %dx%d", s.Canvas().Width, s.Canvas().Height)
	}
}

func TestBrailleSurfaceDrawing(t *testing.T) {
	s := NewBrailleSurface()
	s.SetBackingSize(40, 40)
	s.SetScale(0.2)

	s.FillCircle(50, 50, 1, render.RGBA(scene.Blue, 0.9))
	if !s.Canvas().IsSet(10, 10) {
		t.Error("expected a small circle to light its dot")
	}

	s.StrokeLine(0, 100, 100, 100, 1, render.RGBA(scene.Cyan, 0.001))
	if s.Canvas().IsSet(10, 20) {
		t.Error("expected a near-transparent line to be skipped")
	}

	s.StrokePath([]render.Point{{X: 0, Y: 150}, {X: 150, Y: 150}}, 1, render.RGBA(scene.Cyan, 0.1))
	for x := 0; x <= 30; x++ {
		if !s.Canvas().IsSet(x, 30) {
			t.Fatalf("expected path dot (%d, 30) set", x)
		}
	}

	s.Clear(200, 200)
	if s.Canvas().IsSet(10, 10) {
		t.Error("expected clear to erase dots")
	}
}

func TestBrailleSurfaceGlow(t *testing.T) {
	s := NewBrailleSurface()
	s.SetBackingSize(40, 40)
	s.SetScale(1)

	stops := []render.Stop{
		{Offset: 0, Color: render.RGBA(scene.Blue, 0.8)},
		{Offset: 0.5, Color: render.RGBA(scene.Blue, 0.2)},
		{Offset: 1, Color: render.RGBA(scene.Blue, 0)},
	}
	s.FillGlow(20, 20, 10, stops)

	if !s.Canvas().IsSet(20, 20) {
		t.Error("expected glow centre lit")
	}
	if s.Canvas().IsSet(29, 20) {
		t.Error("expected faint glow rim left dark")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("expected flat line for no data, got %q", got)
	}
	if got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4); got != "▁▃▅█" {
		t.Errorf("expected last 4 values scaled, got %q", got)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "hero" {
		t.Error("expected fallback to hero theme")
	}
	if NextTheme(ThemeSunset).Name != ThemeHero.Name {
		t.Error("expected theme cycle to wrap")
	}
	if got := ThemeHero.Tint(scene.Blue); got != lipgloss.Color("#3b82f6") {
		t.Errorf("expected hero theme to keep colors, got %v", got)
	}
	g := ThemeMono.Tint(scene.Violet)
	r, gg, b := parseHex(string(g))
	if r != gg || gg != b {
		t.Errorf("expected mono tint to be gray, got %v", g)
	}
}

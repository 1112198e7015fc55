package viz

import (
	"math"

	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
)

// Ink below these alphas is not drawn; terminals have no partial dots.
const (
	minLineAlpha = 0.02
	glowCutoff   = 0.3
)

// BrailleSurface draws onto a Canvas. Its backing size is in dots and its
// scale maps logical units to dots.
type BrailleSurface struct {
	canvas *Canvas
	scale  float64
}

func NewBrailleSurface() *BrailleSurface {
	return &BrailleSurface{canvas: NewCanvas(0, 0), scale: 1}
}

func (s *BrailleSurface) Canvas() *Canvas { return s.canvas }

// SetBackingSize resizes the canvas to hold at least w x h dots.
func (s *BrailleSurface) SetBackingSize(w, h int) {
	cols, rows := (w+1)/2, (h+3)/4
	if cols == s.canvas.Width && rows == s.canvas.Height {
		return
	}
	s.canvas.Resize(cols, rows)
}

func (s *BrailleSurface) SetScale(v float64) { s.scale = v }

func (s *BrailleSurface) dot(x, y float64) (int, int) {
	return int(math.Floor(x * s.scale)), int(math.Floor(y * s.scale))
}

func rgb(c render.Color) scene.RGB { return scene.RGB{R: c.R, G: c.G, B: c.B} }

func (s *BrailleSurface) Clear(w, h float64) {
	s.canvas.Clear()
}

func (s *BrailleSurface) StrokeLine(x0, y0, x1, y1, width float64, c render.Color) {
	if c.A < minLineAlpha {
		return
	}
	ax, ay := s.dot(x0, y0)
	bx, by := s.dot(x1, y1)
	s.canvas.DrawLine(ax, ay, bx, by, rgb(c), c.A)
}

func (s *BrailleSurface) FillCircle(x, y, r float64, c render.Color) {
	s.disc(x, y, r, rgb(c), c.A)
}

// FillGlow lights the part of the glow whose alpha clears glowCutoff.
func (s *BrailleSurface) FillGlow(x, y, r float64, stops []render.Stop) {
	if len(stops) == 0 || r <= 0 {
		return
	}
	reach := 0.0
	for t := 0.0; t <= 1; t += 0.05 {
		if render.Lerp(stops, t).A < glowCutoff {
			break
		}
		reach = t
	}
	if reach == 0 {
		return
	}
	c := stops[0].Color
	s.disc(x, y, r*reach, rgb(c), c.A*glowCutoff)
}

func (s *BrailleSurface) disc(x, y, r float64, c scene.RGB, weight float64) {
	cx, cy := x*s.scale, y*s.scale
	rd := r * s.scale
	if rd < 0.75 {
		px, py := s.dot(x, y)
		s.canvas.Paint(px, py, c, weight)
		return
	}
	for dy := -int(math.Ceil(rd)); dy <= int(math.Ceil(rd)); dy++ {
		for dx := -int(math.Ceil(rd)); dx <= int(math.Ceil(rd)); dx++ {
			px, py := math.Floor(cx)+float64(dx), math.Floor(cy)+float64(dy)
			if math.Hypot(px+0.5-cx, py+0.5-cy) <= rd {
				s.canvas.Paint(int(px), int(py), c, weight)
			}
		}
	}
}

func (s *BrailleSurface) StrokePath(pts []render.Point, width float64, c render.Color) {
	col := rgb(c)
	for i := 1; i < len(pts); i++ {
		ax, ay := s.dot(pts[i-1].X, pts[i-1].Y)
		bx, by := s.dot(pts[i].X, pts[i].Y)
		s.canvas.DrawLine(ax, ay, bx, by, col, c.A)
	}
}

package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/heroviz/internal/scene"
)

// Color is an RGB triple with a fractional alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

func RGBA(c scene.RGB, a float64) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: a}
}

// NRGBA converts to a non-premultiplied color for pixel backends.
func (c Color) NRGBA() color.NRGBA {
	a := math.Max(0, math.Min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

// CSS formats the color the way an HTML canvas or SVG expects it.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", c.R, c.G, c.B, c.A)
}

// Stop is one color stop of a radial gradient. Offset runs from 0 at the
// centre to 1 at the rim.
type Stop struct {
	Offset float64
	Color  Color
}

type Point struct {
	X, Y float64
}

// Surface is a 2D drawing target in logical coordinates. Implementations
// must not retain the slices passed to them.
type Surface interface {
	Clear(w, h float64)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	FillCircle(x, y, r float64, c Color)
	// FillGlow fills a disc of radius r with a radial gradient.
	FillGlow(x, y, r float64, stops []Stop)
	StrokePath(pts []Point, width float64, c Color)
}

// Lerp interpolates between the two stops surrounding offset t.
func Lerp(stops []Stop, t float64) Color {
	if len(stops) == 0 {
		return Color{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			f := 0.0
			if span > 0 {
				f = (t - a.Offset) / span
			}
			return Color{
				R: lerp8(a.Color.R, b.Color.R, f),
				G: lerp8(a.Color.G, b.Color.G, f),
				B: lerp8(a.Color.B, b.Color.B, f),
				A: a.Color.A + (b.Color.A-a.Color.A)*f,
			}
		}
	}
	return stops[len(stops)-1].Color
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

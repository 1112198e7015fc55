package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
)

const glowSteps = 8

// imageCanvas draws into an offscreen ebiten image in physical pixels.
type imageCanvas struct {
	img        *ebiten.Image
	scale      float64
	background color.NRGBA
}

func newImageCanvas(bg scene.RGB) *imageCanvas {
	return &imageCanvas{scale: 1, background: color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}}
}

func (c *imageCanvas) size() (int, int) {
	if c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *imageCanvas) SetBackingSize(w, h int) {
	if cw, ch := c.size(); cw == w && ch == h {
		return
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
}

func (c *imageCanvas) SetScale(s float64) { c.scale = s }

func (c *imageCanvas) present(screen *ebiten.Image) {
	if c.img == nil {
		screen.Fill(c.background)
		return
	}
	screen.DrawImage(c.img, nil)
}

func (c *imageCanvas) Clear(w, h float64) {
	if c.img != nil {
		c.img.Fill(c.background)
	}
}

func (c *imageCanvas) StrokeLine(x0, y0, x1, y1, width float64, col render.Color) {
	if c.img == nil {
		return
	}
	s := c.scale
	vector.StrokeLine(c.img, float32(x0*s), float32(y0*s), float32(x1*s), float32(y1*s), float32(width*s), col.NRGBA(), true)
}

func (c *imageCanvas) FillCircle(x, y, r float64, col render.Color) {
	if c.img == nil {
		return
	}
	s := c.scale
	vector.DrawFilledCircle(c.img, float32(x*s), float32(y*s), float32(r*s), col.NRGBA(), true)
}

// FillGlow stacks translucent discs from the rim inwards. Their alpha
// accumulates towards the centre, which approximates the gradient.
func (c *imageCanvas) FillGlow(x, y, r float64, stops []render.Stop) {
	if c.img == nil || r <= 0 {
		return
	}
	s := c.scale
	for k := glowSteps; k >= 1; k-- {
		t := float64(k) / glowSteps
		col := render.Lerp(stops, t-0.5/glowSteps)
		col.A *= 2.0 / glowSteps
		vector.DrawFilledCircle(c.img, float32(x*s), float32(y*s), float32(r*t*s), col.NRGBA(), true)
	}
}

func (c *imageCanvas) StrokePath(pts []render.Point, width float64, col render.Color) {
	if c.img == nil {
		return
	}
	s := c.scale
	clr := col.NRGBA()
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(c.img, float32(a.X*s), float32(a.Y*s), float32(b.X*s), float32(b.Y*s), float32(width*s), clr, true)
	}
}

package export

import (
	"fmt"
	"image/png"
	"io"
	"math"

	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// PNGCanvas rasterizes with an HTML-canvas style software renderer.
type PNGCanvas struct {
	background scene.RGB
	backend    *softwarebackend.SoftwareBackend
	cv         *canvas.Canvas
	scale      float64
}

func NewPNGCanvas(bg scene.RGB) *PNGCanvas {
	return &PNGCanvas{background: bg, scale: 1}
}

// SetBackingSize recreates the raster. The previous frame is lost, as it
// is when a browser canvas is resized.
func (c *PNGCanvas) SetBackingSize(w, h int) {
	if c.backend != nil && c.backend.Image.Bounds().Dx() == w && c.backend.Image.Bounds().Dy() == h {
		return
	}
	c.backend = softwarebackend.New(w, h)
	c.cv = canvas.New(c.backend)
	c.applyScale()
}

func (c *PNGCanvas) SetScale(s float64) {
	c.scale = s
	c.applyScale()
}

func (c *PNGCanvas) applyScale() {
	if c.cv != nil {
		c.cv.SetTransform(c.scale, 0, 0, c.scale, 0, 0)
	}
}

func (c *PNGCanvas) Clear(w, h float64) {
	if c.cv == nil {
		return
	}
	c.cv.ClearRect(0, 0, w, h)
	c.cv.SetFillStyle(render.RGBA(c.background, 1).NRGBA())
	c.cv.FillRect(0, 0, w, h)
}

func (c *PNGCanvas) StrokeLine(x0, y0, x1, y1, width float64, col render.Color) {
	if c.cv == nil {
		return
	}
	c.cv.SetStrokeStyle(col.NRGBA())
	c.cv.SetLineWidth(width)
	c.cv.BeginPath()
	c.cv.MoveTo(x0, y0)
	c.cv.LineTo(x1, y1)
	c.cv.Stroke()
}

func (c *PNGCanvas) FillCircle(x, y, r float64, col render.Color) {
	if c.cv == nil {
		return
	}
	c.cv.SetFillStyle(col.NRGBA())
	c.cv.BeginPath()
	c.cv.Arc(x, y, r, 0, 2*math.Pi, false)
	c.cv.Fill()
}

func (c *PNGCanvas) FillGlow(x, y, r float64, stops []render.Stop) {
	if c.cv == nil {
		return
	}
	g := c.cv.CreateRadialGradient(x, y, 0, x, y, r)
	for _, s := range stops {
		g.AddColorStop(s.Offset, s.Color.NRGBA())
	}
	c.cv.SetFillStyle(g)
	c.cv.BeginPath()
	c.cv.Arc(x, y, r, 0, 2*math.Pi, false)
	c.cv.Fill()
}

func (c *PNGCanvas) StrokePath(pts []render.Point, width float64, col render.Color) {
	if c.cv == nil || len(pts) < 2 {
		return
	}
	c.cv.SetStrokeStyle(col.NRGBA())
	c.cv.SetLineWidth(width)
	c.cv.BeginPath()
	c.cv.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.cv.LineTo(p.X, p.Y)
	}
	c.cv.Stroke()
}

// WriteTo encodes the current frame as PNG.
func (c *PNGCanvas) WriteTo(w io.Writer) (int64, error) {
	if c.backend == nil {
		return 0, fmt.Errorf("%w: png canvas was never sized", ErrNotRendered)
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, c.backend.Image)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/viz"
)

// SVGCanvas records drawing calls as SVG elements. Radial glows become
// gradient definitions.
type SVGCanvas struct {
	background scene.RGB
	w, h       int
	scale      float64
	defs       strings.Builder
	body       strings.Builder
	gradients  int
}

func NewSVGCanvas(bg scene.RGB) *SVGCanvas {
	return &SVGCanvas{background: bg, scale: 1}
}

func (c *SVGCanvas) SetBackingSize(w, h int) { c.w, c.h = w, h }
func (c *SVGCanvas) SetScale(s float64)      { c.scale = s }

func fill(col render.Color) string {
	return fmt.Sprintf(`fill="rgb(%d,%d,%d)" fill-opacity="%.3f"`, col.R, col.G, col.B, col.A)
}

func stroke(col render.Color, width float64) string {
	return fmt.Sprintf(`fill="none" stroke="rgb(%d,%d,%d)" stroke-opacity="%.3f" stroke-width="%.2f"`, col.R, col.G, col.B, col.A, width)
}

func (c *SVGCanvas) Clear(w, h float64) {
	c.defs.Reset()
	c.body.Reset()
	c.gradients = 0
	bg := render.RGBA(c.background, 1)
	fmt.Fprintf(&c.body, "<rect width=\"%.1f\" height=\"%.1f\" %s/>\n", w, h, fill(bg))
}

func (c *SVGCanvas) StrokeLine(x0, y0, x1, y1, width float64, col render.Color) {
	fmt.Fprintf(&c.body, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" %s/>\n", x0, y0, x1, y1, stroke(col, width))
}

func (c *SVGCanvas) FillCircle(x, y, r float64, col render.Color) {
	fmt.Fprintf(&c.body, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" %s/>\n", x, y, r, fill(col))
}

func (c *SVGCanvas) FillGlow(x, y, r float64, stops []render.Stop) {
	c.gradients++
	id := fmt.Sprintf("g%d", c.gradients)
	fmt.Fprintf(&c.defs, "<radialGradient id=\"%s\">", id)
	for _, s := range stops {
		fmt.Fprintf(&c.defs, `<stop offset="%.2f" stop-color="rgb(%d,%d,%d)" stop-opacity="%.3f"/>`,
			s.Offset, s.Color.R, s.Color.G, s.Color.B, s.Color.A)
	}
	c.defs.WriteString("</radialGradient>\n")
	fmt.Fprintf(&c.body, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"url(#%s)\"/>\n", x, y, r, id)
}

func (c *SVGCanvas) StrokePath(pts []render.Point, width float64, col render.Color) {
	if len(pts) < 2 {
		return
	}
	c.body.WriteString(`<path d="M`)
	for i, p := range pts {
		if i > 0 {
			c.body.WriteString(" L")
		}
		fmt.Fprintf(&c.body, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(&c.body, "\" %s/>\n", stroke(col, width))
}

// WriteTo writes the current frame as a standalone SVG document sized to
// the backing store.
func (c *SVGCanvas) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<defs>
%s</defs>
<g transform="scale(%g)">
%s</g>
</svg>
`, c.w, c.h, c.w, c.h, c.defs.String(), c.scale, c.body.String())
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot in
// the color of its cell. scale is the dot pitch in SVG units.
func CanvasToSVG(canvas *viz.Canvas, scale float64, bg scene.RGB) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="rgb(%d,%d,%d)"/>
`, width, height, width, height, bg.R, bg.G, bg.B)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			ink := canvas.Ink[row][col]
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x, y := col*2+dx, row*4+dy
					if !canvas.IsSet(x, y) {
						continue
					}
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"rgb(%d,%d,%d)\"/>\n",
						float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, ink.R, ink.G, ink.B)
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

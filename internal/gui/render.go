package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
)

// textureCanvas draws into a render texture sized in physical pixels.
// Logical coordinates are multiplied by scale on the way in.
type textureCanvas struct {
	target     rl.RenderTexture2D
	loaded     bool
	w, h       int32
	scale      float32
	background rl.Color
}

func newTextureCanvas(bg scene.RGB) *textureCanvas {
	return &textureCanvas{scale: 1, background: rl.NewColor(bg.R, bg.G, bg.B, 255)}
}

func (c *textureCanvas) SetBackingSize(w, h int) {
	if c.loaded && c.w == int32(w) && c.h == int32(h) {
		return
	}
	c.unload()
	c.w, c.h = int32(w), int32(h)
	c.target = rl.LoadRenderTexture(c.w, c.h)
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
	c.loaded = true
}

func (c *textureCanvas) SetScale(s float64) { c.scale = float32(s) }

func (c *textureCanvas) unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}

// blit draws the texture over the whole screen. Render textures are stored
// upside down, hence the negative source height.
func (c *textureCanvas) blit(screenW, screenH float32) {
	if !c.loaded {
		return
	}
	src := rl.NewRectangle(0, 0, float32(c.w), -float32(c.h))
	dst := rl.NewRectangle(0, 0, screenW, screenH)
	rl.DrawTexturePro(c.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (c *textureCanvas) pt(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(x)*c.scale, float32(y)*c.scale)
}

func toColor(col render.Color) rl.Color {
	n := col.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

func (c *textureCanvas) Clear(w, h float64) {
	rl.ClearBackground(c.background)
}

func (c *textureCanvas) StrokeLine(x0, y0, x1, y1, width float64, col render.Color) {
	rl.DrawLineEx(c.pt(x0, y0), c.pt(x1, y1), float32(width)*c.scale, toColor(col))
}

func (c *textureCanvas) FillCircle(x, y, r float64, col render.Color) {
	rl.DrawCircleV(c.pt(x, y), float32(r)*c.scale, toColor(col))
}

// FillGlow approximates a multi-stop radial gradient with one two-color
// gradient disc per band, drawn outermost first.
func (c *textureCanvas) FillGlow(x, y, r float64, stops []render.Stop) {
	p := c.pt(x, y)
	for i := len(stops) - 1; i > 0; i-- {
		inner, outer := stops[i-1], stops[i]
		radius := float32(r*outer.Offset) * c.scale
		if radius <= 0 {
			continue
		}
		rl.DrawCircleGradient(int32(p.X), int32(p.Y), radius, toColor(inner.Color), toColor(outer.Color))
	}
}

func (c *textureCanvas) StrokePath(pts []render.Point, width float64, col render.Color) {
	rc := toColor(col)
	thick := float32(width) * c.scale
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(c.pt(pts[i-1].X, pts[i-1].Y), c.pt(pts[i].X, pts[i].Y), thick, rc)
	}
}

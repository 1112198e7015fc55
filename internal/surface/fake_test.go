package surface_test

import (
	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/surface"
)

type fakeCanvas struct {
	backingW, backingH int
	scale              float64
	scaleCalls         int
	clears             int
	draws              int
}

func (c *fakeCanvas) SetBackingSize(w, h int) { c.backingW, c.backingH = w, h }

func (c *fakeCanvas) SetScale(s float64) {
	c.scale = s
	c.scaleCalls++
}

func (c *fakeCanvas) Clear(w, h float64)                                      { c.clears++ }
func (c *fakeCanvas) StrokeLine(x0, y0, x1, y1, width float64, _ render.Color) { c.draws++ }
func (c *fakeCanvas) FillCircle(x, y, r float64, _ render.Color)              { c.draws++ }
func (c *fakeCanvas) FillGlow(x, y, r float64, _ []render.Stop)               { c.draws++ }
func (c *fakeCanvas) StrokePath(_ []render.Point, width float64, _ render.Color) {
	c.draws++
}

type fakeHost struct {
	surface.FrameQueue
	surface.Events

	canvas    *fakeCanvas
	hasCanvas bool
	w, h      float64
	ox, oy    float64
	dpr       float64

	lastFrame func()
}

func newFakeHost(w, h, dpr float64) *fakeHost {
	return &fakeHost{canvas: &fakeCanvas{}, hasCanvas: true, w: w, h: h, dpr: dpr}
}

func (h *fakeHost) Canvas() (surface.Canvas, bool) {
	if !h.hasCanvas {
		return nil, false
	}
	return h.canvas, true
}

func (h *fakeHost) Bounds() (float64, float64) { return h.w, h.h }
func (h *fakeHost) Origin() (float64, float64) { return h.ox, h.oy }
func (h *fakeHost) PixelRatio() float64        { return h.dpr }

func (h *fakeHost) RequestFrame(fn func()) surface.FrameID {
	h.lastFrame = fn
	return h.FrameQueue.RequestFrame(fn)
}

func (h *fakeHost) resizeTo(w, hh float64) {
	h.w, h.h = w, hh
	h.EmitResize()
}

type tickCounter struct {
	ticks []int
}

func (c *tickCounter) OnStep(_ *scene.Scene, tick int) { c.ticks = append(c.ticks, tick) }

// Package export renders scenes without a display, to SVG and PNG files.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/sim"
	"github.com/san-kum/heroviz/internal/surface"
	"github.com/san-kum/heroviz/internal/viz"
)

var (
	ErrNotRendered   = errors.New("export: nothing rendered")
	ErrInvalidFormat = errors.New("export: unknown format")
)

// Headless is a surface host with a fixed size and no window. Frames run
// only when Flush is called.
type Headless struct {
	surface.FrameQueue
	surface.Events

	canvas surface.Canvas
	w, h   float64
	dpr    float64
}

func NewHeadless(c surface.Canvas, w, h, dpr float64) *Headless {
	return &Headless{canvas: c, w: w, h: h, dpr: dpr}
}

func (h *Headless) Canvas() (surface.Canvas, bool) { return h.canvas, h.canvas != nil }
func (h *Headless) Bounds() (float64, float64)     { return h.w, h.h }
func (h *Headless) Origin() (float64, float64)     { return 0, 0 }
func (h *Headless) PixelRatio() float64            { return h.dpr }

// Resize changes the size and notifies listeners.
func (h *Headless) Resize(w, hh float64) {
	h.w, h.h = w, hh
	h.EmitResize()
}

type Snapshot struct {
	Width      float64
	Height     float64
	PixelRatio float64
	Ticks      int
	// Pointer, when set, moves the pointer before every frame.
	Pointer    sim.PointerPath
	Background scene.RGB
}

// Render mounts a manager on c, runs snap.Ticks frames and returns the
// final scene. The canvas holds the last frame afterwards.
func Render(c surface.Canvas, snap Snapshot, opts surface.Options) (*scene.Scene, error) {
	if snap.Ticks < 1 {
		return nil, fmt.Errorf("%w: ticks must be positive, got %d", ErrNotRendered, snap.Ticks)
	}
	dpr := snap.PixelRatio
	if dpr <= 0 {
		dpr = 1
	}

	h := NewHeadless(c, snap.Width, snap.Height, dpr)
	mgr := surface.NewManager(h, opts)
	if err := mgr.Mount(); err != nil {
		return nil, fmt.Errorf("mount headless surface: %w", err)
	}
	defer mgr.Unmount()

	if mgr.Scene() == nil {
		return nil, fmt.Errorf("%w: surface %.0fx%.0f is empty", ErrNotRendered, snap.Width, snap.Height)
	}

	b := mgr.Bounds()
	for i := 0; i < snap.Ticks; i++ {
		if snap.Pointer != nil {
			p := snap.Pointer(i, b)
			h.EmitPointer(p.X, p.Y)
		}
		h.Flush()
	}
	return mgr.Scene(), nil
}

// Format names an output encoding.
type Format string

const (
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatBraille Format = "braille"
)

// brailleDot is the SVG pitch of one Braille dot.
const brailleDot = 4.0

// Write renders snap and encodes the last frame to w.
func Write(w io.Writer, format Format, snap Snapshot, opts surface.Options) (*scene.Scene, error) {
	switch format {
	case FormatSVG:
		c := NewSVGCanvas(snap.Background)
		sc, err := Render(c, snap, opts)
		if err != nil {
			return nil, err
		}
		_, err = c.WriteTo(w)
		return sc, err
	case FormatPNG:
		c := NewPNGCanvas(snap.Background)
		sc, err := Render(c, snap, opts)
		if err != nil {
			return nil, err
		}
		_, err = c.WriteTo(w)
		return sc, err
	case FormatBraille:
		bs := viz.NewBrailleSurface()
		snap.PixelRatio = 1 / 5.0
		sc, err := Render(bs, snap, opts)
		if err != nil {
			return nil, err
		}
		_, err = io.WriteString(w, CanvasToSVG(bs.Canvas(), brailleDot, snap.Background))
		return sc, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

package surface

import "github.com/san-kum/heroviz/internal/render"

// FrameID identifies a requested frame. Zero is never issued.
type FrameID uint64

// Canvas is a render.Surface with a physical backing store.
type Canvas interface {
	render.Surface
	// SetBackingSize resizes the backing store in physical pixels.
	SetBackingSize(w, h int)
	// SetScale sets the logical-to-physical transform. It replaces any
	// previous scale.
	SetScale(s float64)
}

type Host interface {
	// Canvas reports the host's canvas, or false when there is none yet
	// or it has gone away.
	Canvas() (Canvas, bool)
	// Bounds is the displayed size of the surface in logical units.
	Bounds() (w, h float64)
	// Origin is the surface's top-left corner in the coordinate space of
	// pointer events.
	Origin() (x, y float64)
	PixelRatio() float64

	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)

	OnResize(fn func()) (remove func())
	OnPointerMove(fn func(x, y float64)) (remove func())
}

package metrics

import (
	"github.com/san-kum/heroviz/internal/render"
	"github.com/san-kum/heroviz/internal/scene"
)

// LinkCount is the number of connections drawn in the latest tick.
type LinkCount struct {
	name    string
	maxDist float64
	links   []render.Link
}

func NewLinkCount(maxDist float64) *LinkCount {
	return &LinkCount{name: "links", maxDist: maxDist}
}

func (l *LinkCount) Name() string { return l.name }

func (l *LinkCount) Observe(sc *scene.Scene) {
	l.links = render.AppendLinks(l.links[:0], sc.Particles, l.maxDist, 1)
}

func (l *LinkCount) Value() float64 { return float64(len(l.links)) }
func (l *LinkCount) Reset()         { l.links = l.links[:0] }

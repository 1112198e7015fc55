package render

import (
	"math"

	"github.com/san-kum/heroviz/internal/scene"
)

// Link is a rendered connection between particles I and J (I < J, indices
// into the scene's particle slice).
type Link struct {
	I, J  int
	Dist  float64
	Alpha float64
}

// ConnectionOpacity falls off linearly from peak at distance zero to zero
// at maxDist and stays zero beyond it.
func ConnectionOpacity(dist, maxDist, peak float64) float64 {
	if dist >= maxDist || maxDist <= 0 {
		return 0
	}
	return (1 - dist/maxDist) * peak
}

// AppendLinks appends one Link for every unordered pair of linkable
// particles closer than maxDist. Ambient particles never link. The scan is
// brute force; the linkable population is a few dozen particles.
func AppendLinks(dst []Link, ps []scene.Particle, maxDist, peak float64) []Link {
	for i := range ps {
		if !ps[i].Linked() {
			continue
		}
		for j := i + 1; j < len(ps); j++ {
			if !ps[j].Linked() {
				continue
			}
			dx := ps[i].X - ps[j].X
			dy := ps[i].Y - ps[j].Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < maxDist {
				dst = append(dst, Link{I: i, J: j, Dist: dist, Alpha: ConnectionOpacity(dist, maxDist, peak)})
			}
		}
	}
	return dst
}

// PulsePosition is where along the link, as a fraction from I to J, the
// traveling dot sits at time t. Each pair gets its own phase.
func PulsePosition(t float64, i, j int, rate float64) float64 {
	return (math.Sin(t*rate+float64(i)+float64(j)) + 1) / 2
}

package palette

import (
	"math"

	"github.com/tessella/tessella/src/colorspace"
)

// Nearest returns the symbol and index of the entry closest to c in the
// palette's perceptual space. When two entries are at exactly the same
// distance the one defined first wins.
func (p *Palette) Nearest(c colorspace.RGB) (Symbol, int) {
	return p.NearestCoord(p.space.ToPerceptual(c))
}

// NearestCoord is like Nearest for a point which is already converted.
func (p *Palette) NearestCoord(coord colorspace.Lab) (Symbol, int) {
	best := 0
	bestDist := math.Inf(1)

	for i := range p.entries {
		d := colorspace.Distance(coord, p.entries[i].Coord)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	return p.entries[best].Symbol, best
}

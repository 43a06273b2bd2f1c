// Package metrics measures how faithfully a symbol grid reproduces the image
// it was made from.
package metrics

import (
	"math"
	"sort"

	"github.com/tessella/tessella/src/colorspace"
	"github.com/tessella/tessella/src/grid"
)

// Report holds all quality metrics of one quantization.
type Report struct {
	DeltaE
	EdgeScore float64 `json:"edge_score"`
	Entropy   float64 `json:"entropy"`
}

// DeltaE summarizes the perceptual distance between the original and the
// quantized pixels.
type DeltaE struct {
	Mean float64 `json:"deltaE_mean"`
	P95  float64 `json:"deltaE_p95"`
	Max  float64 `json:"deltaE_max"`
}

// Compute returns the full report. A nil detector uses the default Sobel one.
func Compute(
	orig, quant *grid.PixelBuffer,
	counts grid.Counts,
	space colorspace.Space,
	detector EdgeDetector,
) Report {
	if detector == nil {
		detector = NewSobelDetector()
	}

	return Report{
		DeltaE:    PerceptualError(orig, quant, space),
		EdgeScore: EdgeScore(orig, quant, detector),
		Entropy:   Entropy(counts),
	}
}

// PerceptualError samples both buffers on a regular lattice and returns
// distance statistics in the given space. The lattice step is one hundredth of
// the smaller side, at least 1. Buffers must have the same size.
func PerceptualError(orig, quant *grid.PixelBuffer, space colorspace.Space) DeltaE {
	if orig.W == 0 || orig.H == 0 {
		return DeltaE{}
	}

	step := max(1, min(orig.H, orig.W)/100)

	distances := make([]float64, 0, ((orig.H+step-1)/step)*((orig.W+step-1)/step))
	for y := 0; y < orig.H; y += step {
		for x := 0; x < orig.W; x += step {
			d := colorspace.Distance(
				space.ToPerceptual(orig.At(x, y)),
				space.ToPerceptual(quant.At(x, y)),
			)
			distances = append(distances, d)
		}
	}

	sort.Float64s(distances)

	var sum float64
	for _, d := range distances {
		sum += d
	}

	return DeltaE{
		Mean: sum / float64(len(distances)),
		P95:  percentile(distances, 95),
		Max:  distances[len(distances)-1],
	}
}

// percentile interpolates linearly between the closest ranks of the sorted
// values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}

	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Entropy is the Shannon entropy in bits of the symbol distribution. It is 0
// for an empty grid and at most log2(7) for seven equally used symbols.
func Entropy(counts grid.Counts) float64 {
	total := counts.Total()
	if total == 0 {
		return 0
	}

	var h float64
	for _, n := range counts {
		p := float64(n) / float64(total)
		h -= p * math.Log2(p+1e-10)
	}
	return h
}

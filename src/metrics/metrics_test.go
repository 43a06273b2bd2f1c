package metrics_test

import (
	"math"
	"testing"

	"github.com/tessella/tessella/src/assert"
	"github.com/tessella/tessella/src/colorspace"
	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/metrics"
	"github.com/tessella/tessella/src/metrics/metricsfakes"
)

// TestEntropy checks the two extremes of the symbol distribution.
func TestEntropy(t *testing.T) {
	assert.InDelta(t, 0, metrics.Entropy(grid.Counts{}), 0)
	assert.InDelta(t, 0, metrics.Entropy(grid.Counts{0, 0, 500, 0, 0, 0, 0}), 1e-6)
	assert.InDelta(t, math.Log2(7), metrics.Entropy(grid.Counts{3, 3, 3, 3, 3, 3, 3}), 1e-6)
	assert.InDelta(t, 1, metrics.Entropy(grid.Counts{10, 10, 0, 0, 0, 0, 0}), 1e-6)
}

// TestPerceptualErrorIdentical makes sure identical buffers have no error.
func TestPerceptualErrorIdentical(t *testing.T) {
	buf := checkerboard(30, 30)
	de := metrics.PerceptualError(buf, buf, colorspace.OKLab)

	assert.InDelta(t, 0, de.Mean, 0)
	assert.InDelta(t, 0, de.P95, 0)
	assert.InDelta(t, 0, de.Max, 0)
}

// TestPerceptualErrorStatistics checks mean, percentile and max on a buffer
// with a known error distribution.
func TestPerceptualErrorStatistics(t *testing.T) {
	orig := grid.NewPixelBuffer(10, 2)
	quant := grid.NewPixelBuffer(10, 2)
	white := colorspace.RGB{R: 255, G: 255, B: 255}

	// Five of twenty pixels are off by black vs white, the distance is 1.
	for i := 0; i < 5; i++ {
		quant.Pix[i] = white
	}

	de := metrics.PerceptualError(orig, quant, colorspace.OKLab)
	assert.InDelta(t, 0.25, de.Mean, 1e-6)
	assert.InDelta(t, 1, de.Max, 1e-6)

	// Sorted there are 15 zeros and then 5 ones. The rank of p95 is 18.05.
	assert.InDelta(t, 1, de.P95, 1e-6)

	empty := metrics.PerceptualError(grid.NewPixelBuffer(0, 0), grid.NewPixelBuffer(0, 0), colorspace.CIELAB)
	assert.Equal(t, metrics.DeltaE{}, empty)
}

// TestPerceptualErrorSampling checks that large buffers are sampled on a lattice.
func TestPerceptualErrorSampling(t *testing.T) {
	orig := grid.NewPixelBuffer(200, 300)
	quant := grid.NewPixelBuffer(200, 300)

	// With a step of 2 only even rows and columns are looked at.
	for y := 0; y < quant.H; y++ {
		for x := 1; x < quant.W; x += 2 {
			quant.Set(x, y, colorspace.RGB{R: 255, G: 255, B: 255})
		}
	}

	de := metrics.PerceptualError(orig, quant, colorspace.OKLab)
	assert.InDelta(t, 0, de.Max, 0)
}

// TestEdgeScore checks the intersection over union with fake edge masks.
func TestEdgeScore(t *testing.T) {
	buf := grid.NewPixelBuffer(4, 1)

	tests := []struct {
		desc     string
		orig     []bool
		quant    []bool
		expected float64
	}{
		{
			desc:     "no edges in original",
			orig:     []bool{false, false, false, false},
			quant:    []bool{true, true, false, false},
			expected: 1,
		},
		{
			desc:     "identical",
			orig:     []bool{true, false, true, false},
			quant:    []bool{true, false, true, false},
			expected: 1,
		},
		{
			desc:     "half",
			orig:     []bool{true, true, false, false},
			quant:    []bool{true, false, false, false},
			expected: 0.5,
		},
		{
			desc:     "disjoint",
			orig:     []bool{true, false, false, false},
			quant:    []bool{false, true, false, false},
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			fake := &metricsfakes.FakeEdgeDetector{}
			fake.EdgesReturnsOnCall(0, test.orig)
			fake.EdgesReturnsOnCall(1, test.quant)

			score := metrics.EdgeScore(buf, buf, fake)
			assert.InDelta(t, test.expected, score, 1e-9)
			assert.Equal(t, 2, fake.EdgesCallCount())
		})
	}
}

// TestSobelDetector makes sure a flat image has no edges and a sharp vertical
// boundary does.
func TestSobelDetector(t *testing.T) {
	det := metrics.NewSobelDetector()

	flat := grid.NewPixelBuffer(16, 16)
	for _, e := range det.Edges(flat) {
		if e {
			t.Fatalf("found an edge in a flat image")
		}
	}

	split := grid.NewPixelBuffer(16, 16)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			split.Set(x, y, colorspace.RGB{R: 255, G: 255, B: 255})
		}
	}

	mask := det.Edges(split)
	assert.Equal(t, true, mask[8*16+8] || mask[8*16+7], "boundary")
	assert.Equal(t, false, mask[8*16+2], "left of the boundary")
	assert.Equal(t, false, mask[8*16+13], "right of the boundary")

	assert.InDelta(t, 1, metrics.EdgeScore(split, split, det), 0)
	assert.InDelta(t, 1, metrics.EdgeScore(flat, split, det), 0)
}

// TestCompute checks that the report is assembled from its parts.
func TestCompute(t *testing.T) {
	buf := checkerboard(12, 12)
	counts := grid.Counts{72, 72, 0, 0, 0, 0, 0}

	report := metrics.Compute(buf, buf, counts, colorspace.CIELAB, nil)
	assert.InDelta(t, 0, report.Mean, 0)
	assert.InDelta(t, 1, report.EdgeScore, 0)
	assert.InDelta(t, 1, report.Entropy, 1e-6)
}

func checkerboard(w, h int) *grid.PixelBuffer {
	buf := grid.NewPixelBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/3+y/3)%2 == 0 {
				buf.Set(x, y, colorspace.RGB{R: 230, G: 40, B: 40})
			}
		}
	}
	return buf
}

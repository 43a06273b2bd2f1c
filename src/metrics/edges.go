package metrics

import (
	"image"

	"github.com/disintegration/gift"

	"github.com/tessella/tessella/src/grid"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . EdgeDetector

// EdgeDetector produces a binary edge mask for an image. The mask has one
// value per pixel in row-major order.
type EdgeDetector interface {
	Edges(buf *grid.PixelBuffer) []bool
}

// DefaultEdgeThreshold is the gradient magnitude above which a pixel is an edge.
const DefaultEdgeThreshold = 100

// SobelDetector finds edges with a Sobel operator over the grayscale image.
type SobelDetector struct {
	Threshold uint8
	filter    *gift.GIFT
}

// NewSobelDetector returns a detector with the default threshold.
func NewSobelDetector() *SobelDetector {
	return &SobelDetector{
		Threshold: DefaultEdgeThreshold,
		filter:    gift.New(gift.Grayscale(), gift.Sobel()),
	}
}

// Edges implements EdgeDetector.
func (d *SobelDetector) Edges(buf *grid.PixelBuffer) []bool {
	mask := make([]bool, buf.W*buf.H)
	if len(mask) == 0 {
		return mask
	}

	src := buf.Image()
	dst := image.NewGray(d.filter.Bounds(src.Bounds()))
	d.filter.Draw(dst, src)

	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			mask[y*buf.W+x] = dst.GrayAt(x, y).Y > d.Threshold
		}
	}
	return mask
}

// EdgeScore is the intersection over union of the edge masks of both images.
// It is 1 when the original has no edges at all.
func EdgeScore(orig, quant *grid.PixelBuffer, detector EdgeDetector) float64 {
	origEdges := detector.Edges(orig)
	quantEdges := detector.Edges(quant)

	var origCount, inter, union int
	for i, o := range origEdges {
		q := i < len(quantEdges) && quantEdges[i]
		if o {
			origCount++
		}
		if o && q {
			inter++
		}
		if o || q {
			union++
		}
	}

	if origCount == 0 || union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

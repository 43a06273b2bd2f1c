// Package pipeline runs the whole conversion of a photo into a symbol grid:
// preprocessing, resizing, dithering, speckle cleanup, counting, tiling and
// quality metrics.
package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/tessella/tessella/src/dither"
	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/metrics"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/preprocess"
	"github.com/tessella/tessella/src/tiling"
)

// Options are all user controlled processing options.
type Options struct {
	preprocess.Options

	Dither         dither.Method `json:"dither"`
	DitherStrength float64       `json:"dither_strength"`
	SpeckleCleanup bool          `json:"speckle_cleanup"`
}

// DefaultOptions returns the options used when a client sends none.
func DefaultOptions() Options {
	return Options{
		Options:        preprocess.DefaultOptions(),
		Dither:         dither.FloydSteinberg,
		DitherStrength: 1.0,
	}
}

// Validate checks the ranges of all options.
func (o Options) Validate() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}
	if o.DitherStrength < 0 || o.DitherStrength > 1 {
		return fmt.Errorf("%w: dither_strength must be in [0, 1], got %g",
			preprocess.ErrInvalidOptions, o.DitherStrength)
	}
	return nil
}

// Geometry is the crop, rotation and target size for an uploaded image.
type Geometry struct {
	// Crop is in the coordinates of the rotated image. When nil the largest
	// centered crop with the aspect ratio of the grid is used.
	Crop      *preprocess.Rect
	RotateDeg int
	GridW     int
	GridH     int
}

// TileSize is the tile geometry used for the layout of results.
type TileSize struct {
	W, H      int
	GroupSize int
}

// DefaultTileSize returns the standard print tile geometry.
func DefaultTileSize() TileSize {
	return TileSize{
		W:         tiling.DefaultTileW,
		H:         tiling.DefaultTileH,
		GroupSize: tiling.DefaultGroupSize,
	}
}

// Prepare rotates, crops and filters img and resizes it to the grid size.
func Prepare(img image.Image, geo Geometry, opts Options) (*grid.PixelBuffer, error) {
	img = preprocess.Rotate(img, geo.RotateDeg)

	crop := preprocess.CenterCrop(img.Bounds().Dx(), img.Bounds().Dy(), geo.GridW, geo.GridH)
	if geo.Crop != nil {
		crop = *geo.Crop
	}

	cropped, err := preprocess.Crop(img, crop)
	if err != nil {
		return nil, err
	}

	filtered := preprocess.Apply(cropped, opts.Options)
	resized := preprocess.ResizeToGrid(filtered, geo.GridW, geo.GridH)

	return grid.FromImage(resized), nil
}

// Request is a single quantization of a prepared pixel buffer with one
// palette.
type Request struct {
	Source  *grid.PixelBuffer
	Palette *palette.Palette
	Options Options
	Tiles   TileSize

	// EdgeDetector is used for the edge score. Nil means the default one.
	EdgeDetector metrics.EdgeDetector
}

// Result is everything computed for one palette.
type Result struct {
	Palette  *palette.Palette
	Grid     *grid.Grid
	Counts   grid.Counts
	Percents [palette.Size]float64
	Metrics  metrics.Report
	Layout   *tiling.Layout
}

// Process quantizes the request synchronously.
func Process(ctx context.Context, req Request) (*Result, error) {
	if req.Source == nil || req.Palette == nil {
		return nil, fmt.Errorf("request without source or palette")
	}

	layout, err := tiling.NewLayout(
		req.Source.W, req.Source.H,
		req.Tiles.W, req.Tiles.H, req.Tiles.GroupSize,
	)
	if err != nil {
		return nil, err
	}

	g, err := dither.ApplyContext(
		ctx,
		req.Source,
		req.Palette,
		req.Options.Dither,
		req.Options.DitherStrength,
	)
	if err != nil {
		return nil, fmt.Errorf("dithering with %s: %w", req.Options.Dither, err)
	}

	if req.Options.SpeckleCleanup {
		g = g.Despeckle()
	}

	counts := g.Count(req.Palette)
	quantized := g.Reconstruct(req.Palette)

	return &Result{
		Palette:  req.Palette,
		Grid:     g,
		Counts:   counts,
		Percents: counts.Percentages(),
		Metrics: metrics.Compute(
			req.Source,
			quantized,
			counts,
			req.Palette.Space(),
			req.EdgeDetector,
		),
		Layout: layout,
	}, nil
}

package grid_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/tessella/tessella/src/assert"
	"github.com/tessella/tessella/src/colorspace"
	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
)

// TestCountsAndPercentages checks tallying and percentage rounding.
func TestCountsAndPercentages(t *testing.T) {
	pal, err := palette.DefaultRegistry().Get("original")
	assert.NilErr(t, err)

	g := grid.New(3, 1)
	g.Cells = []palette.Symbol{1, 1, 7}

	counts := g.Count(pal)
	assert.Equal(t, grid.Counts{2, 0, 0, 0, 0, 0, 1}, counts)
	assert.Equal(t, 3, counts.Total())

	pct := counts.Percentages()
	assert.InDelta(t, 66.7, pct[0], 1e-9)
	assert.InDelta(t, 33.3, pct[6], 1e-9)
	assert.InDelta(t, 0, pct[3], 0)
}

// TestPercentagesOfEmptyGrid makes sure that a zero cells grid does not divide
// by zero.
func TestPercentagesOfEmptyGrid(t *testing.T) {
	pal, err := palette.DefaultRegistry().Get("original")
	assert.NilErr(t, err)

	counts := grid.New(0, 0).Count(pal)
	assert.Equal(t, 0, counts.Total())

	for i, p := range counts.Percentages() {
		assert.InDelta(t, 0, p, 0, "entry %d", i)
	}
}

// TestBags checks the ceiling division used for bag counts.
func TestBags(t *testing.T) {
	counts := grid.Counts{0, 1, 200, 201, 400, 401, 1000}
	assert.Equal(t, [palette.Size]int{0, 1, 1, 2, 2, 3, 5}, counts.Bags(200))
	assert.Equal(t, [palette.Size]int{}, counts.Bags(0))
}

// TestReconstruct makes sure a grid is painted with the palette colors.
func TestReconstruct(t *testing.T) {
	pal, err := palette.DefaultRegistry().Get("pop")
	assert.NilErr(t, err)

	g := grid.New(2, 1)
	g.Cells = []palette.Symbol{2, 7}

	buf := g.Reconstruct(pal)
	assert.Equal(t, colorspace.RGB{R: 244, G: 208, B: 63}, buf.At(0, 0))
	assert.Equal(t, colorspace.RGB{R: 241, G: 241, B: 241}, buf.At(1, 0))
}

// TestFromImage checks conversion of an image with a non zero origin.
func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.Set(5, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(6, 5, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	buf := grid.FromImage(img)
	assert.Equal(t, 2, buf.W)
	assert.Equal(t, 1, buf.H)
	assert.Equal(t, colorspace.RGB{R: 10, G: 20, B: 30}, buf.At(0, 0))
	assert.Equal(t, colorspace.RGB{R: 200, G: 100, B: 50}, buf.At(1, 0))

	back := buf.Image()
	assert.Equal(t, color.RGBA{R: 200, G: 100, B: 50, A: 255}, back.RGBAAt(1, 0))
}

// TestDespeckle checks the mode filter, including cells on the border.
func TestDespeckle(t *testing.T) {
	g := grid.New(5, 5)
	for i := range g.Cells {
		g.Cells[i] = 2
	}
	g.Set(2, 2, 5)

	out := g.Despeckle()

	assert.Equal(t, palette.Symbol(2), out.At(2, 2), "isolated speck")
	assert.Equal(t, palette.Symbol(5), g.At(2, 2), "input must not change")

	// Cells outside of the grid never win, not even in the corners where
	// they are the majority.
	assert.Equal(t, palette.Symbol(2), out.At(0, 0), "corner")
	assert.Equal(t, palette.Symbol(2), out.At(4, 4), "corner")
	assert.Equal(t, palette.Symbol(2), out.At(2, 0), "edge")
	assert.Equal(t, palette.Symbol(2), out.At(0, 2), "edge")

	for i, s := range out.Cells {
		if s == 0 {
			t.Errorf("cell %d is left without a symbol", i)
		}
	}
}

// TestDespeckleBorders checks the edges where no symbol has a majority of
// the neighbourhood.
func TestDespeckleBorders(t *testing.T) {
	g := grid.New(3, 3)
	g.Cells = []palette.Symbol{
		4, 6, 5,
		2, 3, 1,
		7, 7, 1,
	}

	out := g.Despeckle()

	// Every symbol seen once: the smallest one wins.
	assert.Equal(t, palette.Symbol(2), out.At(0, 0), "top left")
	assert.Equal(t, palette.Symbol(1), out.At(2, 0), "top right")
	// 7 is seen twice around the bottom left corner.
	assert.Equal(t, palette.Symbol(7), out.At(0, 2), "bottom left")
	assert.Equal(t, palette.Symbol(1), out.At(2, 2), "bottom right")
	// 1 and 7 are both seen twice along the bottom edge.
	assert.Equal(t, palette.Symbol(1), out.At(1, 2), "bottom edge")
}

// TestDespeckleSingleCell makes sure a cell with no neighbours in the grid
// keeps its own symbol.
func TestDespeckleSingleCell(t *testing.T) {
	g := grid.New(1, 1)
	g.Set(0, 0, 6)

	out := g.Despeckle()
	assert.Equal(t, palette.Symbol(6), out.At(0, 0))
}

// TestDespeckleTies makes sure the smaller symbol wins on equal counts.
func TestDespeckleTies(t *testing.T) {
	g := grid.New(3, 3)
	g.Cells = []palette.Symbol{
		6, 6, 6,
		6, 3, 3,
		3, 3, 4,
	}

	out := g.Despeckle()
	assert.Equal(t, palette.Symbol(3), out.At(1, 1))
}

// TestDespeckleUniform makes sure the interior of a uniform grid is kept.
func TestDespeckleUniform(t *testing.T) {
	g := grid.New(4, 4)
	for i := range g.Cells {
		g.Cells[i] = 1
	}

	out := g.Despeckle()
	assert.Equal(t, palette.Symbol(1), out.At(1, 1))
	assert.Equal(t, palette.Symbol(1), out.At(2, 2))
	assert.Equal(t, palette.Symbol(1), out.At(1, 0))
}

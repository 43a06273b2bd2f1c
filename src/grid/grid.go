// Package grid holds the two raster types of the engine: the pixel buffer a
// picture is resized into and the symbol grid it is quantized to.
package grid

import (
	"image"
	"image/color"
	"math"

	"github.com/tessella/tessella/src/colorspace"
	"github.com/tessella/tessella/src/palette"
)

// PixelBuffer is a dense, row-major raster of sRGB pixels.
type PixelBuffer struct {
	W, H int
	Pix  []colorspace.RGB
}

// NewPixelBuffer returns a black buffer with the given size.
func NewPixelBuffer(w, h int) *PixelBuffer {
	return &PixelBuffer{
		W:   w,
		H:   h,
		Pix: make([]colorspace.RGB, w*h),
	}
}

// FromImage copies img into a new pixel buffer. Alpha is dropped.
func FromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	buf := NewPixelBuffer(b.Dx(), b.Dy())

	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			buf.Pix[y*buf.W+x] = colorspace.RGB{R: c.R, G: c.G, B: c.B}
		}
	}

	return buf
}

// At returns the pixel at x, y.
func (b *PixelBuffer) At(x, y int) colorspace.RGB {
	return b.Pix[y*b.W+x]
}

// Set changes the pixel at x, y.
func (b *PixelBuffer) Set(x, y int, c colorspace.RGB) {
	b.Pix[y*b.W+x] = c
}

// Image returns the buffer as an opaque RGBA image.
func (b *PixelBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	for i, c := range b.Pix {
		img.Pix[i*4] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// Grid is a dense, row-major raster of palette symbols.
type Grid struct {
	W, H  int
	Cells []palette.Symbol
}

// New returns a grid of the given size filled with symbol 0.
func New(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]palette.Symbol, w*h),
	}
}

// At returns the symbol at x, y.
func (g *Grid) At(x, y int) palette.Symbol {
	return g.Cells[y*g.W+x]
}

// Set changes the symbol at x, y.
func (g *Grid) Set(x, y int, s palette.Symbol) {
	g.Cells[y*g.W+x] = s
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := New(g.W, g.H)
	copy(c.Cells, g.Cells)
	return c
}

// Counts is the number of cells for every palette entry, in palette order.
type Counts [palette.Size]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	var total int
	for _, n := range c {
		total += n
	}
	return total
}

// Percentages returns every count as a percentage of the total rounded to one
// decimal place. An empty total gives all zeros.
func (c Counts) Percentages() [palette.Size]float64 {
	var out [palette.Size]float64

	total := c.Total()
	if total == 0 {
		return out
	}

	for i, n := range c {
		out[i] = math.Round(float64(n)*1000/float64(total)) / 10
	}
	return out
}

// Bags returns how many bags of the given capacity each entry needs.
func (c Counts) Bags(capacity int) [palette.Size]int {
	var out [palette.Size]int
	if capacity <= 0 {
		return out
	}

	for i, n := range c {
		out[i] = (n + capacity - 1) / capacity
	}
	return out
}

// Count tallies the grid cells per entry of pal. Symbols which are not in the
// palette are not counted.
func (g *Grid) Count(pal *palette.Palette) Counts {
	var (
		counts Counts
		lookup [256]int
	)

	for i := range lookup {
		lookup[i] = -1
	}
	for i, e := range pal.Entries() {
		lookup[e.Symbol] = i
	}

	for _, s := range g.Cells {
		if i := lookup[s]; i >= 0 {
			counts[i]++
		}
	}

	return counts
}

// Reconstruct paints the grid with the palette colors.
func (g *Grid) Reconstruct(pal *palette.Palette) *PixelBuffer {
	buf := NewPixelBuffer(g.W, g.H)
	for i, s := range g.Cells {
		buf.Pix[i] = pal.RGB(s)
	}
	return buf
}

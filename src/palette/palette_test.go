package palette_test

import (
	"errors"
	"testing"

	"github.com/tessella/tessella/src/assert"
	"github.com/tessella/tessella/src/colorspace"
	"github.com/tessella/tessella/src/palette"
)

// TestNearestExactHits makes sure every palette color maps to its own symbol
// in all built in palettes.
func TestNearestExactHits(t *testing.T) {
	for _, pal := range palette.DefaultRegistry().All() {
		for i, e := range pal.Entries() {
			sym, idx := pal.Nearest(e.RGB)
			assert.Equal(t, e.Symbol, sym, "palette %s entry %d", pal.Name(), i)
			assert.Equal(t, i, idx, "palette %s entry %d", pal.Name(), i)
		}
	}
}

// TestNearestTieBreak checks that the first defined entry wins when two entries
// are equally close.
func TestNearestTieBreak(t *testing.T) {
	pal, err := palette.New("ties", colorspace.OKLab, []palette.Color{
		{Symbol: 4, Hex: "#808080"},
		{Symbol: 2, Hex: "#808080"},
		{Symbol: 3, Hex: "#000000"},
		{Symbol: 1, Hex: "#ffffff"},
		{Symbol: 5, Hex: "#ff0000"},
		{Symbol: 6, Hex: "#00ff00"},
		{Symbol: 7, Hex: "#0000ff"},
	})
	assert.NilErr(t, err)

	sym, idx := pal.Nearest(colorspace.RGB{R: 130, G: 128, B: 126})
	assert.Equal(t, palette.Symbol(4), sym)
	assert.Equal(t, 0, idx)
}

// TestNearestChoosesClosest checks a few colors which are clearly closest to a
// single entry.
func TestNearestChoosesClosest(t *testing.T) {
	pal, err := palette.DefaultRegistry().Get("pop")
	assert.NilErr(t, err)

	tests := []struct {
		color    colorspace.RGB
		expected palette.Symbol
	}{
		{colorspace.RGB{R: 0, G: 0, B: 0}, 1},
		{colorspace.RGB{R: 255, G: 220, B: 40}, 2},
		{colorspace.RGB{R: 250, G: 50, B: 40}, 3},
		{colorspace.RGB{R: 30, G: 140, B: 240}, 4},
		{colorspace.RGB{R: 40, G: 230, B: 100}, 5},
		{colorspace.RGB{R: 255, G: 255, B: 255}, 7},
	}

	for _, test := range tests {
		sym, _ := pal.Nearest(test.color)
		assert.Equal(t, test.expected, sym, "color %v", test.color)
	}
}

// TestNewValidation checks the palette construction errors.
func TestNewValidation(t *testing.T) {
	six := []palette.Color{
		{Symbol: 1, Hex: "#000000"},
		{Symbol: 2, Hex: "#111111"},
		{Symbol: 3, Hex: "#222222"},
		{Symbol: 4, Hex: "#333333"},
		{Symbol: 5, Hex: "#444444"},
		{Symbol: 6, Hex: "#555555"},
	}

	_, err := palette.New("six", colorspace.OKLab, six)
	if !errors.Is(err, palette.ErrPaletteSize) {
		t.Errorf("expected ErrPaletteSize but got %v", err)
	}

	dup := append(six, palette.Color{Symbol: 6, Hex: "#666666"})
	_, err = palette.New("dup", colorspace.OKLab, dup)
	if !errors.Is(err, palette.ErrDuplicateSymbol) {
		t.Errorf("expected ErrDuplicateSymbol but got %v", err)
	}

	zero := append(six[:6:6], palette.Color{Symbol: 0, Hex: "#666666"})
	_, err = palette.New("zero", colorspace.OKLab, zero)
	if !errors.Is(err, palette.ErrReservedSymbol) {
		t.Errorf("expected ErrReservedSymbol but got %v", err)
	}

	bad := append(six[:6:6], palette.Color{Symbol: 7, Hex: "#zz0000"})
	_, err = palette.New("bad", colorspace.OKLab, bad)
	assert.NotNilErr(t, err)
}

// TestEntriesAreCopies makes sure callers cannot change a palette through the
// slice returned by Entries.
func TestEntriesAreCopies(t *testing.T) {
	pal, err := palette.DefaultRegistry().Get(palette.DefaultName)
	assert.NilErr(t, err)

	entries := pal.Entries()
	entries[0].RGB = colorspace.RGB{R: 1, G: 2, B: 3}

	assert.Equal(t, colorspace.RGB{R: 20, G: 20, B: 20}, pal.Entry(0).RGB)
}

// TestRegistry checks the order and lookup of the built in palettes.
func TestRegistry(t *testing.T) {
	reg := palette.DefaultRegistry()
	names := reg.Names()

	expected := []string{"original", "warm", "pop", "classic", "vintage", "popart"}
	assert.Equal(t, len(expected), len(names))
	for i := range expected {
		assert.Equal(t, expected[i], names[i])
	}

	classic, err := reg.Get("classic")
	assert.NilErr(t, err)
	assert.Equal(t, colorspace.CIELAB, classic.Space())

	_, err = reg.Get("neon")
	if !errors.Is(err, palette.ErrNotFound) {
		t.Errorf("expected ErrNotFound but got %v", err)
	}
}

func TestBagCode(t *testing.T) {
	assert.Equal(t, "B01", palette.BagCode(1))
	assert.Equal(t, "B07", palette.BagCode(7))
	assert.Equal(t, "B12", palette.BagCode(12))
}

func TestParseHex(t *testing.T) {
	c, err := palette.ParseHex("#3B4752")
	assert.NilErr(t, err)
	assert.Equal(t, colorspace.RGB{R: 59, G: 71, B: 82}, c)

	_, err = palette.ParseHex("#123")
	assert.NotNilErr(t, err)
}

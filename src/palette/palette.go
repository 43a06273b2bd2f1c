// Package palette defines the fixed seven color palettes symbol grids are drawn
// with, and matches arbitrary colors to their nearest palette entry.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tessella/tessella/src/colorspace"
)

// Size is the number of entries in every palette.
const Size = 7

var (
	// ErrPaletteSize is returned when a palette is built from anything other
	// than exactly Size entries.
	ErrPaletteSize = fmt.Errorf("a palette must have exactly %d entries", Size)

	// ErrDuplicateSymbol is returned when two palette entries share a symbol.
	ErrDuplicateSymbol = errors.New("duplicate palette symbol")

	// ErrReservedSymbol is returned for entries with symbol 0. It marks
	// padding and cells outside of a grid.
	ErrReservedSymbol = errors.New("symbol 0 is reserved")

	// ErrNotFound is returned when there is no palette with a given name.
	ErrNotFound = errors.New("palette not found")
)

// Symbol is the small integer printed on the kit for one palette entry.
type Symbol uint8

// BagCode is the label of the bag with drills for symbol s.
func BagCode(s Symbol) string {
	return fmt.Sprintf("B%02d", s)
}

// Color is the definition of one palette entry.
type Color struct {
	Symbol Symbol
	Name   string
	Hex    string
}

// Entry is a palette color together with its precomputed coordinates.
type Entry struct {
	Symbol Symbol
	Name   string
	Hex    string
	RGB    colorspace.RGB
	Coord  colorspace.Lab
}

// Palette is an immutable ordered set of exactly Size entries. The order of
// entries is significant: it breaks ties during matching and it is the
// order of the counts reported for a grid.
type Palette struct {
	name    string
	space   colorspace.Space
	entries [Size]Entry
}

// New builds a palette, parsing every hex color and computing its perceptual
// coordinates in space.
func New(name string, space colorspace.Space, colors []Color) (*Palette, error) {
	if len(colors) != Size {
		return nil, fmt.Errorf("palette %q has %d colors: %w", name, len(colors), ErrPaletteSize)
	}

	p := &Palette{
		name:  name,
		space: space,
	}

	seen := make(map[Symbol]struct{}, Size)
	for i, c := range colors {
		if c.Symbol == 0 {
			return nil, fmt.Errorf("palette %q entry %d: %w", name, i, ErrReservedSymbol)
		}
		if _, ok := seen[c.Symbol]; ok {
			return nil, fmt.Errorf("palette %q symbol %d: %w", name, c.Symbol, ErrDuplicateSymbol)
		}
		seen[c.Symbol] = struct{}{}

		rgb, err := ParseHex(c.Hex)
		if err != nil {
			return nil, fmt.Errorf("palette %q: %w", name, err)
		}

		p.entries[i] = Entry{
			Symbol: c.Symbol,
			Name:   c.Name,
			Hex:    rgb.Hex(),
			RGB:    rgb,
			Coord:  space.ToPerceptual(rgb),
		}
	}

	return p, nil
}

// Name returns the registry name of the palette.
func (p *Palette) Name() string {
	return p.name
}

// Space returns the perceptual space the palette matches in.
func (p *Palette) Space() colorspace.Space {
	return p.space
}

// Entries returns a copy of the palette entries in definition order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, Size)
	copy(out, p.entries[:])
	return out
}

// Entry returns the entry at index i.
func (p *Palette) Entry(i int) Entry {
	return p.entries[i]
}

// Index returns the position of symbol s in the palette.
func (p *Palette) Index(s Symbol) (int, bool) {
	for i, e := range p.entries {
		if e.Symbol == s {
			return i, true
		}
	}
	return 0, false
}

// RGB returns the color of symbol s. Unknown symbols are black.
func (p *Palette) RGB(s Symbol) colorspace.RGB {
	if i, ok := p.Index(s); ok {
		return p.entries[i].RGB
	}
	return colorspace.RGB{}
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(hex string) (colorspace.RGB, error) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return colorspace.RGB{}, fmt.Errorf("malformed hex color %q", hex)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return colorspace.RGB{}, fmt.Errorf("malformed hex color %q: %w", hex, err)
	}

	return colorspace.RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

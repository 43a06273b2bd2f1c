// Package tiling splits a symbol grid into fixed size print tiles and
// groups consecutive tiles for pagination.
//
// Tiles are numbered from 1 in row-major order. Tiles on the right and
// bottom edges may be smaller than the nominal tile size.
package tiling

import (
	"errors"
	"fmt"

	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
)

// Default tile geometry.
const (
	DefaultTileW     = 9
	DefaultTileH     = 13
	DefaultGroupSize = 12
)

var (
	// ErrTileOutOfRange is returned for tile numbers outside of [1, Total].
	ErrTileOutOfRange = errors.New("tile number out of range")

	// ErrInvalidLayout is returned for non-positive tile or group sizes.
	ErrInvalidLayout = errors.New("invalid tile layout")
)

// Tile describes the position of one tile in the grid. W and H are the true
// size of the tile which is smaller than the nominal size on the edges.
type Tile struct {
	Number int `json:"number"`
	X      int `json:"x"`
	Y      int `json:"y"`
	W      int `json:"w"`
	H      int `json:"h"`
	Group  int `json:"group"`
}

// Group is an inclusive range of tile numbers printed together.
type Group struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Range returns the group in "start–end" notation.
func (g Group) Range() string {
	return fmt.Sprintf("%d–%d", g.Start, g.End)
}

// Layout is the tiling of a grid with a particular size.
type Layout struct {
	GridW, GridH int
	TileW, TileH int
	GroupSize    int

	TilesX, TilesY int
	Total          int
}

// NewLayout computes the tiling of a gridW x gridH grid. A grid without
// cells has no tiles.
func NewLayout(gridW, gridH, tileW, tileH, groupSize int) (*Layout, error) {
	if tileW <= 0 || tileH <= 0 || groupSize <= 0 {
		return nil, fmt.Errorf("tile %dx%d, group %d: %w",
			tileW, tileH, groupSize, ErrInvalidLayout)
	}
	if gridW < 0 || gridH < 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", gridW, gridH, ErrInvalidLayout)
	}

	l := &Layout{
		GridW:     gridW,
		GridH:     gridH,
		TileW:     tileW,
		TileH:     tileH,
		GroupSize: groupSize,
		TilesX:    ceilDiv(gridW, tileW),
		TilesY:    ceilDiv(gridH, tileH),
	}
	l.Total = l.TilesX * l.TilesY

	return l, nil
}

// NewDefaultLayout is NewLayout with the default tile geometry.
func NewDefaultLayout(gridW, gridH int) (*Layout, error) {
	return NewLayout(gridW, gridH, DefaultTileW, DefaultTileH, DefaultGroupSize)
}

// Groups returns the tile groups. Together they cover [1, Total] without gaps
// or overlaps. Only the last group may be short.
func (l *Layout) Groups() []Group {
	n := ceilDiv(l.Total, l.GroupSize)
	groups := make([]Group, 0, n)
	for g := 0; g < n; g++ {
		groups = append(groups, Group{
			Start: g*l.GroupSize + 1,
			End:   min((g+1)*l.GroupSize, l.Total),
		})
	}
	return groups
}

// Bounds returns the tile with number n.
func (l *Layout) Bounds(n int) (Tile, error) {
	if n < 1 || n > l.Total {
		return Tile{}, fmt.Errorf("tile %d of %d: %w", n, l.Total, ErrTileOutOfRange)
	}

	idx := n - 1
	x := (idx % l.TilesX) * l.TileW
	y := (idx / l.TilesX) * l.TileH

	return Tile{
		Number: n,
		X:      x,
		Y:      y,
		W:      min(l.TileW, l.GridW-x),
		H:      min(l.TileH, l.GridH-y),
		Group:  idx / l.GroupSize,
	}, nil
}

// GroupOf returns the group tile n belongs to.
func (l *Layout) GroupOf(n int) (Group, error) {
	if n < 1 || n > l.Total {
		return Group{}, fmt.Errorf("tile %d of %d: %w", n, l.Total, ErrTileOutOfRange)
	}

	g := (n - 1) / l.GroupSize
	return Group{
		Start: g*l.GroupSize + 1,
		End:   min((g+1)*l.GroupSize, l.Total),
	}, nil
}

// Extract returns the symbols of tile n as TileH rows of TileW symbols. Cells
// beyond the edge of the grid are filled with symbol 0.
func (l *Layout) Extract(g *grid.Grid, n int) ([][]palette.Symbol, error) {
	if g.W != l.GridW || g.H != l.GridH {
		return nil, fmt.Errorf("grid %dx%d does not match layout %dx%d",
			g.W, g.H, l.GridW, l.GridH)
	}

	tile, err := l.Bounds(n)
	if err != nil {
		return nil, err
	}

	rows := make([][]palette.Symbol, l.TileH)
	for r := range rows {
		rows[r] = make([]palette.Symbol, l.TileW)
		if r >= tile.H {
			continue
		}
		start := (tile.Y+r)*g.W + tile.X
		copy(rows[r], g.Cells[start:start+tile.W])
	}

	return rows, nil
}

// Summary is a tile with its symbol counts, in palette order.
type Summary struct {
	Tile
	Counts grid.Counts `json:"counts"`
}

// Tiles returns every tile of the layout with the number of cells of each
// palette entry in it.
func (l *Layout) Tiles(g *grid.Grid, pal *palette.Palette) ([]Summary, error) {
	if g.W != l.GridW || g.H != l.GridH {
		return nil, fmt.Errorf("grid %dx%d does not match layout %dx%d",
			g.W, g.H, l.GridW, l.GridH)
	}

	out := make([]Summary, 0, l.Total)
	for n := 1; n <= l.Total; n++ {
		tile, err := l.Bounds(n)
		if err != nil {
			return nil, err
		}

		sub := grid.New(tile.W, tile.H)
		for y := 0; y < tile.H; y++ {
			start := (tile.Y+y)*g.W + tile.X
			copy(sub.Cells[y*tile.W:], g.Cells[start:start+tile.W])
		}

		out = append(out, Summary{Tile: tile, Counts: sub.Count(pal)})
	}

	return out, nil
}

// Spec is the JSON form of a layout as written in export packs.
type Spec struct {
	CellW      int         `json:"cell_w"`
	CellH      int         `json:"cell_h"`
	TilesX     int         `json:"tiles_x"`
	TilesY     int         `json:"tiles_y"`
	TotalTiles int         `json:"total_tiles"`
	GroupSize  int         `json:"group_size"`
	Groups     []GroupSpec `json:"groups"`
}

// GroupSpec is the JSON form of a group.
type GroupSpec struct {
	Range string `json:"range"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Spec returns the layout summary.
func (l *Layout) Spec() Spec {
	s := Spec{
		CellW:      l.TileW,
		CellH:      l.TileH,
		TilesX:     l.TilesX,
		TilesY:     l.TilesY,
		TotalTiles: l.Total,
		GroupSize:  l.GroupSize,
		Groups:     []GroupSpec{},
	}

	for _, g := range l.Groups() {
		s.Groups = append(s.Groups, GroupSpec{
			Range: g.Range(),
			Start: g.Start,
			End:   g.End,
		})
	}

	return s
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

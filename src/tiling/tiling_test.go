package tiling_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/tessella/tessella/src/assert"
	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/tiling"
)

// TestDefaultLayout checks the layout of the default 96x128 grid.
func TestDefaultLayout(t *testing.T) {
	l, err := tiling.NewDefaultLayout(96, 128)
	assert.NilErr(t, err)

	assert.Equal(t, 11, l.TilesX)
	assert.Equal(t, 10, l.TilesY)
	assert.Equal(t, 110, l.Total)

	groups := l.Groups()
	expected := []tiling.Group{
		{1, 12}, {13, 24}, {25, 36}, {37, 48}, {49, 60},
		{61, 72}, {73, 84}, {85, 96}, {97, 108}, {109, 110},
	}
	assert.Equal(t, len(expected), len(groups))
	for i := range expected {
		assert.Equal(t, expected[i], groups[i], "group %d", i)
	}
}

// TestBounds checks tiles on the edges of the grid.
func TestBounds(t *testing.T) {
	l, err := tiling.NewDefaultLayout(96, 128)
	assert.NilErr(t, err)

	tests := []struct {
		desc     string
		number   int
		expected tiling.Tile
	}{
		{
			desc:     "top left",
			number:   1,
			expected: tiling.Tile{Number: 1, X: 0, Y: 0, W: 9, H: 13, Group: 0},
		},
		{
			desc:     "second",
			number:   2,
			expected: tiling.Tile{Number: 2, X: 9, Y: 0, W: 9, H: 13, Group: 0},
		},
		{
			desc:     "right edge",
			number:   11,
			expected: tiling.Tile{Number: 11, X: 90, Y: 0, W: 6, H: 13, Group: 0},
		},
		{
			desc:     "second row",
			number:   12,
			expected: tiling.Tile{Number: 12, X: 0, Y: 13, W: 9, H: 13, Group: 0},
		},
		{
			desc:     "bottom left",
			number:   100,
			expected: tiling.Tile{Number: 100, X: 0, Y: 117, W: 9, H: 11, Group: 8},
		},
		{
			desc:     "last",
			number:   110,
			expected: tiling.Tile{Number: 110, X: 90, Y: 117, W: 6, H: 11, Group: 9},
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			tile, err := l.Bounds(test.number)
			assert.NilErr(t, err)
			assert.Equal(t, test.expected, tile)
		})
	}
}

// TestOutOfRange makes sure invalid tile numbers are errors.
func TestOutOfRange(t *testing.T) {
	l, err := tiling.NewDefaultLayout(96, 128)
	assert.NilErr(t, err)

	for _, n := range []int{-1, 0, 111, 1000} {
		_, err := l.Bounds(n)
		if !errors.Is(err, tiling.ErrTileOutOfRange) {
			t.Errorf("tile %d: expected ErrTileOutOfRange, got %v", n, err)
		}

		_, err = l.GroupOf(n)
		if !errors.Is(err, tiling.ErrTileOutOfRange) {
			t.Errorf("group of %d: expected ErrTileOutOfRange, got %v", n, err)
		}

		_, err = l.Extract(grid.New(96, 128), n)
		if !errors.Is(err, tiling.ErrTileOutOfRange) {
			t.Errorf("extract %d: expected ErrTileOutOfRange, got %v", n, err)
		}
	}
}

// TestTilesCoverTheGrid checks for several grid sizes that every cell belongs to
// exactly one tile and every tile to exactly one group.
func TestTilesCoverTheGrid(t *testing.T) {
	sizes := [][2]int{{96, 128}, {80, 106}, {108, 144}, {60, 80}, {150, 200}, {9, 13}, {1, 1}}

	for _, size := range sizes {
		w, h := size[0], size[1]
		l, err := tiling.NewDefaultLayout(w, h)
		assert.NilErr(t, err)

		covered := make([]int, w*h)
		for n := 1; n <= l.Total; n++ {
			tile, err := l.Bounds(n)
			assert.NilErr(t, err)

			for y := tile.Y; y < tile.Y+tile.H; y++ {
				for x := tile.X; x < tile.X+tile.W; x++ {
					covered[y*w+x]++
				}
			}

			group, err := l.GroupOf(n)
			assert.NilErr(t, err)
			if n < group.Start || n > group.End {
				t.Errorf("%dx%d: tile %d is not in its group %v", w, h, n, group)
			}
		}

		for i, c := range covered {
			if c != 1 {
				t.Fatalf("%dx%d: cell %d is covered %d times", w, h, i, c)
			}
		}

		next := 1
		for _, g := range l.Groups() {
			assert.Equal(t, next, g.Start, "%dx%d", w, h)
			next = g.End + 1
		}
		assert.Equal(t, l.Total+1, next, "%dx%d", w, h)
	}
}

// TestExtract checks that edge tiles are padded with zeros.
func TestExtract(t *testing.T) {
	g := grid.New(8, 12)
	for i := range g.Cells {
		g.Cells[i] = palette.Symbol(i%7 + 1)
	}

	l, err := tiling.NewLayout(8, 12, 5, 7, 2)
	assert.NilErr(t, err)

	first, err := l.Extract(g, 1)
	assert.NilErr(t, err)
	assert.Equal(t, 7, len(first))
	assert.Equal(t, 5, len(first[0]))
	assert.Equal(t, g.At(0, 0), first[0][0])
	assert.Equal(t, g.At(4, 6), first[6][4])

	// The second tile is 3x7 in a 5x7 frame.
	second, err := l.Extract(g, 2)
	assert.NilErr(t, err)
	assert.Equal(t, g.At(5, 0), second[0][0])
	assert.Equal(t, g.At(7, 3), second[3][2])
	assert.Equal(t, palette.Symbol(0), second[3][3])
	assert.Equal(t, palette.Symbol(0), second[0][4])

	// The last tile is 3x5.
	last, err := l.Extract(g, 4)
	assert.NilErr(t, err)
	assert.Equal(t, g.At(7, 11), last[4][2])
	assert.Equal(t, palette.Symbol(0), last[5][0])
	assert.Equal(t, palette.Symbol(0), last[6][4])

	_, err = l.Extract(grid.New(9, 12), 1)
	assert.NotNilErr(t, err)
}

// TestTiles makes sure the per tile counts add up to the grid counts.
func TestTiles(t *testing.T) {
	pal, err := palette.DefaultRegistry().Get(palette.DefaultName)
	assert.NilErr(t, err)

	g := grid.New(20, 30)
	for i := range g.Cells {
		g.Cells[i] = palette.Symbol(i*31%7 + 1)
	}

	l, err := tiling.NewDefaultLayout(g.W, g.H)
	assert.NilErr(t, err)

	summaries, err := l.Tiles(g, pal)
	assert.NilErr(t, err)
	assert.Equal(t, l.Total, len(summaries))

	var sum grid.Counts
	for _, s := range summaries {
		assert.Equal(t, s.W*s.H, s.Counts.Total(), "tile %d", s.Number)
		for i := range sum {
			sum[i] += s.Counts[i]
		}
	}
	assert.Equal(t, g.Count(pal), sum)
}

// TestInvalidLayout checks the argument validation.
func TestInvalidLayout(t *testing.T) {
	for _, args := range [][5]int{
		{10, 10, 0, 13, 12},
		{10, 10, 9, -1, 12},
		{10, 10, 9, 13, 0},
		{-1, 10, 9, 13, 12},
	} {
		_, err := tiling.NewLayout(args[0], args[1], args[2], args[3], args[4])
		if !errors.Is(err, tiling.ErrInvalidLayout) {
			t.Errorf("%v: expected ErrInvalidLayout but got %v", args, err)
		}
	}

	l, err := tiling.NewDefaultLayout(0, 0)
	assert.NilErr(t, err)
	assert.Equal(t, 0, l.Total)
	assert.Equal(t, 0, len(l.Groups()))
}

// TestSpecJSON checks the layout summary written to export packs.
func TestSpecJSON(t *testing.T) {
	l, err := tiling.NewDefaultLayout(96, 128)
	assert.NilErr(t, err)

	out, err := json.Marshal(l.Spec())
	assert.NilErr(t, err)

	var decoded map[string]any
	assert.NilErr(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, float64(9), decoded["cell_w"].(float64))
	assert.Equal(t, float64(13), decoded["cell_h"].(float64))
	assert.Equal(t, float64(110), decoded["total_tiles"].(float64))

	groups := decoded["groups"].([]any)
	assert.Equal(t, 10, len(groups))

	last := groups[9].(map[string]any)
	assert.Equal(t, "109–110", last["range"].(string))
}

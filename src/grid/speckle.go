package grid

import "github.com/tessella/tessella/src/palette"

// Despeckle replaces every cell with the most common symbol in its 3x3
// neighbourhood, the cell itself included. Neighbours outside of the grid
// are read as symbol 0, which is never a palette symbol and so never wins.
// On equal counts the smaller symbol wins. The receiver is not modified.
func (g *Grid) Despeckle() *Grid {
	out := New(g.W, g.H)

	var hist [256]int
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					hist[g.symbolOrZero(x+dx, y+dy)]++
				}
			}

			best := g.At(x, y)
			bestCount := 0
			hist[0] = 0
			for s := 1; s < len(hist); s++ {
				if hist[s] > bestCount {
					best = palette.Symbol(s)
					bestCount = hist[s]
				}
				hist[s] = 0
			}

			out.Set(x, y, best)
		}
	}

	return out
}

func (g *Grid) symbolOrZero(x, y int) palette.Symbol {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return 0
	}
	return g.At(x, y)
}

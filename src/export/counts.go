package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
)

var countsHeader = []string{"symbol", "bag_code", "hex", "count", "percent", "bags"}

// WriteCounts writes one CSV row per palette entry with its count, share of
// the grid and the number of bags of bagCapacity drills it needs.
func WriteCounts(w io.Writer, pal *palette.Palette, counts grid.Counts, bagCapacity int) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(countsHeader); err != nil {
		return err
	}

	percents := counts.Percentages()
	bags := counts.Bags(bagCapacity)

	for i, entry := range pal.Entries() {
		err := cw.Write([]string{
			strconv.Itoa(int(entry.Symbol)),
			palette.BagCode(entry.Symbol),
			entry.Hex,
			strconv.Itoa(counts[i]),
			fmt.Sprintf("%.1f%%", percents[i]),
			strconv.Itoa(bags[i]),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

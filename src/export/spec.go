package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/tessella/tessella/src/metrics"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/pipeline"
	"github.com/tessella/tessella/src/tiling"
)

// CanvasCM is the physical size of the printed canvas in centimetres.
var CanvasCM = Size{W: 30, H: 40}

// Size is a width and a height.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Spec is the machine readable description of an export pack.
type Spec struct {
	JobID     string           `json:"job_id"`
	Timestamp time.Time        `json:"timestamp"`
	CanvasCM  Size             `json:"canvas_cm"`
	Grid      GridSpec         `json:"grid"`
	Tile      tiling.Spec      `json:"tile"`
	Palette   PaletteSpec      `json:"palette"`
	Options   pipeline.Options `json:"options"`
	Metrics   metrics.Report   `json:"metrics"`
	Counts    []CountSpec      `json:"counts"`
	QRURL     string           `json:"qr_url"`
}

// GridSpec is the size of the symbol grid.
type GridSpec struct {
	W          int `json:"w"`
	H          int `json:"h"`
	TotalCells int `json:"total_cells"`
}

// PaletteSpec lists the palette colors. Coordinates are in the palette's own
// perceptual space.
type PaletteSpec struct {
	ID      string      `json:"id"`
	Space   string      `json:"space"`
	Symbols []int       `json:"symbols"`
	Colors  []ColorSpec `json:"colors"`
}

// ColorSpec is one palette entry.
type ColorSpec struct {
	Symbol int        `json:"symbol"`
	Name   string     `json:"name"`
	Hex    string     `json:"hex"`
	RGB    [3]int     `json:"rgb"`
	Lab    [3]float64 `json:"lab"`
}

// CountSpec is the amount of drills of one palette entry.
type CountSpec struct {
	Symbol  int     `json:"symbol"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Bags    int     `json:"bags"`
	BagCode string  `json:"bag_code"`
}

// NewSpec describes the pack p whose cover links to qrURL.
func NewSpec(p Pack, qrURL string) Spec {
	res := p.Result
	pal := res.Palette

	spec := Spec{
		JobID:     p.JobID,
		Timestamp: p.Created,
		CanvasCM:  CanvasCM,
		Grid: GridSpec{
			W:          res.Grid.W,
			H:          res.Grid.H,
			TotalCells: res.Grid.W * res.Grid.H,
		},
		Tile: res.Layout.Spec(),
		Palette: PaletteSpec{
			ID:    pal.Name(),
			Space: pal.Space().String(),
		},
		Options: p.Options,
		Metrics: res.Metrics,
		QRURL:   qrURL,
	}

	percents := res.Counts.Percentages()
	bags := res.Counts.Bags(p.BagCapacity)

	for i, e := range pal.Entries() {
		spec.Palette.Symbols = append(spec.Palette.Symbols, int(e.Symbol))
		spec.Palette.Colors = append(spec.Palette.Colors, ColorSpec{
			Symbol: int(e.Symbol),
			Name:   e.Name,
			Hex:    e.Hex,
			RGB:    [3]int{int(e.RGB.R), int(e.RGB.G), int(e.RGB.B)},
			Lab:    [3]float64{e.Coord.L, e.Coord.A, e.Coord.B},
		})
		spec.Counts = append(spec.Counts, CountSpec{
			Symbol:  int(e.Symbol),
			Count:   res.Counts[i],
			Percent: percents[i],
			Bags:    bags[i],
			BagCode: palette.BagCode(e.Symbol),
		})
	}

	return spec
}

// WriteSpec writes s as indented JSON.
func WriteSpec(w io.Writer, s Spec) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

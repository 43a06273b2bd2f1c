package export

import (
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/tiling"
)

// Sheets are A4 pages rendered at SheetDPI.
const (
	SheetDPI    = 100
	SheetWidth  = 827
	SheetHeight = 1169
)

const mm = SheetDPI / 25.4

// Sheets renders the printed pages of a pattern.
type Sheets struct {
	JobID   string
	Created time.Time

	Palette *palette.Palette
	Grid    *grid.Grid
	Counts  grid.Counts
	Layout  *tiling.Layout

	Brand       Brand
	BagCapacity int
	AssemblyURL string
}

type typeface int

const (
	regular typeface = iota
	bold
	mono
)

var (
	fontsOnce sync.Once
	fonts     [3]*opentype.Font
	fontsErr  error
)

// newFace returns a face of the given size in points. Faces are not safe for
// concurrent use so every page creates its own.
func newFace(tf typeface, size float64) (font.Face, error) {
	fontsOnce.Do(func() {
		for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, gomonobold.TTF} {
			fonts[i], fontsErr = opentype.Parse(ttf)
			if fontsErr != nil {
				return
			}
		}
	})
	if fontsErr != nil {
		return nil, fmt.Errorf("parsing fonts: %w", fontsErr)
	}

	return opentype.NewFace(fonts[tf], &opentype.FaceOptions{
		Size:    size,
		DPI:     SheetDPI,
		Hinting: font.HintingFull,
	})
}

// page is a blank sheet with a helper for switching fonts.
type page struct {
	*gg.Context
	err error
}

func newPage() *page {
	dc := gg.NewContext(SheetWidth, SheetHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	return &page{Context: dc}
}

func (p *page) font(tf typeface, size float64) {
	if p.err != nil {
		return
	}
	face, err := newFace(tf, size)
	if err != nil {
		p.err = err
		return
	}
	p.SetFontFace(face)
}

func (p *page) centered(s string, y float64) {
	p.DrawStringAnchored(s, SheetWidth/2, y, 0.5, 0.5)
}

func (p *page) image() (image.Image, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.Image(), nil
}

// Cover renders the first page: the title, the counts of every symbol and the
// QR code with the assembly link.
func (s *Sheets) Cover() (image.Image, error) {
	p := newPage()

	p.font(bold, 32)
	p.centered("Assembly Instruction", 50*mm)

	counts := make([]string, 0, len(s.Counts))
	for _, c := range s.Counts {
		counts = append(counts, thousands(c))
	}
	p.font(bold, 24)
	p.centered(strings.Join(counts, "  "), 75*mm)

	y := 120 * mm
	p.font(regular, 12)
	p.centered("Share your result on social media", y)

	y += 8 * mm
	p.font(bold, 14)
	p.centered(strings.TrimSpace(s.Brand.Hashtag+" "+s.Brand.SiteLabel), y)

	y += 20 * mm
	p.font(regular, 10)
	p.centered(s.Brand.QRLabel, y)

	qrSide := 40 * mm
	qrSize := int(qrSide)
	qr, err := qrcode.New(s.AssemblyURL, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("creating QR code: %w", err)
	}
	qrTop := y + 5*mm
	p.DrawImage(qr.Image(qrSize), (SheetWidth-qrSize)/2, int(qrTop))

	p.font(regular, 9)
	p.centered(s.AssemblyURL, qrTop+float64(qrSize)+5*mm)

	p.font(regular, 8)
	p.centered(fmt.Sprintf(
		"Generated: %s | %s",
		s.Created.Format("2006-01-02 15:04"),
		s.Brand.SiteLabel,
	), SheetHeight-20*mm)

	return p.image()
}

// Tile renders the page for tile n: its number, the group header on the first
// tile of a group and the grid of symbols with row numbers.
func (s *Sheets) Tile(n int) (image.Image, error) {
	tile, err := s.Layout.Bounds(n)
	if err != nil {
		return nil, err
	}
	group, err := s.Layout.GroupOf(n)
	if err != nil {
		return nil, err
	}
	cells, err := s.Layout.Extract(s.Grid, n)
	if err != nil {
		return nil, err
	}

	p := newPage()

	if n == group.Start {
		p.font(bold, 18)
		p.centered(group.Range(), 25*mm)
	}

	p.font(bold, 14)
	p.centered(fmt.Sprintf("Tile %d", tile.Number), 40*mm)

	top := 55 * mm
	left := 35 * mm
	cell := 10 * mm
	cell = min(cell, (SheetWidth-left-20*mm)/float64(s.Layout.TileW))
	cell = min(cell, (SheetHeight-top-30*mm)/float64(s.Layout.TileH))

	p.font(mono, 10)
	for row, symbols := range cells {
		y := top + float64(row)*cell
		p.SetRGB(0, 0, 0)
		p.DrawStringAnchored(fmt.Sprint(row+1), left-5*mm, y+cell/2, 1, 0.5)

		for col, sym := range symbols {
			x := left + float64(col)*cell

			p.SetRGB(0.8, 0.8, 0.8)
			p.SetLineWidth(0.5)
			p.DrawRectangle(x, y, cell, cell)
			p.Stroke()

			if sym == 0 {
				continue
			}
			p.SetRGB(0, 0, 0)
			p.DrawStringAnchored(fmt.Sprint(sym), x+cell/2, y+cell/2, 0.5, 0.5)
		}
	}

	p.SetRGB(0, 0, 0)
	p.font(regular, 8)
	p.centered(strings.TrimSuffix(s.Brand.URLBase, "/assembly"), SheetHeight-15*mm)

	return p.image()
}

// Legend renders the color guide: symbol, bag code, hex, count, percentage
// and a swatch for every entry, followed by totals and the bags needed.
func (s *Sheets) Legend() (image.Image, error) {
	p := newPage()

	p.font(bold, 20)
	p.centered("Color Legend", 30*mm)

	columns := []struct {
		title string
		x     float64
	}{
		{"Symbol", 25 * mm},
		{"Bag Code", 50 * mm},
		{"Hex", 80 * mm},
		{"Count", 110 * mm},
		{"Percent", 140 * mm},
		{"Swatch", 170 * mm},
	}

	headerY := 50 * mm
	p.font(bold, 11)
	for _, col := range columns {
		p.DrawStringAnchored(col.title, col.x, headerY, 0, 0.5)
	}
	p.SetLineWidth(1)
	p.DrawLine(20*mm, headerY+4*mm, 190*mm, headerY+4*mm)
	p.Stroke()

	percents := s.Counts.Percentages()
	bags := s.Counts.Bags(s.BagCapacity)
	rowH := 12 * mm

	p.font(regular, 10)
	for i, e := range s.Palette.Entries() {
		y := headerY + float64(i+1)*rowH
		values := []string{
			fmt.Sprint(e.Symbol),
			palette.BagCode(e.Symbol),
			e.Hex,
			thousands(s.Counts[i]),
			fmt.Sprintf("%.1f%%", percents[i]),
		}
		for c, v := range values {
			p.DrawStringAnchored(v, columns[c].x, y, 0, 0.5)
		}

		p.SetRGB255(int(e.RGB.R), int(e.RGB.G), int(e.RGB.B))
		p.DrawRectangle(columns[5].x, y-3*mm, 15*mm, 6*mm)
		p.FillPreserve()
		p.SetRGB(0, 0, 0)
		p.SetLineWidth(1)
		p.Stroke()
	}

	totalY := headerY + 9*rowH
	p.font(bold, 10)
	p.DrawStringAnchored("TOTAL", columns[1].x, totalY, 0, 0.5)
	p.DrawStringAnchored(thousands(s.Counts.Total()), columns[3].x, totalY, 0, 0.5)
	p.DrawStringAnchored("100.0%", columns[4].x, totalY, 0, 0.5)

	var totalBags int
	for _, b := range bags {
		totalBags += b
	}

	p.font(regular, 10)
	p.DrawStringAnchored(fmt.Sprintf(
		"Bag capacity: %d drills/bag (bags = ceil(count / %d))",
		s.BagCapacity, s.BagCapacity,
	), 25*mm, totalY+20*mm, 0, 0.5)
	p.DrawStringAnchored(
		fmt.Sprintf("Total bags needed: %d", totalBags),
		25*mm, totalY+26*mm, 0, 0.5,
	)

	return p.image()
}

// thousands formats n with comma separated groups of three digits.
func thousands(n int) string {
	if n < 0 {
		return "-" + thousands(-n)
	}
	s := fmt.Sprint(n)

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

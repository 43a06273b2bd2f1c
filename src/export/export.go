// Package export renders the printable pattern of a symbol grid and packs it
// together with the color counts and a machine readable description into a
// zip archive.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"runtime"
	"time"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"

	"github.com/tessella/tessella/src/pipeline"
)

// Names of the files in an export pack.
const (
	CoverFile  = "pattern/cover.png"
	LegendFile = "pattern/legend.png"
	CountsFile = "counts.csv"
	SpecFile   = "spec.json"
)

// PreviewScale is the number of pixels per cell side of the preview image in
// the pack.
const PreviewScale = 10

// TileFile returns the pack file name of the sheet for tile n.
func TileFile(n int) string {
	return fmt.Sprintf("pattern/tile-%03d.png", n)
}

// Brand is the text printed on the cover and the base of the assembly links.
type Brand struct {
	Hashtag   string `json:"hashtag"`
	SiteLabel string `json:"site_label"`
	QRLabel   string `json:"qr_label"`
	URLBase   string `json:"url_base"`
}

// Pack is everything needed to produce the export archive of one job.
type Pack struct {
	JobID   string
	Created time.Time

	Result  *pipeline.Result
	Options pipeline.Options

	Brand       Brand
	BagCapacity int

	// Link creates the assembly link printed as a QR code on the cover.
	Link AssemblyLink

	// PreviewFormat is the format of the full size preview. Defaults to PNG.
	PreviewFormat Format
}

// WritePack writes the zip archive for p into w.
func WritePack(w io.Writer, p Pack) error {
	if p.Result == nil {
		return fmt.Errorf("export pack without a result")
	}
	if p.Created.IsZero() {
		p.Created = time.Now()
	}
	if p.PreviewFormat == "" {
		p.PreviewFormat = PNG
	}

	assemblyURL, err := p.Link.URL(p.JobID, p.Created)
	if err != nil {
		return fmt.Errorf("creating assembly link: %w", err)
	}

	sheets := &Sheets{
		JobID:       p.JobID,
		Created:     p.Created,
		Palette:     p.Result.Palette,
		Grid:        p.Result.Grid,
		Counts:      p.Result.Counts,
		Layout:      p.Result.Layout,
		Brand:       p.Brand,
		BagCapacity: p.BagCapacity,
		AssemblyURL: assemblyURL,
	}

	tiles, err := renderTiles(sheets)
	if err != nil {
		return err
	}

	files := []packFile{
		{CoverFile, encodeSheet(sheets.Cover)},
	}
	for i, tile := range tiles {
		tile := tile
		files = append(files, packFile{TileFile(i + 1), func(w io.Writer) error {
			_, err := w.Write(tile)
			return err
		}})
	}
	files = append(files,
		packFile{LegendFile, encodeSheet(sheets.Legend)},
		packFile{"preview." + p.PreviewFormat.Extension(), func(w io.Writer) error {
			img := ScaledPreview(p.Result.Grid, p.Result.Palette, PreviewScale)
			return EncodePreview(w, img, p.PreviewFormat)
		}},
		packFile{CountsFile, func(w io.Writer) error {
			return WriteCounts(w, p.Result.Palette, p.Result.Counts, p.BagCapacity)
		}},
		packFile{SpecFile, func(w io.Writer) error {
			return WriteSpec(w, NewSpec(p, assemblyURL))
		}},
	)

	zw := zip.NewWriter(w)
	for _, file := range files {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     file.name,
			Method:   zip.Deflate,
			Modified: p.Created,
		})
		if err != nil {
			return fmt.Errorf("creating %s in archive: %w", file.name, err)
		}

		if err := file.write(fw); err != nil {
			return fmt.Errorf("writing %s: %w", file.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}

	return nil
}

type packFile struct {
	name  string
	write func(io.Writer) error
}

func encodeSheet(render func() (image.Image, error)) func(io.Writer) error {
	return func(w io.Writer) error {
		img, err := render()
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	}
}

// renderTiles renders and encodes all tile sheets in parallel. The result is
// in tile order.
func renderTiles(s *Sheets) ([][]byte, error) {
	out := make([][]byte, s.Layout.Total)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i := range out {
		i := i
		g.Go(func() error {
			img, err := s.Tile(i + 1)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return fmt.Errorf("encoding tile %d: %w", i+1, err)
			}
			out[i] = buf.Bytes()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

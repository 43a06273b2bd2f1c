package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/xfmoulet/qoi"

	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/preprocess"
)

// PreviewHeight is the height in pixels of the previews returned to clients.
const PreviewHeight = 800

// Format is an image encoding for previews.
type Format string

// Supported preview formats.
const (
	PNG Format = "png"
	QOI Format = "qoi"
)

// ParseFormat returns the format with the given name. An empty name is PNG.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case PNG, "":
		return PNG, nil
	case QOI:
		return QOI, nil
	}
	return "", fmt.Errorf("unsupported preview format %q", name)
}

// Extension returns the file name extension for the format, without a dot.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == QOI {
		return "image/qoi"
	}
	return "image/png"
}

// RenderPreview draws every cell of g with its palette color and scales the
// result to the given height with nearest neighbour sampling.
func RenderPreview(g *grid.Grid, pal *palette.Palette, height int) *image.RGBA {
	return preprocess.UpscaleToHeight(g.Reconstruct(pal).Image(), height)
}

// ScaledPreview draws every cell of g as a scale by scale square.
func ScaledPreview(g *grid.Grid, pal *palette.Palette, scale int) *image.RGBA {
	return preprocess.Upscale(g.Reconstruct(pal).Image(), scale)
}

// EncodePreview writes img to w in format f.
func EncodePreview(w io.Writer, img image.Image, f Format) error {
	switch f {
	case QOI:
		return qoi.Encode(w, img)
	case PNG:
		return png.Encode(w, img)
	}
	return fmt.Errorf("unsupported preview format %q", f)
}

// PreviewDataURL returns the client preview of g as a base64 data URL.
func PreviewDataURL(g *grid.Grid, pal *palette.Palette, f Format) (string, error) {
	var buf bytes.Buffer
	if err := EncodePreview(&buf, RenderPreview(g, pal, PreviewHeight), f); err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"data:%s;base64,%s",
		f.ContentType(),
		base64.StdEncoding.EncodeToString(buf.Bytes()),
	), nil
}

package webserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/tessella/tessella/src/config"
	"github.com/tessella/tessella/src/dither"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/pipeline"
	"github.com/tessella/tessella/src/preprocess"
)

var (
	// ErrInvalidGrid is returned for grid sizes outside of the configured
	// bounds.
	ErrInvalidGrid = errors.New("invalid grid size")

	// ErrInvalidRotation is returned for rotations outside of [-360, 360].
	ErrInvalidRotation = errors.New("invalid rotation")

	// ErrNoStyles is returned when none of the requested styles is known.
	ErrNoStyles = errors.New("no known styles requested")
)

// defaultStyles are processed when a preview request names none.
var defaultStyles = []string{"original", "warm", "pop"}

type gridSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// previewPayload is the JSON sent together with the uploaded image. It is
// stored with the job so that a later final request may omit any of it.
type previewPayload struct {
	Crop      *preprocess.Rect `json:"crop,omitempty"`
	RotateDeg int              `json:"rotate_deg"`
	Grid      gridSize         `json:"grid"`
	Styles    []string         `json:"styles,omitempty"`
	Options   json.RawMessage  `json:"options,omitempty"`
}

// finalRequest asks for the export pack of a previewed job. Fields which are
// not set are taken from the preview request.
type finalRequest struct {
	JobID         string           `json:"job_id"`
	Style         string           `json:"style"`
	PaletteID     string           `json:"palette_id"`
	Grid          *gridSize        `json:"grid"`
	Crop          *preprocess.Rect `json:"crop"`
	RotateDeg     *int             `json:"rotate_deg"`
	Options       json.RawMessage  `json:"options"`
	OutputProfile outputProfile    `json:"output_profile"`
}

type outputProfile struct {
	Tiles         *config.Tiles `json:"tiles"`
	Brand         *config.Brand `json:"brand"`
	PreviewFormat string        `json:"preview_format"`
}

// validateGrid checks g against the configured bounds.
func validateGrid(bounds config.Grid, g gridSize) error {
	if g.W < bounds.MinW || g.W > bounds.MaxW {
		return fmt.Errorf("%w: width must be in [%d, %d], got %d",
			ErrInvalidGrid, bounds.MinW, bounds.MaxW, g.W)
	}
	if g.H < bounds.MinH || g.H > bounds.MaxH {
		return fmt.Errorf("%w: height must be in [%d, %d], got %d",
			ErrInvalidGrid, bounds.MinH, bounds.MaxH, g.H)
	}
	return nil
}

func validateRotation(deg int) error {
	if deg < -360 || deg > 360 {
		return fmt.Errorf("%w: rotate_deg must be in [-360, 360], got %d",
			ErrInvalidRotation, deg)
	}
	return nil
}

// parseOptions reads the processing options sent by a client over the
// defaults. Unknown dither methods fall back to Floyd-Steinberg.
func parseOptions(raw json.RawMessage) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(raw, []byte("null")) {
		return opts, nil
	}

	if err := json.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("%w: %s", preprocess.ErrInvalidOptions, err)
	}

	var named struct {
		Dither *string `json:"dither"`
	}
	if err := json.Unmarshal(raw, &named); err == nil && named.Dither != nil {
		if _, ok := dither.ParseMethod(*named.Dither); !ok {
			log.Printf("Unknown dither method %q, using %s\n", *named.Dither, opts.Dither)
		}
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}

	return opts, nil
}

// resolveStyles returns the palettes for the known styles in the order they
// were requested. Unknown and repeated styles are skipped.
func resolveStyles(
	reg *palette.Registry,
	styles []string,
) ([]*palette.Palette, []string, error) {
	if len(styles) == 0 {
		styles = defaultStyles
	}

	var (
		palettes []*palette.Palette
		skipped  []string
		seen     = make(map[string]bool)
	)
	for _, style := range styles {
		pal, err := reg.Get(style)
		if err != nil {
			skipped = append(skipped, style)
			continue
		}

		if seen[pal.Name()] {
			continue
		}
		seen[pal.Name()] = true
		palettes = append(palettes, pal)
	}

	if len(palettes) == 0 {
		return nil, skipped, ErrNoStyles
	}

	return palettes, skipped, nil
}

// tileSize returns the configured tile geometry with every non-zero field of
// override applied.
func tileSize(cfg config.Tiles, override *config.Tiles) pipeline.TileSize {
	ts := pipeline.TileSize{
		W:         cfg.CellW,
		H:         cfg.CellH,
		GroupSize: cfg.GroupSize,
	}
	if override == nil {
		return ts
	}

	if override.CellW > 0 {
		ts.W = override.CellW
	}
	if override.CellH > 0 {
		ts.H = override.CellH
	}
	if override.GroupSize > 0 {
		ts.GroupSize = override.GroupSize
	}
	return ts
}

// respondWithJSON encodes resp as the body of a response with the given
// status code.
func respondWithJSON(w http.ResponseWriter, code int, resp any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		log.Printf("Error writing JSON response: %s\n", err)
	}
}

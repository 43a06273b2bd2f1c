package webserver

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tessella/tessella/src/config"
	"github.com/tessella/tessella/src/export"
	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/jobs"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/tiling"
	"github.com/tessella/tessella/src/webserver/webutils"
)

// Limits for the query parameters of image endpoints.
const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024

	maxPreviewScale = 40
)

// jobResult finds the grid of the job and style in the request path. It
// responds with an error and returns false when there is none.
func jobResult(
	w http.ResponseWriter,
	r *http.Request,
	store jobs.Store,
	palettes *palette.Registry,
) (*grid.Grid, *palette.Palette, bool) {
	vars := mux.Vars(r)
	jobID, style := vars["jobID"], vars["style"]
	if jobID == "" || style == "" {
		notFound(w, r)
		return nil, nil, false
	}

	pal, err := palettes.Get(style)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusNotFound, "Unknown style %q", style)
		return nil, nil, false
	}

	g, err := store.Result(r.Context(), jobID, pal.Name())
	if errors.Is(err, jobs.ErrNotFound) {
		webutils.JSONErrorf(w, http.StatusNotFound, "No %s result for job %s", style, jobID)
		return nil, nil, false
	} else if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error finding result: %s", err)
		return nil, nil, false
	}

	return g, pal, true
}

// intQuery returns the integer query parameter name or def when it is not
// set. The value is clamped to [lo, hi].
func intQuery(r *http.Request, name string, def, lo, hi int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return def, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}

	if n < lo {
		return lo, nil
	}
	if n > hi {
		return hi, nil
	}
	return n, nil
}

type tileHandler struct {
	store    jobs.Store
	palettes *palette.Registry
	tiles    config.Tiles
}

// NewTileHandler returns a handler which responds with the symbols of a
// single tile of a job's grid.
func NewTileHandler(
	store jobs.Store,
	palettes *palette.Registry,
	tiles config.Tiles,
) http.Handler {
	return &tileHandler{
		store:    store,
		palettes: palettes,
		tiles:    tiles,
	}
}

type tileResponse struct {
	JobID string      `json:"job_id"`
	Style string      `json:"style"`
	Tile  tiling.Tile `json:"tile"`
	Group struct {
		tiling.Group
		Range string `json:"range"`
	} `json:"group"`
	TotalTiles int         `json:"total_tiles"`
	Cells      [][]int     `json:"cells"`
	Colors     []colorJSON `json:"colors"`
}

func (h *tileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tileNum, err := strconv.Atoi(mux.Vars(r)["tileNum"])
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Bad tile number: %s", err)
		return
	}

	g, pal, ok := jobResult(w, r, h.store, h.palettes)
	if !ok {
		return
	}

	ts := tileSize(h.tiles, nil)
	layout, err := tiling.NewLayout(g.W, g.H, ts.W, ts.H, ts.GroupSize)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error creating layout: %s", err)
		return
	}

	tile, err := layout.Bounds(tileNum)
	if errors.Is(err, tiling.ErrTileOutOfRange) {
		webutils.JSONErrorf(w, http.StatusNotFound, "%s", err)
		return
	} else if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "%s", err)
		return
	}

	group, err := layout.GroupOf(tileNum)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "%s", err)
		return
	}

	symbols, err := layout.Extract(g, tileNum)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "%s", err)
		return
	}

	resp := tileResponse{
		JobID:      mux.Vars(r)["jobID"],
		Style:      pal.Name(),
		Tile:       tile,
		TotalTiles: layout.Total,
		Cells:      make([][]int, 0, len(symbols)),
		Colors:     paletteToJSON(pal).Colors,
	}
	resp.Group.Group = group
	resp.Group.Range = group.Range()

	// Symbols are bytes which encoding/json would write as base64.
	for _, row := range symbols {
		cells := make([]int, len(row))
		for i, s := range row {
			cells[i] = int(s)
		}
		resp.Cells = append(resp.Cells, cells)
	}

	respondWithJSON(w, http.StatusOK, resp)
}

type jobPreviewHandler struct {
	store    jobs.Store
	palettes *palette.Registry
}

// NewJobPreviewHandler returns a handler which renders the stored grid of a
// job as an image. Every cell is a square of `scale` pixels and the image
// format is chosen with the `format` query parameter.
func NewJobPreviewHandler(store jobs.Store, palettes *palette.Registry) http.Handler {
	return &jobPreviewHandler{
		store:    store,
		palettes: palettes,
	}
}

func (h *jobPreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "%s", err)
		return
	}

	scale, err := intQuery(r, "scale", export.PreviewScale, 1, maxPreviewScale)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Bad scale: %s", err)
		return
	}

	g, pal, ok := jobResult(w, r, h.store, h.palettes)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.EncodePreview(&buf, export.ScaledPreview(g, pal, scale), format); err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error encoding preview: %s", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "max-age=3600")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error sending preview: %s\n", err)
	}
}

type qrHandler struct {
	store jobs.Store
	link  export.AssemblyLink
	now   func() time.Time
}

// NewQRHandler returns a handler which responds with a PNG QR code of the
// assembly link of a job.
func NewQRHandler(store jobs.Store, link export.AssemblyLink) http.Handler {
	return &qrHandler{
		store: store,
		link:  link,
		now:   time.Now,
	}
}

func (h *qrHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	size, err := intQuery(r, "size", defaultQRSize, minQRSize, maxQRSize)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Bad size: %s", err)
		return
	}

	jobID := mux.Vars(r)["jobID"]
	if _, err := h.store.Get(r.Context(), jobID); errors.Is(err, jobs.ErrNotFound) {
		webutils.JSONErrorf(w, http.StatusNotFound, "Job not found")
		return
	} else if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error finding job: %s", err)
		return
	}

	link, err := h.link.URL(jobID, h.now())
	if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "%s", err)
		return
	}

	png, err := export.QRCode(link, size)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "%s", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		log.Printf("Error sending QR code: %s\n", err)
	}
}

type deleteJobHandler struct {
	store jobs.Store
}

// NewDeleteJobHandler returns a handler which removes a job together with
// its photo and results.
func NewDeleteJobHandler(store jobs.Store) http.Handler {
	return &deleteJobHandler{store: store}
}

func (h *deleteJobHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobID"]

	err := h.store.Delete(r.Context(), jobID)
	if errors.Is(err, jobs.ErrNotFound) {
		webutils.JSONErrorf(w, http.StatusNotFound, "Job not found")
		return
	} else if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error removing job: %s", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

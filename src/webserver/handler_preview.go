package webserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tessella/tessella/src/config"
	"github.com/tessella/tessella/src/export"
	"github.com/tessella/tessella/src/jobs"
	"github.com/tessella/tessella/src/metrics"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/pipeline"
	"github.com/tessella/tessella/src/preprocess"
	"github.com/tessella/tessella/src/webserver/webutils"
)

// multipartMemory is the part of a multipart upload kept in memory. The rest
// goes to temporary files.
const multipartMemory = 8 << 20

type previewHandler struct {
	cfg       config.Config
	store     jobs.Store
	processor Processor
	palettes  *palette.Registry
}

// NewPreviewHandler returns a handler which accepts a photo upload and
// responds with a preview of the pattern in every requested style. The photo
// is stored as a new job so that it can be finalized later.
func NewPreviewHandler(
	cfg config.Config,
	store jobs.Store,
	processor Processor,
	palettes *palette.Registry,
) http.Handler {
	return &previewHandler{
		cfg:       cfg,
		store:     store,
		processor: processor,
		palettes:  palettes,
	}
}

type previewResponse struct {
	JobID    string                    `json:"job_id"`
	Grid     gridSize                  `json:"grid"`
	Previews map[string]string         `json:"previews"`
	Counts   map[string][]int          `json:"counts"`
	Percents map[string][]float64      `json:"percents"`
	Metrics  map[string]metrics.Report `json:"metrics"`
	Skipped  []string                  `json:"skipped_styles,omitempty"`
}

func (h *previewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes())

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			webutils.JSONErrorf(w, http.StatusRequestEntityTooLarge,
				"File too large (max %dMB)", h.cfg.MaxUploadMB)
			return
		}
		webutils.JSONErrorf(w, http.StatusBadRequest, "Error parsing form: %s", err)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	upload, err := readUpload(r)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "%s", err)
		return
	}

	payloadJSON := []byte(r.FormValue("payload"))
	if len(bytes.TrimSpace(payloadJSON)) == 0 {
		payloadJSON = []byte("{}")
	}

	payload := previewPayload{
		Grid: gridSize{W: h.cfg.Grid.DefaultW, H: h.cfg.Grid.DefaultH},
	}
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid payload: %s", err)
		return
	}

	opts, err := parseOptions(payload.Options)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid payload: %s", err)
		return
	}
	if err := validateGrid(h.cfg.Grid, payload.Grid); err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid payload: %s", err)
		return
	}
	if err := validateRotation(payload.RotateDeg); err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid payload: %s", err)
		return
	}

	palettes, skipped, err := resolveStyles(h.palettes, payload.Styles)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid payload: %s", err)
		return
	}

	img, format, err := preprocess.Decode(bytes.NewReader(upload))
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid image: %s", err)
		return
	}

	source, err := pipeline.Prepare(img, pipeline.Geometry{
		Crop:      payload.Crop,
		RotateDeg: payload.RotateDeg,
		GridW:     payload.Grid.W,
		GridH:     payload.Grid.H,
	}, opts)
	if errors.Is(err, preprocess.ErrInvalidCrop) {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid payload: %s", err)
		return
	} else if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Processing error: %s", err)
		return
	}

	ctx := r.Context()
	results, err := h.processor.RunStyles(ctx, source, palettes, opts,
		tileSize(h.cfg.Tiles, nil))
	if err != nil {
		log.Printf("Error processing preview: %s\n", err)
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Processing error: %s", err)
		return
	}

	job := jobs.Job{
		ID:          jobs.NewID(),
		CreatedAt:   time.Now(),
		InputFormat: format,
		GridW:       payload.Grid.W,
		GridH:       payload.Grid.H,
		Payload:     payloadJSON,
	}

	if err := h.saveJob(r, job, upload, results); err != nil {
		log.Printf("Error saving job %s: %s\n", job.ID, err)
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error saving job: %s", err)
		return
	}

	resp := previewResponse{
		JobID:    job.ID,
		Grid:     payload.Grid,
		Previews: make(map[string]string, len(results)),
		Counts:   make(map[string][]int, len(results)),
		Percents: make(map[string][]float64, len(results)),
		Metrics:  make(map[string]metrics.Report, len(results)),
		Skipped:  skipped,
	}

	for _, res := range results {
		style := res.Palette.Name()

		dataURL, err := export.PreviewDataURL(res.Grid, res.Palette, export.PNG)
		if err != nil {
			webutils.JSONErrorf(w, http.StatusInternalServerError,
				"Rendering %s preview: %s", style, err)
			return
		}

		resp.Previews[style] = dataURL
		resp.Counts[style] = append([]int(nil), res.Counts[:]...)
		resp.Percents[style] = append([]float64(nil), res.Percents[:]...)
		resp.Metrics[style] = res.Metrics
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// saveJob stores the upload and the grid of every style. A partially saved
// job is removed.
func (h *previewHandler) saveJob(
	r *http.Request,
	job jobs.Job,
	upload []byte,
	results []*pipeline.Result,
) error {
	ctx := r.Context()
	if err := h.store.Create(ctx, job, upload); err != nil {
		return err
	}

	for _, res := range results {
		err := h.store.SaveResult(ctx, job.ID, res.Palette.Name(), res.Grid)
		if err == nil {
			continue
		}

		if delErr := h.store.Delete(ctx, job.ID); delErr != nil {
			log.Printf("Error removing partially saved job %s: %s\n", job.ID, delErr)
		}
		return fmt.Errorf("saving %s result: %w", res.Palette.Name(), err)
	}

	return nil
}

func readUpload(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("reading image from form: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	return data, nil
}

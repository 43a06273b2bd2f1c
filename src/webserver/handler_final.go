package webserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/tessella/tessella/src/config"
	"github.com/tessella/tessella/src/export"
	"github.com/tessella/tessella/src/jobs"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/pipeline"
	"github.com/tessella/tessella/src/preprocess"
	"github.com/tessella/tessella/src/webserver/webutils"
)

type finalHandler struct {
	cfg       config.Config
	store     jobs.Store
	processor Processor
	palettes  *palette.Registry
}

// NewFinalHandler returns a handler which processes the stored photo of a job
// once more with a single style and responds with the export pack zip.
func NewFinalHandler(
	cfg config.Config,
	store jobs.Store,
	processor Processor,
	palettes *palette.Registry,
) http.Handler {
	return &finalHandler{
		cfg:       cfg,
		store:     store,
		processor: processor,
		palettes:  palettes,
	}
}

func (h *finalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req finalRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Error parsing JSON request: %s.", err)
		return
	}

	if req.JobID == "" {
		webutils.JSONErrorf(w, http.StatusBadRequest, "job_id is required")
		return
	}

	ctx := r.Context()
	job, err := h.store.Get(ctx, req.JobID)
	if errors.Is(err, jobs.ErrNotFound) {
		webutils.JSONErrorf(w, http.StatusNotFound, "Job not found")
		return
	} else if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error finding job: %s", err)
		return
	}

	style := req.Style
	if style == "" {
		style = req.PaletteID
	}
	pal, err := h.palettes.Get(style)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid style %q", style)
		return
	}
	style = pal.Name()

	geo, opts, err := h.resolve(job, req)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid request: %s", err)
		return
	}

	format, err := export.ParseFormat(req.OutputProfile.PreviewFormat)
	if err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid request: %s", err)
		return
	}

	input, err := h.store.Input(ctx, job.ID)
	if errors.Is(err, jobs.ErrNotFound) {
		webutils.JSONErrorf(w, http.StatusNotFound, "Input file not found")
		return
	} else if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error reading input: %s", err)
		return
	}

	img, _, err := preprocess.Decode(bytes.NewReader(input))
	if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error decoding input: %s", err)
		return
	}

	source, err := pipeline.Prepare(img, geo, opts)
	if errors.Is(err, preprocess.ErrInvalidCrop) {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Invalid request: %s", err)
		return
	} else if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Processing error: %s", err)
		return
	}

	res, err := h.processor.Run(ctx, pipeline.Request{
		Source:  source,
		Palette: pal,
		Options: opts,
		Tiles:   tileSize(h.cfg.Tiles, req.OutputProfile.Tiles),
	})
	if err != nil {
		log.Printf("Error processing job %s: %s\n", job.ID, err)
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Processing error: %s", err)
		return
	}

	if err := h.store.SaveResult(ctx, job.ID, style, res.Grid); err != nil {
		log.Printf("Error saving final %s result of job %s: %s\n", style, job.ID, err)
	}

	brand := mergeBrand(h.cfg.Brand, req.OutputProfile.Brand)

	var buf bytes.Buffer
	err = export.WritePack(&buf, export.Pack{
		JobID:         job.ID,
		Created:       time.Now(),
		Result:        res,
		Options:       opts,
		Brand:         export.Brand(brand),
		BagCapacity:   h.cfg.BagCapacity,
		Link:          assemblyLink(h.cfg, brand.URLBase),
		PreviewFormat: format,
	})
	if err != nil {
		log.Printf("Error writing pack for job %s: %s\n", job.ID, err)
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error creating pack: %s", err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		`attachment; filename="tessella_pattern_%s.zip"`, style,
	))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error sending pack for job %s: %s\n", job.ID, err)
	}
}

// resolve returns the geometry and options for the final processing. Values
// missing from the request are taken from the preview request of the job.
func (h *finalHandler) resolve(
	job jobs.Job,
	req finalRequest,
) (pipeline.Geometry, pipeline.Options, error) {
	var stored previewPayload
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &stored); err != nil {
			log.Printf("Error reading stored payload of job %s: %s\n", job.ID, err)
		}
	}

	geo := pipeline.Geometry{
		Crop:      stored.Crop,
		RotateDeg: stored.RotateDeg,
		GridW:     job.GridW,
		GridH:     job.GridH,
	}

	if req.Grid != nil {
		geo.GridW, geo.GridH = req.Grid.W, req.Grid.H
	}
	if req.Crop != nil {
		geo.Crop = req.Crop
	}
	if req.RotateDeg != nil {
		geo.RotateDeg = *req.RotateDeg
	}

	if err := validateGrid(h.cfg.Grid, gridSize{W: geo.GridW, H: geo.GridH}); err != nil {
		return geo, pipeline.Options{}, err
	}
	if err := validateRotation(geo.RotateDeg); err != nil {
		return geo, pipeline.Options{}, err
	}

	rawOpts := req.Options
	if len(rawOpts) == 0 {
		rawOpts = stored.Options
	}

	opts, err := parseOptions(rawOpts)
	if err != nil {
		return geo, opts, err
	}

	return geo, opts, nil
}

// mergeBrand returns the configured brand with every non-empty field of
// override applied.
func mergeBrand(cfg config.Brand, override *config.Brand) config.Brand {
	if override == nil {
		return cfg
	}

	if override.Hashtag != "" {
		cfg.Hashtag = override.Hashtag
	}
	if override.SiteLabel != "" {
		cfg.SiteLabel = override.SiteLabel
	}
	if override.QRLabel != "" {
		cfg.QRLabel = override.QRLabel
	}
	if override.URLBase != "" {
		cfg.URLBase = override.URLBase
	}
	return cfg
}

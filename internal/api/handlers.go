package api

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/render"

	"github.com/VoidMesh/isoline/internal/runs"
	"github.com/VoidMesh/isoline/services/contour"
	"github.com/VoidMesh/isoline/services/export"
	"github.com/VoidMesh/isoline/services/marching"
	"github.com/VoidMesh/isoline/services/noise"
)

const (
	extractTimeout  = runs.ExtractTimeout
	defaultPNGScale = 8
	maxPNGScale     = 32
)

type Handler struct {
	defaults contour.Params
}

func NewHandler(defaults contour.Params) *Handler {
	return &Handler{
		defaults: defaults,
	}
}

// ContourResponse is the JSON rendering of one extraction.
type ContourResponse struct {
	Params        contour.Params         `json:"params"`
	Cells         int                    `json:"cells"`
	Segments      int                    `json:"segments"`
	CaseHistogram [16]int                `json:"case_histogram"`
	Contours      []marching.CellContour `json:"contours"`
	DurationMS    float64                `json:"duration_ms"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "isoline",
		"version":   "1.0.0",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetContours(w http.ResponseWriter, r *http.Request) {
	res, ok := h.extract(w, r)
	if !ok {
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ContourResponse{
		Params:        res.Params,
		Cells:         len(res.Contours),
		Segments:      res.Segments(),
		CaseHistogram: res.CaseHistogram,
		Contours:      res.Contours,
		DurationMS:    float64(res.Duration.Microseconds()) / 1000,
	})
}

func (h *Handler) GetContoursSVG(w http.ResponseWriter, r *http.Request) {
	opts := export.DefaultSVGOptions()
	q := r.URL.Query()
	if s := q.Get("scale"); s != "" {
		scale, err := strconv.ParseFloat(s, 64)
		if err != nil || scale <= 0 {
			h.renderError(w, r, http.StatusBadRequest, "invalid scale", err)
			return
		}
		opts.Scale = scale
	}
	if s := q.Get("fill"); s != "" {
		fill, err := strconv.ParseBool(s)
		if err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid fill flag", err)
			return
		}
		opts.Fill = fill
	}

	res, ok := h.extract(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.SVG(&buf, res.Params.Width, res.Params.Height, res.Contours, opts); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to render svg", err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) GetContoursPNG(w http.ResponseWriter, r *http.Request) {
	scale := defaultPNGScale
	if s := r.URL.Query().Get("scale"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxPNGScale {
			h.renderError(w, r, http.StatusBadRequest, "invalid scale", err)
			return
		}
		scale = n
	}

	// Reject oversized images before paying for the extraction.
	if params, err := parseParams(r, h.defaults); err == nil {
		if err := export.CheckRasterSize(params.Width, params.Height, scale); err != nil {
			h.renderError(w, r, runs.StatusFor(err), "image too large, lower width, height or scale", err)
			return
		}
	}

	res, ok := h.extract(w, r)
	if !ok {
		return
	}
	if len(res.Contours) == 0 {
		h.renderError(w, r, http.StatusBadRequest, "field needs at least 2x2 samples to render", nil)
		return
	}

	var buf bytes.Buffer
	if err := export.PNG(&buf, res.Params.Width, res.Params.Height, res.Contours, scale); err != nil {
		h.renderError(w, r, runs.StatusFor(err), "failed to render png", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetCases lists the 16 contour templates.
func (h *Handler) GetCases(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"cases": marching.Table(),
	})
}

func (h *Handler) extract(w http.ResponseWriter, r *http.Request) (*contour.Result, bool) {
	params, err := parseParams(r, h.defaults)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid query parameter", err)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), extractTimeout)
	defer cancel()

	res, err := contour.Extract(ctx, params)
	if err != nil {
		h.renderError(w, r, runs.StatusFor(err), "failed to extract contours", err)
		return nil, false
	}
	return res, true
}

// parseParams overlays the width, height, seed, threshold and noise query
// parameters onto defaults.
func parseParams(r *http.Request, defaults contour.Params) (contour.Params, error) {
	p := defaults
	q := r.URL.Query()

	if s := q.Get("width"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, err
		}
		p.Width = n
	}
	if s := q.Get("height"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, err
		}
		p.Height = n
	}
	if s := q.Get("seed"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return p, err
		}
		p.Seed = n
	}
	if s := q.Get("threshold"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, err
		}
		p.Threshold = v
	}
	if s := q.Get("noise"); s != "" {
		p.Noise = noise.Kind(s)
	}
	return p, nil
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
	}

	render.Status(r, status)
	render.JSON(w, r, runs.NewErrorResponse(status, message, err))
}

package runs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/isoline/services/contour"
)

// ExtractTimeout bounds the extraction behind a single request.
const ExtractTimeout = 10 * time.Second

// RunHandlers contains all HTTP handlers for stored runs
type RunHandlers struct {
	manager  *Manager
	defaults contour.Params
	timeout  time.Duration
}

// NewRunHandlers creates a new run handlers instance. defaults fill fields
// missing from creation requests.
func NewRunHandlers(manager *Manager, defaults contour.Params) *RunHandlers {
	return &RunHandlers{
		manager:  manager,
		defaults: defaults,
		timeout:  ExtractTimeout,
	}
}

// RegisterRoutes registers all run-related routes
func (h *RunHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/runs", func(r chi.Router) {
		r.Post("/", h.CreateRun)
		r.Get("/", h.ListRuns)
		r.Get("/{runID}", h.GetRun)
		r.Delete("/{runID}", h.DeleteRun)
	})
}

// CreateRun extracts and stores a new run. An empty body uses the defaults.
func (h *RunHandlers) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("Failed to decode run request", "error", err)
		writeErrorResponse(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	params := req.Apply(h.defaults)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	run, err := h.manager.CreateRun(ctx, params)
	if err != nil {
		writeErrorResponse(w, r, StatusFor(err), "Failed to create run", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, run)
}

// ListRuns returns recent runs without their contours
func (h *RunHandlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeErrorResponse(w, r, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	list, err := h.manager.ListRuns(r.Context(), limit)
	if err != nil {
		writeErrorResponse(w, r, StatusFor(err), "Failed to list runs", err)
		return
	}
	total, err := h.manager.CountRuns(r.Context())
	if err != nil {
		writeErrorResponse(w, r, StatusFor(err), "Failed to count runs", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"runs":  list,
		"count": len(list),
		"total": total,
	})
}

// GetRun returns one run including its contours
func (h *RunHandlers) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "runID")

	run, err := h.manager.GetRun(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, r, StatusFor(err), "Failed to get run", err)
		return
	}

	render.JSON(w, r, run)
}

// DeleteRun removes a run
func (h *RunHandlers) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "runID")

	if err := h.manager.DeleteRun(r.Context(), id); err != nil {
		writeErrorResponse(w, r, StatusFor(err), "Failed to delete run", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
	}
	render.Status(r, status)
	render.JSON(w, r, NewErrorResponse(status, message, err))
}

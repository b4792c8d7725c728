package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/VoidMesh/isoline/internal/db"
	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/services/contour"
	"github.com/VoidMesh/isoline/services/marching"
	"github.com/VoidMesh/isoline/services/noise"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Manager runs extractions and persists them as runs.
type Manager struct {
	queries *db.LoggingQueries
	now     func() time.Time
}

func NewManager(database *sql.DB) *Manager {
	return &Manager{
		queries: db.NewLoggingQueries(database),
		now:     time.Now,
	}
}

// CreateRun extracts contours for p and stores the result.
func (m *Manager) CreateRun(ctx context.Context, p contour.Params) (*Run, error) {
	res, err := contour.Extract(ctx, p)
	if err != nil {
		log.Error("failed to extract contours", "error", err, "width", p.Width, "height", p.Height, "seed", p.Seed)
		return nil, err
	}

	hist, err := json.Marshal(res.CaseHistogram)
	if err != nil {
		return nil, fmt.Errorf("failed to encode case histogram: %w", err)
	}
	cells, err := json.Marshal(res.Contours)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contours: %w", err)
	}

	run := &Run{
		ID:            uuid.NewString(),
		Params:        p,
		Segments:      res.Segments(),
		CaseHistogram: res.CaseHistogram,
		Contours:      res.Contours,
		CreatedAt:     m.now().UTC(),
	}

	err = m.queries.CreateRun(ctx, db.CreateRunParams{
		ID:            run.ID,
		Seed:          p.Seed,
		Width:         int64(p.Width),
		Height:        int64(p.Height),
		Threshold:     p.Threshold,
		NoiseKind:     string(p.Noise),
		Segments:      int64(run.Segments),
		CaseHistogram: string(hist),
		Contours:      string(cells),
		CreatedAt:     run.CreatedAt,
	})
	if err != nil {
		log.Error("failed to store run", "error", err, "run_id", run.ID)
		return nil, fmt.Errorf("failed to store run: %w", err)
	}

	logging.WithRunID(run.ID).Info("Run created",
		"width", p.Width,
		"height", p.Height,
		"seed", p.Seed,
		"segments", run.Segments,
	)
	return run, nil
}

// GetRun loads a run together with its contours.
func (m *Manager) GetRun(ctx context.Context, id string) (*Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, db.ErrRunNotFound
	}

	row, err := m.queries.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID: row.ID,
		Params: contour.Params{
			Width:     int(row.Width),
			Height:    int(row.Height),
			Seed:      row.Seed,
			Threshold: row.Threshold,
			Noise:     noise.Kind(row.NoiseKind),
		},
		Segments:  int(row.Segments),
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.CaseHistogram), &run.CaseHistogram); err != nil {
		return nil, fmt.Errorf("failed to decode case histogram: %w", err)
	}
	var cells []marching.CellContour
	if err := json.Unmarshal([]byte(row.Contours), &cells); err != nil {
		return nil, fmt.Errorf("failed to decode contours: %w", err)
	}
	run.Contours = cells
	return run, nil
}

// ListRuns returns the most recent runs without contour payloads.
func (m *Manager) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := m.queries.ListRuns(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	out := make([]Run, len(rows))
	for i, row := range rows {
		out[i] = Run{
			ID: row.ID,
			Params: contour.Params{
				Width:     int(row.Width),
				Height:    int(row.Height),
				Seed:      row.Seed,
				Threshold: row.Threshold,
				Noise:     noise.Kind(row.NoiseKind),
			},
			Segments:  int(row.Segments),
			CreatedAt: row.CreatedAt,
		}
		if err := json.Unmarshal([]byte(row.CaseHistogram), &out[i].CaseHistogram); err != nil {
			return nil, fmt.Errorf("failed to decode case histogram: %w", err)
		}
	}
	return out, nil
}

// CountRuns returns the number of stored runs.
func (m *Manager) CountRuns(ctx context.Context) (int, error) {
	n, err := m.queries.CountRuns(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return int(n), nil
}

func (m *Manager) DeleteRun(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return db.ErrRunNotFound
	}
	if err := m.queries.DeleteRun(ctx, id); err != nil {
		return err
	}
	logging.WithRunID(id).Info("Run deleted")
	return nil
}

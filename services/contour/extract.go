package contour

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/services/field"
	"github.com/VoidMesh/isoline/services/marching"
	"github.com/VoidMesh/isoline/services/noise"
)

// ErrInvalidThreshold is returned for NaN or infinite thresholds.
var ErrInvalidThreshold = errors.New("threshold must be a finite number")

// Params are the inputs of one extraction.
type Params struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Seed      int64      `json:"seed"`
	Threshold float64    `json:"threshold"`
	Noise     noise.Kind `json:"noise"`
}

// DefaultParams is a 100x100 Perlin field with seed 50 split at 0.
func DefaultParams() Params {
	return Params{
		Width:     100,
		Height:    100,
		Seed:      50,
		Threshold: field.DefaultThreshold,
		Noise:     noise.KindPerlin,
	}
}

// Result holds every stage's output of an extraction.
type Result struct {
	Params        Params
	Field         *field.ScalarField
	Grid          *field.BinaryGrid
	Contours      []marching.CellContour
	CaseHistogram [16]int
	Duration      time.Duration
}

// Segments returns the number of isoline segments across all cells.
func (r *Result) Segments() int {
	n := 0
	for _, c := range r.Contours {
		n += len(c.Isolines())
	}
	return n
}

// Extract runs generation, binarization and contour building.
func Extract(ctx context.Context, p Params) (*Result, error) {
	start := time.Now()

	if math.IsNaN(p.Threshold) || math.IsInf(p.Threshold, 0) {
		return nil, ErrInvalidThreshold
	}

	gen, err := noise.New(p.Noise, p.Seed)
	if err != nil {
		return nil, err
	}

	f, err := field.Generate(gen, p.Width, p.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to generate field: %w", err)
	}

	grid := field.Binarize(f, p.Threshold)

	contours, err := marching.BuildParallel(ctx, grid, 0)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Params:        p,
		Field:         f,
		Grid:          grid,
		Contours:      contours,
		CaseHistogram: marching.Histogram(contours),
		Duration:      time.Since(start),
	}

	logging.WithGrid(p.Width, p.Height).Debug("Contours extracted",
		"seed", p.Seed,
		"noise", p.Noise,
		"threshold", p.Threshold,
		"cells", len(contours),
		"inside", grid.Count(),
		"duration", res.Duration,
	)
	return res, nil
}

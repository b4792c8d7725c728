package marching

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/services/field"
)

// CellContour is the positioned geometry of one cell.
type CellContour struct {
	GridX int       `json:"grid_x"`
	GridY int       `json:"grid_y"`
	Case  CaseIndex `json:"case"`
	Rings [][]Point `json:"rings"`
}

// Vertices returns every vertex of the cell in ring order.
func (c CellContour) Vertices() []Point {
	out := []Point{}
	for _, ring := range c.Rings {
		out = append(out, ring...)
	}
	return out
}

// Isolines returns the cell's isoline segments in grid space.
func (c CellContour) Isolines() []Segment {
	tmpl, err := TemplateFor(c.Case)
	if err != nil {
		return nil
	}
	segs := tmpl.Isolines()
	for i, s := range segs {
		segs[i] = Segment{toGrid(c.GridX, c.GridY, s[0]), toGrid(c.GridX, c.GridY, s[1])}
	}
	return segs
}

// toGrid maps a template point into grid space. The template frame is
// rotated against the grid so that a, b, c, d land on the BL, TL, TR, BR
// samples of cell (x, y).
func toGrid(x, y int, p Point) Point {
	return Point{X: float64(x) + 1 - p.Y, Y: float64(y) + p.X}
}

func buildCell(g *field.BinaryGrid, x, y int) (CellContour, error) {
	corners, err := Sample(g, x, y)
	if err != nil {
		return CellContour{}, err
	}
	idx, err := Classify(corners)
	if err != nil {
		return CellContour{}, fmt.Errorf("cell (%d, %d): %w", x, y, err)
	}
	tmpl, err := TemplateFor(idx)
	if err != nil {
		return CellContour{}, fmt.Errorf("cell (%d, %d): %w", x, y, err)
	}

	rings := tmpl.Rings()
	for _, ring := range rings {
		for i, p := range ring {
			ring[i] = toGrid(x, y, p)
		}
	}
	return CellContour{GridX: x, GridY: y, Case: idx, Rings: rings}, nil
}

// Build emits one CellContour per cell of g, x-outer and y-inner, so the
// result has exactly (width-1)*(height-1) records.
func Build(g *field.BinaryGrid) ([]CellContour, error) {
	start := time.Now()
	dims := g.Dims()
	out := make([]CellContour, 0, dims.Cells())

	for x := 0; x < dims.Width-1; x++ {
		for y := 0; y < dims.Height-1; y++ {
			cell, err := buildCell(g, x, y)
			if err != nil {
				return nil, err
			}
			out = append(out, cell)
		}
	}

	logging.WithGrid(dims.Width, dims.Height).Debug("Cell contours built",
		"cells", len(out),
		"duration", time.Since(start),
	)
	return out, nil
}

// BuildParallel is Build with columns spread over up to workers goroutines
// (GOMAXPROCS when workers <= 0). Output order matches Build.
func BuildParallel(ctx context.Context, g *field.BinaryGrid, workers int) ([]CellContour, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("failed to build contours: %w", err)
		}
		return Build(g)
	}

	start := time.Now()
	dims := g.Dims()
	rows := dims.Height - 1
	out := make([]CellContour, dims.Cells())

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for x := 0; x < dims.Width-1; x++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for y := 0; y < rows; y++ {
				cell, err := buildCell(g, x, y)
				if err != nil {
					return err
				}
				out[x*rows+y] = cell
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build contours: %w", err)
	}

	logging.WithGrid(dims.Width, dims.Height).Debug("Cell contours built in parallel",
		"cells", len(out),
		"workers", workers,
		"duration", time.Since(start),
	)
	return out, nil
}

// Histogram counts cells per case.
func Histogram(contours []CellContour) [numCases]int {
	var h [numCases]int
	for _, c := range contours {
		h[c.Case]++
	}
	return h
}

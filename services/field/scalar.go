package field

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/services/noise"
)

// ScalarField is an immutable width x height grid of noise samples.
// Samples are stored column-major: values[x*height+y].
type ScalarField struct {
	dims   Dims
	values []float64
}

// Generate samples gen over a width x height grid. Both axes are normalized
// by width: (x/width, y/width) keeps the noise frequency identical on both
// axes for non-square grids.
func Generate(gen noise.GeneratorInterface, width, height int) (*ScalarField, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	start := time.Now()
	values := make([]float64, width*height)
	w := float64(width)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for x := 0; x < width; x++ {
		g.Go(func() error {
			xp := float64(x) / w
			column := values[x*height : (x+1)*height]
			for y := range column {
				column[y] = gen.GetNoise(xp, float64(y)/w)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to generate field: %w", err)
	}

	logging.WithGrid(width, height).Debug("Scalar field generated",
		"seed", gen.GetSeed(),
		"noise", gen.Kind(),
		"duration", time.Since(start),
	)

	return &ScalarField{
		dims:   Dims{Width: width, Height: height},
		values: values,
	}, nil
}

// NewScalarField builds a field from literal columns, columns[x][y]. All
// columns must have the same length.
func NewScalarField(columns [][]float64) (*ScalarField, error) {
	width := len(columns)
	height := 0
	if width > 0 {
		height = len(columns[0])
	}
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	values := make([]float64, 0, width*height)
	for x, column := range columns {
		if len(column) != height {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrInvalidDimensions, x, len(column), height)
		}
		values = append(values, column...)
	}

	return &ScalarField{dims: Dims{Width: width, Height: height}, values: values}, nil
}

func (f *ScalarField) Width() int  { return f.dims.Width }
func (f *ScalarField) Height() int { return f.dims.Height }
func (f *ScalarField) Dims() Dims  { return f.dims }

// At returns the sample at column x, row y.
func (f *ScalarField) At(x, y int) (float64, error) {
	if err := f.dims.CheckPoint(x, y); err != nil {
		return 0, err
	}
	return f.values[x*f.dims.Height+y], nil
}

// ValueAt returns the sample of the column/row containing the continuous
// position (x, y). Fractions are truncated.
func (f *ScalarField) ValueAt(x, y float64) (float64, error) {
	if x < 0 || y < 0 {
		return 0, fmt.Errorf("%w: (%g, %g)", ErrOutOfRange, x, y)
	}
	return f.At(int(x), int(y))
}

// Range returns the smallest and largest sample.
func (f *ScalarField) Range() (lo, hi float64) {
	lo, hi = f.values[0], f.values[0]
	for _, v := range f.values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

package field

import "fmt"

// DefaultThreshold splits noise samples at their midpoint.
const DefaultThreshold = 0.0

// Flag is a binarized sample, 0 or 1.
type Flag uint8

// BinaryGrid is an immutable grid of 0/1 flags with the dimensions of the
// field it was derived from.
type BinaryGrid struct {
	dims  Dims
	flags []Flag
}

// Binarize maps every sample strictly greater than threshold to 1 and the
// rest to 0.
func Binarize(f *ScalarField, threshold float64) *BinaryGrid {
	flags := make([]Flag, len(f.values))
	for i, v := range f.values {
		if v > threshold {
			flags[i] = 1
		}
	}
	return &BinaryGrid{dims: f.dims, flags: flags}
}

// NewBinaryGrid builds a grid from literal columns, columns[x][y] with y
// growing upward. Values other than 0 and 1 are rejected.
func NewBinaryGrid(columns [][]Flag) (*BinaryGrid, error) {
	width := len(columns)
	height := 0
	if width > 0 {
		height = len(columns[0])
	}
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	flags := make([]Flag, 0, width*height)
	for x, column := range columns {
		if len(column) != height {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrInvalidDimensions, x, len(column), height)
		}
		for y, v := range column {
			if v > 1 {
				return nil, fmt.Errorf("flag at (%d, %d) is %d, want 0 or 1", x, y, v)
			}
		}
		flags = append(flags, column...)
	}

	return &BinaryGrid{dims: Dims{Width: width, Height: height}, flags: flags}, nil
}

func (g *BinaryGrid) Width() int  { return g.dims.Width }
func (g *BinaryGrid) Height() int { return g.dims.Height }
func (g *BinaryGrid) Dims() Dims  { return g.dims }

// At returns the flag at column x, row y.
func (g *BinaryGrid) At(x, y int) (Flag, error) {
	if err := g.dims.CheckPoint(x, y); err != nil {
		return 0, err
	}
	return g.flags[x*g.dims.Height+y], nil
}

// Count returns the number of set flags.
func (g *BinaryGrid) Count() int {
	n := 0
	for _, v := range g.flags {
		n += int(v)
	}
	return n
}

// Columns returns a copy of the grid as columns[x][y].
func (g *BinaryGrid) Columns() [][]Flag {
	columns := make([][]Flag, g.dims.Width)
	for x := range columns {
		columns[x] = append([]Flag(nil), g.flags[x*g.dims.Height:(x+1)*g.dims.Height]...)
	}
	return columns
}

package field

import (
	"errors"
	"fmt"
)

// MaxDimension bounds grid width and height.
const MaxDimension = 1024

var (
	// ErrInvalidDimensions is returned when a grid cannot be allocated or its
	// coordinates cannot be normalized.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrOutOfRange is returned for point or cell indices outside the grid.
	ErrOutOfRange = errors.New("index out of range")
)

// Dims is the size of a rectangular grid.
type Dims struct {
	Width  int
	Height int
}

// CheckDimensions validates a width/height pair before any allocation.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d, both must be positive", ErrInvalidDimensions, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, width, height, MaxDimension)
	}
	return nil
}

// CheckPoint reports whether (x, y) addresses a sample of the grid.
func (d Dims) CheckPoint(x, y int) error {
	return d.check(x, y, 0)
}

// CheckCell reports whether (x, y) is the lower-left corner of a full 2x2
// cell, i.e. 0 <= x < width-1 and 0 <= y < height-1.
func (d Dims) CheckCell(x, y int) error {
	return d.check(x, y, 1)
}

// Cells returns the number of complete cells in the grid.
func (d Dims) Cells() int {
	if d.Width < 2 || d.Height < 2 {
		return 0
	}
	return (d.Width - 1) * (d.Height - 1)
}

func (d Dims) check(x, y, margin int) error {
	if x < 0 || y < 0 || x >= d.Width-margin || y >= d.Height-margin {
		return fmt.Errorf("%w: (%d, %d) outside [0, %d] x [0, %d]",
			ErrOutOfRange, x, y, d.Width-1-margin, d.Height-1-margin)
	}
	return nil
}

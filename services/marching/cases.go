package marching

import (
	"errors"
	"fmt"

	"github.com/VoidMesh/isoline/services/field"
)

// ErrInvariantViolation signals a corner flag or case index that a correct
// classifier can never produce.
var ErrInvariantViolation = errors.New("marching squares invariant violated")

// CaseIndex identifies one of the 16 corner patterns of a cell.
type CaseIndex uint8

const (
	CaseEmpty  CaseIndex = 0
	CaseSaddle CaseIndex = 5
	CaseAlt    CaseIndex = 10
	CaseFull   CaseIndex = 15

	numCases = 16
)

// Saddle reports whether the case has alternating corners (5 or 10).
func (c CaseIndex) Saddle() bool {
	return c == CaseSaddle || c == CaseAlt
}

// Corners holds the four corner flags of a cell in sampling order.
type Corners struct {
	BL, TL, TR, BR field.Flag
}

// Sample reads the corners of the cell whose lower-left sample is (x, y), in
// the order bottom-left, top-left, top-right, bottom-right.
func Sample(g *field.BinaryGrid, x, y int) (Corners, error) {
	if err := g.Dims().CheckCell(x, y); err != nil {
		return Corners{}, fmt.Errorf("failed to sample cell: %w", err)
	}

	// CheckCell guarantees every corner is inside the grid.
	bl, _ := g.At(x, y)
	tl, _ := g.At(x, y+1)
	tr, _ := g.At(x+1, y+1)
	br, _ := g.At(x+1, y)
	return Corners{BL: bl, TL: tl, TR: tr, BR: br}, nil
}

// Classify packs the corners into BL*8 + TL*4 + TR*2 + BR*1. The weights must
// stay in step with the sampling order: the contour table is keyed on them.
func Classify(c Corners) (CaseIndex, error) {
	for _, v := range [...]field.Flag{c.BL, c.TL, c.TR, c.BR} {
		if v > 1 {
			return 0, fmt.Errorf("%w: corner flag %d", ErrInvariantViolation, v)
		}
	}

	idx := CaseIndex(c.BL)<<3 | CaseIndex(c.TL)<<2 | CaseIndex(c.TR)<<1 | CaseIndex(c.BR)
	if idx >= numCases {
		return 0, fmt.Errorf("%w: case index %d", ErrInvariantViolation, idx)
	}
	return idx, nil
}

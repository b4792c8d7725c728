// Package export writes cell contours as JSON, SVG or PNG.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/VoidMesh/isoline/services/marching"
)

// Document is the JSON form of an extraction.
type Document struct {
	Width  int                    `json:"width"`
	Height int                    `json:"height"`
	Cells  []marching.CellContour `json:"cells"`
}

// JSON writes the contours of a width x height grid as a Document.
func JSON(w io.Writer, width, height int, contours []marching.CellContour) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document{Width: width, Height: height, Cells: contours}); err != nil {
		return fmt.Errorf("failed to encode contours: %w", err)
	}
	return nil
}

// fillRings returns the inside region of a cell. Fully inside cells have an
// empty template but still cover the whole cell.
func fillRings(c marching.CellContour) [][]marching.Point {
	if c.Case == marching.CaseFull {
		x, y := float64(c.GridX), float64(c.GridY)
		return [][]marching.Point{{{X: x, Y: y}, {X: x + 1, Y: y}, {X: x + 1, Y: y + 1}, {X: x, Y: y + 1}}}
	}
	return c.Rings
}

package marching

import "fmt"

// Point is a 2D position, either cell-local in the unit square or in grid
// space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Named template points. Corners a, b, c, d carry the weights 8, 4, 2, 1 and
// line up with the sampled BL, TL, TR, BR corners; the others are edge
// midpoints.
var (
	ptA = Point{0, 1}
	ptB = Point{1, 1}
	ptC = Point{1, 0}
	ptD = Point{0, 0}

	ptAB = Point{0.5, 1}
	ptBC = Point{1, 0.5}
	ptCD = Point{0.5, 0}
	ptDA = Point{0, 0.5}
)

// Template is the inside-region outline of one case: zero or more closed
// rings of unit-square boundary points. Templates are shared and never
// modified; accessors hand out copies.
type Template struct {
	rings [][]Point
}

// table is filled once at init. Saddles (5, 10) are always split into two
// separate corner rings, so the isoline is two diagonal segments and the
// cell center is never sampled.
var table = [numCases]Template{
	0:  {},
	1:  {rings: [][]Point{{ptD, ptCD, ptDA}}},
	2:  {rings: [][]Point{{ptC, ptBC, ptCD}}},
	3:  {rings: [][]Point{{ptC, ptBC, ptDA, ptD}}},
	4:  {rings: [][]Point{{ptB, ptAB, ptBC}}},
	5:  {rings: [][]Point{{ptB, ptAB, ptBC}, {ptD, ptCD, ptDA}}},
	6:  {rings: [][]Point{{ptB, ptAB, ptCD, ptC}}},
	7:  {rings: [][]Point{{ptB, ptAB, ptDA, ptD, ptC}}},
	8:  {rings: [][]Point{{ptA, ptDA, ptAB}}},
	9:  {rings: [][]Point{{ptA, ptD, ptCD, ptAB}}},
	10: {rings: [][]Point{{ptA, ptDA, ptAB}, {ptC, ptBC, ptCD}}},
	11: {rings: [][]Point{{ptA, ptD, ptC, ptBC, ptAB}}},
	12: {rings: [][]Point{{ptA, ptDA, ptBC, ptB}}},
	13: {rings: [][]Point{{ptA, ptD, ptCD, ptBC, ptB}}},
	14: {rings: [][]Point{{ptA, ptDA, ptCD, ptC, ptB}}},
	15: {},
}

// TemplateFor returns the contour template of a case.
func TemplateFor(idx CaseIndex) (Template, error) {
	if idx >= numCases {
		return Template{}, fmt.Errorf("%w: case index %d", ErrInvariantViolation, idx)
	}
	return table[idx], nil
}

// Empty reports whether the template draws nothing.
func (t Template) Empty() bool {
	return len(t.rings) == 0
}

// Len returns the total number of vertices.
func (t Template) Len() int {
	n := 0
	for _, ring := range t.rings {
		n += len(ring)
	}
	return n
}

// Vertices returns all ring vertices in order as a new slice.
func (t Template) Vertices() []Point {
	if t.Empty() {
		return []Point{}
	}
	out := make([]Point, 0, t.Len())
	for _, ring := range t.rings {
		out = append(out, ring...)
	}
	return out
}

// Rings returns a deep copy of the template's rings.
func (t Template) Rings() [][]Point {
	out := make([][]Point, len(t.rings))
	for i, ring := range t.rings {
		out[i] = append([]Point(nil), ring...)
	}
	return out
}

// Segment is a straight piece of isoline.
type Segment [2]Point

// Isolines returns the ring edges joining two edge midpoints; these are the
// places where the contour actually crosses the cell.
func (t Template) Isolines() []Segment {
	var out []Segment
	for _, ring := range t.rings {
		for i, p := range ring {
			q := ring[(i+1)%len(ring)]
			if isMidpoint(p) && isMidpoint(q) {
				out = append(out, Segment{p, q})
			}
		}
	}
	return out
}

// onBoundary reports whether p is a unit-square corner or edge midpoint.
func onBoundary(p Point) bool {
	return isCorner(p) || isMidpoint(p)
}

func isCorner(p Point) bool {
	return (p.X == 0 || p.X == 1) && (p.Y == 0 || p.Y == 1)
}

func isMidpoint(p Point) bool {
	return (p.X == 0.5 && (p.Y == 0 || p.Y == 1)) || (p.Y == 0.5 && (p.X == 0 || p.X == 1))
}

// CaseTemplate describes one table entry for display.
type CaseTemplate struct {
	Case     CaseIndex `json:"case"`
	Saddle   bool      `json:"saddle"`
	Rings    [][]Point `json:"rings"`
	Vertices []Point   `json:"vertices"`
	Isolines []Segment `json:"isolines"`
}

// Table lists all 16 templates in case order, in cell-local coordinates.
func Table() []CaseTemplate {
	out := make([]CaseTemplate, numCases)
	for i, tmpl := range table {
		idx := CaseIndex(i)
		isolines := tmpl.Isolines()
		if isolines == nil {
			isolines = []Segment{}
		}
		out[i] = CaseTemplate{
			Case:     idx,
			Saddle:   idx.Saddle(),
			Rings:    tmpl.Rings(),
			Vertices: tmpl.Vertices(),
			Isolines: isolines,
		}
	}
	return out
}

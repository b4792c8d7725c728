package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/VoidMesh/isoline/services/marching"
)

// SVGOptions controls SVG rendering.
type SVGOptions struct {
	// Scale is the size of one cell in output pixels.
	Scale float64
	// Fill draws the inside region under the isolines.
	Fill        bool
	FillColor   string
	StrokeColor string
	StrokeWidth float64
}

// DefaultSVGOptions returns the options used by the CLI and the API.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Scale:       16,
		Fill:        false,
		FillColor:   "#7D56F4",
		StrokeColor: "#000000",
		StrokeWidth: 0.05,
	}
}

// SVG draws the isolines of a width x height grid. Grid y grows upward, so
// rows are flipped into SVG's downward y axis.
func SVG(w io.Writer, width, height int, contours []marching.CellContour, opts SVGOptions) error {
	cellsX := max(width-1, 0)
	cellsY := max(height-1, 0)
	flip := func(p marching.Point) (float64, float64) {
		return p.X, float64(cellsY) - p.Y
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %d %d\">\n",
		num(float64(cellsX)*opts.Scale), num(float64(cellsY)*opts.Scale), cellsX, cellsY)

	if opts.Fill {
		fmt.Fprintf(bw, "<g fill=\"%s\" stroke=\"none\">\n", opts.FillColor)
		for _, c := range contours {
			for _, ring := range fillRings(c) {
				points := make([]string, len(ring))
				for i, p := range ring {
					x, y := flip(p)
					points[i] = num(x) + "," + num(y)
				}
				fmt.Fprintf(bw, "<polygon points=\"%s\"/>\n", strings.Join(points, " "))
			}
		}
		bw.WriteString("</g>\n")
	}

	fmt.Fprintf(bw, "<g fill=\"none\" stroke=\"%s\" stroke-width=\"%s\" stroke-linecap=\"round\">\n",
		opts.StrokeColor, num(opts.StrokeWidth))
	for _, c := range contours {
		for _, s := range c.Isolines() {
			x1, y1 := flip(s[0])
			x2, y2 := flip(s[1])
			fmt.Fprintf(bw, "<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"/>\n", num(x1), num(y1), num(x2), num(y2))
		}
	}
	bw.WriteString("</g>\n</svg>\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

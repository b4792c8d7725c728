package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/vector"

	"github.com/VoidMesh/isoline/services/marching"
)

// MaxRasterPixels bounds the size of one raster image.
const MaxRasterPixels = 4096 * 4096

// ErrImageTooLarge is returned when a raster would exceed MaxRasterPixels.
var ErrImageTooLarge = errors.New("image too large")

// DefaultFill is the inside-region color of raster output.
var DefaultFill = color.RGBA{R: 0x7D, G: 0x56, B: 0xF4, A: 0xFF}

// Raster fills the inside region of every cell onto a white image with scale
// pixels per cell.
func Raster(width, height int, contours []marching.CellContour, scale int, fill color.Color) (*image.RGBA, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %d", scale)
	}
	cellsY := max(height-1, 0)
	w := max(width-1, 0) * scale
	h := cellsY * scale
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("grid %dx%d has no cells to draw", width, height)
	}
	if err := CheckRasterSize(width, height, scale); err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	s := float32(scale)
	z := vector.NewRasterizer(w, h)
	for _, c := range contours {
		for _, ring := range fillRings(c) {
			for i, p := range ring {
				px := float32(p.X) * s
				py := float32(float64(cellsY)-p.Y) * s
				if i == 0 {
					z.MoveTo(px, py)
				} else {
					z.LineTo(px, py)
				}
			}
			z.ClosePath()
		}
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{})

	return dst, nil
}

// CheckRasterSize rejects grids whose raster at scale would exceed
// MaxRasterPixels. It allocates nothing, so callers can run it before
// extracting.
func CheckRasterSize(width, height, scale int) error {
	w := max(width-1, 0) * scale
	h := max(height-1, 0) * scale
	if w > 0 && h > MaxRasterPixels/w {
		return fmt.Errorf("%w: %dx%d pixels exceeds %d", ErrImageTooLarge, w, h, MaxRasterPixels)
	}
	return nil
}

// PNG encodes Raster's output.
func PNG(w io.Writer, width, height int, contours []marching.CellContour, scale int) error {
	img, err := Raster(width, height, contours, scale, DefaultFill)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

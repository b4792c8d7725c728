package runs

import (
	"time"

	"github.com/VoidMesh/isoline/services/contour"
	"github.com/VoidMesh/isoline/services/marching"
	"github.com/VoidMesh/isoline/services/noise"
)

// Run is a persisted extraction. Contours is omitted in listings.
type Run struct {
	ID            string                 `json:"id"`
	Params        contour.Params         `json:"params"`
	Segments      int                    `json:"segments"`
	CaseHistogram [16]int                `json:"case_histogram"`
	Contours      []marching.CellContour `json:"contours,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// CreateRunRequest is the body of a run creation request. Omitted fields fall
// back to the configured defaults.
type CreateRunRequest struct {
	Width     *int     `json:"width,omitempty"`
	Height    *int     `json:"height,omitempty"`
	Seed      *int64   `json:"seed,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Noise     string   `json:"noise,omitempty"`
}

// Apply overlays the request onto defaults.
func (r CreateRunRequest) Apply(defaults contour.Params) contour.Params {
	p := defaults
	if r.Width != nil {
		p.Width = *r.Width
	}
	if r.Height != nil {
		p.Height = *r.Height
	}
	if r.Seed != nil {
		p.Seed = *r.Seed
	}
	if r.Threshold != nil {
		p.Threshold = *r.Threshold
	}
	if r.Noise != "" {
		p.Noise = noise.Kind(r.Noise)
	}
	return p
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

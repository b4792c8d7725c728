package db

import (
	"time"
)

// Run is one persisted extraction. CaseHistogram and Contours hold JSON text.
type Run struct {
	ID            string
	Seed          int64
	Width         int64
	Height        int64
	Threshold     float64
	NoiseKind     string
	Segments      int64
	CaseHistogram string
	Contours      string
	CreatedAt     time.Time
}

// RunSummary is a Run without its contour payload.
type RunSummary struct {
	ID            string
	Seed          int64
	Width         int64
	Height        int64
	Threshold     float64
	NoiseKind     string
	Segments      int64
	CaseHistogram string
	CreatedAt     time.Time
}

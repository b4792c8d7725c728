package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/VoidMesh/isoline/internal/config"
	"github.com/VoidMesh/isoline/services/noise"
)

// Options are the command-line parameters of one extraction.
type Options struct {
	Width     int
	Height    int
	Seed      int64
	Threshold float64
	Noise     string
	Format    string
	Output    string
	Scale     int
	Fill      bool
	Summary   bool
}

// NewOptions returns Options seeded from the environment defaults.
func NewOptions(cfg config.FieldConfig) *Options {
	return &Options{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Seed:      cfg.Seed,
		Threshold: cfg.Threshold,
		Noise:     string(cfg.Noise),
		Format:    "json",
		Output:    "-",
		Scale:     16,
	}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.IntVar(&o.Width, "width", o.Width, "number of sample columns")
	fs.IntVar(&o.Height, "height", o.Height, "number of sample rows")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "noise seed")
	fs.Float64Var(&o.Threshold, "threshold", o.Threshold, "samples above this value are inside")
	fs.StringVar(&o.Noise, "noise", o.Noise, "noise kind ("+kindList()+")")
	fs.StringVar(&o.Format, "format", o.Format, "output format (json, svg, png)")
	fs.StringVar(&o.Output, "o", o.Output, "output file, - for stdout")
	fs.IntVar(&o.Scale, "scale", o.Scale, "pixels per cell for svg and png")
	fs.BoolVar(&o.Fill, "fill", o.Fill, "fill inside regions in svg output")
	fs.BoolVar(&o.Summary, "summary", o.Summary, "log the case histogram after extraction")
}

// FieldConfig returns the extraction settings, validated.
func (o *Options) FieldConfig() (config.FieldConfig, error) {
	cfg := config.FieldConfig{
		Width:     o.Width,
		Height:    o.Height,
		Seed:      o.Seed,
		Threshold: o.Threshold,
		Noise:     noise.Kind(o.Noise),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	switch o.Format {
	case "json", "svg", "png":
	default:
		return cfg, fmt.Errorf("unknown format %q", o.Format)
	}
	if o.Scale <= 0 {
		return cfg, fmt.Errorf("scale must be positive, got %d", o.Scale)
	}
	return cfg, nil
}

func kindList() string {
	kinds := noise.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

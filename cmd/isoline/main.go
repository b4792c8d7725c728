package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/isoline/internal/config"
	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/services/contour"
	"github.com/VoidMesh/isoline/services/export"
)

func main() {
	logging.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal("Extraction failed", "error", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts := NewOptions(config.Load().Field)
	fs := flag.NewFlagSet("isoline", flag.ContinueOnError)
	opts.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := opts.FieldConfig()
	if err != nil {
		return err
	}

	res, err := contour.Extract(ctx, cfg.Params())
	if err != nil {
		return err
	}

	logger := logging.WithGrid(cfg.Width, cfg.Height)
	logger.Info("Contours extracted", "seed", cfg.Seed, "noise", cfg.Noise, "cells", len(res.Contours), "segments", res.Segments(), "duration", res.Duration)
	if opts.Summary {
		for idx, n := range res.CaseHistogram {
			if n > 0 {
				logger.Info("Case count", "case", idx, "cells", n)
			}
		}
	}

	out := stdout
	if opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch opts.Format {
	case "svg":
		svgOpts := export.DefaultSVGOptions()
		svgOpts.Scale = float64(opts.Scale)
		svgOpts.Fill = opts.Fill
		err = export.SVG(out, cfg.Width, cfg.Height, res.Contours, svgOpts)
	case "png":
		err = export.PNG(out, cfg.Width, cfg.Height, res.Contours, opts.Scale)
	default:
		err = export.JSON(out, cfg.Width, cfg.Height, res.Contours)
	}
	if err != nil {
		return err
	}

	if f, ok := out.(*os.File); ok && f != os.Stdout {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output: %w", err)
		}
		log.Info("Output written", "path", opts.Output, "format", opts.Format)
	}
	return nil
}

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/VoidMesh/isoline/cmd/debug/models"
	"github.com/VoidMesh/isoline/internal/config"
	"github.com/VoidMesh/isoline/internal/db"
	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/internal/runs"
	"github.com/VoidMesh/isoline/services/noise"
)

func main() {
	cfg := config.Load()

	dbPath := flag.String("db", "", "Path to the SQLite database holding stored runs (optional)")
	startView := flag.String("view", "preview", "Starting view (menu, preview, cases, runs)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	width := flag.Int("width", cfg.Field.Width, "Number of sample columns")
	height := flag.Int("height", cfg.Field.Height, "Number of sample rows")
	seed := flag.Int64("seed", cfg.Field.Seed, "Noise seed")
	threshold := flag.Float64("threshold", cfg.Field.Threshold, "Binarization threshold")
	noiseKind := flag.String("noise", string(cfg.Field.Noise), "Noise kind (perlin, opensimplex)")
	flag.Parse()

	// Setup logging
	level := logging.ParseLevel(*logLevel)
	logging.SetLevel(log.Default(), level)
	logging.SetLevel(logging.GetLogger(), level)

	// Setup file logging for debug
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	field := config.FieldConfig{
		Width:     *width,
		Height:    *height,
		Seed:      *seed,
		Threshold: *threshold,
		Noise:     noise.Kind(*noiseKind),
	}
	if err := field.Validate(); err != nil {
		log.Fatal("Invalid field settings", "error", err)
	}

	var manager *runs.Manager
	if *dbPath != "" {
		database, err := sql.Open("sqlite3", *dbPath)
		if err != nil {
			log.Fatal("Failed to open database", "error", err, "path", *dbPath)
		}
		defer database.Close()
		database.SetMaxOpenConns(1)

		if err := database.Ping(); err != nil {
			log.Fatal("Failed to connect to database", "error", err)
		}
		if err := db.Migrate(database); err != nil {
			log.Fatal("Failed to run database migrations", "error", err)
		}
		manager = runs.NewManager(database)
	}

	// Initialize the main app model
	app := models.NewApp(field.Params(), manager, *startView)

	// Create and run the Bubble Tea program
	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting isoline debug tool", "db_path", *dbPath, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		log.Fatal("Error running debug tool", "error", err)
	}
}

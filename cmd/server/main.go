package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/VoidMesh/isoline/internal/api"
	"github.com/VoidMesh/isoline/internal/config"
	"github.com/VoidMesh/isoline/internal/db"
	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/internal/runs"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	setupLogging(cfg.Logging)
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	if err := cfg.Field.Validate(); err != nil {
		log.Fatal("Invalid field configuration", "error", err)
	}
	defaults := cfg.Field.Params()
	log.Debug("Field defaults", "width", defaults.Width, "height", defaults.Height, "seed", defaults.Seed, "threshold", defaults.Threshold, "noise", defaults.Noise)

	// Initialize database
	database, err := initializeDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close()

	// Run migrations
	log.Debug("Running database migrations")
	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}
	log.Info("Database migrations completed")

	// Initialize run manager
	runManager := runs.NewManager(database)
	log.Debug("Run manager initialized")

	// Initialize API handlers
	handler := api.NewHandler(defaults)
	runHandlers := runs.NewRunHandlers(runManager, defaults)
	router := api.SetupRoutes(handler, runHandlers)
	log.Debug("API routes configured")

	// Create HTTP server
	log.Debug("Creating HTTP server", "port", cfg.Server.Port, "read_timeout", cfg.Server.ReadTimeout, "write_timeout", cfg.Server.WriteTimeout, "idle_timeout", cfg.Server.IdleTimeout)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting isoline server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	// Create context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	} else {
		log.Debug("Server shutdown completed gracefully")
	}

	log.Info("Server exited")
}

func setupLogging(cfg config.LoggingConfig) {
	logging.InitLogger()

	level := logging.ParseLevel(cfg.Level)
	logging.SetLevel(logging.GetLogger(), level)
	logging.SetLevel(log.Default(), level)

	// Configure output format
	if cfg.Format == "pretty" || !cfg.Structured {
		log.SetReportCaller(true)
		log.SetReportTimestamp(true)
	} else {
		log.SetFormatter(log.JSONFormatter)
		logging.GetLogger().SetFormatter(log.JSONFormatter)
	}

	// Add service info context
	log.SetPrefix("[isoline] ")
	logging.GetLogger().SetPrefix("[isoline] ")
}

func initializeDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	log.Debug("Opening database connection", "path", cfg.Path)
	database, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	log.Debug("Configuring database connection pool", "max_open_conns", cfg.MaxOpenConns, "max_idle_conns", cfg.MaxIdleConns, "conn_max_lifetime", cfg.ConnMaxLifetime)
	database.SetMaxOpenConns(cfg.MaxOpenConns)
	database.SetMaxIdleConns(cfg.MaxIdleConns)
	database.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Test connection
	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database initialized", "path", cfg.Path)
	return database, nil
}

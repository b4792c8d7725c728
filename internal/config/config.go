package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/VoidMesh/isoline/services/contour"
	"github.com/VoidMesh/isoline/services/field"
	"github.com/VoidMesh/isoline/services/noise"
)

type Config struct {
	Field    FieldConfig
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// FieldConfig holds the parameters of a single contour extraction.
type FieldConfig struct {
	Width     int
	Height    int
	Seed      int64
	Threshold float64
	Noise     noise.Kind
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

func Load() *Config {
	return &Config{
		Field: FieldConfig{
			Width:     getEnvInt("FIELD_WIDTH", 100),
			Height:    getEnvInt("FIELD_HEIGHT", 100),
			Seed:      getEnvInt64("FIELD_SEED", 50),
			Threshold: getEnvFloat("FIELD_THRESHOLD", field.DefaultThreshold),
			Noise:     noise.Kind(getEnvStr("FIELD_NOISE", string(noise.KindPerlin))),
		},
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Path:            getEnvStr("DB_PATH", "./isoline.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "json"),
			Structured: getEnvBool("LOG_STRUCTURED", true),
		},
	}
}

// Validate rejects field parameters that cannot produce a grid. It runs
// before anything is allocated.
func (c FieldConfig) Validate() error {
	if err := field.CheckDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("%w, got %v", contour.ErrInvalidThreshold, c.Threshold)
	}
	if !c.Noise.Valid() {
		return fmt.Errorf("%w: %q", noise.ErrUnknownKind, c.Noise)
	}
	return nil
}

// Params converts the field settings into extraction parameters.
func (c FieldConfig) Params() contour.Params {
	return contour.Params{
		Width:     c.Width,
		Height:    c.Height,
		Seed:      c.Seed,
		Threshold: c.Threshold,
		Noise:     c.Noise,
	}
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

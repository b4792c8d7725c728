package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/isoline/internal/logging"
)

// LoggingQueries wraps Queries to add debug logging
type LoggingQueries struct {
	*Queries
}

// NewLoggingQueries creates a new LoggingQueries instance
func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

// WithTx creates a new LoggingQueries with a transaction
func (lq *LoggingQueries) WithTx(tx *sql.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

// Helper function to log query execution
func (lq *LoggingQueries) logQuery(ctx context.Context, queryName string, start time.Time, err error, args ...interface{}) {
	logger := logging.WithDuration(queryName, time.Since(start))

	if err != nil {
		logger.Debug("Database query failed",
			"error", err,
			"args", args,
		)
	} else {
		logger.Debug("Database query executed",
			"args", args,
		)
	}
}

// CreateRun with logging. The contour payload is left out of the log.
func (lq *LoggingQueries) CreateRun(ctx context.Context, arg CreateRunParams) error {
	start := time.Now()
	log.Debug("Executing CreateRun", "run_id", arg.ID, "width", arg.Width, "height", arg.Height)

	err := lq.Queries.CreateRun(ctx, arg)
	lq.logQuery(ctx, "CreateRun", start, err, arg.ID, arg.Seed, arg.NoiseKind, len(arg.Contours))
	return err
}

// GetRun with logging
func (lq *LoggingQueries) GetRun(ctx context.Context, id string) (Run, error) {
	start := time.Now()
	log.Debug("Executing GetRun", "run_id", id)

	result, err := lq.Queries.GetRun(ctx, id)
	lq.logQuery(ctx, "GetRun", start, err, id)
	return result, err
}

// ListRuns with logging
func (lq *LoggingQueries) ListRuns(ctx context.Context, limit int64) ([]RunSummary, error) {
	start := time.Now()
	log.Debug("Executing ListRuns", "limit", limit)

	result, err := lq.Queries.ListRuns(ctx, limit)
	lq.logQuery(ctx, "ListRuns", start, err, limit)

	if err == nil {
		log.Debug("ListRuns result", "run_count", len(result))
	}

	return result, err
}

// DeleteRun with logging
func (lq *LoggingQueries) DeleteRun(ctx context.Context, id string) error {
	start := time.Now()
	log.Debug("Executing DeleteRun", "run_id", id)

	err := lq.Queries.DeleteRun(ctx, id)
	lq.logQuery(ctx, "DeleteRun", start, err, id)
	return err
}

// CountRuns with logging
func (lq *LoggingQueries) CountRuns(ctx context.Context) (int64, error) {
	start := time.Now()

	result, err := lq.Queries.CountRuns(ctx)
	lq.logQuery(ctx, "CountRuns", start, err)
	return result, err
}

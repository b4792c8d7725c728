package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

const createRun = `
INSERT INTO runs (
    id, seed, width, height, threshold, noise_kind, segments, case_histogram, contours, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateRunParams struct {
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

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) error {
	_, err := q.db.ExecContext(ctx, createRun,
		arg.ID,
		arg.Seed,
		arg.Width,
		arg.Height,
		arg.Threshold,
		arg.NoiseKind,
		arg.Segments,
		arg.CaseHistogram,
		arg.Contours,
		arg.CreatedAt,
	)
	return err
}

const getRun = `
SELECT id, seed, width, height, threshold, noise_kind, segments, case_histogram, contours, created_at
FROM runs
WHERE id = ?
`

func (q *Queries) GetRun(ctx context.Context, id string) (Run, error) {
	row := q.db.QueryRowContext(ctx, getRun, id)
	var i Run
	err := row.Scan(
		&i.ID,
		&i.Seed,
		&i.Width,
		&i.Height,
		&i.Threshold,
		&i.NoiseKind,
		&i.Segments,
		&i.CaseHistogram,
		&i.Contours,
		&i.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return i, ErrRunNotFound
	}
	return i, err
}

const listRuns = `
SELECT id, seed, width, height, threshold, noise_kind, segments, case_histogram, created_at
FROM runs
ORDER BY created_at DESC, id
LIMIT ?
`

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]RunSummary, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []RunSummary{}
	for rows.Next() {
		var i RunSummary
		if err := rows.Scan(
			&i.ID,
			&i.Seed,
			&i.Width,
			&i.Height,
			&i.Threshold,
			&i.NoiseKind,
			&i.Segments,
			&i.CaseHistogram,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteRun = `
DELETE FROM runs WHERE id = ?
`

func (q *Queries) DeleteRun(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, deleteRun, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

const countRuns = `
SELECT COUNT(*) FROM runs
`

func (q *Queries) CountRuns(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRuns)
	var count int64
	err := row.Scan(&count)
	return count, err
}

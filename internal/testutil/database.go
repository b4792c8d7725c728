package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// TestDB is a throwaway SQLite database living in the test's temp dir.
type TestDB struct {
	DB      *sql.DB
	Path    string
	cleanup func()
}

// DatabaseConfig holds configuration for test database setup
type DatabaseConfig struct {
	// Name is the file name inside the test's temp dir
	Name string
	// MaxOpenConns caps the pool; SQLite writers serialize anyway
	MaxOpenConns int
	// Migrate, when set, is applied to the fresh database
	Migrate func(*sql.DB) error
}

// DefaultDatabaseConfig returns a single-connection config that applies migrate.
func DefaultDatabaseConfig(migrate func(*sql.DB) error) *DatabaseConfig {
	return &DatabaseConfig{
		Name:         "test.db",
		MaxOpenConns: 1,
		Migrate:      migrate,
	}
}

// SetupTestDB opens a fresh database and closes it when the test ends.
//
// Usage:
//
//	testDB := testutil.SetupTestDB(t, testutil.DefaultDatabaseConfig(db.Migrate))
//	manager := runs.NewManager(testDB.DB)
func SetupTestDB(t *testing.T, config *DatabaseConfig) *TestDB {
	t.Helper()

	if config == nil {
		config = DefaultDatabaseConfig(nil)
	}

	path := filepath.Join(t.TempDir(), config.Name)
	database, err := sql.Open("sqlite3", path)
	require.NoError(t, err, "Failed to open test database")

	if config.MaxOpenConns > 0 {
		database.SetMaxOpenConns(config.MaxOpenConns)
	}
	require.NoError(t, database.Ping(), "Failed to ping test database")

	testDB := &TestDB{
		DB:      database,
		Path:    path,
		cleanup: func() { database.Close() },
	}
	t.Cleanup(testDB.cleanup)

	if config.Migrate != nil {
		require.NoError(t, config.Migrate(database), "Failed to migrate test database")
	}

	return testDB
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.cleanup != nil {
		tdb.cleanup()
	}
}

// WithTransaction runs testFunc inside a transaction that is always rolled back.
func (tdb *TestDB) WithTransaction(t *testing.T, testFunc func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := tdb.DB.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("Failed to rollback transaction: %v", err)
		}
	}()

	testFunc(t, tx)
}

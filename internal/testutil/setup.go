// Package testutil provides common testing utilities and setup functions for
// isoline tests: log silencing, golden files and throwaway SQLite databases.
package testutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/isoline/internal/logging"
)

// TestConfig holds configuration for test setup
type TestConfig struct {
	// EnableLogCapture routes log output to t.Log instead of discarding it
	EnableLogCapture bool
	// TestDataDir is the directory for test data files
	TestDataDir string
	// TempDir is the temporary directory for test files
	TempDir string
}

// DefaultTestConfig returns a default test configuration suitable for most tests
func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		EnableLogCapture: false,
		TestDataDir:      filepath.Join(GetProjectRoot(), "testdata"),
		TempDir:          filepath.Join(os.TempDir(), "isoline-tests"),
	}
}

// SetupTest initializes the test environment with the provided configuration.
//
// Usage:
//
//	func TestMyFunction(t *testing.T) {
//	    cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
//	    defer cleanup()
//	    // ... test code
//	}
func SetupTest(t *testing.T, config *TestConfig) func() {
	t.Helper()

	var cleanupFuncs []func()

	originalLogger := logging.Logger
	originalDefault := log.Default()
	cleanupFuncs = append(cleanupFuncs, func() {
		logging.Logger = originalLogger
		log.SetDefault(originalDefault)
	})

	var testLogger *log.Logger
	if config.EnableLogCapture {
		testLogger = log.New(testWriter{t: t})
		testLogger.SetLevel(log.DebugLevel)
	} else {
		testLogger = log.New(io.Discard)
	}
	logging.Logger = testLogger
	log.SetDefault(testLogger)

	require.NoError(t, os.MkdirAll(config.TempDir, 0o755))

	return func() {
		for i := len(cleanupFuncs) - 1; i >= 0; i-- {
			cleanupFuncs[i]()
		}
	}
}

// testWriter adapts testing.T to implement io.Writer for log output
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Helper()
	tw.t.Log(string(p))
	return len(p), nil
}

// CreateTestContext creates a context with a reasonable timeout for testing.
// The context is cancelled when the test finishes.
func CreateTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// SkipIfShort skips the test if testing.Short() is true.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()

	if testing.Short() {
		if reason == "" {
			reason = "skipping test in short mode"
		}
		t.Skip(reason)
	}
}

// GetProjectRoot returns the absolute path to the module root directory.
func GetProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("unable to get caller information")
	}

	// internal/testutil/setup.go -> module root
	return filepath.Dir(filepath.Dir(filepath.Dir(filename)))
}

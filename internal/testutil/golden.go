package testutil

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Flag to update golden files during test runs
var updateGolden = flag.Bool("update-golden", false, "Update golden files")

// GoldenConfig holds configuration for golden file operations
type GoldenConfig struct {
	// Dir is the directory where golden files are stored
	Dir string
	// FileExtension is the extension for golden files (default: .golden)
	FileExtension string
	// Indent controls JSON formatting for readability
	Indent bool
}

// DefaultGoldenConfig returns a default configuration for golden files
func DefaultGoldenConfig() *GoldenConfig {
	return &GoldenConfig{
		Dir:           filepath.Join(GetProjectRoot(), "testdata", "golden"),
		FileExtension: ".golden",
		Indent:        true,
	}
}

// GoldenTester compares output against known-good snapshots on disk.
type GoldenTester struct {
	config *GoldenConfig
}

// NewGoldenTester creates a new golden file tester with the provided configuration
func NewGoldenTester(config *GoldenConfig) *GoldenTester {
	if config == nil {
		config = DefaultGoldenConfig()
	}

	return &GoldenTester{
		config: config,
	}
}

// AssertJSON compares JSON data against a golden file
func (gt *GoldenTester) AssertJSON(t *testing.T, name string, data interface{}) {
	t.Helper()

	jsonBytes, err := gt.toJSON(data)
	require.NoError(t, err, "Failed to marshal data to JSON")

	gt.assertBytes(t, name, jsonBytes)
}

// AssertString compares string data against a golden file
func (gt *GoldenTester) AssertString(t *testing.T, name string, data string) {
	t.Helper()
	gt.assertBytes(t, name, []byte(data))
}

// AssertBytes compares byte data against a golden file
func (gt *GoldenTester) AssertBytes(t *testing.T, name string, data []byte) {
	t.Helper()
	gt.assertBytes(t, name, data)
}

func (gt *GoldenTester) assertBytes(t *testing.T, name string, actual []byte) {
	t.Helper()

	err := os.MkdirAll(gt.config.Dir, 0o755)
	require.NoError(t, err, "Failed to create golden directory")

	goldenPath := gt.getGoldenPath(name)

	if *updateGolden {
		err := os.WriteFile(goldenPath, actual, 0o644)
		require.NoError(t, err, "Failed to write golden file: %s", goldenPath)
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		err := os.WriteFile(goldenPath, actual, 0o644)
		require.NoError(t, err, "Failed to create golden file: %s", goldenPath)

		require.Fail(t, "Golden file created",
			"Golden file %s did not exist and has been created. "+
				"Re-run the test to verify the output is correct.", goldenPath)
		return
	}
	require.NoError(t, err, "Failed to read golden file: %s", goldenPath)

	if !bytes.Equal(expected, actual) {
		gt.logDifference(t, name, expected, actual)

		assert.Equal(t, string(expected), string(actual),
			"Golden file mismatch for %s. Use -update-golden to update the golden file.", name)
	}
}

func (gt *GoldenTester) getGoldenPath(name string) string {
	safeName := gt.sanitizeFilename(name)
	return filepath.Join(gt.config.Dir, safeName+gt.config.FileExtension)
}

func (gt *GoldenTester) sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)

	return replacer.Replace(name)
}

func (gt *GoldenTester) toJSON(data interface{}) ([]byte, error) {
	if !gt.config.Indent {
		return json.Marshal(data)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// logDifference logs the first differing lines when golden files don't match
func (gt *GoldenTester) logDifference(t *testing.T, name string, expected, actual []byte) {
	t.Helper()

	t.Logf("Golden file mismatch for %s:", name)
	t.Logf("Expected length: %d bytes", len(expected))
	t.Logf("Actual length: %d bytes", len(actual))

	expectedLines := strings.Split(string(expected), "\n")
	actualLines := strings.Split(string(actual), "\n")

	maxLines := max(len(expectedLines), len(actualLines))
	if maxLines > 10 {
		maxLines = 10
	}

	for i := 0; i < maxLines; i++ {
		expectedLine := ""
		actualLine := ""

		if i < len(expectedLines) {
			expectedLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actualLine = actualLines[i]
		}

		if expectedLine != actualLine {
			t.Logf("Line %d differs:", i+1)
			t.Logf("  Expected: %q", expectedLine)
			t.Logf("  Actual:   %q", actualLine)
		}
	}

	t.Logf("To update the golden file, run: go test -update-golden -run %s", t.Name())
	t.Logf("Golden file path: %s", gt.getGoldenPath(name))
}

// LoadGoldenFile loads the contents of a golden file for manual comparison
func (gt *GoldenTester) LoadGoldenFile(t *testing.T, name string) []byte {
	t.Helper()

	goldenPath := gt.getGoldenPath(name)
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "Failed to read golden file: %s", goldenPath)

	return data
}

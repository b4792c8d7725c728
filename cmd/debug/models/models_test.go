package models

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/isoline/internal/db"
	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/internal/runs"
	"github.com/VoidMesh/isoline/internal/testutil"
	"github.com/VoidMesh/isoline/services/contour"
	"github.com/VoidMesh/isoline/services/field"
	"github.com/VoidMesh/isoline/services/marching"
	"github.com/VoidMesh/isoline/services/noise"
)

func previewParams() contour.Params {
	return contour.Params{Width: 12, Height: 10, Seed: 50, Threshold: 0, Noise: noise.KindPerlin}
}

// runCmd executes cmd synchronously and returns its message.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func loadedPreview(t *testing.T, params contour.Params) PreviewModel {
	t.Helper()
	m := NewPreviewModel(params, nil)
	next, _ := m.Update(runCmd(t, m.Init()))
	return next.(PreviewModel)
}

func TestPreview_InitExtracts(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	m := loadedPreview(t, previewParams())
	require.NoError(t, m.err)
	require.NotNil(t, m.result)
	assert.Len(t, m.result.Contours, 11*9)

	view := m.View()
	assert.Contains(t, view, "Contour Preview")
	assert.Contains(t, view, "seed 50")
	assert.Contains(t, view, "Cell (0, 0)")

	v, err := m.result.Field.At(0, 0)
	require.NoError(t, err)
	assert.Contains(t, view, fmt.Sprintf("sample %.4f", v))

	c, ok := m.cellAt(0, 0)
	require.True(t, ok)
	assert.Contains(t, view, fmt.Sprintf("vertices %d", len(c.Vertices())))
}

func TestPreview_CursorMovesAreLogged(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	m := loadedPreview(t, previewParams())

	var buf bytes.Buffer
	logging.Logger = log.New(&buf)
	logging.Logger.SetLevel(log.DebugLevel)

	m, _ = m.handleKey("right")
	m, _ = m.handleKey("up")

	out := buf.String()
	assert.Contains(t, out, "Cursor moved")
	assert.Contains(t, out, "cell_x=1")
	assert.Contains(t, out, "cell_y=1")
}

func TestPreview_ParameterKeys(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		key    string
		expect func(t *testing.T, p contour.Params)
	}{
		{key: "s", expect: func(t *testing.T, p contour.Params) { assert.Equal(t, int64(51), p.Seed) }},
		{key: "S", expect: func(t *testing.T, p contour.Params) { assert.Equal(t, int64(49), p.Seed) }},
		{key: "+", expect: func(t *testing.T, p contour.Params) { assert.InDelta(t, thresholdStep, p.Threshold, 1e-12) }},
		{key: "-", expect: func(t *testing.T, p contour.Params) { assert.InDelta(t, -thresholdStep, p.Threshold, 1e-12) }},
		{key: "n", expect: func(t *testing.T, p contour.Params) { assert.Equal(t, noise.KindOpenSimplex, p.Noise) }},
		{key: "]", expect: func(t *testing.T, p contour.Params) {
			assert.Equal(t, 22, p.Width)
			assert.Equal(t, 20, p.Height)
		}},
		{key: "[", expect: func(t *testing.T, p contour.Params) {
			assert.Equal(t, minPreviewDim, p.Width)
			assert.Equal(t, minPreviewDim, p.Height)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := loadedPreview(t, previewParams())
			m, cmd := m.handleKey(tt.key)
			tt.expect(t, m.params)

			msg := runCmd(t, cmd)
			extracted, ok := msg.(extractedMsg)
			require.True(t, ok, "expected extraction, got %T", msg)
			assert.Equal(t, m.params, extracted.result.Params)
		})
	}
}

func TestPreview_GrowIsCapped(t *testing.T) {
	p := previewParams()
	p.Width = field.MaxDimension - 3
	m := NewPreviewModel(p, nil)

	m, _ = m.handleKey("]")
	assert.Equal(t, field.MaxDimension, m.params.Width)
}

func TestPreview_CursorStaysInsideGrid(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	m := loadedPreview(t, previewParams())

	m, cmd := m.handleKey("left")
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.cursorX)

	for i := 0; i < 50; i++ {
		m, _ = m.handleKey("right")
		m, _ = m.handleKey("up")
	}
	assert.Equal(t, 10, m.cursorX)
	assert.Equal(t, 8, m.cursorY)

	c, ok := m.cellAt(m.cursorX, m.cursorY)
	require.True(t, ok)
	assert.Equal(t, 10, c.GridX)
	assert.Equal(t, 8, c.GridY)
}

func TestPreview_SaveWithoutDatabase(t *testing.T) {
	m := NewPreviewModel(previewParams(), nil)
	m, cmd := m.handleKey("p")
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "no database")
}

func TestPreview_ExtractError(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	p := previewParams()
	p.Noise = "value"
	m := NewPreviewModel(p, nil)
	next, _ := m.Update(runCmd(t, m.Init()))
	m = next.(PreviewModel)

	assert.ErrorIs(t, m.err, noise.ErrUnknownKind)
	assert.Contains(t, m.View(), "Error:")
}

func TestPreview_RenderGridGlyphs(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// a single cell with only its top-left sample inside
	grid, err := field.NewBinaryGrid([][]field.Flag{{0, 1}, {0, 0}})
	require.NoError(t, err)
	contours, err := marching.Build(grid)
	require.NoError(t, err)

	m := NewPreviewModel(contour.Params{Width: 2, Height: 2}, nil)
	m.result = &contour.Result{Params: m.params, Grid: grid, Contours: contours}
	assert.Contains(t, m.renderGrid(), "╯")
}

func TestCases_Navigation(t *testing.T) {
	m := NewCasesModel()
	require.Len(t, m.cases, 16)

	m = m.handleKey("up")
	assert.Equal(t, 15, m.cursor)
	m = m.handleKey("down")
	assert.Equal(t, 0, m.cursor)
	m = m.handleKey("G")
	assert.Equal(t, 15, m.cursor)

	m.cursor = 5
	view := m.View()
	assert.Contains(t, view, "case 5 (saddle), 6 vertices")
	assert.Contains(t, view, "ring 2")
}

func TestRuns_WithoutDatabase(t *testing.T) {
	m := NewRunsModel(nil)
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "No database configured")

	m, cmd := m.handleKey("d")
	assert.Nil(t, cmd)
}

func TestRuns_LoadAndDelete(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	testDB := testutil.SetupTestDB(t, testutil.DefaultDatabaseConfig(db.Migrate))

	manager := runs.NewManager(testDB.DB)
	run, err := manager.CreateRun(context.Background(), previewParams())
	require.NoError(t, err)

	m := NewRunsModel(manager)
	next, _ := m.Update(runCmd(t, m.Init()))
	m = next.(RunsModel)
	require.Len(t, m.runs, 1)
	assert.Contains(t, m.View(), run.ID)

	m, cmd := m.handleKey("d")
	next, cmd = m.Update(runCmd(t, cmd))
	m = next.(RunsModel)
	assert.Contains(t, m.status, run.ID)

	next, _ = m.Update(runCmd(t, cmd))
	m = next.(RunsModel)
	assert.Empty(t, m.runs)
}

func TestApp_Navigation(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	app := NewApp(previewParams(), nil, "menu")
	assert.Equal(t, MenuView, app.currentView)

	_, cmd := app.Update(NewSwitchViewMsg(CasesView))
	assert.Equal(t, CasesView, app.currentView)
	assert.Nil(t, cmd)

	handled, _ := app.handleGlobalKey("q")
	assert.True(t, handled)
	assert.Equal(t, MenuView, app.currentView)

	handled, _ = app.handleGlobalKey("tab")
	assert.True(t, handled)
	assert.Equal(t, PreviewView, app.currentView)

	app.handleGlobalKey("?")
	assert.True(t, strings.Contains(app.View(), "help"))
	handled, _ = app.handleGlobalKey("x")
	assert.True(t, handled, "help swallows other keys")
	app.handleGlobalKey("?")

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, app.preview.width)
}

func TestApp_RoutesExtractionToPreview(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	app := NewApp(previewParams(), nil, "cases")
	msg := runCmd(t, app.preview.Init())

	app.Update(msg)
	require.NotNil(t, app.preview.result, "extraction result reaches the preview while another view is shown")
	assert.Equal(t, CasesView, app.currentView)
}

func TestParseView(t *testing.T) {
	assert.Equal(t, PreviewView, ParseView("preview"))
	assert.Equal(t, CasesView, ParseView("cases"))
	assert.Equal(t, RunsView, ParseView("runs"))
	assert.Equal(t, MenuView, ParseView("menu"))
	assert.Equal(t, MenuView, ParseView("bogus"))
}

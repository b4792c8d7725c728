package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/isoline/cmd/debug/components"
	"github.com/VoidMesh/isoline/internal/logging"
	"github.com/VoidMesh/isoline/internal/runs"
	"github.com/VoidMesh/isoline/services/contour"
	"github.com/VoidMesh/isoline/services/field"
	"github.com/VoidMesh/isoline/services/marching"
	"github.com/VoidMesh/isoline/services/noise"
)

const (
	thresholdStep = 0.05
	sizeStep      = 10
	minPreviewDim = 2
)

// PreviewModel renders an extraction as one glyph per cell.
type PreviewModel struct {
	manager *runs.Manager
	params  contour.Params
	result  *contour.Result
	err     error
	status  string

	cursorX int
	cursorY int
	width   int
	height  int
}

// NewPreviewModel creates a preview of params. manager may be nil, in which
// case runs cannot be saved.
func NewPreviewModel(params contour.Params, manager *runs.Manager) PreviewModel {
	return PreviewModel{
		manager: manager,
		params:  params,
	}
}

// Init runs the first extraction
func (m PreviewModel) Init() tea.Cmd {
	return m.extractCmd()
}

// Update handles preview messages
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case extractedMsg:
		m.result = msg.result
		m.err = nil
		m.clampCursor()
		return m, nil

	case extractErrorMsg:
		m.err = msg.err
		return m, nil

	case runSavedMsg:
		m.status = "saved run " + msg.run.ID
		return m, nil
	}

	return m, nil
}

func (m PreviewModel) handleKey(key string) (PreviewModel, tea.Cmd) {
	m.status = ""

	switch key {
	case "left", "h":
		m.moveCursor(-1, 0)
		return m, nil
	case "right", "l":
		m.moveCursor(1, 0)
		return m, nil
	case "up", "k":
		m.moveCursor(0, 1)
		return m, nil
	case "down", "j":
		m.moveCursor(0, -1)
		return m, nil

	case "s":
		m.params.Seed++
	case "S":
		m.params.Seed--
	case "+", "=":
		m.params.Threshold += thresholdStep
	case "-", "_":
		m.params.Threshold -= thresholdStep
	case "0":
		m.params.Threshold = field.DefaultThreshold
	case "n":
		m.params.Noise = nextKind(m.params.Noise)
	case "]":
		m.params.Width = min(m.params.Width+sizeStep, field.MaxDimension)
		m.params.Height = min(m.params.Height+sizeStep, field.MaxDimension)
	case "[":
		m.params.Width = max(m.params.Width-sizeStep, minPreviewDim)
		m.params.Height = max(m.params.Height-sizeStep, minPreviewDim)
	case "r":
	case "p":
		if m.manager == nil {
			m.status = "no database, start with -db to save runs"
			return m, nil
		}
		return m, m.saveCmd()
	default:
		return m, nil
	}

	return m, m.extractCmd()
}

func (m PreviewModel) extractCmd() tea.Cmd {
	params := m.params
	return func() tea.Msg {
		res, err := contour.Extract(context.Background(), params)
		if err != nil {
			return extractErrorMsg{err: err}
		}
		return extractedMsg{result: res}
	}
}

func (m PreviewModel) saveCmd() tea.Cmd {
	manager, params := m.manager, m.params
	return func() tea.Msg {
		run, err := manager.CreateRun(context.Background(), params)
		if err != nil {
			return extractErrorMsg{err: err}
		}
		return runSavedMsg{run: run}
	}
}

func (m *PreviewModel) cells() (int, int) {
	if m.result == nil {
		return 0, 0
	}
	return max(m.result.Grid.Width()-1, 0), max(m.result.Grid.Height()-1, 0)
}

func (m *PreviewModel) moveCursor(dx, dy int) {
	m.cursorX += dx
	m.cursorY += dy
	m.clampCursor()
	logging.WithCell(m.cursorX, m.cursorY).Debug("Cursor moved")
}

func (m *PreviewModel) clampCursor() {
	cx, cy := m.cells()
	m.cursorX = min(max(m.cursorX, 0), max(cx-1, 0))
	m.cursorY = min(max(m.cursorY, 0), max(cy-1, 0))
}

// cellAt returns the contour record of cell (x, y); records are stored
// column by column.
func (m PreviewModel) cellAt(x, y int) (marching.CellContour, bool) {
	cx, cy := m.cells()
	if x < 0 || y < 0 || x >= cx || y >= cy {
		return marching.CellContour{}, false
	}
	return m.result.Contours[x*cy+y], true
}

// View renders the preview
func (m PreviewModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Contour Preview") + "\n")
	s.WriteString(components.SubtitleStyle.Render(fmt.Sprintf(
		"%dx%d  seed %d  threshold %.2f  noise %s",
		m.params.Width, m.params.Height, m.params.Seed, m.params.Threshold, m.params.Noise,
	)) + "\n\n")

	switch {
	case m.err != nil:
		s.WriteString(components.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	case m.result == nil:
		s.WriteString("Extracting...\n\n")
	default:
		grid := components.BorderStyle.Render(m.renderGrid())
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", m.renderInfo()) + "\n")
	}

	if m.status != "" {
		s.WriteString(m.status + "\n")
	}
	bar := "arrows move • s/S seed • +/- threshold • n noise • [/] size • p save • q back"
	s.WriteString(components.StatusBarStyle.Width(max(m.width, lipgloss.Width(bar)+2)).Render(bar))

	return s.String()
}

// renderGrid draws the visible window of cells, top row first.
func (m PreviewModel) renderGrid() string {
	cx, cy := m.cells()
	if cx == 0 || cy == 0 {
		return "no cells"
	}

	cols, rows := cx, cy
	if m.width > 0 {
		cols = min(cols, max(m.width-42, 8))
	}
	if m.height > 0 {
		rows = min(rows, max(m.height-9, 4))
	}
	originX := min(max(m.cursorX-cols/2, 0), cx-cols)
	originY := min(max(m.cursorY-rows/2, 0), cy-rows)

	var b strings.Builder
	for y := originY + rows - 1; y >= originY; y-- {
		for x := originX; x < originX+cols; x++ {
			c, _ := m.cellAt(x, y)
			glyph := components.CaseGlyph(c.Case)
			if x == m.cursorX && y == m.cursorY {
				glyph = components.GridSelectedCellStyle.Render(glyph)
			}
			b.WriteString(glyph)
		}
		if y > originY {
			b.WriteByte('\n')
		}
	}
	return components.GridStyle.Render(b.String())
}

func (m PreviewModel) renderInfo() string {
	var b strings.Builder
	c, ok := m.cellAt(m.cursorX, m.cursorY)
	if ok {
		fmt.Fprintf(&b, "Cell (%d, %d)  case %d", c.GridX, c.GridY, c.Case)
		if c.Case.Saddle() {
			b.WriteString(" saddle")
		}
		b.WriteString("\n")
		if corners, err := marching.Sample(m.result.Grid, c.GridX, c.GridY); err == nil {
			fmt.Fprintf(&b, "BL %d  TL %d  TR %d  BR %d\n", corners.BL, corners.TL, corners.TR, corners.BR)
		}
		// the cell center truncates to its lower-left sample
		if v, err := m.result.Field.ValueAt(float64(c.GridX)+0.5, float64(c.GridY)+0.5); err == nil {
			fmt.Fprintf(&b, "sample %.4f\n", v)
		}
		fmt.Fprintf(&b, "vertices %d\n", len(c.Vertices()))
		for _, seg := range c.Isolines() {
			fmt.Fprintf(&b, "  (%g,%g)-(%g,%g)\n", seg[0].X, seg[0].Y, seg[1].X, seg[1].Y)
		}
	}

	lo, hi := m.result.Field.Range()
	fmt.Fprintf(&b, "\nrange %.3f .. %.3f\n", lo, hi)
	fmt.Fprintf(&b, "inside %d / %d\n", m.result.Grid.Count(), m.params.Width*m.params.Height)
	fmt.Fprintf(&b, "segments %d\n", m.result.Segments())
	fmt.Fprintf(&b, "took %s\n\n", m.result.Duration.Round(time.Microsecond))

	b.WriteString("case counts\n")
	for idx, n := range m.result.CaseHistogram {
		if n == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s %2d %s\n", components.CaseGlyph(marching.CaseIndex(idx)), idx, components.RightText(fmt.Sprint(n), 6))
	}

	return components.InfoPanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// SetSize updates the preview size
func (m *PreviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func nextKind(k noise.Kind) noise.Kind {
	kinds := noise.Kinds()
	for i, kind := range kinds {
		if kind == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

// Messages
type extractedMsg struct {
	result *contour.Result
}

type extractErrorMsg struct {
	err error
}

type runSavedMsg struct {
	run *runs.Run
}

package models

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/isoline/internal/runs"
	"github.com/VoidMesh/isoline/services/contour"
)

// ViewType represents the different views in the debug tool
type ViewType int

const (
	MenuView ViewType = iota
	PreviewView
	CasesView
	RunsView

	viewCount
)

// App is the main application model
type App struct {
	// Current state
	currentView ViewType
	width       int
	height      int

	// View models
	menu    MenuModel
	preview PreviewModel
	cases   CasesModel
	runs    RunsModel

	// UI state
	showHelp bool
}

// NewApp creates a new application instance. manager may be nil when no
// database is configured.
func NewApp(params contour.Params, manager *runs.Manager, startView string) *App {
	app := &App{
		menu:        NewMenuModel(),
		preview:     NewPreviewModel(params, manager),
		cases:       NewCasesModel(),
		runs:        NewRunsModel(manager),
		currentView: ParseView(startView),
	}
	return app
}

// ParseView maps a -view flag value onto a view.
func ParseView(name string) ViewType {
	switch name {
	case "preview":
		return PreviewView
	case "cases":
		return CasesView
	case "runs":
		return RunsView
	default:
		return MenuView
	}
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing debug tool", "view", m.currentView)
	return m.initView()
}

func (m *App) initView() tea.Cmd {
	switch m.currentView {
	case PreviewView:
		return m.preview.Init()
	case CasesView:
		return m.cases.Init()
	case RunsView:
		return m.runs.Init()
	}
	return m.menu.Init()
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.menu.SetSize(msg.Width, msg.Height)
		m.preview.SetSize(msg.Width, msg.Height)
		m.cases.SetSize(msg.Width, msg.Height)
		m.runs.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKey(msg.String()); handled {
			return m, cmd
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, m.initView()
	}

	// Handle help view
	if m.showHelp {
		return m, nil
	}

	// Route message to the view that owns it
	var cmd tea.Cmd
	switch msg.(type) {
	case extractedMsg, extractErrorMsg, runSavedMsg:
		var next tea.Model
		next, cmd = m.preview.Update(msg)
		m.preview = next.(PreviewModel)
		return m, cmd
	case runsLoadedMsg, runDeletedMsg, runsErrorMsg:
		var next tea.Model
		next, cmd = m.runs.Update(msg)
		m.runs = next.(RunsModel)
		return m, cmd
	}

	switch m.currentView {
	case MenuView:
		newModel, cmd := m.menu.Update(msg)
		m.menu = newModel.(MenuModel)
		return m, cmd
	case PreviewView:
		newModel, cmd := m.preview.Update(msg)
		m.preview = newModel.(PreviewModel)
		return m, cmd
	case CasesView:
		newModel, cmd := m.cases.Update(msg)
		m.cases = newModel.(CasesModel)
		return m, cmd
	case RunsView:
		newModel, cmd := m.runs.Update(msg)
		m.runs = newModel.(RunsModel)
		return m, cmd
	}

	return m, cmd
}

// handleGlobalKey processes keys shared by every view.
func (m *App) handleGlobalKey(key string) (bool, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return true, tea.Quit
	case "q", "esc":
		if m.showHelp {
			m.showHelp = false
			return true, nil
		}
		if m.currentView == MenuView {
			return true, tea.Quit
		}
		// Go back to the menu instead of quitting
		m.currentView = MenuView
		return true, m.menu.Init()
	case "?":
		m.showHelp = !m.showHelp
		return true, nil
	case "tab":
		m.currentView = (m.currentView + 1) % viewCount
		return true, m.initView()
	}
	return m.showHelp, nil
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case PreviewView:
		return m.preview.View()
	case CasesView:
		return m.cases.View()
	case RunsView:
		return m.runs.View()
	}

	return "Unknown view"
}

// renderHelp renders the help screen
func (m *App) renderHelp() string {
	help := `
┌─ isoline debug tool - help ────────────────────────────┐
│                                                         │
│ Global keys:                                            │
│   q, Esc       Back to menu / quit from menu            │
│   Ctrl+C       Quit                                     │
│   ?            Toggle this help                         │
│   Tab          Cycle through views                      │
│                                                         │
│ Preview:                                                │
│   arrows/hjkl  Move the cell cursor                     │
│   s / S        Next / previous seed                     │
│   + / - / 0    Raise / lower / reset threshold          │
│   n            Cycle noise kind                         │
│   [ / ]        Shrink / grow the field                  │
│   r            Re-extract                               │
│   p            Save the run (needs -db)                 │
│                                                         │
│ Runs:                                                   │
│   d            Delete the selected run                  │
│   r            Refresh                                  │
│                                                         │
│ Press ? again to close this help                        │
└─────────────────────────────────────────────────────────┘
`
	return help
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

// NewSwitchViewMsg creates a new switch view message
func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}

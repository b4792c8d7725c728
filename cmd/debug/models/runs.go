package models

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/isoline/cmd/debug/components"
	"github.com/VoidMesh/isoline/internal/runs"
	"github.com/VoidMesh/isoline/services/marching"
)

// RunsModel browses persisted runs.
type RunsModel struct {
	manager *runs.Manager
	runs    []runs.Run
	cursor  int
	err     error
	status  string
	width   int
	height  int
}

func NewRunsModel(manager *runs.Manager) RunsModel {
	return RunsModel{manager: manager}
}

func (m RunsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case runsLoadedMsg:
		m.runs = msg.runs
		m.err = nil
		m.cursor = min(m.cursor, max(len(m.runs)-1, 0))
		return m, nil

	case runDeletedMsg:
		m.status = "deleted run " + msg.id
		return m, m.loadCmd()

	case runsErrorMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m RunsModel) handleKey(key string) (RunsModel, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.runs)-1 {
			m.cursor++
		}
	case "r":
		m.status = ""
		return m, m.loadCmd()
	case "d":
		if len(m.runs) > 0 && m.manager != nil {
			return m, m.deleteCmd(m.runs[m.cursor].ID)
		}
	}
	return m, nil
}

func (m RunsModel) loadCmd() tea.Cmd {
	if m.manager == nil {
		return nil
	}
	manager := m.manager
	return func() tea.Msg {
		list, err := manager.ListRuns(context.Background(), runs.MaxListLimit)
		if err != nil {
			return runsErrorMsg{err: err}
		}
		return runsLoadedMsg{runs: list}
	}
}

func (m RunsModel) deleteCmd(id string) tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		if err := manager.DeleteRun(context.Background(), id); err != nil {
			return runsErrorMsg{err: err}
		}
		return runDeletedMsg{id: id}
	}
}

func (m RunsModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Stored Runs") + "\n\n")

	switch {
	case m.manager == nil:
		s.WriteString(components.BorderStyle.Render("No database configured.\nStart with -db to browse stored runs.") + "\n\n")
	case m.err != nil:
		s.WriteString(components.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	case len(m.runs) == 0:
		s.WriteString(components.BorderStyle.Render("No runs stored yet. Press p in the preview to save one.") + "\n\n")
	default:
		var lines []string
		for i, r := range m.runs {
			line := fmt.Sprintf("%s  %4dx%-4d seed %-8d t %+.2f %s %6d segs",
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.Params.Width, r.Params.Height, r.Params.Seed, r.Params.Threshold,
				components.LeftText(string(r.Params.Noise), 11), r.Segments)
			style := components.MenuItemStyle
			if i == m.cursor {
				style = components.SelectedMenuItemStyle
			}
			lines = append(lines, style.Render(line))
		}
		s.WriteString(components.BorderStyle.Render(strings.Join(lines, "\n")) + "\n")
		s.WriteString(m.renderHistogram(m.runs[m.cursor]) + "\n")
	}

	if m.status != "" {
		s.WriteString(m.status + "\n")
	}
	s.WriteString(components.StatusBarStyle.Render("↑/↓ select • d delete • r refresh • q back"))
	return s.String()
}

func (m RunsModel) renderHistogram(r runs.Run) string {
	var parts []string
	for idx, n := range r.CaseHistogram {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s%d:%d", components.CaseGlyph(marching.CaseIndex(idx)), idx, n))
		}
	}
	return components.HelpStyle.Render(r.ID + "\n" + strings.Join(parts, "  "))
}

func (m *RunsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

type runsLoadedMsg struct {
	runs []runs.Run
}

type runDeletedMsg struct {
	id string
}

type runsErrorMsg struct {
	err error
}

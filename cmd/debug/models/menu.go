package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/isoline/cmd/debug/components"
)

// MenuModel handles the main menu view
type MenuModel struct {
	choices []MenuChoice
	cursor  int
	width   int
	height  int
}

// MenuChoice represents a menu option
type MenuChoice struct {
	Title       string
	Description string
	View        ViewType
}

// NewMenuModel creates a new menu model
func NewMenuModel() MenuModel {
	choices := []MenuChoice{
		{
			Title:       "Contour Preview",
			Description: "Render the binary grid and per-cell cases",
			View:        PreviewView,
		},
		{
			Title:       "Case Table",
			Description: "Inspect the 16 contour templates",
			View:        CasesView,
		},
		{
			Title:       "Stored Runs",
			Description: "Browse and delete persisted runs",
			View:        RunsView,
		},
	}

	return MenuModel{
		choices: choices,
		cursor:  0,
	}
}

// Init initializes the menu
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles menu messages
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}

	return m, nil
}

func (m MenuModel) handleKey(key string) (MenuModel, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.choices) - 1
		}

	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}

	case "enter", " ":
		selected := m.choices[m.cursor]
		return m, func() tea.Msg {
			return NewSwitchViewMsg(selected.View)
		}

	case "1", "2", "3":
		// Direct number selection
		choice := int(key[0] - '1')
		if choice >= 0 && choice < len(m.choices) {
			m.cursor = choice
			selected := m.choices[m.cursor]
			return m, func() tea.Msg {
				return NewSwitchViewMsg(selected.View)
			}
		}
	}

	return m, nil
}

// View renders the menu
func (m MenuModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("isoline debug tool") + "\n\n")

	menuStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.PrimaryColor).
		Padding(1, 2).
		Width(64)

	var menuItems []string
	for i, choice := range m.choices {
		itemStyle := components.MenuItemStyle
		if i == m.cursor {
			itemStyle = components.SelectedMenuItemStyle
		}
		item := fmt.Sprintf("%d.  %-18s %s", i+1, choice.Title, choice.Description)
		menuItems = append(menuItems, itemStyle.Render(item))
	}

	s.WriteString(menuStyle.Render(strings.Join(menuItems, "\n")) + "\n\n")
	s.WriteString(components.HelpStyle.Render(
		"Use ↑/↓ or j/k to navigate • Enter or number to select • ? for help • q to quit",
	))

	content := s.String()
	if m.width > 0 {
		contentWidth := lipgloss.Width(content)
		if contentWidth < m.width {
			leftPadding := (m.width - contentWidth) / 2
			content = lipgloss.NewStyle().PaddingLeft(leftPadding).Render(content)
		}
	}

	return content
}

// SetSize updates the menu size
func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

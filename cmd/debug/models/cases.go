package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/isoline/cmd/debug/components"
	"github.com/VoidMesh/isoline/services/marching"
)

// CasesModel lists the contour templates.
type CasesModel struct {
	cases  []marching.CaseTemplate
	cursor int
	width  int
	height int
}

func NewCasesModel() CasesModel {
	return CasesModel{cases: marching.Table()}
}

func (m CasesModel) Init() tea.Cmd {
	return nil
}

func (m CasesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String()), nil
	}
	return m, nil
}

func (m CasesModel) handleKey(key string) CasesModel {
	switch key {
	case "up", "k":
		m.cursor = (m.cursor + len(m.cases) - 1) % len(m.cases)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.cases)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.cases) - 1
	}
	return m
}

func (m CasesModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Case Table") + "\n\n")

	var list []string
	for i, c := range m.cases {
		line := fmt.Sprintf("%s %2d  %04b", components.CaseGlyph(c.Case), c.Case, uint8(c.Case))
		style := components.MenuItemStyle
		if i == m.cursor {
			style = components.SelectedMenuItemStyle
		}
		list = append(list, style.Render(line))
	}

	left := components.BorderStyle.Render(strings.Join(list, "\n"))
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.renderDetail()) + "\n")
	s.WriteString(components.StatusBarStyle.Render("↑/↓ select • bits are BL TL TR BR • q back"))

	return s.String()
}

func (m CasesModel) renderDetail() string {
	c := m.cases[m.cursor]

	var b strings.Builder
	fmt.Fprintf(&b, "case %d", c.Case)
	if c.Saddle {
		b.WriteString(" (saddle)")
	}
	fmt.Fprintf(&b, ", %d vertices\n\n", len(c.Vertices))

	if len(c.Rings) == 0 {
		b.WriteString("no contour\n")
	}
	for i, ring := range c.Rings {
		points := make([]string, len(ring))
		for j, p := range ring {
			points[j] = fmt.Sprintf("(%g,%g)", p.X, p.Y)
		}
		fmt.Fprintf(&b, "ring %d: %s\n", i+1, strings.Join(points, " "))
	}

	if len(c.Isolines) > 0 {
		b.WriteString("\nisolines\n")
		for _, seg := range c.Isolines {
			fmt.Fprintf(&b, "  (%g,%g)-(%g,%g)\n", seg[0].X, seg[0].Y, seg[1].X, seg[1].Y)
		}
	}

	return components.InfoPanelStyle.Width(48).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *CasesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

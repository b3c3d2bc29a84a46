package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/registry"
)

// MenuModel is the Bubble Tea model for the layout picker shown before a
// game when no layout was given on the command line.
type MenuModel struct {
	items    []registry.LayoutInfo
	cursor   int
	width    int
	height   int
	config   core.RuntimeConfig
	keys     MenuKeyMap
	help     help.Model
	quitting bool
	selected string
}

// NewMenuModel creates a menu with the cursor on the given layout, if listed.
func NewMenuModel(cfg core.RuntimeConfig, current string) MenuModel {
	items := registry.List()
	m := MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	for i, it := range items {
		if it.ID == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			m.selected = m.items[m.cursor].ID
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  B R I C K   B R E A K E R  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a layout", m.width))
	b.WriteString("\n\n")

	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = active
		}
		line := fmt.Sprintf("%s%-10s %2d rows %3d bricks", cursor, item.Title, item.Rows, item.Bricks)
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen layout ID, or "" if none was chosen.
func (m MenuModel) Selected() string {
	return m.selected
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Layout string
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the layout picker and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, current string) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, current), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Selected() == "" {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return MenuResult{Layout: m.Selected(), Config: m.Config()}, nil
}

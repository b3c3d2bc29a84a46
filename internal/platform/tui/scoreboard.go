package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brick-breaker/internal/registry"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinHeight = 3
	maxRuns        = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextLayout key.Binding
	PrevLayout key.Binding
	Back       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevLayout, k.NextLayout, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.PrevLayout, k.NextLayout, k.Back},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLayout: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next layout"),
		),
		PrevLayout: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev layout"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "back"),
		),
	}
}

// Scoreboard shows the runs of this session for one layout at a time.
// It is embedded in Model and toggled while playing.
type Scoreboard struct {
	layouts []registry.LayoutInfo
	cursor  int
	store   *storage.Store
	runs    []storage.Run
	stats   *storage.Stats
	err     error
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int
}

// NewScoreboard creates a scoreboard positioned on the given layout.
func NewScoreboard(store *storage.Store, layout string, width, height int) Scoreboard {
	layouts := registry.List()
	if !registry.Exists(layout) {
		// Inline layouts are recorded under their own name.
		layouts = append([]registry.LayoutInfo{{ID: layout, Title: layout}}, layouts...)
	}

	m := Scoreboard{
		layouts: layouts,
		store:   store,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	for i, l := range layouts {
		if l.ID == layout {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.Refresh()
	return m
}

// Layout returns the ID of the layout being shown.
func (m Scoreboard) Layout() string {
	if len(m.layouts) == 0 {
		return ""
	}
	return m.layouts[m.cursor].ID
}

// createTable creates a new table sized to the scoreboard.
func (m *Scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Result", Width: 9},
		{Title: "Ticks", Width: 8},
		{Title: "Bricks", Width: 7},
		{Title: "Power", Width: 6},
		{Title: "Time", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, tableMinHeight)), // Leave room for title, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Refresh reloads runs and stats of the current layout from the store.
func (m *Scoreboard) Refresh() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.layouts) > 0 {
		id := m.Layout()
		m.runs, m.err = m.store.TopRuns(id, maxRuns)
		if m.err == nil {
			m.stats, m.err = m.store.Stats(id)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *Scoreboard) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			string(r.Outcome),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Bricks),
			fmt.Sprintf("%d", r.PowerUps),
			r.CreatedAt.Local().Format("15:04:05"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Resize adapts the table to a new terminal size.
func (m *Scoreboard) Resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.table = m.createTable()
	m.updateTableRows()
}

// Update handles scoreboard keys. The back binding is left to the caller.
func (m Scoreboard) Update(msg tea.Msg) (Scoreboard, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.NextLayout):
			if len(m.layouts) > 0 {
				m.cursor = (m.cursor + 1) % len(m.layouts)
				m.Refresh()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLayout):
			if len(m.layouts) > 0 {
				m.cursor = (m.cursor - 1 + len(m.layouts)) % len(m.layouts)
				m.Refresh()
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m Scoreboard) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "SESSION RUNS"
	if len(m.layouts) > 0 {
		title = fmt.Sprintf("SESSION RUNS - < %s >", m.layouts[m.cursor].Title)
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	statStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Scoreboard) statsLine() string {
	switch {
	case m.err != nil:
		return "ledger unavailable: " + m.err.Error()
	case m.stats == nil || m.stats.Runs == 0:
		return "no runs yet"
	}
	s := m.stats
	return fmt.Sprintf("runs %d  wins %d (%.0f%%)  high %d  avg %.1f",
		s.Runs, s.Wins, s.WinRate()*100, s.HighScore, s.AvgScore)
}

// renderTableContent renders the table or empty message.
func (m Scoreboard) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		return emptyStyle.Render("No finished runs on this layout yet.")
	}

	return m.table.View()
}

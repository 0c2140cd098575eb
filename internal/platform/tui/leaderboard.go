package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickbreaker/internal/storage"
)

// Leaderboard layout constants
const (
	maxLeaderboardEntries = 100
	tableMinWidth         = 40
)

// LeaderboardSource supplies ranked best scores.
type LeaderboardSource interface {
	Leaderboard(limit int) ([]storage.LeaderboardEntry, error)
}

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Quit},
	}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel is the Bubble Tea model for the rankings screen.
type LeaderboardModel struct {
	source   LeaderboardSource
	player   string // Highlighted in the title when set
	entries  []storage.LeaderboardEntry
	loadErr  error
	table    table.Model
	help     help.Model
	keys     LeaderboardKeyMap
	width    int
	height   int
	quitting bool

	// Set by AppModel: q and esc go back to the menu instead of quitting
	returnToMenu bool
	done         bool
}

// NewLeaderboardModel creates a leaderboard model and loads the first page.
func NewLeaderboardModel(source LeaderboardSource, player string, width, height int) LeaderboardModel {
	h := help.New()
	h.ShowAll = false

	m := LeaderboardModel{
		source: source,
		player: player,
		keys:   DefaultLeaderboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *LeaderboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 12},
	}

	// Give spare width to the player column
	tableWidth := m.width - 8
	if tableWidth > tableMinWidth+4 {
		columns[1].Width = min(tableWidth-30, 32)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// load fetches the leaderboard and refreshes the table rows.
func (m *LeaderboardModel) load() {
	m.entries, m.loadErr = nil, nil
	if m.source != nil {
		m.entries, m.loadErr = m.source.Leaderboard(maxLeaderboardEntries)
	}
	m.table.SetRows(LeaderboardRows(m.entries))
	m.table.GotoTop()
}

// LeaderboardRows formats entries as rank, player, score, DD/MM/YYYY.
func LeaderboardRows(entries []storage.LeaderboardEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.Rank),
			e.Username,
			fmt.Sprintf("%d", e.Score),
			e.DisplayDate(),
		}
	}
	return rows
}

// Init initializes the leaderboard model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.returnToMenu && msg.String() != "ctrl+c" {
				m.done = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(LeaderboardRows(m.entries))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString(titleStyle.Render(centerLine("LEADERBOARD", m.width)))
	b.WriteString("\n")
	if m.player != "" {
		b.WriteString(centerLine("Playing as "+m.player, m.width))
	}
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

// renderTableContent renders the table, an error or the empty message.
func (m LeaderboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	}
	if len(m.entries) == 0 {
		return emptyStyle.Render("No scores yet.\nPlay the game to appear on the leaderboard!")
	}

	return m.table.View()
}

// Done returns true once the player left an embedded leaderboard.
func (m LeaderboardModel) Done() bool {
	return m.done
}

// centerLine pads s so it appears centred in width columns.
func centerLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// RunLeaderboard runs the leaderboard screen until the user quits.
func RunLeaderboard(source LeaderboardSource, player string, width, height int) error {
	model := NewLeaderboardModel(source, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

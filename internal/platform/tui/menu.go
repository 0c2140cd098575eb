package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickbreaker/internal/config"
)

// MenuChoice is what the player picked on the title menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuPlay
	MenuLeaderboard
	MenuQuit
)

// MenuItem is one row of the title menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var titleItems = []MenuItem{
	{Choice: MenuPlay, Title: "Play"},
	{Choice: MenuLeaderboard, Title: "Leaderboard"},
	{Choice: MenuQuit, Title: "Quit"},
}

var difficulties = []struct {
	preset config.DifficultyPreset
	label  string
}{
	{config.DifficultyEasy, "Easy    5 lives, slow ball, wide paddle"},
	{config.DifficultyNormal, "Normal  3 lives"},
	{config.DifficultyHard, "Hard    2 lives, fast ball, narrow paddle"},
}

// MenuModel is the title menu with a difficulty sub-menu behind Play.
type MenuModel struct {
	cursor       int
	diffCursor   int
	inDifficulty bool
	width        int
	height       int
	player       string
	keyMapper    *KeyMapper

	choice     MenuChoice
	difficulty config.DifficultyPreset
	quitting   bool
}

// NewMenuModel creates a title menu. player is shown when non-empty.
func NewMenuModel(player string, width, height int) MenuModel {
	return MenuModel{
		diffCursor: 1, // Normal
		width:      width,
		height:     height,
		player:     player,
		keyMapper:  NewKeyMapper(),
	}
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inDifficulty {
		return m.handleDifficultyKey(action)
	}

	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(titleItems)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch item := titleItems[m.cursor]; item.Choice {
		case MenuPlay:
			m.inDifficulty = true
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.choice = item.Choice
		}
	}

	return m, nil
}

func (m MenuModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(difficulties)-1 {
			m.diffCursor++
		}
	case MenuActionSelect:
		m.choice = MenuPlay
		m.difficulty = difficulties[m.diffCursor].preset
	case MenuActionBack:
		m.inDifficulty = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("111"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerLine("B R I C K B R E A K E R", m.width)))
	b.WriteString("\n\n")

	if m.player != "" {
		b.WriteString(centerLine("Playing as "+m.player, m.width))
		b.WriteString("\n\n")
	}

	if m.inDifficulty {
		b.WriteString(centerLine("Select difficulty:", m.width))
		b.WriteString("\n\n")
		for i, d := range difficulties {
			b.WriteString(centerLine(fmt.Sprintf("%s%s", cursorMark(i == m.diffCursor), d.label), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(centerLine("Enter: Start  |  Esc: Back  |  Q: Quit", m.width))
		return b.String()
	}

	for i, item := range titleItems {
		b.WriteString(centerLine(cursorMark(i == m.cursor)+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerLine("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func cursorMark(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

// Choice returns the picked entry, or MenuNone while the player is choosing.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the preset picked for MenuPlay.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.difficulty
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

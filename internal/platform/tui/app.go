package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickbreaker/internal/config"
)

// AppOptions configures the full menu, game and leaderboard flow.
type AppOptions struct {
	// Game is the template for every game started from the menu. Its
	// Config is the base tuning the chosen difficulty is applied to.
	Game Options

	// Leaderboard backs the leaderboard screen; nil hides scores.
	Leaderboard LeaderboardSource
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenLeaderboard
)

// AppModel manages a session: menu -> game or leaderboard -> menu.
// It is the top-level model for SSH sessions and `brickbreaker menu`.
type AppModel struct {
	opts     AppOptions
	screen   appScreen
	menu     MenuModel
	game     Model
	board    LeaderboardModel
	width    int
	height   int
	quitting bool
	err      error
}

// NewAppModel creates a session starting at the title menu.
func NewAppModel(opts AppOptions) AppModel {
	if opts.Game.ScreenW <= 0 || opts.Game.ScreenH <= 0 {
		opts.Game.ScreenW, opts.Game.ScreenH = 80, 24
	}
	m := AppModel{
		opts:   opts,
		width:  opts.Game.ScreenW,
		height: opts.Game.ScreenH,
	}
	m.menu = NewMenuModel(m.player(), m.width, m.height)
	return m
}

func (m AppModel) player() string {
	if m.opts.Game.Player == nil {
		return ""
	}
	return m.opts.Game.Player()
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenLeaderboard:
		return m.updateLeaderboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Choice() {
	case MenuPlay:
		return m.startGame(m.menu.Difficulty())
	case MenuLeaderboard:
		m.board = NewLeaderboardModel(m.opts.Leaderboard, m.player(), m.width, m.height)
		m.board.returnToMenu = true
		m.screen = screenLeaderboard
		return m, m.board.Init()
	}

	return m, cmd
}

// startGame builds a fresh game at the chosen difficulty.
func (m AppModel) startGame(preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	opts := m.opts.Game
	opts.ScreenW, opts.ScreenH = m.width, m.height
	opts.ReturnToMenu = true
	config.ApplyBreakoutPreset(&opts.Config, preset)

	game, err := NewModel(opts)
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	m.game = game
	m.screen = screenGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateLeaderboard handles updates when showing the leaderboard.
func (m AppModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	m.board = next.(LeaderboardModel)

	if m.board.quitting {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.Done() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.player(), m.width, m.height)
	return m, m.menu.Init()
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenLeaderboard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the session, if any.
func (m AppModel) Err() error {
	return m.err
}

// RunApp runs the menu flow in this terminal.
func RunApp(opts AppOptions) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if app, ok := final.(AppModel); ok {
		return app.Err()
	}
	return nil
}

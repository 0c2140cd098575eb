package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
	"github.com/vovakirdan/brickbreaker/internal/render"
	"github.com/vovakirdan/brickbreaker/internal/session"
)

// messageDuration is how long status messages stay on screen.
const messageDuration = 2 * time.Second

// Options configures a game model.
type Options struct {
	Config config.BreakoutConfig
	FPS    int

	// Scores receives final scores; nil disables saving.
	Scores session.ScoreSubmitter

	// Player reports the current username; nil or "" plays as Guest.
	Player func() string

	// Logger receives game events. It must not write to the terminal the
	// game is drawn on; nil discards.
	Logger *log.Logger

	// ScreenshotDir is where ctrl+s writes PNGs.
	// Empty means ~/.brickbreaker/screenshots.
	ScreenshotDir string

	// NoScreenshots ignores ctrl+s, for sessions not running on the
	// player's machine.
	NoScreenshots bool

	// ReturnToMenu makes b/esc on the pause screen hand control back to
	// the menu instead of doing nothing.
	ReturnToMenu bool

	ScreenW, ScreenH int
}

// Model is the Bubble Tea model for a brick breaker session.
type Model struct {
	id        uint64
	driver    *session.Driver
	hold      *KeyHold
	keyMapper *KeyMapper
	screen    *core.Screen
	term      *render.Terminal
	snap      breakout.Snapshot
	opts      Options
	logger    *log.Logger

	messageUntil time.Time
	quitting     bool
	backToMenu   bool

	// The rules overlay paused a running game and must resume it
	rulesPaused bool
}

// NewModel builds the engine, driver and score recorder for one session.
func NewModel(opts Options) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.ScreenW <= 0 || opts.ScreenH <= 0 {
		opts.ScreenW, opts.ScreenH = 80, 24
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engine, err := breakout.New(opts.Config)
	if err != nil {
		return Model{}, err
	}

	hold := NewKeyHold(core.NewInputLatch())
	term := &render.Terminal{}

	driverOpts := []session.Option{session.WithLogger(logger)}
	if opts.Scores != nil {
		driverOpts = append(driverOpts, session.WithSink(session.NewScoreRecorder(opts.Scores, opts.Player, logger)))
	}

	return Model{
		id:        nextGameID(),
		driver:    session.NewDriver(engine, hold, driverOpts...),
		hold:      hold,
		keyMapper: NewKeyMapper(),
		screen:    core.NewScreen(opts.ScreenW, opts.ScreenH),
		term:      term,
		snap:      engine.Snapshot(),
		opts:      opts,
		logger:    logger,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS, m.id)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Game != m.id {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	engine := m.driver.Engine()
	switch action {
	case core.ActionLeft:
		m.hold.Press(core.DirLeft, now)
	case core.ActionRight:
		m.hold.Press(core.DirRight, now)
	case core.ActionPause:
		if !m.term.ShowRules {
			engine.TogglePause()
			m.hold.Release()
		}
	case core.ActionRules:
		if m.term.ShowRules {
			m.closeRules()
		} else {
			m.openRules()
		}
	case core.ActionBack:
		switch {
		case m.term.ShowRules:
			m.closeRules()
		case m.opts.ReturnToMenu && !engine.State().Running:
			m.backToMenu = true
		}
	case core.ActionScreenshot:
		if !m.opts.NoScreenshots {
			m = m.saveScreenshot(now)
		}
	}

	return m, nil
}

// openRules shows the rules. They cover the playfield, so the game waits
// underneath.
func (m *Model) openRules() {
	engine := m.driver.Engine()
	m.term.ShowRules = true
	m.rulesPaused = engine.State().Running
	engine.Pause()
	m.hold.Release()
}

// closeRules hides the rules and resumes only a game they paused.
func (m *Model) closeRules() {
	m.term.ShowRules = false
	if m.rulesPaused {
		m.driver.Engine().Resume()
	}
	m.rulesPaused = false
}

// handleTick runs one simulation step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.hold.Expire(now)
	m.term.Player = m.player()

	snap, events := m.driver.Step()
	m.snap = snap

	for _, ev := range events {
		if text := eventMessage(ev); text != "" {
			m.term.Message = text
			m.messageUntil = now.Add(messageDuration)
		}
	}
	if m.term.Message != "" && now.After(m.messageUntil) {
		m.term.Message = ""
	}

	return m, tickCmd(m.opts.FPS, m.id)
}

func (m Model) player() string {
	if m.opts.Player == nil {
		return ""
	}
	return m.opts.Player()
}

// eventMessage returns the status line for an event, or "" for none.
func eventMessage(ev breakout.Event) string {
	switch ev.Type {
	case breakout.EventLevelUp:
		return fmt.Sprintf("Level %d!", ev.Level)
	case breakout.EventLifeLost:
		return fmt.Sprintf("Ball lost, %d left", ev.Lives)
	case breakout.EventGameOver:
		return fmt.Sprintf("Game over! Final score %d", ev.Score)
	default:
		return ""
	}
}

// saveScreenshot writes the current frame as a PNG.
func (m Model) saveScreenshot(now time.Time) Model {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("cannot resolve screenshot directory", "err", err)
			return m
		}
		dir = filepath.Join(home, ".brickbreaker", "screenshots")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "err", err)
		return m
	}

	path := filepath.Join(dir, fmt.Sprintf("breakout_%s.png", now.Format("20060102_150405")))
	if err := render.NewPNG(0, 0).SavePNG(path, m.snap); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		m.term.Message = "Screenshot failed"
	} else {
		m.logger.Info("screenshot saved", "path", path)
		m.term.Message = "Saved " + filepath.Base(path)
	}
	m.messageUntil = now.Add(messageDuration)
	return m
}

// Snapshot returns the last rendered world state.
func (m Model) Snapshot() breakout.Snapshot {
	return m.snap
}

// BackToMenu returns true once the player left the paused game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user asked to exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.term.Draw(m.screen, m.snap)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}

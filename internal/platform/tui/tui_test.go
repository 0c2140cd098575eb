package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runeKey("d"), core.ActionRight, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("?"), core.ActionRules, false},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestKeyHoldExpiry(t *testing.T) {
	latch := core.NewInputLatch()
	hold := NewKeyHold(latch)
	t0 := time.Unix(1000, 0)

	hold.Press(core.DirLeft, t0)
	hold.Expire(t0.Add(300 * time.Millisecond))
	if got := hold.Input().Direction; got != core.DirLeft {
		t.Fatalf("Direction inside first hold = %v, expected left", got)
	}

	// An auto-repeat switches to the shorter window
	hold.Press(core.DirLeft, t0.Add(400*time.Millisecond))
	hold.Expire(t0.Add(400*time.Millisecond + DefaultRepeatHold + time.Millisecond))
	if got := hold.Input().Direction; got != core.DirNone {
		t.Errorf("Direction after repeat window = %v, expected none", got)
	}
}

func TestKeyHoldLastKeyWins(t *testing.T) {
	hold := NewKeyHold(core.NewInputLatch())
	t0 := time.Unix(1000, 0)

	hold.Press(core.DirLeft, t0)
	hold.Press(core.DirRight, t0.Add(10*time.Millisecond))
	if got := hold.Input().Direction; got != core.DirRight {
		t.Errorf("Direction = %v, expected right", got)
	}

	hold.Release()
	if got := hold.Input().Direction; got != core.DirNone {
		t.Errorf("Direction after Release = %v, expected none", got)
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(Options{
		Config:        config.DefaultBreakoutConfig(),
		ScreenshotDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{At: at, Game: m.id})
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg, at time.Time) Model {
	t.Helper()
	next, _ := m.handleKey(msg, at)
	return next.(Model)
}

func TestNewModelRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Ball.Radius = 0
	if _, err := NewModel(Options{Config: cfg}); err == nil {
		t.Error("NewModel should reject an invalid config")
	}
}

func TestModelMovesPaddleWhileHeld(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Now()
	startX := m.Snapshot().Paddle.X

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, t0)
	m = tick(t, m, t0.Add(16*time.Millisecond))
	moved := m.Snapshot().Paddle.X
	if moved >= startX {
		t.Fatalf("Paddle.X = %v, expected less than %v", moved, startX)
	}

	// No repeat arrives, so the hold lapses and the paddle stops
	m = tick(t, m, t0.Add(time.Second))
	stopped := m.Snapshot().Paddle.X
	m = tick(t, m, t0.Add(time.Second+16*time.Millisecond))
	if got := m.Snapshot().Paddle.X; got != stopped {
		t.Errorf("Paddle.X = %v after release, expected %v", got, stopped)
	}
}

func TestModelRulesPauseGame(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Now()

	m = press(t, m, runeKey("?"), t0)
	m = tick(t, m, t0.Add(16*time.Millisecond))
	paused := m.Snapshot()
	if paused.Running {
		t.Fatal("game should pause while rules are shown")
	}
	if !strings.Contains(m.View(), "RULES") {
		t.Error("View should show the rules overlay")
	}

	m = tick(t, m, t0.Add(32*time.Millisecond))
	if m.Snapshot().Tick != paused.Tick {
		t.Error("paused game should not advance")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, t0.Add(40*time.Millisecond))
	m = tick(t, m, t0.Add(48*time.Millisecond))
	if !m.Snapshot().Running {
		t.Error("closing the rules should resume the game")
	}
}

func TestModelRulesKeepManualPause(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Now()

	m = press(t, m, runeKey("p"), t0)
	m = press(t, m, runeKey("?"), t0.Add(10*time.Millisecond))
	m = press(t, m, runeKey("?"), t0.Add(20*time.Millisecond))
	m = tick(t, m, t0.Add(32*time.Millisecond))
	if m.Snapshot().Running {
		t.Error("closing the rules should leave a paused game paused")
	}

	m = press(t, m, runeKey("?"), t0.Add(40*time.Millisecond))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, t0.Add(50*time.Millisecond))
	m = tick(t, m, t0.Add(64*time.Millisecond))
	if m.Snapshot().Running {
		t.Error("esc on the rules should leave a paused game paused")
	}

	m = press(t, m, runeKey("p"), t0.Add(70*time.Millisecond))
	m = tick(t, m, t0.Add(80*time.Millisecond))
	if !m.Snapshot().Running {
		t.Error("p should still resume after the rules were closed")
	}
}

func TestModelPauseToggle(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Now()

	m = press(t, m, runeKey("p"), t0)
	m = tick(t, m, t0.Add(16*time.Millisecond))
	if m.Snapshot().Running {
		t.Fatal("p should pause")
	}

	m = press(t, m, runeKey("p"), t0.Add(20*time.Millisecond))
	m = tick(t, m, t0.Add(32*time.Millisecond))
	if !m.Snapshot().Running {
		t.Error("second p should resume")
	}
}

func TestModelIgnoresOtherGamesTicks(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(TickMsg{At: time.Now(), Game: m.id + 1000})
	if cmd != nil {
		t.Error("a stale tick should not schedule another")
	}
	if next.(Model).Snapshot().Tick != 0 {
		t.Error("a stale tick should not advance the game")
	}
}

func TestModelBackToMenuOnlyWhenPaused(t *testing.T) {
	m, err := NewModel(Options{Config: config.DefaultBreakoutConfig(), ReturnToMenu: true})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	t0 := time.Now()
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	m = press(t, m, esc, t0)
	if m.BackToMenu() {
		t.Fatal("esc while running should keep playing")
	}

	m = press(t, m, runeKey("p"), t0)
	m = press(t, m, esc, t0)
	if !m.BackToMenu() {
		t.Error("esc on the pause screen should return to the menu")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model should be quitting")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelScreenshot(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}, time.Now())
	if !strings.HasPrefix(m.term.Message, "Saved breakout_") {
		t.Errorf("Message = %q, expected a saved screenshot", m.term.Message)
	}
}

type fakeLeaderboard struct {
	entries []storage.LeaderboardEntry
	err     error
	calls   int
}

func (f *fakeLeaderboard) Leaderboard(limit int) ([]storage.LeaderboardEntry, error) {
	f.calls++
	return f.entries, f.err
}

func TestLeaderboardRows(t *testing.T) {
	entries := []storage.LeaderboardEntry{
		{Rank: 1, Username: "alice", Score: 42, ReachedAt: time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)},
		{Rank: 2, Username: "bob", Score: 17, ReachedAt: time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)},
	}

	rows := LeaderboardRows(entries)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, expected 2", len(rows))
	}

	want := []string{"1", "alice", "42", "07/03/2025"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("rows[0][%d] = %q, expected %q", i, rows[0][i], cell)
		}
	}
	if rows[1][3] != "31/12/2024" {
		t.Errorf("rows[1] date = %q, expected 31/12/2024", rows[1][3])
	}
}

func TestLeaderboardModelViews(t *testing.T) {
	empty := NewLeaderboardModel(&fakeLeaderboard{}, "", 80, 24)
	if !strings.Contains(empty.View(), "No scores yet") {
		t.Error("empty leaderboard should say there are no scores")
	}

	broken := NewLeaderboardModel(&fakeLeaderboard{err: errors.New("disk gone")}, "", 80, 24)
	if !strings.Contains(broken.View(), "disk gone") {
		t.Error("leaderboard should show the load error")
	}

	src := &fakeLeaderboard{entries: []storage.LeaderboardEntry{{Rank: 1, Username: "alice", Score: 9}}}
	m := NewLeaderboardModel(src, "alice", 80, 24)
	view := m.View()
	if !strings.Contains(view, "LEADERBOARD") || !strings.Contains(view, "alice") {
		t.Error("leaderboard view should show the title and the player")
	}

	next, _ := m.Update(runeKey("r"))
	if src.calls != 2 {
		t.Errorf("Leaderboard called %d times, expected 2 after refresh", src.calls)
	}
	if _, cmd := next.Update(runeKey("q")); cmd == nil {
		t.Error("q should quit the leaderboard")
	}
}

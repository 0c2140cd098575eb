package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/brickbreaker/internal/account"
	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/session"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	return NewAppModel(AppOptions{
		Game: Options{
			Config:        config.DefaultBreakoutConfig(),
			Player:        func() string { return "alice" },
			NoScreenshots: true,
		},
		Leaderboard: &fakeLeaderboard{entries: []storage.LeaderboardEntry{{Rank: 1, Username: "alice", Score: 3}}},
	})
}

func send(t *testing.T, m AppModel, msgs ...tea.Msg) AppModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(AppModel)
	}
	return m
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel("", 80, 24)

	next, _ := m.Update(keyDown)
	m = next.(MenuModel)
	next, _ = m.Update(keyEnter)
	m = next.(MenuModel)
	if m.Choice() != MenuLeaderboard {
		t.Errorf("Choice = %v, expected leaderboard", m.Choice())
	}

	m = NewMenuModel("", 80, 24)
	next, cmd := m.Update(runeKey("q"))
	if !next.(MenuModel).IsQuitting() || cmd == nil {
		t.Error("q should quit the menu")
	}
}

func TestMenuDifficulty(t *testing.T) {
	m := NewMenuModel("alice", 80, 24)

	next, _ := m.Update(keyEnter)
	m = next.(MenuModel)
	if m.Choice() != MenuNone {
		t.Fatal("Play should open the difficulty list first")
	}

	next, _ = m.Update(keyEsc)
	m = next.(MenuModel)
	if m.inDifficulty {
		t.Fatal("esc should leave the difficulty list")
	}

	for _, msg := range []tea.Msg{keyEnter, keyDown, keyEnter} {
		next, _ = m.Update(msg)
		m = next.(MenuModel)
	}
	if m.Choice() != MenuPlay || m.Difficulty() != config.DifficultyHard {
		t.Errorf("Choice = %v %q, expected play hard", m.Choice(), m.Difficulty())
	}
}

func TestAppStartsGameAtChosenDifficulty(t *testing.T) {
	m := send(t, newTestApp(t), keyEnter, keyDown, keyEnter)

	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected the game", m.screen)
	}
	if lives := m.game.Snapshot().Lives; lives != 2 {
		t.Errorf("Lives = %d, expected 2 on hard", lives)
	}
}

func TestAppGameReturnsToMenu(t *testing.T) {
	m := send(t, newTestApp(t), keyEnter, keyEnter)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected the game", m.screen)
	}

	m = send(t, m, runeKey("p"), keyEsc)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected the menu after leaving a paused game", m.screen)
	}
}

func TestAppLeaderboardRoundTrip(t *testing.T) {
	m := send(t, newTestApp(t), keyDown, keyEnter)
	if m.screen != screenLeaderboard {
		t.Fatalf("screen = %v, expected the leaderboard", m.screen)
	}

	m = send(t, m, keyEsc)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected the menu", m.screen)
	}
	if m.quitting {
		t.Error("leaving the leaderboard should not quit")
	}
}

func TestAppQuitFromGame(t *testing.T) {
	m := send(t, newTestApp(t), keyEnter, keyEnter)

	next, cmd := m.Update(runeKey("q"))
	if !next.(AppModel).quitting || cmd == nil {
		t.Error("q in game should quit the session")
	}
}

func TestSSHSessionOptions(t *testing.T) {
	s := &SSHServer{config: DefaultSSHServerConfig(), logger: log.New(io.Discard)}

	opts := s.sessionOptions("bob", 120, 40)
	if opts.Player() != "bob" {
		t.Errorf("Player = %q, expected bob", opts.Player())
	}
	if !opts.NoScreenshots {
		t.Error("remote sessions should not write screenshots")
	}
	if opts.Scores != nil {
		t.Error("a server without a store should not save scores")
	}
	if opts.ScreenW != 120 || opts.ScreenH != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", opts.ScreenW, opts.ScreenH)
	}
}

type brokenAuth struct{}

func (brokenAuth) Login(string, string) (*storage.User, error) {
	return nil, errors.New("disk gone")
}

func TestSSHAuthenticate(t *testing.T) {
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	svc := account.NewService(store, account.WithBcryptCost(bcrypt.MinCost))
	if _, err := svc.Register(account.Registration{
		Username: "alice",
		Password: "rabbit42",
		FullName: "Alice Liddell",
		Phone:    "+44 20 7946 0000",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	s := &SSHServer{auth: svc, logger: log.New(io.Discard)}
	tests := []struct {
		name     string
		user     string
		password string
		player   string
		ok       bool
	}{
		{"registered user", "alice", "rabbit42", "alice", true},
		{"wrong password", "alice", "rabbit43", "", false},
		{"empty password", "alice", "", session.GuestName, true},
		{"unknown user", "mallory", "whatever1", session.GuestName, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player, ok := s.authenticate(tt.user, tt.password)
			if player != tt.player || ok != tt.ok {
				t.Errorf("authenticate(%q) = %q, %v, expected %q, %v", tt.user, player, ok, tt.player, tt.ok)
			}
		})
	}

	broken := &SSHServer{auth: brokenAuth{}, logger: log.New(io.Discard)}
	if _, ok := broken.authenticate("alice", "rabbit42"); ok {
		t.Error("authenticate should refuse when the store fails")
	}
}

func TestSessionPlayer(t *testing.T) {
	if got := sessionPlayer(context.Background()); got != session.GuestName {
		t.Errorf("sessionPlayer = %q without login, expected %q", got, session.GuestName)
	}

	ctx := context.WithValue(context.Background(), playerContextKey, "alice")
	if got := sessionPlayer(ctx); got != "alice" {
		t.Errorf("sessionPlayer = %q, expected alice", got)
	}
}

// Package tui provides the Bubble Tea integration for brickbreaker.
// It handles the terminal UI loop, key mapping, the title menu, the
// leaderboard screen and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Game identifies the
// model that scheduled it so ticks from a closed game are dropped.
type TickMsg struct {
	At   time.Time
	Game uint64
}

var lastGameID atomic.Uint64

// nextGameID returns a fresh id for a new game model.
func nextGameID() uint64 {
	return lastGameID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, game uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Game: game}
	})
}

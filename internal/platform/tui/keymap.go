package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case "p", " ":
		return core.ActionPause, false
	case "?":
		return core.ActionRules, false
	case "ctrl+s":
		return core.ActionScreenshot, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// Hold windows for KeyHold. Terminals send no key-up, only auto-repeated
// key-downs after an initial delay.
const (
	DefaultFirstHold  = 450 * time.Millisecond
	DefaultRepeatHold = 120 * time.Millisecond
)

// KeyHold emulates key-up on top of an InputLatch: a direction stays held
// while key-downs keep arriving and is released once they stop.
type KeyHold struct {
	latch      *core.InputLatch
	firstHold  time.Duration
	repeatHold time.Duration

	dir       core.Direction
	last      time.Time
	repeating bool
}

// NewKeyHold wraps latch with the default hold windows.
func NewKeyHold(latch *core.InputLatch) *KeyHold {
	return &KeyHold{
		latch:      latch,
		firstHold:  DefaultFirstHold,
		repeatHold: DefaultRepeatHold,
	}
}

// Press records a key-down at now.
func (h *KeyHold) Press(d core.Direction, now time.Time) {
	h.repeating = d == h.dir && now.Sub(h.last) <= h.firstHold
	h.dir = d
	h.last = now
	h.latch.Press(d)
}

// Expire releases the held direction when no key-down arrived in time.
func (h *KeyHold) Expire(now time.Time) {
	if h.dir == core.DirNone {
		return
	}

	window := h.firstHold
	if h.repeating {
		window = h.repeatHold
	}
	if now.Sub(h.last) > window {
		h.latch.Release(h.dir)
		h.dir = core.DirNone
		h.repeating = false
	}
}

// Release drops any held direction immediately.
func (h *KeyHold) Release() {
	h.latch.Reset()
	h.dir = core.DirNone
	h.repeating = false
}

// Input implements session.InputSource.
func (h *KeyHold) Input() core.Input {
	return h.latch.Input()
}

// MenuAction represents a menu navigation action.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key message to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "up", "k", "w":
		return MenuActionUp
	case "down", "j", "s":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "esc", "b", "backspace":
		return MenuActionBack
	}
	return MenuActionNone
}

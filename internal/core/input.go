package core

import "sync"

// Action represents a semantic player action, abstracted from physical key presses.
// This allows drivers to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // A, Left arrow - move paddle left
	ActionRight             // D, Right arrow - move paddle right
	ActionPause             // P - pause/unpause
	ActionRules             // ? - toggle the rules overlay
	ActionScreenshot        // Ctrl+S - save a frame to disk
	ActionBack              // B, Escape - go back
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRules:
		return "Rules"
	case ActionScreenshot:
		return "Screenshot"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction is the horizontal intent applied to the paddle for one tick.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Input is the complete input state the engine reads for one tick.
type Input struct {
	Direction Direction
}

// InputLatch accumulates key-down/key-up events between ticks and hands out
// a consistent Input at the start of each tick. The policy is last key wins:
// a key-down sets the active direction, and releasing either movement key
// stops the paddle.
//
// Events may arrive from any goroutine; Input is safe to call concurrently.
type InputLatch struct {
	mu  sync.Mutex
	dir Direction
}

// NewInputLatch creates a latch with no active direction.
func NewInputLatch() *InputLatch {
	return &InputLatch{}
}

// Press records a key-down for the given direction.
func (l *InputLatch) Press(d Direction) {
	if d == DirNone {
		return
	}
	l.mu.Lock()
	l.dir = d
	l.mu.Unlock()
}

// Release records a key-up for the given direction.
func (l *InputLatch) Release(d Direction) {
	if d == DirNone {
		return
	}
	l.mu.Lock()
	l.dir = DirNone
	l.mu.Unlock()
}

// Reset clears any held direction.
func (l *InputLatch) Reset() {
	l.mu.Lock()
	l.dir = DirNone
	l.mu.Unlock()
}

// Input returns the current input state.
func (l *InputLatch) Input() Input {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Input{Direction: l.dir}
}

package breakout

import "fmt"

// EventType identifies what happened during a tick.
type EventType uint8

const (
	EventBrickDestroyed EventType = iota + 1
	EventScoreChanged
	EventLifeLost
	EventLevelUp
	EventGameOver
)

// String returns the event name used in logs, metrics and JSON frames.
func (t EventType) String() string {
	switch t {
	case EventBrickDestroyed:
		return "brick_destroyed"
	case EventScoreChanged:
		return "score_changed"
	case EventLifeLost:
		return "life_lost"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the type by name.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (t *EventType) UnmarshalText(text []byte) error {
	for c := EventBrickDestroyed; c <= EventGameOver; c++ {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("breakout: unknown event type %q", text)
}

// Event is emitted by Tick. Score, Lives and Level hold the values right
// after the event; for GameOver, Score is the final score. Row and Col
// are only meaningful for BrickDestroyed.
type Event struct {
	Type  EventType `json:"type"`
	Score uint      `json:"score"`
	Lives uint      `json:"lives"`
	Level uint      `json:"level"`
	Row   int       `json:"row"`
	Col   int       `json:"col"`
}

// eventQueue buffers events for the current tick.
type eventQueue struct {
	items []Event
}

func (q *eventQueue) push(e Event) {
	q.items = append(q.items, e)
}

// drain returns the buffered events and empties the queue.
func (q *eventQueue) drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

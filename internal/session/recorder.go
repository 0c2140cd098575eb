package session

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

// GuestName is recorded when nobody is logged in.
const GuestName = "Guest"

// ScoreSubmitter persists a finished game. Resubmitting a lower score must
// not lower the player's recorded best.
type ScoreSubmitter interface {
	SubmitScore(username string, score int, at time.Time) error
}

// ScoreRecorder is an EventSink that submits the final score of every game.
type ScoreRecorder struct {
	store  ScoreSubmitter
	player func() string
	now    func() time.Time
	logger *log.Logger

	// OnSaved, if set, is called after a successful submission.
	OnSaved func(username string, score uint)
}

// NewScoreRecorder creates a recorder. player reports the current username
// at game over; an empty name or a nil func records GuestName.
func NewScoreRecorder(store ScoreSubmitter, player func() string, logger *log.Logger) *ScoreRecorder {
	if logger == nil {
		logger = log.Default()
	}
	return &ScoreRecorder{
		store:  store,
		player: player,
		now:    time.Now,
		logger: logger,
	}
}

// StaticPlayer returns a player func for a fixed username.
func StaticPlayer(name string) func() string {
	return func() string { return name }
}

// Handle records GameOver events and ignores the rest.
func (r *ScoreRecorder) Handle(ev breakout.Event) {
	if ev.Type != breakout.EventGameOver {
		return
	}

	name := ""
	if r.player != nil {
		name = r.player()
	}
	if name == "" {
		name = GuestName
	}

	if err := r.store.SubmitScore(name, int(ev.Score), r.now()); err != nil {
		r.logger.Error("failed to save score", "user", name, "score", ev.Score, "err", err)
		return
	}

	r.logger.Info("score saved", "user", name, "score", ev.Score, "level", ev.Level)
	if r.OnSaved != nil {
		r.OnSaved(name, ev.Score)
	}
}

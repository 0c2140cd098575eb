package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

var quiet = log.New(io.Discard)

func newEngine(t *testing.T, mutate func(*config.BreakoutConfig)) *breakout.Engine {
	t.Helper()
	cfg := config.DefaultBreakoutConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := breakout.New(cfg)
	if err != nil {
		t.Fatalf("breakout.New() failed: %v", err)
	}
	return e
}

// oneLifeNoPaddle loses the ball on its first descent: the paddle is
// narrower than the ball so it can never contain it.
func oneLifeNoPaddle(cfg *config.BreakoutConfig) {
	cfg.Gameplay.Lives = 1
	cfg.Paddle.Width = 10
}

type fakeSubmitter struct {
	mu     sync.Mutex
	calls  []submission
	failed error
}

type submission struct {
	user  string
	score int
}

func (f *fakeSubmitter) SubmitScore(username string, score int, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed != nil {
		return f.failed
	}
	f.calls = append(f.calls, submission{username, score})
	return nil
}

func TestDriverStepReadsInput(t *testing.T) {
	latch := core.NewInputLatch()
	d := NewDriver(newEngine(t, nil), latch, WithLogger(quiet))

	latch.Press(core.DirRight)
	snap, _ := d.Step()
	if snap.Paddle.X != 368 {
		t.Errorf("paddle X = %v, expected 368", snap.Paddle.X)
	}

	latch.Release(core.DirRight)
	snap, _ = d.Step()
	if snap.Paddle.X != 368 {
		t.Errorf("paddle X after release = %v, expected 368", snap.Paddle.X)
	}
}

func TestDriverNilInput(t *testing.T) {
	d := NewDriver(newEngine(t, nil), nil, WithLogger(quiet))
	snap, _ := d.Step()
	if snap.Tick != 1 || snap.Paddle.X != 360 {
		t.Errorf("snapshot = tick %d paddle %v, expected tick 1 paddle 360", snap.Tick, snap.Paddle.X)
	}
}

func TestDriverRendersAndDispatches(t *testing.T) {
	var renders int
	var events []breakout.Event
	var ticks int

	d := NewDriver(newEngine(t, oneLifeNoPaddle), nil,
		WithLogger(quiet),
		WithRenderer(RendererFunc(func(breakout.Snapshot) { renders++ })),
		WithSink(SinkFunc(func(ev breakout.Event) { events = append(events, ev) })),
		WithTickHook(func(time.Duration) { ticks++ }),
	)

	steps := 0
	for steps < 5000 {
		steps++
		_, evs := d.Step()
		if len(evs) > 0 && evs[len(evs)-1].Type == breakout.EventGameOver {
			break
		}
	}

	if renders != steps || ticks != steps {
		t.Errorf("renders=%d ticks=%d, expected %d each", renders, ticks, steps)
	}
	if len(events) == 0 || events[len(events)-1].Type != breakout.EventGameOver {
		t.Fatalf("expected the game to end within 5000 steps, events = %v", events)
	}
}

func TestDriverFrameHookRunsAfterSinks(t *testing.T) {
	var order []string
	var framed []breakout.Event

	d := NewDriver(newEngine(t, oneLifeNoPaddle), nil,
		WithLogger(quiet),
		WithSink(SinkFunc(func(breakout.Event) { order = append(order, "sink") })),
		WithFrameHook(func(_ breakout.Snapshot, evs []breakout.Event) {
			order = append(order, "frame")
			framed = append(framed, evs...)
		}),
	)

	for range 5000 {
		_, evs := d.Step()
		if len(evs) > 0 {
			break
		}
	}

	if len(order) < 2 || order[len(order)-1] != "frame" || order[len(order)-2] != "sink" {
		t.Errorf("call order = %v, expected sinks before the frame hook", order)
	}
	if len(framed) == 0 {
		t.Error("frame hook should receive the tick's events")
	}
}

func TestScoreRecorderSubmitsGameOver(t *testing.T) {
	store := &fakeSubmitter{}
	var saved []string

	rec := NewScoreRecorder(store, StaticPlayer("alice"), quiet)
	rec.OnSaved = func(name string, _ uint) { saved = append(saved, name) }

	rec.Handle(breakout.Event{Type: breakout.EventScoreChanged, Score: 3})
	rec.Handle(breakout.Event{Type: breakout.EventLifeLost, Score: 3})
	rec.Handle(breakout.Event{Type: breakout.EventGameOver, Score: 9})

	if len(store.calls) != 1 {
		t.Fatalf("submissions = %v, expected 1", store.calls)
	}
	if store.calls[0] != (submission{"alice", 9}) {
		t.Errorf("submission = %+v, expected alice 9", store.calls[0])
	}
	if len(saved) != 1 {
		t.Errorf("OnSaved called %d times, expected 1", len(saved))
	}
}

func TestScoreRecorderGuest(t *testing.T) {
	tests := []struct {
		name   string
		player func() string
	}{
		{"nil player", nil},
		{"empty name", StaticPlayer("")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeSubmitter{}
			rec := NewScoreRecorder(store, tc.player, nil)
			rec.Handle(breakout.Event{Type: breakout.EventGameOver, Score: 1})

			if len(store.calls) != 1 || store.calls[0].user != GuestName {
				t.Errorf("submissions = %v, expected one for %s", store.calls, GuestName)
			}
		})
	}
}

func TestScoreRecorderFailureDoesNotCallOnSaved(t *testing.T) {
	store := &fakeSubmitter{failed: errors.New("disk full")}
	rec := NewScoreRecorder(store, StaticPlayer("alice"), quiet)

	called := false
	rec.OnSaved = func(string, uint) { called = true }
	rec.Handle(breakout.Event{Type: breakout.EventGameOver, Score: 4})

	if called {
		t.Error("OnSaved should not run when the submission fails")
	}
}

func TestDriverWithRecorderEndToEnd(t *testing.T) {
	store := &fakeSubmitter{}
	rec := NewScoreRecorder(store, StaticPlayer("bob"), quiet)
	d := NewDriver(newEngine(t, oneLifeNoPaddle), nil, WithLogger(quiet), WithSink(rec))

	final := uint(0)
	for range 5000 {
		_, evs := d.Step()
		for _, ev := range evs {
			if ev.Type == breakout.EventGameOver {
				final = ev.Score
			}
		}
		if len(store.calls) > 0 {
			break
		}
	}

	if len(store.calls) != 1 {
		t.Fatalf("submissions = %v, expected 1", store.calls)
	}
	if store.calls[0].user != "bob" || store.calls[0].score != int(final) {
		t.Errorf("submission = %+v, expected bob %d", store.calls[0], final)
	}
	if st := d.Engine().State(); st.Score != 0 || st.Lives != 1 || st.Level != 1 {
		t.Errorf("engine state after game over = %+v, expected reset", st)
	}
}

func TestDriverRunStopsOnCancel(t *testing.T) {
	var mu sync.Mutex
	renders := 0
	d := NewDriver(newEngine(t, nil), nil, WithLogger(quiet),
		WithRenderer(RendererFunc(func(breakout.Snapshot) {
			mu.Lock()
			renders++
			mu.Unlock()
		})),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := d.Run(ctx, 200); err != nil {
		t.Fatalf("Run() = %v, expected nil on cancellation", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if renders == 0 {
		t.Error("Run() should have ticked at least once")
	}
}

func TestDriverRunRejectsBadFPS(t *testing.T) {
	d := NewDriver(newEngine(t, nil), nil, WithLogger(quiet))
	if err := d.Run(context.Background(), 0); err == nil {
		t.Error("Run() with fps 0 should fail")
	}
}

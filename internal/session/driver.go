// Package session connects the engine to its collaborators: it reads input,
// ticks the engine, hands the snapshot to renderers and fans events out to
// sinks such as the score recorder.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

// InputSource supplies the input for the next tick. Implementations must
// return a consistent value even while key events arrive concurrently.
type InputSource interface {
	Input() core.Input
}

// Renderer consumes one snapshot per tick.
type Renderer interface {
	Render(snap breakout.Snapshot)
}

// EventSink receives every event the engine emits.
type EventSink interface {
	Handle(ev breakout.Event)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(breakout.Snapshot)

// Render calls f(snap).
func (f RendererFunc) Render(snap breakout.Snapshot) { f(snap) }

// SinkFunc adapts a function to EventSink.
type SinkFunc func(breakout.Event)

// Handle calls f(ev).
func (f SinkFunc) Handle(ev breakout.Event) { f(ev) }

// Driver owns the frame cadence for one engine.
// Step must not be called from more than one goroutine at a time.
type Driver struct {
	engine    *breakout.Engine
	input     InputSource
	renderers []Renderer
	sinks     []EventSink
	onTick    func(time.Duration)
	onFrame   func(breakout.Snapshot, []breakout.Event)
	logger    *log.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithRenderer adds a renderer.
func WithRenderer(r Renderer) Option {
	return func(d *Driver) { d.renderers = append(d.renderers, r) }
}

// WithSink adds an event sink. Sinks are called in the order added.
func WithSink(s EventSink) Option {
	return func(d *Driver) { d.sinks = append(d.sinks, s) }
}

// WithTickHook registers a function called with the duration of every tick.
func WithTickHook(fn func(time.Duration)) Option {
	return func(d *Driver) { d.onTick = fn }
}

// WithFrameHook registers a function called at the end of every Step with
// the tick's snapshot and events, after all sinks have run.
func WithFrameHook(fn func(breakout.Snapshot, []breakout.Event)) Option {
	return func(d *Driver) { d.onFrame = fn }
}

// WithLogger sets the logger for event tracing.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// NewDriver creates a driver. A nil input source means no input.
func NewDriver(engine *breakout.Engine, input InputSource, opts ...Option) *Driver {
	d := &Driver{
		engine: engine,
		input:  input,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Engine returns the engine being driven.
func (d *Driver) Engine() *breakout.Engine {
	return d.engine
}

// Step runs exactly one tick: read input, advance the engine, render, then
// dispatch events.
func (d *Driver) Step() (breakout.Snapshot, []breakout.Event) {
	var in core.Input
	if d.input != nil {
		in = d.input.Input()
	}

	start := time.Now()
	snap, events := d.engine.Tick(in)
	if d.onTick != nil {
		d.onTick(time.Since(start))
	}

	for _, r := range d.renderers {
		r.Render(snap)
	}

	for _, ev := range events {
		if ev.Type != breakout.EventBrickDestroyed && ev.Type != breakout.EventScoreChanged {
			d.logger.Debug("game event", "type", ev.Type, "score", ev.Score, "lives", ev.Lives, "level", ev.Level)
		}
		for _, s := range d.sinks {
			s.Handle(ev)
		}
	}

	if d.onFrame != nil {
		d.onFrame(snap, events)
	}
	return snap, events
}

// Run calls Step fps times per second until ctx is cancelled.
func (d *Driver) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("session: fps must be positive, got %d", fps)
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Step()
		}
	}
}

package breakout

import (
	"fmt"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// GameState is the engine-owned score, lives and level.
type GameState struct {
	Score   uint
	Lives   uint
	Level   uint
	Running bool
}

// Engine runs the brick breaker simulation. Build one with New; the zero
// value is not usable.
type Engine struct {
	cfg    config.BreakoutConfig
	layout GridLayout

	paddle Paddle
	ball   Ball
	bricks BrickGrid
	state  GameState

	tick   uint64
	events eventQueue
}

// New validates cfg and returns an engine in the Playing state.
func New(cfg config.BreakoutConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		layout: LayoutFromConfig(cfg.Bricks),
	}
	e.paddle = Paddle{
		Y:      cfg.Playfield.Height - cfg.Paddle.BottomOffset,
		Width:  cfg.Paddle.Width,
		Height: cfg.Paddle.Height,
		Speed:  cfg.Paddle.Speed,
	}
	e.ball = Ball{
		Radius: cfg.Ball.Radius,
		Speed:  cfg.Ball.Speed,
	}
	e.restart()
	return e, nil
}

// LayoutFromConfig converts brick tuning to a grid layout.
func LayoutFromConfig(b config.BricksConfig) GridLayout {
	return GridLayout{
		Rows:     b.Rows,
		Cols:     b.Cols,
		BrickW:   b.Width,
		BrickH:   b.Height,
		HSpacing: b.HSpacing,
		VSpacing: b.VSpacing,
		XOffset:  b.XOffset,
		YOffset:  b.YOffset,
	}
}

// State returns a copy of the score, lives and level.
func (e *Engine) State() GameState {
	return e.state
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.BreakoutConfig {
	return e.cfg
}

// Pause stops the simulation. Tick keeps returning snapshots.
func (e *Engine) Pause() {
	e.state.Running = false
}

// Resume restarts a paused simulation.
func (e *Engine) Resume() {
	e.state.Running = true
}

// TogglePause flips between paused and running.
func (e *Engine) TogglePause() {
	e.state.Running = !e.state.Running
}

// Tick advances the simulation by one frame with the given input and
// returns the resulting snapshot and the events emitted during the frame.
// A paused engine returns its snapshot unchanged and no events.
func (e *Engine) Tick(in core.Input) (Snapshot, []Event) {
	if e == nil || e.bricks == nil {
		panic("breakout: Tick on an engine not built with New")
	}
	if !e.state.Running {
		return e.Snapshot(), nil
	}

	e.tick++

	e.paddle.SetDirection(in.Direction)
	e.paddle.Update(e.cfg.Playfield.Width)
	e.ball.Update()

	bounds := e.ball.Bounds()
	if HitsSideWall(bounds, e.cfg.Playfield.Width) {
		e.ball.DX = -e.ball.DX
	}
	if HitsTopWall(bounds) {
		e.ball.DY = -e.ball.DY
	}
	if HitsPaddle(bounds, e.paddle.Bounds()) {
		e.ball.DY = -core.Abs(e.ball.Speed)
	}

	e.resolveBricks(bounds)

	if FellOff(bounds, e.cfg.Playfield.Height) {
		e.loseLife()
	}

	if e.bricks.Remaining() == 0 {
		e.levelUp()
	}

	return e.Snapshot(), e.events.drain()
}

// resolveBricks processes every visible brick the ball hits this tick.
// Each hit flips DY, so two hits in one tick cancel out.
func (e *Engine) resolveBricks(ball core.Rect) {
	for r := range e.bricks {
		for c := range e.bricks[r] {
			brick := &e.bricks[r][c]
			if !brick.Visible || !HitsBrick(ball, brick.Bounds()) {
				continue
			}

			e.ball.DY = -e.ball.DY
			brick.Visible = false
			e.state.Score++

			e.emit(EventBrickDestroyed, r, c)
			e.emit(EventScoreChanged, 0, 0)
		}
	}
}

func (e *Engine) loseLife() {
	if e.state.Lives > 0 {
		e.state.Lives--
	}

	if e.state.Lives == 0 {
		e.emit(EventGameOver, 0, 0)
		e.restart()
		return
	}

	e.resetPositions()
	e.emit(EventLifeLost, 0, 0)
}

func (e *Engine) levelUp() {
	e.state.Level++
	e.bricks = GenerateGrid(e.layout)
	e.ball.Relaunch(e.ball.Speed + e.cfg.Ball.SpeedIncrement)
	e.ball.MoveTo(e.cfg.Playfield.Width/2, e.cfg.Playfield.Height/2)
	e.emit(EventLevelUp, 0, 0)
}

// restart puts the engine in its initial Playing state.
func (e *Engine) restart() {
	e.state = GameState{
		Lives:   uint(e.cfg.Gameplay.Lives), //#nosec G115 -- validated positive
		Level:   1,
		Running: true,
	}
	e.ball.Speed = e.cfg.Ball.Speed
	e.bricks = GenerateGrid(e.layout)
	e.resetPositions()
}

func (e *Engine) resetPositions() {
	e.ball.Reset(e.cfg.Playfield.Width/2, e.cfg.Playfield.Height/2)
	e.paddle.Center(e.cfg.Playfield.Width)
	e.paddle.DX = 0
}

func (e *Engine) emit(t EventType, row, col int) {
	e.events.push(Event{
		Type:  t,
		Score: e.state.Score,
		Lives: e.state.Lives,
		Level: e.state.Level,
		Row:   row,
		Col:   col,
	})
}

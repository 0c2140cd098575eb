package breakout

import "math"

// Snapshot is a read-only export of the world after a tick.
// It shares no memory with the engine.
type Snapshot struct {
	Tick      uint64      `json:"tick"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Ball      BallView    `json:"ball"`
	Paddle    PaddleView  `json:"paddle"`
	Bricks    []BrickView `json:"bricks"`
	Score     uint        `json:"score"`
	Lives     uint        `json:"lives"`
	Level     uint        `json:"level"`
	Remaining int         `json:"remaining"`
	Running   bool        `json:"running"`
}

// BallView is the ball as seen by renderers.
type BallView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Speed  float64 `json:"speed"`
}

// PaddleView is the paddle as seen by renderers.
type PaddleView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BrickView is one grid cell. Destroyed bricks are included with
// Visible false so renderers can keep a stable layout.
type BrickView struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Visible bool    `json:"visible"`
}

// Snapshot returns the current world state.
func (e *Engine) Snapshot() Snapshot {
	bricks := make([]BrickView, 0, e.bricks.Total())
	for r, row := range e.bricks {
		for c, b := range row {
			bricks = append(bricks, BrickView{
				Row:     r,
				Col:     c,
				X:       b.X,
				Y:       b.Y,
				Width:   b.Width,
				Height:  b.Height,
				Visible: b.Visible,
			})
		}
	}

	return Snapshot{
		Tick:   e.tick,
		Width:  e.cfg.Playfield.Width,
		Height: e.cfg.Playfield.Height,
		Ball: BallView{
			X:      e.ball.X,
			Y:      e.ball.Y,
			Radius: e.ball.Radius,
			DX:     e.ball.DX,
			DY:     e.ball.DY,
			Speed:  e.ball.Speed,
		},
		Paddle: PaddleView{
			X:      e.paddle.X,
			Y:      e.paddle.Y,
			Width:  e.paddle.Width,
			Height: e.paddle.Height,
		},
		Bricks:    bricks,
		Score:     e.state.Score,
		Lives:     e.state.Lives,
		Level:     e.state.Level,
		Remaining: e.bricks.Remaining(),
		Running:   e.state.Running,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) {
		h = h*31 + v
	}

	mix(math.Float64bits(snap.Ball.X))
	mix(math.Float64bits(snap.Ball.Y))
	mix(math.Float64bits(snap.Ball.DX))
	mix(math.Float64bits(snap.Ball.DY))
	mix(math.Float64bits(snap.Ball.Speed))
	mix(math.Float64bits(snap.Paddle.X))
	mix(uint64(snap.Score))
	mix(uint64(snap.Lives))
	mix(uint64(snap.Level))

	for _, b := range snap.Bricks {
		if b.Visible {
			mix(1)
		} else {
			mix(0)
		}
	}

	return h
}

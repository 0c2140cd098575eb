package breakout

import "github.com/vovakirdan/brickbreaker/internal/core"

// Paddle is the player's horizontal-only kinematic body.
type Paddle struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64 // Magnitude applied per tick while a direction is held
	DX            float64 // Current velocity: -Speed, 0 or +Speed
}

// SetDirection derives DX from the requested direction.
func (p *Paddle) SetDirection(d core.Direction) {
	switch d {
	case core.DirLeft:
		p.DX = -p.Speed
	case core.DirRight:
		p.DX = p.Speed
	default:
		p.DX = 0
	}
}

// Update moves the paddle by DX and clamps it into [0, playfieldWidth-Width].
func (p *Paddle) Update(playfieldWidth float64) {
	p.X = core.ClampF(p.X+p.DX, 0, playfieldWidth-p.Width)
}

// Center places the paddle horizontally centred in the playfield.
func (p *Paddle) Center(playfieldWidth float64) {
	p.X = playfieldWidth/2 - p.Width/2
}

// Bounds returns the paddle's bounding box.
func (p *Paddle) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Ball is the free-moving body. X, Y is the centre.
type Ball struct {
	X, Y   float64
	Radius float64
	Speed  float64
	DX, DY float64
}

// Position returns the ball centre.
func (b *Ball) Position() core.Vec2 {
	return core.Vec2{X: b.X, Y: b.Y}
}

// Velocity returns the per-tick displacement.
func (b *Ball) Velocity() core.Vec2 {
	return core.Vec2{X: b.DX, Y: b.DY}
}

// Update translates the ball by its velocity. Bounds are the engine's concern.
func (b *Ball) Update() {
	next := b.Position().Add(b.Velocity())
	b.X, b.Y = next.X, next.Y
}

// Reset moves the ball to (x, y) and launches it up and to the right at
// the current speed.
func (b *Ball) Reset(x, y float64) {
	b.X, b.Y = x, y
	b.DX = b.Speed
	b.DY = -b.Speed
}

// MoveTo repositions the ball without touching its velocity.
func (b *Ball) MoveTo(x, y float64) {
	b.X, b.Y = x, y
}

// Relaunch changes the speed, keeping the horizontal direction and always
// sending the ball upward. A ball with no horizontal motion goes right.
func (b *Ball) Relaunch(speed float64) {
	b.Speed = speed
	sign := core.Sign(b.DX)
	if sign == 0 {
		sign = 1
	}
	b.DX = sign * speed
	b.DY = -speed
}

// Bounds returns the ball's square hitbox of side 2*Radius.
func (b *Ball) Bounds() core.Rect {
	return core.SquareAround(b.X, b.Y, b.Radius)
}

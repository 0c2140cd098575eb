package breakout

import (
	"testing"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

func TestPaddleStaysInBounds(t *testing.T) {
	const playfieldW = 800.0

	widths := []float64{10, 80, 110, 400, 800}
	speeds := []float64{1, 8, 35, 900}
	dirs := []core.Direction{core.DirLeft, core.DirRight, core.DirNone}

	for _, w := range widths {
		for _, speed := range speeds {
			p := Paddle{Width: w, Speed: speed}
			p.Center(playfieldW)

			// Deterministic pseudo-random direction sequence
			for i := range 500 {
				p.SetDirection(dirs[(i*7+i/3)%len(dirs)])
				p.Update(playfieldW)

				if p.X < 0 || p.X > playfieldW-w {
					t.Fatalf("width=%v speed=%v tick=%d: X = %v, expected within [0, %v]", w, speed, i, p.X, playfieldW-w)
				}
			}
		}
	}
}

func TestPaddleDirection(t *testing.T) {
	p := Paddle{Speed: 8}

	tests := []struct {
		dir  core.Direction
		want float64
	}{
		{core.DirRight, 8},
		{core.DirLeft, -8},
		{core.DirNone, 0},
	}

	for _, tc := range tests {
		p.SetDirection(tc.dir)
		if p.DX != tc.want {
			t.Errorf("SetDirection(%v): DX = %v, expected %v", tc.dir, p.DX, tc.want)
		}
	}
}

func TestPaddleUpdateIdempotentWhenStill(t *testing.T) {
	p := Paddle{X: 123, Width: 80, Speed: 8}
	for range 10 {
		p.Update(800)
	}
	if p.X != 123 {
		t.Errorf("X = %v, expected 123", p.X)
	}
}

func TestPaddleMovesRightTenTicks(t *testing.T) {
	p := Paddle{X: 360, Width: 80, Speed: 8}
	p.SetDirection(core.DirRight)
	for range 10 {
		p.Update(800)
	}
	if p.X != 440 {
		t.Errorf("X = %v, expected 440", p.X)
	}
}

func TestBallReset(t *testing.T) {
	velocities := [][2]float64{{4, 4}, {-4, 4}, {-4, -4}, {0, 0}, {7, -1}}

	for _, v := range velocities {
		b := Ball{Speed: 4, DX: v[0], DY: v[1]}
		b.Reset(400, 300)

		if b.X != 400 || b.Y != 300 {
			t.Errorf("position = (%v, %v), expected (400, 300)", b.X, b.Y)
		}
		if b.DX != 4 || b.DY != -4 {
			t.Errorf("from %v: velocity = (%v, %v), expected (4, -4)", v, b.DX, b.DY)
		}
	}
}

func TestBallUpdate(t *testing.T) {
	b := Ball{X: 10, Y: 20, DX: 3, DY: -2}
	b.Update()
	if b.X != 13 || b.Y != 18 {
		t.Errorf("position = (%v, %v), expected (13, 18)", b.X, b.Y)
	}
	if got := b.Position(); got != (core.Vec2{X: 13, Y: 18}) {
		t.Errorf("Position() = %+v, expected {13 18}", got)
	}
	if got := b.Velocity(); got != (core.Vec2{X: 3, Y: -2}) {
		t.Errorf("Velocity() = %+v, expected {3 -2}", got)
	}
}

func TestBallRelaunchPreservesHorizontalDirection(t *testing.T) {
	tests := []struct {
		name   string
		dx     float64
		wantDX float64
	}{
		{"moving right", 4, 4.5},
		{"moving left", -4, -4.5},
		{"no horizontal motion", 0, 4.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Ball{Speed: 4, DX: tc.dx, DY: 4}
			b.Relaunch(4.5)

			if b.Speed != 4.5 {
				t.Errorf("Speed = %v, expected 4.5", b.Speed)
			}
			if b.DX != tc.wantDX {
				t.Errorf("DX = %v, expected %v", b.DX, tc.wantDX)
			}
			if b.DY != -4.5 {
				t.Errorf("DY = %v, expected -4.5", b.DY)
			}
		})
	}
}

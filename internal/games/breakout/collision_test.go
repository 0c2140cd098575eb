package breakout

import (
	"testing"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

func TestWallCollisions(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		side    bool
		top     bool
		fellOff bool
	}{
		{"center", 400, 300, false, false, false},
		{"touching right edge", 790, 300, false, false, false},
		{"past right edge", 791, 300, true, false, false},
		{"past left edge", 9, 300, true, false, false},
		{"past top", 400, 9, false, true, false},
		{"touching bottom", 400, 590, false, false, false},
		{"past bottom", 400, 591, false, false, true},
		{"corner", 795, 5, true, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := core.SquareAround(tc.x, tc.y, 10)

			if got := HitsSideWall(ball, 800); got != tc.side {
				t.Errorf("HitsSideWall = %v, expected %v", got, tc.side)
			}
			if got := HitsTopWall(ball); got != tc.top {
				t.Errorf("HitsTopWall = %v, expected %v", got, tc.top)
			}
			if got := FellOff(ball, 600); got != tc.fellOff {
				t.Errorf("FellOff = %v, expected %v", got, tc.fellOff)
			}
		})
	}
}

func TestHitsPaddle(t *testing.T) {
	paddle := core.NewRect(360, 580, 80, 10)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"above paddle", 400, 560, false},
		{"touching top edge", 400, 570, false},
		{"sunk into paddle", 400, 575, true},
		{"below paddle top", 400, 595, true},
		{"grazing left edge", 370, 575, false},
		{"grazing right edge", 430, 575, false},
		{"just inside left", 371, 575, true},
		{"outside span", 300, 575, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := core.SquareAround(tc.x, tc.y, 10)
			if got := HitsPaddle(ball, paddle); got != tc.want {
				t.Errorf("HitsPaddle(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestHitsBrick(t *testing.T) {
	brick := core.NewRect(45, 60, 70, 20)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside span overlapping", 80, 70, true},
		{"touching top", 80, 50, false},
		{"overlapping top", 80, 51, true},
		{"overlapping bottom", 80, 89, true},
		{"touching bottom", 80, 90, false},
		{"straddling left edge", 50, 70, false},
		{"straddling right edge", 110, 70, false},
		{"far away", 400, 300, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := core.SquareAround(tc.x, tc.y, 10)
			if got := HitsBrick(ball, brick); got != tc.want {
				t.Errorf("HitsBrick(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

// Package breakout implements the brick breaker engine: paddle, ball and
// brick grid kinematics, collision resolution, and the score, lives and
// level state machine. It does no I/O; a driver calls Tick once per frame
// and passes the returned snapshot and events to its collaborators.
package breakout

import "github.com/vovakirdan/brickbreaker/internal/core"

// Brick is a single destructible obstacle. Its position never changes.
type Brick struct {
	X, Y          float64
	Width, Height float64
	Visible       bool
}

// Bounds returns the brick's rectangle.
func (b Brick) Bounds() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// BrickGrid holds bricks indexed [row][col]. Row advances along x and
// col advances along y.
type BrickGrid [][]Brick

// GridLayout describes how GenerateGrid lays out bricks.
type GridLayout struct {
	Rows, Cols         int
	BrickW, BrickH     float64
	HSpacing, VSpacing float64
	XOffset, YOffset   float64
}

// DefaultLayout is the classic 9x5 grid.
var DefaultLayout = GridLayout{
	Rows: 9, Cols: 5,
	BrickW: 70, BrickH: 20,
	HSpacing: 10, VSpacing: 10,
	XOffset: 45, YOffset: 60,
}

// GenerateGrid builds an all-visible grid. brick[r][c] sits at
// (r*(BrickW+HSpacing)+XOffset, c*(BrickH+VSpacing)+YOffset).
func GenerateGrid(l GridLayout) BrickGrid {
	grid := make(BrickGrid, l.Rows)
	for r := range l.Rows {
		grid[r] = make([]Brick, l.Cols)
		for c := range l.Cols {
			grid[r][c] = Brick{
				X:       float64(r)*(l.BrickW+l.HSpacing) + l.XOffset,
				Y:       float64(c)*(l.BrickH+l.VSpacing) + l.YOffset,
				Width:   l.BrickW,
				Height:  l.BrickH,
				Visible: true,
			}
		}
	}
	return grid
}

// Remaining returns the number of visible bricks.
func (g BrickGrid) Remaining() int {
	count := 0
	for _, row := range g {
		for _, b := range row {
			if b.Visible {
				count++
			}
		}
	}
	return count
}

// Total returns the number of bricks in the grid, visible or not.
func (g BrickGrid) Total() int {
	count := 0
	for _, row := range g {
		count += len(row)
	}
	return count
}

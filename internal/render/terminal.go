// Package render draws engine snapshots onto a character screen or a raster
// image. It reads snapshots only and never touches the engine.
package render

import (
	"fmt"
	"math"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BrickChar  = '█'
)

// Minimum screen size for a playable view.
const (
	MinWidth  = 40
	MinHeight = 16
)

// brickColors colour bricks by their vertical layer.
var brickColors = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
}

// RulesText is shown by the rules overlay.
var RulesText = []string{
	"Move the paddle with ← → or A D.",
	"Bounce the ball to break bricks.",
	"Each brick is worth 1 point.",
	"Clear the grid to reach the next",
	"level; the ball gets faster.",
	"Miss the ball and lose a life.",
	"After the last life the score is",
	"saved and a new game starts.",
}

// Terminal draws snapshots into a core.Screen. The playfield is scaled to
// fit inside a border below a one-line HUD.
type Terminal struct {
	Player    string // Shown in the HUD when set
	ShowRules bool
	Message   string // Transient status line, e.g. "Level 2!"
}

// Draw renders snap into dst, replacing its contents.
func (t *Terminal) Draw(dst *core.Screen, snap breakout.Snapshot) {
	dst.Clear()

	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight))
		return
	}

	t.drawHUD(dst, snap)

	// Playfield box occupies rows 1..H-1
	dst.DrawBox(0, 1, dst.Width(), dst.Height()-1)
	vp := newViewport(snap, dst.Width()-2, dst.Height()-3, 1, 2)

	drawBricks(dst, vp, snap.Bricks)
	drawPaddle(dst, vp, snap.Paddle)
	drawBall(dst, vp, snap.Ball)

	// Status sits on the bottom border
	if t.Message != "" {
		dst.DrawTextCentered(dst.Height()-1, " "+t.Message+" ")
	}

	switch {
	case t.ShowRules:
		drawPanel(dst, "RULES", RulesText, "? to close")
	case !snap.Running:
		drawPanel(dst, "PAUSED", nil, "p to resume, q to quit")
	}
}

func (t *Terminal) drawHUD(dst *core.Screen, snap breakout.Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", snap.Lives))

	right := fmt.Sprintf("Level: %d", snap.Level)
	if t.Player != "" {
		right = fmt.Sprintf("%s  Player: %s", right, t.Player)
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

// viewport maps playfield units to cells inside the border.
type viewport struct {
	sx, sy float64
	ox, oy int
	cols   int
	rows   int
}

func newViewport(snap breakout.Snapshot, cols, rows, ox, oy int) viewport {
	return viewport{
		sx:   float64(cols) / snap.Width,
		sy:   float64(rows) / snap.Height,
		ox:   ox,
		oy:   oy,
		cols: cols,
		rows: rows,
	}
}

func (v viewport) cellX(x float64) int {
	return v.ox + core.Clamp(int(math.Floor(x*v.sx)), 0, v.cols-1)
}

func (v viewport) cellY(y float64) int {
	return v.oy + core.Clamp(int(math.Floor(y*v.sy)), 0, v.rows-1)
}

// span returns the first cell and cell count covering [x, x+w), at least one cell.
func (v viewport) span(x, w float64) (int, int) {
	start := v.cellX(x)
	end := v.cellX(x + w - 1e-9)
	return start, max(end-start+1, 1)
}

func drawBricks(dst *core.Screen, vp viewport, bricks []breakout.BrickView) {
	for _, b := range bricks {
		if !b.Visible {
			continue
		}
		x, w := vp.span(b.X, b.Width)
		// Leave a gap between neighbours when there is room
		if w > 2 {
			w--
		}
		c := brickColors[b.Col%len(brickColors)]
		dst.DrawRect(x, vp.cellY(b.Y), w, 1, BrickChar, c)
	}
}

func drawPaddle(dst *core.Screen, vp viewport, p breakout.PaddleView) {
	x, w := vp.span(p.X, p.Width)
	dst.DrawRect(x, vp.cellY(p.Y), w, 1, PaddleChar, core.ColorBlue)
}

func drawBall(dst *core.Screen, vp viewport, b breakout.BallView) {
	dst.SetColor(vp.cellX(b.X), vp.cellY(b.Y), BallChar, core.ColorWhite)
}

// drawPanel draws a centred box with a title, body lines and a hint.
func drawPanel(dst *core.Screen, title string, lines []string, hint string) {
	width := len(hint) + 4
	for _, l := range lines {
		width = max(width, len([]rune(l))+4)
	}
	width = min(width, dst.Width()-2)
	height := len(lines) + 5
	if len(lines) == 0 {
		height = 5
	}

	x := (dst.Width() - width) / 2
	y := (dst.Height() - height) / 2

	dst.DrawRect(x, y, width, height, ' ', core.ColorDefault)
	dst.DrawBox(x, y, width, height)
	dst.DrawTextCentered(y+1, title)
	for i, l := range lines {
		dst.DrawText(x+2, y+3+i, l)
	}
	dst.DrawTextCentered(y+height-2, hint)
}

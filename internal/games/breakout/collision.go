package breakout

import "github.com/vovakirdan/brickbreaker/internal/core"

// Collision predicates. The ball is treated as its bounding square.

// HitsSideWall reports whether the ball pokes past the left or right edge.
func HitsSideWall(ball core.Rect, width float64) bool {
	return ball.Right() > width || ball.X < 0
}

// HitsTopWall reports whether the ball pokes above the playfield.
func HitsTopWall(ball core.Rect) bool {
	return ball.Y < 0
}

// HitsPaddle reports whether the ball is strictly inside the paddle's span
// and its bottom edge has passed the paddle's top edge.
func HitsPaddle(ball, paddle core.Rect) bool {
	return ball.InsideX(paddle) && ball.Bottom() > paddle.Y
}

// HitsBrick reports whether the ball is strictly inside the brick's span and
// overlaps it vertically.
//
// The ball's diameter equals the brick height with default tuning, so a
// strict vertical containment could never fire.
func HitsBrick(ball, brick core.Rect) bool {
	return ball.InsideX(brick) && ball.OverlapsY(brick)
}

// FellOff reports whether the ball's bottom edge is below the playfield.
func FellOff(ball core.Rect, height float64) bool {
	return ball.Bottom() > height
}

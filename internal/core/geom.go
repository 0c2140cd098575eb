// Package core provides fundamental types and utilities shared by the engine
// and its collaborators. It imports nothing outside the standard library so
// that game logic stays pure and testable.
package core

// Vec2 is a position or velocity pair in playfield units.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Rect represents an axis-aligned bounding box in playfield units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// SquareAround returns the bounding square of side 2*radius centred on (cx, cy).
func SquareAround(cx, cy, radius float64) Rect {
	return Rect{X: cx - radius, Y: cy - radius, W: 2 * radius, H: 2 * radius}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// InsideX reports whether r lies strictly inside other along the x axis.
func (r Rect) InsideX(other Rect) bool {
	return r.X > other.X && r.Right() < other.Right()
}

// OverlapsY reports whether r and other share interior along the y axis.
func (r Rect) OverlapsY(other Rect) bool {
	return r.Bottom() > other.Y && r.Y < other.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// Abs returns the absolute value of a float64.
func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

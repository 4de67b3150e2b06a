// Package core holds the terminal-independent drawing primitives of the
// garden view. It has no Bubble Tea dependency so layouts stay testable.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the center cell of the rectangle, rounding down.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by n cells on every side.
// The result never has negative dimensions.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(r.W-2*n, 0),
		H: max(r.H-2*n, 0),
	}
}

// Project maps a position given in percent of the field (0-100 on both
// axes) to a cell inside r. Out-of-range positions land on the nearest edge.
func (r Rect) Project(px, py float64) (int, int) {
	if r.W <= 0 || r.H <= 0 {
		return r.X, r.Y
	}
	x := r.X + int(px*float64(r.W)/100)
	y := r.Y + int(py*float64(r.H)/100)
	return Clamp(x, r.X, r.Right()-1), Clamp(y, r.Y, r.Bottom()-1)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Wrap returns i modulo n, always in [0, n). n must be positive.
func Wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Package geometry provides the rectangle math and easing curves used to
// size and animate the notch.
package geometry

import "math"

// Point is a position in widget-local or screen coordinates.
type Point struct {
	X, Y float64
}

// Rect is an integer rectangle in screen coordinates.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() int {
	return r.X + r.W/2
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= float64(r.X) && p.X < float64(r.Right()) &&
		p.Y >= float64(r.Y) && p.Y < float64(r.Bottom())
}

// Local returns r translated so its top-left corner is the origin.
func (r Rect) Local() Rect {
	return Rect{W: r.W, H: r.H}
}

// ScaleWidth returns r with its width scaled by f, keeping the top edge and
// horizontal center fixed. The width never drops below 1.
func (r Rect) ScaleWidth(f float64) Rect {
	w := max(1, int(float64(r.W)*f))
	return Rect{X: r.CenterX() - w/2, Y: r.Y, W: w, H: r.H}
}

// Lerp interpolates between a and b. t is clamped to [0, 1]; t == 1 yields b exactly.
func Lerp(a, b Rect, t float64) Rect {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	mix := func(x, y int) int {
		return x + int(math.Round(float64(y-x)*t))
	}
	return Rect{
		X: mix(a.X, b.X),
		Y: mix(a.Y, b.Y),
		W: mix(a.W, b.W),
		H: mix(a.H, b.H),
	}
}

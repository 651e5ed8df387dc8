// Package core provides fundamental types and utilities shared by the
// simulation and its hosts. It has no external dependencies (especially no
// Bubble Tea or Ebiten) to keep game logic pure and testable.
package core

import "math"

// Span is an open interval (Lo, Hi) along one axis, in canvas units.
type Span struct {
	Lo, Hi float64
}

// NewSpan creates a span starting at lo with the given length.
func NewSpan(lo, length float64) Span {
	return Span{Lo: lo, Hi: lo + length}
}

// Centered creates a span of the given half-width around center.
func Centered(center, halfWidth float64) Span {
	return Span{Lo: center - halfWidth, Hi: center + halfWidth}
}

// Overlaps reports whether two spans share interior points.
// Spans that only touch at an edge do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Lo < other.Hi && other.Lo < s.Hi
}

// Within reports whether s lies inside other, edges included.
func (s Span) Within(other Span) bool {
	return s.Lo >= other.Lo && s.Hi <= other.Hi
}

// Rect is an integer cell rectangle used when drawing into a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
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

// Scale maps a canvas coordinate to a cell index for a canvas of size
// canvas drawn into cells cells.
func Scale(v, canvas float64, cells int) int {
	if canvas <= 0 {
		return 0
	}
	return int(math.Floor(v * float64(cells) / canvas))
}

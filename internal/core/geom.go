// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an axis-aligned box in screen cells, used for drawing overlays.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Span is a closed interval [Min, Max] on one axis in field units.
// Collision bands and hit zones are expressed as spans.
type Span struct {
	Min, Max float64
}

// SpanAround returns the span centered on c with the given half extent.
func SpanAround(c, half float64) Span {
	return Span{Min: c - half, Max: c + half}
}

// Contains reports whether v lies inside the span, edges included.
func (s Span) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Beyond reports whether v lies strictly past the far edge of the span.
func (s Span) Beyond(v float64) bool {
	return v > s.Max
}

// Width returns the extent of the span.
func (s Span) Width() float64 {
	return s.Max - s.Min
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
// When the envelope is inverted (min > max) the midpoint is returned,
// which keeps a paddle centered on a field narrower than itself.
func ClampF(val, min, max float64) float64 {
	if min > max {
		return (min + max) / 2
	}
	return math.Max(min, math.Min(max, val))
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

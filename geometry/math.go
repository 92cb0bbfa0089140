// Package geometry answers the pointer queries of the editor and builds the
// shapes the renderer draws: node sizing, outlines, hit tests and arrows.
package geometry

import (
	"math"

	"graphdraw/diagram"
)

// epsilon below which two points are treated as coincident.
const epsilon = 1e-6

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Unit returns the unit vector pointing from a to b and the distance
// between them. The vector is zero when the points coincide.
func Unit(a, b diagram.Point) (diagram.Point, float64) {
	d := b.Sub(a)
	dist := d.Len()
	if dist < epsilon {
		return diagram.Point{}, dist
	}
	return d.Mul(1 / dist), dist
}

// Perp returns v rotated a quarter turn counter-clockwise.
func Perp(v diagram.Point) diagram.Point {
	return diagram.Point{X: -v.Y, Y: v.X}
}

// DistanceToSegment returns the distance from p to the finite segment ab.
// The projection parameter is clamped to [0,1]; a zero-length segment falls
// back to the distance between p and a.
func DistanceToSegment(p, a, b diagram.Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return p.Distance(a.Add(ab.Mul(t)))
}

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	Min, Max diagram.Point
}

// Empty reports whether r covers no area and was never extended.
func (r Rect) Empty() bool {
	return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y
}

// Width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and o. An empty
// rectangle is the identity.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Min: diagram.Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: diagram.Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Inset grows the rectangle by pad on every side.
func (r Rect) Inset(pad float64) Rect {
	return Rect{
		Min: diagram.Point{X: r.Min.X - pad, Y: r.Min.Y - pad},
		Max: diagram.Point{X: r.Max.X + pad, Y: r.Max.Y + pad},
	}
}

// emptyRect is the starting value for accumulating bounds.
var emptyRect = Rect{
	Min: diagram.Point{X: math.Inf(1), Y: math.Inf(1)},
	Max: diagram.Point{X: math.Inf(-1), Y: math.Inf(-1)},
}

package geometry

import (
	"graphdraw/diagram"
)

// Arrowhead size limits in pixels.
const (
	MinArrowSize = 6
	MaxArrowSize = 14
)

// minArrowSegment is the shortest center-to-center distance that still
// gets an arrowhead.
const minArrowSegment = 1

// Arrowhead is a filled isosceles triangle.
type Arrowhead struct {
	Tip   diagram.Point
	Left  diagram.Point
	Right diagram.Point
}

// Trace appends the triangle to a path.
func (a Arrowhead) Trace(sink PathSink) {
	sink.MoveTo(a.Tip.X, a.Tip.Y)
	sink.LineTo(a.Left.X, a.Left.Y)
	sink.LineTo(a.Right.X, a.Right.Y)
	sink.ClosePath()
}

// ArrowSize returns clamp(r, 6, 14).
func ArrowSize(r float64) float64 {
	return Clamp(r, MinArrowSize, MaxArrowSize)
}

// NewArrowhead builds an arrow pointing along the unit vector u with its
// tip at tip. The base is perpendicular to u, size pixels behind the tip.
func NewArrowhead(tip, u diagram.Point, size float64) Arrowhead {
	base := tip.Sub(u.Mul(size))
	half := Perp(u).Mul(size / 2)
	return Arrowhead{
		Tip:   tip,
		Left:  base.Add(half),
		Right: base.Sub(half),
	}
}

// EndArrow places an arrow on the outline of target, pointing from src.
func EndArrow(src diagram.Point, target Outline, targetCenter diagram.Point, targetRadius float64) (Arrowhead, bool) {
	u, dist := Unit(src, targetCenter)
	if dist < minArrowSegment {
		return Arrowhead{}, false
	}
	tip := target.Boundary(src)
	return NewArrowhead(tip, u, ArrowSize(targetRadius)), true
}

// MidArrow centers an arrow on the segment from src to dst, ignoring node
// outlines.
func MidArrow(src, dst diagram.Point, rA, rB float64) (Arrowhead, bool) {
	u, dist := Unit(src, dst)
	if dist < minArrowSegment {
		return Arrowhead{}, false
	}
	size := ArrowSize(max(rA, rB) + 2)
	tip := src.Midpoint(dst).Add(u.Mul(size / 2))
	return NewArrowhead(tip, u, size), true
}

// EdgeArrow returns the arrowhead for edge e, if it is directed.
func EdgeArrow(d *diagram.Drawing, outlines []Outline, radii []float64, e diagram.Edge) (Arrowhead, bool) {
	target := e.Target()
	if target < 0 {
		return Arrowhead{}, false
	}
	source := e.A
	if target == e.A {
		source = e.B
	}
	if target >= len(d.Nodes) || source >= len(d.Nodes) || target >= len(outlines) || target >= len(radii) || source >= len(radii) {
		return Arrowhead{}, false
	}

	src := d.Nodes[source].Center()
	dst := d.Nodes[target].Center()
	if e.Mid {
		return MidArrow(src, dst, radii[source], radii[target])
	}
	return EndArrow(src, outlines[target], dst, radii[target])
}

// Arrows returns the arrowhead of every directed edge, keyed by edge index.
func Arrows(d *diagram.Drawing, s *Sizer) map[int]Arrowhead {
	radii := s.Radii(d)
	outlines := s.Outlines(d)
	arrows := make(map[int]Arrowhead)
	for i, e := range d.Edges {
		if a, ok := EdgeArrow(d, outlines, radii, e); ok {
			arrows[i] = a
		}
	}
	return arrows
}

package geometry

import (
	"math"

	"graphdraw/diagram"
)

// PathSink receives the path of an outline. *gg.Context satisfies it, as
// does the recorder used in tests.
type PathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	DrawCircle(x, y, r float64)
}

// Outline is the rendered silhouette of a node. Rendering and hit geometry
// both go through it so arrowheads always land on what is drawn.
type Outline interface {
	// Trace appends the outline to a path.
	Trace(sink PathSink)
	// Boundary returns where the ray from `from` toward the center first
	// crosses the outline.
	Boundary(from diagram.Point) diagram.Point
	// Bounds returns the exact extent of the outline.
	Bounds() Rect
	// Contains reports whether p lies inside or on the outline.
	Contains(p diagram.Point) bool
}

// OutlineOf builds the outline for a node of the given shape centered at c
// with radius r. Unknown shapes are drawn as circles.
func OutlineOf(shape diagram.Shape, c diagram.Point, r float64) Outline {
	switch shape {
	case diagram.ShapeSquare:
		return newPolygon(c, r, []diagram.Point{
			{X: -r, Y: -r}, {X: r, Y: -r}, {X: r, Y: r}, {X: -r, Y: r},
		})
	case diagram.ShapeDiamond:
		return newPolygon(c, r, []diagram.Point{
			{X: 0, Y: -r}, {X: -r, Y: 0}, {X: 0, Y: r}, {X: r, Y: 0},
		})
	case diagram.ShapeTriangle:
		// Centroid sits on the node center
		h := 2 * r
		return newPolygon(c, r, []diagram.Point{
			{X: 0, Y: -2 * h / 3}, {X: -r, Y: h / 3}, {X: r, Y: h / 3},
		})
	default:
		return circle{center: c, r: r}
	}
}

// NodeOutline is OutlineOf for a node with a precomputed radius.
func NodeOutline(n diagram.Node, r float64) Outline {
	return OutlineOf(n.Shape, n.Center(), r)
}

type circle struct {
	center diagram.Point
	r      float64
}

func (c circle) Trace(sink PathSink) {
	sink.DrawCircle(c.center.X, c.center.Y, c.r)
}

func (c circle) Boundary(from diagram.Point) diagram.Point {
	return circleBoundary(c.center, c.r, from)
}

func (c circle) Bounds() Rect {
	return Rect{
		Min: diagram.Point{X: c.center.X - c.r, Y: c.center.Y - c.r},
		Max: diagram.Point{X: c.center.X + c.r, Y: c.center.Y + c.r},
	}
}

func (c circle) Contains(p diagram.Point) bool {
	return p.Distance(c.center) <= c.r+epsilon
}

func circleBoundary(center diagram.Point, r float64, from diagram.Point) diagram.Point {
	u, dist := Unit(from, center)
	if dist < epsilon {
		return center
	}
	return center.Sub(u.Mul(r))
}

// polygon holds absolute vertex positions in drawing order.
type polygon struct {
	center   diagram.Point
	r        float64
	vertices []diagram.Point
}

func newPolygon(c diagram.Point, r float64, offsets []diagram.Point) polygon {
	vs := make([]diagram.Point, len(offsets))
	for i, o := range offsets {
		vs[i] = c.Add(o)
	}
	return polygon{center: c, r: r, vertices: vs}
}

func (p polygon) Trace(sink PathSink) {
	sink.MoveTo(p.vertices[0].X, p.vertices[0].Y)
	for _, v := range p.vertices[1:] {
		sink.LineTo(v.X, v.Y)
	}
	sink.ClosePath()
}

// Boundary casts a ray from the center back toward `from` and keeps the
// nearest side it crosses.
func (p polygon) Boundary(from diagram.Point) diagram.Point {
	u, dist := Unit(from, p.center)
	if dist < epsilon {
		return p.center
	}

	// Hit point is center - d*t for the side a + v*s
	d := u
	best := math.Inf(1)
	for i, a := range p.vertices {
		b := p.vertices[(i+1)%len(p.vertices)]
		v := b.Sub(a)
		det := d.X*v.Y - d.Y*v.X
		if math.Abs(det) < 1e-9 {
			continue
		}
		rhs := p.center.Sub(a)
		t := (rhs.X*v.Y - rhs.Y*v.X) / det
		s := (d.X*rhs.Y - d.Y*rhs.X) / det
		if t >= 0 && s >= 0 && s <= 1 && t < best {
			best = t
		}
	}

	if math.IsInf(best, 1) {
		return circleBoundary(p.center, p.r, from)
	}
	return p.center.Sub(d.Mul(best))
}

func (p polygon) Bounds() Rect {
	r := emptyRect
	for _, v := range p.vertices {
		r = r.Union(Rect{Min: v, Max: v})
	}
	return r
}

// Contains uses the winding of each side; the vertex lists are convex.
func (p polygon) Contains(pt diagram.Point) bool {
	var pos, neg bool
	for i, a := range p.vertices {
		b := p.vertices[(i+1)%len(p.vertices)]
		c := b.Sub(a).Cross(pt.Sub(a))
		if c > 1e-9 {
			pos = true
		} else if c < -1e-9 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// Bounds returns the union of every node outline. The result is empty for
// a drawing without nodes.
func Bounds(outlines []Outline) Rect {
	r := emptyRect
	for _, o := range outlines {
		r = r.Union(o.Bounds())
	}
	return r
}

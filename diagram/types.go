// Package diagram contains the drawing model edited by graphdraw: nodes,
// edges and the whole-drawing value that history snapshots are taken of.
package diagram

import (
	"fmt"
	"math"
	"slices"
)

// Point represents a 2D coordinate on the canvas.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Len returns the length of p as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// String formats the point for logs and status messages.
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Shape is the outline a node is drawn with.
type Shape string

// Node shapes
const (
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
	ShapeDiamond  Shape = "diamond"
)

// Shapes lists every node shape in menu order.
var Shapes = []Shape{ShapeCircle, ShapeSquare, ShapeTriangle, ShapeDiamond}

// Valid reports whether s is one of the known shapes.
func (s Shape) Valid() bool {
	return slices.Contains(Shapes, s)
}

// Next returns the shape after s in menu order, wrapping around.
func (s Shape) Next() Shape {
	i := slices.Index(Shapes, s)
	return Shapes[(i+1)%len(Shapes)]
}

// ParseShape converts a string to a Shape.
func ParseShape(s string) (Shape, error) {
	shape := Shape(s)
	if !shape.Valid() {
		return "", fmt.Errorf("unknown shape: %s", s)
	}
	return shape, nil
}

// LineStyle is the stroke pattern of an edge.
type LineStyle string

// Edge line styles
const (
	StyleSolid  LineStyle = "solid"
	StyleDashed LineStyle = "dashed"
	StyleDotted LineStyle = "dotted"
)

// LineStyles lists every line style in menu order.
var LineStyles = []LineStyle{StyleSolid, StyleDashed, StyleDotted}

// Valid reports whether s is one of the known line styles.
func (s LineStyle) Valid() bool {
	return slices.Contains(LineStyles, s)
}

// Next returns the style after s in menu order, wrapping around.
func (s LineStyle) Next() LineStyle {
	i := slices.Index(LineStyles, s)
	return LineStyles[(i+1)%len(LineStyles)]
}

// ParseLineStyle converts a string to a LineStyle.
func ParseLineStyle(s string) (LineStyle, error) {
	style := LineStyle(s)
	if !style.Valid() {
		return "", fmt.Errorf("unknown line style: %s", s)
	}
	return style, nil
}

// Direction says which endpoint of an edge, if any, carries an arrowhead.
type Direction string

// Edge directions
const (
	DirNone Direction = "none"
	DirAToB Direction = "A->B"
	DirBToA Direction = "B->A"
)

// Directions lists every direction in menu order.
var Directions = []Direction{DirNone, DirAToB, DirBToA}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return slices.Contains(Directions, d)
}

// Next returns the direction after d in menu order, wrapping around.
func (d Direction) Next() Direction {
	i := slices.Index(Directions, d)
	return Directions[(i+1)%len(Directions)]
}

// ParseDirection converts a string to a Direction.
func ParseDirection(s string) (Direction, error) {
	dir := Direction(s)
	if !dir.Valid() {
		return "", fmt.Errorf("unknown direction: %s", s)
	}
	return dir, nil
}

// DefaultColor is the stroke color of new nodes and edges.
const DefaultColor = "#000000"

// Node is a labeled vertex on the canvas. Its radius is not stored; it is
// derived from the label by the geometry package.
type Node struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Label string  `json:"label" yaml:"label"`
	Color string  `json:"color" yaml:"color" validate:"required,hexcolor"`
	Shape Shape   `json:"shape" yaml:"shape" validate:"required,oneof=circle square triangle diamond"`
}

// Center returns the center point of the node.
func (n Node) Center() Point {
	return Point{X: n.X, Y: n.Y}
}

// Edge connects two nodes by index. A and B are ordered for direction
// purposes only; adjacency is undirected.
type Edge struct {
	A         int       `json:"a" yaml:"a" validate:"gte=0"`
	B         int       `json:"b" yaml:"b" validate:"gte=0"`
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
	Color     string    `json:"color" yaml:"color" validate:"required,hexcolor"`
	Style     LineStyle `json:"style" yaml:"style" validate:"required,oneof=solid dashed dotted"`
	Direction Direction `json:"direction" yaml:"direction" validate:"required,oneof=none A->B B->A"`
	Mid       bool      `json:"mid,omitempty" yaml:"mid,omitempty"` // Arrow centered on the segment
}

// Connects reports whether the edge joins i and j in either order.
func (e Edge) Connects(i, j int) bool {
	return (e.A == i && e.B == j) || (e.A == j && e.B == i)
}

// Target returns the index of the node the arrowhead points at, or -1 for
// an undirected edge.
func (e Edge) Target() int {
	switch e.Direction {
	case DirAToB:
		return e.B
	case DirBToA:
		return e.A
	default:
		return -1
	}
}

// Drawing is the complete editable state: nodes and edges in insertion
// order. Node indices are stable for the lifetime of the drawing.
type Drawing struct {
	Nodes    []Node   `json:"nodes" yaml:"nodes" validate:"dive"`
	Edges    []Edge   `json:"edges" yaml:"edges" validate:"dive"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Metadata contains optional drawing metadata.
type Metadata struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Created string `json:"created,omitempty" yaml:"created,omitempty"`
}

// New returns an empty drawing with the given metadata.
func New(meta Metadata) *Drawing {
	return &Drawing{
		Nodes:    []Node{},
		Edges:    []Edge{},
		Metadata: meta,
	}
}

// Clone creates a deep copy of the drawing.
func (d *Drawing) Clone() *Drawing {
	if d == nil {
		return nil
	}

	// Node and Edge hold only values, so copying the slices is a deep copy
	clone := &Drawing{
		Nodes:    make([]Node, len(d.Nodes)),
		Edges:    make([]Edge, len(d.Edges)),
		Metadata: d.Metadata,
	}
	copy(clone.Nodes, d.Nodes)
	copy(clone.Edges, d.Edges)

	return clone
}

// Equal reports whether two drawings are structurally identical. A nil
// slice and an empty slice compare equal.
func (d *Drawing) Equal(other *Drawing) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Metadata == other.Metadata &&
		slices.Equal(d.Nodes, other.Nodes) &&
		slices.Equal(d.Edges, other.Edges)
}

// Node returns the node at index i.
func (d *Drawing) Node(i int) (Node, bool) {
	if i < 0 || i >= len(d.Nodes) {
		return Node{}, false
	}
	return d.Nodes[i], true
}

// Endpoints returns the current centers of an edge's two nodes.
func (d *Drawing) Endpoints(e Edge) (a, b Point, ok bool) {
	na, okA := d.Node(e.A)
	nb, okB := d.Node(e.B)
	if !okA || !okB {
		return Point{}, Point{}, false
	}
	return na.Center(), nb.Center(), true
}

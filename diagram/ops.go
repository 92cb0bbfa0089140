package diagram

import (
	"errors"
	"strings"
)

// Rejected mutations. None of these leave the drawing modified.
var (
	ErrSelfLoop      = errors.New("edge endpoints must be different nodes")
	ErrDuplicateEdge = errors.New("edge already exists")
	ErrNoSuchNode    = errors.New("no such node")
	ErrNoSuchEdge    = errors.New("no such edge")
)

// NodeUpdate carries the optional fields of a set-node command. Nil fields
// are left unchanged.
type NodeUpdate struct {
	Label *string
	Color *string
	Shape *Shape
}

// EdgeUpdate carries the optional fields of a set-edge command. Nil fields
// are left unchanged.
type EdgeUpdate struct {
	Label     *string
	Color     *string
	Style     *LineStyle
	Direction *Direction
	Mid       *bool
}

// DefaultLabel returns the label given to the node at index i:
// a, b, ..., z, aa, ab, ...
func DefaultLabel(i int) string {
	var sb []byte
	for i >= 0 {
		sb = append(sb, byte('a'+i%26))
		i = i/26 - 1
	}
	// Digits were produced least significant first
	for l, r := 0, len(sb)-1; l < r; l, r = l+1, r-1 {
		sb[l], sb[r] = sb[r], sb[l]
	}
	return string(sb)
}

// AddNode appends a circle node at (x, y) and returns its index.
func (d *Drawing) AddNode(x, y float64, color string) int {
	if color == "" {
		color = DefaultColor
	}
	d.Nodes = append(d.Nodes, Node{
		X:     x,
		Y:     y,
		Label: DefaultLabel(len(d.Nodes)),
		Color: color,
		Shape: ShapeCircle,
	})
	return len(d.Nodes) - 1
}

// MoveNode sets the center of node i.
func (d *Drawing) MoveNode(i int, p Point) error {
	if i < 0 || i >= len(d.Nodes) {
		return ErrNoSuchNode
	}
	d.Nodes[i].X = p.X
	d.Nodes[i].Y = p.Y
	return nil
}

// HasEdge reports whether any edge joins i and j, in either order.
func (d *Drawing) HasEdge(i, j int) bool {
	for _, e := range d.Edges {
		if e.Connects(i, j) {
			return true
		}
	}
	return false
}

// CanAddEdge reports why an edge between from and to would be rejected,
// or nil if it would be accepted.
func (d *Drawing) CanAddEdge(from, to int) error {
	if from < 0 || from >= len(d.Nodes) || to < 0 || to >= len(d.Nodes) {
		return ErrNoSuchNode
	}
	if from == to {
		return ErrSelfLoop
	}
	if d.HasEdge(from, to) {
		return ErrDuplicateEdge
	}
	return nil
}

// AddEdge connects two distinct, previously unconnected nodes with a solid
// black undirected edge and returns its index.
func (d *Drawing) AddEdge(from, to int) (int, error) {
	if err := d.CanAddEdge(from, to); err != nil {
		return -1, err
	}
	d.Edges = append(d.Edges, Edge{
		A:         from,
		B:         to,
		Color:     DefaultColor,
		Style:     StyleSolid,
		Direction: DirNone,
	})
	return len(d.Edges) - 1, nil
}

// SetNode applies an update to node i. A label that is blank after
// trimming is ignored.
func (d *Drawing) SetNode(i int, u NodeUpdate) error {
	if i < 0 || i >= len(d.Nodes) {
		return ErrNoSuchNode
	}
	n := &d.Nodes[i]
	if u.Label != nil {
		if label := strings.TrimSpace(*u.Label); label != "" {
			n.Label = label
		}
	}
	if u.Color != nil {
		n.Color = *u.Color
	}
	if u.Shape != nil && u.Shape.Valid() {
		n.Shape = *u.Shape
	}
	return nil
}

// SetEdge applies an update to edge i. Unlike node labels, an edge label
// may be cleared.
func (d *Drawing) SetEdge(i int, u EdgeUpdate) error {
	if i < 0 || i >= len(d.Edges) {
		return ErrNoSuchEdge
	}
	e := &d.Edges[i]
	if u.Label != nil {
		e.Label = strings.TrimSpace(*u.Label)
	}
	if u.Color != nil {
		e.Color = *u.Color
	}
	if u.Style != nil && u.Style.Valid() {
		e.Style = *u.Style
	}
	if u.Direction != nil {
		if u.Direction.Valid() {
			e.Direction = *u.Direction
		} else {
			e.Direction = DirNone
		}
	}
	if u.Mid != nil {
		e.Mid = *u.Mid
	}
	return nil
}

// Clear removes every node and edge. Metadata is kept.
func (d *Drawing) Clear() {
	d.Nodes = []Node{}
	d.Edges = []Edge{}
}

// AdjacencyMatrix returns the symmetric 0/1 matrix of the drawing in node
// insertion order.
func (d *Drawing) AdjacencyMatrix() [][]int {
	n := len(d.Nodes)
	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
	}
	for _, e := range d.Edges {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			continue
		}
		matrix[e.A][e.B] = 1
		matrix[e.B][e.A] = 1
	}
	return matrix
}

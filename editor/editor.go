// Package editor holds the editing session: the live drawing, its undo
// history and the commands the front-end issues against them.
package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"graphdraw/colors"
	"graphdraw/diagram"
	"graphdraw/geometry"
)

// Editor is the command surface of an editing session. It is driven by a
// single event loop and is not safe for concurrent use.
type Editor struct {
	drawing *diagram.Drawing
	history *History
	sizer   *geometry.Sizer
	tol     geometry.Tolerances
	log     *zap.Logger

	// Interaction state (never part of a snapshot)
	mode     Mode
	color    string // Color given to new nodes
	selected int    // First node of a pending edge (-1 for none)
	dragged  int    // Node being dragged (-1 for none)
	moved    bool   // Whether the current drag changed anything
	hovered  int    // Edge under the pointer (-1 for none)
	status   string // Last status message
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger commands are reported to.
func WithLogger(log *zap.Logger) Option {
	return func(e *Editor) { e.log = log }
}

// WithTolerances sets the hit-test tolerances.
func WithTolerances(tol geometry.Tolerances) Option {
	return func(e *Editor) { e.tol = tol }
}

// WithHistorySize bounds the undo history.
func WithHistorySize(n int) Option {
	return func(e *Editor) { e.history = NewHistory(n) }
}

// WithName sets the drawing name recorded in its metadata.
func WithName(name string) Option {
	return func(e *Editor) { e.drawing.Metadata.Name = name }
}

// New creates an editor with an empty drawing. The empty drawing is the
// first history snapshot, so undoing the first edit returns to it.
func New(sizer *geometry.Sizer, opts ...Option) *Editor {
	e := &Editor{
		drawing: diagram.New(diagram.Metadata{
			ID:      uuid.NewString(),
			Created: time.Now().UTC().Format(time.RFC3339),
		}),
		history:  NewHistory(DefaultHistorySize),
		sizer:    sizer,
		tol:      geometry.DefaultTolerances(),
		log:      zap.NewNop(),
		mode:     ModeAddVertex,
		color:    diagram.DefaultColor,
		selected: -1,
		dragged:  -1,
		hovered:  -1,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.history.Push(e.drawing)

	return e
}

// Drawing returns the live drawing. Callers must not modify it.
func (e *Editor) Drawing() *diagram.Drawing {
	return e.drawing
}

// Sizer returns the sizer radii are computed with.
func (e *Editor) Sizer() *geometry.Sizer {
	return e.sizer
}

// Radii returns the current radius of every node.
func (e *Editor) Radii() []float64 {
	return e.sizer.Radii(e.drawing)
}

// Mode returns the current editing mode.
func (e *Editor) Mode() Mode { return e.mode }

// Selected returns the first node of a pending edge, or -1.
func (e *Editor) Selected() int { return e.selected }

// Dragged returns the node being dragged, or -1.
func (e *Editor) Dragged() int { return e.dragged }

// Hovered returns the edge under the pointer, or -1.
func (e *Editor) Hovered() int { return e.hovered }

// Status returns the last status message.
func (e *Editor) Status() string { return e.status }

// SetStatus replaces the status message.
func (e *Editor) SetStatus(msg string) { e.status = msg }

// Color returns the color given to new nodes.
func (e *Editor) Color() string { return e.color }

// SetColor sets the color given to new nodes.
func (e *Editor) SetColor(hex string) error {
	c, err := colors.Normalize(hex)
	if err != nil {
		return err
	}
	e.color = c
	return nil
}

// CycleColor advances the new-node color through the palette.
func (e *Editor) CycleColor() string {
	e.color = colors.Next(e.color)
	e.status = fmt.Sprintf("Color %s", colors.Name(e.color))
	return e.color
}

// HistoryStats returns the history cursor position and length.
func (e *Editor) HistoryStats() (current, total int) {
	return e.history.Stats()
}

// commit records the live drawing as a new history step.
func (e *Editor) commit() {
	if !e.history.Push(e.drawing) {
		e.log.Debug("snapshot unchanged, not recorded")
	}
}

// AddNode places a node at (x, y). An empty color uses the current color.
func (e *Editor) AddNode(x, y float64, color string) int {
	if color == "" {
		color = e.color
	}
	i := e.drawing.AddNode(x, y, color)
	e.commit()
	e.status = "Vertex added"
	e.log.Debug("vertex added",
		zap.Int("index", i),
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.String("color", color))
	return i
}

// AddEdge connects two nodes. Self loops, existing pairs and unknown
// indices are rejected and leave the drawing and history untouched.
func (e *Editor) AddEdge(from, to int) error {
	i, err := e.drawing.AddEdge(from, to)
	if err != nil {
		e.status = rejection(err)
		e.log.Debug("edge rejected",
			zap.Int("from", from),
			zap.Int("to", to),
			zap.Error(err))
		return err
	}
	e.commit()
	e.status = "Edge added"
	e.log.Debug("edge added", zap.Int("index", i), zap.Int("from", from), zap.Int("to", to))
	return nil
}

// SetNode applies a property update to node i as one history step.
func (e *Editor) SetNode(i int, u diagram.NodeUpdate) error {
	if u.Color != nil {
		c, err := colors.Normalize(*u.Color)
		if err != nil {
			return err
		}
		u.Color = &c
	}
	if err := e.drawing.SetNode(i, u); err != nil {
		return err
	}
	e.commit()
	e.status = "Vertex updated"
	e.log.Debug("vertex updated", zap.Int("index", i))
	return nil
}

// SetEdge applies a property update to edge i as one history step.
func (e *Editor) SetEdge(i int, u diagram.EdgeUpdate) error {
	if u.Color != nil {
		c, err := colors.Normalize(*u.Color)
		if err != nil {
			return err
		}
		u.Color = &c
	}
	if err := e.drawing.SetEdge(i, u); err != nil {
		return err
	}
	e.commit()
	e.status = "Edge updated"
	e.log.Debug("edge updated", zap.Int("index", i))
	return nil
}

// Clear empties the drawing. It is undoable like any other edit.
func (e *Editor) Clear() {
	e.drawing.Clear()
	e.resetInteraction()
	e.commit()
	e.status = "Graph cleared"
	e.log.Debug("graph cleared")
}

// Undo installs the previous snapshot. It reports false at the start of
// history.
func (e *Editor) Undo() bool {
	d, ok := e.history.Undo()
	if !ok {
		e.status = "Nothing to undo"
		return false
	}
	e.drawing = d
	e.resetInteraction()
	e.status = "Undo"
	return true
}

// Redo installs the next snapshot. It reports false at the end of history.
func (e *Editor) Redo() bool {
	d, ok := e.history.Redo()
	if !ok {
		e.status = "Nothing to redo"
		return false
	}
	e.drawing = d
	e.resetInteraction()
	e.status = "Redo"
	return true
}

func (e *Editor) resetInteraction() {
	e.selected = -1
	e.dragged = -1
	e.moved = false
	e.hovered = -1
}

// NodeAt returns the topmost node under p.
func (e *Editor) NodeAt(p diagram.Point) (int, bool) {
	return geometry.NodeAt(e.drawing, e.Radii(), e.sizer.MinRadius(), p)
}

// Target resolves what a secondary click at p refers to.
func (e *Editor) Target(p diagram.Point) geometry.Hit {
	hit := geometry.Resolve(e.drawing, e.Radii(), e.sizer.MinRadius(), e.tol, p)
	if hit.Kind == geometry.HitEdge {
		e.status = fmt.Sprintf("Edge %d detected", hit.Index)
	}
	return hit
}

// Press handles a primary button press at p according to the mode.
func (e *Editor) Press(p diagram.Point) {
	switch e.mode {
	case ModeAddVertex:
		e.AddNode(p.X, p.Y, "")

	case ModeAddEdge:
		i, ok := e.NodeAt(p)
		if !ok {
			return
		}
		if e.selected < 0 {
			e.selected = i
			e.status = "Select second vertex"
			return
		}
		from := e.selected
		e.selected = -1
		_ = e.AddEdge(from, i)

	case ModeMoveVertex:
		if i, ok := e.NodeAt(p); ok {
			e.dragged = i
			e.moved = false
		}
	}
}

// Move handles pointer motion. During a drag the node follows the pointer
// without recording history; otherwise the hovered edge is tracked.
func (e *Editor) Move(p diagram.Point) {
	if e.dragged >= 0 && e.mode == ModeMoveVertex {
		if n, ok := e.drawing.Node(e.dragged); ok && n.Center() != p {
			_ = e.drawing.MoveNode(e.dragged, p)
			e.moved = true
		}
		return
	}

	i, _, ok := geometry.EdgeAt(e.drawing, e.tol.EdgeThreshold, p)
	if !ok {
		i = -1
	}
	e.hovered = i
}

// Release ends a drag, recording it as a single history step if the node
// moved.
func (e *Editor) Release() {
	if e.dragged >= 0 && e.moved {
		e.commit()
		e.status = "Vertex moved"
		e.log.Debug("vertex moved",
			zap.Int("index", e.dragged),
			zap.Stringer("to", e.drawing.Nodes[e.dragged].Center()))
	}
	e.dragged = -1
	e.moved = false
}

// rejection turns a rejected edge into a status message.
func rejection(err error) string {
	switch {
	case errors.Is(err, diagram.ErrSelfLoop):
		return "Cannot connect a vertex to itself"
	case errors.Is(err, diagram.ErrDuplicateEdge):
		return "Edge already exists"
	default:
		return "No such vertex"
	}
}

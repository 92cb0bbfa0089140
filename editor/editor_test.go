package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"graphdraw/diagram"
	"graphdraw/geometry"
)

// fixedWidth measures every rune as 7 px, close to the real 12 px font.
type fixedWidth struct{}

func (fixedWidth) Width(label string) float64 { return 7 * float64(len([]rune(label))) }

func newTestEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	return New(geometry.NewSizer(fixedWidth{}), opts...)
}

func TestNewEditorStartsEmpty(t *testing.T) {
	e := newTestEditor(t, WithName("scratch"))

	assert.Empty(t, e.Drawing().Nodes)
	assert.Empty(t, e.Drawing().Edges)
	assert.NotEmpty(t, e.Drawing().Metadata.ID)
	assert.Equal(t, "scratch", e.Drawing().Metadata.Name)
	assert.Equal(t, ModeAddVertex, e.Mode())

	current, total := e.HistoryStats()
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, total)

	assert.False(t, e.Undo())
	assert.Equal(t, "Nothing to undo", e.Status())
}

// The history scenario: the redo branch for the first connection must be
// gone once a different edit is made.
func TestEditorHistoryScenario(t *testing.T) {
	e := newTestEditor(t)

	e.AddNode(50, 50, "")
	e.AddNode(150, 50, "")
	require.NoError(t, e.AddEdge(0, 1))

	require.True(t, e.Undo())
	assert.Empty(t, e.Drawing().Edges)
	assert.Len(t, e.Drawing().Nodes, 2)

	require.True(t, e.Undo())
	assert.Len(t, e.Drawing().Nodes, 1)

	require.True(t, e.Redo())
	assert.Len(t, e.Drawing().Nodes, 2)
	assert.Equal(t, "Redo", e.Status())

	// Connect the other way round: a new action
	require.NoError(t, e.AddEdge(1, 0))
	assert.False(t, e.Redo())
	assert.Equal(t, "Nothing to redo", e.Status())
	assert.Equal(t, diagram.Edge{A: 1, B: 0, Color: diagram.DefaultColor, Style: diagram.StyleSolid, Direction: diagram.DirNone}, e.Drawing().Edges[0])

	current, total := e.HistoryStats()
	assert.Equal(t, 4, current)
	assert.Equal(t, 4, total)
}

func TestEditorRejectedEdgeLeavesHistory(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	e.AddNode(150, 50, "")
	require.NoError(t, e.AddEdge(0, 1))
	_, before := e.HistoryStats()

	assert.ErrorIs(t, e.AddEdge(1, 0), diagram.ErrDuplicateEdge)
	assert.Equal(t, "Edge already exists", e.Status())
	assert.ErrorIs(t, e.AddEdge(1, 1), diagram.ErrSelfLoop)
	assert.Equal(t, "Cannot connect a vertex to itself", e.Status())

	_, after := e.HistoryStats()
	assert.Equal(t, before, after)
	assert.Len(t, e.Drawing().Edges, 1)
}

func TestEditorUndoReturnsIndependentCopy(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	e.AddNode(150, 50, "")
	require.True(t, e.Undo())

	// Editing the installed snapshot must not leak into history
	e.Drawing().Nodes[0].X = 999
	require.True(t, e.Redo())
	assert.Equal(t, 50.0, e.Drawing().Nodes[0].X)
}

func TestEditorSetNodeAndEdge(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	e.AddNode(150, 50, "")
	require.NoError(t, e.AddEdge(0, 1))

	label := "start"
	color := "Red"
	shape := diagram.ShapeSquare
	require.NoError(t, e.SetNode(0, diagram.NodeUpdate{Label: &label, Color: &color, Shape: &shape}))
	n := e.Drawing().Nodes[0]
	assert.Equal(t, "start", n.Label)
	assert.Equal(t, "#e53935", n.Color)
	assert.Equal(t, diagram.ShapeSquare, n.Shape)

	bad := "not-a-color"
	assert.Error(t, e.SetNode(0, diagram.NodeUpdate{Color: &bad}))

	dir := diagram.DirAToB
	style := diagram.StyleDashed
	require.NoError(t, e.SetEdge(0, diagram.EdgeUpdate{Direction: &dir, Style: &style}))
	assert.Equal(t, diagram.DirAToB, e.Drawing().Edges[0].Direction)
	assert.Equal(t, "Edge updated", e.Status())

	assert.ErrorIs(t, e.SetEdge(4, diagram.EdgeUpdate{}), diagram.ErrNoSuchEdge)

	// Each update was one step
	require.True(t, e.Undo())
	assert.Equal(t, diagram.DirNone, e.Drawing().Edges[0].Direction)
	require.True(t, e.Undo())
	assert.Equal(t, "a", e.Drawing().Nodes[0].Label)
}

func TestEditorNoOpUpdateIsNotRecorded(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	_, before := e.HistoryStats()

	same := diagram.ShapeCircle
	require.NoError(t, e.SetNode(0, diagram.NodeUpdate{Shape: &same}))

	_, after := e.HistoryStats()
	assert.Equal(t, before, after)
}

func TestEditorClearIsUndoable(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	e.AddNode(150, 50, "")
	id := e.Drawing().Metadata.ID

	e.Clear()
	assert.Empty(t, e.Drawing().Nodes)
	assert.Equal(t, id, e.Drawing().Metadata.ID)
	assert.Equal(t, "Graph cleared", e.Status())

	require.True(t, e.Undo())
	assert.Len(t, e.Drawing().Nodes, 2)
}

func TestPressAddsVertexWithCurrentColor(t *testing.T) {
	e := newTestEditor(t)
	require.NoError(t, e.SetColor("#1E88E5"))

	e.Press(diagram.Pt(10, 20))

	require.Len(t, e.Drawing().Nodes, 1)
	assert.Equal(t, "#1e88e5", e.Drawing().Nodes[0].Color)
	assert.Equal(t, "Vertex added", e.Status())

	assert.Error(t, e.SetColor("nope"))
	assert.Equal(t, "#1e88e5", e.Color())
}

func TestPressInEdgeMode(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	e.AddNode(150, 50, "")
	e.SetMode(ModeAddEdge)
	assert.Equal(t, "Edge mode", e.Status())

	// Empty space does nothing
	e.Press(diagram.Pt(100, 200))
	assert.Equal(t, -1, e.Selected())

	e.Press(diagram.Pt(52, 50))
	assert.Equal(t, 0, e.Selected())

	e.Press(diagram.Pt(148, 52))
	assert.Equal(t, -1, e.Selected())
	require.Len(t, e.Drawing().Edges, 1)
	assert.Equal(t, "Edge added", e.Status())

	// Second selection on the same node is a rejected self loop
	e.Press(diagram.Pt(50, 50))
	e.Press(diagram.Pt(50, 50))
	assert.Equal(t, -1, e.Selected())
	assert.Len(t, e.Drawing().Edges, 1)
}

func TestDragIsOneHistoryStep(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	e.SetMode(ModeMoveVertex)
	_, before := e.HistoryStats()

	e.Press(diagram.Pt(55, 50))
	assert.Equal(t, 0, e.Dragged())
	for x := 60.0; x <= 200; x += 10 {
		e.Move(diagram.Pt(x, 80))
	}
	e.Release()

	assert.Equal(t, -1, e.Dragged())
	assert.Equal(t, diagram.Pt(200, 80), e.Drawing().Nodes[0].Center())
	_, after := e.HistoryStats()
	assert.Equal(t, before+1, after)

	require.True(t, e.Undo())
	assert.Equal(t, diagram.Pt(50, 50), e.Drawing().Nodes[0].Center())
}

func TestClickWithoutDragRecordsNothing(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	e.SetMode(ModeMoveVertex)
	_, before := e.HistoryStats()

	e.Press(diagram.Pt(50, 50))
	e.Move(diagram.Pt(50, 50))
	e.Release()

	_, after := e.HistoryStats()
	assert.Equal(t, before, after)
}

func TestHoverAndTarget(t *testing.T) {
	e := newTestEditor(t)
	e.AddNode(50, 50, "")
	e.AddNode(150, 50, "")
	require.NoError(t, e.AddEdge(0, 1))

	e.Move(diagram.Pt(100, 55))
	assert.Equal(t, 0, e.Hovered())
	e.Move(diagram.Pt(100, 150))
	assert.Equal(t, -1, e.Hovered())

	hit := e.Target(diagram.Pt(100, 52))
	assert.Equal(t, geometry.Hit{Kind: geometry.HitEdge, Index: 0}, hit)
	assert.Equal(t, "Edge 0 detected", e.Status())

	assert.Equal(t, geometry.NoHit, e.Target(diagram.Pt(400, 400)))
}

func TestCycleColor(t *testing.T) {
	e := newTestEditor(t)
	next := e.CycleColor()
	assert.NotEqual(t, diagram.DefaultColor, next)
	assert.Equal(t, next, e.Color())
	assert.Contains(t, e.Status(), "Color")
}

func TestEditorLogsCommands(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := newTestEditor(t, WithLogger(zap.New(core)))

	e.AddNode(50, 50, "")
	_ = e.AddEdge(0, 0)

	added := logs.FilterMessage("vertex added").All()
	require.Len(t, added, 1)
	assert.Equal(t, int64(0), added[0].ContextMap()["index"])

	rejected := logs.FilterMessage("edge rejected").All()
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].ContextMap()["error"], "different nodes")
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "VERTEX", ModeAddVertex.String())
	assert.Equal(t, "EDGE", ModeAddEdge.String())
	assert.Equal(t, "MOVE", ModeMoveVertex.String())
	assert.Equal(t, "UNKNOWN", Mode(42).String())
}

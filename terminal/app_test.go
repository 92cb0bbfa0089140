package terminal

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"graphdraw/diagram"
	"graphdraw/editor"
	"graphdraw/geometry"
)

// fixedWidth measures every rune as 7 px.
type fixedWidth struct{}

func (fixedWidth) Width(label string) float64 { return 7 * float64(len([]rune(label))) }

type harness struct {
	screen tcell.SimulationScreen
	ed     *editor.Editor
	app    *App
	dir    string
	logs   *observer.ObservedLogs
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ed := editor.New(geometry.NewSizer(fixedWidth{}), editor.WithLogger(logger))
	dir := t.TempDir()
	app := NewApp(screen, ed, Options{OutputDir: dir, Logger: logger})

	return &harness{screen: screen, ed: ed, app: app, dir: dir, logs: logs}
}

func (h *harness) click(x, y int) {
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonPrimary, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func (h *harness) rightClick(x, y int) {
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonSecondary, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func (h *harness) key(k tcell.Key) bool {
	return h.app.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) typeRunes(s string) bool {
	quit := false
	for _, r := range s {
		quit = h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return quit
}

// row returns the text of screen row y.
func (h *harness) row(y int) string {
	cells, w, _ := h.screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func (h *harness) cell(x, y int) rune {
	cells, w, _ := h.screen.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

// twoConnected adds vertices at cells (5,2) and (20,2) and joins them.
func (h *harness) twoConnected(t *testing.T) {
	t.Helper()
	h.click(5, 2)
	h.click(20, 2)
	h.typeRunes("e")
	h.click(5, 2)
	h.click(20, 2)
	require.Len(t, h.ed.Drawing().Edges, 1)
}

func TestCellMapping(t *testing.T) {
	p := ToCanvas(5, 2)
	assert.Equal(t, diagram.Pt(44, 40), p)

	x, y := ToCell(p)
	assert.Equal(t, 5, x)
	assert.Equal(t, 2, y)

	x, y = ToCell(diagram.Pt(-1, -1))
	assert.Equal(t, -1, x)
	assert.Equal(t, -1, y)
}

func TestClickAddsVertex(t *testing.T) {
	h := newHarness(t)

	h.click(5, 2)
	require.Len(t, h.ed.Drawing().Nodes, 1)
	assert.Equal(t, diagram.Pt(44, 40), h.ed.Drawing().Nodes[0].Center())

	h.app.Draw()
	assert.Equal(t, 'a', h.cell(5, 2))
	assert.Equal(t, '●', h.cell(4, 2))
	assert.Equal(t, '●', h.cell(6, 2))

	status := h.row(23)
	assert.Contains(t, status, "VERTEX")
	assert.Contains(t, status, "Vertex added")
	assert.Contains(t, status, "2/2")
}

func TestStatusLineWidths(t *testing.T) {
	h := newHarness(t)
	h.click(5, 2)

	h.app.Draw()
	status := h.row(23)
	assert.Contains(t, status, "2/2")
	assert.NotContains(t, status, compactHelp())

	h.screen.SetSize(160, 24)
	h.app.Draw()
	status = h.row(23)
	assert.Contains(t, status, "Vertex added")
	assert.Contains(t, status, "2/2 │ "+compactHelp())

	h.screen.SetSize(20, 24)
	h.app.Draw()
	assert.Contains(t, h.row(23), "2/2")
}

func TestClickOnStatusLineIgnored(t *testing.T) {
	h := newHarness(t)
	h.click(5, 23)
	assert.Empty(t, h.ed.Drawing().Nodes)
}

func TestEdgeModeAndUndoKeys(t *testing.T) {
	h := newHarness(t)
	h.twoConnected(t)
	assert.Equal(t, editor.ModeAddEdge, h.ed.Mode())

	h.typeRunes("u")
	assert.Empty(t, h.ed.Drawing().Edges)

	h.key(tcell.KeyCtrlY)
	assert.Len(t, h.ed.Drawing().Edges, 1)

	h.key(tcell.KeyCtrlZ)
	assert.Empty(t, h.ed.Drawing().Edges)

	h.app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl|tcell.ModShift))
	assert.Len(t, h.ed.Drawing().Edges, 1)

	h.typeRunes("r")
	assert.Equal(t, "Nothing to redo", h.ed.Status())

	h.app.Draw()
	// Solid horizontal edge between the two vertices
	assert.Equal(t, '─', h.cell(12, 2))
}

func TestModeKeys(t *testing.T) {
	h := newHarness(t)

	h.typeRunes("m")
	assert.Equal(t, editor.ModeMoveVertex, h.ed.Mode())
	h.typeRunes("e")
	assert.Equal(t, editor.ModeAddEdge, h.ed.Mode())
	h.typeRunes("v")
	assert.Equal(t, editor.ModeAddVertex, h.ed.Mode())

	before := h.ed.Color()
	h.typeRunes("k")
	assert.NotEqual(t, before, h.ed.Color())
}

func TestDragMovesVertex(t *testing.T) {
	h := newHarness(t)
	h.click(5, 2)
	h.typeRunes("m")

	h.app.HandleEvent(tcell.NewEventMouse(5, 2, tcell.ButtonPrimary, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(8, 3, tcell.ButtonPrimary, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(10, 4, tcell.ButtonPrimary, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(10, 4, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, diagram.Pt(84, 72), h.ed.Drawing().Nodes[0].Center())
	current, total := h.ed.HistoryStats()
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, total)

	h.typeRunes("u")
	assert.Equal(t, diagram.Pt(44, 40), h.ed.Drawing().Nodes[0].Center())
}

func TestClearNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.click(5, 2)

	h.typeRunes("cn")
	assert.Len(t, h.ed.Drawing().Nodes, 1)
	assert.Equal(t, "Clear cancelled", h.ed.Status())

	h.typeRunes("c")
	assert.Equal(t, "Clear the graph? (y/n)", h.ed.Status())
	h.typeRunes("y")
	assert.Empty(t, h.ed.Drawing().Nodes)
	assert.Equal(t, "Graph cleared", h.ed.Status())
}

func TestSaveTextReport(t *testing.T) {
	h := newHarness(t)
	h.twoConnected(t)

	h.typeRunes("s")
	assert.Equal(t, "Saved graph_data.txt", h.ed.Status())

	data, err := os.ReadFile(filepath.Join(h.dir, "graph_data.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Adjacency Matrix:\n0 1\n1 0\n")
	assert.Contains(t, string(data), "a - b")

	entries := h.logs.FilterMessage("drawing exported").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "text", entries[0].ContextMap()["format"])
}

func TestSavePNG(t *testing.T) {
	h := newHarness(t)

	h.typeRunes("p")
	assert.Equal(t, "Nothing to export", h.ed.Status())

	h.twoConnected(t)
	h.typeRunes("p")
	assert.Equal(t, "Saved graph_data.png", h.ed.Status())

	data, err := os.ReadFile(filepath.Join(h.dir, "graph_data.png"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestSaveFailureReported(t *testing.T) {
	h := newHarness(t)
	h.app.opts.OutputDir = filepath.Join(h.dir, "missing")
	h.click(5, 2)

	h.typeRunes("s")
	assert.True(t, strings.HasPrefix(h.ed.Status(), "Export failed:"))
}

func TestNodePanel(t *testing.T) {
	h := newHarness(t)
	h.click(5, 2)

	h.rightClick(5, 2)
	require.NotNil(t, h.app.panel)

	// Staged only
	h.typeRunes("h")
	assert.Equal(t, diagram.ShapeCircle, h.ed.Drawing().Nodes[0].Shape)

	h.app.Draw()
	assert.Contains(t, h.row(4), "h shape: square")

	_, before := h.ed.HistoryStats()
	h.key(tcell.KeyEnter)
	assert.Nil(t, h.app.panel)
	assert.Equal(t, diagram.ShapeSquare, h.ed.Drawing().Nodes[0].Shape)
	_, after := h.ed.HistoryStats()
	assert.Equal(t, before+1, after)
}

func TestNodePanelRename(t *testing.T) {
	h := newHarness(t)
	h.click(5, 2)

	h.rightClick(5, 2)
	h.typeRunes("n")
	h.key(tcell.KeyCtrlU)
	h.typeRunes("xy")

	// q is text while renaming
	assert.False(t, h.typeRunes("q"))
	h.key(tcell.KeyBackspace2)

	h.key(tcell.KeyEnter)
	require.NotNil(t, h.app.panel)
	assert.Equal(t, "a", h.ed.Drawing().Nodes[0].Label)

	h.key(tcell.KeyEnter)
	assert.Equal(t, "xy", h.ed.Drawing().Nodes[0].Label)
}

func TestPanelCancel(t *testing.T) {
	h := newHarness(t)
	h.click(5, 2)

	h.rightClick(5, 2)
	h.typeRunes("k")
	assert.False(t, h.key(tcell.KeyEscape), "escape closes the panel, not the app")
	assert.Nil(t, h.app.panel)
	assert.Equal(t, diagram.DefaultColor, h.ed.Drawing().Nodes[0].Color)
}

func TestEdgePanel(t *testing.T) {
	h := newHarness(t)
	h.twoConnected(t)

	// Midpoint of the edge
	h.rightClick(13, 2)
	require.NotNil(t, h.app.panel)
	assert.Equal(t, geometry.HitEdge, h.app.panel.hit.Kind)
	assert.Equal(t, "Edge 0 detected", h.ed.Status())

	h.typeRunes("dti")
	h.key(tcell.KeyEnter)

	e := h.ed.Drawing().Edges[0]
	assert.Equal(t, diagram.DirAToB, e.Direction)
	assert.Equal(t, diagram.StyleDashed, e.Style)
	assert.True(t, e.Mid)
}

func TestRightClickOnNothing(t *testing.T) {
	h := newHarness(t)
	h.rightClick(40, 10)
	assert.Nil(t, h.app.panel)
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t)
	assert.True(t, h.typeRunes("q"))
	assert.True(t, h.key(tcell.KeyEscape))
	assert.True(t, h.key(tcell.KeyCtrlC))
	assert.False(t, h.typeRunes("x"))
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t)

	h.typeRunes("?")
	h.app.Draw()

	found := false
	for y := 0; y < 23; y++ {
		if strings.Contains(h.row(y), "GRAPHDRAW HELP") {
			found = true
		}
	}
	assert.True(t, found)

	// Any key only closes the overlay
	assert.False(t, h.typeRunes("q"))
	assert.False(t, h.app.showHelp)
}

func TestArrowGlyph(t *testing.T) {
	tests := []struct {
		u    diagram.Point
		want rune
	}{
		{diagram.Pt(1, 0), '→'},
		{diagram.Pt(0, 1), '↓'},
		{diagram.Pt(-1, 0), '←'},
		{diagram.Pt(0, -1), '↑'},
		{diagram.Pt(1, 1), '↘'},
		{diagram.Pt(-1, -1), '↖'},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, arrowGlyph(tt.u), "u=%v", tt.u)
	}
}

func TestEdgeGlyph(t *testing.T) {
	a := diagram.Pt(0, 0)

	r, ok := edgeGlyph(a, diagram.Pt(100, 5), diagram.StyleSolid)(0)
	assert.True(t, ok)
	assert.Equal(t, '─', r)

	r, _ = edgeGlyph(a, diagram.Pt(0, 100), diagram.StyleSolid)(0)
	assert.Equal(t, '│', r)

	r, _ = edgeGlyph(a, diagram.Pt(50, 50), diagram.StyleSolid)(0)
	assert.Equal(t, '╲', r)

	r, _ = edgeGlyph(a, diagram.Pt(50, -50), diagram.StyleSolid)(0)
	assert.Equal(t, '╱', r)

	dashed := edgeGlyph(a, diagram.Pt(100, 0), diagram.StyleDashed)
	_, ok = dashed(2)
	assert.False(t, ok)

	dotted := edgeGlyph(a, diagram.Pt(100, 0), diagram.StyleDotted)
	r, ok = dotted(0)
	assert.True(t, ok)
	assert.Equal(t, '·', r)
	_, ok = dotted(1)
	assert.False(t, ok)
}

func TestSaveJSONLoadsBack(t *testing.T) {
	h := newHarness(t)
	h.twoConnected(t)

	h.typeRunes("w")
	assert.Equal(t, "Saved graph_data.json", h.ed.Status())

	d, err := diagram.Load(filepath.Join(h.dir, "graph_data.json"))
	require.NoError(t, err)
	assert.True(t, h.ed.Drawing().Equal(d))
}

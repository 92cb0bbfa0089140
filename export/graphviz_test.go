package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphdraw/diagram"
)

func styledDrawing(t *testing.T) *diagram.Drawing {
	t.Helper()
	d := diagram.New(diagram.Metadata{})
	d.AddNode(10, 20, "")
	d.AddNode(110, 20, "#1e88e5")
	d.AddNode(60, 120, "")
	_, err := d.AddEdge(0, 1)
	require.NoError(t, err)
	_, err = d.AddEdge(1, 2)
	require.NoError(t, err)

	label := `say "hi"`
	shape := diagram.ShapeDiamond
	require.NoError(t, d.SetNode(0, diagram.NodeUpdate{Label: &label, Shape: &shape}))

	dir := diagram.DirBToA
	style := diagram.StyleDashed
	color := "#e53935"
	edgeLabel := "next"
	require.NoError(t, d.SetEdge(1, diagram.EdgeUpdate{Direction: &dir, Style: &style, Color: &color, Label: &edgeLabel}))
	return d
}

func TestGraphvizExport(t *testing.T) {
	out, err := NewGraphvizExporter().Export(styledDrawing(t))
	require.NoError(t, err)
	dot := string(out)

	assert.True(t, strings.HasPrefix(dot, "graph G {\n"))
	assert.Contains(t, dot, `N0 [label="say \"hi\"", shape=diamond, color="#000000", pos="10,-20!"];`)
	assert.Contains(t, dot, `N1 [label="b", shape=circle, color="#1e88e5", pos="110,-20!"];`)
	assert.Contains(t, dot, "  N0 -- N1;\n")
	assert.Contains(t, dot, `N1 -- N2 [label="next", style=dashed, color="#e53935", dir=back];`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestGraphvizExportEmpty(t *testing.T) {
	_, err := NewGraphvizExporter().Export(diagram.New(diagram.Metadata{}))
	assert.ErrorIs(t, err, ErrEmptyDrawing)

	_, err = NewGraphvizExporter().Export(nil)
	assert.Error(t, err)
}

func TestMermaidExport(t *testing.T) {
	out, err := NewMermaidExporter().Export(styledDrawing(t))
	require.NoError(t, err)
	mmd := string(out)

	assert.True(t, strings.HasPrefix(mmd, "graph LR\n"))
	assert.Contains(t, mmd, "    N0{say #quot;hi#quot;}\n")
	assert.Contains(t, mmd, "    N1((b))\n")
	assert.Contains(t, mmd, "    N0 --- N1\n")
	// B->A is drawn from B
	assert.Contains(t, mmd, "    N2 -.->|next| N1\n")
	assert.Contains(t, mmd, "    style N1 fill:")
	assert.Contains(t, mmd, "stroke:#1e88e5,stroke-width:2px")
	assert.Contains(t, mmd, "    linkStyle 1 stroke:#e53935")
}

func TestMermaidShapesAndLinks(t *testing.T) {
	e := NewMermaidExporter()

	assert.Equal(t, "[x]", e.formatNodeWithShape("x", diagram.ShapeSquare))
	assert.Equal(t, `[/x\]`, e.formatNodeWithShape("x", diagram.ShapeTriangle))
	assert.Equal(t, "((x))", e.formatNodeWithShape("x", diagram.ShapeCircle))

	assert.Equal(t, "-->", e.getLinkStyle(diagram.Edge{Style: diagram.StyleSolid, Direction: diagram.DirAToB}))
	assert.Equal(t, "-.-", e.getLinkStyle(diagram.Edge{Style: diagram.StyleDotted, Direction: diagram.DirNone}))
}

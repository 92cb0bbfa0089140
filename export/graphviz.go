package export

import (
	"fmt"
	"strings"

	"graphdraw/diagram"
)

// GraphvizExporter exports drawings to Graphviz DOT syntax. Node positions
// are kept as pinned coordinates so neato reproduces the layout.
type GraphvizExporter struct{}

// NewGraphvizExporter creates a new Graphviz exporter
func NewGraphvizExporter() *GraphvizExporter {
	return &GraphvizExporter{}
}

// Export converts the drawing to Graphviz DOT syntax
func (e *GraphvizExporter) Export(d *diagram.Drawing) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("drawing is nil")
	}

	if len(d.Nodes) == 0 {
		return nil, ErrEmptyDrawing
	}

	var sb strings.Builder

	// Adjacency is undirected; arrows are per-edge dir attributes
	sb.WriteString("graph G {\n")
	sb.WriteString("  node [style=filled, fillcolor=\"#FFFFFF\", penwidth=2];\n")
	sb.WriteString("  edge [penwidth=2];\n\n")

	for i, node := range d.Nodes {
		sb.WriteString(fmt.Sprintf("  %s [%s];\n", e.getNodeID(i), e.getNodeAttributes(node)))
	}

	if len(d.Edges) > 0 {
		sb.WriteString("\n")
	}

	for _, edge := range d.Edges {
		attributes := e.getEdgeAttributes(edge)
		if attributes != "" {
			sb.WriteString(fmt.Sprintf("  %s -- %s [%s];\n", e.getNodeID(edge.A), e.getNodeID(edge.B), attributes))
		} else {
			sb.WriteString(fmt.Sprintf("  %s -- %s;\n", e.getNodeID(edge.A), e.getNodeID(edge.B)))
		}
	}

	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

// getNodeID returns a valid DOT node identifier
func (e *GraphvizExporter) getNodeID(i int) string {
	return fmt.Sprintf("N%d", i)
}

// escapeLabel escapes special characters in labels
func (e *GraphvizExporter) escapeLabel(label string) string {
	// Escape quotes and backslashes
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	return label
}

// getNodeAttributes builds DOT attributes for a node
func (e *GraphvizExporter) getNodeAttributes(node diagram.Node) string {
	attrs := []string{
		fmt.Sprintf("label=\"%s\"", e.escapeLabel(node.Label)),
		fmt.Sprintf("shape=%s", e.mapShapeToDOT(node.Shape)),
		fmt.Sprintf("color=\"%s\"", node.Color),
		// Points, y up
		fmt.Sprintf("pos=\"%g,%g!\"", node.X, -node.Y),
	}
	return strings.Join(attrs, ", ")
}

// getEdgeAttributes builds DOT attributes for an edge
func (e *GraphvizExporter) getEdgeAttributes(edge diagram.Edge) string {
	var attrs []string

	if edge.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=\"%s\"", e.escapeLabel(edge.Label)))
	}

	switch edge.Style {
	case diagram.StyleDashed:
		attrs = append(attrs, "style=dashed")
	case diagram.StyleDotted:
		attrs = append(attrs, "style=dotted")
	}

	if edge.Color != "" && edge.Color != diagram.DefaultColor {
		attrs = append(attrs, fmt.Sprintf("color=\"%s\"", edge.Color))
	}

	switch edge.Direction {
	case diagram.DirAToB:
		attrs = append(attrs, "dir=forward")
	case diagram.DirBToA:
		attrs = append(attrs, "dir=back")
	}

	return strings.Join(attrs, ", ")
}

// mapShapeToDOT maps node shapes to Graphviz shape names
func (e *GraphvizExporter) mapShapeToDOT(shape diagram.Shape) string {
	switch shape {
	case diagram.ShapeSquare:
		return "square"
	case diagram.ShapeTriangle:
		return "triangle"
	case diagram.ShapeDiamond:
		return "diamond"
	default:
		return "circle"
	}
}

// GetFileExtension returns the recommended file extension
func (e *GraphvizExporter) GetFileExtension() string {
	return ".dot"
}

// GetFormatName returns the format name
func (e *GraphvizExporter) GetFormatName() string {
	return "Graphviz"
}

package export

import (
	"fmt"
	"strings"

	"graphdraw/colors"
	"graphdraw/diagram"
)

// MermaidExporter exports drawings to Mermaid flowchart syntax
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the drawing to Mermaid syntax
func (e *MermaidExporter) Export(d *diagram.Drawing) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("drawing is nil")
	}

	if len(d.Nodes) == 0 {
		return nil, ErrEmptyDrawing
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, node := range d.Nodes {
		label := e.escapeLabel(node.Label)
		sb.WriteString(fmt.Sprintf("    %s%s\n", e.getNodeID(i), e.formatNodeWithShape(label, node.Shape)))
	}

	// Add a blank line between nodes and edges
	if len(d.Edges) > 0 {
		sb.WriteString("\n")
	}

	for _, edge := range d.Edges {
		from, to := edge.A, edge.B
		// Mermaid only draws arrows forward
		if edge.Direction == diagram.DirBToA {
			from, to = to, from
		}

		link := e.getLinkStyle(edge)
		if edge.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s %s|%s| %s\n", e.getNodeID(from), link, e.escapeLabel(edge.Label), e.getNodeID(to)))
		} else {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", e.getNodeID(from), link, e.getNodeID(to)))
		}
	}

	// Colors are per element styles rather than classes
	var styles []string
	for i, node := range d.Nodes {
		if node.Color == "" || node.Color == diagram.DefaultColor {
			continue
		}
		styles = append(styles, fmt.Sprintf("    style %s fill:%s,stroke:%s,stroke-width:2px",
			e.getNodeID(i), colors.Lighten(node.Color, 0.85), node.Color))
	}
	for i, edge := range d.Edges {
		if edge.Color == "" || edge.Color == diagram.DefaultColor {
			continue
		}
		styles = append(styles, fmt.Sprintf("    linkStyle %d stroke:%s", i, edge.Color))
	}
	if len(styles) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(styles, "\n"))
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// getNodeID returns a valid Mermaid node identifier
func (e *MermaidExporter) getNodeID(i int) string {
	return fmt.Sprintf("N%d", i)
}

// getLinkStyle picks the link operator for an edge's style and direction
func (e *MermaidExporter) getLinkStyle(edge diagram.Edge) string {
	directed := edge.Direction == diagram.DirAToB || edge.Direction == diagram.DirBToA
	broken := edge.Style == diagram.StyleDashed || edge.Style == diagram.StyleDotted

	switch {
	case directed && broken:
		return "-.->"
	case directed:
		return "-->"
	case broken:
		return "-.-"
	default:
		return "---"
	}
}

// escapeLabel escapes special characters in labels
func (e *MermaidExporter) escapeLabel(label string) string {
	// Mermaid accepts HTML entities inside labels
	r := strings.NewReplacer(
		`"`, "#quot;",
		`|`, "#124;",
		`[`, "#91;",
		`]`, "#93;",
		`{`, "#123;",
		`}`, "#125;",
		`(`, "#40;",
		`)`, "#41;",
	)
	return r.Replace(label)
}

// formatNodeWithShape formats a node with its shape for Mermaid
func (e *MermaidExporter) formatNodeWithShape(label string, shape diagram.Shape) string {
	switch shape {
	case diagram.ShapeSquare:
		return fmt.Sprintf("[%s]", label)
	case diagram.ShapeDiamond:
		return fmt.Sprintf("{%s}", label)
	case diagram.ShapeTriangle:
		// Trapezoid is the closest flowchart shape
		return fmt.Sprintf("[/%s\\]", label)
	default:
		return fmt.Sprintf("((%s))", label)
	}
}

// GetFileExtension returns the recommended file extension
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}

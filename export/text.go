package export

import (
	"fmt"
	"strconv"
	"strings"

	"graphdraw/diagram"
)

// TextExporter writes the adjacency report: a header, the adjacency
// matrix, the edge list and the node attributes.
type TextExporter struct{}

// NewTextExporter creates a new text report exporter
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export converts the drawing to the text report. An empty drawing is a
// valid report with no rows.
func (e *TextExporter) Export(d *diagram.Drawing) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("drawing is nil")
	}

	var sb strings.Builder

	sb.WriteString("# graphdraw export\n")
	fmt.Fprintf(&sb, "# vertices: %d\n", len(d.Nodes))

	sb.WriteString("\nAdjacency Matrix:\n")
	for _, row := range d.AdjacencyMatrix() {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strconv.Itoa(v)
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	sb.WriteString("\nAdjacencies:\n")
	for _, edge := range d.Edges {
		sb.WriteString(e.edgeLine(d, edge))
		sb.WriteString("\n")
	}

	sb.WriteString("\nVertex Colors & Shapes:\n")
	for _, node := range d.Nodes {
		fmt.Fprintf(&sb, "%s: color=%s", node.Label, node.Color)
		if node.Shape != "" {
			fmt.Fprintf(&sb, " | shape=%s", node.Shape)
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// edgeLine formats one adjacency, omitting empty attributes
func (e *TextExporter) edgeLine(d *diagram.Drawing, edge diagram.Edge) string {
	a, _ := d.Node(edge.A)
	b, _ := d.Node(edge.B)

	line := a.Label + " - " + b.Label
	if edge.Label != "" {
		line += " | label: " + edge.Label
	}
	if edge.Style != "" {
		line += " | style: " + string(edge.Style)
	}
	if edge.Color != "" {
		line += " | color: " + edge.Color
	}
	return line
}

// GetFileExtension returns the file extension for the report
func (e *TextExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *TextExporter) GetFormatName() string {
	return "Text report"
}

// Package export writes drawings out as text reports, raster images and
// other diagram formats.
package export

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"graphdraw/diagram"
	"graphdraw/geometry"
)

// Format represents an export format
type Format string

const (
	// FormatText exports the adjacency report
	FormatText Format = "text"
	// FormatPNG exports a cropped raster image
	FormatPNG Format = "png"
	// FormatJSON exports the drawing as JSON
	FormatJSON Format = "json"
	// FormatYAML exports the drawing as YAML
	FormatYAML Format = "yaml"
	// FormatDOT exports to Graphviz DOT syntax
	FormatDOT Format = "dot"
	// FormatMermaid exports to Mermaid flowchart syntax
	FormatMermaid Format = "mermaid"
)

// ErrEmptyDrawing is returned by exporters that need at least one node.
var ErrEmptyDrawing = errors.New("drawing has no nodes")

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a drawing to the target format
	Export(d *diagram.Drawing) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// Options carries what the graphical exporters need beyond the drawing.
type Options struct {
	Sizer     *geometry.Sizer
	Padding   float64 // Space around the cropped image
	LineWidth float64
	FontSize  float64
	Logger    *zap.Logger
}

// DefaultOptions returns the stock raster settings. Sizer is left nil and
// must be set for PNG export.
func DefaultOptions() Options {
	return Options{
		Padding:   DefaultPadding,
		LineWidth: DefaultLineWidth,
		FontSize:  geometry.DefaultFontSize,
		Logger:    zap.NewNop(),
	}
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatText:
		return NewTextExporter(), nil
	case FormatPNG:
		return NewPNGExporter(opts)
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatYAML:
		return NewYAMLExporter(), nil
	case FormatDOT:
		return NewGraphvizExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return FormatText, nil
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "dot", "graphviz", "gv":
		return FormatDOT, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatText,
		FormatPNG,
		FormatJSON,
		FormatYAML,
		FormatDOT,
		FormatMermaid,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatText:    "Adjacency matrix and edge list report",
		FormatPNG:     "PNG image cropped to the drawing",
		FormatJSON:    "JSON drawing (can be converted again with export)",
		FormatYAML:    "YAML drawing (can be converted again with export)",
		FormatDOT:     "Graphviz DOT syntax",
		FormatMermaid: "Mermaid flowchart syntax (for Markdown)",
	}
}

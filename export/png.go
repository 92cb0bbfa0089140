package export

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"graphdraw/colors"
	"graphdraw/diagram"
	"graphdraw/geometry"
)

// Raster defaults
const (
	DefaultPadding   = 12
	DefaultLineWidth = 2
)

// edgeLabelLift is how far above the midpoint edge labels are drawn.
const edgeLabelLift = 8

// nodeFill is the interior color of every node shape.
const nodeFill = "#ffffff"

// Dash patterns per line style, in pixels
var dashes = map[diagram.LineStyle][]float64{
	diagram.StyleDashed: {8, 4},
	diagram.StyleDotted: {1, 6},
}

// PNGExporter renders drawings to a PNG cropped to the node outlines.
type PNGExporter struct {
	opts Options
	face text.Face
}

// NewPNGExporter creates a PNG exporter. opts.Sizer is required so the
// image matches the radii used for hit testing.
func NewPNGExporter(opts Options) (*PNGExporter, error) {
	if opts.Sizer == nil {
		return nil, errors.New("png export needs a sizer")
	}
	defaults := DefaultOptions()
	if opts.Padding < 0 {
		opts.Padding = defaults.Padding
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = defaults.LineWidth
	}
	if opts.FontSize <= 0 {
		opts.FontSize = defaults.FontSize
	}
	if opts.Logger == nil {
		opts.Logger = defaults.Logger
	}

	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}

	return &PNGExporter{opts: opts, face: source.Face(opts.FontSize)}, nil
}

// offsetSink shifts canvas coordinates into image coordinates.
type offsetSink struct {
	dc     *gg.Context
	dx, dy float64
}

func (s offsetSink) MoveTo(x, y float64)        { s.dc.MoveTo(x+s.dx, y+s.dy) }
func (s offsetSink) LineTo(x, y float64)        { s.dc.LineTo(x+s.dx, y+s.dy) }
func (s offsetSink) ClosePath()                 { s.dc.ClosePath() }
func (s offsetSink) DrawCircle(x, y, r float64) { s.dc.DrawCircle(x+s.dx, y+s.dy, r) }

func (s offsetSink) label(str string, p diagram.Point) {
	s.dc.DrawStringAnchored(str, p.X+s.dx, p.Y+s.dy, 0.5, 0.5)
}

// Export renders edges, then nodes, then arrowheads so arrows are never
// hidden under a node fill.
func (e *PNGExporter) Export(d *diagram.Drawing) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("drawing is nil")
	}
	if len(d.Nodes) == 0 {
		return nil, ErrEmptyDrawing
	}

	outlines := e.opts.Sizer.Outlines(d)
	bounds := geometry.Bounds(outlines).Inset(e.opts.Padding)
	minX := math.Floor(bounds.Min.X)
	minY := math.Floor(bounds.Min.Y)
	maxX := math.Ceil(bounds.Max.X)
	maxY := math.Ceil(bounds.Max.Y)
	width := max(1, int(maxX-minX))
	height := max(1, int(maxY-minY))

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	dc.SetFont(e.face)

	s := offsetSink{dc: dc, dx: -minX, dy: -minY}

	for i, edge := range d.Edges {
		if err := e.drawEdge(s, d, edge); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}

	for i, node := range d.Nodes {
		if err := e.drawNode(s, node, outlines[i]); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}

	arrows := geometry.Arrows(d, e.opts.Sizer)
	indices := make([]int, 0, len(arrows))
	for i := range arrows {
		indices = append(indices, i)
	}
	slices.Sort(indices)
	for _, i := range indices {
		arrows[i].Trace(s)
		dc.SetHexColor(d.Edges[i].Color)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("arrow %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	e.opts.Logger.Info("png rendered",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("nodes", len(d.Nodes)),
		zap.Int("edges", len(d.Edges)))

	return buf.Bytes(), nil
}

func (e *PNGExporter) drawEdge(s offsetSink, d *diagram.Drawing, edge diagram.Edge) error {
	a, b, ok := d.Endpoints(edge)
	if !ok {
		return nil
	}

	dc := s.dc
	dc.SetHexColor(edge.Color)
	dc.SetLineWidth(e.opts.LineWidth)
	if dash, ok := dashes[edge.Style]; ok {
		dc.SetDash(dash...)
	} else {
		dc.ClearDash()
	}

	s.MoveTo(a.X, a.Y)
	s.LineTo(b.X, b.Y)
	err := dc.Stroke()
	dc.ClearDash()
	if err != nil {
		return err
	}

	if edge.Label != "" {
		dc.SetHexColor(diagram.DefaultColor)
		mid := a.Midpoint(b)
		s.label(edge.Label, diagram.Pt(mid.X, mid.Y-edgeLabelLift))
	}
	return nil
}

func (e *PNGExporter) drawNode(s offsetSink, node diagram.Node, outline geometry.Outline) error {
	dc := s.dc

	outline.Trace(s)
	dc.SetHexColor(nodeFill)
	if err := dc.FillPreserve(); err != nil {
		return err
	}
	dc.SetHexColor(node.Color)
	dc.SetLineWidth(e.opts.LineWidth)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetHexColor(colors.Contrast(nodeFill))
	s.label(node.Label, node.Center())
	return nil
}

// GetFileExtension returns the file extension for PNG
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}

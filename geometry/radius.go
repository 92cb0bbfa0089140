package geometry

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"graphdraw/diagram"
)

// Sizing defaults used when no configuration overrides them.
const (
	DefaultMinRadius = 14
	DefaultPadding   = 8
	DefaultFontSize  = 12
)

// Measurer reports the rendered width of a label in pixels.
type Measurer interface {
	Width(label string) float64
}

// FontMeasurer measures labels with a TrueType face.
type FontMeasurer struct {
	face font.Face
}

// NewFontMeasurer loads Go Regular at the given pixel size.
func NewFontMeasurer(size float64) (*FontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label face: %w", err)
	}
	return &FontMeasurer{face: face}, nil
}

// Width implements Measurer.
func (m *FontMeasurer) Width(label string) float64 {
	return float64(font.MeasureString(m.face, label)) / 64
}

// Sizer derives node radii from label metrics and caches them by label.
// A label change is a cache miss, so radii never go stale.
type Sizer struct {
	measurer   Measurer
	minRadius  float64
	padding    float64
	textHeight float64

	mu    sync.Mutex
	cache map[string]float64
}

// SizerOption configures a Sizer.
type SizerOption func(*Sizer)

// WithMinRadius sets the radius floor.
func WithMinRadius(r float64) SizerOption {
	return func(s *Sizer) { s.minRadius = r }
}

// WithPadding sets the space between label and outline.
func WithPadding(p float64) SizerOption {
	return func(s *Sizer) { s.padding = p }
}

// WithTextHeight sets the label height, normally the font size.
func WithTextHeight(h float64) SizerOption {
	return func(s *Sizer) { s.textHeight = h }
}

// NewSizer creates a Sizer measuring labels with m.
func NewSizer(m Measurer, opts ...SizerOption) *Sizer {
	s := &Sizer{
		measurer:   m,
		minRadius:  DefaultMinRadius,
		padding:    DefaultPadding,
		textHeight: DefaultFontSize,
		cache:      make(map[string]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MinRadius returns the radius floor.
func (s *Sizer) MinRadius() float64 {
	return s.minRadius
}

// Radius returns max(minRadius, ceil(max(w/2+padding, h/2+padding))).
func (s *Sizer) Radius(label string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.cache[label]; ok {
		return r
	}

	halfW := s.measurer.Width(label) / 2
	halfH := s.textHeight / 2
	r := math.Max(s.minRadius, math.Ceil(math.Max(halfW+s.padding, halfH+s.padding)))
	s.cache[label] = r
	return r
}

// Radii returns the radius of every node, indexed like d.Nodes.
func (s *Sizer) Radii(d *diagram.Drawing) []float64 {
	radii := make([]float64, len(d.Nodes))
	for i, n := range d.Nodes {
		radii[i] = s.Radius(n.Label)
	}
	return radii
}

// Outlines returns the outline of every node, indexed like d.Nodes.
func (s *Sizer) Outlines(d *diagram.Drawing) []Outline {
	outlines := make([]Outline, len(d.Nodes))
	for i, n := range d.Nodes {
		outlines[i] = NodeOutline(n, s.Radius(n.Label))
	}
	return outlines
}

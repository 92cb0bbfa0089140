// Package colors handles the stroke colors of nodes and edges.
package colors

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// named maps the color names accepted on input to their hex value.
var named = map[string]string{
	"black":   "#000000",
	"red":     "#e53935",
	"green":   "#43a047",
	"blue":    "#1e88e5",
	"yellow":  "#fdd835",
	"magenta": "#d81b60",
	"cyan":    "#00acc1",
	"orange":  "#fb8c00",
	"purple":  "#8e24aa",
	"gray":    "#757575",
	"white":   "#ffffff",
}

// Palette is the cycle of colors offered by the color key, in order.
var Palette = []string{
	"#000000",
	"#e53935",
	"#43a047",
	"#1e88e5",
	"#fb8c00",
	"#8e24aa",
	"#00acc1",
	"#757575",
}

// Normalize converts a color name or a 3/6-digit hex string to lowercase
// "#rrggbb".
func Normalize(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		return hex, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// Next returns the palette color after current. Colors outside the
// palette restart the cycle.
func Next(current string) string {
	i := slices.Index(Palette, strings.ToLower(current))
	return Palette[(i+1)%len(Palette)]
}

// Name returns the input name of hex if it has one, otherwise hex itself.
func Name(hex string) string {
	hex = strings.ToLower(hex)
	for name, h := range named {
		if h == hex {
			return name
		}
	}
	return hex
}

// Parse returns the color for a hex string, or black when it is invalid.
func Parse(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Lighten blends hex toward white by amount in [0,1], mixing in Lab space
// so the hue stays recognizable.
func Lighten(hex string, amount float64) string {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return Parse(hex).BlendLab(white, amount).Clamped().Hex()
}

// Contrast returns black or white, whichever reads better on hex.
func Contrast(hex string) string {
	l, _, _ := Parse(hex).Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// RGB returns the 8-bit channels of hex.
func RGB(hex string) (r, g, b uint8) {
	return Parse(hex).RGB255()
}

package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"graphdraw/colors"
	"graphdraw/diagram"
	"graphdraw/geometry"
)

// One terminal cell covers this many canvas pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

// ToCanvas returns the canvas point at the center of cell (x, y).
func ToCanvas(x, y int) diagram.Point {
	return diagram.Pt(float64(x*CellWidth)+CellWidth/2, float64(y*CellHeight)+CellHeight/2)
}

// ToCell returns the cell containing canvas point p.
func ToCell(p diagram.Point) (x, y int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

// cellCanvas paints onto the drawing area of a screen, clipping writes
// outside it.
type cellCanvas struct {
	screen        tcell.Screen
	width, height int
}

func (c cellCanvas) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// drawLine rasterizes a segment with Bresenham's algorithm. glyph picks the
// rune for each step and may skip the step.
func (c cellCanvas) drawLine(x1, y1, x2, y2 int, style tcell.Style, glyph func(step int) (rune, bool)) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	xInc := 1
	if x1 > x2 {
		xInc = -1
	}
	yInc := 1
	if y1 > y2 {
		yInc = -1
	}

	plot := func(step, x, y int) {
		if r, ok := glyph(step); ok {
			c.set(x, y, r, style)
		}
	}

	x, y, step := x1, y1, 0
	if dx > dy {
		err := dx / 2
		for x != x2 {
			plot(step, x, y)
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
			step++
		}
	} else {
		err := dy / 2
		for y != y2 {
			plot(step, x, y)
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
			step++
		}
	}
	plot(step, x2, y2)
}

// drawText writes s starting at cell (x, y), honoring wide runes.
func (c cellCanvas) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(x, y, r, style)
		x += w
	}
}

// drawCentered writes s centered on cell (x, y).
func (c cellCanvas) drawCentered(x, y int, s string, style tcell.Style) {
	c.drawText(x-runewidth.StringWidth(s)/2, y, s, style)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// colorOf maps a hex color to a terminal color. Black maps to the default
// foreground so it stays visible on dark terminals.
func colorOf(hex string) tcell.Color {
	if hex == "" || hex == diagram.DefaultColor {
		return tcell.ColorDefault
	}
	r, g, b := colors.RGB(hex)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// edgeGlyph returns the rune stepper for an edge from a to b in canvas
// pixels.
func edgeGlyph(a, b diagram.Point, style diagram.LineStyle) func(int) (rune, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	var r rune
	switch {
	case math.Abs(dy) < 0.4*math.Abs(dx):
		r = '─'
	case math.Abs(dx) < 0.4*math.Abs(dy):
		r = '│'
	case dx*dy > 0:
		r = '╲'
	default:
		r = '╱'
	}

	switch style {
	case diagram.StyleDashed:
		return func(step int) (rune, bool) { return r, step%3 != 2 }
	case diagram.StyleDotted:
		return func(step int) (rune, bool) { return '·', step%2 == 0 }
	default:
		return func(int) (rune, bool) { return r, true }
	}
}

// arrowGlyph picks one of eight arrows for the direction of u.
func arrowGlyph(u diagram.Point) rune {
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	angle := math.Atan2(u.Y, u.X)
	i := int(math.Round(angle/(math.Pi/4))+8) % 8
	return arrows[i]
}

// shapeGlyph is the rune used for the outline cells of a node.
func shapeGlyph(s diagram.Shape) rune {
	switch s {
	case diagram.ShapeSquare:
		return '■'
	case diagram.ShapeTriangle:
		return '▲'
	case diagram.ShapeDiamond:
		return '◆'
	default:
		return '●'
	}
}

// drawOutline clears the cells inside the outline and marks its edge cells
// with glyph. A node too small to cover any cell center still gets its
// center cell marked.
func (c cellCanvas) drawOutline(o geometry.Outline, center diagram.Point, glyph rune, style tcell.Style) {
	b := o.Bounds()
	x0, y0 := ToCell(b.Min)
	x1, y1 := ToCell(b.Max)

	inside := func(x, y int) bool { return o.Contains(ToCanvas(x, y)) }

	covered := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !inside(x, y) {
				continue
			}
			covered = true
			edge := !inside(x-1, y) || !inside(x+1, y) || !inside(x, y-1) || !inside(x, y+1)
			if edge {
				c.set(x, y, glyph, style)
			} else {
				c.set(x, y, ' ', tcell.StyleDefault)
			}
		}
	}

	if !covered {
		cx, cy := ToCell(center)
		c.set(cx, cy, glyph, style)
	}
}

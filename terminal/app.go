// Package terminal is the interactive front-end: it maps terminal mouse and
// key events onto editor commands and paints the drawing into cells.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"graphdraw/colors"
	"graphdraw/diagram"
	"graphdraw/editor"
	"graphdraw/export"
	"graphdraw/geometry"
)

// Options configures an App.
type Options struct {
	Export    export.Options
	OutputDir string // Where saved files are written
	Filename  string // Base name without extension
	Logger    *zap.Logger
}

// App runs the editor on a tcell screen. It handles one event at a time and
// is not safe for concurrent use.
type App struct {
	screen tcell.Screen
	ed     *editor.Editor
	opts   Options
	log    *zap.Logger

	buttons      tcell.ButtonMask // Buttons held at the previous mouse event
	panel        *panel
	confirmClear bool
	showHelp     bool
}

// NewApp creates an App drawing on screen. The screen must already be
// initialized.
func NewApp(screen tcell.Screen, ed *editor.Editor, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Filename == "" {
		opts.Filename = "graph_data"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Export.Sizer == nil {
		opts.Export.Sizer = ed.Sizer()
	}
	if opts.Export.Logger == nil {
		opts.Export.Logger = opts.Logger
	}

	return &App{
		screen: screen,
		ed:     ed,
		opts:   opts,
		log:    opts.Logger,
	}
}

// Run processes events until the user quits or the screen is finalized.
func (a *App) Run() error {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	a.Draw()

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.HandleEvent(ev) {
			return nil
		}
		a.Draw()
	}
}

// HandleEvent applies one event. It returns true when the app should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

// canvasSize is the drawing area: every row but the status line.
func (a *App) canvasSize() (int, int) {
	w, h := a.screen.Size()
	return w, max(0, h-1)
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	prev := a.buttons
	a.buttons = buttons

	pressed := func(b tcell.ButtonMask) bool { return buttons&b != 0 && prev&b == 0 }
	held := func(b tcell.ButtonMask) bool { return buttons&b != 0 && prev&b != 0 }
	released := func(b tcell.ButtonMask) bool { return buttons&b == 0 && prev&b != 0 }

	p := ToCanvas(x, y)
	_, h := a.canvasSize()

	switch {
	case released(tcell.ButtonPrimary):
		a.ed.Release()
	case pressed(tcell.ButtonPrimary):
		if a.panel != nil || y >= h {
			return
		}
		a.ed.Press(p)
	case held(tcell.ButtonPrimary):
		a.ed.Move(p)
	case pressed(tcell.ButtonSecondary):
		if y >= h {
			return
		}
		a.openPanel(p)
	case buttons == tcell.ButtonNone:
		a.ed.Move(p)
	}
}

func (a *App) openPanel(p diagram.Point) {
	hit := a.ed.Target(p)
	a.panel = openPanel(a.ed.Drawing(), hit)
	if a.panel != nil {
		a.log.Debug("property panel opened",
			zap.Stringer("kind", hit.Kind),
			zap.Int("index", hit.Index))
	}
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	if a.showHelp {
		a.showHelp = false
		return false
	}

	if a.panel != nil {
		done, applied := a.panel.handleKey(ev)
		if applied {
			if err := a.panel.apply(a.ed); err != nil {
				a.ed.SetStatus(err.Error())
			}
		}
		if done {
			a.panel = nil
		}
		return false
	}

	if a.confirmClear {
		a.confirmClear = false
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y') {
			a.ed.Clear()
		} else {
			a.ed.SetStatus("Clear cancelled")
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyCtrlZ:
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.ed.Redo()
		} else {
			a.ed.Undo()
		}
		return false
	case tcell.KeyCtrlY:
		a.ed.Redo()
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'v':
		a.ed.SetMode(editor.ModeAddVertex)
	case 'e':
		a.ed.SetMode(editor.ModeAddEdge)
	case 'm':
		a.ed.SetMode(editor.ModeMoveVertex)
	case 'k':
		a.ed.CycleColor()
	case 'u':
		a.ed.Undo()
	case 'r':
		a.ed.Redo()
	case 'c':
		a.confirmClear = true
		a.ed.SetStatus("Clear the graph? (y/n)")
	case 's':
		a.save(export.FormatText)
	case 'p':
		a.save(export.FormatPNG)
	case 'w':
		a.save(export.FormatJSON)
	case '?':
		a.showHelp = true
	}
	return false
}

// save exports the drawing in format to OutputDir/Filename.
func (a *App) save(format export.Format) {
	path, err := a.export(format)
	switch {
	case errors.Is(err, export.ErrEmptyDrawing):
		a.ed.SetStatus("Nothing to export")
	case err != nil:
		a.ed.SetStatus(fmt.Sprintf("Export failed: %v", err))
		a.log.Error("export failed", zap.String("format", string(format)), zap.Error(err))
	default:
		a.ed.SetStatus("Saved " + filepath.Base(path))
		a.log.Info("drawing exported", zap.String("format", string(format)), zap.String("path", path))
	}
}

func (a *App) export(format export.Format) (string, error) {
	exporter, err := export.NewExporter(format, a.opts.Export)
	if err != nil {
		return "", err
	}
	data, err := exporter.Export(a.ed.Drawing())
	if err != nil {
		return "", err
	}

	path := filepath.Join(a.opts.OutputDir, a.opts.Filename+exporter.GetFileExtension())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Draw repaints the whole screen.
func (a *App) Draw() {
	a.screen.Clear()
	a.screen.HideCursor()

	w, h := a.canvasSize()
	c := cellCanvas{screen: a.screen, width: w, height: h}
	a.drawDrawing(c)
	a.drawStatus()

	if a.panel != nil {
		a.drawPanel(c)
	}
	if a.showHelp {
		a.drawHelp(c)
	}

	a.screen.Show()
}

// drawDrawing paints edges, then nodes, then arrowheads, the same order as
// the PNG export.
func (a *App) drawDrawing(c cellCanvas) {
	d := a.ed.Drawing()
	sizer := a.ed.Sizer()
	outlines := sizer.Outlines(d)

	for i, e := range d.Edges {
		pa, pb, ok := d.Endpoints(e)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(colorOf(e.Color))
		if i == a.ed.Hovered() || a.isPanelTarget(geometry.HitEdge, i) {
			style = style.Bold(true)
		}
		x1, y1 := ToCell(pa)
		x2, y2 := ToCell(pb)
		c.drawLine(x1, y1, x2, y2, style, edgeGlyph(pa, pb, e.Style))

		if e.Label != "" {
			mx, my := ToCell(pa.Midpoint(pb))
			c.drawCentered(mx, my-1, e.Label, style)
		}
	}

	for i, n := range d.Nodes {
		style := tcell.StyleDefault.Foreground(colorOf(n.Color))
		if i == a.ed.Selected() || i == a.ed.Dragged() || a.isPanelTarget(geometry.HitNode, i) {
			style = style.Reverse(true)
		}
		c.drawOutline(outlines[i], n.Center(), shapeGlyph(n.Shape), style)

		cx, cy := ToCell(n.Center())
		c.drawCentered(cx, cy, n.Label, tcell.StyleDefault.Bold(true))
	}

	arrows := geometry.Arrows(d, sizer)
	indices := make([]int, 0, len(arrows))
	for i := range arrows {
		indices = append(indices, i)
	}
	slices.Sort(indices)
	for _, i := range indices {
		head := arrows[i]
		base := head.Left.Midpoint(head.Right)
		x, y := ToCell(head.Tip)
		c.set(x, y, arrowGlyph(head.Tip.Sub(base)), tcell.StyleDefault.Foreground(colorOf(d.Edges[i].Color)))
	}
}

func (a *App) isPanelTarget(kind geometry.HitKind, i int) bool {
	return a.panel != nil && a.panel.hit.Kind == kind && a.panel.hit.Index == i
}

// drawStatus paints the bottom line: mode and status on the left, color,
// history position and key hints on the right.
func (a *App) drawStatus() {
	w, h := a.screen.Size()
	if h == 0 {
		return
	}
	y := h - 1
	bar := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, bar)
	}

	line := cellCanvas{screen: a.screen, width: w, height: h}
	left := fmt.Sprintf(" %s │ %s", a.ed.Mode(), a.ed.Status())
	line.drawText(0, y, left, bar.Bold(true))

	// Color and history position always show; key hints only when they fit.
	current, total := a.ed.HistoryStats()
	right := fmt.Sprintf("%s │ %d/%d ", colors.Name(a.ed.Color()), current, total)
	if full := right + "│ " + compactHelp() + " "; w-runewidth.StringWidth(full) > runewidth.StringWidth(left)+1 {
		right = full
	}
	line.drawText(max(0, w-runewidth.StringWidth(right)), y, right, bar)
}

// drawPanel paints the property panel in the top right corner.
func (a *App) drawPanel(c cellCanvas) {
	lines := a.panel.lines(a.ed.Drawing())
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	width += 2

	x0 := max(0, c.width-width-3)
	a.drawBox(c, x0, 0, width, lines)

	if col := a.panel.cursorColumn(); col >= 0 {
		a.screen.ShowCursor(x0+2+col, 2)
	}
}

// drawHelp paints the help overlay centered on the canvas.
func (a *App) drawHelp(c cellCanvas) {
	lines := helpLines()
	x0 := max(0, (c.width-runewidth.StringWidth(lines[0]))/2)
	y0 := max(0, (c.height-len(lines))/2)
	for i, l := range lines {
		c.drawText(x0, y0+i, l, tcell.StyleDefault)
	}
}

// drawBox frames lines with a border whose top left corner is (x0, y0).
func (a *App) drawBox(c cellCanvas, x0, y0, width int, lines []string) {
	style := tcell.StyleDefault
	for y := y0; y < y0+len(lines)+2; y++ {
		for x := x0; x < x0+width+2; x++ {
			c.set(x, y, ' ', style)
		}
	}
	for x := x0 + 1; x < x0+width+1; x++ {
		c.set(x, y0, '─', style)
		c.set(x, y0+len(lines)+1, '─', style)
	}
	for y := y0 + 1; y <= y0+len(lines); y++ {
		c.set(x0, y, '│', style)
		c.set(x0+width+1, y, '│', style)
	}
	c.set(x0, y0, '┌', style)
	c.set(x0+width+1, y0, '┐', style)
	c.set(x0, y0+len(lines)+1, '└', style)
	c.set(x0+width+1, y0+len(lines)+1, '┘', style)

	for i, l := range lines {
		lineStyle := style
		if i == 0 {
			lineStyle = style.Bold(true)
		}
		c.drawText(x0+2, y0+1+i, l, lineStyle)
	}
}

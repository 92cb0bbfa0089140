package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"graphdraw/colors"
	"graphdraw/diagram"
	"graphdraw/editor"
	"graphdraw/geometry"
)

// panel edits the properties of one node or edge. Changes are staged on a
// copy and applied as a single history step.
type panel struct {
	hit    geometry.Hit
	node   diagram.Node
	edge   diagram.Edge
	rename *lineEdit // Non-nil while the label is being edited
}

// openPanel stages the item under hit. It returns nil for a miss.
func openPanel(d *diagram.Drawing, hit geometry.Hit) *panel {
	switch hit.Kind {
	case geometry.HitNode:
		n, ok := d.Node(hit.Index)
		if !ok {
			return nil
		}
		return &panel{hit: hit, node: n}
	case geometry.HitEdge:
		if hit.Index < 0 || hit.Index >= len(d.Edges) {
			return nil
		}
		return &panel{hit: hit, edge: d.Edges[hit.Index]}
	default:
		return nil
	}
}

func (p *panel) isNode() bool { return p.hit.Kind == geometry.HitNode }

func (p *panel) label() string {
	if p.isNode() {
		return p.node.Label
	}
	return p.edge.Label
}

func (p *panel) setLabel(s string) {
	if p.isNode() {
		p.node.Label = s
	} else {
		p.edge.Label = s
	}
}

// apply writes the staged values through the editor.
func (p *panel) apply(ed *editor.Editor) error {
	if p.isNode() {
		n := p.node
		return ed.SetNode(p.hit.Index, diagram.NodeUpdate{
			Label: &n.Label,
			Color: &n.Color,
			Shape: &n.Shape,
		})
	}
	e := p.edge
	return ed.SetEdge(p.hit.Index, diagram.EdgeUpdate{
		Label:     &e.Label,
		Color:     &e.Color,
		Style:     &e.Style,
		Direction: &e.Direction,
		Mid:       &e.Mid,
	})
}

// handleKey processes a key while the panel is open. It reports done when
// the panel should close; applied is set when Enter committed the changes.
func (p *panel) handleKey(ev *tcell.EventKey) (done, applied bool) {
	if p.rename != nil {
		p.handleRenameKey(ev)
		return false, false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return true, false
	case tcell.KeyEnter:
		return true, true
	case tcell.KeyRune:
	default:
		return false, false
	}

	switch ev.Rune() {
	case 'n':
		p.rename = newLineEdit(p.label())
	case 'k':
		if p.isNode() {
			p.node.Color = colors.Next(p.node.Color)
		} else {
			p.edge.Color = colors.Next(p.edge.Color)
		}
	case 'h':
		if p.isNode() {
			p.node.Shape = p.node.Shape.Next()
		}
	case 't':
		if !p.isNode() {
			p.edge.Style = p.edge.Style.Next()
		}
	case 'd':
		if !p.isNode() {
			p.edge.Direction = p.edge.Direction.Next()
		}
	case 'i':
		if !p.isNode() {
			p.edge.Mid = !p.edge.Mid
		}
	}
	return false, false
}

func (p *panel) handleRenameKey(ev *tcell.EventKey) {
	l := p.rename
	switch ev.Key() {
	case tcell.KeyEnter:
		p.setLabel(l.String())
		p.rename = nil
	case tcell.KeyEscape:
		p.rename = nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		l.backspace()
	case tcell.KeyDelete:
		l.deleteForward()
	case tcell.KeyLeft:
		l.left()
	case tcell.KeyRight:
		l.right()
	case tcell.KeyHome, tcell.KeyCtrlA:
		l.home()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		l.end()
	case tcell.KeyCtrlW:
		l.deleteWordBackward()
	case tcell.KeyCtrlU:
		l.deleteToBeginning()
	case tcell.KeyCtrlK:
		l.deleteToEnd()
	case tcell.KeyRune:
		l.insert(ev.Rune())
	}
}

// lines renders the panel contents.
func (p *panel) lines(d *diagram.Drawing) []string {
	name := p.label()
	if p.rename != nil {
		name = p.rename.String()
	}

	if p.isNode() {
		return []string{
			fmt.Sprintf("Vertex %d", p.hit.Index),
			fmt.Sprintf("n name:  %s", name),
			fmt.Sprintf("k color: %s", colors.Name(p.node.Color)),
			fmt.Sprintf("h shape: %s", p.node.Shape),
			"Enter apply  Esc cancel",
		}
	}

	title := fmt.Sprintf("Edge %d", p.hit.Index)
	if a, ok := d.Node(p.edge.A); ok {
		if b, ok := d.Node(p.edge.B); ok {
			title = fmt.Sprintf("Edge %s - %s", a.Label, b.Label)
		}
	}
	mid := "off"
	if p.edge.Mid {
		mid = "on"
	}
	return []string{
		title,
		fmt.Sprintf("n label: %s", name),
		fmt.Sprintf("k color: %s", colors.Name(p.edge.Color)),
		fmt.Sprintf("t style: %s", p.edge.Style),
		fmt.Sprintf("d dir:   %s", p.edge.Direction),
		fmt.Sprintf("i mid:   %s", mid),
		"Enter apply  Esc cancel",
	}
}

// cursorColumn is the column of the rename cursor within its line, or -1.
func (p *panel) cursorColumn() int {
	if p.rename == nil {
		return -1
	}
	return len("n name:  ") + p.rename.cursor
}

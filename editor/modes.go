package editor

// Mode represents what a primary click does
type Mode int

const (
	ModeAddVertex  Mode = iota // Click places a node
	ModeAddEdge                // Click two nodes to connect them
	ModeMoveVertex             // Drag a node
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeAddVertex:
		return "VERTEX"
	case ModeAddEdge:
		return "EDGE"
	case ModeMoveVertex:
		return "MOVE"
	default:
		return "UNKNOWN"
	}
}

// status returns the message shown when the mode is entered
func (m Mode) status() string {
	switch m {
	case ModeAddEdge:
		return "Edge mode"
	case ModeMoveVertex:
		return "Move vertex mode"
	default:
		return "Vertex mode"
	}
}

// SetMode changes the editor mode. Any half-made edge or drag is dropped.
func (e *Editor) SetMode(mode Mode) {
	e.mode = mode
	e.selected = -1
	e.dragged = -1
	e.moved = false
	e.status = mode.status()
}

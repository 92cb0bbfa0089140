package editor

import (
	"graphdraw/diagram"
)

// DefaultHistorySize is the number of snapshots kept when none is configured.
const DefaultHistorySize = 80

// History manages undo/redo with deep-copied drawing snapshots. Snapshots
// before the cursor are the undo stack, those after it the redo stack.
type History struct {
	states  []*diagram.Drawing // Snapshots, oldest first
	current int                // Index of the snapshot matching the live drawing
	max     int                // Maximum number of snapshots to keep
}

// NewHistory creates an empty history bounded to max snapshots.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{
		states:  make([]*diagram.Drawing, 0, max),
		current: -1,
		max:     max,
	}
}

// Push records a copy of d. It reports false and changes nothing when d is
// identical to the current snapshot.
func (h *History) Push(d *diagram.Drawing) bool {
	if h.current >= 0 && h.states[h.current].Equal(d) {
		return false
	}

	// A new action invalidates redo
	if h.current < len(h.states)-1 {
		clear(h.states[h.current+1:])
		h.states = h.states[:h.current+1]
	}

	h.states = append(h.states, d.Clone())

	if len(h.states) > h.max {
		h.states[0] = nil
		h.states = h.states[1:]
	} else {
		h.current++
	}

	return true
}

// CanUndo returns true if there is a snapshot before the cursor.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if there is a snapshot after the cursor.
func (h *History) CanRedo() bool {
	return h.current >= 0 && h.current < len(h.states)-1
}

// Undo steps back one snapshot and returns a copy of it for the caller to
// install. It returns false at the oldest snapshot.
func (h *History) Undo() (*diagram.Drawing, bool) {
	if !h.CanUndo() {
		return nil, false
	}

	h.current--

	// Return a clone to prevent accidental modification of history
	return h.states[h.current].Clone(), true
}

// Redo steps forward one snapshot. It returns false at the newest snapshot.
func (h *History) Redo() (*diagram.Drawing, bool) {
	if !h.CanRedo() {
		return nil, false
	}

	h.current++

	return h.states[h.current].Clone(), true
}

// Current returns a copy of the snapshot under the cursor.
func (h *History) Current() (*diagram.Drawing, bool) {
	if h.current < 0 {
		return nil, false
	}
	return h.states[h.current].Clone(), true
}

// Clear drops every snapshot.
func (h *History) Clear() {
	clear(h.states)
	h.states = h.states[:0]
	h.current = -1
}

// Stats returns the 1-based cursor position and the number of snapshots.
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}

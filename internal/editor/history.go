package editor

import "venuelayout/internal/layouts"

// DefaultHistoryLimit is the number of undo snapshots kept.
const DefaultHistoryLimit = 50

// History is a bounded undo/redo stack of whole-layout snapshots.
//
// Snapshots handed to undo/redo are owned by the History; the layout returned
// by Undo or Redo is owned by the caller.
type History struct {
	limit int
	undo  []*layouts.VenueLayout
	redo  []*layouts.VenueLayout
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records a copy of the state before a mutation and clears the redo stack.
func (h *History) Push(before *layouts.VenueLayout) {
	h.push(before.Clone())
}

func (h *History) push(owned *layouts.VenueLayout) {
	h.undo = appendBounded(h.undo, owned, h.limit)
	h.redo = nil
}

// Undo pops the last snapshot and stores current on the redo stack.
func (h *History) Undo(current *layouts.VenueLayout) (*layouts.VenueLayout, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = appendBounded(h.redo, current, h.limit)
	return prev, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current *layouts.VenueLayout) (*layouts.VenueLayout, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = appendBounded(h.undo, current, h.limit)
	return next, true
}

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the depth of both stacks.
func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// appendBounded appends s, dropping the oldest entry when the stack is full.
func appendBounded(stack []*layouts.VenueLayout, s *layouts.VenueLayout, limit int) []*layouts.VenueLayout {
	if len(stack) >= limit {
		copy(stack, stack[len(stack)-limit+1:])
		stack = stack[:limit-1]
	}
	return append(stack, s)
}

// Package history keeps a bounded, linear undo/redo stack of full
// spreadsheet snapshots.
package history

import (
	"time"

	"github.com/aerissecure/chatedit"
)

// Entry is one applied action: the state before and after it.
type Entry struct {
	Before      chatedit.Snapshot
	After       chatedit.Snapshot
	ActionType  string
	Description string
	Timestamp   time.Time
}

// History is a stack of entries with a cursor. Entries before the cursor
// are applied; entries at or after it can be redone.
type History struct {
	entries []Entry
	cursor  int
	limit   int
	now     func() time.Time
}

// New returns an empty history keeping at most limit entries. limit <= 0
// means unbounded.
func New(limit int) *History {
	return &History{limit: limit, now: time.Now}
}

// Push records a new entry, discarding any redo tail first. When the limit
// is exceeded the oldest entry is dropped.
func (h *History) Push(before, after chatedit.Snapshot, actionType, description string) {
	h.entries = h.entries[:h.cursor]
	h.entries = append(h.entries, Entry{
		Before:      before.Clone(),
		After:       after.Clone(),
		ActionType:  actionType,
		Description: description,
		Timestamp:   h.now(),
	})
	h.cursor++
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append(h.entries[:0:0], h.entries[drop:]...)
		h.cursor -= drop
	}
}

// Undo steps back one entry and returns the state before it. It returns
// false at the bottom of the stack.
func (h *History) Undo() (chatedit.Snapshot, bool) {
	if h.cursor == 0 {
		return chatedit.Snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor].Before.Clone(), true
}

// Redo re-applies the next entry and returns the state after it. It
// returns false when there is nothing to redo.
func (h *History) Redo() (chatedit.Snapshot, bool) {
	if h.cursor == len(h.entries) {
		return chatedit.Snapshot{}, false
	}
	e := h.entries[h.cursor]
	h.cursor++
	return e.After.Clone(), true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries) }

// UndoDescription describes the entry Undo would revert.
func (h *History) UndoDescription() string {
	if !h.CanUndo() {
		return ""
	}
	return h.entries[h.cursor-1].Description
}

// RedoDescription describes the entry Redo would re-apply.
func (h *History) RedoDescription() string {
	if !h.CanRedo() {
		return ""
	}
	return h.entries[h.cursor].Description
}

// Entries returns a copy of the stack, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Cursor returns the number of applied entries.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Clear empties the stack, e.g. when a file is closed or replaced.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = 0
}

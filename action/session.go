package action

import (
	"reflect"

	"github.com/aerissecure/chatedit"
	"github.com/aerissecure/chatedit/history"
)

// Session is the calling layer of the engine: it owns the current snapshot
// and the undo history of one open file. It is not safe for concurrent
// use.
type Session struct {
	current    chatedit.Snapshot
	history    *history.History
	dispatcher *Dispatcher
}

// NewSession opens s with an empty history of at most limit entries.
func NewSession(s chatedit.Snapshot, d *Dispatcher, limit int) *Session {
	if d == nil {
		d = NewDispatcher()
	}
	return &Session{current: s.Clone(), history: history.New(limit), dispatcher: d}
}

// Current returns a copy of the current snapshot.
func (s *Session) Current() chatedit.Snapshot { return s.current.Clone() }

// History exposes the undo stack for display.
func (s *Session) History() *history.History { return s.history }

// Apply runs a against the current snapshot. Applied actions that changed
// anything become the new state and a history entry; everything else
// leaves the session as it was.
func (s *Session) Apply(a Action) Outcome {
	out := s.dispatcher.Apply(s.current, a)
	if out.Status != StatusApplied {
		return out
	}
	if !out.Changed() && reflect.DeepEqual(s.current, out.Data) {
		return out
	}
	s.history.Push(s.current, out.Data, string(a.Type), out.Description)
	s.current = out.Data.Clone()
	return out
}

// ApplyAll applies actions in order and stops at the first one that is
// not applied.
func (s *Session) ApplyAll(actions []Action) []Outcome {
	var outs []Outcome
	for _, a := range actions {
		out := s.Apply(a)
		outs = append(outs, out)
		if out.Status != StatusApplied {
			break
		}
	}
	return outs
}

// Undo reverts the last applied action and returns its description.
func (s *Session) Undo() (string, bool) {
	desc := s.history.UndoDescription()
	snap, ok := s.history.Undo()
	if !ok {
		return "", false
	}
	s.current = snap
	return desc, true
}

// Redo re-applies the last undone action and returns its description.
func (s *Session) Redo() (string, bool) {
	desc := s.history.RedoDescription()
	snap, ok := s.history.Redo()
	if !ok {
		return "", false
	}
	s.current = snap
	return desc, true
}

// Load replaces the open file, dropping the history.
func (s *Session) Load(snap chatedit.Snapshot) {
	s.current = snap.Clone()
	s.history.Clear()
}

// Close drops the history and the current snapshot.
func (s *Session) Close() {
	s.current = chatedit.Snapshot{}
	s.history.Clear()
}

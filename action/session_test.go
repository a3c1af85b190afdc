package action

import (
	"reflect"
	"testing"

	"github.com/aerissecure/chatedit"
)

func edit(ref string, v any) Action {
	return MustNew(EditCell, &Target{Type: TargetCell, Ref: ref}, map[string]any{"value": v})
}

func TestSessionUndoRedo(t *testing.T) {
	s0 := people()
	sess := NewSession(s0, nil, 0)

	if out := sess.Apply(edit("B2", 31)); out.Status != StatusApplied {
		t.Fatalf("first edit: %+v", out)
	}
	s1 := sess.Current()
	if out := sess.Apply(edit("B2", 32)); out.Status != StatusApplied {
		t.Fatalf("second edit: %+v", out)
	}
	s2 := sess.Current()

	if desc, ok := sess.Undo(); !ok || desc != "Set B2 to 32" {
		t.Fatalf("undo = %q, %v", desc, ok)
	}
	if !reflect.DeepEqual(sess.Current(), s1) {
		t.Fatalf("after undo: %v", sess.Current().Rows)
	}
	sess.Undo()
	if !reflect.DeepEqual(sess.Current(), s0) {
		t.Fatalf("after second undo: %v", sess.Current().Rows)
	}
	if _, ok := sess.Undo(); ok {
		t.Fatal("undo past the bottom")
	}
	sess.Redo()
	sess.Redo()
	if !reflect.DeepEqual(sess.Current(), s2) {
		t.Fatalf("after redo: %v", sess.Current().Rows)
	}
}

func TestSessionSkipsRejectedAndEmptyActions(t *testing.T) {
	sess := NewSession(people(), nil, 0)
	sess.Apply(parse(t, `{"type":"NOPE"}`))
	sess.Apply(parse(t, `{"type":"REMOVE_EMPTY_ROWS"}`))
	if sess.History().Len() != 0 {
		t.Fatalf("history len = %d", sess.History().Len())
	}
}

func TestSessionRecordsMetadataOnlyChanges(t *testing.T) {
	sess := NewSession(people(), nil, 0)
	out := sess.Apply(parse(t, `{"type":"DATA_VALIDATION","range":"B2:B4","validationType":"number","min":0,"max":120}`))
	if out.Status != StatusApplied || out.Changed() {
		t.Fatalf("outcome = %+v", out)
	}
	if out.Description != "Added number validation to 3 cells" {
		t.Errorf("description = %q", out.Description)
	}
	if sess.History().Len() != 1 {
		t.Fatal("validation change should be undoable")
	}
	if v := sess.Current().Validations["B3"]; v.Type != "number" || *v.Max != 120 {
		t.Fatalf("validation = %+v", v)
	}
	sess.Undo()
	if len(sess.Current().Validations) != 0 {
		t.Fatal("undo left validations behind")
	}
}

func TestApplyAllStopsAtFirstFailure(t *testing.T) {
	sess := NewSession(people(), nil, 0)
	outs := sess.ApplyAll([]Action{
		edit("A2", "Robert"),
		parse(t, `{"type":"SORT_DATA","direction":"up-ish"}`),
		edit("A3", "Alicia"),
	})
	if len(outs) != 2 || outs[1].Status != StatusRejected {
		t.Fatalf("outcomes = %+v", outs)
	}
	if got := sess.Current().Rows[1][0]; got != "Alice" {
		t.Fatalf("A3 = %v", got)
	}
}

func TestSessionLoadAndClose(t *testing.T) {
	sess := NewSession(people(), nil, 5)
	sess.Apply(edit("A2", "Bobby"))
	other := chatedit.NewSnapshot([]string{"X"}, nil)
	sess.Load(other)
	if sess.History().CanUndo() {
		t.Fatal("load should clear history")
	}
	if !reflect.DeepEqual(sess.Current(), other) {
		t.Fatal("load did not replace snapshot")
	}
	sess.Close()
	if sess.Current().ColCount() != 0 || sess.History().Len() != 0 {
		t.Fatal("close left state behind")
	}
}

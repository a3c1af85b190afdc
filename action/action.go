// Package action turns typed edit instructions, as produced by an AI
// response parser, into transformations of a chatedit.Snapshot.
package action

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type discriminates actions.
type Type string

const (
	SortData          Type = "SORT_DATA"
	FilterData        Type = "FILTER_DATA"
	RemoveDuplicates  Type = "REMOVE_DUPLICATES"
	RemoveEmptyRows   Type = "REMOVE_EMPTY_ROWS"
	FindReplace       Type = "FIND_REPLACE"
	SplitColumn       Type = "SPLIT_COLUMN"
	MergeColumns      Type = "MERGE_COLUMNS"
	RenameColumn      Type = "RENAME_COLUMN"
	InsertColumn      Type = "INSERT_COLUMN"
	DeleteColumn      Type = "DELETE_COLUMN"
	InsertRow         Type = "INSERT_ROW"
	DeleteRow         Type = "DELETE_ROW"
	EditCell          Type = "EDIT_CELL"
	ClearRange        Type = "CLEAR_RANGE"
	FillDown          Type = "FILL_DOWN"
	TextTransform     Type = "TEXT_TRANSFORM"
	FormatNumber      Type = "FORMAT_NUMBER"
	GenerateIDs       Type = "GENERATE_IDS"
	SetFormula        Type = "SET_FORMULA"
	ApplyFormula      Type = "APPLY_FORMULA"
	AddStatistics     Type = "ADD_STATISTICS"
	PivotSummary      Type = "PIVOT_SUMMARY"
	DateCalculation   Type = "DATE_CALCULATION"
	DataValidation    Type = "DATA_VALIDATION"
	RemoveValidation  Type = "REMOVE_VALIDATION"
	ConditionalFormat Type = "CONDITIONAL_FORMAT"
	FormatCells       Type = "FORMAT_CELLS"
	ClearFormat       Type = "CLEAR_FORMAT"
	MergeCells        Type = "MERGE_CELLS"
	AddSheet          Type = "ADD_SHEET"
	SwitchSheet       Type = "SWITCH_SHEET"
)

// TargetType says how Target.Ref is read.
type TargetType string

const (
	TargetCell   TargetType = "cell"   // "C5"
	TargetColumn TargetType = "column" // "C", "C:E", "A,C" or a header name
	TargetRow    TargetType = "row"    // "2,4-6" in displayed row numbers
	TargetRange  TargetType = "range"  // "A2:C10"
)

// Target identifies the cells an action affects.
type Target struct {
	Type TargetType `json:"type"`
	Ref  string     `json:"ref"`
}

func (t *Target) String() string {
	if t == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s %s", t.Type, t.Ref)
}

// Status is the lifecycle state of an action payload and of its outcome.
type Status string

const (
	StatusPending        Status = "pending"
	StatusApplied        Status = "applied"
	StatusRejected       Status = "rejected"
	StatusNotImplemented Status = "not_implemented"
	StatusFailed         Status = "failed"
)

// Action is one edit instruction. Type-specific fields sit beside type,
// target and status in the JSON object; Params keeps the whole object so
// each handler can decode the fields it needs.
type Action struct {
	Type   Type
	Target *Target
	Status Status
	Params json.RawMessage
}

type envelope struct {
	Type   Type    `json:"type"`
	Target *Target `json:"target,omitempty"`
	Status Status  `json:"status,omitempty"`
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	a.Type = Type(strings.ToUpper(strings.TrimSpace(string(env.Type))))
	a.Target = env.Target
	a.Status = env.Status
	a.Params = append(json.RawMessage(nil), data...)
	return nil
}

func (a Action) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	if len(a.Params) > 0 {
		if err := json.Unmarshal(a.Params, &fields); err != nil {
			return nil, err
		}
	}
	fields["type"] = a.Type
	if a.Target != nil {
		fields["target"] = a.Target
	} else {
		delete(fields, "target")
	}
	if a.Status != "" {
		fields["status"] = a.Status
	}
	return json.Marshal(fields)
}

// New builds an action from a params value, typically a map or a struct
// with JSON tags. A nil target means the action has none.
func New(t Type, target *Target, params any) (Action, error) {
	a := Action{Type: t, Target: target, Status: StatusPending}
	if params == nil {
		return a, nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return Action{}, fmt.Errorf("encode %s params: %w", t, err)
	}
	a.Params = raw
	return a, nil
}

// MustNew is New for literals known to encode.
func MustNew(t Type, target *Target, params any) Action {
	a, err := New(t, target, params)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseList decodes either a single action object or an array of them.
func ParseList(data []byte) ([]Action, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []Action
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode actions: %w", err)
		}
		return list, nil
	}
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return []Action{a}, nil
}

package chatedit

import (
	"reflect"
	"testing"
)

func sample() Snapshot {
	s := NewSnapshot([]string{"Name", "Age", "City"}, [][]Value{
		{"Bob", 30, "Paris"},
		{"alice", 25, "london"},
		{"Eve", nil, "Paris"},
		{"Dan", 25, ""},
	})
	s.Formulas = map[string]string{"B3": "=20+5"}
	s.Styles = map[string]CellStyle{"A2": {Bold: true}}
	s.Validations = map[string]Validation{"C4": {Type: "list", Values: []string{"Paris", "London"}}}
	s.Merges = []string{"A5:B5"}
	return s
}

func TestTransformationsDoNotMutateInput(t *testing.T) {
	cells := []CellPos{{0, 0}, {1, 1}, {2, 2}, {3, 0}}
	ops := map[string]func(Snapshot) Result{
		"sort":        func(s Snapshot) Result { return SortRows(s, 1, true) },
		"filter":      func(s Snapshot) Result { return FilterRows(s, 2, Condition{Operator: OpEquals, Value: "paris"}) },
		"dedupe":      func(s Snapshot) Result { return RemoveDuplicates(s, []int{1}) },
		"empty":       func(s Snapshot) Result { return RemoveEmptyRows(s) },
		"replace":     func(s Snapshot) Result { return FindReplace(s, FindReplaceOptions{Find: "a", Replace: "4"}) },
		"split":       func(s Snapshot) Result { return SplitColumn(s, 0, "o", 2, nil) },
		"merge":       func(s Snapshot) Result { return MergeColumns(s, []int{0, 2}, " - ", "") },
		"rename":      func(s Snapshot) Result { return RenameColumn(s, 0, "Person") },
		"insertCol":   func(s Snapshot) Result { return InsertColumn(s, 0, "New") },
		"deleteCol":   func(s Snapshot) Result { return DeleteColumn(s, 0) },
		"insertRows":  func(s Snapshot) Result { return InsertRows(s, 1, 2) },
		"deleteRows":  func(s Snapshot) Result { return DeleteRows(s, []int{0, 2}) },
		"setValue":    func(s Snapshot) Result { return SetCellValue(s, CellPos{0, 1}, 31) },
		"clear":       func(s Snapshot) Result { return ClearRange(s, cells) },
		"fill":        func(s Snapshot) Result { return FillDown(s, 1) },
		"text":        func(s Snapshot) Result { return TransformText(s, cells, TextUpper) },
		"numbers":     func(s Snapshot) Result { return FormatNumbers(s, cells, NumberCurrency, 2) },
		"ids":         func(s Snapshot) Result { return GenerateIDs(s, IDOptions{Column: -1, Prefix: "P-", Start: 1}) },
		"formula":     func(s Snapshot) Result { return SetCellFormula(s, CellPos{0, 1}, "A{row}") },
		"colFormula":  func(s Snapshot) Result { return ApplyFormulaToColumn(s, 3, "=B{row}*2", "Double") },
		"stats":       func(s Snapshot) Result { return AddStatisticsRow(s, 1, AggAverage) },
		"dates":       func(s Snapshot) Result { return CalculateDates(s, DateOptions{Column: 1, Op: DateYear}) },
		"validation":  func(s Snapshot) Result { return AddValidation(s, []string{"B2"}, Validation{Type: "number"}) },
		"unvalidate":  func(s Snapshot) Result { return RemoveValidation(s, []string{"C4"}) },
		"style":       func(s Snapshot) Result { return ApplyStyle(s, cells, CellStyle{Italic: true}) },
		"conditional": func(s Snapshot) Result { return ApplyConditionalFormat(s, cells, Condition{Operator: OpNotEmpty}, CellStyle{Background: "FFFF00"}) },
		"clearStyle":  func(s Snapshot) Result { return ClearStyles(s, cells) },
		"mergeCells":  func(s Snapshot) Result { return MergeCells(s, RangeRef{From: CellPos{0, 0}, To: CellPos{1, 1}}) },
		"addSheet":    func(s Snapshot) Result { return AddSheet(s, "Other", []string{"X"}) },
		"pivot":       func(s Snapshot) Result { r, _ := PivotSummary(s, 2, 1, AggSum); return r },
	}
	for name, op := range ops {
		s := sample()
		res := op(s)
		if !reflect.DeepEqual(s, sample()) {
			t.Errorf("%s mutated its input", name)
		}
		for _, row := range res.Data.Rows {
			if len(row) != len(res.Data.Headers) {
				t.Errorf("%s: row width %d, headers %d", name, len(row), len(res.Data.Headers))
			}
		}
		// Mutating the result must not leak back into a fresh input either.
		if len(res.Data.Rows) > 0 && len(res.Data.Rows[0]) > 0 {
			res.Data.Rows[0][0] = "changed"
		}
		if !reflect.DeepEqual(s, sample()) {
			t.Errorf("%s: result shares rows with its input", name)
		}
	}
}

package chatedit

import (
	"reflect"
	"testing"
)

func TestSortScenario(t *testing.T) {
	s := NewSnapshot([]string{"Name", "Age"}, [][]Value{{"Bob", 30}, {"Alice", 25}, {"Eve", nil}})

	asc := SortRows(s, 1, false)
	if want := [][]Value{{"Alice", 25.0}, {"Bob", 30.0}, {"Eve", nil}}; !reflect.DeepEqual(asc.Data.Rows, want) {
		t.Fatalf("ascending = %v", asc.Data.Rows)
	}
	desc := SortRows(s, 1, true)
	if want := [][]Value{{"Bob", 30.0}, {"Alice", 25.0}, {"Eve", nil}}; !reflect.DeepEqual(desc.Data.Rows, want) {
		t.Fatalf("descending = %v", desc.Data.Rows)
	}
	if len(asc.RemovedRows) != 0 {
		t.Errorf("sort removed rows: %v", asc.RemovedRows)
	}
}

func TestSortIsStable(t *testing.T) {
	s := NewSnapshot([]string{"K", "V"}, [][]Value{{"a", 1}, {"b", 2}, {"c", 1}, {"d", 2}, {"e", 1}})
	names := func(r Result) []Value {
		var out []Value
		for _, row := range r.Data.Rows {
			out = append(out, row[0])
		}
		return out
	}
	if got := names(SortRows(s, 1, false)); !reflect.DeepEqual(got, []Value{"a", "c", "e", "b", "d"}) {
		t.Errorf("ascending = %v", got)
	}
	if got := names(SortRows(s, 1, true)); !reflect.DeepEqual(got, []Value{"b", "d", "a", "c", "e"}) {
		t.Errorf("descending = %v", got)
	}
}

func TestSortMixedValues(t *testing.T) {
	s := NewSnapshot([]string{"V"}, [][]Value{{"10"}, {""}, {"apple"}, {"9"}, {"Banana"}, {nil}})
	res := SortRows(s, 0, false)
	want := [][]Value{{"9"}, {"10"}, {"apple"}, {"Banana"}, {""}, {nil}}
	if !reflect.DeepEqual(res.Data.Rows, want) {
		t.Fatalf("rows = %v", res.Data.Rows)
	}
}

func TestSortRekeysMetadata(t *testing.T) {
	res := SortRows(sample(), 1, false)
	d := res.Data
	if want := map[string]string{"B2": "=20+5"}; !reflect.DeepEqual(d.Formulas, want) {
		t.Errorf("formulas = %v", d.Formulas)
	}
	if want := map[string]CellStyle{"A4": {Bold: true}}; !reflect.DeepEqual(d.Styles, want) {
		t.Errorf("styles = %v", d.Styles)
	}
	if _, ok := d.Validations["C5"]; !ok || len(d.Validations) != 1 {
		t.Errorf("validations = %v", d.Validations)
	}
	if want := []string{"A3:B3"}; !reflect.DeepEqual(d.Merges, want) {
		t.Errorf("merges = %v", d.Merges)
	}
}

func TestFilterRows(t *testing.T) {
	s := sample()
	tests := []struct {
		cond Condition
		col  int
		want []Value // surviving names
	}{
		{Condition{Operator: OpEquals, Value: "paris"}, 2, []Value{"Bob", "Eve"}},
		{Condition{Operator: OpNotEquals, Value: "Paris"}, 2, []Value{"alice", "Dan"}},
		{Condition{Operator: OpGreaterThan, Value: 25.0}, 1, []Value{"Bob"}},
		{Condition{Operator: OpLessOrEqual, Value: "25"}, 1, []Value{"alice", "Dan"}},
		{Condition{Operator: OpContains, Value: "LON"}, 2, []Value{"alice"}},
		{Condition{Operator: OpNotContains, Value: "par"}, 2, []Value{"alice", "Dan"}},
		{Condition{Operator: OpStartsWith, Value: "e"}, 0, []Value{"Eve"}},
		{Condition{Operator: OpEmpty}, 1, []Value{"Eve"}},
		{Condition{Operator: OpNotEmpty}, 2, []Value{"Bob", "alice", "Eve"}},
		{Condition{Operator: OpBetween, Value: 26.0, Value2: "24"}, 1, []Value{"alice", "Dan"}},
	}
	for _, tt := range tests {
		res := FilterRows(s, tt.col, tt.cond)
		var got []Value
		for _, row := range res.Data.Rows {
			got = append(got, row[0])
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s %v: got %v, want %v", tt.cond.Operator, tt.cond.Value, got, tt.want)
		}
		if len(res.RemovedRows)+len(res.Data.Rows) != len(s.Rows) {
			t.Errorf("%s: removed %v", tt.cond.Operator, res.RemovedRows)
		}
	}

	if res := FilterRows(s, 9, Condition{Operator: OpEmpty}); !reflect.DeepEqual(res.Data, s) || res.Changes != nil {
		t.Error("out-of-range column should be a no-op")
	}
	if res := FilterRows(s, 0, Condition{Operator: OpGreaterThan}); !reflect.DeepEqual(res.Data, s) {
		t.Error("condition without value should be a no-op")
	}
}

func TestParseOperator(t *testing.T) {
	for in, want := range map[string]Operator{">": OpGreaterThan, "Greater Than": OpGreaterThan, "not-empty": OpNotEmpty, "<>": OpNotEquals} {
		if got, ok := ParseOperator(in); !ok || got != want {
			t.Errorf("ParseOperator(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseOperator("roughly"); ok {
		t.Error("unknown operator accepted")
	}
}

func TestRemoveDuplicatesIsIdempotent(t *testing.T) {
	s := NewSnapshot([]string{"N", "S"}, [][]Value{{1, "x"}, {1, "x"}, {2, "y"}, {1, "X"}, {2, "y"}, {"1", "x"}})
	once := RemoveDuplicates(s, nil)
	if want := [][]Value{{1.0, "x"}, {2.0, "y"}, {1.0, "X"}, {"1", "x"}}; !reflect.DeepEqual(once.Data.Rows, want) {
		t.Fatalf("rows = %v", once.Data.Rows)
	}
	if !reflect.DeepEqual(once.RemovedRows, []int{1, 4}) {
		t.Errorf("removed = %v", once.RemovedRows)
	}
	twice := RemoveDuplicates(once.Data, nil)
	if !reflect.DeepEqual(twice.Data, once.Data) || len(twice.Changes) != 0 {
		t.Fatal("second pass changed the data")
	}

	byKey := RemoveDuplicates(s, []int{0})
	if len(byKey.Data.Rows) != 3 {
		t.Errorf("dedupe on N kept %v", byKey.Data.Rows)
	}
}

func TestRemoveEmptyRows(t *testing.T) {
	s := NewSnapshot([]string{"A", "B"}, [][]Value{{"a", nil}, {nil, "  "}, {nil, nil}, {"", 0}})
	res := RemoveEmptyRows(s)
	if !reflect.DeepEqual(res.RemovedRows, []int{1, 2}) {
		t.Fatalf("removed = %v", res.RemovedRows)
	}
	if len(res.Data.Rows) != 2 {
		t.Fatalf("rows = %v", res.Data.Rows)
	}
}

func TestInsertAndDeleteRowsRekey(t *testing.T) {
	ins := InsertRows(sample(), 1, 2)
	d := ins.Data
	if len(d.Rows) != 6 || d.Rows[1][0] != nil || d.Rows[3][0] != "alice" {
		t.Fatalf("rows = %v", d.Rows)
	}
	if want := map[string]string{"B5": "=20+5"}; !reflect.DeepEqual(d.Formulas, want) {
		t.Errorf("formulas = %v", d.Formulas)
	}
	if _, ok := d.Styles["A2"]; !ok {
		t.Errorf("styles = %v", d.Styles)
	}
	if _, ok := d.Validations["C6"]; !ok {
		t.Errorf("validations = %v", d.Validations)
	}
	if want := []string{"A7:B7"}; !reflect.DeepEqual(d.Merges, want) {
		t.Errorf("merges = %v", d.Merges)
	}

	del := DeleteRows(sample(), []int{1, 42})
	d = del.Data
	if len(d.Formulas) != 0 {
		t.Errorf("formula of a deleted row survived: %v", d.Formulas)
	}
	if _, ok := d.Validations["C3"]; !ok {
		t.Errorf("validations = %v", d.Validations)
	}
	if want := []string{"A4:B4"}; !reflect.DeepEqual(d.Merges, want) {
		t.Errorf("merges = %v", d.Merges)
	}
	if !reflect.DeepEqual(del.RemovedRows, []int{1}) {
		t.Errorf("removed = %v", del.RemovedRows)
	}
}

func TestMergeDroppedWhenRowInsideDeleted(t *testing.T) {
	s := NewSnapshot([]string{"A"}, [][]Value{{1}, {2}, {3}})
	s.Merges = []string{"A2:A4"}
	if res := DeleteRows(s, []int{1}); res.Data.Merges != nil {
		t.Fatalf("merges = %v", res.Data.Merges)
	}
}

func TestSetCellValue(t *testing.T) {
	s := sample()
	res := SetCellValue(s, CellPos{Row: 1, Col: 1}, 26)
	want := []Change{
		{Ref: "B3", Before: 25.0, After: 26.0, Type: ChangeValue},
		{Ref: "B3", Before: "=20+5", After: nil, Type: ChangeFormula},
	}
	if !reflect.DeepEqual(res.Changes, want) {
		t.Fatalf("changes = %v", res.Changes)
	}

	res = SetCellValue(s, CellPos{Row: 0, Col: 2}, "=A2&\"!\"")
	if res.Data.Formulas["C2"] != "=A2&\"!\"" || res.Data.Rows[0][2] != "Paris" {
		t.Fatalf("formula edit = %v / %v", res.Data.Formulas, res.Data.Rows[0])
	}

	res = SetCellValue(s, CellPos{Row: HeaderRow, Col: 0}, "Person")
	if res.Data.Headers[0] != "Person" || res.Changes[0].Ref != "A1" {
		t.Fatalf("header edit = %v", res.Changes)
	}

	if res := SetCellValue(s, CellPos{Row: 99, Col: 0}, 1); len(res.Changes) != 0 {
		t.Fatal("out of bounds edit changed something")
	}
}

func TestClearRangeKeepsStyles(t *testing.T) {
	r, _ := ParseRange("A2:B3")
	s := sample()
	res := ClearRange(s, s.Cells(r))
	if res.Data.Rows[0][0] != nil || res.Data.Rows[1][1] != nil || res.Data.Rows[0][2] != "Paris" {
		t.Fatalf("rows = %v", res.Data.Rows)
	}
	if len(res.Data.Formulas) != 0 {
		t.Errorf("formulas = %v", res.Data.Formulas)
	}
	if _, ok := res.Data.Styles["A2"]; !ok {
		t.Error("clear dropped a style")
	}
}

func TestFillDown(t *testing.T) {
	s := NewSnapshot([]string{"G"}, [][]Value{{nil}, {"a"}, {nil}, {""}, {"b"}, {nil}})
	res := FillDown(s, 0)
	want := [][]Value{{nil}, {"a"}, {"a"}, {"a"}, {"b"}, {"b"}}
	if !reflect.DeepEqual(res.Data.Rows, want) {
		t.Fatalf("rows = %v", res.Data.Rows)
	}
	if len(res.Changes) != 3 {
		t.Errorf("changes = %v", res.Changes)
	}
}

func TestFloatLookalikeTextIsText(t *testing.T) {
	s := NewSnapshot([]string{"Name", "N"}, [][]Value{{"Nan", 1}, {"Bob", "inf"}, {"Alice", 2}})

	filtered := FilterRows(s, 0, Condition{Operator: OpEquals, Value: "nan"})
	if want := [][]Value{{"Nan", 1.0}}; !reflect.DeepEqual(filtered.Data.Rows, want) {
		t.Errorf("filter = %v, removed %v", filtered.Data.Rows, filtered.RemovedRows)
	}

	sorted := SortRows(s, 0, false)
	var names []Value
	for _, row := range sorted.Data.Rows {
		names = append(names, row[0])
	}
	if want := []Value{"Alice", "Bob", "Nan"}; !reflect.DeepEqual(names, want) {
		t.Errorf("sorted = %v", names)
	}

	total := AddStatisticsRow(s, 1, AggSum).Data
	if got := total.Rows[3][1]; got != 3.0 {
		t.Errorf("sum = %v", got)
	}

	money := FormatNumbers(s, []CellPos{{Row: 0, Col: 0}}, NumberCurrency, 2)
	if len(money.Changes) != 0 {
		t.Errorf("text formatted as currency: %v", money.Changes)
	}

	for _, in := range []string{"NaN", "Inf", "-Infinity", "1_000", "0x10", "1e", "."} {
		if _, ok := ParseNumber(in); ok {
			t.Errorf("ParseNumber(%q) accepted", in)
		}
	}
	for in, want := range map[string]float64{" 42 ": 42, "-1.5": -1.5, ".5": 0.5, "2e3": 2000, "+7.": 7} {
		if got, ok := ParseNumber(in); !ok || got != want {
			t.Errorf("ParseNumber(%q) = %v, %v", in, got, ok)
		}
	}
}

package chatedit

import (
	"reflect"
	"testing"
	"time"
)

func TestAddStatisticsRow(t *testing.T) {
	res := AddStatisticsRow(sample(), 1, AggSum)
	d := res.Data
	if len(d.Rows) != 5 {
		t.Fatalf("rows = %v", d.Rows)
	}
	if got := d.Formulas["B6"]; got != "=SUM(B2:B5)" {
		t.Errorf("formula = %q", got)
	}
	if want := []Value{"Total", 80.0, nil}; !reflect.DeepEqual(d.Rows[4], want) {
		t.Errorf("trailer = %v", d.Rows[4])
	}

	avg := AddStatisticsRow(sample(), 0, AggAverage)
	if got := avg.Data.Rows[4]; got[0] != 0.0 || got[1] != "Average" {
		t.Errorf("average of text = %v", got)
	}
	if fn, ok := ParseAggregate("mean"); !ok || fn != AggAverage {
		t.Errorf("ParseAggregate = %q, %v", fn, ok)
	}
}

func TestCreateGroupSummary(t *testing.T) {
	got := CreateGroupSummary(sample(), 2, 1, AggSum)
	want := []GroupSummary{
		{Key: "Paris", Value: 30, Count: 2},
		{Key: "london", Value: 25, Count: 1},
		{Key: BlankGroup, Value: 25, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("groups = %+v", got)
	}
	counts := CreateGroupSummary(sample(), 2, 1, AggCount)
	if counts[0].Value != 2 {
		t.Errorf("count = %+v", counts[0])
	}

	res, _ := PivotSummary(sample(), 2, 1, AggSum)
	sheet, ok := res.Data.Sheet("City Summary")
	if !ok {
		t.Fatalf("sheets = %v", res.Data.Sheets)
	}
	if want := []string{"City", "Total of Age"}; !reflect.DeepEqual(sheet.Headers, want) {
		t.Errorf("headers = %v", sheet.Headers)
	}
	if len(res.Changes) != 0 || !reflect.DeepEqual(res.Data.Rows, sample().Rows) {
		t.Error("pivot touched the active sheet")
	}
}

func TestCalculateDates(t *testing.T) {
	s := NewSnapshot([]string{"Start", "End"}, [][]Value{
		{"2024-01-25", "2024-03-25"},
		{"2024-01-01", "2024-03-01"},
		{"not a date", "2024-01-01"},
		{45292, nil},
	})
	column := func(opts DateOptions) []Value {
		res := CalculateDates(s, opts)
		var out []Value
		for _, row := range res.Data.Rows {
			out = append(out, row[opts.Column+1])
		}
		return out
	}

	if got := column(DateOptions{Column: 0, Op: DateAddDays, Amount: 10}); !reflect.DeepEqual(got, []Value{"2024-02-04", "2024-01-11", nil, "2024-01-11"}) {
		t.Errorf("add days = %v", got)
	}
	if got := column(DateOptions{Column: 0, Other: 1, Op: DateDaysBetween}); !reflect.DeepEqual(got, []Value{60.0, 60.0, nil, nil}) {
		t.Errorf("days between = %v", got)
	}
	if got := column(DateOptions{Column: 0, Op: DateWeekday}); got[1] != "Monday" {
		t.Errorf("weekday = %v", got)
	}
	if got := column(DateOptions{Column: 0, Op: DateFormat, Layout: DateLayout("DD/MM/YYYY")}); got[0] != "25/01/2024" {
		t.Errorf("format = %v", got)
	}

	res := CalculateDates(s, DateOptions{Column: 0, Op: DateYear})
	if res.Data.Headers[1] != "Start (year)" || !reflect.DeepEqual(res.NewColumns, []int{1}) {
		t.Errorf("headers = %v", res.Data.Headers)
	}
}

func TestDateSerial(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if n, ok := DateSerial(d); !ok || n != 45292 {
		t.Fatalf("DateSerial = %v, %v", n, ok)
	}
	got, ok := ParseDate(45292.0)
	if !ok || got.Format(DefaultDateLayout) != "2024-01-01" {
		t.Fatalf("ParseDate(45292) = %v, %v", got, ok)
	}
	if _, ok := ParseDate(true); ok {
		t.Error("bool parsed as a date")
	}
	if op, ok := ParseDateOp("Day of Week"); !ok || op != DateWeekday {
		t.Errorf("ParseDateOp = %q, %v", op, ok)
	}
}

func TestStyles(t *testing.T) {
	s := sample()
	res := ApplyStyle(s, []CellPos{{0, 0}, {0, 1}, {9, 9}}, CellStyle{Italic: true})
	if want := (CellStyle{Bold: true, Italic: true}); res.Data.Styles["A2"] != want {
		t.Errorf("A2 = %v", res.Data.Styles["A2"])
	}
	if len(res.Changes) != 2 || res.Changes[0].Type != ChangeStyle {
		t.Fatalf("changes = %v", res.Changes)
	}

	cond := ApplyConditionalFormat(s, s.ColumnCells(1), Condition{Operator: OpGreaterThan, Value: 26.0}, CellStyle{Background: "FF0000"})
	if len(cond.Changes) != 1 || cond.Changes[0].Ref != "B2" {
		t.Errorf("conditional = %v", cond.Changes)
	}

	cleared := ClearStyles(s, []CellPos{{0, 0}})
	if len(cleared.Data.Styles) != 0 || cleared.Changes[0].After != (*CellStyle)(nil) {
		t.Errorf("cleared = %v", cleared.Changes)
	}
}

func TestMergeCells(t *testing.T) {
	s := sample()
	r, _ := ParseRange("A2:B3")
	res := MergeCells(s, r)
	if !reflect.DeepEqual(res.Data.Merges, []string{"A5:B5", "A2:B3"}) {
		t.Fatalf("merges = %v", res.Data.Merges)
	}
	overlap, _ := ParseRange("B3:C4")
	if again := MergeCells(res.Data, overlap); !reflect.DeepEqual(again.Data.Merges, res.Data.Merges) {
		t.Errorf("overlapping merge accepted: %v", again.Data.Merges)
	}
	single, _ := ParseRange("C2")
	if res := MergeCells(s, single); len(res.Data.Merges) != 1 {
		t.Error("single cell merge accepted")
	}
}

func TestValidation(t *testing.T) {
	s := sample()
	res := AddValidation(s, []string{"B2", "B3", "Z99", "nope"}, Validation{Type: " Number "})
	if len(res.Data.Validations) != 3 || res.Data.Validations["B2"].Type != "number" {
		t.Fatalf("validations = %v", res.Data.Validations)
	}
	if len(res.Changes) != 0 {
		t.Errorf("validation produced value changes: %v", res.Changes)
	}
	if res := AddValidation(s, []string{"B2"}, Validation{Type: "list"}); !reflect.DeepEqual(res.Data, s) {
		t.Error("list without values accepted")
	}
	removed := RemoveValidation(res.Data, []string{"C4", "B2"})
	if want := []string{"B3"}; len(removed.Data.Validations) != 1 || removed.Data.Validations[want[0]].Type != "number" {
		t.Errorf("after remove = %v", removed.Data.Validations)
	}
	if !ValidType("CheckBox") || ValidType("colour") {
		t.Error("ValidType")
	}
}

func TestSheets(t *testing.T) {
	s := sample()
	res := AddSheet(s, "Other", []string{"X", "Y"})
	if !reflect.DeepEqual(res.Data.Sheets, []string{"Sheet1", "Other"}) {
		t.Fatalf("sheets = %v", res.Data.Sheets)
	}
	if dup := AddSheet(res.Data, "Sheet1", nil); !reflect.DeepEqual(dup.Data, res.Data) {
		t.Error("duplicate sheet accepted")
	}

	switched := SwitchSheet(res.Data, "Other")
	d := switched.Data
	if d.CurrentSheet != "Other" || !reflect.DeepEqual(d.Headers, []string{"X", "Y"}) || len(d.Rows) != 0 {
		t.Fatalf("active = %s %v", d.CurrentSheet, d.Headers)
	}
	parked, ok := d.Sheet("Sheet1")
	if !ok || !reflect.DeepEqual(parked.Rows, s.Rows) || parked.Formulas["B3"] != "=20+5" {
		t.Fatalf("parked sheet = %+v", parked)
	}

	back := SwitchSheet(d, "Sheet1").Data
	if !reflect.DeepEqual(back.Rows, s.Rows) || !reflect.DeepEqual(back.Merges, s.Merges) {
		t.Errorf("round trip lost data: %v", back.Rows)
	}
	if res := SwitchSheet(s, "Missing"); len(res.Changes) != 0 {
		t.Error("unknown sheet switched")
	}
}

func TestNewWorkbook(t *testing.T) {
	s := NewWorkbook([]NamedSheet{
		{Name: " Data ", Data: SheetData{Headers: []string{"A", "B"}, Rows: [][]Value{{1, "x", "extra"}}}},
		{Name: "", Data: SheetData{Headers: []string{"skip"}}},
		{Name: "Notes", Data: SheetData{Headers: []string{"N"}}},
		{Name: "Data", Data: SheetData{Headers: []string{"dup"}}},
	})
	if s.CurrentSheet != "Data" || !reflect.DeepEqual(s.Sheets, []string{"Data", "Notes"}) {
		t.Fatalf("sheets = %q %v", s.CurrentSheet, s.Sheets)
	}
	if !reflect.DeepEqual(s.Rows, [][]Value{{1.0, "x"}}) {
		t.Errorf("active rows not normalised: %v", s.Rows)
	}
	if notes, ok := s.Sheet("Notes"); !ok || notes.Headers[0] != "N" {
		t.Errorf("Notes = %+v", notes)
	}
	if _, ok := s.AllSheets["Data"]; ok {
		t.Error("active sheet also parked")
	}

	empty := NewWorkbook(nil)
	if empty.CurrentSheet != "Sheet1" || len(empty.Headers) != 0 {
		t.Errorf("empty workbook = %+v", empty)
	}
}

func TestDiffOrdering(t *testing.T) {
	before := sample()
	after := before.Clone()
	after.Headers[2] = "Town"
	after.Rows[3][0] = "Daniel"
	after.Rows[0][1] = 31.0
	after.Formulas["A2"] = "=1"
	delete(after.Formulas, "B3")
	after.Styles["C5"] = CellStyle{Bold: true}

	var refs []string
	for _, c := range Diff(before, after) {
		refs = append(refs, string(c.Type)+":"+c.Ref)
	}
	want := []string{"value:C1", "value:B2", "value:A5", "formula:A2", "formula:B3", "style:C5"}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("diff = %v", refs)
	}
	if len(Diff(before, before.Clone())) != 0 {
		t.Error("identical snapshots differ")
	}
}

package xlsx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aerissecure/chatedit"
)

func workbook() chatedit.Snapshot {
	s := chatedit.NewSnapshot([]string{"Name", "Age", "Active"}, [][]chatedit.Value{
		{"Bob", 30, true},
		{"Alice", 25, false},
		{"Total", nil, nil},
	})
	s.Formulas = map[string]string{"B4": "=SUM(B2:B3)"}
	s.Styles = map[string]chatedit.CellStyle{
		"A1": {Bold: true},
		"B2": {Background: "FF0000"},
	}
	s.Validations = map[string]chatedit.Validation{
		"A2": {Type: "list", Values: []string{"Bob", "Alice"}},
	}
	s.Merges = []string{"B1:C1"}
	return chatedit.AddSheet(s, "Other", []string{"X", "Y"}).Data
}

func roundTrip(t *testing.T, s chatedit.Snapshot) chatedit.Snapshot {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, s); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	got, err := ReadWorkbook(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}
	return got
}

func TestWorkbookRoundTrip(t *testing.T) {
	got := roundTrip(t, workbook())

	if got.CurrentSheet != "Sheet1" {
		t.Errorf("current sheet = %q", got.CurrentSheet)
	}
	if strings.Join(got.Sheets, ",") != "Sheet1,Other" {
		t.Errorf("sheets = %v", got.Sheets)
	}
	if strings.Join(got.Headers, ",") != "Name,Age,Active" {
		t.Errorf("headers = %v", got.Headers)
	}
	if len(got.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(got.Rows))
	}
	if got.Rows[0][0] != "Bob" || got.Rows[0][1] != 30.0 || got.Rows[0][2] != true {
		t.Errorf("row 0 = %v", got.Rows[0])
	}
	if got.Rows[1][2] != false {
		t.Errorf("bool cell = %#v", got.Rows[1][2])
	}
	if got.Formulas["B4"] != "=SUM(B2:B3)" {
		t.Errorf("formulas = %v", got.Formulas)
	}
	if !got.Styles["A1"].Bold {
		t.Errorf("A1 style = %v", got.Styles["A1"])
	}
	if got.Styles["B2"].Background != "FF0000" {
		t.Errorf("B2 background = %q", got.Styles["B2"].Background)
	}
	if v := got.Validations["A2"]; v.Type != "list" || strings.Join(v.Values, ",") != "Bob,Alice" {
		t.Errorf("A2 validation = %+v", v)
	}
	found := false
	for _, m := range got.Merges {
		if m == "B1:C1" {
			found = true
		}
	}
	if !found {
		t.Errorf("merges = %v", got.Merges)
	}
	other, ok := got.Sheet("Other")
	if !ok || strings.Join(other.Headers, ",") != "X,Y" {
		t.Errorf("Other = %+v, %t", other, ok)
	}
}

func TestWriteValidationBounds(t *testing.T) {
	lo, hi := 1.0, 10.0
	s := chatedit.NewSnapshot([]string{"N"}, [][]chatedit.Value{{5}, {6}})
	s.Validations = map[string]chatedit.Validation{
		"A2": {Type: "whole", Criteria: "between", Min: &lo, Max: &hi},
		"A3": {Type: "number"},
	}
	got := roundTrip(t, s)

	v, ok := got.Validations["A2"]
	if !ok || v.Type != "whole" || v.Criteria != "between" {
		t.Fatalf("A2 validation = %+v, %t", v, ok)
	}
	if v.Min == nil || *v.Min != 1 || v.Max == nil || *v.Max != 10 {
		t.Errorf("bounds = %v, %v", v.Min, v.Max)
	}
	if _, ok := got.Validations["A3"]; ok {
		t.Error("unbounded rule should not be written")
	}
}

func TestReadSheetIgnoresStyledBlankCells(t *testing.T) {
	s := chatedit.NewSnapshot([]string{"N", "M"}, [][]chatedit.Value{{5, nil}, {6, nil}})
	s.Styles = map[string]chatedit.CellStyle{
		"A2":         {Bold: true},
		"B3":         {Italic: true},
		"XFD1048576": {Background: "FFFF00"},
	}
	s.Validations = map[string]chatedit.Validation{
		"A2": {Type: "list", Values: []string{"5", "6"}},
	}
	got := roundTrip(t, s)

	if len(got.Headers) != 2 || len(got.Rows) != 2 {
		t.Fatalf("grid = %d headers x %d rows, want 2 x 2", len(got.Headers), len(got.Rows))
	}
	for i, row := range got.Rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells", i, len(row))
		}
	}
	if !got.Styles["A2"].Bold || !got.Styles["B3"].Italic {
		t.Errorf("styles inside the grid lost: %v", got.Styles)
	}
	if _, ok := got.Styles["XFD1048576"]; ok {
		t.Error("style outside the grid kept")
	}
	if _, ok := got.Validations["A2"]; !ok {
		t.Errorf("validations = %v", got.Validations)
	}
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	data := []byte("not a zip file")
	if _, err := ReadWorkbook(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Fatal("expected an error")
	}
}

func TestBuildModel(t *testing.T) {
	s := chatedit.NewSnapshot([]string{"A", "B"}, [][]chatedit.Value{
		{"wide value here", 1},
		{"x", nil},
	})
	s.Merges = []string{"A3:B3"}
	s.Formulas = map[string]string{"B3": "=B2*2"}
	d, _ := s.Sheet(s.CurrentSheet)

	m := BuildModel("Data", d, map[string]bool{"B2": true})
	if len(m.Rows) != 3 || !m.Rows[0].Header {
		t.Fatalf("rows = %v", m.Rows)
	}
	master := m.Rows[2].Cells[0]
	if master == nil || master.ColSpan != 2 || master.RowSpan != 1 {
		t.Errorf("merge master = %v", master)
	}
	if m.Rows[2].Cells[1] != nil {
		t.Error("covered cell should be nil")
	}
	if c := m.Rows[1].Cells[1]; !c.Changed || c.Value != "1" {
		t.Errorf("B2 = %v", c)
	}
	if m.ColWidths[0] <= m.ColWidths[1] {
		t.Errorf("widths = %v", m.ColWidths)
	}
	if m.ColWidths[1] != minColWidth {
		t.Errorf("narrow column width = %v", m.ColWidths[1])
	}
}

func TestRenderHTML(t *testing.T) {
	s := chatedit.NewSnapshot([]string{"Name", "Note"}, [][]chatedit.Value{
		{"<b>", "line one\nline two"},
		{"Eve", "ok"},
	})
	s.Styles = map[string]chatedit.CellStyle{"A2": {Italic: true, FontColor: "00ff00"}}
	s = chatedit.AddSheet(s, "Hidden", []string{"Z"}).Data

	out := RenderHTML(s, RenderOptions{Highlight: []string{"b3", "junk"}, HighlightColor: "#123456"})
	for _, want := range []string{
		"&lt;b&gt;",
		"line one<br>line two",
		"outline:2px solid #123456",
		"font-style:italic;",
		"color:#00FF00;",
		`data-name="Sheet1"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, `data-name="Hidden"`) {
		t.Error("inactive sheet rendered without AllSheets")
	}
	var highlighted bool
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, `data-cell="B3"`) {
			highlighted = strings.Contains(line, " changed\"")
		}
	}
	if !highlighted {
		t.Error("B3 not flagged as changed")
	}

	all := RenderHTML(s, RenderOptions{AllSheets: true, HighlightColor: "red;}"})
	if !strings.Contains(all, `data-name="Hidden"`) {
		t.Error("AllSheets did not render the inactive sheet")
	}
	if !strings.Contains(all, "outline:2px solid #"+DefaultHighlight) {
		t.Error("invalid highlight colour was not replaced by the default")
	}
}

func TestSanitizeColor(t *testing.T) {
	tests := map[string]string{
		"#abc":       "ABC",
		"a1b2c3":     "A1B2C3",
		"red":        "",
		"123456;x:y": "",
		" #FFFFFF ":  "FFFFFF",
		"1234":       "",
	}
	for in, want := range tests {
		if got := sanitizeColor(in); got != want {
			t.Errorf("sanitizeColor(%q) = %q, want %q", in, got, want)
		}
	}
}

package chatedit

import (
	"reflect"
	"testing"
)

func TestColumnLetterRoundTrip(t *testing.T) {
	for n := 0; n < 20000; n++ {
		letters := ColumnLetter(n)
		got, ok := ColumnIndex(letters)
		if !ok || got != n {
			t.Fatalf("ColumnIndex(ColumnLetter(%d)=%q) = %d, %v", n, letters, got, ok)
		}
	}
	cases := map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for n, want := range cases {
		if got := ColumnLetter(n); got != want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", n, got, want)
		}
	}
	if ColumnLetter(-1) != "" {
		t.Error("negative index should give empty letters")
	}
}

func TestCellRef(t *testing.T) {
	if got := CellRef(2, 0); got != "C2" {
		t.Fatalf("CellRef(2, 0) = %q", got)
	}
	p, ok := ParseCellRef("C2")
	if !ok || p != (CellPos{Row: 0, Col: 2}) {
		t.Fatalf("ParseCellRef(C2) = %+v, %v", p, ok)
	}

	valid := map[string]CellPos{
		"a1":           {Row: HeaderRow, Col: 0},
		"$B$10":        {Row: 8, Col: 1},
		"Sheet1!AA3":   {Row: 1, Col: 26},
		"'My Data'!c4": {Row: 2, Col: 2},
	}
	for ref, want := range valid {
		if got, ok := ParseCellRef(ref); !ok || got != want {
			t.Errorf("ParseCellRef(%q) = %+v, %v; want %+v", ref, got, ok, want)
		}
	}
	for _, bad := range []string{"", "C", "2", "C0", "C-1", "1C", "ABCDEFGH1", "C2:D3"} {
		if _, ok := ParseCellRef(bad); ok {
			t.Errorf("ParseCellRef(%q) should fail", bad)
		}
	}
}

func TestParseCellRefWideColumns(t *testing.T) {
	for _, col := range []int{702, 18278, 1 << 20} {
		ref := CellRef(col, 0)
		p, ok := ParseCellRef(ref)
		if !ok || p != (CellPos{Row: 0, Col: col}) {
			t.Errorf("ParseCellRef(%q) = %+v, %v", ref, p, ok)
		}
		r, ok := ParseRange(ColumnLetter(col))
		if !ok || !r.Columns || r.From.Col != col {
			t.Errorf("ParseRange(%q) = %+v, %v", ColumnLetter(col), r, ok)
		}
	}
	if ref := CellRef(18278, 0); ref != "AAAA2" {
		t.Errorf("CellRef(18278, 0) = %q", ref)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want RangeRef
	}{
		{"A2:C10", RangeRef{From: CellPos{0, 0}, To: CellPos{8, 2}}},
		{"C10:A2", RangeRef{From: CellPos{0, 0}, To: CellPos{8, 2}}},
		{"B3", RangeRef{From: CellPos{1, 1}, To: CellPos{1, 1}}},
		{"B:D", RangeRef{From: CellPos{Col: 1}, To: CellPos{Col: 3}, Columns: true}},
		{"c", RangeRef{From: CellPos{Col: 2}, To: CellPos{Col: 2}, Columns: true}},
	}
	for _, tt := range tests {
		got, ok := ParseRange(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseRange(%q) = %+v, %v; want %+v", tt.in, got, ok, tt.want)
		}
	}
	for _, bad := range []string{"", "A1:B2:C3", "A2:", "2:4"} {
		if _, ok := ParseRange(bad); ok {
			t.Errorf("ParseRange(%q) should fail", bad)
		}
	}
	if got := (RangeRef{From: CellPos{0, 0}, To: CellPos{8, 2}}).String(); got != "A2:C10" {
		t.Errorf("String() = %q", got)
	}
}

func TestExpandSpecs(t *testing.T) {
	if got := ExpandRowSpec("2,4-6", 10); !reflect.DeepEqual(got, []int{0, 2, 3, 4}) {
		t.Errorf("rows = %v", got)
	}
	if got := ExpandRowSpec("6-4, 5, x, 1, 99, 3-", 5); !reflect.DeepEqual(got, []int{2, 3, 4}) {
		t.Errorf("noisy rows = %v", got)
	}
	if got := ExpandColumnSpec("A,C-E", 4); !reflect.DeepEqual(got, []int{0, 2, 3}) {
		t.Errorf("cols = %v", got)
	}
	if got := ExpandColumnSpec("?,,", 4); got != nil {
		t.Errorf("garbage cols = %v", got)
	}
}

func TestResolveColumn(t *testing.T) {
	s := NewSnapshot([]string{"Name", "B", "email"}, nil)
	tests := map[string]int{"Name": 0, "name": 0, "B": 1, "C": 2, "EMAIL": 2, "c7": 2, "$A": 0}
	for ref, want := range tests {
		if got, ok := s.ResolveColumn(ref); !ok || got != want {
			t.Errorf("ResolveColumn(%q) = %d, %v; want %d", ref, got, ok, want)
		}
	}
	for _, bad := range []string{"", "D", "Phone", "D2"} {
		if _, ok := s.ResolveColumn(bad); ok {
			t.Errorf("ResolveColumn(%q) should fail", bad)
		}
	}
}

func TestCells(t *testing.T) {
	s := NewSnapshot([]string{"A", "B"}, [][]Value{{1, 2}, {3, 4}})
	r, _ := ParseRange("A1:C9")
	got := s.Cells(r)
	want := []CellPos{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Cells = %v", got)
	}
}

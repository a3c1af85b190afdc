package chatedit

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// HeaderRow is the CellPos row of the header line (spreadsheet row 1).
const HeaderRow = -1

// rowOffset maps a data row index to its displayed row number.
const rowOffset = 2

// maxColumnLetters is the length of the letters of the largest column index
// ColumnLetter produces ("MWLQKWV").
const maxColumnLetters = 7

var (
	lettersRe = regexp.MustCompile(`^[A-Za-z]+$`)
	cellRefRe = regexp.MustCompile(`^(?:(?:'[^']+'|[^!]+)!)?\$?([A-Za-z]{1,7})\$?([0-9]+)$`)
	columnRe  = regexp.MustCompile(`^(?:(?:'[^']+'|[^!]+)!)?\$?([A-Za-z]{1,7})$`)
)

// CellPos addresses one cell. Row is the data row index (HeaderRow for the
// header line), Col the zero-based column.
type CellPos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Ref returns the display reference of p.
func (p CellPos) Ref() string {
	return CellRef(p.Col, p.Row)
}

// ColumnLetter converts a zero-based column index to letters (0 -> "A",
// 26 -> "AA"). Negative indices yield "".
func ColumnLetter(n int) string {
	if n < 0 || n > math.MaxUint32 {
		return ""
	}
	return reference.IndexToColumn(uint32(n))
}

// ColumnIndex converts column letters to a zero-based index. Letters
// longer than maxColumnLetters are rejected.
func ColumnIndex(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !lettersRe.MatchString(s) || len(s) > maxColumnLetters {
		return 0, false
	}
	return int(reference.ColumnToIndex(strings.ToUpper(s))), true
}

// CellRef builds the display reference of data cell (col, row). Data row 0
// is spreadsheet row 2 because row 1 holds the headers.
func CellRef(col, row int) string {
	return ColumnLetter(col) + strconv.Itoa(row+rowOffset)
}

// HeaderRef is the reference of the header cell of col.
func HeaderRef(col int) string {
	return ColumnLetter(col) + "1"
}

// ParseCellRef is the inverse of CellRef. It accepts '$' anchors, a sheet
// prefix and lower-case letters. Row 1 parses to HeaderRow. Callers must
// treat false as "skip".
func ParseCellRef(ref string) (CellPos, bool) {
	m := cellRefRe.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return CellPos{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return CellPos{}, false
	}
	col, ok := ColumnIndex(m[1])
	if !ok {
		return CellPos{}, false
	}
	return CellPos{Row: n - rowOffset, Col: col}, true
}

// RangeRef is a rectangular block of cells. When Columns is set the range
// spans whole columns and the row bounds are ignored.
type RangeRef struct {
	From    CellPos
	To      CellPos
	Columns bool
}

// ParseRange parses "A2:C10", "B:D", "C" or a single cell reference.
// Corners given in reverse order are normalised.
func ParseRange(ref string) (RangeRef, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return RangeRef{}, false
	}
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return RangeRef{}, false
	}
	if len(parts) == 1 {
		if p, ok := ParseCellRef(parts[0]); ok {
			return RangeRef{From: p, To: p}, true
		}
		if m := columnRe.FindStringSubmatch(parts[0]); m != nil {
			c, _ := ColumnIndex(m[1])
			return RangeRef{From: CellPos{Col: c}, To: CellPos{Col: c}, Columns: true}, true
		}
		return RangeRef{}, false
	}
	a, aok := ParseCellRef(parts[0])
	b, bok := ParseCellRef(parts[1])
	if aok && bok {
		return RangeRef{
			From: CellPos{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
			To:   CellPos{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
		}, true
	}
	ma := columnRe.FindStringSubmatch(strings.TrimSpace(parts[0]))
	mb := columnRe.FindStringSubmatch(strings.TrimSpace(parts[1]))
	if ma == nil || mb == nil {
		return RangeRef{}, false
	}
	ca, _ := ColumnIndex(ma[1])
	cb, _ := ColumnIndex(mb[1])
	return RangeRef{From: CellPos{Col: min(ca, cb)}, To: CellPos{Col: max(ca, cb)}, Columns: true}, true
}

func (r RangeRef) String() string {
	if r.Columns {
		return ColumnLetter(r.From.Col) + ":" + ColumnLetter(r.To.Col)
	}
	if r.From == r.To {
		return r.From.Ref()
	}
	return r.From.Ref() + ":" + r.To.Ref()
}

// Cells lists the data cells of r that exist in s, row-major. Header cells
// are never included.
func (s Snapshot) Cells(r RangeRef) []CellPos {
	fromRow, toRow := max(r.From.Row, 0), r.To.Row
	if r.Columns {
		fromRow, toRow = 0, len(s.Rows)-1
	}
	toRow = min(toRow, len(s.Rows)-1)
	fromCol, toCol := max(r.From.Col, 0), min(r.To.Col, len(s.Headers)-1)
	var out []CellPos
	for row := fromRow; row <= toRow; row++ {
		for col := fromCol; col <= toCol; col++ {
			out = append(out, CellPos{Row: row, Col: col})
		}
	}
	return out
}

// ColumnCells lists every data cell of col.
func (s Snapshot) ColumnCells(col int) []CellPos {
	if col < 0 || col >= len(s.Headers) {
		return nil
	}
	out := make([]CellPos, len(s.Rows))
	for i := range s.Rows {
		out[i] = CellPos{Row: i, Col: col}
	}
	return out
}

// RowCells lists every cell of the given data rows.
func (s Snapshot) RowCells(rows []int) []CellPos {
	var out []CellPos
	for _, r := range rows {
		if r < 0 || r >= len(s.Rows) {
			continue
		}
		for c := range s.Headers {
			out = append(out, CellPos{Row: r, Col: c})
		}
	}
	return out
}

// ExpandRowSpec turns "2,4-6" (displayed row numbers) into ascending data
// row indices. Malformed and out-of-range tokens are dropped.
func ExpandRowSpec(spec string, rowCount int) []int {
	return expandSpec(spec, func(tok string) (int, bool) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return 0, false
		}
		return n - rowOffset, true
	}, rowCount)
}

// ExpandColumnSpec turns "A,C-E" into ascending column indices. Malformed
// and out-of-range tokens are dropped.
func ExpandColumnSpec(spec string, colCount int) []int {
	return expandSpec(spec, ColumnIndex, colCount)
}

func expandSpec(spec string, parse func(string) (int, bool), limit int) []int {
	seen := make(map[int]bool)
	var out []int
	add := func(i int) {
		if i >= 0 && i < limit && !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(tok, "-")
		if !isRange {
			if i, ok := parse(tok); ok {
				add(i)
			}
			continue
		}
		a, aok := parse(strings.TrimSpace(lo))
		b, bok := parse(strings.TrimSpace(hi))
		if !aok || !bok {
			continue
		}
		if a > b {
			a, b = b, a
		}
		for i := max(a, 0); i <= min(b, limit-1); i++ {
			add(i)
		}
	}
	slices.Sort(out)
	return out
}

// ColumnByName finds a column by header text. Exact matches win over
// case-insensitive ones.
func (s Snapshot) ColumnByName(name string) (int, bool) {
	name = strings.TrimSpace(name)
	if i := slices.Index(s.Headers, name); i >= 0 {
		return i, true
	}
	for i, h := range s.Headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, true
		}
	}
	return 0, false
}

// ResolveColumn accepts a header name, column letters or a "B2"-style cell
// reference and returns the column index if it exists in s.
func (s Snapshot) ResolveColumn(ref string) (int, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, false
	}
	if i := slices.Index(s.Headers, ref); i >= 0 {
		return i, true
	}
	if m := columnRe.FindStringSubmatch(ref); m != nil {
		if c, ok := ColumnIndex(m[1]); ok && c < len(s.Headers) {
			return c, true
		}
	}
	if p, ok := ParseCellRef(ref); ok && p.Col < len(s.Headers) {
		return p.Col, true
	}
	return s.ColumnByName(ref)
}

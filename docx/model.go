package docx

import (
	"fmt"
	"strings"
)

// Intermediate representation of the tables found in a DOCX body.
//
// Only text survives: run formatting, shading and widths are dropped because
// a snapshot keeps values and a handful of styles, none of which Word tables
// map onto cleanly.

// TableCell is the text of one cell plus its horizontal span.
type TableCell struct {
	Text    string
	ColSpan int // 1 if not merged
}

// Table is one <w:tbl> in document order.
type Table struct {
	Caption string // nearest heading or title paragraph before the table
	Rows    [][]TableCell
}

func (t Table) String() string {
	return fmt.Sprintf("Caption: %q, Rows: %d", t.Caption, len(t.Rows))
}

// Width is the number of grid columns of the widest row.
func (t Table) Width() int {
	w := 0
	for _, row := range t.Rows {
		n := 0
		for _, c := range row {
			n += max(c.ColSpan, 1)
		}
		w = max(w, n)
	}
	return w
}

// Grid flattens the table to Width columns. A merged cell keeps its text in
// its first column and leaves the rest blank.
func (t Table) Grid() [][]string {
	w := t.Width()
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		line := make([]string, w)
		col := 0
		for _, c := range row {
			if col < w {
				line[col] = strings.TrimSpace(c.Text)
			}
			col += max(c.ColSpan, 1)
		}
		out[i] = line
	}
	return out
}

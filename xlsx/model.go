package xlsx

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aerissecure/chatedit"
)

// Intermediate representation used by the HTML renderer.

// RenderCell is the IR for a single cell (or merged master).
type RenderCell struct {
	Ref     string // e.g. "A1"
	Value   string // already formatted value
	Formula string
	ColSpan int // 1 if not merged
	RowSpan int // 1 if not merged
	Style   chatedit.CellStyle
	Changed bool // highlighted as recently edited
}

func (c RenderCell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %s, ColSpan: %d, RowSpan: %d, Changed: %t, Style: %s", c.Ref, c.Value, c.ColSpan, c.RowSpan, c.Changed, c.Style.String())
}

// RenderRow represents one logical row in a sheet.
type RenderRow struct {
	Header bool
	Cells  []*RenderCell // length == column count; nil for cells covered by a merge
}

// RenderSheet is the intermediate representation of a worksheet.
type RenderSheet struct {
	Name      string
	ColWidths []float64 // per column pixel widths
	Rows      []RenderRow
}

func (s RenderSheet) String() string {
	return fmt.Sprintf("Name: %s, ColWidths: %v, Rows: %d", s.Name, s.ColWidths, len(s.Rows))
}

// WorkbookModel is the top-level IR containing all rendered sheets.
type WorkbookModel struct {
	Sheets []RenderSheet
}

const (
	pxPerChar   = 7.0
	minColWidth = 64.0
	maxColWidth = 320.0
)

// BuildModel lays out the sheet d, called name, for rendering. Cells whose reference
// is in changed are flagged.
func BuildModel(name string, d chatedit.SheetData, changed map[string]bool) RenderSheet {
	cols := len(d.Headers)
	rs := RenderSheet{Name: name, ColWidths: make([]float64, cols)}

	// --- process merges ---
	mergeMaster := make(map[string]struct{ rowSpan, colSpan int })
	skipCells := make(map[string]bool)
	for _, m := range d.Merges {
		rng, ok := chatedit.ParseRange(m)
		if !ok || rng.Columns {
			continue
		}
		mergeMaster[rng.From.Ref()] = struct{ rowSpan, colSpan int }{rng.To.Row - rng.From.Row + 1, rng.To.Col - rng.From.Col + 1}
		for r := rng.From.Row; r <= rng.To.Row; r++ {
			for c := rng.From.Col; c <= rng.To.Col; c++ {
				if r == rng.From.Row && c == rng.From.Col {
					continue
				}
				skipCells[chatedit.CellPos{Row: r, Col: c}.Ref()] = true
			}
		}
	}

	cell := func(ref, value string) *RenderCell {
		if skipCells[ref] {
			return nil
		}
		rc := &RenderCell{
			Ref:     ref,
			Value:   value,
			Formula: d.Formulas[ref],
			ColSpan: 1,
			RowSpan: 1,
			Style:   d.Styles[ref],
			Changed: changed[ref],
		}
		if rc.Value == "" && rc.Formula != "" {
			rc.Value = rc.Formula
		}
		if info, ok := mergeMaster[ref]; ok {
			rc.RowSpan = info.rowSpan
			rc.ColSpan = info.colSpan
		}
		return rc
	}
	widen := func(col int, text string) {
		longest := 0
		for _, line := range strings.Split(text, "\n") {
			longest = max(longest, utf8.RuneCountInString(line))
		}
		rs.ColWidths[col] = min(max(rs.ColWidths[col], float64(longest)*pxPerChar+16), maxColWidth)
	}

	header := RenderRow{Header: true, Cells: make([]*RenderCell, cols)}
	for c, h := range d.Headers {
		header.Cells[c] = cell(chatedit.HeaderRef(c), h)
		widen(c, h)
	}
	rs.Rows = append(rs.Rows, header)

	for r, row := range d.Rows {
		rr := RenderRow{Cells: make([]*RenderCell, cols)}
		for c := 0; c < cols && c < len(row); c++ {
			text := chatedit.Display(row[c])
			rr.Cells[c] = cell(chatedit.CellRef(c, r), text)
			widen(c, text)
		}
		rs.Rows = append(rs.Rows, rr)
	}

	for c := range rs.ColWidths {
		rs.ColWidths[c] = max(rs.ColWidths[c], minColWidth)
	}
	return rs
}

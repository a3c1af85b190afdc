package chatedit

import (
	"strconv"
	"strings"
)

// RowPlaceholder is replaced with the displayed row number of each cell a
// formula is written to.
const RowPlaceholder = "{row}"

// NormalizeFormula trims f and makes sure it starts with '='.
func NormalizeFormula(f string) string {
	f = strings.TrimSpace(f)
	if f == "" || strings.HasPrefix(f, "=") {
		return f
	}
	return "=" + f
}

func interpolateRow(f string, row int) string {
	return strings.ReplaceAll(f, RowPlaceholder, strconv.Itoa(row+rowOffset))
}

// SetCellFormula stores formula at p after substituting {row}. The formula
// is not evaluated; the cell value is left for the renderer to compute.
func SetCellFormula(s Snapshot, p CellPos, formula string) Result {
	formula = NormalizeFormula(formula)
	if !s.InBounds(p) || formula == "" {
		return noop(s)
	}
	out := s.Clone()
	out.setFormula(p.Ref(), interpolateRow(formula, p.Row))
	return finish(s, out)
}

// ApplyFormulaToColumn writes formula into every data row of col, with {row}
// substituted per row. col equal to the column count adds a new column
// named header first.
func ApplyFormulaToColumn(s Snapshot, col int, formula, header string) Result {
	formula = NormalizeFormula(formula)
	if col < 0 || col > len(s.Headers) || formula == "" {
		return noop(s)
	}
	out := s.Clone()
	res := Result{}
	if col == len(s.Headers) {
		if strings.TrimSpace(header) == "" {
			header = "Formula"
		}
		out.insertColumn(col, header, nil)
		res.NewColumns = []int{col}
	}
	for r := range out.Rows {
		out.setFormula(CellRef(col, r), interpolateRow(formula, r))
	}
	res.Data = out
	res.Changes = Diff(s, out)
	return res
}

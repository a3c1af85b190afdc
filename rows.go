package chatedit

import "strings"

// InsertRows adds count blank rows before data row at. at equal to the row
// count appends.
func InsertRows(s Snapshot, at, count int) Result {
	if at < 0 || at > len(s.Rows) || count <= 0 {
		return noop(s)
	}
	order := make([]int, 0, len(s.Rows)+count)
	for i := range len(s.Rows) + count {
		switch {
		case i < at:
			order = append(order, i)
		case i < at+count:
			order = append(order, -1)
		default:
			order = append(order, i-count)
		}
	}

	out := s.Clone()
	rows := make([][]Value, len(order))
	for i, was := range order {
		if was < 0 {
			rows[i] = make([]Value, len(out.Headers))
			continue
		}
		rows[i] = out.Rows[was]
	}
	out.Rows = rows
	out.remapRows(order)
	return finish(s, out)
}

// DeleteRows removes the given data rows. Unknown indices are ignored.
func DeleteRows(s Snapshot, rows []int) Result {
	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r >= 0 && r < len(s.Rows) {
			drop[r] = true
		}
	}
	if len(drop) == 0 {
		return noop(s)
	}
	var order []int
	for i := range s.Rows {
		if !drop[i] {
			order = append(order, i)
		}
	}
	return reorder(s, order)
}

// SetCellValue writes v at p. A string starting with '=' is stored as a
// formula instead. Writing a plain value clears any formula on the cell.
// HeaderRow positions rename the column.
func SetCellValue(s Snapshot, p CellPos, v Value) Result {
	if p.Row == HeaderRow && p.Col >= 0 && p.Col < len(s.Headers) {
		return RenameColumn(s, p.Col, Display(v))
	}
	if !s.InBounds(p) {
		return noop(s)
	}
	if text, ok := v.(string); ok && strings.HasPrefix(strings.TrimSpace(text), "=") {
		return SetCellFormula(s, p, text)
	}
	out := s.Clone()
	out.Rows[p.Row][p.Col] = NormalizeValue(v)
	delete(out.Formulas, p.Ref())
	return finish(s, out)
}

// ClearRange empties the given cells and drops their formulas. Styles stay.
func ClearRange(s Snapshot, cells []CellPos) Result {
	out := s.Clone()
	for _, p := range cells {
		if !out.InBounds(p) {
			continue
		}
		out.Rows[p.Row][p.Col] = nil
		delete(out.Formulas, p.Ref())
	}
	return finish(s, out)
}

// FillDown copies the last non-blank value of col into the blank cells
// below it.
func FillDown(s Snapshot, col int) Result {
	if col < 0 || col >= len(s.Headers) {
		return noop(s)
	}
	out := s.Clone()
	var last Value
	for r := range out.Rows {
		v := out.Rows[r][col]
		if !IsBlank(v) {
			last = v
			continue
		}
		if last != nil {
			out.Rows[r][col] = last
		}
	}
	return finish(s, out)
}

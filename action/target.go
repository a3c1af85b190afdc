package action

import (
	"strings"

	"github.com/aerissecure/chatedit"
)

// Cells resolves t to the existing data cells it covers, row-major.
// Unresolvable targets yield nil.
func (t *Target) Cells(s chatedit.Snapshot) []chatedit.CellPos {
	if t == nil {
		return nil
	}
	switch t.Type {
	case TargetCell:
		p, ok := chatedit.ParseCellRef(t.Ref)
		if !ok || !s.InBounds(p) {
			return nil
		}
		return []chatedit.CellPos{p}
	case TargetColumn:
		var out []chatedit.CellPos
		for _, c := range t.Columns(s) {
			out = append(out, s.ColumnCells(c)...)
		}
		return out
	case TargetRow:
		return s.RowCells(t.Rows(s))
	case TargetRange:
		r, ok := chatedit.ParseRange(t.Ref)
		if !ok {
			return nil
		}
		return s.Cells(r)
	}
	return nil
}

// Column resolves t to a single column: the column of a cell, the first
// column of a range or column list.
func (t *Target) Column(s chatedit.Snapshot) (int, bool) {
	cols := t.Columns(s)
	if len(cols) == 0 {
		return 0, false
	}
	return cols[0], true
}

// Columns resolves t to column indices in ascending order.
func (t *Target) Columns(s chatedit.Snapshot) []int {
	if t == nil {
		return nil
	}
	switch t.Type {
	case TargetColumn:
		if c, ok := s.ResolveColumn(t.Ref); ok {
			return []int{c}
		}
		if r, ok := chatedit.ParseRange(t.Ref); ok && r.Columns {
			return span(r.From.Col, min(r.To.Col, s.ColCount()-1))
		}
		return resolveColumns(s, strings.Split(t.Ref, ","))
	case TargetCell, TargetRange:
		r, ok := chatedit.ParseRange(t.Ref)
		if !ok {
			return nil
		}
		return span(r.From.Col, min(r.To.Col, s.ColCount()-1))
	}
	return nil
}

// Rows resolves t to data row indices in ascending order.
func (t *Target) Rows(s chatedit.Snapshot) []int {
	if t == nil {
		return nil
	}
	switch t.Type {
	case TargetRow:
		return chatedit.ExpandRowSpec(t.Ref, s.RowCount())
	case TargetCell, TargetRange:
		r, ok := chatedit.ParseRange(t.Ref)
		if !ok || r.Columns {
			return nil
		}
		return span(max(r.From.Row, 0), min(r.To.Row, s.RowCount()-1))
	}
	return nil
}

func span(from, to int) []int {
	var out []int
	for i := max(from, 0); i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// resolveColumns resolves each name, dropping the unknown ones and
// duplicates while keeping the given order.
func resolveColumns(s chatedit.Snapshot, names []string) []int {
	seen := make(map[int]bool)
	var out []int
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		if c, ok := s.ResolveColumn(n); ok && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// pickColumn resolves an explicit column parameter, falling back to the
// target.
func pickColumn(s chatedit.Snapshot, name string, t *Target) (int, bool) {
	if strings.TrimSpace(name) != "" {
		return s.ResolveColumn(name)
	}
	return t.Column(s)
}

// pickColumns is pickColumn for column lists.
func pickColumns(s chatedit.Snapshot, names []string, t *Target) []int {
	if len(names) > 0 {
		return resolveColumns(s, names)
	}
	return t.Columns(s)
}

// pickCells resolves the cells an action works on: the target, else the
// named column, else every data cell.
func pickCells(s chatedit.Snapshot, column string, t *Target) []chatedit.CellPos {
	if t != nil {
		return t.Cells(s)
	}
	if strings.TrimSpace(column) != "" {
		c, ok := s.ResolveColumn(column)
		if !ok {
			return nil
		}
		return s.ColumnCells(c)
	}
	return s.Cells(chatedit.RangeRef{To: chatedit.CellPos{Row: s.RowCount() - 1, Col: s.ColCount() - 1}})
}

// hasTarget reports whether t names something, used by payload checks.
func hasTarget(t *Target) bool {
	return t != nil && strings.TrimSpace(t.Ref) != ""
}

package chatedit

import (
	"fmt"
	"slices"
	"strings"
)

// insertColumn adds a column at index at (0..len(Headers)) in place and
// re-keys column metadata. values may be shorter than Rows.
func (s *Snapshot) insertColumn(at int, header string, values []Value) {
	order := make([]int, 0, len(s.Headers)+1)
	for c := range s.Headers {
		if c == at {
			order = append(order, -1)
		}
		order = append(order, c)
	}
	if at == len(s.Headers) {
		order = append(order, -1)
	}

	s.Headers = slices.Insert(s.Headers, at, header)
	for r := range s.Rows {
		var v Value
		if r < len(values) {
			v = values[r]
		}
		s.Rows[r] = slices.Insert(s.Rows[r], at, v)
	}
	s.remapCols(order)
}

func (s *Snapshot) deleteColumn(col int) {
	order := make([]int, 0, len(s.Headers)-1)
	for c := range s.Headers {
		if c != col {
			order = append(order, c)
		}
	}
	s.Headers = slices.Delete(s.Headers, col, col+1)
	for r := range s.Rows {
		s.Rows[r] = slices.Delete(s.Rows[r], col, col+1)
	}
	s.remapCols(order)
}

// InsertColumn adds an empty column named header before index at. at equal
// to the column count appends.
func InsertColumn(s Snapshot, at int, header string) Result {
	if at < 0 || at > len(s.Headers) {
		return noop(s)
	}
	out := s.Clone()
	out.insertColumn(at, header, nil)
	res := finish(s, out)
	res.NewColumns = []int{at}
	return res
}

// DeleteColumn removes col together with its formulas, styles and
// validations; cells to the right shift left.
func DeleteColumn(s Snapshot, col int) Result {
	if col < 0 || col >= len(s.Headers) {
		return noop(s)
	}
	out := s.Clone()
	out.deleteColumn(col)
	return finish(s, out)
}

// RenameColumn changes the header text of col.
func RenameColumn(s Snapshot, col int, name string) Result {
	name = strings.TrimSpace(name)
	if col < 0 || col >= len(s.Headers) || name == "" {
		return noop(s)
	}
	out := s.Clone()
	out.Headers[col] = name
	return finish(s, out)
}

// SplitColumn splits the text of col on delim into up to maxParts new
// columns placed right after it. The last part keeps any remainder; missing
// parts are nil. maxParts <= 0 uses the largest part count found. The
// original column is left as it was.
func SplitColumn(s Snapshot, col int, delim string, maxParts int, names []string) Result {
	if col < 0 || col >= len(s.Headers) || delim == "" {
		return noop(s)
	}
	split := func(v Value) []string {
		if IsBlank(v) {
			return nil
		}
		if maxParts > 0 {
			return strings.SplitN(Display(v), delim, maxParts)
		}
		return strings.Split(Display(v), delim)
	}
	parts := maxParts
	if parts <= 0 {
		for _, row := range s.Rows {
			parts = max(parts, len(split(row[col])))
		}
	}
	if parts == 0 {
		return noop(s)
	}

	out := s.Clone()
	res := Result{}
	for i := range parts {
		values := make([]Value, len(s.Rows))
		for r, row := range s.Rows {
			pieces := split(row[col])
			if i < len(pieces) {
				if p := strings.TrimSpace(pieces[i]); p != "" {
					values[r] = p
				}
			}
		}
		header := fmt.Sprintf("%s %d", s.Headers[col], i+1)
		if i < len(names) && strings.TrimSpace(names[i]) != "" {
			header = strings.TrimSpace(names[i])
		}
		at := col + 1 + i
		out.insertColumn(at, header, values)
		res.NewColumns = append(res.NewColumns, at)
	}
	res.Data = out
	res.Changes = Diff(s, out)
	return res
}

// MergeColumns joins the text of cols with sep into a new last column.
// Blank parts are skipped; source columns are kept.
func MergeColumns(s Snapshot, cols []int, sep, name string) Result {
	var valid []int
	for _, c := range cols {
		if c >= 0 && c < len(s.Headers) {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return noop(s)
	}
	if strings.TrimSpace(name) == "" {
		var hs []string
		for _, c := range valid {
			hs = append(hs, s.Headers[c])
		}
		name = strings.Join(hs, " ")
	}

	values := make([]Value, len(s.Rows))
	for r, row := range s.Rows {
		var parts []string
		for _, c := range valid {
			if !IsBlank(row[c]) {
				parts = append(parts, strings.TrimSpace(Display(row[c])))
			}
		}
		if len(parts) > 0 {
			values[r] = strings.Join(parts, sep)
		}
	}

	out := s.Clone()
	at := len(out.Headers)
	out.insertColumn(at, name, values)
	res := finish(s, out)
	res.NewColumns = []int{at}
	return res
}

package chatedit

import "slices"

// SortRows stably sorts the data rows by col. Blank cells go last in both
// directions; numeric strings compare as numbers, other text ignores case.
// Formulas, styles and validations travel with their rows.
func SortRows(s Snapshot, col int, desc bool) Result {
	if col < 0 || col >= len(s.Headers) {
		return noop(s)
	}
	order := make([]int, len(s.Rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		a, b := s.Rows[i][col], s.Rows[j][col]
		ab, bb := IsBlank(a), IsBlank(b)
		switch {
		case ab && bb:
			return 0
		case ab:
			return 1
		case bb:
			return -1
		}
		c := compareValues(a, b)
		if desc {
			c = -c
		}
		return c
	})
	return reorder(s, order)
}

// reorder rebuilds s with only the rows listed in order (original indices),
// re-keying row metadata to match.
func reorder(s Snapshot, order []int) Result {
	out := s.Clone()
	rows := make([][]Value, len(order))
	kept := make(map[int]bool, len(order))
	for i, was := range order {
		rows[i] = out.Rows[was]
		kept[was] = true
	}
	out.Rows = rows
	out.remapRows(order)

	res := finish(s, out)
	for i := range s.Rows {
		if !kept[i] {
			res.RemovedRows = append(res.RemovedRows, i)
		}
	}
	return res
}

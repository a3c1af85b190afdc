package chatedit

import (
	"fmt"
	"strings"
)

// RemoveDuplicates drops rows equal to an earlier row on cols (every column
// when cols is empty). The first occurrence survives and order is kept.
func RemoveDuplicates(s Snapshot, cols []int) Result {
	var keyCols []int
	for _, c := range cols {
		if c >= 0 && c < len(s.Headers) {
			keyCols = append(keyCols, c)
		}
	}
	if len(cols) > 0 && len(keyCols) == 0 {
		return noop(s)
	}
	if len(keyCols) == 0 {
		for c := range s.Headers {
			keyCols = append(keyCols, c)
		}
	}

	seen := make(map[string]bool, len(s.Rows))
	var order []int
	for i, row := range s.Rows {
		k := rowKey(row, keyCols)
		if seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, i)
	}
	if len(order) == len(s.Rows) {
		return noop(s)
	}
	return reorder(s, order)
}

func rowKey(row []Value, cols []int) string {
	var b strings.Builder
	for _, c := range cols {
		fmt.Fprintf(&b, "%T\x00%v\x1f", row[c], row[c])
	}
	return b.String()
}

// RemoveEmptyRows drops rows whose cells are all nil or blank strings. The
// removed original indices are reported for the user.
func RemoveEmptyRows(s Snapshot) Result {
	var order []int
	for i, row := range s.Rows {
		for _, v := range row {
			if !IsBlank(v) {
				order = append(order, i)
				break
			}
		}
	}
	if len(order) == len(s.Rows) {
		return noop(s)
	}
	return reorder(s, order)
}

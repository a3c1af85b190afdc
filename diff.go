package chatedit

import (
	"slices"
)

// Diff lists the cell-level changes that turn before into after: header
// and value changes row-major, then formulas and styles ordered by
// reference. Positions present on only one side compare against nil.
func Diff(before, after Snapshot) []Change {
	var out []Change

	for c := range max(len(before.Headers), len(after.Headers)) {
		b, a := headerAt(before, c), headerAt(after, c)
		if b != a {
			out = append(out, Change{Ref: HeaderRef(c), Before: b, After: a, Type: ChangeValue})
		}
	}

	rows := max(len(before.Rows), len(after.Rows))
	cols := max(len(before.Headers), len(after.Headers))
	for r := range rows {
		for c := range cols {
			b, a := cellAt(before, r, c), cellAt(after, r, c)
			if b != a {
				out = append(out, Change{Ref: CellRef(c, r), Before: b, After: a, Type: ChangeValue})
			}
		}
	}

	for _, ref := range unionKeys(before.Formulas, after.Formulas) {
		b, bok := before.Formulas[ref]
		a, aok := after.Formulas[ref]
		if bok == aok && b == a {
			continue
		}
		out = append(out, Change{Ref: ref, Before: optional(b, bok), After: optional(a, aok), Type: ChangeFormula})
	}

	for _, ref := range unionKeys(before.Styles, after.Styles) {
		b, bok := before.Styles[ref]
		a, aok := after.Styles[ref]
		if bok == aok && b == a {
			continue
		}
		out = append(out, Change{Ref: ref, Before: stylePtr(b, bok), After: stylePtr(a, aok), Type: ChangeStyle})
	}
	return out
}

// finish builds the Result of an operation that produced after from before.
func finish(before, after Snapshot) Result {
	return Result{Data: after, Changes: Diff(before, after)}
}

func headerAt(s Snapshot, c int) Value {
	if c < len(s.Headers) {
		return s.Headers[c]
	}
	return nil
}

func cellAt(s Snapshot, r, c int) Value {
	if r < len(s.Rows) && c < len(s.Rows[r]) {
		return s.Rows[r][c]
	}
	return nil
}

func optional(s string, ok bool) any {
	if !ok {
		return nil
	}
	return s
}

func stylePtr(s CellStyle, ok bool) *CellStyle {
	if !ok {
		return nil
	}
	return &s
}

// unionKeys returns the keys of both maps in reference order (row, then
// column) so change lists are deterministic.
func unionKeys[V any](a, b map[string]V) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var keys []string
	for _, m := range []map[string]V{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	slices.SortFunc(keys, compareRefs)
	return keys
}

func compareRefs(a, b string) int {
	pa, aok := ParseCellRef(a)
	pb, bok := ParseCellRef(b)
	if !aok || !bok {
		if a < b {
			return -1
		} else if a > b {
			return 1
		}
		return 0
	}
	if pa.Row != pb.Row {
		return pa.Row - pb.Row
	}
	return pa.Col - pb.Col
}

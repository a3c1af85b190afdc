package chatedit

// remapRows re-keys row-addressed metadata after the rows of s have been
// rebuilt. order[i] is the original index of the row now at position i, or
// -1 for an inserted row. Metadata of rows that no longer exist is dropped.
func (s *Snapshot) remapRows(order []int) {
	moved := make(map[int]int, len(order))
	for now, was := range order {
		if was >= 0 {
			moved[was] = now
		}
	}
	s.rekey(func(p CellPos) (CellPos, bool) {
		if p.Row == HeaderRow {
			return p, true
		}
		n, ok := moved[p.Row]
		return CellPos{Row: n, Col: p.Col}, ok
	})
}

// remapCols is remapRows for columns; header cells move with their column.
func (s *Snapshot) remapCols(order []int) {
	moved := make(map[int]int, len(order))
	for now, was := range order {
		if was >= 0 {
			moved[was] = now
		}
	}
	s.rekey(func(p CellPos) (CellPos, bool) {
		n, ok := moved[p.Col]
		return CellPos{Row: p.Row, Col: n}, ok
	})
}

func (s *Snapshot) rekey(move func(CellPos) (CellPos, bool)) {
	s.Formulas = rekeyMap(s.Formulas, move)
	s.Styles = rekeyMap(s.Styles, move)
	s.Validations = rekeyMap(s.Validations, move)

	var merges []string
	for _, m := range s.Merges {
		if moved, ok := rekeyMerge(m, move); ok {
			merges = append(merges, moved)
		}
	}
	s.Merges = merges
}

func rekeyMap[V any](m map[string]V, move func(CellPos) (CellPos, bool)) map[string]V {
	if len(m) == 0 {
		return m
	}
	out := make(map[string]V, len(m))
	for ref, v := range m {
		p, ok := ParseCellRef(ref)
		if !ok {
			continue
		}
		if np, ok := move(p); ok {
			out[np.Ref()] = v
		}
	}
	return out
}

// rekeyMerge keeps a merged block only if every cell of it still exists and
// the block is still contiguous in the same shape.
func rekeyMerge(m string, move func(CellPos) (CellPos, bool)) (string, bool) {
	r, ok := ParseRange(m)
	if !ok || r.Columns {
		return "", false
	}
	from, ok := move(r.From)
	if !ok {
		return "", false
	}
	for row := r.From.Row; row <= r.To.Row; row++ {
		for col := r.From.Col; col <= r.To.Col; col++ {
			p, ok := move(CellPos{Row: row, Col: col})
			if !ok || p.Row-from.Row != row-r.From.Row || p.Col-from.Col != col-r.From.Col {
				return "", false
			}
		}
	}
	to, _ := move(r.To)
	if from == to {
		return "", false
	}
	return from.Ref() + ":" + to.Ref(), true
}

// mergeContaining returns the merge range that covers p, if any.
func (s Snapshot) mergeContaining(p CellPos) (RangeRef, bool) {
	for _, m := range s.Merges {
		r, ok := ParseRange(m)
		if !ok {
			continue
		}
		if p.Row >= r.From.Row && p.Row <= r.To.Row && p.Col >= r.From.Col && p.Col <= r.To.Col {
			return r, true
		}
	}
	return RangeRef{}, false
}

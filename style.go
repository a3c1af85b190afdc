package chatedit

// ApplyStyle overlays style on every cell in cells.
func ApplyStyle(s Snapshot, cells []CellPos, style CellStyle) Result {
	if style.IsZero() {
		return noop(s)
	}
	out := s.Clone()
	for _, p := range cells {
		if !out.InBounds(p) {
			continue
		}
		ref := p.Ref()
		out.setStyle(ref, out.Styles[ref].Merge(style))
	}
	return finish(s, out)
}

// ApplyConditionalFormat overlays style on the cells whose value satisfies
// cond. Other cells keep their style.
func ApplyConditionalFormat(s Snapshot, cells []CellPos, cond Condition, style CellStyle) Result {
	if !cond.Valid() || style.IsZero() {
		return noop(s)
	}
	var matched []CellPos
	for _, p := range cells {
		if s.InBounds(p) && cond.Match(s.Get(p)) {
			matched = append(matched, p)
		}
	}
	return ApplyStyle(s, matched, style)
}

// ClearStyles removes every style from cells.
func ClearStyles(s Snapshot, cells []CellPos) Result {
	out := s.Clone()
	for _, p := range cells {
		delete(out.Styles, p.Ref())
	}
	return finish(s, out)
}

// MergeCells records r as a merged block. Single cells, ranges outside the
// sheet and ranges overlapping an existing merge are ignored.
func MergeCells(s Snapshot, r RangeRef) Result {
	if r.Columns || r.From == r.To || !s.InBounds(r.From) || !s.InBounds(r.To) {
		return noop(s)
	}
	for _, p := range s.Cells(r) {
		if _, taken := s.mergeContaining(p); taken {
			return noop(s)
		}
	}
	out := s.Clone()
	out.Merges = append(out.Merges, r.String())
	return finish(s, out)
}

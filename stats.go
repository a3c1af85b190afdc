package chatedit

import (
	"fmt"
	"strings"
)

// Aggregate is a summary function over a column.
type Aggregate string

const (
	AggSum     Aggregate = "SUM"
	AggAverage Aggregate = "AVERAGE"
	AggCount   Aggregate = "COUNT"
	AggMin     Aggregate = "MIN"
	AggMax     Aggregate = "MAX"
)

var aggregateLabels = map[Aggregate]string{
	AggSum:     "Total",
	AggAverage: "Average",
	AggCount:   "Count",
	AggMin:     "Minimum",
	AggMax:     "Maximum",
}

// ParseAggregate accepts "sum", "avg", "mean", "count", "min", "max" and
// their upper-case spreadsheet names.
func ParseAggregate(s string) (Aggregate, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUM", "TOTAL":
		return AggSum, true
	case "AVERAGE", "AVG", "MEAN":
		return AggAverage, true
	case "COUNT":
		return AggCount, true
	case "MIN", "MINIMUM":
		return AggMin, true
	case "MAX", "MAXIMUM":
		return AggMax, true
	}
	return "", false
}

// accumulator folds numbers into every aggregate at once.
type accumulator struct {
	sum      float64
	count    int
	min, max float64
}

func (a *accumulator) add(n float64) {
	if a.count == 0 || n < a.min {
		a.min = n
	}
	if a.count == 0 || n > a.max {
		a.max = n
	}
	a.sum += n
	a.count++
}

func (a accumulator) value(fn Aggregate) float64 {
	switch fn {
	case AggSum:
		return a.sum
	case AggAverage:
		if a.count == 0 {
			return 0
		}
		return a.sum / float64(a.count)
	case AggCount:
		return float64(a.count)
	case AggMin:
		return a.min
	case AggMax:
		return a.max
	}
	return 0
}

// AddStatisticsRow appends a trailer row whose col cell holds fn over the
// whole column (e.g. "=SUM(C2:C11)"). The cached value is computed so the
// row reads correctly before the renderer evaluates it; a label goes into
// the first other column.
func AddStatisticsRow(s Snapshot, col int, fn Aggregate) Result {
	label, ok := aggregateLabels[fn]
	if col < 0 || col >= len(s.Headers) || !ok || len(s.Rows) == 0 {
		return noop(s)
	}
	var acc accumulator
	for _, row := range s.Rows {
		if n, ok := ToNumber(row[col]); ok {
			acc.add(n)
		}
	}

	out := s.Clone()
	row := make([]Value, len(out.Headers))
	row[col] = acc.value(fn)
	for c := range row {
		if c != col {
			row[c] = label
			break
		}
	}
	out.Rows = append(out.Rows, row)
	letter := ColumnLetter(col)
	formula := fmt.Sprintf("=%s(%s%d:%s%d)", fn, letter, rowOffset, letter, len(s.Rows)+rowOffset-1)
	out.setFormula(CellRef(col, len(out.Rows)-1), formula)
	return finish(s, out)
}

// GroupSummary is one group produced by CreateGroupSummary.
type GroupSummary struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// BlankGroup is the key used for rows whose group column is blank.
const BlankGroup = "(blank)"

// CreateGroupSummary groups the rows by keyCol and aggregates valueCol per
// group, in order of first appearance. Non-numeric values are ignored
// except by AggCount, which counts rows. s is not modified.
func CreateGroupSummary(s Snapshot, keyCol, valueCol int, fn Aggregate) []GroupSummary {
	if _, ok := aggregateLabels[fn]; !ok {
		return nil
	}
	if keyCol < 0 || keyCol >= len(s.Headers) || valueCol < 0 || valueCol >= len(s.Headers) {
		return nil
	}
	var keys []string
	groups := make(map[string]*accumulator)
	rows := make(map[string]int)
	for _, row := range s.Rows {
		key := strings.TrimSpace(Display(row[keyCol]))
		if key == "" {
			key = BlankGroup
		}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
			keys = append(keys, key)
		}
		rows[key]++
		if n, ok := ToNumber(row[valueCol]); ok {
			acc.add(n)
		}
	}

	out := make([]GroupSummary, 0, len(keys))
	for _, k := range keys {
		v := groups[k].value(fn)
		if fn == AggCount {
			v = float64(rows[k])
		}
		out = append(out, GroupSummary{Key: k, Value: v, Count: rows[k]})
	}
	return out
}

// SummarySheet lays out groups as a two-column sheet.
func SummarySheet(keyHeader string, fn Aggregate, valueHeader string, groups []GroupSummary) SheetData {
	d := SheetData{Headers: []string{keyHeader, fmt.Sprintf("%s of %s", aggregateLabels[fn], valueHeader)}}
	for _, g := range groups {
		d.Rows = append(d.Rows, []Value{g.Key, g.Value})
	}
	return d
}

// PivotSummary stores the CreateGroupSummary of s as a new sheet in
// AllSheets named "<key header> Summary", or "<key header> Summary 2", " 3"
// and so on when that name is taken. Existing sheets are never replaced.
// The active sheet is not touched, so the result carries no change records.
func PivotSummary(s Snapshot, keyCol, valueCol int, fn Aggregate) (Result, []GroupSummary) {
	groups := CreateGroupSummary(s, keyCol, valueCol, fn)
	if len(groups) == 0 {
		return noop(s), nil
	}
	base := s.Headers[keyCol] + " Summary"
	name := base
	for n := 2; s.hasSheet(name); n++ {
		name = fmt.Sprintf("%s %d", base, n)
	}
	out := s.Clone()
	out.putSheet(name, SummarySheet(s.Headers[keyCol], fn, s.Headers[valueCol], groups))
	return Result{Data: out}, groups
}

package chatedit

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yamitzky/xlrd-go/xlrd"
)

// DateOp is a date computation performed by CalculateDates.
type DateOp string

const (
	DateAddDays     DateOp = "add_days"
	DateAddMonths   DateOp = "add_months"
	DateDaysBetween DateOp = "days_between"
	DateYear        DateOp = "year"
	DateMonth       DateOp = "month"
	DateDay         DateOp = "day"
	DateWeekday     DateOp = "weekday"
	DateFormat      DateOp = "format"
)

var dateOps = map[string]DateOp{
	"add_days": DateAddDays, "add_day": DateAddDays, "plus_days": DateAddDays,
	"add_months": DateAddMonths, "add_month": DateAddMonths,
	"days_between": DateDaysBetween, "difference": DateDaysBetween, "diff_days": DateDaysBetween,
	"year": DateYear, "extract_year": DateYear,
	"month": DateMonth, "extract_month": DateMonth,
	"day": DateDay, "extract_day": DateDay,
	"weekday": DateWeekday, "day_of_week": DateWeekday,
	"format": DateFormat, "reformat": DateFormat,
}

// ParseDateOp accepts the date operation names and a few synonyms.
func ParseDateOp(s string) (DateOp, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	op, ok := dateOps[key]
	return op, ok
}

// DateLayout converts a "YYYY-MM-DD" style pattern to a Go time layout.
// Patterns that already contain "2006" are returned unchanged.
func DateLayout(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || strings.Contains(pattern, "2006") {
		return pattern
	}
	return strings.NewReplacer(
		"YYYY", "2006", "yyyy", "2006",
		"YY", "06", "yy", "06",
		"MMMM", "January", "MMM", "Jan", "MM", "01",
		"DD", "02", "dd", "02",
	).Replace(pattern)
}

// DefaultDateLayout is used for dates the engine writes.
const DefaultDateLayout = "2006-01-02"

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
}

// ParseDate reads a cell as a date: either one of the common text layouts
// or an Excel serial number (1900 date system).
func ParseDate(v Value) (time.Time, bool) {
	switch t := v.(type) {
	case float64:
		if t < 1 || t > 2958465 {
			return time.Time{}, false
		}
		d, err := xlrd.XldateAsDatetime(t, 0)
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// DateSerial converts d to an Excel serial number (1900 date system).
func DateSerial(d time.Time) (float64, bool) {
	n, err := xlrd.XldateFromDateTuple(d.Year(), int(d.Month()), d.Day(), 0)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DateOptions controls CalculateDates.
type DateOptions struct {
	Column int
	Other  int // second date column for DateDaysBetween
	Op     DateOp
	Amount int
	Layout string // output layout for dates, DefaultDateLayout if empty
	Header string // header of the result column
}

// CalculateDates derives a new column, inserted right after opts.Column,
// from the dates in that column. Cells that do not parse as dates yield nil.
func CalculateDates(s Snapshot, opts DateOptions) Result {
	if opts.Column < 0 || opts.Column >= len(s.Headers) {
		return noop(s)
	}
	if opts.Op == DateDaysBetween && (opts.Other < 0 || opts.Other >= len(s.Headers)) {
		return noop(s)
	}
	layout := opts.Layout
	if layout == "" {
		layout = DefaultDateLayout
	}
	compute := dateFunc(opts, layout)
	if compute == nil {
		return noop(s)
	}

	values := make([]Value, len(s.Rows))
	for r, row := range s.Rows {
		d, ok := ParseDate(row[opts.Column])
		if !ok {
			continue
		}
		values[r] = compute(d, row)
	}

	header := strings.TrimSpace(opts.Header)
	if header == "" {
		header = fmt.Sprintf("%s (%s)", s.Headers[opts.Column], strings.ReplaceAll(string(opts.Op), "_", " "))
	}
	out := s.Clone()
	at := opts.Column + 1
	out.insertColumn(at, header, values)
	res := finish(s, out)
	res.NewColumns = []int{at}
	return res
}

func dateFunc(opts DateOptions, layout string) func(time.Time, []Value) Value {
	switch opts.Op {
	case DateAddDays:
		return func(d time.Time, _ []Value) Value { return d.AddDate(0, 0, opts.Amount).Format(layout) }
	case DateAddMonths:
		return func(d time.Time, _ []Value) Value { return d.AddDate(0, opts.Amount, 0).Format(layout) }
	case DateDaysBetween:
		return func(d time.Time, row []Value) Value {
			other, ok := ParseDate(row[opts.Other])
			if !ok {
				return nil
			}
			return math.Round(other.Sub(d).Hours() / 24)
		}
	case DateYear:
		return func(d time.Time, _ []Value) Value { return float64(d.Year()) }
	case DateMonth:
		return func(d time.Time, _ []Value) Value { return float64(d.Month()) }
	case DateDay:
		return func(d time.Time, _ []Value) Value { return float64(d.Day()) }
	case DateWeekday:
		return func(d time.Time, _ []Value) Value { return d.Weekday().String() }
	case DateFormat:
		return func(d time.Time, _ []Value) Value { return d.Format(layout) }
	}
	return nil
}

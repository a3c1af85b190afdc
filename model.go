package chatedit

import (
	"fmt"
	"maps"
	"slices"
)

// Value is the content of one cell: nil, string, float64 or bool.
type Value = any

// CellStyle captures the limited set of cell styles the engine tracks.
// Colours are "RRGGBB" without the leading '#'.
type CellStyle struct {
	Background      string `json:"backgroundColor,omitempty"`
	FontColor       string `json:"fontColor,omitempty"`
	Bold            bool   `json:"bold,omitempty"`
	Italic          bool   `json:"italic,omitempty"`
	HorizontalAlign string `json:"textAlign,omitempty"` // left|center|right|justify
	VerticalAlign   string `json:"verticalAlign,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
	WrapText        bool   `json:"wrapText,omitempty"`
	NumberFormat    string `json:"numberFormat,omitempty"`
}

func (s CellStyle) String() string {
	return fmt.Sprintf("Background: %s, FontColor: %s, Bold: %t, Italic: %t, HorizontalAlign: %s, VerticalAlign: %s, BorderColor: %s, WrapText: %t, NumberFormat: %s",
		s.Background, s.FontColor, s.Bold, s.Italic, s.HorizontalAlign, s.VerticalAlign, s.BorderColor, s.WrapText, s.NumberFormat)
}

// IsZero reports whether no style attribute is set.
func (s CellStyle) IsZero() bool {
	return s == CellStyle{}
}

// Merge overlays the non-zero fields of o on top of s.
func (s CellStyle) Merge(o CellStyle) CellStyle {
	if o.Background != "" {
		s.Background = o.Background
	}
	if o.FontColor != "" {
		s.FontColor = o.FontColor
	}
	if o.Bold {
		s.Bold = true
	}
	if o.Italic {
		s.Italic = true
	}
	if o.HorizontalAlign != "" {
		s.HorizontalAlign = o.HorizontalAlign
	}
	if o.VerticalAlign != "" {
		s.VerticalAlign = o.VerticalAlign
	}
	if o.BorderColor != "" {
		s.BorderColor = o.BorderColor
	}
	if o.WrapText {
		s.WrapText = true
	}
	if o.NumberFormat != "" {
		s.NumberFormat = o.NumberFormat
	}
	return s
}

// Validation describes a data-validation rule attached to a cell. It is
// metadata only; enforcement belongs to whatever renders the sheet.
type Validation struct {
	Type       string   `json:"type"`               // list|number|date|text|checkbox
	Criteria   string   `json:"criteria,omitempty"` // between|greater_than|...
	Values     []string `json:"values,omitempty"`
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	AllowBlank bool     `json:"allowBlank,omitempty"`
}

func (v Validation) clone() Validation {
	v.Values = slices.Clone(v.Values)
	if v.Min != nil {
		m := *v.Min
		v.Min = &m
	}
	if v.Max != nil {
		m := *v.Max
		v.Max = &m
	}
	return v
}

// SheetData is the lighter form kept for the inactive sheets of a
// workbook. Only Headers and Rows are required.
type SheetData struct {
	Headers     []string              `json:"headers"`
	Rows        [][]Value             `json:"rows"`
	Formulas    map[string]string     `json:"formulas,omitempty"`
	Styles      map[string]CellStyle  `json:"cellStyles,omitempty"`
	Validations map[string]Validation `json:"validations,omitempty"`
	Merges      []string              `json:"merges,omitempty"`
}

func (d SheetData) clone() SheetData {
	c := SheetData{
		Headers:  slices.Clone(d.Headers),
		Rows:     cloneRows(d.Rows),
		Formulas: maps.Clone(d.Formulas),
		Styles:   maps.Clone(d.Styles),
		Merges:   slices.Clone(d.Merges),
	}
	if d.Validations != nil {
		c.Validations = make(map[string]Validation, len(d.Validations))
		for k, v := range d.Validations {
			c.Validations[k] = v.clone()
		}
	}
	return c
}

// Snapshot is the complete in-memory state of one spreadsheet. Row 0 of
// Rows is displayed as spreadsheet row 2; row 1 holds Headers.
//
// Formulas, Styles and Validations are keyed by display reference ("C5").
// Every structural edit re-keys them so they keep following their cell.
type Snapshot struct {
	Headers      []string              `json:"headers"`
	Rows         [][]Value             `json:"rows"`
	Formulas     map[string]string     `json:"formulas,omitempty"`
	Styles       map[string]CellStyle  `json:"cellStyles,omitempty"`
	Validations  map[string]Validation `json:"validations,omitempty"`
	Merges       []string              `json:"merges,omitempty"`
	CurrentSheet string                `json:"currentSheet,omitempty"`
	Sheets       []string              `json:"sheets,omitempty"`
	AllSheets    map[string]SheetData  `json:"allSheets,omitempty"`
}

// NewSnapshot builds a normalised single-sheet snapshot.
func NewSnapshot(headers []string, rows [][]Value) Snapshot {
	s := Snapshot{
		Headers:      slices.Clone(headers),
		Rows:         cloneRows(rows),
		CurrentSheet: "Sheet1",
		Sheets:       []string{"Sheet1"},
	}
	s.Normalize()
	return s
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Headers:      slices.Clone(s.Headers),
		Rows:         cloneRows(s.Rows),
		Formulas:     maps.Clone(s.Formulas),
		Styles:       maps.Clone(s.Styles),
		Merges:       slices.Clone(s.Merges),
		CurrentSheet: s.CurrentSheet,
		Sheets:       slices.Clone(s.Sheets),
	}
	if s.Validations != nil {
		c.Validations = make(map[string]Validation, len(s.Validations))
		for k, v := range s.Validations {
			c.Validations[k] = v.clone()
		}
	}
	if s.AllSheets != nil {
		c.AllSheets = make(map[string]SheetData, len(s.AllSheets))
		for k, v := range s.AllSheets {
			c.AllSheets[k] = v.clone()
		}
	}
	return c
}

// Normalize pads or truncates every row to len(Headers) and folds numeric
// kinds to float64.
func (s *Snapshot) Normalize() {
	width := len(s.Headers)
	for i, row := range s.Rows {
		if len(row) != width {
			fixed := make([]Value, width)
			copy(fixed, row)
			row = fixed
		}
		for c, v := range row {
			row[c] = NormalizeValue(v)
		}
		s.Rows[i] = row
	}
}

// RowCount returns the number of data rows.
func (s Snapshot) RowCount() int { return len(s.Rows) }

// ColCount returns the number of columns.
func (s Snapshot) ColCount() int { return len(s.Headers) }

// InBounds reports whether p addresses an existing data cell.
func (s Snapshot) InBounds(p CellPos) bool {
	return p.Row >= 0 && p.Row < len(s.Rows) && p.Col >= 0 && p.Col < len(s.Headers)
}

// Get returns the value at p, or nil when p is out of bounds.
func (s Snapshot) Get(p CellPos) Value {
	if !s.InBounds(p) {
		return nil
	}
	return s.Rows[p.Row][p.Col]
}

func (s *Snapshot) setFormula(ref, formula string) {
	if s.Formulas == nil {
		s.Formulas = make(map[string]string)
	}
	s.Formulas[ref] = formula
}

func (s *Snapshot) setStyle(ref string, st CellStyle) {
	if st.IsZero() {
		delete(s.Styles, ref)
		return
	}
	if s.Styles == nil {
		s.Styles = make(map[string]CellStyle)
	}
	s.Styles[ref] = st
}

// NormalizeValue converts integer and float32 kinds to float64 and leaves
// the other cell kinds untouched. Unsupported kinds become their string form.
func NormalizeValue(v Value) Value {
	switch t := v.(type) {
	case nil, string, float64, bool:
		return v
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return fmt.Sprint(v)
	}
}

func cloneRows(rows [][]Value) [][]Value {
	if rows == nil {
		return nil
	}
	out := make([][]Value, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}

// ChangeType tells which aspect of a cell a Change describes.
type ChangeType string

const (
	ChangeValue   ChangeType = "value"
	ChangeFormula ChangeType = "formula"
	ChangeStyle   ChangeType = "style"
)

// Change is the before/after diff of one cell. For ChangeStyle, Before and
// After hold *CellStyle (nil when unstyled); for ChangeFormula they hold the
// formula text or nil.
type Change struct {
	Ref    string     `json:"cellRef"`
	Before any        `json:"before"`
	After  any        `json:"after"`
	Type   ChangeType `json:"type"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s %s: %v -> %v", c.Ref, c.Type, c.Before, c.After)
}

// Result is what every transformation returns. Data is always a fresh
// snapshot, even when nothing changed.
type Result struct {
	Data        Snapshot
	Changes     []Change
	RemovedRows []int // original indices of rows that were removed
	NewColumns  []int // indices of columns the operation added
}

// noop returns a result carrying an untouched copy of s.
func noop(s Snapshot) Result {
	return Result{Data: s.Clone()}
}

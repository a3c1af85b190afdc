package chatedit

import (
	"slices"
	"strings"
)

// NamedSheet is one sheet of a workbook being assembled by NewWorkbook.
type NamedSheet struct {
	Name string
	Data SheetData
}

// NewWorkbook builds a snapshot from sheets in workbook order. The first
// sheet becomes active; blank and repeated names are skipped.
func NewWorkbook(sheets []NamedSheet) Snapshot {
	var s Snapshot
	for _, sh := range sheets {
		name := strings.TrimSpace(sh.Name)
		if name == "" || slices.Contains(s.Sheets, name) {
			continue
		}
		if s.CurrentSheet == "" {
			s.Sheets = append(s.Sheets, name)
			s.load(name, sh.Data.clone())
			continue
		}
		s.putSheet(name, sh.Data.clone())
	}
	if s.CurrentSheet == "" {
		return NewSnapshot(nil, nil)
	}
	return s
}

// SwitchSheet parks the active sheet in AllSheets and makes name active.
// Unknown names and the already active sheet are a no-op.
func SwitchSheet(s Snapshot, name string) Result {
	name = strings.TrimSpace(name)
	target, ok := s.AllSheets[name]
	if !ok || name == s.CurrentSheet {
		return noop(s)
	}
	out := s.Clone()
	if out.CurrentSheet != "" {
		out.AllSheets[out.CurrentSheet] = out.park()
	}
	delete(out.AllSheets, name)
	out.load(name, target.clone())
	return finish(s, out)
}

// AddSheet appends an empty sheet with the given headers to the workbook
// without activating it. Existing names are a no-op.
func AddSheet(s Snapshot, name string, headers []string) Result {
	name = strings.TrimSpace(name)
	if name == "" || name == s.CurrentSheet || slices.Contains(s.Sheets, name) {
		return noop(s)
	}
	if _, ok := s.AllSheets[name]; ok {
		return noop(s)
	}
	out := s.Clone()
	out.putSheet(name, SheetData{Headers: slices.Clone(headers)})
	return finish(s, out)
}

// hasSheet reports whether name is the active sheet or a stored one.
func (s Snapshot) hasSheet(name string) bool {
	if name == s.CurrentSheet || slices.Contains(s.Sheets, name) {
		return true
	}
	_, ok := s.AllSheets[name]
	return ok
}

// putSheet stores d as an inactive sheet called name.
func (s *Snapshot) putSheet(name string, d SheetData) {
	if s.AllSheets == nil {
		s.AllSheets = make(map[string]SheetData)
	}
	s.AllSheets[name] = d
	if !slices.Contains(s.Sheets, name) {
		s.Sheets = append(s.Sheets, name)
	}
}

func (s Snapshot) park() SheetData {
	return SheetData{
		Headers:     s.Headers,
		Rows:        s.Rows,
		Formulas:    s.Formulas,
		Styles:      s.Styles,
		Validations: s.Validations,
		Merges:      s.Merges,
	}
}

func (s *Snapshot) load(name string, d SheetData) {
	s.CurrentSheet = name
	s.Headers = d.Headers
	s.Rows = d.Rows
	s.Formulas = d.Formulas
	s.Styles = d.Styles
	s.Validations = d.Validations
	s.Merges = d.Merges
	s.Normalize()
}

// Sheet returns the data of the named sheet, active or not.
func (s Snapshot) Sheet(name string) (SheetData, bool) {
	if name == s.CurrentSheet {
		return s.park().clone(), true
	}
	d, ok := s.AllSheets[name]
	if !ok {
		return SheetData{}, false
	}
	return d.clone(), true
}

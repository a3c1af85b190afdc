package chatedit

import "strings"

var validationTypes = map[string]bool{
	"list": true, "number": true, "decimal": true, "whole": true,
	"date": true, "text": true, "textlength": true, "checkbox": true, "custom": true,
}

// ValidType reports whether t names a supported validation kind.
func ValidType(t string) bool {
	return validationTypes[strings.ToLower(strings.TrimSpace(t))]
}

// AddValidation attaches v to every cell in refs. Unparseable or
// out-of-range references are skipped. The rule is metadata only and does
// not touch cell values.
func AddValidation(s Snapshot, refs []string, v Validation) Result {
	v.Type = strings.ToLower(strings.TrimSpace(v.Type))
	if !validationTypes[v.Type] || (v.Type == "list" && len(v.Values) == 0) {
		return noop(s)
	}
	out := s.Clone()
	for _, ref := range refs {
		p, ok := ParseCellRef(ref)
		if !ok || !out.InBounds(p) {
			continue
		}
		if out.Validations == nil {
			out.Validations = make(map[string]Validation)
		}
		out.Validations[p.Ref()] = v.clone()
	}
	return finish(s, out)
}

// RemoveValidation drops any validation on refs.
func RemoveValidation(s Snapshot, refs []string) Result {
	out := s.Clone()
	for _, ref := range refs {
		if p, ok := ParseCellRef(ref); ok {
			delete(out.Validations, p.Ref())
		}
	}
	return finish(s, out)
}

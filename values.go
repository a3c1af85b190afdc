package chatedit

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// IsBlank reports whether v is nil or a whitespace-only string.
func IsBlank(v Value) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// ToNumber interprets v as a number. Strings are accepted with surrounding
// space, thousands separators and a leading currency sign.
func ToNumber(v Value) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		return ParseNumber(s)
	}
	return 0, false
}

// decimalRe is the plain number grammar; it rejects NaN, Inf, hex and
// underscore forms that strconv would otherwise accept.
var decimalRe = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// ParseNumber parses s, trimmed, as a plain decimal number such as "-1.5"
// or "2e3". Anything else, including "NaN" and "Inf", is not a number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Display renders v the way a cell shows it.
func Display(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// compareValues orders two non-blank values: numbers (including numeric
// strings) numerically and before text, text case-insensitively.
func compareValues(a, b Value) int {
	na, aok := ToNumber(a)
	nb, bok := ToNumber(b)
	switch {
	case aok && bok:
		return cmp.Compare(na, nb)
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(fold(Display(a)), fold(Display(b)))
}

// equalValues compares the way a user reading the sheet would: numerically
// when both sides are numbers, otherwise case-insensitive text.
func equalValues(a, b Value) bool {
	na, aok := ToNumber(a)
	nb, bok := ToNumber(b)
	if aok && bok {
		return na == nb
	}
	return fold(strings.TrimSpace(Display(a))) == fold(strings.TrimSpace(Display(b)))
}

// coerce turns a string that looks like a number back into a number when
// the original value was numeric.
func coerce(s string, wasNumber bool) Value {
	if wasNumber {
		if f, ok := ParseNumber(s); ok {
			return f
		}
	}
	return s
}

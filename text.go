package chatedit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextMode selects the rewrite TransformText applies.
type TextMode string

const (
	TextUpper       TextMode = "uppercase"
	TextLower       TextMode = "lowercase"
	TextTitle       TextMode = "titlecase"
	TextSentence    TextMode = "sentencecase"
	TextTrim        TextMode = "trim"
	TextCleanSpaces TextMode = "clean_spaces"
)

// ParseTextMode accepts the common spellings ("upper", "UPPERCASE",
// "title_case", ...).
func ParseTextMode(s string) (TextMode, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", " ", "", "-", "").Replace(key)
	switch key {
	case "upper", "uppercase":
		return TextUpper, true
	case "lower", "lowercase":
		return TextLower, true
	case "title", "titlecase", "proper", "propercase", "capitalize":
		return TextTitle, true
	case "sentence", "sentencecase":
		return TextSentence, true
	case "trim", "strip":
		return TextTrim, true
	case "cleanspaces", "collapsespaces", "clean":
		return TextCleanSpaces, true
	}
	return "", false
}

// TransformText rewrites the string cells among cells. Numbers, booleans
// and blanks are left alone.
func TransformText(s Snapshot, cells []CellPos, mode TextMode) Result {
	apply := textFunc(mode)
	if apply == nil {
		return noop(s)
	}
	out := s.Clone()
	for _, p := range cells {
		if !out.InBounds(p) {
			continue
		}
		text, ok := out.Rows[p.Row][p.Col].(string)
		if !ok || text == "" {
			continue
		}
		out.Rows[p.Row][p.Col] = apply(text)
	}
	return finish(s, out)
}

func textFunc(mode TextMode) func(string) string {
	switch mode {
	case TextUpper:
		return func(s string) string { return cases.Upper(language.Und).String(s) }
	case TextLower:
		return func(s string) string { return cases.Lower(language.Und).String(s) }
	case TextTitle:
		return func(s string) string { return cases.Title(language.Und).String(s) }
	case TextSentence:
		return sentenceCase
	case TextTrim:
		return strings.TrimSpace
	case TextCleanSpaces:
		return func(s string) string { return strings.Join(strings.Fields(s), " ") }
	}
	return nil
}

func sentenceCase(s string) string {
	lower := cases.Lower(language.Und).String(strings.TrimSpace(s))
	r, size := utf8.DecodeRuneInString(lower)
	if r == utf8.RuneError {
		return lower
	}
	return string(unicode.ToUpper(r)) + lower[size:]
}

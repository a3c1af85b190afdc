package chatedit

import "regexp"

// FindReplaceOptions controls FindReplace. Matching ignores case unless
// MatchCase is set; WholeCell replaces only cells whose entire text matches.
type FindReplaceOptions struct {
	Find      string
	Replace   string
	Columns   []int // nil means every column
	MatchCase bool
	WholeCell bool
}

// FindReplace rewrites matching string and number cells. A cell that held
// a number stays a number when the replaced text still parses as one.
func FindReplace(s Snapshot, opts FindReplaceOptions) Result {
	if opts.Find == "" {
		return noop(s)
	}
	cols := opts.Columns
	if cols == nil {
		for c := range s.Headers {
			cols = append(cols, c)
		}
	}

	pattern := regexp.QuoteMeta(opts.Find)
	if opts.WholeCell {
		pattern = `^\s*` + pattern + `\s*$`
	}
	if !opts.MatchCase {
		pattern = `(?i)` + pattern
	}
	re := regexp.MustCompile(pattern)

	out := s.Clone()
	for r, row := range out.Rows {
		for _, c := range cols {
			if c < 0 || c >= len(row) {
				continue
			}
			var text string
			_, wasNumber := row[c].(float64)
			switch v := row[c].(type) {
			case string:
				text = v
			case float64:
				text = Display(v)
			default:
				continue
			}
			if !re.MatchString(text) {
				continue
			}
			replaced := re.ReplaceAllLiteralString(text, opts.Replace)
			if opts.WholeCell {
				replaced = opts.Replace
			}
			if replaced == text {
				continue
			}
			out.Rows[r][c] = coerce(replaced, wasNumber)
		}
	}
	return finish(s, out)
}


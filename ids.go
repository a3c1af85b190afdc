package chatedit

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDOptions controls GenerateIDs.
type IDOptions struct {
	Column    int    // target column; -1 inserts a new first column
	Header    string // header of a new column, "ID" by default
	Prefix    string // e.g. "EMP-"
	Start     int    // first counter value, used as given
	Padding   int    // zero padding width of the counter
	UUID      bool   // random UUIDs instead of a counter
	OnlyEmpty bool   // keep existing non-blank values
}

// GenerateIDs fills a column with identifiers, one per data row.
func GenerateIDs(s Snapshot, opts IDOptions) Result {
	if opts.Column >= len(s.Headers) || opts.Column < -1 {
		return noop(s)
	}
	out := s.Clone()
	col := opts.Column
	res := Result{}
	if col == -1 {
		header := strings.TrimSpace(opts.Header)
		if header == "" {
			header = "ID"
		}
		col = 0
		out.insertColumn(col, header, nil)
		res.NewColumns = []int{col}
	}

	n := opts.Start
	for r := range out.Rows {
		if opts.OnlyEmpty && !IsBlank(out.Rows[r][col]) {
			continue
		}
		if opts.UUID {
			out.Rows[r][col] = opts.Prefix + uuid.NewString()
			continue
		}
		out.Rows[r][col] = fmt.Sprintf("%s%0*d", opts.Prefix, max(opts.Padding, 0), n)
		n++
	}
	res.Data = out
	res.Changes = Diff(s, out)
	return res
}

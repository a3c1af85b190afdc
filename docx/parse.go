// Package docx imports the tables of a Word document as spreadsheet sheets.
package docx

import (
	"fmt"
	"io"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/aerissecure/chatedit"
)

// ReadTables reads a DOCX from r/size and turns every table into a sheet of
// the returned workbook. See Sheets for the naming rules.
func ReadTables(r io.ReaderAt, size int64) (chatedit.Snapshot, error) {
	tables, err := ParseTables(r, size)
	if err != nil {
		return chatedit.Snapshot{}, err
	}
	return Sheets(tables), nil
}

// ParseTables returns the tables of a DOCX body in document order, each
// captioned by the last heading or title paragraph seen before it.
func ParseTables(r io.ReaderAt, size int64) ([]Table, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	// ---- Build lookup maps from underlying XML ptr -> high-level wrapper ----
	pMap := make(map[*wml.CT_P]document.Paragraph)
	for _, p := range doc.Paragraphs() {
		pMap[p.X()] = p
	}
	tMap := make(map[*wml.CT_Tbl]document.Table)
	for _, tbl := range doc.Tables() {
		tMap[tbl.X()] = tbl
	}

	body := doc.X().Body
	if body == nil {
		return nil, nil
	}

	var (
		tables  []Table
		caption string
	)
	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, cp := range c.P {
				par, ok := pMap[cp]
				if !ok {
					continue
				}
				if isHeading(par) {
					if text := paragraphText(par); text != "" {
						caption = text
					}
				}
			}
			for _, ct := range c.Tbl {
				if tbl, ok := tMap[ct]; ok {
					t := convertTable(tbl)
					t.Caption = caption
					tables = append(tables, t)
					caption = ""
				}
			}
		}
	}
	return tables, nil
}

// Sheets converts tables to a workbook. The first row of a table becomes
// its headers and numeric text becomes numbers. A sheet is named after its
// caption, or "Table N" without one; repeated names get a " 2", " 3" suffix.
// Tables without rows are skipped.
func Sheets(tables []Table) chatedit.Snapshot {
	var (
		sheets []chatedit.NamedSheet
		used   = make(map[string]bool)
	)
	for i, t := range tables {
		grid := t.Grid()
		if len(grid) == 0 || len(grid[0]) == 0 {
			continue
		}
		base := strings.TrimSpace(t.Caption)
		if base == "" {
			base = fmt.Sprintf("Table %d", i+1)
		}
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s %d", base, n)
		}
		used[name] = true

		d := chatedit.SheetData{Headers: grid[0]}
		for _, line := range grid[1:] {
			row := make([]chatedit.Value, len(line))
			for c, text := range line {
				row[c] = cellValue(text)
			}
			d.Rows = append(d.Rows, row)
		}
		sheets = append(sheets, chatedit.NamedSheet{Name: name, Data: d})
	}
	return chatedit.NewWorkbook(sheets)
}

func cellValue(text string) chatedit.Value {
	if text == "" {
		return nil
	}
	if f, ok := chatedit.ParseNumber(text); ok {
		return f
	}
	return text
}

func isHeading(p document.Paragraph) bool {
	style := p.Style()
	return strings.HasPrefix(style, "Heading") || style == "Title"
}

func paragraphText(p document.Paragraph) string {
	var sb strings.Builder
	for _, run := range p.Runs() {
		sb.WriteString(run.Text())
	}
	return strings.TrimSpace(sb.String())
}

// convertTable converts a unioffice Table into the Table IR.
func convertTable(t document.Table) Table {
	var rt Table
	for _, row := range t.Rows() {
		var cells []TableCell
		for _, cell := range row.Cells() {
			tc := TableCell{ColSpan: 1}
			if pr := cell.X().TcPr; pr != nil && pr.GridSpan != nil && pr.GridSpan.ValAttr > 1 {
				tc.ColSpan = int(pr.GridSpan.ValAttr)
			}
			var lines []string
			for _, p := range cell.Paragraphs() {
				lines = append(lines, paragraphText(p))
			}
			tc.Text = strings.Join(lines, "\n")
			cells = append(cells, tc)
		}
		rt.Rows = append(rt.Rows, cells)
	}
	return rt
}

package xlsx

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/aerissecure/chatedit"
)

// DefaultHighlight is the outline colour of changed cells.
const DefaultHighlight = "F4B400"

// RenderOptions controls RenderHTML.
type RenderOptions struct {
	Highlight      []string // refs of cells to flag as changed
	HighlightColor string   // "RRGGBB", DefaultHighlight if empty
	AllSheets      bool     // render every sheet, not only the active one
}

// RenderHTML renders the active sheet of s (or every sheet) as HTML tables.
func RenderHTML(s chatedit.Snapshot, opts RenderOptions) string {
	changed := make(map[string]bool, len(opts.Highlight))
	for _, ref := range opts.Highlight {
		if p, ok := chatedit.ParseCellRef(ref); ok {
			changed[p.Ref()] = true
		}
	}

	var m WorkbookModel
	active, _ := s.Sheet(s.CurrentSheet)
	m.Sheets = append(m.Sheets, BuildModel(s.CurrentSheet, active, changed))
	if opts.AllSheets {
		for _, name := range s.Sheets {
			if name == s.CurrentSheet {
				continue
			}
			if d, ok := s.Sheet(name); ok {
				m.Sheets = append(m.Sheets, BuildModel(name, d, nil))
			}
		}
	}

	color := sanitizeColor(opts.HighlightColor)
	if color == "" {
		color = DefaultHighlight
	}
	return RenderWorkbookHTML(m, color)
}

var hexColorRe = regexp.MustCompile(`^[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)

// sanitizeColor ensures the value is a valid 3- or 6-digit hexadecimal string.
// Any invalid input results in an empty string so user-supplied colours
// cannot break out of the CSS context.
func sanitizeColor(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if hexColorRe.MatchString(s) {
		return strings.ToUpper(s)
	}
	return ""
}

// RenderWorkbookHTML converts the IR into an HTML string.
func RenderWorkbookHTML(m WorkbookModel, highlight string) string {
	var builder strings.Builder

	// 1. Collect unique cell styles and count property values
	type propCount map[string]int
	borderColorCount := make(propCount)
	hAlignCount := make(propCount)
	vAlignCount := make(propCount)
	fontColorCount := make(propCount)
	bgColorCount := make(propCount)
	wrapTextCount := make(map[bool]int)

	styleMap := make(map[chatedit.CellStyle]string) // CellStyle -> class name
	styleList := make([]chatedit.CellStyle, 0)      // To preserve order
	styledCells := 0

	for _, sheet := range m.Sheets {
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				if cell == nil {
					continue
				}
				styledCells++
				st := cell.Style
				if st.BorderColor != "" {
					borderColorCount[st.BorderColor]++
				}
				if st.HorizontalAlign != "" {
					hAlignCount[st.HorizontalAlign]++
				}
				if st.VerticalAlign != "" {
					vAlignCount[st.VerticalAlign]++
				}
				if st.FontColor != "" {
					fontColorCount[st.FontColor]++
				}
				if st.Background != "" {
					bgColorCount[st.Background]++
				}
				wrapTextCount[st.WrapText]++
				if _, exists := styleMap[st]; !exists {
					styleMap[st] = fmt.Sprintf("cellstyle%d", len(styleList)+1)
					styleList = append(styleList, st)
				}
			}
		}
	}

	// Helper to find most common value; ties go to the smaller key so the
	// output is stable.
	mostCommon := func(m propCount) string {
		best, val := 0, ""
		for k, v := range m {
			if v > best || (v == best && k < val) {
				best, val = v, k
			}
		}
		if best <= styledCells/2 {
			return ""
		}
		return val
	}

	// 2. Compute defaults
	def := chatedit.CellStyle{
		BorderColor:     sanitizeColor(mostCommon(borderColorCount)),
		HorizontalAlign: mostCommon(hAlignCount),
		VerticalAlign:   mostCommon(vAlignCount),
		FontColor:       sanitizeColor(mostCommon(fontColorCount)),
		Background:      sanitizeColor(mostCommon(bgColorCount)),
		WrapText:        wrapTextCount[true] > wrapTextCount[false],
	}

	// 3. Basic CSS
	builder.WriteString("<style>\n")
	builder.WriteString(".table { border-collapse: collapse; table-layout: fixed; margin-bottom: 2em; }\n")
	builder.WriteString(".table td { padding: 4px 8px;")
	if def.FontColor != "" {
		builder.WriteString(fmt.Sprintf(" color:#%s;", def.FontColor))
	}
	if def.Background != "" {
		builder.WriteString(fmt.Sprintf(" background-color:#%s;", def.Background))
	}
	if def.BorderColor != "" {
		builder.WriteString(fmt.Sprintf(" border:1px solid #%s;", def.BorderColor))
	} else {
		builder.WriteString(" border:1px solid #333;")
	}
	if !def.WrapText {
		builder.WriteString(" white-space:nowrap; overflow:hidden;")
	}
	if def.HorizontalAlign != "" {
		builder.WriteString(" " + textAlign(def.HorizontalAlign))
	}
	if def.VerticalAlign != "" {
		builder.WriteString(" " + verticalAlign(def.VerticalAlign))
	}
	builder.WriteString(" }\n")
	builder.WriteString(".table tr.header td { font-weight:bold; }\n")
	builder.WriteString(fmt.Sprintf(".table td.changed { outline:2px solid #%s; outline-offset:-2px; }\n", highlight))
	builder.WriteString(".sheet { margin-bottom: 2em; }\n")

	// 4. Render cell style classes (only properties that differ from default)
	for i, style := range styleList {
		if css := styleToCSSDiff(style, def); css != "" {
			builder.WriteString(fmt.Sprintf(".cellstyle%d { %s }\n", i+1, css))
		}
	}
	builder.WriteString("</style>\n")

	for _, sheet := range m.Sheets {
		totalPx := 0.0
		for _, w := range sheet.ColWidths {
			totalPx += w
		}
		builder.WriteString(fmt.Sprintf("<div class=\"sheet\" data-name=\"%s\">\n", html.EscapeString(sheet.Name)))
		builder.WriteString("<div style=\"width:100%;overflow-x:auto;\">\n")
		builder.WriteString(fmt.Sprintf("<table class=\"table\" style=\"width:%.0fpx;\">\n", totalPx))
		builder.WriteString("  <colgroup>\n")
		for _, w := range sheet.ColWidths {
			builder.WriteString(fmt.Sprintf("    <col style=\"width:%.0fpx;\">\n", w))
		}
		builder.WriteString("  </colgroup>\n")

		for _, row := range sheet.Rows {
			if row.Header {
				builder.WriteString("  <tr class=\"header\">\n")
			} else {
				builder.WriteString("  <tr>\n")
			}
			for _, cell := range row.Cells {
				// covered by a merge
				if cell == nil {
					continue
				}

				classes := []string{styleMap[cell.Style]}
				if cell.Changed {
					classes = append(classes, "changed")
				}
				attr := ""
				if cell.ColSpan > 1 {
					attr += fmt.Sprintf(" colspan=\"%d\"", cell.ColSpan)
				}
				if cell.RowSpan > 1 {
					attr += fmt.Sprintf(" rowspan=\"%d\"", cell.RowSpan)
				}
				if cell.Formula != "" {
					attr += fmt.Sprintf(" title=\"%s\"", html.EscapeString(cell.Formula))
				}

				escaped := html.EscapeString(cell.Value)
				// Explicit line breaks are preserved
				escaped = strings.ReplaceAll(escaped, "\n", "<br>")
				builder.WriteString(fmt.Sprintf("    <td data-cell=\"%s\"%s class=\"%s\">%s</td>\n",
					cell.Ref, attr, strings.Join(classes, " "), escaped))
			}
			builder.WriteString("  </tr>\n")
		}
		builder.WriteString("</table>\n</div>\n</div>\n")
	}
	return builder.String()
}

// styleToCSSDiff returns only the CSS properties from s that differ from def.
func styleToCSSDiff(s, def chatedit.CellStyle) string {
	var b strings.Builder
	if c := sanitizeColor(s.FontColor); c != "" && c != def.FontColor {
		b.WriteString(fmt.Sprintf("color:#%s;", c))
	}
	if c := sanitizeColor(s.Background); c != "" && c != def.Background {
		b.WriteString(fmt.Sprintf("background-color:#%s;", c))
	}
	if c := sanitizeColor(s.BorderColor); c != "" && c != def.BorderColor {
		b.WriteString(fmt.Sprintf("border:1px solid #%s;", c))
	}
	if s.Bold {
		b.WriteString("font-weight:bold;")
	}
	if s.Italic {
		b.WriteString("font-style:italic;")
	}
	if s.HorizontalAlign != "" && s.HorizontalAlign != def.HorizontalAlign {
		b.WriteString(textAlign(s.HorizontalAlign))
	}
	if s.VerticalAlign != "" && s.VerticalAlign != def.VerticalAlign {
		b.WriteString(verticalAlign(s.VerticalAlign))
	}
	if s.WrapText != def.WrapText {
		if s.WrapText {
			b.WriteString("white-space:normal;")
		} else {
			b.WriteString("white-space:nowrap;overflow:hidden;")
		}
	}
	return b.String()
}

func textAlign(a string) string {
	switch a {
	case "center", "centerContinuous", "distributed":
		return "text-align:center;"
	case "right":
		return "text-align:right;"
	case "justify":
		return "text-align:justify;"
	}
	return "text-align:left;"
}

func verticalAlign(a string) string {
	switch a {
	case "top":
		return "vertical-align:top;"
	case "middle", "center":
		return "vertical-align:middle;"
	}
	return "vertical-align:bottom;"
}

package xlsx

import (
	"cmp"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/aerissecure/chatedit"
)

// WriteWorkbook saves s as an XLSX to w, one worksheet per sheet in
// s.Sheets order. Formulas are written without cached values so Excel
// recalculates them on open.
func WriteWorkbook(w io.Writer, s chatedit.Snapshot) error {
	wb := spreadsheet.New()
	styles := make(map[chatedit.CellStyle]spreadsheet.CellStyle)

	names := s.Sheets
	if len(names) == 0 {
		names = []string{s.CurrentSheet}
	}
	for _, name := range names {
		d, ok := s.Sheet(name)
		if !ok {
			continue
		}
		sheet := wb.AddSheet()
		sheet.SetName(cmp.Or(name, "Sheet1"))
		if err := writeSheet(wb, sheet, d, styles); err != nil {
			return fmt.Errorf("write sheet %q: %w", name, err)
		}
	}

	if err := wb.Save(w); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(wb *spreadsheet.Workbook, sheet spreadsheet.Sheet, d chatedit.SheetData, styles map[chatedit.CellStyle]spreadsheet.CellStyle) error {
	for c, h := range d.Headers {
		if h != "" {
			sheet.Cell(chatedit.HeaderRef(c)).SetString(h)
		}
	}
	for r, row := range d.Rows {
		for c, v := range row {
			ref := chatedit.CellRef(c, r)
			if _, ok := d.Formulas[ref]; ok {
				continue
			}
			switch t := chatedit.NormalizeValue(v).(type) {
			case string:
				if t != "" {
					sheet.Cell(ref).SetString(t)
				}
			case float64:
				sheet.Cell(ref).SetNumber(t)
			case bool:
				sheet.Cell(ref).SetBool(t)
			}
		}
	}
	for _, ref := range sortedRefs(d.Formulas) {
		sheet.Cell(ref).SetFormulaRaw(strings.TrimPrefix(d.Formulas[ref], "="))
	}
	for _, ref := range sortedRefs(d.Styles) {
		st := d.Styles[ref]
		cs, ok := styles[st]
		if !ok {
			cs = addCellStyle(wb, st)
			styles[st] = cs
		}
		sheet.Cell(ref).SetStyle(cs)
	}
	for _, m := range d.Merges {
		from, to, ok := strings.Cut(m, ":")
		if !ok {
			return fmt.Errorf("bad merge range %q", m)
		}
		sheet.AddMergedCells(from, to)
	}
	for _, ref := range sortedRefs(d.Validations) {
		addValidation(sheet, ref, d.Validations[ref])
	}
	return nil
}

// addCellStyle registers st with the workbook style sheet.
func addCellStyle(wb *spreadsheet.Workbook, st chatedit.CellStyle) spreadsheet.CellStyle {
	cs := wb.StyleSheet.AddCellStyle()
	if st.Bold || st.Italic || st.FontColor != "" {
		font := wb.StyleSheet.AddFont()
		if st.Bold {
			font.SetBold(true)
		}
		if st.Italic {
			font.SetItalic(true)
		}
		if st.FontColor != "" {
			font.SetColor(color.FromHex("#" + st.FontColor))
		}
		cs.SetFont(font)
	}
	if st.Background != "" {
		fill := wb.StyleSheet.Fills().AddFill()
		pf := fill.SetPatternFill()
		pf.SetPattern(sml.ST_PatternTypeSolid)
		pf.SetFgColor(color.FromHex("#" + st.Background))
		cs.SetFill(fill)
	}
	if st.BorderColor != "" {
		c := color.FromHex("#" + st.BorderColor)
		b := wb.StyleSheet.AddBorder()
		b.SetLeft(sml.ST_BorderStyleThin, c)
		b.SetRight(sml.ST_BorderStyleThin, c)
		b.SetTop(sml.ST_BorderStyleThin, c)
		b.SetBottom(sml.ST_BorderStyleThin, c)
		cs.SetBorder(b)
	}
	switch st.HorizontalAlign {
	case "left":
		cs.SetHorizontalAlignment(sml.ST_HorizontalAlignmentLeft)
	case "center":
		cs.SetHorizontalAlignment(sml.ST_HorizontalAlignmentCenter)
	case "right":
		cs.SetHorizontalAlignment(sml.ST_HorizontalAlignmentRight)
	case "justify":
		cs.SetHorizontalAlignment(sml.ST_HorizontalAlignmentJustify)
	}
	switch st.VerticalAlign {
	case "top":
		cs.SetVerticalAlignment(sml.ST_VerticalAlignmentTop)
	case "middle", "center":
		cs.SetVerticalAlignment(sml.ST_VerticalAlignmentCenter)
	case "bottom":
		cs.SetVerticalAlignment(sml.ST_VerticalAlignmentBottom)
	}
	if st.WrapText {
		cs.SetWrapped(true)
	}
	if st.NumberFormat != "" {
		cs.SetNumberFormat(st.NumberFormat)
	}
	return cs
}

var operatorFromCriteria = map[string]spreadsheet.DVCompareOp{
	"between":          spreadsheet.DVCompareOpBetween,
	"not_between":      spreadsheet.DVCompareOpNotBetween,
	"equals":           spreadsheet.DVCompareOpEqual,
	"not_equals":       spreadsheet.DVCompareOpNotEqual,
	"greater_than":     spreadsheet.DVCompareOpGreater,
	"greater_or_equal": spreadsheet.DVCompareOpGreaterEqual,
	"less_than":        spreadsheet.DVCompareOpLess,
	"less_or_equal":    spreadsheet.DVCompareOpLessEqual,
}

// addValidation writes v for a single cell. Comparison rules without any
// bound and custom rules have nothing Excel can enforce and are skipped.
func addValidation(sheet spreadsheet.Sheet, ref string, v chatedit.Validation) {
	var kind spreadsheet.DVCompareType
	switch v.Type {
	case "list", "checkbox":
		values := v.Values
		if v.Type == "checkbox" {
			values = []string{"TRUE", "FALSE"}
		}
		dv := sheet.AddDataValidation()
		dv.SetRange(ref)
		dv.SetAllowBlank(v.AllowBlank)
		dv.SetList().SetValues(values)
		return
	case "whole":
		kind = spreadsheet.DVCompareTypeWholeNumber
	case "number", "decimal":
		kind = spreadsheet.DVCompareTypeDecimal
	case "date":
		kind = spreadsheet.DVCompareTypeDate
	case "text", "textlength":
		kind = spreadsheet.DVompareTypeTextLength
	default:
		return
	}
	if v.Min == nil && v.Max == nil {
		return
	}

	op, ok := operatorFromCriteria[v.Criteria]
	ranged := op == spreadsheet.DVCompareOpBetween || op == spreadsheet.DVCompareOpNotBetween
	switch {
	case ok && (!ranged || v.Min != nil && v.Max != nil):
	case v.Min != nil && v.Max != nil:
		op = spreadsheet.DVCompareOpBetween
	case v.Min != nil:
		op = spreadsheet.DVCompareOpGreaterEqual
	default:
		op = spreadsheet.DVCompareOpLessEqual
	}
	first, second := v.Min, v.Max
	if first == nil {
		first, second = v.Max, nil
	}

	dv := sheet.AddDataValidation()
	dv.SetRange(ref)
	dv.SetAllowBlank(v.AllowBlank)
	rule := dv.SetComparison(kind, op)
	rule.SetValue(formatBound(*first))
	if second != nil && (op == spreadsheet.DVCompareOpBetween || op == spreadsheet.DVCompareOpNotBetween) {
		rule.SetValue2(formatBound(*second))
	}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package xlsx

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/chatedit"
)

// ReadWorkbook reads an XLSX from r/size into a snapshot. Row 1 of every
// sheet becomes its headers; the first sheet is active. Formulas keep their
// cached values, and dates stay Excel serial numbers.
func ReadWorkbook(r io.ReaderAt, size int64) (chatedit.Snapshot, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return chatedit.Snapshot{}, fmt.Errorf("read workbook: %w", err)
	}

	var sheets []chatedit.NamedSheet
	for _, sheet := range wb.Sheets() {
		sheets = append(sheets, chatedit.NamedSheet{Name: sheet.Name(), Data: readSheet(wb, sheet)})
	}
	return chatedit.NewWorkbook(sheets), nil
}

func readSheet(wb *spreadsheet.Workbook, sheet spreadsheet.Sheet) chatedit.SheetData {
	type cellAt struct {
		row, col int // row 0 is the header row
		cell     spreadsheet.Cell
		value    chatedit.Value
		formula  string
	}
	var cells []cellAt
	// The grid ends at the last row and column holding a value or formula;
	// styled blank cells beyond it are dropped.
	maxRow, maxCol := -1, -1
	for _, row := range sheet.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			c := cellAt{row: rowIdx, col: int(reference.ColumnToIndex(colName)), cell: cell, value: cellValue(cell)}
			if f := cell.X().F; f != nil {
				c.formula = strings.TrimSpace(f.Content)
			}
			if c.value == nil && c.formula == "" && cell.X().SAttr == nil {
				continue
			}
			cells = append(cells, c)
			if c.value != nil || c.formula != "" {
				maxRow = max(maxRow, c.row)
				maxCol = max(maxCol, c.col)
			}
		}
	}

	d := chatedit.SheetData{
		Headers: make([]string, maxCol+1),
		Rows:    make([][]chatedit.Value, max(maxRow, 0)),
	}
	for i := range d.Rows {
		d.Rows[i] = make([]chatedit.Value, maxCol+1)
	}

	for _, c := range cells {
		if c.row > maxRow || c.col > maxCol {
			continue
		}
		ref := chatedit.HeaderRef(c.col)
		if c.row > 0 {
			ref = chatedit.CellRef(c.col, c.row-1)
		}
		if c.row == 0 {
			d.Headers[c.col] = strings.TrimSpace(chatedit.Display(c.value))
		} else {
			d.Rows[c.row-1][c.col] = c.value
		}

		if c.formula != "" {
			if d.Formulas == nil {
				d.Formulas = make(map[string]string)
			}
			d.Formulas[ref] = chatedit.NormalizeFormula(c.formula)
		}
		if x := c.cell.X(); x.SAttr != nil {
			if st := resolveStyle(wb, *x.SAttr); !st.IsZero() {
				if d.Styles == nil {
					d.Styles = make(map[string]chatedit.CellStyle)
				}
				d.Styles[ref] = st
			}
		}
	}

	if sheet.X().MergeCells != nil {
		for _, mc := range sheet.X().MergeCells.MergeCell {
			from, to, err := reference.ParseRangeReference(mc.RefAttr)
			if err != nil {
				continue
			}
			d.Merges = append(d.Merges, fmt.Sprintf("%s%d:%s%d", from.Column, from.RowIdx, to.Column, to.RowIdx))
		}
	}
	d.Validations = readValidations(sheet, maxRow, maxCol)
	return d
}

// cellValue returns the cached value of a cell as a snapshot value.
func cellValue(cell spreadsheet.Cell) chatedit.Value {
	x := cell.X()
	switch x.TAttr {
	case sml.ST_CellTypeB:
		b, err := cell.GetValueAsBool()
		if err != nil {
			return nil
		}
		return b
	case sml.ST_CellTypeS, sml.ST_CellTypeStr, sml.ST_CellTypeInlineStr, sml.ST_CellTypeE:
		if s := cell.GetString(); s != "" {
			return s
		}
		return nil
	}
	if x.V == nil || *x.V == "" {
		return nil
	}
	if n, err := cell.GetValueAsNumber(); err == nil {
		return n
	}
	return *x.V
}

// readValidations expands every data validation of sheet to the cells it
// covers, clipped to the used area.
func readValidations(sheet spreadsheet.Sheet, maxRow, maxCol int) map[string]chatedit.Validation {
	dvs := sheet.X().DataValidations
	if dvs == nil {
		return nil
	}
	out := make(map[string]chatedit.Validation)
	for _, dv := range dvs.DataValidation {
		v, ok := validationFromXML(dv)
		if !ok {
			continue
		}
		for _, sq := range dv.SqrefAttr {
			for _, ref := range strings.Fields(sq) {
				rng, ok := chatedit.ParseRange(ref)
				if !ok || rng.Columns {
					continue
				}
				for row := max(rng.From.Row, 0); row <= min(rng.To.Row, maxRow-1); row++ {
					for col := rng.From.Col; col <= min(rng.To.Col, maxCol); col++ {
						out[chatedit.CellRef(col, row)] = v
					}
				}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func validationFromXML(dv *sml.CT_DataValidation) (chatedit.Validation, bool) {
	v := chatedit.Validation{AllowBlank: dv.AllowBlankAttr != nil && *dv.AllowBlankAttr}
	formula := func(f *string) string {
		if f == nil {
			return ""
		}
		return strings.Trim(strings.TrimSpace(*f), `"`)
	}
	bound := func(f *string) *float64 {
		n, err := strconv.ParseFloat(formula(f), 64)
		if err != nil {
			return nil
		}
		return &n
	}

	switch dv.TypeAttr.String() {
	case "list":
		v.Type = "list"
		for _, item := range strings.Split(formula(dv.Formula1), ",") {
			if item = strings.TrimSpace(item); item != "" {
				v.Values = append(v.Values, item)
			}
		}
		if len(v.Values) == 0 {
			return v, false
		}
		if len(v.Values) == 2 && strings.EqualFold(v.Values[0], "TRUE") && strings.EqualFold(v.Values[1], "FALSE") {
			v.Type, v.Values = "checkbox", nil
		}
		return v, true
	case "whole":
		v.Type = "whole"
	case "decimal":
		v.Type = "number"
	case "date":
		v.Type = "date"
	case "textLength":
		v.Type = "textlength"
	case "custom":
		v.Type = "custom"
		v.Values = []string{formula(dv.Formula1)}
		return v, true
	default:
		return v, false
	}

	op := dv.OperatorAttr.String()
	if op == "" {
		op = "between"
	}
	v.Criteria = criteriaFromOperator[op]
	switch v.Criteria {
	case "between", "not_between":
		v.Min, v.Max = bound(dv.Formula1), bound(dv.Formula2)
	case "greater_than", "greater_or_equal":
		v.Min = bound(dv.Formula1)
	case "less_than", "less_or_equal":
		v.Max = bound(dv.Formula1)
	case "equals", "not_equals":
		v.Min = bound(dv.Formula1)
		v.Max = v.Min
	}
	return v, true
}

var criteriaFromOperator = map[string]string{
	"between":            "between",
	"notBetween":         "not_between",
	"equal":              "equals",
	"notEqual":           "not_equals",
	"greaterThan":        "greater_than",
	"greaterThanOrEqual": "greater_or_equal",
	"lessThan":           "less_than",
	"lessThanOrEqual":    "less_or_equal",
}

// sortedRefs returns the keys of m in row-major reference order.
func sortedRefs[V any](m map[string]V) []string {
	refs := make([]string, 0, len(m))
	for ref := range m {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		a, _ := chatedit.ParseCellRef(refs[i])
		b, _ := chatedit.ParseCellRef(refs[j])
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return refs
}

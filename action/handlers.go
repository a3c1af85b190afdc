package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aerissecure/chatedit"
)

// params is implemented by every per-type payload. check verifies the
// payload shape without looking at the snapshot.
type params interface {
	check(t *Target) error
}

type handler struct {
	check func(a Action) error
	run   func(s chatedit.Snapshot, a Action) (chatedit.Result, string, error)
}

// bind adapts a typed handler function to the dispatch table.
func bind[P params](fn func(s chatedit.Snapshot, t *Target, p P) (chatedit.Result, string)) handler {
	return handler{
		check: func(a Action) error {
			_, err := decode[P](a)
			return err
		},
		run: func(s chatedit.Snapshot, a Action) (chatedit.Result, string, error) {
			p, err := decode[P](a)
			if err != nil {
				return chatedit.Result{}, "", err
			}
			res, desc := fn(s, a.Target, p)
			return res, desc, nil
		},
	}
}

func decode[P params](a Action) (P, error) {
	var p P
	if len(a.Params) > 0 {
		if err := json.Unmarshal(a.Params, &p); err != nil {
			return p, fmt.Errorf("decode params: %w", err)
		}
	}
	return p, p.check(a.Target)
}

var handlers = map[Type]handler{
	SortData:          bind(sortData),
	FilterData:        bind(filterData),
	RemoveDuplicates:  bind(removeDuplicates),
	RemoveEmptyRows:   bind(removeEmptyRows),
	FindReplace:       bind(findReplace),
	SplitColumn:       bind(splitColumn),
	MergeColumns:      bind(mergeColumns),
	RenameColumn:      bind(renameColumn),
	InsertColumn:      bind(insertColumn),
	DeleteColumn:      bind(deleteColumn),
	InsertRow:         bind(insertRow),
	DeleteRow:         bind(deleteRow),
	EditCell:          bind(editCell),
	ClearRange:        bind(clearRange),
	FillDown:          bind(fillDown),
	TextTransform:     bind(textTransform),
	FormatNumber:      bind(formatNumber),
	GenerateIDs:       bind(generateIDs),
	SetFormula:        bind(setFormula),
	ApplyFormula:      bind(applyFormula),
	AddStatistics:     bind(addStatistics),
	PivotSummary:      bind(pivotSummary),
	DateCalculation:   bind(dateCalculation),
	DataValidation:    bind(dataValidation),
	RemoveValidation:  bind(removeValidation),
	ConditionalFormat: bind(conditionalFormat),
	FormatCells:       bind(formatCells),
	ClearFormat:       bind(clearFormat),
	MergeCells:        bind(mergeCells),
	AddSheet:          bind(addSheet),
	SwitchSheet:       bind(switchSheet),
}

// Types lists every supported action type in sorted order.
func Types() []Type {
	out := make([]Type, 0, len(handlers))
	for t := range handlers {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func unchanged(s chatedit.Snapshot) chatedit.Result {
	return chatedit.Result{Data: s.Clone()}
}

func count(res chatedit.Result, typ chatedit.ChangeType) int {
	n := 0
	for _, c := range res.Changes {
		if c.Type == typ {
			n++
		}
	}
	return n
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

var errColumn = errors.New("a column or target is required")

func needColumn(column text, t *Target) error {
	if column.String() == "" && !hasTarget(t) {
		return errColumn
	}
	return nil
}

// rangeCells resolves an explicit range parameter, falling back to the
// target.
func rangeCells(s chatedit.Snapshot, rng text, t *Target) []chatedit.CellPos {
	if rng.String() != "" {
		r, ok := chatedit.ParseRange(rng.String())
		if !ok {
			return nil
		}
		return s.Cells(r)
	}
	return t.Cells(s)
}

func needRange(rng text, t *Target) error {
	if rng.String() == "" && !hasTarget(t) {
		return errors.New("a range or target is required")
	}
	return nil
}

func refs(cells []chatedit.CellPos) []string {
	out := make([]string, len(cells))
	for i, p := range cells {
		out[i] = p.Ref()
	}
	return out
}

type sortParams struct {
	Column    text `json:"column"`
	Direction text `json:"direction"`
	Order     text `json:"order"`
}

func (p sortParams) direction() string {
	if d := p.Direction.String(); d != "" {
		return d
	}
	return p.Order.String()
}

func (p sortParams) check(t *Target) error {
	if _, ok := parseDirection(p.direction()); !ok {
		return fmt.Errorf("unknown sort direction %q", p.direction())
	}
	return needColumn(p.Column, t)
}

func parseDirection(s string) (desc, ok bool) {
	switch strings.ToLower(s) {
	case "", "asc", "ascending", "a-z", "up", "smallest_first":
		return false, true
	case "desc", "descending", "z-a", "down", "largest_first":
		return true, true
	}
	return false, false
}

func sortData(s chatedit.Snapshot, t *Target, p sortParams) (chatedit.Result, string) {
	col, ok := pickColumn(s, p.Column.String(), t)
	if !ok {
		return unchanged(s), "Sort column not found"
	}
	desc, _ := parseDirection(p.direction())
	dir := "ascending"
	if desc {
		dir = "descending"
	}
	return chatedit.SortRows(s, col, desc), fmt.Sprintf("Sorted by %s (%s)", s.Headers[col], dir)
}

type filterParams struct {
	Column   text `json:"column"`
	Operator text `json:"operator"`
	Value    any  `json:"value"`
	Value2   any  `json:"value2"`
}

func (p filterParams) condition() (chatedit.Condition, error) {
	op, ok := chatedit.ParseOperator(p.Operator.String())
	if !ok {
		return chatedit.Condition{}, fmt.Errorf("unknown operator %q", p.Operator)
	}
	c := chatedit.Condition{
		Operator: op,
		Value:    chatedit.NormalizeValue(p.Value),
		Value2:   chatedit.NormalizeValue(p.Value2),
	}
	if !c.Valid() {
		return c, fmt.Errorf("operator %s needs a value", op)
	}
	return c, nil
}

func (p filterParams) check(t *Target) error {
	if _, err := p.condition(); err != nil {
		return err
	}
	return needColumn(p.Column, t)
}

func filterData(s chatedit.Snapshot, t *Target, p filterParams) (chatedit.Result, string) {
	col, ok := pickColumn(s, p.Column.String(), t)
	if !ok {
		return unchanged(s), "Filter column not found"
	}
	cond, _ := p.condition()
	res := chatedit.FilterRows(s, col, cond)
	what := strings.ReplaceAll(string(cond.Operator), "_", " ")
	if cond.Operator != chatedit.OpEmpty && cond.Operator != chatedit.OpNotEmpty {
		what += " " + chatedit.Display(cond.Value)
	}
	return res, fmt.Sprintf("Filtered %s %s (removed %s)", s.Headers[col], what, plural(len(res.RemovedRows), "row"))
}

type columnsParams struct {
	Columns texts `json:"columns"`
}

func (columnsParams) check(*Target) error { return nil }

func removeDuplicates(s chatedit.Snapshot, t *Target, p columnsParams) (chatedit.Result, string) {
	cols := pickColumns(s, p.Columns, t)
	if (len(p.Columns) > 0 || hasTarget(t)) && len(cols) == 0 {
		return unchanged(s), "Duplicate check columns not found"
	}
	res := chatedit.RemoveDuplicates(s, cols)
	return res, fmt.Sprintf("Removed %s", plural(len(res.RemovedRows), "duplicate row"))
}

type noParams struct{}

func (noParams) check(*Target) error { return nil }

func removeEmptyRows(s chatedit.Snapshot, _ *Target, _ noParams) (chatedit.Result, string) {
	res := chatedit.RemoveEmptyRows(s)
	return res, fmt.Sprintf("Removed %s", plural(len(res.RemovedRows), "empty row"))
}

type findReplaceParams struct {
	Find          text  `json:"find"`
	Replace       text  `json:"replace"`
	Columns       texts `json:"columns"`
	MatchCase     flag  `json:"matchCase"`
	CaseSensitive flag  `json:"caseSensitive"`
	WholeCell     flag  `json:"wholeCell"`
}

func (p findReplaceParams) check(*Target) error {
	if p.Find == "" {
		return errors.New("find text is required")
	}
	return nil
}

func findReplace(s chatedit.Snapshot, t *Target, p findReplaceParams) (chatedit.Result, string) {
	opts := chatedit.FindReplaceOptions{
		Find:      string(p.Find),
		Replace:   string(p.Replace),
		MatchCase: bool(p.MatchCase || p.CaseSensitive),
		WholeCell: bool(p.WholeCell),
	}
	if len(p.Columns) > 0 || hasTarget(t) {
		opts.Columns = pickColumns(s, p.Columns, t)
		if len(opts.Columns) == 0 {
			return unchanged(s), "Find/replace columns not found"
		}
	}
	res := chatedit.FindReplace(s, opts)
	return res, fmt.Sprintf("Replaced %q with %q in %s", opts.Find, opts.Replace, plural(count(res, chatedit.ChangeValue), "cell"))
}

type splitParams struct {
	Column    text   `json:"column"`
	Delimiter text   `json:"delimiter"`
	MaxParts  number `json:"maxParts"`
	Names     texts  `json:"newColumnNames"`
}

func (p splitParams) check(t *Target) error {
	if p.Delimiter == "" {
		return errors.New("delimiter is required")
	}
	if p.MaxParts < 0 {
		return errors.New("maxParts must not be negative")
	}
	return needColumn(p.Column, t)
}

func splitColumn(s chatedit.Snapshot, t *Target, p splitParams) (chatedit.Result, string) {
	col, ok := pickColumn(s, p.Column.String(), t)
	if !ok {
		return unchanged(s), "Split column not found"
	}
	res := chatedit.SplitColumn(s, col, string(p.Delimiter), int(p.MaxParts), p.Names)
	return res, fmt.Sprintf("Split %s into %s", s.Headers[col], plural(len(res.NewColumns), "column"))
}

type mergeColumnsParams struct {
	Columns   texts `json:"columns"`
	Separator *text `json:"separator"`
	Name      text  `json:"newColumnName"`
}

func (p mergeColumnsParams) check(t *Target) error {
	if len(p.Columns) < 2 && !hasTarget(t) {
		return errors.New("at least two columns are required")
	}
	return nil
}

func mergeColumns(s chatedit.Snapshot, t *Target, p mergeColumnsParams) (chatedit.Result, string) {
	cols := pickColumns(s, p.Columns, t)
	if len(cols) == 0 {
		return unchanged(s), "Merge columns not found"
	}
	sep := " "
	if p.Separator != nil {
		sep = string(*p.Separator)
	}
	res := chatedit.MergeColumns(s, cols, sep, p.Name.String())
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = s.Headers[c]
	}
	return res, fmt.Sprintf("Merged %s into %s", strings.Join(names, ", "), res.Data.Headers[len(res.Data.Headers)-1])
}

type renameParams struct {
	Column  text `json:"column"`
	NewName text `json:"newName"`
}

func (p renameParams) check(t *Target) error {
	if p.NewName.String() == "" {
		return errors.New("newName is required")
	}
	return needColumn(p.Column, t)
}

func renameColumn(s chatedit.Snapshot, t *Target, p renameParams) (chatedit.Result, string) {
	col, ok := pickColumn(s, p.Column.String(), t)
	if !ok {
		return unchanged(s), "Column to rename not found"
	}
	return chatedit.RenameColumn(s, col, p.NewName.String()),
		fmt.Sprintf("Renamed %s to %s", s.Headers[col], p.NewName)
}

type insertColumnParams struct {
	Column text `json:"column"`
	After  flag `json:"after"`
	Header text `json:"header"`
}

func (insertColumnParams) check(*Target) error { return nil }

func insertColumn(s chatedit.Snapshot, t *Target, p insertColumnParams) (chatedit.Result, string) {
	at := s.ColCount()
	if col, ok := pickColumn(s, p.Column.String(), t); ok {
		at = col
		if p.After {
			at++
		}
	}
	header := p.Header.String()
	if header == "" {
		header = fmt.Sprintf("Column %d", at+1)
	}
	return chatedit.InsertColumn(s, at, header),
		fmt.Sprintf("Inserted column %s at %s", header, chatedit.ColumnLetter(at))
}

type deleteColumnParams struct {
	Column  text  `json:"column"`
	Columns texts `json:"columns"`
}

func (p deleteColumnParams) check(t *Target) error {
	if len(p.Columns) == 0 {
		return needColumn(p.Column, t)
	}
	return nil
}

func deleteColumn(s chatedit.Snapshot, t *Target, p deleteColumnParams) (chatedit.Result, string) {
	names := p.Columns
	if c := p.Column.String(); c != "" {
		names = append([]string{c}, names...)
	}
	cols := pickColumns(s, names, t)
	if len(cols) == 0 {
		return unchanged(s), "Columns to delete not found"
	}
	slices.Sort(cols)
	deleted := make([]string, len(cols))
	cur := s
	for i := len(cols) - 1; i >= 0; i-- {
		deleted[i] = s.Headers[cols[i]]
		cur = chatedit.DeleteColumn(cur, cols[i]).Data
	}
	res := chatedit.Result{Data: cur, Changes: chatedit.Diff(s, cur)}
	return res, fmt.Sprintf("Deleted %s", strings.Join(deleted, ", "))
}

type insertRowParams struct {
	Row   number `json:"row"`
	Count number `json:"count"`
}

func (p insertRowParams) check(*Target) error {
	if p.Count < 0 {
		return errors.New("count must not be negative")
	}
	return nil
}

func insertRow(s chatedit.Snapshot, t *Target, p insertRowParams) (chatedit.Result, string) {
	n := max(int(p.Count), 1)
	at := s.RowCount()
	switch {
	case p.Row >= 2:
		at = int(p.Row) - 2
	case hasTarget(t):
		if rows := t.Rows(s); len(rows) > 0 {
			at = rows[0]
		}
	}
	res := chatedit.InsertRows(s, at, n)
	added := res.Data.RowCount() - s.RowCount()
	if added == 0 {
		return res, fmt.Sprintf("No rows inserted: row %d is past the end of the sheet", at+2)
	}
	return res, fmt.Sprintf("Inserted %s at row %d", plural(added, "row"), at+2)
}

type deleteRowParams struct {
	Rows text `json:"rows"`
}

func (p deleteRowParams) check(t *Target) error {
	if p.Rows.String() == "" && !hasTarget(t) {
		return errors.New("rows or a target is required")
	}
	return nil
}

func deleteRow(s chatedit.Snapshot, t *Target, p deleteRowParams) (chatedit.Result, string) {
	rows := t.Rows(s)
	if p.Rows.String() != "" {
		rows = chatedit.ExpandRowSpec(p.Rows.String(), s.RowCount())
	}
	res := chatedit.DeleteRows(s, rows)
	return res, fmt.Sprintf("Deleted %s", plural(len(res.RemovedRows), "row"))
}

type editCellParams struct {
	Cell  text `json:"cell"`
	Value any  `json:"value"`
}

func (p editCellParams) cell(t *Target) (chatedit.CellPos, bool) {
	if p.Cell.String() != "" {
		return chatedit.ParseCellRef(p.Cell.String())
	}
	if t != nil && t.Type == TargetCell {
		return chatedit.ParseCellRef(t.Ref)
	}
	return chatedit.CellPos{}, false
}

func (p editCellParams) check(t *Target) error {
	if _, ok := p.cell(t); !ok {
		return errors.New("a valid cell reference is required")
	}
	return nil
}

func editCell(s chatedit.Snapshot, t *Target, p editCellParams) (chatedit.Result, string) {
	pos, _ := p.cell(t)
	return chatedit.SetCellValue(s, pos, p.Value),
		fmt.Sprintf("Set %s to %s", pos.Ref(), chatedit.Display(chatedit.NormalizeValue(p.Value)))
}

type rangeParams struct {
	Range text `json:"range"`
}

func (p rangeParams) check(t *Target) error { return needRange(p.Range, t) }

func clearRange(s chatedit.Snapshot, t *Target, p rangeParams) (chatedit.Result, string) {
	res := chatedit.ClearRange(s, rangeCells(s, p.Range, t))
	return res, fmt.Sprintf("Cleared %s", plural(count(res, chatedit.ChangeValue), "cell"))
}

type columnParams struct {
	Column text `json:"column"`
}

func (p columnParams) check(t *Target) error { return needColumn(p.Column, t) }

func fillDown(s chatedit.Snapshot, t *Target, p columnParams) (chatedit.Result, string) {
	col, ok := pickColumn(s, p.Column.String(), t)
	if !ok {
		return unchanged(s), "Fill column not found"
	}
	res := chatedit.FillDown(s, col)
	return res, fmt.Sprintf("Filled %s in %s", plural(count(res, chatedit.ChangeValue), "blank cell"), s.Headers[col])
}

type textParams struct {
	Column    text `json:"column"`
	Transform text `json:"transform"`
}

func (p textParams) check(*Target) error {
	if _, ok := chatedit.ParseTextMode(p.Transform.String()); !ok {
		return fmt.Errorf("unknown transform %q", p.Transform)
	}
	return nil
}

func textTransform(s chatedit.Snapshot, t *Target, p textParams) (chatedit.Result, string) {
	mode, _ := chatedit.ParseTextMode(p.Transform.String())
	res := chatedit.TransformText(s, pickCells(s, p.Column.String(), t), mode)
	return res, fmt.Sprintf("Applied %s to %s", mode, plural(count(res, chatedit.ChangeValue), "cell"))
}

type formatNumberParams struct {
	Column   text    `json:"column"`
	Format   text    `json:"format"`
	Decimals *number `json:"decimals"`
}

func (p formatNumberParams) check(*Target) error {
	if _, ok := chatedit.ParseNumberFormat(p.Format.String()); !ok {
		return fmt.Errorf("unknown number format %q", p.Format)
	}
	return nil
}

func formatNumber(s chatedit.Snapshot, t *Target, p formatNumberParams) (chatedit.Result, string) {
	format, _ := chatedit.ParseNumberFormat(p.Format.String())
	decimals := 2
	if p.Decimals != nil {
		decimals = int(*p.Decimals)
	}
	res := chatedit.FormatNumbers(s, pickCells(s, p.Column.String(), t), format, decimals)
	return res, fmt.Sprintf("Formatted %s as %s", plural(count(res, chatedit.ChangeValue), "cell"), format)
}

type idParams struct {
	Column    text    `json:"column"`
	Header    text    `json:"header"`
	Prefix    text    `json:"prefix"`
	Start     *number `json:"start"`
	Padding   number  `json:"padding"`
	UUID      flag    `json:"uuid"`
	OnlyEmpty flag    `json:"onlyEmpty"`
}

func (p idParams) check(*Target) error {
	if p.Padding < 0 || p.Padding > 20 {
		return errors.New("padding must be between 0 and 20")
	}
	return nil
}

func generateIDs(s chatedit.Snapshot, t *Target, p idParams) (chatedit.Result, string) {
	opts := chatedit.IDOptions{
		Column:    -1,
		Header:    p.Header.String(),
		Prefix:    string(p.Prefix),
		Start:     1,
		Padding:   int(p.Padding),
		UUID:      bool(p.UUID),
		OnlyEmpty: bool(p.OnlyEmpty),
	}
	if p.Start != nil {
		opts.Start = int(*p.Start)
	}
	if col, ok := pickColumn(s, p.Column.String(), t); ok {
		opts.Column = col
	} else if opts.Header == "" {
		opts.Header = p.Column.String()
	}
	res := chatedit.GenerateIDs(s, opts)
	col := opts.Column
	if len(res.NewColumns) > 0 {
		col = res.NewColumns[0]
	}
	name := ""
	if col >= 0 && col < res.Data.ColCount() {
		name = res.Data.Headers[col]
	}
	return res, fmt.Sprintf("Generated %s in %s", plural(s.RowCount(), "ID"), name)
}

type setFormulaParams struct {
	Cell    text `json:"cell"`
	Formula text `json:"formula"`
}

func (p setFormulaParams) cell(t *Target) (chatedit.CellPos, bool) {
	return editCellParams{Cell: p.Cell}.cell(t)
}

func (p setFormulaParams) check(t *Target) error {
	if p.Formula.String() == "" {
		return errors.New("formula is required")
	}
	if _, ok := p.cell(t); !ok {
		return errors.New("a valid cell reference is required")
	}
	return nil
}

func setFormula(s chatedit.Snapshot, t *Target, p setFormulaParams) (chatedit.Result, string) {
	pos, _ := p.cell(t)
	res := chatedit.SetCellFormula(s, pos, p.Formula.String())
	return res, fmt.Sprintf("Set formula %s in %s", chatedit.NormalizeFormula(p.Formula.String()), pos.Ref())
}

type applyFormulaParams struct {
	Column  text `json:"column"`
	Formula text `json:"formula"`
	Header  text `json:"header"`
}

func (p applyFormulaParams) check(t *Target) error {
	if p.Formula.String() == "" {
		return errors.New("formula is required")
	}
	if p.Header.String() == "" {
		return needColumn(p.Column, t)
	}
	return nil
}

func applyFormula(s chatedit.Snapshot, t *Target, p applyFormulaParams) (chatedit.Result, string) {
	col, ok := pickColumn(s, p.Column.String(), t)
	header := p.Header.String()
	if !ok {
		col = s.ColCount()
		if header == "" {
			header = p.Column.String()
		}
	}
	res := chatedit.ApplyFormulaToColumn(s, col, p.Formula.String(), header)
	name := ""
	if col < res.Data.ColCount() {
		name = res.Data.Headers[col]
	}
	return res, fmt.Sprintf("Applied %s to %s", chatedit.NormalizeFormula(p.Formula.String()), name)
}

type statsParams struct {
	Column   text `json:"column"`
	Function text `json:"function"`
}

func (p statsParams) check(t *Target) error {
	if _, ok := chatedit.ParseAggregate(p.Function.String()); !ok {
		return fmt.Errorf("unknown function %q", p.Function)
	}
	return needColumn(p.Column, t)
}

func addStatistics(s chatedit.Snapshot, t *Target, p statsParams) (chatedit.Result, string) {
	col, ok := pickColumn(s, p.Column.String(), t)
	if !ok {
		return unchanged(s), "Statistics column not found"
	}
	fn, _ := chatedit.ParseAggregate(p.Function.String())
	return chatedit.AddStatisticsRow(s, col, fn), fmt.Sprintf("Added %s of %s", fn, s.Headers[col])
}

type pivotParams struct {
	GroupBy     text `json:"groupBy"`
	ValueColumn text `json:"valueColumn"`
	Function    text `json:"function"`
}

func (p pivotParams) check(t *Target) error {
	if p.Function.String() != "" {
		if _, ok := chatedit.ParseAggregate(p.Function.String()); !ok {
			return fmt.Errorf("unknown function %q", p.Function)
		}
	}
	if p.ValueColumn.String() == "" {
		return errors.New("valueColumn is required")
	}
	return needColumn(p.GroupBy, t)
}

func pivotSummary(s chatedit.Snapshot, t *Target, p pivotParams) (chatedit.Result, string) {
	key, ok := pickColumn(s, p.GroupBy.String(), t)
	val, vok := s.ResolveColumn(p.ValueColumn.String())
	if !ok || !vok {
		return unchanged(s), "Summary columns not found"
	}
	fn := chatedit.AggSum
	if p.Function.String() != "" {
		fn, _ = chatedit.ParseAggregate(p.Function.String())
	}
	res, groups := chatedit.PivotSummary(s, key, val, fn)
	return res, fmt.Sprintf("Summarised %s by %s into %s", s.Headers[val], s.Headers[key], plural(len(groups), "group"))
}

type dateParams struct {
	Column      text   `json:"column"`
	OtherColumn text   `json:"otherColumn"`
	Operation   text   `json:"operation"`
	Amount      number `json:"amount"`
	Format      text   `json:"format"`
	Header      text   `json:"newColumnName"`
}

func (p dateParams) check(t *Target) error {
	op, ok := chatedit.ParseDateOp(p.Operation.String())
	if !ok {
		return fmt.Errorf("unknown date operation %q", p.Operation)
	}
	if op == chatedit.DateDaysBetween && p.OtherColumn.String() == "" {
		return errors.New("otherColumn is required")
	}
	return needColumn(p.Column, t)
}

func dateCalculation(s chatedit.Snapshot, t *Target, p dateParams) (chatedit.Result, string) {
	col, ok := pickColumn(s, p.Column.String(), t)
	if !ok {
		return unchanged(s), "Date column not found"
	}
	op, _ := chatedit.ParseDateOp(p.Operation.String())
	opts := chatedit.DateOptions{
		Column: col,
		Other:  -1,
		Op:     op,
		Amount: int(p.Amount),
		Layout: chatedit.DateLayout(p.Format.String()),
		Header: p.Header.String(),
	}
	if op == chatedit.DateDaysBetween {
		other, ok := s.ResolveColumn(p.OtherColumn.String())
		if !ok {
			return unchanged(s), "Second date column not found"
		}
		opts.Other = other
	}
	res := chatedit.CalculateDates(s, opts)
	return res, fmt.Sprintf("Calculated %s from %s", strings.ReplaceAll(string(op), "_", " "), s.Headers[col])
}

type validationParams struct {
	Range          text     `json:"range"`
	ValidationType text     `json:"validationType"`
	Criteria       text     `json:"criteria"`
	Values         texts    `json:"values"`
	Min            *float64 `json:"min"`
	Max            *float64 `json:"max"`
	AllowBlank     flag     `json:"allowBlank"`
}

func (p validationParams) check(t *Target) error {
	if !chatedit.ValidType(p.ValidationType.String()) {
		return fmt.Errorf("unknown validation type %q", p.ValidationType)
	}
	if strings.EqualFold(p.ValidationType.String(), "list") && len(p.Values) == 0 {
		return errors.New("list validation needs values")
	}
	return needRange(p.Range, t)
}

func dataValidation(s chatedit.Snapshot, t *Target, p validationParams) (chatedit.Result, string) {
	cells := refs(rangeCells(s, p.Range, t))
	v := chatedit.Validation{
		Type:       p.ValidationType.String(),
		Criteria:   p.Criteria.String(),
		Values:     p.Values,
		Min:        p.Min,
		Max:        p.Max,
		AllowBlank: bool(p.AllowBlank),
	}
	return chatedit.AddValidation(s, cells, v),
		fmt.Sprintf("Added %s validation to %s", strings.ToLower(v.Type), plural(len(cells), "cell"))
}

func removeValidation(s chatedit.Snapshot, t *Target, p rangeParams) (chatedit.Result, string) {
	cells := refs(rangeCells(s, p.Range, t))
	return chatedit.RemoveValidation(s, cells), fmt.Sprintf("Removed validation from %s", plural(len(cells), "cell"))
}

type conditionalParams struct {
	filterParams
	Range text  `json:"range"`
	Style style `json:"style"`
}

func (p conditionalParams) check(*Target) error {
	if _, err := p.condition(); err != nil {
		return err
	}
	if chatedit.CellStyle(p.Style).IsZero() {
		return errors.New("style is required")
	}
	return nil
}

func conditionalFormat(s chatedit.Snapshot, t *Target, p conditionalParams) (chatedit.Result, string) {
	cells := pickCells(s, p.Column.String(), t)
	if p.Range.String() != "" {
		cells = rangeCells(s, p.Range, nil)
	}
	cond, _ := p.condition()
	res := chatedit.ApplyConditionalFormat(s, cells, cond, chatedit.CellStyle(p.Style))
	return res, fmt.Sprintf("Highlighted %s where value %s", plural(count(res, chatedit.ChangeStyle), "cell"),
		strings.ReplaceAll(string(cond.Operator), "_", " "))
}

type formatCellsParams struct {
	Range text  `json:"range"`
	Style style `json:"style"`
}

func (p formatCellsParams) check(t *Target) error {
	if chatedit.CellStyle(p.Style).IsZero() {
		return errors.New("style is required")
	}
	return needRange(p.Range, t)
}

func formatCells(s chatedit.Snapshot, t *Target, p formatCellsParams) (chatedit.Result, string) {
	res := chatedit.ApplyStyle(s, rangeCells(s, p.Range, t), chatedit.CellStyle(p.Style))
	return res, fmt.Sprintf("Formatted %s", plural(count(res, chatedit.ChangeStyle), "cell"))
}

func clearFormat(s chatedit.Snapshot, t *Target, p rangeParams) (chatedit.Result, string) {
	res := chatedit.ClearStyles(s, rangeCells(s, p.Range, t))
	return res, fmt.Sprintf("Cleared formatting from %s", plural(count(res, chatedit.ChangeStyle), "cell"))
}

func mergeCells(s chatedit.Snapshot, t *Target, p rangeParams) (chatedit.Result, string) {
	ref := p.Range.String()
	if ref == "" && t != nil {
		ref = t.Ref
	}
	r, ok := chatedit.ParseRange(ref)
	if !ok {
		return unchanged(s), "Merge range not understood"
	}
	res := chatedit.MergeCells(s, r)
	if len(res.Data.Merges) == len(s.Merges) {
		return res, fmt.Sprintf("Could not merge %s", r)
	}
	return res, fmt.Sprintf("Merged %s", r)
}

type sheetParams struct {
	Name    text  `json:"name"`
	Headers texts `json:"headers"`
}

func (p sheetParams) check(*Target) error {
	if p.Name.String() == "" {
		return errors.New("sheet name is required")
	}
	return nil
}

func addSheet(s chatedit.Snapshot, _ *Target, p sheetParams) (chatedit.Result, string) {
	res := chatedit.AddSheet(s, p.Name.String(), p.Headers)
	return res, fmt.Sprintf("Added sheet %s", p.Name)
}

func switchSheet(s chatedit.Snapshot, _ *Target, p sheetParams) (chatedit.Result, string) {
	if _, ok := s.Sheet(p.Name.String()); !ok {
		return unchanged(s), fmt.Sprintf("Sheet %s not found", p.Name)
	}
	return chatedit.SwitchSheet(s, p.Name.String()), fmt.Sprintf("Switched to sheet %s", p.Name)
}

package chatedit

import "strings"

// Operator names a comparison used by FilterRows and ApplyConditionalFormat.
type Operator string

const (
	OpEquals         Operator = "equals"
	OpNotEquals      Operator = "not_equals"
	OpGreaterThan    Operator = "greater_than"
	OpLessThan       Operator = "less_than"
	OpGreaterOrEqual Operator = "greater_or_equal"
	OpLessOrEqual    Operator = "less_or_equal"
	OpContains       Operator = "contains"
	OpNotContains    Operator = "not_contains"
	OpStartsWith     Operator = "starts_with"
	OpEndsWith       Operator = "ends_with"
	OpEmpty          Operator = "is_empty"
	OpNotEmpty       Operator = "is_not_empty"
	OpBetween        Operator = "between"
)

var operatorAliases = map[string]Operator{
	"=": OpEquals, "==": OpEquals, "eq": OpEquals, "equal": OpEquals, "equals": OpEquals, "is": OpEquals,
	"!=": OpNotEquals, "<>": OpNotEquals, "ne": OpNotEquals, "not_equal": OpNotEquals, "not_equals": OpNotEquals,
	">": OpGreaterThan, "gt": OpGreaterThan, "greater_than": OpGreaterThan, "greater": OpGreaterThan,
	"<": OpLessThan, "lt": OpLessThan, "less_than": OpLessThan, "less": OpLessThan,
	">=": OpGreaterOrEqual, "gte": OpGreaterOrEqual, "greater_or_equal": OpGreaterOrEqual, "greater_than_or_equal": OpGreaterOrEqual,
	"<=": OpLessOrEqual, "lte": OpLessOrEqual, "less_or_equal": OpLessOrEqual, "less_than_or_equal": OpLessOrEqual,
	"contains": OpContains, "includes": OpContains,
	"not_contains": OpNotContains, "does_not_contain": OpNotContains,
	"starts_with": OpStartsWith, "begins_with": OpStartsWith,
	"ends_with": OpEndsWith, "finishes_with": OpEndsWith,
	"is_empty": OpEmpty, "empty": OpEmpty, "blank": OpEmpty,
	"is_not_empty": OpNotEmpty, "not_empty": OpNotEmpty, "not_blank": OpNotEmpty,
	"between": OpBetween,
}

// ParseOperator normalises the many spellings an AI payload may use.
func ParseOperator(s string) (Operator, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	op, ok := operatorAliases[key]
	return op, ok
}

// Condition is a predicate over one cell value. Value2 is the upper bound
// of OpBetween.
type Condition struct {
	Operator Operator
	Value    Value
	Value2   Value
}

// Valid reports whether c can be evaluated at all.
func (c Condition) Valid() bool {
	switch c.Operator {
	case OpEmpty, OpNotEmpty:
		return true
	case OpBetween:
		_, aok := ToNumber(c.Value)
		_, bok := ToNumber(c.Value2)
		return aok && bok
	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual,
		OpContains, OpNotContains, OpStartsWith, OpEndsWith:
		return c.Value != nil
	}
	return false
}

// Match evaluates c against v. Invalid conditions never match.
func (c Condition) Match(v Value) bool {
	if !c.Valid() {
		return false
	}
	switch c.Operator {
	case OpEmpty:
		return IsBlank(v)
	case OpNotEmpty:
		return !IsBlank(v)
	case OpEquals:
		return !IsBlank(v) && equalValues(v, c.Value)
	case OpNotEquals:
		return !equalValues(v, c.Value)
	case OpContains:
		return strings.Contains(fold(Display(v)), fold(Display(c.Value)))
	case OpNotContains:
		return !strings.Contains(fold(Display(v)), fold(Display(c.Value)))
	case OpStartsWith:
		return strings.HasPrefix(fold(Display(v)), fold(Display(c.Value)))
	case OpEndsWith:
		return strings.HasSuffix(fold(Display(v)), fold(Display(c.Value)))
	case OpBetween:
		n, ok := ToNumber(v)
		lo, _ := ToNumber(c.Value)
		hi, _ := ToNumber(c.Value2)
		if lo > hi {
			lo, hi = hi, lo
		}
		return ok && n >= lo && n <= hi
	}

	if IsBlank(v) {
		return false
	}
	cmp := compareValues(v, c.Value)
	switch c.Operator {
	case OpGreaterThan:
		return cmp > 0
	case OpLessThan:
		return cmp < 0
	case OpGreaterOrEqual:
		return cmp >= 0
	case OpLessOrEqual:
		return cmp <= 0
	}
	return false
}

// FilterRows keeps the rows whose col value satisfies cond and removes the
// rest. RemovedRows of the result lists the original indices dropped.
func FilterRows(s Snapshot, col int, cond Condition) Result {
	if col < 0 || col >= len(s.Headers) || !cond.Valid() {
		return noop(s)
	}
	var order []int
	for i, row := range s.Rows {
		if cond.Match(row[col]) {
			order = append(order, i)
		}
	}
	return reorder(s, order)
}

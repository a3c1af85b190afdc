package chatedit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NumberFormat selects how FormatNumbers renders numeric cells.
type NumberFormat string

const (
	NumberRound     NumberFormat = "round"     // stays a number
	NumberFixed     NumberFormat = "fixed"     // "1234.50"
	NumberThousands NumberFormat = "thousands" // "1,234.50"
	NumberCurrency  NumberFormat = "currency"  // "$1,234.50"
	NumberPercent   NumberFormat = "percent"   // 0.125 -> "12.5%"
)

// ParseNumberFormat accepts the common spellings of a number format.
func ParseNumberFormat(s string) (NumberFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round", "rounding", "integer", "number":
		return NumberRound, true
	case "fixed", "decimal", "decimals":
		return NumberFixed, true
	case "thousands", "comma", "grouped":
		return NumberThousands, true
	case "currency", "money", "usd", "dollar":
		return NumberCurrency, true
	case "percent", "percentage", "%":
		return NumberPercent, true
	}
	return "", false
}

// FormatNumbers rewrites the numeric cells among cells using format with
// the given number of decimals (clamped to 0..10). Non-numeric cells are
// skipped.
func FormatNumbers(s Snapshot, cells []CellPos, format NumberFormat, decimals int) Result {
	decimals = min(max(decimals, 0), 10)
	render := numberFunc(format, decimals)
	if render == nil {
		return noop(s)
	}
	out := s.Clone()
	for _, p := range cells {
		if !out.InBounds(p) {
			continue
		}
		n, ok := ToNumber(out.Rows[p.Row][p.Col])
		if !ok {
			continue
		}
		out.Rows[p.Row][p.Col] = render(n)
	}
	return finish(s, out)
}

func numberFunc(format NumberFormat, decimals int) func(float64) Value {
	p := message.NewPrinter(language.English)
	grouped := func(n float64) string {
		return p.Sprintf(fmt.Sprintf("%%.%df", decimals), n)
	}
	switch format {
	case NumberRound:
		scale := math.Pow(10, float64(decimals))
		return func(n float64) Value { return math.Round(n*scale) / scale }
	case NumberFixed:
		return func(n float64) Value { return strconv.FormatFloat(n, 'f', decimals, 64) }
	case NumberThousands:
		return func(n float64) Value { return grouped(n) }
	case NumberCurrency:
		return func(n float64) Value {
			if n < 0 {
				return "-$" + grouped(-n)
			}
			return "$" + grouped(n)
		}
	case NumberPercent:
		return func(n float64) Value {
			return strconv.FormatFloat(n*100, 'f', decimals, 64) + "%"
		}
	}
	return nil
}

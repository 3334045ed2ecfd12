package core

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency renders an amount as dollars with thousands separators and
// two decimals, e.g. "$1,234,567.89". The digits come from the decimal
// itself, so amounts beyond float64 precision print exactly.
func FormatCurrency(d decimal.Decimal) string {
	return dollars(d.Round(2), 2)
}

// FormatWholeCurrency renders an amount rounded to whole dollars with
// thousands separators, e.g. "$1,500,000".
func FormatWholeCurrency(d decimal.Decimal) string {
	return dollars(d.Round(0), 0)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func dollars(d decimal.Decimal, places int32) string {
	digits := d.Abs().StringFixed(places)
	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(whole))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// groupThousands inserts commas into a run of ASCII digits.
func groupThousands(digits string) string {
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	b.WriteString(digits[:min(lead, len(digits))])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders d with two decimals and comma thousands separators, e.g.
// 1234.5 -> "1,234.50".
func Format(d decimal.Decimal) string {
	d = d.Round(2)
	_, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + printer.Sprintf("%d", d.Abs().IntPart()) + "." + frac
}

package donation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a DECIMAL(10,2) amount column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

const (
	maxAmountLen = 32
	minExponent  = -maxAmountLen
	maxExponent  = 8
)

// ResolveAmount applies the form's precedence: a non-negative custom amount
// (thousands commas allowed) beats the preset; anything unparsable or out of
// range is zero.
func ResolveAmount(preset, custom string) decimal.Decimal {
	if c := strings.TrimSpace(custom); c != "" {
		if d, ok := parseAmount(strings.ReplaceAll(c, ",", "")); ok && !d.IsNegative() {
			return d
		}
	}
	if p := strings.TrimSpace(preset); p != "" {
		if d, ok := parseAmount(p); ok {
			return d
		}
	}
	return decimal.Zero
}

// parseAmount rounds s to cents. Inputs are bounded in length and exponent
// before any arithmetic so Round and Cmp stay cheap.
func parseAmount(s string) (decimal.Decimal, bool) {
	if len(s) > maxAmountLen {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if e := d.Exponent(); e < minExponent || e > maxExponent {
		return decimal.Zero, false
	}
	d = d.Round(2)
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

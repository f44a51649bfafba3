package export

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"PEN": "S/",
}

// FormatMoney renders amount with two decimals and thousands separators,
// prefixed by the currency symbol ("$1,234.50"). Codes without a known symbol
// are written out ("GBP 1,234.50").
func FormatMoney(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}
	prefix, ok := currencySymbols[code]
	if !ok {
		prefix = code + " "
	}

	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + prefix + group(d.StringFixed(2))
}

// FormatPercent renders a fractional rate as a percentage: 0.0525 with two
// decimals is "5.25%".
func FormatPercent(rate float64, decimals int32) string {
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(decimals) + "%"
}

// group inserts thousands separators into an unsigned fixed-point string.
func group(s string) string {
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

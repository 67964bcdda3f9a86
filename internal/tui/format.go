package tui

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a money value with the currency symbol and thousands
// separators, always with two decimal places: 45750.5 -> "$45,750.50".
func FormatAmount(symbol string, d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatSigned prefixes credits with + and debits with -, for ledger rows.
func FormatSigned(symbol, txType string, d decimal.Decimal) string {
	if txType == "credit" {
		return "+" + FormatAmount(symbol, d)
	}
	return "-" + FormatAmount(symbol, d)
}

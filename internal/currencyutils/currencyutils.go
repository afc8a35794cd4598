// Package currencyutils parses and formats the monetary amounts of bank exports.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses an export amount such as "1,234.50" or "-12". Commas are
// thousands separators and are removed; surrounding whitespace is ignored.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(amountStr), ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// FormatAmount renders an amount with two decimals and thousands separators,
// followed by currency when it is not empty: "1,234.50 AED".
func FormatAmount(amount decimal.Decimal, currency string) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	if currency != "" {
		b.WriteByte(' ')
		b.WriteString(currency)
	}
	return b.String()
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is the literal prefix for all rendered amounts (quetzal).
const CurrencyPrefix = "Q"

// FormatMoney renders an amount with the currency prefix and exactly two
// fractional digits, regardless of input precision: 10 → "Q 10.00",
// 10.5 → "Q 10.50".
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%s %s", CurrencyPrefix, decimal.NewFromFloat(amount).StringFixed(2))
}

// FormatPercent renders a margin with two decimals and a percent sign.
func FormatPercent(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(2) + "%"
}

// ParseAmount parses a monetary form field. Decimal parsing rejects the
// garbage float syntax strconv would accept (hex, exponents, Inf).
func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ErrValidation{Field: "amount", Message: "monto inválido: " + s}
	}
	return d.InexactFloat64(), nil
}

// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatAmount formats a money amount with the currency symbol, thousands
// separators and two decimals. e.g., 1234.5 -> "$1,234.50", -3 -> "-$3.00"
func FormatAmount(d decimal.Decimal, currency string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	whole, _ := new(big.Int).SetString(intPart, 10)
	return sign + currency + humanize.BigComma(whole) + "." + frac
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// Share returns part/whole as a 0-1 float, or 0 when whole is zero.
func Share(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).InexactFloat64()
}

// FormatDate shortens a stored expense date for table display.
// e.g., "2024-05-01T12:30:00.123456" -> "2024-05-01 12:30"
func FormatDate(raw string) string {
	if len(raw) >= 16 && raw[10] == 'T' {
		return raw[:10] + " " + raw[11:16]
	}
	return raw
}

// FormatCategory renders an empty category as a placeholder.
func FormatCategory(c string) string {
	if strings.TrimSpace(c) == "" {
		return "(none)"
	}
	return c
}

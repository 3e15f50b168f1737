// Package money handles currency amounts as integer minor units (cents).
// Decimal strings only exist at the edges; sums never touch floating point.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/oakdonuts/pos-backend/pkg/errors"
)

var centsFactor = decimal.NewFromInt(100)

// ParseAmount converts a decimal string like "2.50" into cents. Amounts with
// more than two fractional digits or a negative sign are rejected.
func ParseAmount(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount is required")
	}

	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "amount is not a decimal number")
	}
	if dec.IsNegative() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}
	if dec.Exponent() < -2 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount has more than two fractional digits")
	}

	return dec.Mul(centsFactor).IntPart(), nil
}

// FormatCents renders cents as a plain decimal string with two fractional
// digits, e.g. 250 -> "2.50".
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsFactor).StringFixed(2)
}

// FormatCentsUSD renders cents with a dollar sign for display, e.g. "$2.50".
func FormatCentsUSD(cents int64) string {
	return "$" + FormatCents(cents)
}

// SumCents adds line amounts. Plain integer addition, kept in one place so
// totals are computed the same way everywhere.
func SumCents(amounts ...int64) int64 {
	var total int64
	for _, a := range amounts {
		total += a
	}
	return total
}

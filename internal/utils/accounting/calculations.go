// Package accounting converts between decimal amounts in major units and
// integer cents.
package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MaxCents is the largest magnitude, in cents, any stored amount may have.
// Cents beyond it lose precision in float64 JSON clients.
const MaxCents int64 = 1 << 53

// InCentsRange reports whether cents fits the stored amount range.
func InCentsRange(cents decimal.Decimal) bool {
	return cents.Abs().LessThanOrEqual(decimal.NewFromInt(MaxCents))
}

// ToCents converts a major-unit amount to cents. The amount must not carry
// fractions of a cent.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than two decimal places", amount.String())
	}
	if !InCentsRange(cents) {
		return 0, fmt.Errorf("amount %s is out of range", amount.String())
	}
	return cents.IntPart(), nil
}

// AbsCents is ToCents of the magnitude. Bank feeds sign debits inconsistently,
// matching only cares about size.
func AbsCents(amount decimal.Decimal) (int64, error) {
	return ToCents(amount.Abs())
}

// FromCents converts cents back to a two-decimal major-unit amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents renders cents with two decimals, e.g. 12345 -> "123.45".
func FormatCents(cents int64) string {
	return FromCents(cents).StringFixed(2)
}

// Package money holds the fixed-point helpers shared by the ledger engine,
// the API layer and the CLI. Amounts are always shopspring decimals with two
// fractional digits on the wire; nothing here uses floating point.
package money

import (
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits amounts are rounded to.
const Places = 2

// tolerance is the dead-zone: balances whose magnitude does not exceed it are
// considered settled, and split totals may drift from the expense total by at
// most this much.
var tolerance = decimal.New(1, -Places)

// Tolerance returns the dead-zone bound, 0.01.
func Tolerance() decimal.Decimal {
	return tolerance
}

// Round rounds d to Places fractional digits.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// IsSettled reports whether d lies inside the dead-zone [-0.01, 0.01].
func IsSettled(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(tolerance)
}

// WithinTolerance reports whether a and b differ by at most 0.01.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// IsCents reports whether d has no more than Places fractional digits.
func IsCents(d decimal.Decimal) bool {
	return d.Equal(Round(d))
}

// Fixed renders d with exactly Places fractional digits, e.g. "10.00".
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Parse parses a decimal amount from its string form.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Format renders d in the display format of the given ISO currency code,
// e.g. Format(d, "USD") -> "$10.00". Unknown codes fall back to the bare
// code prefix that go-money produces for them.
func Format(d decimal.Decimal, code string) string {
	cur := *gomoney.New(0, code).Currency()
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

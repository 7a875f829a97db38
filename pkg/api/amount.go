package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fairly/internal/money"
)

// Amount is a currency value. It encodes as a JSON number with exactly two
// fractional digits (10 -> 10.00) and decodes from a JSON number or string.
// Values with sub-cent precision encode in full so that servers can reject
// them instead of seeing a silently rounded amount.
type Amount decimal.Decimal

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount { return Amount(d) }

// MustAmount parses s and panics on malformed input. Meant for tests and literals.
func MustAmount(s string) Amount { return Amount(decimal.RequireFromString(s)) }

// Decimal returns the underlying decimal.
func (a Amount) Decimal() decimal.Decimal { return decimal.Decimal(a) }

// String renders the amount with two fractional digits.
func (a Amount) String() string { return money.Fixed(a.Decimal()) }

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	d := a.Decimal()
	if !d.Equal(money.Round(d)) {
		return []byte(d.String()), nil
	}
	return []byte(money.Fixed(d)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}

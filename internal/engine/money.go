package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in integer minor units (paise, cents).
// All engine arithmetic is exact integer math; decimals exist only at
// the API boundary.
type Cents int64

// FromDecimal converts a decimal amount to cents, rounding half away
// from zero at two decimal places.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Round(2).Shift(2).IntPart())
}

// ParseAmount parses a decimal string into cents.
func ParseAmount(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Decimal converts cents back to a two-decimal amount.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount with two decimal places, e.g. "300.00".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// abs returns the absolute value.
func (c Cents) abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// divideEvenly returns amount/n rounded half away from zero.
// amount must be non-negative and n positive. 2*amount must fit in
// int64, which holds for any amount up to ~4.6e18 cents.
func divideEvenly(amount Cents, n int) Cents {
	return Cents((2*int64(amount) + int64(n)) / (2 * int64(n)))
}

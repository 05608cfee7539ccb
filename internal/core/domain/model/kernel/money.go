package kernel

import (
	"fmt"

	"steakz/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in the restaurant's single currency.
//
// It wraps github.com/shopspring/decimal so that price and tax arithmetic is exact: a subtotal
// of 100 at 10% tax yields exactly 10 and a total of exactly 110. Money marshals to JSON as a
// quoted decimal string, which keeps persisted cart prices lossless. Wire formats that need JSON
// numbers convert at the adapter boundary with MoneyFromFloat and Float64.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{amount: decimal.Zero}

// NewMoney parses a decimal string such as "12.50".
func NewMoney(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return Money{amount: d}, nil
}

// MustMoney is NewMoney for constants and tests; it panics on malformed input.
func MustMoney(value string) Money {
	m, err := NewMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromFloat converts a JSON number received from the remote API.
func MoneyFromFloat(value float64) Money {
	return Money{amount: decimal.NewFromFloat(value)}
}

// MoneyFromInt returns a whole amount.
func MoneyFromInt(value int64) Money {
	return Money{amount: decimal.NewFromInt(value)}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul multiplies by a whole quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// MulRate multiplies by a decimal rate such as a tax percentage expressed as 0.10.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Float64 returns the nearest float64, for wire formats that use JSON numbers.
func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

// Format renders the amount with two decimal places, e.g. "40.00".
func (m Money) Format() string {
	return m.amount.StringFixed(2)
}

func (m Money) String() string {
	return m.amount.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.amount.MarshalJSON()
}

// UnmarshalJSON accepts both quoted decimal strings and bare JSON numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid money amount: %w", err)
	}
	m.amount = d
	return nil
}

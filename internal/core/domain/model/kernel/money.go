package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places every monetary amount is
// rounded to at construction. All downstream arithmetic stays exact.
const moneyScale = 2

// Money is a non-negative fixed-decimal monetary amount. Prices, totals,
// fees, and the advance/final split are all computed on Money; binary
// floating point never touches a money path, so fee and advance
// computations cannot drift.
type Money struct {
	amount decimal.Decimal
	valid  bool
}

// NewMoneyFromString parses a decimal amount such as "50" or "49.50".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return newMoney(d)
}

// NewMoneyFromDecimal wraps an existing decimal value. Used when
// reconstructing aggregates from persistence.
func NewMoneyFromDecimal(d decimal.Decimal) (Money, error) {
	return newMoney(d)
}

func newMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", d.String()))
	}
	return Money{amount: d.Round(moneyScale), valid: true}, nil
}

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoneyFromString or NewMoneyFromDecimal")

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// MulQuantity multiplies a per-kilogram price by a weight, yielding a total.
func (m Money) MulQuantity(q Quantity) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(q.Kilograms())).Round(moneyScale), valid: m.valid}
}

// Fraction returns the given fraction of the amount, e.g. 0.30 for a 30%
// advance. The fraction is expressed as a decimal string to keep the
// computation exact.
func (m Money) Fraction(fraction decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(fraction).Round(moneyScale), valid: m.valid}
}

// Sub subtracts other from the amount. The result may not go negative.
func (m Money) Sub(other Money) (Money, error) {
	return newMoney(m.amount.Sub(other.amount))
}

// Add sums two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), valid: m.valid && other.valid}
}

// IsEqual compares two amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	if !m.valid {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

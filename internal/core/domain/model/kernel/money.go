package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places every monetary amount is
// rounded to. All amounts in the domain carry exactly two decimals.
const moneyScale = 2

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money values must be created using NewMoney, MoneyFromFloat, MoneyFromString, or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, MoneyFromFloat, MoneyFromString, or ZeroMoney constructors")

// Money is an immutable value object representing a currency amount with
// two-decimal precision. Amounts are rounded half away from zero to the
// nearest cent after every arithmetic operation, so derived totals never
// accumulate sub-cent residue.
//
// Constructors reject negative amounts: externally supplied prices and
// discounts must be non-negative. Arithmetic results of Sub may still be
// negative; callers that need the non-negative invariant check the result
// with IsNegative before committing it.
//
// Example:
//
//	price, err := kernel.MoneyFromFloat(99.99)
//	if err != nil {
//	    // Handle validation error
//	}
//	subtotal := price.MulInt(2) // 199.98
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount.
// The amount is rounded to two decimal places (half away from zero) before
// validation. Negative amounts are rejected.
//
// Parameters:
//   - amount: The decimal amount (must be >= 0 after rounding)
//
// Returns:
//   - Money: A valid monetary amount
//   - error: Validation error if the amount is negative
func NewMoney(amount decimal.Decimal) (Money, error) {
	rounded := amount.Round(moneyScale)
	if rounded.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", rounded.StringFixed(moneyScale)),
		)
	}

	return Money{
		amount: rounded,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromFloat creates a Money value from a float64 amount.
// The amount is rounded to two decimal places; negative amounts are rejected.
//
// Example:
//
//	discount, err := kernel.MoneyFromFloat(10)
//	if err != nil {
//	    return err
//	}
func MoneyFromFloat(v float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(v))
}

// MoneyFromString parses a Money value from its decimal string form,
// e.g. "189.98". Used when reconstructing amounts from persistence or
// external requests. Returns an error for malformed or negative input.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// ZeroMoney returns a properly constructed zero amount.
// This is the default order-level discount for orders composed without one.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate checks if the Money value was properly constructed using a constructor.
// The zero value of Money is invalid and will fail this validation.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Add returns the sum of two amounts, rounded to two decimal places.
func (m Money) Add(other Money) Money {
	return Money{
		amount: m.amount.Add(other.amount).Round(moneyScale),
		guard:  guard.NewConstructorGuard(),
	}
}

// Sub returns the difference of two amounts, rounded to two decimal places.
// The result may be negative; callers enforcing non-negativity must check
// IsNegative on the result.
func (m Money) Sub(other Money) Money {
	return Money{
		amount: m.amount.Sub(other.amount).Round(moneyScale),
		guard:  guard.NewConstructorGuard(),
	}
}

// MulInt returns the amount multiplied by an integer quantity,
// rounded to two decimal places.
func (m Money) MulInt(quantity int) Money {
	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(moneyScale),
		guard:  guard.NewConstructorGuard(),
	}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// GreaterThan reports whether the amount exceeds the other amount.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// LessThan reports whether the amount is below the other amount.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal value.
// Intended for persistence adapters and read models.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64.
// Safe for display purposes; the amount always carries two decimals.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the amount formatted with exactly two decimal places,
// e.g. "184.98". Implements the fmt.Stringer interface.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

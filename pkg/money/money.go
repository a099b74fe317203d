// Package money provides the fixed-point monetary value object used across
// finbook.
//
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents).
//   - Currency must be one of the supported codes.
//   - All arithmetic operations require matching currencies.
package money

import (
	"fmt"
	"math"
	"math/big"

	"finbook/pkg/currency"
)

var (
	// ErrInvalidCurrency is returned when a currency code is malformed or
	// outside the supported set.
	ErrInvalidCurrency = fmt.Errorf("invalid currency code")

	// ErrCurrencyMismatch is returned when performing operations on money
	// with different currencies.
	ErrCurrencyMismatch = fmt.Errorf("currency mismatch")

	// ErrOverflow is returned when an operation would exceed the int64 range.
	ErrOverflow = fmt.Errorf("amount exceeds maximum safe value")
)

// Money represents a monetary value in a specific currency. The zero value is
// not valid; construct with New or NewFromMinor.
type Money struct {
	amount int64
	code   currency.Code
}

// New creates a Money from a main-unit amount (e.g., dollars). The amount is
// converted to minor units with half-up rounding of any sub-minor remainder.
func New(amount float64, code currency.Code) (Money, error) {
	if !code.IsValidFormat() {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	if !currency.IsSupported(code) {
		return Money{}, fmt.Errorf("%w: %q is not supported", ErrInvalidCurrency, code)
	}
	minor, err := toMinorUnits(amount, currency.Decimals(code))
	if err != nil {
		return Money{}, err
	}
	return Money{amount: minor, code: code}, nil
}

// NewFromMinor creates a Money from an amount already expressed in minor
// units. Used for hydrating persisted balances.
func NewFromMinor(amount int64, code currency.Code) (Money, error) {
	if !code.IsValidFormat() || !currency.IsSupported(code) {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return Money{amount: amount, code: code}, nil
}

// Must creates a Money and panics on error. Intended for tests and constants.
func Must(amount float64, code currency.Code) Money {
	m, err := New(amount, code)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%v, %v): %v", amount, code, err))
	}
	return m
}

// Zero returns a zero-valued Money in the given currency.
func Zero(code currency.Code) Money {
	return Money{amount: 0, code: code}
}

// Minor returns the amount in minor units.
func (m Money) Minor() int64 {
	return m.amount
}

// Float returns the amount as a float64 in main units. For display only;
// arithmetic stays in minor units.
func (m Money) Float() float64 {
	r := new(big.Rat).SetInt64(m.amount)
	d := new(big.Rat).SetInt64(pow10(currency.Decimals(m.code)))
	f, _ := new(big.Rat).Quo(r, d).Float64()
	return f
}

// Currency returns the currency code.
func (m Money) Currency() currency.Code {
	return m.code
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) (Money, error) {
	if m.code != other.code {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.code, other.code)
	}
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, ErrOverflow
	}
	return Money{amount: sum, code: m.code}, nil
}

// Subtract returns the difference of both amounts. The result may be
// negative; callers enforce their own balance invariants.
func (m Money) Subtract(other Money) (Money, error) {
	if m.code != other.code {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.code, other.code)
	}
	diff := m.amount - other.amount
	if (other.amount < 0 && diff < m.amount) || (other.amount > 0 && diff > m.amount) {
		return Money{}, ErrOverflow
	}
	return Money{amount: diff, code: m.code}, nil
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.code == other.code
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) (bool, error) {
	if m.code != other.code {
		return false, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.code, other.code)
	}
	return m.amount < other.amount, nil
}

// Equals reports whether both amount and currency match.
func (m Money) Equals(other Money) bool {
	return m.code == other.code && m.amount == other.amount
}

// String formats the amount with the currency's minor-unit precision.
func (m Money) String() string {
	return fmt.Sprintf("%.*f %s", currency.Decimals(m.code), m.Float(), m.code)
}

// toMinorUnits converts a main-unit float to minor units, rejecting values
// that would overflow int64.
func toMinorUnits(amount float64, decimals int) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("invalid amount: %v", amount)
	}
	r := new(big.Rat).SetFloat64(amount)
	if r == nil {
		return 0, fmt.Errorf("invalid amount: %v", amount)
	}
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt64(pow10(decimals)))
	f, _ := scaled.Float64()
	if f > float64(math.MaxInt64) || f < float64(math.MinInt64) {
		return 0, ErrOverflow
	}
	return int64(math.Round(f)), nil
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

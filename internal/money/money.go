// Package money provides the decimal money type and rate arithmetic used
// throughout the simulator. Amounts are decimal.Decimal values rounded to
// cents; rates are plain decimals where 0.07 means 7%.
package money

import "github.com/shopspring/decimal"

// Money is a decimal currency amount.
type Money = decimal.Decimal

var (
	// Zero is the zero amount.
	Zero = decimal.Zero

	one = decimal.NewFromInt(1)
)

// FromFloat converts a float (e.g. a parsed config value) into an amount
// rounded to cents.
func FromFloat(f float64) Money {
	return decimal.NewFromFloat(f).Round(2)
}

// FromInt converts whole currency units into an amount.
func FromInt(n int64) Money {
	return decimal.NewFromInt(n)
}

// Rate converts a float rate (0.07 = 7%) into a decimal without rounding.
func Rate(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Cents rounds an amount to two decimal places.
func Cents(m Money) Money {
	return m.Round(2)
}

// ApplyRate returns amount * rate, rounded to cents.
func ApplyRate(amount Money, rate decimal.Decimal) Money {
	return Cents(amount.Mul(rate))
}

// Grow returns amount * (1 + rate), rounded to cents.
func Grow(amount Money, rate decimal.Decimal) Money {
	return Cents(amount.Mul(one.Add(rate)))
}

// Min returns the smaller of two amounts.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Package tax computes yearly tax obligations from a ledger of taxable
// events. The engine is regime-agnostic: bracket tables, payroll rates,
// penalty rates, distribution divisors and contribution limits are all
// configuration it never mutates.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
)

// Bracket is one progressive tax bracket. A zero Ceiling means the
// bracket is unbounded (the top bracket).
type Bracket struct {
	Floor   money.Money
	Ceiling money.Money
	Rate    decimal.Decimal
}

// Payroll holds flat-rate wage tax parameters: a capped rate (social
// security style) and an uncapped rate with a surtax above a
// status-dependent threshold (medicare style).
type Payroll struct {
	CappedRate decimal.Decimal
	WageBase   money.Money

	FlatRate        decimal.Decimal
	SurtaxRate      decimal.Decimal
	SurtaxThreshold map[model.FilingStatus]money.Money
}

// RMDDivisor maps an age to its life-expectancy divisor. Tables are
// ordered by age and divisors decrease monotonically.
type RMDDivisor struct {
	Age     int
	Divisor decimal.Decimal
}

// Regime is the full tax configuration for a simulation run. It is pure
// data: the tax engine reads it and never writes it, so one regime can be
// shared across independent runs.
type Regime struct {
	Brackets          map[model.FilingStatus][]Bracket
	StandardDeduction map[model.FilingStatus]money.Money
	Payroll           Payroll

	// PenaltyRate is the flat surcharge on early retirement distributions.
	// RetirementAge is the age at which the penalty stops applying.
	PenaltyRate   decimal.Decimal
	RetirementAge int

	// RMDDivisors drives required minimum distributions; distributions
	// start at the first table age.
	RMDDivisors []RMDDivisor

	// ContributionLimit caps yearly retirement contributions; CatchUp is
	// added once a person reaches CatchUpAge.
	ContributionLimit money.Money
	CatchUpAge        int
	CatchUp           money.Money
}

// ContributionLimitAt returns the yearly retirement contribution limit
// for a person of the given age.
func (r *Regime) ContributionLimitAt(age int) money.Money {
	limit := r.ContributionLimit
	if r.CatchUpAge > 0 && age >= r.CatchUpAge {
		limit = limit.Add(r.CatchUp)
	}
	return limit
}

// Early reports whether a withdrawal at the given age is penalized.
func (r *Regime) Early(age int) bool {
	return age < r.RetirementAge
}

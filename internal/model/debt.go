package model

import (
	"github.com/shopspring/decimal"

	"github.com/mreece/fincast/internal/money"
)

// DebtKind identifies how a debt amortizes.
type DebtKind string

const (
	// DebtRevolving is a credit line (credit card). The principal may grow
	// through draws, bounded by the credit limit.
	DebtRevolving DebtKind = "revolving"

	// DebtAmortized is a fixed-payment loan (mortgage, car, student loan).
	DebtAmortized DebtKind = "amortized"
)

// Debt is a balance-owed instrument owned by exactly one Person. Principal
// only increases through interest accrual or, for revolving debt, through
// draws made by the payment resolver.
type Debt struct {
	Name         string
	Kind         DebtKind
	Principal    money.Money
	InterestRate decimal.Decimal

	// CreditLimit bounds revolving draws. Ignored for amortized debt.
	CreditLimit money.Money

	// MinPaymentRate is the revolving minimum payment as a fraction of
	// principal; MinPaymentFloor is the smallest nonzero minimum payment.
	MinPaymentRate  decimal.Decimal
	MinPaymentFloor money.Money

	// FixedPayment is the yearly payment on amortized debt.
	FixedPayment money.Money

	// InterestYTD records interest accrued this year, for statistics.
	// Reset by the engine at year end.
	InterestYTD money.Money
}

// ApplyInterest accrues one year of interest onto the principal. Called
// exactly once per year, before any payment that year.
func (d *Debt) ApplyInterest() {
	if !d.Principal.IsPositive() {
		return
	}
	interest := money.ApplyRate(d.Principal, d.InterestRate)
	d.Principal = d.Principal.Add(interest)
	d.InterestYTD = d.InterestYTD.Add(interest)
}

// MinimumPaymentDue returns this year's required debt-service payment,
// never more than the outstanding principal.
func (d *Debt) MinimumPaymentDue() money.Money {
	if !d.Principal.IsPositive() {
		return money.Zero
	}
	var due money.Money
	switch d.Kind {
	case DebtRevolving:
		due = money.Max(money.ApplyRate(d.Principal, d.MinPaymentRate), d.MinPaymentFloor)
	default:
		due = d.FixedPayment
	}
	return money.Min(due, d.Principal)
}

// Pay reduces the principal by up to amount and returns the amount applied.
func (d *Debt) Pay(amount money.Money) money.Money {
	paid := money.Min(d.Principal, money.Max(amount, money.Zero))
	d.Principal = d.Principal.Sub(paid)
	return paid
}

// AvailableCredit returns the unused credit on a revolving line.
func (d *Debt) AvailableCredit() money.Money {
	if d.Kind != DebtRevolving {
		return money.Zero
	}
	return money.Max(d.CreditLimit.Sub(d.Principal), money.Zero)
}

// Draw raises the principal by up to amount, capped at the credit limit,
// and returns the amount actually drawn.
func (d *Debt) Draw(amount money.Money) money.Money {
	drawn := money.Min(d.AvailableCredit(), money.Max(amount, money.Zero))
	d.Principal = d.Principal.Add(drawn)
	return drawn
}

// ResetYear clears the year-scoped interest counter.
func (d *Debt) ResetYear() {
	d.InterestYTD = money.Zero
}

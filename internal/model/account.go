package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mreece/fincast/internal/money"
)

// ErrContributionLimit is returned when a contribution would push an
// account past its yearly limit. Exceeding the limit would corrupt the
// year's tax computation, so it surfaces as an error instead of being
// silently capped.
var ErrContributionLimit = errors.New("contribution exceeds yearly limit")

// AccountKind identifies the tax treatment of an account.
type AccountKind string

const (
	// AccountLiquid is a checking/savings style account. Withdrawals are
	// free; the balance must never go negative.
	AccountLiquid AccountKind = "liquid"

	// AccountPretax is a tax-deferred retirement account (401k,
	// traditional IRA). Withdrawals are ordinary income and penalized
	// before retirement age.
	AccountPretax AccountKind = "pretax"

	// AccountRoth is a post-tax retirement account. Withdrawals are free.
	AccountRoth AccountKind = "roth"

	// AccountHSA is a health savings account. Non-qualified withdrawals
	// are taxed like pre-tax retirement money.
	AccountHSA AccountKind = "hsa"

	// AccountBrokerage is a taxable investment account. Withdrawals
	// realize capital gains pro rata to cost basis.
	AccountBrokerage AccountKind = "brokerage"
)

// Account is a balance-holding instrument owned by exactly one Person.
type Account struct {
	Name       string
	Kind       AccountKind
	Balance    money.Money
	GrowthRate decimal.Decimal

	// CostBasis tracks the contributed principal of a brokerage account
	// so withdrawals can realize gains. Ignored for other kinds.
	CostBasis money.Money

	// ContributionLimit caps contributions per year; zero means the
	// regime-wide limit (or none) applies instead.
	ContributionLimit money.Money

	// ContributedYTD counts this year's contributions. Reset by the
	// engine at year end.
	ContributedYTD money.Money

	// PlannedContribution is the yearly discretionary contribution moved
	// into this account from the owner's liquid funds (IRA or HSA style).
	// Job-driven retirement contributions are configured on the job.
	PlannedContribution money.Money
}

// ApplyGrowth advances the account one year. The engine calls this exactly
// once per year, before any withdrawal reads the balance.
func (a *Account) ApplyGrowth() {
	a.Balance = money.Grow(a.Balance, a.GrowthRate)
}

// Deposit adds funds without counting against the contribution limit
// (e.g. wages landing in checking, an RMD arriving from a 401k).
func (a *Account) Deposit(amount money.Money) {
	a.Balance = a.Balance.Add(amount)
	if a.Kind == AccountBrokerage {
		a.CostBasis = a.CostBasis.Add(amount)
	}
}

// Contribute adds funds subject to the yearly limit.
func (a *Account) Contribute(amount money.Money) error {
	if !a.ContributionLimit.IsZero() &&
		a.ContributedYTD.Add(amount).GreaterThan(a.ContributionLimit) {
		return fmt.Errorf("%w: account %q limit %s, contributed %s, adding %s",
			ErrContributionLimit, a.Name, a.ContributionLimit, a.ContributedYTD, amount)
	}
	a.ContributedYTD = a.ContributedYTD.Add(amount)
	a.Deposit(amount)
	return nil
}

// Withdraw removes up to amount from the account and returns how much was
// actually withdrawn. The balance never goes negative.
func (a *Account) Withdraw(amount money.Money) money.Money {
	withdrawn, _ := a.WithdrawWithGain(amount)
	return withdrawn
}

// WithdrawWithGain removes up to amount and, for brokerage accounts, also
// returns the realized capital gain: the withdrawn amount times the
// account's gain fraction at the moment of withdrawal. Cost basis is
// reduced proportionally.
func (a *Account) WithdrawWithGain(amount money.Money) (withdrawn, gain money.Money) {
	withdrawn = money.Min(a.Balance, money.Max(amount, money.Zero))
	if withdrawn.IsZero() {
		return money.Zero, money.Zero
	}

	if a.Kind == AccountBrokerage && a.Balance.IsPositive() {
		basisFraction := a.CostBasis.DivRound(a.Balance, 8)
		basisOut := money.Cents(withdrawn.Mul(basisFraction))
		gain = withdrawn.Sub(basisOut)
		if gain.IsNegative() {
			gain = money.Zero
		}
		a.CostBasis = money.Max(a.CostBasis.Sub(basisOut), money.Zero)
	}

	a.Balance = a.Balance.Sub(withdrawn)
	return withdrawn, gain
}

// ResetYear clears the year-scoped contribution counter.
func (a *Account) ResetYear() {
	a.ContributedYTD = money.Zero
}

// Retirement reports whether the account is a retirement-style account
// subject to contribution limits and early-withdrawal rules.
func (a *Account) Retirement() bool {
	return a.Kind == AccountPretax || a.Kind == AccountRoth
}

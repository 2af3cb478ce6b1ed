package tax

import (
	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
)

// Ledger accumulates one tax filing unit's taxable events for a single
// year. It is created fresh each year and threaded explicitly through the
// orchestration; there is no ambient tax state.
type Ledger struct {
	wages            money.Money
	ordinaryIncome   money.Money
	realizedGains    money.Money
	earlyWithdrawals money.Money
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		wages:            money.Zero,
		ordinaryIncome:   money.Zero,
		realizedGains:    money.Zero,
		earlyWithdrawals: money.Zero,
	}
}

// AddWages records taxable wage income.
func (l *Ledger) AddWages(amount money.Money) {
	l.wages = l.wages.Add(amount)
}

// AddOrdinaryIncome records non-wage ordinary income (pre-tax retirement
// distributions, including RMDs).
func (l *Ledger) AddOrdinaryIncome(amount money.Money) {
	l.ordinaryIncome = l.ordinaryIncome.Add(amount)
}

// AddCost records a withdrawal cost produced by the payment resolver.
func (l *Ledger) AddCost(c model.Cost) {
	switch c.Kind {
	case model.CostOrdinaryIncome:
		l.ordinaryIncome = l.ordinaryIncome.Add(c.Amount)
	case model.CostRealizedGain:
		l.realizedGains = l.realizedGains.Add(c.Amount)
	case model.CostEarlyWithdrawal:
		l.earlyWithdrawals = l.earlyWithdrawals.Add(c.Amount)
	}
}

// AddCosts records every cost in the slice.
func (l *Ledger) AddCosts(costs []model.Cost) {
	for _, c := range costs {
		l.AddCost(c)
	}
}

// Merge folds another ledger into this one (joint filing).
func (l *Ledger) Merge(other *Ledger) {
	l.wages = l.wages.Add(other.wages)
	l.ordinaryIncome = l.ordinaryIncome.Add(other.ordinaryIncome)
	l.realizedGains = l.realizedGains.Add(other.realizedGains)
	l.earlyWithdrawals = l.earlyWithdrawals.Add(other.earlyWithdrawals)
}

// Wages returns total taxable wages, the payroll tax base.
func (l *Ledger) Wages() money.Money { return l.wages }

// TotalIncome returns the income-tax base before deductions: wages,
// ordinary income and realized gains.
func (l *Ledger) TotalIncome() money.Money {
	return l.wages.Add(l.ordinaryIncome).Add(l.realizedGains)
}

// EarlyWithdrawals returns the penalty tax base.
func (l *Ledger) EarlyWithdrawals() money.Money { return l.earlyWithdrawals }

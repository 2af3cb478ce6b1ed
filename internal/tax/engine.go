package tax

import (
	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
)

// Obligation is the result of one year's tax computation for one filing
// unit. The penalty is kept separate from income tax to avoid double
// counting: penalized amounts already appear in the income tax base.
type Obligation struct {
	Income  money.Money
	Payroll money.Money
	Penalty money.Money
}

// Total returns the combined obligation.
func (o Obligation) Total() money.Money {
	return o.Income.Add(o.Payroll).Add(o.Penalty)
}

// Engine computes obligations against a fixed regime.
type Engine struct {
	regime *Regime
}

// NewEngine creates a tax engine for the given regime.
func NewEngine(regime *Regime) *Engine {
	return &Engine{regime: regime}
}

// Compute derives the year's obligation from a ledger of taxable events.
// Income tax applies progressive brackets to total income less the
// standard deduction; payroll tax applies to wages only; the penalty is a
// flat surcharge on early withdrawals.
func (e *Engine) Compute(ledger *Ledger, status model.FilingStatus) Obligation {
	return Obligation{
		Income:  e.incomeTax(ledger.TotalIncome(), status),
		Payroll: e.payrollTax(ledger.Wages(), status),
		Penalty: money.ApplyRate(ledger.EarlyWithdrawals(), e.regime.PenaltyRate),
	}
}

// IncomeTaxOn exposes the bracket computation for a given taxable income,
// used by callers estimating marginal effects.
func (e *Engine) IncomeTaxOn(income money.Money, status model.FilingStatus) Obligation {
	return Obligation{Income: e.incomeTax(income, status)}
}

func (e *Engine) incomeTax(income money.Money, status model.FilingStatus) money.Money {
	taxable := money.Max(income.Sub(e.regime.StandardDeduction[status]), money.Zero)
	return bracketTax(e.regime.Brackets[status], taxable)
}

// bracketTax walks the brackets low to high, taxing the slice of income
// that falls inside each one. Brackets are never re-ordered.
func bracketTax(brackets []Bracket, taxable money.Money) money.Money {
	total := money.Zero
	for _, b := range brackets {
		inBracket := money.Max(taxable.Sub(b.Floor), money.Zero)
		if !b.Ceiling.IsZero() {
			inBracket = money.Min(inBracket, b.Ceiling.Sub(b.Floor))
		}
		if !inBracket.IsPositive() {
			continue
		}
		total = total.Add(money.ApplyRate(inBracket, b.Rate))
	}
	return total
}

func (e *Engine) payrollTax(wages money.Money, status model.FilingStatus) money.Money {
	p := e.regime.Payroll

	capped := money.ApplyRate(money.Min(wages, p.WageBase), p.CappedRate)
	flat := money.ApplyRate(wages, p.FlatRate)

	surtax := money.Zero
	if threshold, ok := p.SurtaxThreshold[status]; ok && wages.GreaterThan(threshold) {
		surtax = money.ApplyRate(wages.Sub(threshold), p.SurtaxRate)
	}

	return capped.Add(flat).Add(surtax)
}

package engine

import (
	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
)

// PersonSnapshot is one person's year-end state. TaxesPaid is recorded on
// the head of the person's filing unit; a jointly-filing spouse shows
// zero.
type PersonSnapshot struct {
	Name string `json:"name"`
	Age  int    `json:"age"`

	Income      money.Money `json:"income"`
	IncomeTax   money.Money `json:"incomeTax"`
	PayrollTax  money.Money `json:"payrollTax"`
	PenaltyTax  money.Money `json:"penaltyTax"`
	TaxesPaid   money.Money `json:"taxesPaid"`
	Spending    money.Money `json:"spending"`
	DebtService money.Money `json:"debtService"`
	Premiums    money.Money `json:"premiums"`
	RMD         money.Money `json:"rmd"`

	Liquid     money.Money `json:"liquid"`
	Pretax     money.Money `json:"pretax"`
	Roth       money.Money `json:"roth"`
	HSA        money.Money `json:"hsa"`
	Brokerage  money.Money `json:"brokerage"`
	PolicyCash money.Money `json:"policyCash"`
	Debt       money.Money `json:"debt"`

	Retired   bool `json:"retired"`
	Insolvent bool `json:"insolvent"`
}

// Totals aggregates a year across the whole family.
type Totals struct {
	Income      money.Money `json:"income"`
	TaxesPaid   money.Money `json:"taxesPaid"`
	Spending    money.Money `json:"spending"`
	DebtService money.Money `json:"debtService"`
	RMD         money.Money `json:"rmd"`

	Liquid     money.Money `json:"liquid"`
	Pretax     money.Money `json:"pretax"`
	Roth       money.Money `json:"roth"`
	HSA        money.Money `json:"hsa"`
	Brokerage  money.Money `json:"brokerage"`
	PolicyCash money.Money `json:"policyCash"`
	Debt       money.Money `json:"debt"`
	NetWorth   money.Money `json:"netWorth"`
}

// Snapshot is the immutable record of one simulated year. Snapshots are
// appended to the run's sequence and never mutated afterwards.
type Snapshot struct {
	Year      int              `json:"year"`
	Persons   []PersonSnapshot `json:"persons"`
	Totals    Totals           `json:"totals"`
	Insolvent bool             `json:"insolvent"`
	Events    []string         `json:"events,omitempty"`
}

// personSnapshot reads one person's year-end state off the instruments.
func personSnapshot(p *model.Person, py *personYear) PersonSnapshot {
	// Cash value net of outstanding policy loans.
	policyCash := money.Zero
	for _, pol := range p.Policies {
		policyCash = policyCash.Add(pol.CashValue.Sub(pol.LoanBalance))
	}

	return PersonSnapshot{
		Name:        p.Name,
		Age:         p.Age,
		Income:      py.income,
		IncomeTax:   py.taxes.Income,
		PayrollTax:  py.taxes.Payroll,
		PenaltyTax:  py.taxes.Penalty,
		TaxesPaid:   py.taxes.Total(),
		Spending:    py.spending,
		DebtService: py.debtService,
		Premiums:    py.premiums,
		RMD:         py.rmd,
		Liquid:      p.BalanceOf(model.AccountLiquid),
		Pretax:      p.BalanceOf(model.AccountPretax),
		Roth:        p.BalanceOf(model.AccountRoth),
		HSA:         p.BalanceOf(model.AccountHSA),
		Brokerage:   p.BalanceOf(model.AccountBrokerage),
		PolicyCash:  policyCash,
		Debt:        p.TotalDebt(),
		Retired:     p.Retired(),
		Insolvent:   p.Insolvent,
	}
}

// aggregate sums person snapshots into family totals.
func aggregate(persons []PersonSnapshot) Totals {
	t := Totals{
		Income: money.Zero, TaxesPaid: money.Zero, Spending: money.Zero,
		DebtService: money.Zero, RMD: money.Zero, Liquid: money.Zero,
		Pretax: money.Zero, Roth: money.Zero, HSA: money.Zero,
		Brokerage: money.Zero, PolicyCash: money.Zero, Debt: money.Zero,
		NetWorth: money.Zero,
	}
	for _, ps := range persons {
		t.Income = t.Income.Add(ps.Income)
		t.TaxesPaid = t.TaxesPaid.Add(ps.TaxesPaid)
		t.Spending = t.Spending.Add(ps.Spending).Add(ps.Premiums)
		t.DebtService = t.DebtService.Add(ps.DebtService)
		t.RMD = t.RMD.Add(ps.RMD)
		t.Liquid = t.Liquid.Add(ps.Liquid)
		t.Pretax = t.Pretax.Add(ps.Pretax)
		t.Roth = t.Roth.Add(ps.Roth)
		t.HSA = t.HSA.Add(ps.HSA)
		t.Brokerage = t.Brokerage.Add(ps.Brokerage)
		t.PolicyCash = t.PolicyCash.Add(ps.PolicyCash)
		t.Debt = t.Debt.Add(ps.Debt)
	}
	assets := t.Liquid.Add(t.Pretax).Add(t.Roth).Add(t.HSA).Add(t.Brokerage).Add(t.PolicyCash)
	t.NetWorth = assets.Sub(t.Debt)
	return t
}

package model

import (
	"github.com/shopspring/decimal"

	"github.com/mreece/fincast/internal/money"
)

// FilingStatus is a person's tax filing status.
type FilingStatus string

const (
	FilingSingle       FilingStatus = "single"
	FilingMarriedJoint FilingStatus = "married-joint"
)

// Spending models a person's discretionary living expenses: a base amount
// that grows yearly plus one-time expenses added during the year.
type Spending struct {
	Base           money.Money
	YearlyIncrease decimal.Decimal

	oneTime money.Money
}

// AddExpense queues a one-time expense for the current year.
func (s *Spending) AddExpense(amount money.Money) {
	s.oneTime = s.oneTime.Add(amount)
}

// YearlyAmount returns this year's total discretionary spending.
func (s *Spending) YearlyAmount() money.Money {
	return s.Base.Add(s.oneTime)
}

// AdvanceYear grows the base and clears one-time expenses.
func (s *Spending) AdvanceYear() {
	s.Base = money.Grow(s.Base, s.YearlyIncrease)
	s.oneTime = money.Zero
}

// Person is an agent holding jobs, accounts, debts and insurance. A
// Person owns its instruments by composition and is only ever mutated by
// the simulation engine, one year at a time.
type Person struct {
	Name          string
	Age           int
	RetirementAge int
	Filing        FilingStatus

	// Spouse names the other member of a married-filing-jointly pair.
	// Both spouses must name each other; config validation enforces this.
	Spouse string

	Jobs           []*Job
	Accounts       []*Account
	Debts          []*Debt
	Policies       []*Policy
	Spending       *Spending
	SocialSecurity *SocialSecurity

	// Priority is the withdrawal order for bill funding, as instrument
	// names. Empty means the default order: liquid, brokerage, roth,
	// pre-tax, HSA, policy loans, revolving credit.
	Priority []string

	// Insolvent is set when a bill could not be fully funded this year.
	// Reset by the engine at the start of each year.
	Insolvent bool
}

// Retired reports whether the person has reached their retirement age.
func (p *Person) Retired() bool {
	return p.Age >= p.RetirementAge
}

// Account returns the named account, or nil.
func (p *Person) Account(name string) *Account {
	for _, a := range p.Accounts {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Debt returns the named debt, or nil.
func (p *Person) Debt(name string) *Debt {
	for _, d := range p.Debts {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Policy returns the named policy, or nil.
func (p *Person) Policy(name string) *Policy {
	for _, pol := range p.Policies {
		if pol.Name == name {
			return pol
		}
	}
	return nil
}

// FirstLiquid returns the person's first liquid account, the destination
// for wages and mandatory distributions. Config validation guarantees
// every person has one.
func (p *Person) FirstLiquid() *Account {
	for _, a := range p.Accounts {
		if a.Kind == AccountLiquid {
			return a
		}
	}
	return nil
}

// BalanceOf sums balances across accounts of one kind.
func (p *Person) BalanceOf(kind AccountKind) money.Money {
	total := money.Zero
	for _, a := range p.Accounts {
		if a.Kind == kind {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// TotalDebt sums outstanding principal across all debts.
func (p *Person) TotalDebt() money.Money {
	total := money.Zero
	for _, d := range p.Debts {
		total = total.Add(d.Principal)
	}
	return total
}

// FundingSources builds the person's prioritized funding source list.
// early marks pre-tax and HSA withdrawals as penalized. Capacities are
// not snapshotted here; each source reads its instrument live.
func (p *Person) FundingSources(early bool) []FundingSource {
	if len(p.Priority) > 0 {
		sources := make([]FundingSource, 0, len(p.Priority))
		for _, name := range p.Priority {
			if src := p.sourceByName(name, early); src != nil {
				sources = append(sources, src)
			}
		}
		return sources
	}
	return p.defaultSources(early)
}

func (p *Person) sourceByName(name string, early bool) FundingSource {
	if a := p.Account(name); a != nil {
		return &AccountSource{Account: a, Early: early}
	}
	if d := p.Debt(name); d != nil && d.Kind == DebtRevolving {
		return &DebtSource{Debt: d}
	}
	if pol := p.Policy(name); pol != nil {
		return &PolicyLoanSource{Policy: pol}
	}
	return nil
}

func (p *Person) defaultSources(early bool) []FundingSource {
	var sources []FundingSource
	for _, kind := range []AccountKind{
		AccountLiquid, AccountBrokerage, AccountRoth, AccountPretax, AccountHSA,
	} {
		for _, a := range p.Accounts {
			if a.Kind == kind {
				sources = append(sources, &AccountSource{Account: a, Early: early})
			}
		}
	}
	for _, pol := range p.Policies {
		sources = append(sources, &PolicyLoanSource{Policy: pol})
	}
	for _, d := range p.Debts {
		if d.Kind == DebtRevolving {
			sources = append(sources, &DebtSource{Debt: d})
		}
	}
	return sources
}

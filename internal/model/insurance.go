package model

import (
	"github.com/shopspring/decimal"

	"github.com/mreece/fincast/internal/money"
)

// Policy models a permanent life insurance policy: a yearly premium, a
// cash value that grows, and the ability to borrow against that cash
// value. Policy loans are a funding source of last resort and carry no
// immediate tax consequence.
type Policy struct {
	Name         string
	Premium      money.Money
	CashValue    money.Money
	GrowthRate   decimal.Decimal
	LoanBalance  money.Money
	LoanInterest decimal.Decimal
}

// ApplyGrowth grows the cash value and accrues interest on any
// outstanding policy loan. Called once per year alongside account growth.
func (p *Policy) ApplyGrowth() {
	p.CashValue = money.Grow(p.CashValue, p.GrowthRate)
	if p.LoanBalance.IsPositive() {
		p.LoanBalance = money.Grow(p.LoanBalance, p.LoanInterest)
	}
}

// LoanAvailable returns how much can still be borrowed against the policy.
func (p *Policy) LoanAvailable() money.Money {
	return money.Max(p.CashValue.Sub(p.LoanBalance), money.Zero)
}

// Borrow takes up to amount as a policy loan and returns the amount lent.
func (p *Policy) Borrow(amount money.Money) money.Money {
	lent := money.Min(p.LoanAvailable(), money.Max(amount, money.Zero))
	p.LoanBalance = p.LoanBalance.Add(lent)
	return lent
}

// PremiumBill returns this year's premium obligation, or a zero bill if
// the policy has no premium.
func (p *Policy) PremiumBill(year int) Bill {
	return Bill{
		Amount:   p.Premium,
		Category: BillInsurancePremium,
		Year:     year,
		Memo:     p.Name,
	}
}

package model

import "github.com/mreece/fincast/internal/money"

// CostKind classifies the tax consequence of drawing from a funding
// source. Costs are side-effect obligations: they are folded into the
// year's tax computation, not paid at withdrawal time.
type CostKind string

const (
	// CostOrdinaryIncome taxes the withdrawn amount as ordinary income
	// (pre-tax retirement and HSA withdrawals).
	CostOrdinaryIncome CostKind = "ordinary-income"

	// CostEarlyWithdrawal marks the withdrawn amount as subject to the
	// early-distribution penalty.
	CostEarlyWithdrawal CostKind = "early-withdrawal"

	// CostRealizedGain taxes the realized capital gain portion of a
	// brokerage withdrawal.
	CostRealizedGain CostKind = "realized-gain"
)

// Cost is a taxable consequence incurred by a withdrawal.
type Cost struct {
	Kind   CostKind
	Amount money.Money
}

// FundingSource is a view over an instrument capable of supplying money
// toward a Bill. Capacity reflects the instrument's state at query time,
// so bills resolved later in a year see the balances left by earlier ones.
type FundingSource interface {
	SourceName() string

	// AvailableCapacity returns how much the source could supply right now.
	AvailableCapacity() money.Money

	// Withdraw takes up to amount from the source. It returns the amount
	// actually withdrawn (never more than capacity) and any taxable costs
	// incurred by the draw.
	Withdraw(amount money.Money) (withdrawn money.Money, costs []Cost)
}

// AccountSource exposes an Account as a funding source. Early marks the
// owner as under retirement age, making pre-tax and HSA draws penalized.
type AccountSource struct {
	Account *Account
	Early   bool
}

func (s *AccountSource) SourceName() string { return s.Account.Name }

func (s *AccountSource) AvailableCapacity() money.Money { return s.Account.Balance }

func (s *AccountSource) Withdraw(amount money.Money) (money.Money, []Cost) {
	switch s.Account.Kind {
	case AccountBrokerage:
		withdrawn, gain := s.Account.WithdrawWithGain(amount)
		if gain.IsPositive() {
			return withdrawn, []Cost{{Kind: CostRealizedGain, Amount: gain}}
		}
		return withdrawn, nil

	case AccountPretax, AccountHSA:
		withdrawn := s.Account.Withdraw(amount)
		if withdrawn.IsZero() {
			return withdrawn, nil
		}
		costs := []Cost{{Kind: CostOrdinaryIncome, Amount: withdrawn}}
		if s.Early {
			costs = append(costs, Cost{Kind: CostEarlyWithdrawal, Amount: withdrawn})
		}
		return withdrawn, costs

	default: // liquid, roth
		return s.Account.Withdraw(amount), nil
	}
}

// DebtSource exposes a revolving debt's unused credit as a funding source.
// Drawing carries no immediate tax cost; the price is paid through later
// debt service.
type DebtSource struct {
	Debt *Debt
}

func (s *DebtSource) SourceName() string { return s.Debt.Name }

func (s *DebtSource) AvailableCapacity() money.Money { return s.Debt.AvailableCredit() }

func (s *DebtSource) Withdraw(amount money.Money) (money.Money, []Cost) {
	return s.Debt.Draw(amount), nil
}

// PolicyLoanSource exposes an insurance policy's cash value as a loan.
type PolicyLoanSource struct {
	Policy *Policy
}

func (s *PolicyLoanSource) SourceName() string { return s.Policy.Name }

func (s *PolicyLoanSource) AvailableCapacity() money.Money { return s.Policy.LoanAvailable() }

func (s *PolicyLoanSource) Withdraw(amount money.Money) (money.Money, []Cost) {
	return s.Policy.Borrow(amount), nil
}

// Package payment implements the payment resolution service: satisfying a
// bill from a prioritized list of funding sources with different
// withdrawal costs.
package payment

import (
	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
)

// Draw records how much one source supplied toward a bill and the taxable
// costs the draw incurred.
type Draw struct {
	Source string
	Amount money.Money
	Costs  []model.Cost
}

// FundingPlan is the outcome of resolving one bill: per-source draws, the
// total funded, and any unresolved shortfall. A positive shortfall signals
// insolvency for the bill; what to do about it is the caller's policy.
type FundingPlan struct {
	Bill      model.Bill
	Draws     []Draw
	Funded    money.Money
	Shortfall money.Money
}

// Costs flattens the taxable costs across all draws.
func (p *FundingPlan) Costs() []model.Cost {
	var costs []model.Cost
	for _, d := range p.Draws {
		costs = append(costs, d.Costs...)
	}
	return costs
}

// Resolve satisfies bill from sources in priority order, withdrawing
// min(remaining, capacity) at each source and applying the withdrawals as
// it goes. Zero-capacity sources are skipped; no source is ever drawn past
// its capacity. Costs are accumulated on the plan, not paid here: the tax
// consequences of a withdrawal are computed once per year.
//
// Capacities are read live from instrument state at each step, so a bill
// resolved after another in the same year sees the balances the earlier
// bill left behind.
func Resolve(bill model.Bill, sources []model.FundingSource) FundingPlan {
	plan := FundingPlan{Bill: bill, Funded: money.Zero}

	remaining := bill.Amount
	for _, src := range sources {
		if !remaining.IsPositive() {
			break
		}
		capacity := src.AvailableCapacity()
		if !capacity.IsPositive() {
			continue
		}

		withdrawn, costs := src.Withdraw(money.Min(remaining, capacity))
		if !withdrawn.IsPositive() {
			continue
		}

		plan.Draws = append(plan.Draws, Draw{
			Source: src.SourceName(),
			Amount: withdrawn,
			Costs:  costs,
		})
		plan.Funded = plan.Funded.Add(withdrawn)
		remaining = remaining.Sub(withdrawn)
	}

	plan.Shortfall = money.Max(remaining, money.Zero)
	return plan
}

package config

import (
	"github.com/mreece/fincast/internal/engine"
	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
	"github.com/mreece/fincast/internal/tax"
)

// Built is the runtime graph a scenario constructs: one isolated
// family/regime pair per call, so concurrent runs never share state.
type Built struct {
	Family  *model.Family
	Regime  *tax.Regime
	Options engine.Options
}

// Build validates the scenario and constructs a fresh instance graph.
func (s *Scenario) Build() (*Built, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	family := &model.Family{
		SharedExpenses: money.FromFloat(s.Family.SharedExpenses),
	}
	for i := range s.Family.Persons {
		family.Add(buildPerson(&s.Family.Persons[i]))
	}

	return &Built{
		Family: family,
		Regime: s.buildRegime(),
		Options: engine.Options{
			StartYear: s.StartYear,
			EndYear:   s.EndYear,
			Shortfall: engine.ShortfallPolicy(s.ShortfallPolicy),
		},
	}, nil
}

func (s *Scenario) buildRegime() *tax.Regime {
	r := &s.Regime

	brackets := make(map[model.FilingStatus][]tax.Bracket, len(r.Brackets))
	for status, rows := range r.Brackets {
		table := make([]tax.Bracket, len(rows))
		for i, b := range rows {
			table[i] = tax.Bracket{
				Floor:   money.FromFloat(b.Floor),
				Ceiling: money.FromFloat(b.Ceiling),
				Rate:    money.Rate(b.Rate),
			}
		}
		brackets[filingStatuses[status]] = table
	}

	deductions := make(map[model.FilingStatus]money.Money, len(r.StandardDeduction))
	for status, amount := range r.StandardDeduction {
		deductions[filingStatuses[status]] = money.FromFloat(amount)
	}

	thresholds := make(map[model.FilingStatus]money.Money, len(r.Payroll.SurtaxThreshold))
	for status, amount := range r.Payroll.SurtaxThreshold {
		thresholds[filingStatuses[status]] = money.FromFloat(amount)
	}

	divisors := make([]tax.RMDDivisor, len(r.RMD.Divisors))
	for i, row := range r.RMD.Divisors {
		divisors[i] = tax.RMDDivisor{Age: row.Age, Divisor: money.Rate(row.Divisor)}
	}

	return &tax.Regime{
		Brackets:          brackets,
		StandardDeduction: deductions,
		Payroll: tax.Payroll{
			CappedRate:      money.Rate(r.Payroll.SocialSecurityRate),
			WageBase:        money.FromFloat(r.Payroll.WageBase),
			FlatRate:        money.Rate(r.Payroll.MedicareRate),
			SurtaxRate:      money.Rate(r.Payroll.SurtaxRate),
			SurtaxThreshold: thresholds,
		},
		PenaltyRate:       money.Rate(r.PenaltyRate),
		RetirementAge:     r.RetirementAge,
		RMDDivisors:       divisors,
		ContributionLimit: money.FromFloat(r.ContributionLimit),
		CatchUpAge:        r.CatchUpAge,
		CatchUp:           money.FromFloat(r.CatchUpAmount),
	}
}

func buildPerson(pc *PersonConfig) *model.Person {
	p := &model.Person{
		Name:          pc.Name,
		Age:           pc.Age,
		RetirementAge: pc.RetirementAge,
		Filing:        filingStatuses[pc.Filing],
		Spouse:        pc.Spouse,
		Spending: &model.Spending{
			Base:           money.FromFloat(pc.Spending.Base),
			YearlyIncrease: money.Rate(pc.Spending.YearlyIncrease),
		},
		Priority: append([]string(nil), pc.WithdrawalPriority...),
	}
	if ss := pc.SocialSecurity; ss != nil {
		p.SocialSecurity = &model.SocialSecurity{
			Benefit:  money.FromFloat(ss.Benefit),
			StartAge: ss.StartAge,
			COLA:     money.Rate(ss.COLA),
		}
	}

	for _, ac := range pc.Accounts {
		p.Accounts = append(p.Accounts, &model.Account{
			Name:                ac.Name,
			Kind:                accountKinds[ac.Kind],
			Balance:             money.FromFloat(ac.Balance),
			GrowthRate:          money.Rate(ac.GrowthRate),
			CostBasis:           money.FromFloat(ac.CostBasis),
			ContributionLimit:   money.FromFloat(ac.ContributionLimit),
			PlannedContribution: money.FromFloat(ac.YearlyContribution),
		})
	}

	for _, dc := range pc.Debts {
		p.Debts = append(p.Debts, &model.Debt{
			Name:            dc.Name,
			Kind:            debtKinds[dc.Kind],
			Principal:       money.FromFloat(dc.Principal),
			InterestRate:    money.Rate(dc.InterestRate),
			CreditLimit:     money.FromFloat(dc.CreditLimit),
			MinPaymentRate:  money.Rate(dc.MinPaymentRate),
			MinPaymentFloor: money.FromFloat(dc.MinPaymentFloor),
			FixedPayment:    money.FromFloat(dc.FixedPayment),
		})
	}

	for _, pol := range pc.Policies {
		p.Policies = append(p.Policies, &model.Policy{
			Name:         pol.Name,
			Premium:      money.FromFloat(pol.Premium),
			CashValue:    money.FromFloat(pol.CashValue),
			GrowthRate:   money.Rate(pol.GrowthRate),
			LoanInterest: money.Rate(pol.LoanInterest),
		})
	}

	for _, jc := range pc.Jobs {
		job := &model.Job{
			Company:   jc.Company,
			Role:      jc.Role,
			Salary:    money.FromFloat(jc.Salary),
			Bonus:     money.FromFloat(jc.Bonus),
			RaiseRate: money.Rate(jc.RaiseRate),
			Active:    pc.Age < pc.RetirementAge,
		}
		if jc.Plan != nil {
			job.Plan = &model.RetirementPlan{
				PretaxAccount: jc.Plan.PretaxAccount,
				RothAccount:   jc.Plan.RothAccount,
				PretaxRate:    money.Rate(jc.Plan.PretaxRate),
				RothRate:      money.Rate(jc.Plan.RothRate),
				MatchRate:     money.Rate(jc.Plan.MatchRate),
			}
		}
		p.Jobs = append(p.Jobs, job)
	}

	return p
}

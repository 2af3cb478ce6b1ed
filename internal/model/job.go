package model

import (
	"github.com/shopspring/decimal"

	"github.com/mreece/fincast/internal/money"
)

// RetirementPlan links a job to the retirement accounts it feeds.
// Contribution rates are fractions of base salary; the employer match is
// a fraction of the employee's combined contribution and always lands in
// the pre-tax account.
type RetirementPlan struct {
	PretaxAccount string
	RothAccount   string
	PretaxRate    decimal.Decimal
	RothRate      decimal.Decimal
	MatchRate     decimal.Decimal
}

// Job produces wage income for its owner until retirement.
type Job struct {
	Company   string
	Role      string
	Salary    money.Money
	Bonus     money.Money
	RaiseRate decimal.Decimal
	Plan      *RetirementPlan
	Active    bool
}

// WageOutcome is the money movement produced by one year of work.
type WageOutcome struct {
	// Gross is salary plus bonus.
	Gross money.Money

	// TakeHome is what lands in the owner's liquid account: gross minus
	// employee retirement contributions.
	TakeHome money.Money

	// TaxableWages is gross minus the pre-tax contribution; this is the
	// wage amount reported to the tax engine.
	TaxableWages money.Money

	PretaxContribution money.Money
	RothContribution   money.Money
	EmployerMatch      money.Money
}

// YearlyWages computes one year of wages. contribRoom bounds the combined
// employee contribution (the statutory yearly limit less anything already
// contributed); the pre-tax share is taken first, matching how plans
// apply deferral elections.
func (j *Job) YearlyWages(contribRoom money.Money) WageOutcome {
	if !j.Active {
		return WageOutcome{}
	}

	room := money.Max(contribRoom, money.Zero)
	pretax := money.Zero
	roth := money.Zero
	if j.Plan != nil {
		pretax = money.Min(money.ApplyRate(j.Salary, j.Plan.PretaxRate), room)
		room = room.Sub(pretax)
		roth = money.Min(money.ApplyRate(j.Salary, j.Plan.RothRate), room)
	}

	match := money.Zero
	if j.Plan != nil {
		match = money.ApplyRate(pretax.Add(roth), j.Plan.MatchRate)
	}

	gross := j.Salary.Add(j.Bonus)
	return WageOutcome{
		Gross:              gross,
		TakeHome:           gross.Sub(pretax).Sub(roth),
		TaxableWages:       gross.Sub(pretax),
		PretaxContribution: pretax,
		RothContribution:   roth,
		EmployerMatch:      match,
	}
}

// AdvanceSalary applies the yearly raise. Called at year end.
func (j *Job) AdvanceSalary() {
	if !j.Active {
		return
	}
	j.Salary = money.Grow(j.Salary, j.RaiseRate)
}

// Retire stops the job from producing wages in future years.
func (j *Job) Retire() {
	j.Active = false
}

package model

import (
	"testing"

	"github.com/mreece/fincast/internal/money"
)

func TestYearlyWages(t *testing.T) {
	plan := &RetirementPlan{
		PretaxAccount: "401k",
		RothAccount:   "roth-401k",
		PretaxRate:    money.Rate(0.10),
		RothRate:      money.Rate(0.05),
		MatchRate:     money.Rate(0.50),
	}

	tests := []struct {
		name        string
		job         Job
		contribRoom float64
		want        WageOutcome
	}{
		{
			name:        "full room",
			job:         Job{Salary: money.FromFloat(100000), Bonus: money.FromFloat(10000), Plan: plan, Active: true},
			contribRoom: 23000,
			want: WageOutcome{
				// pretax 10% of 100000, roth 5%, match 50% of the 15000
				// employee total; bonus is not deferred.
				Gross:              money.FromFloat(110000),
				TakeHome:           money.FromFloat(95000),
				TaxableWages:       money.FromFloat(100000),
				PretaxContribution: money.FromFloat(10000),
				RothContribution:   money.FromFloat(5000),
				EmployerMatch:      money.FromFloat(7500),
			},
		},
		{
			name:        "room binds, pretax first",
			job:         Job{Salary: money.FromFloat(100000), Plan: plan, Active: true},
			contribRoom: 12000,
			want: WageOutcome{
				Gross:              money.FromFloat(100000),
				TakeHome:           money.FromFloat(88000),
				TaxableWages:       money.FromFloat(90000),
				PretaxContribution: money.FromFloat(10000),
				RothContribution:   money.FromFloat(2000),
				EmployerMatch:      money.FromFloat(6000),
			},
		},
		{
			name:        "no plan",
			job:         Job{Salary: money.FromFloat(50000), Active: true},
			contribRoom: 23000,
			want: WageOutcome{
				Gross:              money.FromFloat(50000),
				TakeHome:           money.FromFloat(50000),
				TaxableWages:       money.FromFloat(50000),
				PretaxContribution: money.Zero,
				RothContribution:   money.Zero,
				EmployerMatch:      money.Zero,
			},
		},
		{
			name:        "inactive job produces nothing",
			job:         Job{Salary: money.FromFloat(50000), Plan: plan, Active: false},
			contribRoom: 23000,
			want:        WageOutcome{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.job.YearlyWages(money.FromFloat(tt.contribRoom))
			pairs := []struct {
				label     string
				got, want money.Money
			}{
				{"gross", got.Gross, tt.want.Gross},
				{"take-home", got.TakeHome, tt.want.TakeHome},
				{"taxable wages", got.TaxableWages, tt.want.TaxableWages},
				{"pretax contribution", got.PretaxContribution, tt.want.PretaxContribution},
				{"roth contribution", got.RothContribution, tt.want.RothContribution},
				{"employer match", got.EmployerMatch, tt.want.EmployerMatch},
			}
			for _, p := range pairs {
				if !p.got.Equal(p.want) {
					t.Errorf("%s = %s, want %s", p.label, p.got, p.want)
				}
			}
		})
	}
}

func TestAdvanceSalary(t *testing.T) {
	j := &Job{Salary: money.FromFloat(100000), RaiseRate: money.Rate(0.03), Active: true}
	j.AdvanceSalary()
	checkMoney(t, "salary after raise", j.Salary, 103000)

	j.Retire()
	j.AdvanceSalary()
	checkMoney(t, "salary after retirement", j.Salary, 103000)
}

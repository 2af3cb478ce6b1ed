package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/mreece/fincast/internal/engine"
	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
)

const validScenario = `
name: household
start_year: 2026
end_year: 2055
shortfall_policy: insolvent
regime:
  retirement_age: 60
  penalty_rate: 0.10
  contribution_limit: 23000
  catch_up_age: 50
  catch_up_amount: 7500
  standard_deduction:
    single: 14600
    married-joint: 29200
  brackets:
    single:
      - {floor: 0, ceiling: 11600, rate: 0.10}
      - {floor: 11600, ceiling: 47150, rate: 0.12}
      - {floor: 47150, ceiling: 0, rate: 0.22}
    married-joint:
      - {floor: 0, ceiling: 23200, rate: 0.10}
      - {floor: 23200, ceiling: 0, rate: 0.12}
  payroll:
    social_security_rate: 0.062
    wage_base: 168600
    medicare_rate: 0.0145
    surtax_rate: 0.009
    surtax_threshold:
      single: 200000
      married-joint: 250000
  rmd:
    divisors:
      - {age: 73, divisor: 26.5}
      - {age: 75, divisor: 24.6}
family:
  shared_expenses: 12000
  persons:
    - name: Avery
      age: 45
      retirement_age: 65
      filing: married-joint
      spouse: Blake
      spending: {base: 40000, yearly_increase: 0.02}
      jobs:
        - company: Initech
          role: engineer
          salary: 120000
          bonus: 10000
          raise_rate: 0.03
          retirement_plan:
            pretax_account: 401k
            pretax_rate: 0.10
            match_rate: 0.50
      accounts:
        - {name: checking, kind: liquid, balance: 20000, growth_rate: 0.01}
        - {name: 401k, kind: pretax, balance: 300000, growth_rate: 0.06}
        - {name: taxable, kind: brokerage, balance: 80000, cost_basis: 50000, growth_rate: 0.05}
      debts:
        - {name: visa, kind: revolving, principal: 2000, interest_rate: 0.22, credit_limit: 15000, min_payment_rate: 0.02, min_payment_floor: 25}
      withdrawal_priority: [checking, taxable, 401k, visa]
    - name: Blake
      age: 44
      retirement_age: 65
      filing: married-joint
      spouse: Avery
      spending: {base: 30000}
      accounts:
        - {name: b-checking, kind: liquid, balance: 15000}
      policies:
        - {name: whole-life, premium: 2400, cash_value: 20000, growth_rate: 0.03, loan_interest: 0.05}
      social_security: {benefit: 30000, start_age: 67, cola: 0.02}
`

func TestParseValidScenario(t *testing.T) {
	s, err := Parse([]byte(validScenario))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != "household" {
		t.Errorf("name = %q, want household", s.Name)
	}
	if len(s.Family.Persons) != 2 {
		t.Fatalf("person count = %d, want 2", len(s.Family.Persons))
	}

	built, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if built.Options.StartYear != 2026 || built.Options.EndYear != 2055 {
		t.Errorf("options = %+v, want 2026..2055", built.Options)
	}
	if built.Options.Shortfall != engine.ShortfallInsolvent {
		t.Errorf("shortfall = %q, want insolvent", built.Options.Shortfall)
	}

	avery := built.Family.Member("Avery")
	if avery == nil {
		t.Fatal("Avery missing from built family")
	}
	if avery.Filing != model.FilingMarriedJoint || avery.Spouse != "Blake" {
		t.Errorf("Avery filing = %s spouse %q, want married-joint/Blake", avery.Filing, avery.Spouse)
	}
	if got := avery.Account("401k"); got == nil || !got.Balance.Equal(money.FromFloat(300000)) {
		t.Errorf("401k not built correctly: %+v", got)
	}
	if len(avery.Priority) != 4 {
		t.Errorf("priority = %v, want 4 entries", avery.Priority)
	}
	if avery.Jobs[0].Plan == nil || avery.Jobs[0].Plan.PretaxAccount != "401k" {
		t.Errorf("job plan not built: %+v", avery.Jobs[0].Plan)
	}
	if !avery.Jobs[0].Active {
		t.Error("job should start active below retirement age")
	}

	blake := built.Family.Member("Blake")
	if len(blake.Policies) != 1 || !blake.Policies[0].Premium.Equal(money.FromFloat(2400)) {
		t.Errorf("Blake policies not built: %+v", blake.Policies)
	}
	if ss := blake.SocialSecurity; ss == nil || !ss.Benefit.Equal(money.FromFloat(30000)) || ss.StartAge != 67 {
		t.Errorf("Blake social security not built: %+v", ss)
	}
	if avery.SocialSecurity != nil {
		t.Error("Avery should have no social security configured")
	}

	if len(built.Regime.Brackets[model.FilingSingle]) != 3 {
		t.Errorf("single brackets = %d, want 3", len(built.Regime.Brackets[model.FilingSingle]))
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	doc := strings.Replace(validScenario, "shared_expenses:", "shred_expenses:", 1)
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("Parse should reject unknown fields")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	var verr *ValidationError
	_, err := Parse([]byte(""))
	if !errors.As(err, &verr) {
		t.Fatalf("Parse empty: got %v, want ValidationError", err)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(doc string) string
		wantPart string
	}{
		{
			name:     "horizon inverted",
			mutate:   func(d string) string { return strings.Replace(d, "end_year: 2055", "end_year: 2020", 1) },
			wantPart: "precedes start_year",
		},
		{
			name:     "unknown shortfall policy",
			mutate:   func(d string) string { return strings.Replace(d, "shortfall_policy: insolvent", "shortfall_policy: panic", 1) },
			wantPart: "unknown policy",
		},
		{
			name:     "unknown account kind",
			mutate:   func(d string) string { return strings.Replace(d, "kind: liquid", "kind: llquid", 1) },
			wantPart: "unknown account kind",
		},
		{
			name:     "spouse does not name back",
			mutate:   func(d string) string { return strings.Replace(d, "spouse: Avery", "spouse: Casey", 1) },
			wantPart: "spouse",
		},
		{
			name:     "priority names non-fundable instrument",
			mutate:   func(d string) string { return strings.Replace(d, "[checking, taxable, 401k, visa]", "[checking, powerball]", 1) },
			wantPart: "not a fundable instrument",
		},
		{
			name:     "bracket floors out of order",
			mutate:   func(d string) string { return strings.Replace(d, "{floor: 11600, ceiling: 47150, rate: 0.12}", "{floor: 0, ceiling: 47150, rate: 0.12}", 1) },
			wantPart: "strictly ascending",
		},
		{
			name:     "rmd divisors must decrease",
			mutate:   func(d string) string { return strings.Replace(d, "{age: 75, divisor: 24.6}", "{age: 75, divisor: 28}", 1) },
			wantPart: "divisors must decrease",
		},
		{
			name:     "rmd starts before penalty age",
			mutate:   func(d string) string { return strings.Replace(d, "{age: 73, divisor: 26.5}", "{age: 55, divisor: 26.5}", 1) },
			wantPart: "precedes retirement_age",
		},
		{
			name:     "social security start age missing",
			mutate:   func(d string) string { return strings.Replace(d, "start_age: 67", "start_age: 0", 1) },
			wantPart: "start_age must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(validScenario)))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Parse: got %v, want ValidationError", err)
			}
			found := false
			for _, issue := range verr.Issues {
				if strings.Contains(issue, tt.wantPart) {
					found = true
				}
			}
			if !found {
				t.Errorf("issues %v should contain %q", verr.Issues, tt.wantPart)
			}
		})
	}
}

func TestValidateRequiresLiquidAccount(t *testing.T) {
	doc := strings.Replace(validScenario,
		"- {name: b-checking, kind: liquid, balance: 15000}",
		"- {name: b-savings, kind: roth, balance: 15000}", 1)
	_, err := Parse([]byte(doc))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Parse: got %v, want ValidationError", err)
	}
	found := false
	for _, issue := range verr.Issues {
		if strings.Contains(issue, "liquid account required") {
			found = true
		}
	}
	if !found {
		t.Errorf("issues %v should require a liquid account", verr.Issues)
	}
}

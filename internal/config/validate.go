package config

import (
	"fmt"

	"github.com/mreece/fincast/internal/engine"
	"github.com/mreece/fincast/internal/model"
)

var accountKinds = map[string]model.AccountKind{
	"liquid":    model.AccountLiquid,
	"pretax":    model.AccountPretax,
	"roth":      model.AccountRoth,
	"hsa":       model.AccountHSA,
	"brokerage": model.AccountBrokerage,
}

var debtKinds = map[string]model.DebtKind{
	"revolving": model.DebtRevolving,
	"amortized": model.DebtAmortized,
}

var filingStatuses = map[string]model.FilingStatus{
	"":              model.FilingSingle,
	"single":        model.FilingSingle,
	"married-joint": model.FilingMarriedJoint,
}

// Validate checks the whole scenario and returns a ValidationError
// listing every problem found, or nil.
func (s *Scenario) Validate() error {
	v := &validator{}

	if s.EndYear < s.StartYear {
		v.addf("end_year %d precedes start_year %d", s.EndYear, s.StartYear)
	}
	switch engine.ShortfallPolicy(s.ShortfallPolicy) {
	case "", engine.ShortfallInsolvent, engine.ShortfallDefer:
	default:
		v.addf("shortfall_policy: unknown policy %q", s.ShortfallPolicy)
	}

	s.validateRegime(v)
	s.validateFamily(v)

	if len(v.issues) > 0 {
		return &ValidationError{Issues: v.issues}
	}
	return nil
}

type validator struct {
	issues []string
}

func (v *validator) addf(format string, args ...any) {
	v.issues = append(v.issues, fmt.Sprintf(format, args...))
}

func (s *Scenario) validateRegime(v *validator) {
	r := &s.Regime

	if r.RetirementAge <= 0 {
		v.addf("regime.retirement_age must be positive")
	}
	if r.PenaltyRate < 0 || r.PenaltyRate >= 1 {
		v.addf("regime.penalty_rate %v out of range [0,1)", r.PenaltyRate)
	}
	if r.ContributionLimit < 0 || r.CatchUpAmount < 0 {
		v.addf("regime contribution limits must not be negative")
	}

	for status := range r.Brackets {
		if _, ok := filingStatuses[status]; !ok || status == "" {
			v.addf("regime.brackets: unknown filing status %q", status)
		}
	}
	for status, brackets := range r.Brackets {
		if len(brackets) == 0 {
			v.addf("regime.brackets.%s: empty bracket table", status)
			continue
		}
		for i, b := range brackets {
			if b.Rate < 0 || b.Rate >= 1 {
				v.addf("regime.brackets.%s[%d]: rate %v out of range [0,1)", status, i, b.Rate)
			}
			if i > 0 && b.Floor <= brackets[i-1].Floor {
				v.addf("regime.brackets.%s[%d]: floors must be strictly ascending", status, i)
			}
			if b.Ceiling != 0 && b.Ceiling <= b.Floor {
				v.addf("regime.brackets.%s[%d]: ceiling %v not above floor %v", status, i, b.Ceiling, b.Floor)
			}
			if b.Ceiling == 0 && i != len(brackets)-1 {
				v.addf("regime.brackets.%s[%d]: only the top bracket may be unbounded", status, i)
			}
		}
	}

	p := r.Payroll
	for name, rate := range map[string]float64{
		"social_security_rate": p.SocialSecurityRate,
		"medicare_rate":        p.MedicareRate,
		"surtax_rate":          p.SurtaxRate,
	} {
		if rate < 0 || rate >= 1 {
			v.addf("regime.payroll.%s %v out of range [0,1)", name, rate)
		}
	}
	if p.WageBase < 0 {
		v.addf("regime.payroll.wage_base must not be negative")
	}

	if len(r.RMD.Divisors) > 0 && r.RMD.Divisors[0].Age < r.RetirementAge {
		v.addf("regime.rmd.divisors[0]: distribution start age %d precedes retirement_age %d",
			r.RMD.Divisors[0].Age, r.RetirementAge)
	}
	for i, row := range r.RMD.Divisors {
		if row.Divisor <= 0 {
			v.addf("regime.rmd.divisors[%d]: divisor must be positive", i)
		}
		if i > 0 {
			prev := r.RMD.Divisors[i-1]
			if row.Age <= prev.Age {
				v.addf("regime.rmd.divisors[%d]: ages must be strictly ascending", i)
			}
			if row.Divisor >= prev.Divisor {
				v.addf("regime.rmd.divisors[%d]: divisors must decrease with age", i)
			}
		}
	}
}

func (s *Scenario) validateFamily(v *validator) {
	if len(s.Family.Persons) == 0 {
		v.addf("family.persons: at least one person required")
		return
	}
	if s.Family.SharedExpenses < 0 {
		v.addf("family.shared_expenses must not be negative")
	}

	byName := make(map[string]*PersonConfig)
	for i := range s.Family.Persons {
		p := &s.Family.Persons[i]
		if p.Name == "" {
			v.addf("family.persons[%d]: name required", i)
			continue
		}
		if _, dup := byName[p.Name]; dup {
			v.addf("family.persons[%d]: duplicate name %q", i, p.Name)
		}
		byName[p.Name] = p
	}

	for i := range s.Family.Persons {
		s.validatePerson(v, i, &s.Family.Persons[i], byName)
	}
}

func (s *Scenario) validatePerson(v *validator, i int, p *PersonConfig, byName map[string]*PersonConfig) {
	path := fmt.Sprintf("family.persons[%d]", i)

	if p.Age < 0 {
		v.addf("%s.age must not be negative", path)
	}
	if p.RetirementAge <= 0 {
		v.addf("%s.retirement_age must be positive", path)
	}

	status, ok := filingStatuses[p.Filing]
	if !ok {
		v.addf("%s.filing: unknown status %q", path, p.Filing)
	}
	if status == model.FilingMarriedJoint {
		spouse, found := byName[p.Spouse]
		switch {
		case p.Spouse == "":
			v.addf("%s: married-joint filing requires a spouse", path)
		case !found:
			v.addf("%s.spouse: no such person %q", path, p.Spouse)
		case spouse.Spouse != p.Name:
			v.addf("%s.spouse: %q does not name %q back", path, p.Spouse, p.Name)
		}
	}
	if _, ok := s.Regime.Brackets[statusKey(status)]; !ok && len(s.Regime.Brackets) > 0 {
		v.addf("%s: no regime bracket table for filing status %q", path, statusKey(status))
	}

	if p.Spending.Base < 0 {
		v.addf("%s.spending.base must not be negative", path)
	}

	if ss := p.SocialSecurity; ss != nil {
		if ss.Benefit < 0 {
			v.addf("%s.social_security.benefit must not be negative", path)
		}
		if ss.StartAge <= 0 {
			v.addf("%s.social_security.start_age must be positive", path)
		}
		if ss.COLA <= -1 {
			v.addf("%s.social_security.cola must be above -1", path)
		}
	}

	names := make(map[string]string)  // instrument name -> kind of thing
	fundable := make(map[string]bool) // names usable in withdrawal_priority
	hasLiquid := false
	for j, a := range p.Accounts {
		apath := fmt.Sprintf("%s.accounts[%d]", path, j)
		if a.Name == "" {
			v.addf("%s: name required", apath)
		}
		if prev, dup := names[a.Name]; dup {
			v.addf("%s: name %q already used by a %s", apath, a.Name, prev)
		}
		names[a.Name] = "account"
		fundable[a.Name] = true
		kind, ok := accountKinds[a.Kind]
		if !ok {
			v.addf("%s.kind: unknown account kind %q", apath, a.Kind)
		}
		if kind == model.AccountLiquid {
			hasLiquid = true
		}
		if a.Balance < 0 {
			v.addf("%s.balance must not be negative", apath)
		}
		if a.GrowthRate <= -1 {
			v.addf("%s.growth_rate must be above -1", apath)
		}
		if kind == model.AccountBrokerage && a.CostBasis > a.Balance {
			v.addf("%s.cost_basis exceeds balance", apath)
		}
	}
	if !hasLiquid {
		v.addf("%s: at least one liquid account required", path)
	}

	for j, d := range p.Debts {
		dpath := fmt.Sprintf("%s.debts[%d]", path, j)
		if d.Name == "" {
			v.addf("%s: name required", dpath)
		}
		if prev, dup := names[d.Name]; dup {
			v.addf("%s: name %q already used by a %s", dpath, d.Name, prev)
		}
		names[d.Name] = "debt"
		fundable[d.Name] = d.Kind == "revolving"
		kind, ok := debtKinds[d.Kind]
		if !ok {
			v.addf("%s.kind: unknown debt kind %q", dpath, d.Kind)
		}
		if d.Principal < 0 {
			v.addf("%s.principal must not be negative", dpath)
		}
		switch kind {
		case model.DebtRevolving:
			if d.CreditLimit <= 0 {
				v.addf("%s.credit_limit must be positive for revolving debt", dpath)
			}
		case model.DebtAmortized:
			if d.Principal > 0 && d.FixedPayment <= 0 {
				v.addf("%s.fixed_payment must be positive for amortized debt", dpath)
			}
		}
	}

	for j, pol := range p.Policies {
		ppath := fmt.Sprintf("%s.policies[%d]", path, j)
		if pol.Name == "" {
			v.addf("%s: name required", ppath)
		}
		if prev, dup := names[pol.Name]; dup {
			v.addf("%s: name %q already used by a %s", ppath, pol.Name, prev)
		}
		names[pol.Name] = "policy"
		fundable[pol.Name] = true
		if pol.Premium < 0 || pol.CashValue < 0 {
			v.addf("%s: premium and cash_value must not be negative", ppath)
		}
	}

	for j, job := range p.Jobs {
		jpath := fmt.Sprintf("%s.jobs[%d]", path, j)
		if job.Salary < 0 || job.Bonus < 0 {
			v.addf("%s: salary and bonus must not be negative", jpath)
		}
		if job.Plan == nil {
			continue
		}
		plan := job.Plan
		if plan.PretaxRate > 0 || plan.MatchRate > 0 {
			if kind := p.accountKind(plan.PretaxAccount); kind != "pretax" {
				v.addf("%s.retirement_plan.pretax_account: %q is not a pretax account", jpath, plan.PretaxAccount)
			}
		}
		if plan.RothRate > 0 {
			if kind := p.accountKind(plan.RothAccount); kind != "roth" {
				v.addf("%s.retirement_plan.roth_account: %q is not a roth account", jpath, plan.RothAccount)
			}
		}
	}

	for j, name := range p.WithdrawalPriority {
		if !fundable[name] {
			v.addf("%s.withdrawal_priority[%d]: %q is not a fundable instrument", path, j, name)
		}
	}
}

// accountKind returns the configured kind string of the named account.
func (p *PersonConfig) accountKind(name string) string {
	for _, a := range p.Accounts {
		if a.Name == name {
			return a.Kind
		}
	}
	return ""
}

func statusKey(status model.FilingStatus) string {
	return string(status)
}

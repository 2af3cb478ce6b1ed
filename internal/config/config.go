// Package config loads and validates YAML scenario documents. A scenario
// is pure data: persons, instruments, rates, and the tax regime tables.
// Validation happens at load time; a malformed scenario never reaches the
// engine.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is the root of a scenario document.
type Scenario struct {
	Name            string       `yaml:"name"`
	StartYear       int          `yaml:"start_year"`
	EndYear         int          `yaml:"end_year"`
	ShortfallPolicy string       `yaml:"shortfall_policy"`
	Regime          RegimeConfig `yaml:"regime"`
	Family          FamilyConfig `yaml:"family"`
}

// RegimeConfig holds the tax tables. Rates are fractions (0.1 = 10%).
type RegimeConfig struct {
	RetirementAge     int                  `yaml:"retirement_age"`
	PenaltyRate       float64              `yaml:"penalty_rate"`
	StandardDeduction map[string]float64   `yaml:"standard_deduction"`
	Brackets          map[string][]Bracket `yaml:"brackets"`
	Payroll           PayrollConfig        `yaml:"payroll"`
	RMD               RMDConfig            `yaml:"rmd"`
	ContributionLimit float64              `yaml:"contribution_limit"`
	CatchUpAge        int                  `yaml:"catch_up_age"`
	CatchUpAmount     float64              `yaml:"catch_up_amount"`
}

// Bracket is one progressive bracket; ceiling 0 on the last bracket means
// unbounded.
type Bracket struct {
	Floor   float64 `yaml:"floor"`
	Ceiling float64 `yaml:"ceiling"`
	Rate    float64 `yaml:"rate"`
}

// PayrollConfig holds flat-rate wage taxes.
type PayrollConfig struct {
	SocialSecurityRate float64            `yaml:"social_security_rate"`
	WageBase           float64            `yaml:"wage_base"`
	MedicareRate       float64            `yaml:"medicare_rate"`
	SurtaxRate         float64            `yaml:"surtax_rate"`
	SurtaxThreshold    map[string]float64 `yaml:"surtax_threshold"`
}

// RMDConfig holds the required-distribution divisor table.
type RMDConfig struct {
	Divisors []Divisor `yaml:"divisors"`
}

// Divisor is one row of the life-expectancy table.
type Divisor struct {
	Age     int     `yaml:"age"`
	Divisor float64 `yaml:"divisor"`
}

// FamilyConfig describes the household being simulated.
type FamilyConfig struct {
	SharedExpenses float64        `yaml:"shared_expenses"`
	Persons        []PersonConfig `yaml:"persons"`
}

// PersonConfig describes one family member and their instruments.
type PersonConfig struct {
	Name               string                `yaml:"name"`
	Age                int                   `yaml:"age"`
	RetirementAge      int                   `yaml:"retirement_age"`
	Filing             string                `yaml:"filing"`
	Spouse             string                `yaml:"spouse"`
	Spending           SpendingConfig        `yaml:"spending"`
	Jobs               []JobConfig           `yaml:"jobs"`
	Accounts           []AccountConfig       `yaml:"accounts"`
	Debts              []DebtConfig          `yaml:"debts"`
	Policies           []PolicyConfig        `yaml:"policies"`
	SocialSecurity     *SocialSecurityConfig `yaml:"social_security"`
	WithdrawalPriority []string              `yaml:"withdrawal_priority"`
}

// SocialSecurityConfig describes a retirement benefit: a yearly amount in
// first-payment dollars, the age payments begin, and a yearly
// cost-of-living adjustment applied once they have.
type SocialSecurityConfig struct {
	Benefit  float64 `yaml:"benefit"`
	StartAge int     `yaml:"start_age"`
	COLA     float64 `yaml:"cola"`
}

// SpendingConfig is base yearly spending plus a yearly increase rate.
type SpendingConfig struct {
	Base           float64 `yaml:"base"`
	YearlyIncrease float64 `yaml:"yearly_increase"`
}

// JobConfig describes a wage-producing job.
type JobConfig struct {
	Company   string      `yaml:"company"`
	Role      string      `yaml:"role"`
	Salary    float64     `yaml:"salary"`
	Bonus     float64     `yaml:"bonus"`
	RaiseRate float64     `yaml:"raise_rate"`
	Plan      *PlanConfig `yaml:"retirement_plan"`
}

// PlanConfig links a job to retirement accounts and contribution rates.
type PlanConfig struct {
	PretaxAccount string  `yaml:"pretax_account"`
	RothAccount   string  `yaml:"roth_account"`
	PretaxRate    float64 `yaml:"pretax_rate"`
	RothRate      float64 `yaml:"roth_rate"`
	MatchRate     float64 `yaml:"match_rate"`
}

// AccountConfig describes one account.
type AccountConfig struct {
	Name               string  `yaml:"name"`
	Kind               string  `yaml:"kind"`
	Balance            float64 `yaml:"balance"`
	GrowthRate         float64 `yaml:"growth_rate"`
	CostBasis          float64 `yaml:"cost_basis"`
	ContributionLimit  float64 `yaml:"contribution_limit"`
	YearlyContribution float64 `yaml:"yearly_contribution"`
}

// DebtConfig describes one debt.
type DebtConfig struct {
	Name            string  `yaml:"name"`
	Kind            string  `yaml:"kind"`
	Principal       float64 `yaml:"principal"`
	InterestRate    float64 `yaml:"interest_rate"`
	CreditLimit     float64 `yaml:"credit_limit"`
	MinPaymentRate  float64 `yaml:"min_payment_rate"`
	MinPaymentFloor float64 `yaml:"min_payment_floor"`
	FixedPayment    float64 `yaml:"fixed_payment"`
}

// PolicyConfig describes one insurance policy.
type PolicyConfig struct {
	Name         string  `yaml:"name"`
	Premium      float64 `yaml:"premium"`
	CashValue    float64 `yaml:"cash_value"`
	GrowthRate   float64 `yaml:"growth_rate"`
	LoanInterest float64 `yaml:"loan_interest"`
}

// ValidationError collects every problem found in a scenario so users can
// fix them in one pass.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid scenario: %s", strings.Join(e.Issues, "; "))
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document. Unknown fields are
// rejected so typos fail fast instead of silently defaulting.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Issues: []string{"scenario document is empty"}}
		}
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

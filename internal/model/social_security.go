package model

import (
	"github.com/shopspring/decimal"

	"github.com/mreece/fincast/internal/money"
)

// SocialSecurity pays a yearly retirement benefit once its owner reaches
// the start age. The benefit is configured in first-payment dollars and
// receives a cost-of-living adjustment each year after payments begin.
// Benefits are ordinary taxable income but not wages, so they carry no
// payroll tax.
type SocialSecurity struct {
	Benefit  money.Money
	StartAge int
	COLA     decimal.Decimal
}

// YearlyBenefit returns the benefit due at the given age, zero before the
// start age.
func (s *SocialSecurity) YearlyBenefit(age int) money.Money {
	if s == nil || age < s.StartAge {
		return money.Zero
	}
	return s.Benefit
}

// AdvanceBenefit applies the cost-of-living adjustment. Called at year
// end, once payments have begun.
func (s *SocialSecurity) AdvanceBenefit(age int) {
	if s == nil || age < s.StartAge {
		return
	}
	s.Benefit = money.Grow(s.Benefit, s.COLA)
}

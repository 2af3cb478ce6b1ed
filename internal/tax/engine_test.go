package tax

import (
	"testing"

	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
)

func testRegime() *Regime {
	return &Regime{
		Brackets: map[model.FilingStatus][]Bracket{
			model.FilingSingle: {
				{Floor: money.FromFloat(0), Ceiling: money.FromFloat(10000), Rate: money.Rate(0.10)},
				{Floor: money.FromFloat(10000), Ceiling: money.FromFloat(40000), Rate: money.Rate(0.20)},
				{Floor: money.FromFloat(40000), Rate: money.Rate(0.30)},
			},
			model.FilingMarriedJoint: {
				{Floor: money.FromFloat(0), Ceiling: money.FromFloat(20000), Rate: money.Rate(0.10)},
				{Floor: money.FromFloat(20000), Rate: money.Rate(0.20)},
			},
		},
		StandardDeduction: map[model.FilingStatus]money.Money{
			model.FilingSingle:       money.FromFloat(5000),
			model.FilingMarriedJoint: money.FromFloat(10000),
		},
		Payroll: Payroll{
			CappedRate: money.Rate(0.062),
			WageBase:   money.FromFloat(20000),
			FlatRate:   money.Rate(0.0145),
			SurtaxRate: money.Rate(0.009),
			SurtaxThreshold: map[model.FilingStatus]money.Money{
				model.FilingSingle:       money.FromFloat(200000),
				model.FilingMarriedJoint: money.FromFloat(250000),
			},
		},
		PenaltyRate:       money.Rate(0.10),
		RetirementAge:     60,
		ContributionLimit: money.FromFloat(23000),
		CatchUpAge:        50,
		CatchUp:           money.FromFloat(7500),
	}
}

func TestIncomeTaxBrackets(t *testing.T) {
	e := NewEngine(testRegime())

	tests := []struct {
		name   string
		income float64
		status model.FilingStatus
		want   float64
	}{
		// Single, deduction 5000. Taxable 45000:
		// 10000*0.10 + 30000*0.20 + 5000*0.30 = 1000 + 6000 + 1500
		{"single spanning all brackets", 50000, model.FilingSingle, 8500},
		// Taxable 5000, all in the first bracket.
		{"single first bracket only", 10000, model.FilingSingle, 500},
		// Below the deduction: nothing taxable.
		{"single below deduction", 4000, model.FilingSingle, 0},
		{"zero income", 0, model.FilingSingle, 0},
		// Joint, deduction 10000. Taxable 40000:
		// 20000*0.10 + 20000*0.20 = 2000 + 4000
		{"married joint", 50000, model.FilingMarriedJoint, 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewLedger()
			ledger.AddOrdinaryIncome(money.FromFloat(tt.income))
			got := e.Compute(ledger, tt.status)
			if !got.Income.Equal(money.FromFloat(tt.want)) {
				t.Errorf("income tax on %v = %s, want %v", tt.income, got.Income, tt.want)
			}
		})
	}
}

func TestIncomeTaxMonotonic(t *testing.T) {
	e := NewEngine(testRegime())
	prev := money.Zero
	for _, income := range []float64{0, 5000, 10000, 20000, 45000, 100000, 500000} {
		got := e.IncomeTaxOn(money.FromFloat(income), model.FilingSingle).Income
		if got.LessThan(prev) {
			t.Fatalf("tax at %v dropped to %s from %s", income, got, prev)
		}
		prev = got
	}
}

func TestPayrollTax(t *testing.T) {
	e := NewEngine(testRegime())

	tests := []struct {
		name  string
		wages float64
		want  float64
	}{
		// Below the wage base: 6.2% + 1.45% on everything.
		{"below wage base", 10000, 620 + 145},
		// Above the base: capped part fixed at 6.2% of 20000 = 1240.
		{"above wage base", 30000, 1240 + 435},
		// Above the surtax threshold: + 0.9% of the excess 50000.
		{"above surtax threshold", 250000, 1240 + 3625 + 450},
		{"no wages", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewLedger()
			ledger.AddWages(money.FromFloat(tt.wages))
			got := e.Compute(ledger, model.FilingSingle)
			if !got.Payroll.Equal(money.FromFloat(tt.want)) {
				t.Errorf("payroll tax on %v = %s, want %v", tt.wages, got.Payroll, tt.want)
			}
		})
	}
}

func TestPayrollTaxIgnoresNonWageIncome(t *testing.T) {
	e := NewEngine(testRegime())
	ledger := NewLedger()
	ledger.AddOrdinaryIncome(money.FromFloat(100000))
	got := e.Compute(ledger, model.FilingSingle)
	if !got.Payroll.IsZero() {
		t.Errorf("payroll tax on non-wage income = %s, want 0", got.Payroll)
	}
}

func TestEarlyWithdrawalPenalty(t *testing.T) {
	e := NewEngine(testRegime())

	// An early pre-tax withdrawal shows up twice: as ordinary income and
	// as a penalty base. The penalty stays out of the income figure.
	ledger := NewLedger()
	ledger.AddCosts([]model.Cost{
		{Kind: model.CostOrdinaryIncome, Amount: money.FromFloat(10000)},
		{Kind: model.CostEarlyWithdrawal, Amount: money.FromFloat(10000)},
	})

	got := e.Compute(ledger, model.FilingSingle)
	if !got.Penalty.Equal(money.FromFloat(1000)) {
		t.Errorf("penalty = %s, want 1000", got.Penalty)
	}
	// Taxable 5000 after deduction, all first bracket.
	if !got.Income.Equal(money.FromFloat(500)) {
		t.Errorf("income tax = %s, want 500", got.Income)
	}
	if !got.Total().Equal(money.FromFloat(1500)) {
		t.Errorf("total = %s, want 1500", got.Total())
	}
}

func TestRealizedGainsTaxedAsIncome(t *testing.T) {
	e := NewEngine(testRegime())
	ledger := NewLedger()
	ledger.AddCost(model.Cost{Kind: model.CostRealizedGain, Amount: money.FromFloat(15000)})

	got := e.Compute(ledger, model.FilingSingle)
	// Taxable 10000: all first bracket.
	if !got.Income.Equal(money.FromFloat(1000)) {
		t.Errorf("income tax on gains = %s, want 1000", got.Income)
	}
}

func TestLedgerMerge(t *testing.T) {
	a := NewLedger()
	a.AddWages(money.FromFloat(30000))
	a.AddOrdinaryIncome(money.FromFloat(5000))

	b := NewLedger()
	b.AddWages(money.FromFloat(20000))
	b.AddCost(model.Cost{Kind: model.CostEarlyWithdrawal, Amount: money.FromFloat(1000)})

	a.Merge(b)
	if !a.Wages().Equal(money.FromFloat(50000)) {
		t.Errorf("merged wages = %s, want 50000", a.Wages())
	}
	if !a.TotalIncome().Equal(money.FromFloat(55000)) {
		t.Errorf("merged total income = %s, want 55000", a.TotalIncome())
	}
	if !a.EarlyWithdrawals().Equal(money.FromFloat(1000)) {
		t.Errorf("merged early withdrawals = %s, want 1000", a.EarlyWithdrawals())
	}
}

func TestContributionLimitAt(t *testing.T) {
	r := testRegime()
	if got := r.ContributionLimitAt(40); !got.Equal(money.FromFloat(23000)) {
		t.Errorf("limit at 40 = %s, want 23000", got)
	}
	if got := r.ContributionLimitAt(50); !got.Equal(money.FromFloat(30500)) {
		t.Errorf("limit at 50 = %s, want 30500 (catch-up)", got)
	}
}

func TestEarly(t *testing.T) {
	r := testRegime()
	if !r.Early(59) {
		t.Error("59 should be early")
	}
	if r.Early(60) {
		t.Error("60 should not be early")
	}
}

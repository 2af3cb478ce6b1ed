package payment

import (
	"testing"

	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
)

func liquidSource(name string, balance float64) *model.AccountSource {
	return &model.AccountSource{Account: &model.Account{
		Name:    name,
		Kind:    model.AccountLiquid,
		Balance: money.FromFloat(balance),
	}}
}

func TestResolveSplitsAcrossSources(t *testing.T) {
	checking := liquidSource("checking", 50)
	savings := liquidSource("savings", 30)

	bill := model.Bill{Amount: money.FromFloat(80), Category: model.BillLivingExpense}
	plan := Resolve(bill, []model.FundingSource{checking, savings})

	if !plan.Funded.Equal(money.FromFloat(80)) {
		t.Errorf("funded = %s, want 80", plan.Funded)
	}
	if plan.Shortfall.IsPositive() {
		t.Errorf("shortfall = %s, want 0", plan.Shortfall)
	}
	if len(plan.Draws) != 2 {
		t.Fatalf("draw count = %d, want 2", len(plan.Draws))
	}
	if plan.Draws[0].Source != "checking" || !plan.Draws[0].Amount.Equal(money.FromFloat(50)) {
		t.Errorf("first draw = %s from %q, want 50 from checking", plan.Draws[0].Amount, plan.Draws[0].Source)
	}
	if plan.Draws[1].Source != "savings" || !plan.Draws[1].Amount.Equal(money.FromFloat(30)) {
		t.Errorf("second draw = %s from %q, want 30 from savings", plan.Draws[1].Amount, plan.Draws[1].Source)
	}
	if !checking.Account.Balance.IsZero() {
		t.Errorf("checking balance = %s, want 0", checking.Account.Balance)
	}
	if !savings.Account.Balance.IsZero() {
		t.Errorf("savings balance = %s, want 0", savings.Account.Balance)
	}
}

func TestResolveStopsWhenFunded(t *testing.T) {
	checking := liquidSource("checking", 500)
	savings := liquidSource("savings", 500)

	bill := model.Bill{Amount: money.FromFloat(200)}
	plan := Resolve(bill, []model.FundingSource{checking, savings})

	if len(plan.Draws) != 1 {
		t.Fatalf("draw count = %d, want 1", len(plan.Draws))
	}
	if !savings.Account.Balance.Equal(money.FromFloat(500)) {
		t.Errorf("savings touched: balance = %s, want 500", savings.Account.Balance)
	}
}

func TestResolveShortfall(t *testing.T) {
	checking := liquidSource("checking", 70)

	bill := model.Bill{Amount: money.FromFloat(100)}
	plan := Resolve(bill, []model.FundingSource{checking})

	if !plan.Funded.Equal(money.FromFloat(70)) {
		t.Errorf("funded = %s, want 70", plan.Funded)
	}
	if !plan.Shortfall.Equal(money.FromFloat(30)) {
		t.Errorf("shortfall = %s, want 30", plan.Shortfall)
	}
}

func TestResolveSkipsEmptySources(t *testing.T) {
	empty := liquidSource("empty", 0)
	checking := liquidSource("checking", 100)

	plan := Resolve(model.Bill{Amount: money.FromFloat(50)}, []model.FundingSource{empty, checking})

	if len(plan.Draws) != 1 || plan.Draws[0].Source != "checking" {
		t.Fatalf("draws = %+v, want single draw from checking", plan.Draws)
	}
}

func TestResolveCollectsCosts(t *testing.T) {
	pretax := &model.AccountSource{
		Account: &model.Account{Name: "401k", Kind: model.AccountPretax, Balance: money.FromFloat(1000)},
		Early:   true,
	}

	plan := Resolve(model.Bill{Amount: money.FromFloat(400)}, []model.FundingSource{pretax})

	costs := plan.Costs()
	if len(costs) != 2 {
		t.Fatalf("cost count = %d (%+v), want 2", len(costs), costs)
	}
	byKind := make(map[model.CostKind]money.Money)
	for _, c := range costs {
		byKind[c.Kind] = c.Amount
	}
	if !byKind[model.CostOrdinaryIncome].Equal(money.FromFloat(400)) {
		t.Errorf("ordinary income cost = %s, want 400", byKind[model.CostOrdinaryIncome])
	}
	if !byKind[model.CostEarlyWithdrawal].Equal(money.FromFloat(400)) {
		t.Errorf("early withdrawal cost = %s, want 400", byKind[model.CostEarlyWithdrawal])
	}
}

func TestResolveReadsCapacityLive(t *testing.T) {
	// Two bills against the same account: the second sees what the first
	// left behind.
	account := liquidSource("checking", 100)
	sources := []model.FundingSource{account}

	first := Resolve(model.Bill{Amount: money.FromFloat(60)}, sources)
	second := Resolve(model.Bill{Amount: money.FromFloat(60)}, sources)

	if !first.Funded.Equal(money.FromFloat(60)) {
		t.Errorf("first funded = %s, want 60", first.Funded)
	}
	if !second.Funded.Equal(money.FromFloat(40)) {
		t.Errorf("second funded = %s, want 40", second.Funded)
	}
	if !second.Shortfall.Equal(money.FromFloat(20)) {
		t.Errorf("second shortfall = %s, want 20", second.Shortfall)
	}
}

func TestResolveRevolvingDraw(t *testing.T) {
	card := &model.DebtSource{Debt: &model.Debt{
		Name:        "visa",
		Kind:        model.DebtRevolving,
		Principal:   money.FromFloat(9900),
		CreditLimit: money.FromFloat(10000),
	}}

	plan := Resolve(model.Bill{Amount: money.FromFloat(500)}, []model.FundingSource{card})

	if !plan.Funded.Equal(money.FromFloat(100)) {
		t.Errorf("funded = %s, want 100 (credit limit binds)", plan.Funded)
	}
	if !card.Debt.Principal.Equal(money.FromFloat(10000)) {
		t.Errorf("principal = %s, want 10000", card.Debt.Principal)
	}
	if len(plan.Costs()) != 0 {
		t.Errorf("credit draws must carry no tax costs, got %+v", plan.Costs())
	}
}

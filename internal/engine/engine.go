// Package engine drives the year-by-year simulation: it fixes the order
// in which income, growth, mandatory distributions, contributions,
// spending, and taxation are applied across a family, and records one
// immutable statistics snapshot per year.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/money"
	"github.com/mreece/fincast/internal/payment"
	"github.com/mreece/fincast/internal/tax"
)

var (
	// ErrHorizonComplete is returned by Step once every configured year
	// has been simulated.
	ErrHorizonComplete = errors.New("simulation horizon complete")

	// ErrStatutoryViolation marks a rule the simulation must not break:
	// a required distribution that could not be taken, or a contribution
	// past its limit. Continuing would corrupt the year's tax numbers.
	ErrStatutoryViolation = errors.New("statutory violation")

	// ErrUnknownPerson is returned when an external bill names a person
	// that is not in the family.
	ErrUnknownPerson = errors.New("unknown person")
)

// ShortfallPolicy decides what happens when a bill cannot be fully funded.
type ShortfallPolicy string

const (
	// ShortfallInsolvent flags the person's year insolvent and forgives
	// the remainder; the run continues so later years can be studied.
	ShortfallInsolvent ShortfallPolicy = "insolvent"

	// ShortfallDefer rolls the unpaid remainder into next year's living
	// expenses.
	ShortfallDefer ShortfallPolicy = "defer"
)

// Options configure a run's horizon and policies.
type Options struct {
	StartYear int
	EndYear   int
	Shortfall ShortfallPolicy
}

// Engine simulates one family over a fixed horizon, one year per Step.
// It is single-threaded and step-synchronous: a year runs to completion
// before the next begins, and one person's stage completes before the
// next person's. Independent runs never share state.
type Engine struct {
	family *model.Family
	regime *tax.Regime
	taxes  *tax.Engine
	opts   Options

	year      int
	snapshots []Snapshot
	events    *EventLog

	// queued holds externally enqueued bills (e.g. an RL agent's
	// discretionary actions), consumed during the next year's spending
	// stage through the ordinary resolution path.
	queued map[string][]model.Bill

	// carryover holds withdrawal costs incurred while funding a tax
	// bill. Taxing them in the same year would re-enter the tax
	// computation, so they are folded into the next year's ledger.
	carryover map[string][]model.Cost

	// deferred holds bill shortfalls rolled forward under ShortfallDefer.
	deferred map[string]money.Money
}

// personYear is the per-year mutable context for one person, threaded
// through the stages instead of living on the person.
type personYear struct {
	ledger      *tax.Ledger
	contribRoom money.Money

	income      money.Money
	spending    money.Money
	debtService money.Money
	premiums    money.Money
	rmd         money.Money
	taxes       tax.Obligation
}

// New creates an engine over an already validated family and regime.
func New(family *model.Family, regime *tax.Regime, opts Options) *Engine {
	if opts.Shortfall == "" {
		opts.Shortfall = ShortfallInsolvent
	}
	return &Engine{
		family:    family,
		regime:    regime,
		taxes:     tax.NewEngine(regime),
		opts:      opts,
		year:      opts.StartYear,
		events:    &EventLog{},
		queued:    make(map[string][]model.Bill),
		carryover: make(map[string][]model.Cost),
		deferred:  make(map[string]money.Money),
	}
}

// Year returns the next year Step will simulate.
func (e *Engine) Year() int { return e.year }

// Done reports whether the horizon has been fully simulated.
func (e *Engine) Done() bool { return e.year > e.opts.EndYear }

// Snapshots returns a copy of the per-year snapshot sequence so far.
// Consumers get read-only data, never the live instrument graph.
func (e *Engine) Snapshots() []Snapshot {
	out := make([]Snapshot, len(e.snapshots))
	copy(out, e.snapshots)
	return out
}

// Events returns the run's event log.
func (e *Engine) Events() []Event { return e.events.Events() }

// EnqueueBill queues a discretionary bill against a person, to be
// resolved in the spending stage of the next simulated year. This is the
// action interface for external controllers; queued bills take the same
// resolution path as every other bill.
func (e *Engine) EnqueueBill(person string, bill model.Bill) error {
	if e.family.Member(person) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownPerson, person)
	}
	e.queued[person] = append(e.queued[person], bill)
	return nil
}

// Run simulates the remaining horizon. The context is checked between
// years only: a year always runs to completion (checkpoint granularity is
// one simulated year).
func (e *Engine) Run(ctx context.Context) ([]Snapshot, error) {
	for !e.Done() {
		if err := ctx.Err(); err != nil {
			return e.Snapshots(), err
		}
		if _, err := e.Step(); err != nil {
			return e.Snapshots(), err
		}
	}
	return e.Snapshots(), nil
}

// Step simulates one year across the whole family in the fixed stage
// order: income, growth, mandatory distributions, contributions, spending
// and debt service, taxation, snapshot. Transitions are forward-only; no
// stage re-runs within a year.
func (e *Engine) Step() (Snapshot, error) {
	if e.Done() {
		return Snapshot{}, ErrHorizonComplete
	}
	year := e.year
	members := e.family.Members

	years := make([]*personYear, len(members))
	for i, p := range members {
		p.Age++
		p.Insolvent = false
		py := &personYear{
			ledger:      tax.NewLedger(),
			contribRoom: e.regime.ContributionLimitAt(p.Age),
			income:      money.Zero,
			spending:    money.Zero,
			debtService: money.Zero,
			premiums:    money.Zero,
			rmd:         money.Zero,
		}
		py.ledger.AddCosts(e.carryover[p.Name])
		delete(e.carryover, p.Name)
		years[i] = py
	}

	// Stage 1: income.
	for i, p := range members {
		if err := e.postIncome(year, p, years[i]); err != nil {
			return Snapshot{}, err
		}
	}

	// Stage 2: growth. Every account and debt advances exactly once,
	// strictly before any withdrawal this year reads the balance.
	for _, p := range members {
		for _, a := range p.Accounts {
			a.ApplyGrowth()
		}
		for _, d := range p.Debts {
			d.ApplyInterest()
		}
		for _, pol := range p.Policies {
			pol.ApplyGrowth()
		}
	}

	// Stage 3: required minimum distributions.
	for i, p := range members {
		if err := e.takeRequiredDistributions(year, p, years[i]); err != nil {
			return Snapshot{}, err
		}
	}

	// Stage 4: discretionary contributions.
	for i, p := range members {
		if err := e.makeContributions(p, years[i]); err != nil {
			return Snapshot{}, err
		}
	}

	// Stage 5: spending, debt service, queued external bills.
	for i, p := range members {
		e.paySpending(year, p, years[i])
	}

	// Stage 6: taxation, per filing unit.
	if err := e.settleTaxes(year, years); err != nil {
		return Snapshot{}, err
	}

	// Stage 7: snapshot, then year-end resets.
	persons := make([]PersonSnapshot, len(members))
	insolvent := false
	for i, p := range members {
		persons[i] = personSnapshot(p, years[i])
		insolvent = insolvent || p.Insolvent
	}
	snap := Snapshot{
		Year:      year,
		Persons:   persons,
		Totals:    aggregate(persons),
		Insolvent: insolvent,
		Events:    e.events.forYear(year),
	}
	e.snapshots = append(e.snapshots, snap)

	for _, p := range members {
		for _, a := range p.Accounts {
			a.ResetYear()
		}
		for _, d := range p.Debts {
			d.ResetYear()
		}
		for _, j := range p.Jobs {
			j.AdvanceSalary()
		}
		p.SocialSecurity.AdvanceBenefit(p.Age)
		if p.Spending != nil {
			p.Spending.AdvanceYear()
		}
	}

	e.year++
	return snap, nil
}

// postIncome retires jobs whose owner reached retirement age, then posts
// wages and retirement benefits: take-home and benefits into the first
// liquid account, retirement contributions into their plan accounts,
// taxable amounts onto the ledger. Benefits are ordinary income, not
// wages, so they never enter the payroll tax base.
func (e *Engine) postIncome(year int, p *model.Person, py *personYear) error {
	if p.Age == p.RetirementAge {
		for _, j := range p.Jobs {
			if j.Active {
				j.Retire()
				e.events.Addf(year, "%s retired from %s at age %d", p.Name, j.Company, p.Age)
			}
		}
	}

	liquid := p.FirstLiquid()
	if benefit := p.SocialSecurity.YearlyBenefit(p.Age); benefit.IsPositive() {
		if p.Age == p.SocialSecurity.StartAge {
			e.events.Addf(year, "%s started social security benefits at age %d", p.Name, p.Age)
		}
		liquid.Deposit(benefit)
		py.ledger.AddOrdinaryIncome(benefit)
		py.income = py.income.Add(benefit)
	}
	for _, j := range p.Jobs {
		if !j.Active {
			continue
		}
		out := j.YearlyWages(py.contribRoom)
		py.contribRoom = py.contribRoom.Sub(out.PretaxContribution).Sub(out.RothContribution)

		liquid.Deposit(out.TakeHome)
		py.ledger.AddWages(out.TaxableWages)
		py.income = py.income.Add(out.Gross)

		if j.Plan == nil {
			continue
		}
		if out.PretaxContribution.IsPositive() || out.EmployerMatch.IsPositive() {
			acct := p.Account(j.Plan.PretaxAccount)
			if err := acct.Contribute(out.PretaxContribution); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrStatutoryViolation, p.Name, err)
			}
			// Employer match does not count against the employee limit.
			acct.Deposit(out.EmployerMatch)
		}
		if out.RothContribution.IsPositive() {
			acct := p.Account(j.Plan.RothAccount)
			if err := acct.Contribute(out.RothContribution); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrStatutoryViolation, p.Name, err)
			}
		}
	}
	return nil
}

// takeRequiredDistributions forces the statutory withdrawal from each
// pre-tax account through the resolver with that account as the only
// source, and deposits the proceeds into the person's liquid account.
func (e *Engine) takeRequiredDistributions(year int, p *model.Person, py *personYear) error {
	for _, a := range p.Accounts {
		if a.Kind != model.AccountPretax {
			continue
		}
		due := tax.RequiredDistribution(e.regime, p.Age, a.Balance)
		if !due.IsPositive() {
			continue
		}

		bill := model.Bill{
			Amount:   due,
			Category: model.BillMandatoryDistribution,
			Year:     year,
			Memo:     a.Name,
		}
		// Validation keeps the distribution start age at or above the
		// penalty age, so this withdrawal is never early.
		src := &model.AccountSource{Account: a}
		plan := payment.Resolve(bill, []model.FundingSource{src})
		if plan.Shortfall.IsPositive() {
			return fmt.Errorf("%w: required distribution of %s not taken from %s/%s",
				ErrStatutoryViolation, due, p.Name, a.Name)
		}

		p.FirstLiquid().Deposit(plan.Funded)
		py.ledger.AddCosts(plan.Costs())
		py.rmd = py.rmd.Add(plan.Funded)
	}
	return nil
}

// makeContributions moves each account's planned yearly contribution out
// of liquid funds, bounded by what liquid funds remain. Exceeding a limit
// is a configuration defect and stops the run.
func (e *Engine) makeContributions(p *model.Person, py *personYear) error {
	liquid := p.FirstLiquid()
	for _, a := range p.Accounts {
		if !a.PlannedContribution.IsPositive() || a == liquid {
			continue
		}
		amount := money.Min(a.PlannedContribution, liquid.Balance)
		if !amount.IsPositive() {
			continue
		}
		if a.Retirement() {
			if amount.GreaterThan(py.contribRoom) {
				return fmt.Errorf("%w: %s: contribution %s to %q exceeds remaining yearly limit %s",
					ErrStatutoryViolation, p.Name, amount, a.Name, py.contribRoom)
			}
			py.contribRoom = py.contribRoom.Sub(amount)
		}
		if err := a.Contribute(amount); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrStatutoryViolation, p.Name, err)
		}
		liquid.Withdraw(amount)
	}
	return nil
}

// paySpending generates and resolves the year's bills for one person:
// living expenses (with any deferred remainder and the shared-expense
// share), insurance premiums, debt minimum payments, and externally
// queued bills.
func (e *Engine) paySpending(year int, p *model.Person, py *personYear) {
	early := e.regime.Early(p.Age)

	living := money.Zero
	if p.Spending != nil {
		living = p.Spending.YearlyAmount()
	}
	living = living.Add(e.family.SharedExpenseShare())
	if carried, ok := e.deferred[p.Name]; ok {
		living = living.Add(carried)
		delete(e.deferred, p.Name)
	}
	if living.IsPositive() {
		bill := model.Bill{Amount: living, Category: model.BillLivingExpense, Year: year}
		plan := e.resolve(year, p, py, bill, p.FundingSources(early))
		py.spending = py.spending.Add(plan.Funded)
	}

	for _, pol := range p.Policies {
		if !pol.Premium.IsPositive() {
			continue
		}
		plan := e.resolve(year, p, py, pol.PremiumBill(year), p.FundingSources(early))
		py.premiums = py.premiums.Add(plan.Funded)
	}

	for _, d := range p.Debts {
		due := d.MinimumPaymentDue()
		if !due.IsPositive() {
			continue
		}
		bill := model.Bill{Amount: due, Category: model.BillDebtService, Year: year, Memo: d.Name}
		// A debt cannot service itself: drop its own credit line from the
		// source list.
		sources := excludeDebt(p.FundingSources(early), d)
		plan := e.resolve(year, p, py, bill, sources)
		d.Pay(plan.Funded)
		py.debtService = py.debtService.Add(plan.Funded)
	}

	for _, bill := range e.queued[p.Name] {
		bill.Year = year
		plan := e.resolve(year, p, py, bill, p.FundingSources(early))
		py.spending = py.spending.Add(plan.Funded)
	}
	delete(e.queued, p.Name)
}

// settleTaxes computes each filing unit's obligation from its combined
// ledger and resolves it as an ordinary tax bill against the unit's
// combined sources. Costs incurred funding the tax bill are deferred to
// next year's ledger rather than re-entering this year's computation.
func (e *Engine) settleTaxes(year int, years []*personYear) error {
	byName := make(map[string]*personYear, len(e.family.Members))
	for i, p := range e.family.Members {
		byName[p.Name] = years[i]
	}

	for _, unit := range e.family.FilingUnits() {
		head := unit[0]
		status := model.FilingSingle
		if len(unit) > 1 {
			status = model.FilingMarriedJoint
		}

		combined := tax.NewLedger()
		for _, p := range unit {
			combined.Merge(byName[p.Name].ledger)
		}

		obligation := e.taxes.Compute(combined, status)
		byName[head.Name].taxes = obligation
		total := obligation.Total()
		if !total.IsPositive() {
			continue
		}

		bill := model.Bill{Amount: total, Category: model.BillTax, Year: year}
		var sources []model.FundingSource
		for _, p := range unit {
			sources = append(sources, p.FundingSources(e.regime.Early(p.Age))...)
		}

		plan := payment.Resolve(bill, sources)
		if costs := plan.Costs(); len(costs) > 0 {
			e.carryover[head.Name] = append(e.carryover[head.Name], costs...)
		}
		if plan.Shortfall.IsPositive() {
			e.shortfall(year, unit, bill, plan.Shortfall)
		}
	}
	return nil
}

// resolve runs one bill through the payment resolver, folds its costs
// into the year's ledger, and applies the shortfall policy.
func (e *Engine) resolve(year int, p *model.Person, py *personYear, bill model.Bill, sources []model.FundingSource) payment.FundingPlan {
	plan := payment.Resolve(bill, sources)
	py.ledger.AddCosts(plan.Costs())
	if plan.Shortfall.IsPositive() {
		e.shortfall(year, []*model.Person{p}, bill, plan.Shortfall)
	}
	return plan
}

func (e *Engine) shortfall(year int, persons []*model.Person, bill model.Bill, amount money.Money) {
	head := persons[0]
	switch e.opts.Shortfall {
	case ShortfallDefer:
		e.deferred[head.Name] = e.deferred[head.Name].Add(amount)
		e.events.Addf(year, "%s deferred %s of an unfunded %s bill", head.Name, amount, bill.Category)
	default:
		for _, p := range persons {
			p.Insolvent = true
		}
		e.events.Addf(year, "%s insolvent: %s bill short by %s", head.Name, bill.Category, amount)
	}
}

func excludeDebt(sources []model.FundingSource, d *model.Debt) []model.FundingSource {
	out := sources[:0]
	for _, src := range sources {
		if ds, ok := src.(*model.DebtSource); ok && ds.Debt == d {
			continue
		}
		out = append(out, src)
	}
	return out
}

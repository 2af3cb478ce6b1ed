package model

import "github.com/mreece/fincast/internal/money"

// Family is the top-level agent container. Members are processed in
// insertion order everywhere, which is what makes two runs over the same
// scenario byte-identical.
type Family struct {
	Members        []*Person
	SharedExpenses money.Money
}

// Add appends a member. Insertion order is the processing order.
func (f *Family) Add(p *Person) {
	f.Members = append(f.Members, p)
}

// Member returns the named member, or nil.
func (f *Family) Member(name string) *Person {
	for _, p := range f.Members {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// FilingUnits groups members into tax filing units: married pairs file
// jointly, everyone else files alone. Units come out in the insertion
// order of their first member.
func (f *Family) FilingUnits() [][]*Person {
	var units [][]*Person
	seen := make(map[string]bool)
	for _, p := range f.Members {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		unit := []*Person{p}
		if p.Filing == FilingMarriedJoint && p.Spouse != "" {
			if spouse := f.Member(p.Spouse); spouse != nil && !seen[spouse.Name] {
				seen[spouse.Name] = true
				unit = append(unit, spouse)
			}
		}
		units = append(units, unit)
	}
	return units
}

// SharedExpenseShare returns one member's even share of the family's
// shared expenses.
func (f *Family) SharedExpenseShare() money.Money {
	n := int64(len(f.Members))
	if n == 0 || !f.SharedExpenses.IsPositive() {
		return money.Zero
	}
	return f.SharedExpenses.DivRound(money.FromInt(n), 2)
}

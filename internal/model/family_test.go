package model

import (
	"testing"

	"github.com/mreece/fincast/internal/money"
)

func TestFilingUnits(t *testing.T) {
	f := &Family{}
	f.Add(&Person{Name: "Avery", Filing: FilingMarriedJoint, Spouse: "Blake"})
	f.Add(&Person{Name: "Blake", Filing: FilingMarriedJoint, Spouse: "Avery"})
	f.Add(&Person{Name: "Casey", Filing: FilingSingle})

	units := f.FilingUnits()
	if len(units) != 2 {
		t.Fatalf("unit count = %d, want 2", len(units))
	}
	if len(units[0]) != 2 || units[0][0].Name != "Avery" || units[0][1].Name != "Blake" {
		t.Errorf("first unit = %v, want [Avery Blake]", names(units[0]))
	}
	if len(units[1]) != 1 || units[1][0].Name != "Casey" {
		t.Errorf("second unit = %v, want [Casey]", names(units[1]))
	}
}

func TestFilingUnitsSingleOnly(t *testing.T) {
	f := &Family{}
	f.Add(&Person{Name: "Avery", Filing: FilingSingle})

	units := f.FilingUnits()
	if len(units) != 1 || len(units[0]) != 1 {
		t.Fatalf("units = %v, want one singleton", units)
	}
}

func TestSharedExpenseShare(t *testing.T) {
	f := &Family{SharedExpenses: money.FromFloat(30000)}
	f.Add(&Person{Name: "Avery"})
	f.Add(&Person{Name: "Blake"})

	checkMoney(t, "share", f.SharedExpenseShare(), 15000)

	f.Add(&Person{Name: "Casey"})
	checkMoney(t, "three-way share", f.SharedExpenseShare(), 10000)

	empty := &Family{SharedExpenses: money.FromFloat(100)}
	checkMoney(t, "share with no members", empty.SharedExpenseShare(), 0)
}

func names(persons []*Person) []string {
	out := make([]string, len(persons))
	for i, p := range persons {
		out[i] = p.Name
	}
	return out
}

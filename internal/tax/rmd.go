package tax

import "github.com/mreece/fincast/internal/money"

// RequiredDistribution returns the mandatory yearly withdrawal from a
// pre-tax balance for a person of the given age: zero below the table's
// first age, balance divided by the age's divisor above it. Ages past the
// end of the table keep using the last (smallest) divisor.
func RequiredDistribution(regime *Regime, age int, balance money.Money) money.Money {
	table := regime.RMDDivisors
	if len(table) == 0 || age < table[0].Age || !balance.IsPositive() {
		return money.Zero
	}

	// Use the divisor for the greatest table age not above the person's age.
	divisor := table[0].Divisor
	for _, row := range table {
		if row.Age > age {
			break
		}
		divisor = row.Divisor
	}

	// A divisor below 1 can never force out more than the balance.
	return money.Min(balance.DivRound(divisor, 2), balance)
}

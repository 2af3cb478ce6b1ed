package model

import "github.com/mreece/fincast/internal/money"

// BillCategory classifies what an obligation pays for.
type BillCategory string

const (
	BillTax              BillCategory = "tax"
	BillLivingExpense    BillCategory = "living-expense"
	BillDebtService      BillCategory = "debt-service"
	BillInsurancePremium BillCategory = "insurance-premium"

	// BillMandatoryDistribution is the bill-like event a required minimum
	// distribution emits. It is satisfied from exactly one account and is
	// a transfer, not spending.
	BillMandatoryDistribution BillCategory = "mandatory-distribution"
)

// Bill is a one-time obligation to pay a specific amount in a specific
// year. Bills are ephemeral values: created by whichever rule determined
// the obligation exists and consumed immediately by the payment resolver.
type Bill struct {
	Amount   money.Money
	Category BillCategory
	Year     int
	Memo     string
}

package model

import (
	"testing"

	"github.com/mreece/fincast/internal/money"
)

func TestDebtApplyInterest(t *testing.T) {
	d := &Debt{
		Kind:         DebtRevolving,
		Principal:    money.FromFloat(1000),
		InterestRate: money.Rate(0.20),
	}
	d.ApplyInterest()
	checkMoney(t, "principal", d.Principal, 1200)
	checkMoney(t, "interest YTD", d.InterestYTD, 200)

	d.ResetYear()
	checkMoney(t, "interest YTD after reset", d.InterestYTD, 0)

	// Paid-off debt accrues nothing.
	d.Principal = money.Zero
	d.ApplyInterest()
	checkMoney(t, "principal when paid off", d.Principal, 0)
}

func TestMinimumPaymentDue(t *testing.T) {
	tests := []struct {
		name string
		debt Debt
		want float64
	}{
		{
			name: "revolving rate above floor",
			debt: Debt{Kind: DebtRevolving, Principal: money.FromFloat(5000),
				MinPaymentRate: money.Rate(0.02), MinPaymentFloor: money.FromFloat(25)},
			want: 100, // 2% of 5000
		},
		{
			name: "revolving floor above rate",
			debt: Debt{Kind: DebtRevolving, Principal: money.FromFloat(1000),
				MinPaymentRate: money.Rate(0.02), MinPaymentFloor: money.FromFloat(25)},
			want: 25, // floor beats 20
		},
		{
			name: "revolving due capped at principal",
			debt: Debt{Kind: DebtRevolving, Principal: money.FromFloat(10),
				MinPaymentRate: money.Rate(0.02), MinPaymentFloor: money.FromFloat(25)},
			want: 10,
		},
		{
			name: "amortized fixed payment",
			debt: Debt{Kind: DebtAmortized, Principal: money.FromFloat(200000),
				FixedPayment: money.FromFloat(18000)},
			want: 18000,
		},
		{
			name: "amortized final payment capped",
			debt: Debt{Kind: DebtAmortized, Principal: money.FromFloat(900),
				FixedPayment: money.FromFloat(18000)},
			want: 900,
		},
		{
			name: "zero principal",
			debt: Debt{Kind: DebtRevolving, MinPaymentFloor: money.FromFloat(25)},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkMoney(t, "due", tt.debt.MinimumPaymentDue(), tt.want)
		})
	}
}

func TestDebtDraw(t *testing.T) {
	d := &Debt{
		Kind:        DebtRevolving,
		Principal:   money.FromFloat(200),
		CreditLimit: money.FromFloat(500),
	}
	checkMoney(t, "available credit", d.AvailableCredit(), 300)

	drawn := d.Draw(money.FromFloat(400))
	checkMoney(t, "drawn", drawn, 300)
	checkMoney(t, "principal", d.Principal, 500)
	checkMoney(t, "available after draw", d.AvailableCredit(), 0)

	// Amortized debt has no drawable credit.
	loan := &Debt{Kind: DebtAmortized, Principal: money.FromFloat(1000)}
	checkMoney(t, "amortized available credit", loan.AvailableCredit(), 0)
}

func TestDebtPay(t *testing.T) {
	d := &Debt{Kind: DebtAmortized, Principal: money.FromFloat(1500)}

	paid := d.Pay(money.FromFloat(2000))
	checkMoney(t, "paid", paid, 1500)
	checkMoney(t, "principal", d.Principal, 0)

	paid = d.Pay(money.FromFloat(100))
	checkMoney(t, "paid on settled debt", paid, 0)
}

package service

import (
	"math"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nonNegative maps negative and non-finite currency amounts to 0 and leaves
// every other amount alone.
func nonNegative(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

// clampAmount is nonNegative capped at MaxHomeValue. Only input sanitization
// applies the cap; the math works on any finite amount.
func clampAmount(v float64) float64 {
	return math.Min(nonNegative(v), MaxHomeValue)
}

// clampRate maps a negative or non-finite annual percentage rate to 0.
func clampRate(annualRatePercent float64) float64 {
	if !finite(annualRatePercent) || annualRatePercent < 0 {
		return 0
	}
	return math.Min(annualRatePercent, MaxInterestRatePercent)
}

func monthlyRate(annualRatePercent float64) float64 {
	return clampRate(annualRatePercent) / 100 / 12
}

func termMonths(termYears int) int {
	if termYears <= 0 {
		return 0
	}
	return termYears * 12
}

// MonthlyPayment returns the fixed payment that retires principal over termYears.
// A zero rate pays the principal down in equal installments.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	principal = nonNegative(principal)
	n := termMonths(termYears)
	if principal <= 0 || n <= 0 {
		return 0
	}

	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return principal / float64(n)
	}
	return principal * r / (1 - math.Pow(1+r, -float64(n)))
}

// RemainingBalance returns the unpaid principal after elapsedMonths payments.
// B = L * ((1+r)^n - (1+r)^m) / ((1+r)^n - 1)
func RemainingBalance(principal, annualRatePercent float64, termYears, elapsedMonths int) float64 {
	principal = nonNegative(principal)
	if elapsedMonths <= 0 {
		return principal
	}
	n := termMonths(termYears)
	if principal <= 0 || elapsedMonths >= n {
		return 0
	}

	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return math.Max(0, principal-(principal/float64(n))*float64(elapsedMonths))
	}

	factorN := math.Pow(1+r, float64(n))
	factorM := math.Pow(1+r, float64(elapsedMonths))
	return math.Max(0, principal*(factorN-factorM)/(factorN-1))
}

// PrincipalPaid is the part of the loan retired after elapsedMonths payments.
func PrincipalPaid(principal, annualRatePercent float64, termYears, elapsedMonths int) float64 {
	return nonNegative(principal) - RemainingBalance(principal, annualRatePercent, termYears, elapsedMonths)
}

// MaxLoanForPayment inverts MonthlyPayment: the largest loan a monthly budget
// can carry at the given rate and term.
func MaxLoanForPayment(monthlyBudget, annualRatePercent float64, termYears int) float64 {
	monthlyBudget = nonNegative(monthlyBudget)
	n := termMonths(termYears)
	if monthlyBudget <= 0 || n <= 0 {
		return 0
	}

	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return monthlyBudget * float64(n)
	}
	return monthlyBudget * (1 - math.Pow(1+r, -float64(n))) / r
}

// TotalInterest is the interest paid if the loan runs to maturity.
func TotalInterest(principal, annualRatePercent float64, termYears int) float64 {
	payment := MonthlyPayment(principal, annualRatePercent, termYears)
	total := payment * float64(termMonths(termYears))
	return math.Max(0, total-nonNegative(principal))
}

// AmortizationSchedule lists every payment of the loan. Balances follow
// RemainingBalance so the last row always lands on exactly zero.
func AmortizationSchedule(principal, annualRatePercent float64, termYears int) []domain.AmortizationRow {
	n := termMonths(termYears)
	principal = nonNegative(principal)
	if principal <= 0 || n <= 0 {
		return []domain.AmortizationRow{}
	}

	payment := MonthlyPayment(principal, annualRatePercent, termYears)
	rows := make([]domain.AmortizationRow, 0, n)
	prev := principal
	for m := 1; m <= n; m++ {
		balance := RemainingBalance(principal, annualRatePercent, termYears, m)
		paid := prev - balance
		rows = append(rows, domain.AmortizationRow{
			Month:     m,
			Payment:   payment,
			Interest:  math.Max(0, payment-paid),
			Principal: paid,
			Balance:   balance,
		})
		prev = balance
	}
	return rows
}

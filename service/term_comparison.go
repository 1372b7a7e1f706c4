package service

import (
	"sort"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

// CompareTerms shows the deal under each allowed loan term. In bottoms-up mode
// the budget stays fixed and the affordable price moves; in top-down mode the
// loan stays fixed and the payment moves.
func CompareTerms(state domain.CalculatorState, allowedTerms []int) []domain.TermComparison {
	terms := append([]int(nil), allowedTerms...)
	if len(terms) == 0 {
		terms = append(terms, DefaultTermYears...)
	}
	sort.Ints(terms)

	budget := TotalMonthlyContribution(state.Buyers)
	rate := state.Mortgage.AnnualInterestRatePercent

	comparisons := make([]domain.TermComparison, 0, len(terms))
	for _, years := range terms {
		var loan, home float64
		if state.Mode == domain.ModeBottomsUp {
			derived := Affordability(state.Buyers, rate, years)
			loan, home = derived.LoanAmount, derived.HomeValue
		} else {
			loan, home = nonNegative(state.Mortgage.LoanAmount), nonNegative(state.Mortgage.HomeValue)
		}

		payment := MonthlyPayment(loan, rate, years)
		comparisons = append(comparisons, domain.TermComparison{
			TermYears:      years,
			LoanAmount:     roundTo2Decimals(loan),
			HomeValue:      roundTo2Decimals(home),
			MonthlyPayment: roundTo2Decimals(payment),
			TotalInterest:  roundTo2Decimals(TotalInterest(loan, rate, years)),
			// Tolerancia de un centavo por redondeo
			AffordableByBudget: payment <= budget+0.01,
		})
	}
	return comparisons
}

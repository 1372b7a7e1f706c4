package service

import "github.com/Cincinnati-Associates/tomi-app-sub000/domain"

const DefaultTimelineStepMonths = 12

// EquityTimeline samples the deal every stepMonths from closing until the loan
// is paid off, growing the home value at appreciationPercent a year.
func EquityTimeline(state domain.CalculatorState, appreciationPercent float64, stepMonths int) []domain.TimelinePoint {
	if stepMonths <= 0 {
		stepMonths = DefaultTimelineStepMonths
	}
	m := state.Mortgage
	end := termMonths(m.TermYears)

	points := make([]domain.TimelinePoint, 0, end/stepMonths+2)
	for month := 0; ; month += stepMonths {
		if month > end {
			month = end
		}
		value := FutureValue(m.HomeValue, appreciationPercent, month)
		balance := RemainingBalance(m.LoanAmount, m.AnnualInterestRatePercent, m.TermYears, month)
		points = append(points, domain.TimelinePoint{
			Month:              month,
			ProjectedHomeValue: value,
			RemainingBalance:   balance,
			TotalEquity:        value - balance,
			Ownership:          OwnershipAt(state.Buyers, m, month),
		})
		if month >= end {
			break
		}
	}
	return points
}

package service

import (
	"fmt"
	"math"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

// growthFactor is 1 + rate/100, or 0 when the rate would wipe out the value.
func growthFactor(annualRatePercent float64) float64 {
	if !finite(annualRatePercent) {
		return 1
	}
	return math.Max(0, 1+annualRatePercent/100)
}

// FutureValue compounds pv annually over months: pv * (1 + rate/100)^(months/12).
func FutureValue(pv, annualRatePercent float64, months int) float64 {
	pv = nonNegative(pv)
	if months <= 0 {
		return pv
	}
	return pv * math.Pow(growthFactor(annualRatePercent), float64(months)/12)
}

// ImpliedAnnualRate is the compound annual rate that grows pv into fv over months.
// It is 0 when pv or months leave the rate undefined.
func ImpliedAnnualRate(pv, fv float64, months int) float64 {
	pv = nonNegative(pv)
	if pv <= 0 || months <= 0 {
		return 0
	}
	return (math.Pow(nonNegative(fv)/pv, 12/float64(months)) - 1) * 100
}

// MonthsToReach returns how many whole months growth at annualRatePercent takes
// to turn pv into fv. ok is false when that never happens.
func MonthsToReach(pv, fv, annualRatePercent float64) (months int, ok bool) {
	pv, fv = nonNegative(pv), nonNegative(fv)
	g := growthFactor(annualRatePercent)
	if pv <= 0 || fv <= 0 || g <= 0 || g == 1 {
		return 0, false
	}
	exact := 12 * math.Log(fv/pv) / math.Log(g)
	if !finite(exact) {
		return 0, false
	}
	months = int(math.Round(exact))
	if months < 1 || months > MaxScenarioMonths {
		return 0, false
	}
	return months, true
}

// SolveScenario completes a scenario given any two of its three fields, solving
// the missing one against the current home value. When all three are given the
// months and rate win and the value is recomputed.
func SolveScenario(homeValue float64, in domain.ScenarioInput) (domain.ExitScenario, error) {
	s := domain.ExitScenario{ID: in.ID}

	switch {
	case in.MonthsFromClose != nil && in.AnnualAppreciationPercent != nil:
		s.MonthsFromClose = *in.MonthsFromClose
		s.AnnualAppreciationPercent = *in.AnnualAppreciationPercent
		s.ProjectedHomeValue = FutureValue(homeValue, s.AnnualAppreciationPercent, s.MonthsFromClose)
	case in.MonthsFromClose != nil && in.ProjectedHomeValue != nil:
		s.MonthsFromClose = *in.MonthsFromClose
		s.ProjectedHomeValue = nonNegative(*in.ProjectedHomeValue)
		s.AnnualAppreciationPercent = ImpliedAnnualRate(homeValue, s.ProjectedHomeValue, s.MonthsFromClose)
	case in.ProjectedHomeValue != nil && in.AnnualAppreciationPercent != nil:
		months, ok := MonthsToReach(homeValue, *in.ProjectedHomeValue, *in.AnnualAppreciationPercent)
		if !ok {
			return s, fmt.Errorf("%w: %.2f is not reachable at %.4f%% a year",
				domain.ErrInvalidScenario, *in.ProjectedHomeValue, *in.AnnualAppreciationPercent)
		}
		s.MonthsFromClose = months
		s.ProjectedHomeValue = nonNegative(*in.ProjectedHomeValue)
		s.AnnualAppreciationPercent = *in.AnnualAppreciationPercent
	default:
		return s, fmt.Errorf("%w: two of months, value and rate are required", domain.ErrInvalidScenario)
	}

	if s.MonthsFromClose < 1 || s.MonthsFromClose > MaxScenarioMonths {
		return s, fmt.Errorf("%w: months from close must be between 1 and %d",
			domain.ErrInvalidScenario, MaxScenarioMonths)
	}
	if !finite(s.AnnualAppreciationPercent) {
		s.AnnualAppreciationPercent = 0
	}
	return s, nil
}

// ApplyScenarioEdit applies one edited field and recomputes exactly one other:
//
//	months: value from rate if a rate is set, else rate from value if a value is set
//	rate:   value
//	value:  rate
func ApplyScenarioEdit(homeValue float64, s domain.ExitScenario, edit domain.ScenarioEdit) (domain.ExitScenario, error) {
	switch edit.Field {
	case domain.FieldMonthsFromClose:
		if !finite(edit.Value) {
			return s, fmt.Errorf("%w: months must be a number", domain.ErrInvalidScenario)
		}
		s.MonthsFromClose = clampMonths(int(math.Round(edit.Value)))
		switch {
		case s.AnnualAppreciationPercent != 0:
			s.ProjectedHomeValue = FutureValue(homeValue, s.AnnualAppreciationPercent, s.MonthsFromClose)
		case s.ProjectedHomeValue > 0:
			s.AnnualAppreciationPercent = ImpliedAnnualRate(homeValue, s.ProjectedHomeValue, s.MonthsFromClose)
		}
	case domain.FieldAppreciation:
		if !finite(edit.Value) {
			edit.Value = 0
		}
		s.AnnualAppreciationPercent = edit.Value
		s.ProjectedHomeValue = FutureValue(homeValue, s.AnnualAppreciationPercent, s.MonthsFromClose)
	case domain.FieldProjectedHomeValue:
		s.ProjectedHomeValue = nonNegative(edit.Value)
		s.AnnualAppreciationPercent = ImpliedAnnualRate(homeValue, s.ProjectedHomeValue, s.MonthsFromClose)
	default:
		return s, fmt.Errorf("%w: %q", domain.ErrUnknownEditField, edit.Field)
	}
	return s, nil
}

func clampMonths(months int) int {
	if months < 1 {
		return 1
	}
	if months > MaxScenarioMonths {
		return MaxScenarioMonths
	}
	return months
}

// ProjectScenario computes the deal's position at an exit scenario: loan
// balance, equity, sale proceeds, point-in-time ownership and every buyer's
// outcome. Negative equity is reported as-is and flagged as underwater.
func ProjectScenario(state domain.CalculatorState, s domain.ExitScenario) domain.ScenarioProjection {
	m := state.Mortgage
	remaining := RemainingBalance(m.LoanAmount, m.AnnualInterestRatePercent, m.TermYears, s.MonthsFromClose)
	value := nonNegative(s.ProjectedHomeValue)
	sellingCosts, net := SaleProceeds(value, remaining, state.SellingCostsPercent)
	equity := value - remaining

	ownership := OwnershipAt(state.Buyers, m, s.MonthsFromClose)
	outcomes := make([]domain.ProceedsOutcome, 0, len(ownership.Shares))
	for _, share := range ownership.Shares {
		outcomes = append(outcomes, BuyerOutcome(share, equity, net, s.MonthsFromClose, state.TaxTreatment))
	}

	return domain.ScenarioProjection{
		Scenario:         s,
		RemainingBalance: remaining,
		TotalEquity:      equity,
		SellingCosts:     sellingCosts,
		NetProceeds:      net,
		Underwater:       equity < 0,
		Ownership:        ownership,
		Outcomes:         outcomes,
	}
}

package service

import (
	"math"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

// SaleProceeds returns the selling costs and what is left after paying off the
// loan and those costs. Net proceeds can be negative.
func SaleProceeds(projectedHomeValue, remainingBalance, sellingCostsPercent float64) (sellingCosts, netProceeds float64) {
	sellingCosts = nonNegative(projectedHomeValue) * clampPercent(sellingCostsPercent) / 100
	netProceeds = nonNegative(projectedHomeValue) - nonNegative(remainingBalance) - sellingCosts
	return sellingCosts, netProceeds
}

func clampPercent(p float64) float64 {
	if !finite(p) || p < 0 {
		return 0
	}
	return math.Min(p, 100)
}

// BuyerOutcome turns one owner's share of a sale into proceeds, profit and returns.
func BuyerOutcome(
	share domain.OwnershipShare,
	totalEquity, netProceeds float64,
	monthsFromClose int,
	treatment domain.TaxTreatment,
) domain.ProceedsOutcome {

	capital := share.CapitalContributed
	proceeds := netProceeds * share.Percentage / 100
	profit := proceeds - capital

	return domain.ProceedsOutcome{
		BuyerID:              share.BuyerID,
		CapitalContributed:   capital,
		Percentage:           share.Percentage,
		EquityShare:          totalEquity * share.Percentage / 100,
		NetProceedsShare:     proceeds,
		ProfitOrLoss:         profit,
		SimpleROIPercent:     SimpleROI(capital, profit),
		AnnualizedROIPercent: AnnualizedROI(capital, proceeds, monthsFromClose),
		TaxableGain:          TaxableGain(profit, treatment),
	}
}

// SimpleROI is profit over capital as a percentage, 0 when no capital went in.
func SimpleROI(capital, profit float64) float64 {
	if capital <= 0 {
		return 0
	}
	return profit / capital * 100
}

// AnnualizedROI is the compound annual growth of capital into proceeds. A sale
// that returns nothing is a total loss of exactly -100%.
func AnnualizedROI(capital, proceeds float64, months int) float64 {
	years := float64(months) / 12
	if capital <= 0 || years <= 0 {
		return 0
	}
	if proceeds <= 0 {
		return TotalLossROIPercent
	}
	cagr := (math.Pow(proceeds/capital, 1/years) - 1) * 100
	if !finite(cagr) {
		return 0
	}
	return cagr
}

// TaxableGain applies the selected tax treatment to an owner's capital gain.
func TaxableGain(capitalGain float64, treatment domain.TaxTreatment) float64 {
	switch treatment {
	case domain.TaxPrimaryResidenceExclusion:
		return math.Max(0, capitalGain-PrimaryResidenceExclusion)
	case domain.TaxDeferredExchange:
		return 0
	default:
		return capitalGain
	}
}

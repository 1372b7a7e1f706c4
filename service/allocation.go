package service

import (
	"fmt"
	"math"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

// TotalMonthlyContribution sums every buyer's monthly budget.
func TotalMonthlyContribution(buyers []domain.Buyer) float64 {
	total := 0.0
	for _, b := range buyers {
		total += nonNegative(b.MonthlyContribution)
	}
	return total
}

// TotalDownPayment sums every buyer's up-front contribution.
func TotalDownPayment(buyers []domain.Buyer) float64 {
	total := 0.0
	for _, b := range buyers {
		total += nonNegative(b.DownPaymentContribution)
	}
	return total
}

// Affordability solves the bottoms-up deal: the loan the buyers' combined
// monthly budget can carry, plus their pooled down payment.
func Affordability(buyers []domain.Buyer, annualRatePercent float64, termYears int) domain.MortgageTerms {
	loan := MaxLoanForPayment(TotalMonthlyContribution(buyers), annualRatePercent, termYears)
	down := TotalDownPayment(buyers)
	return domain.MortgageTerms{
		HomeValue:                 loan + down,
		DownPayment:               down,
		LoanAmount:                loan,
		AnnualInterestRatePercent: clampRate(annualRatePercent),
		TermYears:                 termYears,
	}
}

// ApplyAffordability returns the state with its mortgage recomputed from the
// buyers when the state is in bottoms-up mode. Top-down states only have the
// loan invariant re-established.
func ApplyAffordability(state domain.CalculatorState) domain.CalculatorState {
	m := state.Mortgage
	if state.Mode == domain.ModeBottomsUp {
		derived := Affordability(state.Buyers, m.AnnualInterestRatePercent, m.TermYears)
		derived.BedroomCount = m.BedroomCount
		state.Mortgage = derived
		return state
	}
	m.HomeValue = nonNegative(m.HomeValue)
	m.DownPayment = math.Min(nonNegative(m.DownPayment), m.HomeValue)
	m.LoanAmount = m.HomeValue - m.DownPayment
	state.Mortgage = m
	return state
}

// FullTermOwnership splits ownership as if every scheduled payment is made.
func FullTermOwnership(buyers []domain.Buyer, terms domain.MortgageTerms) domain.OwnershipSnapshot {
	months := termMonths(terms.TermYears)
	return ownershipSnapshot(buyers, domain.SnapshotFullTerm, months, nonNegative(terms.LoanAmount))
}

// OwnershipAt splits ownership by the principal actually paid after elapsedMonths.
func OwnershipAt(buyers []domain.Buyer, terms domain.MortgageTerms, elapsedMonths int) domain.OwnershipSnapshot {
	if elapsedMonths < 0 {
		elapsedMonths = 0
	}
	paid := PrincipalPaid(terms.LoanAmount, terms.AnnualInterestRatePercent, terms.TermYears, elapsedMonths)
	return ownershipSnapshot(buyers, domain.SnapshotPointInTime, elapsedMonths, paid)
}

// ownershipSnapshot credits each buyer with their down payment plus a share of
// the principal paid proportional to their monthly contribution.
func ownershipSnapshot(buyers []domain.Buyer, kind domain.SnapshotKind, months int, principalPaid float64) domain.OwnershipSnapshot {
	snap := domain.OwnershipSnapshot{
		Kind:          kind,
		ElapsedMonths: months,
		PrincipalPaid: principalPaid,
		Shares:        make([]domain.OwnershipShare, 0, len(buyers)),
	}

	totalMonthly := TotalMonthlyContribution(buyers)
	capital := make([]float64, len(buyers))
	for i, b := range buyers {
		monthlyShare := 0.0
		if totalMonthly > 0 {
			monthlyShare = nonNegative(b.MonthlyContribution) / totalMonthly
		}
		capital[i] = nonNegative(b.DownPaymentContribution) + principalPaid*monthlyShare
		snap.TotalCapital += capital[i]
	}

	for i, b := range buyers {
		pct := 0.0
		switch {
		case len(buyers) == 1:
			// A sole owner owns the whole home whatever they put in.
			pct = 100
		case snap.TotalCapital > 0:
			pct = capital[i] / snap.TotalCapital * 100
		}
		snap.Shares = append(snap.Shares, domain.OwnershipShare{
			BuyerID:            b.ID,
			CapitalContributed: capital[i],
			Percentage:         pct,
		})
	}
	return snap
}

// ApplyMortgageEdit applies one edited field and recomputes whichever field
// the mode makes dependent on it. Price fields are outputs in bottoms-up mode
// and edits to them are ignored there.
func ApplyMortgageEdit(mode domain.CalculationMode, terms domain.MortgageTerms, edit domain.MortgageEdit) (domain.MortgageTerms, error) {
	v := edit.Value
	switch edit.Field {
	case domain.FieldHomeValue, domain.FieldDownPayment, domain.FieldLoanAmount:
		if mode == domain.ModeBottomsUp {
			return terms, nil
		}
		return applyPriceEdit(terms, edit.Field, nonNegative(v)), nil
	case domain.FieldInterestRate:
		terms.AnnualInterestRatePercent = clampRate(v)
	case domain.FieldTermYears:
		if !finite(v) || v != math.Trunc(v) || v < 1 || v > MaxTermYears {
			return terms, fmt.Errorf("%w: %v years", domain.ErrInvalidTerm, v)
		}
		terms.TermYears = int(v)
	case domain.FieldBedroomCount:
		if !finite(v) || v < 0 {
			v = 0
		}
		terms.BedroomCount = int(math.Round(v))
	default:
		return terms, fmt.Errorf("%w: %q", domain.ErrUnknownEditField, edit.Field)
	}
	return terms, nil
}

// applyPriceEdit keeps loanAmount = homeValue - downPayment after the edit.
func applyPriceEdit(terms domain.MortgageTerms, field domain.MortgageField, v float64) domain.MortgageTerms {
	switch field {
	case domain.FieldHomeValue:
		terms.HomeValue = v
		terms.DownPayment = math.Min(terms.DownPayment, v)
	case domain.FieldDownPayment:
		terms.DownPayment = math.Min(v, terms.HomeValue)
	case domain.FieldLoanAmount:
		if v > terms.HomeValue {
			terms.HomeValue = v
		}
		terms.DownPayment = terms.HomeValue - v
	}
	terms.LoanAmount = terms.HomeValue - terms.DownPayment
	return terms
}

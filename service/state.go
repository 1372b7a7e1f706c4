package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

// AddBuyer appends a buyer to the deal, assigning an ID when none is given.
func AddBuyer(state domain.CalculatorState, b domain.Buyer) (domain.CalculatorState, domain.Buyer, error) {
	if len(state.Buyers) >= domain.MaxBuyers {
		return state, b, domain.ErrTooManyBuyers
	}
	b.ID = strings.TrimSpace(b.ID)
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	for _, existing := range state.Buyers {
		if existing.ID == b.ID {
			return state, b, fmt.Errorf("%w: %s", domain.ErrDuplicateBuyer, b.ID)
		}
	}
	b = sanitizeBuyer(b)

	buyers := make([]domain.Buyer, 0, len(state.Buyers)+1)
	buyers = append(buyers, state.Buyers...)
	state.Buyers = append(buyers, b)
	return state, b, nil
}

// UpdateBuyer replaces the buyer with the same ID.
func UpdateBuyer(state domain.CalculatorState, b domain.Buyer) (domain.CalculatorState, error) {
	for i, existing := range state.Buyers {
		if existing.ID != b.ID {
			continue
		}
		buyers := append([]domain.Buyer(nil), state.Buyers...)
		buyers[i] = sanitizeBuyer(b)
		state.Buyers = buyers
		return state, nil
	}
	return state, fmt.Errorf("%w: %s", domain.ErrBuyerNotFound, b.ID)
}

func RemoveBuyer(state domain.CalculatorState, id string) (domain.CalculatorState, error) {
	for i, existing := range state.Buyers {
		if existing.ID != id {
			continue
		}
		buyers := make([]domain.Buyer, 0, len(state.Buyers)-1)
		buyers = append(buyers, state.Buyers[:i]...)
		state.Buyers = append(buyers, state.Buyers[i+1:]...)
		return state, nil
	}
	return state, fmt.Errorf("%w: %s", domain.ErrBuyerNotFound, id)
}

// AddScenario inserts a scenario keeping the list ordered by months from close.
func AddScenario(state domain.CalculatorState, s domain.ExitScenario) (domain.CalculatorState, domain.ExitScenario, error) {
	if s.MonthsFromClose < 1 || s.MonthsFromClose > MaxScenarioMonths {
		return state, s, fmt.Errorf("%w: months from close must be between 1 and %d",
			domain.ErrInvalidScenario, MaxScenarioMonths)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	scenarios := make([]domain.ExitScenario, 0, len(state.Scenarios)+1)
	scenarios = append(scenarios, state.Scenarios...)
	state.Scenarios = sortScenarios(append(scenarios, s))
	return state, s, nil
}

func RemoveScenario(state domain.CalculatorState, id string) (domain.CalculatorState, error) {
	for i, existing := range state.Scenarios {
		if existing.ID != id {
			continue
		}
		scenarios := make([]domain.ExitScenario, 0, len(state.Scenarios)-1)
		scenarios = append(scenarios, state.Scenarios[:i]...)
		state.Scenarios = append(scenarios, state.Scenarios[i+1:]...)
		return state, nil
	}
	return state, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
}

func sortScenarios(scenarios []domain.ExitScenario) []domain.ExitScenario {
	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].MonthsFromClose < scenarios[j].MonthsFromClose
	})
	return scenarios
}

// derivedBuyerID names a buyer that arrived without an ID. The ID depends only
// on the buyer's position and name, so the same input always shares and caches
// under the same token.
func derivedBuyerID(position int, name string, taken map[string]bool) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("buyer/%d/%s", position, name))).String()
	if taken[id] {
		return uuid.NewString()
	}
	return id
}

func sanitizeBuyer(b domain.Buyer) domain.Buyer {
	b.DownPaymentContribution = clampAmount(b.DownPaymentContribution)
	b.MonthlyContribution = clampAmount(b.MonthlyContribution)
	return b
}

// NearestTerm returns the allowed term closest to termYears, preferring the
// longer one on ties. Any term from 1 to MaxTermYears passes when allowed is empty.
func NearestTerm(termYears int, allowed []int) int {
	if len(allowed) == 0 {
		return min(max(termYears, 1), MaxTermYears)
	}
	best := allowed[0]
	for _, t := range allowed[1:] {
		d, bd := abs(t-termYears), abs(best-termYears)
		if d < bd || (d == bd && t > best) {
			best = t
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SanitizeState clamps live-edited input into something the engine can use:
// negative or non-finite amounts become 0, unknown enums fall back to their
// defaults, extra buyers and scenarios are dropped and scenarios are sorted.
func SanitizeState(state domain.CalculatorState, allowedTerms []int) domain.CalculatorState {
	if !state.Mode.Valid() {
		state.Mode = domain.ModeBottomsUp
	}
	if !state.TaxTreatment.Valid() {
		state.TaxTreatment = domain.TaxNone
	}
	state.SellingCostsPercent = clampPercent(state.SellingCostsPercent)

	n := min(len(state.Buyers), domain.MaxBuyers)
	buyers := make([]domain.Buyer, 0, n)
	seen := make(map[string]bool, n)
	for _, b := range state.Buyers {
		b.ID = strings.TrimSpace(b.ID)
		if len(buyers) == domain.MaxBuyers || (b.ID != "" && seen[b.ID]) {
			continue
		}
		if b.ID == "" {
			b.ID = derivedBuyerID(len(buyers), b.Name, seen)
		}
		seen[b.ID] = true
		buyers = append(buyers, sanitizeBuyer(b))
	}
	state.Buyers = buyers

	m := state.Mortgage
	m.HomeValue = clampAmount(m.HomeValue)
	m.DownPayment = clampAmount(m.DownPayment)
	m.LoanAmount = clampAmount(m.LoanAmount)
	m.AnnualInterestRatePercent = clampRate(m.AnnualInterestRatePercent)
	m.TermYears = NearestTerm(m.TermYears, allowedTerms)
	m.BedroomCount = max(m.BedroomCount, 0)
	state.Mortgage = m

	scenarios := make([]domain.ExitScenario, 0, min(len(state.Scenarios), MaxShareScenarios))
	for _, s := range state.Scenarios {
		if len(scenarios) == MaxShareScenarios {
			break
		}
		s.MonthsFromClose = clampMonths(s.MonthsFromClose)
		s.ProjectedHomeValue = clampAmount(s.ProjectedHomeValue)
		if !finite(s.AnnualAppreciationPercent) {
			s.AnnualAppreciationPercent = 0
		}
		s.AnnualAppreciationPercent = math.Max(s.AnnualAppreciationPercent, -100)
		scenarios = append(scenarios, s)
	}
	state.Scenarios = sortScenarios(scenarios)
	return state
}

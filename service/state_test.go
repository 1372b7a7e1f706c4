package service

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

func TestAddBuyer(t *testing.T) {
	state := domain.CalculatorState{}

	state, added, err := AddBuyer(state, domain.Buyer{Name: "Ana", DownPaymentContribution: -5, MonthlyContribution: 1500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(added.ID); err != nil {
		t.Errorf("expected a generated UUID, got %q", added.ID)
	}
	if added.DownPaymentContribution != 0 {
		t.Errorf("expected negative down payment to be clamped, got %v", added.DownPaymentContribution)
	}

	state, _, err = AddBuyer(state, domain.Buyer{ID: "  b  ", Name: "Bea"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Buyers[1].ID != "b" {
		t.Errorf("expected trimmed ID, got %q", state.Buyers[1].ID)
	}

	if _, _, err := AddBuyer(state, domain.Buyer{ID: "b"}); !errors.Is(err, domain.ErrDuplicateBuyer) {
		t.Errorf("expected ErrDuplicateBuyer, got %v", err)
	}

	state, _, _ = AddBuyer(state, domain.Buyer{ID: "c"})
	state, _, _ = AddBuyer(state, domain.Buyer{ID: "d"})
	if len(state.Buyers) != domain.MaxBuyers {
		t.Fatalf("expected %d buyers, got %d", domain.MaxBuyers, len(state.Buyers))
	}

	after, _, err := AddBuyer(state, domain.Buyer{ID: "e"})
	if !errors.Is(err, domain.ErrTooManyBuyers) {
		t.Errorf("expected ErrTooManyBuyers, got %v", err)
	}
	if len(after.Buyers) != domain.MaxBuyers {
		t.Errorf("rejected add must leave the state unchanged")
	}
}

func TestAddBuyer_DoesNotAliasInput(t *testing.T) {
	buyers := make([]domain.Buyer, 1, 4)
	buyers[0] = domain.Buyer{ID: "a"}
	original := domain.CalculatorState{Buyers: buyers}

	updated, _, err := AddBuyer(original, domain.Buyer{ID: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(original.Buyers) != 1 || len(updated.Buyers) != 2 {
		t.Fatalf("unexpected lengths %d/%d", len(original.Buyers), len(updated.Buyers))
	}
	if buyers[:2][1].ID == "b" {
		t.Errorf("AddBuyer wrote into the caller's backing array")
	}
}

func TestUpdateAndRemoveBuyer(t *testing.T) {
	state := domain.CalculatorState{Buyers: []domain.Buyer{
		{ID: "a", MonthlyContribution: 1000},
		{ID: "b", MonthlyContribution: 2000},
	}}

	updated, err := UpdateBuyer(state, domain.Buyer{ID: "b", MonthlyContribution: math.Inf(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Buyers[1].MonthlyContribution != 0 {
		t.Errorf("expected non-finite contribution to become 0, got %v", updated.Buyers[1].MonthlyContribution)
	}
	if state.Buyers[1].MonthlyContribution != 2000 {
		t.Errorf("UpdateBuyer modified the input state")
	}

	if _, err := UpdateBuyer(state, domain.Buyer{ID: "z"}); !errors.Is(err, domain.ErrBuyerNotFound) {
		t.Errorf("expected ErrBuyerNotFound, got %v", err)
	}

	removed, err := RemoveBuyer(state, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed.Buyers) != 1 || removed.Buyers[0].ID != "b" {
		t.Errorf("unexpected buyers after remove: %+v", removed.Buyers)
	}
	if _, err := RemoveBuyer(state, "z"); !errors.Is(err, domain.ErrBuyerNotFound) {
		t.Errorf("expected ErrBuyerNotFound, got %v", err)
	}
}

func TestScenarioLifecycle(t *testing.T) {
	state := domain.CalculatorState{}

	var err error
	for _, months := range []int{60, 12, 120, 12} {
		state, _, err = AddScenario(state, domain.ExitScenario{MonthsFromClose: months})
		if err != nil {
			t.Fatalf("unexpected error adding %d months: %v", months, err)
		}
	}

	want := []int{12, 12, 60, 120}
	for i, s := range state.Scenarios {
		if s.MonthsFromClose != want[i] {
			t.Errorf("scenario %d: expected %d months, got %d", i, want[i], s.MonthsFromClose)
		}
		if s.ID == "" {
			t.Errorf("scenario %d has no ID", i)
		}
	}

	for _, months := range []int{0, -1, MaxScenarioMonths + 1} {
		if _, _, err := AddScenario(state, domain.ExitScenario{MonthsFromClose: months}); !errors.Is(err, domain.ErrInvalidScenario) {
			t.Errorf("months %d: expected ErrInvalidScenario, got %v", months, err)
		}
	}

	removed, err := RemoveScenario(state, state.Scenarios[2].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed.Scenarios) != 3 || removed.Scenarios[2].MonthsFromClose != 120 {
		t.Errorf("unexpected scenarios after remove: %+v", removed.Scenarios)
	}
	if _, err := RemoveScenario(state, "missing"); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Errorf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestNearestTerm(t *testing.T) {
	tests := []struct {
		term    int
		allowed []int
		want    int
	}{
		{30, DefaultTermYears, 30},
		{12, DefaultTermYears, 10},
		{13, DefaultTermYears, 15},
		{0, DefaultTermYears, 10},
		{40, DefaultTermYears, 30},
		{15, []int{10, 20}, 20},
		{0, nil, 1},
		{75, nil, MaxTermYears},
		{22, nil, 22},
	}

	for _, tt := range tests {
		if got := NearestTerm(tt.term, tt.allowed); got != tt.want {
			t.Errorf("NearestTerm(%d, %v) = %d, want %d", tt.term, tt.allowed, got, tt.want)
		}
	}
}

func TestSanitizeState(t *testing.T) {
	state := domain.CalculatorState{
		Mode:         "sideways",
		TaxTreatment: "offshore",
		Buyers: []domain.Buyer{
			{ID: "a", MonthlyContribution: 1000},
			{ID: "a", MonthlyContribution: 9999},
			{Name: "no id 1"},
			{Name: "no id 2"},
			{ID: "b", DownPaymentContribution: math.NaN()},
			{ID: "c"},
		},
		Mortgage: domain.MortgageTerms{
			HomeValue:                 -1,
			LoanAmount:                5e9,
			AnnualInterestRatePercent: 250,
			TermYears:                 27,
			BedroomCount:              -2,
		},
		Scenarios: []domain.ExitScenario{
			{ID: "late", MonthsFromClose: 5000, AnnualAppreciationPercent: math.NaN()},
			{ID: "early", MonthsFromClose: -3, ProjectedHomeValue: -10, AnnualAppreciationPercent: -400},
		},
		SellingCostsPercent: 140,
	}

	got := SanitizeState(state, DefaultTermYears)

	if got.Mode != domain.ModeBottomsUp || got.TaxTreatment != domain.TaxNone {
		t.Errorf("expected enum defaults, got mode %q tax %q", got.Mode, got.TaxTreatment)
	}
	if got.SellingCostsPercent != 100 {
		t.Errorf("expected selling costs clamped to 100, got %v", got.SellingCostsPercent)
	}

	if len(got.Buyers) != 4 {
		t.Fatalf("expected 4 buyers, got %+v", got.Buyers)
	}
	if got.Buyers[0].ID != "a" || got.Buyers[3].ID != "b" {
		t.Errorf("unexpected buyer order %+v", got.Buyers)
	}
	if got.Buyers[1].Name != "no id 1" || got.Buyers[2].Name != "no id 2" {
		t.Errorf("expected buyers without ID to be kept in order, got %+v", got.Buyers)
	}
	ids := map[string]bool{}
	for _, b := range got.Buyers {
		if b.ID == "" || ids[b.ID] {
			t.Errorf("expected unique non-empty IDs, got %+v", got.Buyers)
		}
		ids[b.ID] = true
	}
	if _, err := uuid.Parse(got.Buyers[1].ID); err != nil {
		t.Errorf("expected a UUID for a buyer without ID, got %q", got.Buyers[1].ID)
	}

	again := SanitizeState(state, DefaultTermYears)
	if again.Buyers[1].ID != got.Buyers[1].ID || again.Buyers[2].ID != got.Buyers[2].ID {
		t.Errorf("expected derived IDs to be stable across calls")
	}
	if got.Buyers[0].MonthlyContribution != 1000 {
		t.Errorf("expected the first buyer with a repeated ID to win")
	}
	if got.Buyers[3].DownPaymentContribution != 0 {
		t.Errorf("expected NaN down payment to become 0")
	}

	m := got.Mortgage
	if m.LoanAmount != MaxHomeValue {
		t.Errorf("expected loan capped at %v, got %v", MaxHomeValue, m.LoanAmount)
	}
	if m.HomeValue != 0 || m.AnnualInterestRatePercent != MaxInterestRatePercent || m.TermYears != 25 || m.BedroomCount != 0 {
		t.Errorf("unexpected mortgage %+v", m)
	}

	if got.Scenarios[0].ID != "early" || got.Scenarios[0].MonthsFromClose != 1 {
		t.Errorf("unexpected first scenario %+v", got.Scenarios[0])
	}
	if got.Scenarios[0].ProjectedHomeValue != 0 || got.Scenarios[0].AnnualAppreciationPercent != -100 {
		t.Errorf("expected clamped value and appreciation, got %+v", got.Scenarios[0])
	}
	if got.Scenarios[1].MonthsFromClose != MaxScenarioMonths || got.Scenarios[1].AnnualAppreciationPercent != 0 {
		t.Errorf("unexpected last scenario %+v", got.Scenarios[1])
	}

	if len(state.Buyers) != 6 || state.Scenarios[0].ID != "late" {
		t.Errorf("SanitizeState modified its input")
	}
}

func TestSanitizeState_CapsScenarios(t *testing.T) {
	state := domain.CalculatorState{}
	for i := 0; i < MaxShareScenarios+6; i++ {
		state.Scenarios = append(state.Scenarios, domain.ExitScenario{MonthsFromClose: i + 1})
	}

	got := SanitizeState(state, DefaultTermYears)
	if len(got.Scenarios) != MaxShareScenarios {
		t.Fatalf("expected %d scenarios, got %d", MaxShareScenarios, len(got.Scenarios))
	}
	if _, err := EncodeState(got); err != nil {
		t.Fatal(err)
	}
}

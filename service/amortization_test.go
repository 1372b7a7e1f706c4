package service

import (
	"math"
	"testing"
)

const centTolerance = 0.005

func assertClose(t *testing.T, expected, actual, tolerance float64, description string) {
	t.Helper()
	if math.Abs(expected-actual) > tolerance {
		t.Errorf("%s: expected %.6f, got %.6f (diff %.6f)", description, expected, actual, actual-expected)
	}
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		principal   float64
		rate        float64
		termYears   int
		expected    float64
		description string
	}{
		{400000, 6.5, 30, 2528.27, "400k @ 6.5% for 30 years"},
		{200000, 4, 25, 1055.67, "200k @ 4% for 25 years"},
		{1200, 0, 1, 100, "zero rate pays straight line"},
		{0, 6.5, 30, 0, "no principal"},
		{-5000, 6.5, 30, 0, "negative principal"},
		{400000, 6.5, 0, 0, "no term"},
	}

	for _, tt := range tests {
		got := MonthlyPayment(tt.principal, tt.rate, tt.termYears)
		assertClose(t, tt.expected, got, centTolerance, tt.description)
	}
}

func TestMonthlyPayment_NonFiniteRate(t *testing.T) {
	got := MonthlyPayment(1200, math.NaN(), 1)
	if got != 100 {
		t.Errorf("expected NaN rate to fall back to straight line 100, got %v", got)
	}
	got = MonthlyPayment(1200, math.Inf(1), 1)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("expected finite payment for infinite rate, got %v", got)
	}
}

func TestRemainingBalance_Boundaries(t *testing.T) {
	for _, principal := range []float64{0, 1, 1234.56, 400000, 2_500_000, 2e9, 7.5e12} {
		for _, rate := range []float64{0, 0.5, 6.5, 12} {
			for _, term := range []int{1, 15, 30} {
				n := term * 12
				if got := RemainingBalance(principal, rate, term, 0); got != principal {
					t.Errorf("B(%v, %v, %d, 0) = %v, want principal", principal, rate, term, got)
				}
				if got := RemainingBalance(principal, rate, term, n); got != 0 {
					t.Errorf("B(%v, %v, %d, n) = %v, want 0", principal, rate, term, got)
				}
				if got := RemainingBalance(principal, rate, term, n+7); got != 0 {
					t.Errorf("B past maturity = %v, want 0", got)
				}
				if got := RemainingBalance(principal, rate, term, -3); got != principal {
					t.Errorf("B before closing = %v, want principal", got)
				}
			}
		}
	}
}

func TestEngine_ScalesPastHomeValueCap(t *testing.T) {
	single := MonthlyPayment(1e9, 6.5, 30)
	double := MonthlyPayment(2e9, 6.5, 30)
	assertClose(t, 2*single, double, 1e-3, "payment is linear in principal")

	assertClose(t, 2*RemainingBalance(1e9, 6.5, 30, 60), RemainingBalance(2e9, 6.5, 30, 60), 1e-3, "balance is linear in principal")
	assertClose(t, 2e9, PrincipalPaid(2e9, 6.5, 30, 360), 1e-3, "principal paid at maturity")
	assertClose(t, 2e9, MonthlyPayment(MaxLoanForPayment(1e8, 6.5, 30), 6.5, 30)*20, 1e-2, "inverse above the cap")
}

func TestRemainingBalance_StandardTable(t *testing.T) {
	got := RemainingBalance(400000, 6.5, 30, 60)
	assertClose(t, 374443.91, got, 0.01, "400k @ 6.5% after 60 payments")

	paid := PrincipalPaid(400000, 6.5, 30, 60)
	assertClose(t, 25556.09, paid, 0.01, "principal paid after 60 payments")
}

func TestRemainingBalance_NonIncreasing(t *testing.T) {
	for _, rate := range []float64{0, 3.25, 6.5, 18} {
		prev := math.Inf(1)
		for m := 0; m <= 361; m++ {
			b := RemainingBalance(400000, rate, 30, m)
			if b > prev {
				t.Fatalf("rate %v: balance rose from %v to %v at month %d", rate, prev, b, m)
			}
			prev = b
		}
	}
}

func TestRemainingBalance_ZeroRate(t *testing.T) {
	got := RemainingBalance(1200, 0, 1, 3)
	if got != 900 {
		t.Errorf("expected 900, got %v", got)
	}
}

func TestMaxLoanForPayment_InvertsMonthlyPayment(t *testing.T) {
	for _, rate := range []float64{0, 3, 6.5, 9.75} {
		for _, term := range []int{10, 15, 30} {
			loan := MaxLoanForPayment(4000, rate, term)
			assertClose(t, 4000, MonthlyPayment(loan, rate, term), 1e-6, "payment on max loan")
		}
	}

	assertClose(t, 632843.28, MaxLoanForPayment(4000, 6.5, 30), 0.01, "4000/month @ 6.5% for 30 years")
	if got := MaxLoanForPayment(1000, 0, 10); got != 120000 {
		t.Errorf("expected zero rate loan 120000, got %v", got)
	}
	if got := MaxLoanForPayment(0, 6.5, 30); got != 0 {
		t.Errorf("expected 0 for no budget, got %v", got)
	}
}

func TestAmortizationSchedule(t *testing.T) {
	rows := AmortizationSchedule(400000, 6.5, 30)
	if len(rows) != 360 {
		t.Fatalf("expected 360 rows, got %d", len(rows))
	}
	if last := rows[len(rows)-1]; last.Balance != 0 {
		t.Errorf("expected final balance 0, got %v", last.Balance)
	}

	principal, interest := 0.0, 0.0
	for _, r := range rows {
		principal += r.Principal
		interest += r.Interest
	}
	assertClose(t, 400000, principal, 1e-4, "principal repaid")
	assertClose(t, TotalInterest(400000, 6.5, 30), interest, 0.01, "interest paid")
	assertClose(t, 374443.91, rows[59].Balance, 0.01, "balance after 60 payments")

	if got := AmortizationSchedule(0, 6.5, 30); len(got) != 0 {
		t.Errorf("expected empty schedule for no principal, got %d rows", len(got))
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixedClock(rl *RateLimiter) *time.Time {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return &now
}

func TestRateLimiter_Take(t *testing.T) {
	rl := NewRateLimiter(6, time.Minute)
	defer rl.Stop()
	now := fixedClock(rl)

	if ok, _ := rl.Take("10.0.0.1", CostPDF); !ok {
		t.Fatalf("expected a fresh client to afford a PDF")
	}
	if ok, _ := rl.Take("10.0.0.1", CostLight); !ok {
		t.Fatalf("expected the remaining unit to cover a light call")
	}

	ok, wait := rl.Take("10.0.0.1", CostReport)
	if ok {
		t.Fatalf("expected an empty budget to refuse a report")
	}
	if wait != 30*time.Second {
		t.Errorf("expected 3 units to take 30s at 6/min, got %s", wait)
	}

	if ok, _ := rl.Take("10.0.0.2", CostReport); !ok {
		t.Errorf("expected other clients to have their own budget")
	}

	*now = now.Add(10 * time.Second)
	if ok, _ := rl.Take("10.0.0.1", CostLight); !ok {
		t.Errorf("expected one unit back after 10s")
	}
	if ok, _ := rl.Take("10.0.0.1", CostLight); ok {
		t.Errorf("expected the refill to be spent")
	}

	*now = now.Add(time.Hour)
	for i := 0; i < 6; i++ {
		if ok, _ := rl.Take("10.0.0.1", CostLight); !ok {
			t.Fatalf("request %d: expected the budget to refill up to the limit", i+1)
		}
	}
	if ok, _ := rl.Take("10.0.0.1", CostLight); ok {
		t.Errorf("expected the budget to stop at the limit")
	}
}

func TestRateLimiter_CostAboveLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	fixedClock(rl)

	if ok, _ := rl.Take("c", CostPDF); !ok {
		t.Errorf("expected a cost above the limit to be charged as the limit")
	}
	if ok, wait := rl.Take("c", CostPDF); ok || wait != time.Minute {
		t.Errorf("expected a full window wait, got ok=%v wait=%s", ok, wait)
	}
}

func TestRateLimiter_ForgetIdle(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	now := fixedClock(rl)
	rl.Take("idle", CostLight)

	*now = now.Add(idleClientTTL + time.Second)
	rl.forgetIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["idle"]; ok {
		t.Errorf("expected idle client to be removed")
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()
}

func TestRateLimitMiddleware_ReportCost(t *testing.T) {
	rl := NewRateLimiter(CostPDF, time.Minute)
	defer rl.Stop()
	fixedClock(rl)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RateLimitMiddleware(rl, reportCost, ok)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calculator/report?format=text", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calculator/report?format=pdf", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected a PDF to cost more than what is left, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "36" {
		t.Errorf("expected Retry-After 36, got %q", got)
	}
}

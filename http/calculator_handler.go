package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
	"github.com/Cincinnati-Associates/tomi-app-sub000/report"
	"github.com/Cincinnati-Associates/tomi-app-sub000/service"
)

type CalculatorHandler struct {
	service *service.CalculatorService
	logger  zerolog.Logger
	now     func() time.Time
}

func NewCalculatorHandler(service *service.CalculatorService, logger zerolog.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		service: service,
		logger:  logger.With().Str("component", "http").Logger(),
		now:     time.Now,
	}
}

// Register mounts every calculator route on mux behind the rate limiter.
func (h *CalculatorHandler) Register(mux *http.ServeMux, limiter *RateLimiter) {
	routes := []struct {
		path    string
		handler http.HandlerFunc
		cost    func(*http.Request) int
	}{
		{"/calculator/evaluate", h.Evaluate, flatCost(CostReport)},
		{"/calculator/mortgage/edit", h.EditMortgage, flatCost(CostLight)},
		{"/calculator/scenario/solve", h.SolveScenario, flatCost(CostLight)},
		{"/calculator/scenario/edit", h.EditScenario, flatCost(CostLight)},
		{"/calculator/terms", h.CompareTerms, flatCost(CostLight)},
		{"/calculator/timeline", h.Timeline, flatCost(CostLight)},
		{"/calculator/share", h.Share, flatCost(CostLight)},
		{"/calculator/restore", h.Restore, flatCost(CostLight)},
		{"/calculator/report", h.Report, reportCost},
		{"/calculator/reports/recent", h.RecentReports, flatCost(CostLight)},
	}
	for _, rt := range routes {
		mux.Handle(rt.path, RateLimitMiddleware(limiter, rt.cost, rt.handler))
	}
	mux.HandleFunc("/healthz", h.Health)
}

func (h *CalculatorHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var state domain.CalculatorState
	if !decodeJSON(w, r, &state) {
		return
	}

	result, err := h.service.Evaluate(r.Context(), state)
	if err != nil {
		h.logger.Error().Err(err).Msg("error evaluating state")
		writeError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

type mortgageEditRequest struct {
	Mode     domain.CalculationMode `json:"mode"`
	Mortgage domain.MortgageTerms   `json:"mortgage"`
	Buyers   []domain.Buyer         `json:"buyers"`
	Edit     domain.MortgageEdit    `json:"edit"`
}

func (h *CalculatorHandler) EditMortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageEditRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	terms, err := h.service.EditMortgage(req.Mode, req.Mortgage, req.Buyers, req.Edit)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, terms)
}

type scenarioSolveRequest struct {
	HomeValue float64 `json:"homeValue"`
	domain.ScenarioInput
}

func (h *CalculatorHandler) SolveScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioSolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	scenario, err := service.SolveScenario(req.HomeValue, req.ScenarioInput)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, scenario)
}

type scenarioEditRequest struct {
	HomeValue float64             `json:"homeValue"`
	Scenario  domain.ExitScenario `json:"scenario"`
	Edit      domain.ScenarioEdit `json:"edit"`
}

func (h *CalculatorHandler) EditScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioEditRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	scenario, err := service.ApplyScenarioEdit(req.HomeValue, req.Scenario, req.Edit)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, scenario)
}

func (h *CalculatorHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	var state domain.CalculatorState
	if !decodeJSON(w, r, &state) {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.service.CompareTerms(state))
}

type timelineRequest struct {
	State               domain.CalculatorState `json:"state"`
	AppreciationPercent float64                `json:"appreciationPercent"`
	StepMonths          int                    `json:"stepMonths"`
}

func (h *CalculatorHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	var req timelineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.service.Timeline(req.State, req.AppreciationPercent, req.StepMonths))
}

type shareResponse struct {
	Token string `json:"token"`
}

func (h *CalculatorHandler) Share(w http.ResponseWriter, r *http.Request) {
	var state domain.CalculatorState
	if !decodeJSON(w, r, &state) {
		return
	}

	token, err := h.service.Share(state)
	if err != nil {
		h.logger.Error().Err(err).Msg("error encoding share token")
		writeError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, shareResponse{Token: token})
}

type restoreResponse struct {
	State    domain.CalculatorState `json:"state"`
	Fallback bool                   `json:"fallback"`
	Reason   string                 `json:"reason,omitempty"`
}

// Restore never fails on a bad token: it answers with the default state and
// marks the response as a fallback.
func (h *CalculatorHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.service.Restore(r.URL.Query().Get("token"))
	resp := restoreResponse{State: state}
	var decodeErr *domain.DecodeError
	if errors.As(err, &decodeErr) {
		resp.Fallback = true
		resp.Reason = decodeErr.Reason
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Report renders the state behind a share token as text or PDF.
func (h *CalculatorHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.service.Restore(r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	result, err := h.service.Evaluate(r.Context(), state)
	if err != nil {
		h.logger.Error().Err(err).Msg("error evaluating state")
		writeError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := report.WriteText(w, result); err != nil {
			h.logger.Warn().Err(err).Msg("error writing text report")
		}
	case "pdf":
		pdf, err := report.RenderPDF(result, h.service.Schedule(state), h.now())
		if err != nil {
			h.logger.Error().Err(err).Msg("error rendering pdf")
			writeError(w, h.logger, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="co-ownership-report.pdf"`)
		if _, err := w.Write(pdf); err != nil {
			h.logger.Warn().Err(err).Msg("error writing pdf report")
		}
	default:
		http.Error(w, "unsupported format", http.StatusBadRequest)
	}
}

const defaultRecentLimit = 10

func (h *CalculatorHandler) RecentReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	writeJSON(w, h.logger, http.StatusOK, h.service.RecentReports(limit))
}

func (h *CalculatorHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

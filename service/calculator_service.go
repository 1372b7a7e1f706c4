package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
	"github.com/Cincinnati-Associates/tomi-app-sub000/repository"
)

// Options carries the configurable parts of the calculator.
type Options struct {
	AllowedTermYears []int
	DefaultState     domain.CalculatorState
	CacheTTL         time.Duration
}

type CalculatorService struct {
	reports repository.ReportRepository
	cache   repository.CacheRepository
	opts    Options
	logger  zerolog.Logger
}

// NewCalculatorService creates a new CalculatorService with the given repositories.
func NewCalculatorService(
	reports repository.ReportRepository,
	cache repository.CacheRepository,
	opts Options,
	logger zerolog.Logger,
) *CalculatorService {
	if len(opts.AllowedTermYears) == 0 {
		opts.AllowedTermYears = DefaultTermYears
	}
	return &CalculatorService{
		reports: reports,
		cache:   cache,
		opts:    opts,
		logger:  logger.With().Str("component", "calculator").Logger(),
	}
}

// DefaultState is the state a new session starts from, and the fallback when
// a share token cannot be restored.
func (s *CalculatorService) DefaultState() domain.CalculatorState {
	state := s.Normalize(s.opts.DefaultState)
	scenarios := make([]domain.ExitScenario, len(state.Scenarios))
	copy(scenarios, state.Scenarios)
	state.Scenarios = scenarios
	for i, sc := range scenarios {
		if sc.ProjectedHomeValue == 0 {
			state.Scenarios[i].ProjectedHomeValue = FutureValue(
				state.Mortgage.HomeValue, sc.AnnualAppreciationPercent, sc.MonthsFromClose)
		}
	}
	return state
}

func (s *CalculatorService) AllowedTermYears() []int {
	return append([]int(nil), s.opts.AllowedTermYears...)
}

// Normalize sanitizes the state and derives the mortgage fields its mode
// makes outputs.
func (s *CalculatorService) Normalize(state domain.CalculatorState) domain.CalculatorState {
	return ApplyAffordability(SanitizeState(state, s.opts.AllowedTermYears))
}

// Evaluate computes every derived figure for state. The report is built from
// the state as its share token carries it, so every request that shares a token
// gets the same report.
func (s *CalculatorService) Evaluate(ctx context.Context, state domain.CalculatorState) (domain.Report, error) {
	canonical, token, err := s.canonicalize(state)
	if err != nil {
		return domain.Report{}, err
	}

	report, cached := s.cachedReport(ctx, token)
	if !cached {
		report = BuildReport(canonical)
		report.ShareToken = token
		s.cacheReport(ctx, token, report)
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.reports.Save(report); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save report")
	}

	s.logger.Debug().
		Str("mode", string(report.State.Mode)).
		Int("buyers", len(report.State.Buyers)).
		Int("scenarios", len(report.State.Scenarios)).
		Bool("cached", cached).
		Msg("evaluated calculator state")

	return report, nil
}

// canonicalize quantizes state the way a share token does. Restoring the
// returned token yields the returned state.
func (s *CalculatorService) canonicalize(state domain.CalculatorState) (domain.CalculatorState, string, error) {
	first, err := EncodeState(s.Normalize(state))
	if err != nil {
		return domain.CalculatorState{}, "", err
	}
	decoded, err := DecodeState(first)
	if err != nil {
		return domain.CalculatorState{}, "", err
	}
	canonical := s.Normalize(decoded)
	token, err := EncodeState(canonical)
	if err != nil {
		return domain.CalculatorState{}, "", err
	}
	return canonical, token, nil
}

func (s *CalculatorService) cachedReport(ctx context.Context, token string) (domain.Report, bool) {
	key := reportCacheKey(token)
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.Report{}, false
	}
	var report domain.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.logger.Warn().Str("key", key).Msg("discarding unreadable cached report")
		return domain.Report{}, false
	}
	return report, true
}

func (s *CalculatorService) cacheReport(ctx context.Context, token string, report domain.Report) {
	key := reportCacheKey(token)
	payload, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal report for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.opts.CacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache report")
	}
}

// BuildReport derives the report for an already normalized state.
func BuildReport(state domain.CalculatorState) domain.Report {
	m := state.Mortgage
	report := domain.Report{
		State:             state,
		MonthlyPayment:    MonthlyPayment(m.LoanAmount, m.AnnualInterestRatePercent, m.TermYears),
		TotalInterest:     TotalInterest(m.LoanAmount, m.AnnualInterestRatePercent, m.TermYears),
		CurrentOwnership:  OwnershipAt(state.Buyers, m, 0),
		FullTermOwnership: FullTermOwnership(state.Buyers, m),
		Projections:       make([]domain.ScenarioProjection, 0, len(state.Scenarios)),
	}
	for _, sc := range state.Scenarios {
		report.Projections = append(report.Projections, ProjectScenario(state, sc))
	}
	return report
}

func reportCacheKey(token string) string {
	return "report:" + strconv.FormatUint(xxhash.Sum64String(token), 16)
}

// RecentReports returns up to limit of the latest evaluated reports, newest first.
func (s *CalculatorService) RecentReports(limit int) []domain.Report {
	return s.reports.Recent(limit)
}

// Share returns the token for the normalized state.
func (s *CalculatorService) Share(state domain.CalculatorState) (string, error) {
	_, token, err := s.canonicalize(state)
	return token, err
}

// Restore decodes a share token. On failure it returns the default state along
// with the *domain.DecodeError so callers can carry on.
func (s *CalculatorService) Restore(token string) (domain.CalculatorState, error) {
	state, err := DecodeState(token)
	if err != nil {
		var decodeErr *domain.DecodeError
		if errors.As(err, &decodeErr) {
			s.logger.Info().Str("reason", decodeErr.Reason).Msg("share token rejected, using default state")
		}
		return s.DefaultState(), err
	}
	return s.Normalize(state), nil
}

// EditMortgage applies a mortgage edit and re-derives the terms for the mode.
func (s *CalculatorService) EditMortgage(
	mode domain.CalculationMode,
	terms domain.MortgageTerms,
	buyers []domain.Buyer,
	edit domain.MortgageEdit,
) (domain.MortgageTerms, error) {

	if !mode.Valid() {
		mode = domain.ModeBottomsUp
	}
	switch edit.Field {
	case domain.FieldHomeValue, domain.FieldDownPayment, domain.FieldLoanAmount:
		edit.Value = clampAmount(edit.Value)
	}
	edited, err := ApplyMortgageEdit(mode, terms, edit)
	if err != nil {
		return terms, err
	}
	if edit.Field == domain.FieldTermYears && !containsInt(s.opts.AllowedTermYears, edited.TermYears) {
		return terms, domain.ErrInvalidTerm
	}
	state := ApplyAffordability(domain.CalculatorState{Mode: mode, Buyers: buyers, Mortgage: edited})
	return state.Mortgage, nil
}

func (s *CalculatorService) CompareTerms(state domain.CalculatorState) []domain.TermComparison {
	return CompareTerms(s.Normalize(state), s.opts.AllowedTermYears)
}

func (s *CalculatorService) Timeline(state domain.CalculatorState, appreciationPercent float64, stepMonths int) []domain.TimelinePoint {
	return EquityTimeline(s.Normalize(state), appreciationPercent, stepMonths)
}

// Schedule returns the amortization schedule of the state's loan.
func (s *CalculatorService) Schedule(state domain.CalculatorState) []domain.AmortizationRow {
	m := s.Normalize(state).Mortgage
	return AmortizationSchedule(m.LoanAmount, m.AnnualInterestRatePercent, m.TermYears)
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

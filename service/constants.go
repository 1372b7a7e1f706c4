package service

const (
	MaxHomeValue           = 1_000_000_000.0 // mil millones
	MaxInterestRatePercent = 100.0
	MaxTermYears           = 50
	MaxScenarioMonths      = 1200 // 100 años

	DefaultSellingCostsPercent = 3.0

	// PrimaryResidenceExclusion is the per-owner gain excluded under Section 121.
	PrimaryResidenceExclusion = 250_000.0

	// TotalLossROIPercent is reported as annualized ROI when nothing comes back.
	TotalLossROIPercent = -100.0

	// Límites del token compartido
	MaxShareTokenLength = 8192
	MaxShareScenarios   = 64
)

// DefaultTermYears lists the loan terms offered when no configuration overrides them.
var DefaultTermYears = []int{10, 15, 20, 25, 30}

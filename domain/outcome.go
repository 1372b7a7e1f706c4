package domain

// TaxTreatment selects how a sale's capital gain is taxed.
type TaxTreatment string

const (
	TaxNone TaxTreatment = "none"
	// TaxPrimaryResidenceExclusion excludes a fixed amount of gain per owner (Section 121).
	TaxPrimaryResidenceExclusion TaxTreatment = "primary-residence-exclusion"
	// TaxDeferredExchange defers the whole gain (1031 exchange).
	TaxDeferredExchange TaxTreatment = "deferred-exchange"
)

func (t TaxTreatment) Valid() bool {
	switch t {
	case TaxNone, TaxPrimaryResidenceExclusion, TaxDeferredExchange:
		return true
	}
	return false
}

// ProceedsOutcome is one buyer's financial result from selling at a scenario.
type ProceedsOutcome struct {
	BuyerID              string  `json:"buyerId"`
	CapitalContributed   float64 `json:"capitalContributed"`
	Percentage           float64 `json:"percentage"`
	EquityShare          float64 `json:"equityShare"`
	NetProceedsShare     float64 `json:"netProceedsShare"`
	ProfitOrLoss         float64 `json:"profitOrLoss"`
	SimpleROIPercent     float64 `json:"simpleROIPercent"`
	AnnualizedROIPercent float64 `json:"annualizedROIPercent"`
	TaxableGain          float64 `json:"taxableGain"`
}

// ScenarioProjection is the projected state of the deal at an exit scenario.
type ScenarioProjection struct {
	Scenario         ExitScenario      `json:"scenario"`
	RemainingBalance float64           `json:"remainingBalance"`
	TotalEquity      float64           `json:"totalEquity"`
	SellingCosts     float64           `json:"sellingCosts"`
	NetProceeds      float64           `json:"netProceeds"`
	Underwater       bool              `json:"underwater"`
	Ownership        OwnershipSnapshot `json:"ownership"`
	Outcomes         []ProceedsOutcome `json:"outcomes"`
}

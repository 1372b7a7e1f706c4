package domain

// CalculatorState is everything a user enters into the calculator. All other
// figures are recomputed from it.
type CalculatorState struct {
	Mode                CalculationMode `json:"mode"`
	Buyers              []Buyer         `json:"buyers"`
	Mortgage            MortgageTerms   `json:"mortgage"`
	Scenarios           []ExitScenario  `json:"scenarios"`
	SellingCostsPercent float64         `json:"sellingCostsPercent"`
	TaxTreatment        TaxTreatment    `json:"taxTreatment"`
}

// Report is the full set of figures derived from a CalculatorState.
type Report struct {
	State             CalculatorState      `json:"state"`
	MonthlyPayment    float64              `json:"monthlyPayment"`
	TotalInterest     float64              `json:"totalInterest"`
	CurrentOwnership  OwnershipSnapshot    `json:"currentOwnership"`
	FullTermOwnership OwnershipSnapshot    `json:"fullTermOwnership"`
	Projections       []ScenarioProjection `json:"projections"`
	ShareToken        string               `json:"shareToken"`
}

// TermComparison shows what one loan term means for the current deal.
type TermComparison struct {
	TermYears          int     `json:"termYears"`
	LoanAmount         float64 `json:"loanAmount"`
	HomeValue          float64 `json:"homeValue"`
	MonthlyPayment     float64 `json:"monthlyPayment"`
	TotalInterest      float64 `json:"totalInterest"`
	AffordableByBudget bool    `json:"affordableByBudget"`
}

// TimelinePoint is the deal's equity position at a month offset from closing.
type TimelinePoint struct {
	Month              int               `json:"month"`
	ProjectedHomeValue float64           `json:"projectedHomeValue"`
	RemainingBalance   float64           `json:"remainingBalance"`
	TotalEquity        float64           `json:"totalEquity"`
	Ownership          OwnershipSnapshot `json:"ownership"`
}

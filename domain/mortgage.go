package domain

// CalculationMode decides which mortgage fields are inputs and which are derived.
type CalculationMode string

const (
	// ModeBottomsUp derives home price and loan from the buyers' budgets.
	ModeBottomsUp CalculationMode = "bottoms-up"
	// ModeTopDown takes the home price and down payment as given.
	ModeTopDown CalculationMode = "top-down"
)

// Valid reports whether m is one of the known modes.
func (m CalculationMode) Valid() bool {
	return m == ModeBottomsUp || m == ModeTopDown
}

type MortgageTerms struct {
	HomeValue                 float64 `json:"homeValue"`
	DownPayment               float64 `json:"downPayment"`
	LoanAmount                float64 `json:"loanAmount"`
	AnnualInterestRatePercent float64 `json:"annualInterestRatePercent"`
	TermYears                 int     `json:"termYears"`
	BedroomCount              int     `json:"bedroomCount"`
}

// MortgageField names the mortgage input a user just edited.
type MortgageField string

const (
	FieldHomeValue    MortgageField = "homeValue"
	FieldDownPayment  MortgageField = "downPayment"
	FieldLoanAmount   MortgageField = "loanAmount"
	FieldInterestRate MortgageField = "interestRate"
	FieldTermYears    MortgageField = "termYears"
	FieldBedroomCount MortgageField = "bedroomCount"
)

type MortgageEdit struct {
	Field MortgageField `json:"field"`
	Value float64       `json:"value"`
}

// AmortizationRow is one month of a fixed-rate repayment schedule.
type AmortizationRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

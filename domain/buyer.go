package domain

// MaxBuyers is the number of co-buyers a single deal can hold at once.
const MaxBuyers = 4

// Buyer is one co-purchaser and the capital they put into the deal.
type Buyer struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	DownPaymentContribution float64 `json:"downPaymentContribution"`
	MonthlyContribution     float64 `json:"monthlyContribution"`
}

package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type BuyerDefaults struct {
	ID                      string  `yaml:"id"`
	Name                    string  `yaml:"name"`
	DownPaymentContribution float64 `yaml:"down_payment_contribution"`
	MonthlyContribution     float64 `yaml:"monthly_contribution"`
}

type ScenarioDefaults struct {
	ID                        string  `yaml:"id"`
	MonthsFromClose           int     `yaml:"months_from_close"`
	AnnualAppreciationPercent float64 `yaml:"annual_appreciation_percent"`
}

// Defaults holds the calculator defaults from defaults.yaml.
type Defaults struct {
	Mode                string             `yaml:"mode"`
	InterestRatePercent float64            `yaml:"interest_rate_percent"`
	TermYears           int                `yaml:"term_years"`
	AllowedTermYears    []int              `yaml:"allowed_term_years"`
	SellingCostsPercent float64            `yaml:"selling_costs_percent"`
	TaxTreatment        string             `yaml:"tax_treatment"`
	BedroomCount        int                `yaml:"bedroom_count"`
	Buyers              []BuyerDefaults    `yaml:"buyers"`
	Scenarios           []ScenarioDefaults `yaml:"scenarios"`
}

// LoadDefaults reads the embedded defaults and overlays path when it is set.
func LoadDefaults(path string) (Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	if path == "" {
		return d, d.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("read defaults %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse defaults %s: %w", path, err)
	}
	return d, d.Validate()
}

func (d Defaults) Validate() error {
	if !domain.CalculationMode(d.Mode).Valid() {
		return fmt.Errorf("defaults: unknown mode %q", d.Mode)
	}
	if !domain.TaxTreatment(d.TaxTreatment).Valid() {
		return fmt.Errorf("defaults: unknown tax treatment %q", d.TaxTreatment)
	}
	if len(d.AllowedTermYears) == 0 {
		return fmt.Errorf("defaults: allowed_term_years is empty")
	}
	found := false
	for _, t := range d.AllowedTermYears {
		if t <= 0 {
			return fmt.Errorf("defaults: invalid term %d", t)
		}
		found = found || t == d.TermYears
	}
	if !found {
		return fmt.Errorf("defaults: term_years %d is not in allowed_term_years", d.TermYears)
	}
	if len(d.Buyers) > domain.MaxBuyers {
		return fmt.Errorf("defaults: %d buyers, at most %d allowed", len(d.Buyers), domain.MaxBuyers)
	}
	return nil
}

// State builds the starting calculator state. Scenario values are left at zero;
// the calculator solves them from the appreciation rate.
func (d Defaults) State() domain.CalculatorState {
	state := domain.CalculatorState{
		Mode:                domain.CalculationMode(d.Mode),
		Buyers:              make([]domain.Buyer, 0, len(d.Buyers)),
		Scenarios:           make([]domain.ExitScenario, 0, len(d.Scenarios)),
		SellingCostsPercent: d.SellingCostsPercent,
		TaxTreatment:        domain.TaxTreatment(d.TaxTreatment),
		Mortgage: domain.MortgageTerms{
			AnnualInterestRatePercent: d.InterestRatePercent,
			TermYears:                 d.TermYears,
			BedroomCount:              d.BedroomCount,
		},
	}
	for _, b := range d.Buyers {
		state.Buyers = append(state.Buyers, domain.Buyer{
			ID:                      b.ID,
			Name:                    b.Name,
			DownPaymentContribution: b.DownPaymentContribution,
			MonthlyContribution:     b.MonthlyContribution,
		})
	}
	for _, s := range d.Scenarios {
		state.Scenarios = append(state.Scenarios, domain.ExitScenario{
			ID:                        s.ID,
			MonthsFromClose:           s.MonthsFromClose,
			AnnualAppreciationPercent: s.AnnualAppreciationPercent,
		})
	}
	return state
}

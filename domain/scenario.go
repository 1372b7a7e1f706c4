package domain

// ExitScenario is a hypothetical sale of the home some months after closing.
// Two of MonthsFromClose, ProjectedHomeValue and AnnualAppreciationPercent are
// independent; the third is derived from them and the current home value.
type ExitScenario struct {
	ID                        string  `json:"id"`
	MonthsFromClose           int     `json:"monthsFromClose"`
	ProjectedHomeValue        float64 `json:"projectedHomeValue"`
	AnnualAppreciationPercent float64 `json:"annualAppreciationPercent"`
}

// ScenarioInput describes a scenario by any two of its three numeric fields.
// Nil fields are the ones left to solve for.
type ScenarioInput struct {
	ID                        string   `json:"id,omitempty"`
	MonthsFromClose           *int     `json:"monthsFromClose,omitempty"`
	ProjectedHomeValue        *float64 `json:"projectedHomeValue,omitempty"`
	AnnualAppreciationPercent *float64 `json:"annualAppreciationPercent,omitempty"`
}

// ScenarioField names the scenario input a user just edited.
type ScenarioField string

const (
	FieldMonthsFromClose    ScenarioField = "monthsFromClose"
	FieldProjectedHomeValue ScenarioField = "projectedHomeValue"
	FieldAppreciation       ScenarioField = "annualAppreciationPercent"
)

type ScenarioEdit struct {
	Field ScenarioField `json:"field"`
	Value float64       `json:"value"`
}

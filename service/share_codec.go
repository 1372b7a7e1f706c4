package service

import (
	"encoding/base64"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/shopspring/decimal"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

// ShareTokenVersion is written into every token. Decoders accept any non-zero
// version and ignore fields they do not know.
const ShareTokenVersion = 1

// Currency travels as whole cents and percentages as ten-thousandths of a
// percent, so a decoded state carries at most that precision.
const (
	currencyPlaces = 2
	percentPlaces  = 4
)

type wireBuyer struct {
	ID          string `cbor:"1,keyasint,omitempty"`
	Name        string `cbor:"2,keyasint,omitempty"`
	DownPayment int64  `cbor:"3,keyasint,omitempty"`
	Monthly     int64  `cbor:"4,keyasint,omitempty"`
}

type wireMortgage struct {
	HomeValue   int64 `cbor:"1,keyasint,omitempty"`
	DownPayment int64 `cbor:"2,keyasint,omitempty"`
	LoanAmount  int64 `cbor:"3,keyasint,omitempty"`
	Rate        int64 `cbor:"4,keyasint,omitempty"`
	TermYears   int   `cbor:"5,keyasint,omitempty"`
	Bedrooms    int   `cbor:"6,keyasint,omitempty"`
}

type wireScenario struct {
	ID           string `cbor:"1,keyasint,omitempty"`
	Months       int    `cbor:"2,keyasint,omitempty"`
	Value        int64  `cbor:"3,keyasint,omitempty"`
	Appreciation int64  `cbor:"4,keyasint,omitempty"`
}

type wireState struct {
	Version      int            `cbor:"0,keyasint"`
	Mode         uint8          `cbor:"1,keyasint,omitempty"`
	Buyers       []wireBuyer    `cbor:"2,keyasint,omitempty"`
	Mortgage     wireMortgage   `cbor:"3,keyasint"`
	Scenarios    []wireScenario `cbor:"4,keyasint,omitempty"`
	SellingCosts int64          `cbor:"5,keyasint,omitempty"`
	Tax          uint8          `cbor:"6,keyasint,omitempty"`
}

var (
	modeCodes = map[domain.CalculationMode]uint8{domain.ModeBottomsUp: 0, domain.ModeTopDown: 1}
	taxCodes  = map[domain.TaxTreatment]uint8{
		domain.TaxNone:                      0,
		domain.TaxPrimaryResidenceExclusion: 1,
		domain.TaxDeferredExchange:          2,
	}
)

var (
	shareEncMode = mustEncMode()
	shareDecMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 1024,
		MaxMapPairs:      1024,
		MaxNestedLevels:  8,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

func toUnits(v float64, places int32) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).Shift(places).IntPart()
}

func fromUnits(n int64, places int32) float64 {
	return decimal.New(n, -places).InexactFloat64()
}

// EncodeState packs the user's inputs into a URL-safe token. Derived figures
// are not included; they are recomputed after decoding.
func EncodeState(state domain.CalculatorState) (string, error) {
	w := wireState{
		Version:      ShareTokenVersion,
		Mode:         modeCodes[state.Mode],
		SellingCosts: toUnits(state.SellingCostsPercent, percentPlaces),
		Tax:          taxCodes[state.TaxTreatment],
		Mortgage: wireMortgage{
			HomeValue:   toUnits(state.Mortgage.HomeValue, currencyPlaces),
			DownPayment: toUnits(state.Mortgage.DownPayment, currencyPlaces),
			LoanAmount:  toUnits(state.Mortgage.LoanAmount, currencyPlaces),
			Rate:        toUnits(state.Mortgage.AnnualInterestRatePercent, percentPlaces),
			TermYears:   state.Mortgage.TermYears,
			Bedrooms:    state.Mortgage.BedroomCount,
		},
	}
	for _, b := range state.Buyers {
		w.Buyers = append(w.Buyers, wireBuyer{
			ID:          b.ID,
			Name:        b.Name,
			DownPayment: toUnits(b.DownPaymentContribution, currencyPlaces),
			Monthly:     toUnits(b.MonthlyContribution, currencyPlaces),
		})
	}
	for _, s := range state.Scenarios {
		w.Scenarios = append(w.Scenarios, wireScenario{
			ID:           s.ID,
			Months:       s.MonthsFromClose,
			Value:        toUnits(s.ProjectedHomeValue, currencyPlaces),
			Appreciation: toUnits(s.AnnualAppreciationPercent, percentPlaces),
		})
	}

	raw, err := shareEncMode.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encode share state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeState unpacks a token produced by EncodeState. Any failure is
// reported as a *domain.DecodeError.
func DecodeState(token string) (domain.CalculatorState, error) {
	if token == "" {
		return domain.CalculatorState{}, &domain.DecodeError{Reason: "empty token"}
	}
	if len(token) > MaxShareTokenLength {
		return domain.CalculatorState{}, &domain.DecodeError{Reason: "token too long"}
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return domain.CalculatorState{}, &domain.DecodeError{Reason: "invalid encoding", Err: err}
	}

	var w wireState
	if err := shareDecMode.Unmarshal(raw, &w); err != nil {
		return domain.CalculatorState{}, &domain.DecodeError{Reason: "malformed payload", Err: err}
	}
	if w.Version <= 0 {
		return domain.CalculatorState{}, &domain.DecodeError{Reason: "missing version"}
	}
	if len(w.Buyers) > domain.MaxBuyers {
		return domain.CalculatorState{}, &domain.DecodeError{Reason: fmt.Sprintf("%d buyers", len(w.Buyers))}
	}
	if len(w.Scenarios) > MaxShareScenarios {
		return domain.CalculatorState{}, &domain.DecodeError{Reason: fmt.Sprintf("%d scenarios", len(w.Scenarios))}
	}

	state := domain.CalculatorState{
		Mode:                domain.ModeBottomsUp,
		Buyers:              make([]domain.Buyer, 0, len(w.Buyers)),
		Scenarios:           make([]domain.ExitScenario, 0, len(w.Scenarios)),
		SellingCostsPercent: fromUnits(w.SellingCosts, percentPlaces),
		TaxTreatment:        domain.TaxNone,
		Mortgage: domain.MortgageTerms{
			HomeValue:                 fromUnits(w.Mortgage.HomeValue, currencyPlaces),
			DownPayment:               fromUnits(w.Mortgage.DownPayment, currencyPlaces),
			LoanAmount:                fromUnits(w.Mortgage.LoanAmount, currencyPlaces),
			AnnualInterestRatePercent: fromUnits(w.Mortgage.Rate, percentPlaces),
			TermYears:                 w.Mortgage.TermYears,
			BedroomCount:              w.Mortgage.Bedrooms,
		},
	}
	for mode, code := range modeCodes {
		if code == w.Mode {
			state.Mode = mode
		}
	}
	for treatment, code := range taxCodes {
		if code == w.Tax {
			state.TaxTreatment = treatment
		}
	}
	for _, b := range w.Buyers {
		state.Buyers = append(state.Buyers, domain.Buyer{
			ID:                      b.ID,
			Name:                    b.Name,
			DownPaymentContribution: fromUnits(b.DownPayment, currencyPlaces),
			MonthlyContribution:     fromUnits(b.Monthly, currencyPlaces),
		})
	}
	for _, s := range w.Scenarios {
		state.Scenarios = append(state.Scenarios, domain.ExitScenario{
			ID:                        s.ID,
			MonthsFromClose:           s.Months,
			ProjectedHomeValue:        fromUnits(s.Value, currencyPlaces),
			AnnualAppreciationPercent: fromUnits(s.Appreciation, percentPlaces),
		})
	}
	return state, nil
}

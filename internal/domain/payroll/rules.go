package payroll

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Bracket applies Rate when annualized pay is at most UpTo. UpTo of zero marks
// the open-ended top bracket and may only appear last.
type Bracket struct {
	UpTo float64 `json:"upTo"`
	Rate float64 `json:"rate"`
}

// Rules holds every rate and threshold the engine applies. The defaults are a
// simplified bi-weekly approximation, not a jurisdictional withholding table.
type Rules struct {
	FederalBrackets    map[FilingStatus][]Bracket `json:"federalBrackets"`
	StateTaxRate       float64                    `json:"stateTaxRate"`
	SocialSecurityRate float64                    `json:"socialSecurityRate"`
	MedicareRate       float64                    `json:"medicareRate"`
	ExemptionAllowance float64                    `json:"exemptionAllowance"`
	PayPeriodsPerYear  float64                    `json:"payPeriodsPerYear"`
	SalaryHoursPerYear float64                    `json:"salaryHoursPerYear"`
	OvertimeMultiplier float64                    `json:"overtimeMultiplier"`

	MinimumWage             float64 `json:"minimumWage"`
	OvertimeHoursThreshold  float64 `json:"overtimeHoursThreshold"`
	ExcessiveHoursThreshold float64 `json:"excessiveHoursThreshold"`
}

func DefaultRules() Rules {
	return Rules{
		FederalBrackets: map[FilingStatus][]Bracket{
			FilingSingle: {
				{UpTo: 10275, Rate: 0.10},
				{UpTo: 41775, Rate: 0.12},
				{UpTo: 89450, Rate: 0.22},
				{Rate: 0.24},
			},
			FilingMarried: {
				{UpTo: 20550, Rate: 0.10},
				{UpTo: 83550, Rate: 0.12},
				{UpTo: 178850, Rate: 0.22},
				{Rate: 0.24},
			},
			FilingHeadOfHousehold: {
				{UpTo: 14650, Rate: 0.10},
				{UpTo: 55900, Rate: 0.12},
				{UpTo: 89050, Rate: 0.22},
				{Rate: 0.24},
			},
		},
		StateTaxRate:       0.05,
		SocialSecurityRate: 0.062,
		MedicareRate:       0.0145,
		ExemptionAllowance: 4300,
		PayPeriodsPerYear:  26,
		SalaryHoursPerYear: 52 * 40,
		OvertimeMultiplier: 1.5,

		MinimumWage:             15.00,
		OvertimeHoursThreshold:  80,
		ExcessiveHoursThreshold: 100,
	}
}

// rulesOverlay mirrors Rules with optional fields so a rules file can set a
// rate to zero.
type rulesOverlay struct {
	FederalBrackets    map[FilingStatus][]Bracket `json:"federalBrackets"`
	StateTaxRate       *float64                   `json:"stateTaxRate"`
	SocialSecurityRate *float64                   `json:"socialSecurityRate"`
	MedicareRate       *float64                   `json:"medicareRate"`
	ExemptionAllowance *float64                   `json:"exemptionAllowance"`
	PayPeriodsPerYear  *float64                   `json:"payPeriodsPerYear"`
	SalaryHoursPerYear *float64                   `json:"salaryHoursPerYear"`
	OvertimeMultiplier *float64                   `json:"overtimeMultiplier"`

	MinimumWage             *float64 `json:"minimumWage"`
	OvertimeHoursThreshold  *float64 `json:"overtimeHoursThreshold"`
	ExcessiveHoursThreshold *float64 `json:"excessiveHoursThreshold"`
}

// ReadRules decodes a JSON rules document on top of DefaultRules, so a file
// only needs the values it changes. Bracket tables are replaced per filing
// status, never merged.
func ReadRules(r io.Reader) (Rules, error) {
	var overlay rulesOverlay
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&overlay); err != nil {
		return Rules{}, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	rules := DefaultRules()
	for status, brackets := range overlay.FederalBrackets {
		if !status.Valid() {
			return Rules{}, fmt.Errorf("%w: unknown filing status %q", ErrInvalidRules, status)
		}
		rules.FederalBrackets[status] = brackets
	}
	apply(&rules.StateTaxRate, overlay.StateTaxRate)
	apply(&rules.SocialSecurityRate, overlay.SocialSecurityRate)
	apply(&rules.MedicareRate, overlay.MedicareRate)
	apply(&rules.ExemptionAllowance, overlay.ExemptionAllowance)
	apply(&rules.PayPeriodsPerYear, overlay.PayPeriodsPerYear)
	apply(&rules.SalaryHoursPerYear, overlay.SalaryHoursPerYear)
	apply(&rules.OvertimeMultiplier, overlay.OvertimeMultiplier)
	apply(&rules.MinimumWage, overlay.MinimumWage)
	apply(&rules.OvertimeHoursThreshold, overlay.OvertimeHoursThreshold)
	apply(&rules.ExcessiveHoursThreshold, overlay.ExcessiveHoursThreshold)

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func apply(dst *float64, value *float64) {
	if value != nil {
		*dst = *value
	}
}

func (r Rules) Validate() error {
	for _, status := range FilingStatuses {
		if err := validateBrackets(r.FederalBrackets[status]); err != nil {
			return fmt.Errorf("%w: %s brackets: %v", ErrInvalidRules, status, err)
		}
	}
	for name, rate := range map[string]float64{
		"stateTaxRate":       r.StateTaxRate,
		"socialSecurityRate": r.SocialSecurityRate,
		"medicareRate":       r.MedicareRate,
	} {
		if !validRate(rate) {
			return fmt.Errorf("%w: %s must be between 0 and 1", ErrInvalidRules, name)
		}
	}
	if r.ExemptionAllowance < 0 || !finite(r.ExemptionAllowance) {
		return fmt.Errorf("%w: exemptionAllowance must not be negative", ErrInvalidRules)
	}
	for name, value := range map[string]float64{
		"payPeriodsPerYear":       r.PayPeriodsPerYear,
		"salaryHoursPerYear":      r.SalaryHoursPerYear,
		"overtimeMultiplier":      r.OvertimeMultiplier,
		"overtimeHoursThreshold":  r.OvertimeHoursThreshold,
		"excessiveHoursThreshold": r.ExcessiveHoursThreshold,
	} {
		if value <= 0 || !finite(value) {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidRules, name)
		}
	}
	if r.MinimumWage < 0 || !finite(r.MinimumWage) {
		return fmt.Errorf("%w: minimumWage must not be negative", ErrInvalidRules)
	}
	return nil
}

func validateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	prev := 0.0
	for i, b := range brackets {
		if !validRate(b.Rate) {
			return fmt.Errorf("bracket %d rate must be between 0 and 1", i+1)
		}
		last := i == len(brackets)-1
		if b.UpTo == 0 {
			if !last {
				return fmt.Errorf("bracket %d is open-ended but not last", i+1)
			}
			continue
		}
		if b.UpTo <= prev || !finite(b.UpTo) {
			return fmt.Errorf("bracket %d threshold must be above %.2f", i+1, prev)
		}
		prev = b.UpTo
	}
	return nil
}

// MarginalRate returns the rate of the first bracket whose threshold is not
// exceeded. Annualized pay above a closed top bracket takes the top rate.
func (r Rules) MarginalRate(status FilingStatus, annualized float64) float64 {
	brackets := r.FederalBrackets[status]
	for _, b := range brackets {
		if b.UpTo == 0 || annualized <= b.UpTo {
			return b.Rate
		}
	}
	if len(brackets) == 0 {
		return 0
	}
	return brackets[len(brackets)-1].Rate
}

func validRate(rate float64) bool {
	return rate >= 0 && rate <= 1 && finite(rate)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

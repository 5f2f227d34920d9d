package calculation

import (
	"time"

	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/rpgo/estate-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	fallbackCurrentAge      = 55
	fallbackMinimumDeathAge = 93
	fallbackMinimumYears    = 5

	// maxTimelineYears bounds the year-by-year projection
	maxTimelineYears = 120
)

// Timeline is the resolved age span of a projection
type Timeline struct {
	CurrentAge   int
	DeathAge     int
	YearOfDeath  int
	YearsToDeath int
}

// ResolveTimeline derives the current age, projected death age and calendar year of
// death. Explicit assumptions win over profile data, which wins over the defaults.
func ResolveTimeline(profile *domain.Profile, in domain.AssumptionInputs, defaults domain.AssumptionDefaults, now time.Time) Timeline {
	currentAge := defaults.CurrentAge
	if currentAge <= 0 {
		currentAge = fallbackCurrentAge
	}
	switch {
	case in.CurrentAge != nil && *in.CurrentAge >= 0:
		currentAge = *in.CurrentAge
	case profile != nil && profile.BirthDate != nil && !profile.BirthDate.IsZero():
		currentAge = dateutil.Age(*profile.BirthDate, now)
	}

	minDeathAge := defaults.MinimumDeathAge
	if minDeathAge <= 0 {
		minDeathAge = fallbackMinimumDeathAge
	}
	minYears := defaults.MinimumYearsToDeath
	if minYears <= 0 {
		minYears = fallbackMinimumYears
	}

	var deathAge int
	switch {
	case in.DeathAge != nil && *in.DeathAge > 0:
		deathAge = *in.DeathAge
	case profile != nil && profile.LongevityAge != nil && *profile.LongevityAge > 0:
		deathAge = *profile.LongevityAge
	default:
		deathAge = max(minDeathAge, currentAge+minYears)
	}

	years := dateutil.YearsBetween(currentAge, deathAge)
	return Timeline{
		CurrentAge:   currentAge,
		DeathAge:     deathAge,
		YearOfDeath:  now.Year() + years,
		YearsToDeath: years,
	}
}

// ProjectTimeline estimates the estate and its tax for a death in each year from
// now through the projected year of death.
func (ce *CalculationEngine) ProjectTimeline(r *resolvedInput, now time.Time) []domain.EstateYear {
	ra := r.assumptions
	years := min(ra.YearsToDeath, maxTimelineYears)
	rows := make([]domain.EstateYear, 0, years+1)

	for offset := 0; offset <= years; offset++ {
		year := now.Year() + offset
		value, _ := Appreciate(r.baseValue, ra.CurrentAge, ra.CurrentAge+offset, ra.AppreciationRate)
		gross := ProjectGrossEstate(value, r.strategies, offset)
		taxable, _ := TaxableEstate(gross, r.strategies.CharitableBequest, ce.Rules.Settlement.AdministrativeExpenseRate)

		yearAssumptions := ra
		yearAssumptions.BaseFederalExemption = ce.Exemptions.FederalExemption(year, r.exemptionOverride)
		yearAssumptions.EffectiveFederalExemption = EffectiveFederalExemption(
			yearAssumptions.BaseFederalExemption, ra.DSUEAmount, ra.Portability, ra.BypassTrust, ra.Married)
		taxes := ce.TaxCalc.Calculate(taxable, gross, yearAssumptions)

		rows = append(rows, domain.EstateYear{
			Year:             year,
			Age:              ra.CurrentAge + offset,
			EstateValue:      value,
			GrossEstate:      gross,
			FederalExemption: yearAssumptions.EffectiveFederalExemption,
			EstimatedTax:     taxes.TotalTax,
			IsYearOfDeath:    offset == ra.YearsToDeath,
		})
	}
	return rows
}

// exemptionOverride converts an optional override into the pointer the resolver expects
func exemptionOverride(in domain.AssumptionInputs) *decimal.Decimal {
	if in.FederalExemption == nil || in.FederalExemption.IsNegative() {
		return nil
	}
	v := *in.FederalExemption
	return &v
}

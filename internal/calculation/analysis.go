package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpgo/estate-calculator/internal/domain"
	money "github.com/rpgo/estate-calculator/pkg/decimal"
)

// RunScenarios projects the baseline and every strategy scenario in the configuration
// and compares each scenario against the baseline.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if config == nil {
		return nil, errors.New("configuration is required")
	}

	baseline, err := ce.Calculate(ctx, config.BaselineInput())
	if err != nil {
		return nil, fmt.Errorf("failed to calculate baseline: %w", err)
	}

	results := make([]domain.ScenarioResult, 0, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		input := config.ScenarioInput(scenario)
		if input.Name == "" {
			input.Name = fmt.Sprintf("Scenario %d", i+1)
		}
		summary, err := ce.Calculate(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", input.Name, err)
		}
		results = append(results, domain.ScenarioResult{
			Name:              input.Name,
			Description:       scenario.Description,
			Summary:           *summary,
			TaxSavings:        baseline.TotalTax.Sub(summary.TotalTax),
			AdditionalToHeirs: summary.HeirTax.NetAfterIncomeTax.Sub(baseline.HeirTax.NetAfterIncomeTax),
		})
	}

	comparison := &domain.ScenarioComparison{
		Baseline:            *baseline,
		Scenarios:           results,
		RecommendedScenario: recommendScenario(baseline, results),
		KeyConsiderations:   ce.keyConsiderations(baseline, results),
		Assumptions:         baseline.Assumptions.Describe(),
	}
	ce.Logger.Infof("compared %d scenario(s) against baseline, recommended: %s", len(results), comparison.RecommendedScenario)
	return comparison, nil
}

// recommendScenario picks the projection leaving heirs the most after income tax.
// Ties go to the earlier entry, with the baseline first.
func recommendScenario(baseline *domain.ProjectionSummary, results []domain.ScenarioResult) string {
	best := baseline.Name
	if best == "" {
		best = domain.BaselineName
	}
	bestNet := baseline.HeirTax.NetAfterIncomeTax
	for _, r := range results {
		if r.Summary.HeirTax.NetAfterIncomeTax.GreaterThan(bestNet) {
			bestNet = r.Summary.HeirTax.NetAfterIncomeTax
			best = r.Name
		}
	}
	return best
}

// keyConsiderations generates planning notes from the baseline and scenario results
func (ce *CalculationEngine) keyConsiderations(baseline *domain.ProjectionSummary, results []domain.ScenarioResult) []string {
	ra := baseline.Assumptions
	var notes []string

	if baseline.TotalTax.IsZero() {
		notes = append(notes, "The projected estate stays below the available exemptions; no estate tax is expected")
	} else {
		notes = append(notes, fmt.Sprintf("Projected estate tax of %s (%s%% of the gross estate)",
			money.NewMoneyFromDecimal(baseline.TotalTax).Format(), baseline.EffectiveTaxRate.StringFixed(1)))
	}

	if ce.Rules.Federal.PostResetYear > 0 && ra.YearOfDeath >= ce.Rules.Federal.PostResetYear &&
		ra.BaseFederalExemption.Equal(ce.Rules.Federal.PostResetExemption) {
		notes = append(notes, fmt.Sprintf("The federal exemption for %d uses the %s baseline in effect from %d",
			ra.YearOfDeath, money.NewMoneyFromDecimal(ce.Rules.Federal.PostResetExemption).Format(), ce.Rules.Federal.PostResetYear))
	}

	if baseline.StateTax.IsPositive() {
		notes = append(notes, fmt.Sprintf("%s estate tax of %s applies above a %s state exemption",
			ra.StateCode, money.NewMoneyFromDecimal(baseline.StateTax).Format(), money.NewMoneyFromDecimal(baseline.StateExemption).Format()))
	}

	if ra.Married && !ra.Portability {
		notes = append(notes, "Portability is not elected; the deceased spouse's unused exemption would be lost")
	}

	if baseline.Liquidity.HasShortfall {
		notes = append(notes, fmt.Sprintf("Liquidity shortfall of %s at settlement; additional ILIT coverage of %s would close it",
			money.NewMoneyFromDecimal(baseline.Liquidity.Gap).Format(), money.NewMoneyFromDecimal(baseline.Liquidity.InsuranceNeed).Format()))
	}

	if baseline.HeirTax.ProjectedIncomeTax.IsPositive() {
		notes = append(notes, fmt.Sprintf("Heirs owe an estimated %s of income tax on inherited tax-deferred accounts",
			money.NewMoneyFromDecimal(baseline.HeirTax.ProjectedIncomeTax).Format()))
	}

	for _, r := range results {
		if r.TaxSavings.IsPositive() {
			notes = append(notes, fmt.Sprintf("%s reduces estate tax by %s", r.Name, money.NewMoneyFromDecimal(r.TaxSavings).Format()))
		}
	}
	if len(results) > 0 {
		notes = append(notes, "Lifetime gifts and trust funding leave the projected estate but are not counted in heirs' net totals")
	}
	return notes
}

package output

import (
	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName      string
	NetAfterIncomeTax decimal.Decimal
	AdditionalToHeirs decimal.Decimal
	TaxSavings        decimal.Decimal
	PercentageChange  decimal.Decimal
}

// AnalyzeScenarios expands the engine's recommended projection into the figures the
// reports print. An empty or unknown recommendation means the baseline.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	baseline := results.Baseline
	rec := Recommendation{
		ScenarioName:      baseline.Name,
		NetAfterIncomeTax: baseline.HeirTax.NetAfterIncomeTax,
	}
	for _, sc := range results.Scenarios {
		if sc.Name == results.RecommendedScenario {
			rec = Recommendation{
				ScenarioName:      sc.Name,
				NetAfterIncomeTax: sc.Summary.HeirTax.NetAfterIncomeTax,
				AdditionalToHeirs: sc.AdditionalToHeirs,
				TaxSavings:        sc.TaxSavings,
			}
			break
		}
	}
	base := baseline.HeirTax.NetAfterIncomeTax
	if !base.IsZero() {
		rec.PercentageChange = rec.NetAfterIncomeTax.Sub(base).Div(base).Mul(decimalHundred)
	}
	return rec
}

// projections lists the baseline followed by every scenario summary
func projections(results *domain.ScenarioComparison) []domain.ProjectionSummary {
	out := make([]domain.ProjectionSummary, 0, len(results.Scenarios)+1)
	out = append(out, results.Baseline)
	for _, sc := range results.Scenarios {
		out = append(out, sc.Summary)
	}
	return out
}

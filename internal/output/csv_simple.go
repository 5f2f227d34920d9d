package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/estate-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per projection, baseline first).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "YearOfDeath", "BaseEstateValue", "GrossEstate", "TaxableEstate", "FederalTax", "StateTax", "TotalTax", "EffectiveTaxRate", "NetToHeirs", "HeirIncomeTax", "NetAfterIncomeTax", "LiquidityGap", "InsuranceNeed", "TaxSavings", "AdditionalToHeirs"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(results.Scenarios)+1)
	rows = append(rows, summaryRow(results.Baseline, "0.00", "0.00"))
	for _, sc := range results.Scenarios {
		row := summaryRow(sc.Summary, sc.TaxSavings.StringFixed(2), sc.AdditionalToHeirs.StringFixed(2))
		row[0] = sc.Name
		rows = append(rows, row)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryRow(p domain.ProjectionSummary, savings, additional string) []string {
	return []string{
		p.Name,
		intToString(p.Assumptions.YearOfDeath),
		p.BaseEstateValue.StringFixed(2),
		p.GrossEstate.StringFixed(2),
		p.TaxableEstate.StringFixed(2),
		p.FederalTax.StringFixed(2),
		p.StateTax.StringFixed(2),
		p.TotalTax.StringFixed(2),
		p.EffectiveTaxRate.StringFixed(2),
		p.NetToHeirs.StringFixed(2),
		p.HeirTax.ProjectedIncomeTax.StringFixed(2),
		p.HeirTax.NetAfterIncomeTax.StringFixed(2),
		p.Liquidity.Gap.StringFixed(2),
		p.Liquidity.InsuranceNeed.StringFixed(2),
		savings,
		additional,
	}
}

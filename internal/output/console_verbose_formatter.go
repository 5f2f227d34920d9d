package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/estate-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED ESTATE TAX PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := results.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeProjection(&buf, "BASELINE (NO STRATEGIES)", results.Baseline)

	for i, scenario := range results.Scenarios {
		title := fmt.Sprintf("SCENARIO %d: %s", i+1, scenario.Name)
		if scenario.Description != "" {
			title += " (" + scenario.Description + ")"
		}
		writeProjection(&buf, title, scenario.Summary)
		fmt.Fprintf(&buf, "  Tax Savings vs Baseline:      %s\n", FormatCurrency(scenario.TaxSavings))
		fmt.Fprintf(&buf, "  Additional to Heirs:          %s\n", FormatCurrency(scenario.AdditionalToHeirs))
		fmt.Fprintln(&buf)
	}

	writeDetailedComparison(&buf, results)

	if len(results.KeyConsiderations) > 0 {
		fmt.Fprintln(&buf, "KEY CONSIDERATIONS:")
		for _, note := range results.KeyConsiderations {
			fmt.Fprintf(&buf, "• %s\n", note)
		}
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintf(&buf, "RECOMMENDED: %s, leaving heirs %s after income tax\n", rec.ScenarioName, FormatCurrency(rec.NetAfterIncomeTax))
	}
	return buf.Bytes(), nil
}

func writeProjection(buf *bytes.Buffer, title string, p domain.ProjectionSummary) {
	ra := p.Assumptions
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", min(len(title), 80)))
	fmt.Fprintf(buf, "Projected death: age %d in %d (%d years)\n", ra.DeathAge, ra.YearOfDeath, ra.YearsToDeath)
	fmt.Fprintln(buf, "ESTATE:")
	fmt.Fprintf(buf, "  Current Estate Value:         %s\n", FormatCurrency(p.BaseEstateValue))
	fmt.Fprintf(buf, "  Appreciated Value:            %s (x%s)\n", FormatCurrency(p.AppreciatedEstateValue), p.AppreciationFactor.StringFixed(4))
	fmt.Fprintf(buf, "  Gross Estate:                 %s\n", FormatCurrency(p.GrossEstate))
	fmt.Fprintf(buf, "  Administrative Expenses:      %s\n", FormatCurrency(p.AdministrativeExpenses))
	fmt.Fprintf(buf, "  Charitable Deduction:         %s\n", FormatCurrency(p.CharitableDeduction))
	fmt.Fprintf(buf, "  Taxable Estate:               %s\n", FormatCurrency(p.TaxableEstate))
	fmt.Fprintln(buf, "TAXES:")
	fmt.Fprintf(buf, "  Federal Exemption:            %s\n", FormatCurrency(ra.EffectiveFederalExemption))
	fmt.Fprintf(buf, "  Federal Estate Tax:           %s\n", FormatCurrency(p.FederalTax))
	if ra.StateCode != "" {
		fmt.Fprintf(buf, "  State Estate Tax (%s):        %s\n", ra.StateCode, FormatCurrency(p.StateTax))
	} else {
		fmt.Fprintf(buf, "  State Estate Tax:             %s\n", FormatCurrency(p.StateTax))
	}
	fmt.Fprintf(buf, "  Total Estate Tax:             %s\n", FormatCurrency(p.TotalTax))
	fmt.Fprintf(buf, "  Effective Rate:               %s\n", FormatPercentage(p.EffectiveTaxRate))
	fmt.Fprintln(buf, "LIQUIDITY:")
	fmt.Fprintf(buf, "  Available:                    %s\n", FormatCurrency(p.Liquidity.Available))
	fmt.Fprintf(buf, "  Required (%s%% of tax + costs): %s\n", p.Liquidity.TargetPercent.StringFixed(0), FormatCurrency(p.Liquidity.Required))
	fmt.Fprintf(buf, "  Gap:                          %s\n", FormatCurrency(p.Liquidity.Gap))
	if p.Liquidity.HasShortfall {
		fmt.Fprintf(buf, "  Additional Insurance Need:    %s\n", FormatCurrency(p.Liquidity.InsuranceNeed))
	}
	fmt.Fprintln(buf, "HEIRS:")
	fmt.Fprintf(buf, "  Net to Heirs:                 %s\n", FormatCurrency(p.NetToHeirs))
	fmt.Fprintf(buf, "  Income Tax on Deferred (%s%%): %s\n", p.HeirTax.AssumedRate.StringFixed(0), FormatCurrency(p.HeirTax.ProjectedIncomeTax))
	fmt.Fprintf(buf, "  Net After Income Tax:         %s\n", FormatCurrency(p.HeirTax.NetAfterIncomeTax))
	if p.CharitableImpactPercent.IsPositive() {
		fmt.Fprintf(buf, "  Charitable Share of Estate:   %s\n", FormatPercentage(p.CharitableImpactPercent))
	}
	fmt.Fprintln(buf)
}

func writeDetailedComparison(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, "===================")
	fmt.Fprintf(buf, "%-28s %18s %18s %18s %18s\n", "Scenario", "Gross Estate", "Total Tax", "Net to Heirs", "After Income Tax")
	fmt.Fprintln(buf, strings.Repeat("-", 104))
	for _, p := range projections(results) {
		name := p.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		fmt.Fprintf(buf, "%-28s %18s %18s %18s %18s\n", name,
			FormatCurrency(p.GrossEstate), FormatCurrency(p.TotalTax), FormatCurrency(p.NetToHeirs), FormatCurrency(p.HeirTax.NetAfterIncomeTax))
	}
	fmt.Fprintln(buf)
}

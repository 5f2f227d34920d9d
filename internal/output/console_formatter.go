package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rpgo/estate-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "ESTATE PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	b := results.Baseline
	fmt.Fprintf(&buf, "Baseline: Gross=%s Tax=%s NetToHeirs=%s AfterIncomeTax=%s\n",
		FormatCurrency(b.GrossEstate), FormatCurrency(b.TotalTax), FormatCurrency(b.NetToHeirs), FormatCurrency(b.HeirTax.NetAfterIncomeTax))
	fmt.Fprintln(&buf)
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		fmt.Fprintf(&buf, "%s: Gross=%s Tax=%s NetToHeirs=%s Rate=%s\n",
			sc.Name,
			FormatCurrency(sc.Summary.GrossEstate),
			FormatCurrency(sc.Summary.TotalTax),
			FormatCurrency(sc.Summary.NetToHeirs),
			FormatPercentage(sc.Summary.EffectiveTaxRate),
		)
		fmt.Fprintf(&buf, "  TaxSavings=%s AdditionalToHeirs=%s LiquidityGap=%s\n",
			FormatCurrency(sc.TaxSavings), FormatCurrency(sc.AdditionalToHeirs), FormatCurrency(sc.Summary.Liquidity.Gap))
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.AdditionalToHeirs), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}

package output

import (
	"fmt"

	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs when a
// comparison carries none of its own.
var DefaultAssumptions = GenerateAssumptions(domain.DefaultEstateTaxRules())

// GenerateAssumptions creates the assumptions list from the tax tables in use
func GenerateAssumptions(rules domain.EstateTaxRules) []string {
	return []string{
		fmt.Sprintf("Federal estate tax: %.0f%% flat on the taxable estate above the exemption", rules.Federal.Rate.Mul(decimalHundred).InexactFloat64()),
		fmt.Sprintf("Federal exemption from %d: %s", rules.Federal.PostResetYear, FormatCurrency(rules.Federal.PostResetExemption)),
		fmt.Sprintf("Administrative expenses: %.1f%% of the gross estate", rules.Settlement.AdministrativeExpenseRate.Mul(decimalHundred).InexactFloat64()),
		fmt.Sprintf("Probate costs: %.1f%% of the gross estate; funeral %s per spouse", rules.Settlement.ProbateRate.Mul(decimalHundred).InexactFloat64(), FormatCurrency(rules.Settlement.FuneralCost)),
		fmt.Sprintf("State estate taxes: %d jurisdictions, one flat rate each", len(rules.States)),
		"Tax tables held constant (no inflation indexing of exemptions)",
	}
}

var decimalHundred = decimal.NewFromInt(100)

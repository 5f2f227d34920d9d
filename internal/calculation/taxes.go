package calculation

import (
	"github.com/rpgo/estate-calculator/internal/domain"
	money "github.com/rpgo/estate-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ESTATE TAX ASSUMPTIONS:
//
// 1. Federal estate tax: flat rate (40% by default) on the taxable estate above the
//    effective exemption. The graduated rates below $1M are ignored.
//
// 2. Effective exemption = base exemption for the year of death
//    + DSUE when portability is elected
//    + the base exemption again when a married client uses a bypass trust.
//    DSUE is never doubled.
//
// 3. State estate tax: the state's schedule is applied to the taxable estate above the
//    state exemption. The built-in tables use one flat rate per state and ignore cliff
//    provisions (NY) and the federal state-death-tax deduction.

// EstateTaxResult holds the tax due on a single estate
type EstateTaxResult struct {
	EffectiveExemption   decimal.Decimal
	FederalTaxableAmount decimal.Decimal
	FederalTax           decimal.Decimal
	State                StateTaxResult
	TotalTax             decimal.Decimal
	EffectiveRate        decimal.Decimal // percent of gross estate
}

// EstateTaxCalculator computes federal and state estate tax
type EstateTaxCalculator struct {
	FederalRate decimal.Decimal
	Exemptions  *ExemptionResolver
}

// NewEstateTaxCalculator creates a calculator from the rules tables
func NewEstateTaxCalculator(rules domain.EstateTaxRules, exemptions *ExemptionResolver) *EstateTaxCalculator {
	return &EstateTaxCalculator{FederalRate: rules.Federal.Rate, Exemptions: exemptions}
}

// EffectiveFederalExemption combines the base exemption with DSUE and the bypass
// trust. Doubling applies to the base figure only.
func EffectiveFederalExemption(base, dsue decimal.Decimal, portability, bypassTrust, married bool) decimal.Decimal {
	base = money.NonNegative(base)
	effective := base
	if portability {
		effective = effective.Add(money.NonNegative(dsue))
	}
	if bypassTrust && married {
		effective = effective.Add(base)
	}
	return effective
}

// FederalTax applies the flat federal rate to the taxable estate above the exemption
func (c *EstateTaxCalculator) FederalTax(taxableEstate, effectiveExemption decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	above := money.NonNegative(taxableEstate.Sub(effectiveExemption))
	return above, above.Mul(c.FederalRate).Round(2)
}

// Calculate computes federal, state and total estate tax for a taxable estate
func (c *EstateTaxCalculator) Calculate(taxableEstate, grossEstate decimal.Decimal, ra domain.ResolvedAssumptions) EstateTaxResult {
	taxableEstate = money.NonNegative(taxableEstate)
	federalTaxable, federalTax := c.FederalTax(taxableEstate, ra.EffectiveFederalExemption)
	state := c.Exemptions.StateTax(taxableEstate, ra.StateCode)

	total := federalTax.Add(state.Tax)
	return EstateTaxResult{
		EffectiveExemption:   ra.EffectiveFederalExemption,
		FederalTaxableAmount: federalTaxable,
		FederalTax:           federalTax,
		State:                state,
		TotalTax:             total,
		EffectiveRate:        money.Ratio(total, grossEstate).Round(2),
	}
}

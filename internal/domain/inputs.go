package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TrustFunding is a named amount moved out of the estate into a trust
type TrustFunding struct {
	Name   string          `yaml:"name" json:"name" toml:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount" toml:"amount"`
}

// StrategyInputs are the user-adjustable planning knobs for one scenario
type StrategyInputs struct {
	LifetimeGifts     decimal.Decimal `yaml:"lifetime_gifts" json:"lifetime_gifts" toml:"lifetime_gifts"`
	AnnualGiftAmount  decimal.Decimal `yaml:"annual_gift_amount" json:"annual_gift_amount" toml:"annual_gift_amount"`
	TrustFunding      []TrustFunding  `yaml:"trust_funding,omitempty" json:"trust_funding,omitempty" toml:"trust_funding,omitempty"`
	CharitableBequest decimal.Decimal `yaml:"charitable_bequest" json:"charitable_bequest" toml:"charitable_bequest"`
	ILITDeathBenefit  decimal.Decimal `yaml:"ilit_death_benefit" json:"ilit_death_benefit" toml:"ilit_death_benefit"`
	BypassTrust       bool            `yaml:"bypass_trust" json:"bypass_trust" toml:"bypass_trust"`
}

// TotalTrustFunding sums the positive trust funding amounts
func (s StrategyInputs) TotalTrustFunding() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.TrustFunding {
		if t.Amount.IsPositive() {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// IsEmpty reports whether no strategy has been applied
func (s StrategyInputs) IsEmpty() bool {
	return !s.LifetimeGifts.IsPositive() && !s.AnnualGiftAmount.IsPositive() &&
		!s.TotalTrustFunding().IsPositive() && !s.CharitableBequest.IsPositive() &&
		!s.ILITDeathBenefit.IsPositive() && !s.BypassTrust
}

// AssumptionInputs are optional overrides. Nil means "use the default".
// Rates are in percent units (4 = 4%).
type AssumptionInputs struct {
	FederalExemption       *decimal.Decimal `yaml:"federal_exemption,omitempty" json:"federal_exemption,omitempty" toml:"federal_exemption,omitempty"`
	StateCode              string           `yaml:"state,omitempty" json:"state,omitempty" toml:"state,omitempty"`
	Portability            *bool            `yaml:"portability,omitempty" json:"portability,omitempty" toml:"portability,omitempty"`
	DSUEAmount             *decimal.Decimal `yaml:"dsue_amount,omitempty" json:"dsue_amount,omitempty" toml:"dsue_amount,omitempty"`
	DeathAge               *int             `yaml:"death_age,omitempty" json:"death_age,omitempty" toml:"death_age,omitempty"`
	LiquidityTargetPercent *decimal.Decimal `yaml:"liquidity_target_percent,omitempty" json:"liquidity_target_percent,omitempty" toml:"liquidity_target_percent,omitempty"`
	AppreciationRate       *decimal.Decimal `yaml:"appreciation_rate,omitempty" json:"appreciation_rate,omitempty" toml:"appreciation_rate,omitempty"`
	HeirIncomeTaxRate      *decimal.Decimal `yaml:"heir_income_tax_rate,omitempty" json:"heir_income_tax_rate,omitempty" toml:"heir_income_tax_rate,omitempty"`
	CurrentAge             *int             `yaml:"current_age,omitempty" json:"current_age,omitempty" toml:"current_age,omitempty"`
}

// EstateInput is a single calculation request
type EstateInput struct {
	Name             string            `yaml:"name,omitempty" json:"name,omitempty" toml:"name,omitempty"`
	BaseEstateValue  *decimal.Decimal  `yaml:"base_estate_value,omitempty" json:"base_estate_value,omitempty" toml:"base_estate_value,omitempty"`
	AssetComposition *AssetComposition `yaml:"asset_composition,omitempty" json:"asset_composition,omitempty" toml:"asset_composition,omitempty"`
	Strategies       StrategyInputs    `yaml:"strategies" json:"strategies" toml:"strategies"`
	Assumptions      AssumptionInputs  `yaml:"assumptions" json:"assumptions" toml:"assumptions"`
	Profile          *Profile          `yaml:"profile,omitempty" json:"profile,omitempty" toml:"profile,omitempty"`
}

// ResolvedAssumptions is every assumption after defaults have been applied. It is
// computed once per calculation and echoed back in the summary for audit.
type ResolvedAssumptions struct {
	CurrentAge                int             `json:"current_age" yaml:"current_age"`
	DeathAge                  int             `json:"death_age" yaml:"death_age"`
	YearOfDeath               int             `json:"year_of_death" yaml:"year_of_death"`
	YearsToDeath              int             `json:"years_to_death" yaml:"years_to_death"`
	Married                   bool            `json:"married" yaml:"married"`
	StateCode                 string          `json:"state" yaml:"state"`
	BaseFederalExemption      decimal.Decimal `json:"base_federal_exemption" yaml:"base_federal_exemption"`
	EffectiveFederalExemption decimal.Decimal `json:"effective_federal_exemption" yaml:"effective_federal_exemption"`
	Portability               bool            `json:"portability" yaml:"portability"`
	DSUEAmount                decimal.Decimal `json:"dsue_amount" yaml:"dsue_amount"`
	BypassTrust               bool            `json:"bypass_trust" yaml:"bypass_trust"`
	LiquidityTargetPercent    decimal.Decimal `json:"liquidity_target_percent" yaml:"liquidity_target_percent"`
	AppreciationRate          decimal.Decimal `json:"appreciation_rate" yaml:"appreciation_rate"`
	HeirIncomeTaxRate         decimal.Decimal `json:"heir_income_tax_rate" yaml:"heir_income_tax_rate"`
	FederalEstateTaxRate      decimal.Decimal `json:"federal_estate_tax_rate" yaml:"federal_estate_tax_rate"`
}

// Describe renders the resolved assumptions as human readable lines
func (ra ResolvedAssumptions) Describe() []string {
	hundred := decimal.NewFromInt(100)
	lines := []string{
		fmt.Sprintf("Current age %d, projected death at age %d (year %d)", ra.CurrentAge, ra.DeathAge, ra.YearOfDeath),
		fmt.Sprintf("Federal exemption: $%s base, $%s effective", ra.BaseFederalExemption.StringFixed(0), ra.EffectiveFederalExemption.StringFixed(0)),
		fmt.Sprintf("Federal estate tax rate: %s%% on amounts above the exemption", ra.FederalEstateTaxRate.Mul(hundred).StringFixed(0)),
		fmt.Sprintf("Estate appreciation: %s%% annually", ra.AppreciationRate.StringFixed(2)),
		fmt.Sprintf("Liquidity target: %s%% of estate taxes plus settlement costs", ra.LiquidityTargetPercent.StringFixed(0)),
		fmt.Sprintf("Heir income tax on tax-deferred balances: %s%%", ra.HeirIncomeTaxRate.StringFixed(0)),
	}
	if ra.StateCode != "" {
		lines = append(lines, fmt.Sprintf("State of residence: %s", ra.StateCode))
	}
	if ra.Portability && ra.DSUEAmount.IsPositive() {
		lines = append(lines, fmt.Sprintf("Portability: DSUE of $%s added to the exemption", ra.DSUEAmount.StringFixed(0)))
	}
	if ra.BypassTrust && ra.Married {
		lines = append(lines, "Bypass trust preserves both spouses' federal exemptions")
	}
	return lines
}

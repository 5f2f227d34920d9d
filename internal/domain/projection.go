package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionSummary is the immutable result of one estate projection
type ProjectionSummary struct {
	Name string `json:"name,omitempty"`

	BaseEstateValue        decimal.Decimal  `json:"base_estate_value"`
	AppreciatedEstateValue decimal.Decimal  `json:"appreciated_estate_value"`
	AppreciationFactor     decimal.Decimal  `json:"appreciation_factor"`
	Composition            AssetComposition `json:"asset_composition"`

	// Estate
	GrossEstate            decimal.Decimal `json:"gross_estate"`
	AdministrativeExpenses decimal.Decimal `json:"administrative_expenses"`
	CharitableDeduction    decimal.Decimal `json:"charitable_deduction"`
	TaxableEstate          decimal.Decimal `json:"taxable_estate"`

	// Taxes
	FederalTax       decimal.Decimal `json:"federal_tax"`
	StateTax         decimal.Decimal `json:"state_tax"`
	StateExemption   decimal.Decimal `json:"state_exemption"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	EffectiveTaxRate decimal.Decimal `json:"effective_tax_rate"` // percent of gross estate

	NetToHeirs              decimal.Decimal `json:"net_to_heirs"`
	CharitableImpactPercent decimal.Decimal `json:"charitable_impact_percent"`

	Liquidity   LiquidityAnalysis   `json:"liquidity"`
	HeirTax     HeirTaxEstimate     `json:"heir_tax"`
	Assumptions ResolvedAssumptions `json:"assumptions"`
	Timeline    []EstateYear        `json:"timeline,omitempty"`
}

// LiquidityAnalysis compares liquid funds against what settlement will demand
type LiquidityAnalysis struct {
	Available     decimal.Decimal  `json:"available"`
	Required      decimal.Decimal  `json:"required"`
	Gap           decimal.Decimal  `json:"gap"`
	InsuranceNeed decimal.Decimal  `json:"insurance_need"`
	TargetPercent decimal.Decimal  `json:"target_percent"`
	HasShortfall  bool             `json:"has_shortfall"`
	Reserves      ReserveBreakdown `json:"reserves"`
}

// ReserveBreakdown itemises the liquidity requirement and the funds set aside
type ReserveBreakdown struct {
	TaxReserve           decimal.Decimal `json:"tax_reserve"`
	ProbateCost          decimal.Decimal `json:"probate_cost"`
	FuneralCost          decimal.Decimal `json:"funeral_cost"`
	SettlementCosts      decimal.Decimal `json:"settlement_costs"`
	CharitableReserve    decimal.Decimal `json:"charitable_reserve"`
	InEstateInsurance    decimal.Decimal `json:"in_estate_insurance"`
	ExistingILITCoverage decimal.Decimal `json:"existing_ilit_coverage"`
}

// HeirTaxEstimate projects income tax heirs owe on inherited tax-deferred balances
type HeirTaxEstimate struct {
	TaxDeferredBalance decimal.Decimal `json:"tax_deferred_balance"`
	AssumedRate        decimal.Decimal `json:"assumed_rate"` // percent
	ProjectedIncomeTax decimal.Decimal `json:"projected_income_tax"`
	NetAfterIncomeTax  decimal.Decimal `json:"net_after_income_tax"`
}

// EstateYear is one row of the year-by-year estate projection
type EstateYear struct {
	Year             int             `json:"year"`
	Age              int             `json:"age"`
	EstateValue      decimal.Decimal `json:"estate_value"`
	GrossEstate      decimal.Decimal `json:"gross_estate"`
	FederalExemption decimal.Decimal `json:"federal_exemption"`
	EstimatedTax     decimal.Decimal `json:"estimated_tax"`
	IsYearOfDeath    bool            `json:"is_year_of_death"`
}

// StrategyScenario is a named set of strategies evaluated against the baseline
type StrategyScenario struct {
	Name        string            `yaml:"name" json:"name" toml:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Strategies  StrategyInputs    `yaml:"strategies" json:"strategies" toml:"strategies"`
	Assumptions *AssumptionInputs `yaml:"assumptions,omitempty" json:"assumptions,omitempty" toml:"assumptions,omitempty"`
}

// Configuration is the content of an input file: one profile, shared assumptions
// and any number of strategy scenarios.
type Configuration struct {
	Profile          *Profile           `yaml:"profile,omitempty" json:"profile,omitempty" toml:"profile,omitempty"`
	BaseEstateValue  *decimal.Decimal   `yaml:"base_estate_value,omitempty" json:"base_estate_value,omitempty" toml:"base_estate_value,omitempty"`
	AssetComposition *AssetComposition  `yaml:"asset_composition,omitempty" json:"asset_composition,omitempty" toml:"asset_composition,omitempty"`
	Assumptions      AssumptionInputs   `yaml:"assumptions" json:"assumptions" toml:"assumptions"`
	Scenarios        []StrategyScenario `yaml:"scenarios" json:"scenarios" toml:"scenarios"`
}

// BaselineName labels the projection with no strategies applied
const BaselineName = "Baseline"

// BaselineInput returns the calculation input with no strategies applied
func (c *Configuration) BaselineInput() EstateInput {
	return EstateInput{
		Name:             BaselineName,
		BaseEstateValue:  c.BaseEstateValue,
		AssetComposition: c.AssetComposition,
		Assumptions:      c.Assumptions,
		Profile:          c.Profile,
	}
}

// ScenarioInput returns the calculation input for a scenario. Scenario assumptions,
// when given, replace the shared ones field by field.
func (c *Configuration) ScenarioInput(s StrategyScenario) EstateInput {
	in := c.BaselineInput()
	in.Name = s.Name
	in.Strategies = s.Strategies
	if s.Assumptions != nil {
		in.Assumptions = MergeAssumptions(c.Assumptions, *s.Assumptions)
	}
	return in
}

// MergeAssumptions overlays every field set in override onto base
func MergeAssumptions(base, override AssumptionInputs) AssumptionInputs {
	out := base
	if override.FederalExemption != nil {
		out.FederalExemption = override.FederalExemption
	}
	if override.StateCode != "" {
		out.StateCode = override.StateCode
	}
	if override.Portability != nil {
		out.Portability = override.Portability
	}
	if override.DSUEAmount != nil {
		out.DSUEAmount = override.DSUEAmount
	}
	if override.DeathAge != nil {
		out.DeathAge = override.DeathAge
	}
	if override.LiquidityTargetPercent != nil {
		out.LiquidityTargetPercent = override.LiquidityTargetPercent
	}
	if override.AppreciationRate != nil {
		out.AppreciationRate = override.AppreciationRate
	}
	if override.HeirIncomeTaxRate != nil {
		out.HeirIncomeTaxRate = override.HeirIncomeTaxRate
	}
	if override.CurrentAge != nil {
		out.CurrentAge = override.CurrentAge
	}
	return out
}

// ScenarioResult pairs a scenario projection with its comparison to the baseline
type ScenarioResult struct {
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Summary           ProjectionSummary `json:"summary"`
	TaxSavings        decimal.Decimal   `json:"tax_savings"`
	AdditionalToHeirs decimal.Decimal   `json:"additional_to_heirs"`
}

// ScenarioComparison is the result of running a configuration
type ScenarioComparison struct {
	Baseline            ProjectionSummary `json:"baseline"`
	Scenarios           []ScenarioResult  `json:"scenarios"`
	RecommendedScenario string            `json:"recommended_scenario"`
	KeyConsiderations   []string          `json:"key_considerations"`
	Assumptions         []string          `json:"assumptions"`
}

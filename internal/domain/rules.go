package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeStateCode trims and upper-cases a jurisdiction code
func NormalizeStateCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// EstateTaxRules holds the static federal/state estate tax tables and settlement
// constants. The built-in set comes from DefaultEstateTaxRules and may be replaced
// by a rules file.
type EstateTaxRules struct {
	Metadata   RulesMetadata               `yaml:"metadata" json:"metadata" toml:"metadata"`
	Federal    FederalEstateRules          `yaml:"federal" json:"federal" toml:"federal"`
	States     map[string]StateEstateRules `yaml:"states" json:"states" toml:"states"`
	Settlement SettlementRules             `yaml:"settlement" json:"settlement" toml:"settlement"`
	Defaults   AssumptionDefaults          `yaml:"defaults" json:"defaults" toml:"defaults"`
}

// RulesMetadata describes the rules data set
type RulesMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year" toml:"data_year"`
	Description string `yaml:"description" json:"description" toml:"description"`
}

// FederalEstateRules contains the federal exemption schedule and rate
type FederalEstateRules struct {
	Exemptions         []YearExemption `yaml:"exemptions" json:"exemptions" toml:"exemptions"`
	PostResetYear      int             `yaml:"post_reset_year" json:"post_reset_year" toml:"post_reset_year"`
	PostResetExemption decimal.Decimal `yaml:"post_reset_exemption" json:"post_reset_exemption" toml:"post_reset_exemption"`
	Rate               decimal.Decimal `yaml:"rate" json:"rate" toml:"rate"`
}

// YearExemption is one row of the federal exemption schedule
type YearExemption struct {
	Year      int             `yaml:"year" json:"year" toml:"year"`
	Exemption decimal.Decimal `yaml:"exemption" json:"exemption" toml:"exemption"`
}

// StateEstateRules is a state's exemption and marginal schedule
type StateEstateRules struct {
	Name      string          `yaml:"name" json:"name" toml:"name"`
	Exemption decimal.Decimal `yaml:"exemption" json:"exemption" toml:"exemption"`
	Brackets  []TaxBracket    `yaml:"brackets" json:"brackets" toml:"brackets"`
}

// TaxBracket is a marginal bracket measured on the amount above the exemption.
// A zero Max means the bracket is unbounded.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min" toml:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max" toml:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate" toml:"rate"`
}

// SettlementRules are the cost assumptions for settling an estate
type SettlementRules struct {
	ProbateRate               decimal.Decimal `yaml:"probate_rate" json:"probate_rate" toml:"probate_rate"`
	AdministrativeExpenseRate decimal.Decimal `yaml:"administrative_expense_rate" json:"administrative_expense_rate" toml:"administrative_expense_rate"`
	FuneralCost               decimal.Decimal `yaml:"funeral_cost" json:"funeral_cost" toml:"funeral_cost"`
}

// AssumptionDefaults are applied when the caller leaves an assumption unset
type AssumptionDefaults struct {
	CurrentAge             int             `yaml:"current_age" json:"current_age" toml:"current_age"`
	MinimumDeathAge        int             `yaml:"minimum_death_age" json:"minimum_death_age" toml:"minimum_death_age"`
	MinimumYearsToDeath    int             `yaml:"minimum_years_to_death" json:"minimum_years_to_death" toml:"minimum_years_to_death"`
	LiquidityTargetPercent decimal.Decimal `yaml:"liquidity_target_percent" json:"liquidity_target_percent" toml:"liquidity_target_percent"`
	HeirIncomeTaxRate      decimal.Decimal `yaml:"heir_income_tax_rate" json:"heir_income_tax_rate" toml:"heir_income_tax_rate"`
	Portability            bool            `yaml:"portability" json:"portability" toml:"portability"`
}

func flatState(name string, exemption int64, rate float64) StateEstateRules {
	return StateEstateRules{
		Name:      name,
		Exemption: decimal.NewFromInt(exemption),
		Brackets:  []TaxBracket{{Min: decimal.Zero, Max: decimal.Zero, Rate: decimal.NewFromFloat(rate)}},
	}
}

// DefaultEstateTaxRules returns the built-in tax tables.
//
// State schedules are a single flat rate per jurisdiction (the top marginal rate);
// states not listed levy no estate tax.
func DefaultEstateTaxRules() EstateTaxRules {
	schedule := []struct {
		year      int
		exemption int64
	}{
		{2011, 5000000},
		{2012, 5120000},
		{2013, 5250000},
		{2014, 5340000},
		{2015, 5430000},
		{2016, 5450000},
		{2017, 5490000},
		{2018, 11180000},
		{2019, 11400000},
		{2020, 11580000},
		{2021, 11700000},
		{2022, 12060000},
		{2023, 12920000},
		{2024, 13610000},
		{2025, 13990000},
	}
	exemptions := make([]YearExemption, 0, len(schedule))
	for _, s := range schedule {
		exemptions = append(exemptions, YearExemption{Year: s.year, Exemption: decimal.NewFromInt(s.exemption)})
	}

	return EstateTaxRules{
		Metadata: RulesMetadata{
			DataYear:    2025,
			Description: "Built-in federal exemption schedule and simplified state estate tax tables",
		},
		Federal: FederalEstateRules{
			Exemptions:         exemptions,
			PostResetYear:      2026,
			PostResetExemption: decimal.NewFromInt(15000000),
			Rate:               decimal.NewFromFloat(0.40),
		},
		States: map[string]StateEstateRules{
			"CT": flatState("Connecticut", 13990000, 0.12),
			"DC": flatState("District of Columbia", 4873200, 0.16),
			"HI": flatState("Hawaii", 5490000, 0.20),
			"IL": flatState("Illinois", 4000000, 0.16),
			"MA": flatState("Massachusetts", 2000000, 0.16),
			"MD": flatState("Maryland", 5000000, 0.16),
			"ME": flatState("Maine", 7000000, 0.12),
			"MN": flatState("Minnesota", 3000000, 0.16),
			"NY": flatState("New York", 7160000, 0.16),
			"OR": flatState("Oregon", 1000000, 0.16),
			"RI": flatState("Rhode Island", 1802431, 0.16),
			"VT": flatState("Vermont", 5000000, 0.16),
			"WA": flatState("Washington", 3000000, 0.35),
		},
		Settlement: SettlementRules{
			ProbateRate:               decimal.NewFromFloat(0.05),
			AdministrativeExpenseRate: decimal.NewFromFloat(0.03),
			FuneralCost:               decimal.NewFromInt(15000),
		},
		Defaults: AssumptionDefaults{
			CurrentAge:             55,
			MinimumDeathAge:        93,
			MinimumYearsToDeath:    5,
			LiquidityTargetPercent: decimal.NewFromInt(110),
			HeirIncomeTaxRate:      decimal.NewFromInt(25),
			Portability:            true,
		},
	}
}

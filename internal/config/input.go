package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is returned when an input document fails validation
var ErrInvalidConfiguration = errors.New("invalid configuration")

var (
	maxPercentRate   = decimal.NewFromInt(100)
	maxLiquidityRate = decimal.NewFromInt(500)
	maxAppreciation  = decimal.NewFromInt(50)
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML, TOML or JSON file, chosen by extension
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := decode(filename, data, &config); err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// decode unmarshals data in the format implied by the file extension. YAML is the default.
func decode(filename string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if err := toml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("%w: configuration is empty", ErrInvalidConfiguration)
	}

	if config.BaseEstateValue == nil && config.Profile == nil {
		return fmt.Errorf("%w: base_estate_value or profile is required", ErrInvalidConfiguration)
	}
	if config.BaseEstateValue != nil && config.BaseEstateValue.IsNegative() {
		return fmt.Errorf("%w: base_estate_value cannot be negative", ErrInvalidConfiguration)
	}
	if config.AssetComposition != nil {
		if err := validateComposition(config.AssetComposition); err != nil {
			return err
		}
	}
	if config.Profile != nil {
		if err := validateProfile(config.Profile); err != nil {
			return fmt.Errorf("profile validation failed: %w", err)
		}
	}

	if err := validateAssumptions(&config.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}

	names := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		key := strings.ToLower(strings.TrimSpace(scenario.Name))
		if key == strings.ToLower(domain.BaselineName) {
			return fmt.Errorf("%w: scenario name %q is reserved for the baseline", ErrInvalidConfiguration, scenario.Name)
		}
		if names[key] {
			return fmt.Errorf("%w: duplicate scenario name %q", ErrInvalidConfiguration, scenario.Name)
		}
		names[key] = true
	}

	return nil
}

// ValidateInput validates a single calculation request
func (ip *InputParser) ValidateInput(input *domain.EstateInput) error {
	if input == nil {
		return fmt.Errorf("%w: input is empty", ErrInvalidConfiguration)
	}
	if input.BaseEstateValue != nil && input.BaseEstateValue.IsNegative() {
		return fmt.Errorf("%w: base_estate_value cannot be negative", ErrInvalidConfiguration)
	}
	if input.AssetComposition != nil {
		if err := validateComposition(input.AssetComposition); err != nil {
			return err
		}
	}
	if input.Profile != nil {
		if err := validateProfile(input.Profile); err != nil {
			return fmt.Errorf("profile validation failed: %w", err)
		}
	}
	if err := validateStrategies(&input.Strategies); err != nil {
		return fmt.Errorf("strategies validation failed: %w", err)
	}
	if err := validateAssumptions(&input.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	return nil
}

func validateComposition(ac *domain.AssetComposition) error {
	buckets := map[string]decimal.Decimal{
		"taxable":      ac.Taxable,
		"tax_deferred": ac.TaxDeferred,
		"roth":         ac.Roth,
		"illiquid":     ac.Illiquid,
	}
	for name, v := range buckets {
		if v.IsNegative() {
			return fmt.Errorf("%w: asset_composition.%s cannot be negative", ErrInvalidConfiguration, name)
		}
	}
	return nil
}

// validateProfile validates the client profile
func validateProfile(p *domain.Profile) error {
	switch strings.ToLower(strings.TrimSpace(p.MaritalStatus)) {
	case "", domain.MaritalStatusSingle, domain.MaritalStatusMarried, domain.MaritalStatusWidowed, domain.MaritalStatusDivorced:
	default:
		return fmt.Errorf("%w: unknown marital status %q", ErrInvalidConfiguration, p.MaritalStatus)
	}
	if p.LongevityAge != nil && (*p.LongevityAge <= 0 || *p.LongevityAge > 120) {
		return fmt.Errorf("%w: longevity age must be between 1 and 120", ErrInvalidConfiguration)
	}
	for _, a := range p.Assets {
		if a.Name == "" {
			return fmt.Errorf("%w: asset name is required", ErrInvalidConfiguration)
		}
	}
	for _, l := range p.Liabilities {
		if l.Balance.IsNegative() {
			return fmt.Errorf("%w: liability %s balance cannot be negative", ErrInvalidConfiguration, l.Name)
		}
	}
	for i, pol := range p.InsurancePolicies {
		if pol.Owner != domain.PolicyOwnerSelf && pol.Owner != domain.PolicyOwnerSpouse {
			return fmt.Errorf("%w: insurance policy %d owner must be 'self' or 'spouse'", ErrInvalidConfiguration, i)
		}
		if pol.FaceAmount.IsNegative() {
			return fmt.Errorf("%w: insurance policy %d face amount cannot be negative", ErrInvalidConfiguration, i)
		}
	}
	return nil
}

// validateAssumptions validates assumption overrides
func validateAssumptions(a *domain.AssumptionInputs) error {
	if a.FederalExemption != nil && a.FederalExemption.IsNegative() {
		return fmt.Errorf("%w: federal exemption cannot be negative", ErrInvalidConfiguration)
	}
	if a.DSUEAmount != nil && a.DSUEAmount.IsNegative() {
		return fmt.Errorf("%w: DSUE amount cannot be negative", ErrInvalidConfiguration)
	}
	if a.StateCode != "" && len(strings.TrimSpace(a.StateCode)) != 2 {
		return fmt.Errorf("%w: state must be a two-letter code, got %q", ErrInvalidConfiguration, a.StateCode)
	}
	if a.CurrentAge != nil && (*a.CurrentAge < 0 || *a.CurrentAge > 120) {
		return fmt.Errorf("%w: current age must be between 0 and 120", ErrInvalidConfiguration)
	}
	if a.DeathAge != nil && (*a.DeathAge <= 0 || *a.DeathAge > 120) {
		return fmt.Errorf("%w: death age must be between 1 and 120", ErrInvalidConfiguration)
	}
	if a.CurrentAge != nil && a.DeathAge != nil && *a.DeathAge < *a.CurrentAge {
		return fmt.Errorf("%w: death age cannot be before current age", ErrInvalidConfiguration)
	}
	if a.LiquidityTargetPercent != nil && (a.LiquidityTargetPercent.IsNegative() || a.LiquidityTargetPercent.GreaterThan(maxLiquidityRate)) {
		return fmt.Errorf("%w: liquidity target must be between 0%% and 500%%", ErrInvalidConfiguration)
	}
	if a.AppreciationRate != nil && (a.AppreciationRate.IsNegative() || a.AppreciationRate.GreaterThan(maxAppreciation)) {
		return fmt.Errorf("%w: appreciation rate must be between 0%% and 50%%", ErrInvalidConfiguration)
	}
	if a.HeirIncomeTaxRate != nil && (a.HeirIncomeTaxRate.IsNegative() || a.HeirIncomeTaxRate.GreaterThan(maxPercentRate)) {
		return fmt.Errorf("%w: heir income tax rate must be between 0%% and 100%%", ErrInvalidConfiguration)
	}
	return nil
}

// validateScenario validates a single strategy scenario
func validateScenario(scenario *domain.StrategyScenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("%w: scenario name is required", ErrInvalidConfiguration)
	}
	if err := validateStrategies(&scenario.Strategies); err != nil {
		return err
	}
	if scenario.Assumptions != nil {
		if err := validateAssumptions(scenario.Assumptions); err != nil {
			return err
		}
	}
	return nil
}

func validateStrategies(s *domain.StrategyInputs) error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"lifetime_gifts", s.LifetimeGifts},
		{"annual_gift_amount", s.AnnualGiftAmount},
		{"charitable_bequest", s.CharitableBequest},
		{"ilit_death_benefit", s.ILITDeathBenefit},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidConfiguration, a.name)
		}
	}
	for _, t := range s.TrustFunding {
		if t.Name == "" {
			return fmt.Errorf("%w: trust funding name is required", ErrInvalidConfiguration)
		}
		if t.Amount.IsNegative() {
			return fmt.Errorf("%w: trust funding %s cannot be negative", ErrInvalidConfiguration, t.Name)
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	birthDate, _ := time.Parse("2006-01-02", "1962-04-18")
	longevity := 92
	appreciation := decimal.NewFromInt(4)
	portability := true
	annualGift := decimal.NewFromInt(76000) // two donors, four grandchildren

	return &domain.Configuration{
		Profile: &domain.Profile{
			MaritalStatus: domain.MaritalStatusMarried,
			State:         "NY",
			BirthDate:     &birthDate,
			LongevityAge:  &longevity,
			Assets: []domain.Asset{
				{Name: "Joint brokerage", Type: "brokerage", Value: decimal.NewFromInt(6500000)},
				{Name: "Cash reserves", Type: "savings", Value: decimal.NewFromInt(750000)},
				{Name: "Rollover IRA", Type: "traditional_ira", Value: decimal.NewFromInt(3200000)},
				{Name: "Roth IRA", Type: "roth_ira", Value: decimal.NewFromInt(900000)},
				{Name: "Primary residence", Type: "real_estate", Value: decimal.NewFromInt(2800000)},
				{Name: "Family business interest", Type: "business", Value: decimal.NewFromInt(4000000)},
			},
			Liabilities: []domain.Liability{
				{Name: "Mortgage", Balance: decimal.NewFromInt(650000)},
			},
			InsurancePolicies: []domain.InsurancePolicy{
				{Owner: domain.PolicyOwnerSelf, FaceAmount: decimal.NewFromInt(1000000)},
				{Owner: domain.PolicyOwnerSpouse, FaceAmount: decimal.NewFromInt(2000000), HeldInILIT: true},
			},
		},
		Assumptions: domain.AssumptionInputs{
			AppreciationRate: &appreciation,
			Portability:      &portability,
		},
		Scenarios: []domain.StrategyScenario{
			{
				Name:        "Annual Gifting",
				Description: "Annual exclusion gifts to grandchildren plus a dynasty trust",
				Strategies: domain.StrategyInputs{
					AnnualGiftAmount: annualGift,
					TrustFunding: []domain.TrustFunding{
						{Name: "Dynasty trust", Amount: decimal.NewFromInt(2000000)},
					},
				},
			},
			{
				Name:        "Charitable Bequest",
				Description: "Leave $3M to the family foundation",
				Strategies: domain.StrategyInputs{
					CharitableBequest: decimal.NewFromInt(3000000),
				},
			},
			{
				Name:        "ILIT and Bypass Trust",
				Description: "Second-to-die policy in an ILIT with a credit shelter trust",
				Strategies: domain.StrategyInputs{
					ILITDeathBenefit: decimal.NewFromInt(5000000),
					BypassTrust:      true,
				},
			},
		},
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_YAML(t *testing.T) {
	testConfig := "profile:\n" +
		"  marital_status: married\n" +
		"  state: NY\n" +
		"  birth_date: 1960-08-01\n" +
		"  assets:\n" +
		"    - name: Brokerage\n" +
		"      type: brokerage\n" +
		"      value: 6000000\n" +
		"    - name: IRA\n" +
		"      type: traditional_ira\n" +
		"      value: \"2000000.50\"\n" +
		"  insurance_policies:\n" +
		"    - owner: spouse\n" +
		"      face_amount: 1000000\n" +
		"      held_in_ilit: true\n" +
		"assumptions:\n" +
		"  appreciation_rate: 4.5\n" +
		"  portability: false\n" +
		"scenarios:\n" +
		"  - name: Charitable\n" +
		"    strategies:\n" +
		"      charitable_bequest: 1000000\n" +
		"      trust_funding:\n" +
		"        - name: GRAT\n" +
		"          amount: 250000\n" +
		"    assumptions:\n" +
		"      state: FL\n"

	path := writeFile(t, "estate.yaml", testConfig)
	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	require.NotNil(t, config.Profile)
	assert.True(t, config.Profile.IsMarried())
	require.NotNil(t, config.Profile.BirthDate)
	assert.Equal(t, 1960, config.Profile.BirthDate.Year())
	require.Len(t, config.Profile.Assets, 2)
	assert.True(t, decimal.RequireFromString("2000000.50").Equal(config.Profile.Assets[1].Value))
	assert.True(t, config.Profile.InsurancePolicies[0].HeldInILIT)

	require.NotNil(t, config.Assumptions.AppreciationRate)
	assert.Equal(t, "4.5", config.Assumptions.AppreciationRate.String())
	require.NotNil(t, config.Assumptions.Portability)
	assert.False(t, *config.Assumptions.Portability)
	assert.Nil(t, config.Assumptions.DeathAge)

	require.Len(t, config.Scenarios, 1)
	scenario := config.Scenarios[0]
	assert.Equal(t, "Charitable", scenario.Name)
	assert.Equal(t, "1000000", scenario.Strategies.CharitableBequest.String())
	assert.Equal(t, "250000", scenario.Strategies.TotalTrustFunding().String())
	require.NotNil(t, scenario.Assumptions)
	assert.Equal(t, "FL", scenario.Assumptions.StateCode)
}

func TestLoadFromFile_TOML(t *testing.T) {
	testConfig := `base_estate_value = 15000000

[asset_composition]
taxable = 10000000
tax_deferred = 5000000

[assumptions]
state = "MA"
death_age = 90
current_age = 65

[[scenarios]]
name = "Gifting"
[scenarios.strategies]
lifetime_gifts = 2000000
annual_gift_amount = 36000
bypass_trust = true
`
	path := writeFile(t, "estate.toml", testConfig)
	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	require.NotNil(t, config.BaseEstateValue)
	assert.Equal(t, "15000000", config.BaseEstateValue.String())
	require.NotNil(t, config.AssetComposition)
	assert.Equal(t, "5000000", config.AssetComposition.TaxDeferred.String())
	assert.Equal(t, "MA", config.Assumptions.StateCode)
	assert.Equal(t, 90, *config.Assumptions.DeathAge)
	require.Len(t, config.Scenarios, 1)
	assert.True(t, config.Scenarios[0].Strategies.BypassTrust)
	assert.Equal(t, "36000", config.Scenarios[0].Strategies.AnnualGiftAmount.String())
}

func TestLoadFromFile_JSON(t *testing.T) {
	testConfig := `{"base_estate_value": "8000000", "assumptions": {"state": "OR"}, "scenarios": []}`
	path := writeFile(t, "estate.json", testConfig)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "8000000", config.BaseEstateValue.String())
	assert.Equal(t, "OR", config.Assumptions.StateCode)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "broken.yaml", "profile: [unclosed\n")

	config, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	path := writeFile(t, "empty.yaml", "scenarios: []\n")

	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func validConfiguration() *domain.Configuration {
	base := decimal.NewFromInt(20000000)
	return &domain.Configuration{
		BaseEstateValue: &base,
		Scenarios: []domain.StrategyScenario{
			{Name: "Gifting", Strategies: domain.StrategyInputs{LifetimeGifts: decimal.NewFromInt(1000000)}},
		},
	}
}

func TestValidateConfiguration_Success(t *testing.T) {
	assert.NoError(t, NewInputParser().ValidateConfiguration(validConfiguration()))
}

func TestValidateConfiguration_Failures(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	tooOld := 130
	young, old := 80, 70
	badRate := decimal.NewFromInt(150)

	tests := []struct {
		name   string
		mutate func(c *domain.Configuration)
		errMsg string
	}{
		{
			name:   "no base value or profile",
			mutate: func(c *domain.Configuration) { c.BaseEstateValue = nil },
			errMsg: "base_estate_value or profile is required",
		},
		{
			name:   "negative base value",
			mutate: func(c *domain.Configuration) { c.BaseEstateValue = &negative },
			errMsg: "base_estate_value cannot be negative",
		},
		{
			name:   "negative composition bucket",
			mutate: func(c *domain.Configuration) { c.AssetComposition = &domain.AssetComposition{Roth: negative} },
			errMsg: "asset_composition.roth cannot be negative",
		},
		{
			name:   "unknown marital status",
			mutate: func(c *domain.Configuration) { c.Profile = &domain.Profile{MaritalStatus: "engaged"} },
			errMsg: "unknown marital status",
		},
		{
			name: "bad policy owner",
			mutate: func(c *domain.Configuration) {
				c.Profile = &domain.Profile{InsurancePolicies: []domain.InsurancePolicy{{Owner: "child"}}}
			},
			errMsg: "owner must be 'self' or 'spouse'",
		},
		{
			name:   "bad state code",
			mutate: func(c *domain.Configuration) { c.Assumptions.StateCode = "New York" },
			errMsg: "two-letter code",
		},
		{
			name:   "death age out of range",
			mutate: func(c *domain.Configuration) { c.Assumptions.DeathAge = &tooOld },
			errMsg: "death age must be between",
		},
		{
			name: "death before current age",
			mutate: func(c *domain.Configuration) {
				c.Assumptions.CurrentAge = &young
				c.Assumptions.DeathAge = &old
			},
			errMsg: "death age cannot be before current age",
		},
		{
			name:   "heir rate above 100",
			mutate: func(c *domain.Configuration) { c.Assumptions.HeirIncomeTaxRate = &badRate },
			errMsg: "heir income tax rate",
		},
		{
			name:   "empty scenario name",
			mutate: func(c *domain.Configuration) { c.Scenarios[0].Name = " " },
			errMsg: "scenario name is required",
		},
		{
			name: "duplicate scenario name",
			mutate: func(c *domain.Configuration) {
				c.Scenarios = append(c.Scenarios, domain.StrategyScenario{Name: "gifting"})
			},
			errMsg: "duplicate scenario name",
		},
		{
			name:   "scenario named like the baseline",
			mutate: func(c *domain.Configuration) { c.Scenarios[0].Name = "baseline" },
			errMsg: "reserved for the baseline",
		},
		{
			name:   "negative appreciation",
			mutate: func(c *domain.Configuration) { c.Assumptions.AppreciationRate = &negative },
			errMsg: "appreciation rate must be between 0% and 50%",
		},
		{
			name:   "negative strategy amount",
			mutate: func(c *domain.Configuration) { c.Scenarios[0].Strategies.CharitableBequest = negative },
			errMsg: "charitable_bequest cannot be negative",
		},
		{
			name: "unnamed trust",
			mutate: func(c *domain.Configuration) {
				c.Scenarios[0].Strategies.TrustFunding = []domain.TrustFunding{{Amount: decimal.NewFromInt(1)}}
			},
			errMsg: "trust funding name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfiguration()
			tt.mutate(config)
			err := NewInputParser().ValidateConfiguration(config)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateInput(t *testing.T) {
	parser := NewInputParser()
	base := decimal.NewFromInt(1000000)

	assert.NoError(t, parser.ValidateInput(&domain.EstateInput{BaseEstateValue: &base}))
	assert.NoError(t, parser.ValidateInput(&domain.EstateInput{}), "an empty input is a zero estate")

	err := parser.ValidateInput(&domain.EstateInput{Strategies: domain.StrategyInputs{ILITDeathBenefit: decimal.NewFromInt(-5)}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	assert.ErrorIs(t, parser.ValidateInput(nil), ErrInvalidConfiguration)
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NotNil(t, config)
	require.NotNil(t, config.Profile)
	assert.True(t, config.Profile.IsMarried())
	assert.True(t, config.Profile.NetWorth().IsPositive())
	assert.Len(t, config.Scenarios, 3)

	assert.NoError(t, parser.ValidateConfiguration(config))
}

package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTimeline(t *testing.T) {
	defaults := domain.DefaultEstateTaxRules().Defaults
	birth := time.Date(1960, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		profile     *domain.Profile
		assumptions domain.AssumptionInputs
		expected    Timeline
	}{
		{
			name:     "all defaults",
			expected: Timeline{CurrentAge: 55, DeathAge: 93, YearOfDeath: 2063, YearsToDeath: 38},
		},
		{
			name:        "explicit ages",
			assumptions: domain.AssumptionInputs{CurrentAge: intPtr(60), DeathAge: intPtr(85)},
			expected:    Timeline{CurrentAge: 60, DeathAge: 85, YearOfDeath: 2050, YearsToDeath: 25},
		},
		{
			name:     "age from birth date",
			profile:  &domain.Profile{BirthDate: &birth},
			expected: Timeline{CurrentAge: 64, DeathAge: 93, YearOfDeath: 2054, YearsToDeath: 29},
		},
		{
			name:        "explicit age beats birth date",
			profile:     &domain.Profile{BirthDate: &birth},
			assumptions: domain.AssumptionInputs{CurrentAge: intPtr(70)},
			expected:    Timeline{CurrentAge: 70, DeathAge: 93, YearOfDeath: 2048, YearsToDeath: 23},
		},
		{
			name:     "profile longevity age",
			profile:  &domain.Profile{LongevityAge: intPtr(88)},
			expected: Timeline{CurrentAge: 55, DeathAge: 88, YearOfDeath: 2058, YearsToDeath: 33},
		},
		{
			name:        "override beats longevity age",
			profile:     &domain.Profile{LongevityAge: intPtr(88)},
			assumptions: domain.AssumptionInputs{DeathAge: intPtr(80)},
			expected:    Timeline{CurrentAge: 55, DeathAge: 80, YearOfDeath: 2050, YearsToDeath: 25},
		},
		{
			name:        "elderly client gets minimum horizon",
			assumptions: domain.AssumptionInputs{CurrentAge: intPtr(91)},
			expected:    Timeline{CurrentAge: 91, DeathAge: 96, YearOfDeath: 2030, YearsToDeath: 5},
		},
		{
			name:        "death age already passed",
			assumptions: domain.AssumptionInputs{CurrentAge: intPtr(80), DeathAge: intPtr(75)},
			expected:    Timeline{CurrentAge: 80, DeathAge: 75, YearOfDeath: 2025, YearsToDeath: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTimeline(tt.profile, tt.assumptions, defaults, testNow)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveTimeline_ZeroDefaultsFallBack(t *testing.T) {
	got := ResolveTimeline(nil, domain.AssumptionInputs{}, domain.AssumptionDefaults{}, testNow)
	assert.Equal(t, 55, got.CurrentAge)
	assert.Equal(t, 93, got.DeathAge)
}

func TestProjectTimeline(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()

	summary, err := engine.Calculate(t.Context(), domain.EstateInput{
		BaseEstateValue:  decPtr("20000000"),
		AssetComposition: &domain.AssetComposition{Taxable: dec("20000000")},
		Assumptions: domain.AssumptionInputs{
			CurrentAge:       intPtr(80),
			DeathAge:         intPtr(85),
			AppreciationRate: decPtr("5"),
		},
	})
	require.NoError(t, err)
	require.Len(t, summary.Timeline, 6)

	first := summary.Timeline[0]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 80, first.Age)
	assertDecimalEqual(t, dec("20000000"), first.EstateValue, "first year value")
	assertDecimalEqual(t, dec("13990000"), first.FederalExemption, "2025 exemption")
	assert.False(t, first.IsYearOfDeath)

	second := summary.Timeline[1]
	assertDecimalEqual(t, dec("21000000"), second.EstateValue, "one year of growth")
	assertDecimalEqual(t, dec("15000000"), second.FederalExemption, "post-reset exemption")

	last := summary.Timeline[5]
	assert.Equal(t, 2030, last.Year)
	assert.True(t, last.IsYearOfDeath)
	assertDecimalEqual(t, summary.GrossEstate, last.GrossEstate, "final row matches summary")
	assertDecimalEqual(t, summary.TotalTax, last.EstimatedTax, "final row tax matches summary")
}

func TestProjectTimeline_Disabled(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()
	engine.IncludeTimeline = false

	summary, err := engine.Calculate(t.Context(), domain.EstateInput{BaseEstateValue: decPtr("1000000")})
	require.NoError(t, err)
	assert.Empty(t, summary.Timeline)
}

package calculation

import (
	"testing"

	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeLiquidity(t *testing.T) {
	settlement := domain.DefaultEstateTaxRules().Settlement

	t.Run("shortfall", func(t *testing.T) {
		result := AnalyzeLiquidity(LiquidityInputs{
			Composition:          domain.AssetComposition{Taxable: dec("1000000"), Roth: dec("500000"), TaxDeferred: dec("3000000"), Illiquid: dec("5500000")},
			ExistingILITCoverage: dec("200000"),
			GrossEstate:          dec("10000000"),
			TotalTax:             dec("2000000"),
			TargetPercent:        dec("110"),
		}, settlement)

		assertDecimalEqual(t, dec("1500000"), result.Available, "available")
		assertDecimalEqual(t, dec("2200000"), result.Reserves.TaxReserve, "tax reserve")
		assertDecimalEqual(t, dec("500000"), result.Reserves.ProbateCost, "probate")
		assertDecimalEqual(t, dec("15000"), result.Reserves.FuneralCost, "funeral")
		assertDecimalEqual(t, dec("2715000"), result.Required, "required")
		assertDecimalEqual(t, result.Required.Sub(result.Available), result.Gap, "gap is exact difference")
		assertDecimalEqual(t, dec("1015000"), result.InsuranceNeed, "insurance need")
		assert.True(t, result.HasShortfall)
	})

	t.Run("covered", func(t *testing.T) {
		result := AnalyzeLiquidity(LiquidityInputs{
			Composition:       domain.AssetComposition{Taxable: dec("5000000")},
			ILITDeathBenefit:  dec("1000000"),
			InEstateInsurance: dec("500000"),
			GrossEstate:       dec("10000000"),
			TotalTax:          dec("1000000"),
			TargetPercent:     dec("110"),
		}, settlement)

		assertDecimalEqual(t, dec("6500000"), result.Available, "available")
		assert.True(t, result.Available.GreaterThanOrEqual(result.Required))
		assert.True(t, result.Gap.IsZero())
		assert.True(t, result.InsuranceNeed.IsZero())
		assert.False(t, result.HasShortfall)
	})

	t.Run("charitable reserve", func(t *testing.T) {
		result := AnalyzeLiquidity(LiquidityInputs{
			Composition:       domain.AssetComposition{Taxable: dec("800000")},
			CharitableBequest: dec("2000000"),
			GrossEstate:       dec("3000000"),
			TargetPercent:     dec("110"),
		}, settlement)

		assertDecimalEqual(t, dec("800000"), result.Reserves.CharitableReserve, "reserve capped at pre-reserve funds")
		assert.True(t, result.Available.IsZero())
	})

	t.Run("married doubles funeral cost", func(t *testing.T) {
		result := AnalyzeLiquidity(LiquidityInputs{
			GrossEstate:   dec("1000000"),
			TargetPercent: dec("110"),
			Married:       true,
		}, settlement)

		assertDecimalEqual(t, dec("30000"), result.Reserves.FuneralCost, "funeral")
		assertDecimalEqual(t, dec("80000"), result.Required, "required")
	})

	t.Run("empty estate", func(t *testing.T) {
		result := AnalyzeLiquidity(LiquidityInputs{TargetPercent: dec("110")}, settlement)
		assert.True(t, result.Required.IsZero())
		assert.True(t, result.Gap.IsZero())
		assert.False(t, result.HasShortfall)
	})
}

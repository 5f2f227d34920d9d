package calculation

import (
	"github.com/rpgo/estate-calculator/internal/domain"
	money "github.com/rpgo/estate-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// LiquidityInputs gathers what the liquidity analysis needs from the earlier stages
type LiquidityInputs struct {
	Composition          domain.AssetComposition
	ILITDeathBenefit     decimal.Decimal
	InEstateInsurance    decimal.Decimal
	ExistingILITCoverage decimal.Decimal
	CharitableBequest    decimal.Decimal
	GrossEstate          decimal.Decimal
	TotalTax             decimal.Decimal
	TargetPercent        decimal.Decimal
	Married              bool
}

// AnalyzeLiquidity compares liquid funds with the cash needed to settle the estate.
// Funds earmarked for charity are not available to pay taxes. An empty estate has
// nothing to settle, so it carries no funeral or probate reserve.
func AnalyzeLiquidity(in LiquidityInputs, settlement domain.SettlementRules) domain.LiquidityAnalysis {
	preReserve := money.NonNegative(in.Composition.Taxable).
		Add(money.NonNegative(in.Composition.Roth)).
		Add(money.NonNegative(in.ILITDeathBenefit)).
		Add(money.NonNegative(in.InEstateInsurance))
	charitableReserve := decimal.Min(money.NonNegative(in.CharitableBequest), preReserve)
	available := preReserve.Sub(charitableReserve)

	probate := money.NonNegative(in.GrossEstate).Mul(settlement.ProbateRate).Round(2)
	funeral := money.NonNegative(settlement.FuneralCost)
	if !in.GrossEstate.IsPositive() {
		funeral = decimal.Zero
	}
	if in.Married {
		funeral = funeral.Mul(decimal.NewFromInt(2))
	}
	settlementCosts := probate.Add(funeral)

	taxReserve := money.PercentOf(money.NonNegative(in.TotalTax), money.NonNegative(in.TargetPercent)).Round(2)
	required := taxReserve.Add(settlementCosts)

	gap := money.NonNegative(required.Sub(available))
	ilit := money.NonNegative(in.ExistingILITCoverage)

	return domain.LiquidityAnalysis{
		Available:     available,
		Required:      required,
		Gap:           gap,
		InsuranceNeed: money.NonNegative(gap.Sub(ilit)),
		TargetPercent: in.TargetPercent,
		HasShortfall:  gap.IsPositive(),
		Reserves: domain.ReserveBreakdown{
			TaxReserve:           taxReserve,
			ProbateCost:          probate,
			FuneralCost:          funeral,
			SettlementCosts:      settlementCosts,
			CharitableReserve:    charitableReserve,
			InEstateInsurance:    money.NonNegative(in.InEstateInsurance),
			ExistingILITCoverage: ilit,
		},
	}
}

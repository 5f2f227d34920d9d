package calculation

import (
	"github.com/rpgo/estate-calculator/internal/domain"
	money "github.com/rpgo/estate-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// EstateDeductions are the amounts subtracted from the gross estate
type EstateDeductions struct {
	Administrative decimal.Decimal
	Charitable     decimal.Decimal
}

// Appreciate compounds base forward from currentAge to deathAge at ratePercent per
// year. A non-positive rate or an empty span leaves the value unchanged.
func Appreciate(base decimal.Decimal, currentAge, deathAge int, ratePercent decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	base = money.NonNegative(base)
	years := deathAge - currentAge
	if years <= 0 || !ratePercent.IsPositive() {
		return base, decimal.NewFromInt(1)
	}

	growth := decimal.NewFromInt(1).Add(ratePercent.Div(decimal.NewFromInt(100)))
	factor := growth.Pow(decimal.NewFromInt(int64(years))).Round(8)
	return base.Mul(factor).Round(2), factor
}

// ProjectGrossEstate removes lifetime gifts, annual gifting and trust funding from the
// appreciated value. The result is never negative.
func ProjectGrossEstate(appreciated decimal.Decimal, s domain.StrategyInputs, yearsToDeath int) decimal.Decimal {
	gross := appreciated.
		Sub(money.NonNegative(s.LifetimeGifts)).
		Sub(money.NonNegative(s.AnnualGiftAmount).Mul(decimal.NewFromInt(int64(max(0, yearsToDeath))))).
		Sub(s.TotalTrustFunding())
	return money.NonNegative(gross)
}

// TaxableEstate subtracts administrative expenses and the charitable bequest from the
// gross estate. Each deduction is capped at what remains, so the taxable estate is
// never negative.
func TaxableEstate(gross, charitableBequest, adminRate decimal.Decimal) (decimal.Decimal, EstateDeductions) {
	gross = money.NonNegative(gross)
	admin := decimal.Min(gross.Mul(money.NonNegative(adminRate)).Round(2), gross)
	remaining := gross.Sub(admin)
	charitable := decimal.Min(money.NonNegative(charitableBequest), remaining)

	return remaining.Sub(charitable), EstateDeductions{Administrative: admin, Charitable: charitable}
}

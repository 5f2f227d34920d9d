package calculation

import (
	"github.com/rpgo/estate-calculator/internal/domain"
	money "github.com/rpgo/estate-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// EstimateHeirTax applies one flat income tax rate to inherited tax-deferred balances.
// Beneficiaries' individual brackets are not modelled.
func EstimateHeirTax(taxDeferred, netToHeirs, ratePercent decimal.Decimal) domain.HeirTaxEstimate {
	balance := money.NonNegative(taxDeferred)
	rate := money.NonNegative(ratePercent)
	incomeTax := money.PercentOf(balance, rate).Round(2)

	return domain.HeirTaxEstimate{
		TaxDeferredBalance: balance,
		AssumedRate:        rate,
		ProjectedIncomeTax: incomeTax,
		NetAfterIncomeTax:  money.NonNegative(netToHeirs.Sub(incomeTax)),
	}
}

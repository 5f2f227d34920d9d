package calculation

import (
	"regexp"

	"github.com/rpgo/estate-calculator/internal/domain"
	money "github.com/rpgo/estate-calculator/pkg/decimal"
)

// Composition buckets
const (
	BucketTaxable     = "taxable"
	BucketTaxDeferred = "tax_deferred"
	BucketRoth        = "roth"
	BucketIlliquid    = "illiquid"
)

var (
	rothPattern        = regexp.MustCompile(`(?i)roth`)
	taxDeferredPattern = regexp.MustCompile(`(?i)401k|401\(k\)|403b|403\(b\)|457|ira|tsp|traditional|pension|annuity|sep|deferred`)
	illiquidPattern    = regexp.MustCompile(`(?i)real[_\- ]?estate|property|home|house|land|business|farm|rental|collectible`)
)

// ClassifyAsset returns the composition bucket for an asset type. Roth is checked
// before the tax-deferred patterns so "roth_ira" is not treated as a traditional IRA.
func ClassifyAsset(assetType string) string {
	switch {
	case rothPattern.MatchString(assetType):
		return BucketRoth
	case taxDeferredPattern.MatchString(assetType):
		return BucketTaxDeferred
	case illiquidPattern.MatchString(assetType):
		return BucketIlliquid
	default:
		return BucketTaxable
	}
}

// DeriveComposition buckets the profile's assets by type. Non-positive values are ignored.
func DeriveComposition(assets []domain.Asset) domain.AssetComposition {
	var ac domain.AssetComposition
	for _, a := range assets {
		if !a.Value.IsPositive() {
			continue
		}
		switch ClassifyAsset(a.Type) {
		case BucketRoth:
			ac.Roth = ac.Roth.Add(a.Value)
		case BucketTaxDeferred:
			ac.TaxDeferred = ac.TaxDeferred.Add(a.Value)
		case BucketIlliquid:
			ac.Illiquid = ac.Illiquid.Add(a.Value)
		default:
			ac.Taxable = ac.Taxable.Add(a.Value)
		}
	}
	return ac
}

// sanitizeComposition clamps every bucket at zero
func sanitizeComposition(ac domain.AssetComposition) domain.AssetComposition {
	return domain.AssetComposition{
		Taxable:     money.NonNegative(ac.Taxable),
		TaxDeferred: money.NonNegative(ac.TaxDeferred),
		Roth:        money.NonNegative(ac.Roth),
		Illiquid:    money.NonNegative(ac.Illiquid),
	}
}

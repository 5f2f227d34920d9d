package calculation

import (
	"sort"

	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ExemptionResolver looks up federal and state estate tax exemptions
type ExemptionResolver struct {
	byYear             map[int]decimal.Decimal
	firstYear          int
	lastYear           int
	postResetYear      int
	postResetExemption decimal.Decimal
	states             map[string]domain.StateEstateRules
}

// StateTaxResult is the outcome of a state estate tax lookup
type StateTaxResult struct {
	State       string          `json:"state"`
	Listed      bool            `json:"listed"`
	Exemption   decimal.Decimal `json:"exemption"`
	AmountAbove decimal.Decimal `json:"amount_above_exemption"`
	Tax         decimal.Decimal `json:"tax"`
}

// NewExemptionResolver indexes the rules tables for lookup
func NewExemptionResolver(rules domain.EstateTaxRules) *ExemptionResolver {
	er := &ExemptionResolver{
		byYear:             make(map[int]decimal.Decimal, len(rules.Federal.Exemptions)),
		postResetYear:      rules.Federal.PostResetYear,
		postResetExemption: rules.Federal.PostResetExemption,
		states:             make(map[string]domain.StateEstateRules, len(rules.States)),
	}
	for _, e := range rules.Federal.Exemptions {
		er.byYear[e.Year] = e.Exemption
		if er.firstYear == 0 || e.Year < er.firstYear {
			er.firstYear = e.Year
		}
		if e.Year > er.lastYear {
			er.lastYear = e.Year
		}
	}
	// Canonical keys win over spellings that normalise onto them; the rest are
	// taken in sorted order so the result never depends on map iteration.
	codes := make([]string, 0, len(rules.States))
	for code := range rules.States {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if code == NormalizeStateCode(code) {
			er.states[code] = rules.States[code]
		}
	}
	for _, code := range codes {
		if n := NormalizeStateCode(code); n != code {
			if _, ok := er.states[n]; !ok {
				er.states[n] = rules.States[code]
			}
		}
	}
	return er
}

// NormalizeStateCode trims and upper-cases a jurisdiction code
func NormalizeStateCode(code string) string {
	return domain.NormalizeStateCode(code)
}

// FederalExemption returns the basic exclusion amount for the year of death.
// A non-negative override always wins. Years on or after the reset year use the
// post-reset baseline; years before the first table entry use the earliest entry and
// gaps fall back to the closest earlier year.
func (er *ExemptionResolver) FederalExemption(year int, override *decimal.Decimal) decimal.Decimal {
	if override != nil && !override.IsNegative() {
		return *override
	}
	if er.postResetYear > 0 && year >= er.postResetYear {
		return er.postResetExemption
	}
	if len(er.byYear) == 0 {
		return er.postResetExemption
	}
	if year < er.firstYear {
		return er.byYear[er.firstYear]
	}
	if year > er.lastYear {
		return er.byYear[er.lastYear]
	}
	for y := year; y >= er.firstYear; y-- {
		if v, ok := er.byYear[y]; ok {
			return v
		}
	}
	return er.byYear[er.firstYear]
}

// StateRules returns the rules for a jurisdiction, if it levies an estate tax
func (er *ExemptionResolver) StateRules(code string) (domain.StateEstateRules, bool) {
	st, ok := er.states[NormalizeStateCode(code)]
	return st, ok
}

// StateCodes lists the jurisdictions with an estate tax, sorted
func (er *ExemptionResolver) StateCodes() []string {
	codes := make([]string, 0, len(er.states))
	for c := range er.states {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// StateTax applies the state's marginal schedule to the taxable estate above the
// state exemption. Unlisted jurisdictions have no exemption and no tax.
func (er *ExemptionResolver) StateTax(taxableEstate decimal.Decimal, stateCode string) StateTaxResult {
	code := NormalizeStateCode(stateCode)
	result := StateTaxResult{State: code, Exemption: decimal.Zero, AmountAbove: decimal.Zero, Tax: decimal.Zero}

	st, ok := er.states[code]
	if !ok {
		return result
	}
	result.Listed = true
	result.Exemption = st.Exemption

	above := taxableEstate.Sub(st.Exemption)
	if !above.IsPositive() {
		return result
	}
	result.AmountAbove = above
	result.Tax = applyBrackets(above, st.Brackets).Round(2)
	return result
}

// applyBrackets taxes amount bracket by bracket. The highest bracket reached is
// taxed only on the portion of its span actually used.
func applyBrackets(amount decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	var total decimal.Decimal
	for _, bracket := range brackets {
		if amount.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := amount
		if !bracket.Max.IsZero() && bracket.Max.LessThan(amount) {
			upper = bracket.Max
		}
		inBracket := upper.Sub(bracket.Min)
		if inBracket.GreaterThan(decimal.Zero) {
			total = total.Add(inBracket.Mul(bracket.Rate))
		}
	}
	return total
}

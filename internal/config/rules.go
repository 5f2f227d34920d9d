package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rpgo/estate-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidRules is returned when a tax-rules document fails validation
var ErrInvalidRules = errors.New("invalid tax rules")

// LoadRules reads a tax-rules document and merges it over the built-in tables.
// Keys present in the file replace the defaults; state entries replace whole states
// and a federal exemption list replaces the whole schedule. State codes are
// normalised, so "ny" in a file replaces the built-in "NY".
func LoadRules(path string) (domain.EstateTaxRules, error) {
	rules := domain.DefaultEstateTaxRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EstateTaxRules{}, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	defaults := rules.States
	rules.States = nil
	if err := decode(path, data, &rules); err != nil {
		return domain.EstateTaxRules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	states, err := mergeStates(defaults, rules.States)
	if err != nil {
		return domain.EstateTaxRules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	rules.States = states
	if err := ValidateRules(rules); err != nil {
		return domain.EstateTaxRules{}, err
	}
	return rules, nil
}

// mergeStates overlays file entries onto the defaults under normalised codes
func mergeStates(defaults, file map[string]domain.StateEstateRules) (map[string]domain.StateEstateRules, error) {
	merged := make(map[string]domain.StateEstateRules, len(defaults)+len(file))
	for code, st := range defaults {
		merged[domain.NormalizeStateCode(code)] = st
	}
	seen := make(map[string]string, len(file))
	for code, st := range file {
		n := domain.NormalizeStateCode(code)
		if prev, ok := seen[n]; ok {
			return nil, fmt.Errorf("%w: state codes %q and %q both name %s", ErrInvalidRules, prev, code, n)
		}
		seen[n] = code
		merged[n] = st
	}
	return merged, nil
}

// ValidateRules checks rates, exemptions and bracket ordering
func ValidateRules(rules domain.EstateTaxRules) error {
	one := decimal.NewFromInt(1)
	inUnitRange := func(d decimal.Decimal) bool {
		return !d.IsNegative() && d.LessThanOrEqual(one)
	}

	if !inUnitRange(rules.Federal.Rate) {
		return fmt.Errorf("%w: federal rate %s must be between 0 and 1", ErrInvalidRules, rules.Federal.Rate)
	}
	if rules.Federal.PostResetExemption.IsNegative() {
		return fmt.Errorf("%w: post-reset exemption cannot be negative", ErrInvalidRules)
	}
	seen := make(map[int]bool, len(rules.Federal.Exemptions))
	for _, e := range rules.Federal.Exemptions {
		if e.Exemption.IsNegative() {
			return fmt.Errorf("%w: exemption for %d cannot be negative", ErrInvalidRules, e.Year)
		}
		if seen[e.Year] {
			return fmt.Errorf("%w: duplicate exemption year %d", ErrInvalidRules, e.Year)
		}
		seen[e.Year] = true
	}

	codes := make(map[string]string, len(rules.States))
	for code, st := range rules.States {
		n := domain.NormalizeStateCode(code)
		if prev, ok := codes[n]; ok {
			return fmt.Errorf("%w: state codes %q and %q both name %s", ErrInvalidRules, prev, code, n)
		}
		codes[n] = code
		if len(n) != 2 {
			return fmt.Errorf("%w: state code %q must have two letters", ErrInvalidRules, code)
		}
		if st.Exemption.IsNegative() {
			return fmt.Errorf("%w: %s exemption cannot be negative", ErrInvalidRules, code)
		}
		if err := validateBrackets(st.Brackets); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidRules, code, err)
		}
	}

	s := rules.Settlement
	if !inUnitRange(s.ProbateRate) || !inUnitRange(s.AdministrativeExpenseRate) {
		return fmt.Errorf("%w: settlement rates must be between 0 and 1", ErrInvalidRules)
	}
	if s.FuneralCost.IsNegative() {
		return fmt.Errorf("%w: funeral cost cannot be negative", ErrInvalidRules)
	}

	d := rules.Defaults
	if d.CurrentAge < 0 || d.MinimumDeathAge < 0 || d.MinimumYearsToDeath < 0 {
		return fmt.Errorf("%w: default ages cannot be negative", ErrInvalidRules)
	}
	if d.LiquidityTargetPercent.IsNegative() || d.HeirIncomeTaxRate.IsNegative() || d.HeirIncomeTaxRate.GreaterThan(maxPercentRate) {
		return fmt.Errorf("%w: default percentages out of range", ErrInvalidRules)
	}
	return nil
}

// validateBrackets requires contiguous ascending brackets with only the last one unbounded
func validateBrackets(brackets []domain.TaxBracket) error {
	one := decimal.NewFromInt(1)
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("bracket %d rate %s must be between 0 and 1", i, b.Rate)
		}
		if b.Min.IsNegative() {
			return fmt.Errorf("bracket %d min cannot be negative", i)
		}
		unbounded := b.Max.IsZero()
		if unbounded && i != len(brackets)-1 {
			return fmt.Errorf("bracket %d is unbounded but not last", i)
		}
		if !unbounded && b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("bracket %d max must exceed min", i)
		}
		if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
			return fmt.Errorf("bracket %d must start where bracket %d ends", i, i-1)
		}
	}
	return nil
}

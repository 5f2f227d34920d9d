package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/estate-calculator/internal/domain"
	money "github.com/rpgo/estate-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the estate projection pipeline
type CalculationEngine struct {
	Rules           domain.EstateTaxRules
	Exemptions      *ExemptionResolver
	TaxCalc         *EstateTaxCalculator
	IncludeTimeline bool // attach the year-by-year projection to each summary
	Logger          Logger
}

// resolvedInput is an EstateInput after clamping and defaulting
type resolvedInput struct {
	name              string
	baseValue         decimal.Decimal
	composition       domain.AssetComposition
	strategies        domain.StrategyInputs
	assumptions       domain.ResolvedAssumptions
	exemptionOverride *decimal.Decimal
	inEstateInsurance decimal.Decimal
	ilitCoverage      decimal.Decimal
}

// NewCalculationEngine creates a new calculation engine with the built-in tax tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultEstateTaxRules())
}

// NewCalculationEngineWithRules creates a new calculation engine with custom tax tables
func NewCalculationEngineWithRules(rules domain.EstateTaxRules) *CalculationEngine {
	exemptions := NewExemptionResolver(rules)
	return &CalculationEngine{
		Rules:           rules,
		Exemptions:      exemptions,
		TaxCalc:         NewEstateTaxCalculator(rules, exemptions),
		IncludeTimeline: true,
		Logger:          NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate projects the estate to the year of death and estimates taxes, liquidity
// and the heirs' net inheritance. Bad numbers never fail the calculation; they are
// clamped or defaulted. The only error is a cancelled context.
func (ce *CalculationEngine) Calculate(ctx context.Context, input domain.EstateInput) (*domain.ProjectionSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("estate projection %q: %w", input.Name, err)
	}

	now := nowFunc()
	r := ce.resolve(input, now)
	ra := r.assumptions
	ce.Logger.Debugf("projecting %q: base=%s age %d->%d (death year %d)",
		r.name, r.baseValue.StringFixed(2), ra.CurrentAge, ra.DeathAge, ra.YearOfDeath)

	appreciated, factor := Appreciate(r.baseValue, ra.CurrentAge, ra.DeathAge, ra.AppreciationRate)
	gross := ProjectGrossEstate(appreciated, r.strategies, ra.YearsToDeath)
	taxable, deductions := TaxableEstate(gross, r.strategies.CharitableBequest, ce.Rules.Settlement.AdministrativeExpenseRate)
	taxes := ce.TaxCalc.Calculate(taxable, gross, ra)
	netToHeirs := money.NonNegative(gross.Sub(taxes.TotalTax))

	ce.Logger.Debugf("%q: gross=%s taxable=%s federal=%s state=%s",
		r.name, gross.StringFixed(2), taxable.StringFixed(2), taxes.FederalTax.StringFixed(2), taxes.State.Tax.StringFixed(2))
	if !taxes.State.Listed && ra.StateCode != "" {
		ce.Logger.Debugf("%q: no estate tax table for state %s", r.name, ra.StateCode)
	}

	liquidity := AnalyzeLiquidity(LiquidityInputs{
		Composition:          r.composition,
		ILITDeathBenefit:     r.strategies.ILITDeathBenefit,
		InEstateInsurance:    r.inEstateInsurance,
		ExistingILITCoverage: r.ilitCoverage,
		CharitableBequest:    r.strategies.CharitableBequest,
		GrossEstate:          gross,
		TotalTax:             taxes.TotalTax,
		TargetPercent:        ra.LiquidityTargetPercent,
		Married:              ra.Married,
	}, ce.Rules.Settlement)
	if liquidity.HasShortfall {
		ce.Logger.Infof("%q: liquidity shortfall of %s", r.name, liquidity.Gap.StringFixed(2))
	}

	charitableImpact := decimal.Min(money.Ratio(money.NonNegative(r.strategies.CharitableBequest), gross), decimal.NewFromInt(100)).Round(2)

	summary := &domain.ProjectionSummary{
		Name:                    r.name,
		BaseEstateValue:         r.baseValue,
		AppreciatedEstateValue:  appreciated,
		AppreciationFactor:      factor,
		Composition:             r.composition,
		GrossEstate:             gross,
		AdministrativeExpenses:  deductions.Administrative,
		CharitableDeduction:     deductions.Charitable,
		TaxableEstate:           taxable,
		FederalTax:              taxes.FederalTax,
		StateTax:                taxes.State.Tax,
		StateExemption:          taxes.State.Exemption,
		TotalTax:                taxes.TotalTax,
		EffectiveTaxRate:        taxes.EffectiveRate,
		NetToHeirs:              netToHeirs,
		CharitableImpactPercent: charitableImpact,
		Liquidity:               liquidity,
		HeirTax:                 EstimateHeirTax(r.composition.TaxDeferred, netToHeirs, ra.HeirIncomeTaxRate),
		Assumptions:             ra,
	}
	if ce.IncludeTimeline {
		summary.Timeline = ce.ProjectTimeline(r, now)
	}
	return summary, nil
}

// resolve applies every default once so the pipeline stages see complete inputs
func (ce *CalculationEngine) resolve(input domain.EstateInput, now time.Time) *resolvedInput {
	defaults := ce.Rules.Defaults
	in := input.Assumptions
	profile := input.Profile

	r := &resolvedInput{
		name:              input.Name,
		strategies:        sanitizeStrategies(input.Strategies),
		exemptionOverride: exemptionOverride(in),
	}

	switch {
	case input.BaseEstateValue != nil:
		r.baseValue = money.NonNegative(*input.BaseEstateValue)
	case profile != nil:
		r.baseValue = profile.NetWorth()
	default:
		r.baseValue = decimal.Zero
	}

	switch {
	case input.AssetComposition != nil:
		r.composition = sanitizeComposition(*input.AssetComposition)
	case profile != nil:
		r.composition = DeriveComposition(profile.Assets)
	}

	r.inEstateInsurance, r.ilitCoverage = profile.InsuranceCoverage()

	timeline := ResolveTimeline(profile, in, defaults, now)

	stateCode := in.StateCode
	if stateCode == "" && profile != nil {
		stateCode = profile.State
	}

	portability := defaults.Portability
	if in.Portability != nil {
		portability = *in.Portability
	}

	ra := domain.ResolvedAssumptions{
		CurrentAge:             timeline.CurrentAge,
		DeathAge:               timeline.DeathAge,
		YearOfDeath:            timeline.YearOfDeath,
		YearsToDeath:           timeline.YearsToDeath,
		Married:                profile.IsMarried(),
		StateCode:              NormalizeStateCode(stateCode),
		Portability:            portability,
		DSUEAmount:             optionalAmount(in.DSUEAmount, decimal.Zero),
		BypassTrust:            r.strategies.BypassTrust,
		LiquidityTargetPercent: optionalAmount(in.LiquidityTargetPercent, defaults.LiquidityTargetPercent),
		AppreciationRate:       optionalAmount(in.AppreciationRate, decimal.Zero),
		HeirIncomeTaxRate:      optionalAmount(in.HeirIncomeTaxRate, defaults.HeirIncomeTaxRate),
		FederalEstateTaxRate:   ce.Rules.Federal.Rate,
	}
	ra.BaseFederalExemption = ce.Exemptions.FederalExemption(ra.YearOfDeath, r.exemptionOverride)
	ra.EffectiveFederalExemption = EffectiveFederalExemption(ra.BaseFederalExemption, ra.DSUEAmount, ra.Portability, ra.BypassTrust, ra.Married)
	r.assumptions = ra
	return r
}

// optionalAmount returns *v when set and non-negative, otherwise def
func optionalAmount(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil || v.IsNegative() {
		return def
	}
	return *v
}

// sanitizeStrategies clamps negative strategy amounts to zero
func sanitizeStrategies(s domain.StrategyInputs) domain.StrategyInputs {
	out := domain.StrategyInputs{
		LifetimeGifts:     money.NonNegative(s.LifetimeGifts),
		AnnualGiftAmount:  money.NonNegative(s.AnnualGiftAmount),
		CharitableBequest: money.NonNegative(s.CharitableBequest),
		ILITDeathBenefit:  money.NonNegative(s.ILITDeathBenefit),
		BypassTrust:       s.BypassTrust,
	}
	for _, t := range s.TrustFunding {
		out.TrustFunding = append(out.TrustFunding, domain.TrustFunding{Name: t.Name, Amount: money.NonNegative(t.Amount)})
	}
	return out
}

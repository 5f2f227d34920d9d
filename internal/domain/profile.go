package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Marital status values recognised by the estate calculator
const (
	MaritalStatusSingle   = "single"
	MaritalStatusMarried  = "married"
	MaritalStatusWidowed  = "widowed"
	MaritalStatusDivorced = "divorced"
)

// Insurance policy owners
const (
	PolicyOwnerSelf   = "self"
	PolicyOwnerSpouse = "spouse"
)

// Profile is the read-only view of a client's financial profile. It carries only
// the fields the estate projection consumes.
type Profile struct {
	MaritalStatus     string            `yaml:"marital_status" json:"marital_status" toml:"marital_status"`
	State             string            `yaml:"state" json:"state" toml:"state"`
	BirthDate         *time.Time        `yaml:"birth_date,omitempty" json:"birth_date,omitempty" toml:"birth_date,omitempty"`
	LongevityAge      *int              `yaml:"longevity_age,omitempty" json:"longevity_age,omitempty" toml:"longevity_age,omitempty"`
	Assets            []Asset           `yaml:"assets" json:"assets" toml:"assets"`
	Liabilities       []Liability       `yaml:"liabilities,omitempty" json:"liabilities,omitempty" toml:"liabilities,omitempty"`
	InsurancePolicies []InsurancePolicy `yaml:"insurance_policies,omitempty" json:"insurance_policies,omitempty" toml:"insurance_policies,omitempty"`
}

// Asset is a single holding from the profile's asset list
type Asset struct {
	Name  string          `yaml:"name" json:"name" toml:"name"`
	Type  string          `yaml:"type" json:"type" toml:"type"` // free-form, e.g. "brokerage", "roth_ira", "401k", "real_estate"
	Value decimal.Decimal `yaml:"value" json:"value" toml:"value"`
}

// Liability is an outstanding debt that reduces net worth
type Liability struct {
	Name    string          `yaml:"name" json:"name" toml:"name"`
	Balance decimal.Decimal `yaml:"balance" json:"balance" toml:"balance"`
}

// InsurancePolicy is a life-insurance policy on the client or spouse
type InsurancePolicy struct {
	Owner      string          `yaml:"owner" json:"owner" toml:"owner"` // self|spouse
	FaceAmount decimal.Decimal `yaml:"face_amount" json:"face_amount" toml:"face_amount"`
	HeldInILIT bool            `yaml:"held_in_ilit" json:"held_in_ilit" toml:"held_in_ilit"`
}

// AssetComposition splits an estate into the four tax-character buckets
type AssetComposition struct {
	Taxable     decimal.Decimal `yaml:"taxable" json:"taxable" toml:"taxable"`
	TaxDeferred decimal.Decimal `yaml:"tax_deferred" json:"tax_deferred" toml:"tax_deferred"`
	Roth        decimal.Decimal `yaml:"roth" json:"roth" toml:"roth"`
	Illiquid    decimal.Decimal `yaml:"illiquid" json:"illiquid" toml:"illiquid"`
}

// Total returns the sum of all buckets
func (ac AssetComposition) Total() decimal.Decimal {
	return ac.Taxable.Add(ac.TaxDeferred).Add(ac.Roth).Add(ac.Illiquid)
}

// IsMarried reports whether the profile describes a married client. A nil profile is single.
func (p *Profile) IsMarried() bool {
	if p == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(p.MaritalStatus), MaritalStatusMarried)
}

// NetWorth returns assets minus liabilities, floored at zero. Negative asset values are ignored.
func (p *Profile) NetWorth() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, a := range p.Assets {
		if a.Value.IsPositive() {
			total = total.Add(a.Value)
		}
	}
	for _, l := range p.Liabilities {
		if l.Balance.IsPositive() {
			total = total.Sub(l.Balance)
		}
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// InsuranceCoverage sums policy face amounts for both spouses, split by whether the
// policy sits inside the estate or in an ILIT.
func (p *Profile) InsuranceCoverage() (inEstate, inILIT decimal.Decimal) {
	inEstate, inILIT = decimal.Zero, decimal.Zero
	if p == nil {
		return
	}
	for _, pol := range p.InsurancePolicies {
		if !pol.FaceAmount.IsPositive() {
			continue
		}
		if pol.HeldInILIT {
			inILIT = inILIT.Add(pol.FaceAmount)
		} else {
			inEstate = inEstate.Add(pol.FaceAmount)
		}
	}
	return
}

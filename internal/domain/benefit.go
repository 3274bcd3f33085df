package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BenefitRequest holds the inputs of a single benefit calculation
type BenefitRequest struct {
	BirthDate time.Time       `yaml:"birth_date" json:"birth_date"`
	ClaimDate time.Time       `yaml:"claim_date" json:"claim_date"`
	Earnings  EarningsHistory `yaml:"earnings" json:"earnings"`
}

// RetirementDates are the key dates derived from a birth date and a requested claim date.
// EarliestEligible <= FullRetirement <= MaximumCreditable always holds.
type RetirementDates struct {
	BirthDate         time.Time `yaml:"birth_date" json:"birth_date"`
	AdjustedBirthDate time.Time `yaml:"adjusted_birth_date" json:"adjusted_birth_date"` // day before the birthday
	EarliestEligible  time.Time `yaml:"earliest_eligible" json:"earliest_eligible"`
	FullRetirement    time.Time `yaml:"full_retirement" json:"full_retirement"`
	MaximumCreditable time.Time `yaml:"maximum_creditable" json:"maximum_creditable"` // no credits accrue past age 70
	RequestedClaim    time.Time `yaml:"requested_claim" json:"requested_claim"`
	EffectiveClaim    time.Time `yaml:"effective_claim" json:"effective_claim"`
	FullRetirementAge int       `yaml:"full_retirement_age_months" json:"full_retirement_age_months"`
}

// EligibilityYear is the year the worker attains age 62
func (rd RetirementDates) EligibilityYear() int {
	return rd.EarliestEligible.Year()
}

// BendPoints are the AIME thresholds of the PIA formula
type BendPoints struct {
	First  decimal.Decimal `yaml:"first" json:"first"`
	Second decimal.Decimal `yaml:"second" json:"second"`
}

// FamilyMaximumBendPoints are the PIA thresholds of the family maximum formula
type FamilyMaximumBendPoints struct {
	First  decimal.Decimal `yaml:"first" json:"first"`
	Second decimal.Decimal `yaml:"second" json:"second"`
	Third  decimal.Decimal `yaml:"third" json:"third"`
}

// SurvivorBenefits are the monthly amounts payable to survivors of the worker
type SurvivorBenefits struct {
	SurvivingChild         decimal.Decimal         `yaml:"surviving_child" json:"surviving_child"`
	CaregivingSpouse       decimal.Decimal         `yaml:"caregiving_spouse" json:"caregiving_spouse"`
	NormalRetirementSpouse decimal.Decimal         `yaml:"normal_retirement_spouse" json:"normal_retirement_spouse"`
	FamilyMaximum          decimal.Decimal         `yaml:"family_maximum" json:"family_maximum"`
	FamilyMaximumBends     FamilyMaximumBendPoints `yaml:"family_maximum_bend_points" json:"family_maximum_bend_points"`
}

// BenefitResult is the outcome of one benefit calculation
type BenefitResult struct {
	AIME                 decimal.Decimal   `yaml:"aime" json:"aime"`
	PIA                  decimal.Decimal   `yaml:"pia" json:"pia"`
	COLAAdjustedPIA      decimal.Decimal   `yaml:"cola_adjusted_pia" json:"cola_adjusted_pia"`
	NormalMonthlyBenefit decimal.Decimal   `yaml:"normal_monthly_benefit" json:"normal_monthly_benefit"`
	DisabilityBenefit    *decimal.Decimal  `yaml:"disability_benefit,omitempty" json:"disability_benefit,omitempty"`
	Survivor             *SurvivorBenefits `yaml:"survivor_benefits,omitempty" json:"survivor_benefits,omitempty"`
	BendPoints           BendPoints        `yaml:"bend_points" json:"bend_points"`
	ComputationYears     int               `yaml:"computation_years" json:"computation_years"`
	EligibilityYear      int               `yaml:"eligibility_year" json:"eligibility_year"`
	Dates                RetirementDates   `yaml:"dates" json:"dates"`
}

// ClaimOption is the benefit payable when claiming in a particular month
type ClaimOption struct {
	ClaimDate            time.Time       `yaml:"claim_date" json:"claim_date"`
	AgeMonths            int             `yaml:"age_months" json:"age_months"`
	MonthsFromFRA        int             `yaml:"months_from_fra" json:"months_from_fra"` // negative when early
	NormalMonthlyBenefit decimal.Decimal `yaml:"normal_monthly_benefit" json:"normal_monthly_benefit"`
}

// AgeLabel renders AgeMonths as "66y 4m".
func (co ClaimOption) AgeLabel() string {
	return FormatAgeMonths(co.AgeMonths)
}

package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// Claim ages outside this range either pay nothing or earn no further credit.
const (
	minClaimAgeMonths = 62 * 12
	maxClaimAgeMonths = 70 * 12
)

// DelayClaim moves the claim date by a number of months (negative moves it earlier).
type DelayClaim struct {
	Months int
}

func (dc *DelayClaim) Name() string {
	return "delay_claim"
}

func (dc *DelayClaim) Description() string {
	if dc.Months < 0 {
		return fmt.Sprintf("Claim %d months earlier", -dc.Months)
	}
	return fmt.Sprintf("Delay the claim by %d months", dc.Months)
}

func (dc *DelayClaim) Validate(base *domain.Case) error {
	if base == nil {
		return NewTransformError(dc.Name(), "validate", "base case cannot be nil", nil)
	}
	if dc.Months == 0 {
		return NewTransformError(dc.Name(), "validate", "months cannot be zero", nil)
	}
	if _, err := base.Scenario.ResolveClaimDate(base.Person.BirthDate); err != nil {
		return NewTransformError(dc.Name(), "validate", "scenario has no claim date to move", err)
	}
	return nil
}

func (dc *DelayClaim) Apply(base *domain.Case) (*domain.Case, error) {
	claim, err := base.Scenario.ResolveClaimDate(base.Person.BirthDate)
	if err != nil {
		return nil, NewTransformError(dc.Name(), "apply", "resolve claim date", err)
	}

	modified := base.DeepCopy()
	moved := dateutil.AddMonthsClamped(claim, dc.Months)
	modified.Scenario.ClaimDate = &moved
	modified.Scenario.ClaimAge = nil
	return modified, nil
}

// SetClaimDate sets an explicit claim date.
type SetClaimDate struct {
	Date time.Time
}

func (scd *SetClaimDate) Name() string {
	return "set_claim_date"
}

func (scd *SetClaimDate) Description() string {
	return fmt.Sprintf("Claim on %s", scd.Date.Format("2006-01-02"))
}

func (scd *SetClaimDate) Validate(base *domain.Case) error {
	if base == nil {
		return NewTransformError(scd.Name(), "validate", "base case cannot be nil", nil)
	}
	if scd.Date.IsZero() {
		return NewTransformError(scd.Name(), "validate", "date cannot be empty", nil)
	}
	if scd.Date.Before(base.Person.BirthDate) {
		return NewTransformError(scd.Name(), "validate", "claim date is before the birth date", domain.ErrInvalidDateOrder)
	}
	return nil
}

func (scd *SetClaimDate) Apply(base *domain.Case) (*domain.Case, error) {
	modified := base.DeepCopy()
	d := scd.Date
	modified.Scenario.ClaimDate = &d
	modified.Scenario.ClaimAge = nil
	return modified, nil
}

// SetClaimAge claims at an age given in years and months.
type SetClaimAge struct {
	Years  int
	Months int
}

func (sca *SetClaimAge) Name() string {
	return "set_claim_age"
}

func (sca *SetClaimAge) Description() string {
	return fmt.Sprintf("Claim at age %d and %d months", sca.Years, sca.Months)
}

func (sca *SetClaimAge) Validate(base *domain.Case) error {
	if base == nil {
		return NewTransformError(sca.Name(), "validate", "base case cannot be nil", nil)
	}
	if sca.Months < 0 || sca.Months > 11 {
		return NewTransformError(sca.Name(), "validate", fmt.Sprintf("months must be between 0 and 11, got %d", sca.Months), nil)
	}
	total := domain.ClaimAge{Years: sca.Years, Months: sca.Months}.TotalMonths()
	if total < minClaimAgeMonths || total > maxClaimAgeMonths {
		return NewTransformError(sca.Name(), "validate", fmt.Sprintf("claim age must be between 62 and 70, got %s", domain.FormatAgeMonths(total)), nil)
	}
	return nil
}

func (sca *SetClaimAge) Apply(base *domain.Case) (*domain.Case, error) {
	modified := base.DeepCopy()
	modified.Scenario.ClaimDate = nil
	modified.Scenario.ClaimAge = &domain.ClaimAge{Years: sca.Years, Months: sca.Months}
	return modified, nil
}

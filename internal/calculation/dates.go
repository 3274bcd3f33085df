package calculation

import (
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

const (
	EarliestEligibilityAge = 62
	MaximumCreditAge       = 70
)

// NewRetirementDates derives the key claiming dates for a worker. Ages are
// attained the day before the birthday, so all dates are measured from the
// preceding day. The effective claim date never exceeds age 70.
func NewRetirementDates(birthDate, claimDate time.Time) (domain.RetirementDates, error) {
	adjusted := dateutil.PrecedingDay(birthDate)
	fraMonths, err := dateutil.FullRetirementAgeMonths(adjusted.Year())
	if err != nil {
		return domain.RetirementDates{}, domain.NewCalculationError("retirement dates", "full retirement age", err)
	}

	rd := domain.RetirementDates{
		BirthDate:         birthDate,
		AdjustedBirthDate: adjusted,
		EarliestEligible:  dateutil.AddYears(adjusted, EarliestEligibilityAge),
		FullRetirement:    dateutil.AddMonths(adjusted, fraMonths),
		MaximumCreditable: dateutil.AddYears(adjusted, MaximumCreditAge),
		RequestedClaim:    claimDate,
		EffectiveClaim:    claimDate,
		FullRetirementAge: fraMonths,
	}
	if claimDate.After(rd.MaximumCreditable) {
		rd.EffectiveClaim = rd.MaximumCreditable
	}
	return rd, nil
}

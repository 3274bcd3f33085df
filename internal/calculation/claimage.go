package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	// ReductionBandMonths is the number of early months reduced at 5/9 of 1%.
	ReductionBandMonths = 36
	// MinDelayedCreditBirthYear is the earliest birth year with a delayed credit rate.
	MinDelayedCreditBirthYear = 1933
)

// Rates are kept as exact fractions: 5/9% = 20/3600, 5/12% = 15/3600 and the
// delayed credits are n/2400 for n in 11..16.
var (
	reductionDenominator = decimal.NewFromInt(3600)
	creditDenominator    = decimal.NewFromInt(2400)
)

func earlyReductionNumerator(monthsEarly int) int64 {
	if monthsEarly <= 0 {
		return 0
	}
	first := min(monthsEarly, ReductionBandMonths)
	rest := max(monthsEarly-ReductionBandMonths, 0)
	return int64(20*first + 15*rest)
}

// EarlyReduction returns the fraction by which a benefit claimed monthsEarly
// months before full retirement age is reduced.
func EarlyReduction(monthsEarly int) decimal.Decimal {
	return decimal.NewFromInt(earlyReductionNumerator(monthsEarly)).Div(reductionDenominator)
}

// delayedCreditNumerator returns n where n/2400 is the monthly delayed retirement credit.
func delayedCreditNumerator(birthYear int) (int64, error) {
	switch {
	case birthYear < MinDelayedCreditBirthYear:
		return 0, fmt.Errorf("%w: no delayed retirement credit for %d", domain.ErrInvalidBirthYear, birthYear)
	case birthYear <= 1934:
		return 11, nil // 11/24 of 1%
	case birthYear <= 1936:
		return 12, nil // 1/2 of 1%
	case birthYear <= 1938:
		return 13, nil
	case birthYear <= 1940:
		return 14, nil // 7/12 of 1%
	case birthYear <= 1942:
		return 15, nil // 5/8 of 1%
	default:
		return 16, nil // 2/3 of 1%
	}
}

// DelayedRetirementRate returns the monthly delayed retirement credit for a
// birth year as a fraction (2/3 of 1% is 0.00666...).
func DelayedRetirementRate(birthYear int) (decimal.Decimal, error) {
	n, err := delayedCreditNumerator(birthYear)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(n).Div(creditDenominator), nil
}

// AdjustForClaimAge converts the COLA-adjusted PIA into the monthly benefit
// payable at the claim date, truncated to the whole dollar. Claims before
// the earliest eligibility date pay nothing.
func AdjustForClaimAge(dates domain.RetirementDates, colaPIA decimal.Decimal) (decimal.Decimal, error) {
	if dates.RequestedClaim.Before(dates.EarliestEligible) {
		return decimal.Zero, nil
	}

	months := dateutil.MonthsBetween(dates.EffectiveClaim, dates.FullRetirement)
	switch {
	case months < 0:
		// multiply before dividing so exact results stay exact
		kept := reductionDenominator.Sub(decimal.NewFromInt(earlyReductionNumerator(-months)))
		return money.FloorDollar(colaPIA.Mul(kept).Div(reductionDenominator)), nil
	case months > 0:
		n, err := delayedCreditNumerator(dates.AdjustedBirthDate.Year())
		if err != nil {
			return decimal.Zero, domain.NewCalculationError("claim age adjustment", "delayed retirement credit", err)
		}
		gained := creditDenominator.Add(decimal.NewFromInt(n * int64(months)))
		return money.FloorDollar(colaPIA.Mul(gained).Div(creditDenominator)), nil
	default:
		return money.FloorDollar(colaPIA), nil
	}
}

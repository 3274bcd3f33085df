package calculation

import (
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	// ElapsedYearsStartAge is the age from which elapsed years are counted.
	ElapsedYearsStartAge = 21
	// MaxElapsedYears caps the elapsed-year count; with five drop-out years
	// it yields the 35 computation years used for retirement.
	MaxElapsedYears = 40
	// MinComputationYears is the floor on the number of averaged years.
	MinComputationYears = 2
	// DropOutYears is the number of lowest years excluded for retirement and survivors.
	DropOutYears = 5
	// MaxDisabilityDropOutYears caps the disability drop-out, one year per
	// DisabilityDropOutDivisor elapsed years.
	MaxDisabilityDropOutYears = 5
	DisabilityDropOutDivisor  = 5
)

// ElapsedYears returns the whole years from the date the worker attains
// ElapsedYearsStartAge through claimDate, capped at MaxElapsedYears.
func ElapsedYears(birthDate, claimDate time.Time) int {
	start := dateutil.AddYears(birthDate, ElapsedYearsStartAge)
	months := dateutil.MonthsBetween(claimDate, start)
	if months <= 0 {
		return 0
	}
	return min(months/12, MaxElapsedYears)
}

// ComputationYears is the retirement/survivor lookback: elapsed years less
// DropOutYears, never below MinComputationYears.
func ComputationYears(elapsedYears int) int {
	return max(MinComputationYears, elapsedYears-DropOutYears)
}

// DisabilityComputationYears drops one year per five elapsed, at most five.
func DisabilityComputationYears(elapsedYears int) int {
	dropOut := min(elapsedYears/DisabilityDropOutDivisor, MaxDisabilityDropOutYears)
	return max(MinComputationYears, elapsedYears-dropOut)
}

// AverageIndexedMonthlyEarnings averages the highest lookbackYears indexed
// amounts over 12*lookbackYears months, truncated to whole dollars. Missing
// years count as zero. It returns zero for no earnings.
func AverageIndexedMonthlyEarnings(indexed domain.YearAmounts, lookbackYears int) decimal.Decimal {
	if len(indexed) == 0 || lookbackYears <= 0 {
		return decimal.Zero
	}

	values := indexed.Values()
	if len(values) > lookbackYears {
		values = values[:lookbackYears]
	}

	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	months := decimal.NewFromInt(int64(12 * lookbackYears))
	return money.FloorDollar(total.Div(months))
}

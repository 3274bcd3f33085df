package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	familyMaxMultipliers = [3]decimal.Decimal{
		decimal.NewFromInt(230),
		decimal.NewFromInt(332),
		decimal.NewFromInt(433),
	}
	familyMaxRates = [4]decimal.Decimal{
		decimal.RequireFromString("1.50"),
		decimal.RequireFromString("2.72"),
		decimal.RequireFromString("1.34"),
		decimal.RequireFromString("1.75"),
	}
	survivorRate = decimal.RequireFromString("0.75")
)

// FamilyMaximumBendPointsFor returns the family maximum bend points for a
// base-year wage index.
func FamilyMaximumBendPointsFor(awi decimal.Decimal) domain.FamilyMaximumBendPoints {
	return domain.FamilyMaximumBendPoints{
		First:  scaleToAWI(familyMaxMultipliers[0], awi),
		Second: scaleToAWI(familyMaxMultipliers[1], awi),
		Third:  scaleToAWI(familyMaxMultipliers[2], awi),
	}
}

// FamilyMaximumBendPointsForYear uses the AWI of baseYear clamped to the cutoff.
func FamilyMaximumBendPointsForYear(table WageIndex, baseYear int) (domain.FamilyMaximumBendPoints, error) {
	year := table.ClampToCutoff(baseYear)
	awi, err := table.AverageWageIndex(year)
	if err != nil {
		return domain.FamilyMaximumBendPoints{}, domain.NewCalculationError("family maximum bend points", fmt.Sprintf("base year %d", year), err)
	}
	return FamilyMaximumBendPointsFor(awi), nil
}

// FamilyMaximum applies the 150/272/134/175 percent formula to pia and
// truncates to the dime.
func FamilyMaximum(pia decimal.Decimal, bends domain.FamilyMaximumBendPoints) decimal.Decimal {
	limits := []decimal.Decimal{bends.First, bends.Second, bends.Third}

	total := decimal.Zero
	lower := decimal.Zero
	for i, upper := range limits {
		if !pia.GreaterThan(lower) {
			break
		}
		total = total.Add(familyMaxRates[i].Mul(money.Min(pia, upper).Sub(lower)))
		lower = upper
	}
	if pia.GreaterThan(bends.Third) {
		total = total.Add(familyMaxRates[3].Mul(pia.Sub(bends.Third)))
	}
	return money.FloorDime(total)
}

// SurvivorAmount is the 75% benefit of a surviving child or caregiving spouse.
func SurvivorAmount(colaPIA decimal.Decimal) decimal.Decimal {
	return money.FloorDollar(money.FloorDime(colaPIA.Mul(survivorRate)))
}

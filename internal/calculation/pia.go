package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// ReferenceAWI is the 1977 average wage the statutory multipliers are expressed in.
	ReferenceAWI = decimal.RequireFromString("9779.44")

	firstBendMultiplier  = decimal.NewFromInt(180)
	secondBendMultiplier = decimal.NewFromInt(1085)

	firstBracketRate  = decimal.RequireFromString("0.90")
	secondBracketRate = decimal.RequireFromString("0.32")
	thirdBracketRate  = decimal.RequireFromString("0.15")
)

// scaleToAWI returns round(multiplier * awi / ReferenceAWI) to the dollar.
func scaleToAWI(multiplier, awi decimal.Decimal) decimal.Decimal {
	return money.RoundDollar(multiplier.Mul(awi).Div(ReferenceAWI))
}

// BendPointsFor returns the PIA bend points for a base-year wage index.
func BendPointsFor(awi decimal.Decimal) domain.BendPoints {
	return domain.BendPoints{
		First:  scaleToAWI(firstBendMultiplier, awi),
		Second: scaleToAWI(secondBendMultiplier, awi),
	}
}

// BendPointsForYear looks up the base year's AWI (clamped to the cutoff) and
// returns its bend points.
func BendPointsForYear(table WageIndex, baseYear int) (domain.BendPoints, error) {
	year := table.ClampToCutoff(baseYear)
	awi, err := table.AverageWageIndex(year)
	if err != nil {
		return domain.BendPoints{}, domain.NewCalculationError("bend points", fmt.Sprintf("base year %d", year), err)
	}
	return BendPointsFor(awi), nil
}

// PIAFromBendPoints applies the 90/32/15 percent formula and truncates the
// result to the dime.
func PIAFromBendPoints(aime decimal.Decimal, bends domain.BendPoints) decimal.Decimal {
	pia := firstBracketRate.Mul(money.Min(aime, bends.First))
	if aime.GreaterThan(bends.First) {
		pia = pia.Add(secondBracketRate.Mul(money.Min(aime, bends.Second).Sub(bends.First)))
	}
	if aime.GreaterThan(bends.Second) {
		pia = pia.Add(thirdBracketRate.Mul(aime.Sub(bends.Second)))
	}
	return money.FloorDime(pia)
}

// PrimaryInsuranceAmount computes the PIA for aime using the bend points of
// baseYear, the year two years before eligibility.
func PrimaryInsuranceAmount(table WageIndex, aime decimal.Decimal, baseYear int) (decimal.Decimal, domain.BendPoints, error) {
	bends, err := BendPointsForYear(table, baseYear)
	if err != nil {
		return decimal.Zero, domain.BendPoints{}, err
	}
	return PIAFromBendPoints(aime, bends), bends, nil
}

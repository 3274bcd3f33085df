package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/shopspring/decimal"
)

// IndexingOptions controls how nominal earnings are prepared for indexing.
type IndexingOptions struct {
	// CapAtContributionBase clamps each year's nominal earnings to that
	// year's contribution base before the indexing factor is applied.
	CapAtContributionBase bool
}

// IndexingFactor returns 1 + max(0, AWI(base) - AWI(year)) / AWI(year).
func IndexingFactor(baseAWI, yearAWI decimal.Decimal) decimal.Decimal {
	gap := baseAWI.Sub(yearAWI)
	if !gap.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Add(gap.Div(yearAWI))
}

// IndexEarnings rescales every year of earnings to the wage level of baseYear
// (clamped to the table's cutoff). Years past the published series pass
// through at face value; years the table should cover but does not are an
// error. The input mapping is not modified.
func IndexEarnings(table WageIndex, earnings domain.YearAmounts, baseYear int, opts IndexingOptions) (domain.YearAmounts, error) {
	base := table.ClampToCutoff(baseYear)
	baseAWI, err := table.AverageWageIndex(base)
	if err != nil {
		return nil, domain.NewCalculationError("index earnings", fmt.Sprintf("base year %d", base), err)
	}

	indexed := make(domain.YearAmounts, len(earnings))
	for year, amount := range earnings {
		if table.IsFuture(year) {
			indexed[year] = amount
			continue
		}

		entry, err := table.Lookup(year)
		if err != nil {
			return nil, domain.NewCalculationError("index earnings", fmt.Sprintf("earnings year %d", year), err)
		}
		if opts.CapAtContributionBase && entry.ContributionBase.IsPositive() && amount.GreaterThan(entry.ContributionBase) {
			amount = entry.ContributionBase
		}
		indexed[year] = amount.Mul(IndexingFactor(baseAWI, entry.AverageWageIndex))
	}
	return indexed, nil
}

package calculation

import (
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/shopspring/decimal"
)

// WageIndex is the reference data the engine reads. *wageindex.Table
// satisfies it; lookups for absent years fail with
// domain.ErrMissingWageIndexData while IsFuture marks years past the series.
type WageIndex interface {
	Lookup(year int) (wageindex.Entry, error)
	AverageWageIndex(year int) (decimal.Decimal, error)
	ContributionBase(year int) (decimal.Decimal, error)
	COLARate(year int) (decimal.Decimal, error)
	CutoffYear() int
	ClampToCutoff(year int) int
	IsFuture(year int) bool
	Years() []int
}

var _ WageIndex = (*wageindex.Table)(nil)

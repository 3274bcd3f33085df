package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// EarningsRecord is the covered earnings posted for one calendar year
type EarningsRecord struct {
	Year   int             `yaml:"year" json:"year"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// EarningsHistory is a worker's earnings record, one entry per year in any order.
// The engine reads it but never modifies it.
type EarningsHistory []EarningsRecord

// YearAmounts maps a calendar year to a monetary amount
type YearAmounts map[int]decimal.Decimal

// ByYear validates the history and converts it to a year-keyed mapping.
// Years must be unique and non-negative, amounts non-negative.
func (h EarningsHistory) ByYear() (YearAmounts, error) {
	out := make(YearAmounts, len(h))
	for _, rec := range h {
		if rec.Year < 0 {
			return nil, NewCalculationError("earnings", fmt.Sprintf("year %d is negative", rec.Year), ErrInvalidEarnings)
		}
		if rec.Amount.IsNegative() {
			return nil, NewCalculationError("earnings", fmt.Sprintf("amount for %d is negative", rec.Year), ErrInvalidEarnings)
		}
		if _, dup := out[rec.Year]; dup {
			return nil, NewCalculationError("earnings", fmt.Sprintf("year %d appears more than once", rec.Year), ErrInvalidEarnings)
		}
		out[rec.Year] = rec.Amount
	}
	return out, nil
}

// Years returns the years present in the history, ascending.
func (h EarningsHistory) Years() []int {
	years := make([]int, 0, len(h))
	for _, rec := range h {
		years = append(years, rec.Year)
	}
	sort.Ints(years)
	return years
}

// Total returns the sum of all nominal earnings.
func (h EarningsHistory) Total() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range h {
		total = total.Add(rec.Amount)
	}
	return total
}

// Clone returns an independent copy of the history.
func (h EarningsHistory) Clone() EarningsHistory {
	if h == nil {
		return nil
	}
	out := make(EarningsHistory, len(h))
	copy(out, h)
	return out
}

// Years returns the mapped years, ascending.
func (ya YearAmounts) Years() []int {
	years := make([]int, 0, len(ya))
	for y := range ya {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Values returns the mapped amounts, largest first.
func (ya YearAmounts) Values() []decimal.Decimal {
	values := make([]decimal.Decimal, 0, len(ya))
	for _, v := range ya {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i].GreaterThan(values[j]) })
	return values
}

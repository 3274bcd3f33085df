package wageindex

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/shopspring/decimal"
)

// Entry is the published reference data for one calendar year
type Entry struct {
	Year             int             `yaml:"year" json:"year"`
	AverageWageIndex decimal.Decimal `yaml:"average_wage_index" json:"average_wage_index"`
	ContributionBase decimal.Decimal `yaml:"contribution_base" json:"contribution_base"`
	COLARate         decimal.Decimal `yaml:"cola_rate" json:"cola_rate"` // percent, 2.5 means 2.5%
}

// Metadata describes a wage index dataset
type Metadata struct {
	Description string `yaml:"description" json:"description"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	CutoffYear  int    `yaml:"cutoff_year" json:"cutoff_year"`
}

// Table is an immutable, year-keyed wage index series. It is safe for
// concurrent use once built.
type Table struct {
	meta    Metadata
	entries map[int]Entry
	years   []int
}

// NewTable builds a table from entries in any order. Each year may appear
// once, wage indexes must be positive and the cutoff year must be covered.
func NewTable(meta Metadata, entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("wage index table has no entries")
	}

	t := &Table{
		meta:    meta,
		entries: make(map[int]Entry, len(entries)),
		years:   make([]int, 0, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.entries[e.Year]; dup {
			return nil, fmt.Errorf("year %d appears more than once", e.Year)
		}
		if !e.AverageWageIndex.IsPositive() {
			return nil, fmt.Errorf("year %d: average wage index must be positive", e.Year)
		}
		if e.ContributionBase.IsNegative() {
			return nil, fmt.Errorf("year %d: contribution base cannot be negative", e.Year)
		}
		t.entries[e.Year] = e
		t.years = append(t.years, e.Year)
	}
	sort.Ints(t.years)

	if t.meta.CutoffYear == 0 {
		t.meta.CutoffYear = t.LastYear()
	}
	if _, ok := t.entries[t.meta.CutoffYear]; !ok {
		return nil, fmt.Errorf("cutoff year %d has no entry", t.meta.CutoffYear)
	}
	return t, nil
}

// Metadata returns the dataset description.
func (t *Table) Metadata() Metadata { return t.meta }

// Lookup returns the entry for year.
func (t *Table) Lookup(year int) (Entry, error) {
	e, ok := t.entries[year]
	if !ok {
		return Entry{}, domain.NewCalculationError("wage index lookup", fmt.Sprintf("no entry for %d", year), domain.ErrMissingWageIndexData)
	}
	return e, nil
}

// AverageWageIndex returns the AWI published for year.
func (t *Table) AverageWageIndex(year int) (decimal.Decimal, error) {
	e, err := t.Lookup(year)
	if err != nil {
		return decimal.Zero, err
	}
	return e.AverageWageIndex, nil
}

// ContributionBase returns the maximum taxable earnings for year.
func (t *Table) ContributionBase(year int) (decimal.Decimal, error) {
	e, err := t.Lookup(year)
	if err != nil {
		return decimal.Zero, err
	}
	return e.ContributionBase, nil
}

// COLARate returns the cost-of-living percentage announced for year.
func (t *Table) COLARate(year int) (decimal.Decimal, error) {
	e, err := t.Lookup(year)
	if err != nil {
		return decimal.Zero, err
	}
	return e.COLARate, nil
}

// CutoffYear is the last year whose average wage index is final.
func (t *Table) CutoffYear() int { return t.meta.CutoffYear }

// ClampToCutoff returns min(year, CutoffYear()).
func (t *Table) ClampToCutoff(year int) int {
	if year > t.meta.CutoffYear {
		return t.meta.CutoffYear
	}
	return year
}

// IsFuture reports whether year lies beyond the published series.
func (t *Table) IsFuture(year int) bool {
	return year > t.LastYear()
}

// FirstYear returns the earliest year in the table.
func (t *Table) FirstYear() int { return t.years[0] }

// LastYear returns the latest year in the table.
func (t *Table) LastYear() int { return t.years[len(t.years)-1] }

// Years returns the table's years in ascending order.
func (t *Table) Years() []int {
	out := make([]int, len(t.years))
	copy(out, t.years)
	return out
}

// Entries returns a copy of every entry in ascending year order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.years))
	for _, y := range t.years {
		out = append(out, t.entries[y])
	}
	return out
}

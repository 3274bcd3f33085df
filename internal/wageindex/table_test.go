package wageindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 1951, table.FirstYear())
	assert.Equal(t, 2025, table.LastYear())
	assert.Equal(t, 2023, table.CutoffYear())
	assert.Len(t, table.Years(), 75)

	awi, err := table.AverageWageIndex(1977)
	require.NoError(t, err)
	assert.Equal(t, "9779.44", awi.String())

	base, err := table.ContributionBase(2023)
	require.NoError(t, err)
	assert.True(t, base.Equal(decimal.NewFromInt(160200)))

	rate, err := table.COLARate(2022)
	require.NoError(t, err)
	assert.Equal(t, "8.7", rate.String())

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, table, again)
}

func TestTableYearsAreContiguousAndAscending(t *testing.T) {
	table := MustDefault()
	years := table.Years()
	for i := 1; i < len(years); i++ {
		assert.Equal(t, years[i-1]+1, years[i])
	}

	years[0] = 0
	assert.Equal(t, 1951, table.Years()[0], "Years must return a copy")
}

func TestLookupMissingYear(t *testing.T) {
	table := MustDefault()

	_, err := table.Lookup(1950)
	assert.ErrorIs(t, err, domain.ErrMissingWageIndexData)

	_, err = table.AverageWageIndex(2030)
	assert.ErrorIs(t, err, domain.ErrMissingWageIndexData)
}

func TestClampAndFuture(t *testing.T) {
	table := MustDefault()

	assert.Equal(t, 2023, table.ClampToCutoff(2027))
	assert.Equal(t, 2010, table.ClampToCutoff(2010))
	assert.True(t, table.IsFuture(2026))
	assert.False(t, table.IsFuture(2025))
	assert.False(t, table.IsFuture(1940))
}

func TestNewTableValidation(t *testing.T) {
	awi := decimal.NewFromInt(1000)

	tests := []struct {
		name    string
		meta    Metadata
		entries []Entry
	}{
		{name: "empty"},
		{
			name:    "duplicate year",
			entries: []Entry{{Year: 2000, AverageWageIndex: awi}, {Year: 2000, AverageWageIndex: awi}},
		},
		{
			name:    "zero wage index",
			entries: []Entry{{Year: 2000}},
		},
		{
			name:    "cutoff outside table",
			meta:    Metadata{CutoffYear: 2005},
			entries: []Entry{{Year: 2000, AverageWageIndex: awi}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.meta, tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestNewTableDefaultsCutoffToLastYear(t *testing.T) {
	table, err := NewTable(Metadata{}, []Entry{
		{Year: 2001, AverageWageIndex: decimal.NewFromInt(1100)},
		{Year: 2000, AverageWageIndex: decimal.NewFromInt(1000)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2001, table.CutoffYear())
	assert.Equal(t, []int{2000, 2001}, table.Years())
	assert.Equal(t, 2000, table.Entries()[0].Year)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "awi.yaml")
	data := []byte(`metadata:
  description: test
  cutoff_year: 2001
entries:
  - year: 2000
    average_wage_index: 1000
    contribution_base: 50000
    cola_rate: 2
  - year: 2001
    average_wage_index: 1100.5
    contribution_base: 52000
    cola_rate: 3.1
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test", table.Metadata().Description)

	awi, err := table.AverageWageIndex(2001)
	require.NoError(t, err)
	assert.Equal(t, "1100.5", awi.String())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("entries: [this is not"))
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesEmbedded(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Same(t, MustDefault(), table)
}

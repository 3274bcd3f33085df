package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarningsHistoryByYear(t *testing.T) {
	history := EarningsHistory{
		{Year: 2001, Amount: decimal.NewFromInt(30000)},
		{Year: 1999, Amount: decimal.NewFromInt(25000)},
		{Year: 2000, Amount: decimal.Zero},
	}

	byYear, err := history.ByYear()
	require.NoError(t, err)
	assert.Len(t, byYear, 3)
	assert.True(t, byYear[1999].Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, []int{1999, 2000, 2001}, byYear.Years())
	assert.Equal(t, []int{1999, 2000, 2001}, history.Years())
	assert.True(t, history.Total().Equal(decimal.NewFromInt(55000)))

	values := byYear.Values()
	assert.True(t, values[0].Equal(decimal.NewFromInt(30000)))
	assert.True(t, values[2].IsZero())
}

func TestEarningsHistoryByYearRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		history EarningsHistory
	}{
		{
			name: "duplicate year",
			history: EarningsHistory{
				{Year: 2000, Amount: decimal.NewFromInt(1)},
				{Year: 2000, Amount: decimal.NewFromInt(2)},
			},
		},
		{
			name:    "negative amount",
			history: EarningsHistory{{Year: 2000, Amount: decimal.NewFromInt(-1)}},
		},
		{
			name:    "negative year",
			history: EarningsHistory{{Year: -5, Amount: decimal.NewFromInt(1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.history.ByYear()
			assert.ErrorIs(t, err, ErrInvalidEarnings)
			assert.Equal(t, "INVALID_EARNINGS", ErrorCode(err))
		})
	}
}

func TestEarningsHistoryClone(t *testing.T) {
	history := EarningsHistory{{Year: 2000, Amount: decimal.NewFromInt(1)}}
	clone := history.Clone()
	clone[0].Amount = decimal.NewFromInt(99)
	assert.True(t, history[0].Amount.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, EarningsHistory(nil).Clone())
}

func TestCalculationErrorUnwraps(t *testing.T) {
	err := NewCalculationError("calculate", "birth date is required", ErrMissingInput)
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Equal(t, "calculate: birth date is required: missing input", err.Error())

	wrapped := fmt.Errorf("scenario a: %w", err)
	var calcErr *CalculationError
	require.True(t, errors.As(wrapped, &calcErr))
	assert.Equal(t, "calculate", calcErr.Operation)
	assert.Equal(t, "MISSING_INPUT", ErrorCode(wrapped))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, "INVALID_DATE_ORDER", ErrorCode(ErrInvalidDateOrder))
	assert.Equal(t, "MISSING_WAGE_INDEX_DATA", ErrorCode(fmt.Errorf("x: %w", ErrMissingWageIndexData)))
	assert.Equal(t, "INVALID_BIRTH_YEAR", ErrorCode(ErrInvalidBirthYear))
	assert.Equal(t, "INVALID_DATE", ErrorCode(NewCalculationError("request", "birth_date", ErrInvalidDate)))
	assert.Equal(t, "INTERNAL", ErrorCode(errors.New("boom")))
}

func TestScenarioResolveClaimDate(t *testing.T) {
	birth := time.Date(1960, 5, 15, 0, 0, 0, 0, time.UTC)
	explicit := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)

	s := Scenario{Name: "explicit", ClaimDate: &explicit, ClaimAge: &ClaimAge{Years: 62}}
	got, err := s.ResolveClaimDate(birth)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)

	s = Scenario{Name: "age", ClaimAge: &ClaimAge{Years: 66, Months: 4}}
	got, err = s.ResolveClaimDate(birth)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), got)

	// Jan 31 + 62y1m lands on the last day of February
	jan31 := time.Date(1960, 1, 31, 0, 0, 0, 0, time.UTC)
	s = Scenario{Name: "month end", ClaimAge: &ClaimAge{Years: 62, Months: 1}}
	got, err = s.ResolveClaimDate(jan31)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 2, 28, 0, 0, 0, 0, time.UTC), got)

	s = Scenario{Name: "leap", ClaimAge: &ClaimAge{Years: 64, Months: 1}}
	got, err = s.ResolveClaimDate(jan31)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	s = Scenario{Name: "none"}
	_, err = s.ResolveClaimDate(birth)
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestScenarioDeepCopy(t *testing.T) {
	cd := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	s := &Scenario{Name: "a", ClaimDate: &cd, ClaimAge: &ClaimAge{Years: 67}, Transforms: []string{"delay_claim:months=1"}}
	c := s.DeepCopy()
	*c.ClaimDate = cd.AddDate(1, 0, 0)
	c.ClaimAge.Years = 70
	c.Transforms[0] = "changed"

	assert.Equal(t, cd, *s.ClaimDate)
	assert.Equal(t, 67, s.ClaimAge.Years)
	assert.Equal(t, "delay_claim:months=1", s.Transforms[0])
	assert.Nil(t, (*Scenario)(nil).DeepCopy())
}

func TestConfigurationLookups(t *testing.T) {
	cfg := &Configuration{
		Persons:   []Person{{Name: "alex"}},
		Scenarios: []Scenario{{Name: "fra", Person: "alex"}},
	}
	p, ok := cfg.FindPerson("alex")
	require.True(t, ok)
	assert.Equal(t, "alex", p.Name)
	_, ok = cfg.FindPerson("sam")
	assert.False(t, ok)

	s, ok := cfg.FindScenario("fra")
	require.True(t, ok)
	assert.Equal(t, "alex", s.Person)
}

func TestFormatAgeMonths(t *testing.T) {
	assert.Equal(t, "66y 4m", FormatAgeMonths(796))
	assert.Equal(t, "62y 0m", ClaimOption{AgeMonths: 744}.AgeLabel())
	assert.Equal(t, 804, ClaimAge{Years: 67}.TotalMonths())
}

func TestCaseDeepCopy(t *testing.T) {
	c := &Case{
		Person:   Person{Name: "alex", Earnings: EarningsHistory{{Year: 2000, Amount: decimal.NewFromInt(10)}}},
		Scenario: Scenario{Name: "s", ClaimAge: &ClaimAge{Years: 62}},
	}
	cp := c.DeepCopy()
	cp.Person.Earnings[0].Amount = decimal.NewFromInt(20)
	cp.Scenario.ClaimAge.Years = 70

	assert.True(t, c.Person.Earnings[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 62, c.Scenario.ClaimAge.Years)
	assert.Nil(t, (*Case)(nil).DeepCopy())
}

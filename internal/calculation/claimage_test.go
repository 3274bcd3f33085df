package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetirementDates(t *testing.T) {
	tests := []struct {
		name      string
		birth     time.Time
		claim     time.Time
		earliest  time.Time
		full      time.Time
		max       time.Time
		effective time.Time
		fraMonths int
	}{
		{
			name:      "born 1960",
			birth:     date(1960, 5, 15),
			claim:     date(2027, 5, 15),
			earliest:  date(2022, 5, 14),
			full:      date(2027, 5, 14),
			max:       date(2030, 5, 14),
			effective: date(2027, 5, 15),
			fraMonths: 804,
		},
		{
			name:      "January 1 birthday belongs to the prior year",
			birth:     date(1943, 1, 1),
			claim:     date(2015, 1, 1),
			earliest:  date(2004, 12, 31),
			full:      date(2008, 10, 31),
			max:       date(2012, 12, 31),
			effective: date(2012, 12, 31),
			fraMonths: 790,
		},
		{
			name:      "born 1956",
			birth:     date(1956, 8, 20),
			claim:     date(2019, 1, 1),
			earliest:  date(2018, 8, 19),
			full:      date(2022, 12, 19),
			max:       date(2026, 8, 19),
			effective: date(2019, 1, 1),
			fraMonths: 796,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd, err := NewRetirementDates(tt.birth, tt.claim)
			require.NoError(t, err)
			assert.Equal(t, tt.earliest, rd.EarliestEligible)
			assert.Equal(t, tt.full, rd.FullRetirement)
			assert.Equal(t, tt.max, rd.MaximumCreditable)
			assert.Equal(t, tt.effective, rd.EffectiveClaim)
			assert.Equal(t, tt.claim, rd.RequestedClaim)
			assert.Equal(t, tt.fraMonths, rd.FullRetirementAge)
			assert.False(t, rd.FullRetirement.Before(rd.EarliestEligible))
			assert.False(t, rd.MaximumCreditable.Before(rd.FullRetirement))
		})
	}
}

func TestNewRetirementDatesInvalidBirthYear(t *testing.T) {
	_, err := NewRetirementDates(date(1900, 1, 1), date(1970, 1, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidBirthYear)
}

func TestEarlyReduction(t *testing.T) {
	assert.True(t, EarlyReduction(0).IsZero())
	assert.True(t, EarlyReduction(36).Equal(dec("0.2")), "36 x 5/9 of 1%")
	assert.True(t, EarlyReduction(60).Equal(dec("0.3")), "plus 24 x 5/12 of 1%")
}

func TestDelayedRetirementRate(t *testing.T) {
	tests := []struct {
		birthYear int
		perYear   string // twelve months of credit
	}{
		{birthYear: 1933, perYear: "0.055"},
		{birthYear: 1936, perYear: "0.06"},
		{birthYear: 1940, perYear: "0.07"},
		{birthYear: 1942, perYear: "0.075"},
		{birthYear: 1943, perYear: "0.08"},
		{birthYear: 1990, perYear: "0.08"},
	}
	for _, tt := range tests {
		rate, err := DelayedRetirementRate(tt.birthYear)
		require.NoError(t, err)
		assert.True(t, dec(tt.perYear).Equal(rate.Mul(dec("12")).Round(6)), "birth year %d: %s", tt.birthYear, rate)
	}

	_, err := DelayedRetirementRate(1932)
	assert.ErrorIs(t, err, domain.ErrInvalidBirthYear)
}

func TestAdjustForClaimAge(t *testing.T) {
	// FRA 66 exactly: 2016-01-01; earliest 2012-01-01; max 2020-01-01
	birth := date(1950, 1, 2)
	pia := dec("1000")

	tests := []struct {
		name  string
		claim time.Time
		want  string
	}{
		{name: "before earliest eligibility", claim: date(2011, 12, 31), want: "0"},
		{name: "at earliest eligibility", claim: date(2012, 1, 1), want: "750"},
		{name: "40 months early", claim: date(2012, 9, 1), want: "783"},
		{name: "at full retirement", claim: date(2016, 1, 20), want: "1000"},
		{name: "40 months late", claim: date(2019, 5, 1), want: "1266"},
		{name: "past age 70 earns no more credit", claim: date(2023, 1, 1), want: "1320"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd, err := NewRetirementDates(birth, tt.claim)
			require.NoError(t, err)
			got, err := AdjustForClaimAge(rd, pia)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAdjustForClaimAgeAtFRALeavesPIAUnchanged(t *testing.T) {
	rd, err := NewRetirementDates(date(1960, 5, 15), date(2027, 5, 14))
	require.NoError(t, err)
	got, err := AdjustForClaimAge(rd, dec("3081.5"))
	require.NoError(t, err)
	assert.Equal(t, "3081", got.String())
}

func TestAdjustForClaimAgeExactReductionStaysExact(t *testing.T) {
	rd, err := NewRetirementDates(date(1950, 1, 2), date(2015, 12, 1))
	require.NoError(t, err)
	got, err := AdjustForClaimAge(rd, dec("3600"))
	require.NoError(t, err)
	assert.Equal(t, "3580", got.String(), "one month early is exactly 20/3600")
}

func TestAdjustForClaimAgeDelayedCreditNeedsSchedule(t *testing.T) {
	rd, err := NewRetirementDates(date(1930, 6, 2), date(1997, 6, 1))
	require.NoError(t, err)
	_, err = AdjustForClaimAge(rd, dec("1000"))
	assert.ErrorIs(t, err, domain.ErrInvalidBirthYear)

	rd, err = NewRetirementDates(date(1930, 6, 2), date(1993, 6, 1))
	require.NoError(t, err)
	got, err := AdjustForClaimAge(rd, dec("1000"))
	require.NoError(t, err)
	assert.Equal(t, "866", got.String(), "early claims do not need the credit schedule")
}

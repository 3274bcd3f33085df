package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseCase() *domain.Case {
	claim := time.Date(2027, 5, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Case{
		Person: domain.Person{
			Name:      "alex",
			BirthDate: time.Date(1960, 5, 15, 0, 0, 0, 0, time.UTC),
			Earnings: domain.EarningsHistory{
				{Year: 2019, Amount: decimal.NewFromInt(50000)},
				{Year: 2020, Amount: decimal.NewFromInt(52000)},
				{Year: 2021, Amount: decimal.NewFromInt(54000)},
			},
		},
		Scenario: domain.Scenario{Name: "base", Person: "alex", ClaimDate: &claim},
	}
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := baseCase()
	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, result)
	assert.NotSame(t, base, result, "should return a copy")

	_, err = ApplyTransforms(nil, nil)
	assert.Error(t, err)

	_, err = ApplyTransforms(base, []CaseTransform{nil})
	assert.Error(t, err)
}

func TestDelayClaim(t *testing.T) {
	base := baseCase()

	result, err := ApplyTransforms(base, []CaseTransform{&DelayClaim{Months: 12}})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2028, 5, 15, 0, 0, 0, 0, time.UTC), *result.Scenario.ClaimDate)
	assert.Equal(t, time.Date(2027, 5, 15, 0, 0, 0, 0, time.UTC), *base.Scenario.ClaimDate, "base must not change")

	// claim ages resolve before moving
	base.Scenario.ClaimDate = nil
	base.Scenario.ClaimAge = &domain.ClaimAge{Years: 62}
	result, err = ApplyTransforms(base, []CaseTransform{&DelayClaim{Months: -1}})
	require.NoError(t, err)
	assert.Nil(t, result.Scenario.ClaimAge)
	assert.Equal(t, time.Date(2022, 4, 15, 0, 0, 0, 0, time.UTC), *result.Scenario.ClaimDate)

	assert.Contains(t, (&DelayClaim{Months: -3}).Description(), "3 months earlier")

	_, err = ApplyTransforms(baseCase(), []CaseTransform{&DelayClaim{}})
	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "delay_claim", te.TransformName)
}

func TestSetClaimDateAndAge(t *testing.T) {
	base := baseCase()
	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	result, err := ApplyTransforms(base, []CaseTransform{
		&SetClaimAge{Years: 70},
		&SetClaimDate{Date: date},
	})
	require.NoError(t, err)
	assert.Equal(t, date, *result.Scenario.ClaimDate)
	assert.Nil(t, result.Scenario.ClaimAge)

	result, err = ApplyTransforms(base, []CaseTransform{&SetClaimAge{Years: 66, Months: 6}})
	require.NoError(t, err)
	assert.Nil(t, result.Scenario.ClaimDate)
	assert.Equal(t, 798, result.Scenario.ClaimAge.TotalMonths())

	_, err = ApplyTransforms(base, []CaseTransform{&SetClaimDate{Date: time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)}})
	assert.ErrorIs(t, err, domain.ErrInvalidDateOrder)

	for _, bad := range []*SetClaimAge{{Years: 61, Months: 11}, {Years: 70, Months: 1}, {Years: 65, Months: 12}} {
		assert.Error(t, bad.Validate(base), bad.Description())
	}
}

func TestSetEarnings(t *testing.T) {
	base := baseCase()

	result, err := ApplyTransforms(base, []CaseTransform{
		&SetEarnings{Year: 2020, Amount: decimal.NewFromInt(1)},
		&SetEarnings{Year: 2022, Amount: decimal.NewFromInt(60000)},
	})
	require.NoError(t, err)
	require.Len(t, result.Person.Earnings, 4)
	assert.True(t, result.Person.Earnings[1].Amount.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 2022, result.Person.Earnings[3].Year)
	assert.True(t, base.Person.Earnings[1].Amount.Equal(decimal.NewFromInt(52000)), "base must not change")

	_, err = ApplyTransforms(base, []CaseTransform{&SetEarnings{Year: 2020, Amount: decimal.NewFromInt(-5)}})
	assert.ErrorIs(t, err, domain.ErrInvalidEarnings)
}

func TestStopWork(t *testing.T) {
	base := baseCase()

	result, err := ApplyTransforms(base, []CaseTransform{&StopWork{Year: 2020}})
	require.NoError(t, err)
	assert.Equal(t, []int{2019}, result.Person.Earnings.Years())
	assert.Len(t, base.Person.Earnings, 3)

	_, err = ApplyTransforms(base, []CaseTransform{&StopWork{Year: 2000}})
	assert.ErrorIs(t, err, domain.ErrMissingInput)

	_, err = ApplyTransforms(base, []CaseTransform{&StopWork{Year: 1950}})
	assert.Error(t, err)
}

func TestTransformError(t *testing.T) {
	err := NewTransformError("stop_work", "apply", "nothing left", domain.ErrMissingInput)
	assert.Equal(t, "transform stop_work (apply): nothing left: missing input", err.Error())
	assert.ErrorIs(t, err, domain.ErrMissingInput)

	err = NewTransformError("stop_work", "validate", "bad year", nil)
	assert.Equal(t, "transform stop_work (validate): bad year", err.Error())
}

package components

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
)

// sampleOptions builds a 62-to-70 sweep with FRA at 67
func sampleOptions() []domain.ClaimOption {
	start := time.Date(2022, 5, 14, 0, 0, 0, 0, time.UTC)
	var opts []domain.ClaimOption
	for i := 0; i <= 96; i++ {
		opts = append(opts, domain.ClaimOption{
			ClaimDate:            start.AddDate(0, i, 0),
			AgeMonths:            744 + i,
			MonthsFromFRA:        i - 60,
			NormalMonthlyBenefit: decimal.NewFromInt(int64(2000 + 10*i)),
		})
	}
	return opts
}

func TestClaimSlider(t *testing.T) {
	s := NewClaimSlider(sampleOptions())
	o, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, o.MonthsFromFRA, "starts at full retirement")

	s.Move(-1000)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 0.0, s.Percentage())
	s.Move(1000)
	assert.Equal(t, 96, s.Index)
	assert.Equal(t, 1.0, s.Percentage())

	assert.True(t, s.SelectDate(time.Date(2023, 9, 20, 0, 0, 0, 0, time.UTC)))
	o, _ = s.Selected()
	assert.Equal(t, time.Date(2023, 9, 14, 0, 0, 0, 0, time.UTC), o.ClaimDate)
	assert.False(t, s.SelectDate(time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC)))

	out := s.WithWidth(20).SetFocused(true).Render()
	assert.Contains(t, out, "Claim age")
	assert.Contains(t, out, "62y 0m")
	assert.Contains(t, out, "e to type a date")
}

func TestClaimSliderEmpty(t *testing.T) {
	s := NewClaimSlider(nil)
	s.Move(3)
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Contains(t, s.Render(), "No claim options")
}

func TestFRALabel(t *testing.T) {
	assert.Equal(t, "at FRA", fraLabel(0))
	assert.Equal(t, "12 months before FRA", fraLabel(-12))
	assert.Equal(t, "3 months after FRA", fraLabel(3))
}

func TestBenefitChart(t *testing.T) {
	c := NewBenefitChart("By age", sampleOptions()).WithWidth(30)
	rows := c.Rows()
	assert.Len(t, rows, 9)
	assert.Equal(t, 744, rows[0].AgeMonths)
	assert.Equal(t, 840, rows[8].AgeMonths)

	out := c.Render()
	assert.Contains(t, out, "By age")
	assert.Contains(t, out, "70y 0m")
	assert.Contains(t, out, "$2,960")

	assert.Contains(t, NewBenefitChart("", nil).Render(), "No data")
}

func TestMetricCard(t *testing.T) {
	card := NewMoneyCard("PIA", decimal.RequireFromString("2680.10")).
		WithChange(decimal.NewFromInt(2000), decimal.NewFromInt(2500)).
		WithDescription("eligibility 2022")
	require.NotNil(t, card.Trend)
	assert.False(t, card.Trend.IsPositive)
	assert.Equal(t, "-$500", card.Trend.Change)

	out := card.Render()
	assert.Contains(t, out, "PIA")
	assert.Contains(t, out, "$2,680")
	assert.Contains(t, out, "eligibility 2022")

	same := NewMetricCard("x", "1").WithChange(decimal.NewFromInt(5), decimal.NewFromInt(5))
	assert.Nil(t, same.Trend)

	grid := MetricGrid([]*MetricCard{NewMetricCard("a", "1"), NewMetricCard("b", "2"), NewMetricCard("c", "3")}, 2)
	assert.Contains(t, grid, "a")
	assert.Contains(t, grid, "c")
	assert.Equal(t, "", MetricGrid(nil, 2))
}

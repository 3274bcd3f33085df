package compare

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func scenarioResult(name string, claim time.Time, monthly int64) *domain.ScenarioResult {
	return &domain.ScenarioResult{
		Name:   name,
		Person: "alex",
		Result: &domain.BenefitResult{
			NormalMonthlyBenefit: decimal.NewFromInt(monthly),
			Dates: domain.RetirementDates{
				BirthDate:        date(1960, 5, 15),
				EarliestEligible: date(2022, 5, 14),
				FullRetirement:   date(2027, 5, 14),
				EffectiveClaim:   claim,
			},
		},
	}
}

func testConfig() *domain.Configuration {
	alex := domain.Person{Name: "alex", BirthDate: date(1960, 5, 15)}
	for y := 1982; y <= 2021; y++ {
		alex.Earnings = append(alex.Earnings, domain.EarningsRecord{Year: y, Amount: decimal.NewFromInt(40000)})
	}
	fra := date(2027, 5, 14)
	return &domain.Configuration{
		Persons: []domain.Person{alex, {Name: "sam", BirthDate: date(1961, 1, 2), Earnings: alex.Earnings}},
		Scenarios: []domain.Scenario{
			{Name: "fra", Person: "alex", ClaimDate: &fra},
			{Name: "seventy", Person: "alex", ClaimAge: &domain.ClaimAge{Years: 70}},
			{Name: "sam early", Person: "sam", ClaimAge: &domain.ClaimAge{Years: 62}},
			{Name: "ghost", Person: "nobody", ClaimAge: &domain.ClaimAge{Years: 62}},
		},
	}
}

func newTestEngine(t *testing.T) *CompareEngine {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return date(2025, 6, 1) })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })
	return NewCompareEngine(calculation.NewCalculationEngine(wageindex.MustDefault(), calculation.Options{}))
}

func TestCalculateMetrics(t *testing.T) {
	mc := NewMetricsCalculator(85)
	assert.Equal(t, 1020, mc.LifeExpectancyMonths)
	assert.Equal(t, DefaultLifeExpectancyYears*12, NewMetricsCalculator(0).LifeExpectancyMonths)

	base := mc.CalculateMetrics(scenarioResult("fra", date(2027, 5, 14), 3081))
	assert.Equal(t, "fra", base.ScenarioName)
	assert.Equal(t, 804, base.ClaimAgeMonths)
	assert.True(t, base.LifetimeBenefits.Equal(decimal.NewFromInt(3081*216)), base.LifetimeBenefits.String())
}

func TestCalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator(85)
	base := mc.CalculateMetrics(scenarioResult("fra", date(2027, 5, 14), 3081))

	later, err := mc.CalculateComparison(mc.CalculateMetrics(scenarioResult("seventy", date(2030, 5, 14), 3821)), base)
	require.NoError(t, err)
	assert.Equal(t, 840, later.ClaimAgeMonths)
	assert.True(t, later.LifetimeBenefits.Equal(decimal.NewFromInt(687780)))
	assert.True(t, later.MonthlyDiffFromBase.Equal(decimal.NewFromInt(740)))
	assert.True(t, later.LifetimeDiffFromBase.Equal(decimal.NewFromInt(22284)))
	assert.Equal(t, "3.3", later.LifetimePctFromBase.StringFixed(1))
	require.NotNil(t, later.BreakEven)
	assert.True(t, later.BreakEven.Found)
	assert.Equal(t, 990, later.BreakEven.CrossoverAge)
	assert.Equal(t, date(2042, 11, 14), later.BreakEven.CrossoverDate)

	// An earlier alternative is the earlier side of the break-even
	early, err := mc.CalculateComparison(mc.CalculateMetrics(scenarioResult("sixty-two", date(2022, 5, 14), 2157)), base)
	require.NoError(t, err)
	require.NotNil(t, early.BreakEven)
	assert.Equal(t, 744, early.BreakEven.Earlier.AgeMonths)
	assert.Equal(t, 945, early.BreakEven.CrossoverAge)
	assert.True(t, early.MonthlyDiffFromBase.Equal(decimal.NewFromInt(-924)))

	same, err := mc.CalculateComparison(mc.CalculateMetrics(scenarioResult("same", date(2027, 5, 20), 3081)), base)
	require.NoError(t, err)
	assert.Nil(t, same.BreakEven)
	assert.True(t, same.LifetimeDiffFromBase.IsZero())
}

func TestGenerateRecommendations(t *testing.T) {
	mc := NewMetricsCalculator(85)
	base := mc.CalculateMetrics(scenarioResult("fra", date(2027, 5, 14), 3081))

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: &base}))

	alt, err := mc.CalculateComparison(mc.CalculateMetrics(scenarioResult("seventy", date(2030, 5, 14), 3821)), base)
	require.NoError(t, err)
	recs := GenerateRecommendations(&ComparisonSet{
		LifeExpectancyMonths: mc.LifeExpectancyMonths,
		BaseResult:           &base,
		AlternativeResults:   []ComparisonResult{alt},
	})
	require.Len(t, recs, 3)
	assert.Equal(t, "Most Lifetime Benefits: seventy pays $22,284 more than the base by age 85y 0m", recs[0])
	assert.Equal(t, "Highest Monthly Benefit: seventy pays $740 a month more than the base", recs[1])
	assert.Equal(t, "Break-even: seventy and the base cross at age 82y 6m (2042-11-14)", recs[2])

	// At 75 the earlier claim wins
	short := NewMetricsCalculator(75)
	base = short.CalculateMetrics(scenarioResult("fra", date(2027, 5, 14), 3081))
	alt, err = short.CalculateComparison(short.CalculateMetrics(scenarioResult("seventy", date(2030, 5, 14), 3821)), base)
	require.NoError(t, err)
	recs = GenerateRecommendations(&ComparisonSet{
		LifeExpectancyMonths: short.LifeExpectancyMonths,
		BaseResult:           &base,
		AlternativeResults:   []ComparisonResult{alt},
	})
	assert.Equal(t, "Most Lifetime Benefits: the base scenario, assuming death at 75y 0m", recs[0])
}

func TestCompareEngine_Compare(t *testing.T) {
	ce := newTestEngine(t)

	compSet, err := ce.Compare(context.Background(), testConfig(), CompareOptions{
		BaseScenarioName:    "fra",
		Templates:           []string{"claim_62", "claim_70"},
		LifeExpectancyYears: 85,
	})
	require.NoError(t, err)

	assert.Equal(t, "fra", compSet.BaseScenarioName)
	assert.True(t, compSet.BaseResult.MonthlyBenefit.Equal(decimal.NewFromInt(3081)))
	require.Len(t, compSet.AlternativeResults, 2)

	early := compSet.AlternativeResults[0]
	assert.Equal(t, "fra_claim_62", early.ScenarioName)
	assert.Equal(t, "Claim at the earliest eligibility age", early.Description)
	assert.Equal(t, 744, early.ClaimAgeMonths)
	assert.True(t, early.MonthlyBenefit.Equal(decimal.NewFromInt(2157)), early.MonthlyBenefit.String())
	require.NotNil(t, early.BreakEven)
	assert.Equal(t, 945, early.BreakEven.CrossoverAge)

	late := compSet.AlternativeResults[1]
	assert.Equal(t, "fra_claim_70", late.ScenarioName)
	assert.Equal(t, 840, late.ClaimAgeMonths)
	assert.True(t, late.MonthlyBenefit.Equal(decimal.NewFromInt(3821)), late.MonthlyBenefit.String())
	assert.True(t, late.LifetimeDiffFromBase.Equal(decimal.NewFromInt(22284)))

	assert.Contains(t, compSet.Recommendations[0], "fra_claim_70")
}

func TestCompareEngine_CompareWithBaseTransforms(t *testing.T) {
	ce := newTestEngine(t)
	cfg := testConfig()
	cfg.Scenarios = append(cfg.Scenarios, domain.Scenario{
		Name:       "pinned",
		Person:     "alex",
		ClaimAge:   &domain.ClaimAge{Years: 67},
		Transforms: []string{"set_claim_date:date=2027-05-15"},
	})

	compSet, err := ce.Compare(context.Background(), cfg, CompareOptions{
		BaseScenarioName: "pinned",
		Templates:        []string{"claim_62", "claim_70", "delay_1yr"},
	})
	require.NoError(t, err)
	assert.Equal(t, date(2027, 5, 15), compSet.BaseResult.ClaimDate)
	require.Len(t, compSet.AlternativeResults, 3)

	early, late, delayed := compSet.AlternativeResults[0], compSet.AlternativeResults[1], compSet.AlternativeResults[2]
	assert.Equal(t, 744, early.ClaimAgeMonths)
	assert.True(t, early.MonthlyBenefit.Equal(decimal.NewFromInt(2157)), early.MonthlyBenefit.String())
	assert.Equal(t, 840, late.ClaimAgeMonths)
	assert.True(t, late.MonthlyBenefit.Equal(decimal.NewFromInt(3821)), late.MonthlyBenefit.String())
	assert.Equal(t, date(2028, 5, 15), delayed.ClaimDate, "delay counts from the transformed claim date")
	assert.Equal(t, 816, delayed.ClaimAgeMonths)

	// The configuration is left as it was
	pinned, _ := cfg.FindScenario("pinned")
	assert.Equal(t, []string{"set_claim_date:date=2027-05-15"}, pinned.Transforms)
}

func TestCompareEngine_CompareErrors(t *testing.T) {
	ce := newTestEngine(t)
	ctx := context.Background()

	_, err := ce.Compare(ctx, testConfig(), CompareOptions{BaseScenarioName: "missing"})
	assert.ErrorContains(t, err, "scenario missing not found")

	_, err = ce.Compare(ctx, testConfig(), CompareOptions{BaseScenarioName: "fra", Templates: []string{"claim_99"}})
	assert.ErrorContains(t, err, "template claim_99 not found")

	_, err = ce.Compare(ctx, testConfig(), CompareOptions{BaseScenarioName: "ghost"})
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	ce := newTestEngine(t)
	ctx := context.Background()

	compSet, err := ce.CompareScenarios(ctx, testConfig(), "fra", []string{"seventy"}, 90)
	require.NoError(t, err)
	assert.Equal(t, 1080, compSet.LifeExpectancyMonths)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, "seventy", compSet.AlternativeResults[0].ScenarioName)
	assert.True(t, compSet.AlternativeResults[0].LifetimeDiffFromBase.IsPositive())

	_, err = ce.CompareScenarios(ctx, testConfig(), "fra", []string{"sam early"}, 85)
	assert.ErrorContains(t, err, "is for sam, not alex")

	_, err = ce.CompareScenarios(ctx, testConfig(), "fra", []string{"nope"}, 85)
	assert.ErrorContains(t, err, "scenario nope not found")
}

func testSet(t *testing.T) *ComparisonSet {
	t.Helper()
	mc := NewMetricsCalculator(85)
	base := mc.CalculateMetrics(scenarioResult("fra", date(2027, 5, 14), 3081))
	alt, err := mc.CalculateComparison(mc.CalculateMetrics(scenarioResult("seventy", date(2030, 5, 14), 3821)), base)
	require.NoError(t, err)
	alt.Description = "Claim at 70"
	compSet := &ComparisonSet{
		BaseScenarioName:     "fra",
		LifeExpectancyMonths: mc.LifeExpectancyMonths,
		BaseResult:           &base,
		AlternativeResults:   []ComparisonResult{alt},
		ConfigPath:           "scenarios.yaml",
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func TestTableFormatter(t *testing.T) {
	tf := &TableFormatter{}
	out := tf.Format(testSet(t))

	assert.Contains(t, out, "CLAIMING SCENARIO COMPARISON")
	assert.Contains(t, out, "Base Scenario: fra")
	assert.Contains(t, out, "Configuration: scenarios.yaml")
	assert.Contains(t, out, "fra (base)")
	assert.Contains(t, out, "$665.5K")
	assert.Contains(t, out, "$687.8K")
	assert.Contains(t, out, "Monthly Benefit:   +$740.00")
	assert.Contains(t, out, "Lifetime Benefits: +$22,284 (3.3%)")
	assert.Contains(t, out, "Break-even:        age 82y 6m (2042-11-14)")
	assert.Contains(t, out, "RECOMMENDATIONS")

	assert.Equal(t, "Base: fra | seventy: +$22.3K", tf.FormatCompact(testSet(t)))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "$1.25M", tf.formatDecimal(decimal.NewFromInt(1250000)))
	assert.Equal(t, "$999", tf.formatDecimal(decimal.NewFromInt(999)))
}

func TestCSVFormatter(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(testSet(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,Claim Date"))
	assert.Equal(t, "fra,base,2027-05-14,804,3081.00,665496.00,0.00,0.00,0.00,,", lines[1])
	assert.Equal(t, "seventy,alternative,2030-05-14,840,3821.00,687780.00,740.00,22284.00,3.35,990,2042-11-14", lines[2])
}

func TestJSONFormatter(t *testing.T) {
	compSet := testSet(t)
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(compSet)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "fra", decoded["baseScenarioName"])
		assert.Len(t, decoded["alternativeResults"], 1)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))
	}
}

package compare

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/breakeven"
	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/shopspring/decimal"
)

// DefaultLifeExpectancyYears is the assumed age at death when none is given
const DefaultLifeExpectancyYears = 85

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description,omitempty"`
	Result       *domain.ScenarioResult `json:"-"`

	// Key Metrics
	ClaimDate        time.Time       `json:"claimDate"`
	ClaimAgeMonths   int             `json:"claimAgeMonths"`
	MonthlyBenefit   decimal.Decimal `json:"monthlyBenefit"`
	LifetimeBenefits decimal.Decimal `json:"lifetimeBenefits"` // nominal, through the life expectancy

	// Comparison to Base
	MonthlyDiffFromBase  decimal.Decimal           `json:"monthlyDiffFromBase"`
	LifetimeDiffFromBase decimal.Decimal           `json:"lifetimeDiffFromBase"`
	LifetimePctFromBase  decimal.Decimal           `json:"lifetimePctFromBase"`
	BreakEven            *breakeven.BreakEvenPoint `json:"breakEven,omitempty"` // nil when both claim in the same month
}

// ClaimOption returns the result as a sweep option, for break-even maths
func (cr ComparisonResult) ClaimOption() domain.ClaimOption {
	return domain.ClaimOption{
		ClaimDate:            cr.ClaimDate,
		AgeMonths:            cr.ClaimAgeMonths,
		NormalMonthlyBenefit: cr.MonthlyBenefit,
	}
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName     string             `json:"baseScenarioName"`
	LifeExpectancyMonths int                `json:"lifeExpectancyMonths"`
	BaseResult           *ComparisonResult  `json:"baseResult"`
	AlternativeResults   []ComparisonResult `json:"alternativeResults"`
	Recommendations      []string           `json:"recommendations"`
	ConfigPath           string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from scenario results
type MetricsCalculator struct {
	LifeExpectancyMonths int
}

// NewMetricsCalculator creates a metrics calculator assuming death at the
// given age in years
func NewMetricsCalculator(lifeExpectancyYears int) *MetricsCalculator {
	if lifeExpectancyYears <= 0 {
		lifeExpectancyYears = DefaultLifeExpectancyYears
	}
	return &MetricsCalculator{LifeExpectancyMonths: lifeExpectancyYears * 12}
}

// CalculateMetrics computes the comparison metrics of a scenario result.
// Claim ages count months from earliest eligibility, matching the sweep.
func (mc *MetricsCalculator) CalculateMetrics(sr *domain.ScenarioResult) ComparisonResult {
	dates := sr.Result.Dates
	claim := dates.EffectiveClaim
	result := ComparisonResult{
		ScenarioName:   sr.Name,
		Result:         sr,
		ClaimDate:      claim,
		ClaimAgeMonths: calculation.EarliestEligibilityAge*12 + dateutil.MonthsBetween(claim, dates.EarliestEligible),
		MonthlyBenefit: sr.Result.NormalMonthlyBenefit,
	}
	death := dateutil.AddMonthsClamped(dates.BirthDate, mc.LifeExpectancyMonths)
	result.LifetimeBenefits = breakeven.CumulativeBenefits(result.ClaimOption(), death)
	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) (ComparisonResult, error) {
	scenario.MonthlyDiffFromBase = scenario.MonthlyBenefit.Sub(base.MonthlyBenefit)
	scenario.LifetimeDiffFromBase = scenario.LifetimeBenefits.Sub(base.LifetimeBenefits)

	if !base.LifetimeBenefits.IsZero() {
		scenario.LifetimePctFromBase = scenario.LifetimeDiffFromBase.
			Div(base.LifetimeBenefits).
			Mul(decimal.NewFromInt(100))
	}

	earlier, later := base.ClaimOption(), scenario.ClaimOption()
	if later.ClaimDate.Before(earlier.ClaimDate) {
		earlier, later = later, earlier
	}
	if dateutil.MonthsBetween(later.ClaimDate, earlier.ClaimDate) > 0 {
		point, err := breakeven.BreakEven(earlier, later)
		if err != nil {
			return scenario, err
		}
		scenario.BreakEven = point
	}
	return scenario, nil
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	bestLifetime := compSet.BaseResult
	bestMonthly := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeBenefits.GreaterThan(bestLifetime.LifetimeBenefits) {
			bestLifetime = alt
		}
		if alt.MonthlyBenefit.GreaterThan(bestMonthly.MonthlyBenefit) {
			bestMonthly = alt
		}
	}

	if bestLifetime != compSet.BaseResult {
		recommendations = append(recommendations, fmt.Sprintf(
			"Most Lifetime Benefits: %s pays %s more than the base by age %s",
			bestLifetime.ScenarioName,
			money.FormatWholeDollars(bestLifetime.LifetimeDiffFromBase),
			domain.FormatAgeMonths(compSet.LifeExpectancyMonths)))
	} else {
		recommendations = append(recommendations, fmt.Sprintf(
			"Most Lifetime Benefits: the base scenario, assuming death at %s",
			domain.FormatAgeMonths(compSet.LifeExpectancyMonths)))
	}

	if bestMonthly != compSet.BaseResult {
		recommendations = append(recommendations, fmt.Sprintf(
			"Highest Monthly Benefit: %s pays %s a month more than the base",
			bestMonthly.ScenarioName,
			money.FormatWholeDollars(bestMonthly.MonthlyDiffFromBase)))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.BreakEven != nil && alt.BreakEven.Found {
			recommendations = append(recommendations, fmt.Sprintf(
				"Break-even: %s and the base cross at age %s (%s)",
				alt.ScenarioName,
				domain.FormatAgeMonths(alt.BreakEven.CrossoverAge),
				dateutil.FormatDate(alt.BreakEven.CrossoverDate)))
		}
	}

	return recommendations
}

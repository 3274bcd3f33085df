package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Claim Date",
		"Claim Age Months",
		"Monthly Benefit",
		"Lifetime Benefits",
		"Monthly Diff from Base",
		"Lifetime Diff from Base",
		"Lifetime % Change",
		"Break-even Age Months",
		"Break-even Date",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	beAge, beDate := "", ""
	if result.BreakEven != nil && result.BreakEven.Found {
		beAge = strconv.Itoa(result.BreakEven.CrossoverAge)
		beDate = dateutil.FormatDate(result.BreakEven.CrossoverDate)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		dateutil.FormatDate(result.ClaimDate),
		strconv.Itoa(result.ClaimAgeMonths),
		result.MonthlyBenefit.StringFixed(2),
		result.LifetimeBenefits.StringFixed(2),
		result.MonthlyDiffFromBase.StringFixed(2),
		result.LifetimeDiffFromBase.StringFixed(2),
		result.LifetimePctFromBase.StringFixed(2),
		beAge,
		beDate,
	}
}

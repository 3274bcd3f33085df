package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("CLAIMING SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Lifetime benefits assume death at %s\n", domain.FormatAgeMonths(compSet.LifeExpectancyMonths)))
	sb.WriteString("\n")

	nameWidth := 30
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Claim Date",
		numWidth, "Claim Age",
		numWidth, "Monthly",
		numWidth, "Lifetime"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Monthly Benefit:   %s%s\n",
				tf.deltaSymbol(alt.MonthlyDiffFromBase),
				money.FormatCurrency(alt.MonthlyDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Lifetime Benefits: %s%s (%s%%)\n",
				tf.deltaSymbol(alt.LifetimeDiffFromBase),
				money.FormatWholeDollars(alt.LifetimeDiffFromBase),
				alt.LifetimePctFromBase.StringFixed(1)))

			switch {
			case alt.BreakEven == nil:
			case alt.BreakEven.Found:
				sb.WriteString(fmt.Sprintf("  Break-even:        age %s (%s)\n",
					domain.FormatAgeMonths(alt.BreakEven.CrossoverAge),
					dateutil.FormatDate(alt.BreakEven.CrossoverDate)))
			default:
				sb.WriteString("  Break-even:        never\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, dateutil.FormatDate(result.ClaimDate),
		numWidth, domain.FormatAgeMonths(result.ClaimAgeMonths),
		numWidth, money.FormatWholeDollars(result.MonthlyBenefit),
		numWidth, tf.formatDecimal(result.LifetimeBenefits))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return "$" + millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return "$" + thousands.StringFixed(1) + "K"
	}
	return "$" + d.StringFixed(0)
}

// deltaSymbol returns "+" for gains; losses carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.LifetimeDiffFromBase.IsPositive() {
			change = "+" + tf.formatDecimal(alt.LifetimeDiffFromBase)
		} else if alt.LifetimeDiffFromBase.IsNegative() {
			change = "-" + tf.formatDecimal(alt.LifetimeDiffFromBase.Abs())
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}

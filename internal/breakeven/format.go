package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("CLAIM AGE OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Request.Goal))
	if result.Request.Constraints.LifeExpectancyMonths > 0 {
		sb.WriteString(fmt.Sprintf("Life Expectancy:     %s\n", domain.FormatAgeMonths(result.Request.Constraints.LifeExpectancyMonths)))
	}
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	sb.WriteString("\n")

	sb.WriteString("BEST CLAIM\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	best := result.Best
	sb.WriteString(fmt.Sprintf("Claim Age:           %s\n", best.Option.AgeLabel()))
	sb.WriteString(fmt.Sprintf("Claim Date:          %s\n", dateutil.FormatDate(best.Option.ClaimDate)))
	sb.WriteString(fmt.Sprintf("Monthly Benefit:     %s\n", money.FormatCurrency(best.Option.NormalMonthlyBenefit)))
	sb.WriteString(fmt.Sprintf("Lifetime Benefits:   %s\n", money.FormatCurrency(best.LifetimeBenefits)))
	sb.WriteString("\n")

	if result.VersusEarliest != nil {
		sb.WriteString(tf.FormatBreakEven(result.VersusEarliest))
	}
	return sb.String()
}

// FormatBreakEven renders a single crossover
func (tf *TableFormatter) FormatBreakEven(p *BreakEvenPoint) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("BREAK-EVEN: %s vs %s\n", p.Later.AgeLabel(), p.Earlier.AgeLabel()))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if !p.Found {
		sb.WriteString("The later claim never catches up\n\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Crossover Age:       %s\n", domain.FormatAgeMonths(p.CrossoverAge)))
	sb.WriteString(fmt.Sprintf("Crossover Date:      %s\n", dateutil.FormatDate(p.CrossoverDate)))
	sb.WriteString(fmt.Sprintf("Cumulative Benefits: %s\n", money.FormatCurrency(p.Cumulative)))
	sb.WriteString("\n")
	return sb.String()
}

// FormatLifeExpectancies formats results across life expectancies
func (tf *TableFormatter) FormatLifeExpectancies(result *LifeExpectancyResult) string {
	var sb strings.Builder

	sb.WriteString("LIFE EXPECTANCY SENSITIVITY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %-12s %15s %18s\n", "Life Expectancy", "Best Claim", "Monthly", "Lifetime"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-16s %-12s %15s %18s\n",
			domain.FormatAgeMonths(res.Request.Constraints.LifeExpectancyMonths),
			res.Best.Option.AgeLabel(),
			money.FormatCurrency(res.Best.Option.NormalMonthlyBenefit),
			tf.formatLifetime(res)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatLifetime(res OptimizationResult) string {
	return money.FormatWholeDollars(res.Best.LifetimeBenefits)
}

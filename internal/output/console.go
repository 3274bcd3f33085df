package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
)

// ConsoleFormatter renders the detailed console report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "SOCIAL SECURITY BENEFIT ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&buf)

	for i, sr := range report.Results {
		fmt.Fprintf(&buf, "SCENARIO %d: %s (%s)\n", i+1, sr.Name, sr.Person)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		if sr.Result == nil {
			fmt.Fprintln(&buf, "No result")
			fmt.Fprintln(&buf)
			continue
		}
		writeScenarioDetail(&buf, sr.Result)
		if len(sr.Sweep) > 0 {
			writeSweepSummary(&buf, sr.Sweep)
		}
		fmt.Fprintln(&buf)
	}
	return buf.Bytes(), nil
}

func writeScenarioDetail(buf *bytes.Buffer, r *domain.BenefitResult) {
	d := r.Dates
	fmt.Fprintln(buf, "KEY DATES:")
	fmt.Fprintf(buf, "  Birth Date:              %s\n", dateutil.FormatDate(d.BirthDate))
	fmt.Fprintf(buf, "  Earliest Eligibility:    %s\n", dateutil.FormatDate(d.EarliestEligible))
	fmt.Fprintf(buf, "  Full Retirement Age:     %s (%s)\n", dateutil.FormatDate(d.FullRetirement), domain.FormatAgeMonths(d.FullRetirementAge))
	fmt.Fprintf(buf, "  Maximum Credit Age:      %s\n", dateutil.FormatDate(d.MaximumCreditable))
	fmt.Fprintf(buf, "  Requested Claim:         %s\n", dateutil.FormatDate(d.RequestedClaim))
	if !d.EffectiveClaim.Equal(d.RequestedClaim) {
		fmt.Fprintf(buf, "  Effective Claim:         %s\n", dateutil.FormatDate(d.EffectiveClaim))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "BENEFIT FORMULA:")
	fmt.Fprintf(buf, "  Eligibility Year:        %d\n", r.EligibilityYear)
	fmt.Fprintf(buf, "  Computation Years:       %d\n", r.ComputationYears)
	fmt.Fprintf(buf, "  AIME:                    %s\n", FormatCurrency(r.AIME))
	fmt.Fprintf(buf, "  Bend Points:             %s / %s\n", FormatCurrency(r.BendPoints.First), FormatCurrency(r.BendPoints.Second))
	fmt.Fprintf(buf, "  PIA:                     %s\n", FormatCurrency(r.PIA))
	fmt.Fprintf(buf, "  COLA-Adjusted PIA:       %s\n", FormatCurrency(r.COLAAdjustedPIA))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "MONTHLY BENEFITS:")
	fmt.Fprintf(buf, "  Retirement:              %s (%s a year)\n", FormatCurrency(r.NormalMonthlyBenefit), FormatCurrency(money.Annual(r.NormalMonthlyBenefit)))
	if r.DisabilityBenefit != nil {
		fmt.Fprintf(buf, "  Disability:              %s\n", formatOptional(r.DisabilityBenefit))
	}
	if s := r.Survivor; s != nil {
		fmt.Fprintf(buf, "  Surviving Child:         %s\n", FormatCurrency(s.SurvivingChild))
		fmt.Fprintf(buf, "  Caregiving Spouse:       %s\n", FormatCurrency(s.CaregivingSpouse))
		fmt.Fprintf(buf, "  Spouse at Normal Age:    %s\n", FormatCurrency(s.NormalRetirementSpouse))
		fmt.Fprintf(buf, "  Family Maximum:          %s\n", FormatCurrency(s.FamilyMaximum))
	}
}

// writeSweepSummary prints whole-year claim ages plus the full retirement month.
func writeSweepSummary(buf *bytes.Buffer, options []domain.ClaimOption) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "CLAIM AGE COMPARISON:")
	fmt.Fprintf(buf, "  %-10s %-12s %10s %12s\n", "Age", "Claim Date", "vs FRA", "Monthly")
	for _, o := range options {
		if o.AgeMonths%12 != 0 && o.MonthsFromFRA != 0 {
			continue
		}
		fmt.Fprintf(buf, "  %-10s %-12s %+10d %12s\n", o.AgeLabel(), dateutil.FormatDate(o.ClaimDate), o.MonthsFromFRA, FormatCurrency(o.NormalMonthlyBenefit))
	}
}

// ConsoleLiteFormatter renders one line per scenario.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "BENEFIT SCENARIO SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 72))
	fmt.Fprintf(&buf, "%-24s %-12s %-12s %10s %12s\n", "Scenario", "Person", "Claim Date", "PIA", "Monthly")
	for _, sr := range report.Results {
		if sr.Result == nil {
			continue
		}
		fmt.Fprintf(&buf, "%-24s %-12s %-12s %10s %12s\n",
			sr.Name, sr.Person, dateutil.FormatDate(sr.Result.Dates.EffectiveClaim),
			FormatCurrency(sr.Result.PIA), FormatCurrency(sr.Result.NormalMonthlyBenefit))
	}
	return buf.Bytes(), nil
}

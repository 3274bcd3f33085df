package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rgehrsitz/ssbenefit/internal/breakeven"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/spf13/cobra"
)

// selectPerson returns the named person, or the first one when name is empty
func selectPerson(configData *domain.Configuration, name string) (*domain.Person, error) {
	if name == "" {
		return &configData.Persons[0], nil
	}
	person, ok := configData.FindPerson(name)
	if !ok {
		return nil, fmt.Errorf("person %q not found", name)
	}
	return person, nil
}

// parseClaimAge accepts "fra", whole years ("62") or years and months
// ("66y4m", "66y 4m") and returns the matching sweep option
func parseClaimAge(s string, options []domain.ClaimOption) (domain.ClaimOption, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "fra" {
		for _, o := range options {
			if o.MonthsFromFRA == 0 {
				return o, nil
			}
		}
		return domain.ClaimOption{}, fmt.Errorf("no claim option at full retirement age")
	}

	var years, months int
	if y, err := strconv.Atoi(s); err == nil {
		years = y
	} else if _, err := fmt.Sscanf(s, "%dy%dm", &years, &months); err != nil {
		return domain.ClaimOption{}, fmt.Errorf("invalid claim age %q: expected fra, 62 or 66y4m", s)
	}
	age := years*12 + months
	for _, o := range options {
		if o.AgeMonths == age {
			return o, nil
		}
	}
	return domain.ClaimOption{}, fmt.Errorf("claim age %s is outside 62 to 70", domain.FormatAgeMonths(age))
}

var sweepCmd = &cobra.Command{
	Use:   "sweep [input-file]",
	Short: "Show the monthly benefit for every claim month from 62 to 70",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		configData, err := loadConfiguration(args[0])
		if err != nil {
			return err
		}
		personName, _ := cmd.Flags().GetString("person")
		person, err := selectPerson(configData, personName)
		if err != nil {
			return err
		}

		options, err := a.engine.SweepClaimDates(cmd.Context(), domain.BenefitRequest{
			BirthDate: person.BirthDate,
			Earnings:  person.Earnings,
		})
		if err != nil {
			return err
		}
		if wholeYears, _ := cmd.Flags().GetBool("whole-years"); wholeYears {
			var kept []domain.ClaimOption
			for _, o := range options {
				if o.AgeMonths%12 == 0 || o.MonthsFromFRA == 0 {
					kept = append(kept, o)
				}
			}
			options = kept
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "table", "console", "":
			writeSweepTable(cmd.OutOrStdout(), person.Name, options)
			return nil
		case "csv":
			return writeSweepCSV(cmd.OutOrStdout(), options)
		case "json":
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(options)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", outputFormat)
		}
	},
}

func writeSweepTable(w io.Writer, name string, options []domain.ClaimOption) {
	fmt.Fprintf(w, "CLAIM DATE SWEEP: %s\n", name)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "%-8s %-12s %-22s %12s\n", "Age", "Claim Date", "Timing", "Monthly")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, o := range options {
		timing := "at FRA"
		switch {
		case o.MonthsFromFRA < 0:
			timing = fmt.Sprintf("%d months early", -o.MonthsFromFRA)
		case o.MonthsFromFRA > 0:
			timing = fmt.Sprintf("%d months delayed", o.MonthsFromFRA)
		}
		fmt.Fprintf(w, "%-8s %-12s %-22s %12s\n", o.AgeLabel(), dateutil.FormatDate(o.ClaimDate), timing,
			money.FormatCurrency(o.NormalMonthlyBenefit))
	}
}

func writeSweepCSV(w io.Writer, options []domain.ClaimOption) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"AgeMonths", "Age", "ClaimDate", "MonthsFromFRA", "MonthlyBenefit"}); err != nil {
		return err
	}
	for _, o := range options {
		if err := cw.Write([]string{
			strconv.Itoa(o.AgeMonths),
			o.AgeLabel(),
			dateutil.FormatDate(o.ClaimDate),
			strconv.Itoa(o.MonthsFromFRA),
			o.NormalMonthlyBenefit.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Find when a later claim overtakes an earlier one and the best claim age per life expectancy",
	Long: `Compare cumulative nominal benefits of claiming at different ages.

Examples:
  ssbenefit break-even scenarios.yaml
  ssbenefit break-even scenarios.yaml --earlier 62 --later 70
  ssbenefit break-even scenarios.yaml --life-expectancy 78,84,90 --format json
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		configData, err := loadConfiguration(args[0])
		if err != nil {
			return err
		}
		personName, _ := cmd.Flags().GetString("person")
		person, err := selectPerson(configData, personName)
		if err != nil {
			return err
		}

		options, err := a.engine.SweepClaimDates(cmd.Context(), domain.BenefitRequest{
			BirthDate: person.BirthDate,
			Earnings:  person.Earnings,
		})
		if err != nil {
			return err
		}
		earlierArg, _ := cmd.Flags().GetString("earlier")
		laterArg, _ := cmd.Flags().GetString("later")
		earlier, err := parseClaimAge(earlierArg, options)
		if err != nil {
			return err
		}
		later, err := parseClaimAge(laterArg, options)
		if err != nil {
			return err
		}
		point, err := breakeven.BreakEven(earlier, later)
		if err != nil {
			return err
		}

		lifeExpectancies, _ := cmd.Flags().GetIntSlice("life-expectancy")
		step, _ := cmd.Flags().GetInt("step")
		solver := breakeven.NewSolver(a.engine, breakeven.SolverOptions{StepMonths: step})
		sensitivity, err := solver.OptimizeLifeExpectancies(cmd.Context(), person, breakeven.DefaultConstraints(0), lifeExpectancies)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "table", "console", "":
			tf := &breakeven.TableFormatter{}
			fmt.Fprintf(cmd.OutOrStdout(), "BREAK-EVEN ANALYSIS: %s\n\n", person.Name)
			fmt.Fprint(cmd.OutOrStdout(), tf.FormatBreakEven(point))
			fmt.Fprint(cmd.OutOrStdout(), tf.FormatLifeExpectancies(sensitivity))
			return nil
		case "json":
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(struct {
				Person      string                          `json:"person"`
				BreakEven   *breakeven.BreakEvenPoint       `json:"break_even"`
				Sensitivity *breakeven.LifeExpectancyResult `json:"life_expectancy"`
			}{person.Name, point, sensitivity})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
	},
}

func init() {
	sweepCmd.Flags().String("person", "", "Person to sweep (default: the first person in the file)")
	sweepCmd.Flags().Bool("whole-years", false, "Show only whole-year claim ages and full retirement age")
	sweepCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")

	breakEvenCmd.Flags().String("person", "", "Person to analyze (default: the first person in the file)")
	breakEvenCmd.Flags().String("earlier", "62", "Earlier claim age (fra, 62 or 66y4m)")
	breakEvenCmd.Flags().String("later", "fra", "Later claim age (fra, 70 or 67y6m)")
	breakEvenCmd.Flags().IntSlice("life-expectancy", []int{75, 80, 85, 90, 95}, "Assumed ages at death, in years")
	breakEvenCmd.Flags().Int("step", 1, "Months between evaluated claim ages")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}

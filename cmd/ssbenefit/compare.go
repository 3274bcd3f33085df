package main

import (
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/compare"
	"github.com/rgehrsitz/ssbenefit/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare a scenario against claiming templates or other scenarios",
	Long: `Compare one scenario with alternatives built from templates or with other
scenarios for the same person. Lifetime benefits are nominal totals up to the
assumed life expectancy.

Examples:
  ssbenefit compare scenarios.yaml --base "alex at full retirement" --with claim_62,claim_70
  ssbenefit compare scenarios.yaml --base "alex at full retirement" --scenarios "alex at 70"
  ssbenefit compare scenarios.yaml --base "alex at full retirement" --with delay_1yr --format csv
  ssbenefit compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("input file required (use --list-templates to see available templates)")
		}

		baseName, _ := cmd.Flags().GetString("base")
		if baseName == "" {
			return fmt.Errorf("--base is required")
		}
		withTemplates, _ := cmd.Flags().GetString("with")
		templates := transform.ParseTemplateList(withTemplates)
		scenarios, _ := cmd.Flags().GetStringSlice("scenarios")
		if len(templates) == 0 && len(scenarios) == 0 {
			return fmt.Errorf("nothing to compare: use --with or --scenarios")
		}
		lifeExpectancy, _ := cmd.Flags().GetInt("life-expectancy")
		format, _ := cmd.Flags().GetString("format")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		configData, err := loadConfiguration(args[0])
		if err != nil {
			return err
		}

		engine := compare.NewCompareEngine(a.engine)
		var compSet *compare.ComparisonSet
		if len(scenarios) > 0 {
			compSet, err = engine.CompareScenarios(cmd.Context(), configData, baseName, scenarios, lifeExpectancy)
		} else {
			compSet, err = engine.Compare(cmd.Context(), configData, compare.CompareOptions{
				BaseScenarioName:    baseName,
				Templates:           templates,
				LifeExpectancyYears: lifeExpectancy,
			})
		}
		if err != nil {
			return err
		}
		compSet.ConfigPath = args[0]
		a.logger.Debug("comparison complete", "base", baseName, "alternatives", len(compSet.AlternativeResults))

		var out string
		switch format {
		case "table":
			out = (&compare.TableFormatter{}).Format(compSet)
		case "compact":
			out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(compSet)
		case "json":
			out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			out += "\n"
		default:
			return fmt.Errorf("unknown format %q (valid: table, compact, csv, json)", format)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	compareCmd.Flags().String("base", "", "Scenario to compare against")
	compareCmd.Flags().String("with", "", "Comma-separated templates applied to the base scenario")
	compareCmd.Flags().StringSlice("scenarios", nil, "Other scenarios of the same person to compare")
	compareCmd.Flags().Int("life-expectancy", compare.DefaultLifeExpectancyYears, "Assumed age at death in years")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/config"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/logging"
	"github.com/rgehrsitz/ssbenefit/internal/output"
	"github.com/rgehrsitz/ssbenefit/internal/transform"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ssbenefit %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "ssbenefit",
	Short: "Social Security benefit calculator CLI",
	Long:  "Calculates Social Security retirement, disability and survivor benefits from an earnings history",
}

// app is what every command builds from the global flags
type app struct {
	settings *config.Settings
	logger   *slog.Logger
	engine   *calculation.CalculationEngine
}

// newApp loads settings, builds the logger and the calculation engine
func newApp(cmd *cobra.Command) (*app, error) {
	settingsPath, _ := cmd.Flags().GetString("settings")
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	level := settings.Log.Level
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Format: settings.Log.Format})
	if err != nil {
		return nil, err
	}

	table, err := wageindex.Load(settings.WageIndex.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load wage index: %w", err)
	}
	logger.Debug("wage index loaded", "first_year", table.FirstYear(), "last_year", table.LastYear(), "cutoff_year", table.CutoffYear())

	engine := calculation.NewCalculationEngine(table, calculation.Options{
		Indexing:         calculation.IndexingOptions{CapAtContributionBase: settings.Calculation.CapEarnings},
		SweepConcurrency: settings.Sweep.Concurrency,
	})
	engine.SetLogger(logging.NewEngineLogger(logger))

	return &app{settings: settings, logger: logger, engine: engine}, nil
}

// loadConfiguration parses and validates a scenario file
func loadConfiguration(path string) (*domain.Configuration, error) {
	return config.NewInputParser().LoadFromFile(path)
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate benefit scenarios",
	Long: `Calculate every scenario of a scenario file.

Examples:
  ssbenefit calculate scenarios.yaml
  ssbenefit calculate scenarios.yaml --format json
  ssbenefit calculate scenarios.yaml --transform delay_claim:months=6
  ssbenefit calculate scenarios.yaml --template claim_62,claim_70
  ssbenefit calculate --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templates := transform.CreateBuiltInTemplates()
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(templates))
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("input file required (use --list-templates to see available templates)")
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		formatter := output.GetFormatterByName(outputFormat)
		if formatter == nil {
			return fmt.Errorf("unknown output format %q (valid: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		configData, err := loadConfiguration(args[0])
		if err != nil {
			return err
		}

		specs, _ := cmd.Flags().GetStringSlice("transform")
		if len(specs) > 0 {
			// Reject bad specs before running anything
			if _, err := transform.NewTransformRegistry().ParseTransformSpecs(specs); err != nil {
				return err
			}
			for i := range configData.Scenarios {
				configData.Scenarios[i].Transforms = append(configData.Scenarios[i].Transforms, specs...)
			}
		}
		if sweep, _ := cmd.Flags().GetBool("sweep"); sweep {
			for i := range configData.Scenarios {
				configData.Scenarios[i].Sweep = true
			}
		}

		report, err := a.engine.RunConfiguration(cmd.Context(), configData)
		if err != nil {
			return err
		}

		templateList, _ := cmd.Flags().GetString("template")
		if names := transform.ParseTemplateList(templateList); len(names) > 0 {
			extra, err := runTemplates(cmd, a.engine, configData, templates, names)
			if err != nil {
				return err
			}
			report.Results = append(report.Results, extra...)
		}

		if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
			var ext string
			switch formatter.Name() {
			case "console", "console-lite":
				ext = "txt"
			case "detailed-csv":
				ext = "csv"
			default:
				ext = formatter.Name()
			}
			path, err := output.WriteFormatted(formatter, report, dir, ext)
			if err != nil {
				return err
			}
			a.logger.Info("report written", "path", path)
			return nil
		}

		data, err := formatter.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// runTemplates runs each scenario again under every named template, applied
// after the scenario's own transforms
func runTemplates(cmd *cobra.Command, engine *calculation.CalculationEngine, configData *domain.Configuration, templates *transform.TemplateRegistry, names []string) ([]domain.ScenarioResult, error) {
	registry := transform.NewTransformRegistry()
	var results []domain.ScenarioResult
	for _, name := range names {
		tmpl, ok := templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(templates.List(), ", "))
		}
		for i := range configData.Scenarios {
			scenario := &configData.Scenarios[i]
			person, ok := configData.FindPerson(scenario.Person)
			if !ok {
				return nil, fmt.Errorf("scenario %s references unknown person %q", scenario.Name, scenario.Person)
			}
			resolved, err := registry.Resolve(&domain.Case{Person: *person, Scenario: *scenario})
			if err != nil {
				return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}
			modified, err := transform.ApplyTemplate(resolved, tmpl)
			if err != nil {
				return nil, fmt.Errorf("template %s: %w", tmpl.Name, err)
			}
			modified.Scenario.Name = fmt.Sprintf("%s [%s]", scenario.Name, tmpl.Name)
			sr, err := engine.RunScenario(cmd.Context(), &modified.Person, &modified.Scenario)
			if err != nil {
				return nil, err
			}
			results = append(results, *sr)
		}
	}
	return results, nil
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configData, err := loadConfiguration(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d persons, %d scenarios)\n",
			args[0], len(configData.Persons), len(configData.Scenarios))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("settings", "", "Settings file (default: ./ssbenefit.yaml or $HOME/.ssbenefit/ssbenefit.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of the calculation steps")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	calculateCmd.Flags().StringSlice("transform", nil, "Transform applied to every scenario, e.g. delay_claim:months=12 (repeatable)")
	calculateCmd.Flags().String("template", "", "Comma-separated built-in templates to run each scenario under as well")
	calculateCmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	calculateCmd.Flags().Bool("sweep", false, "Include the claim-date sweep for every scenario")
	calculateCmd.Flags().String("output-dir", "", "Write the report to a timestamped file in this directory instead of stdout")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(wageIndexCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/config"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/output"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleScenarios = "../testdata/example_scenarios.yaml"

// setupTestEnvironment pins the clock so COLA years are fixed and keeps
// settings from the developer's environment out of the run
func setupTestEnvironment(t *testing.T) {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })
	t.Setenv("SSBENEFIT_LOG_LEVEL", "error")
}

func loadExample(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(exampleScenarios)
	require.NoError(t, err)
	return cfg
}

func newEngine(t *testing.T) *calculation.CalculationEngine {
	t.Helper()
	table, err := wageindex.Load("")
	require.NoError(t, err)
	return calculation.NewCalculationEngine(table, calculation.Options{})
}

func runExample(t *testing.T) *domain.Report {
	t.Helper()
	report, err := newEngine(t).RunConfiguration(context.Background(), loadExample(t))
	require.NoError(t, err)
	return report
}

// TestIntegrationSmokeTest runs a quick smoke test of core functionality
func TestIntegrationSmokeTest(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("basic_calculation", func(t *testing.T) {
		report := runExample(t)
		assert.Len(t, report.Results, 5)
	})

	t.Run("basic_output_generation", func(t *testing.T) {
		report := runExample(t)
		for _, name := range []string{"console", "json"} {
			data, err := output.GetFormatterByName(name).Format(report)
			require.NoError(t, err, "Should generate %s output", name)
			assert.NotEmpty(t, data)
		}
	})
}

// TestIntegrationRegression tests for regression issues
func TestIntegrationRegression(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("calculation_consistency", func(t *testing.T) {
		first := runExample(t)
		second := runExample(t)

		require.Equal(t, len(first.Results), len(second.Results), "Should have same number of scenarios")
		for i, r1 := range first.Results {
			r2 := second.Results[i]
			assert.Equal(t, r1.Name, r2.Name, "Scenario names should match")
			assert.True(t, r1.Result.NormalMonthlyBenefit.Equal(r2.Result.NormalMonthlyBenefit), "Monthly benefit should match")
			assert.True(t, r1.Result.PIA.Equal(r2.Result.PIA), "PIA should match")
		}
	})

	t.Run("output_format_consistency", func(t *testing.T) {
		report := runExample(t)
		for _, format := range output.AvailableFormatterNames() {
			t.Run(fmt.Sprintf("format_%s", format), func(t *testing.T) {
				data, err := output.GetFormatterByName(format).Format(report)
				require.NoError(t, err, "Should generate %s output", format)
				assert.NotEmpty(t, data)
			})
		}
	})
}

// TestIntegrationBenchmarks runs performance checks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}
	setupTestEnvironment(t)

	t.Run("calculation_performance", func(t *testing.T) {
		start := time.Now()
		report := runExample(t)
		duration := time.Since(start)

		assert.Less(t, duration, 30*time.Second, "Calculation should complete within 30 seconds")
		t.Logf("Calculation completed in %v", duration)
		t.Logf("Processed %d scenarios", len(report.Results))
	})
}

// TestIntegrationDataValidation tests data validation across the system
func TestIntegrationDataValidation(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("configuration_data_validation", func(t *testing.T) {
		parser := config.NewInputParser()
		cfg := loadExample(t)
		assert.NoError(t, parser.ValidateConfiguration(cfg))

		assert.Len(t, cfg.Persons, 2, "Should have persons")
		for _, p := range cfg.Persons {
			assert.NotEmpty(t, p.Name, "Person should have name")
			assert.False(t, p.BirthDate.IsZero(), "Person should have birth date")
			assert.NotEmpty(t, p.Earnings, "Person should have earnings")
			_, err := p.Earnings.ByYear()
			assert.NoError(t, err, "Earnings should be valid")
		}
		for _, s := range cfg.Scenarios {
			assert.NotEmpty(t, s.Name, "Scenario should have name")
			_, ok := cfg.FindPerson(s.Person)
			assert.True(t, ok, "Scenario %s should reference a known person", s.Name)
		}
	})

	t.Run("calculation_result_validation", func(t *testing.T) {
		cfg := loadExample(t)
		report := runExample(t)

		require.Len(t, report.Results, len(cfg.Scenarios))
		for i, r := range report.Results {
			assert.Equal(t, cfg.Scenarios[i].Name, r.Name, "Scenario names should match")
			res := r.Result
			assert.True(t, res.AIME.GreaterThan(decimal.Zero), "AIME should be positive")
			assert.True(t, res.PIA.LessThanOrEqual(res.COLAAdjustedPIA), "COLA never lowers the PIA")
			assert.True(t, res.NormalMonthlyBenefit.GreaterThan(decimal.Zero), "Benefit should be positive")
			assert.False(t, res.Dates.FullRetirement.Before(res.Dates.EarliestEligible))
			assert.False(t, res.Dates.MaximumCreditable.Before(res.Dates.FullRetirement))
		}
	})
}

func loadConfigFile(path string) (*domain.Configuration, error) {
	return config.NewInputParser().LoadFromFile(path)
}

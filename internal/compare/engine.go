package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName    string   // Name of the base scenario to compare against
	Templates           []string // List of template names to apply
	LifeExpectancyYears int      // Assumed age at death; DefaultLifeExpectancyYears when zero
}

// Compare runs the base scenario once as is and once under each template.
// Templates apply on top of the base scenario's own transforms.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	metrics := NewMetricsCalculator(options.LifeExpectancyYears)

	found, err := findCase(config, options.BaseScenarioName)
	if err != nil {
		return nil, err
	}
	baseCase, err := ce.TransformRegistry.Resolve(found)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", found.Scenario.Name, err)
	}

	baseSummary, err := ce.CalcEngine.RunScenario(ctx, &baseCase.Person, &baseCase.Scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := metrics.CalculateMetrics(baseSummary)

	alternatives := []ComparisonResult{}
	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found (available: %s)", templateName, strings.Join(ce.TemplateRegistry.List(), ", "))
		}

		modified, err := transform.ApplyTemplate(baseCase, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Scenario.Name = baseCase.Scenario.Name + "_" + template.Name

		altSummary, err := ce.CalcEngine.RunScenario(ctx, &modified.Person, &modified.Scenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}

		altResult := metrics.CalculateMetrics(altSummary)
		altResult.Description = template.Description
		altResult, err = metrics.CalculateComparison(altResult, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to compare scenario %s: %w", templateName, err)
		}
		alternatives = append(alternatives, altResult)
	}

	return newComparisonSet(options.BaseScenarioName, metrics, &baseResult, alternatives), nil
}

// CompareScenarios compares explicit scenarios of the configuration (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
	lifeExpectancyYears int,
) (*ComparisonSet, error) {
	metrics := NewMetricsCalculator(lifeExpectancyYears)

	baseSummary, err := ce.runNamed(ctx, config, baseScenarioName)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := metrics.CalculateMetrics(baseSummary)

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		altSummary, err := ce.runNamed(ctx, config, altName)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		if altSummary.Person != baseSummary.Person {
			return nil, fmt.Errorf("scenario %s is for %s, not %s", altName, altSummary.Person, baseSummary.Person)
		}

		altResult, err := metrics.CalculateComparison(metrics.CalculateMetrics(altSummary), baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to compare scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, altResult)
	}

	return newComparisonSet(baseScenarioName, metrics, &baseResult, alternatives), nil
}

func (ce *CompareEngine) runNamed(ctx context.Context, config *domain.Configuration, name string) (*domain.ScenarioResult, error) {
	c, err := findCase(config, name)
	if err != nil {
		return nil, err
	}
	return ce.CalcEngine.RunScenario(ctx, &c.Person, &c.Scenario)
}

func newComparisonSet(baseName string, metrics *MetricsCalculator, base *ComparisonResult, alternatives []ComparisonResult) *ComparisonSet {
	compSet := &ComparisonSet{
		BaseScenarioName:     baseName,
		LifeExpectancyMonths: metrics.LifeExpectancyMonths,
		BaseResult:           base,
		AlternativeResults:   alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

// findCase returns a copy of the named scenario paired with its person
func findCase(config *domain.Configuration, name string) (*domain.Case, error) {
	scenario, ok := config.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("scenario %s not found in configuration", name)
	}
	person, ok := config.FindPerson(scenario.Person)
	if !ok {
		return nil, domain.NewCalculationError("compare",
			fmt.Sprintf("scenario %s references unknown person %q", scenario.Name, scenario.Person), domain.ErrMissingInput)
	}
	c := &domain.Case{Person: *person, Scenario: *scenario}
	return c.DeepCopy(), nil
}

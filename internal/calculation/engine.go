package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/transform"
	"github.com/rgehrsitz/ssbenefit/pkg/money"
	"github.com/shopspring/decimal"
)

// Options configures a CalculationEngine
type Options struct {
	Indexing         IndexingOptions
	SweepConcurrency int // claim-date sweep workers; 0 means DefaultSweepConcurrency
}

// Include selects the optional sub-results of Calculate
type Include struct {
	Disability bool
	Survivor   bool
}

// CalculationEngine orchestrates benefit calculations. It holds no per-call
// state and is safe for concurrent use.
type CalculationEngine struct {
	table      WageIndex
	opts       Options
	transforms *transform.TransformRegistry
	Logger     Logger
}

// NewCalculationEngine creates a new calculation engine over a wage index table
func NewCalculationEngine(table WageIndex, opts Options) *CalculationEngine {
	if opts.SweepConcurrency <= 0 {
		opts.SweepConcurrency = DefaultSweepConcurrency
	}
	return &CalculationEngine{
		table:      table,
		opts:       opts,
		transforms: transform.NewTransformRegistry(),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Table returns the wage index the engine reads.
func (ce *CalculationEngine) Table() WageIndex { return ce.table }

// calcContext holds what every benefit kind derives from the request
type calcContext struct {
	dates        domain.RetirementDates
	indexed      domain.YearAmounts
	baseYear     int
	elapsedYears int
}

type pipelineResult struct {
	aime    decimal.Decimal
	pia     decimal.Decimal
	colaPIA decimal.Decimal
	bends   domain.BendPoints
	years   int
}

func (ce *CalculationEngine) prepare(op string, req domain.BenefitRequest) (*calcContext, error) {
	switch {
	case req.BirthDate.IsZero():
		return nil, domain.NewCalculationError(op, "birth date is required", domain.ErrMissingInput)
	case req.ClaimDate.IsZero():
		return nil, domain.NewCalculationError(op, "claim date is required", domain.ErrMissingInput)
	case len(req.Earnings) == 0:
		return nil, domain.NewCalculationError(op, "earnings history cannot be empty", domain.ErrMissingInput)
	case req.ClaimDate.Before(req.BirthDate):
		return nil, domain.NewCalculationError(op, "claim date cannot be before birth date", domain.ErrInvalidDateOrder)
	}

	earnings, err := req.Earnings.ByYear()
	if err != nil {
		return nil, err
	}
	dates, err := NewRetirementDates(req.BirthDate, req.ClaimDate)
	if err != nil {
		return nil, err
	}

	// Bend points and indexing use the wage level two years before eligibility.
	baseYear := dates.EligibilityYear() - 2
	indexed, err := IndexEarnings(ce.table, earnings, baseYear, ce.opts.Indexing)
	if err != nil {
		return nil, err
	}

	cc := &calcContext{
		dates:        dates,
		indexed:      indexed,
		baseYear:     baseYear,
		elapsedYears: ElapsedYears(req.BirthDate, req.ClaimDate),
	}
	ce.Logger.Debugf("%s: eligibility year %d, base year %d, elapsed years %d, %d earnings years",
		op, dates.EligibilityYear(), baseYear, cc.elapsedYears, len(indexed))
	return cc, nil
}

// pipeline runs indexing output through AIME, PIA and COLA.
func (ce *CalculationEngine) pipeline(cc *calcContext, lookbackYears int) (pipelineResult, error) {
	aime := AverageIndexedMonthlyEarnings(cc.indexed, lookbackYears)
	pia, bends, err := PrimaryInsuranceAmount(ce.table, aime, cc.baseYear)
	if err != nil {
		return pipelineResult{}, err
	}
	colaPIA, err := ApplyCOLA(ce.table, pia, cc.dates.EligibilityYear(), currentYear())
	if err != nil {
		return pipelineResult{}, err
	}
	ce.Logger.Debugf("pipeline: %d years, AIME %s, PIA %s, COLA-adjusted %s", lookbackYears, aime, pia, colaPIA)
	return pipelineResult{aime: aime, pia: pia, colaPIA: colaPIA, bends: bends, years: lookbackYears}, nil
}

// Calculate runs the retirement calculation and, as selected, the disability
// and survivor calculations. Any failure returns no result.
func (ce *CalculationEngine) Calculate(req domain.BenefitRequest, include Include) (*domain.BenefitResult, error) {
	cc, err := ce.prepare("calculate", req)
	if err != nil {
		return nil, err
	}

	retirement, err := ce.pipeline(cc, ComputationYears(cc.elapsedYears))
	if err != nil {
		return nil, err
	}
	monthly, err := AdjustForClaimAge(cc.dates, retirement.colaPIA)
	if err != nil {
		return nil, err
	}

	result := &domain.BenefitResult{
		AIME:                 retirement.aime,
		PIA:                  retirement.pia,
		COLAAdjustedPIA:      retirement.colaPIA,
		NormalMonthlyBenefit: monthly,
		BendPoints:           retirement.bends,
		ComputationYears:     retirement.years,
		EligibilityYear:      cc.dates.EligibilityYear(),
		Dates:                cc.dates,
	}

	if include.Disability {
		disability, err := ce.disability(cc)
		if err != nil {
			return nil, err
		}
		result.DisabilityBenefit = &disability
	}
	if include.Survivor {
		survivor, err := ce.survivor(cc, retirement)
		if err != nil {
			return nil, err
		}
		result.Survivor = survivor
	}

	ce.Logger.Debugf("calculated benefit: claim %s, AIME %s, PIA %s, monthly %s",
		req.ClaimDate.Format("2006-01-02"), result.AIME, result.PIA, result.NormalMonthlyBenefit)
	return result, nil
}

// CalculateAll returns the retirement result with disability and survivor sub-results.
func (ce *CalculationEngine) CalculateAll(req domain.BenefitRequest) (*domain.BenefitResult, error) {
	return ce.Calculate(req, Include{Disability: true, Survivor: true})
}

// CalculateRetirement returns the retirement benefit only.
func (ce *CalculationEngine) CalculateRetirement(req domain.BenefitRequest) (*domain.BenefitResult, error) {
	return ce.Calculate(req, Include{})
}

// CalculateDisability returns the monthly disability benefit for the request.
func (ce *CalculationEngine) CalculateDisability(req domain.BenefitRequest) (decimal.Decimal, error) {
	cc, err := ce.prepare("calculate disability", req)
	if err != nil {
		return decimal.Zero, err
	}
	return ce.disability(cc)
}

// CalculateSurvivor returns the survivor benefits payable on the worker's record.
func (ce *CalculationEngine) CalculateSurvivor(req domain.BenefitRequest) (*domain.SurvivorBenefits, error) {
	cc, err := ce.prepare("calculate survivor", req)
	if err != nil {
		return nil, err
	}
	retirement, err := ce.pipeline(cc, ComputationYears(cc.elapsedYears))
	if err != nil {
		return nil, err
	}
	return ce.survivor(cc, retirement)
}

// disability uses fewer drop-out years and pays nothing once the requested
// claim date is past full retirement age.
func (ce *CalculationEngine) disability(cc *calcContext) (decimal.Decimal, error) {
	result, err := ce.pipeline(cc, DisabilityComputationYears(cc.elapsedYears))
	if err != nil {
		return decimal.Zero, err
	}
	if cc.dates.RequestedClaim.After(cc.dates.FullRetirement) {
		return decimal.Zero, nil
	}
	return money.FloorDollar(result.colaPIA), nil
}

func (ce *CalculationEngine) survivor(cc *calcContext, retirement pipelineResult) (*domain.SurvivorBenefits, error) {
	bends, err := FamilyMaximumBendPointsForYear(ce.table, cc.baseYear)
	if err != nil {
		return nil, err
	}
	familyMax, err := ApplyCOLA(ce.table, FamilyMaximum(retirement.pia, bends), cc.dates.EligibilityYear(), currentYear())
	if err != nil {
		return nil, err
	}

	child := SurvivorAmount(retirement.colaPIA)
	return &domain.SurvivorBenefits{
		SurvivingChild:         child,
		CaregivingSpouse:       child,
		NormalRetirementSpouse: money.FloorDollar(retirement.colaPIA),
		FamilyMaximum:          familyMax,
		FamilyMaximumBends:     bends,
	}, nil
}

// RunScenario calculates one scenario for a person. The scenario's transforms
// are applied to a copy of the person and scenario first.
func (ce *CalculationEngine) RunScenario(ctx context.Context, person *domain.Person, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if len(scenario.Transforms) > 0 {
		modified, err := ce.transforms.Resolve(&domain.Case{Person: *person, Scenario: *scenario})
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		ce.Logger.Debugf("scenario %s: applied %d transforms", scenario.Name, len(scenario.Transforms))
		person, scenario = &modified.Person, &modified.Scenario
	}

	claimDate, err := scenario.ResolveClaimDate(person.BirthDate)
	if err != nil {
		return nil, err
	}
	req := domain.BenefitRequest{
		BirthDate: person.BirthDate,
		ClaimDate: claimDate,
		Earnings:  person.Earnings,
	}

	result, err := ce.Calculate(req, Include{Disability: scenario.IncludeDisability, Survivor: scenario.IncludeSurvivor})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	sr := &domain.ScenarioResult{
		Name:    scenario.Name,
		Person:  person.Name,
		Request: req,
		Result:  result,
	}
	if scenario.Sweep {
		options, err := ce.SweepClaimDates(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scenario %s sweep: %w", scenario.Name, err)
		}
		sr.Sweep = options
	}
	ce.Logger.Infof("scenario %s: monthly benefit %s at %s", scenario.Name, result.NormalMonthlyBenefit, claimDate.Format("2006-01-02"))
	return sr, nil
}

// RunConfiguration runs every scenario of a configuration in order.
func (ce *CalculationEngine) RunConfiguration(ctx context.Context, config *domain.Configuration) (*domain.Report, error) {
	report := &domain.Report{GeneratedAt: nowFunc()}
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		person, ok := config.FindPerson(scenario.Person)
		if !ok {
			return nil, domain.NewCalculationError("run configuration",
				fmt.Sprintf("scenario %s references unknown person %q", scenario.Name, scenario.Person), domain.ErrMissingInput)
		}
		sr, err := ce.RunScenario(ctx, person, scenario)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, *sr)
	}
	return report, nil
}

package breakeven

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Solver finds claim-age break-even points and the claim age that best
// meets a goal.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// CumulativeBenefits returns the nominal benefits received from the claim
// month up to, not including, the month of at.
func CumulativeBenefits(option domain.ClaimOption, at time.Time) decimal.Decimal {
	payments := dateutil.MonthsBetween(at, option.ClaimDate)
	if payments <= 0 {
		return decimal.Zero
	}
	return option.NormalMonthlyBenefit.Mul(decimal.NewFromInt(int64(payments)))
}

// BreakEven finds the first month in which cumulative benefits of the later
// claim exceed those of the earlier claim.
func BreakEven(earlier, later domain.ClaimOption) (*BreakEvenPoint, error) {
	gap := dateutil.MonthsBetween(later.ClaimDate, earlier.ClaimDate)
	if gap <= 0 {
		return nil, &BreakEvenError{
			Operation: "break_even",
			Message:   fmt.Sprintf("claim %s is not after %s", dateutil.FormatDate(later.ClaimDate), dateutil.FormatDate(earlier.ClaimDate)),
		}
	}

	point := &BreakEvenPoint{Earlier: earlier, Later: later}
	be, bl := earlier.NormalMonthlyBenefit, later.NormalMonthlyBenefit
	if !bl.GreaterThan(be) {
		return point, nil
	}

	// (n-gap)*bl > n*be  <=>  n > gap*bl/(bl-be)
	threshold := decimal.NewFromInt(int64(gap)).Mul(bl).Div(bl.Sub(be))
	n := int(threshold.Floor().IntPart()) + 1

	point.Found = true
	point.CrossoverDate = dateutil.AddMonthsClamped(earlier.ClaimDate, n)
	point.CrossoverAge = earlier.AgeMonths + n
	point.Cumulative = bl.Mul(decimal.NewFromInt(int64(n - gap)))
	return point, nil
}

// Optimize evaluates every claim month in the constraint window and returns
// the one that best meets the goal. Ties go to the earlier claim.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Person == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "person is required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Goal == "" {
		req.Goal = GoalMaximizeLifetime
	}
	if req.Goal != GoalMaximizeLifetime && req.Goal != GoalMaximizeMonthly {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", req.Goal),
		}
	}
	if req.Goal == GoalMaximizeLifetime && req.Constraints.LifeExpectancyMonths == 0 {
		return nil, &BreakEvenError{Operation: "optimize", Message: "life expectancy is required to maximize lifetime benefits"}
	}

	options, err := s.CalcEngine.SweepClaimDates(ctx, domain.BenefitRequest{
		BirthDate: req.Person.BirthDate,
		Earnings:  req.Person.Earnings,
	})
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "failed to sweep claim dates",
			Cause:     err,
		}
	}

	step := s.Options.StepMonths
	if step <= 0 {
		step = 1
	}
	lo, hi := req.Constraints.window()
	death := dateutil.AddMonthsClamped(req.Person.BirthDate, req.Constraints.LifeExpectancyMonths)

	result := &OptimizationResult{Request: req}
	bestIdx := -1
	for _, o := range options {
		if o.AgeMonths < lo || o.AgeMonths > hi || (o.AgeMonths-lo)%step != 0 {
			continue
		}
		ev := EvaluatedOption{Option: o, LifetimeBenefits: CumulativeBenefits(o, death)}
		result.Evaluated = append(result.Evaluated, ev)
		if bestIdx < 0 || s.isBetter(ev, result.Evaluated[bestIdx], req.Goal) {
			bestIdx = len(result.Evaluated) - 1
		}
	}
	result.Iterations = len(result.Evaluated)
	if bestIdx < 0 {
		return nil, &BreakEvenError{Operation: "optimize", Message: "no claim months fall inside the constraints"}
	}

	result.Success = true
	result.Best = result.Evaluated[bestIdx]
	result.ConvergenceInfo = fmt.Sprintf("Evaluated %d claim months", result.Iterations)
	if bestIdx > 0 {
		point, err := BreakEven(result.Evaluated[0].Option, result.Best.Option)
		if err != nil {
			return nil, err
		}
		result.VersusEarliest = point
	}
	return result, nil
}

func (s *Solver) isBetter(candidate, current EvaluatedOption, goal OptimizationGoal) bool {
	if goal == GoalMaximizeMonthly {
		return candidate.Option.NormalMonthlyBenefit.GreaterThan(current.Option.NormalMonthlyBenefit)
	}
	return candidate.LifetimeBenefits.GreaterThan(current.LifetimeBenefits)
}

// OptimizeLifeExpectancies finds the lifetime-maximizing claim for each
// assumed life expectancy, in years.
func (s *Solver) OptimizeLifeExpectancies(ctx context.Context, person *domain.Person, constraints Constraints, lifeExpectancyYears []int) (*LifeExpectancyResult, error) {
	out := &LifeExpectancyResult{}
	for _, years := range lifeExpectancyYears {
		c := constraints
		c.LifeExpectancyMonths = years * 12
		result, err := s.Optimize(ctx, OptimizationRequest{Person: person, Goal: GoalMaximizeLifetime, Constraints: c})
		if err != nil {
			return nil, err
		}
		out.Results = append(out.Results, *result)
		out.Recommendations = append(out.Recommendations,
			fmt.Sprintf("Living to %d: claim at %s for %s lifetime", years, result.Best.Option.AgeLabel(), result.Best.LifetimeBenefits.StringFixed(0)))
	}
	return out, nil
}

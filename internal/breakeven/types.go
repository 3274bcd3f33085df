package breakeven

import (
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMaximizeLifetime OptimizationGoal = "maximize_lifetime" // Maximize nominal benefits received by the life expectancy
	GoalMaximizeMonthly  OptimizationGoal = "maximize_monthly"  // Maximize the monthly benefit
)

// Claim ages the solver may consider, in months.
const (
	MinClaimAgeMonths = 62 * 12
	MaxClaimAgeMonths = 70 * 12
)

// Constraints define bounds for optimization parameters
type Constraints struct {
	// Claim age window, in months of age
	MinClaimAgeMonths *int `json:"min_claim_age_months,omitempty"`
	MaxClaimAgeMonths *int `json:"max_claim_age_months,omitempty"`

	// Assumed age at death, in months. Required for GoalMaximizeLifetime.
	LifeExpectancyMonths int `json:"life_expectancy_months"`
}

// DefaultConstraints returns the full claiming window with the given life expectancy in years
func DefaultConstraints(lifeExpectancyYears int) Constraints {
	minAge := MinClaimAgeMonths
	maxAge := MaxClaimAgeMonths
	return Constraints{
		MinClaimAgeMonths:    &minAge,
		MaxClaimAgeMonths:    &maxAge,
		LifeExpectancyMonths: lifeExpectancyYears * 12,
	}
}

// window returns the claim age bounds with defaults applied
func (c *Constraints) window() (int, int) {
	lo, hi := MinClaimAgeMonths, MaxClaimAgeMonths
	if c.MinClaimAgeMonths != nil {
		lo = *c.MinClaimAgeMonths
	}
	if c.MaxClaimAgeMonths != nil {
		hi = *c.MaxClaimAgeMonths
	}
	return lo, hi
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Person      *domain.Person
	Goal        OptimizationGoal
	Constraints Constraints
}

// EvaluatedOption is a claim option with its cumulative benefits at the life expectancy
type EvaluatedOption struct {
	Option           domain.ClaimOption `json:"option"`
	LifetimeBenefits decimal.Decimal    `json:"lifetime_benefits"`
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info,omitempty"`

	Best      EvaluatedOption   `json:"best"`
	Evaluated []EvaluatedOption `json:"evaluated"`

	// Break-even of the best option against the earliest one in the window
	VersusEarliest *BreakEvenPoint `json:"versus_earliest,omitempty"`
}

// BreakEvenPoint is where cumulative benefits of a later claim overtake an earlier one
type BreakEvenPoint struct {
	Earlier domain.ClaimOption `json:"earlier"`
	Later   domain.ClaimOption `json:"later"`

	// Found is false when the later claim never catches up
	Found         bool            `json:"found"`
	CrossoverDate time.Time       `json:"crossover_date,omitempty"`
	CrossoverAge  int             `json:"crossover_age_months,omitempty"`
	Cumulative    decimal.Decimal `json:"cumulative_at_crossover,omitempty"`
}

// LifeExpectancyResult contains the best claim for each assumed life expectancy
type LifeExpectancyResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver
type SolverOptions struct {
	StepMonths int // Claim months between evaluated options
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{StepMonths: 1}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	lo, hi := c.window()
	if lo > hi {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_claim_age cannot be greater than max_claim_age",
		}
	}
	if lo < MinClaimAgeMonths || hi > MaxClaimAgeMonths {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "claim age must be between 62 and 70",
		}
	}
	if c.LifeExpectancyMonths < 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "life expectancy cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

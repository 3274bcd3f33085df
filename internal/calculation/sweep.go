package calculation

import (
	"context"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"golang.org/x/sync/errgroup"
)

// DefaultSweepConcurrency bounds the goroutines used by SweepClaimDates.
const DefaultSweepConcurrency = 4

// SweepClaimDates evaluates the monthly retirement benefit for every claim
// month from earliest eligibility through age 70. Options are returned in
// claim date order.
func (ce *CalculationEngine) SweepClaimDates(ctx context.Context, req domain.BenefitRequest) ([]domain.ClaimOption, error) {
	if req.BirthDate.IsZero() {
		return nil, domain.NewCalculationError("sweep", "birth date is required", domain.ErrMissingInput)
	}
	dates, err := NewRetirementDates(req.BirthDate, req.BirthDate)
	if err != nil {
		return nil, err
	}

	months := dateutil.MonthsBetween(dates.MaximumCreditable, dates.EarliestEligible)
	options := make([]domain.ClaimOption, months+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ce.opts.SweepConcurrency)
	for i := range options {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			claim := dateutil.AddMonthsClamped(dates.EarliestEligible, i)
			r := req
			r.ClaimDate = claim
			result, err := ce.CalculateRetirement(r)
			if err != nil {
				return err
			}
			options[i] = domain.ClaimOption{
				ClaimDate:            claim,
				AgeMonths:            EarliestEligibilityAge*12 + i,
				MonthsFromFRA:        dateutil.MonthsBetween(claim, dates.FullRetirement),
				NormalMonthlyBenefit: result.NormalMonthlyBenefit,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ce.Logger.Debugf("sweep: evaluated %d claim months", len(options))
	return options, nil
}

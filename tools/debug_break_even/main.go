package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rgehrsitz/ssbenefit/internal/breakeven"
	calc "github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/config"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// Prints cumulative benefits month by month for the first two scenarios of a
// file, to check a break-even point by hand.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <scenario-file> [months]")
		return
	}
	months := 360
	if len(os.Args) > 2 {
		if _, err := fmt.Sscanf(os.Args[2], "%d", &months); err != nil {
			panic(err)
		}
	}

	cfg, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	if len(cfg.Scenarios) < 2 {
		fmt.Println("need two scenarios")
		return
	}

	engine := calc.NewCalculationEngine(wageindex.MustDefault(), calc.Options{})
	report, err := engine.RunConfiguration(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	a, b := option(report.Results[0]), option(report.Results[1])
	if b.ClaimDate.Before(a.ClaimDate) {
		a, b = b, a
	}
	fmt.Printf("A: claim %s at %s, %s/month\n", dateutil.FormatDate(a.ClaimDate), a.AgeLabel(), a.NormalMonthlyBenefit.StringFixed(2))
	fmt.Printf("B: claim %s at %s, %s/month\n", dateutil.FormatDate(b.ClaimDate), b.AgeLabel(), b.NormalMonthlyBenefit.StringFixed(2))

	fmt.Println("Month,Date,Age,CumA,CumB,Diff")
	for m := 0; m <= months; m++ {
		at := dateutil.AddMonthsClamped(a.ClaimDate, m)
		cumA := breakeven.CumulativeBenefits(a, at)
		cumB := breakeven.CumulativeBenefits(b, at)
		fmt.Printf("%d,%s,%s,%s,%s,%s\n", m, dateutil.FormatDate(at), domain.FormatAgeMonths(a.AgeMonths+m),
			cumA.StringFixed(0), cumB.StringFixed(0), cumB.Sub(cumA).StringFixed(0))
	}

	if dateutil.MonthsBetween(b.ClaimDate, a.ClaimDate) > 0 {
		point, err := breakeven.BreakEven(a, b)
		if err != nil {
			panic(err)
		}
		if point.Found {
			fmt.Printf("Break-even at %s (%s)\n", domain.FormatAgeMonths(point.CrossoverAge), dateutil.FormatDate(point.CrossoverDate))
		} else {
			fmt.Println("No break-even")
		}
	}
}

func option(sr domain.ScenarioResult) domain.ClaimOption {
	dates := sr.Result.Dates
	return domain.ClaimOption{
		ClaimDate:            dates.EffectiveClaim,
		AgeMonths:            calc.EarliestEligibilityAge*12 + dateutil.MonthsBetween(dates.EffectiveClaim, dates.EarliestEligible),
		MonthsFromFRA:        dateutil.MonthsBetween(dates.EffectiveClaim, dates.FullRetirement),
		NormalMonthlyBenefit: sr.Result.NormalMonthlyBenefit,
	}
}

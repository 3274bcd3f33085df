package transform

import (
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/shopspring/decimal"
)

// SetEarnings adds or replaces the earnings posted for one year.
type SetEarnings struct {
	Year   int
	Amount decimal.Decimal
}

func (se *SetEarnings) Name() string {
	return "set_earnings"
}

func (se *SetEarnings) Description() string {
	return fmt.Sprintf("Set %d earnings to %s", se.Year, se.Amount.StringFixed(2))
}

func (se *SetEarnings) Validate(base *domain.Case) error {
	if base == nil {
		return NewTransformError(se.Name(), "validate", "base case cannot be nil", nil)
	}
	if se.Year <= 0 {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("invalid year %d", se.Year), domain.ErrInvalidEarnings)
	}
	if se.Amount.IsNegative() {
		return NewTransformError(se.Name(), "validate", "amount cannot be negative", domain.ErrInvalidEarnings)
	}
	return nil
}

func (se *SetEarnings) Apply(base *domain.Case) (*domain.Case, error) {
	modified := base.DeepCopy()
	for i := range modified.Person.Earnings {
		if modified.Person.Earnings[i].Year == se.Year {
			modified.Person.Earnings[i].Amount = se.Amount
			return modified, nil
		}
	}
	modified.Person.Earnings = append(modified.Person.Earnings, domain.EarningsRecord{Year: se.Year, Amount: se.Amount})
	return modified, nil
}

// StopWork removes all earnings from a year onward.
type StopWork struct {
	Year int
}

func (sw *StopWork) Name() string {
	return "stop_work"
}

func (sw *StopWork) Description() string {
	return fmt.Sprintf("Stop working at the start of %d", sw.Year)
}

func (sw *StopWork) Validate(base *domain.Case) error {
	if base == nil {
		return NewTransformError(sw.Name(), "validate", "base case cannot be nil", nil)
	}
	if sw.Year <= base.Person.BirthDate.Year() {
		return NewTransformError(sw.Name(), "validate", fmt.Sprintf("year %d is not after the birth year", sw.Year), nil)
	}
	return nil
}

func (sw *StopWork) Apply(base *domain.Case) (*domain.Case, error) {
	modified := base.DeepCopy()
	kept := modified.Person.Earnings[:0]
	for _, rec := range modified.Person.Earnings {
		if rec.Year < sw.Year {
			kept = append(kept, rec)
		}
	}
	modified.Person.Earnings = kept
	if len(kept) == 0 {
		return nil, NewTransformError(sw.Name(), "apply", fmt.Sprintf("no earnings remain before %d", sw.Year), domain.ErrMissingInput)
	}
	return modified, nil
}

package domain

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// Error kinds returned by the benefit engine. They signal caller misuse or an
// incomplete reference table and are never worth retrying.
var (
	ErrMissingInput         = errors.New("missing input")
	ErrInvalidDateOrder     = errors.New("invalid date order")
	ErrMissingWageIndexData = errors.New("missing wage index data")
	ErrInvalidBirthYear     = dateutil.ErrInvalidBirthYear
	ErrInvalidEarnings      = errors.New("invalid earnings")
	ErrInvalidDate          = errors.New("invalid date")
)

// CalculationError describes where a benefit calculation failed. Err holds one
// of the error kinds above (possibly wrapped) so errors.Is works on the result.
type CalculationError struct {
	Operation string
	Reason    string
	Err       error
}

func (e *CalculationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// NewCalculationError creates a new CalculationError.
func NewCalculationError(operation, reason string, err error) error {
	return &CalculationError{
		Operation: operation,
		Reason:    reason,
		Err:       err,
	}
}

// ErrorCode returns a stable identifier for the kind of err, for API and UI use.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return "MISSING_INPUT"
	case errors.Is(err, ErrInvalidDateOrder):
		return "INVALID_DATE_ORDER"
	case errors.Is(err, ErrMissingWageIndexData):
		return "MISSING_WAGE_INDEX_DATA"
	case errors.Is(err, ErrInvalidBirthYear):
		return "INVALID_BIRTH_YEAR"
	case errors.Is(err, ErrInvalidEarnings):
		return "INVALID_EARNINGS"
	case errors.Is(err, ErrInvalidDate):
		return "INVALID_DATE"
	default:
		return "INTERNAL"
	}
}

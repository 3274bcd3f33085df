package transform

import (
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
)

// CaseTransform defines the interface for all what-if transformations.
// Transforms are composable operations that modify a person/scenario case in
// predictable ways, enabling scenario comparison, break-even analysis and
// interactive exploration.
type CaseTransform interface {
	// Apply transforms a base case and returns a new modified case.
	// The base is never modified.
	Apply(base *domain.Case) (*domain.Case, error)

	// Name returns a short identifier for this transform (e.g., "delay_claim").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base *domain.Case) error
}

// ApplyTransforms applies a sequence of transforms to a base case.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *domain.Case, transforms []CaseTransform) (*domain.Case, error) {
	if base == nil {
		return nil, fmt.Errorf("base case cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

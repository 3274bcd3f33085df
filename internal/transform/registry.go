package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands
// and the transforms listed in scenario files.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (CaseTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("delay_claim", createDelayClaim)
	registry.Register("set_claim_date", createSetClaimDate)
	registry.Register("set_claim_age", createSetClaimAge)
	registry.Register("set_earnings", createSetEarnings)
	registry.Register("stop_work", createStopWork)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (CaseTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "delay_claim:months=12"
func (r *TransformRegistry) ParseTransformSpec(spec string) (CaseTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses every spec, failing on the first invalid one.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]CaseTransform, error) {
	transforms := make([]CaseTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// ApplySpecs parses specs and applies them to base in order.
func (r *TransformRegistry) ApplySpecs(base *domain.Case, specs []string) (*domain.Case, error) {
	transforms, err := r.ParseTransformSpecs(specs)
	if err != nil {
		return nil, err
	}
	return ApplyTransforms(base, transforms)
}

// Resolve applies the scenario's own transforms and returns a case with none
// left pending, ready for further edits such as a template.
func (r *TransformRegistry) Resolve(base *domain.Case) (*domain.Case, error) {
	if base == nil {
		return nil, fmt.Errorf("base case cannot be nil")
	}
	resolved, err := r.ApplySpecs(base, base.Scenario.Transforms)
	if err != nil {
		return nil, err
	}
	resolved.Scenario.Transforms = nil
	return resolved, nil
}

// Factory functions for each transform

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createDelayClaim(params map[string]string) (CaseTransform, error) {
	months, err := intParam("delay_claim", params, "months")
	if err != nil {
		return nil, err
	}
	return &DelayClaim{Months: months}, nil
}

func createSetClaimDate(params map[string]string) (CaseTransform, error) {
	dateStr, ok := params["date"]
	if !ok {
		return nil, fmt.Errorf("set_claim_date requires 'date' parameter")
	}
	date, err := dateutil.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &SetClaimDate{Date: date}, nil
}

func createSetClaimAge(params map[string]string) (CaseTransform, error) {
	years, err := intParam("set_claim_age", params, "years")
	if err != nil {
		return nil, err
	}
	months := 0
	if _, ok := params["months"]; ok {
		if months, err = intParam("set_claim_age", params, "months"); err != nil {
			return nil, err
		}
	}
	return &SetClaimAge{Years: years, Months: months}, nil
}

func createSetEarnings(params map[string]string) (CaseTransform, error) {
	year, err := intParam("set_earnings", params, "year")
	if err != nil {
		return nil, err
	}
	amountStr, ok := params["amount"]
	if !ok {
		return nil, fmt.Errorf("set_earnings requires 'amount' parameter")
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}
	return &SetEarnings{Year: year, Amount: amount}, nil
}

func createStopWork(params map[string]string) (CaseTransform, error) {
	year, err := intParam("stop_work", params, "year")
	if err != nil {
		return nil, err
	}
	return &StopWork{Year: year}, nil
}

package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/transform"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct {
	transforms *transform.TransformRegistry
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{transforms: transform.NewTransformRegistry()}
}

// LoadFromFile loads a configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration data
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Persons) == 0 {
		return fmt.Errorf("at least one person is required")
	}
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario is required")
	}

	names := make(map[string]bool, len(config.Persons))
	for i := range config.Persons {
		p := &config.Persons[i]
		if err := ip.validatePerson(p); err != nil {
			return fmt.Errorf("person %d (%s) validation failed: %w", i, p.Name, err)
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate person name: %s", p.Name)
		}
		names[p.Name] = true
	}

	scenarios := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		s := &config.Scenarios[i]
		if err := ip.validateScenario(s, config); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, s.Name, err)
		}
		if scenarios[s.Name] {
			return fmt.Errorf("duplicate scenario name: %s", s.Name)
		}
		scenarios[s.Name] = true
	}
	return nil
}

func (ip *InputParser) validatePerson(p *domain.Person) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required: %w", domain.ErrMissingInput)
	}
	if _, err := dateutil.FullRetirementAgeMonths(dateutil.PrecedingDay(p.BirthDate).Year()); err != nil {
		return err
	}
	if len(p.Earnings) == 0 {
		return fmt.Errorf("earnings history cannot be empty: %w", domain.ErrMissingInput)
	}
	if _, err := p.Earnings.ByYear(); err != nil {
		return err
	}
	return nil
}

func (ip *InputParser) validateScenario(s *domain.Scenario, config *domain.Configuration) error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	person, ok := config.FindPerson(s.Person)
	if !ok {
		return fmt.Errorf("scenario references unknown person: %s", s.Person)
	}

	if s.ClaimAge != nil {
		if s.ClaimAge.Years < 0 || s.ClaimAge.Months < 0 || s.ClaimAge.Months > 11 {
			return fmt.Errorf("claim age must be whole years and 0-11 months, got %dy %dm", s.ClaimAge.Years, s.ClaimAge.Months)
		}
	}
	claim, err := s.ResolveClaimDate(person.BirthDate)
	if err != nil {
		return err
	}
	if claim.Before(person.BirthDate) {
		return fmt.Errorf("claim date %s is before birth date: %w", dateutil.FormatDate(claim), domain.ErrInvalidDateOrder)
	}

	for _, spec := range s.Transforms {
		if _, err := ip.transforms.ParseTransformSpec(spec); err != nil {
			return fmt.Errorf("transform %q: %w", spec, err)
		}
	}
	return nil
}

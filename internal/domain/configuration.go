package domain

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// Person is a worker whose benefits are calculated
type Person struct {
	Name      string          `yaml:"name" json:"name"`
	BirthDate time.Time       `yaml:"birth_date" json:"birth_date"`
	Earnings  EarningsHistory `yaml:"earnings" json:"earnings"`
}

// ClaimAge is an age expressed in years and months
type ClaimAge struct {
	Years  int `yaml:"years" json:"years"`
	Months int `yaml:"months,omitempty" json:"months,omitempty"`
}

// TotalMonths returns the age in months
func (ca ClaimAge) TotalMonths() int {
	return ca.Years*12 + ca.Months
}

// Scenario describes one calculation to run for a person
type Scenario struct {
	Name              string     `yaml:"name" json:"name"`
	Person            string     `yaml:"person" json:"person"`
	ClaimDate         *time.Time `yaml:"claim_date,omitempty" json:"claim_date,omitempty"`
	ClaimAge          *ClaimAge  `yaml:"claim_age,omitempty" json:"claim_age,omitempty"`
	IncludeDisability bool       `yaml:"include_disability,omitempty" json:"include_disability,omitempty"`
	IncludeSurvivor   bool       `yaml:"include_survivor,omitempty" json:"include_survivor,omitempty"`
	Sweep             bool       `yaml:"sweep,omitempty" json:"sweep,omitempty"`
	Transforms        []string   `yaml:"transforms,omitempty" json:"transforms,omitempty"`
}

// ResolveClaimDate returns the scenario's claim date for the given birth date.
// An explicit claim date wins over a claim age. A claim age keeps the birth
// day, clamped to the last day of a shorter month.
func (s Scenario) ResolveClaimDate(birthDate time.Time) (time.Time, error) {
	switch {
	case s.ClaimDate != nil && !s.ClaimDate.IsZero():
		return *s.ClaimDate, nil
	case s.ClaimAge != nil:
		return dateutil.AddMonthsClamped(birthDate, s.ClaimAge.TotalMonths()), nil
	default:
		return time.Time{}, NewCalculationError("scenario", fmt.Sprintf("scenario %q has neither claim_date nor claim_age", s.Name), ErrMissingInput)
	}
}

// DeepCopy returns an independent copy of the scenario
func (s *Scenario) DeepCopy() *Scenario {
	if s == nil {
		return nil
	}
	out := *s
	if s.ClaimDate != nil {
		cd := *s.ClaimDate
		out.ClaimDate = &cd
	}
	if s.ClaimAge != nil {
		ca := *s.ClaimAge
		out.ClaimAge = &ca
	}
	if s.Transforms != nil {
		out.Transforms = append([]string(nil), s.Transforms...)
	}
	return &out
}

// Case pairs a scenario with the person it is run for. Scenario transforms
// operate on cases so they can change earnings as well as claim timing.
type Case struct {
	Person   Person   `yaml:"person" json:"person"`
	Scenario Scenario `yaml:"scenario" json:"scenario"`
}

// DeepCopy returns an independent copy of the case
func (c *Case) DeepCopy() *Case {
	if c == nil {
		return nil
	}
	out := &Case{Person: c.Person, Scenario: *c.Scenario.DeepCopy()}
	out.Person.Earnings = c.Person.Earnings.Clone()
	return out
}

// Configuration represents the complete input configuration
type Configuration struct {
	Persons   []Person   `yaml:"persons" json:"persons"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// FindPerson returns the person with the given name
func (c *Configuration) FindPerson(name string) (*Person, bool) {
	for i := range c.Persons {
		if c.Persons[i].Name == name {
			return &c.Persons[i], true
		}
	}
	return nil, false
}

// FindScenario returns the scenario with the given name
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// ScenarioResult is the calculated outcome of one scenario
type ScenarioResult struct {
	Name    string         `yaml:"name" json:"name"`
	Person  string         `yaml:"person" json:"person"`
	Request BenefitRequest `yaml:"-" json:"-"`
	Result  *BenefitResult `yaml:"result" json:"result"`
	Sweep   []ClaimOption  `yaml:"sweep,omitempty" json:"sweep,omitempty"`
}

// Report collects the results of a configuration run
type Report struct {
	GeneratedAt time.Time        `yaml:"generated_at" json:"generated_at"`
	Results     []ScenarioResult `yaml:"results" json:"results"`
}

// FormatAgeMonths renders an age in months as "66y 4m".
func FormatAgeMonths(months int) string {
	return fmt.Sprintf("%dy %dm", months/12, months%12)
}

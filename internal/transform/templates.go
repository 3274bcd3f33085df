package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []CaseTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common claiming strategies
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "claim_62",
		Description: "Claim at the earliest eligibility age",
		Transforms:  []CaseTransform{&SetClaimAge{Years: 62}},
	})
	registry.Register(Template{
		Name:        "claim_67",
		Description: "Claim at 67, full retirement age for 1960 and later births",
		Transforms:  []CaseTransform{&SetClaimAge{Years: 67}},
	})
	registry.Register(Template{
		Name:        "claim_70",
		Description: "Claim at 70 with the maximum delayed retirement credit",
		Transforms:  []CaseTransform{&SetClaimAge{Years: 70}},
	})

	for _, years := range []int{1, 2, 3} {
		registry.Register(Template{
			Name:        fmt.Sprintf("delay_%dyr", years),
			Description: fmt.Sprintf("Delay the claim by %d year(s) (%d months)", years, years*12),
			Transforms:  []CaseTransform{&DelayClaim{Months: years * 12}},
		})
	}

	return registry
}

// ApplyTemplate applies a template to a base case
func ApplyTemplate(base *domain.Case, template Template) (*domain.Case, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-12s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  ssbenefit calculate scenarios.yaml --template claim_70\n")
	sb.WriteString("  ssbenefit calculate scenarios.yaml --template claim_62,delay_1yr\n")
	sb.WriteString("  ssbenefit compare scenarios.yaml --base <scenario> --with claim_62,claim_70\n")

	return sb.String()
}

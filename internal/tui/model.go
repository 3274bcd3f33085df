package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/config"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/tui/components"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene
	keys          KeyMap

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration
	calcEngine *calculation.CalculationEngine

	// Current selections
	selectedIndex int
	result        *domain.ScenarioResult
	slider        *components.ClaimSlider

	// Claim date entry
	claimInput textinput.Model
	editing    bool

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(configPath string, engine *calculation.CalculationEngine) Model {
	input := textinput.New()
	input.Placeholder = "YYYY-MM-DD"
	input.CharLimit = 10
	input.Width = 12

	return Model{
		currentScene:   SceneScenarios,
		keys:           DefaultKeyMap(),
		configPath:     configPath,
		calcEngine:     engine,
		claimInput:     input,
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading " + configPath + "...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// calculateScenarioCmd runs a scenario together with its claim-date sweep
func calculateScenarioCmd(engine *calculation.CalculationEngine, person domain.Person, scenario domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		s := scenario.DeepCopy()
		s.Sweep = true
		result, err := engine.RunScenario(context.Background(), &person, s)
		return CalculationCompleteMsg{ScenarioName: scenario.Name, Result: result, Err: err}
	}
}

// recalculateAtCmd reruns a scenario with its claim date replaced
func recalculateAtCmd(engine *calculation.CalculationEngine, person domain.Person, scenario domain.Scenario, claim time.Time) tea.Cmd {
	return func() tea.Msg {
		s := scenario.DeepCopy()
		s.Sweep = false
		s.Transforms = append(s.Transforms, fmt.Sprintf("set_claim_date:date=%s", dateutil.FormatDate(claim)))
		sr, err := engine.RunScenario(context.Background(), &person, s)
		if err != nil {
			return ClaimRecalculatedMsg{ScenarioName: scenario.Name, Err: err}
		}
		return ClaimRecalculatedMsg{ScenarioName: scenario.Name, Result: sr.Result}
	}
}

// selectedScenario returns the highlighted scenario and its person
func (m Model) selectedScenario() (*domain.Scenario, *domain.Person, bool) {
	if m.config == nil || m.selectedIndex < 0 || m.selectedIndex >= len(m.config.Scenarios) {
		return nil, nil, false
	}
	s := &m.config.Scenarios[m.selectedIndex]
	p, ok := m.config.FindPerson(s.Person)
	if !ok {
		return nil, nil, false
	}
	return s, p, true
}

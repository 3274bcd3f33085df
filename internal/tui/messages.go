package tui

import (
	"github.com/rgehrsitz/ssbenefit/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneScenarios Scene = iota
	SceneResults
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneScenarios:
		return "Scenarios"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// CalculationCompleteMsg carries a scenario result with its claim sweep
type CalculationCompleteMsg struct {
	ScenarioName string
	Result       *domain.ScenarioResult
	Err          error
}

// ClaimRecalculatedMsg carries the result for a typed claim date
type ClaimRecalculatedMsg struct {
	ScenarioName string
	Result       *domain.BenefitResult
	Err          error
}

package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ssbenefit/internal/tui/components"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.loading = false
		m.selectedIndex = 0
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		m.slider = components.NewClaimSlider(msg.Result.Sweep)
		m.slider.SelectDate(msg.Result.Result.Dates.EffectiveClaim)
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil

	case ClaimRecalculatedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		if m.result != nil && m.result.Name == msg.ScenarioName {
			m.result.Result = msg.Result
			if m.slider != nil {
				m.slider.SelectDate(msg.Result.Dates.EffectiveClaim)
			}
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// An error screen is dismissed by any key
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	if m.editing {
		return m.handleClaimInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentScene != SceneHelp {
			return m, navigate(SceneHelp)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		switch {
		case m.currentScene == SceneHelp && m.previousScene != SceneHelp:
			return m, navigate(m.previousScene)
		case m.currentScene != SceneScenarios:
			return m, navigate(SceneScenarios)
		}
		return m, nil
	}

	switch m.currentScene {
	case SceneScenarios:
		return m.updateScenarios(msg)
	case SceneResults:
		return m.updateResults(msg)
	}
	return m, nil
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateScenarios handles keys on the scenario list
func (m Model) updateScenarios(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.config == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedIndex < len(m.config.Scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(msg, m.keys.Select):
		scenario, person, ok := m.selectedScenario()
		if !ok {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = fmt.Sprintf("Calculating %s...", scenario.Name)
		return m, calculateScenarioCmd(m.calcEngine, *person, *scenario)
	}
	return m, nil
}

// updateResults handles keys on the results screen
func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.slider == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Left):
		m.slider.Move(-1)
	case key.Matches(msg, m.keys.Right):
		m.slider.Move(1)
	case key.Matches(msg, m.keys.YearLeft):
		m.slider.Move(-12)
	case key.Matches(msg, m.keys.YearRight):
		m.slider.Move(12)
	case key.Matches(msg, m.keys.EditDate):
		m.editing = true
		m.claimInput.SetValue("")
		return m, m.claimInput.Focus()
	}
	return m, nil
}

// handleClaimInput feeds keys to the claim date input until it is
// submitted or cancelled
func (m Model) handleClaimInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.claimInput.Blur()
		return m, nil

	case tea.KeyEnter:
		m.editing = false
		m.claimInput.Blur()
		claim, err := dateutil.ParseDate(m.claimInput.Value())
		if err != nil {
			m.err = fmt.Errorf("claim date %q: %w", m.claimInput.Value(), err)
			return m, nil
		}
		scenario, person, ok := m.selectedScenario()
		if !ok {
			m.err = errors.New("no scenario selected")
			return m, nil
		}
		m.loading = true
		m.loadingMessage = fmt.Sprintf("Recalculating %s for %s...", scenario.Name, dateutil.FormatDate(claim))
		return m, recalculateAtCmd(m.calcEngine, *person, *scenario, claim)
	}

	var cmd tea.Cmd
	m.claimInput, cmd = m.claimInput.Update(msg)
	return m, cmd
}

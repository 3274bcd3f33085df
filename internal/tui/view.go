package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/tui/components"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneScenarios:
		content = m.renderScenarios()
	case SceneResults:
		content = m.renderResults()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(1, contentHeight)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("SSBENEFIT - Social Security Benefits")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneResults && m.result != nil {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.result.Name)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneScenarios:
		shortcuts = append(shortcuts, formatShortcut("↑↓", "select"), formatShortcut("enter", "calculate"))
	case SceneResults:
		shortcuts = append(shortcuts, formatShortcut("←→", "month"), formatShortcut("[ ]", "year"),
			formatShortcut("e", "claim date"), formatShortcut("esc", "scenarios"))
	case SceneHelp:
		shortcuts = append(shortcuts, formatShortcut("esc", "back"))
	}
	shortcuts = append(shortcuts, formatShortcut("?", "help"), formatShortcut("q", "quit"))

	statusText := strings.Join(shortcuts, " • ")

	if m.config != nil {
		configName := SubtitleStyle.Render(m.configPath)
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(configName) - 2
		spacer := strings.Repeat(" ", max(1, width))
		statusText = statusText + spacer + configName
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

// renderError renders an error message
func (m Model) renderError() string {
	msg := m.err.Error()
	if code := domain.ErrorCode(m.err); code != "INTERNAL" {
		msg = fmt.Sprintf("[%s] %s", code, msg)
	}
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", msg),
	)
	return m.renderApp(content)
}

// renderScenarios renders the scenario list
func (m Model) renderScenarios() string {
	if m.config == nil || len(m.config.Scenarios) == 0 {
		return BorderStyle.Render("No scenarios in " + m.configPath)
	}

	var b strings.Builder
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d scenarios", len(m.config.Scenarios))))
	b.WriteString("\n\n")
	for i, s := range m.config.Scenarios {
		line := fmt.Sprintf("%-24s %-16s %s", s.Name, s.Person, claimSummary(s))
		if i == m.selectedIndex {
			b.WriteString(SelectedItemStyle.Render("▸ " + line))
		} else {
			b.WriteString(UnselectedItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return BorderStyle.Render(b.String())
}

// claimSummary describes when a scenario claims
func claimSummary(s domain.Scenario) string {
	var parts []string
	switch {
	case s.ClaimDate != nil && !s.ClaimDate.IsZero():
		parts = append(parts, "claim "+dateutil.FormatDate(*s.ClaimDate))
	case s.ClaimAge != nil:
		parts = append(parts, "claim at "+domain.FormatAgeMonths(s.ClaimAge.TotalMonths()))
	}
	if n := len(s.Transforms); n > 0 {
		parts = append(parts, fmt.Sprintf("%d transforms", n))
	}
	return strings.Join(parts, ", ")
}

// renderResults renders the calculated scenario with its claim sweep
func (m Model) renderResults() string {
	if m.result == nil || m.result.Result == nil {
		return BorderStyle.Render("No results yet. Select a scenario and press enter.")
	}
	r := m.result.Result

	cards := []*components.MetricCard{
		components.NewMoneyCard("AIME", r.AIME),
		components.NewMoneyCard("PIA", r.PIA).WithDescription(fmt.Sprintf("eligibility %d", r.EligibilityYear)),
		components.NewMoneyCard("COLA-adjusted PIA", r.COLAAdjustedPIA),
		components.NewMoneyCard("Monthly benefit", r.NormalMonthlyBenefit).
			WithDescription("claim " + dateutil.FormatDate(r.Dates.EffectiveClaim)),
	}
	if r.DisabilityBenefit != nil {
		cards = append(cards, components.NewMoneyCard("Disability", *r.DisabilityBenefit))
	}
	if r.Survivor != nil {
		cards = append(cards, components.NewMoneyCard("Family maximum", r.Survivor.FamilyMaximum))
	}

	sections := []string{
		components.MetricGrid(cards, 3),
		fmt.Sprintf("Full retirement: %s (%s)   Earliest: %s",
			dateutil.FormatDate(r.Dates.FullRetirement),
			domain.FormatAgeMonths(r.Dates.FullRetirementAge),
			dateutil.FormatDate(r.Dates.EarliestEligible)),
	}

	if m.slider != nil {
		width := max(20, min(60, m.width-20))
		slider := m.slider.WithWidth(width).SetFocused(!m.editing)
		sliderView := slider.Render()
		if o, ok := slider.Selected(); ok {
			sliderView += "\n" + components.NewMoneyCard("vs scenario claim", o.NormalMonthlyBenefit).
				WithChange(o.NormalMonthlyBenefit, r.NormalMonthlyBenefit).
				Render()
		}
		sections = append(sections, BorderStyle.Render(sliderView))
		sections = append(sections, components.NewBenefitChart("Monthly benefit by claim age", m.slider.Options).
			WithWidth(width).Render())
	}

	if m.editing {
		sections = append(sections, BorderStyle.Render("Claim date: "+m.claimInput.View()+
			"\n"+HelpDescStyle.Render("enter to recalculate • esc to cancel")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString("SSBENEFIT - Social Security benefit explorer\n\n")
	b.WriteString("KEYBOARD SHORTCUTS:\n")
	for _, k := range m.keys.Bindings() {
		h := k.Help()
		b.WriteString(fmt.Sprintf("  %s %s\n", HelpKeyStyle.Render(fmt.Sprintf("%-8s", h.Key)), HelpDescStyle.Render(h.Desc)))
	}
	b.WriteString("\nThe slider walks every claim month from 62 to 70. Typing a claim date\n")
	b.WriteString("recalculates the scenario as if it claimed on that date.\n")
	return BorderStyle.Render(b.String())
}

package components

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/tui/tuistyles"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// ClaimSlider moves through the claim months of a sweep, one option at a time
type ClaimSlider struct {
	Options   []domain.ClaimOption
	Index     int
	Width     int // Total width of slider bar
	IsFocused bool
}

// NewClaimSlider creates a slider positioned at the full retirement month,
// or the first option when none matches
func NewClaimSlider(options []domain.ClaimOption) *ClaimSlider {
	s := &ClaimSlider{Options: options, Width: 48}
	for i, o := range options {
		if o.MonthsFromFRA == 0 {
			s.Index = i
			break
		}
	}
	return s
}

// WithWidth sets the slider width
func (s *ClaimSlider) WithWidth(width int) *ClaimSlider {
	s.Width = width
	return s
}

// SetFocused sets the focus state
func (s *ClaimSlider) SetFocused(focused bool) *ClaimSlider {
	s.IsFocused = focused
	return s
}

// Move shifts the selection by n months, clamped to the sweep
func (s *ClaimSlider) Move(n int) {
	if len(s.Options) == 0 {
		return
	}
	s.Index = max(0, min(len(s.Options)-1, s.Index+n))
}

// SelectDate positions the slider on the option in the month of date. It
// reports whether such an option exists.
func (s *ClaimSlider) SelectDate(date time.Time) bool {
	for i, o := range s.Options {
		if dateutil.MonthsBetween(o.ClaimDate, date) == 0 {
			s.Index = i
			return true
		}
	}
	return false
}

// Selected returns the current option
func (s *ClaimSlider) Selected() (domain.ClaimOption, bool) {
	if s.Index < 0 || s.Index >= len(s.Options) {
		return domain.ClaimOption{}, false
	}
	return s.Options[s.Index], true
}

// Percentage returns the position as a fraction of the range
func (s *ClaimSlider) Percentage() float64 {
	if len(s.Options) < 2 {
		return 0
	}
	return float64(s.Index) / float64(len(s.Options)-1)
}

// Render returns the styled slider
func (s *ClaimSlider) Render() string {
	o, ok := s.Selected()
	if !ok {
		return tuistyles.InfoStyle.Render("No claim options")
	}

	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if s.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	content.WriteString(labelStyle.Render("Claim age"))
	content.WriteString("\n")
	content.WriteString(valueStyle.Render(fmt.Sprintf("%s  %s  %s/mo  %s",
		o.AgeLabel(), dateutil.FormatDate(o.ClaimDate), tuistyles.FormatCurrency(o.NormalMonthlyBenefit), fraLabel(o.MonthsFromFRA))))
	content.WriteString("\n")
	content.WriteString(s.renderSliderBar())

	first, last := s.Options[0], s.Options[len(s.Options)-1]
	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render(fmt.Sprintf("%s  ─  %s", first.AgeLabel(), last.AgeLabel())))

	if s.IsFocused {
		content.WriteString("\n")
		hint := lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Italic(true)
		content.WriteString(hint.Render("← → month • [ ] year • e to type a date"))
	}
	return content.String()
}

func fraLabel(monthsFromFRA int) string {
	switch {
	case monthsFromFRA < 0:
		return fmt.Sprintf("%d months before FRA", -monthsFromFRA)
	case monthsFromFRA > 0:
		return fmt.Sprintf("%d months after FRA", monthsFromFRA)
	default:
		return "at FRA"
	}
}

// renderSliderBar draws the track with the thumb at the selected month
func (s *ClaimSlider) renderSliderBar() string {
	filled := int(math.Round(float64(s.Width) * s.Percentage()))
	filled = max(0, min(s.Width, filled))
	empty := s.Width - filled

	thumbStyle := tuistyles.SliderThumbStyle
	if s.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty > 1 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")
	return bar.String()
}

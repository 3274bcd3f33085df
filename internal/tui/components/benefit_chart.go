package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// BenefitChart draws horizontal bars of the monthly benefit for each whole-year
// claim age in a sweep
type BenefitChart struct {
	Title   string
	Options []domain.ClaimOption
	Width   int // width of the longest bar
}

// NewBenefitChart creates a chart over options
func NewBenefitChart(title string, options []domain.ClaimOption) *BenefitChart {
	return &BenefitChart{Title: title, Options: options, Width: 40}
}

// WithWidth sets the bar width
func (c *BenefitChart) WithWidth(width int) *BenefitChart {
	c.Width = width
	return c
}

// Rows returns the options drawn: whole-year ages plus the FRA month
func (c *BenefitChart) Rows() []domain.ClaimOption {
	var rows []domain.ClaimOption
	for _, o := range c.Options {
		if o.AgeMonths%12 == 0 || o.MonthsFromFRA == 0 {
			rows = append(rows, o)
		}
	}
	return rows
}

// Render returns the styled chart
func (c *BenefitChart) Render() string {
	rows := c.Rows()
	if len(rows) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n\n")
	}

	top := rows[0].NormalMonthlyBenefit
	for _, o := range rows {
		if o.NormalMonthlyBenefit.GreaterThan(top) {
			top = o.NormalMonthlyBenefit
		}
	}

	for _, o := range rows {
		length := 0
		if top.IsPositive() {
			length = int(o.NormalMonthlyBenefit.Mul(decimal.NewFromInt(int64(c.Width))).Div(top).IntPart())
		}
		color := tuistyles.ColorBar
		if o.MonthsFromFRA == 0 {
			color = tuistyles.ColorFRA
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", length))
		content.WriteString(fmt.Sprintf("%-7s %s %s\n", o.AgeLabel(), bar, tuistyles.FormatCurrency(o.NormalMonthlyBenefit)))
	}
	return content.String()
}

package tui

import (
	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	tabActiveStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	colHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	linkStyle      = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("12"))
	loadingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Padding(1, 2)
	panelStyle     = lipgloss.NewStyle().Padding(1, 2)

	classStyles = map[string]lipgloss.Style{
		market.ClassVeryPositive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		market.ClassPositive:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		market.ClassNeutral:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		market.ClassNegative:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		market.ClassVeryNegative: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
)

// classStyle returns the style for a presentation class, falling back to neutral.
func classStyle(class string) lipgloss.Style {
	if s, ok := classStyles[class]; ok {
		return s
	}
	return classStyles[market.ClassDefault]
}

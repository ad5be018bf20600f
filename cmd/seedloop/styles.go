package main

import "github.com/charmbracelet/lipgloss"

// Styles for report rendering.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// rateStyle colors a success rate: green when strong, red when weak.
func rateStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 0.7:
		return goodStyle
	case rate < 0.4:
		return badStyle
	}
	return mutedStyle
}

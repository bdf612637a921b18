package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	privateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	urlStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

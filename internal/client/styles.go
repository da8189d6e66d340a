package client

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	promptStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	metaStyle   = lipgloss.NewStyle().Faint(true)
)

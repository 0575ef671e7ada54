package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle     = lipgloss.NewStyle().Padding(1, 2)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("222")).Italic(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	faceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#61afef")
	colorDim    = lipgloss.Color("#5c6370")
	colorError  = lipgloss.Color("#e06c75")
	colorOK     = lipgloss.Color("#98c379")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	activeColStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Underline(true)
	filterStyle    = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(colorOK)
	dimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle      = lipgloss.NewStyle().Foreground(colorOK)
)

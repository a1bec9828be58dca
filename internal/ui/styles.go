package ui

import "github.com/charmbracelet/lipgloss"

// Styles kept local to the ui package.
var (
	styleAce = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ee00ee")).
			Bold(true)
	styleTyped = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0000ee")).
			Bold(true)
	stylePreview = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00eeee")).
			Bold(true)
	styleLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8c8c8"))
	styleDesc     = lipgloss.NewStyle().Faint(true)
	styleModeline = lipgloss.NewStyle().
			Background(lipgloss.Color("#5f5f5f")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)
	stylePreviewBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	styleLineNum = lipgloss.NewStyle().Faint(true)
)

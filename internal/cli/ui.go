package cli

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Panel Styles
// =============================================================================

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	styleGroup = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	styleLabel = lipgloss.NewStyle().Foreground(colorGray)

	styleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	styleStatus = lipgloss.NewStyle().Foreground(colorGreen)

	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleHelp = lipgloss.NewStyle().Foreground(colorDim)

	stylePreviewOn = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

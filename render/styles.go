package render

import "github.com/charmbracelet/lipgloss"

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	subtle    = lipgloss.AdaptiveColor{Light: "#9A9A9A", Dark: "#626262"}
	warning   = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F55081"}

	dirStyle    = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	markStyle   = lipgloss.NewStyle().Foreground(warning)
	branchStyle = lipgloss.NewStyle().Foreground(subtle)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	nameStyle   = lipgloss.NewStyle().Underline(true)
)

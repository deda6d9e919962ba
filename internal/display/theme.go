package display

import "github.com/charmbracelet/lipgloss"

// Terminal palette for transcript rendering.
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	colorYellow = lipgloss.AdaptiveColor{Light: "130", Dark: "220"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "26", Dark: "39"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "245", Dark: "243"}
	colorLight  = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}

	toolStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	textStyle     = lipgloss.NewStyle().Foreground(colorLight)
	userStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	thinkingStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	commitStyle   = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
)

const (
	iconRobot   = "⏺"
	iconChevron = ">"
	treeChar    = "⎿" // tree connector for sub-content
)

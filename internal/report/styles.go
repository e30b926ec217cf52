package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskpulse/internal/analytics"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#6C63FF")
	ColorSecondary = lipgloss.Color("#2EC4B6")
	ColorMuted     = lipgloss.Color("#666666")
	ColorSuccess   = lipgloss.Color("#2ECC71")
	ColorWarning   = lipgloss.Color("#F39C12")
	ColorError     = lipgloss.Color("#E74C3C")
	ColorFg        = lipgloss.Color("#C0CAF5")
	ColorSubtle    = lipgloss.Color("#414868")
	ColorHighlight = lipgloss.Color("#7AA2F7")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFg)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// iconStyles colors each summary card glyph.
var iconStyles = map[string]lipgloss.Style{
	analytics.IconTotal:      lipgloss.NewStyle().Foreground(ColorHighlight),
	analytics.IconCompleted:  lipgloss.NewStyle().Foreground(ColorSuccess),
	analytics.IconInProgress: lipgloss.NewStyle().Foreground(ColorWarning),
	analytics.IconOverdue:    lipgloss.NewStyle().Foreground(ColorError),
}

var icons = map[string]string{
	analytics.IconTotal:      "☰",
	analytics.IconCompleted:  "✔",
	analytics.IconInProgress: "◷",
	analytics.IconOverdue:    "⚠",
}

// Dot renders a colored bullet, falling back to the muted color.
func Dot(hex string) string {
	c := lipgloss.Color(hex)
	if hex == "" {
		c = ColorMuted
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskpulse/internal/report"
	"github.com/sadopc/taskpulse/internal/task"
)

var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(report.ColorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(report.ColorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(report.ColorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(report.ColorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(report.ColorPrimary).
				Padding(1, 2)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(report.ColorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(report.ColorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(report.ColorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(report.ColorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(report.ColorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(report.ColorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(report.ColorFg)
)

// bucketStyles colours the listing bucket shown next to each task.
var bucketStyles = map[task.Bucket]lipgloss.Style{
	task.BucketCompleted: successStyle,
	task.BucketOverdue:   errorStyle,
	task.BucketToday:     warningStyle,
	task.BucketTomorrow:  highlightStyle,
	task.BucketUpcoming:  highlightStyle,
	task.BucketInbox:     mutedStyle,
	task.BucketSomeday:   mutedStyle,
}

// dueStyles colours the due date by its display category.
var dueStyles = map[task.DueCategory]lipgloss.Style{
	task.DueNone:     mutedStyle,
	task.DueOverdue:  errorStyle,
	task.DueToday:    warningStyle,
	task.DueTomorrow: highlightStyle,
}

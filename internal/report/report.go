// Package report renders a computed analytics dashboard for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/taskpulse/internal/analytics"
)

const minWidth = 60

// Render draws the whole dashboard at the given terminal width.
func Render(d *analytics.Dashboard, width int) string {
	width = max(width, minWidth)
	inner := width - 6

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s · updated %s", d.Window, humanize.Time(d.GeneratedAt))),
	)

	sections := []string{
		header, "",
		Cards(d.Summary.Metrics, inner), "",
		titleStyle.Render("Monthly completion"),
		MonthlyChart(d.MonthlyCompletion, inner, 12),
		monthlyLegend(), "",
		titleStyle.Render("Projects"),
		DistributionTable(d.Distribution, inner), "",
		titleStyle.Render("Progress"),
		ProgressBars(d.Progress, inner), "",
		titleStyle.Render("Completed by weekday"),
		ActivityChart(d.Activity, inner, 8),
	}
	return panelStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// RenderError shows the generic failure state of the dashboard.
func RenderError(err error) string {
	return errorStyle.Render("✗ " + err.Error())
}

// Cards lays the summary metrics out side by side.
func Cards(metrics []analytics.StatMetric, width int) string {
	if len(metrics) == 0 {
		return mutedStyle.Render("  No metrics")
	}
	cardWidth := max(width/len(metrics)-2, 18)

	cards := make([]string, len(metrics))
	for i, m := range metrics {
		icon := iconStyles[m.IconKey].Render(icons[m.IconKey])
		body := lipgloss.JoinVertical(lipgloss.Left,
			icon+" "+mutedStyle.Render(m.Title),
			valueStyle.Render(m.Value),
			mutedStyle.Render(m.ChangeText),
		)
		cards[i] = cardStyle.Width(cardWidth).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

var (
	completedStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	pendingStyle   = lipgloss.NewStyle().Foreground(ColorHighlight)
	overdueStyle   = lipgloss.NewStyle().Foreground(ColorError)
)

// MonthlyChart stacks completed, pending and overdue counts per month.
func MonthlyChart(points []analytics.TaskCompletionPoint, width, height int) string {
	chart := barchart.New(width, height)

	bars := make([]barchart.BarData, 0, len(points))
	for _, p := range points {
		bars = append(bars, barchart.BarData{
			Label: p.Month,
			Values: []barchart.BarValue{
				{Name: "Completed", Value: float64(p.Completed), Style: completedStyle},
				{Name: "Pending", Value: float64(p.Pending), Style: pendingStyle},
				{Name: "Overdue", Value: float64(p.Overdue), Style: overdueStyle},
			},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func monthlyLegend() string {
	return "  " + strings.Join([]string{
		completedStyle.Render("●") + " completed",
		pendingStyle.Render("●") + " pending",
		overdueStyle.Render("●") + " overdue",
	}, "  ")
}

// ActivityChart draws one bar per weekday.
func ActivityChart(points []analytics.ActivityPoint, width, height int) string {
	chart := barchart.New(width, height)

	bars := make([]barchart.BarData, 0, len(points))
	for i, p := range points {
		style := completedStyle
		if i%2 == 1 {
			style = lipgloss.NewStyle().Foreground(ColorSecondary)
		}
		bars = append(bars, barchart.BarData{
			Label:  p.Weekday,
			Values: []barchart.BarValue{{Name: p.Weekday, Value: float64(p.CompletedCount), Style: style}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

// DistributionTable lists each project's task count and share.
func DistributionTable(dist []analytics.DistributionSlice, width int) string {
	if len(dist) == 0 {
		return mutedStyle.Render("  No projects yet")
	}

	total := 0
	for _, s := range dist {
		total += s.TaskCount
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %8s %7s", "Project", "Tasks", "Share")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(width-4, 38))))
	for _, s := range dist {
		rows = append(rows, fmt.Sprintf("  %s %-18s %8s %6d%%",
			Dot(s.FillColor), s.Label, humanize.Comma(int64(s.TaskCount)), analytics.Percent(s.TaskCount, total),
		))
	}
	return strings.Join(rows, "\n")
}

// ProgressBars renders one completion bar per project.
func ProgressBars(entries []analytics.ProgressEntry, width int) string {
	if len(entries) == 0 {
		return mutedStyle.Render("  No projects with tasks")
	}

	barWidth := max(width-24, 10)
	rows := make([]string, len(entries))
	for i, e := range entries {
		bar := progress.New(progress.WithSolidFill(e.FillColor), progress.WithWidth(barWidth))
		rows[i] = fmt.Sprintf("  %-18s %s", e.ProjectLabel, bar.ViewAs(float64(e.ProgressPercent)/100))
	}
	return strings.Join(rows, "\n")
}

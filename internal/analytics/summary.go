package analytics

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Icon keys understood by the presentation layer.
const (
	IconTotal      = "list-todo"
	IconCompleted  = "check-circle"
	IconInProgress = "clock"
	IconOverdue    = "alert-triangle"
)

// SummaryMetrics derives the four summary cards from independently
// counted totals. In-progress is pending minus overdue; the counts are
// trusted as given and may disagree transiently under concurrent writes.
func SummaryMetrics(c Counts, window string) Summary {
	rate := Percent(c.Completed, c.Total)
	inProgress := c.Pending - c.Overdue

	total := fmt.Sprintf("No tasks %s", window)
	if c.Total > 0 {
		total = fmt.Sprintf("%s tasks %s", humanize.Comma(int64(c.Total)), window)
	}

	active := "Nothing in progress"
	if inProgress > 0 {
		active = fmt.Sprintf("%s active tasks", humanize.Comma(int64(inProgress)))
	}

	overdue := "All on schedule"
	if c.Overdue > 0 {
		overdue = fmt.Sprintf("%s overdue", humanize.Comma(int64(c.Overdue)))
	}

	return Summary{
		CompletionRate: rate,
		InProgress:     inProgress,
		Metrics: []StatMetric{
			{Title: "Total Tasks", Value: humanize.Comma(int64(c.Total)), ChangeText: total, IconKey: IconTotal},
			{Title: "Completed", Value: humanize.Comma(int64(c.Completed)), ChangeText: fmt.Sprintf("%d%% completion rate", rate), IconKey: IconCompleted},
			{Title: "In Progress", Value: humanize.Comma(int64(inProgress)), ChangeText: active, IconKey: IconInProgress},
			{Title: "Overdue", Value: humanize.Comma(int64(c.Overdue)), ChangeText: overdue, IconKey: IconOverdue},
		},
	}
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sadopc/taskpulse/internal/analytics"
)

// ToCSV writes the dashboard to path, one section per series. Each section
// is a title row, a header row and its data rows.
func ToCSV(d *analytics.Dashboard, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, d); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes the CSV sections of d to w.
func WriteCSV(w io.Writer, d *analytics.Dashboard) error {
	cw := csv.NewWriter(w)

	for _, s := range sections(d) {
		if err := cw.Write([]string{"# " + s.title}); err != nil {
			return err
		}
		if err := cw.Write(s.header); err != nil {
			return err
		}
		if err := cw.WriteAll(s.rows); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type section struct {
	title  string
	header []string
	rows   [][]string
}

func sections(d *analytics.Dashboard) []section {
	summary := section{title: "Summary", header: []string{"Metric", "Value", "Change"}}
	for _, m := range d.Summary.Metrics {
		summary.rows = append(summary.rows, []string{m.Title, m.Value, m.ChangeText})
	}

	monthly := section{title: "Monthly Completion", header: []string{"Month", "Completed", "Pending", "Overdue", "Total"}}
	for _, p := range d.MonthlyCompletion {
		monthly.rows = append(monthly.rows, []string{p.Month, itoa(p.Completed), itoa(p.Pending), itoa(p.Overdue), itoa(p.Total())})
	}

	dist := section{title: "Project Distribution", header: []string{"Category", "Project", "Tasks", "Color"}}
	for _, s := range d.Distribution {
		dist.rows = append(dist.rows, []string{s.Category, s.Label, itoa(s.TaskCount), s.FillColor})
	}

	progress := section{title: "Project Progress", header: []string{"Project", "Progress (%)", "Color"}}
	for _, p := range d.Progress {
		progress.rows = append(progress.rows, []string{p.ProjectLabel, itoa(p.ProgressPercent), p.FillColor})
	}

	activity := section{title: "Weekday Activity", header: []string{"Weekday", "Completed"}}
	for _, a := range d.Activity {
		activity.rows = append(activity.rows, []string{a.Weekday, itoa(a.CompletedCount)})
	}

	return []section{summary, monthly, dist, progress, activity}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

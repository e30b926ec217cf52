package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/taskpulse/internal/task"
)

type taskLine struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Completed   bool       `json:"completed"`
	Status      string     `json:"status"`
	Bucket      string     `json:"bucket"`
	DueCategory string     `json:"due_category"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ProjectID   *string    `json:"project_id,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newTaskLine(t task.Task, now time.Time) taskLine {
	return taskLine{
		ID:          t.ID,
		Content:     t.Content,
		Completed:   t.Completed,
		Status:      string(task.Classify(t, now)),
		Bucket:      string(task.BucketOf(t, now)),
		DueCategory: string(task.CategorizeDue(t.DueDate, t.Completed, now)),
		DueDate:     t.DueDate,
		ProjectID:   t.ProjectID,
		UpdatedAt:   t.UpdatedAt,
	}
}

// writeJSONLines writes one JSON object per line.
func writeJSONLines[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	return nil
}

func writeTasks(w io.Writer, tasks []task.Task, now time.Time, asJSON bool) error {
	if asJSON {
		lines := make([]taskLine, len(tasks))
		for i, t := range tasks {
			lines[i] = newTaskLine(t, now)
		}
		return writeJSONLines(w, lines)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tDUE\tCONTENT")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, task.BucketOf(t, now), dueColumn(t, now), t.Content)
	}
	return tw.Flush()
}

// dueColumn names the day for tasks due today or tomorrow and is relative
// otherwise.
func dueColumn(t task.Task, now time.Time) string {
	if !t.HasDue() {
		return "-"
	}
	switch task.CategorizeDue(t.DueDate, t.Completed, now) {
	case task.DueToday:
		return "today"
	case task.DueTomorrow:
		return "tomorrow"
	}
	return humanize.RelTime(t.Due(), now, "ago", "from now")
}

type projectLine struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ColorName string    `json:"color_name,omitempty"`
	ColorHex  string    `json:"color_hex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func writeProjects(w io.Writer, projects []task.Project, asJSON bool) error {
	if asJSON {
		lines := make([]projectLine, len(projects))
		for i, p := range projects {
			lines[i] = projectLine{ID: p.ID, Name: p.Name, ColorName: p.ColorName, ColorHex: p.ColorHex, CreatedAt: p.CreatedAt}
		}
		return writeJSONLines(w, lines)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCOLOR")
	for _, p := range projects {
		color := p.ColorName
		if color == "" {
			color = p.ColorHex
		}
		if color == "" {
			color = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, color)
	}
	return tw.Flush()
}

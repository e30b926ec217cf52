package analytics

import "time"

// TaskCompletionPoint is one month of the completion trend.
type TaskCompletionPoint struct {
	Month     string `json:"month"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Overdue   int    `json:"overdue"`
}

// Total is the number of tasks created in the month.
func (p TaskCompletionPoint) Total() int {
	return p.Completed + p.Pending + p.Overdue
}

// DistributionSlice is one project's share of all tasks.
type DistributionSlice struct {
	Category  string `json:"category"`
	Label     string `json:"label"`
	TaskCount int    `json:"task_count"`
	FillColor string `json:"fill_color"`
}

// ProgressEntry is one project's completion percentage.
type ProgressEntry struct {
	ProjectLabel    string `json:"project_label"`
	ProgressPercent int    `json:"progress_percent"`
	FillColor       string `json:"fill_color"`
}

// ActivityPoint counts completions on one weekday.
type ActivityPoint struct {
	Weekday        string `json:"weekday"`
	CompletedCount int    `json:"completed_count"`
}

// StatMetric is one summary card.
type StatMetric struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	ChangeText string `json:"change_text"`
	IconKey    string `json:"icon_key"`
}

// Counts are independently fetched task totals.
type Counts struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// Summary carries the derived figures next to the rendered cards.
type Summary struct {
	CompletionRate int          `json:"completion_rate"`
	InProgress     int          `json:"in_progress"`
	Metrics        []StatMetric `json:"metrics"`
}

// Dashboard is the full analytics view for one user.
type Dashboard struct {
	GeneratedAt       time.Time             `json:"generated_at"`
	Window            string                `json:"window"`
	Summary           Summary               `json:"summary"`
	MonthlyCompletion []TaskCompletionPoint `json:"monthly_completion"`
	Distribution      []DistributionSlice   `json:"distribution"`
	Progress          []ProgressEntry       `json:"progress"`
	Activity          []ActivityPoint       `json:"activity"`
}

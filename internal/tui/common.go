package tui

import (
	"time"

	"github.com/sadopc/taskpulse/internal/analytics"
	"github.com/sadopc/taskpulse/internal/query"
	"github.com/sadopc/taskpulse/internal/search"
	"github.com/sadopc/taskpulse/internal/task"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewSearch
)

var viewNames = []string{"Dashboard", "Tasks", "Search"}

// --- Messages ---

type dashboardDataMsg struct {
	dashboard *analytics.Dashboard
	err       error
}

type tasksDataMsg struct {
	view     query.View
	tasks    []task.Task
	counts   map[query.View]int
	projects []task.Project
	err      error
}

type taskChangedMsg struct {
	text string
}

type navigationMsg search.Navigation

type searchResultsMsg struct {
	term  string
	tasks []task.Task
	err   error
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatDue(t task.Task, now time.Time) string {
	if !t.HasDue() {
		return ""
	}
	due := t.Due().In(now.Location())
	if due.Year() != now.Year() {
		return due.Format("Jan 2 2006")
	}
	return due.Format("Mon Jan 2")
}

// dueLabel names the day for tasks due today or tomorrow and falls back to
// the date otherwise.
func dueLabel(t task.Task, now time.Time) string {
	switch task.CategorizeDue(t.DueDate, t.Completed, now) {
	case task.DueToday:
		return "Today"
	case task.DueTomorrow:
		return "Tomorrow"
	}
	return formatDue(t, now)
}

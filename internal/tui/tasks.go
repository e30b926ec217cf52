package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskpulse/internal/analytics"
	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/query"
	"github.com/sadopc/taskpulse/internal/repository"
	"github.com/sadopc/taskpulse/internal/task"
)

var dueChoices = []struct {
	label string
	days  int
}{
	{"No due date", -1},
	{"Today", 0},
	{"Tomorrow", 1},
	{"Next week", 7},
}

// taskDraft holds the form's bound values. It lives behind a pointer so
// the form keeps writing to the same fields as the model is copied.
type taskDraft struct {
	content   string
	due       int
	projectID string
}

type tasksModel struct {
	repo   *repository.Repository
	clock  calendar.Clock
	userID string
	width  int
	height int

	viewIdx  int
	tasks    []task.Task
	counts   map[query.View]int
	projects []task.Project
	cursor   int
	err      error

	formActive bool
	form       *huh.Form
	draft      *taskDraft
}

func newTasksModel(repo *repository.Repository, clock calendar.Clock, userID string) tasksModel {
	return tasksModel{
		repo:   repo,
		clock:  clock,
		userID: userID,
		counts: make(map[query.View]int),
		draft:  &taskDraft{},
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) currentView() query.View {
	return query.Views[m.viewIdx]
}

func (m tasksModel) refresh() tea.Cmd {
	view := m.currentView()
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := m.repo.ListView(ctx, view, m.userID)
		if err != nil {
			return tasksDataMsg{view: view, err: err}
		}
		counts := make(map[query.View]int, len(query.Views))
		for _, v := range query.Views {
			n, err := m.repo.CountView(ctx, v, m.userID)
			if err != nil {
				return tasksDataMsg{view: view, err: err}
			}
			counts[v] = n
		}
		projects, err := m.repo.ListProjects(ctx, m.userID)
		if err != nil {
			return tasksDataMsg{view: view, err: err}
		}
		return tasksDataMsg{view: view, tasks: tasks, counts: counts, projects: projects}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		if msg.view != m.currentView() {
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.tasks = msg.tasks
			m.counts = msg.counts
			m.projects = msg.projects
		}
		if m.cursor >= len(m.tasks) {
			m.cursor = max(len(m.tasks)-1, 0)
		}
		return m, nil

	case taskChangedMsg:
		return m, m.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Left):
			m.viewIdx = (m.viewIdx + len(query.Views) - 1) % len(query.Views)
			m.cursor = 0
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.viewIdx = (m.viewIdx + 1) % len(query.Views)
			m.cursor = 0
			return m, m.refresh()
		case key.Matches(msg, keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, keys.New):
			return m.openForm()
		case key.Matches(msg, keys.Complete):
			if t, ok := m.selected(); ok && !t.Completed {
				return m, m.completeTask(t)
			}
		case key.Matches(msg, keys.Delete):
			if t, ok := m.selected(); ok {
				return m, m.deleteTask(t)
			}
		}
	}
	return m, nil
}

func (m tasksModel) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m tasksModel) completeTask(t task.Task) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.repo.CompleteTask(context.Background(), m.userID, t.ID); err != nil {
			return statusMsg{text: fmt.Sprintf("Complete failed: %v", err), isError: true}
		}
		return taskChangedMsg{text: "Completed " + analytics.Truncate(t.Content, 30)}
	}
}

func (m tasksModel) deleteTask(t task.Task) tea.Cmd {
	return func() tea.Msg {
		if err := m.repo.DeleteTask(context.Background(), m.userID, t.ID); err != nil {
			return statusMsg{text: fmt.Sprintf("Delete failed: %v", err), isError: true}
		}
		return taskChangedMsg{text: "Deleted " + analytics.Truncate(t.Content, 30)}
	}
}

func (m tasksModel) openForm() (tasksModel, tea.Cmd) {
	*m.draft = taskDraft{due: -1}

	dueOptions := make([]huh.Option[int], len(dueChoices))
	for i, c := range dueChoices {
		dueOptions[i] = huh.NewOption(c.label, c.days)
	}
	projectOptions := []huh.Option[string]{huh.NewOption("Inbox", "")}
	for _, p := range m.projects {
		projectOptions = append(projectOptions, huh.NewOption("● "+p.Name, p.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(&m.draft.content).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("task cannot be empty")
				}
				return nil
			}),
			huh.NewSelect[int]().Title("Due").Options(dueOptions...).Value(&m.draft.due),
			huh.NewSelect[string]().Title("Project").Options(projectOptions...).Value(&m.draft.projectID),
		),
	).WithShowHelp(false)
	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.formActive = false
		m.form = nil
		return m, m.createTask(*m.draft)
	case huh.StateAborted:
		m.formActive = false
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m tasksModel) createTask(d taskDraft) tea.Cmd {
	in := repository.NewTask{
		UserID:  m.userID,
		Content: d.content,
		DueDate: dueFromChoice(d.due, m.clock.Now()),
	}
	if d.projectID != "" {
		in.ProjectID = &d.projectID
	}
	return func() tea.Msg {
		t, err := m.repo.CreateTask(context.Background(), in)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Create failed: %v", err), isError: true}
		}
		return taskChangedMsg{text: "Added " + analytics.Truncate(t.Content, 30)}
	}
}

// dueFromChoice turns a day offset into a due date at the start of that
// day. A negative offset means no due date.
func dueFromChoice(days int, now time.Time) *time.Time {
	if days < 0 {
		return nil
	}
	due := calendar.StartOfDay(now).AddDate(0, 0, days)
	return &due
}

func (m tasksModel) view() string {
	if m.formActive && m.form != nil {
		return activePanelStyle.Width(max(m.width-4, 20)).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Task"), "", m.form.View()),
		)
	}

	var tabs []string
	for i, v := range query.Views {
		label := fmt.Sprintf("%s %d", v, m.counts[v])
		if i == m.viewIdx {
			tabs = append(tabs, selectedItemStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, mutedStyle.Render(" "+label+" "))
		}
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, tabs...), ""}
	switch {
	case m.err != nil:
		rows = append(rows, errorStyle.Render("  "+m.err.Error()))
	case len(m.tasks) == 0:
		rows = append(rows, mutedStyle.Render("  Nothing here. Press n to add a task."))
	default:
		rows = append(rows, renderTaskList(m.tasks, m.cursor, m.clock.Now(), m.width, m.height-3)...)
	}
	return panelStyle.Width(max(m.width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderTaskList draws tasks with a cursor, keeping the cursor row within
// the visible height.
func renderTaskList(tasks []task.Task, cursor int, now time.Time, width, height int) []string {
	height = max(height, 1)
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, len(tasks))

	contentWidth := max(width-36, 10)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		t := tasks[i]
		bucket := task.BucketOf(t, now)

		check := "○"
		if t.Completed {
			check = successStyle.Render("✓")
		}
		prefix, style := "  ", normalItemStyle
		if i == cursor {
			prefix, style = "> ", selectedItemStyle
		}
		due := task.CategorizeDue(t.DueDate, t.Completed, now)
		line := fmt.Sprintf("%s%s %-*s %s %s",
			prefix, check, contentWidth, analytics.Truncate(t.Content, contentWidth-3),
			bucketStyles[bucket].Render(fmt.Sprintf("%-10s", bucket)),
			dueStyles[due].Render(dueLabel(t, now)),
		)
		rows = append(rows, style.Render(line))
	}
	return rows
}

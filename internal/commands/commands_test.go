package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/config"
	"github.com/sadopc/taskpulse/internal/docstore"
	"github.com/sadopc/taskpulse/internal/query"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, store docstore.Store) (*Flags, *App) {
	t.Helper()
	if store == nil {
		s, err := docstore.OpenMemory()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		store = s
	}
	cfg := config.DefaultConfig()
	cfg.UserID = "u1"
	return &Flags{Config: &cfg}, NewApp(&cfg, store, calendar.FixedClock(now))
}

func run(t *testing.T, flags *Flags, app *App, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := &cli.Command{Name: "taskpulse", Writer: &buf}
	root = NewDashboardCmd(flags, app).Register(root)
	root = NewTasksCmd(flags, app).Register(root)
	root = NewSearchCmd(flags, app).Register(root)
	root = NewProjectsCmd(flags, app).Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewDoneCmd(flags, app).Register(root)

	err := root.Run(context.Background(), append([]string{"taskpulse"}, args...))
	return buf.String(), err
}

func mustRun(t *testing.T, flags *Flags, app *App, args ...string) string {
	t.Helper()
	out, err := run(t, flags, app, args...)
	require.NoError(t, err, "taskpulse %s", strings.Join(args, " "))
	return out
}

type seeded struct {
	project, milk, report string
}

func seed(t *testing.T, flags *Flags, app *App) seeded {
	t.Helper()
	var s seeded
	s.project = strings.TrimSpace(mustRun(t, flags, app, "add", "project", "--color-hex", "#FF0000", "Work"))
	s.milk = strings.TrimSpace(mustRun(t, flags, app, "add", "task", "--due", "today", "Buy", "milk"))
	s.report = strings.TrimSpace(mustRun(t, flags, app, "add", "task", "--due", "2024-03-10", "--project", s.project, "Write report"))
	return s
}

func TestTasksViews(t *testing.T) {
	flags, app := newTestApp(t, nil)
	s := seed(t, flags, app)

	out := mustRun(t, flags, app, "tasks", "--view", "today")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, s.milk)
	assert.NotContains(t, out, "Write report")

	out = mustRun(t, flags, app, "tasks", "--view", "inbox", "--count")
	assert.Equal(t, "1\n", out)

	out = mustRun(t, flags, app, "tasks", "--view", "overdue", "--json")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &line))
	assert.Equal(t, s.report, line["id"])
	assert.Equal(t, "overdue", line["status"])
	assert.Equal(t, s.project, line["project_id"])
}

func TestTasksCompletedDueTodayStillReadsAsToday(t *testing.T) {
	flags, app := newTestApp(t, nil)
	s := seed(t, flags, app)
	mustRun(t, flags, app, "done", s.milk)

	out := mustRun(t, flags, app, "tasks", "--view", "completed", "--json")
	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &line))
	assert.Equal(t, "completed", line["status"])
	assert.Equal(t, "due-today", line["due_category"])

	out = mustRun(t, flags, app, "tasks", "--view", "completed")
	rows := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{s.milk, "completed", "today", "Buy", "milk"}, strings.Fields(rows[1]))

	out = mustRun(t, flags, app, "tasks", "--view", "overdue", "--json")
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &line))
	assert.Equal(t, "overdue", line["due_category"])
}

func TestTasksUnknownView(t *testing.T) {
	flags, app := newTestApp(t, nil)
	_, err := run(t, flags, app, "tasks", "--view", "someday")
	assert.ErrorIs(t, err, query.ErrInvalidArgument)
}

func TestDoneAndRm(t *testing.T) {
	flags, app := newTestApp(t, nil)
	s := seed(t, flags, app)

	out := mustRun(t, flags, app, "done", s.milk)
	assert.Equal(t, "✓ Buy milk\n", out)
	assert.Equal(t, "1\n", mustRun(t, flags, app, "tasks", "--view", "completed", "--count"))

	out = mustRun(t, flags, app, "rm", s.report)
	assert.Contains(t, out, s.report)

	_, err := run(t, flags, app, "rm", s.report, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), s.report)
	assert.Contains(t, err.Error(), "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	_, err = run(t, flags, app, "done")
	assert.Error(t, err)
}

func TestAddTaskValidates(t *testing.T) {
	flags, app := newTestApp(t, nil)

	_, err := run(t, flags, app, "add", "task")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content")

	_, err = run(t, flags, app, "add", "task", "--due", "next tuesday", "x")
	assert.ErrorContains(t, err, "invalid due date")

	_, err = run(t, flags, app, "add", "task", "--project", "nope", "x")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestSearch(t *testing.T) {
	flags, app := newTestApp(t, nil)
	seed(t, flags, app)

	out := mustRun(t, flags, app, "search", "MILK")
	assert.Contains(t, out, "Buy milk")
	assert.NotContains(t, out, "Write report")

	out = mustRun(t, flags, app, "search")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Write report")
}

func TestProjects(t *testing.T) {
	flags, app := newTestApp(t, nil)
	s := seed(t, flags, app)
	mustRun(t, flags, app, "add", "project", "Home")

	out := mustRun(t, flags, app, "projects", "--search", "wor")
	assert.Contains(t, out, s.project)
	assert.NotContains(t, out, "Home")

	out = mustRun(t, flags, app, "projects", "--limit", "1", "--json")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
	assert.Contains(t, out, `"name":"Home"`)
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardText(t *testing.T) {
	flags, app := newTestApp(t, nil)
	seed(t, flags, app)

	out := mustRun(t, flags, app, "dashboard", "--width", "120")
	for _, want := range []string{"Analytics", "Total Tasks", "Monthly completion", "Completed by weekday"} {
		assert.Contains(t, out, want)
	}
}

func TestDashboardJSON(t *testing.T) {
	flags, app := newTestApp(t, nil)
	s := seed(t, flags, app)
	mustRun(t, flags, app, "done", s.milk)

	out := mustRun(t, flags, app, "dashboard", "--format", "json", "--window", "today")
	var got struct {
		Window         string `json:"window"`
		CompletionRate int    `json:"completion_rate"`
		InProgress     int    `json:"in_progress"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "today", got.Window)
	assert.Equal(t, 50, got.CompletionRate)
	assert.Equal(t, 0, got.InProgress, "the only pending task is overdue")
}

func TestDashboardCSVFile(t *testing.T) {
	flags, app := newTestApp(t, nil)
	seed(t, flags, app)

	path := filepath.Join(t.TempDir(), "analytics.csv")
	out := mustRun(t, flags, app, "dashboard", "--format", "csv", "--output", path)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Summary"))
}

func TestDashboardBadFlags(t *testing.T) {
	flags, app := newTestApp(t, nil)

	_, err := run(t, flags, app, "dashboard", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, flags, app, "dashboard", "--output", "x.txt")
	assert.ErrorContains(t, err, "--output")
}

type brokenStore struct{ docstore.Store }

func (brokenStore) ListDocuments(context.Context, string, string, query.Set) (docstore.DocumentList, error) {
	return docstore.DocumentList{}, errors.New("disk I/O error")
}

func TestDashboardFailureIsGeneric(t *testing.T) {
	var logs bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&logs)
	t.Cleanup(func() { log.Logger = prev })

	flags, app := newTestApp(t, brokenStore{})

	_, err := run(t, flags, app, "dashboard")
	require.Error(t, err)
	assert.Equal(t, "failed to load analytics", err.Error())

	assert.Equal(t, 1, strings.Count(logs.String(), `"level":"error"`), "cause is logged once: %s", logs.String())
	assert.Contains(t, logs.String(), "disk I/O error")
}

// ============================================================
// Helpers
// ============================================================

func TestParseDue(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"", nil},
		{"today", ptr(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))},
		{"Tomorrow", ptr(time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC))},
		{"2024-04-01", ptr(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDue(tt.in, now)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v", got)
		})
	}

	_, err := parseDue("15/03/2024", now)
	assert.Error(t, err)
}

func ptr[T any](v T) *T { return &v }

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, "/tmp/cfg/taskpulse/config.yaml", DefaultConfigPath())
	assert.Equal(t, "/tmp/state/taskpulse/taskpulse.log", DefaultLogFile())
}

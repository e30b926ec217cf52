package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.UserID)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "taskpulse", cfg.Database.Name)
	assert.Equal(t, 6, cfg.Analytics.Months)
	assert.Equal(t, 5, cfg.Analytics.TopN)
	assert.Equal(t, 12, cfg.Analytics.LabelMaxLen)
	assert.Equal(t, "sunday", cfg.Analytics.WeekStart)
	assert.Len(t, cfg.Analytics.Palette, 5)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Delay)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Analytics.Months)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
user_id: alice
database:
  path: /tmp/tp.db
  name: personal
analytics:
  months: 12
  top_n: 3
  week_start: Monday
  palette: ["#fff", "#000000"]
  window: this year
search:
  delay: 500ms
  settle: 1s
logging:
  level: debug
  file: /tmp/tp.log
  max_size_mb: 20
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.UserID)
	assert.Equal(t, "/tmp/tp.db", cfg.Database.Path)
	assert.Equal(t, "personal", cfg.Database.Name)
	assert.Equal(t, "tasks", cfg.Database.TasksCollection, "unset keys keep defaults")
	assert.Equal(t, 12, cfg.Analytics.Months)
	assert.Equal(t, 3, cfg.Analytics.TopN)
	assert.Equal(t, 12, cfg.Analytics.LabelMaxLen)
	assert.Equal(t, "this year", cfg.Analytics.Window)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Delay)
	assert.Equal(t, time.Second, cfg.Search.Settle)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 20, cfg.Logging.MaxSizeMB)

	policy := cfg.AnalyticsPolicy()
	assert.Equal(t, time.Monday, policy.WeekStart)
	assert.Equal(t, []string{"#fff", "#000000"}, policy.Palette)

	opts := cfg.RepositoryOptions()
	assert.Equal(t, "personal", opts.Database)
	assert.Equal(t, "projects", opts.ProjectsCollection)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "analytics: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoadInvalidValues(t *testing.T) {
	path := writeConfig(t, `
analytics:
  months: 99
  top_n: -1
  week_start: someday
  palette: ["red"]
search:
  delay: -1s
logging:
  level: loud
`)
	_, err := Load(path)
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{
		"analytics.months",
		"analytics.top_n",
		"analytics.week_start",
		"analytics.palette[0]",
		"search.delay",
		"logging.level",
	}, fields)
}

func TestValidateBlankUser(t *testing.T) {
	cfg := DefaultConfig()
	cfg.applyDefaults()
	cfg.UserID = "  "

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, cfg.Validate(), &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "user_id", fieldErrs[0].Field)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
}

// Package config handles configuration loading and validation for taskpulse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/taskpulse/internal/analytics"
	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/repository"
	"github.com/sadopc/taskpulse/internal/search"
)

// Config holds the application configuration.
type Config struct {
	UserID    string          `yaml:"user_id"`
	Database  DatabaseConfig  `yaml:"database"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig locates the document store.
type DatabaseConfig struct {
	Path               string `yaml:"path"`
	Name               string `yaml:"name"`
	TasksCollection    string `yaml:"tasks_collection"`
	ProjectsCollection string `yaml:"projects_collection"`
}

// AnalyticsConfig holds the dashboard policy.
type AnalyticsConfig struct {
	Months      int      `yaml:"months"`
	TopN        int      `yaml:"top_n"`
	LabelMaxLen int      `yaml:"label_max_len"`
	WeekStart   string   `yaml:"week_start"`
	Palette     []string `yaml:"palette"`
	Window      string   `yaml:"window"` // label shown in the summary cards
}

// SearchConfig tunes the search box debounce.
type SearchConfig struct {
	Delay  time.Duration `yaml:"delay"`
	Settle time.Duration `yaml:"settle"`
}

// LoggingConfig controls log output. An empty file logs to stderr.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	a := analytics.DefaultConfig()
	return Config{
		UserID: defaultUser(),
		Database: DatabaseConfig{
			Name:               repository.DefaultDatabase,
			TasksCollection:    repository.DefaultTasksCollection,
			ProjectsCollection: repository.DefaultProjectsCollection,
		},
		Analytics: AnalyticsConfig{
			Months:      a.Months,
			TopN:        a.TopN,
			LabelMaxLen: a.LabelMaxLen,
			WeekStart:   "sunday",
			Palette:     append([]string(nil), a.Palette...),
			Window:      analytics.DefaultWindow,
		},
		Search: SearchConfig{
			Delay:  search.DefaultDelay,
			Settle: search.DefaultSettle,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// DefaultPath returns ~/.config/taskpulse/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskpulse", "config.yaml"), nil
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.UserID) == "" {
		c.UserID = defaults.UserID
	}
	if c.Database.Path == "" {
		if p, err := defaultDBPath(); err == nil {
			c.Database.Path = p
		}
	}
	if c.Database.Name == "" {
		c.Database.Name = defaults.Database.Name
	}
	if c.Database.TasksCollection == "" {
		c.Database.TasksCollection = defaults.Database.TasksCollection
	}
	if c.Database.ProjectsCollection == "" {
		c.Database.ProjectsCollection = defaults.Database.ProjectsCollection
	}
	if c.Analytics.Months == 0 {
		c.Analytics.Months = defaults.Analytics.Months
	}
	if c.Analytics.TopN == 0 {
		c.Analytics.TopN = defaults.Analytics.TopN
	}
	if c.Analytics.LabelMaxLen == 0 {
		c.Analytics.LabelMaxLen = defaults.Analytics.LabelMaxLen
	}
	if c.Analytics.WeekStart == "" {
		c.Analytics.WeekStart = defaults.Analytics.WeekStart
	}
	if len(c.Analytics.Palette) == 0 {
		c.Analytics.Palette = defaults.Analytics.Palette
	}
	if c.Analytics.Window == "" {
		c.Analytics.Window = defaults.Analytics.Window
	}
	if c.Search.Delay == 0 {
		c.Search.Delay = defaults.Search.Delay
	}
	if c.Search.Settle == 0 {
		c.Search.Settle = defaults.Search.Settle
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// AnalyticsPolicy converts the analytics section for the pipeline.
// Call it on a validated config.
func (c *Config) AnalyticsPolicy() analytics.Config {
	day, _ := calendar.ParseWeekday(strings.ToLower(c.Analytics.WeekStart))
	return analytics.Config{
		Months:      c.Analytics.Months,
		TopN:        c.Analytics.TopN,
		LabelMaxLen: c.Analytics.LabelMaxLen,
		WeekStart:   day,
		Palette:     c.Analytics.Palette,
	}
}

// RepositoryOptions converts the database section for the repository.
func (c *Config) RepositoryOptions() repository.Options {
	return repository.Options{
		Database:           c.Database.Name,
		TasksCollection:    c.Database.TasksCollection,
		ProjectsCollection: c.Database.ProjectsCollection,
	}
}

func defaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskpulse", "taskpulse.db"), nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/commands"
	"github.com/sadopc/taskpulse/internal/config"
	"github.com/sadopc/taskpulse/internal/docstore"
	"github.com/sadopc/taskpulse/internal/logging"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		store     *docstore.SQLite
		app       = &commands.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "taskpulse",
		Usage:     "Task lists and completion analytics in the terminal",
		UsageText: "taskpulse [global options] command [command options]",
		Description: `taskpulse keeps tasks and projects in a local document store and turns
them into a dashboard: summary cards, a monthly completion trend, project
distribution and progress, and completions by weekday.

Run 'taskpulse' with no arguments to open the interactive dashboard.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKPULSE_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to the configured file, then " + commands.DefaultLogFile() + ")",
				Sources:     cli.EnvVars("TASKPULSE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKPULSE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "db",
				Usage:       "path to the database file",
				Sources:     cli.EnvVars("TASKPULSE_DB"),
				Destination: &flags.DBPath,
			},
			&cli.StringFlag{
				Name:        "user",
				Aliases:     []string{"u"},
				Usage:       "user whose tasks are shown",
				Sources:     cli.EnvVars("TASKPULSE_USER"),
				Destination: &flags.UserID,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.DBPath != "" {
				cfg.Database.Path = flags.DBPath
			}
			if flags.UserID != "" {
				cfg.UserID = flags.UserID
			}
			if flags.LogLevel != "" {
				cfg.Logging.Level = flags.LogLevel
			}

			// Always log to a file so the TUI owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.Logging.File
			}
			if logFile == "" {
				logFile = commands.DefaultLogFile()
			}

			logger, closer, err := logging.New(logging.Options{
				Level:      cfg.Logging.Level,
				File:       logFile,
				MaxSizeMB:  cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
				MaxAgeDays: cfg.Logging.MaxAgeDays,
				Compress:   cfg.Logging.Compress,
			}, os.Stderr)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			flags.Config = cfg

			store, err = docstore.Open(cfg.Database.Path, docstore.WithLogger(logging.Component("docstore")))
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// Commands already hold a pointer to app.
			*app = *commands.NewApp(cfg, store, calendar.SystemClock{})

			log.Debug().Str("db", cfg.Database.Path).Str("user", cfg.UserID).Msg("taskpulse started")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if store != nil {
				if err := store.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)

	root = commands.NewDashboardCmd(flags, app).Register(root)
	root = commands.NewTasksCmd(flags, app).Register(root)
	root = commands.NewSearchCmd(flags, app).Register(root)
	root = commands.NewProjectsCmd(flags, app).Register(root)
	root = commands.NewAddCmd(flags, app).Register(root)
	root = commands.NewDoneCmd(flags, app).Register(root)
	root = tuiCmd.Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskpulse --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		exitCode = 1
	}

	os.Exit(exitCode)
}

package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/sadopc/taskpulse/internal/logging"
	"github.com/sadopc/taskpulse/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *App

	// flags
	exportDir string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive dashboard",
		Description: `Opens the dashboard, task lists and search-as-you-type in the terminal.

Running taskpulse with no command does the same.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "export-dir",
			Usage:       "directory for dashboard exports (defaults to the home directory)",
			Sources:     cli.EnvVars("TASKPULSE_EXPORT_DIR"),
			Destination: &cmd.exportDir,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.app.Config
	m, err := tui.NewApp(tui.Options{
		Repo:         cmd.app.Repo,
		Analytics:    cmd.app.Analytics,
		Clock:        cmd.app.Clock,
		UserID:       cfg.UserID,
		Window:       cfg.Analytics.Window,
		SearchDelay:  cfg.Search.Delay,
		SearchSettle: cfg.Search.Settle,
		ExportDir:    cmd.exportDir,
		Logger:       logging.Component("tui"),
	})
	if err != nil {
		return fmt.Errorf("start tui: %w", err)
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

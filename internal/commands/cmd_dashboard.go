package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sadopc/taskpulse/internal/export"
	"github.com/sadopc/taskpulse/internal/report"
)

type DashboardCmd struct {
	flags *Flags
	app   *App

	// flags
	window string
	format string
	output string
	width  int
}

// NewDashboardCmd creates a new dashboard command
func NewDashboardCmd(flags *Flags, app *App) *DashboardCmd {
	return &DashboardCmd{flags: flags, app: app}
}

// Register adds the dashboard command to the application
func (cmd *DashboardCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dashboard",
		Aliases:   []string{"dash"},
		Usage:     "Show the analytics dashboard",
		UsageText: "taskpulse dashboard [--window <label>] [--format text|json|csv] [--output <path>]",
		Description: `Computes summary cards, the monthly completion trend, project
distribution, project progress and weekday activity for the current user.

Examples:
  taskpulse dashboard
  taskpulse dashboard --format json
  taskpulse dashboard --format csv --output analytics.csv`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "window",
				Usage:       "label shown in the summary cards (defaults to the configured window)",
				Destination: &cmd.window,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json, csv)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write json or csv to a file instead of stdout",
				Destination: &cmd.output,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "render width for text output",
				Value:       100,
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DashboardCmd) run(ctx context.Context, c *cli.Command) error {
	format := strings.ToLower(cmd.format)
	switch format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown format %q (want text, json or csv)", cmd.format)
	}
	if cmd.output != "" && format == "text" {
		return fmt.Errorf("--output needs --format json or csv")
	}

	window := cmd.window
	if window == "" {
		window = cmd.app.Config.Analytics.Window
	}

	d, err := cmd.app.Analytics.Dashboard(ctx, cmd.app.Config.UserID, window)
	if err != nil {
		// The service has logged the cause; users only see the generic message.
		return err
	}

	out := c.Root().Writer
	switch {
	case format == "text":
		_, err = fmt.Fprintln(out, report.Render(d, cmd.width))
	case cmd.output != "" && format == "json":
		err = export.ToJSON(d, cmd.output)
	case cmd.output != "":
		err = export.ToCSV(d, cmd.output)
	case format == "json":
		err = export.WriteJSON(out, d)
	default:
		err = export.WriteCSV(out, d)
	}
	if err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	if cmd.output != "" {
		_, _ = fmt.Fprintf(out, "Exported to %s\n", cmd.output)
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sadopc/taskpulse/internal/calendar"
	"github.com/sadopc/taskpulse/internal/repository"
)

type AddCmd struct {
	flags *Flags
	app   *App

	// task flags
	due     string
	project string

	// project flags
	colorName string
	colorHex  string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "add",
		Usage: "Create tasks and projects",
		Description: `Examples:
  taskpulse add task "Buy milk" --due today
  taskpulse add task "Write report" --due 2024-03-20 --project <project-id>
  taskpulse add project "Work" --color-name red --color-hex "#E74C3C"`,
		Commands: []*cli.Command{
			cmd.taskCmd(),
			cmd.projectCmd(),
		},
	})

	return app
}

func (cmd *AddCmd) taskCmd() *cli.Command {
	return &cli.Command{
		Name:      "task",
		Usage:     "Create a task",
		UsageText: "taskpulse add task <content> [--due <date>] [--project <id>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date: today, tomorrow, or YYYY-MM-DD",
				Destination: &cmd.due,
			},
			&cli.StringFlag{
				Name:        "project",
				Aliases:     []string{"p"},
				Usage:       "project id",
				Destination: &cmd.project,
			},
		},
		Action: cmd.runTask,
	}
}

func (cmd *AddCmd) projectCmd() *cli.Command {
	return &cli.Command{
		Name:      "project",
		Usage:     "Create a project",
		UsageText: "taskpulse add project <name> [--color-name <name>] [--color-hex <#rrggbb>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "color-name",
				Usage:       "display name of the project color",
				Destination: &cmd.colorName,
			},
			&cli.StringFlag{
				Name:        "color-hex",
				Usage:       "chart fill color, e.g. #2EC4B6",
				Destination: &cmd.colorHex,
			},
		},
		Action: cmd.runProject,
	}
}

func (cmd *AddCmd) runTask(ctx context.Context, c *cli.Command) error {
	due, err := parseDue(cmd.due, cmd.app.Clock.Now())
	if err != nil {
		return err
	}
	in := repository.NewTask{
		UserID:  cmd.app.Config.UserID,
		Content: strings.Join(c.Args().Slice(), " "),
		DueDate: due,
	}
	if cmd.project != "" {
		in.ProjectID = &cmd.project
	}

	t, err := cmd.app.Repo.CreateTask(ctx, in)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, t.ID)
	return nil
}

func (cmd *AddCmd) runProject(ctx context.Context, c *cli.Command) error {
	p, err := cmd.app.Repo.CreateProject(ctx, repository.NewProject{
		UserID:    cmd.app.Config.UserID,
		Name:      strings.Join(c.Args().Slice(), " "),
		ColorName: cmd.colorName,
		ColorHex:  cmd.colorHex,
	})
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, p.ID)
	return nil
}

// parseDue accepts today, tomorrow or a YYYY-MM-DD date in now's location.
// Dates resolve to the start of their day.
func parseDue(s string, now time.Time) (*time.Time, error) {
	var due time.Time
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "today":
		due = calendar.StartOfDay(now)
	case "tomorrow":
		due = calendar.StartOfDay(now).AddDate(0, 0, 1)
	default:
		t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q: want today, tomorrow or YYYY-MM-DD", s)
		}
		due = t
	}
	return &due, nil
}

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sadopc/taskpulse/internal/query"
)

type TasksCmd struct {
	flags *Flags
	app   *App

	// flags
	view       string
	count      bool
	jsonOutput bool
}

// NewTasksCmd creates a new tasks command
func NewTasksCmd(flags *Flags, app *App) *TasksCmd {
	return &TasksCmd{flags: flags, app: app}
}

// Register adds the tasks command to the application
func (cmd *TasksCmd) Register(app *cli.Command) *cli.Command {
	names := make([]string, len(query.Views))
	for i, v := range query.Views {
		names[i] = string(v)
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tasks",
		Aliases:   []string{"ls"},
		Usage:     "List tasks in a view",
		UsageText: "taskpulse tasks [--view <view>] [--count] [--json]",
		Description: `Lists the current user's tasks for one of the standard views.

Views: ` + strings.Join(names, ", ") + `

Examples:
  taskpulse tasks
  taskpulse tasks --view overdue
  taskpulse tasks --view inbox --count`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "view",
				Aliases:     []string{"v"},
				Usage:       "view to list (" + strings.Join(names, ", ") + ")",
				Value:       string(query.ViewToday),
				Destination: &cmd.view,
			},
			&cli.BoolFlag{
				Name:        "count",
				Usage:       "print only the number of matching tasks",
				Destination: &cmd.count,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *TasksCmd) run(ctx context.Context, c *cli.Command) error {
	view, err := query.ParseView(cmd.view)
	if err != nil {
		return err
	}
	out := c.Root().Writer
	userID := cmd.app.Config.UserID

	if cmd.count {
		n, err := cmd.app.Repo.CountView(ctx, view, userID)
		if err != nil {
			return fmt.Errorf("count tasks: %w", err)
		}
		_, _ = fmt.Fprintln(out, n)
		return nil
	}

	tasks, err := cmd.app.Repo.ListView(ctx, view, userID)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) == 0 && !cmd.jsonOutput {
		fmt.Fprintf(os.Stderr, "No tasks in %s\n", view)
		return nil
	}
	return writeTasks(out, tasks, cmd.app.Clock.Now(), cmd.jsonOutput)
}

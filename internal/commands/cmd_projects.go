package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sadopc/taskpulse/internal/query"
)

type ProjectsCmd struct {
	flags *Flags
	app   *App

	// flags
	search     string
	limit      int
	jsonOutput bool
}

// NewProjectsCmd creates a new projects command
func NewProjectsCmd(flags *Flags, app *App) *ProjectsCmd {
	return &ProjectsCmd{flags: flags, app: app}
}

// Register adds the projects command to the application
func (cmd *ProjectsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "projects",
		Usage:     "List projects",
		UsageText: "taskpulse projects [--search <name>] [--limit <n>] [--json]",
		Description: `Lists the current user's projects, newest first.

Examples:
  taskpulse projects
  taskpulse projects --search work --limit 5`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "only projects whose name contains this text",
				Destination: &cmd.search,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of projects",
				Destination: &cmd.limit,
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

func (cmd *ProjectsCmd) run(ctx context.Context, c *cli.Command) error {
	projects, err := cmd.app.Repo.FindProjects(ctx, cmd.app.Config.UserID, query.ProjectListOptions{
		Search: cmd.search,
		Limit:  cmd.limit,
	})
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	if len(projects) == 0 && !cmd.jsonOutput {
		fmt.Fprintf(os.Stderr, "No projects found\n")
		return nil
	}
	return writeProjects(c.Root().Writer, projects, cmd.jsonOutput)
}

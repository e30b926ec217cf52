package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

type SearchCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags, app *App) *SearchCmd {
	return &SearchCmd{flags: flags, app: app}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Search tasks by content",
		UsageText: "taskpulse search [--json] <term>",
		Description: `Lists tasks whose content contains the term, ignoring case. The
most recently updated tasks come first. An empty term lists every task.

For search-as-you-type, open the TUI and press /.`,
		Flags: []cli.Flag{
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

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	term := strings.Join(c.Args().Slice(), " ")
	tasks, err := cmd.app.Repo.SearchTasks(ctx, cmd.app.Config.UserID, term)
	if err != nil {
		return fmt.Errorf("search tasks: %w", err)
	}
	if len(tasks) == 0 && !cmd.jsonOutput {
		fmt.Fprintf(os.Stderr, "No tasks match %q\n", term)
		return nil
	}
	return writeTasks(c.Root().Writer, tasks, cmd.app.Clock.Now(), cmd.jsonOutput)
}

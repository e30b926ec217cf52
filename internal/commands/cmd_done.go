package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

type DoneCmd struct {
	flags *Flags
	app   *App
}

// NewDoneCmd creates the done and rm commands
func NewDoneCmd(flags *Flags, app *App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done and rm commands to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "done",
			Usage:     "Mark tasks as completed",
			UsageText: "taskpulse done <id> [<id>...]",
			Action:    cmd.runDone,
		},
		&cli.Command{
			Name:      "rm",
			Usage:     "Delete tasks",
			UsageText: "taskpulse rm <id> [<id>...]",
			Action:    cmd.runRm,
		},
	)

	return app
}

func (cmd *DoneCmd) runDone(ctx context.Context, c *cli.Command) error {
	return cmd.each(c, func(id string) error {
		t, err := cmd.app.Repo.CompleteTask(ctx, cmd.app.Config.UserID, id)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.Root().Writer, "✓ %s\n", t.Content)
		return nil
	})
}

func (cmd *DoneCmd) runRm(ctx context.Context, c *cli.Command) error {
	return cmd.each(c, func(id string) error {
		if err := cmd.app.Repo.DeleteTask(ctx, cmd.app.Config.UserID, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.Root().Writer, "deleted %s\n", id)
		return nil
	})
}

// each runs fn for every id argument and joins the failures.
func (cmd *DoneCmd) each(c *cli.Command, fn func(id string) error) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("at least one task id is required")
	}
	var errs []error
	for _, id := range ids {
		if err := fn(id); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

type ApplyCmd struct {
	flags *Flags
}

// NewApplyCmd creates a new apply command
func NewApplyCmd(flags *Flags) *ApplyCmd {
	return &ApplyCmd{flags: flags}
}

// Register adds the apply command to the application
func (cmd *ApplyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "apply",
		Usage:     "Apply the workspace's color identity",
		UsageText: "tint apply",
		Description: `Selects the workspace's color (persisted override first, then the
configured policy) and writes the style keys into .vscode/settings.json.

The settings file is hidden from git status via the repository's
info/exclude list unless disabled in config. This is the same path that
runs when tint is invoked with no subcommand.`,
		Action: cmd.Run,
	})

	return app
}

// Run is exported so the root command can use apply as its default action.
func (cmd *ApplyCmd) Run(ctx context.Context, c *cli.Command) error {
	ws, ok, err := cmd.flags.ResolveWorkspace()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(os.Stderr, noWorkspaceMsg)
		return nil
	}

	res, err := cmd.flags.Service.Apply(ctx, ws)
	if err != nil {
		return fmt.Errorf("apply color: %w", err)
	}

	writeConfirmation(c.Root().Writer, res, "Applied")
	return nil
}

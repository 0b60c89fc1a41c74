package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

type ClearCmd struct {
	flags *Flags
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags) *ClearCmd {
	return &ClearCmd{flags: flags}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Remove the workspace's color identity",
		UsageText: "tint clear",
		Description: `Deletes the persisted color override and strips the owned style keys
from .vscode/settings.json. Other settings in the file are untouched.

Running clear on a workspace that was never colored is a no-op.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	ws, ok, err := cmd.flags.ResolveWorkspace()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(os.Stderr, noWorkspaceMsg)
		return nil
	}

	if err := cmd.flags.Service.Clear(ctx, ws); err != nil {
		return fmt.Errorf("clear color: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Cleared color for %s\n", ws.Name)
	return nil
}

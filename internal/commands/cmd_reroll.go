package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tint/internal/core/workspace"
)

type RerollCmd struct {
	flags *Flags

	// flags
	pick bool
}

// NewRerollCmd creates a new reroll command
func NewRerollCmd(flags *Flags) *RerollCmd {
	return &RerollCmd{flags: flags}
}

// Register adds the reroll command to the application
func (cmd *RerollCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "reroll",
		Usage:     "Pick a new color for the workspace",
		UsageText: "tint reroll [--pick]",
		Description: `Chooses a different color, persists it as the workspace override, and
re-applies the style keys. Under the hash policy the new color is
guaranteed to differ from the current one.

Use --pick to choose a specific palette entry interactively.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "pick",
				Usage:       "choose the color interactively instead of rolling",
				Destination: &cmd.pick,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RerollCmd) run(ctx context.Context, c *cli.Command) error {
	ws, ok, err := cmd.flags.ResolveWorkspace()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(os.Stderr, noWorkspaceMsg)
		return nil
	}

	if cmd.pick {
		return cmd.runPick(ctx, c, ws)
	}

	res, err := cmd.flags.Service.Reroll(ctx, ws)
	if err != nil {
		return fmt.Errorf("reroll color: %w", err)
	}

	writeConfirmation(c.Root().Writer, res, "Rolled")
	return nil
}

func (cmd *RerollCmd) runPick(ctx context.Context, c *cli.Command, ws workspace.Workspace) error {
	entries := cmd.flags.Service.Palette(ws)

	opts := make([]huh.Option[int], len(entries))
	for i, e := range entries {
		opts[i] = huh.NewOption(fmt.Sprintf("%-10s %s", e.Name, e.Background), i)
	}

	var idx int
	err := huh.NewSelect[int]().
		Title("Pick a color for " + ws.Name).
		Options(opts...).
		Value(&idx).
		Run()
	if err != nil {
		return fmt.Errorf("pick color: %w", err)
	}

	res, err := cmd.flags.Service.SetIndex(ctx, ws, idx)
	if err != nil {
		return fmt.Errorf("set color: %w", err)
	}

	writeConfirmation(c.Root().Writer, res, "Picked")
	return nil
}

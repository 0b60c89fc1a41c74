package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tint/internal/core/styles"
	"github.com/colonyops/tint/internal/core/workspace"
	"github.com/colonyops/tint/pkg/iojson"
)

type PaletteCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewPaletteCmd creates a new palette command
func NewPaletteCmd(flags *Flags) *PaletteCmd {
	return &PaletteCmd{flags: flags}
}

// Register adds the palette command to the application
func (cmd *PaletteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "palette",
		Usage:     "List the available colors",
		UsageText: "tint palette [--json]",
		Description: `Displays the palette in effect: the built-in table, or the replacement
defined in config. Swatches are rendered when stdout is a terminal.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PaletteCmd) run(ctx context.Context, c *cli.Command) error {
	// The palette listing works without a workspace; rules just don't
	// apply then.
	ws, ok, err := cmd.flags.ResolveWorkspace()
	if err != nil {
		return err
	}
	if !ok {
		ws = workspace.Workspace{}
	}

	entries := cmd.flags.Service.Palette(ws)

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, entries)
	}

	tty := styles.IsTTY(os.Stdout)

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "IDX\tNAME\tBACKGROUND\tFOREGROUND")
	for i, e := range entries {
		name := e.Name
		if tty {
			name = styles.Swatch(e.Name, e.Background, e.Foreground)
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, name, e.Background, e.Foreground)
	}
	_ = w.Flush()

	return nil
}

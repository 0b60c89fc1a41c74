package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tint/internal/core/styles"
	"github.com/colonyops/tint/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show the workspace's current color assignment",
		UsageText: "tint show [--json]",
		Description: `Displays the workspace identity, selection policy, and the palette
entry currently assigned. Nothing is written.

Use --json for machine-readable output.`,
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

// assignmentInfo is the JSON output format for tint show --json.
type assignmentInfo struct {
	Workspace  string   `json:"workspace"`
	Root       string   `json:"root"`
	Policy     string   `json:"policy"`
	Index      int      `json:"index"`
	Color      string   `json:"color"`
	Background string   `json:"background"`
	Foreground string   `json:"foreground"`
	Overridden bool     `json:"overridden"`
	Targets    []string `json:"targets"`
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	ws, ok, err := cmd.flags.ResolveWorkspace()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(os.Stderr, noWorkspaceMsg)
		return nil
	}

	res, err := cmd.flags.Service.Status(ctx, ws)
	if err != nil {
		return fmt.Errorf("read assignment: %w", err)
	}

	if cmd.jsonOutput {
		targets := make([]string, len(res.Targets))
		for i, t := range res.Targets {
			targets[i] = string(t)
		}
		return iojson.WriteWith(c.Root().Writer, os.Stderr, assignmentInfo{
			Workspace:  ws.Name,
			Root:       ws.Root,
			Policy:     string(res.Policy),
			Index:      res.Assignment.Index,
			Color:      res.Assignment.Entry.Name,
			Background: res.Assignment.Entry.Background,
			Foreground: res.Assignment.Entry.Foreground,
			Overridden: res.Assignment.Overridden,
			Targets:    targets,
		})
	}

	entry := res.Assignment.Entry
	color := entry.Name
	if styles.IsTTY(os.Stdout) {
		color = styles.Swatch(entry.Name, entry.Background, entry.Foreground)
	}

	source := "computed"
	if res.Assignment.Overridden {
		source = "override"
	}

	targets := make([]string, len(res.Targets))
	for i, t := range res.Targets {
		targets[i] = string(t)
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Workspace\t%s\n", ws.Name)
	_, _ = fmt.Fprintf(w, "Root\t%s\n", ws.Root)
	_, _ = fmt.Fprintf(w, "Policy\t%s\n", res.Policy)
	_, _ = fmt.Fprintf(w, "Color\t%s (%d, %s)\n", color, res.Assignment.Index, source)
	_, _ = fmt.Fprintf(w, "Targets\t%s\n", strings.Join(targets, ", "))
	_ = w.Flush()

	return nil
}

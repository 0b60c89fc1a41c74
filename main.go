package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tint/internal/commands"
	"github.com/colonyops/tint/internal/core/config"
	"github.com/colonyops/tint/internal/core/git"
	"github.com/colonyops/tint/internal/core/logging"
	"github.com/colonyops/tint/internal/store/jsonfile"
	"github.com/colonyops/tint/internal/tint"
	"github.com/colonyops/tint/pkg/executil"
	"github.com/colonyops/tint/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "tint",
		Usage:     "Give every workspace its own editor color",
		UsageText: "tint [global options] command [command options]",
		Description: `Tint assigns each workspace a stable color identity and writes it into
.vscode/settings.json, so concurrent editor windows are told apart at a
glance. The settings file is kept out of git status via the repository's
info/exclude list.

Run 'tint' with no arguments to apply the current workspace's color.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TINT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/tint.log)",
				Sources:     cli.EnvVars("TINT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TINT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TINT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "workspace",
				Aliases:     []string{"w"},
				Usage:       "workspace root to act on (defaults to discovery from the working directory)",
				Sources:     cli.EnvVars("TINT_WORKSPACE"),
				Destination: &flags.Workspace,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/tint.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "tint.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			store := jsonfile.NewKVStore(filepath.Join(cfg.DataDir, "state.json"))
			suppressor := git.NewSuppressor(cfg.Git.Path, &executil.RealExecutor{})

			flags.Service = tint.NewService(cfg, store, suppressor, logging.Component("tint"))

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	applyCmd := commands.NewApplyCmd(flags)

	app = applyCmd.Register(app)
	app = commands.NewRerollCmd(flags).Register(app)
	app = commands.NewClearCmd(flags).Register(app)
	app = commands.NewShowCmd(flags).Register(app)
	app = commands.NewPaletteCmd(flags).Register(app)
	app = commands.NewDocsCmd(flags).Register(app)

	// Apply is the default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tint --help' for usage", c.Args().First())
		}
		return applyCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

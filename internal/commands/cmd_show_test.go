package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tint/internal/core/config"
	"github.com/colonyops/tint/internal/core/git"
	"github.com/colonyops/tint/internal/store/memory"
	"github.com/colonyops/tint/internal/tint"
	"github.com/colonyops/tint/pkg/executil"
)

// newTestFlags builds Flags wired to an in-memory store and a git
// executor that reports the settings file as untracked, pointed at a
// fresh workspace named like a real project checkout.
func newTestFlags(t *testing.T) *Flags {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	require.NoError(t, cfg.Validate())

	exec := &executil.RecordingExecutor{
		Errors: map[string]error{"git": errors.New("exit status 1")},
	}
	svc := tint.NewService(&cfg, memory.NewKVStore(), git.NewSuppressor("git", exec), zerolog.Nop())

	root := filepath.Join(t.TempDir(), "my-project")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	return &Flags{
		Workspace: root,
		Config:    &cfg,
		Service:   svc,
	}
}

func newTestApp(buf *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:   "tint",
		Writer: buf,
	}
}

func TestApplyCmd(t *testing.T) {
	var buf bytes.Buffer

	flags := newTestFlags(t)
	app := newTestApp(&buf)
	NewApplyCmd(flags).Register(app)

	err := app.Run(context.Background(), []string{"tint", "apply"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Applied")
	assert.Contains(t, buf.String(), "my-project")

	_, err = os.Stat(filepath.Join(flags.Workspace, ".vscode", "settings.json"))
	require.NoError(t, err)
}

func TestShowCmd_JSON(t *testing.T) {
	var buf bytes.Buffer

	flags := newTestFlags(t)
	app := newTestApp(&buf)
	NewShowCmd(flags).Register(app)

	err := app.Run(context.Background(), []string{"tint", "show", "--json"})
	require.NoError(t, err)

	var info assignmentInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))

	assert.Equal(t, "my-project", info.Workspace)
	assert.Equal(t, "hash", info.Policy)
	assert.Equal(t, 3, info.Index)
	assert.False(t, info.Overridden)
	assert.Equal(t, []string{"titlebar"}, info.Targets)

	// show never writes the settings file
	_, err = os.Stat(filepath.Join(flags.Workspace, ".vscode"))
	assert.True(t, os.IsNotExist(err))
}

func TestPaletteCmd_JSON(t *testing.T) {
	var buf bytes.Buffer

	flags := newTestFlags(t)
	app := newTestApp(&buf)
	NewPaletteCmd(flags).Register(app)

	err := app.Run(context.Background(), []string{"tint", "palette", "--json"})
	require.NoError(t, err)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Len(t, entries, 12)
	assert.Equal(t, "Scarlet", entries[0]["name"])
}

func TestClearCmd(t *testing.T) {
	var buf bytes.Buffer

	flags := newTestFlags(t)
	app := newTestApp(&buf)
	NewApplyCmd(flags).Register(app)
	NewClearCmd(flags).Register(app)

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"tint", "apply"}))
	require.NoError(t, app.Run(ctx, []string{"tint", "clear"}))

	assert.Contains(t, buf.String(), "Cleared color for my-project")

	data, err := os.ReadFile(filepath.Join(flags.Workspace, ".vscode", "settings.json"))
	require.NoError(t, err)

	doc := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotContains(t, doc, "workbench.colorCustomizations")
}

func TestRerollCmd(t *testing.T) {
	var buf bytes.Buffer

	flags := newTestFlags(t)
	app := newTestApp(&buf)
	NewRerollCmd(flags).Register(app)
	NewShowCmd(flags).Register(app)

	ctx := context.Background()
	require.NoError(t, app.Run(ctx, []string{"tint", "reroll"}))

	buf.Reset()
	require.NoError(t, app.Run(ctx, []string{"tint", "show", "--json"}))

	var info assignmentInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.True(t, info.Overridden)
	assert.NotEqual(t, 3, info.Index)
}

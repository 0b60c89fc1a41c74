package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, PolicyHash, cfg.Policy)
	assert.Equal(t, []Target{TargetTitleBar}, cfg.Targets)
	assert.Equal(t, "git", cfg.Git.Path)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
policy: spread
targets: [titlebar, statusbar]
git:
  hide: false
rules:
  - pattern: "**/work/**"
    policy: hash
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, PolicySpread, cfg.Policy)
	assert.Equal(t, []Target{TargetTitleBar, TargetStatusBar}, cfg.Targets)
	require.NotNil(t, cfg.Git.Hide)
	assert.False(t, *cfg.Git.Hide)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, PolicyHash, cfg.Rules[0].Policy)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: rainbow\n"), 0o644))

	_, err := Load(path, dir)
	assert.Error(t, err)
}

func TestForWorkspace_RuleMatching(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/data"
	cfg.Rules = []Rule{
		{Pattern: "**/experiments/**", Policy: PolicySpread, Targets: []Target{TargetStatusBar}},
		{Pattern: "**/experiments/special", Policy: PolicyHash},
	}

	// First match wins.
	res := cfg.ForWorkspace("/home/dev/experiments/special")
	assert.Equal(t, PolicySpread, res.Policy)
	assert.Equal(t, []Target{TargetStatusBar}, res.Targets)

	// No match falls back to top-level config.
	res = cfg.ForWorkspace("/home/dev/other")
	assert.Equal(t, PolicyHash, res.Policy)
	assert.Equal(t, []Target{TargetTitleBar}, res.Targets)
	assert.True(t, res.HideFromGit)
}

func TestForWorkspace_DefaultPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/data"

	res := cfg.ForWorkspace("/home/dev/project")
	assert.Len(t, res.Palette, 12)
}

// Package config handles configuration loading and validation for tint.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/tint/internal/core/palette"
)

// Policy selects how a color index is chosen for a workspace.
type Policy string

// Supported selector policies.
const (
	// PolicyHash derives the index from the workspace name. Stable across
	// restarts without persistence.
	PolicyHash Policy = "hash"
	// PolicySpread picks randomly, biased away from recently used indices.
	PolicySpread Policy = "spread"
)

// IsValid reports whether the policy is a supported value.
func (p Policy) IsValid() bool {
	return p == PolicyHash || p == PolicySpread
}

// Target names an editor surface that receives color keys.
type Target string

// Supported style targets.
const (
	TargetTitleBar    Target = "titlebar"
	TargetStatusBar   Target = "statusbar"
	TargetActivityBar Target = "activitybar"
)

// IsValid reports whether the target is a supported value.
func (t Target) IsValid() bool {
	switch t {
	case TargetTitleBar, TargetStatusBar, TargetActivityBar:
		return true
	}
	return false
}

// GitConfig holds git-related configuration.
type GitConfig struct {
	// Hide controls whether the settings file is excluded from git status.
	// nil means enabled.
	Hide *bool  `yaml:"hide"`
	Path string `yaml:"path"`
}

// Rule overrides policy and targets for workspaces whose root path matches
// a glob pattern. First match wins.
type Rule struct {
	Pattern string   `yaml:"pattern"`
	Policy  Policy   `yaml:"policy"`
	Targets []Target `yaml:"targets"`
}

// Config holds the application configuration.
type Config struct {
	Policy  Policy          `yaml:"policy"`
	Targets []Target        `yaml:"targets"`
	Git     GitConfig       `yaml:"git"`
	Palette []palette.Entry `yaml:"palette"`
	Rules   []Rule          `yaml:"rules"`
	DataDir string          `yaml:"-"` // set by caller, not from config file
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Policy:  PolicyHash,
		Targets: []Target{TargetTitleBar},
		Git: GitConfig{
			Path: "git",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Policy == "" {
		c.Policy = defaults.Policy
	}
	if len(c.Targets) == 0 {
		c.Targets = defaults.Targets
	}
	if c.Git.Path == "" {
		c.Git.Path = defaults.Git.Path
	}
}

// Resolved is the effective configuration for one workspace after rule
// matching.
type Resolved struct {
	Policy      Policy
	Targets     []Target
	Palette     []palette.Entry
	HideFromGit bool
	GitPath     string
}

// ForWorkspace resolves the effective configuration for a workspace root.
// The first rule whose pattern matches the slash-separated root path wins;
// empty rule fields fall back to the top-level values.
func (c *Config) ForWorkspace(root string) Resolved {
	res := Resolved{
		Policy:      c.Policy,
		Targets:     c.Targets,
		Palette:     c.Palette,
		HideFromGit: c.Git.Hide == nil || *c.Git.Hide,
		GitPath:     c.Git.Path,
	}

	if len(res.Palette) == 0 {
		res.Palette = palette.Default()
	}

	path := filepath.ToSlash(root)
	for _, rule := range c.Rules {
		ok, err := doublestar.Match(rule.Pattern, path)
		if err != nil || !ok {
			continue
		}
		if rule.Policy != "" {
			res.Policy = rule.Policy
		}
		if len(rule.Targets) > 0 {
			res.Targets = rule.Targets
		}
		break
	}

	return res
}

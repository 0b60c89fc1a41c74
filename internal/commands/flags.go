package commands

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/colonyops/tint/internal/core/config"
	"github.com/colonyops/tint/internal/core/workspace"
	"github.com/colonyops/tint/internal/tint"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Workspace  string // explicit workspace root; empty means discover from cwd

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Service orchestrates selection, settings, and git suppression
	Service *tint.Service
}

// ResolveWorkspace finds the workspace a command should act on. The bool
// is false when no workspace exists; commands treat that as "nothing to
// color" rather than an error.
func (f *Flags) ResolveWorkspace() (workspace.Workspace, bool, error) {
	if f.Workspace != "" {
		ws, err := workspace.FromDir(f.Workspace)
		if err != nil {
			return workspace.Workspace{}, false, err
		}
		return ws, true, nil
	}

	ws, err := workspace.Discover()
	if errors.Is(err, workspace.ErrNoWorkspace) {
		return workspace.Workspace{}, false, nil
	}
	if err != nil {
		return workspace.Workspace{}, false, err
	}
	return ws, true, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tint", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "tint")
}

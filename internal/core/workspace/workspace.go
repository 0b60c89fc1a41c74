// Package workspace resolves the workspace a directory belongs to and
// derives the identity string used for color hashing.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoWorkspace indicates no workspace root could be found. Callers treat
// this as "nothing to color", not as a failure.
var ErrNoWorkspace = errors.New("no workspace found")

// Workspace describes a discovered workspace.
type Workspace struct {
	Root string // absolute path to the workspace root
	Name string // last path segment of Root, the hashing identity
}

// markers are the directory entries that identify a workspace root.
var markers = []string{".git", ".vscode"}

// Discover finds the workspace root by walking up from the current
// working directory. Returns ErrNoWorkspace if the walk reaches the
// filesystem root without finding a marker.
func Discover() (Workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Workspace{}, fmt.Errorf("get working directory: %w", err)
	}
	return DiscoverFrom(cwd)
}

// DiscoverFrom finds the workspace root starting from a given directory.
func DiscoverFrom(startDir string) (Workspace, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Workspace{}, fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return fromRoot(dir)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Workspace{}, ErrNoWorkspace
		}
		dir = parent
	}
}

// FromDir treats dir itself as the workspace root, without marker
// discovery. Used when the user names the workspace explicitly.
func FromDir(dir string) (Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Workspace{}, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Workspace{}, fmt.Errorf("stat workspace: %w", err)
	}
	if !info.IsDir() {
		return Workspace{}, fmt.Errorf("workspace %s is not a directory", abs)
	}

	return fromRoot(abs)
}

func fromRoot(root string) (Workspace, error) {
	name := filepath.Base(root)
	if name == string(filepath.Separator) || name == "." {
		return Workspace{}, ErrNoWorkspace
	}
	return Workspace{Root: root, Name: name}, nil
}

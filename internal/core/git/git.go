// Package git resolves repository metadata and hides the settings file
// from version control via the metadata directory's exclude list.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RepoKind classifies a workspace root's relationship to git.
type RepoKind int

// Resolver results.
const (
	NotARepository RepoKind = iota
	Plain                   // .git is the metadata directory itself
	Worktree                // .git is a pointer file into another metadata directory
)

func (k RepoKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Worktree:
		return "worktree"
	default:
		return "not-a-repository"
	}
}

// Metadata locates a repository's metadata directory.
type Metadata struct {
	Kind   RepoKind
	GitDir string // empty when Kind is NotARepository
}

const gitdirPrefix = "gitdir:"

// ResolveMetadata inspects root's .git entry. A directory is used as the
// metadata dir directly; a file is parsed as a "gitdir: <path>" pointer
// (linked worktree), resolved relative to root when not absolute.
func ResolveMetadata(root string) (Metadata, error) {
	dotGit := filepath.Join(root, ".git")

	info, err := os.Stat(dotGit)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{Kind: NotARepository}, nil
		}
		return Metadata{}, fmt.Errorf("stat %s: %w", dotGit, err)
	}

	if info.IsDir() {
		return Metadata{Kind: Plain, GitDir: dotGit}, nil
	}

	data, err := os.ReadFile(dotGit)
	if err != nil {
		return Metadata{}, fmt.Errorf("read %s: %w", dotGit, err)
	}

	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, gitdirPrefix) {
		return Metadata{}, fmt.Errorf("malformed .git pointer file in %s", root)
	}

	gitDir := strings.TrimSpace(strings.TrimPrefix(line, gitdirPrefix))
	if gitDir == "" {
		return Metadata{}, fmt.Errorf("empty gitdir pointer in %s", root)
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(root, gitDir)
	}

	return Metadata{Kind: Worktree, GitDir: filepath.Clean(gitDir)}, nil
}

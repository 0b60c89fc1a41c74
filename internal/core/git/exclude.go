package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/tint/pkg/executil"
)

// Status classifies a Hide attempt. Hiding is best-effort: callers log the
// outcome and move on, they never fail on it.
type Status string

// Hide outcomes.
const (
	StatusHidden        Status = "hidden"         // path appended to the exclude list
	StatusAlreadyHidden Status = "already-hidden" // exact path already listed
	StatusTrackedSkip   Status = "tracked-skip"   // file is tracked, excluding would do nothing
	StatusNotARepo      Status = "not-a-repo"     // workspace is not a git repository
	StatusFailed        Status = "failed"         // filesystem or metadata failure
)

// Outcome is the non-fatal result of a Hide call.
type Outcome struct {
	Status Status
	Err    error // set only when Status is StatusFailed
}

// Failed reports whether the attempt errored.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// Suppressor hides files from git status without touching history.
type Suppressor struct {
	gitPath string
	exec    executil.Executor
}

// NewSuppressor creates a Suppressor using the given git binary.
func NewSuppressor(gitPath string, exec executil.Executor) *Suppressor {
	return &Suppressor{gitPath: gitPath, exec: exec}
}

// Hide appends target's repo-relative path to the metadata directory's
// info/exclude list. Tracked files are skipped: an exclude entry has no
// effect on committed content and history is never rewritten. Idempotent;
// repeated calls add no duplicate lines.
func (s *Suppressor) Hide(ctx context.Context, repoRoot, target string) Outcome {
	md, err := ResolveMetadata(repoRoot)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}
	if md.Kind == NotARepository {
		return Outcome{Status: StatusNotARepo}
	}

	rel, err := filepath.Rel(repoRoot, target)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("relativize %s: %w", target, err)}
	}
	rel = filepath.ToSlash(rel)

	if s.isTracked(ctx, repoRoot, rel) {
		return Outcome{Status: StatusTrackedSkip}
	}

	return appendExclude(md.GitDir, rel)
}

// isTracked reports whether rel is known to the index. Errors (including a
// missing git binary) count as untracked; worst case is a harmless
// exclude entry.
func (s *Suppressor) isTracked(ctx context.Context, repoRoot, rel string) bool {
	_, err := s.exec.RunDir(ctx, repoRoot, s.gitPath, "ls-files", "--error-unmatch", "--", rel)
	return err == nil
}

// appendExclude adds rel to gitDir/info/exclude unless an exact-match line
// is already present.
func appendExclude(gitDir, rel string) Outcome {
	infoDir := filepath.Join(gitDir, "info")
	if err := os.MkdirAll(infoDir, 0o755); err != nil {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("create info dir: %w", err)}
	}

	excludePath := filepath.Join(infoDir, "exclude")

	existing, err := os.ReadFile(excludePath)
	if err != nil && !os.IsNotExist(err) {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("read exclude: %w", err)}
	}

	for _, line := range strings.Split(string(existing), "\n") {
		if strings.TrimSpace(line) == rel {
			return Outcome{Status: StatusAlreadyHidden}
		}
	}

	entry := rel + "\n"
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		entry = "\n" + entry
	}

	f, err := os.OpenFile(excludePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("open exclude: %w", err)}
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(entry); err != nil {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("append exclude: %w", err)}
	}

	return Outcome{Status: StatusHidden}
}

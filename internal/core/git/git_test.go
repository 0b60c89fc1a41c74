package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMetadata_Plain(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	md, err := ResolveMetadata(root)
	require.NoError(t, err)
	assert.Equal(t, Plain, md.Kind)
	assert.Equal(t, filepath.Join(root, ".git"), md.GitDir)
}

func TestResolveMetadata_WorktreeRelative(t *testing.T) {
	root := t.TempDir()
	pointer := "gitdir: ../main/.git/worktrees/feature\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte(pointer), 0o644))

	md, err := ResolveMetadata(root)
	require.NoError(t, err)
	assert.Equal(t, Worktree, md.Kind)
	assert.Equal(t, filepath.Join(filepath.Dir(root), "main", ".git", "worktrees", "feature"), md.GitDir)
}

func TestResolveMetadata_WorktreeAbsolute(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(t.TempDir(), "repo", ".git", "worktrees", "wt")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: "+gitDir), 0o644))

	md, err := ResolveMetadata(root)
	require.NoError(t, err)
	assert.Equal(t, Worktree, md.Kind)
	assert.Equal(t, gitDir, md.GitDir)
}

func TestResolveMetadata_NotARepository(t *testing.T) {
	md, err := ResolveMetadata(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, NotARepository, md.Kind)
	assert.Empty(t, md.GitDir)
}

func TestResolveMetadata_MalformedPointer(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("not a pointer"), 0o644))

	_, err := ResolveMetadata(root)
	assert.Error(t, err)
}

func TestRepoKind_String(t *testing.T) {
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "worktree", Worktree.String())
	assert.Equal(t, "not-a-repository", NotARepository.String())
}

package vcs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0o644))
}

func TestInMetaDir(t *testing.T) {
	assert.True(t, InMetaDir("/home/u/src/.git"))
	assert.True(t, InMetaDir("/home/u/src/.git/refs/tags"))
	assert.False(t, InMetaDir("/home/u/src/.github"))
	assert.False(t, InMetaDir("/home/u/src"))
}

func TestCountLoose(t *testing.T) {
	gitDir := filepath.Join(t.TempDir(), ".git")

	writeFile(t, filepath.Join(gitDir, "objects", "ab", strings.Repeat("c", 38)), 10)
	writeFile(t, filepath.Join(gitDir, "objects", "0f", strings.Repeat("1", 38)), 20)
	writeFile(t, filepath.Join(gitDir, "objects", "pack", "pack-1234.pack"), 1000)
	writeFile(t, filepath.Join(gitDir, "objects", "info", "packs"), 5)

	loose, err := CountLoose(context.Background(), gitDir)
	require.NoError(t, err)
	assert.Equal(t, int64(2), loose.Count)
	assert.Equal(t, int64(30), loose.Size)
}

func TestCountLoose_NoObjects(t *testing.T) {
	loose, err := CountLoose(context.Background(), filepath.Join(t.TempDir(), ".git"))
	require.NoError(t, err)
	assert.Zero(t, loose.Count)
}

func TestWorktree(t *testing.T) {
	dir := t.TempDir()

	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, ok := Worktree(filepath.Join(dir, MetaDir))
	assert.True(t, ok)
	assert.Equal(t, dir, worktree)

	_, ok = Worktree(filepath.Join(t.TempDir(), MetaDir))
	assert.False(t, ok, "directory without a repository")

	_, ok = Worktree(dir)
	assert.False(t, ok, "not a metadata directory")
}

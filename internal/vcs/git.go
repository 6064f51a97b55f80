// Package vcs inspects git metadata directories.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/go-git/go-git/v5"
)

// MetaDir is the name of git's administrative directory.
const MetaDir = ".git"

// InMetaDir reports whether path is a git metadata directory or lies below one.
func InMetaDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == MetaDir {
			return true
		}
	}

	return false
}

// Worktree returns the worktree owning the metadata directory gitDir, or
// false if gitDir does not belong to an openable repository.
func Worktree(gitDir string) (string, bool) {
	if filepath.Base(gitDir) != MetaDir {
		return "", false
	}

	worktree := filepath.Dir(gitDir)
	if _, err := git.PlainOpen(worktree); err != nil {
		return "", false
	}

	return worktree, true
}

// Loose summarizes unpacked objects of a repository.
type Loose struct {
	// Count is the number of loose objects.
	Count int64
	// Size is their cumulative on-disk size in bytes.
	Size int64
}

// isHex reports whether s consists only of lowercase hex digits.
func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}

	return s != ""
}

// CountLoose counts loose objects below gitDir/objects. Loose objects live in
// two-character fan-out directories; pack and info are skipped.
//
//nolint:varnamelen // d is standard for DirEntry
func CountLoose(ctx context.Context, gitDir string) (Loose, error) {
	var (
		mu    sync.Mutex // fastwalk calls back from several goroutines
		loose Loose
	)

	root := filepath.Join(gitDir, "objects")

	conf := &fastwalk.Config{
		Follow: false,
	}

	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Unreadable fan-out directories are not counted
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			if filepath.Dir(path) != root || len(d.Name()) != 2 || !isHex(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() || !isHex(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Vanished objects are not counted
		}

		mu.Lock()
		loose.Count++
		loose.Size += info.Size()
		mu.Unlock()

		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Loose{}, fmt.Errorf("counting loose objects in %q: %w", gitDir, err)
	}

	return loose, nil
}

package suggest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dirtidy/internal/vcs"
)

// Config tunes the engine.
type Config struct {
	// OldBinaryAge is the age past which objects and executables are suggested for removal.
	OldBinaryAge time.Duration
	// LooseObjects is the minimum number of loose objects that triggers a gc suggestion.
	LooseObjects int64
	// Names are extra name rules applied after DefaultNames.
	Names []NameRule
}

// File is a regular file offered to the file rules.
type File struct {
	// Path is the absolute path of the file.
	Path string
	// Type is the classified type, empty when classification is disabled.
	Type string
	// Age is the time since the last modification.
	Age time.Duration
}

// Dir is a directory offered to the directory rules.
type Dir struct {
	// Path is the absolute path of the directory.
	Path string
	// Entries is the directory listing without excluded entries.
	Entries []fs.DirEntry
	// Excluded is the number of entries left out of Entries.
	Excluded int
}

// Engine evaluates the rule tables.
type Engine struct {
	names        []NameRule
	types        []TypeRule
	oldBinaries  map[string]string
	manifests    []ManifestRule
	artifacts    []ArtifactRule
	oldBinaryAge time.Duration
	looseObjects int64

	worktree   func(gitDir string) (string, bool)
	countLoose func(ctx context.Context, gitDir string) (vcs.Loose, error)
}

// New creates an engine with the default rule tables.
func New(cfg Config) *Engine {
	if cfg.LooseObjects <= 0 {
		cfg.LooseObjects = 1
	}

	return &Engine{
		names:        append(slices.Clone(DefaultNames), cfg.Names...),
		types:        DefaultTypes,
		oldBinaries:  OldBinaries,
		manifests:    DefaultManifests,
		artifacts:    DefaultArtifacts,
		oldBinaryAge: cfg.OldBinaryAge,
		looseObjects: cfg.LooseObjects,
		worktree:     vcs.Worktree,
		countLoose:   vcs.CountLoose,
	}
}

// File returns the suggestions for a single file, in rule order.
func (e *Engine) File(f File) []Suggestion {
	var out []Suggestion

	name := filepath.Base(f.Path)

	for _, rule := range e.names {
		if rule.Matcher.Match(name) {
			out = append(out, remove(f.Path, rule.Reason))
		}
	}

	if reason, ok := e.oldBinaries[f.Type]; ok && f.Age > e.oldBinaryAge {
		out = append(out, remove(f.Path, fmt.Sprintf("%s (%d days)", reason, days(f.Age))))
	}

	for _, rule := range e.types {
		if f.Type != "" && strings.Contains(f.Type, rule.Contains) {
			out = append(out, remove(f.Path, rule.Reason))
		}
	}

	dir := filepath.Dir(f.Path)

	for _, rule := range e.manifests {
		if name != rule.Manifest {
			continue
		}

		if info, err := os.Stat(filepath.Join(dir, rule.Generated)); err == nil && info.IsDir() {
			out = append(out, Suggestion{Path: dir, Command: rule.Command(dir), Reason: rule.Reason})
		}
	}

	return out
}

// Dir returns the suggestions for a directory. A failure to inspect git
// metadata is returned alongside whatever suggestions were produced.
func (e *Engine) Dir(ctx context.Context, d Dir) ([]Suggestion, error) {
	var out []Suggestion

	// Excluded entries still occupy the directory, so rmdir would fail.
	if len(d.Entries) == 0 && d.Excluded == 0 && !vcs.InMetaDir(d.Path) {
		out = append(out, Suggestion{Path: d.Path, Command: "rmdir -- " + quote(d.Path), Reason: "empty directory"})
	}

	for _, rule := range e.artifacts {
		if hasArtifact(d.Entries, rule) {
			out = append(out, Suggestion{Path: d.Path, Command: rule.Command(d.Path), Reason: rule.Reason})
		}
	}

	if filepath.Base(d.Path) != vcs.MetaDir {
		return out, nil
	}

	worktree, ok := e.worktree(d.Path)
	if !ok {
		return out, nil
	}

	loose, err := e.countLoose(ctx, d.Path)
	if err != nil {
		return out, err
	}

	if loose.Count >= e.looseObjects {
		out = append(out, Suggestion{
			Path:    d.Path,
			Command: "git -C " + quote(worktree) + " gc",
			Reason:  fmt.Sprintf("%d loose objects (%s)", loose.Count, humanize.IBytes(uint64(loose.Size))), //nolint:gosec // Sizes are never negative
		})
	}

	return out, nil
}

func hasArtifact(entries []fs.DirEntry, rule ArtifactRule) bool {
	found, marker := false, rule.Marker == ""

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if entry.Name() == rule.Marker {
			marker = true
		}

		if slices.Contains(rule.Exts, filepath.Ext(entry.Name())) {
			found = true
		}
	}

	return found && marker
}

func days(d time.Duration) int {
	return int(d / (24 * time.Hour))
}

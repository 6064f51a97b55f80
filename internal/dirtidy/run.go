package dirtidy

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/idelchi/dirtidy/internal/classify"
	"github.com/idelchi/dirtidy/internal/suggest"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides warnings and conditional debug output.
type logger struct {
	debug bool
	out   io.Writer
}

// printf prints debug output if debugging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.debug {
		fmt.Fprintf(l.out, "[debug]: "+format+"\n", args...)
	}
}

// warnf always prints.
func (l logger) warnf(format string, args ...any) {
	fmt.Fprintf(l.out, "[warning]: "+format+"\n", args...)
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// displayPath makes path relative to home ("~/...") when it lies below it.
func displayPath(path, home string) string {
	if home == "" {
		return path
	}

	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	if rel == "." {
		return "~"
	}

	return "~" + string(filepath.Separator) + rel
}

// walker carries the traversal state through the recursion.
type walker struct {
	opt        Options
	log        logger
	classifier *classify.Classifier
	engine     *suggest.Engine
	collector  *collector
	excludes   []*regexp.Regexp
	now        time.Time

	readDir func(string) ([]fs.DirEntry, error)

	progress     func(int64, int64)
	lastProgress time.Time
}

// newWalker prepares a walk with opt, which must already carry its defaults.
func newWalker(opt Options, sniffer classify.Sniffer, excludes []*regexp.Regexp, progress func(int64, int64)) *walker {
	return &walker{
		opt:        opt,
		log:        logger{debug: opt.Debug, out: opt.Log},
		classifier: classify.New(sniffer, opt.Classify),
		engine: suggest.New(suggest.Config{
			OldBinaryAge: opt.OldBinaryAge,
			LooseObjects: opt.LooseObjects,
			Names:        opt.Names,
		}),
		collector: newCollector(),
		excludes:  excludes,
		now:       opt.Now,
		readDir:   os.ReadDir,
		progress:  progress,
	}
}

// fresh reports whether an entry modified at mod is protected by the freshness guard.
func (w *walker) fresh(mod time.Time) bool {
	return w.now.Sub(mod) < w.opt.Freshness
}

// reportProgress invokes the progress hook at most once per interval.
func (w *walker) reportProgress() {
	if w.progress == nil {
		return
	}

	if now := time.Now(); now.Sub(w.lastProgress) >= w.opt.ProgressInterval {
		w.lastProgress = now
		w.progress(w.collector.fileCount, w.collector.totalBytes)
	}
}

// hasLineBreak reports whether path cannot be written on a single report line.
func hasLineBreak(path string) bool {
	return strings.ContainsAny(path, "\n\r")
}

// filter drops the entries matching an exclusion pattern.
//
//nolint:varnamelen // d is standard for DirEntry
func (w *walker) filter(path string, entries []fs.DirEntry) []fs.DirEntry {
	if len(w.excludes) == 0 {
		return entries
	}

	kept := make([]fs.DirEntry, 0, len(entries))

	for _, d := range entries {
		child := filepath.Join(path, d.Name())

		if matchedPattern := shouldExcludeByPattern(child, w.excludes); matchedPattern != nil {
			w.log.printf("excluding %s (matched regex: %s)", filepath.ToSlash(child), matchedPattern.String())

			continue
		}

		kept = append(kept, d)
	}

	return kept
}

// dir visits a directory: its own suggestions, then its files, then its subdirectories.
//
//nolint:varnamelen,cyclop // d is standard for DirEntry
func (w *walker) dir(ctx context.Context, path string, info fs.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// A failed listing may still carry the entries read before the error.
	entries, err := w.readDir(path)
	complete := err == nil

	if !complete {
		w.collector.addError()

		if len(entries) == 0 {
			w.log.warnf("skipping unreadable directory %s: %v", path, err)

			return nil
		}

		w.log.warnf("partially read directory %s: %v", path, err)
	}

	kept := w.filter(path, entries)

	switch {
	case !complete:
		w.log.printf("no suggestions for partially read directory: %s", path)
	case w.fresh(info.ModTime()):
		w.log.printf("no suggestions for fresh directory: %s", path)
	case hasLineBreak(path):
		w.log.warnf("no suggestions for %q: name contains a line break", path)
	default:
		suggestions, err := w.engine.Dir(ctx, suggest.Dir{
			Path:     path,
			Entries:  kept,
			Excluded: len(entries) - len(kept),
		})
		if err != nil {
			w.log.warnf("inspecting %s: %v", path, err)
		}

		w.collector.addSuggestions(suggestions...)
	}

	var subdirs []fs.DirEntry

	for _, d := range kept {
		child := filepath.Join(path, d.Name())

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			w.log.printf("skipping symlink: %s", child)
		case d.IsDir():
			subdirs = append(subdirs, d)
		case d.Type().IsRegular():
			w.file(ctx, child, d)
		}
	}

	for _, d := range subdirs {
		child := filepath.Join(path, d.Name())

		childInfo, err := d.Info()
		if err != nil {
			w.log.warnf("skipping %s: %v", child, err)
			w.collector.addError()

			continue
		}

		if err := w.dir(ctx, child, childInfo); err != nil {
			return err
		}
	}

	return nil
}

// file classifies a regular file, asks for suggestions and records it.
//
//nolint:varnamelen // d is standard for DirEntry
func (w *walker) file(ctx context.Context, path string, d fs.DirEntry) {
	info, err := d.Info()
	if err != nil {
		w.log.warnf("skipping %s: %v", path, err)
		w.collector.addError()

		return
	}

	typ, err := w.classifier.Classify(ctx, path)
	if err != nil {
		w.log.warnf("classifying %s: %v", path, err)
	}

	switch {
	case w.fresh(info.ModTime()):
		w.log.printf("no suggestions for fresh file: %s", path)
	case hasLineBreak(path):
		w.log.warnf("no suggestions for %q: name contains a line break", path)
	default:
		w.collector.addSuggestions(w.engine.File(suggest.File{
			Path: path,
			Type: typ,
			Age:  w.now.Sub(info.ModTime()),
		})...)
	}

	w.collector.add(displayPath(path, w.opt.Home), info.Size(), typ)
	w.reportProgress()
}

// Run walks the tree at opt.Path and returns statistics and suggestions.
//
// Directories are suggested on before their files, and files before any
// subdirectory is entered. Entries younger than opt.Freshness are counted but
// get no suggestions. Unreadable entries are skipped with a warning.
//
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	if opt.Log == nil {
		opt.Log = os.Stderr
	}

	log := logger{debug: opt.Debug, out: opt.Log}

	if opt.Path == "" {
		opt.Path = "."
	}

	root, err := filepath.Abs(filepath.Clean(opt.Path))
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	// validate path exists and is accessible
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	excludeRegexes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludeRegexes = append(excludeRegexes, re)
	}

	sniffer := opt.Sniffer
	if opt.Classify && sniffer == nil {
		fileCmd, err := classify.NewFileCommand()
		if err != nil {
			log.warnf("classification disabled: %v", err)
		} else {
			sniffer = fileCmd
		}
	}

	if opt.Now.IsZero() {
		opt.Now = time.Now()
	}

	if opt.ProgressInterval <= 0 {
		opt.ProgressInterval = DefaultProgressInterval
	}

	w := newWalker(opt, sniffer, excludeRegexes, progressHook)

	log.printf("walking %s (classification: %t, freshness: %s)", root, w.classifier.Enabled(), opt.Freshness)

	start := time.Now()

	if err := w.dir(ctx, root, info); err != nil {
		return nil, err
	}

	result := w.collector.finalize()

	result.Root = root
	result.Elapsed = time.Since(start)

	return result, nil
}

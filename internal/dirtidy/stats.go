package dirtidy

import (
	"io"
	"sort"
	"time"

	"github.com/idelchi/dirtidy/internal/classify"
	"github.com/idelchi/dirtidy/internal/suggest"
)

const (
	// DefaultFreshness is the age below which entries get no suggestions.
	DefaultFreshness = 7 * 24 * time.Hour
	// DefaultOldBinaryAge is the age past which objects and executables are suggested for removal.
	DefaultOldBinaryAge = 365 * 24 * time.Hour
)

// FileStat represents a single file path and size.
type FileStat struct {
	// Path is the display path, relative to the home directory when possible.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// TypeStat aggregates the files of one classified type.
type TypeStat struct {
	// Count is the number of files of this type.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
	// Files lists the files, largest first.
	Files []FileStat `json:"files"`
}

// Stats holds aggregate statistics for a directory walk.
type Stats struct {
	// FileCount is the total number of regular files visited.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of all visited files.
	TotalBytes int64 `json:"total_bytes"`
	// Types maps classified types to their statistics.
	Types map[string]*TypeStat `json:"types"`
	// ErrorCount is the number of entries that could not be listed or stat'd.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken for the walk.
	Elapsed time.Duration `json:"elapsed"`
}

// SortedTypes returns the type names by descending aggregate size, ties by name.
func (s *Stats) SortedTypes() []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := s.Types[names[i]], s.Types[names[j]]
		if a.Size != b.Size {
			return a.Size > b.Size
		}

		return names[i] < names[j]
	})

	return names
}

// Result is the outcome of a walk.
type Result struct {
	Stats

	// Root is the absolute path of the walked directory.
	Root string `json:"root"`

	// Suggestions are in walk order.
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// Options configures the walk and CLI behavior.
type Options struct {
	// Path is the directory to walk.
	Path string
	// Home is the directory display paths are made relative to.
	Home string
	// Classify enables content-type classification.
	Classify bool
	// Sniffer describes file contents; file(1) is used when nil.
	Sniffer classify.Sniffer
	// Freshness is the age below which entries get no suggestions.
	Freshness time.Duration
	// OldBinaryAge is the age past which objects and executables are suggested for removal.
	OldBinaryAge time.Duration
	// LooseObjects is the loose object count that triggers a gc suggestion.
	LooseObjects int64
	// Names are extra name rules.
	Names []suggest.NameRule
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Now is the reference time for ages; zero means time.Now().
	Now time.Time
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Log receives warnings and debug output; os.Stderr when nil.
	Log io.Writer
	// Output is the report path.
	Output string
	// Format is the report format (script or json).
	Format string
	// Integration indicates whether to output the integration script.
	Integration bool
}

// collector aggregates statistics and suggestions during a walk.
type collector struct {
	types       map[string]*TypeStat
	suggestions []suggest.Suggestion
	fileCount   int64
	totalBytes  int64
	errorCount  int64
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{
		types: make(map[string]*TypeStat),
	}
}

// addError increments the error counter.
func (c *collector) addError() {
	c.errorCount++
}

// addSuggestions records suggestions in the order given.
func (c *collector) addSuggestions(s ...suggest.Suggestion) {
	c.suggestions = append(c.suggestions, s...)
}

// add records a file under its type.
func (c *collector) add(path string, size int64, typ string) {
	c.fileCount++
	c.totalBytes += size

	stat, ok := c.types[typ]
	if !ok {
		stat = &TypeStat{}
		c.types[typ] = stat
	}

	stat.Count++
	stat.Size += size
	stat.Files = append(stat.Files, FileStat{Path: path, Size: size})
}

// finalize produces the final Result, ordering each bucket's files largest first.
func (c *collector) finalize() *Result {
	for _, stat := range c.types {
		sort.SliceStable(stat.Files, func(i, j int) bool {
			return stat.Files[i].Size > stat.Files[j].Size
		})
	}

	return &Result{
		Stats: Stats{
			FileCount:  c.fileCount,
			TotalBytes: c.totalBytes,
			Types:      c.types,
			ErrorCount: c.errorCount,
		},
		Suggestions: c.suggestions,
	}
}

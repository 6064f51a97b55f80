// Package classify maps files to coarse content types.
//
// A Sniffer produces a free-text description of a file (by default the
// output of file(1)), which Normalize collapses into a small set of buckets
// through an ordered list of rewrite rules.
package classify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Sniffer describes the content of a file.
type Sniffer interface {
	Sniff(ctx context.Context, path string) (string, error)
}

// FileCommand sniffs file content by running file(1) in brief mode.
type FileCommand struct {
	// Bin is the path of the file binary.
	Bin string
}

// NewFileCommand resolves the file binary on PATH.
func NewFileCommand() (FileCommand, error) {
	bin, err := exec.LookPath("file")
	if err != nil {
		return FileCommand{}, fmt.Errorf("looking up file command: %w", err)
	}

	return FileCommand{Bin: bin}, nil
}

// Sniff runs `file -b -- path` and returns its trimmed output.
func (f FileCommand) Sniff(ctx context.Context, path string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, f.Bin, "-b", "--", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s on %q: %w: %s", f.Bin, path, err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Unknown is the type assigned to files whose content could not be sniffed.
const Unknown = "unknown"

// Classifier turns file paths into normalized type strings.
type Classifier struct {
	sniffer Sniffer
	enabled bool
}

// New returns a classifier backed by sniffer. A disabled classifier, or one
// without a sniffer, reports the empty type for every file.
func New(sniffer Sniffer, enabled bool) *Classifier {
	return &Classifier{sniffer: sniffer, enabled: enabled && sniffer != nil}
}

// Enabled reports whether files are actually sniffed.
func (c *Classifier) Enabled() bool {
	return c.enabled
}

// Classify returns the normalized type of the file at path.
// On a sniffing error the Unknown type is returned together with the error.
func (c *Classifier) Classify(ctx context.Context, path string) (string, error) {
	if !c.enabled {
		return "", nil
	}

	desc, err := c.sniffer.Sniff(ctx, path)
	if err != nil {
		return Unknown, err
	}

	return Normalize(desc), nil
}

// rewrite replaces every match of re with repl.
type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// truncatePrefixes end a description right after the first one found.
//
//nolint:gochecknoglobals // Rule table
var truncatePrefixes = []string{
	"image data",
	"PDF document",
	"compressed data",
	"archive data",
	"tar archive",
	"Audio file",
	"ISO Media",
	"database",
	"font",
	"tag file",
}

// rewrites are applied in order.
//
//nolint:gochecknoglobals // Rule table
var rewrites = []rewrite{
	{regexp.MustCompile(`, with .*$`), ""},
	{regexp.MustCompile(`(, (ASCII|UTF-8 Unicode( \(with BOM\))?|UTF-8|ISO-8859|Unicode|Non-ISO extended-ASCII) text( executable)?)+$`), ""},
	{regexp.MustCompile(`^(ASCII|UTF-8 Unicode( \(with BOM\))?|UTF-8|ISO-8859|Unicode|Non-ISO extended-ASCII) text`), "text"},
	{regexp.MustCompile(`C\+\+`), "C"},
	{regexp.MustCompile(`^ELF .*\b(pie )?executable\b.*$`), "ELF executable"},
	{regexp.MustCompile(`^ELF .*\brelocatable\b.*$`), "ELF relocatable"},
	{regexp.MustCompile(`^ELF .*\bshared object\b.*$`), "ELF shared object"},
	{regexp.MustCompile(`^ELF .*\bcore file\b.*$`), "ELF core file"},
	{regexp.MustCompile(`^(.*?\b(` + strings.Join(quoteAll(truncatePrefixes), "|") + `)).*$`), "$1"},
	{regexp.MustCompile(`\s+`), " "},
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = regexp.QuoteMeta(s)
	}

	return out
}

// Normalize collapses a free-text file description into a coarse type.
func Normalize(desc string) string {
	desc = strings.TrimSpace(desc)

	for _, r := range rewrites {
		desc = r.re.ReplaceAllString(desc, r.repl)
	}

	return strings.TrimSpace(desc)
}

// Package suggest holds the rule tables that turn files and directories into
// advisory cleanup commands.
//
// Rules are independent: every matching rule contributes one Suggestion, so a
// single entry can yield several commands. Nothing here touches the
// filesystem beyond reading it.
package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
)

// Marker prefixes every suggestion line so they can be grepped out of a report.
const Marker = "## "

// Suggestion is one advisory command.
type Suggestion struct {
	// Path is the file or directory the suggestion is about.
	Path string `json:"path"`
	// Command is the shell command a human may choose to run.
	Command string `json:"command"`
	// Reason explains why the command is suggested.
	Reason string `json:"reason"`
}

// String renders the suggestion as a commented-out script line.
func (s Suggestion) String() string {
	return Marker + s.Command + "\t# " + s.Reason
}

// Matcher decides whether a base name matches a rule.
type Matcher interface {
	Match(name string) bool
}

// Exact matches one name.
type Exact string

// Match implements Matcher.
func (e Exact) Match(name string) bool { return name == string(e) }

// Suffix matches names ending in the given string.
type Suffix string

// Match implements Matcher.
func (s Suffix) Match(name string) bool { return strings.HasSuffix(name, string(s)) }

// Pattern matches names against a regular expression.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr into a Pattern.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compiling name pattern %q: %w", expr, err)
	}

	return Pattern{re: re}, nil
}

// MustPattern is like NewPattern but panics on an invalid expression.
func MustPattern(expr string) Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}

	return p
}

// Match implements Matcher.
func (p Pattern) Match(name string) bool { return p.re.MatchString(name) }

// NameRule pairs a name matcher with the reason for removing matching files.
type NameRule struct {
	Matcher Matcher
	Reason  string
}

func quote(path string) string {
	return shellescape.Quote(path)
}

func remove(path, reason string) Suggestion {
	return Suggestion{Path: path, Command: "rm -f -- " + quote(path), Reason: reason}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/idelchi/dirtidy/internal/dirtidy"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// Unclassified labels the bucket of files without a type.
	Unclassified = "(unclassified)"
)

// PrintJSON outputs the result in JSON format.
func PrintJSON(result *dirtidy.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// oneLine quotes s when it would otherwise span several report lines.
func oneLine(s string) string {
	if strings.ContainsAny(s, "\n\r") {
		return strconv.Quote(s)
	}

	return s
}

// PrintScript outputs the suggestions followed by the inventory of file types
// as a shell script in which every line is commented out.
//
//nolint:forbidigo // This function prints the report.
func PrintScript(result *dirtidy.Result, writer io.Writer) error {
	fmt.Fprintln(writer, "#!/bin/sh")
	fmt.Fprintf(writer, "# Cleanup suggestions for %s\n", oneLine(result.Root))
	fmt.Fprintln(writer, "# Nothing has been deleted. Review each line and remove the leading \"## \" to run it.")
	fmt.Fprintln(writer, "#")

	if len(result.Suggestions) == 0 {
		fmt.Fprintln(writer, "# No suggestions.")
	}

	// Suggestions keep their tab so they can be split on it later.
	// One that would span several lines is demoted to a plain comment.
	for _, s := range result.Suggestions {
		if line := s.String(); line != oneLine(line) {
			fmt.Fprintf(writer, "# unsafe suggestion: %s\n", oneLine(line))
		} else {
			fmt.Fprintln(writer, line)
		}
	}

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "#")
	fmt.Fprintln(w, "# Files by type, largest first:")

	for _, name := range result.SortedTypes() {
		stat := result.Types[name]

		label := oneLine(name)
		if label == "" {
			label = Unclassified
		}

		fmt.Fprintln(w, "#")
		fmt.Fprintf(w, "# %s: %d files, %s\n", label, stat.Count, dirtidy.FormatSize(stat.Size))

		for _, f := range stat.Files {
			fmt.Fprintf(w, "#   %s\t%s\n", dirtidy.FormatSize(f.Size), oneLine(f.Path))
		}
	}

	fmt.Fprintln(w, "#")
	fmt.Fprintf(w, "# total: %d files, %s\n", result.FileCount, dirtidy.FormatSize(result.TotalBytes))

	if result.ErrorCount > 0 {
		fmt.Fprintf(w, "# skipped: %d unreadable entries\n", result.ErrorCount)
	}

	return w.Flush()
}

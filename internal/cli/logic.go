package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dirtidy/internal/dirtidy"
)

func logic(ctx context.Context, options dirtidy.Options, stdout io.Writer) error {
	enableProgress := !options.Debug && isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %s files, %s",
				humanize.Comma(files), humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := dirtidy.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if err := writeReport(options, result); err != nil {
		return err
	}

	return printSummary(stdout, options, result)
}

func writeReport(options dirtidy.Options, result *dirtidy.Result) (err error) {
	file, err := os.Create(options.Output)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report: %w", cerr)
		}
	}()

	switch options.Format {
	case "json":
		return PrintJSON(result, file)
	default:
		return PrintScript(result, file)
	}
}

func printSummary(w io.Writer, options dirtidy.Options, result *dirtidy.Result) error {
	n := len(result.Suggestions)

	var err error

	switch n {
	case 0:
		_, err = fmt.Fprintf(w, "No suggestions. Inventory written to %s\n", options.Output)
	case 1:
		_, err = fmt.Fprintf(w, "1 suggestion written to %s\n", options.Output)
	default:
		_, err = fmt.Fprintf(w, "%s suggestions written to %s\n", humanize.Comma(int64(n)), options.Output)
	}

	return err
}

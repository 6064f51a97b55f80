// Package integration provides the embedded shell review helper.
package integration

import (
	"bytes"
	_ "embed"
	"fmt"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/idelchi/dirtidy/internal/suggest"
)

// Review contains the shell review helper with fzf support.
//
//go:embed review.sh
var Review string

// Shell finds a POSIX shell for fzf previews, preferring bash.
func Shell() string {
	for _, name := range []string{"bash", "zsh", "sh"} {
		if path, err := exec.LookPath(name); err == nil {
			return filepath.ToSlash(path)
		}
	}

	return "/bin/sh"
}

// Render renders the review helper for the report at output, using shell as fzf's SHELL.
func Render(output, shell string) (string, error) {
	tmpl, err := template.New("review").Parse(Review)
	if err != nil {
		return "", fmt.Errorf("parsing review script: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"Output": filepath.ToSlash(output),
		"Shell":  shell,
		"Marker": suggest.Marker,
	}); err != nil {
		return "", fmt.Errorf("rendering review script: %w", err)
	}

	return buf.String(), nil
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := New("test").command()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestExecute_WritesReport(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := filepath.Join(home, "work")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.bak"), []byte("old"), 0o644))

	old := time.Now().Add(-30 * 24 * time.Hour)
	for _, p := range []string{filepath.Join(root, "notes.bak"), filepath.Join(root, "empty"), root} {
		require.NoError(t, os.Chtimes(p, old, old))
	}

	report := filepath.Join(t.TempDir(), "report.sh")

	out, err := execute(t, "--classify=false", "--output", report, root)
	require.NoError(t, err)
	assert.Equal(t, "2 suggestions written to "+report+"\n", out)

	data, err := os.ReadFile(report)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# backup file")
	assert.Contains(t, content, "# empty directory")
	assert.Contains(t, content, "# (unclassified): 1 files, 3b")
	assert.Contains(t, content, filepath.Join("~", "work", "notes.bak"))
}

func TestExecute_ReportStaysCommented(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	name := filepath.Join(root, "x\ntouch PWNED\n.bak")
	require.NoError(t, os.WriteFile(name, []byte("old"), 0o644))

	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(name, old, old))
	require.NoError(t, os.Chtimes(root, old, old))

	report := filepath.Join(t.TempDir(), "report.sh")

	_, err := execute(t, "--classify=false", "--output", report, root)
	require.NoError(t, err)

	data, err := os.ReadFile(report)
	require.NoError(t, err)

	for i, line := range strings.Split(string(data), "\n") {
		if line != "" {
			assert.True(t, strings.HasPrefix(line, "#"), "line %d %q is not commented out", i, line)
		}
	}
}

func TestExecute_NoSuggestions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main"), 0o644))

	report := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "--classify=false", "--format", "json", "-o", report, root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "No suggestions."), out)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file_count": 1`)
}

func TestExecute_ConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.bak"), nil, 0o644))

	old := time.Now().Add(-3 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "x.bak"), old, old))
	require.NoError(t, os.Chtimes(root, old, old))

	report := filepath.Join(t.TempDir(), "report.sh")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("classify: false\nfreshness_days: 1\noutput: "+report+"\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, root)
	require.NoError(t, err)
	assert.Equal(t, "1 suggestion written to "+report+"\n", out)

	out, err = execute(t, "--config", cfgPath, "--freshness-days", "7", root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "No suggestions."), "flag overrides config: %s", out)
}

func TestExecute_ConfigErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	bad := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("classify: ["), 0o644))

	_, err := execute(t, "--config", bad, t.TempDir())
	require.Error(t, err)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), t.TempDir())
	require.Error(t, err)

	_, err = execute(t, "--format", "xml", t.TempDir())
	require.Error(t, err)

	_, err = execute(t, "--freshness-days", "-1", t.TempDir())
	require.Error(t, err)
}

func TestExecute_Init(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	out, err := execute(t, "--init")
	require.NoError(t, err)
	assert.Contains(t, out, "dirtidy-review()")
	assert.Contains(t, out, filepath.ToSlash(filepath.Join(home, "cleanup-suggestions.sh")))
}

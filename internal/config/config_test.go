package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Classify)
	assert.Equal(t, 7, cfg.FreshnessDays)
	assert.Equal(t, 365, cfg.OldBinaryDays)
	assert.Equal(t, 7*24*time.Hour, cfg.Freshness())
	assert.Equal(t, 365*24*time.Hour, cfg.OldBinaryAge())
	assert.Equal(t, "script", cfg.Format)
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, `
classify: false
freshness_days: 14
excludes:
  - node_modules$
names:
  - pattern: '\.log$'
    reason: log file
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Classify)
	assert.Equal(t, 14, cfg.FreshnessDays)
	assert.Equal(t, 365, cfg.OldBinaryDays, "unset keys keep their defaults")
	assert.Equal(t, []string{"node_modules$"}, cfg.Excludes)

	rules, err := cfg.NameRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].Matcher.Match("build.log"))
	assert.Equal(t, "log file", rules[0].Reason)
}

func TestLoad_Invalid(t *testing.T) {
	for name, content := range map[string]string{
		"syntax":      "classify: [",
		"type":        "freshness_days: soon",
		"negative":    "freshness_days: -1",
		"bad pattern": "names:\n  - pattern: '('\n    reason: x\n",
		"no reason":   "names:\n  - pattern: 'x'\n",
	} {
		_, err := Load(writeConfig(t, content))
		assert.Error(t, err, name)
	}
}

func TestExpandHome(t *testing.T) {
	home := filepath.FromSlash("/home/u")

	assert.Equal(t, home, ExpandHome("~", home))
	assert.Equal(t, filepath.Join(home, "out.sh"), ExpandHome("~"+string(filepath.Separator)+"out.sh", home))
	assert.Equal(t, "rel/out.sh", ExpandHome("rel/out.sh", home))
	assert.Equal(t, "~user/x", ExpandHome("~user/x", home))
}

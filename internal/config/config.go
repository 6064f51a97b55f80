// Package config loads the optional dirtidy configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idelchi/dirtidy/internal/suggest"
)

// Config holds all configuration for dirtidy.
type Config struct {
	// Output is the report path; a leading "~/" is expanded.
	Output string `yaml:"output"`
	// Format is the report format: script or json.
	Format string `yaml:"format"`
	// Classify enables content-type classification.
	Classify bool `yaml:"classify"`
	// FreshnessDays protects recently modified entries from suggestions.
	FreshnessDays int `yaml:"freshness_days"`
	// OldBinaryDays is the age past which objects and executables are suggested for removal.
	OldBinaryDays int `yaml:"old_binary_days"`
	// LooseObjects is the loose object count that triggers a gc suggestion.
	LooseObjects int64 `yaml:"loose_objects"`
	// Excludes contains regex patterns to exclude.
	Excludes []string `yaml:"excludes"`
	// Names are extra removal rules matched against base names.
	Names []NameRule `yaml:"names"`
}

// NameRule is a user-supplied removal rule.
type NameRule struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output:        filepath.Join("~", "cleanup-suggestions.sh"),
		Format:        "script",
		Classify:      true,
		FreshnessDays: 7,
		OldBinaryDays: 365,
		LooseObjects:  1,
	}
}

// DefaultPath returns ~/.config/dirtidy/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".config", "dirtidy", "config.yaml"), nil
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges and that name patterns compile.
func (c *Config) Validate() error {
	if c.FreshnessDays < 0 {
		return errors.New("freshness_days cannot be negative")
	}

	if c.OldBinaryDays < 0 {
		return errors.New("old_binary_days cannot be negative")
	}

	if _, err := c.NameRules(); err != nil {
		return err
	}

	return nil
}

// Freshness returns FreshnessDays as a duration.
func (c *Config) Freshness() time.Duration {
	return time.Duration(c.FreshnessDays) * 24 * time.Hour
}

// OldBinaryAge returns OldBinaryDays as a duration.
func (c *Config) OldBinaryAge() time.Duration {
	return time.Duration(c.OldBinaryDays) * 24 * time.Hour
}

// NameRules compiles the user name rules.
func (c *Config) NameRules() ([]suggest.NameRule, error) {
	rules := make([]suggest.NameRule, 0, len(c.Names))

	for _, n := range c.Names {
		if n.Reason == "" {
			return nil, fmt.Errorf("name rule %q has no reason", n.Pattern)
		}

		p, err := suggest.NewPattern(n.Pattern)
		if err != nil {
			return nil, err
		}

		rules = append(rules, suggest.NameRule{Matcher: p, Reason: n.Reason})
	}

	return rules, nil
}

// ExpandHome replaces a leading "~" in path with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}

	if len(path) > 1 && path[0] == '~' && os.IsPathSeparator(path[1]) {
		return filepath.Join(home, path[2:])
	}

	return path
}

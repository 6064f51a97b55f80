package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/dirtidy/internal/config"
	"github.com/idelchi/dirtidy/internal/dirtidy"
	"github.com/idelchi/dirtidy/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// flags holds the raw flag values before they are merged with the config file.
type flags struct {
	configPath    string
	output        string
	format        string
	classify      bool
	freshnessDays int
	oldDays       int
	looseObjects  int64
	excludes      []string
	debug         bool
	integration   bool
}

func (f *flags) bind(fs *pflag.FlagSet) {
	defaults := config.DefaultConfig()

	fs.StringVar(&f.configPath, "config", "", "Config file (default ~/.config/dirtidy/config.yaml)")
	fs.StringVarP(&f.output, "output", "o", defaults.Output, "Report file")
	fs.StringVarP(&f.format, "format", "f", defaults.Format, "Report format: script or json")
	fs.BoolVar(&f.classify, "classify", defaults.Classify, "Classify file contents with file(1)")
	fs.IntVar(&f.freshnessDays, "freshness-days", defaults.FreshnessDays, "No suggestions for entries modified within this many days")
	fs.IntVar(&f.oldDays, "old-days", defaults.OldBinaryDays, "Age in days after which objects and executables are suggested for removal")
	fs.Int64Var(&f.looseObjects, "loose-objects", defaults.LooseObjects, "Loose git objects that trigger a gc suggestion")
	fs.StringSliceVarP(&f.excludes, "exclude", "e", nil, "Regex patterns to exclude")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug output")
	fs.BoolVarP(&f.integration, "init", "i", false, "Output the review helper for shell usage")

	fs.SortFlags = false
}

// merge overlays explicitly set flags on the config file values.
//
//nolint:cyclop // One branch per flag
func (f *flags) merge(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("output") {
		cfg.Output = f.output
	}

	if fs.Changed("format") {
		cfg.Format = f.format
	}

	if fs.Changed("classify") {
		cfg.Classify = f.classify
	}

	if fs.Changed("freshness-days") {
		cfg.FreshnessDays = f.freshnessDays
	}

	if fs.Changed("old-days") {
		cfg.OldBinaryDays = f.oldDays
	}

	if fs.Changed("loose-objects") {
		cfg.LooseObjects = f.looseObjects
	}

	if fs.Changed("exclude") {
		cfg.Excludes = f.excludes
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("accessing config: %w", err)
		}

		return config.Load(path)
	}

	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}

	return config.Load(path)
}

// options turns the merged configuration into walk options.
func options(cfg *config.Config, path, home string, debug, integration bool) (dirtidy.Options, error) {
	allowedFormats := []string{"script", "json"}

	if !slices.Contains(allowedFormats, cfg.Format) {
		return dirtidy.Options{}, fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, allowedFormats)
	}

	if err := cfg.Validate(); err != nil {
		return dirtidy.Options{}, err
	}

	if cfg.Output == "" {
		return dirtidy.Options{}, errors.New("output cannot be empty")
	}

	names, err := cfg.NameRules()
	if err != nil {
		return dirtidy.Options{}, err
	}

	return dirtidy.Options{
		Path:         path,
		Home:         home,
		Classify:     cfg.Classify,
		Freshness:    cfg.Freshness(),
		OldBinaryAge: cfg.OldBinaryAge(),
		LooseObjects: cfg.LooseObjects,
		Names:        names,
		Excludes:     cfg.Excludes,
		Debug:        debug,
		Output:       config.ExpandHome(cfg.Output, home),
		Format:       cfg.Format,
		Integration:  integration,
	}, nil
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.command().Execute()
}

func (c CLI) command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "dirtidy [flags] [path]",
		Short: "dirtidy suggests commands to reclaim disk space",
		Long: heredoc.Doc(`
			dirtidy walks a directory tree and writes a script of commented-out cleanup
			commands together with an inventory of file types sorted by size.

			Nothing is deleted. Every suggestion line starts with "## " so it can be
			found, reviewed and uncommented by hand. Entries modified within the last
			--freshness-days days never get suggestions.

			Positional Arguments:
			  path   Directory to analyze. Defaults to the current directory.

			The '--init' flag prints a shell helper, 'dirtidy-review', which lists the
			suggestions of the last report through 'fzf'.
		`),
		Version:      c.version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f.configPath)
			if err != nil {
				return err
			}

			f.merge(cmd.Flags(), cfg)

			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}

			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			opts, err := options(cfg, path, home, f.debug, f.integration)
			if err != nil {
				return err
			}

			if opts.Integration {
				rendered, err := integration.Render(opts.Output, integration.Shell())
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), rendered)

				return nil
			}

			return logic(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	f.bind(cmd.Flags())

	return cmd
}

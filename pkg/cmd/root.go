package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/siyuan-infoblox/use-splitter/pkg/cache"
	"github.com/siyuan-infoblox/use-splitter/pkg/config"
	"github.com/siyuan-infoblox/use-splitter/pkg/errors"
	"github.com/siyuan-infoblox/use-splitter/pkg/fixer"
	"github.com/siyuan-infoblox/use-splitter/pkg/runner"
	"github.com/siyuan-infoblox/use-splitter/pkg/version"
)

const (
	UseDescription   = "usplit [flags] PATH"
	ShortDescription = "PHP use splitter - One import per use statement"
	LongDescription  = `usplit is a command-line tool that rewrites PHP import declarations so that
every use statement imports exactly one symbol.

  use Foo\Bar, Foo\Baz;      ->  use Foo\Bar;
                                 use Foo\Baz;

  use Foo\{Bar, Baz as B};   ->  use Foo\Bar;
                                 use Foo\Baz as B;

Trait use inside classes and closure use clauses are left alone.

PATH can be either a single PHP file or a directory. When a directory is specified,
all .php files in the directory and subdirectories are processed recursively,
skipping hidden directories and the excludes from .usplit.toml.

A single file without --in-place, --dry-run or --diff is printed to stdout.`
)

var (
	inPlace     bool
	dryRun      bool
	showDiff    bool
	noCache     bool
	verbose     bool
	showVersion bool
	listRules   bool
	configPath  string
	colorMode   string
	rules       []string
	jobs        int
)

var rootCmd = &cobra.Command{
	Use:          UseDescription,
	Short:        ShortDescription,
	Long:         LongDescription,
	Args:         validateArgs,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&inPlace, "in-place", false, "Modify files in place instead of printing to stdout")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Only report files that would change; exit with status 1 if any")
	rootCmd.PersistentFlags().BoolVar(&showDiff, "diff", false, "Print a unified diff for every changed file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a .usplit.toml file (default: searched upwards from PATH)")
	rootCmd.PersistentFlags().StringSliceVar(&rules, "rules", nil, "Comma-separated list of rules to run (default: rules enabled in config)")
	rootCmd.PersistentFlags().IntVar(&jobs, "jobs", 0, "Number of files processed in parallel (default: config value or one per CPU)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Do not read or write the cache file")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Colorize output: auto, on or off")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.PersistentFlags().BoolVar(&listRules, "list-rules", false, "List available rules and exit")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	// If version or rule listing is requested, we don't need file arguments
	if showVersion || listRules {
		return nil
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func run(cmd *cobra.Command, args []string) error {
	setupLogging(verbose)
	if err := setupColor(colorMode); err != nil {
		return err
	}

	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		return nil
	}
	if listRules {
		for _, f := range fixer.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s\n", color.New(color.Bold).Sprint(f.Name()), f.Description())
		}
		return nil
	}

	path := args[0]

	cfg, err := loadConfig(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadConfig, err)
	}
	if cfg.Path != "" {
		log.Debug().Str("path", cfg.Path).Msg("loaded config")
	}

	fixers, err := fixer.Enabled(ruleSelection(cfg, cmd.Flags().Changed("rules")))
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToSelectRules, err)
	}

	if !cmd.Flags().Changed("jobs") {
		jobs = cfg.Runner.Jobs
	}

	// The cache only pays off when files are written or checked; stdout and
	// diff runs always show the full result.
	var c *cache.Cache
	if cfg.Runner.Cache && !noCache && (inPlace || dryRun) && !showDiff {
		c, err = cache.Load(cfg.CachePath(), fixer.Signature(fixers))
		if err != nil {
			log.Warn().Err(err).Msg(errors.ErrMsgFailedToLoadCache)
			c = cache.New(cfg.CachePath(), fixer.Signature(fixers))
		}
	}

	r := runner.New(runner.Config{
		Fixers:  fixers,
		InPlace: inPlace,
		DryRun:  dryRun,
		Diff:    showDiff,
		Jobs:    jobs,
		Exclude: cfg.Finder.Exclude,
		Cache:   c,
		Out:     cmd.OutOrStdout(),
	})
	_, runErr := r.ProcessPath(cmd.Context(), path)

	if c != nil {
		if err := c.Save(); err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg(errors.ErrMsgFailedToSaveCache)
		}
	}
	return runErr
}

func loadConfig(path string) (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.Discover(path)
}

// ruleSelection merges the config with --rules: when the flag is given only
// the listed rules run.
func ruleSelection(cfg config.Config, flagSet bool) map[string]bool {
	if !flagSet {
		return cfg.Rules
	}
	selected := make(map[string]bool)
	for _, f := range fixer.All() {
		selected[f.Name()] = false
	}
	for _, name := range rules {
		selected[strings.TrimSpace(name)] = true
	}
	return selected
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func setupColor(mode string) error {
	switch mode {
	case "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	case "on", "always":
		color.NoColor = false
	case "off", "never":
		color.NoColor = true
	default:
		return fmt.Errorf(errors.ErrMsgInvalidColorMode, mode)
	}
	return nil
}

// Execute runs the root command. moduleVersion comes from the build info and
// is used when no version was set through ldflags.
func Execute(moduleVersion string) error {
	version.SetFromBuildInfo(moduleVersion)
	return rootCmd.ExecuteContext(context.Background())
}

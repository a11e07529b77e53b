package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/configloader"
	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/parser/treesitter"
	"github.com/yaklabco/gotslint/pkg/reporter"
	"github.com/yaklabco/gotslint/pkg/runner"
)

type lintFlags struct {
	format            string
	rulesDirs         []string
	exclude           []string
	enable            []string
	disable           []string
	fixRules          []string
	showRule          bool
	noContext         bool
	compact           bool
	perFile           bool
	summaryFilesFirst bool
	summarySort       string
	watch             bool
	includeVendored   bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint TypeScript and JavaScript files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, info, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint TypeScript and JavaScript files.

By default, lints every .ts, .tsx, .js and .jsx file below the current
directory, skipping node_modules and bundled code. Specify paths to lint
specific files or directories.

The nearest tslint.json, tslint.yaml, tslint.yml or .gotslint.toml above
the working directory configures the run. Without one, the
gotslint:recommended preset applies.

Exit codes:
  0   no error-severity failures
  1   error-severity failures found
  2   fixable failures remain after the last fix pass
  64  invalid usage or configuration
  65  files with syntax errors
  70  a rule failed
  74  files could not be read or written

Examples:
  gotslint lint                        # Lint current directory
  gotslint lint src/                   # Lint src directory
  gotslint lint src/index.ts           # Lint single file
  gotslint lint --fix                  # Lint and auto-fix failures
  gotslint lint --fix --dry-run        # Show fixes as a diff without applying
  gotslint lint --format json          # Output tslint-compatible JSON
  gotslint lint --rules-dir ./rules    # Load custom Starlark rules
  gotslint lint --watch                # Re-lint files as they change`

func runLint(cmd *cobra.Command, args []string, info BuildInfo, cfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return usageError(err)
	}
	summarySort, err := analysis.ParseSortField(flags.summarySort)
	if err != nil {
		return usageError(err)
	}

	// Only values the command line set are carried into the overlay.
	if cmd.Flags().Changed("format") {
		cfg.Format = format
	}
	cfg.RulesDirectory = flags.rulesDirs
	cfg.LinterOptions.Exclude = flags.exclude
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return usageError(fmt.Errorf("failed to load configuration: %w", err))
	}
	finalCfg := loadResult.Config
	format = finalCfg.Format
	if finalCfg.DryRun && !finalCfg.Fix {
		return usageError(errors.New("--dry-run requires --fix"))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	logger.Debug("configuration loaded",
		logging.FieldConfig, loadResult.LoadedFrom,
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	ruleSet, err := lint.NewLoader(lint.DefaultRegistry).LoadSet(finalCfg)
	if err != nil {
		return usageError(err)
	}

	pipeline := lint.NewPipeline(lint.NewLinter(treesitter.New(), ruleSet))
	pipeline.MaxFixPasses = finalCfg.MaxFixPasses
	pipeline.Diff = format == reporter.FormatDiff
	if finalCfg.Cache && !finalCfg.Fix {
		cache, err := openCache(finalCfg, ruleSet, info.Version)
		if err != nil {
			return err
		}
		pipeline.Cache = cache
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:            cmd.OutOrStdout(),
		ErrorWriter:       cmd.ErrOrStderr(),
		Format:            format,
		Color:             colorMode,
		ShowContext:       !flags.noContext,
		ShowRule:          flags.showRule,
		ShowSummary:       true,
		Compact:           flags.compact,
		PerFile:           flags.perFile,
		SummaryFilesFirst: flags.summaryFilesFirst,
		SummarySort:       summarySort,
		WorkingDir:        workDir,
		Version:           info.Version,
		RuleDescriptions:  ruleDescriptions(ruleSet),
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	lintRunner := runner.New(pipeline)
	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Jobs:            finalCfg.Jobs,
		IncludeVendored: flags.includeVendored,
		Config:          finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	if flags.watch {
		return watch(ctx, lintRunner, rep, runOpts, logger)
	}

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return &ExitError{Code: ExitIO, Err: fmt.Errorf("lint run failed: %w", err)}
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return &ExitError{Code: ExitIO, Err: fmt.Errorf("report results: %w", err)}
	}

	if code := ExitCodeFromResult(result); code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}

// watch reports every run until interrupted. Lint outcomes never end the
// loop; only setup errors and interruption do.
func watch(ctx context.Context, r *runner.Runner, rep reporter.Reporter, opts runner.Options, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for changes; press Ctrl+C to stop")
	err := r.Watch(ctx, runner.WatchOptions{Options: opts}, func(result *runner.Result) {
		if _, err := rep.Report(ctx, result); err != nil {
			logger.Error("report failed", logging.FieldError, err)
		}
	})
	if err != nil {
		return &ExitError{Code: ExitIO, Err: fmt.Errorf("watch: %w", err)}
	}
	return nil
}

func openCache(cfg *config.Config, ruleSet *lint.RuleSet, version string) (*lint.Cache, error) {
	dir := cfg.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, &ExitError{Code: ExitIO, Err: fmt.Errorf("locate cache directory: %w", err)}
		}
		dir = filepath.Join(base, "gotslint")
	}
	cache, err := lint.NewCache(dir, ruleSet, version)
	if err != nil {
		return nil, &ExitError{Code: ExitInternal, Err: fmt.Errorf("open cache: %w", err)}
	}
	return cache, nil
}

// ruleDescriptions maps every configured rule to its description.
func ruleDescriptions(ruleSet *lint.RuleSet) map[string]string {
	out := make(map[string]string)
	for _, rules := range [][]*lint.ConfiguredRule{ruleSet.TypeScript, ruleSet.JavaScript} {
		for _, cr := range rules {
			out[cr.Name] = cr.Rule.Metadata().Description
		}
	}
	return out
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix failures")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "with --fix, show fixes without writing files")
	cmd.Flags().StringVarP(&flags.format, "format", "t", "prose",
		"output format: prose, stylish, json, sarif, diff, summary")
	cmd.Flags().StringSliceVarP(&flags.rulesDirs, "rules-dir", "r", nil, "additional directory of custom rules")
	cmd.Flags().StringSliceVarP(&flags.exclude, "exclude", "e", nil, "glob patterns of files to skip")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.MaxFixPasses, "max-fix-passes", 0,
		fmt.Sprintf("limit on fix passes per file (0 = %d)", lint.DefaultMaxFixPasses))
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rules")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&cfg.Cache, "cache", false, "reuse results for unchanged files")
	cmd.Flags().StringVar(&cfg.CacheDir, "cache-dir", "", "cache location (default: user cache directory)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-lint files when they change")
	cmd.Flags().BoolVar(&flags.showRule, "show-rule", false, "append the rule name to prose output")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", true, "print one table per file (stylish format)")
	cmd.Flags().BoolVar(&flags.summaryFilesFirst, "summary-files-first", false,
		"print the file table before the rule table (summary format)")
	cmd.Flags().StringVar(&flags.summarySort, "summary-sort", string(analysis.SortByCount),
		"row order of the summary tables: count, alpha or severity")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false,
		"lint node_modules and bundled files")
}

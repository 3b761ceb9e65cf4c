// Package commands implements CLI command handlers for iconshift.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/iconshift/internal/config"
	"github.com/Sumatoshi-tech/iconshift/internal/engine"
	"github.com/Sumatoshi-tech/iconshift/internal/mapping"
	"github.com/Sumatoshi-tech/iconshift/internal/report"
	"github.com/Sumatoshi-tech/iconshift/internal/runner"
	"github.com/Sumatoshi-tech/iconshift/internal/verify"
)

// ErrVerificationFailed is returned (and turns into exit code 1) when a
// strict run finds residual references after migrating.
var ErrVerificationFailed = errors.New("verification found residual references")

// MigrateCommand holds configuration and dependencies for the migrate
// command.
type MigrateCommand struct {
	configPath  string
	mappingPath string
	legacy      string
	replacement string
	extensions  []string
	excludes    []string
	workers     int
	dryRun      bool
	noVerify    bool
	strict      bool
}

// NewMigrateCommand creates the "migrate" cobra command.
func NewMigrateCommand() *cobra.Command {
	mc := &MigrateCommand{}

	cmd := &cobra.Command{
		Use:   "migrate [path]",
		Short: "Rewrite legacy icon imports across a source tree",
		Long: `Migrate walks the tree, rewrites every named import of the legacy
module to the replacement module (renaming symbols per the mapping
table), updates all usage sites, and verifies the result.

Per-file failures are reported, never fatal: the run always visits
every file and exits 0 unless --strict verification fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mc.run(cmd, args, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&mc.configPath, "config", "c", "", "config file (default ./iconshift.yaml)")
	cmd.Flags().StringVarP(&mc.mappingPath, "mapping", "m", "", "mapping table YAML (default: built-in lucide table)")
	cmd.Flags().StringVar(&mc.legacy, "legacy", "", "legacy module to migrate away from")
	cmd.Flags().StringVar(&mc.replacement, "replacement", "", "replacement module to migrate to")
	cmd.Flags().StringSliceVar(&mc.extensions, "ext", nil, "file extensions to process")
	cmd.Flags().StringSliceVar(&mc.excludes, "exclude", nil, "glob patterns to skip")
	cmd.Flags().IntVarP(&mc.workers, "workers", "w", 0, "worker pool size (0 = one per CPU)")
	cmd.Flags().BoolVar(&mc.dryRun, "dry-run", false, "plan and print diffs without writing")
	cmd.Flags().BoolVar(&mc.noVerify, "no-verify", false, "skip the post-run verification pass")
	cmd.Flags().BoolVar(&mc.strict, "strict", false, "exit non-zero when verification fails")

	return cmd
}

func (mc *MigrateCommand) run(cmd *cobra.Command, args []string, out io.Writer) error {
	cfg, table, loadErr := mc.load(args)
	if loadErr != nil {
		return loadErr
	}

	verbose, quiet, noColor := globalFlags(cmd)

	logger := newLogger(verbose, quiet)
	if quiet {
		out = io.Discard
	}

	eng := engine.New(table, cfg.LegacyModule, cfg.ReplacementModule)
	renderer := report.NewRenderer(out, verbose, noColor)

	result, runErr := runner.New(eng, logger).Run(cmd.Context(), runner.Options{
		Root:       cfg.Root,
		Extensions: cfg.Extensions,
		Excludes:   cfg.Exclude,
		Workers:    cfg.Workers,
		DryRun:     mc.dryRun,
	})
	if runErr != nil {
		return runErr
	}

	renderer.RunSummary(result)

	if mc.noVerify || mc.dryRun {
		return nil
	}

	rep, verifyErr := verify.New(table, cfg.LegacyModule, logger).Run(cmd.Context(), verify.Options{
		Root:       cfg.Root,
		Extensions: cfg.Extensions,
		Excludes:   cfg.Exclude,
		Workers:    cfg.Workers,
	})
	if verifyErr != nil {
		return verifyErr
	}

	renderer.VerifySummary(rep)

	if mc.strict && rep.Failed() {
		return fmt.Errorf("%w: %d files", ErrVerificationFailed, len(rep.Findings))
	}

	return nil
}

// load resolves configuration: file and defaults first, then flag and
// positional-argument overrides, then the mapping table.
func (mc *MigrateCommand) load(args []string) (*config.Config, *mapping.Table, error) {
	cfg, cfgErr := config.Load(mc.configPath)
	if cfgErr != nil {
		return nil, nil, cfgErr
	}

	if len(args) == 1 {
		cfg.Root = args[0]
	}

	if mc.legacy != "" {
		cfg.LegacyModule = mc.legacy
	}

	if mc.replacement != "" {
		cfg.ReplacementModule = mc.replacement
	}

	if len(mc.extensions) > 0 {
		cfg.Extensions = mc.extensions
	}

	if len(mc.excludes) > 0 {
		cfg.Exclude = mc.excludes
	}

	if mc.workers != 0 {
		cfg.Workers = mc.workers
	}

	if mc.mappingPath != "" {
		cfg.MappingFile = mc.mappingPath
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, nil, validateErr
	}

	table, tableErr := loadTable(cfg.MappingFile)
	if tableErr != nil {
		return nil, nil, tableErr
	}

	return cfg, table, nil
}

func loadTable(path string) (*mapping.Table, error) {
	if path == "" {
		return mapping.Default(), nil
	}

	return mapping.Load(path)
}

func globalFlags(cmd *cobra.Command) (verbose, quiet, noColor bool) {
	flags := cmd.Root().PersistentFlags()

	verbose, _ = flags.GetBool("verbose")
	quiet, _ = flags.GetBool("quiet")
	noColor, _ = flags.GetBool("no-color")

	return verbose, quiet, noColor
}

func newLogger(verbose, quiet bool) *slog.Logger {
	if quiet {
		return slog.New(slog.DiscardHandler)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

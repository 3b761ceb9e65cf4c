package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/iconshift/internal/config"
	"github.com/Sumatoshi-tech/iconshift/internal/report"
	"github.com/Sumatoshi-tech/iconshift/internal/verify"
)

// VerifyCommand holds configuration for the standalone verify command.
type VerifyCommand struct {
	configPath  string
	mappingPath string
	legacy      string
	extensions  []string
	excludes    []string
	workers     int
	strict      bool
}

// NewVerifyCommand creates the "verify" cobra command.
func NewVerifyCommand() *cobra.Command {
	vc := &VerifyCommand{}

	cmd := &cobra.Command{
		Use:   "verify [path]",
		Short: "Scan a tree for residual legacy icon references",
		Long: `Verify re-opens every candidate file and reports residual references
to the legacy module and residual old symbol names. Files importing
only excluded symbols from the legacy module pass. Verify never
modifies files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return vc.run(cmd, args, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&vc.configPath, "config", "c", "", "config file (default ./iconshift.yaml)")
	cmd.Flags().StringVarP(&vc.mappingPath, "mapping", "m", "", "mapping table YAML (default: built-in lucide table)")
	cmd.Flags().StringVar(&vc.legacy, "legacy", "", "legacy module to scan for")
	cmd.Flags().StringSliceVar(&vc.extensions, "ext", nil, "file extensions to scan")
	cmd.Flags().StringSliceVar(&vc.excludes, "exclude", nil, "glob patterns to skip")
	cmd.Flags().IntVarP(&vc.workers, "workers", "w", 0, "worker pool size (0 = one per CPU)")
	cmd.Flags().BoolVar(&vc.strict, "strict", true, "exit non-zero when residuals are found")

	return cmd
}

func (vc *VerifyCommand) run(cmd *cobra.Command, args []string, out io.Writer) error {
	cfg, cfgErr := config.Load(vc.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	if len(args) == 1 {
		cfg.Root = args[0]
	}

	if vc.legacy != "" {
		cfg.LegacyModule = vc.legacy
	}

	if len(vc.extensions) > 0 {
		cfg.Extensions = vc.extensions
	}

	if len(vc.excludes) > 0 {
		cfg.Exclude = vc.excludes
	}

	if vc.workers != 0 {
		cfg.Workers = vc.workers
	}

	if vc.mappingPath != "" {
		cfg.MappingFile = vc.mappingPath
	}

	table, tableErr := loadTable(cfg.MappingFile)
	if tableErr != nil {
		return tableErr
	}

	verbose, quiet, noColor := globalFlags(cmd)

	if quiet {
		out = io.Discard
	}

	rep, verifyErr := verify.New(table, cfg.LegacyModule, newLogger(verbose, quiet)).
		Run(cmd.Context(), verify.Options{
			Root:       cfg.Root,
			Extensions: cfg.Extensions,
			Excludes:   cfg.Exclude,
			Workers:    cfg.Workers,
		})
	if verifyErr != nil {
		return verifyErr
	}

	report.NewRenderer(out, verbose, noColor).VerifySummary(rep)

	if vc.strict && rep.Failed() {
		return fmt.Errorf("%w: %d files", ErrVerificationFailed, len(rep.Findings))
	}

	return nil
}

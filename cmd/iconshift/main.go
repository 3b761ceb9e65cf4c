// Package main provides the entry point for the iconshift CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/iconshift/cmd/iconshift/commands"
	"github.com/Sumatoshi-tech/iconshift/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iconshift",
		Short: "iconshift - icon import migration tool",
		Long: `iconshift migrates named icon imports from a legacy module to a
replacement module across a source tree, renaming symbols per the
mapping table and rewriting every usage site.

Commands:
  migrate   Rewrite a tree and verify the result
  verify    Re-scan a tree for residual legacy references`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVerifyCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "iconshift %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

// Package cli provides the Cobra command structure for phpfix.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/phpfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root phpfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "phpfix",
		Short: "Byte-exact auto-fixes for PHP static-analysis findings",
		Long: `phpfix rewrites PHP source files to resolve issues reported by a
static-analysis engine.

It locates the syntax-tree node behind each reported issue, computes a
byte-exact edit, merges all edits for a file with conflict detection, and
rewrites the file atomically. Files with overlapping edits are left
untouched rather than risk a bad patch.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newChecksCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

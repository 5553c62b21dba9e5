package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/phpfix/internal/logging"
	"github.com/yaklabco/phpfix/internal/ui/pretty"
	"github.com/yaklabco/phpfix/pkg/config"
	"github.com/yaklabco/phpfix/pkg/fixer"
	"github.com/yaklabco/phpfix/pkg/fsutil"
)

// ErrFixFailures is returned when some files could not be fixed.
var ErrFixFailures = errors.New("some files could not be fixed")

type applyFlags struct {
	report  string
	root    string
	jobs    int
	dryRun  bool
	backup  bool
	summary bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply fixes for a JSON issue report",
		Long:  applyLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.report, "report", "r", "", "path to the JSON issue report (required)")
	cmd.Flags().StringVar(&flags.root, "root", "", "project root for resolving issue paths")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files fixed in parallel (0 = NumCPU)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print diffs without writing files")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "create sidecar backups before rewriting")
	cmd.Flags().BoolVar(&flags.summary, "summary", true, "print the per-file outcome listing")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}

const applyLongDescription = `Apply fixes for the issues in a JSON report.

The report is produced by the analysis engine and lists one entry per issue:
check name, file path, 1-based line, and check-specific arguments.

Examples:
  phpfix apply -r issues.json              # Fix everything fixable
  phpfix apply -r issues.json --dry-run    # Show diffs, write nothing
  phpfix apply -r issues.json --backup     # Keep .phpfix.bak copies
  phpfix apply -r issues.json --root src/  # Resolve paths against src/`

func runApply(cmd *cobra.Command, flags *applyFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flags.root != "" {
		cfg.Root = flags.root
	}
	if flags.jobs > 0 {
		cfg.Jobs = flags.jobs
	}
	if cfg.LogLevel != "" && !debugRequested(cmd) {
		logging.SetLevel(cfg.LogLevel)
	}

	issues, err := fixer.ReadReportFile(flags.report)
	if err != nil {
		return err
	}
	logger.Debug("report loaded",
		logging.FieldReport, flags.report,
		logging.FieldIssues, len(issues))

	f, err := fixer.New(cfg, nil, logger)
	if err != nil {
		return err
	}

	opts := fixer.Options{
		Jobs:   cfg.Jobs,
		DryRun: flags.dryRun,
		Backup: fsutil.BackupConfig{Enabled: flags.backup || cfg.Backup},
	}

	result, err := f.Run(ctx, issues, opts)
	if err != nil {
		return err
	}

	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))

	if flags.dryRun {
		for _, outcome := range result.Files {
			if outcome.Diff != nil {
				fmt.Fprint(cmd.OutOrStdout(), styles.FormatDiff(outcome.Diff))
			}
		}
	}

	if flags.summary {
		for _, outcome := range result.Files {
			fmt.Fprint(cmd.OutOrStdout(), styles.FormatOutcome(outcome))
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.FormatSummaryOneLine(result.Stats))

	if result.HasFailures() {
		return ErrFixFailures
	}
	return nil
}

// loadConfig reads the config file named by --config, or the default
// .phpfix.yaml if none was given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if configPath == "" {
		configPath = config.DefaultFileName
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}
	return cfg, nil
}

func debugRequested(cmd *cobra.Command) bool {
	debug, err := cmd.Flags().GetBool("debug")
	return err == nil && debug
}

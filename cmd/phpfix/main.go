// Package main is the entry point for the phpfix CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/phpfix/internal/cli"
	"github.com/yaklabco/phpfix/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrFixFailures was already reported per file; it only signals
		// the exit code.
		if !errors.Is(err, cli.ErrFixFailures) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitFixFailures
	}

	return cli.ExitSuccess
}

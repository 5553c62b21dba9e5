package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/phpfix/pkg/fixer"
)

func newChecksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "List checks with a registered fix handler",
		Long: `List the check names phpfix knows how to fix.

Issues in the report whose check name is not listed here are skipped.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, check := range fixer.DefaultRegistry.Checks() {
				fmt.Fprintln(cmd.OutOrStdout(), string(check))
			}
		},
	}
}

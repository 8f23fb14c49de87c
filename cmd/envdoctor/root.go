package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
	dryRun  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "envdoctor",
		Short:         "envdoctor audits a machine against its declared tool requirements and fixes the gaps",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Audit and plan without running any package command")

	cmd.AddCommand(newAuditCmd(flags))
	cmd.AddCommand(newPlanCmd(flags))
	cmd.AddCommand(newFixCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

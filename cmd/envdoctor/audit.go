package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/envdoctor/internal/audit"
	"github.com/alexisbeaulieu97/envdoctor/internal/config"
	"github.com/alexisbeaulieu97/envdoctor/internal/probe"
	"github.com/alexisbeaulieu97/envdoctor/internal/tui"
)

type auditOptions struct {
	ConfigPath string
	Verbose    bool
}

var auditCmdRunner = runAuditCmd

func newAuditCmd(root *rootFlags) *cobra.Command {
	opts := auditOptions{}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check which declared dependencies are installed and at what version",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			return auditCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to the dependency declaration file")

	return cmd
}

// runAuditCmd is strictly read-only: the auditor gets no installer, so a
// missing package manager surfaces as a fatal error with guidance instead of
// an automated fix.
func runAuditCmd(cmd *cobra.Command, opts auditOptions) error {
	cfg, err := config.ParseConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}

	auditor := audit.New(probe.New(), nil, log)
	results, err := auditor.Run(context.Background(), cfg.Dependencies)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderAudit(results))
	return nil
}

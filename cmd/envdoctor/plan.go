package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/envdoctor/internal/audit"
	"github.com/alexisbeaulieu97/envdoctor/internal/config"
	"github.com/alexisbeaulieu97/envdoctor/internal/planner"
	"github.com/alexisbeaulieu97/envdoctor/internal/probe"
	"github.com/alexisbeaulieu97/envdoctor/internal/tui"
)

type planOptions struct {
	ConfigPath string
	Verbose    bool
}

var planCmdRunner = runPlanCmd

func newPlanCmd(root *rootFlags) *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what fix would do without running any package command",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			return planCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to the dependency declaration file")

	return cmd
}

func runPlanCmd(cmd *cobra.Command, opts planOptions) error {
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

	plan := planner.Plan(results)
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlan(plan))
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/envdoctor/internal/audit"
	"github.com/alexisbeaulieu97/envdoctor/internal/channel"
	"github.com/alexisbeaulieu97/envdoctor/internal/config"
	"github.com/alexisbeaulieu97/envdoctor/internal/executor"
	"github.com/alexisbeaulieu97/envdoctor/internal/planner"
	"github.com/alexisbeaulieu97/envdoctor/internal/probe"
	"github.com/alexisbeaulieu97/envdoctor/internal/tui"
)

type fixOptions struct {
	ConfigPath string
	DryRun     bool
	Verbose    bool
	Silent     bool
}

var fixCmdRunner = runFixCmd

func newFixCmd(root *rootFlags) *cobra.Command {
	opts := fixOptions{}

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Audit the machine and install or reinstall whatever is missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRun = root.dryRun
			opts.Verbose = root.verbose
			return fixCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to the dependency declaration file")
	cmd.Flags().BoolVar(&opts.Silent, "silent", false, "Capture installer output instead of using an interactive terminal (no prompts possible)")

	return cmd
}

func runFixCmd(cmd *cobra.Command, opts fixOptions) error {
	cfg, err := config.ParseConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}

	if len(cfg.Dependencies) == 0 {
		log.Info("no dependencies declared, nothing to do")
		return nil
	}

	sysProbe := probe.New()

	// A dry run never opens a command channel: it audits, plans, and renders
	// with the same read-only preflight that audit and plan use, so a missing
	// package manager surfaces as guidance instead of a bootstrap install.
	if opts.DryRun {
		auditor := audit.New(sysProbe, nil, log)
		results, err := auditor.Run(context.Background(), cfg.Dependencies)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlan(planner.Plan(results)))
		return nil
	}

	// Installer commands may need sudo or confirmation prompts, so the
	// interactive terminal channel is the default. Silent capture is used on
	// request or when stdout is not a terminal.
	var runner channel.Runner
	if opts.Silent || !stdoutIsTerminal() {
		runner = channel.NewSilentRunner(log)
	} else {
		session, err := channel.NewSession("", os.Stdout, os.Stdin)
		if err != nil {
			log.Warn(fmt.Sprintf("could not start interactive terminal, falling back to silent mode: %v", err))
			runner = channel.NewSilentRunner(log)
		} else {
			defer session.Close() //nolint:errcheck
			runner = channel.NewTerminalRunner(session)
		}
	}

	auditor := audit.New(sysProbe, preflightInstaller(runner), log)
	results, err := auditor.Run(context.Background(), cfg.Dependencies)
	if err != nil {
		return err
	}

	plan := planner.Plan(results)
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlan(plan))

	report := executor.New(sysProbe, runner, log).Run(context.Background(), plan)
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))

	if _, _, failed := report.Summary(); failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(report.Steps))
	}
	return nil
}

// preflightInstaller decides whether preflight may run its one automated fix
// (the macOS Homebrew bootstrap). Only an interactive terminal qualifies: the
// bootstrap asks for a password and confirmation, which silent capture cannot
// answer. Any other runner gets no installer, making a missing package
// manager fatal with guidance.
func preflightInstaller(runner channel.Runner) channel.Runner {
	if _, ok := runner.(*channel.TerminalRunner); ok {
		return runner
	}
	return nil
}

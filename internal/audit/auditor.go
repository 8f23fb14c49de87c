// Package audit orchestrates the environment preflight and the concurrent
// dependency probes that feed the planner.
package audit

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/alexisbeaulieu97/envdoctor/internal/channel"
	"github.com/alexisbeaulieu97/envdoctor/internal/config"
	"github.com/alexisbeaulieu97/envdoctor/internal/logger"
	"github.com/alexisbeaulieu97/envdoctor/internal/model"
	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

// The official Homebrew bootstrap. Run interactively so the user can watch
// it and approve the sudo prompt.
const homebrewInstallCommand = `/bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`

// Distributions the preflight recognizes. Probing declared dependencies does
// not strictly require a known distribution, so an unknown one only warns.
var knownDistributions = map[string]struct{}{
	"ubuntu": {}, "debian": {}, "linuxmint": {}, "pop": {},
	"fedora": {}, "rhel": {}, "centos": {}, "rocky": {}, "almalinux": {},
	"arch": {}, "manjaro": {}, "endeavouros": {},
	"opensuse-leap": {}, "opensuse-tumbleweed": {},
}

// SystemProbe is the read-only view of the host the auditor needs.
type SystemProbe interface {
	CommandExists(name string) bool
	LinuxDistribution() (string, error)
	CheckDependency(ctx context.Context, dep config.Dependency) model.AuditResult
}

// Auditor runs the one-time preflight and then fans probes out over every
// declared dependency.
type Auditor struct {
	probe     SystemProbe
	installer channel.Runner
	log       *logger.Logger
	goos      string
}

// New creates an Auditor. installer is the interactive runner used for the
// one automated fix preflight may attempt (the macOS Homebrew bootstrap); it
// may be nil, in which case a missing package manager is immediately fatal.
func New(probe SystemProbe, installer channel.Runner, log *logger.Logger) *Auditor {
	return &Auditor{
		probe:     probe,
		installer: installer,
		log:       log.WithComponent("audit"),
		goos:      runtime.GOOS,
	}
}

// Run performs the preflight and, if it passes, probes every dependency
// concurrently. Results come back in declaration order. An empty dependency
// list is a valid "nothing to audit" outcome, not an error; a failed
// preflight aborts before any probe runs.
func (a *Auditor) Run(ctx context.Context, deps []config.Dependency) ([]model.AuditResult, error) {
	if err := a.preflight(ctx); err != nil {
		return nil, err
	}

	if len(deps) == 0 {
		a.log.Info("no dependencies declared, nothing to audit")
		return []model.AuditResult{}, nil
	}

	a.log.WithFields(map[string]any{"count": len(deps)}).Info("probing declared dependencies")

	results := make([]model.AuditResult, len(deps))
	var wg sync.WaitGroup
	for i, dep := range deps {
		wg.Add(1)
		go func(i int, dep config.Dependency) {
			defer wg.Done()
			results[i] = a.probe.CheckDependency(ctx, dep)
		}(i, dep)
	}
	wg.Wait()

	return results, nil
}

func (a *Auditor) preflight(ctx context.Context) error {
	switch a.goos {
	case "darwin":
		return a.preflightDarwin(ctx)
	case "windows":
		return a.preflightWindows()
	case "linux":
		a.preflightLinux()
		return nil
	default:
		return doctorerrors.NewPreflightError(a.goos, "unsupported platform", "", nil)
	}
}

// preflightDarwin attempts exactly one automated Homebrew install when brew
// is missing. A failed or ambiguous install aborts the audit: proceeding on a
// half-installed package manager is worse than stopping.
func (a *Auditor) preflightDarwin(ctx context.Context) error {
	if a.probe.CommandExists("brew") {
		a.log.Debug("homebrew is present")
		return nil
	}

	if a.installer == nil {
		return doctorerrors.NewPreflightError("darwin", "homebrew is not installed",
			"install it from https://brew.sh and rerun", nil)
	}

	a.log.Warn("homebrew is not installed, attempting automated install")
	if err := a.installer.Run(ctx, homebrewInstallCommand); err != nil {
		return doctorerrors.NewPreflightError("darwin", "homebrew installation failed",
			"install it manually from https://brew.sh and rerun", err)
	}

	if !a.probe.CommandExists("brew") {
		return doctorerrors.NewPreflightError("darwin", "homebrew still missing after install",
			"open a new shell or install it manually from https://brew.sh", nil)
	}

	a.log.Info("homebrew installed")
	return nil
}

// preflightWindows has no automated fix: winget ships with App Installer,
// which only the Microsoft Store can install.
func (a *Auditor) preflightWindows() error {
	if a.probe.CommandExists("winget") {
		a.log.Debug("winget is present")
		return nil
	}
	return doctorerrors.NewPreflightError("windows", "winget is not available",
		"install App Installer from the Microsoft Store and rerun", nil)
}

// preflightLinux never mutates and never aborts; it only reports.
func (a *Auditor) preflightLinux() {
	distro, err := a.probe.LinuxDistribution()
	if err != nil {
		a.log.Warn(fmt.Sprintf("could not identify Linux distribution: %v", err))
		return
	}

	if _, ok := knownDistributions[distro]; !ok {
		a.log.Warn(fmt.Sprintf("unrecognized Linux distribution %q, continuing anyway", distro))
		return
	}

	a.log.WithFields(map[string]any{"distribution": distro}).Info("identified Linux distribution")
}

// Package executor walks an action plan and drives each step through the
// command channel. One dependency's failure never stops the rest of the
// plan; every step ends up as a tagged outcome in the run report.
package executor

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/alexisbeaulieu97/envdoctor/internal/catalog"
	"github.com/alexisbeaulieu97/envdoctor/internal/channel"
	"github.com/alexisbeaulieu97/envdoctor/internal/logger"
	"github.com/alexisbeaulieu97/envdoctor/internal/model"
	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

// PlatformUnknown is recorded when no supported Linux package manager is
// found. Every install and uninstall on an unknown platform resolves to a
// step-local "no command available" failure.
const PlatformUnknown = "unknown"

// Prober is the presence check used for Linux package manager detection.
type Prober interface {
	CommandExists(name string) bool
}

// Detection order is fixed: the first manager present wins.
var linuxManagers = []struct {
	key    string
	binary string
}{
	{catalog.PlatformApt, "apt-get"},
	{catalog.PlatformDnf, "dnf"},
	{catalog.PlatformPacman, "pacman"},
}

// Executor runs remediation plans.
type Executor struct {
	probe  Prober
	runner channel.Runner
	log    *logger.Logger
	goos   string
}

// New creates an Executor that runs package commands through runner.
func New(probe Prober, runner channel.Runner, log *logger.Logger) *Executor {
	return &Executor{
		probe:  probe,
		runner: runner,
		log:    log.WithComponent("executor"),
		goos:   runtime.GOOS,
	}
}

// Run executes the plan sequentially and returns the per-step report. The
// platform key is resolved exactly once at the start of the run and threaded
// through every command resolution. The completion log line is always the
// run's last observable action, no matter how many steps failed.
func (e *Executor) Run(ctx context.Context, plan *model.ActionPlan) *model.Report {
	report := &model.Report{Started: time.Now()}

	platform := e.resolvePlatform()

	for _, step := range plan.Steps {
		report.Steps = append(report.Steps, e.runStep(ctx, platform, step))
	}

	report.Finished = time.Now()
	succeeded, skipped, failed := report.Summary()
	e.log.WithFields(map[string]any{
		"succeeded": succeeded,
		"skipped":   skipped,
		"failed":    failed,
	}).Info("remediation run complete")

	return report
}

// resolvePlatform maps the OS to a catalog platform key. On Linux it probes
// the supported managers in priority order; none found means every package
// command in this run is unresolvable.
func (e *Executor) resolvePlatform() string {
	switch e.goos {
	case "windows":
		return catalog.PlatformWindows
	case "darwin":
		return catalog.PlatformDarwin
	case "linux":
		for _, manager := range linuxManagers {
			if e.probe.CommandExists(manager.binary) {
				e.log.WithFields(map[string]any{"manager": manager.key}).Debug("detected package manager")
				return manager.key
			}
		}
		e.log.Warn("no supported package manager found, package commands will be skipped")
		return PlatformUnknown
	default:
		return PlatformUnknown
	}
}

func (e *Executor) runStep(ctx context.Context, platform string, step model.ActionStep) model.StepOutcome {
	dep := step.Dependency
	start := time.Now()
	log := e.log.WithFields(map[string]any{"dependency": dep.Name, "action": step.Action})

	outcome := model.StepOutcome{Dependency: dep.Name, Action: step.Action}

	switch step.Action {
	case model.ActionAlreadyMet:
		log.Info(step.Reason)
		outcome.Status = model.OutcomeSkipped
		outcome.Message = step.Reason

	case model.ActionInstall:
		log.Info(step.Reason)
		if err := e.install(ctx, platform, dep.ID); err != nil {
			log.Error(err, fmt.Sprintf("failed to install %s", dep.Name))
			outcome.Status = model.OutcomeFailed
			outcome.Message = fmt.Sprintf("install failed: %v", err)
			outcome.Error = err
		} else {
			log.Info(fmt.Sprintf("installed %s", dep.Name))
			outcome.Status = model.OutcomeSuccess
			outcome.Message = fmt.Sprintf("installed %s", dep.Name)
		}

	case model.ActionReinstall:
		log.Info(step.Reason)
		// Best effort: a failed uninstall still leaves install worth trying.
		if err := e.uninstall(ctx, platform, dep.ID); err != nil {
			log.Warn(fmt.Sprintf("uninstall of %s failed, attempting install anyway: %v", dep.Name, err))
		}
		if err := e.install(ctx, platform, dep.ID); err != nil {
			log.Error(err, fmt.Sprintf("failed to reinstall %s", dep.Name))
			outcome.Status = model.OutcomeFailed
			outcome.Message = fmt.Sprintf("reinstall failed: %v", err)
			outcome.Error = err
		} else {
			log.Info(fmt.Sprintf("reinstalled %s", dep.Name))
			outcome.Status = model.OutcomeSuccess
			outcome.Message = fmt.Sprintf("reinstalled %s", dep.Name)
		}

	default:
		outcome.Status = model.OutcomeFailed
		outcome.Error = fmt.Errorf("unknown action %q", step.Action)
		outcome.Message = outcome.Error.Error()
	}

	outcome.Duration = time.Since(start)
	return outcome
}

func (e *Executor) install(ctx context.Context, platform, dependencyID string) error {
	command, err := resolveCommand(platform, dependencyID, installTemplate)
	if err != nil {
		return err
	}
	return e.runner.Run(ctx, command)
}

func (e *Executor) uninstall(ctx context.Context, platform, dependencyID string) error {
	command, err := resolveCommand(platform, dependencyID, uninstallTemplate)
	if err != nil {
		return err
	}
	return e.runner.Run(ctx, command)
}

func resolveCommand(platform, dependencyID string, template func(platform, pkg string) (string, bool)) (string, error) {
	pkg, ok := catalog.Lookup(dependencyID, platform)
	if !ok {
		return "", doctorerrors.NewNoCommandError(dependencyID, platform)
	}
	command, ok := template(platform, pkg)
	if !ok {
		return "", doctorerrors.NewNoCommandError(dependencyID, platform)
	}
	return command, nil
}

func installTemplate(platform, pkg string) (string, bool) {
	switch platform {
	case catalog.PlatformWindows:
		return "winget install -e --id " + pkg, true
	case catalog.PlatformDarwin:
		return "brew install " + pkg, true
	case catalog.PlatformApt:
		return "sudo apt-get install -y " + pkg, true
	case catalog.PlatformDnf:
		return "sudo dnf install -y " + pkg, true
	case catalog.PlatformPacman:
		return "sudo pacman -S --noconfirm " + pkg, true
	default:
		return "", false
	}
}

func uninstallTemplate(platform, pkg string) (string, bool) {
	switch platform {
	case catalog.PlatformWindows:
		return "winget uninstall -e --id " + pkg, true
	case catalog.PlatformDarwin:
		return "brew uninstall " + pkg, true
	case catalog.PlatformApt:
		return "sudo apt-get remove -y " + pkg, true
	case catalog.PlatformDnf:
		return "sudo dnf remove -y " + pkg, true
	case catalog.PlatformPacman:
		return "sudo pacman -Rns --noconfirm " + pkg, true
	default:
		return "", false
	}
}

// Package probe runs read-only checks against the host system: tool version
// queries, package manager presence, and Linux distribution identification.
// Nothing in this package mutates the machine; the audit phase depends on
// that guarantee.
package probe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/alexisbeaulieu97/envdoctor/internal/config"
	"github.com/alexisbeaulieu97/envdoctor/internal/model"
	"github.com/alexisbeaulieu97/envdoctor/internal/version"
	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

const osReleasePath = "/etc/os-release"

// Probe inspects the host system. The zero value is not usable; construct
// with New.
type Probe struct {
	lookPath      func(name string) (string, error)
	commandOutput func(ctx context.Context, name string, args ...string) (string, error)
	osReleasePath string
}

// New creates a Probe backed by the real system.
func New() *Probe {
	return &Probe{
		lookPath:      exec.LookPath,
		commandOutput: runCommandOutput,
		osReleasePath: osReleasePath,
	}
}

// CommandExists reports whether an executable with the given name is on PATH.
func (p *Probe) CommandExists(name string) bool {
	_, err := p.lookPath(name)
	return err == nil
}

// LinuxDistribution reads the os-release file and returns the distribution
// identifier (the unquoted value of the ID field, e.g. "ubuntu", "fedora").
func (p *Probe) LinuxDistribution() (string, error) {
	data, err := os.ReadFile(p.osReleasePath)
	if err != nil {
		return "", doctorerrors.NewProbeError("os-release", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		id := strings.TrimPrefix(line, "ID=")
		id = strings.Trim(id, `"'`)
		if id != "" {
			return id, nil
		}
	}

	return "", doctorerrors.NewProbeError("os-release", fmt.Errorf("no ID field in %s", p.osReleasePath))
}

// CheckDependency runs the dependency's version command and interprets the
// result. Any failure to run the command, and any non-zero exit, means "not
// installed"; neither is fatal. When the command succeeds its output is
// coerced into a semantic version, which stays empty if parsing fails.
func (p *Probe) CheckDependency(ctx context.Context, dep config.Dependency) model.AuditResult {
	result := model.AuditResult{Dependency: dep}

	args := strings.Fields(dep.VersionFlag)
	output, err := p.commandOutput(ctx, dep.Command, args...)
	if err != nil {
		return result
	}

	result.IsInstalled = true
	if v, ok := version.Coerce(output); ok {
		result.InstalledVersion = v
	}
	return result
}

func runCommandOutput(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

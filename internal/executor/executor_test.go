package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/envdoctor/internal/config"
	"github.com/alexisbeaulieu97/envdoctor/internal/logger"
	"github.com/alexisbeaulieu97/envdoctor/internal/model"
	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

type fakeProber struct {
	commands map[string]bool
	queried  []string
}

func (f *fakeProber) CommandExists(name string) bool {
	f.queried = append(f.queried, name)
	return f.commands[name]
}

type fakeRunner struct {
	commands []string
	failures map[string]error
}

func (f *fakeRunner) Run(ctx context.Context, command string) error {
	f.commands = append(f.commands, command)
	if err, ok := f.failures[command]; ok {
		return err
	}
	return nil
}

func newExecutor(t *testing.T, probe *fakeProber, runner *fakeRunner, goos string) *Executor {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "debug", Writer: &bytes.Buffer{}})
	require.NoError(t, err)

	e := New(probe, runner, log)
	e.goos = goos
	return e
}

func dep(id, name string) config.Dependency {
	return config.Dependency{ID: id, Name: name, Version: "^1.0.0", Command: id, VersionFlag: "--version"}
}

func TestRun_DarwinInstall(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	e := newExecutor(t, &fakeProber{}, runner, "darwin")

	plan := &model.ActionPlan{Steps: []model.ActionStep{
		{Dependency: dep("node", "Node.js"), Action: model.ActionInstall, Reason: "Node.js is not installed"},
	}}

	report := e.Run(context.Background(), plan)

	require.Len(t, report.Steps, 1)
	assert.Equal(t, model.OutcomeSuccess, report.Steps[0].Status)
	assert.Equal(t, []string{"brew install node"}, runner.commands)
}

func TestRun_WindowsCommandTemplates(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	e := newExecutor(t, &fakeProber{}, runner, "windows")

	plan := &model.ActionPlan{Steps: []model.ActionStep{
		{Dependency: dep("node", "Node.js"), Action: model.ActionReinstall, Reason: "version mismatch"},
	}}

	e.Run(context.Background(), plan)

	assert.Equal(t, []string{
		"winget uninstall -e --id OpenJS.NodeJS.LTS",
		"winget install -e --id OpenJS.NodeJS.LTS",
	}, runner.commands)
}

func TestRun_LinuxDetectsManagerOnceInPriorityOrder(t *testing.T) {
	t.Parallel()

	probe := &fakeProber{commands: map[string]bool{"dnf": true, "pacman": true}}
	runner := &fakeRunner{}
	e := newExecutor(t, probe, runner, "linux")

	plan := &model.ActionPlan{Steps: []model.ActionStep{
		{Dependency: dep("node", "Node.js"), Action: model.ActionInstall},
		{Dependency: dep("git", "Git"), Action: model.ActionInstall},
	}}

	e.Run(context.Background(), plan)

	// apt-get probed first and absent, dnf wins; pacman never probed and the
	// detection does not rerun for the second step.
	assert.Equal(t, []string{"apt-get", "dnf"}, probe.queried)
	assert.Equal(t, []string{
		"sudo dnf install -y nodejs",
		"sudo dnf install -y git",
	}, runner.commands)
}

func TestRun_LinuxNoManagerSkipsEveryStepWithoutAborting(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	e := newExecutor(t, &fakeProber{}, runner, "linux")

	plan := &model.ActionPlan{Steps: []model.ActionStep{
		{Dependency: dep("node", "Node.js"), Action: model.ActionInstall},
		{Dependency: dep("git", "Git"), Action: model.ActionInstall},
	}}

	report := e.Run(context.Background(), plan)

	require.Len(t, report.Steps, 2)
	for _, step := range report.Steps {
		assert.Equal(t, model.OutcomeFailed, step.Status)

		var noCmd *doctorerrors.NoCommandError
		require.True(t, stderrors.As(step.Error, &noCmd))
	}
	assert.Empty(t, runner.commands, "no command runs on an unknown platform")
}

func TestRun_AlreadyMetRunsNoCommand(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	e := newExecutor(t, &fakeProber{}, runner, "darwin")

	plan := &model.ActionPlan{Steps: []model.ActionStep{
		{Dependency: dep("git", "Git"), Action: model.ActionAlreadyMet, Reason: "Git 2.39.2 satisfies >=2.30.0"},
	}}

	report := e.Run(context.Background(), plan)

	require.Len(t, report.Steps, 1)
	assert.Equal(t, model.OutcomeSkipped, report.Steps[0].Status)
	assert.Empty(t, runner.commands)
}

func TestRun_StepFailureNeverAbortsRemainingSteps(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{failures: map[string]error{
		"brew install node": doctorerrors.NewExitError("brew install node", 1),
	}}
	e := newExecutor(t, &fakeProber{}, runner, "darwin")

	plan := &model.ActionPlan{Steps: []model.ActionStep{
		{Dependency: dep("node", "Node.js"), Action: model.ActionInstall},
		{Dependency: dep("git", "Git"), Action: model.ActionInstall},
	}}

	report := e.Run(context.Background(), plan)

	require.Len(t, report.Steps, 2)
	assert.Equal(t, model.OutcomeFailed, report.Steps[0].Status)
	assert.Equal(t, model.OutcomeSuccess, report.Steps[1].Status)

	succeeded, skipped, failed := report.Summary()
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 1, failed)
}

func TestRun_ReinstallContinuesWhenUninstallFails(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{failures: map[string]error{
		"brew uninstall node": doctorerrors.NewExitError("brew uninstall node", 1),
	}}
	e := newExecutor(t, &fakeProber{}, runner, "darwin")

	plan := &model.ActionPlan{Steps: []model.ActionStep{
		{Dependency: dep("node", "Node.js"), Action: model.ActionReinstall},
	}}

	report := e.Run(context.Background(), plan)

	require.Len(t, report.Steps, 1)
	assert.Equal(t, model.OutcomeSuccess, report.Steps[0].Status)
	assert.Equal(t, []string{"brew uninstall node", "brew install node"}, runner.commands)
}

func TestRun_UncataloguedDependencyFailsStepOnly(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	e := newExecutor(t, &fakeProber{}, runner, "darwin")

	plan := &model.ActionPlan{Steps: []model.ActionStep{
		{Dependency: dep("inhouse-tool", "In-house tool"), Action: model.ActionInstall},
		{Dependency: dep("git", "Git"), Action: model.ActionInstall},
	}}

	report := e.Run(context.Background(), plan)

	require.Len(t, report.Steps, 2)
	assert.Equal(t, model.OutcomeFailed, report.Steps[0].Status)
	assert.Equal(t, model.OutcomeSuccess, report.Steps[1].Status)
	assert.Equal(t, []string{"brew install git"}, runner.commands)
}

func TestRun_EmptyPlan(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	e := newExecutor(t, &fakeProber{}, runner, "darwin")

	report := e.Run(context.Background(), &model.ActionPlan{})

	assert.Empty(t, report.Steps)
	assert.False(t, report.Finished.IsZero())
}

func TestResolveCommand_UnknownPlatform(t *testing.T) {
	t.Parallel()

	_, err := resolveCommand(PlatformUnknown, "node", installTemplate)
	require.Error(t, err)

	var noCmd *doctorerrors.NoCommandError
	require.True(t, stderrors.As(err, &noCmd))
	assert.Equal(t, fmt.Sprintf("no package command available for node on %s", PlatformUnknown), err.Error())
}

// Package channel runs shell commands on behalf of the executor. Commands run
// either silently, with output captured into the log and a hard timeout, or
// through a long-lived interactive terminal session where the user can answer
// privilege-elevation and confirmation prompts. Both modes resolve only once
// the command's real exit status is known.
package channel

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/envdoctor/internal/logger"
	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

// SilentTimeout bounds every silent command run. Interactive runs have no
// bound because they may wait on human input.
const SilentTimeout = 10 * time.Minute

// Runner executes one shell command to completion and reports its exit
// status as an error: nil for exit 0, a CommandError otherwise.
type Runner interface {
	Run(ctx context.Context, command string) error
}

// SilentRunner spawns commands directly with output captured line-by-line
// into the log. No user interaction is possible, so it must only be used for
// commands that cannot require elevation or input.
type SilentRunner struct {
	log     *logger.Logger
	timeout time.Duration
}

// NewSilentRunner creates a SilentRunner writing captured output to log.
func NewSilentRunner(log *logger.Logger) *SilentRunner {
	return &SilentRunner{log: log, timeout: SilentTimeout}
}

var _ Runner = (*SilentRunner)(nil)

// Run executes the command through the platform shell. The process is
// forcibly terminated when the timeout elapses.
func (r *SilentRunner) Run(ctx context.Context, command string) error {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := shellCommand(runCtx, command)
	cmd.Env = os.Environ()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return doctorerrors.NewSpawnError(command, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return doctorerrors.NewSpawnError(command, err)
	}

	if err := cmd.Start(); err != nil {
		return doctorerrors.NewSpawnError(command, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go r.captureLines(&wg, stdout, "stdout")
	go r.captureLines(&wg, stderr, "stderr")
	wg.Wait()

	err = cmd.Wait()
	if err == nil {
		return nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return doctorerrors.NewTimeoutError(command)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return doctorerrors.NewExitError(command, exitErr.ExitCode())
	}
	return doctorerrors.NewSpawnError(command, err)
}

func (r *SilentRunner) captureLines(wg *sync.WaitGroup, pipe io.Reader, stream string) {
	defer wg.Done()

	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	log := r.log.WithFields(map[string]any{"stream": stream})
	for scanner.Scan() {
		log.Debug(scanner.Text())
	}
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}

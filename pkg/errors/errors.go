package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ProbeError represents a failure while inspecting the host system. Probes
// are read-only, so a ProbeError never implies a partial mutation.
type ProbeError struct {
	Probe   string
	Message string
	Err     error
}

// NewProbeError constructs a ProbeError for the named probe.
func NewProbeError(probe string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ProbeError{Probe: probe, Message: message, Err: err}
}

func (e *ProbeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Probe != "" {
		return fmt.Sprintf("probe error [%s]: %s", e.Probe, e.Message)
	}
	return fmt.Sprintf("probe error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ProbeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CommandError represents a command run that did not succeed. Exactly one
// failure shape applies: a non-zero exit code, a timeout, an interruption
// (the caller stopped waiting before an exit status arrived), or a spawn
// failure (the process never started).
type CommandError struct {
	Command     string
	ExitCode    int
	Timeout     bool
	Interrupted bool
	Err         error
}

// NewExitError constructs a CommandError for a non-zero exit code.
func NewExitError(command string, code int) error {
	return &CommandError{Command: command, ExitCode: code}
}

// NewTimeoutError constructs a CommandError for a command that exceeded its
// execution window and was forcibly terminated.
func NewTimeoutError(command string) error {
	return &CommandError{Command: command, Timeout: true}
}

// NewSpawnError constructs a CommandError for a process that failed to start.
func NewSpawnError(command string, err error) error {
	return &CommandError{Command: command, ExitCode: -1, Err: err}
}

// NewInterruptedError constructs a CommandError for a command abandoned
// before its exit status was known, typically context cancellation. The
// command itself may still be running.
func NewInterruptedError(command string, err error) error {
	return &CommandError{Command: command, ExitCode: -1, Interrupted: true, Err: err}
}

func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}
	if e.Timeout {
		return fmt.Sprintf("command timed out: %s", e.Command)
	}
	if e.Interrupted {
		return fmt.Sprintf("command interrupted: %s: %v", e.Command, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("command failed to start: %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command exited with code %d: %s", e.ExitCode, e.Command)
}

// Unwrap exposes the underlying error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PreflightError marks a fatal environment problem detected before any
// mutating work began. Guidance carries user-facing remediation advice.
type PreflightError struct {
	Platform string
	Message  string
	Guidance string
	Err      error
}

// NewPreflightError constructs a PreflightError for the given platform.
func NewPreflightError(platform, message, guidance string, err error) error {
	return &PreflightError{Platform: platform, Message: message, Guidance: guidance, Err: err}
}

func (e *PreflightError) Error() string {
	if e == nil {
		return ""
	}
	if e.Guidance != "" {
		return fmt.Sprintf("preflight failed on %s: %s (%s)", e.Platform, e.Message, e.Guidance)
	}
	return fmt.Sprintf("preflight failed on %s: %s", e.Platform, e.Message)
}

// Unwrap exposes the underlying error.
func (e *PreflightError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NoCommandError indicates that no install or uninstall command could be
// resolved for a dependency on the current platform. It is step-local: the
// executor records it and moves on to the next step.
type NoCommandError struct {
	DependencyID string
	Platform     string
}

// NewNoCommandError constructs a NoCommandError.
func NewNoCommandError(dependencyID, platform string) error {
	return &NoCommandError{DependencyID: dependencyID, Platform: platform}
}

func (e *NoCommandError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("no package command available for %s on %s", e.DependencyID, e.Platform)
}

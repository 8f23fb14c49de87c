package model

import (
	"time"
)

const (
	// OutcomeSuccess marks a step whose commands all succeeded.
	OutcomeSuccess = "success"
	// OutcomeSkipped marks a step that required no command.
	OutcomeSkipped = "skipped"
	// OutcomeFailed marks a step whose command failed or could not be resolved.
	OutcomeFailed = "failed"
)

// StepOutcome records what happened when the executor processed one step.
// Error is populated only for failed outcomes.
type StepOutcome struct {
	Dependency string
	Action     string
	Status     string
	Message    string
	Error      error
	Duration   time.Duration
}

// Report aggregates the outcomes of one executor run. It is the inspectable
// record of a run; log lines are derived from it, not the other way around.
type Report struct {
	Steps    []StepOutcome
	Started  time.Time
	Finished time.Time
}

// Summary returns success, skipped, and failed counts.
func (r *Report) Summary() (succeeded, skipped, failed int) {
	if r == nil {
		return 0, 0, 0
	}
	for _, step := range r.Steps {
		switch step.Status {
		case OutcomeSuccess:
			succeeded++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return succeeded, skipped, failed
}

package model

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/envdoctor/internal/config"
)

const (
	// ActionInstall indicates the dependency is absent and must be installed.
	ActionInstall = "install"
	// ActionReinstall indicates the dependency is present but its version is
	// missing, unparseable, or outside the required range.
	ActionReinstall = "reinstall"
	// ActionAlreadyMet indicates the installed version satisfies the
	// requirement and no command needs to run.
	ActionAlreadyMet = "already_met"
)

// ActionStep is the remediation decision for exactly one audit result.
type ActionStep struct {
	Dependency config.Dependency
	Action     string
	Reason     string
}

// ActionPlan is an ordered sequence of steps, same length and order as the
// audit input. Order matters only for log readability; steps are logically
// independent.
type ActionPlan struct {
	Steps []ActionStep
}

// PendingCount returns the number of steps that will run a command.
func (p *ActionPlan) PendingCount() int {
	if p == nil {
		return 0
	}
	count := 0
	for _, step := range p.Steps {
		if step.Action != ActionAlreadyMet {
			count++
		}
	}
	return count
}

// String renders a human readable summary of the plan.
func (p *ActionPlan) String() string {
	if p == nil {
		return ""
	}

	var b strings.Builder
	for i, step := range p.Steps {
		fmt.Fprintf(&b, "%d. [%s] %s: %s\n", i+1, step.Action, step.Dependency.Name, step.Reason)
	}
	return b.String()
}

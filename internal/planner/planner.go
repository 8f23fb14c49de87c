// Package planner derives the remediation plan from audit results.
package planner

import (
	"fmt"

	"github.com/alexisbeaulieu97/envdoctor/internal/model"
	"github.com/alexisbeaulieu97/envdoctor/internal/version"
)

// Plan maps every audit result to exactly one action step, in input order.
// Each decision looks only at its own result; there is no cross-dependency
// logic and no error path.
func Plan(results []model.AuditResult) *model.ActionPlan {
	steps := make([]model.ActionStep, 0, len(results))
	for _, result := range results {
		steps = append(steps, determineAction(result))
	}
	return &model.ActionPlan{Steps: steps}
}

func determineAction(result model.AuditResult) model.ActionStep {
	dep := result.Dependency

	if !result.IsInstalled {
		return model.ActionStep{
			Dependency: dep,
			Action:     model.ActionInstall,
			Reason:     fmt.Sprintf("%s is not installed", dep.Name),
		}
	}

	if result.InstalledVersion != "" {
		ok, err := version.Satisfies(result.InstalledVersion, dep.Version)
		if err == nil && ok {
			return model.ActionStep{
				Dependency: dep,
				Action:     model.ActionAlreadyMet,
				Reason:     fmt.Sprintf("%s %s satisfies %s", dep.Name, result.InstalledVersion, dep.Version),
			}
		}
		return model.ActionStep{
			Dependency: dep,
			Action:     model.ActionReinstall,
			Reason:     fmt.Sprintf("%s %s does not satisfy %s", dep.Name, result.InstalledVersion, dep.Version),
		}
	}

	return model.ActionStep{
		Dependency: dep,
		Action:     model.ActionReinstall,
		Reason:     fmt.Sprintf("%s version is unknown, requires %s", dep.Name, dep.Version),
	}
}

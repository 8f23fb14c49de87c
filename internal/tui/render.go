// Package tui renders audit results, action plans, and run reports for the
// terminal. Styled output is used on interactive terminals; callers fall
// back to the plain renderers when stdout is not a TTY.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/envdoctor/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// RenderAudit returns a styled summary of what the probes found.
func RenderAudit(results []model.AuditResult) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Audit results"))
	b.WriteString("\n")

	if len(results) == 0 {
		b.WriteString(dimStyle.Render("no dependencies declared"))
		b.WriteString("\n")
		return b.String()
	}

	for _, result := range results {
		dep := result.Dependency
		switch {
		case !result.IsInstalled:
			fmt.Fprintf(&b, "  %s %s: not installed (requires %s)\n",
				failStyle.Render("✗"), dep.Name, dep.Version)
		case result.InstalledVersion == "":
			fmt.Fprintf(&b, "  %s %s: installed, version unknown (requires %s)\n",
				warnStyle.Render("?"), dep.Name, dep.Version)
		default:
			fmt.Fprintf(&b, "  %s %s: %s (requires %s)\n",
				okStyle.Render("✓"), dep.Name, result.InstalledVersion, dep.Version)
		}
	}
	return b.String()
}

// RenderPlan returns a styled listing of the action plan.
func RenderPlan(plan *model.ActionPlan) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Action plan"))
	b.WriteString("\n")

	if plan == nil || len(plan.Steps) == 0 {
		b.WriteString(dimStyle.Render("nothing to do"))
		b.WriteString("\n")
		return b.String()
	}

	for i, step := range plan.Steps {
		label := dimStyle.Render(step.Action)
		switch step.Action {
		case model.ActionInstall:
			label = failStyle.Render("install")
		case model.ActionReinstall:
			label = warnStyle.Render("reinstall")
		case model.ActionAlreadyMet:
			label = okStyle.Render("ok")
		}
		fmt.Fprintf(&b, "  %d. %-24s %s\n", i+1, step.Dependency.Name, label)
		fmt.Fprintf(&b, "     %s\n", dimStyle.Render(step.Reason))
	}

	fmt.Fprintf(&b, "%d of %d dependencies need action\n", plan.PendingCount(), len(plan.Steps))
	return b.String()
}

// RenderReport returns a styled per-step summary of an executor run.
func RenderReport(report *model.Report) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Run report"))
	b.WriteString("\n")

	for _, step := range report.Steps {
		switch step.Status {
		case model.OutcomeSuccess:
			fmt.Fprintf(&b, "  %s %s: %s\n", okStyle.Render("✓"), step.Dependency, step.Message)
		case model.OutcomeSkipped:
			fmt.Fprintf(&b, "  %s %s: %s\n", dimStyle.Render("-"), step.Dependency, step.Message)
		case model.OutcomeFailed:
			fmt.Fprintf(&b, "  %s %s: %s\n", failStyle.Render("✗"), step.Dependency, step.Message)
		}
	}

	succeeded, skipped, failed := report.Summary()
	summary := fmt.Sprintf("%d succeeded, %d skipped, %d failed", succeeded, skipped, failed)
	if failed > 0 {
		b.WriteString(failStyle.Render(summary))
	} else {
		b.WriteString(okStyle.Render(summary))
	}
	b.WriteString("\n")
	return b.String()
}

package model

import (
	"github.com/alexisbeaulieu97/envdoctor/internal/config"
)

// AuditResult captures what a single dependency probe found on the host.
// Dependency is the original declared requirement, kept by identity so the
// planner and executor can trace a result back to its declaration.
// InstalledVersion is empty when the tool is absent or its version output
// could not be parsed.
type AuditResult struct {
	Dependency       config.Dependency
	IsInstalled      bool
	InstalledVersion string
}

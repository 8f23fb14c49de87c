// Package catalog holds the static mapping from logical dependency
// identifiers to per-platform package names. The table is fixed at compile
// time and never mutated.
package catalog

// Platform keys. Desktop platforms map directly from the OS; Linux keys are
// the detected package manager.
const (
	PlatformWindows = "win32"
	PlatformDarwin  = "darwin"
	PlatformApt     = "apt"
	PlatformDnf     = "dnf"
	PlatformPacman  = "pacman"
	PlatformZypper  = "zypper"
)

// An absent platform key means no standard package exists for that platform
// and automatic handling is skipped.
var packages = map[string]map[string]string{
	"node": {
		PlatformWindows: "OpenJS.NodeJS.LTS",
		PlatformDarwin:  "node",
		PlatformApt:     "nodejs",
		PlatformDnf:     "nodejs",
		PlatformPacman:  "nodejs",
		PlatformZypper:  "nodejs-default",
	},
	"git": {
		PlatformWindows: "Git.Git",
		PlatformDarwin:  "git",
		PlatformApt:     "git",
		PlatformDnf:     "git",
		PlatformPacman:  "git",
		PlatformZypper:  "git",
	},
	"python3": {
		PlatformWindows: "Python.Python.3.12",
		PlatformDarwin:  "python@3.12",
		PlatformApt:     "python3",
		PlatformDnf:     "python3",
		PlatformPacman:  "python",
		PlatformZypper:  "python3",
	},
	"go": {
		PlatformWindows: "GoLang.Go",
		PlatformDarwin:  "go",
		PlatformApt:     "golang-go",
		PlatformDnf:     "golang",
		PlatformPacman:  "go",
		PlatformZypper:  "go",
	},
	"docker": {
		PlatformWindows: "Docker.DockerDesktop",
		PlatformDarwin:  "docker",
		PlatformApt:     "docker.io",
		PlatformDnf:     "docker",
		PlatformPacman:  "docker",
		PlatformZypper:  "docker",
	},
	"make": {
		// No winget package delivers GNU make on its own; skipped on Windows.
		PlatformDarwin: "make",
		PlatformApt:    "make",
		PlatformDnf:    "make",
		PlatformPacman: "make",
		PlatformZypper: "make",
	},
	"cmake": {
		PlatformWindows: "Kitware.CMake",
		PlatformDarwin:  "cmake",
		PlatformApt:     "cmake",
		PlatformDnf:     "cmake",
		PlatformPacman:  "cmake",
		PlatformZypper:  "cmake",
	},
	"curl": {
		PlatformWindows: "cURL.cURL",
		PlatformDarwin:  "curl",
		PlatformApt:     "curl",
		PlatformDnf:     "curl",
		PlatformPacman:  "curl",
		PlatformZypper:  "curl",
	},
	"jq": {
		PlatformWindows: "jqlang.jq",
		PlatformDarwin:  "jq",
		PlatformApt:     "jq",
		PlatformDnf:     "jq",
		PlatformPacman:  "jq",
		PlatformZypper:  "jq",
	},
	"terraform": {
		PlatformWindows: "Hashicorp.Terraform",
		PlatformDarwin:  "terraform",
		// Distro repos do not carry terraform; skipped on Linux.
	},
	"kubectl": {
		PlatformWindows: "Kubernetes.kubectl",
		PlatformDarwin:  "kubernetes-cli",
		PlatformApt:     "kubectl",
		PlatformDnf:     "kubectl",
		PlatformPacman:  "kubectl",
		PlatformZypper:  "kubernetes-client",
	},
}

// Lookup returns the package name for a dependency on the given platform.
// The second return is false both when the dependency is unknown and when it
// has no package on that platform; callers treat the two identically.
func Lookup(dependencyID, platformKey string) (string, bool) {
	platforms, ok := packages[dependencyID]
	if !ok {
		return "", false
	}
	name, ok := platforms[platformKey]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

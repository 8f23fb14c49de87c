package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "envdoctor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfig_Valid(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
version: "1.0.0"
name: sample-project
dependencies:
  - id: node
    name: Node.js
    version: "^18.17.0"
    command: node
  - id: git
    name: Git
    version: ">=2.30.0"
    command: git
    version_flag: --version
`)

	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Dependencies, 2)

	node := cfg.Dependencies[0]
	assert.Equal(t, "node", node.ID)
	assert.Equal(t, "^18.17.0", node.Version)
	assert.Equal(t, "--version", node.VersionFlag, "version_flag defaults to --version")

	assert.Equal(t, "git", cfg.Dependencies[1].ID)
}

func TestParseConfig_MissingFileMeansNothingToAudit(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Dependencies)
}

func TestParseConfig_InvalidYAMLReportsLine(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "version: \"1.0.0\"\nname: broken\ndependencies:\n  - id: [\n")

	_, err := ParseConfig(path)
	require.Error(t, err)

	var parseErr *doctorerrors.ParseError
	require.True(t, stderrors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
}

func TestParseConfig_RejectsBadRange(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
version: "1.0.0"
name: sample
dependencies:
  - id: node
    name: Node.js
    version: "not-a-range ++"
    command: node
`)

	_, err := ParseConfig(path)
	require.Error(t, err)

	var valErr *doctorerrors.ValidationError
	require.True(t, stderrors.As(err, &valErr))
}

func TestValidateConfig_DuplicateDependencyID(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Version: "1.0.0",
		Name:    "sample",
		Dependencies: []Dependency{
			{ID: "node", Name: "Node.js", Version: "^18.0.0", Command: "node", VersionFlag: "--version"},
			{ID: "node", Name: "Node again", Version: "^20.0.0", Command: "node", VersionFlag: "--version"},
		},
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate dependency id")
}

func TestValidateConfig_BadID(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Version: "1.0.0",
		Name:    "sample",
		Dependencies: []Dependency{
			{ID: "Node JS", Name: "Node.js", Version: "^18.0.0", Command: "node", VersionFlag: "--version"},
		},
	}

	require.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_EmptyDependenciesAllowed(t *testing.T) {
	t.Parallel()

	cfg := &Config{Version: "1.0.0", Name: "sample"}
	require.NoError(t, ValidateConfig(cfg))
}

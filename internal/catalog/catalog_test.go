package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	name, ok := Lookup("node", PlatformDarwin)
	assert.True(t, ok)
	assert.Equal(t, "node", name)

	name, ok = Lookup("node", PlatformWindows)
	assert.True(t, ok)
	assert.Equal(t, "OpenJS.NodeJS.LTS", name)

	name, ok = Lookup("python3", PlatformPacman)
	assert.True(t, ok)
	assert.Equal(t, "python", name)
}

func TestLookup_UnknownDependencyAndUnmappedPlatformAreIdentical(t *testing.T) {
	t.Parallel()

	_, okUnknown := Lookup("no-such-tool", PlatformApt)
	_, okUnmapped := Lookup("terraform", PlatformApt)

	assert.False(t, okUnknown)
	assert.False(t, okUnmapped)
}

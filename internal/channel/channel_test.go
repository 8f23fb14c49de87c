package channel

import (
	"bytes"
	"context"
	stderrors "errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/envdoctor/internal/logger"
	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)
	return log, &buf
}

func TestSilentRunner_Success(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	log, buf := newTestLogger(t)
	r := NewSilentRunner(log)

	err := r.Run(context.Background(), "echo installing")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "installing")
}

func TestSilentRunner_NonZeroExit(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	log, _ := newTestLogger(t)
	r := NewSilentRunner(log)

	err := r.Run(context.Background(), "exit 3")
	require.Error(t, err)

	var cmdErr *doctorerrors.CommandError
	require.True(t, stderrors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.False(t, cmdErr.Timeout)
}

func TestSilentRunner_TimeoutNeverHangs(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	log, _ := newTestLogger(t)
	r := NewSilentRunner(log)
	r.timeout = 100 * time.Millisecond

	start := time.Now()
	err := r.Run(context.Background(), "sleep 30")
	elapsed := time.Since(start)

	require.Error(t, err)
	var cmdErr *doctorerrors.CommandError
	require.True(t, stderrors.As(err, &cmdErr))
	assert.True(t, cmdErr.Timeout)
	assert.Less(t, elapsed, 10*time.Second)
}

func TestSilentRunner_CapturesStderr(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	log, buf := newTestLogger(t)
	r := NewSilentRunner(log)

	err := r.Run(context.Background(), "echo warning >&2")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "warning")
	assert.Contains(t, buf.String(), "stderr")
}

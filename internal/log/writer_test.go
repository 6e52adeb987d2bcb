package logfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesRunDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs", "abc")

	w, err := Open(dir, nil)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck // deferred close in test, error not actionable

	assert.Equal(t, filepath.Join(dir, FileName), w.Path())
	assert.FileExists(t, w.Path())
}

func TestWrite_FileAndConsole(t *testing.T) {
	var console bytes.Buffer
	w, err := Open(t.TempDir(), &console)
	require.NoError(t, err)

	payload := []byte("level=INFO msg=hello\n")
	n, err := w.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)

	require.NoError(t, w.Close())

	got, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, payload, console.Bytes())
}

func TestLogger_Level(t *testing.T) {
	var console bytes.Buffer
	w, err := Open(t.TempDir(), &console)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck // deferred close in test, error not actionable

	w.Logger(false).Debug("quiet")
	assert.Empty(t, console.String())

	w.Logger(true).Debug("loud", "update", 3)
	assert.Contains(t, console.String(), "msg=loud")
	assert.Contains(t, console.String(), "update=3")
}

func TestWrite_AfterCloseFails(t *testing.T) {
	w, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late\n"))
	assert.Error(t, err)
}

func TestOpen_UnwritableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; permission check is not meaningful")
	}

	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0o500))
	t.Cleanup(func() { os.Chmod(parent, 0o700) }) //nolint:errcheck,gosec // restore for cleanup

	_, err := Open(filepath.Join(parent, "run"), nil)
	assert.Error(t, err)
}

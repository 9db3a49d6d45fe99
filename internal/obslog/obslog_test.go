package obslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "rw.log")

	require.NoError(t, Init("debug", logPath))
	L().Info("hello from test")
	Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestInitQuietDefaultsToCacheFile(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)

	InitQuiet("info", "")
	L().Warn("kept off the terminal")
	Sync()

	data, err := os.ReadFile(filepath.Join(cacheDir, "roomwatch", "rw.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept off the terminal")
}

func TestInitQuietKeepsConfiguredFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "custom.log")

	InitQuiet("info", logPath)
	L().Warn("configured sink")
	Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "configured sink")
}

func TestInitQuietFallsBackToNopWhenFileUnopenable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// The parent of the log path is a regular file, so Init must fail.
	InitQuiet("info", filepath.Join(blocker, "rw.log"))
	L().Warn("silently dropped")
	Sync()
}

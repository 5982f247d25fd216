package providers

import (
	"os"
	"path/filepath"
	"survey/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypeEnum(TypePost), GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("OPTIONS"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer cleanup()

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypePost, "post message")
	logger.Errorf(TypeAuth, "auth message %s", "rejected")

	for _, name := range []string{"app.log", "get.log", "post.log", "auth.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "auth.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "auth message rejected")
}

func TestNewLogProvider_LevelFiltersDebug(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: dir},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Debugf(TypeGet, "hidden")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "get.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	// a regular file in the path cannot become a directory
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   filepath.Join(blocker, "logs"),
		},
	}

	_, _, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "var", "log")
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: dir},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer cleanup()

	logger.Infof(TypeApp, "started")
	_, err = os.Stat(filepath.Join(dir, "app.log"))
	assert.NoError(t, err)
}

func TestNewLogProvider_CleanupClosesFiles(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: t.TempDir()},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)

	lp := logger.(*LogProvider)
	files := append([]*os.File(nil), lp.files...)
	require.Len(t, files, len(logFiles))

	cleanup()

	assert.Empty(t, lp.files)
	for _, f := range files {
		_, err := f.Write([]byte("x"))
		assert.ErrorIs(t, err, os.ErrClosed)
	}
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "verbose", Mode: 0644, Dir: t.TempDir()},
	}

	_, _, err := NewLogProvider(conf)
	assert.Error(t, err)
}

package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsoleLogger(t *testing.T) {
	log, err := New(Settings{Type: TypeConsole, Level: LevelDebug})
	require.NoError(t, err)
	assert.NotNil(t, log)

	// Empty settings fall back to a console logger.
	log, err = New(Settings{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.log")
	log, err := New(Settings{Type: TypeFile, Level: LevelInfo, FilePath: path})
	require.NoError(t, err)
	require.NotNil(t, log)

	log.Info("session ", "abc", " started")
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(Settings{Type: "syslog"})
	assert.Error(t, err)

	_, err = New(Settings{Level: "trace"})
	assert.Error(t, err)

	_, err = New(Settings{Type: TypeFile})
	assert.Error(t, err)
}

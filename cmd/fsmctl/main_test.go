package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/historyfsm"
)

const doorYAML = `initial: closed
states:
  opened:
    transitions:
      close: closed
  closed:
    transitions:
      open: opened
      lock: locked
  locked:
    transitions:
      unlock: closed
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		s, err := loadSettings(nil, map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, Settings{ConfigPath: "machine.yaml", LogLevel: "info", LogFormat: "text"}, s)
	})

	t.Run("environment", func(t *testing.T) {
		s, err := loadSettings(nil, map[string]string{
			"FSMCTL_CONFIG":        "door.yaml",
			"FSMCTL_LOG_LEVEL":     "debug",
			"FSMCTL_LOG_FORMAT":    "json",
			"FSMCTL_STRICT":        "true",
			"FSMCTL_STOP_ON_ERROR": "true",
		})
		require.NoError(t, err)
		assert.Equal(t, Settings{
			ConfigPath:  "door.yaml",
			LogLevel:    "debug",
			LogFormat:   "json",
			Strict:      true,
			StopOnError: true,
		}, s)
	})

	t.Run("flags override environment", func(t *testing.T) {
		s, err := loadSettings([]string{"-config", "flag.yaml", "-strict"}, map[string]string{"FSMCTL_CONFIG": "env.yaml"})
		require.NoError(t, err)
		assert.Equal(t, "flag.yaml", s.ConfigPath)
		assert.True(t, s.Strict)
	})

	t.Run("positional path", func(t *testing.T) {
		s, err := loadSettings([]string{"other.yaml"}, map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "other.yaml", s.ConfigPath)
	})

	t.Run("bad bool", func(t *testing.T) {
		_, err := loadSettings(nil, map[string]string{"FSMCTL_STRICT": "maybe"})
		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(Settings{LogLevel: "warn", LogFormat: "json"}, &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = newLogger(Settings{LogLevel: "loud", LogFormat: "text"}, &buf)
	require.Error(t, err)
	_, err = newLogger(Settings{LogLevel: "info", LogFormat: "xml"}, &buf)
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("executes commands", func(t *testing.T) {
		path := writeConfig(t, doorYAML)
		var stdout, stderr bytes.Buffer
		stdin := strings.NewReader("trigger open\ntrigger close\ntrigger lock\nundo\nredo\nstates unlock\n")

		err := run(context.Background(), []string{"-config", path}, map[string]string{}, stdin, &stdout, &stderr)
		require.NoError(t, err)
		assert.Equal(t, "opened\nclosed\nlocked\nclosed\nlocked\nlocked\n", stdout.String())
		assert.Contains(t, stderr.String(), "machine loaded")
	})

	t.Run("stop on error", func(t *testing.T) {
		path := writeConfig(t, doorYAML)
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-config", path, "-stop-on-error"}, map[string]string{},
			strings.NewReader("trigger lock\ntrigger lock\n"), &stdout, &stderr)
		require.ErrorIs(t, err, historyfsm.ErrInvalidTransition)
	})

	t.Run("strict rejects dangling target", func(t *testing.T) {
		path := writeConfig(t, "initial: a\nstates:\n  a:\n    transitions:\n      go: b\n")
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-config", path, "-strict"}, map[string]string{},
			strings.NewReader(""), &stdout, &stderr)
		require.ErrorIs(t, err, historyfsm.ErrConfiguration)

		err = run(context.Background(), []string{"-config", path}, map[string]string{},
			strings.NewReader("trigger go\n"), &stdout, &stderr)
		require.NoError(t, err)
		assert.Equal(t, "b\n", stdout.String())
	})

	t.Run("missing config", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "none.yaml")}, map[string]string{},
			strings.NewReader(""), &stdout, &stderr)
		require.ErrorIs(t, err, historyfsm.ErrConfiguration)
	})
}

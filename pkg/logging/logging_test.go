package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := map[string]struct {
		opts    Options
		enabled zapcore.Level
		blocked zapcore.Level
	}{
		"default is info": {
			opts:    Options{},
			enabled: zapcore.InfoLevel,
			blocked: zapcore.DebugLevel,
		},
		"development debug": {
			opts:    Options{Level: "debug", Development: true},
			enabled: zapcore.DebugLevel,
			blocked: zapcore.DebugLevel - 1,
		},
		"warn": {
			opts:    Options{Level: "WARN"},
			enabled: zapcore.WarnLevel,
			blocked: zapcore.InfoLevel,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			logger, err := New(tc.opts)
			require.NoError(t, err)
			require.True(t, logger.Core().Enabled(tc.enabled))
			require.False(t, logger.Core().Enabled(tc.blocked))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey.log")
	logger, err := New(Options{File: path})
	require.NoError(t, err)

	logger.Info("hello from the dashboard")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "hello from the dashboard")
}

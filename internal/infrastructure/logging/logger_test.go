package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"ERROR", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(Config{Level: tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNew_WritesJSONInProduction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Named("detection").Info("scan finished", zap.Int("measurements", 3))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"message":"scan finished"`)
	assert.Contains(t, line, `"logger":"detection"`)
	assert.Contains(t, line, `"measurements":3`)
}

func TestNew_WritesConsoleInDevelopment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.log")

	logger, err := New(Config{Level: "debug", Development: true, OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("selector skipped", zap.String("selector", ".size-chart"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "DEBUG")
	assert.Contains(t, line, "selector skipped")
	assert.NotContains(t, line, `"message"`)
}

func TestNewOrNop_FallsBack(t *testing.T) {
	logger := NewOrNop(Config{Level: "loud"})
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.FatalLevel))
}

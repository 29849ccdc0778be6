package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreStandardLogger(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"loud", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetupFile(t *testing.T) {
	restoreStandardLogger(t)
	path := filepath.Join(t.TempDir(), "logs", "train-terminal.log")

	closer, err := SetupFile(path, "debug")
	require.NoError(t, err)

	logrus.WithField("crs", "SEV").Debug("board fetched")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "board fetched")
	assert.Contains(t, string(data), "crs=SEV")
}

func TestNewJSON(t *testing.T) {
	restoreStandardLogger(t)
	var buf bytes.Buffer

	logger := NewJSON(&buf, "info")
	logger.Debug("hidden")
	logger.WithField("path", "/health").Info("request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "/health", entry["path"])
	assert.Equal(t, "info", entry["level"])
}

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FilePath is where the terminal UI writes its log; stdout belongs to the screen
func FilePath() string {
	return filepath.Join("data", "train-terminal.log")
}

// ParseLevel parses a level name, falling back to info
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("Invalid log level, using INFO")
		return logrus.InfoLevel
	}
	return lvl
}

// SetupFile points the standard logger at a file in text format. The
// returned closer should be closed on exit.
func SetupFile(path, level string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	logrus.SetLevel(ParseLevel(level))
	return f, nil
}

// NewJSON returns a logger writing JSON lines to w, as the HTTP API does.
// The standard logger is set up the same way so package-level logging
// from the stores ends up in the same stream.
func NewJSON(w io.Writer, level string) *logrus.Logger {
	lvl := ParseLevel(level)

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(w)
	logger.SetLevel(lvl)

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	return logger
}

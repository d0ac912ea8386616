package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// OpenLogFile opens (or creates) today's log file under dir, e.g.
// ~/.boardctl/logs/boardctl-2024-01-31.log. The caller closes it.
func OpenLogFile(dir, appName string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.log", appName, now.Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// DefaultLogDir returns ~/.<appName>/logs.
func DefaultLogDir(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "."+appName, "logs"), nil
}

// SetupWithFile logs to both w and the daily log file. The returned closer
// must be closed on exit.
func SetupWithFile(w io.Writer, level LogLevel, dir, appName string) (io.Closer, error) {
	f, err := OpenLogFile(dir, appName, time.Now())
	if err != nil {
		return nil, err
	}
	SetupLogger(io.MultiWriter(w, f), level)
	return f, nil
}

// Package report records recovered scan errors and per-run summaries.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrorLogger appends recovered per-file failures to a log file. A zero
// path keeps entries in memory only.
type ErrorLogger struct {
	mu      sync.Mutex
	logFile string
	count   int
	file    *os.File
}

// NewErrorLogger creates a logger appending to logFile.
func NewErrorLogger(logFile string) (*ErrorLogger, error) {
	logger := &ErrorLogger{logFile: logFile}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, fmt.Errorf("could not create log directory: %w", err)
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		logger.file = file
	}

	return logger, nil
}

// Log records a recovered failure for a file.
func (l *ErrorLogger) Log(filePath, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	if l.file != nil {
		line := fmt.Sprintf("%s | %s | %s\n",
			time.Now().Format(time.RFC3339), filepath.Base(filePath), msg)
		l.file.WriteString(line)
	}
}

// Count returns the number of logged failures.
func (l *ErrorLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Summary describes the logged failures in one line.
func (l *ErrorLogger) Summary() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == 0 {
		return "no errors"
	}
	if l.logFile == "" {
		return fmt.Sprintf("%d errors", l.count)
	}
	return fmt.Sprintf("%d errors logged to %s", l.count, l.logFile)
}

// Close closes the underlying log file.
func (l *ErrorLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Package logging provides file-based logging for issue-feed.
// It outputs logs to both a shared log file (logs/feed.log)
// and provider-specific log files (logs/<provider>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/runoshun/issue-feed/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes provider diagnostics to log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	now           func() time.Time
	globalFile    *os.File
	providerFiles map[string]*os.File
	logDir        string
	mu            sync.Mutex
	level         slog.Level
}

// New creates a new Logger that writes into logDir.
// If logDir is empty, logging is disabled (returns a no-op logger).
func New(logDir string, level slog.Level) *Logger {
	return &Logger{
		logDir:        logDir,
		level:         level,
		now:           time.Now,
		providerFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
}

// ensureGlobalFile opens or returns the shared log file.
// Callers must hold l.mu.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	if l.globalFile != nil {
		return l.globalFile, nil
	}
	if err := os.MkdirAll(l.logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := openLogFile(domain.GlobalLogPath(l.logDir))
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

// ensureProviderFile opens or returns the provider log file.
// Callers must hold l.mu.
func (l *Logger) ensureProviderFile(provider string) (*os.File, error) {
	if f, ok := l.providerFiles[provider]; ok {
		return f, nil
	}
	if err := os.MkdirAll(l.logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := openLogFile(domain.ProviderLogPath(l.logDir, provider))
	if err != nil {
		return nil, fmt.Errorf("open provider log file: %w", err)
	}
	l.providerFiles[provider] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for name, f := range l.providerFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.providerFiles, name)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [Github] [fetch] message
func formatLog(t time.Time, level slog.Level, provider, category, msg string) string {
	if provider == "" {
		provider = "global"
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		provider,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to the shared log and, when provider is set,
// to the provider log as well.
func (l *Logger) log(level slog.Level, provider, category, msg string) {
	if l.logDir == "" {
		return // Logging disabled
	}
	if level < l.level {
		return
	}

	entry := formatLog(l.now(), level, provider, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if provider != "" {
		if pf, err := l.ensureProviderFile(provider); err == nil {
			_, _ = io.WriteString(pf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(provider, category, msg string) {
	l.log(slog.LevelInfo, provider, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(provider, category, msg string) {
	l.log(slog.LevelDebug, provider, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(provider, category, msg string) {
	l.log(slog.LevelWarn, provider, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(provider, category, msg string) {
	l.log(slog.LevelError, provider, category, msg)
}

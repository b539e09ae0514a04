package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/issue-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("Github", "lifecycle", "client initialized")

	// Verify global log
	content, err := os.ReadFile(domain.GlobalLogPath(logDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[Github]")
	assert.Contains(t, string(content), "[lifecycle]")
	assert.Contains(t, string(content), "client initialized")

	// Verify provider log
	providerContent, err := os.ReadFile(filepath.Join(logDir, "github.log"))
	require.NoError(t, err)
	assert.Contains(t, string(providerContent), "client initialized")
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("", "serve", "listening")

	content, err := os.ReadFile(domain.GlobalLogPath(logDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")
	assert.Contains(t, string(content), "listening")

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the shared log is created")
}

func TestLogger_LevelFiltering(t *testing.T) {
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelWarn) // Only warn and above
	defer func() { _ = logger.Close() }()

	logger.Debug("Github", "fetch", "debug message")
	logger.Info("Github", "fetch", "info message")
	logger.Warn("Github", "fetch", "warn message")
	logger.Error("Github", "fetch", "error message")

	content, err := os.ReadFile(domain.GlobalLogPath(logDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyLogDir(t *testing.T) {
	logger := New("", slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Should not panic
	logger.Info("Github", "fetch", "test message")
	logger.Debug("Github", "fetch", "debug message")
	logger.Warn("Github", "fetch", "warn message")
	logger.Error("Github", "fetch", "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC) }
	defer func() { _ = logger.Close() }()

	logger.Error("Github", "fetch", `Github: failed to fetch issues: 401 "Bad credentials"`)

	content, err := os.ReadFile(domain.GlobalLogPath(logDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `[2025-12-30 09:32:51] [ERROR] [Github] [fetch] Github: failed to fetch issues: 401 "Bad credentials"`, lines[0])
}

func TestLogger_MultipleProviderFiles(t *testing.T) {
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("Github", "fetch", "message for github")
	logger.Info("Work GHE", "fetch", "message for work")
	logger.Info("Github", "fetch", "another message for github")

	globalContent, err := os.ReadFile(domain.GlobalLogPath(logDir))
	require.NoError(t, err)
	assert.Contains(t, string(globalContent), "message for github")
	assert.Contains(t, string(globalContent), "message for work")
	assert.Contains(t, string(globalContent), "another message for github")

	githubContent, err := os.ReadFile(domain.ProviderLogPath(logDir, "Github"))
	require.NoError(t, err)
	assert.Contains(t, string(githubContent), "another message for github")
	assert.NotContains(t, string(githubContent), "message for work")

	workContent, err := os.ReadFile(filepath.Join(logDir, "work-ghe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(workContent), "message for work")
	assert.NotContains(t, string(workContent), "github")
}

func TestLogger_Close(t *testing.T) {
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo)

	logger.Info("Github", "fetch", "test message")

	assert.NoError(t, logger.Close())
	assert.FileExists(t, domain.GlobalLogPath(logDir))
	assert.FileExists(t, domain.ProviderLogPath(logDir, "Github"))
	assert.Empty(t, logger.providerFiles)
}

func TestLogger_CreateLogsDir(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "issue-feed", domain.LogsDirName)

	logger := New(logDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()
	logger.Info("Github", "fetch", "test message")

	stat, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/runoshun/issue-feed/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockIssueSource is a test double for domain.IssueSource.
// It counts calls so tests can assert on network usage.
type MockIssueSource struct {
	Err    error
	Issues []domain.Issue
	calls  atomic.Int64
}

// NewMockIssueSource creates a MockIssueSource returning issues.
func NewMockIssueSource(issues ...domain.Issue) *MockIssueSource {
	return &MockIssueSource{Issues: issues}
}

// ListAssigned returns the configured issues or error.
func (m *MockIssueSource) ListAssigned(ctx context.Context) ([]domain.Issue, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.Issue, len(m.Issues))
	copy(out, m.Issues)
	return out, nil
}

// Calls returns how many times ListAssigned was called.
func (m *MockIssueSource) Calls() int {
	return int(m.calls.Load())
}

// MockIssueSourceFactory is a test double for domain.IssueSourceFactory.
// Fields are ordered to minimize memory padding.
type MockIssueSourceFactory struct {
	Source    domain.IssueSource
	Err       error
	LastToken string
	LastCfg   domain.ProviderConfig
	Calls     int
}

// NewSource records its arguments and returns the configured source.
func (m *MockIssueSourceFactory) NewSource(cfg domain.ProviderConfig, token string) (domain.IssueSource, error) {
	m.Calls++
	m.LastCfg = cfg
	m.LastToken = token
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Source, nil
}

// LogEntry is a message captured by MockLogger.
type LogEntry struct {
	Level    string
	Provider string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, provider, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Provider: provider, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(provider, category, msg string) { m.add("DEBUG", provider, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(provider, category, msg string) { m.add("INFO", provider, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(provider, category, msg string) { m.add("WARN", provider, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(provider, category, msg string) { m.add("ERROR", provider, category, msg) }

// HasEntry reports whether an entry with the level and category was logged.
func (m *MockLogger) HasEntry(level, category string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Level == level && e.Category == category {
			return true
		}
	}
	return false
}

// FetchObservation is a call captured by MockRecorder.
type FetchObservation struct {
	Err      error
	Provider string
	Items    int
	Elapsed  time.Duration
}

// MockRecorder is a test double for domain.FetchRecorder.
type MockRecorder struct {
	Observations []FetchObservation
	mu           sync.Mutex
}

// ObserveFetch records the observation.
func (m *MockRecorder) ObserveFetch(provider string, items int, err error, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Observations = append(m.Observations, FetchObservation{
		Provider: provider,
		Items:    items,
		Err:      err,
		Elapsed:  elapsed,
	})
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a loader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadWithOptions ignores opts and behaves like Load.
func (m *MockConfigLoader) LoadWithOptions(_ domain.LoadConfigOptions) (*domain.Config, error) {
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitGlobalErr     error
	InitProjectErr    error
	GlobalConfigInfo  domain.ConfigInfo
	ProjectConfigInfo domain.ConfigInfo
	InitGlobalCalled  bool
	InitProjectCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// GetProjectConfigInfo returns the configured project config info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectConfigInfo
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	if m.InitGlobalErr != nil {
		return m.InitGlobalErr
	}
	if m.GlobalConfigInfo.Exists {
		return domain.ErrConfigExists
	}
	return nil
}

// InitProjectConfig records the call.
func (m *MockConfigManager) InitProjectConfig(_ *domain.Config) error {
	m.InitProjectCalled = true
	if m.InitProjectErr != nil {
		return m.InitProjectErr
	}
	if m.ProjectConfigInfo.Exists {
		return domain.ErrConfigExists
	}
	return nil
}

// MockRepoDetector is a test double for domain.RepoDetector.
type MockRepoDetector struct {
	Err  error
	Name string
}

// CurrentRepoName returns the configured name or error.
func (m *MockRepoDetector) CurrentRepoName() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Name, nil
}

// Issue builds a domain.Issue for tests.
func Issue(repo string, number int, title string, labels ...string) domain.Issue {
	return domain.Issue{
		Repository: repo,
		Number:     number,
		Title:      title,
		Labels:     labels,
	}
}

// Messagef formats an expected feed message.
func Messagef(repo string, number int, title string) string {
	return fmt.Sprintf("[%s #%d] %s", repo, number, title)
}

// MockProvider is a test double for domain.Provider.
// Fields are ordered to minimize memory padding.
type MockProvider struct {
	InitErr      error
	ReloadErr    error
	ProviderName string
	Envelope     domain.Envelope
	Lines        []string
	InitCalls    int
	initialized  atomic.Bool
	dataCalls    atomic.Int64
}

// Ensure MockProvider implements domain.Provider.
var _ domain.Provider = (*MockProvider)(nil)

// Initialize marks the provider initialized unless InitErr is set.
func (m *MockProvider) Initialize(_ context.Context) error {
	m.InitCalls++
	if m.InitErr != nil {
		return m.InitErr
	}
	m.initialized.Store(true)
	return nil
}

// IsInitialized reports whether Initialize succeeded.
func (m *MockProvider) IsInitialized() bool {
	return m.initialized.Load()
}

// GetData returns the configured envelope, or the not-initialized item.
func (m *MockProvider) GetData(_ context.Context) domain.Envelope {
	m.dataCalls.Add(1)
	if !m.IsInitialized() {
		return domain.SyntheticEnvelope(domain.MessageNotInitialized, "")
	}
	return m.Envelope
}

// DataCalls returns how many times GetData was called.
func (m *MockProvider) DataCalls() int {
	return int(m.dataCalls.Load())
}

// Reload returns the configured lines or error.
func (m *MockProvider) Reload(_ context.Context) ([]string, error) {
	if !m.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	if m.ReloadErr != nil {
		return nil, m.ReloadErr
	}
	return m.Lines, nil
}

// Name returns the configured provider name.
func (m *MockProvider) Name() string {
	return m.ProviderName
}

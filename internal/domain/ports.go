package domain

import (
	"context"
	"time"
)

// IssueSource lists issues from the upstream tracker.
type IssueSource interface {
	// ListAssigned returns issues assigned to the authenticated identity,
	// in upstream order. It performs exactly one request.
	ListAssigned(ctx context.Context) ([]Issue, error)
}

// IssueSourceFactory builds an authenticated IssueSource.
type IssueSourceFactory interface {
	// NewSource creates a client for cfg using token. It must not contact
	// the upstream service.
	NewSource(cfg ProviderConfig, token string) (IssueSource, error)
}

// IssueSourceFactoryFunc adapts a function to IssueSourceFactory.
type IssueSourceFactoryFunc func(cfg ProviderConfig, token string) (IssueSource, error)

// NewSource calls f.
func (f IssueSourceFactoryFunc) NewSource(cfg ProviderConfig, token string) (IssueSource, error) {
	return f(cfg, token)
}

// Provider is a feed provider with an explicit readiness state.
type Provider interface {
	// Initialize creates the authenticated client. Calling it again
	// replaces the client.
	Initialize(ctx context.Context) error

	// IsInitialized reports whether a client exists.
	IsInitialized() bool

	// GetData runs the pipeline and never fails; not-initialized and
	// fetch failures are reported as a single synthetic item.
	GetData(ctx context.Context) Envelope

	// Reload runs the pipeline and returns plain messages.
	Reload(ctx context.Context) ([]string, error)

	// Name returns the provider name.
	Name() string
}

// FetchRecorder observes pipeline runs.
type FetchRecorder interface {
	ObserveFetch(provider string, items int, err error, elapsed time.Duration)
}

// Logger is the side channel for provider diagnostics.
type Logger interface {
	Debug(provider, category, msg string)
	Info(provider, category, msg string)
	Warn(provider, category, msg string)
	Error(provider, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (global + project).
	Load() (*Config, error)

	// LoadWithOptions returns the merged configuration, skipping ignored sources.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	GetGlobalConfigInfo() ConfigInfo
	GetProjectConfigInfo() ConfigInfo
	InitGlobalConfig(cfg *Config) error
	InitProjectConfig(cfg *Config) error
}

// RepoDetector finds the repository the user is working in.
type RepoDetector interface {
	// CurrentRepoName returns the repository name of the origin remote.
	CurrentRepoName() (string, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

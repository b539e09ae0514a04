package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrNotInitialized   = errors.New("feed not initialized")
	ErrFetchFailed      = errors.New("failed to fetch issues")
	ErrInvalidConfig    = errors.New("invalid provider configuration")
	ErrConfigExists     = errors.New("config file already exists")
	ErrConfigNil        = errors.New("config is nil")
	ErrNotGitRepository = errors.New("not a git repository (or any of the parent directories)")
	ErrNoRemote         = errors.New("repository has no usable remote")
	ErrInvalidFormat    = errors.New("invalid output format")
)

// ConfigError describes a provider configuration value that cannot be used.
type ConfigError struct {
	Field   string
	Message string
}

// NewConfigError creates a new configuration error.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

// Unwrap makes errors.Is(err, ErrInvalidConfig) hold for every ConfigError.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// FetchError reports a failed upstream listing for a provider.
type FetchError struct {
	Err      error
	Provider string
}

// NewFetchError wraps err as a fetch failure of the named provider.
func NewFetchError(provider string, err error) *FetchError {
	return &FetchError{Provider: provider, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Provider, ErrFetchFailed, e.Err)
}

// Unwrap returns both the ErrFetchFailed sentinel and the cause.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

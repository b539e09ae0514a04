package domain

import (
	"net/url"
	"regexp"
	"slices"
)

// Provider configuration defaults.
const (
	DefaultProviderName = "Github"
	DefaultBaseURL      = "https://api.github.com"
	DefaultUserAgent    = "master-console v3"
	DefaultTokenEnv     = "GITHUB_TOKEN"
	DefaultIcon         = "/assets/icon-3.png"
	DefaultExcludeLabel = "blocked"
)

// ProviderConfig is the resolved configuration of an issue provider.
// It is built once with DefaultProviderConfig().With(...) and never mutated.
// Fields are ordered to minimize memory padding.
type ProviderConfig struct {
	ProviderName     string
	Auth             string // Token; when empty the TokenEnv variable is read at initialization
	TokenEnv         string
	BaseURL          string
	UserAgent        string
	Icon             string
	ExcludeWithLabel []string
	FilterRepo       []string // Keep only these repositories; empty keeps all
}

// ProviderOptions holds caller overrides for ProviderConfig.
// Empty strings and nil slices are "not set". A non-nil empty slice is an
// explicit empty value and replaces the default.
type ProviderOptions struct {
	ProviderName     string   `toml:"name,omitempty"`
	Auth             string   `toml:"auth,omitempty"`
	TokenEnv         string   `toml:"token_env,omitempty"`
	BaseURL          string   `toml:"base_url,omitempty"`
	UserAgent        string   `toml:"user_agent,omitempty"`
	Icon             string   `toml:"icon,omitempty"`
	ExcludeWithLabel []string `toml:"exclude_with_label,omitempty"`
	FilterRepo       []string `toml:"filter_repo,omitempty"`
}

// DefaultProviderConfig returns the default provider configuration.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		ProviderName:     DefaultProviderName,
		TokenEnv:         DefaultTokenEnv,
		BaseURL:          DefaultBaseURL,
		UserAgent:        DefaultUserAgent,
		Icon:             DefaultIcon,
		ExcludeWithLabel: []string{DefaultExcludeLabel},
	}
}

// With returns a copy of c with every set field of o applied.
// Caller values always win; c itself is left untouched.
func (c ProviderConfig) With(o ProviderOptions) ProviderConfig {
	res := c
	res.ExcludeWithLabel = slices.Clone(c.ExcludeWithLabel)
	res.FilterRepo = slices.Clone(c.FilterRepo)

	if o.ProviderName != "" {
		res.ProviderName = o.ProviderName
	}
	if o.Auth != "" {
		res.Auth = o.Auth
	}
	if o.TokenEnv != "" {
		res.TokenEnv = o.TokenEnv
	}
	if o.BaseURL != "" {
		res.BaseURL = o.BaseURL
	}
	if o.UserAgent != "" {
		res.UserAgent = o.UserAgent
	}
	if o.Icon != "" {
		res.Icon = o.Icon
	}
	if o.ExcludeWithLabel != nil {
		res.ExcludeWithLabel = slices.Clone(o.ExcludeWithLabel)
	}
	if o.FilterRepo != nil {
		res.FilterRepo = slices.Clone(o.FilterRepo)
	}
	return res
}

// Merge returns o with every set field of override applied on top.
func (o ProviderOptions) Merge(override ProviderOptions) ProviderOptions {
	res := o
	if override.ProviderName != "" {
		res.ProviderName = override.ProviderName
	}
	if override.Auth != "" {
		res.Auth = override.Auth
	}
	if override.TokenEnv != "" {
		res.TokenEnv = override.TokenEnv
	}
	if override.BaseURL != "" {
		res.BaseURL = override.BaseURL
	}
	if override.UserAgent != "" {
		res.UserAgent = override.UserAgent
	}
	if override.Icon != "" {
		res.Icon = override.Icon
	}
	if override.ExcludeWithLabel != nil {
		res.ExcludeWithLabel = slices.Clone(override.ExcludeWithLabel)
	}
	if override.FilterRepo != nil {
		res.FilterRepo = slices.Clone(override.FilterRepo)
	}
	return res
}

// Validate checks that the configuration can be used to build a client.
func (c ProviderConfig) Validate() error {
	if c.ProviderName == "" {
		return NewConfigError("provider name", "must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return NewConfigError("base_url", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigError("base_url", "scheme must be http or https")
	}
	if u.Host == "" {
		return NewConfigError("base_url", "host is required")
	}
	if c.TokenEnv != "" && !IsValidEnvVarName(c.TokenEnv) {
		return NewConfigError("token_env", "invalid environment variable name: "+c.TokenEnv)
	}
	return nil
}

// Redacted returns a copy of c safe for display.
func (c ProviderConfig) Redacted() ProviderConfig {
	res := c.With(ProviderOptions{})
	if res.Auth != "" {
		res.Auth = "********"
	}
	return res
}

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValidEnvVarName returns true if the name is a valid environment variable name.
func IsValidEnvVarName(name string) bool {
	return envNamePattern.MatchString(name)
}

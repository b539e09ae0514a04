package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Application defaults.
const (
	DefaultLogLevel      = "info"
	DefaultWatchInterval = 60 * time.Second
	DefaultServeAddr     = ":8080"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Provider ProviderOptions `toml:"provider"`
	Warnings []string        `toml:"-"`
	Log      LogConfig       `toml:"log"`
	Serve    ServeConfig     `toml:"serve"`
	Watch    WatchConfig     `toml:"watch"`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// WatchConfig holds dashboard settings from [watch] section.
type WatchConfig struct {
	Interval time.Duration `toml:"interval,omitempty"` // Refresh interval of the dashboard
}

// ServeConfig holds HTTP endpoint settings from [serve] section.
type ServeConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// LoadConfigOptions selects which configuration sources are merged.
type LoadConfigOptions struct {
	IgnoreGlobal  bool
	IgnoreProject bool
}

// NewDefaultConfig returns the configuration used when no file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Log:   LogConfig{Level: DefaultLogLevel},
		Watch: WatchConfig{Interval: DefaultWatchInterval},
		Serve: ServeConfig{Addr: DefaultServeAddr},
	}
}

// ProviderConfig resolves the provider configuration of c on top of the defaults.
func (c *Config) ProviderConfig() ProviderConfig {
	return DefaultProviderConfig().With(c.Provider)
}

type templateData struct {
	ProviderName     string
	BaseURL          string
	UserAgent        string
	TokenEnv         string
	Icon             string
	ExcludeWithLabel string
	LogLevel         string
	WatchInterval    string
	ServeAddr        string
}

// RenderConfigTemplate renders a commented configuration file for cfg.
func RenderConfigTemplate(cfg *Config) string {
	pc := cfg.ProviderConfig()
	data := templateData{
		ProviderName:     strconv.Quote(pc.ProviderName),
		BaseURL:          strconv.Quote(pc.BaseURL),
		UserAgent:        strconv.Quote(pc.UserAgent),
		TokenEnv:         strconv.Quote(pc.TokenEnv),
		Icon:             strconv.Quote(pc.Icon),
		ExcludeWithLabel: formatStringList(pc.ExcludeWithLabel),
		LogLevel:         strconv.Quote(cfg.Log.Level),
		WatchInterval:    strconv.Quote(cfg.Watch.Interval.String()),
		ServeAddr:        strconv.Quote(cfg.Serve.Addr),
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}

func formatStringList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, strconv.Quote(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

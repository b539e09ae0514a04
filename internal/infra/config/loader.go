// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/issue-feed/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectDir    string // Directory holding .issue-feed.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/issue-feed)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (project + global).
// Project config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	if l.projectDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.ProjectConfigPath(l.projectDir))
}

// LoadWithOptions returns the merged configuration with options to ignore sources.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	var global, project *domain.Config
	var err error

	if !opts.IgnoreGlobal {
		global, err = l.LoadGlobal()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if !opts.IgnoreProject {
		project, err = l.LoadProject()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// Merge: default <- global <- project (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}
	return base, nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "provider":
			warnings = append(warnings, parseProviderSection(m, &res.Provider)...)
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					} else {
						warnings = append(warnings, invalidValue("log", k, v))
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "watch":
			for k, v := range m {
				switch k {
				case "interval":
					if d, ok := parseDuration(v); ok {
						res.Watch.Interval = d
					} else {
						warnings = append(warnings, invalidValue("watch", k, v))
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [watch]: %s", k))
				}
			}
		case "serve":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Serve.Addr = s
					} else {
						warnings = append(warnings, invalidValue("serve", k, v))
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [serve]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseProviderSection fills opts from the [provider] table and returns warnings.
func parseProviderSection(m map[string]any, opts *domain.ProviderOptions) []string {
	var warnings []string
	for k, v := range m {
		var target *string
		switch k {
		case "name":
			target = &opts.ProviderName
		case "auth":
			target = &opts.Auth
		case "token_env":
			target = &opts.TokenEnv
		case "base_url":
			target = &opts.BaseURL
		case "user_agent":
			target = &opts.UserAgent
		case "icon":
			target = &opts.Icon
		case "exclude_with_label", "filter_repo":
			list, ok := parseStringList(v)
			if !ok {
				warnings = append(warnings, invalidValue("provider", k, v))
				continue
			}
			if k == "exclude_with_label" {
				opts.ExcludeWithLabel = list
			} else {
				opts.FilterRepo = list
			}
			continue
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [provider]: %s", k))
			continue
		}
		s, ok := v.(string)
		if !ok {
			warnings = append(warnings, invalidValue("provider", k, v))
			continue
		}
		*target = s
	}
	return warnings
}

// parseStringList converts a TOML array into a non-nil string slice.
// An empty array yields an empty, non-nil slice.
func parseStringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	res := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		res = append(res, s)
	}
	return res, true
}

// parseDuration accepts a Go duration string ("90s") or a number of seconds.
func parseDuration(v any) (time.Duration, bool) {
	switch val := v.(type) {
	case string:
		d, err := time.ParseDuration(val)
		if err != nil || d <= 0 {
			return 0, false
		}
		return d, true
	case int64:
		if val <= 0 {
			return 0, false
		}
		return time.Duration(val) * time.Second, true
	default:
		return 0, false
	}
}

func invalidValue(section, key string, v any) string {
	return fmt.Sprintf("invalid value in [%s]: %s = %v", section, key, v)
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Provider: base.Provider.Merge(override.Provider),
		Log:      base.Log,
		Watch:    base.Watch,
		Serve:    base.Serve,
		Warnings: append([]string{}, base.Warnings...),
	}

	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Watch.Interval > 0 {
		result.Watch.Interval = override.Watch.Interval
	}
	if override.Serve.Addr != "" {
		result.Serve.Addr = override.Serve.Addr
	}
	return result
}

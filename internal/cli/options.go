package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/issue-feed/internal/app"
	"github.com/runoshun/issue-feed/internal/domain"
	"github.com/runoshun/issue-feed/internal/usecase"
	"github.com/spf13/cobra"
)

// Global flag names.
const (
	flagExcludeLabel = "exclude-label"
	flagRepo         = "repo"
	flagHere         = "here"
	flagBaseURL      = "base-url"
	flagUserAgent    = "user-agent"
)

// globalOptions holds the provider overrides shared by every feed command.
type globalOptions struct {
	baseURL       string
	userAgent     string
	excludeLabels []string
	repos         []string
	here          bool
}

// bind registers the global flags on root.
func (o *globalOptions) bind(root *cobra.Command) {
	f := root.PersistentFlags()
	f.StringArrayVar(&o.excludeLabels, flagExcludeLabel, nil,
		"Drop issues carrying this label (repeatable; --exclude-label= clears the list)")
	f.StringArrayVar(&o.repos, flagRepo, nil, "Only show issues of this repository (repeatable)")
	f.BoolVar(&o.here, flagHere, false, "Only show issues of the current git repository")
	f.StringVar(&o.baseURL, flagBaseURL, "", "GitHub API base URL (e.g. https://ghe.example.com/api/v3)")
	f.StringVar(&o.userAgent, flagUserAgent, "", "User-Agent sent to the API")
}

// overrides converts the flags set on cmd into provider options.
// Flags left alone stay unset so the config file values apply.
func (o *globalOptions) overrides(cmd *cobra.Command, c *app.Container) (domain.ProviderOptions, error) {
	res := domain.ProviderOptions{
		BaseURL:   o.baseURL,
		UserAgent: o.userAgent,
	}

	flags := cmd.Flags()
	if flags.Changed(flagExcludeLabel) {
		res.ExcludeWithLabel = nonEmpty(o.excludeLabels)
	}
	if flags.Changed(flagRepo) {
		res.FilterRepo = nonEmpty(o.repos)
	}
	if o.here {
		if c.Repo == nil {
			return domain.ProviderOptions{}, domain.ErrNotGitRepository
		}
		name, err := c.Repo.CurrentRepoName()
		if err != nil {
			return domain.ProviderOptions{}, fmt.Errorf("--%s: %w", flagHere, err)
		}
		res.FilterRepo = append(nonEmpty(res.FilterRepo), name)
	}
	return res, nil
}

// nonEmpty returns values without blank entries. The result is never nil.
func nonEmpty(values []string) []string {
	res := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			res = append(res, v)
		}
	}
	return res
}

// newProvider resolves the configuration and builds an uninitialized provider.
func newProvider(cmd *cobra.Command, c *app.Container, gopts *globalOptions) (*usecase.IssueProvider, *domain.Config, error) {
	if c == nil {
		return nil, nil, errNoContainer
	}
	overrides, err := gopts.overrides(cmd, c)
	if err != nil {
		return nil, nil, err
	}
	cfg, providerCfg, err := c.ProviderConfig(overrides)
	if err != nil {
		return nil, nil, err
	}
	return c.NewProvider(providerCfg), cfg, nil
}

// newInitializedProvider is newProvider followed by Initialize.
// When strict is false an initialization failure is logged and the
// provider is returned anyway; it then reports the not-initialized item.
func newInitializedProvider(cmd *cobra.Command, c *app.Container, gopts *globalOptions, strict bool) (*usecase.IssueProvider, *domain.Config, error) {
	p, cfg, err := newProvider(cmd, c, gopts)
	if err != nil {
		return nil, nil, err
	}
	if err := p.Initialize(cmd.Context()); err != nil {
		if strict {
			return nil, nil, err
		}
		if c.Logger != nil {
			c.Logger.Warn("provider not initialized", "provider", p.Name(), "error", err)
		}
	}
	return p, cfg, nil
}

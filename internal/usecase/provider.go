package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/runoshun/issue-feed/internal/domain"
)

// Ensure IssueProvider implements domain.Provider.
var _ domain.Provider = (*IssueProvider)(nil)

// IssueProvider owns the authenticated client and runs the FetchFeed
// pipeline for every GetData/Reload call. The client handle is the only
// shared state; it is swapped atomically and never mutated.
type IssueProvider struct {
	factory  domain.IssueSourceFactory
	logger   domain.Logger
	recorder domain.FetchRecorder
	clock    domain.Clock
	getenv   func(string) string
	source   atomic.Pointer[sourceHandle]
	cfg      domain.ProviderConfig
}

type sourceHandle struct {
	source domain.IssueSource
}

// NewIssueProvider creates a provider for cfg. The configuration is copied
// and is not affected by later changes to the caller's value.
func NewIssueProvider(cfg domain.ProviderConfig, factory domain.IssueSourceFactory) *IssueProvider {
	return &IssueProvider{
		cfg:     cfg.With(domain.ProviderOptions{}),
		factory: factory,
		clock:   domain.RealClock{},
		getenv:  os.Getenv,
	}
}

// WithLogger sets the side-channel logger.
func (p *IssueProvider) WithLogger(logger domain.Logger) *IssueProvider {
	p.logger = logger
	return p
}

// WithRecorder sets the fetch recorder.
func (p *IssueProvider) WithRecorder(recorder domain.FetchRecorder) *IssueProvider {
	p.recorder = recorder
	return p
}

// WithClock sets the clock used to time fetches.
func (p *IssueProvider) WithClock(clock domain.Clock) *IssueProvider {
	p.clock = clock
	return p
}

// WithEnv sets the environment lookup used to resolve the token.
func (p *IssueProvider) WithEnv(getenv func(string) string) *IssueProvider {
	p.getenv = getenv
	return p
}

// Name returns the provider name.
func (p *IssueProvider) Name() string {
	return p.cfg.ProviderName
}

// Config returns a copy of the provider configuration.
func (p *IssueProvider) Config() domain.ProviderConfig {
	return p.cfg.With(domain.ProviderOptions{})
}

// Initialize builds the authenticated client and marks the provider ready.
// Credentials are not verified here; a bad token surfaces on the first fetch.
// Calling Initialize again replaces the client. On failure the previous
// client, if any, stays in place.
func (p *IssueProvider) Initialize(_ context.Context) error {
	if err := p.cfg.Validate(); err != nil {
		p.logError("lifecycle", err.Error())
		return fmt.Errorf("initialize %s: %w", p.cfg.ProviderName, err)
	}

	source, err := p.factory.NewSource(p.cfg, p.token())
	if err != nil {
		p.logError("lifecycle", err.Error())
		return fmt.Errorf("initialize %s: %w", p.cfg.ProviderName, err)
	}

	replaced := p.source.Swap(&sourceHandle{source: source}) != nil
	if replaced {
		p.logInfo("lifecycle", "client replaced")
	} else {
		p.logInfo("lifecycle", "client initialized")
	}
	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (p *IssueProvider) IsInitialized() bool {
	return p.source.Load() != nil
}

// GetData returns the feed wrapped in an envelope. It never fails: before
// initialization, and when the fetch fails, the envelope holds exactly one
// synthetic item.
func (p *IssueProvider) GetData(ctx context.Context) domain.Envelope {
	items, err := p.run(ctx)
	switch {
	case err == nil:
		return domain.Envelope{Data: items}
	case errors.Is(err, domain.ErrNotInitialized):
		return domain.SyntheticEnvelope(domain.MessageNotInitialized, p.cfg.Icon)
	default:
		return domain.SyntheticEnvelope(domain.MessageFetchError, p.cfg.Icon)
	}
}

// Reload runs the pipeline and returns the plain messages.
// Errors are returned unchanged: domain.ErrNotInitialized before
// initialization, *domain.FetchError when the upstream call fails.
func (p *IssueProvider) Reload(ctx context.Context) ([]string, error) {
	items, err := p.run(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Messages(items), nil
}

// ReloadItems is Reload returning feed items instead of strings.
func (p *IssueProvider) ReloadItems(ctx context.Context) ([]domain.FeedItem, error) {
	return p.run(ctx)
}

func (p *IssueProvider) run(ctx context.Context) ([]domain.FeedItem, error) {
	handle := p.source.Load()
	if handle == nil {
		return nil, domain.ErrNotInitialized
	}

	start := p.clock.Now()
	out, err := NewFetchFeed(handle.source).Execute(ctx, FetchFeedInput{
		ProviderName:     p.cfg.ProviderName,
		Icon:             p.cfg.Icon,
		ExcludeWithLabel: p.cfg.ExcludeWithLabel,
		FilterRepo:       p.cfg.FilterRepo,
	})
	elapsed := p.clock.Now().Sub(start)

	if err != nil {
		p.logError("fetch", err.Error())
		p.observe(0, err, elapsed)
		return nil, err
	}

	p.logDebug("fetch", fmt.Sprintf("fetched %d issues, showing %d", out.Fetched, len(out.Items)))
	p.observe(len(out.Items), nil, elapsed)
	return out.Items, nil
}

// token returns the configured token, falling back to the environment.
func (p *IssueProvider) token() string {
	if p.cfg.Auth != "" {
		return p.cfg.Auth
	}
	if p.cfg.TokenEnv == "" || p.getenv == nil {
		return ""
	}
	return p.getenv(p.cfg.TokenEnv)
}

func (p *IssueProvider) observe(items int, err error, elapsed time.Duration) {
	if p.recorder == nil {
		return
	}
	p.recorder.ObserveFetch(p.cfg.ProviderName, items, err, elapsed)
}

func (p *IssueProvider) logDebug(category, msg string) {
	if p.logger != nil {
		p.logger.Debug(p.cfg.ProviderName, category, msg)
	}
}

func (p *IssueProvider) logInfo(category, msg string) {
	if p.logger != nil {
		p.logger.Info(p.cfg.ProviderName, category, msg)
	}
}

func (p *IssueProvider) logError(category, msg string) {
	if p.logger != nil {
		p.logger.Error(p.cfg.ProviderName, category, msg)
	}
}

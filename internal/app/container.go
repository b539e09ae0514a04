// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/issue-feed/internal/domain"
	"github.com/runoshun/issue-feed/internal/infra/config"
	"github.com/runoshun/issue-feed/internal/infra/git"
	"github.com/runoshun/issue-feed/internal/infra/github"
	"github.com/runoshun/issue-feed/internal/infra/logging"
	"github.com/runoshun/issue-feed/internal/infra/metrics"
	"github.com/runoshun/issue-feed/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir         string // Directory the command runs in; holds the project config
	GlobalConfigDir string // e.g. ~/.config/issue-feed
	LogDir          string // Provider log directory; empty disables file logging
}

// newConfig derives the application paths from the working directory.
func newConfig(workDir string) Config {
	globalDir := config.DefaultGlobalConfigDir()
	var logDir string
	if globalDir != "" {
		logDir = filepath.Join(globalDir, domain.LogsDirName)
	}
	return Config{
		WorkDir:         workDir,
		GlobalConfigDir: globalDir,
		LogDir:          logDir,
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Repo          domain.RepoDetector
	Sources       domain.IssueSourceFactory
	FeedLogger    domain.Logger
	Clock         domain.Clock

	// Pointer fields
	Metrics *metrics.Recorder
	Logger  *slog.Logger
	Getenv  func(string) string

	// Configuration
	Config Config
}

// New creates a new Container for the given working directory.
func New(dir string) (*Container, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	cfg := newConfig(absDir)

	configLoader := config.NewLoaderWithGlobalDir(cfg.WorkDir, cfg.GlobalConfigDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		// Broken config files are reported by the commands that need them.
		appConfig = domain.NewDefaultConfig()
	}
	level := logging.ParseLevel(appConfig.Log.Level)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return &Container{
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManagerWithGlobalDir(cfg.WorkDir, cfg.GlobalConfigDir),
		Repo:          git.NewDetector(cfg.WorkDir),
		Sources:       github.Factory,
		FeedLogger:    logging.New(cfg.LogDir, level),
		Clock:         domain.RealClock{},
		Metrics:       metrics.NewRecorder(),
		Logger:        logger,
		Getenv:        os.Getenv,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, loader domain.ConfigLoader, manager domain.ConfigManager, sources domain.IssueSourceFactory, logger *slog.Logger) *Container {
	return &Container{
		ConfigLoader:  loader,
		ConfigManager: manager,
		Sources:       sources,
		Clock:         domain.RealClock{},
		Metrics:       metrics.NewRecorder(),
		Logger:        logger,
		Getenv:        func(string) string { return "" },
		Config:        cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if closer, ok := c.FeedLogger.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// ProviderConfig resolves the provider configuration from the config files
// with overrides applied on top. Overrides follow ProviderOptions rules:
// empty strings and nil slices leave the file value in place.
func (c *Container) ProviderConfig(overrides domain.ProviderOptions) (*domain.Config, domain.ProviderConfig, error) {
	cfg, err := c.ConfigLoader.Load()
	if err != nil {
		return nil, domain.ProviderConfig{}, fmt.Errorf("load config: %w", err)
	}
	opts := cfg.Provider.Merge(overrides)
	return cfg, domain.DefaultProviderConfig().With(opts), nil
}

// UseCase factory methods

// NewProvider returns a provider for cfg wired to the container's
// GitHub client factory, file logger and metrics.
func (c *Container) NewProvider(cfg domain.ProviderConfig) *usecase.IssueProvider {
	p := usecase.NewIssueProvider(cfg, c.Sources).
		WithClock(c.Clock).
		WithEnv(c.Getenv)
	if c.FeedLogger != nil {
		p.WithLogger(c.FeedLogger)
	}
	if c.Metrics != nil {
		p.WithRecorder(c.Metrics)
	}
	return p
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

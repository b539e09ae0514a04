package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/issue-feed/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct {
	IgnoreGlobal  bool // Skip the global config file
	IgnoreProject bool // Skip the project config file
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config        // Merged configuration
	Provider        domain.ProviderConfig // Resolved provider settings, auth redacted
	GlobalConfig    domain.ConfigInfo     // Global config file info
	ProjectConfig   domain.ConfigInfo     // Project config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information and the effective config.
func (uc *ShowConfig) Execute(_ context.Context, in ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.LoadWithOptions(domain.LoadConfigOptions{
		IgnoreGlobal:  in.IgnoreGlobal,
		IgnoreProject: in.IgnoreProject,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	out := &ShowConfigOutput{
		EffectiveConfig: cfg,
		Provider:        cfg.ProviderConfig().Redacted(),
	}
	if !in.IgnoreGlobal {
		out.GlobalConfig = uc.configManager.GetGlobalConfigInfo()
	}
	if !in.IgnoreProject {
		out.ProjectConfig = uc.configManager.GetProjectConfigInfo()
	}
	return out, nil
}

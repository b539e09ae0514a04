package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/issue-feed/internal/app"
	"github.com/runoshun/issue-feed/internal/domain"
	"github.com/runoshun/issue-feed/internal/usecase"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage issue-feed configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	var ignoreGlobal, ignoreProject bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.
The provider section lists every resolved value, defaults included.
The token is never printed.
Use --ignore-global or --ignore-project to exclude specific sources for debugging.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return errNoContainer
			}

			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{
				IgnoreGlobal:  ignoreGlobal,
				IgnoreProject: ignoreProject,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded files section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if !ignoreGlobal {
				printConfigSource(w, out.GlobalConfig)
			}
			if !ignoreProject {
				printConfigSource(w, out.ProjectConfig)
			}

			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.EffectiveConfig, out.Provider)
		},
	}

	cmd.Flags().BoolVar(&ignoreGlobal, "ignore-global", false, "Ignore global configuration")
	cmd.Flags().BoolVar(&ignoreProject, "ignore-project", false, "Ignore project configuration (.issue-feed.toml)")

	return cmd
}

func printConfigSource(w io.Writer, info domain.ConfigInfo) {
	if info.Path == "" {
		return
	}
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
	} else {
		_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
	}
}

// effectiveConfig is the display form of the merged configuration.
type effectiveConfig struct {
	Provider providerView       `toml:"provider"`
	Log      domain.LogConfig   `toml:"log"`
	Watch    watchView          `toml:"watch"`
	Serve    domain.ServeConfig `toml:"serve"`
}

type providerView struct {
	Name             string   `toml:"name"`
	Auth             string   `toml:"auth,omitempty"`
	TokenEnv         string   `toml:"token_env,omitempty"`
	BaseURL          string   `toml:"base_url"`
	UserAgent        string   `toml:"user_agent"`
	Icon             string   `toml:"icon,omitempty"`
	ExcludeWithLabel []string `toml:"exclude_with_label"`
	FilterRepo       []string `toml:"filter_repo,omitempty"`
}

type watchView struct {
	Interval string `toml:"interval"`
}

// formatEffectiveConfig formats the effective config in TOML format.
// pc must already be redacted.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config, pc domain.ProviderConfig) error {
	exclude := pc.ExcludeWithLabel
	if exclude == nil {
		exclude = []string{}
	}
	view := effectiveConfig{
		Provider: providerView{
			Name:             pc.ProviderName,
			Auth:             pc.Auth,
			TokenEnv:         pc.TokenEnv,
			BaseURL:          pc.BaseURL,
			UserAgent:        pc.UserAgent,
			Icon:             pc.Icon,
			ExcludeWithLabel: exclude,
			FilterRepo:       pc.FilterRepo,
		},
		Log:   cfg.Log,
		Watch: watchView{Interval: cfg.Watch.Interval.String()},
		Serve: cfg.Serve,
	}

	if err := toml.NewEncoder(w).Encode(view); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template to stdout.

This command is useful for:
- Piping template output for custom processing
- Comparing against existing configuration files
- Generating initial configuration without creating files

Note: The template is rendered from the built-in defaults.
It does not depend on existing configuration files and will work even if they are broken.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Ignore every file source so broken files cannot break the template
			cfg := domain.NewDefaultConfig()
			if c != nil {
				loaded, err := c.ConfigLoader.LoadWithOptions(domain.LoadConfigOptions{
					IgnoreGlobal:  true,
					IgnoreProject: true,
				})
				if err != nil {
					return err
				}
				cfg = loaded
			}

			uc := usecase.NewShowConfigTemplate()
			if c != nil {
				uc = c.ShowConfigTemplateUseCase()
			}
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigTemplateInput{
				Config: cfg,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return nil
		},
	}

	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates the project configuration file .issue-feed.toml in the current directory.
With --global, creates the global configuration file at ~/.config/issue-feed/config.toml.

Error conditions:
- Target file already exists: error`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return errNoContainer
			}

			cfg, err := c.ConfigLoader.LoadWithOptions(domain.LoadConfigOptions{
				IgnoreGlobal:  true,
				IgnoreProject: true,
			})
			if err != nil {
				return err
			}

			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{
				Global: global,
				Config: cfg,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")

	return cmd
}

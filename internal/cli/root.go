// Package cli provides the command-line interface for issue-feed.
package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/issue-feed/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupFeed  = "feed"
	groupSetup = "setup"
)

var errNoContainer = errors.New("application container not available")

// NewRootCommand creates the root command for issuefeed.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	gopts := &globalOptions{}

	root := &cobra.Command{
		Use:   "issuefeed",
		Short: "Feed of GitHub issues assigned to you",
		Long: `issuefeed lists the GitHub issues assigned to the authenticated user
as short display-ready lines, for terminals, scripts and dashboards.

Issues carrying an excluded label (default: "blocked") are dropped.
The token is read from [provider].auth or from the environment variable
named by [provider].token_env (default: GITHUB_TOKEN).

Running issuefeed without a subcommand opens the dashboard.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Template and init must work with broken config files
			if cmd.Name() == "template" || cmd.Name() == "init" {
				return nil
			}

			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported by the command itself
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, c, gopts, 0)
		},
	}

	gopts.bind(root)

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupFeed, Title: "Feed Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Feed commands
	listCmd := newListCommand(c, gopts)
	listCmd.GroupID = groupFeed

	dataCmd := newDataCommand(c, gopts)
	dataCmd.GroupID = groupFeed

	watchCmd := newWatchCommand(c, gopts)
	watchCmd.GroupID = groupFeed

	serveCmd := newServeCommand(c, gopts)
	serveCmd.GroupID = groupFeed

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		listCmd,
		dataCmd,
		watchCmd,
		serveCmd,
		configCmd,
	)

	return root
}

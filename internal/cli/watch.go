package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/issue-feed/internal/app"
	"github.com/runoshun/issue-feed/internal/tui"
	"github.com/spf13/cobra"
)

// launchWatchFunc is a function variable for launching the dashboard, allowing it to be mocked in tests.
var launchWatchFunc = launchWatch

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container, gopts *globalOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the terminal dashboard",
		Long: `Open a terminal dashboard that shows the feed and refreshes it on a timer.

The refresh interval defaults to [watch].interval (60s).

Keys:
  r        refresh now
  j/k      scroll
  ?        toggle help
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval < 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}
			return runWatch(cmd, c, gopts, interval)
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Refresh interval (default from config)")

	return cmd
}

// runWatch builds the provider and hands the dashboard to launchWatchFunc.
// A zero interval selects [watch].interval.
func runWatch(cmd *cobra.Command, c *app.Container, gopts *globalOptions, interval time.Duration) error {
	p, cfg, err := newInitializedProvider(cmd, c, gopts, false)
	if err != nil {
		return err
	}
	if interval == 0 {
		interval = cfg.Watch.Interval
	}

	model := tui.New(p, interval)
	if c.Clock != nil {
		model.WithClock(c.Clock)
	}
	return launchWatchFunc(model)
}

// launchWatch runs the dashboard until the user quits.
func launchWatch(model *tui.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

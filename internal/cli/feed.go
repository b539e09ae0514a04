package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/runoshun/issue-feed/internal/app"
	"github.com/runoshun/issue-feed/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats of the data command.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container, gopts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print assigned issues, one per line",
		Long: `Print the issues assigned to you, one line per issue:

  [<repository> #<number>] <title>

Lines keep the order returned by GitHub. Authentication or network
failures are reported and exit with a non-zero status.

Examples:
  # All assigned issues except those labelled "blocked"
  issuefeed list

  # Keep blocked issues too
  issuefeed list --exclude-label=

  # Only issues of the current repository
  issuefeed list --here`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := newInitializedProvider(cmd, c, gopts, true)
			if err != nil {
				return err
			}

			lines, err := p.Reload(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, line := range lines {
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	return cmd
}

// newDataCommand creates the data command.
func newDataCommand(c *app.Container, gopts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Print the feed envelope",
		Long: `Print the feed as an envelope of display records:

  {"data": [{"message": "[core #13] Add feature", "icon": "/assets/icon-3.png"}]}

This command never fails on fetch errors. When the provider cannot be
initialized or GitHub cannot be reached, the envelope holds a single
record describing the problem.

Formats: json (default), yaml, text (one message per line).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isValidFormat(format) {
				return fmt.Errorf("%w: %q (want json, yaml or text)", domain.ErrInvalidFormat, format)
			}

			p, _, err := newInitializedProvider(cmd, c, gopts, false)
			if err != nil {
				return err
			}

			env := p.GetData(cmd.Context())
			return writeEnvelope(cmd.OutOrStdout(), env, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json, yaml, text")

	return cmd
}

func isValidFormat(format string) bool {
	switch format {
	case formatJSON, formatYAML, formatText:
		return true
	}
	return false
}

// writeEnvelope encodes env to w in the given format.
func writeEnvelope(w io.Writer, env domain.Envelope, format string) error {
	if env.Data == nil {
		env.Data = []domain.FeedItem{}
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatText:
		for _, msg := range domain.Messages(env.Data) {
			if _, err := fmt.Fprintln(w, msg); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
	}
}

package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/runoshun/issue-feed/internal/app"
	"github.com/runoshun/issue-feed/internal/server"
	"github.com/spf13/cobra"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container, gopts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feed over HTTP",
		Long: `Serve the feed over HTTP for dashboards.

Endpoints:
  GET /data      feed envelope, always 200
  GET /issues    list of messages; 502 when GitHub cannot be reached
  GET /healthz   provider name and readiness
  GET /metrics   Prometheus metrics

Every request runs a fresh fetch. The listen address defaults to
[serve].addr (:8080). The server stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, cfg, err := newInitializedProvider(cmd, c, gopts, false)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			var metrics http.Handler
			if c.Metrics != nil {
				metrics = c.Metrics.Handler()
			}
			srv := server.New(p, metrics, c.Logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}

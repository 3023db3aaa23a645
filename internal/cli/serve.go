package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotkit/internal/server"
	"github.com/matzehuels/plotkit/pkg/buildinfo"
	"github.com/matzehuels/plotkit/pkg/cache"
	"github.com/matzehuels/plotkit/pkg/observability"
	"github.com/matzehuels/plotkit/pkg/pipeline"
)

// DefaultAddr is the address the server listens on by default.
const DefaultAddr = "localhost:8080"

// serveCommand creates the serve command, which renders demos over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		fileCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve demo figures over HTTP",
		Long: `Serve demo figures over HTTP.

Routes:
  GET /healthz                  liveness check
  GET /demos                    demo catalog as JSON
  GET /demos/{name}.{format}    rendered figure (query: legend, ncol, dpi, transparent)
  GET /stats                    render, cache and request counters`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			var store cache.Cache = cache.NewMemoryCache()
			if fileCache {
				fc, err := newCache(false)
				if err != nil {
					return err
				}
				store = fc
			} else {
				store = cache.NewScoped(store, buildinfo.CacheScope())
			}

			stats := observability.NewCounters()
			observability.SetRenderHooks(stats)
			observability.SetCacheHooks(stats)
			observability.SetHTTPHooks(stats)

			runner := pipeline.NewRunner(store, logger)
			defer runner.Close()

			return server.New(runner, logger, stats).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&fileCache, "file-cache", false, "cache renders on disk instead of in memory")

	return cmd
}

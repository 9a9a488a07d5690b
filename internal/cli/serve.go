package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfmount/pkg/api"
	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		noFavorites bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver and renderers over HTTP",
		Long: `Start the HTTP API:

  GET    /healthz
  POST   /v1/solve
  POST   /v1/render
  GET    /v1/favorites
  POST   /v1/favorites
  GET    /v1/favorites/{id}
  DELETE /v1/favorites/{id}

The server solves against the fixture in the config file and caches rendered
artifacts in the configured cache backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
			observability.SetCacheHooks(observability.NewLogHooks(c.Logger))
			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
			defer observability.Reset()

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			base, err := cfg.Spacing()
			if err != nil {
				return err
			}
			opts := []api.Option{
				api.WithGeometry(c.geometry()),
				api.WithBaseSpacing(base),
				api.WithDefaults(c.pipelineOptions()),
				api.WithRunner(runner),
				api.WithLogger(c.Logger),
			}

			if !noFavorites {
				var store favorites.Store
				store, err = c.openStore(ctx)
				if err != nil {
					return err
				}
				defer store.Close()
				opts = append(opts, api.WithStore(store))
			}

			return api.ListenAndServe(ctx, api.ListenConfig{
				Addr:         addr,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}, api.New(opts...), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noFavorites, "no-favorites", false, "disable the favorites routes")
	return cmd
}

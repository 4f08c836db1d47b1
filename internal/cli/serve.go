package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridglob/pkg/cache"
	"github.com/matzehuels/gridglob/pkg/server"
)

// serveCommand creates the serve command for the HTTP compile service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compile pipeline over HTTP",
		Long: `Serve the compile pipeline over HTTP.

Routes:
  GET  /healthz      liveness and build information
  POST /v1/compile   compile a layout document (JSON, YAML, or TOML body)

Query parameters of /v1/compile: format, tie_break, id_style, skip_invalid,
detailed. Engine defaults come from the [engine] section of gridglob.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg().Server.Addr
			}
			return c.runServe(cmd.Context(), cmd.ErrOrStderr(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, status io.Writer, addr string, noCache bool) error {
	cfg := c.cfg()

	runner, err := c.newRunner(ctx, noCache, cache.WithScope(nil, serverKeyPrefix))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	defaults := cfg.pipelineOptions()
	defaults.NoCache = noCache
	srv := server.New(runner, c.Logger,
		server.WithDefaults(defaults),
		server.WithMaxBody(cfg.Server.MaxBody),
	)

	newPrinter(status).info("Serving on %s", StyleHighlight.Render("http://"+addr))
	return srv.ListenAndServe(ctx, addr)
}
